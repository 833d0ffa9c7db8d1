package schema

// Result is the envelope every provider adapter output embeds.
// A failed lookup is reported as data so callers can keep going.
type Result struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// Ok returns a successful envelope.
func Ok() Result {
	return Result{Success: true}
}

// Fail returns a failed envelope carrying the error text.
func Fail(err error) Result {
	if err == nil {
		return Result{Success: false}
	}
	return Result{Success: false, Error: err.Error()}
}
