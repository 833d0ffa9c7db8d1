package orchestrator

import (
	"sync"
	"time"

	"go.uber.org/atomic"
)

// Command statuses over its lifetime.
const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
	StatusWarning   = "completed_with_warning"
)

var commandSeq atomic.Int64

// Command records one collaboration step between the orchestrator and
// an agent or tool.
type Command struct {
	ID          int64          `json:"id"`
	From        string         `json:"from"`
	To          string         `json:"to"`
	Name        string         `json:"name"`
	Params      map[string]any `json:"params,omitempty"`
	Status      string         `json:"status"`
	Result      string         `json:"result,omitempty"`
	Error       string         `json:"error,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	CompletedAt time.Time      `json:"completed_at"`
}

// CommandLog is the ordered, thread-safe audit trail of one planning run.
type CommandLog struct {
	mu       sync.Mutex
	commands []*Command
}

func NewCommandLog() *CommandLog {
	return new(CommandLog)
}

// Begin appends a pending command and returns it for later resolution.
func (l *CommandLog) Begin(from, to, name string, params map[string]any) *Command {
	cmd := &Command{
		ID:        commandSeq.Inc(),
		From:      from,
		To:        to,
		Name:      name,
		Params:    params,
		Status:    StatusPending,
		CreatedAt: time.Now(),
	}
	l.mu.Lock()
	l.commands = append(l.commands, cmd)
	l.mu.Unlock()
	return cmd
}

func (l *CommandLog) resolve(cmd *Command, status, result, errText string) {
	l.mu.Lock()
	cmd.Status = status
	cmd.Result = result
	cmd.Error = errText
	cmd.CompletedAt = time.Now()
	l.mu.Unlock()
}

// Complete marks a command successful with a short result summary.
func (l *CommandLog) Complete(cmd *Command, result string) {
	l.resolve(cmd, StatusCompleted, result, "")
}

// Fail marks a command failed.
func (l *CommandLog) Fail(cmd *Command, err error) {
	l.resolve(cmd, StatusFailed, "", err.Error())
}

// Warn marks a command completed with a warning.
func (l *CommandLog) Warn(cmd *Command, result string) {
	l.resolve(cmd, StatusWarning, result, "")
}

// Commands returns a snapshot of the log in emission order.
func (l *CommandLog) Commands() []Command {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Command, 0, len(l.commands))
	for _, cmd := range l.commands {
		out = append(out, *cmd)
	}
	return out
}

// Len returns the number of recorded commands.
func (l *CommandLog) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.commands)
}
