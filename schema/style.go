package schema

// StyleAnalysis is the travel style classification result.
type StyleAnalysis struct {
	Base
	// Primary is the style key (e.g. "cultural")
	Primary string `json:"primary_style"`
	// StyleName is the display name of the style
	StyleName string `json:"style_name"`
	// Confidence in [0,1]
	Confidence float64 `json:"confidence"`
	// MatchedKeywords that drove the classification, empty on fallback
	MatchedKeywords []string `json:"matched_keywords"`
	// Characteristics describe the style for downstream prompts
	Characteristics []string `json:"characteristics,omitempty"`
}
