package planner

import (
	"strings"

	"github.com/tripweave/tripweave/agents/stylist"
)

// styleCatalog feeds the travel style table into the system prompt so
// the model knows what each classified style implies before a request
// names one.
type styleCatalog struct{}

func (styleCatalog) Title() string { return "Travel styles" }

func (styleCatalog) Info() string {
	var b strings.Builder
	for _, style := range stylist.Styles() {
		b.WriteString("- ")
		b.WriteString(style.Name)
		if len(style.Characteristics) > 0 {
			b.WriteString(": ")
			b.WriteString(strings.Join(style.Characteristics, ", "))
		}
		b.WriteByte('\n')
	}
	return strings.TrimRight(b.String(), "\n")
}
