package simple

import (
	"strings"
	"testing"
)

type staticProvider struct {
	title string
	info  string
}

func (p staticProvider) Title() string { return p.title }

func (p staticProvider) Info() string { return p.info }

func TestGenerateWithContextProviders(t *testing.T) {
	g := New("You are a travel planner.",
		WithContextProviders(
			staticProvider{title: "Destination notes", info: "Tokyo is compact, rail-first."},
			staticProvider{title: "Empty section", info: ""},
		),
	)
	prompt := g.Generate()
	if !strings.HasPrefix(prompt, "You are a travel planner.") {
		t.Errorf("prompt lost its base content: %q", prompt)
	}
	if !strings.Contains(prompt, "# EXTRA INFORMATION AND CONTEXT") {
		t.Error("prompt missing the context header")
	}
	if !strings.Contains(prompt, "## Destination notes") || !strings.Contains(prompt, "rail-first") {
		t.Errorf("provider section missing: %q", prompt)
	}
	if strings.Contains(prompt, "Empty section") {
		t.Error("providers without info should not render a section")
	}
}

func TestGenerateWithoutProviders(t *testing.T) {
	g := New("Base only.")
	if got := g.Generate(); got != "Base only." {
		t.Errorf("expected the bare content, got %q", got)
	}
}

func TestContextProviderRegistry(t *testing.T) {
	g := New("content")
	g.AddContextProviders(staticProvider{title: "A", info: "first"})
	g.AddContextProviders(staticProvider{title: "A", info: "duplicate"})
	g.AddContextProviders(staticProvider{title: "B", info: "second"})
	if got := len(g.ContextProviders()); got != 2 {
		t.Fatalf("expected 2 providers after duplicate add, got %d", got)
	}

	p, err := g.ContextProvider("A")
	if err != nil {
		t.Fatalf("lookup failed: %v", err)
	}
	if p.Info() != "first" {
		t.Errorf("duplicate title should not replace the original, got %q", p.Info())
	}
	if _, err := g.ContextProvider("missing"); err == nil {
		t.Error("expected an error for an unknown title")
	}

	g.RemoveContextProviders("A")
	if _, err := g.ContextProvider("A"); err == nil {
		t.Error("removed provider still registered")
	}
	if _, err := g.ContextProvider("B"); err != nil {
		t.Errorf("unrelated provider dropped: %v", err)
	}

	g.RemoveContextProviders("B", "missing")
	if got := len(g.ContextProviders()); got != 0 {
		t.Errorf("expected an empty registry, got %d providers", got)
	}
}
