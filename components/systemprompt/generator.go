package systemprompt

import "fmt"

// Generator assembles the system prompt an agent sends with every
// model call.
type Generator interface {
	Generate() string
	// ContextProvider retrieves a registered provider by title.
	// If the context provider is not found returns not found error
	ContextProvider(title string) (ContextProvider, error)
	// AddContextProviders registers new context providers
	AddContextProviders(providers ...ContextProvider)
	// RemoveContextProviders Unregisters an existing context provider.
	RemoveContextProviders(titles ...string)
}

// BaseGenerator keeps the provider registry concrete generators embed.
type BaseGenerator struct {
	contextProviders []ContextProvider
}

func (g *BaseGenerator) ContextProviders() []ContextProvider {
	return g.contextProviders
}

// ContextProvider retrieves a registered provider by title.
// If the context provider is not found returns not found error
func (g *BaseGenerator) ContextProvider(title string) (ContextProvider, error) {
	for _, p := range g.contextProviders {
		if p.Title() == title {
			return p, nil
		}
	}
	return nil, fmt.Errorf("context provider '%s' not found", title)
}

// AddContextProviders registers new context providers. A provider
// whose title is already registered is ignored.
func (g *BaseGenerator) AddContextProviders(providers ...ContextProvider) {
	for _, provider := range providers {
		if _, err := g.ContextProvider(provider.Title()); err != nil {
			g.contextProviders = append(g.contextProviders, provider)
		}
	}
}

// RemoveContextProviders Unregisters existing context providers.
// Unknown titles are ignored.
func (g *BaseGenerator) RemoveContextProviders(titles ...string) {
	drop := make(map[string]struct{}, len(titles))
	for _, title := range titles {
		drop[title] = struct{}{}
	}
	kept := g.contextProviders[:0]
	for _, p := range g.contextProviders {
		if _, found := drop[p.Title()]; found {
			continue
		}
		kept = append(kept, p)
	}
	g.contextProviders = kept
}
