package planner

import (
	_ "embed"
	"math/rand"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/tripweave/tripweave/schema"
)

// Template is a reference itinerary shown to the model as an example.
type Template struct {
	Destination string `yaml:"destination"`
	Days        int    `yaml:"days"`
	People      int    `yaml:"people"`
	Difficulty  string `yaml:"difficulty"`
	Example     string `yaml:"example"`
}

//go:embed data/templates.yaml
var templatesRaw []byte

// TemplateStore picks the reference itinerary closest to a request.
type TemplateStore struct {
	templates []Template

	mu  sync.Mutex
	rng *rand.Rand
}

func NewTemplateStore() (*TemplateStore, error) {
	var templates []Template
	if err := yaml.Unmarshal(templatesRaw, &templates); err != nil {
		return nil, err
	}
	return &TemplateStore{
		templates: templates,
		rng:       rand.New(rand.NewSource(rand.Int63())),
	}, nil
}

// Similar returns candidate templates for a destination and span.
// Destination substring matches win, then trips within one day of the
// span, then everything.
func (s *TemplateStore) Similar(destination string, days int) []Template {
	dest := strings.ToLower(schema.CleanCity(destination))
	var byDest []Template
	for _, t := range s.templates {
		name := strings.ToLower(t.Destination)
		if strings.Contains(name, dest) || strings.Contains(dest, name) {
			byDest = append(byDest, t)
		}
	}
	if len(byDest) > 0 {
		return byDest
	}
	var byDays []Template
	for _, t := range s.templates {
		diff := t.Days - days
		if diff < 0 {
			diff = -diff
		}
		if diff <= 1 {
			byDays = append(byDays, t)
		}
	}
	if len(byDays) > 0 {
		return byDays
	}
	return s.templates
}

// Pick selects one template uniformly among the candidates.
func (s *TemplateStore) Pick(destination string, days int) Template {
	candidates := s.Similar(destination, days)
	s.mu.Lock()
	idx := s.rng.Intn(len(candidates))
	s.mu.Unlock()
	return candidates[idx]
}
