package stylist

import (
	_ "embed"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/tripweave/tripweave/schema"
)

// fallback thresholds when no keyword matches, amounts in KRW
const (
	familyPartySize = 3
	luxuryBudget    = 3000000
	backpackBudget  = 1000000
)

// Style is one classifiable travel style.
type Style struct {
	Key             string   `yaml:"key"`
	Name            string   `yaml:"name"`
	Keywords        []string `yaml:"keywords"`
	Characteristics []string `yaml:"characteristics"`
}

//go:embed data/styles.yaml
var stylesRaw []byte

var (
	stylesOnce sync.Once
	styles     []Style
)

// Styles returns the style table in declaration order.
func Styles() []Style {
	stylesOnce.Do(func() {
		if err := yaml.Unmarshal(stylesRaw, &styles); err != nil {
			panic(err)
		}
	})
	return styles
}

// Stylist classifies a trip request into a travel style.
// Classification is keyword-driven and never fails.
type Stylist struct {
	name string
}

func New() *Stylist {
	return &Stylist{name: "Stylist"}
}

func (s *Stylist) Name() string {
	return s.name
}

// Analyze scores every style by keyword hits over the request's free
// text. On a zero score the party size and budget decide.
func (s *Stylist) Analyze(req *schema.TripRequest) *schema.StyleAnalysis {
	parts := []string{req.Origin, req.Destination, req.TravelStyle}
	parts = append(parts, req.Preferences...)
	corpus := strings.ToLower(strings.Join(parts, " "))
	var (
		best        Style
		bestScore   int
		bestMatches []string
	)
	for idx, style := range Styles() {
		var matches []string
		for _, keyword := range style.Keywords {
			if strings.Contains(corpus, strings.ToLower(keyword)) {
				matches = append(matches, keyword)
			}
		}
		if idx == 0 || len(matches) > bestScore {
			best = style
			bestScore = len(matches)
			bestMatches = matches
		}
	}
	if bestScore == 0 {
		best = fallbackStyle(req)
		bestMatches = nil
	}
	return &schema.StyleAnalysis{
		Primary:         best.Key,
		StyleName:       best.Name,
		Confidence:      float64(bestScore),
		MatchedKeywords: bestMatches,
		Characteristics: best.Characteristics,
	}
}

func fallbackStyle(req *schema.TripRequest) Style {
	key := "cultural"
	switch {
	case req.People >= familyPartySize:
		key = "family"
	case req.Budget >= luxuryBudget:
		key = "luxury"
	case req.Budget <= backpackBudget:
		key = "backpacker"
	}
	for _, style := range Styles() {
		if style.Key == key {
			return style
		}
	}
	return Styles()[0]
}
