package reviewsearch

import (
	_ "embed"

	"gopkg.in/yaml.v3"

	"github.com/tripweave/tripweave/schema"
)

//go:embed data/reviews.yaml
var seedRaw []byte

type seedReview struct {
	ID      string             `yaml:"id"`
	Hotel   string             `yaml:"hotel"`
	Rating  float64            `yaml:"rating"`
	Text    string             `yaml:"text"`
	Aspects map[string]float64 `yaml:"aspects"`
}

// SeedReviews returns the built-in guest review corpus shipped with
// the binary, ready to be passed to Index.
func SeedReviews() ([]schema.Review, error) {
	var raw []seedReview
	if err := yaml.Unmarshal(seedRaw, &raw); err != nil {
		return nil, err
	}
	reviews := make([]schema.Review, 0, len(raw))
	for _, v := range raw {
		reviews = append(reviews, schema.Review{
			ID:        v.ID,
			HotelName: v.Hotel,
			Rating:    v.Rating,
			Text:      v.Text,
			Aspects:   v.Aspects,
		})
	}
	return reviews, nil
}
