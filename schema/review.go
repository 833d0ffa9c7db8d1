package schema

// ReviewQuery is the review search tool input.
type ReviewQuery struct {
	Base
	Query string `json:"query" jsonschema:"title=query" validate:"required"`
	TopK  int    `json:"top_k,omitempty"`
}

// Review is one guest review hit.
type Review struct {
	ID        string  `json:"id,omitempty"`
	HotelName string  `json:"hotel_name"`
	Text      string  `json:"text"`
	Rating    float64 `json:"rating,omitempty"`
	// Score is the vector similarity of the hit
	Score float64 `json:"score,omitempty"`
	// Aspects holds per-aspect sentiment in [0,1], keyed location/room/service/value
	Aspects map[string]float64 `json:"aspects,omitempty"`
}

// ReviewResult is the review search tool output.
type ReviewResult struct {
	Base
	Result
	Reviews []Review `json:"reviews,omitempty"`
}

// SentimentBreakdown scores one hotel per aspect, each in [0,1].
type SentimentBreakdown struct {
	Location float64 `json:"location" jsonschema:"title=location"`
	Room     float64 `json:"room" jsonschema:"title=room"`
	Service  float64 `json:"service" jsonschema:"title=service"`
	Value    float64 `json:"value" jsonschema:"title=value"`
}

// HotelReviewAnalysis is the reviewer's verdict on one hotel.
type HotelReviewAnalysis struct {
	Hotel        string             `json:"hotel" jsonschema:"title=hotel" validate:"required"`
	OverallScore float64            `json:"overall_score" jsonschema:"title=overall_score,description=score from 1 to 5" validate:"gte=0,lte=5"`
	Sentiment    SentimentBreakdown `json:"sentiment"`
	Strengths    []string           `json:"strengths"`
	Weaknesses   []string           `json:"weaknesses"`
	SuitableFor  []string           `json:"suitable_for,omitempty"`
}

// HotelRecommendation ranks one hotel for the trip at hand.
type HotelRecommendation struct {
	Rank   int    `json:"rank" jsonschema:"title=rank" validate:"gte=1"`
	Hotel  string `json:"hotel" jsonschema:"title=hotel" validate:"required"`
	Reason string `json:"reason"`
}

// HotelAnalysis is the reviewer output.
type HotelAnalysis struct {
	Base
	Analysis        []HotelReviewAnalysis `json:"analysis" validate:"required,dive"`
	Recommendations []HotelRecommendation `json:"recommendations" validate:"required,dive"`
	TopPick         string                `json:"top_pick,omitempty"`
	TotalReviews    int                   `json:"total_reviews,omitempty"`
}
