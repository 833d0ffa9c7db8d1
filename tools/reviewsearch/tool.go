package reviewsearch

import (
	"context"
	"fmt"
	"strconv"

	"github.com/tripweave/tripweave/components"
	"github.com/tripweave/tripweave/components/embedder"
	"github.com/tripweave/tripweave/components/vectordb"
	"github.com/tripweave/tripweave/schema"
	"github.com/tripweave/tripweave/tools"
)

const (
	// DefaultCollection holds the indexed guest reviews
	DefaultCollection = "hotel-reviews"

	defaultTopK = 5
)

// metadata keys stored with every indexed review
const (
	metaHotelName = "hotel_name"
	metaRating    = "rating"
)

// aspect sentiment keys carried in review metadata
var aspectKeys = []string{"location", "room", "service", "value"}

type Input = schema.ReviewQuery

type Output = schema.ReviewResult

type Config struct {
	tools.Config
	embedder   embedder.Embedder
	engine     vectordb.Engine
	collection string
	topK       int
}

// Tool retrieves guest reviews by vector similarity.
type Tool struct {
	Config
}

func New(opts ...Option) *Tool {
	ret := new(Tool)
	for _, opt := range opts {
		opt(&ret.Config)
	}
	if ret.Title() == "" {
		ret.SetTitle("ReviewSearchTool")
	}
	if ret.Description() == "" {
		ret.SetDescription("Searches guest reviews by semantic similarity")
	}
	if ret.collection == "" {
		ret.collection = DefaultCollection
	}
	if ret.topK == 0 {
		ret.topK = defaultTopK
	}
	return ret
}

// Index embeds reviews and stores them in the vector engine.
func (t *Tool) Index(ctx context.Context, reviews ...schema.Review) error {
	if t.embedder == nil || t.engine == nil {
		return fmt.Errorf("review index requires an embedder and an engine")
	}
	parts := make([]string, 0, len(reviews))
	for _, review := range reviews {
		parts = append(parts, review.Text)
	}
	var usage components.ApiUsage
	embeddings, err := t.embedder.BatchEmbed(ctx, parts, &usage)
	if err != nil {
		return fmt.Errorf("embed reviews: %w", err)
	}
	records := make([]vectordb.Record, 0, len(embeddings))
	for _, emb := range embeddings {
		review := reviews[emb.Index]
		emb.Meta = reviewMeta(&review)
		records = append(records, vectordb.Record{
			ID:        review.ID,
			Embedding: emb,
		})
	}
	if err := t.engine.Insert(ctx, t.collection, records...); err != nil {
		return fmt.Errorf("insert reviews: %w", err)
	}
	return nil
}

// Run embeds the query and returns the closest reviews.
func (t *Tool) Run(ctx context.Context, input *Input) (*Output, error) {
	t.OnStart(ctx, t, input)
	out, err := t.search(ctx, input)
	if err != nil {
		t.OnError(ctx, t, input, err)
		out = &Output{Result: schema.Fail(err)}
		return out, err
	}
	t.OnEnd(ctx, t, input, out)
	return out, nil
}

func (t *Tool) search(ctx context.Context, input *Input) (*Output, error) {
	if t.embedder == nil || t.engine == nil {
		return nil, fmt.Errorf("review search requires an embedder and an engine")
	}
	topK := input.TopK
	if topK <= 0 {
		topK = t.topK
	}
	var (
		embedding embedder.Embedding
		usage     components.ApiUsage
	)
	if err := t.embedder.Embed(ctx, input.Query, &embedding, &usage); err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}
	hits, err := t.engine.Search(ctx, embedding.Embedding,
		vectordb.SearchWithCollection(t.collection),
		vectordb.SearchWithTopK(topK),
	)
	if err != nil {
		return nil, fmt.Errorf("search reviews: %w", err)
	}
	reviews := make([]schema.Review, 0, len(hits))
	for _, hit := range hits {
		reviews = append(reviews, hitToReview(&hit))
	}
	return &Output{
		Result:  schema.Ok(),
		Reviews: reviews,
	}, nil
}

func reviewMeta(review *schema.Review) map[string]string {
	meta := make(map[string]string, len(aspectKeys)+2)
	meta[metaHotelName] = review.HotelName
	if review.Rating > 0 {
		meta[metaRating] = strconv.FormatFloat(review.Rating, 'f', 1, 64)
	}
	for _, key := range aspectKeys {
		if v, ok := review.Aspects[key]; ok {
			meta[key] = strconv.FormatFloat(v, 'f', 2, 64)
		}
	}
	return meta
}

func hitToReview(hit *vectordb.Record) schema.Review {
	review := schema.Review{
		ID:        hit.ID,
		Text:      hit.Embedding.Object,
		Score:     hit.Score,
		HotelName: hit.Embedding.Meta[metaHotelName],
	}
	if v, err := strconv.ParseFloat(hit.Embedding.Meta[metaRating], 64); err == nil {
		review.Rating = v
	}
	for _, key := range aspectKeys {
		if raw, ok := hit.Embedding.Meta[key]; ok {
			if v, err := strconv.ParseFloat(raw, 64); err == nil {
				if review.Aspects == nil {
					review.Aspects = make(map[string]float64, len(aspectKeys))
				}
				review.Aspects[key] = v
			}
		}
	}
	return review
}
