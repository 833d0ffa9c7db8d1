package reviewer

import (
	"context"
	"fmt"

	validator "github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/tripweave/tripweave/agents"
	"github.com/tripweave/tripweave/components"
	"github.com/tripweave/tripweave/components/systemprompt/simple"
	"github.com/tripweave/tripweave/schema"
)

const reviewsPerHotel = 5

const systemPrompt = `You are a hotel review analyst. You compare hotels on guest
feedback and answer with a single JSON object scoring each hotel and
ranking them for the trip at hand.`

// ReviewSearcher retrieves guest reviews for a query string.
type ReviewSearcher interface {
	Run(ctx context.Context, input *schema.ReviewQuery) (*schema.ReviewResult, error)
}

// Request bundles the hotels to compare and where they are.
type Request struct {
	Destination string
	Hotels      []schema.HotelOffer
}

// Reviewer gathers guest reviews per hotel and has a language model
// score and rank the candidates.
type Reviewer struct {
	agent    *agents.Agent[schema.String, schema.HotelAnalysis]
	searcher ReviewSearcher
	validate *validator.Validate
	logger   *zap.Logger
}

func New(searcher ReviewSearcher, logger *zap.Logger, options ...agents.Option) *Reviewer {
	if logger == nil {
		logger = zap.NewNop()
	}
	opts := []agents.Option{
		agents.WithName("Reviewer"),
		agents.WithSystemPromptGenerator(simple.New(systemPrompt)),
	}
	opts = append(opts, options...)
	return &Reviewer{
		agent:    agents.NewAgent[schema.String, schema.HotelAnalysis](opts...),
		searcher: searcher,
		validate: validator.New(),
		logger:   logger,
	}
}

func (r *Reviewer) Name() string {
	return r.agent.Name()
}

// Analyze retrieves reviews per hotel and scores the candidates.
// It errors when there are no hotels or no reviews to work with.
func (r *Reviewer) Analyze(ctx context.Context, req *Request) (*schema.HotelAnalysis, *components.ApiResponse, error) {
	if len(req.Hotels) == 0 {
		return nil, nil, fmt.Errorf("review analysis requires at least one hotel")
	}
	grouped, total := r.gather(ctx, req)
	if total == 0 {
		return nil, nil, fmt.Errorf("no guest reviews found for %d hotels", len(req.Hotels))
	}

	prompt := schema.String(analysisPrompt(req, grouped))
	r.agent.ResetMemory()
	var (
		analysis schema.HotelAnalysis
		apiResp  components.ApiResponse
	)
	if err := r.agent.Run(ctx, &prompt, &analysis, &apiResp); err != nil {
		return nil, &apiResp, fmt.Errorf("analyze hotel reviews: %w", err)
	}
	if err := r.validate.Struct(&analysis); err != nil {
		return nil, &apiResp, fmt.Errorf("hotel analysis invalid: %w", err)
	}
	if analysis.TopPick == "" && len(analysis.Recommendations) > 0 {
		analysis.TopPick = analysis.Recommendations[0].Hotel
	}
	analysis.TotalReviews = total
	return &analysis, &apiResp, nil
}

// gather collects up to reviewsPerHotel reviews per hotel. A failed
// lookup skips that hotel and logs, it does not abort the analysis.
func (r *Reviewer) gather(ctx context.Context, req *Request) (map[string][]schema.Review, int) {
	grouped := make(map[string][]schema.Review, len(req.Hotels))
	var total int
	for _, hotel := range req.Hotels {
		query := &schema.ReviewQuery{
			Query: fmt.Sprintf("%s %s", hotel.Name, req.Destination),
			TopK:  reviewsPerHotel,
		}
		res, err := r.searcher.Run(ctx, query)
		if err != nil {
			r.logger.Warn("review lookup failed",
				zap.String("hotel", hotel.Name),
				zap.Error(err))
			continue
		}
		if len(res.Reviews) == 0 {
			continue
		}
		grouped[hotel.Name] = res.Reviews
		total += len(res.Reviews)
	}
	return grouped, total
}
