package planner

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

// Request bundles everything the drafting prompt needs.
type Request struct {
	Trip    *schema.TripRequest
	Days    int
	Style   *schema.StyleAnalysis
	Flights []schema.FlightOffer
	Hotels  []schema.HotelOffer
	Places  []schema.Place
	Weather []schema.DailyForecast
}

// RefineRequest bundles the draft and the material for the second pass.
type RefineRequest struct {
	Draft    *schema.Itinerary
	Analysis *schema.HotelAnalysis
	Flights  []schema.FlightOffer
	Hotels   []schema.HotelOffer
	Places   []schema.Place
	Weather  []schema.DailyForecast
	Budget   float64
}

// Planner drafts and refines itineraries with a language model.
type Planner struct {
	agent     *agents.Agent[schema.String, schema.Itinerary]
	templates *TemplateStore
	validate  *validator.Validate
	logger    *zap.Logger
}

func New(logger *zap.Logger, options ...agents.Option) (*Planner, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	templates, err := NewTemplateStore()
	if err != nil {
		return nil, fmt.Errorf("load itinerary templates: %w", err)
	}
	opts := []agents.Option{
		agents.WithName("Planner"),
		agents.WithSystemPromptGenerator(simple.New(systemPrompt)),
	}
	opts = append(opts, options...)
	agent := agents.NewAgent[schema.String, schema.Itinerary](opts...)
	agent.RegisterSystemPromptContextProvider(styleCatalog{})
	return &Planner{
		agent:     agent,
		templates: templates,
		validate:  validator.New(),
		logger:    logger,
	}, nil
}

// SystemPrompt returns the assembled system prompt, context providers
// included.
func (p *Planner) SystemPrompt() string {
	return p.agent.SystemPrompt()
}

func (p *Planner) Name() string {
	return p.agent.Name()
}

// Draft produces the first itinerary. It never fails: when the model
// call or its output is unusable the caller gets a degraded stub.
func (p *Planner) Draft(ctx context.Context, req *Request) (*schema.Itinerary, *components.ApiResponse) {
	template := p.templates.Pick(req.Trip.Destination, req.Days)
	prompt := schema.String(draftPrompt(req, template))

	p.agent.ResetMemory()
	var (
		itinerary schema.Itinerary
		apiResp   components.ApiResponse
	)
	if err := p.agent.Run(ctx, &prompt, &itinerary, &apiResp); err != nil {
		p.logger.Warn("itinerary draft failed, using stub",
			zap.String("destination", req.Trip.Destination),
			zap.Error(err))
		return schema.StubItinerary(req.Trip, req.Days, fmt.Sprintf("draft generation failed: %v", err)), &apiResp
	}
	if err := p.validate.Struct(&itinerary); err != nil {
		p.logger.Warn("itinerary draft invalid, using stub",
			zap.String("destination", req.Trip.Destination),
			zap.Error(err))
		return schema.StubItinerary(req.Trip, req.Days, fmt.Sprintf("draft validation failed: %v", err)), &apiResp
	}
	if got := len(itinerary.Itinerary); got != req.Days {
		p.logger.Warn("draft day count differs from request",
			zap.Int("want", req.Days),
			zap.Int("got", got))
	}
	return &itinerary, &apiResp
}

// Refine runs the second pass over a draft. Unlike Draft it surfaces
// failures so the caller can fall back to the draft itself.
func (p *Planner) Refine(ctx context.Context, req *RefineRequest) (*schema.Itinerary, *components.ApiResponse, error) {
	if req.Draft == nil {
		return nil, nil, fmt.Errorf("refine: no draft itinerary")
	}
	prompt := schema.String(refinePrompt(req))

	p.agent.ResetMemory()
	var (
		itinerary schema.Itinerary
		apiResp   components.ApiResponse
	)
	if err := p.agent.Run(ctx, &prompt, &itinerary, &apiResp); err != nil {
		return nil, &apiResp, fmt.Errorf("refine itinerary: %w", err)
	}
	if err := p.validate.Struct(&itinerary); err != nil {
		return nil, &apiResp, fmt.Errorf("refined itinerary invalid: %w", err)
	}
	return &itinerary, &apiResp, nil
}
