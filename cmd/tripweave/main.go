package main

import (
	"context"
	"log"

	"github.com/bububa/instructor-go/pkg/instructor"
	"github.com/gin-gonic/gin"
	"github.com/philippgille/chromem-go"
	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"

	"github.com/tripweave/tripweave/agents"
	"github.com/tripweave/tripweave/agents/planner"
	"github.com/tripweave/tripweave/agents/reviewer"
	"github.com/tripweave/tripweave/agents/stylist"
	"github.com/tripweave/tripweave/components/embedder"
	openaiembedder "github.com/tripweave/tripweave/components/embedder/providers/openai"
	"github.com/tripweave/tripweave/components/vectordb/engines"
	"github.com/tripweave/tripweave/config"
	"github.com/tripweave/tripweave/orchestrator"
	"github.com/tripweave/tripweave/reconcile"
	"github.com/tripweave/tripweave/server"
	"github.com/tripweave/tripweave/tools/amadeus"
	"github.com/tripweave/tripweave/tools/flights"
	"github.com/tripweave/tripweave/tools/hotels"
	"github.com/tripweave/tripweave/tools/places"
	"github.com/tripweave/tripweave/tools/reviewsearch"
	"github.com/tripweave/tripweave/tools/weather"
)

const (
	agentTemperature = 0.7
	agentMaxTokens   = 4096
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	logger, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("init logger: %v", err)
	}
	defer logger.Sync()
	if err := cfg.Validate(logger); err != nil {
		logger.Fatal("invalid config", zap.Error(err))
	}
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	oaClient := openai.NewClient(cfg.OpenAIAPIKey)
	llm := instructor.FromOpenAI(oaClient,
		instructor.WithMode(instructor.ModeJSON),
		instructor.WithMaxRetries(3),
		instructor.WithValidation(),
	)
	llmOpts := []agents.Option{
		agents.WithClient(llm),
		agents.WithModel(cfg.OpenAIModel),
		agents.WithTemperature(agentTemperature),
		agents.WithMaxTokens(agentMaxTokens),
	}

	plannerAgent, err := planner.New(logger, llmOpts...)
	if err != nil {
		logger.Fatal("init planner", zap.Error(err))
	}
	reviewTool := reviewsearch.New(
		reviewsearch.WithEmbedder(openaiembedder.New(oaClient, embedder.WithModel(cfg.EmbeddingModel))),
		reviewsearch.WithEngine(engines.FromChromem(chromem.NewDB())),
	)
	if seed, err := reviewsearch.SeedReviews(); err != nil {
		logger.Fatal("load review corpus", zap.Error(err))
	} else if err := reviewTool.Index(context.Background(), seed...); err != nil {
		logger.Warn("review corpus indexing failed, review analysis will be skipped", zap.Error(err))
	} else {
		logger.Info("review corpus indexed", zap.Int("reviews", len(seed)))
	}
	reviewerAgent := reviewer.New(reviewTool, logger, llmOpts...)
	stylistAgent := stylist.New()

	orchOpts := []orchestrator.Option{
		orchestrator.WithLogger(logger),
		orchestrator.WithStylist(stylistAgent),
		orchestrator.WithPlanner(plannerAgent),
		orchestrator.WithReviewer(reviewerAgent),
	}
	toolNames := []string{reviewTool.Title()}
	if cfg.AmadeusAPIKey != "" && cfg.AmadeusAPISecret != "" {
		am := amadeus.NewClient(cfg.AmadeusAPIKey, cfg.AmadeusAPISecret)
		flightTool := flights.New(flights.WithClient(am))
		hotelTool := hotels.New(hotels.WithClient(am))
		orchOpts = append(orchOpts,
			orchestrator.WithFlights(flightTool),
			orchestrator.WithHotels(hotelTool),
		)
		toolNames = append(toolNames, flightTool.Title(), hotelTool.Title())
	}
	if cfg.OpenWeatherAPIKey != "" {
		weatherTool := weather.New(weather.WithApiKey(cfg.OpenWeatherAPIKey))
		orchOpts = append(orchOpts, orchestrator.WithWeather(weatherTool))
		toolNames = append(toolNames, weatherTool.Title())
	}
	if cfg.GooglePlacesAPIKey != "" {
		placeTool := places.New(places.WithApiKey(cfg.GooglePlacesAPIKey))
		orchOpts = append(orchOpts, orchestrator.WithPlaces(placeTool))
		toolNames = append(toolNames, placeTool.Title())
	}

	srv := server.New(orchestrator.New(orchOpts...),
		server.WithLogger(logger),
		server.WithReconciler(reconcile.New(logger)),
		server.WithResultTTL(cfg.ResultTTL),
		server.WithAgents(stylistAgent.Name(), plannerAgent.Name(), reviewerAgent.Name()),
		server.WithTools(toolNames...),
	)
	if err := srv.Run(":" + cfg.AppPort); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
