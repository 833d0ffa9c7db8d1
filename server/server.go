package server

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	validator "github.com/go-playground/validator/v10"
	"go.uber.org/atomic"
	"go.uber.org/zap"

	"github.com/tripweave/tripweave/orchestrator"
	"github.com/tripweave/tripweave/reconcile"
	"github.com/tripweave/tripweave/schema"
)

// TripPlanner runs the full planning sequence for one request.
type TripPlanner interface {
	Plan(ctx context.Context, req *schema.TripRequest) (*orchestrator.Result, error)
}

// PlanResponse is the stored and served planning result.
type PlanResponse struct {
	PlanID string `json:"plan_id"`
	orchestrator.Result
}

// Server is the HTTP surface over the planning pipeline.
type Server struct {
	planner    TripPlanner
	reconciler *reconcile.Reconciler
	store      *Store
	validate   *validator.Validate
	logger     *zap.Logger
	agents     []string
	tools      []string

	plansServed   atomic.Int64
	commandsTotal atomic.Int64

	engine *gin.Engine
}

func New(planner TripPlanner, opts ...Option) *Server {
	s := &Server{
		planner:  planner,
		validate: validator.New(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = zap.NewNop()
	}
	if s.reconciler == nil {
		s.reconciler = reconcile.New(s.logger)
	}
	if s.store == nil {
		s.store = NewStore(0)
	}
	s.engine = gin.New()
	s.engine.Use(gin.Recovery())
	s.routes()
	return s
}

func (s *Server) routes() {
	api := s.engine.Group("/api")
	api.POST("/plan", s.handlePlan)
	api.GET("/plan/:id", s.handleGetPlan)
	api.GET("/status", s.handleStatus)
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until the listener fails.
func (s *Server) Run(addr string) error {
	s.logger.Info("listening", zap.String("addr", addr))
	return s.engine.Run(addr)
}

func (s *Server) handlePlan(c *gin.Context) {
	var req schema.TripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := s.validate.Struct(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if _, err := req.Days(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := s.planner.Plan(c.Request.Context(), &req)
	if err != nil {
		s.logger.Error("planning failed", zap.String("destination", req.Destination), zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	res.Budget = s.reconciler.Apply(&reconcile.Input{
		Trip:             &req,
		Itinerary:        res.Final,
		Flights:          res.Flights,
		Hotels:           res.Hotels,
		Places:           res.Places,
		FlightBookingURL: res.FlightBookingURL,
	})

	response := &PlanResponse{Result: *res}
	s.store.Put(response)
	s.plansServed.Inc()
	s.commandsTotal.Add(int64(len(res.Commands)))
	s.logger.Info("plan complete",
		zap.String("plan_id", response.PlanID),
		zap.String("destination", req.Destination),
		zap.Int("commands", len(res.Commands)))
	c.JSON(http.StatusOK, response)
}

func (s *Server) handleGetPlan(c *gin.Context) {
	id := c.Param("id")
	res, ok := s.store.Get(id)
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "plan not found or expired"})
		return
	}
	c.JSON(http.StatusOK, res)
}

func (s *Server) handleStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":         "ok",
		"agents":         s.agents,
		"tools":          s.tools,
		"plans_served":   s.plansServed.Load(),
		"plans_stored":   s.store.Len(),
		"commands_total": s.commandsTotal.Load(),
	})
}
