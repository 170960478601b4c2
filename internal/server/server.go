// Package server exposes the hallucination-rate tables and transition cases
// over HTTP. It is read-only over the persisted result collections; the
// visualization layer consumes these tables verbatim.
package server

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/agenthands/mirage/internal/eval"
	"github.com/agenthands/mirage/internal/record"
)

type Server struct {
	Store *record.Store
	Log   *zap.Logger
}

func NewServer(store *record.Store, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{
		Store: store,
		Log:   log,
	}
}

func (s *Server) SetupRouter() *gin.Engine {
	r := gin.Default()

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api/v1")
	api.GET("/metrics/overall", s.OverallMetrics)
	api.GET("/metrics/objects", s.ObjectMetrics)
	api.GET("/metrics/folders", s.FolderMetrics)
	api.GET("/cases", s.Cases)

	return r
}

func (s *Server) OverallMetrics(c *gin.Context) {
	s.metrics(c, eval.Overall)
}

func (s *Server) ObjectMetrics(c *gin.Context) {
	s.metrics(c, eval.ByObject)
}

func (s *Server) FolderMetrics(c *gin.Context) {
	s.metrics(c, eval.ByFolder)
}

func (s *Server) metrics(c *gin.Context, table func([]record.QueryRecord) []eval.RateRow) {
	records, err := s.Store.LoadAll()
	if err != nil {
		s.Log.Error("failed to load result collections", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load results"})
		return
	}
	c.JSON(http.StatusOK, table(records))
}

// Cases joins a base prompt variant against a comparison variant and returns
// the induced and corrected hallucination transitions.
//
// Query params: model (required), variant (required), base (default
// "baseline").
func (s *Server) Cases(c *gin.Context) {
	model := c.Query("model")
	variant := c.Query("variant")
	base := c.DefaultQuery("base", "baseline")
	if model == "" || variant == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "model and variant query params are required"})
		return
	}

	baseRecords, err := s.Store.Load(model, base)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no results for base variant"})
		return
	}
	variantRecords, err := s.Store.Load(model, variant)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "no results for comparison variant"})
		return
	}

	induced, corrected := eval.FindTransitions(baseRecords, variantRecords)
	if induced == nil {
		induced = []eval.Transition{}
	}
	if corrected == nil {
		corrected = []eval.Transition{}
	}
	c.JSON(http.StatusOK, gin.H{
		"model":     model,
		"base":      base,
		"variant":   variant,
		"induced":   induced,
		"corrected": corrected,
	})
}
