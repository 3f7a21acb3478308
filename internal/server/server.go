package server

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/agenthands/factscreen/internal/config"
	"github.com/agenthands/factscreen/internal/core"
	"github.com/agenthands/factscreen/internal/core/dedupe"
	"github.com/agenthands/factscreen/internal/logging"
)

type Server struct {
	Screener *core.Screener
	Config   *config.Config
	Log      *zap.Logger
}

func NewServer(screener *core.Screener, cfg *config.Config, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{
		Screener: screener,
		Config:   cfg,
		Log:      log,
	}
}

func (s *Server) SetupRouter() *gin.Engine {
	if s.Config.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(logging.GinLogger(s.Log))
	r.Use(gin.Recovery())
	r.Use(cors)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "backend": s.Screener.Backend.Name()})
	})

	r.POST("/validate", s.Validate)
	r.POST("/duplicates", s.Duplicates)
	r.POST("/contradictions", s.Contradictions)
	r.POST("/screen", s.Screen)
	r.POST("/screen/source", s.ScreenSource)
	r.POST("/repair", s.Repair)
	r.POST("/golden", s.Golden)

	return r
}

func cors(c *gin.Context) {
	c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
	c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With")
	c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET")

	if c.Request.Method == http.MethodOptions {
		c.AbortWithStatus(http.StatusNoContent)
		return
	}
	c.Next()
}

// StatementsRequest is the body of every batch endpoint. A nil Threshold
// means the configured default.
type StatementsRequest struct {
	Statements []string `json:"statements"`
	Threshold  *float64 `json:"threshold"`
	Format     string   `json:"format"`
}

type SourceRequest struct {
	Limit     int      `json:"limit"`
	Threshold *float64 `json:"threshold"`
}

func (s *Server) threshold(v *float64) float64 {
	if v == nil {
		return s.Config.Screen.Threshold
	}
	return *v
}

func (s *Server) bind(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return false
	}
	return true
}

// bindBatch also rejects a body whose statements field is absent or null.
// An explicit empty list is a valid batch.
func (s *Server) bindBatch(c *gin.Context, req *StatementsRequest) bool {
	if !s.bind(c, req) {
		return false
	}
	if req.Statements == nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": core.ErrMissingBatch.Error()})
		return false
	}
	return true
}

func (s *Server) Validate(c *gin.Context) {
	var req StatementsRequest
	if !s.bindBatch(c, &req) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"results": s.Screener.ValidateBatch(c.Request.Context(), req.Statements)})
}

func (s *Server) Duplicates(c *gin.Context) {
	var req StatementsRequest
	if !s.bindBatch(c, &req) {
		return
	}
	threshold := s.threshold(req.Threshold)

	matches, err := s.Screener.FindDuplicates(c.Request.Context(), req.Statements, threshold)
	if err != nil {
		s.fail(c, "find duplicates", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"matches": matches, "threshold": dedupe.ClampThreshold(threshold)})
}

func (s *Server) Contradictions(c *gin.Context) {
	var req StatementsRequest
	if !s.bindBatch(c, &req) {
		return
	}
	c.JSON(http.StatusOK, gin.H{"contradictions": s.Screener.Contradictions(req.Statements)})
}

func (s *Server) Screen(c *gin.Context) {
	var req StatementsRequest
	if !s.bindBatch(c, &req) {
		return
	}
	report, err := s.Screener.Screen(c.Request.Context(), req.Statements, s.threshold(req.Threshold))
	if err != nil {
		s.fail(c, "screen", err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (s *Server) ScreenSource(c *gin.Context) {
	var req SourceRequest
	if !s.bind(c, &req) {
		return
	}
	limit := req.Limit
	if limit == 0 {
		limit = s.Config.Source.Limit
	}
	report, err := s.Screener.ScreenSource(c.Request.Context(), limit, s.threshold(req.Threshold))
	if err != nil {
		s.fail(c, "screen source", err)
		return
	}
	c.JSON(http.StatusOK, report)
}

func (s *Server) Repair(c *gin.Context) {
	var req StatementsRequest
	if !s.bindBatch(c, &req) {
		return
	}
	suggestions, err := s.Screener.Repair(c.Request.Context(), req.Statements)
	if err != nil {
		s.fail(c, "repair", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"suggestions": suggestions})
}

func (s *Server) Golden(c *gin.Context) {
	var req StatementsRequest
	if !s.bindBatch(c, &req) {
		return
	}
	switch req.Format {
	case "", "json", "markdown", "html":
	default:
		c.JSON(http.StatusBadRequest, gin.H{"error": "format must be json, markdown or html"})
		return
	}

	report, err := s.Screener.Golden(c.Request.Context(), req.Statements, s.threshold(req.Threshold))
	if err != nil {
		s.fail(c, "golden", err)
		return
	}

	switch req.Format {
	case "", "json":
		c.JSON(http.StatusOK, gin.H{"equal": report.Equal(), "report": report})
	case "markdown":
		c.Data(http.StatusOK, "text/markdown; charset=utf-8", []byte(report.Markdown()))
	case "html":
		html, err := report.HTML()
		if err != nil {
			s.fail(c, "golden", err)
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(html))
	}
}

// fail maps service errors to HTTP statuses.
func (s *Server) fail(c *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, core.ErrInvalidThreshold), errors.Is(err, core.ErrMissingBatch):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, core.ErrNoSource), errors.Is(err, core.ErrNoRepairer):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": err.Error()})
	default:
		s.Log.Error("Failed to "+op, zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to " + op})
	}
}
