// Package server exposes the inflow calculator over HTTP for the input form.
package server

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/remeenemee/pos-vodootliv/internal/config"
	"github.com/remeenemee/pos-vodootliv/internal/logging"
	"github.com/remeenemee/pos-vodootliv/internal/metrics"
	"github.com/remeenemee/pos-vodootliv/pkg/inflow"
	"github.com/remeenemee/pos-vodootliv/pkg/project"
	"github.com/remeenemee/pos-vodootliv/pkg/report"
	"github.com/remeenemee/pos-vodootliv/pkg/validation"
)

// Server is the HTTP API for interactive calculations.
type Server struct {
	cfg     *config.AppConfig
	logger  *slog.Logger
	metrics *metrics.Metrics
	router  *gin.Engine
	started time.Time
}

// New creates a server and registers its routes. A nil logger discards
// output; a nil m gets a fresh metrics registry.
func New(cfg *config.AppConfig, logger *slog.Logger, m *metrics.Metrics) *Server {
	if logger == nil {
		logger = logging.Discard()
	}
	if m == nil {
		m = metrics.New()
	}
	if !cfg.Server.DevMode {
		gin.SetMode(gin.ReleaseMode)
	}

	s := &Server{
		cfg:     cfg,
		logger:  logger,
		metrics: m,
		router:  gin.New(),
		started: time.Now(),
	}
	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	s.router.Use(gin.Recovery(), s.metrics.Middleware())
	s.router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	})

	api := s.router.Group("/api")
	{
		api.POST("/calculate", s.handleCalculate)
		api.POST("/validate", s.handleValidate)
		api.POST("/report", s.handleReport)
		api.GET("/defaults", s.handleDefaults)
		api.GET("/method", s.handleMethod)
		api.GET("/status", s.handleStatus)
	}
	s.router.GET("/metrics", gin.WrapH(s.metrics.Handler()))
	s.router.GET("/", s.handleIndex)
}

// Handler returns the router, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start listens on the configured port until ctx is cancelled, then shuts
// down gracefully.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.cfg.Server.Port),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("pitinflow server starting", "addr", "http://localhost"+srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		s.logger.Info("pitinflow server stopping")
		return srv.Shutdown(shutdownCtx)
	}
}

type calculateResponse struct {
	ID         string             `json:"id"`
	Result     *inflow.Result     `json:"result,omitempty"`
	Validation *validation.Report `json:"validation"`
	Error      string             `json:"error,omitempty"`
}

// bindInput decodes the request body and fills in the pit type default.
func bindInput(c *gin.Context) (project.Input, bool) {
	var in project.Input
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid json: " + err.Error()})
		return in, false
	}
	in.Normalize()
	return in, true
}

func (s *Server) handleCalculate(c *gin.Context) {
	in, ok := bindInput(c)
	if !ok {
		return
	}
	id := uuid.NewString()

	res, rep := inflow.Evaluate(in)
	if res == nil {
		s.metrics.Calculation(string(in.Pit.Kind), false, 0)
		s.logger.Info("calculation rejected", "id", id, "type", in.Pit.Kind, "fields", rep.Fields())
		c.JSON(http.StatusUnprocessableEntity, calculateResponse{
			ID:         id,
			Validation: rep,
			Error:      rep.Err().Error(),
		})
		return
	}

	s.metrics.Calculation(string(res.Kind), true, res.ReservedFlow)
	s.logger.Debug("calculation done", "id", id, "type", res.Kind, "q", res.Flow, "pump", res.Pump)
	c.JSON(http.StatusOK, calculateResponse{ID: id, Result: res, Validation: rep})
}

func (s *Server) handleValidate(c *gin.Context) {
	in, ok := bindInput(c)
	if !ok {
		return
	}
	_, rep := inflow.Evaluate(in)
	c.JSON(http.StatusOK, rep)
}

func (s *Server) handleReport(c *gin.Context) {
	format, err := report.ParseFormat(c.DefaultQuery("format", string(report.FormatText)))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	in, ok := bindInput(c)
	if !ok {
		return
	}
	id := uuid.NewString()

	res, rep := inflow.Evaluate(in)
	if res == nil {
		s.metrics.Calculation(string(in.Pit.Kind), false, 0)
		c.JSON(http.StatusUnprocessableEntity, calculateResponse{
			ID:         id,
			Validation: rep,
			Error:      rep.Err().Error(),
		})
		return
	}
	s.metrics.Calculation(string(res.Kind), true, res.ReservedFlow)

	doc := report.Build(in, res, report.Options{
		ID:    id,
		Title: s.cfg.Report.Title,
		Soil:  s.cfg.Report.Soil,
	})
	var buf bytes.Buffer
	if err := report.Write(&buf, doc, format); err != nil {
		s.logger.Error("rendering report failed", "id", id, "format", format, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	s.metrics.Report(string(format))

	filename := fmt.Sprintf("pit-inflow-%s.%s", id[:8], format.Extension())
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("X-Calculation-Id", id)
	c.Data(http.StatusOK, format.ContentType(), buf.Bytes())
}

func (s *Server) handleDefaults(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"input":               project.Default(),
		"aquiclude_elevation": project.DefaultAquicludeElevation,
	})
}

func (s *Server) handleMethod(c *gin.Context) {
	c.Data(http.StatusOK, report.FormatMarkdown.ContentType(), []byte(report.Methodology()))
}

func (s *Server) handleStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":         "ok",
		"uptime_seconds": int(time.Since(s.started).Seconds()),
		"dev_mode":       s.cfg.Server.DevMode,
	})
}

func (s *Server) handleIndex(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(`<!DOCTYPE html>
<html><head><title>pitinflow</title></head>
<body style="font-family:system-ui;max-width:40em;margin:3em auto">
<h1>Groundwater inflow into a pit</h1>
<p>POST a pit input to <code>/api/calculate</code>, <code>/api/validate</code>
or <code>/api/report?format=xlsx</code>. Form defaults are at
<code>/api/defaults</code>, the method at <code>/api/method</code>.</p>
</body></html>`))
}
