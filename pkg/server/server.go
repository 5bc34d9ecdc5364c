// Package server exposes the serving-layer boundary: top-10 reads per
// platform plus on-demand collection triggers. It renders nothing; page
// templating lives elsewhere and consumes these JSON documents.
package server

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ajay-panchal-099/daily-news-trend/internal/collector"
	"github.com/ajay-panchal-099/daily-news-trend/internal/metrics"
	"github.com/ajay-panchal-099/daily-news-trend/internal/snapshot"
	"github.com/ajay-panchal-099/daily-news-trend/pkg/platform"
)

// Server provides the HTTP API over the snapshot store.
type Server struct {
	store     *snapshot.Store
	collector *collector.Collector
	port      int

	// Guards cold-start collection so concurrent first requests trigger
	// a single run.
	collectMu sync.Mutex
}

// New creates the HTTP server.
func New(store *snapshot.Store, c *collector.Collector, port int) *Server {
	if port == 0 {
		port = 8080
	}
	return &Server{store: store, collector: c, port: port}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api/v1")
	{
		api.GET("/trends", s.handleAllTrends)
		api.GET("/trends/:platform", s.handlePlatformTrends)
		api.POST("/collect", s.handleCollect)
	}

	// Legacy refresh endpoints kept verbatim; the search-trends API is
	// quota-limited, so it refreshes on its own path only.
	r.GET("/refresh-data", s.handleRefreshData)
	r.GET("/refresh-google-trends", s.handleRefreshGoogle)

	return r
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe() error {
	return s.Router().Run(fmt.Sprintf(":%d", s.port))
}

// handleAllTrends serves the combined home view: every platform's top 10.
// On a cold start (no platform has data) it runs a full collection first.
func (s *Server) handleAllTrends(c *gin.Context) {
	data := s.topAll()

	if allEmpty(data) {
		s.collectMu.Lock()
		// Another request may have collected while we waited.
		if allEmpty(s.topAll()) {
			s.collector.CollectAll(c.Request.Context())
		}
		s.collectMu.Unlock()
		data = s.topAll()
	}

	for p := range data {
		metrics.TrendsServed.WithLabelValues(string(p)).Inc()
	}
	c.JSON(http.StatusOK, gin.H{"data": data})
}

func allEmpty(data map[platform.Platform]*platform.Snapshot) bool {
	for _, snap := range data {
		if len(snap.Trends) > 0 {
			return false
		}
	}
	return true
}

func (s *Server) topAll() map[platform.Platform]*platform.Snapshot {
	data := make(map[platform.Platform]*platform.Snapshot, len(platform.All()))
	for _, p := range platform.All() {
		data[p] = s.store.Top10(p)
	}
	return data
}

func (s *Server) handlePlatformTrends(c *gin.Context) {
	p, ok := platform.Parse(c.Param("platform"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "unknown platform"})
		return
	}
	metrics.TrendsServed.WithLabelValues(string(p)).Inc()
	c.JSON(http.StatusOK, s.store.Top10(p))
}

func (s *Server) handleCollect(c *gin.Context) {
	results := s.collector.CollectAll(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{
		"status":    "success",
		"updated":   platform.Timestamp(time.Now()),
		"platforms": results,
	})
}

// handleRefreshData re-collects every platform except the quota-limited
// search-trends API.
func (s *Server) handleRefreshData(c *gin.Context) {
	results := make(map[platform.Platform]bool)
	for _, p := range platform.All() {
		if p == platform.Google {
			continue
		}
		adapter := s.collector.Adapter(p)
		if adapter == nil {
			results[p] = false
			continue
		}
		results[p] = s.collector.CollectOne(c.Request.Context(), adapter)
	}
	c.JSON(http.StatusOK, gin.H{
		"status":    "success",
		"updated":   platform.Timestamp(time.Now()),
		"platforms": results,
	})
}

func (s *Server) handleRefreshGoogle(c *gin.Context) {
	adapter := s.collector.Adapter(platform.Google)
	if adapter == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"status": "error", "message": "google adapter not configured"})
		return
	}
	ok := s.collector.CollectOne(c.Request.Context(), adapter)
	status := "success"
	if !ok {
		status = "partial"
	}
	c.JSON(http.StatusOK, gin.H{
		"status":   status,
		"updated":  platform.Timestamp(time.Now()),
		"platform": platform.Google,
	})
}
