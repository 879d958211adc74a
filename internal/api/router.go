package api

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/jotarampini-cell/synapse/internal/dbpool"
	"github.com/jotarampini-cell/synapse/internal/middleware"
	"github.com/jotarampini-cell/synapse/internal/ws"
)

// RouterDeps holds all dependencies needed by the router.
type RouterDeps struct {
	Log            *logrus.Logger
	Pool           *dbpool.Pool
	Hub            *ws.Hub
	Content        ContentService
	Graph          GraphReader
	Activity       ActivityReader
	Backfill       Backfiller
	UserLookup     middleware.UserLookup
	CORSOrigins    []string
	Version        string
	OllamaURL      string
	EmbeddingModel string
}

// Router-level limits.
const (
	maxBodySize = 10 << 20 // 10 MB
	rateLimit   = 100      // requests per second per IP
	rateBurst   = 200      // token bucket burst size
)

// setupMiddleware configures all middleware on the Gin engine.
func setupMiddleware(ctx context.Context, r *gin.Engine, deps *RouterDeps) {
	r.SetTrustedProxies(nil) //nolint:errcheck // nil always succeeds.
	r.Use(middleware.RequestID(deps.Log))
	r.Use(ginLogger(deps.Log))
	r.Use(gin.Recovery())
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.MaxBodySize(maxBodySize))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     deps.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type", "Authorization"},
		MaxAge:           1 * time.Hour,
		AllowCredentials: false,
	}))
	r.Use(middleware.NewRateLimiter(ctx, rateLimit, rateBurst).Handler())
	r.Use(middleware.PrometheusMiddleware())

	// Metrics endpoint (unauthenticated, like health).
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

// registerRoutes sets up all API route handlers on the given router group.
func registerRoutes(ctx context.Context, api *gin.RouterGroup, deps *RouterDeps) {
	log := deps.Log

	health := NewHealthHandler(deps.Pool, deps.Hub, log, deps.Version, deps.OllamaURL, deps.EmbeddingModel)
	content := NewContentHandler(deps.Content, log)
	graph := NewGraphHandler(deps.Graph, log)
	activity := NewActivityHandler(deps.Activity, log)
	admin := NewAdminHandler(deps.Backfill, log)
	stats := NewStatsHandler(deps.Pool, log)

	// Health and readiness are unauthenticated.
	api.GET("/health", health.Liveness)
	api.GET("/ready", health.Readiness)

	// All other API routes require authentication.
	bfGuard := middleware.NewBruteForceGuard(ctx, log)
	api.Use(middleware.BruteForceMiddleware(bfGuard))
	api.Use(middleware.AuthMiddleware(middleware.NewCachedUserLookup(ctx, deps.UserLookup), log, bfGuard))

	// Content capture.
	api.POST("/content", content.SubmitText)
	api.POST("/content/url", content.SubmitURL)
	api.GET("/content", content.List)
	api.GET("/content/:id", content.Get)
	api.PUT("/content/:id", content.Update)
	api.DELETE("/content/:id", content.Delete)
	api.GET("/content/:id/related", content.Related)

	// Concept graph.
	api.GET("/graph/nodes", graph.Nodes)
	api.GET("/graph/connections", graph.Connections)

	// Activity feed.
	api.GET("/activity", activity.Query)

	// Stats.
	api.GET("/stats", stats.GetStats)

	// Admin.
	api.POST("/admin/backfill-embeddings", admin.BackfillEmbeddings)

	// WebSocket endpoint.
	api.GET("/ws", wsHandler(ctx, log, deps.Hub, deps.CORSOrigins, deps.UserLookup))
}

// NewRouter creates and configures the Gin engine with all middleware and routes.
func NewRouter(ctx context.Context, deps *RouterDeps) http.Handler {
	r := gin.New()
	setupMiddleware(ctx, r, deps)
	registerRoutes(ctx, r.Group("/api/v1"), deps)

	return r
}
