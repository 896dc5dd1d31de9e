package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/intragalactic-stranger/Adaptive-CV/internal/artifacts"
	"github.com/intragalactic-stranger/Adaptive-CV/internal/cache"
	"github.com/intragalactic-stranger/Adaptive-CV/internal/chat"
	"github.com/intragalactic-stranger/Adaptive-CV/internal/documents"
	"github.com/intragalactic-stranger/Adaptive-CV/internal/improve"
	"github.com/intragalactic-stranger/Adaptive-CV/internal/proposals"
	"github.com/intragalactic-stranger/Adaptive-CV/internal/settings"
	"github.com/intragalactic-stranger/Adaptive-CV/internal/shared/config"
	"github.com/intragalactic-stranger/Adaptive-CV/internal/shared/server/middleware"
	"github.com/intragalactic-stranger/Adaptive-CV/internal/shared/server/respond"
	"github.com/intragalactic-stranger/Adaptive-CV/internal/uploads"
	"github.com/intragalactic-stranger/Adaptive-CV/internal/versions"
)

// RouterDeps carries the handlers the router wires up.
type RouterDeps struct {
	Config          config.Config
	DocumentHandler *documents.Handler
	ArtifactHandler *artifacts.Handler
	ProposalHandler *proposals.Handler
	ChatHandler     *chat.Handler
	UploadHandler   *uploads.Handler
	ImproveHandler  *improve.Handler
	SettingsHandler *settings.Handler
	VersionHandler  *versions.Handler
	CacheHandler    *cache.Handler
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
	)

	r.GET("/", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"service": "adaptive-cv", "status": "running"})
	})

	api := r.Group("/api/v1")
	api.GET("/health", func(c *gin.Context) {
		respond.JSON(c, http.StatusOK, gin.H{"ok": true})
	})
	deps.DocumentHandler.RegisterRoutes(api)
	deps.ArtifactHandler.RegisterRoutes(api)
	deps.ProposalHandler.RegisterRoutes(api)
	deps.ChatHandler.RegisterRoutes(api)
	deps.UploadHandler.RegisterRoutes(api)
	deps.ImproveHandler.RegisterRoutes(api)
	deps.SettingsHandler.RegisterRoutes(api)
	deps.VersionHandler.RegisterRoutes(api)
	deps.CacheHandler.RegisterRoutes(api)

	return r
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}
