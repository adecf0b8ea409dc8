package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/creatorpulse/admin-api/internal/api/middleware"
	"github.com/creatorpulse/admin-api/internal/cache"
	"github.com/creatorpulse/admin-api/internal/profile"
	"github.com/creatorpulse/admin-api/internal/store"
	"github.com/creatorpulse/admin-api/pkg/config"
	"github.com/creatorpulse/admin-api/pkg/logging"
)

// Router sets up API routes
type Router struct {
	users  *UsersAPI
	store  *store.Store
	cache  *cache.Cache
	logger *zap.Logger
}

// NewRouter creates a new API router
func NewRouter(st *store.Store, redisCache *cache.Cache, cfg *config.Config) *Router {
	repo := store.NewRepository(st)

	accounts := store.NewAccountRepository(repo)
	intakes := store.NewIntakeRepository(repo)
	workspaces := store.NewWorkspaceRepository(repo)
	socials := store.NewSocialAccountRepository(repo)

	profiles := profile.NewService(accounts, intakes,
		profile.NewWorkspaceResolver(workspaces),
		profile.NewSocialRollup(socials),
		&cfg.Profiles)

	return &Router{
		users:  NewUsersAPI(profiles, redisCache, cfg),
		store:  st,
		cache:  redisCache,
		logger: logging.GetLogger().With(zap.String("component", "api-router")),
	}
}

// SetupRoutes sets up all API routes
func (r *Router) SetupRoutes(engine *gin.Engine) {
	engine.Use(middleware.RequestID())

	// Health check endpoints
	engine.GET("/health", r.healthHandler)
	engine.GET("/.well-known/healthcheck.json", r.healthHandler)

	users := engine.Group("/api/users")
	users.GET("", r.users.ListUsers)
	users.GET("/export", r.users.ExportUsers)
	users.GET("/:id", r.users.GetUser)
}

// healthHandler handles health check requests
func (r *Router) healthHandler(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := r.store.Health(ctx); err != nil {
		r.logger.Error("Store health check failed", zap.Error(err))
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "DEGRADED",
			"service": "admin-api",
		})
		return
	}

	// A disabled or unreachable cache degrades responses, not requests.
	cacheStatus := "OK"
	if err := r.cache.Health(ctx); err != nil {
		if errors.Is(err, cache.ErrCacheDisabled) {
			cacheStatus = "DISABLED"
		} else {
			r.logger.Warn("Cache health check failed", zap.Error(err))
			cacheStatus = "DEGRADED"
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"status":  "OK",
		"service": "admin-api",
		"cache":   cacheStatus,
	})
}
