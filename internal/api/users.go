package api

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/creatorpulse/admin-api/internal/cache"
	"github.com/creatorpulse/admin-api/internal/profile"
	"github.com/creatorpulse/admin-api/pkg/config"
	"github.com/creatorpulse/admin-api/pkg/logging"
)

// exportPageSize is the page size used when streaming the CSV export.
const exportPageSize = 100

// UsersAPI serves the admin user-profile endpoints
type UsersAPI struct {
	profiles        *profile.Service
	cache           *cache.Cache
	cacheTTL        time.Duration
	defaultPageSize int
	logger          *zap.Logger
}

// NewUsersAPI creates a new users API
func NewUsersAPI(profiles *profile.Service, redisCache *cache.Cache, cfg *config.Config) *UsersAPI {
	return &UsersAPI{
		profiles:        profiles,
		cache:           redisCache,
		cacheTTL:        cfg.Redis.CacheTTL,
		defaultPageSize: cfg.Profiles.DefaultPageSize,
		logger:          logging.WithComponent("users-api"),
	}
}

// ListUsers handles GET /api/users
func (u *UsersAPI) ListUsers(c *gin.Context) {
	page := parsePositiveInt(c.Query("page"), 1)
	limit := parsePositiveInt(c.Query("limit"), u.defaultPageSize)
	filter := buildUserFilter(c)

	// Short-TTL response cache. Profiles are derived per read, so a
	// stale entry only delays status changes by the TTL.
	cacheKey := listCacheKey(filter, page, limit)
	if cached, err := u.cache.Get(cacheKey); err == nil {
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(cached))
		return
	}

	result, err := u.profiles.GetProfiles(c.Request.Context(), filter, page, limit)
	if err != nil {
		u.logger.Error("Failed to load user page", zap.Error(err))
		respondError(c, NewError(http.StatusInternalServerError, "failed to load users"))
		return
	}

	if body, err := json.Marshal(result); err == nil {
		if err := u.cache.Set(cacheKey, body, u.cacheTTL); err != nil && !errors.Is(err, cache.ErrCacheDisabled) {
			u.logger.Warn("Failed to cache user page", zap.Error(err))
		}
	}

	c.JSON(http.StatusOK, result)
}

// GetUser handles GET /api/users/:id
func (u *UsersAPI) GetUser(c *gin.Context) {
	oid, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		respondError(c, NewError(http.StatusBadRequest, "invalid user id"))
		return
	}

	result, err := u.profiles.GetProfiles(c.Request.Context(), bson.M{"_id": oid}, 1, 1)
	if err != nil {
		u.logger.Error("Failed to load user", zap.String("id", oid.Hex()), zap.Error(err))
		respondError(c, NewError(http.StatusInternalServerError, "failed to load user"))
		return
	}
	if len(result.Users) == 0 {
		respondError(c, NewError(http.StatusNotFound, "user not found"))
		return
	}

	c.JSON(http.StatusOK, result.Users[0])
}

// ExportUsers handles GET /api/users/export. It streams every profile
// matching the filter as CSV, paging through the store internally.
func (u *UsersAPI) ExportUsers(c *gin.Context) {
	filter := buildUserFilter(c)

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", `attachment; filename="users.csv"`)

	w := csv.NewWriter(c.Writer)
	header := []string{
		"id", "email", "username", "plan", "status", "status_reason",
		"engagement_score", "connected_accounts", "workspace", "joined_at", "last_active",
	}
	if err := w.Write(header); err != nil {
		u.logger.Error("Failed to write export header", zap.Error(err))
		return
	}

	for page := 1; ; page++ {
		result, err := u.profiles.GetProfiles(c.Request.Context(), filter, page, exportPageSize)
		if err != nil {
			u.logger.Error("Failed to load export page", zap.Int("page", page), zap.Error(err))
			return
		}

		for _, p := range result.Users {
			workspace := ""
			if p.Workspace != nil {
				workspace = p.Workspace.Name
			}
			connections := 0
			if p.SocialMedia != nil {
				connections = p.SocialMedia.TotalConnections
			}
			row := []string{
				p.ID,
				p.Email,
				p.Username,
				p.Plan,
				p.Status,
				p.StatusReason,
				strconv.Itoa(p.EngagementScore),
				strconv.Itoa(connections),
				workspace,
				p.JoinedAt,
				p.LastActive,
			}
			if err := w.Write(row); err != nil {
				u.logger.Error("Failed to write export row", zap.Error(err))
				return
			}
		}

		if page >= result.TotalPages {
			break
		}
	}

	w.Flush()
}

// buildUserFilter translates whitelisted query parameters into a store
// filter. Unknown parameters are ignored; nothing from the request
// reaches the store unvalidated.
func buildUserFilter(c *gin.Context) bson.M {
	filter := bson.M{}

	if search := c.Query("search"); search != "" {
		pattern := primitive.Regex{Pattern: regexp.QuoteMeta(search), Options: "i"}
		filter["$or"] = []bson.M{
			{"email": pattern},
			{"username": pattern},
			{"display_name": pattern},
		}
	}
	if stage := c.Query("stage"); stage != "" {
		filter["stage"] = stage
	}
	if plan := c.Query("plan"); plan != "" {
		filter["plan"] = plan
	}
	if banned := c.Query("banned"); banned != "" {
		filter["is_banned"] = banned == "true"
	}

	return filter
}

func listCacheKey(filter bson.M, page, limit int) string {
	filterJSON, err := json.Marshal(filter)
	if err != nil {
		filterJSON = []byte(fmt.Sprintf("%v", filter))
	}
	return "users:" + cache.HashKey(string(filterJSON), strconv.Itoa(page), strconv.Itoa(limit))
}

func parsePositiveInt(raw string, fallback int) int {
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}
