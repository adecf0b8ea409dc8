package profile

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/creatorpulse/admin-api/internal/models"
	"github.com/creatorpulse/admin-api/pkg/logging"
	"github.com/creatorpulse/admin-api/pkg/telemetry"
)

// SocialAccountFinder is the slice of the social account repository the
// rollup depends on.
type SocialAccountFinder interface {
	FindByWorkspaceRefs(ctx context.Context, refs []models.Ref) ([]models.SocialAccount, error)
	FindByHandle(ctx context.Context, platform, handle string) ([]models.SocialAccount, error)
}

// SocialRollup groups an account's platform connections per workspace set.
type SocialRollup struct {
	socials SocialAccountFinder
	logger  *zap.Logger
}

// NewSocialRollup creates a new social rollup
func NewSocialRollup(socials SocialAccountFinder) *SocialRollup {
	return &SocialRollup{
		socials: socials,
		logger:  logging.GetLogger().With(zap.String("component", "social-rollup")),
	}
}

// Suffixes older writers appended to stored Instagram handles
var legacyHandleSuffixes = []string{"_ig", "_insta", "_instagram"}

// Rollup builds the social media summary for the resolved workspace set.
// Only active connections are counted; deactivated records stay invisible.
func (r *SocialRollup) Rollup(ctx context.Context, account *models.Account, workspaces []models.Workspace) (*models.SocialMediaSummary, error) {
	ctx, span := telemetry.StartSpan(ctx, "profile.social_rollup")
	defer span.End()

	refs := make([]models.Ref, 0, len(workspaces))
	names := make(map[string]string, len(workspaces))
	for _, workspace := range workspaces {
		ref := workspace.ID
		if ref.IsZero() {
			continue
		}
		refs = append(refs, ref)
		names[ref.Hex()] = workspace.Name
	}

	records, err := r.socials.FindByWorkspaceRefs(ctx, refs)
	if err != nil {
		return nil, fmt.Errorf("failed to load social accounts: %w", err)
	}

	// Reconciliation path for accounts connected before workspaces
	// existed: their Instagram handle lives directly on the account.
	if len(records) == 0 && account.InstagramHandle != "" {
		handle := stripHandleDecorations(account.InstagramHandle)
		legacy, err := r.socials.FindByHandle(ctx, models.PlatformInstagram, handle)
		if err != nil {
			r.logger.Warn("legacy handle lookup failed",
				zap.String("account_id", account.ID.Hex()),
				zap.String("handle", handle),
				zap.Error(err))
		} else {
			records = legacy
		}
	}

	summary := &models.SocialMediaSummary{
		Platforms:       make(map[string]models.SocialAccountView),
		AllPlatforms:    make(map[string][]models.SocialAccountView),
		TotalWorkspaces: len(workspaces),
	}

	for _, record := range records {
		if !record.IsActive {
			continue
		}

		view := models.SocialAccountView{
			Handle:      record.Handle,
			Followers:   record.Followers,
			Following:   record.Following,
			Posts:       record.Posts,
			Verified:    record.IsVerified,
			ConnectedAt: record.ConnectedAt,
		}
		if ref, ok := record.WorkspaceReference(); ok {
			view.WorkspaceID = ref.Hex()
			view.Workspace = names[ref.Hex()]
		}

		summary.AllPlatforms[record.Platform] = append(summary.AllPlatforms[record.Platform], view)
		if _, exists := summary.Platforms[record.Platform]; !exists {
			// Legacy view: first account per platform
			summary.Platforms[record.Platform] = view
		}
		summary.TotalConnections++
	}

	summary.Summary = summaryLine(summary.TotalConnections, summary.TotalWorkspaces)
	return summary, nil
}

// EmptyRollup returns the summary used when per-account enrichment
// degrades to a minimal profile.
func EmptyRollup(totalWorkspaces int) *models.SocialMediaSummary {
	return &models.SocialMediaSummary{
		Platforms:       make(map[string]models.SocialAccountView),
		AllPlatforms:    make(map[string][]models.SocialAccountView),
		TotalWorkspaces: totalWorkspaces,
		Summary:         summaryLine(0, totalWorkspaces),
	}
}

// stripHandleDecorations normalizes a legacy stored handle: leading "@"
// and known decorator suffixes are removed.
func stripHandleDecorations(handle string) string {
	handle = strings.TrimSpace(handle)
	handle = strings.TrimPrefix(handle, "@")
	for _, suffix := range legacyHandleSuffixes {
		handle = strings.TrimSuffix(handle, suffix)
	}
	return handle
}

func summaryLine(connections, workspaces int) string {
	return fmt.Sprintf("%d connected %s across %d %s",
		connections, pluralize(connections, "account", "accounts"),
		workspaces, pluralize(workspaces, "workspace", "workspaces"))
}

func pluralize(n int, singular, plural string) string {
	if n == 1 {
		return singular
	}
	return plural
}
