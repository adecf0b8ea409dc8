package profile

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"

	"github.com/creatorpulse/admin-api/internal/models"
	"github.com/creatorpulse/admin-api/pkg/config"
	"github.com/creatorpulse/admin-api/pkg/logging"
	"github.com/creatorpulse/admin-api/pkg/telemetry"
)

// AccountFetcher is the slice of the account repository the service
// depends on.
type AccountFetcher interface {
	FetchPage(ctx context.Context, filter bson.M, page, pageSize int) ([]models.Account, int64, error)
}

// IntakeFinder looks up pre-signup questionnaire records by email.
type IntakeFinder interface {
	FindByEmail(ctx context.Context, email string) (*models.IntakeRecord, error)
}

// Service is the profile aggregation engine. Profiles are recomputed on
// every read; nothing here writes to the store.
type Service struct {
	accounts    AccountFetcher
	intakes     IntakeFinder
	resolver    *WorkspaceResolver
	rollup      *SocialRollup
	maxPageSize int
	now         func() time.Time
	logger      *zap.Logger
}

// NewService creates a new profile service
func NewService(accounts AccountFetcher, intakes IntakeFinder,
	resolver *WorkspaceResolver, rollup *SocialRollup,
	cfg *config.ProfilesConfig) *Service {
	return &Service{
		accounts:    accounts,
		intakes:     intakes,
		resolver:    resolver,
		rollup:      rollup,
		maxPageSize: cfg.MaxPageSize,
		now:         time.Now,
		logger:      logging.GetLogger().With(zap.String("component", "profile-service")),
	}
}

// GetProfiles returns one page of derived profiles plus pagination
// metadata. The filter is passed through to the store unmodified; the
// caller owns safe filter construction.
func (s *Service) GetProfiles(ctx context.Context, filter bson.M, page, pageSize int) (*models.ProfilePage, error) {
	ctx, span := telemetry.StartSpan(ctx, "profile.get_profiles")
	defer span.End()

	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 1
	}
	if s.maxPageSize > 0 && pageSize > s.maxPageSize {
		pageSize = s.maxPageSize
	}

	accounts, total, err := s.accounts.FetchPage(ctx, filter, page, pageSize)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch account page: %w", err)
	}

	// Fan out per-account enrichment, bounded by the page size. Each
	// result lands at its source index so page order survives whatever
	// order the goroutines finish in.
	profiles := make([]*models.Profile, len(accounts))
	var wg sync.WaitGroup
	for i := range accounts {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			profiles[i] = s.buildProfile(ctx, &accounts[i])
		}(i)
	}
	wg.Wait()

	totalPages := 0
	if total > 0 {
		totalPages = int((total + int64(pageSize) - 1) / int64(pageSize))
	}

	return &models.ProfilePage{
		Users:      profiles,
		Total:      total,
		Page:       page,
		Limit:      pageSize,
		TotalPages: totalPages,
	}, nil
}

// buildProfile enriches one account. The multiple reads here carry no
// transactional guarantee; the profile is a best-effort snapshot.
// Workspace or rollup failures degrade the account to a minimal profile
// instead of failing the page.
func (s *Service) buildProfile(ctx context.Context, account *models.Account) *models.Profile {
	ctx, span := telemetry.StartSpan(ctx, "profile.build")
	defer span.End()

	now := s.now()
	days := DaysSinceLastActivity(account, now)
	status, reason := Classify(account, days)

	var intake *models.IntakeRecord
	if account.Email != "" {
		record, err := s.intakes.FindByEmail(ctx, account.Email)
		if err != nil {
			// Absence is (nil, nil); this is a real lookup failure.
			s.logger.Warn("intake lookup failed",
				zap.String("account_id", account.ID.Hex()),
				zap.Error(err))
		} else {
			intake = record
		}
	}

	workspaces, primary, err := s.resolver.Resolve(ctx, account)
	if err != nil {
		s.logger.Warn("workspace resolution failed, degrading to minimal profile",
			zap.String("account_id", account.ID.Hex()),
			zap.Error(err))
		return s.minimalProfile(account, intake, status, reason, days, now)
	}

	rollup, err := s.rollup.Rollup(ctx, account, workspaces)
	if err != nil {
		s.logger.Warn("social rollup failed, degrading to minimal profile",
			zap.String("account_id", account.ID.Hex()),
			zap.Error(err))
		return s.minimalProfile(account, intake, status, reason, days, now)
	}

	score := Score(account, rollup.TotalConnections, now)
	return Assemble(account, intake, workspaces, primary, rollup, status, reason, days, score, now)
}

// minimalProfile is the degraded shape: account fields only, a synthesized
// default workspace, and an empty rollup.
func (s *Service) minimalProfile(account *models.Account, intake *models.IntakeRecord,
	status, reason string, days int, now time.Time) *models.Profile {
	def := DefaultWorkspace(account)
	score := Score(account, 0, now)
	return Assemble(account, intake, []models.Workspace{def}, def, EmptyRollup(1),
		status, reason, days, score, now)
}
