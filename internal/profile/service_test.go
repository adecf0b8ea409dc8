package profile

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/creatorpulse/admin-api/internal/models"
	"github.com/creatorpulse/admin-api/pkg/config"
)

type fakeAccountFetcher struct {
	accounts []models.Account
	total    int64
	err      error

	lastPage, lastPageSize int
}

func (f *fakeAccountFetcher) FetchPage(_ context.Context, _ bson.M, page, pageSize int) ([]models.Account, int64, error) {
	if f.err != nil {
		return nil, 0, f.err
	}
	f.lastPage, f.lastPageSize = page, pageSize
	return f.accounts, f.total, nil
}

type fakeIntakeFinder struct {
	byEmail map[string]*models.IntakeRecord
	err     error
}

func (f *fakeIntakeFinder) FindByEmail(_ context.Context, email string) (*models.IntakeRecord, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.byEmail[email], nil
}

func newTestService(fetcher *fakeAccountFetcher, intakes *fakeIntakeFinder,
	workspaces *fakeWorkspaceFinder, socials *fakeSocialFinder) *Service {
	if intakes == nil {
		intakes = &fakeIntakeFinder{}
	}
	if workspaces == nil {
		workspaces = &fakeWorkspaceFinder{}
	}
	if socials == nil {
		socials = &fakeSocialFinder{}
	}
	svc := NewService(fetcher, intakes,
		NewWorkspaceResolver(workspaces), NewSocialRollup(socials),
		&config.ProfilesConfig{DefaultPageSize: 20, MaxPageSize: 100})
	svc.now = func() time.Time {
		return time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC)
	}
	return svc
}

func TestGetProfilesIsolatedAccount(t *testing.T) {
	// Scenario: no workspace reference, no membership, no social accounts.
	account := models.Account{
		ID:        primitive.NewObjectID(),
		Email:     "alone@example.com",
		Username:  "alone",
		CreatedAt: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
	}
	fetcher := &fakeAccountFetcher{accounts: []models.Account{account}, total: 1}

	svc := newTestService(fetcher, nil, nil, nil)
	page, err := svc.GetProfiles(context.Background(), bson.M{}, 1, 20)
	if err != nil {
		t.Fatalf("GetProfiles() error = %v", err)
	}
	if len(page.Users) != 1 {
		t.Fatalf("got %d users, want 1", len(page.Users))
	}

	prof := page.Users[0]
	if len(prof.Workspaces) != 1 {
		t.Errorf("Workspaces = %d, want exactly one synthesized default", len(prof.Workspaces))
	}
	if prof.SocialMedia.TotalConnections != 0 {
		t.Errorf("TotalConnections = %d, want 0", prof.SocialMedia.TotalConnections)
	}
	if prof.SocialMedia.TotalWorkspaces != 1 {
		t.Errorf("TotalWorkspaces = %d, want 1", prof.SocialMedia.TotalWorkspaces)
	}
	if prof.SocialMedia.Summary != "0 connected accounts across 1 workspace" {
		t.Errorf("Summary = %q", prof.SocialMedia.Summary)
	}
}

func TestGetProfilesPreservesPageOrder(t *testing.T) {
	accounts := make([]models.Account, 8)
	for i := range accounts {
		accounts[i] = models.Account{
			ID:       primitive.NewObjectID(),
			Email:    "user@example.com",
			Username: "user",
		}
	}
	fetcher := &fakeAccountFetcher{accounts: accounts, total: 8}

	svc := newTestService(fetcher, nil, nil, nil)
	page, err := svc.GetProfiles(context.Background(), bson.M{}, 1, 8)
	if err != nil {
		t.Fatalf("GetProfiles() error = %v", err)
	}
	if len(page.Users) != len(accounts) {
		t.Fatalf("got %d users, want %d", len(page.Users), len(accounts))
	}
	for i, prof := range page.Users {
		if prof.ID != accounts[i].ID.Hex() {
			t.Errorf("position %d holds %s, want %s: fan-out must not reorder the page", i, prof.ID, accounts[i].ID.Hex())
		}
	}
}

func TestGetProfilesConcurrentEnrichment(t *testing.T) {
	// Every account on the page is enriched through the same shared
	// finders from concurrent goroutines; each one must be consulted
	// exactly once per account.
	accounts := make([]models.Account, 16)
	for i := range accounts {
		accounts[i] = models.Account{
			ID:       primitive.NewObjectID(),
			Username: "user",
		}
	}
	fetcher := &fakeAccountFetcher{accounts: accounts, total: 16}
	socials := &fakeSocialFinder{}

	svc := newTestService(fetcher, nil, nil, socials)
	page, err := svc.GetProfiles(context.Background(), bson.M{}, 1, 16)
	if err != nil {
		t.Fatalf("GetProfiles() error = %v", err)
	}
	if got := socials.callCount(); got != len(accounts) {
		t.Errorf("social finder consulted %d times, want %d", got, len(accounts))
	}
	for i, prof := range page.Users {
		if prof == nil || prof.SocialMedia == nil {
			t.Fatalf("position %d missing its rollup", i)
		}
	}
}

func TestGetProfilesPaginationMetadata(t *testing.T) {
	fetcher := &fakeAccountFetcher{accounts: nil, total: 45}

	svc := newTestService(fetcher, nil, nil, nil)
	page, err := svc.GetProfiles(context.Background(), bson.M{}, 2, 20)
	if err != nil {
		t.Fatalf("GetProfiles() error = %v", err)
	}
	if page.Page != 2 || page.Limit != 20 {
		t.Errorf("page/limit = %d/%d, want 2/20", page.Page, page.Limit)
	}
	if page.Total != 45 {
		t.Errorf("Total = %d, want 45", page.Total)
	}
	if page.TotalPages != 3 {
		t.Errorf("TotalPages = %d, want 3", page.TotalPages)
	}
}

func TestGetProfilesClampsPaging(t *testing.T) {
	fetcher := &fakeAccountFetcher{}

	svc := newTestService(fetcher, nil, nil, nil)
	if _, err := svc.GetProfiles(context.Background(), bson.M{}, 0, 5000); err != nil {
		t.Fatalf("GetProfiles() error = %v", err)
	}
	if fetcher.lastPage != 1 {
		t.Errorf("page clamped to %d, want 1", fetcher.lastPage)
	}
	if fetcher.lastPageSize != 100 {
		t.Errorf("pageSize clamped to %d, want the configured max 100", fetcher.lastPageSize)
	}
}

func TestGetProfilesDegradesOnWorkspaceFailure(t *testing.T) {
	account := models.Account{
		ID:        primitive.NewObjectID(),
		Email:     "degraded@example.com",
		Username:  "degraded",
		Stage:     StageLaunched,
		CreatedAt: time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC),
	}
	fetcher := &fakeAccountFetcher{accounts: []models.Account{account}, total: 1}
	workspaces := &fakeWorkspaceFinder{memberErr: errors.New("collection unavailable")}

	svc := newTestService(fetcher, nil, workspaces, nil)
	page, err := svc.GetProfiles(context.Background(), bson.M{}, 1, 20)
	if err != nil {
		t.Fatalf("GetProfiles() error = %v, per-account failure must not abort the page", err)
	}
	if len(page.Users) != 1 {
		t.Fatalf("got %d users, want 1", len(page.Users))
	}

	prof := page.Users[0]
	if prof.Workspace == nil || prof.Workspace.Name != "Default Workspace" {
		t.Error("degraded profile should carry the synthesized default workspace")
	}
	if prof.SocialMedia.TotalConnections != 0 {
		t.Errorf("degraded profile TotalConnections = %d, want 0", prof.SocialMedia.TotalConnections)
	}
	if prof.Status == "" {
		t.Error("degraded profile must still be classified")
	}
}

func TestGetProfilesFetchFailureIsFatal(t *testing.T) {
	fetcher := &fakeAccountFetcher{err: errors.New("store unreachable")}

	svc := newTestService(fetcher, nil, nil, nil)
	if _, err := svc.GetProfiles(context.Background(), bson.M{}, 1, 20); err == nil {
		t.Error("GetProfiles() should propagate page-fetch failures")
	}
}

func TestGetProfilesIdempotent(t *testing.T) {
	workspace := newWorkspace("Main")
	account := models.Account{
		ID:              primitive.NewObjectID(),
		Email:           "stable@example.com",
		Username:        "stable",
		Plan:            "pro",
		Stage:           StageLaunched,
		IsEmailVerified: true,
		WorkspaceRef:    workspace.ID,
		CreatedAt:       time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		UpdatedAt:       time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
	}
	fetcher := &fakeAccountFetcher{accounts: []models.Account{account}, total: 1}
	workspaces := &fakeWorkspaceFinder{
		byID: map[string]*models.Workspace{workspace.ID.Hex(): &workspace},
	}
	wsOID, _ := workspace.ID.ObjectID()
	socials := &fakeSocialFinder{
		records: []models.SocialAccount{
			{Platform: models.PlatformInstagram, Handle: "stable", IsActive: true, WorkspaceRef: wsOID},
		},
	}
	intakes := &fakeIntakeFinder{
		byEmail: map[string]*models.IntakeRecord{
			"stable@example.com": {Email: "stable@example.com", BusinessType: "creator"},
		},
	}

	svc := newTestService(fetcher, intakes, workspaces, socials)

	first, err := svc.GetProfiles(context.Background(), bson.M{}, 1, 20)
	if err != nil {
		t.Fatalf("GetProfiles() error = %v", err)
	}
	second, err := svc.GetProfiles(context.Background(), bson.M{}, 1, 20)
	if err != nil {
		t.Fatalf("GetProfiles() error = %v", err)
	}

	a, _ := json.Marshal(first.Users)
	b, _ := json.Marshal(second.Users)
	if string(a) != string(b) {
		t.Error("identical inputs must produce byte-identical user arrays")
	}

	// Spot-check the enriched profile while we have it.
	prof := first.Users[0]
	if prof.EngagementScore < 0 || prof.EngagementScore > 100 {
		t.Errorf("EngagementScore = %d out of [0,100]", prof.EngagementScore)
	}
	if prof.DaysSinceLastActivity < 0 {
		t.Errorf("DaysSinceLastActivity = %d, must be non-negative", prof.DaysSinceLastActivity)
	}
	if prof.Intake == nil || prof.Intake.BusinessType != "creator" {
		t.Error("intake record should be attached by email")
	}
	if prof.Workspace == nil || prof.Workspace.Name != "Main" {
		t.Error("explicitly referenced workspace should be primary")
	}
}
