package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/creatorpulse/admin-api/internal/models"
)

// Repository provides document store access methods
type Repository struct {
	db *mongo.Database
}

// NewRepository creates a new repository
func NewRepository(s *Store) *Repository {
	return &Repository{db: s.Database()}
}

// AccountRepository provides account-related store operations
type AccountRepository struct {
	*Repository
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(repo *Repository) *AccountRepository {
	return &AccountRepository{Repository: repo}
}

func (r *AccountRepository) collection() *mongo.Collection {
	return r.db.Collection(models.Account{}.CollectionName())
}

// FetchPage runs the caller's filter as-is, sorted by creation time
// descending, and returns one page of accounts plus the total match count.
func (r *AccountRepository) FetchPage(ctx context.Context, filter bson.M, page, pageSize int) ([]models.Account, int64, error) {
	if filter == nil {
		filter = bson.M{}
	}
	coll := r.collection()

	total, err := coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count accounts: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((page - 1) * pageSize)).
		SetLimit(int64(pageSize))

	cursor, err := coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query accounts: %w", err)
	}
	defer cursor.Close(ctx)

	var accounts []models.Account
	if err := cursor.All(ctx, &accounts); err != nil {
		return nil, 0, fmt.Errorf("failed to decode accounts: %w", err)
	}
	return accounts, total, nil
}

// GetByID retrieves an account by ID
func (r *AccountRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Account, error) {
	var account models.Account
	err := r.collection().FindOne(ctx, bson.M{"_id": id}).Decode(&account)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &account, nil
}

// IntakeRepository provides intake questionnaire lookups
type IntakeRepository struct {
	*Repository
}

// NewIntakeRepository creates a new intake repository
func NewIntakeRepository(repo *Repository) *IntakeRepository {
	return &IntakeRepository{Repository: repo}
}

func (r *IntakeRepository) collection() *mongo.Collection {
	return r.db.Collection(models.IntakeRecord{}.CollectionName())
}

// FindByEmail retrieves the intake record for an email address. Absence is
// a normal case, returned as (nil, nil).
func (r *IntakeRepository) FindByEmail(ctx context.Context, email string) (*models.IntakeRecord, error) {
	var record models.IntakeRecord
	err := r.collection().FindOne(ctx, bson.M{"email": email}).Decode(&record)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &record, nil
}

// WorkspaceRepository provides workspace-related store operations
type WorkspaceRepository struct {
	*Repository
}

// NewWorkspaceRepository creates a new workspace repository
func NewWorkspaceRepository(repo *Repository) *WorkspaceRepository {
	return &WorkspaceRepository{Repository: repo}
}

func (r *WorkspaceRepository) collection() *mongo.Collection {
	return r.db.Collection(models.Workspace{}.CollectionName())
}

// GetByID retrieves a workspace by its typed identifier
func (r *WorkspaceRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Workspace, error) {
	var workspace models.Workspace
	err := r.collection().FindOne(ctx, bson.M{"_id": id}).Decode(&workspace)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &workspace, nil
}

// GetByStringID retrieves a workspace whose _id was persisted as a bare
// string by a legacy writer.
func (r *WorkspaceRepository) GetByStringID(ctx context.Context, id string) (*models.Workspace, error) {
	var workspace models.Workspace
	err := r.collection().FindOne(ctx, bson.M{"_id": id}).Decode(&workspace)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, err
	}
	return &workspace, nil
}

// FindForAccount retrieves workspaces the account owns or belongs to,
// matching both storage forms of the account reference.
func (r *WorkspaceRepository) FindForAccount(ctx context.Context, account models.Ref) ([]models.Workspace, error) {
	forms := account.Forms()
	if len(forms) == 0 {
		return nil, nil
	}

	filter := bson.M{"$or": []bson.M{
		{"owner_id": bson.M{"$in": forms}},
		{"members": bson.M{"$in": forms}},
		{"team_members.user_id": bson.M{"$in": forms}},
	}}

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := r.collection().Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to query workspaces: %w", err)
	}
	defer cursor.Close(ctx)

	var workspaces []models.Workspace
	if err := cursor.All(ctx, &workspaces); err != nil {
		return nil, fmt.Errorf("failed to decode workspaces: %w", err)
	}
	return workspaces, nil
}

// SocialAccountRepository provides social-connection store operations
type SocialAccountRepository struct {
	*Repository
}

// NewSocialAccountRepository creates a new social account repository
func NewSocialAccountRepository(repo *Repository) *SocialAccountRepository {
	return &SocialAccountRepository{Repository: repo}
}

func (r *SocialAccountRepository) collection() *mongo.Collection {
	return r.db.Collection(models.SocialAccount{}.CollectionName())
}

// FindByWorkspaceRefs retrieves every social account owned by any of the
// given workspaces. The $in carries both the ObjectID and hex string form
// of each reference so records written either way are matched.
func (r *SocialAccountRepository) FindByWorkspaceRefs(ctx context.Context, refs []models.Ref) ([]models.SocialAccount, error) {
	forms := make([]interface{}, 0, len(refs)*2)
	for _, ref := range refs {
		forms = append(forms, ref.Forms()...)
	}
	if len(forms) == 0 {
		return nil, nil
	}

	filter := bson.M{"workspace_id": bson.M{"$in": forms}}
	cursor, err := r.collection().Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to query social accounts: %w", err)
	}
	defer cursor.Close(ctx)

	var accounts []models.SocialAccount
	if err := cursor.All(ctx, &accounts); err != nil {
		return nil, fmt.Errorf("failed to decode social accounts: %w", err)
	}
	return accounts, nil
}

// FindByHandle retrieves social accounts by platform and handle. Used as a
// best-effort reconciliation path for accounts created before workspaces.
func (r *SocialAccountRepository) FindByHandle(ctx context.Context, platform, handle string) ([]models.SocialAccount, error) {
	filter := bson.M{"platform": platform, "handle": handle}
	cursor, err := r.collection().Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("failed to query social accounts by handle: %w", err)
	}
	defer cursor.Close(ctx)

	var accounts []models.SocialAccount
	if err := cursor.All(ctx, &accounts); err != nil {
		return nil, fmt.Errorf("failed to decode social accounts: %w", err)
	}
	return accounts, nil
}
