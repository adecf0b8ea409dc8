package profile

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/creatorpulse/admin-api/internal/models"
	"github.com/creatorpulse/admin-api/pkg/logging"
	"github.com/creatorpulse/admin-api/pkg/telemetry"
)

// WorkspaceFinder is the slice of the workspace repository the resolver
// depends on.
type WorkspaceFinder interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Workspace, error)
	GetByStringID(ctx context.Context, id string) (*models.Workspace, error)
	FindForAccount(ctx context.Context, account models.Ref) ([]models.Workspace, error)
}

// WorkspaceResolver discovers the set of workspaces an account can access
// and designates one as primary.
type WorkspaceResolver struct {
	workspaces WorkspaceFinder
	logger     *zap.Logger
}

// NewWorkspaceResolver creates a new workspace resolver
func NewWorkspaceResolver(workspaces WorkspaceFinder) *WorkspaceResolver {
	return &WorkspaceResolver{
		workspaces: workspaces,
		logger:     logging.GetLogger().With(zap.String("component", "workspace-resolver")),
	}
}

// Resolve returns the account's workspaces plus the designated primary.
// Resolution order decides the primary: the account's explicit reference
// wins over membership-derived discovery, and the synthesized default
// exists only when nothing else was found. The result is never empty.
func (r *WorkspaceResolver) Resolve(ctx context.Context, account *models.Account) ([]models.Workspace, models.Workspace, error) {
	ctx, span := telemetry.StartSpan(ctx, "profile.resolve_workspaces")
	defer span.End()

	var result []models.Workspace
	seen := make(map[string]bool)

	// Step 1: the account's explicit workspace reference. A miss here is
	// non-fatal, it simply contributes no workspace.
	if ref, ok := account.WorkspaceReference(); ok {
		workspace, err := r.lookupByRef(ctx, ref)
		if err != nil {
			r.logger.Warn("workspace reference lookup failed",
				zap.String("account_id", account.ID.Hex()),
				zap.String("workspace_ref", ref.Hex()),
				zap.Error(err))
		} else if workspace != nil {
			result = append(result, *workspace)
			seen[workspace.ID.Hex()] = true
		}
	}

	// Step 2: ownership and membership discovery, unioned in, skipping
	// workspaces already found by the explicit reference.
	found, err := r.workspaces.FindForAccount(ctx, models.RefFromID(account.ID))
	if err != nil {
		return nil, models.Workspace{}, err
	}
	for _, workspace := range found {
		key := workspace.ID.Hex()
		if seen[key] {
			continue
		}
		seen[key] = true
		result = append(result, workspace)
	}

	// Step 3: synthesized default when nothing was found. Never persisted.
	if len(result) == 0 {
		result = append(result, DefaultWorkspace(account))
	}

	return result, result[0], nil
}

// lookupByRef resolves a workspace reference, preferring the typed form
// and falling through to a string _id lookup for legacy records.
func (r *WorkspaceResolver) lookupByRef(ctx context.Context, ref models.Ref) (*models.Workspace, error) {
	if oid, ok := ref.ObjectID(); ok {
		workspace, err := r.workspaces.GetByID(ctx, oid)
		if err != nil || workspace != nil {
			return workspace, err
		}
	}
	return r.workspaces.GetByStringID(ctx, ref.Hex())
}

// DefaultWorkspace synthesizes the fallback workspace for an account with
// no discoverable workspaces. It borrows the account's id and timestamps
// and is never written to the store.
func DefaultWorkspace(account *models.Account) models.Workspace {
	return models.Workspace{
		ID:         models.RefFromID(account.ID),
		Name:       "Default Workspace",
		OwnerRef:   account.ID,
		IsDefault:  true,
		MaxMembers: 1,
		CreatedAt:  account.CreatedAt,
		UpdatedAt:  account.UpdatedAt,
	}
}
