package storage

import (
	"context"

	"github.com/poiesic/bomvault/core"
)

// Repository provides common storage operations shared across all repositories.
// Implementations must be thread-safe and support concurrent access.
type Repository interface {
	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close closes the repository and releases resources.
	Close() error
}

// ApplicationRepository provides operations for managing uploaded applications.
// Every read is owner-scoped: callers never see another owner's records.
type ApplicationRepository interface {
	Repository
	// AddApplications adds one or more applications to storage.
	// For applications with ID=0, generates new IDs from sequence.
	// Sets CreatedAt if not already set, and maintains the owner and
	// file-hash indexes.
	// Returns the applications with generated IDs populated.
	AddApplications(ctx context.Context, apps ...*core.Application) ([]*core.Application, error)

	// UpdateApplications updates existing applications.
	// Returns ErrNotFound if any application doesn't exist.
	UpdateApplications(ctx context.Context, apps ...*core.Application) ([]*core.Application, error)

	// DeleteApplication removes an application, its indexes, and its
	// component links. Components themselves are shared across the owner's
	// applications and are retained.
	// Returns ErrNotFound if the application doesn't exist for this owner.
	DeleteApplication(ctx context.Context, owner, id core.ID) error

	// GetApplication retrieves a single application by ID, scoped to owner.
	// Returns ErrNotFound if the application doesn't exist or belongs to a
	// different owner.
	GetApplication(ctx context.Context, owner, id core.ID) (*core.Application, error)

	// ListApplications retrieves all of an owner's applications in creation
	// order. An owner with no applications yields an empty slice, not an
	// error.
	ListApplications(ctx context.Context, owner core.ID) ([]*core.Application, error)

	// FindApplicationByFileHash finds an owner's application by artifact
	// hash, used for duplicate-upload detection.
	// Returns ErrNotFound if no such application exists.
	FindApplicationByFileHash(ctx context.Context, owner core.ID, fileHash string) (*core.Application, error)
}

// ComponentRepository provides operations for managing components and the
// links tying them into application inventories.
type ComponentRepository interface {
	Repository
	// AddComponents adds one or more components to storage.
	// Uses content-based IDs (ContentID of owner:name@version); a component
	// that already exists is left untouched, so CreatedAt is stable.
	// Returns the components with IDs and timestamps populated.
	AddComponents(ctx context.Context, comps ...*core.Component) ([]*core.Component, error)

	// GetComponent retrieves a single component by ID.
	// Returns ErrNotFound if the component doesn't exist.
	GetComponent(ctx context.Context, id core.ID) (*core.Component, error)

	// GetComponents retrieves multiple components by their IDs.
	// Returns only the components that exist (no error for missing ones).
	GetComponents(ctx context.Context, ids ...core.ID) ([]*core.Component, error)

	// LinkComponents ties components into an application's inventory.
	// Linking an already-linked component overwrites the link row.
	// Returns ErrNotFound if a referenced component doesn't exist.
	LinkComponents(ctx context.Context, appID core.ID, refs ...*core.ComponentRef) error

	// UnlinkApplication removes all of an application's inventory links.
	UnlinkApplication(ctx context.Context, appID core.ID) error

	// GetApplicationComponents retrieves the full component records linked
	// to an application, in a stable order.
	GetApplicationComponents(ctx context.Context, appID core.ID) ([]*core.Component, error)

	// GetComponentRefs retrieves an application's link rows with their
	// relationship metadata.
	GetComponentRefs(ctx context.Context, appID core.ID) ([]*core.ComponentRef, error)
}
