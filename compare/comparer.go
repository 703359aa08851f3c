package compare

import (
	"context"
	"log/slog"

	"github.com/poiesic/bomvault/core"
	"github.com/poiesic/bomvault/storage"
)

// Comparer resolves two owner-scoped applications from the inventory store
// and runs the comparison engine over their component lists.
type Comparer struct {
	applicationRepository storage.ApplicationRepository
	componentRepository   storage.ComponentRepository
	logger                *slog.Logger
}

// Option configures a Comparer.
type Option func(*Comparer) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *Comparer) error {
		if logger == nil {
			logger = slog.Default()
		}
		c.logger = logger
		return nil
	}
}

// NewComparer creates a new comparer.
func NewComparer(
	applicationRepository storage.ApplicationRepository,
	componentRepository storage.ComponentRepository,
	opts ...Option,
) (*Comparer, error) {
	if applicationRepository == nil {
		return nil, ErrApplicationRepositoryRequired
	}
	if componentRepository == nil {
		return nil, ErrComponentRepositoryRequired
	}

	c := &Comparer{
		applicationRepository: applicationRepository,
		componentRepository:   componentRepository,
		logger:                slog.Default(),
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	return c, nil
}

// CompareApplications resolves both applications for the owner and diffs
// their inventories. Comparing an application with itself is rejected before
// the engine is invoked.
func (c *Comparer) CompareApplications(ctx context.Context, owner, app1Id, app2Id core.ID) (*Result, error) {
	if app1Id == app2Id {
		return nil, ErrSameApplication
	}

	app1, err := c.applicationRepository.GetApplication(ctx, owner, app1Id)
	if err != nil {
		return nil, err
	}
	app2, err := c.applicationRepository.GetApplication(ctx, owner, app2Id)
	if err != nil {
		return nil, err
	}

	comps1, err := c.componentRepository.GetApplicationComponents(ctx, app1.Id)
	if err != nil {
		c.logger.Error("error fetching components", "application", app1.Id, "err", err)
		return nil, err
	}
	comps2, err := c.componentRepository.GetApplicationComponents(ctx, app2.Id)
	if err != nil {
		c.logger.Error("error fetching components", "application", app2.Id, "err", err)
		return nil, err
	}

	return Compare(app1, comps1, app2, comps2), nil
}
