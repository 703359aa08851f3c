package compare

import (
	"context"
	"testing"

	"github.com/poiesic/bomvault/core"
	"github.com/poiesic/bomvault/storage"
	"github.com/poiesic/bomvault/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewComparer(t *testing.T) {
	appRepo, compRepo, backend, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	defer func() {
		compRepo.Close()
		appRepo.Close()
		backend.Close()
	}()

	t.Run("valid configuration", func(t *testing.T) {
		comparer, err := NewComparer(appRepo, compRepo)
		require.NoError(t, err)
		assert.NotNil(t, comparer)
	})

	t.Run("nil application repository", func(t *testing.T) {
		_, err := NewComparer(nil, compRepo)
		assert.Equal(t, ErrApplicationRepositoryRequired, err)
	})

	t.Run("nil component repository", func(t *testing.T) {
		_, err := NewComparer(appRepo, nil)
		assert.Equal(t, ErrComponentRepositoryRequired, err)
	})
}

func TestCompareApplications(t *testing.T) {
	appRepo, compRepo, backend, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	defer func() {
		compRepo.Close()
		appRepo.Close()
		backend.Close()
	}()

	ctx := context.Background()
	owner := core.OwnerID("user1")

	app1 := &core.Application{OwnerId: owner, Name: "app-v1", Status: core.StatusCompleted}
	app2 := &core.Application{OwnerId: owner, Name: "app-v2", Status: core.StatusCompleted}
	_, err = appRepo.AddApplications(ctx, app1, app2)
	require.NoError(t, err)

	comps := []*core.Component{
		{OwnerId: owner, Name: "openssl", Version: "3.0.1", Type: "library"},
		{OwnerId: owner, Name: "openssl", Version: "3.0.2", Type: "library"},
		{OwnerId: owner, Name: "zlib", Version: "1.2.13", Type: "library"},
	}
	_, err = compRepo.AddComponents(ctx, comps...)
	require.NoError(t, err)

	link := func(appID core.ID, cs ...*core.Component) {
		refs := make([]*core.ComponentRef, len(cs))
		for i, c := range cs {
			refs[i] = &core.ComponentRef{ComponentId: c.Id, RelationshipType: "direct", DetectedBy: "syft"}
		}
		require.NoError(t, compRepo.LinkComponents(ctx, appID, refs...))
	}
	link(app1.Id, comps[0], comps[2]) // openssl 3.0.1, zlib
	link(app2.Id, comps[1], comps[2]) // openssl 3.0.2, zlib

	comparer, err := NewComparer(appRepo, compRepo)
	require.NoError(t, err)

	t.Run("diffs resolved inventories", func(t *testing.T) {
		result, err := comparer.CompareApplications(ctx, owner, app1.Id, app2.Id)
		require.NoError(t, err)

		assert.Equal(t, 1, result.Summary.TotalCommon)
		assert.Equal(t, 1, result.Summary.TotalVersionDifferences)
		assert.Equal(t, 50.0, result.Summary.SimilarityPercentage)
		assert.Equal(t, "app-v1", result.App1Name)
		assert.Equal(t, "app-v2", result.App2Name)
	})

	t.Run("self comparison is rejected", func(t *testing.T) {
		_, err := comparer.CompareApplications(ctx, owner, app1.Id, app1.Id)
		assert.Equal(t, ErrSameApplication, err)
	})

	t.Run("unknown application", func(t *testing.T) {
		_, err := comparer.CompareApplications(ctx, owner, app1.Id, core.ID(99999))
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("other owner's application is invisible", func(t *testing.T) {
		_, err := comparer.CompareApplications(ctx, core.OwnerID("user2"), app1.Id, app2.Id)
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})
}
