package badger

import (
	"context"
	"testing"

	"github.com/poiesic/bomvault/core"
	"github.com/poiesic/bomvault/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddComponents(t *testing.T) {
	appRepo, compRepo, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer func() {
		compRepo.Close()
		appRepo.Close()
		backend.Close()
	}()

	ctx := context.Background()
	owner := core.OwnerID("user1")

	t.Run("assigns content ids", func(t *testing.T) {
		comp := &core.Component{OwnerId: owner, Name: "openssl", Version: "3.0.1", Type: "library"}
		_, err := compRepo.AddComponents(ctx, comp)
		require.NoError(t, err)
		assert.Equal(t, comp.ContentID(), comp.Id)
		assert.False(t, comp.CreatedAt.IsZero())
	})

	t.Run("re-adding keeps the original timestamp", func(t *testing.T) {
		first := &core.Component{OwnerId: owner, Name: "zlib", Version: "1.2.13", Type: "library"}
		_, err := compRepo.AddComponents(ctx, first)
		require.NoError(t, err)

		second := &core.Component{OwnerId: owner, Name: "zlib", Version: "1.2.13", Type: "library"}
		_, err = compRepo.AddComponents(ctx, second)
		require.NoError(t, err)

		assert.Equal(t, first.Id, second.Id)
		assert.True(t, first.CreatedAt.Equal(second.CreatedAt))
	})

	t.Run("same name and version for different owners are distinct", func(t *testing.T) {
		mine := &core.Component{OwnerId: owner, Name: "curl", Version: "8.4.0", Type: "library"}
		theirs := &core.Component{OwnerId: core.OwnerID("user2"), Name: "curl", Version: "8.4.0", Type: "library"}
		_, err := compRepo.AddComponents(ctx, mine, theirs)
		require.NoError(t, err)
		assert.NotEqual(t, mine.Id, theirs.Id)
	})
}

func TestGetComponents(t *testing.T) {
	appRepo, compRepo, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer func() {
		compRepo.Close()
		appRepo.Close()
		backend.Close()
	}()

	ctx := context.Background()
	owner := core.OwnerID("user1")

	comps := []*core.Component{
		{OwnerId: owner, Name: "openssl", Version: "3.0.1", Type: "library"},
		{OwnerId: owner, Name: "zlib", Version: "1.2.13", Type: "library"},
	}
	_, err = compRepo.AddComponents(ctx, comps...)
	require.NoError(t, err)

	t.Run("get one", func(t *testing.T) {
		got, err := compRepo.GetComponent(ctx, comps[0].Id)
		require.NoError(t, err)
		assert.Equal(t, "openssl", got.Name)
	})

	t.Run("get one missing", func(t *testing.T) {
		_, err := compRepo.GetComponent(ctx, core.IDFromContent("missing"))
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("get many skips missing", func(t *testing.T) {
		got, err := compRepo.GetComponents(ctx, comps[0].Id, core.IDFromContent("missing"), comps[1].Id)
		require.NoError(t, err)
		assert.Len(t, got, 2)
	})
}

func TestLinkComponents(t *testing.T) {
	appRepo, compRepo, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer func() {
		compRepo.Close()
		appRepo.Close()
		backend.Close()
	}()

	ctx := context.Background()
	owner := core.OwnerID("user1")

	app := &core.Application{OwnerId: owner, Name: "chrome", Status: core.StatusCompleted}
	_, err = appRepo.AddApplications(ctx, app)
	require.NoError(t, err)

	comps := []*core.Component{
		{OwnerId: owner, Name: "openssl", Version: "3.0.1", Type: "library"},
		{OwnerId: owner, Name: "zlib", Version: "1.2.13", Type: "library"},
	}
	_, err = compRepo.AddComponents(ctx, comps...)
	require.NoError(t, err)

	t.Run("links and reads back", func(t *testing.T) {
		refs := []*core.ComponentRef{
			{ComponentId: comps[0].Id, RelationshipType: "direct", Confidence: 1.0, DetectedBy: "syft"},
			{ComponentId: comps[1].Id, RelationshipType: "direct", Confidence: 1.0, DetectedBy: "syft"},
		}
		require.NoError(t, compRepo.LinkComponents(ctx, app.Id, refs...))

		stored, err := compRepo.GetComponentRefs(ctx, app.Id)
		require.NoError(t, err)
		assert.Len(t, stored, 2)

		inventory, err := compRepo.GetApplicationComponents(ctx, app.Id)
		require.NoError(t, err)
		require.Len(t, inventory, 2)
		names := []string{inventory[0].Name, inventory[1].Name}
		assert.ElementsMatch(t, []string{"openssl", "zlib"}, names)
	})

	t.Run("relinking overwrites the link row", func(t *testing.T) {
		ref := &core.ComponentRef{ComponentId: comps[0].Id, RelationshipType: "transitive", Depth: 1, DetectedBy: "syft"}
		require.NoError(t, compRepo.LinkComponents(ctx, app.Id, ref))

		stored, err := compRepo.GetComponentRefs(ctx, app.Id)
		require.NoError(t, err)
		assert.Len(t, stored, 2)
		for _, r := range stored {
			if r.ComponentId == comps[0].Id {
				assert.Equal(t, "transitive", r.RelationshipType)
				assert.Equal(t, 1, r.Depth)
			}
		}
	})

	t.Run("linking an unknown component fails", func(t *testing.T) {
		ref := &core.ComponentRef{ComponentId: core.IDFromContent("ghost"), RelationshipType: "direct"}
		err := compRepo.LinkComponents(ctx, app.Id, ref)
		assert.ErrorIs(t, err, storage.ErrNotFound)
	})

	t.Run("unlink clears the inventory", func(t *testing.T) {
		require.NoError(t, compRepo.UnlinkApplication(ctx, app.Id))

		refs, err := compRepo.GetComponentRefs(ctx, app.Id)
		require.NoError(t, err)
		assert.Empty(t, refs)

		inventory, err := compRepo.GetApplicationComponents(ctx, app.Id)
		require.NoError(t, err)
		assert.Empty(t, inventory)
	})
}

func TestLinks_IsolatedPerApplication(t *testing.T) {
	appRepo, compRepo, backend, err := NewMemoryRepositories()
	require.NoError(t, err)
	defer func() {
		compRepo.Close()
		appRepo.Close()
		backend.Close()
	}()

	ctx := context.Background()
	owner := core.OwnerID("user1")

	app1 := &core.Application{OwnerId: owner, Name: "one", Status: core.StatusCompleted}
	app2 := &core.Application{OwnerId: owner, Name: "two", Status: core.StatusCompleted}
	_, err = appRepo.AddApplications(ctx, app1, app2)
	require.NoError(t, err)

	comp := &core.Component{OwnerId: owner, Name: "openssl", Version: "3.0.1", Type: "library"}
	_, err = compRepo.AddComponents(ctx, comp)
	require.NoError(t, err)

	require.NoError(t, compRepo.LinkComponents(ctx, app1.Id,
		&core.ComponentRef{ComponentId: comp.Id, RelationshipType: "direct", DetectedBy: "syft"}))

	inventory1, err := compRepo.GetApplicationComponents(ctx, app1.Id)
	require.NoError(t, err)
	assert.Len(t, inventory1, 1)

	inventory2, err := compRepo.GetApplicationComponents(ctx, app2.Id)
	require.NoError(t, err)
	assert.Empty(t, inventory2)
}
