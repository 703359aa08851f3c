package ingestion

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/poiesic/bomvault/core"
	"github.com/poiesic/bomvault/sbom"
	"github.com/poiesic/bomvault/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cycloneDXFixture = `{
	"bomFormat": "CycloneDX",
	"components": [
		{"name": "okhttp", "version": "4.12.0", "type": "library",
		 "purl": "pkg:maven/com.squareup.okhttp3/okhttp@4.12.0",
		 "licenses": [{"license": {"id": "Apache-2.0"}}]},
		{"name": "kotlin-stdlib", "version": "1.9.20", "type": "library"}
	]
}`

const spdxFixture = `{
	"spdxVersion": "SPDX-2.3",
	"packages": [
		{"name": "okhttp", "versionInfo": "4.12.0"},
		{"name": "kotlin-stdlib", "versionInfo": "1.9.20"}
	]
}`

// mockScanner returns canned documents instead of shelling out.
type mockScanner struct {
	cyclonedx []byte
	spdx      []byte
	scanErr   error
	scans     int
}

func (m *mockScanner) Scan(_ context.Context, _ string, format string) ([]byte, error) {
	m.scans++
	if m.scanErr != nil {
		return nil, m.scanErr
	}
	if format == sbom.OutputSPDX {
		return m.spdx, nil
	}
	return m.cyclonedx, nil
}

func (m *mockScanner) Installed() bool { return true }

func newTestScanner() *mockScanner {
	return &mockScanner{
		cyclonedx: []byte(cycloneDXFixture),
		spdx:      []byte(spdxFixture),
	}
}

func writeArtifact(t *testing.T, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))
	return path
}

func TestNewPipeline(t *testing.T) {
	appRepo, compRepo, backend, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	defer func() {
		compRepo.Close()
		appRepo.Close()
		backend.Close()
	}()

	scanner := newTestScanner()

	t.Run("valid configuration", func(t *testing.T) {
		p, err := NewPipeline(appRepo, compRepo, scanner)
		require.NoError(t, err)
		defer p.Release()
		assert.NotNil(t, p)
	})

	t.Run("with pool size", func(t *testing.T) {
		p, err := NewPipeline(appRepo, compRepo, scanner, WithPoolSize(2))
		require.NoError(t, err)
		defer p.Release()
		assert.NotNil(t, p)
	})

	t.Run("nil application repository", func(t *testing.T) {
		_, err := NewPipeline(nil, compRepo, scanner)
		assert.Equal(t, ErrApplicationRepositoryRequired, err)
	})

	t.Run("nil component repository", func(t *testing.T) {
		_, err := NewPipeline(appRepo, nil, scanner)
		assert.Equal(t, ErrComponentRepositoryRequired, err)
	})

	t.Run("nil scanner", func(t *testing.T) {
		_, err := NewPipeline(appRepo, compRepo, nil)
		assert.Equal(t, ErrScannerRequired, err)
	})
}

func TestImport(t *testing.T) {
	appRepo, compRepo, backend, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	defer func() {
		compRepo.Close()
		appRepo.Close()
		backend.Close()
	}()

	pipeline, err := NewPipeline(appRepo, compRepo, newTestScanner())
	require.NoError(t, err)
	defer pipeline.Release()

	ctx := context.Background()
	owner := core.OwnerID("user1")
	artifact := writeArtifact(t, "myapp.apk", "binary-contents")

	app, err := pipeline.Import(ctx, owner, artifact, nil)
	require.NoError(t, err)

	t.Run("application completed", func(t *testing.T) {
		assert.Equal(t, core.StatusCompleted, app.Status)
		assert.Equal(t, "myapp", app.Name, "name defaults to the filename stem")
		assert.Equal(t, "myapp.apk", app.OriginalFilename)
		assert.Equal(t, sbom.PlatformAndroid, app.Platform)
		assert.Equal(t, int64(len("binary-contents")), app.FileSize)
		assert.Len(t, app.FileHash, 64, "hex blake2b-256")
		assert.Equal(t, 2, app.ComponentCount)
		assert.Equal(t, core.FormatCycloneDX, app.SBOMFormat)
		assert.JSONEq(t, cycloneDXFixture, string(app.CycloneDX))
		assert.False(t, app.AnalyzedAt.IsZero())
	})

	t.Run("components stored and linked", func(t *testing.T) {
		inventory, err := compRepo.GetApplicationComponents(ctx, app.Id)
		require.NoError(t, err)
		require.Len(t, inventory, 2)

		names := []string{inventory[0].Name, inventory[1].Name}
		assert.ElementsMatch(t, []string{"okhttp", "kotlin-stdlib"}, names)
		for _, comp := range inventory {
			assert.Equal(t, owner, comp.OwnerId)
		}

		refs, err := compRepo.GetComponentRefs(ctx, app.Id)
		require.NoError(t, err)
		require.Len(t, refs, 2)
		assert.Equal(t, "syft", refs[0].DetectedBy)
	})

	t.Run("stored record matches returned one", func(t *testing.T) {
		stored, err := appRepo.GetApplication(ctx, owner, app.Id)
		require.NoError(t, err)
		assert.Equal(t, core.StatusCompleted, stored.Status)
		assert.Equal(t, 2, stored.ComponentCount)
	})
}

func TestImport_Options(t *testing.T) {
	appRepo, compRepo, backend, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	defer func() {
		compRepo.Close()
		appRepo.Close()
		backend.Close()
	}()

	pipeline, err := NewPipeline(appRepo, compRepo, newTestScanner())
	require.NoError(t, err)
	defer pipeline.Release()

	ctx := context.Background()
	owner := core.OwnerID("user1")
	artifact := writeArtifact(t, "build-1234.apk", "contents")

	app, err := pipeline.Import(ctx, owner, artifact, &ImportOptions{
		Name:         "My App",
		Version:      "2.1.0",
		Manufacturer: "Acme",
	})
	require.NoError(t, err)

	assert.Equal(t, "My App", app.Name)
	assert.Equal(t, "2.1.0", app.Version)
	assert.Equal(t, "Acme", app.Manufacturer)
}

func TestImport_DuplicateRejected(t *testing.T) {
	appRepo, compRepo, backend, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	defer func() {
		compRepo.Close()
		appRepo.Close()
		backend.Close()
	}()

	pipeline, err := NewPipeline(appRepo, compRepo, newTestScanner())
	require.NoError(t, err)
	defer pipeline.Release()

	ctx := context.Background()
	owner := core.OwnerID("user1")

	first := writeArtifact(t, "one.apk", "same-contents")
	_, err = pipeline.Import(ctx, owner, first, nil)
	require.NoError(t, err)

	t.Run("same content is rejected for the same owner", func(t *testing.T) {
		// different filename, identical bytes
		second := writeArtifact(t, "two.apk", "same-contents")
		_, err := pipeline.Import(ctx, owner, second, nil)
		assert.ErrorIs(t, err, ErrDuplicateUpload)
	})

	t.Run("another owner may upload the same content", func(t *testing.T) {
		other := writeArtifact(t, "three.apk", "same-contents")
		app, err := pipeline.Import(ctx, core.OwnerID("user2"), other, nil)
		require.NoError(t, err)
		assert.Equal(t, core.StatusCompleted, app.Status)
	})
}

func TestImport_ScanFailure(t *testing.T) {
	appRepo, compRepo, backend, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	defer func() {
		compRepo.Close()
		appRepo.Close()
		backend.Close()
	}()

	scanner := newTestScanner()
	scanner.scanErr = errors.New("unreadable archive")

	pipeline, err := NewPipeline(appRepo, compRepo, scanner)
	require.NoError(t, err)
	defer pipeline.Release()

	ctx := context.Background()
	owner := core.OwnerID("user1")
	artifact := writeArtifact(t, "corrupt.apk", "junk")

	app, err := pipeline.Import(ctx, owner, artifact, nil)
	require.NoError(t, err, "analysis failure is recorded, not returned")

	assert.Equal(t, core.StatusFailed, app.Status)
	assert.Contains(t, app.ErrorMessage, "unreadable archive")

	stored, err := appRepo.GetApplication(ctx, owner, app.Id)
	require.NoError(t, err)
	assert.Equal(t, core.StatusFailed, stored.Status)
	assert.Equal(t, 0, stored.ComponentCount)
}

func TestImport_MissingFile(t *testing.T) {
	appRepo, compRepo, backend, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	defer func() {
		compRepo.Close()
		appRepo.Close()
		backend.Close()
	}()

	pipeline, err := NewPipeline(appRepo, compRepo, newTestScanner())
	require.NoError(t, err)
	defer pipeline.Release()

	_, err = pipeline.Import(context.Background(), core.OwnerID("user1"), "/does/not/exist.apk", nil)
	assert.Error(t, err)
}

func TestSubmit(t *testing.T) {
	appRepo, compRepo, backend, err := badger.NewMemoryRepositories()
	require.NoError(t, err)
	defer func() {
		compRepo.Close()
		appRepo.Close()
		backend.Close()
	}()

	pipeline, err := NewPipeline(appRepo, compRepo, newTestScanner(), WithPoolSize(1))
	require.NoError(t, err)

	ctx := context.Background()
	owner := core.OwnerID("user1")
	artifact := writeArtifact(t, "async.apk", "async-contents")

	app, err := pipeline.Submit(ctx, owner, artifact, nil)
	require.NoError(t, err)
	assert.Equal(t, core.StatusProcessing, app.Status)

	require.Eventually(t, func() bool {
		stored, err := appRepo.GetApplication(ctx, owner, app.Id)
		return err == nil && stored.Status == core.StatusCompleted
	}, 5*time.Second, 10*time.Millisecond)

	pipeline.Release()
}
