package ingestion

import (
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/go-crypt/x/blake2b"
	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/bomvault/core"
	"github.com/poiesic/bomvault/sbom"
	"github.com/poiesic/bomvault/storage"
)

// Pipeline orchestrates artifact ingestion and SBOM analysis.
type Pipeline struct {
	appRepository  storage.ApplicationRepository
	compRepository storage.ComponentRepository
	scanner        sbom.Scanner
	scanPool       *ants.Pool
	logger         *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for background analysis.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}

		if p.scanPool != nil {
			p.scanPool.Release()
		}

		scanPool, err := ants.NewPool(size)
		if err != nil {
			return err
		}

		p.scanPool = scanPool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates a new ingestion pipeline.
func NewPipeline(
	appRepository storage.ApplicationRepository,
	compRepository storage.ComponentRepository,
	scanner sbom.Scanner,
	opts ...Option,
) (*Pipeline, error) {
	if appRepository == nil {
		return nil, ErrApplicationRepositoryRequired
	}
	if compRepository == nil {
		return nil, ErrComponentRepositoryRequired
	}
	if scanner == nil {
		return nil, ErrScannerRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}

	scanPool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		appRepository:  appRepository,
		compRepository: compRepository,
		scanner:        scanner,
		scanPool:       scanPool,
		logger:         slog.Default(),
	}

	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	return p, nil
}

// ImportOptions holds optional application metadata supplied at upload time.
// Zero-value fields fall back to values derived from the artifact.
type ImportOptions struct {
	Name         string
	Version      string
	BinaryType   string
	Manufacturer string
	Supplier     string
}

// Import ingests an artifact and analyzes it synchronously.
// Returns ErrDuplicateUpload if the owner already uploaded the same content.
// Analysis failures are recorded on the application rather than returned:
// the application comes back in failed state with ErrorMessage set.
func (p *Pipeline) Import(ctx context.Context, owner core.ID, filePath string, opts *ImportOptions) (*core.Application, error) {
	app, err := p.record(ctx, owner, filePath, opts)
	if err != nil {
		return nil, err
	}

	p.analyze(ctx, app, filePath)
	return app, nil
}

// Submit ingests an artifact and queues analysis on the worker pool.
// The returned application is in processing state; poll it for completion.
func (p *Pipeline) Submit(ctx context.Context, owner core.ID, filePath string, opts *ImportOptions) (*core.Application, error) {
	app, err := p.record(ctx, owner, filePath, opts)
	if err != nil {
		return nil, err
	}

	submitted := *app
	if err := p.scanPool.Submit(func() {
		p.analyze(context.Background(), &submitted, filePath)
	}); err != nil {
		return nil, err
	}

	return app, nil
}

// Release releases the worker pool, waiting for queued analysis to finish.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	if p.scanPool != nil {
		p.scanPool.Release()
	}
}

// record hashes the artifact, rejects duplicates, and stores the
// application in processing state.
func (p *Pipeline) record(ctx context.Context, owner core.ID, filePath string, opts *ImportOptions) (*core.Application, error) {
	if opts == nil {
		opts = &ImportOptions{}
	}

	fileHash, fileSize, err := hashFile(filePath)
	if err != nil {
		return nil, err
	}

	existing, err := p.appRepository.FindApplicationByFileHash(ctx, owner, fileHash)
	if err != nil && err != storage.ErrNotFound {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: %s", ErrDuplicateUpload, existing.Name)
	}

	filename := filepath.Base(filePath)
	name := opts.Name
	if name == "" {
		name = strings.TrimSuffix(filename, filepath.Ext(filename))
	}

	app := &core.Application{
		OwnerId:          owner,
		Name:             name,
		Version:          opts.Version,
		Platform:         sbom.DetectPlatformFromFilename(filename),
		BinaryType:       opts.BinaryType,
		Manufacturer:     opts.Manufacturer,
		Supplier:         opts.Supplier,
		OriginalFilename: filename,
		FileSize:         fileSize,
		FileHash:         fileHash,
		Status:           core.StatusProcessing,
	}

	if err := core.ValidateApplication(app); err != nil {
		return nil, err
	}

	if _, err := p.appRepository.AddApplications(ctx, app); err != nil {
		return nil, err
	}

	p.logger.Info("recorded upload", "app", app.Id, "name", app.Name, "platform", app.Platform)
	return app, nil
}

// analyze runs the scanner and stores the extracted inventory.
// Failures are recorded on the application record.
func (p *Pipeline) analyze(ctx context.Context, app *core.Application, filePath string) {
	cyclonedx, err := p.scanner.Scan(ctx, filePath, sbom.OutputCycloneDX)
	if err != nil {
		p.fail(ctx, app, err)
		return
	}

	// SPDX is stored alongside for export; its absence is not fatal
	spdx, err := p.scanner.Scan(ctx, filePath, sbom.OutputSPDX)
	if err != nil {
		p.logger.Warn("spdx generation failed", "app", app.Id, "err", err)
		spdx = nil
	}

	comps, err := sbom.ParseCycloneDX(cyclonedx)
	if err != nil {
		p.fail(ctx, app, err)
		return
	}
	if len(comps) == 0 && spdx != nil {
		if comps, err = sbom.ParseSPDX(spdx); err != nil {
			p.fail(ctx, app, err)
			return
		}
	}

	if app.Platform == sbom.PlatformUnknown {
		if platform, derr := sbom.DetectPlatformFromDocument(cyclonedx); derr == nil {
			app.Platform = platform
		}
	}

	for _, comp := range comps {
		comp.OwnerId = app.OwnerId
	}
	if _, err := p.compRepository.AddComponents(ctx, comps...); err != nil {
		p.fail(ctx, app, err)
		return
	}

	refs := make([]*core.ComponentRef, len(comps))
	for i, comp := range comps {
		refs[i] = &core.ComponentRef{
			ComponentId:      comp.Id,
			RelationshipType: "direct",
			Depth:            0,
			Confidence:       1.0,
			DetectedBy:       "syft",
		}
	}
	if err := p.compRepository.LinkComponents(ctx, app.Id, refs...); err != nil {
		p.fail(ctx, app, err)
		return
	}

	app.Status = core.StatusCompleted
	app.ErrorMessage = ""
	app.SBOMFormat = core.FormatCycloneDX
	app.CycloneDX = cyclonedx
	app.SPDX = spdx
	app.ComponentCount = len(comps)
	app.AnalyzedAt = time.Now().UTC()

	if _, err := p.appRepository.UpdateApplications(ctx, app); err != nil {
		p.logger.Error("error storing analysis result", "app", app.Id, "err", err)
		return
	}

	p.logger.Info("analysis completed", "app", app.Id, "components", len(comps))
}

// fail marks the application failed with the cause.
func (p *Pipeline) fail(ctx context.Context, app *core.Application, cause error) {
	p.logger.Error("analysis failed", "app", app.Id, "err", cause)

	app.Status = core.StatusFailed
	app.ErrorMessage = cause.Error()

	if _, err := p.appRepository.UpdateApplications(ctx, app); err != nil {
		p.logger.Error("error storing failure state", "app", app.Id, "err", err)
	}
}

// hashFile computes the hex BLAKE2b-256 digest and size of a file.
func hashFile(filePath string) (string, int64, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return "", 0, err
	}
	defer f.Close()

	h, err := blake2b.New(32, nil)
	if err != nil {
		return "", 0, err
	}

	size, err := io.Copy(h, f)
	if err != nil {
		return "", 0, err
	}

	return hex.EncodeToString(h.Sum(nil)), size, nil
}
