// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package bomvault

import (
	"log/slog"

	"github.com/poiesic/bomvault/compare"
	"github.com/poiesic/bomvault/ingestion"
	"github.com/poiesic/bomvault/sbom"
	"github.com/poiesic/bomvault/search"
	"github.com/poiesic/bomvault/storage"
	"github.com/poiesic/bomvault/storage/badger"
)

// Database is the top-level handle tying storage, search, comparison, and
// ingestion together over one BadgerDB instance.
type Database struct {
	backend  *badger.Backend
	appRepo  storage.ApplicationRepository
	compRepo storage.ComponentRepository
	scanner  sbom.Scanner
	logger   *slog.Logger
}

// DatabaseOption configures a Database.
type DatabaseOption func(*databaseOptions)

type databaseOptions struct {
	scanner  sbom.Scanner
	inMemory bool
}

// WithScanner overrides the SBOM scanner. Default is the syft CLI.
func WithScanner(scanner sbom.Scanner) DatabaseOption {
	return func(o *databaseOptions) {
		o.scanner = scanner
	}
}

// WithInMemory opens the database without on-disk storage. Used in tests.
func WithInMemory() DatabaseOption {
	return func(o *databaseOptions) {
		o.inMemory = true
	}
}

// NewDatabase opens (or creates) a database at filePath.
func NewDatabase(filePath string, opts ...DatabaseOption) (*Database, error) {
	// Apply options
	options := &databaseOptions{}
	for _, opt := range opts {
		opt(options)
	}

	scanner := options.scanner
	if scanner == nil {
		syft, err := sbom.NewSyftScanner()
		if err != nil {
			return nil, err
		}
		scanner = syft
	}

	// Open backend
	backend, err := badger.OpenBackend(filePath, options.inMemory)
	if err != nil {
		return nil, err
	}

	// Create application repository
	appRepo, err := badger.NewApplicationRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	// Create component repository
	compRepo, err := badger.NewComponentRepository(backend)
	if err != nil {
		appRepo.Close()
		backend.Close()
		return nil, err
	}

	return &Database{
		backend:  backend,
		appRepo:  appRepo,
		compRepo: compRepo,
		scanner:  scanner,
		logger:   slog.Default(),
	}, nil
}

func (db *Database) Close() error {
	if err := db.compRepo.Close(); err != nil {
		db.logger.Error("error closing component repository", "err", err)
		return err
	}
	if err := db.appRepo.Close(); err != nil {
		db.logger.Error("error closing application repository", "err", err)
		return err
	}

	if err := db.backend.Close(); err != nil {
		db.logger.Error("error closing backend storage", "err", err)
		return err
	}
	return nil
}

func (db *Database) ApplicationRepository() storage.ApplicationRepository {
	return db.appRepo
}

func (db *Database) ComponentRepository() storage.ComponentRepository {
	return db.compRepo
}

func (db *Database) NewIngestionPipeline(opts ...ingestion.Option) (*ingestion.Pipeline, error) {
	return ingestion.NewPipeline(db.appRepo, db.compRepo, db.scanner, opts...)
}

func (db *Database) NewSearcher(opts ...search.Option) (*search.Searcher, error) {
	return search.NewSearcher(db.appRepo, opts...)
}

func (db *Database) NewComparer(opts ...compare.Option) (*compare.Comparer, error) {
	return compare.NewComparer(db.appRepo, db.compRepo, opts...)
}
