package badger

import (
	"context"
	"slices"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/bomvault/core"
	"github.com/poiesic/bomvault/storage"
)

// ApplicationRepository implements storage.ApplicationRepository for BadgerDB.
type ApplicationRepository struct {
	backend *Backend
	idSeq   *badger.Sequence
}

var _ storage.ApplicationRepository = (*ApplicationRepository)(nil)

// NewApplicationRepository creates a new ApplicationRepository.
func NewApplicationRepository(backend *Backend) (*ApplicationRepository, error) {
	idSeq, err := backend.GetSequence(appRecordIDSeq)
	if err != nil {
		return nil, err
	}

	return &ApplicationRepository{
		backend: backend,
		idSeq:   idSeq,
	}, nil
}

// Close releases the ID sequence.
func (r *ApplicationRepository) Close() error {
	return r.idSeq.Release()
}

// WithTransaction delegates to the backend.
func (r *ApplicationRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// AddApplications adds one or more applications to storage.
func (r *ApplicationRepository) AddApplications(ctx context.Context, apps ...*core.Application) ([]*core.Application, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, app := range apps {
			if app.Id == 0 {
				nextID, err := r.idSeq.Next()
				if err != nil {
					return err
				}
				// BadgerDB sequences can return 0 on first call, so we skip it
				if nextID == 0 {
					nextID, err = r.idSeq.Next()
					if err != nil {
						return err
					}
				}
				app.Id = core.ID(nextID)
			}

			if app.CreatedAt.IsZero() {
				app.CreatedAt = time.Now().UTC()
			}

			// Store primary record
			key := makeAppRecordKey(app.Id)
			value := storage.MarshalApplication(app)
			if err := tx.Set(key, value); err != nil {
				return err
			}

			// Update owner index
			ownerKey := makeAppOwnerKey(app.OwnerId, app.Id)
			if err := tx.Set(ownerKey, storage.MarshalID(app.Id)); err != nil {
				return err
			}

			// Update file-hash index
			if app.FileHash != "" {
				hashKey := makeAppFileHashKey(app.OwnerId, app.FileHash)
				if err := tx.Set(hashKey, storage.MarshalID(app.Id)); err != nil {
					return err
				}
			}
		}
		return tx.Commit()
	}, true)

	return apps, err
}

// UpdateApplications updates existing applications.
func (r *ApplicationRepository) UpdateApplications(ctx context.Context, apps ...*core.Application) ([]*core.Application, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, app := range apps {
			key := makeAppRecordKey(app.Id)

			// Read old record to detect index changes
			old, err := r.readApplication(tx, key)
			if err != nil {
				return err
			}
			if old == nil {
				return storage.ErrNotFound
			}

			// Store updated record
			value := storage.MarshalApplication(app)
			if err := tx.Set(key, value); err != nil {
				return err
			}

			// Move file-hash index if the hash changed
			if old.FileHash != app.FileHash {
				if old.FileHash != "" {
					oldHashKey := makeAppFileHashKey(old.OwnerId, old.FileHash)
					if err := tx.Delete(oldHashKey); err != nil {
						return err
					}
				}
				if app.FileHash != "" {
					newHashKey := makeAppFileHashKey(app.OwnerId, app.FileHash)
					if err := tx.Set(newHashKey, storage.MarshalID(app.Id)); err != nil {
						return err
					}
				}
			}
		}
		return tx.Commit()
	}, true)

	return apps, err
}

// DeleteApplication removes an application, its indexes, and its inventory links.
func (r *ApplicationRepository) DeleteApplication(ctx context.Context, owner, id core.ID) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeAppRecordKey(id)

		// Read record to get metadata for index cleanup
		app, err := r.readApplication(tx, key)
		if err != nil {
			return err
		}
		if app == nil || app.OwnerId != owner {
			return storage.ErrNotFound
		}

		// Delete from owner index
		ownerKey := makeAppOwnerKey(app.OwnerId, app.Id)
		if err := tx.Delete(ownerKey); err != nil {
			return err
		}

		// Delete from file-hash index
		if app.FileHash != "" {
			hashKey := makeAppFileHashKey(app.OwnerId, app.FileHash)
			if err := tx.Delete(hashKey); err != nil {
				return err
			}
		}

		// Delete inventory links. Components are shared across the owner's
		// applications and are retained.
		if err := deleteAppComponentLinks(tx, id); err != nil {
			return err
		}

		// Delete primary record
		if err := tx.Delete(key); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// GetApplication retrieves a single application by ID, scoped to owner.
func (r *ApplicationRepository) GetApplication(ctx context.Context, owner, id core.ID) (*core.Application, error) {
	var result *core.Application
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeAppRecordKey(id)
		var err error
		result, err = r.readApplication(tx, key)
		if err != nil {
			return err
		}
		if result == nil || result.OwnerId != owner {
			result = nil
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// ListApplications retrieves all of an owner's applications in creation order.
func (r *ApplicationRepository) ListApplications(ctx context.Context, owner core.ID) ([]*core.Application, error) {
	results := []*core.Application{}
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		startKey := makePartialAppOwnerKey(owner)
		iter := tx.NewIterator(badger.DefaultIteratorOptions)
		defer iter.Close()

		for iter.Seek(startKey); iter.Valid(); iter.Next() {
			key := iter.Item().Key()
			// Check if key still has our owner prefix
			if len(key) < len(startKey) {
				break
			}
			if slices.Compare(key[:len(startKey)], startKey) != 0 {
				break
			}

			// Read the ID from the index
			var appID core.ID
			if err := iter.Item().Value(func(val []byte) error {
				var err error
				appID, err = storage.UnmarshalID(val)
				return err
			}); err != nil {
				return err
			}

			// Look up the full record
			recordKey := makeAppRecordKey(appID)
			app, err := r.readApplication(tx, recordKey)
			if err != nil {
				return err
			}
			if app != nil {
				results = append(results, app)
			}
		}
		return nil
	}, false)

	return results, err
}

// FindApplicationByFileHash finds an owner's application by artifact hash.
func (r *ApplicationRepository) FindApplicationByFileHash(ctx context.Context, owner core.ID, fileHash string) (*core.Application, error) {
	var result *core.Application
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		hashKey := makeAppFileHashKey(owner, fileHash)
		item, err := tx.Get(hashKey)
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return storage.ErrNotFound
			}
			return err
		}

		var appID core.ID
		if err := item.Value(func(val []byte) error {
			var err error
			appID, err = storage.UnmarshalID(val)
			return err
		}); err != nil {
			return err
		}

		recordKey := makeAppRecordKey(appID)
		result, err = r.readApplication(tx, recordKey)
		if err != nil {
			return err
		}
		if result == nil {
			return storage.ErrNotFound
		}
		return nil
	}, false)
	return result, err
}

// readApplication reads an application record from the transaction.
func (r *ApplicationRepository) readApplication(tx *badger.Txn, key []byte) (*core.Application, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var app *core.Application
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		app, unmarshalErr = storage.UnmarshalApplication(val)
		return unmarshalErr
	})
	return app, err
}

// deleteAppComponentLinks removes every inventory link row for an application.
func deleteAppComponentLinks(tx *badger.Txn, appID core.ID) error {
	startKey := makePartialAppComponentKey(appID)

	opts := badger.DefaultIteratorOptions
	opts.PrefetchValues = false
	iter := tx.NewIterator(opts)
	defer iter.Close()

	var keys [][]byte
	for iter.Seek(startKey); iter.Valid(); iter.Next() {
		key := iter.Item().Key()
		if len(key) < len(startKey) {
			break
		}
		if slices.Compare(key[:len(startKey)], startKey) != 0 {
			break
		}
		keys = append(keys, iter.Item().KeyCopy(nil))
	}

	for _, key := range keys {
		if err := tx.Delete(key); err != nil {
			return err
		}
	}
	return nil
}
