package badger

import (
	"context"
	"slices"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/bomvault/core"
	"github.com/poiesic/bomvault/storage"
)

// ComponentRepository implements storage.ComponentRepository for BadgerDB.
type ComponentRepository struct {
	backend *Backend
}

var _ storage.ComponentRepository = (*ComponentRepository)(nil)

// NewComponentRepository creates a new ComponentRepository.
// Components use content-based IDs, so no sequence is needed.
func NewComponentRepository(backend *Backend) (*ComponentRepository, error) {
	return &ComponentRepository{backend: backend}, nil
}

// Close is a no-op; the repository holds no resources of its own.
func (r *ComponentRepository) Close() error {
	return nil
}

// WithTransaction delegates to the backend.
func (r *ComponentRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// AddComponents adds one or more components to storage.
// A component that already exists is left untouched, keeping CreatedAt stable.
func (r *ComponentRepository) AddComponents(ctx context.Context, comps ...*core.Component) ([]*core.Component, error) {
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, comp := range comps {
			comp.Id = comp.ContentID()

			key := makeCompRecordKey(comp.Id)
			existing, err := readComponent(tx, key)
			if err != nil {
				return err
			}
			if existing != nil {
				comp.CreatedAt = existing.CreatedAt
				continue
			}

			if comp.CreatedAt.IsZero() {
				comp.CreatedAt = time.Now().UTC()
			}

			value := storage.MarshalComponent(comp)
			if err := tx.Set(key, value); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)

	return comps, err
}

// GetComponent retrieves a single component by ID.
func (r *ComponentRepository) GetComponent(ctx context.Context, id core.ID) (*core.Component, error) {
	var result *core.Component
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		key := makeCompRecordKey(id)
		var err error
		result, err = readComponent(tx, key)
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

// GetComponents retrieves multiple components by their IDs.
func (r *ComponentRepository) GetComponents(ctx context.Context, ids ...core.ID) ([]*core.Component, error) {
	var result []*core.Component
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		for _, id := range ids {
			key := makeCompRecordKey(id)
			comp, err := readComponent(tx, key)
			if err != nil {
				return err
			}
			if comp != nil {
				result = append(result, comp)
			}
		}
		return nil
	}, false)
	return result, err
}

// LinkComponents ties components into an application's inventory.
func (r *ComponentRepository) LinkComponents(ctx context.Context, appID core.ID, refs ...*core.ComponentRef) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		for _, ref := range refs {
			// The referenced component must already be stored
			compKey := makeCompRecordKey(ref.ComponentId)
			comp, err := readComponent(tx, compKey)
			if err != nil {
				return err
			}
			if comp == nil {
				return storage.ErrNotFound
			}

			if ref.CreatedAt.IsZero() {
				ref.CreatedAt = time.Now().UTC()
			}

			key := makeAppComponentKey(appID, ref.ComponentId)
			value := storage.MarshalComponentRef(ref)
			if err := tx.Set(key, value); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// UnlinkApplication removes all of an application's inventory links.
func (r *ComponentRepository) UnlinkApplication(ctx context.Context, appID core.ID) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		if err := deleteAppComponentLinks(tx, appID); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// GetApplicationComponents retrieves the component records linked to an application.
func (r *ComponentRepository) GetApplicationComponents(ctx context.Context, appID core.ID) ([]*core.Component, error) {
	var results []*core.Component
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		refs, err := readComponentRefs(tx, appID)
		if err != nil {
			return err
		}
		for _, ref := range refs {
			key := makeCompRecordKey(ref.ComponentId)
			comp, err := readComponent(tx, key)
			if err != nil {
				return err
			}
			if comp != nil {
				results = append(results, comp)
			}
		}
		return nil
	}, false)
	return results, err
}

// GetComponentRefs retrieves an application's link rows.
func (r *ComponentRepository) GetComponentRefs(ctx context.Context, appID core.ID) ([]*core.ComponentRef, error) {
	var results []*core.ComponentRef
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		results, err = readComponentRefs(tx, appID)
		return err
	}, false)
	return results, err
}

// Helper methods

// readComponent reads a component record from the transaction.
func readComponent(tx *badger.Txn, key []byte) (*core.Component, error) {
	item, err := tx.Get(key)
	if err != nil {
		if err == badger.ErrKeyNotFound {
			return nil, nil
		}
		return nil, err
	}

	var comp *core.Component
	err = item.Value(func(val []byte) error {
		var unmarshalErr error
		comp, unmarshalErr = storage.UnmarshalComponent(val)
		return unmarshalErr
	})
	return comp, err
}

// readComponentRefs reads all link rows for an application in key order.
func readComponentRefs(tx *badger.Txn, appID core.ID) ([]*core.ComponentRef, error) {
	startKey := makePartialAppComponentKey(appID)
	iter := tx.NewIterator(badger.DefaultIteratorOptions)
	defer iter.Close()

	var refs []*core.ComponentRef
	for iter.Seek(startKey); iter.Valid(); iter.Next() {
		key := iter.Item().Key()
		if len(key) < len(startKey) {
			break
		}
		if slices.Compare(key[:len(startKey)], startKey) != 0 {
			break
		}

		var ref *core.ComponentRef
		if err := iter.Item().Value(func(val []byte) error {
			var err error
			ref, err = storage.UnmarshalComponentRef(val)
			return err
		}); err != nil {
			return nil, err
		}
		if ref != nil {
			refs = append(refs, ref)
		}
	}
	return refs, nil
}
