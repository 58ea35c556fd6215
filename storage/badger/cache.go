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


package badger

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/retrievit/core"
	"github.com/poiesic/retrievit/storage"
)

// VectorCache implements storage.VectorCache for BadgerDB.
type VectorCache struct {
	backend *Backend
}

var _ storage.VectorCache = (*VectorCache)(nil)

// NewVectorCache creates a vector cache on top of an open backend.
// The caller retains ownership of the backend; Close here does not close it.
func NewVectorCache(backend *Backend) *VectorCache {
	return &VectorCache{backend: backend}
}

// OpenVectorCache opens a BadgerDB-backed vector cache at path.
//
// Returns storage.VectorCache interface to enforce abstraction. Closing the
// returned cache closes the underlying database.
func OpenVectorCache(path string) (storage.VectorCache, error) {
	backend, err := OpenBackend(path, false)
	if err != nil {
		return nil, err
	}
	return &ownedCache{VectorCache: NewVectorCache(backend)}, nil
}

// ownedCache closes its backend together with the cache.
type ownedCache struct {
	*VectorCache
}

func (c *ownedCache) Close() error {
	return c.backend.Close()
}

// Get retrieves a cached vector by ID.
func (c *VectorCache) Get(ctx context.Context, id core.ID) ([]float32, bool, error) {
	var vector []float32
	found := false

	err := c.backend.WithTx(func(tx *badger.Txn) error {
		item, err := tx.Get(makeEmbeddingKey(id))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		if err != nil {
			return err
		}
		return item.Value(func(val []byte) error {
			vector, err = storage.UnmarshalVector(val)
			if err != nil {
				return err
			}
			found = true
			return nil
		})
	}, false)

	if err != nil {
		return nil, false, err
	}
	return vector, found, nil
}

// GetBatch retrieves cached vectors for multiple IDs.
// The returned slice is parallel to ids; nil entries mark misses.
func (c *VectorCache) GetBatch(ctx context.Context, ids []core.ID) ([][]float32, error) {
	vectors := make([][]float32, len(ids))

	err := c.backend.WithTx(func(tx *badger.Txn) error {
		for i, id := range ids {
			item, err := tx.Get(makeEmbeddingKey(id))
			if errors.Is(err, badger.ErrKeyNotFound) {
				continue
			}
			if err != nil {
				return err
			}
			err = item.Value(func(val []byte) error {
				vectors[i], err = storage.UnmarshalVector(val)
				return err
			})
			if err != nil {
				return err
			}
		}
		return nil
	}, false)

	if err != nil {
		return nil, err
	}
	return vectors, nil
}

// Put stores a vector under the given ID, replacing any previous value.
func (c *VectorCache) Put(ctx context.Context, id core.ID, vector []float32) error {
	return c.backend.WithTx(func(tx *badger.Txn) error {
		if err := tx.Set(makeEmbeddingKey(id), storage.MarshalVector(vector)); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// PutBatch stores multiple vectors in one transaction.
func (c *VectorCache) PutBatch(ctx context.Context, ids []core.ID, vectors [][]float32) error {
	if len(ids) != len(vectors) {
		return fmt.Errorf("id count %d does not match vector count %d", len(ids), len(vectors))
	}

	return c.backend.WithTx(func(tx *badger.Txn) error {
		for i, id := range ids {
			if err := tx.Set(makeEmbeddingKey(id), storage.MarshalVector(vectors[i])); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
}

// Close is a no-op for a cache on a shared backend; the backend owner
// closes the database.
func (c *VectorCache) Close() error {
	return nil
}
