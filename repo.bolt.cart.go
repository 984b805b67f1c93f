package main

import (
	"context"
	"encoding/json"

	"github.com/boltdb/bolt"
	"go.uber.org/zap"
)

var _ CartSnapshotStorage = (*boltCartStorage)(nil) // ensure boltCartStorage implements CartSnapshotStorage.

// boltCartStorage keeps the single serialized cart snapshot under a fixed
// well-known key inside its own bolt bucket. It is the durable slot which
// outlives the session and seeds the next one.
type boltCartStorage struct {
	logger *zap.Logger
	client *bolt.DB
	config *CartConfig
}

// NewBoltCartStorage provides an instance of bolt-based cart snapshot storage.
func NewBoltCartStorage(logger *zap.Logger, cartConfig *CartConfig, client *bolt.DB) CartSnapshotStorage {
	return &boltCartStorage{
		logger: logger,
		client: client,
		config: cartConfig,
	}
}

// Save overwrites the snapshot slot with the given cart state.
func (cs *boltCartStorage) Save(_ context.Context, state CartState) error {
	stateBytes, err := json.Marshal(state)
	if err != nil {
		return err
	}
	return cs.client.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(cs.config.BucketName)).Put([]byte(cs.config.SnapshotKey), stateBytes)
	})
}

// Load reads the snapshot slot. A missing slot, an unreadable payload or
// an unknown schema version all come back as ErrNoCartSnapshot so the
// caller falls back to an empty cart instead of failing the startup.
func (cs *boltCartStorage) Load(_ context.Context) (CartState, error) {
	var state CartState
	tx, err := cs.client.Begin(false)
	if err != nil {
		return state, err
	}
	defer tx.Rollback()

	result := tx.Bucket([]byte(cs.config.BucketName)).Get([]byte(cs.config.SnapshotKey))
	if result == nil {
		return state, ErrNoCartSnapshot
	}
	if err = json.Unmarshal(result, &state); err != nil {
		cs.logger.Warn("cart: discarding unreadable snapshot", zap.Error(err))
		return CartState{}, ErrNoCartSnapshot
	}
	if state.SchemaVersion != CartSchemaVersion {
		cs.logger.Warn("cart: discarding snapshot with unknown schema version", zap.Int("snapshot.version", state.SchemaVersion))
		return CartState{}, ErrNoCartSnapshot
	}
	return state, nil
}
