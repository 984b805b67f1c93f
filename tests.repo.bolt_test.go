package main

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/boltdb/bolt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// newTestBoltStore returns a new instance of the bolt book storage in a temporary path.
func newTestBoltStore() (*boltBookStorage, error) {
	f, err := os.CreateTemp("", "tmp.bolt.db-")
	if err != nil {
		return nil, err
	}
	f.Close()
	testConfig := &Config{
		BoltDB: BoltDBConfig{
			FilePath:   f.Name(),
			Timeout:    5 * time.Second,
			BucketName: "test.books",
		},
		Cart: CartConfig{
			BucketName:  "test.cart",
			SnapshotKey: "test.cart.snapshot",
		},
	}

	client, err := GetBoltDBClient(testConfig)

	return &boltBookStorage{
		logger: zap.NewNop(),
		client: client,
		config: &testConfig.BoltDB,
	}, err
}

// Close closes the temporary bolt store and removes the underlying data file.
func (bs *boltBookStorage) closeTestBoltStore() error {
	defer os.Remove(bs.config.FilePath)
	return bs.Close()
}

// newTestBoltCartStorage returns a bolt cart snapshot slot in a temporary path.
func newTestBoltCartStorage() (*boltCartStorage, error) {
	f, err := os.CreateTemp("", "tmp.bolt.cart.db-")
	if err != nil {
		return nil, err
	}
	f.Close()
	testConfig := &Config{
		BoltDB: BoltDBConfig{
			FilePath:   f.Name(),
			Timeout:    5 * time.Second,
			BucketName: "test.books",
		},
		Cart: CartConfig{
			BucketName:  "test.cart",
			SnapshotKey: "test.cart.snapshot",
		},
	}

	client, err := GetBoltDBClient(testConfig)

	return &boltCartStorage{
		logger: zap.NewNop(),
		client: client,
		config: &testConfig.Cart,
	}, err
}

// closeTestBoltCartStorage closes the temporary slot and removes the data file.
func (cs *boltCartStorage) closeTestBoltCartStorage() error {
	path := cs.client.Path()
	defer os.Remove(path)
	return cs.client.Close()
}

// Ensure bolt store can insert a new book.
func TestBoltStore_AddBook(t *testing.T) {
	bs, err := newTestBoltStore()
	require.NoError(t, err, "failed in creating a test bolt store")
	defer bs.closeTestBoltStore()
	testBookID := "b:0"

	// Create a new book.
	b := Book{ID: testBookID, Title: "Bolt test book title", Price: 9.99}
	err = bs.Add(context.TODO(), testBookID, b)
	assert.NoError(t, err)

	// Verify book can be retrieved.
	book, err := bs.GetOne(context.TODO(), testBookID)
	assert.NoError(t, err)
	assert.Equal(t, testBookID, book.ID)
	assert.Equal(t, "Bolt test book title", book.Title)
	assert.Equal(t, 9.99, book.Price)
}

// Ensure bolt store answers with the dedicated error on a missing book.
func TestBoltStore_GetMissingBook(t *testing.T) {
	bs, err := newTestBoltStore()
	require.NoError(t, err, "failed in creating a test bolt store")
	defer bs.closeTestBoltStore()

	book, err := bs.GetOne(context.TODO(), "b:404")
	assert.Equal(t, ErrBookNotFound, err)
	assert.Equal(t, Book{}, book)
}

// Ensure bolt store lists everything it holds.
func TestBoltStore_GetAllBooks(t *testing.T) {
	bs, err := newTestBoltStore()
	require.NoError(t, err, "failed in creating a test bolt store")
	defer bs.closeTestBoltStore()

	assert.NoError(t, bs.Add(context.TODO(), "b:0", Book{ID: "b:0", Title: "first"}))
	assert.NoError(t, bs.Add(context.TODO(), "b:1", Book{ID: "b:1", Title: "second"}))

	books, err := bs.GetAll(context.TODO())
	assert.NoError(t, err)
	assert.Equal(t, 2, len(books))
}

// Ensure the cart slot round trips a snapshot unchanged.
func TestBoltCartStorage_SaveLoad(t *testing.T) {
	cs, err := newTestBoltCartStorage()
	require.NoError(t, err, "failed in creating a test bolt cart storage")
	defer cs.closeTestBoltCartStorage()

	state := NewCartState()
	state.Items = append(state.Items, CartItem{ID: "b:1", Title: "Dune", Price: 9.99, Quantity: 2})
	state.Total = 19.98

	assert.NoError(t, cs.Save(context.TODO(), state))
	loaded, err := cs.Load(context.TODO())
	assert.NoError(t, err)
	assert.Equal(t, state, loaded)
}

// Ensure an empty slot reports the dedicated sentinel error.
func TestBoltCartStorage_LoadEmptySlot(t *testing.T) {
	cs, err := newTestBoltCartStorage()
	require.NoError(t, err, "failed in creating a test bolt cart storage")
	defer cs.closeTestBoltCartStorage()

	_, err = cs.Load(context.TODO())
	assert.Equal(t, ErrNoCartSnapshot, err)
}

// Ensure an unreadable payload in the slot degrades to the missing
// snapshot sentinel instead of erroring out.
func TestBoltCartStorage_LoadCorruptSlot(t *testing.T) {
	cs, err := newTestBoltCartStorage()
	require.NoError(t, err, "failed in creating a test bolt cart storage")
	defer cs.closeTestBoltCartStorage()

	err = cs.client.Update(func(tx *bolt.Tx) error {
		return tx.Bucket([]byte(cs.config.BucketName)).Put([]byte(cs.config.SnapshotKey), []byte("{not json"))
	})
	require.NoError(t, err)

	_, err = cs.Load(context.TODO())
	assert.Equal(t, ErrNoCartSnapshot, err)
}

// Ensure a snapshot tagged with a different schema version is discarded.
func TestBoltCartStorage_LoadUnknownSchemaVersion(t *testing.T) {
	cs, err := newTestBoltCartStorage()
	require.NoError(t, err, "failed in creating a test bolt cart storage")
	defer cs.closeTestBoltCartStorage()

	state := NewCartState()
	state.SchemaVersion = CartSchemaVersion + 1
	assert.NoError(t, cs.Save(context.TODO(), state))

	_, err = cs.Load(context.TODO())
	assert.Equal(t, ErrNoCartSnapshot, err)
}
