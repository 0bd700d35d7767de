package db

import (
	"errors"
	"sync"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/balkashynov/gauge/internal/models"
)

// BlobStore is an opaque key to string store
type BlobStore interface {
	Get(key string) (value string, ok bool, err error)
	Put(key, value string) error
}

// SQLiteStore keeps blobs in a single table of the gauge database
type SQLiteStore struct {
	db *gorm.DB
}

// NewSQLiteStore wraps an open database; call Open first so the table exists
func NewSQLiteStore(db *gorm.DB) *SQLiteStore {
	return &SQLiteStore{db: db}
}

// Get returns the value stored under key
func (s *SQLiteStore) Get(key string) (string, bool, error) {
	var blob models.Blob
	err := s.db.Where("blob_key = ?", key).First(&blob).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return blob.Value, true, nil
}

// Put inserts or replaces the value under key
func (s *SQLiteStore) Put(key, value string) error {
	blob := models.Blob{Key: key, Value: value, UpdatedAt: time.Now()}
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "blob_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&blob).Error
}

// MemoryStore is a process-local BlobStore
type MemoryStore struct {
	mu    sync.Mutex
	blobs map[string]string
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{blobs: make(map[string]string)}
}

func (m *MemoryStore) Get(key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.blobs[key]
	return v, ok, nil
}

func (m *MemoryStore) Put(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blobs[key] = value
	return nil
}
