package storage

import (
	"errors"
	"log/slog"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// KV is the persistence boundary: a synchronous string-keyed value store.
// Reads report presence, writes are best-effort; callers are expected to
// fall back to defaults rather than handle storage errors.
type KV interface {
	Get(key string) (string, bool)
	Set(key, value string)
}

// Entry is one persisted key/value pair.
type Entry struct {
	Key       string `gorm:"primaryKey;size:255"`
	Value     string `gorm:"type:text"`
	UpdatedAt time.Time
}

// TableName keeps the table name stable across gorm naming changes.
func (Entry) TableName() string { return "kv_entries" }

// Store is the SQLite-backed key-value store holding all desk state.
type Store struct {
	db  *gorm.DB
	log *slog.Logger
}

// Open opens (and migrates) the store at the given SQLite DSN.
func Open(dsn string, log *slog.Logger) (*Store, error) {
	if log == nil {
		log = slog.Default()
	}
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&Entry{}); err != nil {
		return nil, err
	}
	return &Store{db: db, log: log}, nil
}

// Get returns the stored value for key. A missing key reads as absent;
// read failures are logged and also read as absent.
func (s *Store) Get(key string) (string, bool) {
	var e Entry
	if err := s.db.First(&e, "key = ?", key).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			s.log.Warn("kv read failed", "key", key, "error", err)
		}
		return "", false
	}
	return e.Value, true
}

// Set upserts the value for key. Write failures are logged, not returned:
// the desk keeps working from in-memory state either way.
func (s *Store) Set(key, value string) {
	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&Entry{Key: key, Value: value}).Error
	if err != nil {
		s.log.Warn("kv write failed", "key", key, "error", err)
	}
}
