package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// entry is a row of the SQLite storage.
type entry struct {
	Key   string `gorm:"primaryKey"`
	Value []byte
}

func (entry) TableName() string { return "entries" }

// SQLite is a Storage in a single table of an SQLite database.
type SQLite struct {
	db *gorm.DB
}

// OpenSQLite opens (or creates) the database file at path.
func OpenSQLite(path string) (*SQLite, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get sql db: %w", err)
	}
	// a single connection keeps ":memory:" databases alive and serializes writers
	sqlDB.SetMaxOpenConns(1)
	_, _ = sqlDB.Exec("PRAGMA journal_mode = WAL;")

	if err := db.AutoMigrate(&entry{}); err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	return &SQLite{db: db}, nil
}

// Close releases the database.
func (s *SQLite) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (s *SQLite) Get(key string) ([]byte, bool, error) {
	var e entry
	err := s.db.Where("key = ?", key).First(&e).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	return e.Value, true, nil
}

func (s *SQLite) Set(key string, value []byte) error {
	return s.db.Save(&entry{Key: key, Value: value}).Error
}

func (s *SQLite) Delete(key string) error {
	return s.db.Where("key = ?", key).Delete(&entry{}).Error
}

func (s *SQLite) Keys() ([]string, error) {
	var keys []string
	err := s.db.Model(&entry{}).Order("key").Pluck("key", &keys).Error
	return keys, err
}
