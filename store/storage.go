// Package store persists named collections of records for a user.
//
// Every collection is a JSON array stored under a single key of a [Storage].
// Saving a collection overwrites it entirely: last write wins, there is no
// merge and no partial write.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
)

// Collection names.
const (
	Accounts     = "accounts"
	Categories   = "categories"
	Transactions = "transactions"
	Budgets      = "budgets"
	DebtsLoans   = "debts_loans"
	ShoppingList = "shopping_list"
	Profile      = "profile"
	Users        = "users"
)

// UserCollections lists the collections owned by a user.
var UserCollections = []string{Accounts, Categories, Transactions, Budgets, DebtsLoans, ShoppingList, Profile}

// ErrNoSession is returned when saving without an active user.
var ErrNoSession = errors.New("no active user")

// Storage is a flat key-value storage of raw values.
//
// Implementations are safe for concurrent use at the key level.
type Storage interface {
	// Get returns the value for key, and false if there is none.
	Get(key string) ([]byte, bool, error)
	Set(key string, value []byte) error
	// Delete removes key. Deleting a missing key is not an error.
	Delete(key string) error
	Keys() ([]string, error)
}

// Session identifies the active user. The zero Session has no user.
type Session struct {
	User string
}

// Active reports whether the session has a user.
func (s Session) Active() bool { return s.User != "" }

// key returns the storage key of a user collection.
func (s Session) key(collection string) string { return s.User + "_" + collection }

// Store reads and writes collections on a Storage.
type Store struct {
	storage Storage
}

// New returns a Store on top of storage.
func New(storage Storage) *Store { return &Store{storage: storage} }

// Storage returns the underlying storage.
func (s *Store) Storage() Storage { return s.storage }

// Load returns the records of a user collection in stored order.
//
// It returns an empty slice if the session has no user, the collection does
// not exist or its content cannot be decoded. Only storage failures are
// reported as errors.
func Load[T any](s *Store, sess Session, collection string) ([]T, error) {
	if !sess.Active() {
		return []T{}, nil
	}
	return load[T](s, sess.key(collection))
}

// Save overwrites a user collection with records.
func Save[T any](s *Store, sess Session, collection string, records []T) error {
	if !sess.Active() {
		return fmt.Errorf("cannot save %s: %w", collection, ErrNoSession)
	}
	return save(s, sess.key(collection), records)
}

// LoadGlobal returns the records of a collection shared by all users.
func LoadGlobal[T any](s *Store, collection string) ([]T, error) {
	return load[T](s, collection)
}

// SaveGlobal overwrites a collection shared by all users.
func SaveGlobal[T any](s *Store, collection string, records []T) error {
	return save(s, collection, records)
}

// Has reports whether a user collection exists.
func (s *Store) Has(sess Session, collection string) (bool, error) {
	if !sess.Active() {
		return false, nil
	}
	_, ok, err := s.storage.Get(sess.key(collection))
	return ok, err
}

// Clear removes every collection of the session's user.
func (s *Store) Clear(sess Session) error {
	if !sess.Active() {
		return ErrNoSession
	}
	var errs []error
	for _, c := range UserCollections {
		if err := s.storage.Delete(sess.key(c)); err != nil {
			errs = append(errs, fmt.Errorf("cannot delete %s: %w", c, err))
		}
	}
	return errors.Join(errs...)
}

// Users returns the names of users owning at least one collection.
func (s *Store) Users() ([]string, error) {
	keys, err := s.storage.Keys()
	if err != nil {
		return nil, err
	}
	seen := make(map[string]bool)
	var users []string
	for _, k := range keys {
		for _, c := range UserCollections {
			u, ok := strings.CutSuffix(k, "_"+c)
			if ok && u != "" && !seen[u] {
				seen[u] = true
				users = append(users, u)
			}
		}
	}
	return users, nil
}

func load[T any](s *Store, key string) ([]T, error) {
	data, ok, err := s.storage.Get(key)
	if err != nil {
		return nil, fmt.Errorf("cannot read %q: %w", key, err)
	}
	if !ok {
		return []T{}, nil
	}
	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		log.Printf("ignoring corrupt collection %q: %v", key, err)
		return []T{}, nil
	}
	if records == nil {
		records = []T{}
	}
	return records, nil
}

func save[T any](s *Store, key string, records []T) error {
	if records == nil {
		records = []T{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("cannot encode %q: %w", key, err)
	}
	if err := s.storage.Set(key, data); err != nil {
		return fmt.Errorf("cannot write %q: %w", key, err)
	}
	return nil
}
