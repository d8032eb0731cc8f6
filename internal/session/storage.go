package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/goccy/go-json"

	"github.com/MrSnakeDoc/statuary/internal/domain"
	"github.com/MrSnakeDoc/statuary/internal/logger"
)

// Persisted value names. The values are full JSON documents.
const (
	KeyDarkMode  = "darkMode"
	KeyBookmarks = "bookmarks"
	KeyHistory   = "history"
)

// PersistedKeys lists every value name a visitor can have in storage.
var PersistedKeys = []string{KeyDarkMode, KeyBookmarks, KeyHistory}

// Storage is a string key-value store namespaced per visitor.
type Storage interface {
	Get(ctx context.Context, visitorID, name string) (string, bool, error)
	Set(ctx context.Context, visitorID, name, value string) error
	// Delete removes every value of the visitor.
	Delete(ctx context.Context, visitorID string) error
	Ping(ctx context.Context) error
}

// Persister is notified after every transition that changed persisted keys.
type Persister interface {
	Persist(ctx context.Context, visitorID string, state *domain.ClientState, changes domain.Changes) error
}

// StoragePersister writes each changed key as a full overwrite.
type StoragePersister struct {
	storage Storage
}

// NewStoragePersister creates a persister backed by storage
func NewStoragePersister(storage Storage) *StoragePersister {
	return &StoragePersister{storage: storage}
}

// Persist writes every key named in changes. Keys are written
// independently; all failures are returned together.
func (p *StoragePersister) Persist(ctx context.Context, visitorID string, state *domain.ClientState, changes domain.Changes) error {
	var errs []error

	if changes.Has(domain.ChangedDarkMode) {
		errs = append(errs, p.write(ctx, visitorID, KeyDarkMode, state.DarkMode))
	}
	if changes.Has(domain.ChangedBookmarks) {
		errs = append(errs, p.write(ctx, visitorID, KeyBookmarks, state.Bookmarks))
	}
	if changes.Has(domain.ChangedHistory) {
		errs = append(errs, p.write(ctx, visitorID, KeyHistory, state.History))
	}

	return errors.Join(errs...)
}

func (p *StoragePersister) write(ctx context.Context, visitorID, name string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", name, err)
	}
	return p.storage.Set(ctx, visitorID, name, string(data))
}

// allKeys is every persisted key as a Changes set.
const allKeys = domain.ChangedDarkMode | domain.ChangedBookmarks | domain.ChangedHistory

type persistedKey struct {
	bit    domain.Changes
	name   string
	decode func(raw string, state *domain.ClientState) error
}

var persistedKeys = []persistedKey{
	{domain.ChangedDarkMode, KeyDarkMode, func(raw string, state *domain.ClientState) error {
		var dark bool
		if err := json.Unmarshal([]byte(raw), &dark); err != nil {
			return err
		}
		state.DarkMode = dark
		return nil
	}},
	{domain.ChangedBookmarks, KeyBookmarks, func(raw string, state *domain.ClientState) error {
		var bookmarks []string
		if err := json.Unmarshal([]byte(raw), &bookmarks); err != nil {
			return err
		}
		if bookmarks != nil {
			state.Bookmarks = bookmarks
		}
		return nil
	}},
	{domain.ChangedHistory, KeyHistory, func(raw string, state *domain.ClientState) error {
		var history []domain.HistoryEntry
		if err := json.Unmarshal([]byte(raw), &history); err != nil {
			return err
		}
		if history != nil {
			state.History = history
		}
		return nil
	}},
}

// Load reads the persisted keys of a visitor into a fresh state. A missing
// or unparsable value falls back to its default and is logged. Keys the
// storage failed to return are reported in unread: their defaults are not
// the visitor's data and must not be written back.
func Load(ctx context.Context, storage Storage, visitorID string, log logger.Logger) (state *domain.ClientState, unread domain.Changes) {
	state = domain.NewClientState()
	return state, Reload(ctx, storage, visitorID, state, allKeys, log)
}

// Reload reads the keys in want into state and returns the ones that still
// could not be read. A stored value replaces the in-memory one; an absent or
// unparsable value leaves state as it is.
func Reload(ctx context.Context, storage Storage, visitorID string, state *domain.ClientState, want domain.Changes, log logger.Logger) domain.Changes {
	unread := domain.NoChanges

	for _, k := range persistedKeys {
		if !want.Has(k.bit) {
			continue
		}

		raw, found, err := storage.Get(ctx, visitorID, k.name)
		if err != nil {
			log.Warn("failed to read persisted state, key stays unloaded",
				logger.String("visitor_id", visitorID),
				logger.String("key", k.name),
				logger.Error(err))
			unread |= k.bit
			continue
		}
		if !found {
			continue
		}
		if err := k.decode(raw, state); err != nil {
			warnParse(log, visitorID, k.name, err)
		}
	}

	return unread
}

func keyNames(c domain.Changes) []string {
	var names []string
	for _, k := range persistedKeys {
		if c.Has(k.bit) {
			names = append(names, k.name)
		}
	}
	return names
}

func warnParse(log logger.Logger, visitorID, name string, err error) {
	log.Warn("persisted state is not valid json, using default",
		logger.String("visitor_id", visitorID),
		logger.String("key", name),
		logger.Error(err))
}
