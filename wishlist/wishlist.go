// Package wishlist keeps each user's saved trips and activities as one map
// of item id to snapshot. Every change rewrites the whole map.
package wishlist

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	json "github.com/goccy/go-json"
	"github.com/sirupsen/logrus"

	"globetrotter/codec"
	"globetrotter/core"
	"globetrotter/keys"
)

// ToggleResult reports the state of the toggled item and the map as persisted.
type ToggleResult struct {
	IsWishlisted bool             `json:"isWishlisted"`
	Map          core.WishlistMap `json:"map"`
}

type Store struct {
	kv  core.KVStore
	now func() time.Time

	// mu serialises read-modify-write cycles issued through this Store.
	mu sync.Mutex
}

type Option func(*Store)

// WithClock overrides the clock used for savedAt.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

func NewStore(kv core.KVStore, opts ...Option) *Store {
	s := &Store{kv: kv, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// record is a user's stored wishlist split into entries that decoded and
// raw entries that did not. Raw entries are written back untouched.
type record struct {
	entries core.WishlistMap
	opaque  map[string]json.RawMessage
}

func (s *Store) load(ctx context.Context, userID string) record {
	key := keys.Wishlist(userID)
	log := logrus.WithField("key", key)
	rec := record{entries: core.WishlistMap{}}

	raw, found, err := s.kv.Get(ctx, key)
	if err != nil {
		log.WithError(err).Warn("Failed to read wishlist, treating as empty")
		return rec
	}
	if !found {
		return rec
	}

	fields := codec.TryParse[map[string]json.RawMessage](raw, true, nil)
	if fields == nil {
		log.Warn("Stored wishlist is not a keyed object, treating as empty")
		return rec
	}

	entryCodec := codec.JSON[*core.WishlistEntry]{}
	for id, field := range fields {
		entry, err := entryCodec.Decode(string(field))
		if err != nil {
			log.WithField("item_id", id).WithError(err).Warn("Stored wishlist entry is unreadable, keeping it as is")
			if rec.opaque == nil {
				rec.opaque = make(map[string]json.RawMessage)
			}
			rec.opaque[id] = field
			continue
		}
		rec.entries[id] = entry
	}
	return rec
}

func (s *Store) save(ctx context.Context, userID string, rec record) error {
	key := keys.Wishlist(userID)

	out := make(map[string]any, len(rec.entries)+len(rec.opaque))
	for id, field := range rec.opaque {
		out[id] = field
	}
	for id, entry := range rec.entries {
		out[id] = entry
	}

	raw, err := codec.Stringify(out)
	if err != nil {
		return fmt.Errorf("save wishlist %s: %w", key, err)
	}
	if err := s.kv.Set(ctx, key, raw); err != nil {
		logrus.WithFields(logrus.Fields{"key": key, "entries": len(out), "error": err}).Error("Failed to save wishlist")
		return fmt.Errorf("save wishlist %s: %w", key, err)
	}
	return nil
}

// LoadMap returns the user's wishlist. A missing, unreadable or non-object
// record yields an empty map. Entries that cannot be read are left out.
func (s *Store) LoadMap(ctx context.Context, userID string) core.WishlistMap {
	return s.load(ctx, userID).entries
}

// SaveMap persists m as the user's complete wishlist.
func (s *Store) SaveMap(ctx context.Context, userID string, m core.WishlistMap) error {
	return s.save(ctx, userID, record{entries: m})
}

// List returns the user's entries, most recently saved first.
func (s *Store) List(ctx context.Context, userID string) []*core.WishlistEntry {
	m := s.LoadMap(ctx, userID)

	entries := make([]*core.WishlistEntry, 0, len(m))
	for _, entry := range m {
		if entry != nil {
			entries = append(entries, entry)
		}
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].SavedAt.Equal(entries[j].SavedAt) {
			return entries[i].ID < entries[j].ID
		}
		return entries[i].SavedAt.After(entries[j].SavedAt)
	})
	return entries
}

// IsWishlisted reports whether the user's map holds an entry for itemID.
func (s *Store) IsWishlisted(ctx context.Context, userID, itemID string) bool {
	return s.LoadMap(ctx, userID)[itemID] != nil
}

// Toggle removes item from the user's wishlist when present and adds a fresh
// snapshot of it otherwise. An item without id leaves the map untouched.
func (s *Store) Toggle(ctx context.Context, userID string, item core.WishlistItem) (ToggleResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rec := s.load(ctx, userID)
	m := rec.entries
	if item.ID == "" {
		return ToggleResult{IsWishlisted: false, Map: m}, nil
	}

	log := logrus.WithFields(logrus.Fields{"user_id": userID, "item_id": item.ID})

	if m[item.ID] != nil {
		delete(m, item.ID)
		if err := s.save(ctx, userID, rec); err != nil {
			return ToggleResult{}, err
		}
		log.Info("Item removed from wishlist")
		return ToggleResult{IsWishlisted: false, Map: m}, nil
	}

	m[item.ID] = NewEntry(item, s.now())
	delete(rec.opaque, item.ID)
	if err := s.save(ctx, userID, rec); err != nil {
		return ToggleResult{}, err
	}
	log.WithField("type", m[item.ID].Type).Info("Item added to wishlist")
	return ToggleResult{IsWishlisted: true, Map: m}, nil
}
