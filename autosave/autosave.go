// Package autosave keeps one in-progress draft per (user, trip, scope).
// Drafts are opaque values; the last save wins.
package autosave

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"globetrotter/codec"
	"globetrotter/core"
	"globetrotter/keys"
)

// Store saves, loads and clears drafts of type T.
type Store[T any] struct {
	kv    core.KVStore
	codec codec.Codec[T]
}

type Option[T any] func(*Store[T])

// WithCodec replaces the default JSON codec.
func WithCodec[T any](c codec.Codec[T]) Option[T] {
	return func(s *Store[T]) {
		s.codec = c
	}
}

func New[T any](kv core.KVStore, opts ...Option[T]) *Store[T] {
	s := &Store[T]{kv: kv, codec: codec.JSON[T]{}}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Save overwrites the draft addressed by id with value.
func (s *Store[T]) Save(ctx context.Context, id core.DraftIdentity, value T) error {
	key := keys.Draft(id)
	raw, err := s.codec.Encode(value)
	if err != nil {
		return fmt.Errorf("save draft %s: %w", key, err)
	}
	if err := s.kv.Set(ctx, key, raw); err != nil {
		logrus.WithFields(logrus.Fields{"key": key, "error": err}).Error("Failed to save draft")
		return fmt.Errorf("save draft %s: %w", key, err)
	}
	return nil
}

// Load returns the draft addressed by id, or fallback when nothing usable is
// stored. A missing or unreadable draft is not an error.
func (s *Store[T]) Load(ctx context.Context, id core.DraftIdentity, fallback T) T {
	key := keys.Draft(id)
	log := logrus.WithField("key", key)

	raw, found, err := s.kv.Get(ctx, key)
	if err != nil {
		log.WithError(err).Warn("Failed to read draft, using fallback")
		return fallback
	}
	if !found {
		return fallback
	}

	value, err := s.codec.Decode(raw)
	if err != nil {
		log.WithError(err).Warn("Stored draft is corrupted, using fallback")
		return fallback
	}
	return value
}

// Clear removes the draft addressed by id. Clearing a missing draft is a no-op.
func (s *Store[T]) Clear(ctx context.Context, id core.DraftIdentity) error {
	key := keys.Draft(id)
	if err := s.kv.Delete(ctx, key); err != nil {
		return fmt.Errorf("clear draft %s: %w", key, err)
	}
	return nil
}
