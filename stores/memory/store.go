package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"globetrotter/core"
)

type memStore struct {
	mu      sync.RWMutex
	records map[string]string
	used    int64
	quota   int64
}

type Option func(*memStore)

// WithQuota caps the total size of keys and values held by the store.
// A value <= 0 disables the cap.
func WithQuota(bytes int64) Option {
	return func(s *memStore) {
		s.quota = bytes
	}
}

// NewStore creates a new in-memory store. Every instance owns its records.
func NewStore(opts ...Option) *memStore {
	s := &memStore{records: make(map[string]string)}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *memStore) Get(ctx context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	value, ok := s.records[key]
	s.mu.RUnlock()

	logrus.WithFields(logrus.Fields{"key": key, "found": ok}).Debug("Record read")
	return value, ok, nil
}

func (s *memStore) Set(ctx context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	log := logrus.WithFields(logrus.Fields{"key": key, "data_length": len(value)})

	next := s.used + recordSize(key, value)
	if prev, ok := s.records[key]; ok {
		next -= recordSize(key, prev)
	}
	if s.quota > 0 && next > s.quota {
		log.WithField("quota", s.quota).Warn("Write rejected, quota exceeded")
		return fmt.Errorf("set %s: %w", key, core.ErrQuotaExceeded)
	}

	s.records[key] = value
	s.used = next
	log.Debug("Record saved")
	return nil
}

func (s *memStore) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if prev, ok := s.records[key]; ok {
		s.used -= recordSize(key, prev)
		delete(s.records, key)
		logrus.WithField("key", key).Debug("Record deleted")
	}
	return nil
}

// Len returns the number of stored records.
func (s *memStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

func (s *memStore) Close() error {
	return nil
}

func recordSize(key, value string) int64 {
	return int64(len(key) + len(value))
}
