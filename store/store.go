// Package store provides the durable key-value storage backing sessions,
// view preferences and deferred actions, with a Redis implementation and an
// in-memory fallback.
package store

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

// Store is a durable key-value store. Get reports whether the key exists;
// a missing key is not an error. A zero TTL means no expiry.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// GetJSON attempts to get the key and unmarshal into dest.
// Returns (true, nil) if found and unmarshaled, (false, nil) if not found.
// A value that no longer parses is treated as absent.
func GetJSON(ctx context.Context, s Store, key string, dest any) (bool, error) {
	b, found, err := s.Get(ctx, key)
	if err != nil {
		return false, err
	}
	if !found {
		return false, nil
	}
	if err := json.Unmarshal(b, dest); err != nil {
		return false, nil
	}
	return true, nil
}

// SetJSON marshals v and sets the key with TTL.
func SetJSON(ctx context.Context, s Store, key string, v any, ttl time.Duration) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.Set(ctx, key, b, ttl)
}

// CacheAside tries the store first, on miss it calls fetch (which should
// populate dest), then stores the result with ttl (best-effort).
func CacheAside(ctx context.Context, s Store, key string, dest any, ttl time.Duration, fetch func() error) error {
	found, err := GetJSON(ctx, s, key, dest)
	if err == nil && found {
		return nil
	}

	if err := fetch(); err != nil {
		return err
	}

	_ = SetJSON(ctx, s, key, dest, ttl)
	return nil
}

type memoryRecord struct {
	value     []byte
	expiresAt time.Time
}

// Memory is an in-memory Store used when Redis is unavailable and in tests.
type Memory struct {
	mu      sync.RWMutex
	records map[string]memoryRecord
}

func NewMemory() *Memory {
	return &Memory{records: make(map[string]memoryRecord)}
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.RLock()
	record, exists := m.records[key]
	m.mu.RUnlock()

	if !exists {
		return nil, false, nil
	}
	if !record.expiresAt.IsZero() && time.Now().After(record.expiresAt) {
		m.mu.Lock()
		delete(m.records, key)
		m.mu.Unlock()
		return nil, false, nil
	}
	return record.value, true, nil
}

func (m *Memory) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	record := memoryRecord{value: append([]byte(nil), value...)}
	if ttl > 0 {
		record.expiresAt = time.Now().Add(ttl)
	}

	m.mu.Lock()
	m.records[key] = record
	m.mu.Unlock()
	return nil
}

func (m *Memory) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	delete(m.records, key)
	m.mu.Unlock()
	return nil
}
