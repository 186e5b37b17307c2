package checkout

import (
	"encoding/json"
	"fmt"
	"sync"

	"github.com/hatbazar/marketplace-api/internal/domain"
)

// Storage keys shared with the client for cart handoff and tracking notes
const (
	KeyCart              = "cart"
	KeyLastOrderTracking = "lastOrderTracking"
	KeyBuyNowProductID   = "buyNowProductId"
)

// KVStore is the client-handoff durable storage. It is injected into the
// orchestrator so tests can fake it.
type KVStore interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	Delete(key string) error
}

// MemoryStore is an in-memory KVStore
type MemoryStore struct {
	mu sync.RWMutex
	m  map[string]string
}

// NewMemoryStore creates an empty in-memory store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{m: make(map[string]string)}
}

func (s *MemoryStore) Get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.m[key]
	return v, ok
}

func (s *MemoryStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[key] = value
	return nil
}

func (s *MemoryStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, key)
	return nil
}

// SaveCartLines serializes the selected cart lines under the cart key for
// the cart-view to checkout-view handoff
func SaveCartLines(kv KVStore, lines []domain.CartLine) error {
	data, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("failed to marshal cart lines: %w", err)
	}
	return kv.Set(KeyCart, string(data))
}

// LoadCartLines reads the handed-off cart lines; a missing key yields an
// empty list, not an error
func LoadCartLines(kv KVStore) ([]domain.CartLine, error) {
	raw, ok := kv.Get(KeyCart)
	if !ok {
		return nil, nil
	}
	var lines []domain.CartLine
	if err := json.Unmarshal([]byte(raw), &lines); err != nil {
		return nil, fmt.Errorf("failed to unmarshal cart lines: %w", err)
	}
	return lines, nil
}

// TakeBuyNowProductID reads the transient buy-now product id and clears it,
// so the key is consumed at most once
func TakeBuyNowProductID(kv KVStore) (string, bool) {
	id, ok := kv.Get(KeyBuyNowProductID)
	if !ok || id == "" {
		return "", false
	}
	_ = kv.Delete(KeyBuyNowProductID)
	return id, true
}

// LoadTrackingNote reads the last written tracking note, if any
func LoadTrackingNote(kv KVStore) (*domain.TrackingNote, error) {
	raw, ok := kv.Get(KeyLastOrderTracking)
	if !ok {
		return nil, nil
	}
	var note domain.TrackingNote
	if err := json.Unmarshal([]byte(raw), &note); err != nil {
		return nil, fmt.Errorf("failed to unmarshal tracking note: %w", err)
	}
	return &note, nil
}
