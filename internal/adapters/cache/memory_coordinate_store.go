package cache

import (
	"context"
	"errors"
	"strings"
	"sync"

	"order-fulfillment-service/internal/domain"
	"order-fulfillment-service/internal/ports"
)

// MemoryCoordinateStore is an in-process CoordinateStore used by tests and
// local runs without a database.
type MemoryCoordinateStore struct {
	mu      sync.Mutex
	policy  ports.PersistPolicy
	entries map[string]*domain.Coordinates
}

func NewMemoryCoordinateStore(policy ports.PersistPolicy) *MemoryCoordinateStore {
	return &MemoryCoordinateStore{
		policy:  policy,
		entries: make(map[string]*domain.Coordinates),
	}
}

func (s *MemoryCoordinateStore) Lookup(
	_ context.Context,
	addresses []string,
) (map[string]*domain.Coordinates, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]*domain.Coordinates)
	for _, a := range addresses {
		a = strings.TrimSpace(a)
		if a == "" {
			continue
		}

		coords, ok := s.entries[a]
		if !ok {
			continue
		}

		if coords == nil {
			out[a] = nil
			continue
		}
		c := *coords
		out[a] = &c
	}

	return out, nil
}

func (s *MemoryCoordinateStore) Persist(
	_ context.Context,
	address string,
	coords *domain.Coordinates,
) error {
	address = strings.TrimSpace(address)
	if address == "" {
		return errors.New("persist coordinate cache: empty address key")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.entries[address]; exists && s.policy == ports.KeepExisting {
		return nil
	}

	if coords == nil {
		s.entries[address] = nil
		return nil
	}

	s.entries[address] = &domain.Coordinates{
		Lat: domain.Round2(coords.Lat),
		Lon: domain.Round2(coords.Lon),
	}
	return nil
}

// Len reports the number of cached entries (resolved and negative).
func (s *MemoryCoordinateStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}
