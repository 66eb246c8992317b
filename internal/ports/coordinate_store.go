package ports

import (
	"context"

	"order-fulfillment-service/internal/domain"
)

// PersistPolicy controls what Persist does when an entry for the address
// already exists.
type PersistPolicy int

const (
	// KeepExisting ignores the new value (entries are immutable once created).
	KeepExisting PersistPolicy = iota
	// Replace overwrites the entry, allowing a previously failed resolution
	// to be upgraded to a resolved one.
	Replace
)

// Port: durable mapping from a trimmed address string to coordinates or an
// explicit "unresolvable" marker.
type CoordinateStore interface {
	// Lookup returns only entries already cached, keyed by address; unknown
	// addresses are omitted. A present nil value is a cached negative result,
	// so callers can tell "not cached" from "cached as unresolvable".
	Lookup(ctx context.Context, addresses []string) (map[string]*domain.Coordinates, error)

	// Persist inserts an entry (coords == nil records a negative result).
	// Duplicate-key races must resolve per the store's PersistPolicy and
	// never surface a uniqueness violation to the caller.
	Persist(ctx context.Context, address string, coords *domain.Coordinates) error
}
