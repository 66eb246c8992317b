package ports

import (
	"context"
	"errors"

	"order-fulfillment-service/internal/domain"
)

// ErrAddressNotFound marks a permanent negative geocoding result: the provider
// answered but found no candidate for the address (or returned an unparseable
// position). Callers may cache it. Any other error from Geocode is transient
// (network, HTTP status, malformed envelope) and must not be cached.
var ErrAddressNotFound = errors.New("address not found")

// Contract for resolving a single free-text address into coordinates via an
// external provider.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (domain.Coordinates, error)
}
