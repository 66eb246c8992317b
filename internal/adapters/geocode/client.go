package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"order-fulfillment-service/internal/domain"
	"order-fulfillment-service/internal/platform/obs"
	"order-fulfillment-service/internal/ports"

	"golang.org/x/time/rate"
)

const defaultBaseURL = "https://geocode-maps.yandex.ru/1.x"

// Client implements the Geocoder port against an HTTP geocoding provider.
//
// It coordinates:
//   - Outbound rate limiting (the provider bills and throttles per request)
//   - External API calls with retry/backoff and a bounded timeout
//   - Classification of every outcome (resolved, not found, transient failure)
//
// The client is safe for concurrent use.
type Client struct {
	session *http.Client
	apiKey  string
	baseURL string
	limiter *rate.Limiter
}

func NewClient(apiKey, baseURL string, timeout time.Duration, requestsPerSecond float64) (*Client, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("geocoder api key is empty")
	}

	if strings.TrimSpace(baseURL) == "" {
		baseURL = defaultBaseURL
	}
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	if requestsPerSecond <= 0 {
		requestsPerSecond = 5
	}

	return &Client{
		session: &http.Client{Timeout: timeout},
		apiKey:  apiKey,
		baseURL: baseURL,
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), 1),
	}, nil
}

// Provider response envelope. Pointer fields distinguish a missing level
// (malformed envelope, a transient failure) from an empty candidate list
// (a permanent negative result).
type geocodeResponse struct {
	Response *struct {
		GeoObjectCollection *struct {
			FeatureMember []struct {
				GeoObject *struct {
					Point *struct {
						Pos string `json:"pos"`
					} `json:"Point"`
				} `json:"GeoObject"`
			} `json:"featureMember"`
		} `json:"GeoObjectCollection"`
	} `json:"response"`
}

// Geocode resolves one address. It returns ports.ErrAddressNotFound for
// permanent negatives (zero candidates, unparseable position) and a plain
// error for transient failures that must not be cached.
func (c *Client) Geocode(ctx context.Context, address string) (_ domain.Coordinates, err error) {
	defer obs.Time(ctx, "geocode.Geocode")(&err)

	if strings.TrimSpace(address) == "" {
		return domain.Coordinates{}, errors.New("geocode: address must be non-empty")
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return domain.Coordinates{}, fmt.Errorf("geocode: wait for rate limiter: %w", err)
	}

	resp, err := c.doWithRetry(ctx, func() (*http.Request, error) {
		return c.newRequest(ctx, address)
	})
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("geocode: execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.Coordinates{}, fmt.Errorf("geocode: unexpected status: %d", resp.StatusCode)
	}

	var decoded geocodeResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return domain.Coordinates{}, fmt.Errorf("geocode: decode response: %w", err)
	}

	if decoded.Response == nil || decoded.Response.GeoObjectCollection == nil {
		return domain.Coordinates{}, errors.New("geocode: unexpected response shape")
	}

	members := decoded.Response.GeoObjectCollection.FeatureMember
	if len(members) == 0 {
		return domain.Coordinates{}, fmt.Errorf("geocode %q: %w", address, ports.ErrAddressNotFound)
	}

	// First member is the provider's most relevant candidate.
	best := members[0]
	if best.GeoObject == nil || best.GeoObject.Point == nil {
		return domain.Coordinates{}, errors.New("geocode: unexpected response shape: missing point")
	}

	// The position field is "<lon> <lat>"; swap into (lat, lon).
	fields := strings.Fields(best.GeoObject.Point.Pos)
	if len(fields) != 2 {
		return domain.Coordinates{}, fmt.Errorf("geocode %q: malformed position %q: %w",
			address, best.GeoObject.Point.Pos, ports.ErrAddressNotFound)
	}

	lon, lonErr := strconv.ParseFloat(fields[0], 64)
	lat, latErr := strconv.ParseFloat(fields[1], 64)
	if lonErr != nil || latErr != nil {
		return domain.Coordinates{}, fmt.Errorf("geocode %q: malformed position %q: %w",
			address, best.GeoObject.Point.Pos, ports.ErrAddressNotFound)
	}

	return domain.Coordinates{Lat: lat, Lon: lon}, nil
}
