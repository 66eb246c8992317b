package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"order-fulfillment-service/internal/domain"
	"order-fulfillment-service/internal/ports"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "coordinate:"

// RedisCoordinateStore keeps the coordinate cache in Redis (durable with
// RDB/AOF persistence enabled). Entries are small JSON documents; a
// resolved=false document is a cached negative result.
type RedisCoordinateStore struct {
	Client *redis.Client
	Policy ports.PersistPolicy
}

func NewRedisCoordinateStore(client *redis.Client, policy ports.PersistPolicy) *RedisCoordinateStore {
	return &RedisCoordinateStore{Client: client, Policy: policy}
}

type redisEntry struct {
	Resolved bool    `json:"resolved"`
	Lat      float64 `json:"lat,omitempty"`
	Lon      float64 `json:"lon,omitempty"`
}

// Lookup fetches cached entries with a single MGET. Unknown addresses are
// omitted; a present nil value is a cached negative result.
func (s *RedisCoordinateStore) Lookup(
	ctx context.Context,
	addresses []string,
) (map[string]*domain.Coordinates, error) {
	if s.Client == nil {
		return nil, errors.New("coordinate cache: redis client is nil")
	}

	seen := map[string]struct{}{}
	uniq := make([]string, 0, len(addresses))
	keys := make([]string, 0, len(addresses))
	for _, a := range addresses {
		a = strings.TrimSpace(a)
		if a == "" {
			continue
		}

		if _, ok := seen[a]; ok {
			continue
		}
		seen[a] = struct{}{}
		uniq = append(uniq, a)
		keys = append(keys, redisKeyPrefix+a)
	}

	if len(uniq) == 0 {
		return map[string]*domain.Coordinates{}, nil
	}

	values, err := s.Client.MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("lookup coordinate cache: redis mget: %w", err)
	}

	out := make(map[string]*domain.Coordinates, len(uniq))
	for i, v := range values {
		if v == nil {
			continue
		}

		raw, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("lookup coordinate cache: unexpected value type for %q", uniq[i])
		}

		var entry redisEntry
		if err := json.Unmarshal([]byte(raw), &entry); err != nil {
			return nil, fmt.Errorf("lookup coordinate cache: decode entry for %q: %w", uniq[i], err)
		}

		if entry.Resolved {
			out[uniq[i]] = &domain.Coordinates{Lat: entry.Lat, Lon: entry.Lon}
		} else {
			out[uniq[i]] = nil
		}
	}

	return out, nil
}

// Persist stores one entry. With KeepExisting the write uses SETNX so a
// concurrent duplicate insert is silently ignored.
func (s *RedisCoordinateStore) Persist(
	ctx context.Context,
	address string,
	coords *domain.Coordinates,
) error {
	if s.Client == nil {
		return errors.New("coordinate cache: redis client is nil")
	}

	address = strings.TrimSpace(address)
	if address == "" {
		return errors.New("persist coordinate cache: empty address key")
	}

	entry := redisEntry{}
	if coords != nil {
		entry = redisEntry{
			Resolved: true,
			Lat:      domain.Round2(coords.Lat),
			Lon:      domain.Round2(coords.Lon),
		}
	}

	payload, err := json.Marshal(entry)
	if err != nil {
		return fmt.Errorf("persist coordinate cache address=%q: encode entry: %w", address, err)
	}

	key := redisKeyPrefix + address
	if s.Policy == ports.Replace {
		err = s.Client.Set(ctx, key, payload, 0).Err()
	} else {
		err = s.Client.SetNX(ctx, key, payload, 0).Err()
	}
	if err != nil {
		return fmt.Errorf("persist coordinate cache address=%q: %w", address, err)
	}

	return nil
}
