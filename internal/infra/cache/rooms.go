package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"strconv"
	"time"

	"roomboard/internal/domain/calendar"
	"roomboard/internal/domain/room"
	"roomboard/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix     = "roomboard:rooms:"
	generationKey = keyPrefix + "gen"
	DefaultTTL    = 30 * time.Second
	// DefaultAvailabilityTTL applies to availability and free-in-range
	// results. Bookings are written by another service and never bump the
	// generation, so these entries may lag by at most this long.
	DefaultAvailabilityTTL = 5 * time.Second
)

// Client is the subset of redis.Cmdable used here.
type Client interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.StatusCmd
	Incr(ctx context.Context, key string) *redis.IntCmd
}

// RoomSource is a read-through cache in front of another RoomSource. Every
// key embeds a generation number; InvalidateRooms bumps it so entries written
// before a mutation are never read again and expire on their own.
// Redis failures are logged and the request goes straight to the backing store.
type RoomSource struct {
	next            queries.RoomSource
	client          Client
	ttl             time.Duration
	availabilityTTL time.Duration
	logger          *slog.Logger
}

var _ queries.RoomSource = (*RoomSource)(nil)

type Option func(*RoomSource)

// WithAvailabilityTTL overrides DefaultAvailabilityTTL. It never exceeds the
// general ttl.
func WithAvailabilityTTL(d time.Duration) Option {
	return func(c *RoomSource) {
		if d > 0 {
			c.availabilityTTL = d
		}
	}
}

func NewRoomSource(next queries.RoomSource, client Client, ttl time.Duration, logger *slog.Logger, opts ...Option) *RoomSource {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if logger == nil {
		logger = slog.Default()
	}
	c := &RoomSource{next: next, client: client, ttl: ttl, availabilityTTL: DefaultAvailabilityTTL, logger: logger}
	for _, opt := range opts {
		opt(c)
	}
	c.availabilityTTL = min(c.availabilityTTL, c.ttl)
	return c
}

func (c *RoomSource) FetchAvailability(ctx context.Context, date calendar.Date) ([]room.RoomWithAvailability, error) {
	return readThrough(ctx, c, "availability:"+date.String(), c.availabilityTTL, func() ([]room.RoomWithAvailability, error) {
		return c.next.FetchAvailability(ctx, date)
	})
}

func (c *RoomSource) FetchAvailableInRange(ctx context.Context, start, end time.Time) ([]room.Room, error) {
	key := "range:" + start.UTC().Format(time.RFC3339) + ":" + end.UTC().Format(time.RFC3339)
	return readThrough(ctx, c, key, c.availabilityTTL, func() ([]room.Room, error) {
		return c.next.FetchAvailableInRange(ctx, start, end)
	})
}

func (c *RoomSource) FetchOrganizationRooms(ctx context.Context, organizationID uuid.UUID) ([]room.Room, error) {
	return readThrough(ctx, c, "org:"+organizationID.String(), c.ttl, func() ([]room.Room, error) {
		return c.next.FetchOrganizationRooms(ctx, organizationID)
	})
}

func (c *RoomSource) FetchAllRooms(ctx context.Context) ([]room.Room, error) {
	return readThrough(ctx, c, "all", c.ttl, func() ([]room.Room, error) {
		return c.next.FetchAllRooms(ctx)
	})
}

func (c *RoomSource) FetchOrganizations(ctx context.Context) ([]room.Organization, error) {
	return readThrough(ctx, c, "organizations", c.ttl, func() ([]room.Organization, error) {
		return c.next.FetchOrganizations(ctx)
	})
}

func (c *RoomSource) InvalidateRooms(ctx context.Context) error {
	return c.client.Incr(ctx, generationKey).Err()
}

func (c *RoomSource) generation(ctx context.Context) (string, bool) {
	gen, err := c.client.Get(ctx, generationKey).Result()
	switch {
	case errors.Is(err, redis.Nil):
		return "0", true
	case err != nil:
		c.logger.WarnContext(ctx, "room cache unavailable", "error", err)
		return "", false
	}
	if _, err := strconv.ParseInt(gen, 10, 64); err != nil {
		return "0", true
	}
	return gen, true
}

func readThrough[T any](ctx context.Context, c *RoomSource, name string, ttl time.Duration, load func() ([]T, error)) ([]T, error) {
	gen, ok := c.generation(ctx)
	if !ok {
		return load()
	}
	key := keyPrefix + gen + ":" + name

	if cached, err := c.client.Get(ctx, key).Result(); err == nil {
		var rows []T
		if err := json.Unmarshal([]byte(cached), &rows); err == nil {
			return rows, nil
		}
		c.logger.WarnContext(ctx, "discarding undecodable room cache entry", "key", key)
	} else if !errors.Is(err, redis.Nil) {
		c.logger.WarnContext(ctx, "room cache read failed", "key", key, "error", err)
	}

	rows, err := load()
	if err != nil {
		return nil, err
	}
	data, err := json.Marshal(rows)
	if err != nil {
		c.logger.WarnContext(ctx, "room cache encode failed", "key", key, "error", err)
		return rows, nil
	}
	if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
		c.logger.WarnContext(ctx, "room cache write failed", "key", key, "error", err)
	}
	return rows, nil
}

// Disabled stands in when no redis address is configured.
type Disabled struct{}

func (Disabled) InvalidateRooms(context.Context) error { return nil }
