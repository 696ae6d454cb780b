package cache_test

import (
	"context"
	"errors"
	"roombook/infras/otel/mocks"
	"roombook/shared/cache"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func TestNewRedisCache_Disabled(t *testing.T) {
	c := cache.NewRedisCache(nil, mocks.NewOtel())
	ctx := context.Background()

	var value []string
	err := c.Get(ctx, "room:gets", &value)

	assert.Error(t, err)
	assert.True(t, errors.Is(err, cache.Nil))
	assert.NoError(t, c.Save(ctx, "room:gets", []string{"a"}, 10))
	assert.NoError(t, c.Delete(ctx, "room:gets"))
	assert.NoError(t, c.Clear(ctx, "room:*"))
}

type versionedCache struct {
	cache.RedisCache
	generation uint64
	saved      []string
	deleted    []string
	onSave     func()
}

func (c *versionedCache) Generation() uint64 { return c.generation }

func (c *versionedCache) Save(_ context.Context, key string, _ any, _ int) error {
	c.saved = append(c.saved, key)

	if c.onSave != nil {
		c.onSave()
	}

	return nil
}

func (c *versionedCache) Delete(_ context.Context, key string) error {
	c.deleted = append(c.deleted, key)

	return nil
}

func TestSaveIfCurrent(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name        string
		setup       func(c *versionedCache) uint64
		wantSaved   int
		wantDeleted int
	}{
		{
			name:      "no clear since read",
			setup:     func(c *versionedCache) uint64 { return c.generation },
			wantSaved: 1,
		},
		{
			name: "cleared before save",
			setup: func(c *versionedCache) uint64 {
				gen := c.generation
				c.generation++

				return gen
			},
		},
		{
			name: "cleared while saving",
			setup: func(c *versionedCache) uint64 {
				c.onSave = func() { c.generation++ }

				return c.generation
			},
			wantSaved:   1,
			wantDeleted: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &versionedCache{generation: 3}
			gen := tt.setup(c)

			assert.NoError(t, cache.SaveIfCurrent(ctx, c, gen, "room:gets", []string{"a"}, 10))
			assert.Len(t, c.saved, tt.wantSaved)
			assert.Len(t, c.deleted, tt.wantDeleted)
		})
	}
}

func TestSaveIfCurrent_UnversionedCache(t *testing.T) {
	c := cache.NewRedisCache(nil, mocks.NewOtel())

	assert.Zero(t, cache.Generation(c))
	assert.NoError(t, cache.SaveIfCurrent(context.Background(), c, 0, "room:gets", []string{"a"}, 10))
}

func TestRedisCache_ClearBumpsGeneration(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1, DialTimeout: 50 * time.Millisecond})
	defer client.Close()

	c := cache.NewRedisCache(client, mocks.NewOtel())
	ctx := context.Background()

	gen := cache.Generation(c)

	// the clear fails without a server, but it still counts
	assert.Error(t, c.Clear(ctx, "room:*"))
	assert.Equal(t, gen+1, cache.Generation(c))

	// a stale value is dropped without reaching redis
	assert.NoError(t, cache.SaveIfCurrent(ctx, c, gen, "room:gets", []string{"a"}, 10))
}
