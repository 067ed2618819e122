package utils

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRefreshHealthRecordsEachStore(t *testing.T) {
	mr := miniredis.RunT(t)
	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	states := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	refreshHealth(context.Background(), cache, states, nil)

	status := GetHealthStatus()
	assert.True(t, status.Cache)
	assert.True(t, status.States)
	assert.False(t, status.Mongo)
	require.False(t, status.CheckedAt.IsZero())
}

func TestRefreshHealthReportsUnreachableRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	mr.Close()

	refreshHealth(context.Background(), cache, nil, nil)

	status := GetHealthStatus()
	assert.False(t, status.Cache)
	assert.False(t, status.States)
}
