package cache

import (
	"context"
	"fmt"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeleteByPattern(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	ctx := context.Background()
	for i := 0; i < 450; i++ {
		require.NoError(t, rdb.Set(ctx, fmt.Sprintf("embed:site:%d", i), "x", 0).Err())
	}
	require.NoError(t, rdb.Set(ctx, "embed:pick:1", "x", 0).Err())

	n, err := DeleteByPattern(ctx, rdb, "embed:site:*")
	require.NoError(t, err)
	assert.EqualValues(t, 450, n)
	assert.True(t, mr.Exists("embed:pick:1"))
	assert.False(t, mr.Exists("embed:site:7"))
	assert.False(t, mr.Exists("embed:site:449"))
	assert.Equal(t, []string{"embed:pick:1"}, mr.Keys())
}

func TestDeleteByPatternNoMatch(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer rdb.Close()

	require.NoError(t, rdb.Set(context.Background(), "embed:pick:1", "x", 0).Err())

	n, err := DeleteByPattern(context.Background(), rdb, "embed:site:*")
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.True(t, mr.Exists("embed:pick:1"))
}

func TestConnectRedis(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb, err := ConnectRedis(mr.Addr())
	require.NoError(t, err)
	defer rdb.Close()

	_, err = ConnectRedis("127.0.0.1:1")
	assert.Error(t, err)
}
