package redis_test

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dbredis "authapi/pkg/db/redis"
)

func configFor(t *testing.T, mr *miniredis.Miniredis) *dbredis.Config {
	t.Helper()
	port, err := strconv.Atoi(mr.Port())
	require.NoError(t, err)

	cfg := dbredis.DefaultConfig()
	cfg.Host = mr.Host()
	cfg.Port = port
	return cfg
}

func TestNewClient(t *testing.T) {
	ctx := context.Background()

	t.Run("connects and pings", func(t *testing.T) {
		mr := miniredis.RunT(t)

		client, err := dbredis.NewClient(ctx, configFor(t, mr))
		require.NoError(t, err)

		require.NoError(t, client.Ping(ctx))
		require.NoError(t, client.RawClient().Set(ctx, "k", "v", 0).Err())
		mr.CheckGet(t, "k", "v")
		require.NoError(t, client.Close(ctx))
	})

	t.Run("unreachable server", func(t *testing.T) {
		mr := miniredis.RunT(t)
		cfg := configFor(t, mr)
		cfg.Timeout = 200 * time.Millisecond
		mr.Close()

		client, err := dbredis.NewClient(ctx, cfg)
		require.Error(t, err)
		assert.Nil(t, client)
		assert.Contains(t, err.Error(), dbredis.ErrConnect)
	})
}
