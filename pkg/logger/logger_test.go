package logger_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"authapi/pkg/logger"
)

func TestNewLogger(t *testing.T) {
	levels := []string{"debug", "info", "warn", "warning", "error", "invalid", ""}

	for _, env := range []logger.Environment{logger.Development, logger.Production} {
		for _, level := range levels {
			t.Run(string(env)+"/level="+level, func(t *testing.T) {
				log, err := logger.NewLogger(env, level)
				require.NoError(t, err)
				require.NotNil(t, log)

				ctx := logger.NewRequestIDContext(context.Background(), "test-request-id")
				assert.NotPanics(t, func() {
					log.Debug(ctx, "debug message")
					log.Info(ctx, "info message")
					log.Warn(ctx, "warn message")
					log.Error(ctx, "error message")
				})
			})
		}
	}
}

func TestFromContext(t *testing.T) {
	t.Run("logger stored in context", func(t *testing.T) {
		testLogger, err := logger.NewLogger(logger.Development, "debug")
		require.NoError(t, err)

		ctx := logger.NewContext(context.Background(), testLogger)

		got, err := logger.FromContext(ctx)
		require.NoError(t, err)
		assert.Same(t, testLogger, got)
	})

	t.Run("no logger in context", func(t *testing.T) {
		got, err := logger.FromContext(context.Background())
		require.Error(t, err)
		assert.Nil(t, got)
		assert.ErrorIs(t, err, logger.ErrLoggerNotFound)
	})

	t.Run("foreign value under another key", func(t *testing.T) {
		type ctxKeyType struct{}
		ctx := context.WithValue(context.Background(), ctxKeyType{}, "not a logger")

		got, err := logger.FromContext(ctx)
		require.Error(t, err)
		assert.Nil(t, got)
	})
}

func TestLog(t *testing.T) {
	t.Run("context logger wins over global", func(t *testing.T) {
		global := logger.NewNop()
		logger.SetGlobalLogger(global)
		t.Cleanup(func() { logger.SetGlobalLogger(nil) })

		local := logger.NewNop()
		ctx := logger.NewContext(context.Background(), local)

		assert.Same(t, local, logger.Log(ctx))
		assert.Same(t, global, logger.Log(context.Background()))
	})

	t.Run("fallback when nothing is configured", func(t *testing.T) {
		logger.SetGlobalLogger(nil)

		assert.NotNil(t, logger.Log(context.Background()))
	})

	t.Run("InitGlobalLogger keeps the first logger", func(t *testing.T) {
		logger.SetGlobalLogger(nil)
		t.Cleanup(func() { logger.SetGlobalLogger(nil) })

		require.NoError(t, logger.InitGlobalLogger(logger.Production, "info"))
		first := logger.Log(context.Background())

		require.NoError(t, logger.InitGlobalLogger(logger.Development, "debug"))
		assert.Same(t, first, logger.Log(context.Background()))
	})
}
