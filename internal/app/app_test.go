package app

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/law-makers/autocrawl/internal/config"
	"github.com/law-makers/autocrawl/internal/ui"
	"github.com/law-makers/autocrawl/internal/utils/output"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_WiresDependencies(t *testing.T) {
	cfg := config.Default()
	cfg.Progress = false
	cfg.Proxies = []string{"http://127.0.0.1:3128"}

	a, err := New(context.Background(), cfg)
	require.NoError(t, err)
	defer a.Close(context.Background())

	assert.NotNil(t, a.Cache)
	assert.Equal(t, 1, a.Proxies.Len())
	assert.Nil(t, a.Progress)
	assert.Equal(t, "StaticFetcher", a.Fetcher.Name())
	assert.Len(t, a.RunID, 16)
}

func TestNew_CacheDisabled(t *testing.T) {
	cfg := config.Default()
	cfg.CacheEnabled = false
	cfg.Progress = false

	a, err := New(context.Background(), cfg)
	require.NoError(t, err)
	defer a.Close(context.Background())

	assert.Nil(t, a.Cache)
}

func TestNew_NilConfig(t *testing.T) {
	_, err := New(context.Background(), nil)
	assert.Error(t, err)
}

func TestNewWriter(t *testing.T) {
	cfg := config.Default()
	assert.IsType(t, &output.DelimitedWriter{}, NewWriter(cfg))

	cfg.Format = config.FormatJSON
	assert.IsType(t, output.JSONWriter{}, NewWriter(cfg))
}

func TestSetupLogging(t *testing.T) {
	defer zerolog.SetGlobalLevel(zerolog.TraceLevel)

	var buf bytes.Buffer
	cfg := config.Default()
	cfg.JSONLog = true
	cfg.LogLevel = "info"

	logger := SetupLogging(cfg, &buf)
	logger.Debug().Msg("hidden")
	logger.Info().Str("brand", "audi").Msg("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"brand":"audi"`)
	assert.Equal(t, zerolog.InfoLevel, zerolog.GlobalLevel())
}

func TestClose_LogsRunCounters(t *testing.T) {
	cfg := config.Default()
	cfg.Progress = false

	a, err := New(context.Background(), cfg)
	require.NoError(t, err)

	defer zerolog.SetGlobalLevel(zerolog.TraceLevel)
	zerolog.SetGlobalLevel(zerolog.DebugLevel)

	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	a.Logger = &logger
	a.Progress = ui.NewProgress(io.Discard)
	a.Progress.ListingDone("audi")
	a.Progress.ListingDone("audi")
	_, _ = a.Cache.Get("https://cars.av.by/audi/a4/1")

	require.NoError(t, a.Close(context.Background()))

	out := buf.String()
	assert.Contains(t, out, `"listings":2`)
	assert.Contains(t, out, `"misses":1`)
	assert.Contains(t, out, "Detail cache stats")
}
