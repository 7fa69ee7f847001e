package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/deppfellow/bfhl/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLoggerService_DisabledWithoutLicense(t *testing.T) {
	service := NewLoggerService(config.DefaultObservabilityConfig())

	assert.Nil(t, service.GetApplication())
	service.Shutdown()
}

func TestNewLogger_JSONFields(t *testing.T) {
	cfg := config.DefaultObservabilityConfig()
	cfg.Logging.Level = "info"

	var buf bytes.Buffer
	log := newLogger(cfg, nil, &buf)

	log.Debug().Msg("hidden")
	log.Info().Str("key", "value").Msg("visible")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "visible", line["message"])
	assert.Equal(t, "bfhl", line["service"])
	assert.Equal(t, "development", line["environment"])
	assert.Equal(t, "value", line["key"])
}

func TestWithTraceContext_NilTransaction(t *testing.T) {
	var buf bytes.Buffer
	log := newLogger(config.DefaultObservabilityConfig(), nil, &buf)

	traced := WithTraceContext(log, nil)
	traced.Info().Msg("plain")

	assert.NotContains(t, buf.String(), "trace.id")
}
