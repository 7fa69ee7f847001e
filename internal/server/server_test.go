package server

import (
	"context"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/deppfellow/bfhl/internal/config"
	"github.com/deppfellow/bfhl/internal/lib/gemini"
	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestServer(t *testing.T, mutate func(*config.Config)) *Server {
	t.Helper()

	cfg := config.DefaultConfig()
	if mutate != nil {
		mutate(cfg)
	}

	logger := zerolog.Nop()
	s, err := New(cfg, &logger, nil)
	require.NoError(t, err)
	return s
}

func TestNew_WithoutCredential(t *testing.T) {
	s := newTestServer(t, nil)

	assert.False(t, s.Answerer.Configured())
	assert.Nil(t, s.Metrics)

	_, err := s.Answerer.Ask(context.Background(), "anything")
	assert.True(t, errors.Is(err, gemini.ErrCredentialMissing))
}

func TestNew_MetricsEnabled(t *testing.T) {
	s := newTestServer(t, func(cfg *config.Config) {
		cfg.Observability.Metrics.Enabled = true
	})

	assert.NotNil(t, s.Metrics)
}

func TestStart_RequiresSetup(t *testing.T) {
	s := newTestServer(t, nil)
	assert.Error(t, s.Start())
}

func TestServeAndShutdown(t *testing.T) {
	s := newTestServer(t, nil)
	s.SetupHTTPServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "ok")
	}))

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- s.Serve(listener) }()

	resp, err := http.Get("http://" + listener.Addr().String() + "/")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, "ok", string(body))

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, s.Shutdown(ctx))

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop")
	}
}
