package server_test

import (
	"context"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/arllen133/sqldemo/internal/server"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServer_ServeAndShutdown(t *testing.T) {
	srv := server.NewServer("127.0.0.1:0", newHandler(t),
		server.OptServerLogger(discard),
		server.OptServerMetricsAddr("127.0.0.1:0"),
		server.OptServerShutdownTimeout(time.Second),
	)
	require.NoError(t, srv.Open())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx) }()

	resp, err := http.Get("http://" + srv.Addr().String() + "/users")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), `"name":"Jane Smith"`)

	resp, err = http.Get("http://" + srv.MetricsAddr().String() + "/metrics")
	require.NoError(t, err)
	body, _ = io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "sqldemo_http_requests_total")

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}
}

func TestServer_MetricsDisabled(t *testing.T) {
	srv := server.NewServer("127.0.0.1:0", newHandler(t), server.OptServerLogger(discard))
	assert.Nil(t, srv.Addr())
	require.NoError(t, srv.Open())
	defer func() {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_ = srv.Serve(ctx)
	}()

	assert.NotNil(t, srv.Addr())
	assert.Nil(t, srv.MetricsAddr())
}

func TestServer_OpenError(t *testing.T) {
	srv := server.NewServer("127.0.0.1:-1", newHandler(t), server.OptServerLogger(discard))
	assert.Error(t, srv.Open())
}
