package main

import (
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"testing"
	"time"

	"github.com/phrazzld/task-api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serviceInput(title string) service.CreateTaskInput {
	return service.CreateTaskInput{Title: title}
}

func TestServe_GracefulShutdown(t *testing.T) {
	app, buf := newTestApp(t, testConfig())

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- app.serve(ctx, ln, app.setupRouter())
	}()

	url := fmt.Sprintf("http://%s/health", ln.Addr().String())
	client := &http.Client{Timeout: 2 * time.Second}

	var resp *http.Response
	require.Eventually(t, func() bool {
		resp, err = client.Get(url)
		return err == nil
	}, 2*time.Second, 20*time.Millisecond)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"ok"}`, string(body))

	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not shut down")
	}

	assert.Contains(t, buf.String(), "Server shutdown completed")
}

func TestServe_ListenerFailure(t *testing.T) {
	app, _ := newTestApp(t, testConfig())

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	require.NoError(t, ln.Close())

	err = app.serve(context.Background(), ln, app.setupRouter())
	assert.Error(t, err)
}

func TestStartHTTPServer_PortInUse(t *testing.T) {
	ln, err := net.Listen("tcp", ":0")
	require.NoError(t, err)
	defer func() { _ = ln.Close() }()

	cfg := testConfig()
	cfg.Server.Port = ln.Addr().(*net.TCPAddr).Port
	app, _ := newTestApp(t, cfg)

	err = app.startHTTPServer(context.Background(), app.setupRouter())
	assert.Error(t, err)
}
