package web

import (
	"context"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServeAndShutdown(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /ping", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "pong")
	})
	s := NewService(context.Background(), "127.0.0.1:0", mux)
	require.NoError(t, s.Start())
	assert.Error(t, s.Start())

	resp, err := http.Get("http://" + s.Addr() + "/ping")
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	_ = resp.Body.Close()
	assert.Equal(t, "pong", string(body))

	s.Stop()
	select {
	case err := <-s.Done():
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("web service did not stop")
	}
}

func TestParentCancelStops(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := NewService(ctx, "127.0.0.1:0", http.NewServeMux())
	require.NoError(t, s.Start())
	cancel()
	select {
	case err := <-s.Done():
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("web service did not stop")
	}
}

func TestStartBindError(t *testing.T) {
	s := NewService(context.Background(), "not-an-address", http.NewServeMux())
	assert.Error(t, s.Start())
}
