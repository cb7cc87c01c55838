package collyfetcher

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFetchReturnsBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "test-agent", r.UserAgent())
		_, _ = w.Write([]byte("<html>ok</html>"))
	}))
	defer srv.Close()

	f := New(Config{UserAgent: "test-agent"})
	body, err := f.Fetch(context.Background(), srv.URL, 5*time.Second)
	require.NoError(t, err)
	require.Equal(t, []byte("<html>ok</html>"), body)
}

func TestFetchErrorOnServerFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	f := New(Config{})
	_, err := f.Fetch(context.Background(), srv.URL, 5*time.Second)
	require.Error(t, err)
}

func TestFetchSameURLTwice(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits++
		_, _ = w.Write([]byte("body"))
	}))
	defer srv.Close()

	f := New(Config{})
	for i := 0; i < 2; i++ {
		body, err := f.Fetch(context.Background(), srv.URL, 5*time.Second)
		require.NoError(t, err)
		require.Equal(t, []byte("body"), body)
	}
	require.Equal(t, 2, hits)
}

func TestFetchConcurrentUse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("body"))
	}))
	defer srv.Close()

	f := New(Config{})
	errs := make(chan error, 8)
	for i := 0; i < 8; i++ {
		go func() {
			_, err := f.Fetch(context.Background(), srv.URL, 5*time.Second)
			errs <- err
		}()
	}
	for i := 0; i < 8; i++ {
		require.NoError(t, <-errs)
	}
}
