package ipgeo

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/place-discovery/internal/config"
	"github.com/place-discovery/internal/domain"
	"github.com/place-discovery/internal/domain/repository"
)

func newTestClient(t *testing.T, status int, body string, gotPath *string) repository.LocationProvider {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if gotPath != nil {
			*gotPath = r.URL.Path
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)

	return NewClient(&config.LocationConfig{
		Timeout:      2 * time.Second,
		IPGeoBaseURL: server.URL,
	}, zap.NewNop())
}

func TestClient_Locate(t *testing.T) {
	t.Run("successful lookup", func(t *testing.T) {
		var path string
		c := newTestClient(t, http.StatusOK,
			`{"status":"success","lat":12.9716,"lon":77.5946,"proxy":false,"hosting":false}`, &path)

		point, err := c.Locate(context.Background(), repository.LocateOptions{ClientIP: "49.207.1.1", HighAccuracy: true})

		require.NoError(t, err)
		assert.Equal(t, &domain.Point{Lat: 12.9716, Lon: 77.5946}, point)
		assert.Equal(t, "/json/49.207.1.1", path)
	})

	t.Run("empty ip asks for caller address", func(t *testing.T) {
		var path string
		c := newTestClient(t, http.StatusOK, `{"status":"success","lat":1,"lon":2}`, &path)

		_, err := c.Locate(context.Background(), repository.LocateOptions{})

		require.NoError(t, err)
		assert.Equal(t, "/json/", path)
	})

	t.Run("provider failure status", func(t *testing.T) {
		c := newTestClient(t, http.StatusOK, `{"status":"fail","message":"private range"}`, nil)

		point, err := c.Locate(context.Background(), repository.LocateOptions{ClientIP: "10.0.0.1"})

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "private range")
		assert.Nil(t, point)
	})

	t.Run("high accuracy rejects hosting", func(t *testing.T) {
		body := `{"status":"success","lat":1,"lon":2,"hosting":true}`

		_, err := newTestClient(t, http.StatusOK, body, nil).
			Locate(context.Background(), repository.LocateOptions{ClientIP: "1.1.1.1", HighAccuracy: true})
		assert.Error(t, err)

		point, err := newTestClient(t, http.StatusOK, body, nil).
			Locate(context.Background(), repository.LocateOptions{ClientIP: "1.1.1.1"})
		require.NoError(t, err)
		assert.Equal(t, 1.0, point.Lat)
	})

	t.Run("http error", func(t *testing.T) {
		c := newTestClient(t, http.StatusTooManyRequests, `rate limited`, nil)

		_, err := c.Locate(context.Background(), repository.LocateOptions{ClientIP: "1.1.1.1"})

		assert.Error(t, err)
	})

	t.Run("invalid ip", func(t *testing.T) {
		c := newTestClient(t, http.StatusOK, `{}`, nil)

		_, err := c.Locate(context.Background(), repository.LocateOptions{ClientIP: "not-an-ip"})

		assert.Error(t, err)
	})

	t.Run("context timeout", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-time.After(time.Second):
			case <-r.Context().Done():
			}
		}))
		defer server.Close()

		c := NewClient(&config.LocationConfig{Timeout: 5 * time.Second, IPGeoBaseURL: server.URL}, zap.NewNop())
		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		_, err := c.Locate(ctx, repository.LocateOptions{ClientIP: "1.1.1.1"})

		assert.Error(t, err)
	})
}
