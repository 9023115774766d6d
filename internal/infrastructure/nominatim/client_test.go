package nominatim

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/trip-atlas/internal/config"
	"github.com/trip-atlas/internal/domain"
)

func TestClient_ReverseGeocode(t *testing.T) {
	logger, _ := zap.NewDevelopment()

	newClient := func(baseURL string) *client {
		cfg := &config.GeocoderConfig{
			BaseURL:        baseURL,
			UserAgent:      "trip-atlas-test/1.0",
			RequestTimeout: 5,
			Zoom:           10,
		}
		return NewNominatimClient(cfg, logger).(*client)
	}

	t.Run("resolves city name", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/reverse", r.URL.Path)
			assert.Equal(t, "jsonv2", r.URL.Query().Get("format"))
			assert.Equal(t, "10", r.URL.Query().Get("zoom"))
			assert.Equal(t, "trip-atlas-test/1.0", r.Header.Get("User-Agent"))
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"display_name":"Barcelona, Catalonia, Spain","address":{"city":"Barcelona","state":"Catalonia","country":"Spain"}}`))
		}))
		defer server.Close()

		label, err := newClient(server.URL).ReverseGeocode(context.Background(), domain.Point{Lat: 41.3851, Lon: 2.1734})
		require.NoError(t, err)
		assert.Equal(t, "Barcelona", label)
	})

	t.Run("falls back to town then state", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"display_name":"Sitges, Garraf, Catalonia, Spain","address":{"town":"Sitges","state":"Catalonia"}}`))
		}))
		defer server.Close()

		label, err := newClient(server.URL).ReverseGeocode(context.Background(), domain.Point{Lat: 41.237, Lon: 1.806})
		require.NoError(t, err)
		assert.Equal(t, "Sitges", label)
	})

	t.Run("falls back to display_name when address is empty", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"display_name":"Somewhere remote","address":{}}`))
		}))
		defer server.Close()

		label, err := newClient(server.URL).ReverseGeocode(context.Background(), domain.Point{Lat: 70.0, Lon: 50.0})
		require.NoError(t, err)
		assert.Equal(t, "Somewhere remote", label)
	})

	t.Run("non-OK status resolves to empty label without error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			w.Write([]byte(`{"error":"Unable to geocode"}`))
		}))
		defer server.Close()

		label, err := newClient(server.URL).ReverseGeocode(context.Background(), domain.Point{Lat: 0, Lon: -140})
		require.NoError(t, err)
		assert.Equal(t, "", label)
	})

	t.Run("malformed response returns error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`not json`))
		}))
		defer server.Close()

		label, err := newClient(server.URL).ReverseGeocode(context.Background(), domain.Point{Lat: 41.3851, Lon: 2.1734})
		assert.Error(t, err)
		assert.Equal(t, "", label)
		assert.Contains(t, err.Error(), "failed to decode response")
	})
}
