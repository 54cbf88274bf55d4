package geocode

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestResolve(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query().Get("q")
		w.Header().Set("Content-Type", "application/json")
		switch query {
		case "Louvre Museum, Paris":
			fmt.Fprint(w, `[{"lat": "48.8606", "lon": "2.3376"}]`)
		case "Eiffel Tower, Paris":
			fmt.Fprint(w, `[{"lat": "48.8584", "lon": "2.2945"}]`)
		default:
			fmt.Fprint(w, `[]`)
		}
	}))
	defer server.Close()

	geocoder := NewNominatimGeocoder(server.URL, "compass-test", zap.NewNop())
	points, err := geocoder.Resolve(context.Background(), "Paris", []string{
		"Louvre Museum",
		"somewhere that does not exist",
		"Eiffel Tower",
	})
	require.NoError(t, err)

	// The unresolvable name is skipped, not fatal
	require.Len(t, points, 2)
	assert.Equal(t, "Louvre Museum", points[0].Name)
	assert.InDelta(t, 48.8606, points[0].Latitude, 0.0001)
	assert.Equal(t, "Eiffel Tower", points[1].Name)
	assert.InDelta(t, 2.2945, points[1].Longitude, 0.0001)
}

func TestResolve_ServerErrorSkipsLocation(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			http.Error(w, "rate limited", http.StatusTooManyRequests)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `[{"lat": "48.8584", "lon": "2.2945"}]`)
	}))
	defer server.Close()

	geocoder := NewNominatimGeocoder(server.URL, "compass-test", zap.NewNop())
	points, err := geocoder.Resolve(context.Background(), "Paris", []string{"Louvre Museum", "Eiffel Tower"})
	require.NoError(t, err)
	require.Len(t, points, 1)
	assert.Equal(t, "Eiffel Tower", points[0].Name)
}

func TestResolve_CachesRepeatedLookups(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `[{"lat": "48.8606", "lon": "2.3376"}]`)
	}))
	defer server.Close()

	geocoder := NewNominatimGeocoder(server.URL, "compass-test", zap.NewNop())
	for i := 0; i < 3; i++ {
		points, err := geocoder.Resolve(context.Background(), "Paris", []string{"Louvre Museum"})
		require.NoError(t, err)
		require.Len(t, points, 1)
	}
	assert.Equal(t, 1, calls)
}

func TestResolve_CancelledContextStops(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `[]`)
	}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	geocoder := NewNominatimGeocoder(server.URL, "compass-test", zap.NewNop())
	_, err := geocoder.Resolve(ctx, "Paris", []string{"Louvre Museum"})
	assert.ErrorIs(t, err, context.Canceled)
}
