package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"compass/application/ports"
)

const defaultBaseURL = "https://nominatim.openstreetmap.org"

// NominatimGeocoder resolves place names to coordinates through a
// Nominatim-compatible search endpoint
type NominatimGeocoder struct {
	baseURL    string
	httpClient *http.Client
	userAgent  string
	cache      *resultCache
	logger     *zap.Logger
}

// NewNominatimGeocoder creates a geocoder. An empty baseURL falls back to the
// public Nominatim instance.
func NewNominatimGeocoder(baseURL, userAgent string, logger *zap.Logger) *NominatimGeocoder {
	if baseURL == "" {
		baseURL = defaultBaseURL
	}
	return &NominatimGeocoder{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		userAgent:  userAgent,
		cache:      newResultCache(24 * time.Hour),
		logger:     logger,
	}
}

type searchResult struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// Resolve geocodes the given location names, searching near the destination.
// Names that cannot be resolved are logged and omitted; one bad name never
// costs the caller the rest of the batch.
func (g *NominatimGeocoder) Resolve(ctx context.Context, destination string, names []string) ([]ports.GeoPoint, error) {
	points := make([]ports.GeoPoint, 0, len(names))
	for _, name := range names {
		point, err := g.resolveOne(ctx, destination, name)
		if err != nil {
			if ctx.Err() != nil {
				return points, ctx.Err()
			}
			g.logger.Warn("Failed to geocode location",
				zap.String("name", name),
				zap.String("destination", destination),
				zap.Error(err),
			)
			continue
		}
		points = append(points, point)
	}
	return points, nil
}

func (g *NominatimGeocoder) resolveOne(ctx context.Context, destination, name string) (ports.GeoPoint, error) {
	query := name
	if destination != "" {
		query = name + ", " + destination
	}

	if point, ok := g.cache.get(query); ok {
		return point, nil
	}

	endpoint := fmt.Sprintf("%s/search?format=json&limit=1&q=%s", g.baseURL, url.QueryEscape(query))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return ports.GeoPoint{}, err
	}
	if g.userAgent != "" {
		req.Header.Set("User-Agent", g.userAgent)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return ports.GeoPoint{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ports.GeoPoint{}, fmt.Errorf("geocoding request returned status %d", resp.StatusCode)
	}

	var results []searchResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return ports.GeoPoint{}, err
	}
	if len(results) == 0 {
		return ports.GeoPoint{}, fmt.Errorf("no match for %q", query)
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return ports.GeoPoint{}, fmt.Errorf("malformed latitude %q", results[0].Lat)
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return ports.GeoPoint{}, fmt.Errorf("malformed longitude %q", results[0].Lon)
	}

	point := ports.GeoPoint{Name: name, Latitude: lat, Longitude: lon}
	g.cache.set(query, point)
	return point, nil
}
