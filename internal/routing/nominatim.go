package routing

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/sage-glasses/service-navigation/internal/domain/navigation"
)

// nominatimResult is one candidate from the Nominatim search endpoint.
// Latitude and longitude arrive as strings.
type nominatimResult struct {
	DisplayName string `json:"display_name"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
}

// NominatimClient geocodes free-text place names against a Nominatim server.
type NominatimClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewNominatimClient creates a geocoder client for the given base URL.
func NewNominatimClient(baseURL string, httpClient *http.Client) *NominatimClient {
	return &NominatimClient{baseURL: baseURL, httpClient: httpClient}
}

// Geocode resolves a free-text query to a coordinate, taking the top-ranked
// candidate. Returns PlaceNotFound when the geocoder has no candidates.
func (c *NominatimClient) Geocode(ctx context.Context, query string) (navigation.Coordinate, error) {
	params := url.Values{
		"q":      {query},
		"format": {"json"},
		"limit":  {"1"},
	}
	apiURL := fmt.Sprintf("%s/search?%s", c.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return navigation.Coordinate{}, navigation.NewUpstreamUnavailableError(err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return navigation.Coordinate{}, mapTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return navigation.Coordinate{}, navigation.NewUpstreamUnavailableError(
			fmt.Errorf("geocoder returned status %d", resp.StatusCode))
	}

	var results []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return navigation.Coordinate{}, navigation.NewUpstreamUnavailableError(
			fmt.Errorf("failed to decode geocoder response: %w", err))
	}

	if len(results) == 0 {
		return navigation.Coordinate{}, navigation.NewPlaceNotFoundError(query)
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return navigation.Coordinate{}, navigation.NewUpstreamUnavailableError(
			fmt.Errorf("failed to parse geocoder latitude %q: %w", results[0].Lat, err))
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return navigation.Coordinate{}, navigation.NewUpstreamUnavailableError(
			fmt.Errorf("failed to parse geocoder longitude %q: %w", results[0].Lon, err))
	}

	return navigation.Coordinate{Latitude: lat, Longitude: lon}, nil
}
