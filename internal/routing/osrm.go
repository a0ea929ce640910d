package routing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"

	"github.com/sage-glasses/service-navigation/internal/domain/navigation"
)

// OSRM wire format for a walking-route request with steps=true.
type osrmManeuver struct {
	Type     string    `json:"type"`
	Modifier string    `json:"modifier"`
	Location []float64 `json:"location"` // [lon, lat]
}

type osrmStep struct {
	Maneuver osrmManeuver `json:"maneuver"`
	Name     string       `json:"name"`
	Distance float64      `json:"distance"`
}

type osrmLeg struct {
	Steps []osrmStep `json:"steps"`
}

type osrmRoute struct {
	Distance float64   `json:"distance"`
	Duration float64   `json:"duration"`
	Legs     []osrmLeg `json:"legs"`
}

type osrmResponse struct {
	Code   string      `json:"code"`
	Routes []osrmRoute `json:"routes"`
}

// errNoRoute marks an OSRM response with no usable route. The provider maps
// it to a NoRouteFound domain error carrying the destination name.
var errNoRoute = errors.New("no usable route")

// OSRMClient fetches walking routes from an OSRM-compatible routing engine.
// baseURL is the full router base including profile, e.g.
// "https://router.example.com/route/v1/foot".
type OSRMClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewOSRMClient creates a routing-engine client for the given base URL.
func NewOSRMClient(baseURL string, httpClient *http.Client) *OSRMClient {
	return &OSRMClient{baseURL: baseURL, httpClient: httpClient}
}

// WalkingRoute fetches the walking route between origin and destination with
// per-step maneuver detail.
func (c *OSRMClient) WalkingRoute(ctx context.Context, origin, destination navigation.Coordinate) (*osrmRoute, error) {
	apiURL := fmt.Sprintf("%s/%.6f,%.6f;%.6f,%.6f?steps=true&geometries=geojson&overview=false",
		c.baseURL,
		origin.Longitude, origin.Latitude,
		destination.Longitude, destination.Latitude,
	)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return nil, navigation.NewUpstreamUnavailableError(err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, mapTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, navigation.NewUpstreamUnavailableError(
			fmt.Errorf("routing engine returned status %d", resp.StatusCode))
	}

	var parsed osrmResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, navigation.NewUpstreamUnavailableError(
			fmt.Errorf("failed to decode routing response: %w", err))
	}

	if parsed.Code != "Ok" || len(parsed.Routes) == 0 {
		return nil, errNoRoute
	}

	return &parsed.Routes[0], nil
}

// mapTransportError converts an outbound HTTP failure into the domain
// taxonomy: deadline overruns become RequestTimeout, everything else
// UpstreamUnavailable.
func mapTransportError(err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return navigation.NewRequestTimeoutError(err)
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return navigation.NewRequestTimeoutError(err)
	}
	return navigation.NewUpstreamUnavailableError(err)
}
