// Package routing resolves free-text destinations into voice-formatted
// walking routes via an external geocoder and an OSRM-compatible routing
// engine.
package routing

import (
	"context"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/sage-glasses/service-navigation/internal/domain/navigation"
)

// Provider composes geocoding and route fetching into a single operation.
// Stateless and safe for concurrent use.
type Provider struct {
	geocoder *NominatimClient
	router   *OSRMClient
	timeout  time.Duration
	logger   *zap.Logger
}

// NewProvider creates a Provider. The timeout bounds the combined
// geocode-then-route sequence.
func NewProvider(nominatimBaseURL, osrmBaseURL string, timeout time.Duration, logger *zap.Logger) *Provider {
	httpClient := &http.Client{Timeout: timeout}
	return &Provider{
		geocoder: NewNominatimClient(nominatimBaseURL, httpClient),
		router:   NewOSRMClient(osrmBaseURL, httpClient),
		timeout:  timeout,
		logger:   logger,
	}
}

// Geocode resolves a free-text destination to a coordinate.
func (p *Provider) Geocode(ctx context.Context, query string) (navigation.Coordinate, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()
	return p.geocoder.Geocode(ctx, query)
}

// Route geocodes the destination and fetches the walking route from the
// origin, returning it with voice-formatted instructions. The origin is
// validated before any upstream call is made.
func (p *Provider) Route(ctx context.Context, origin navigation.Coordinate, destination string) (*navigation.Route, error) {
	if destination == "" {
		return nil, navigation.NewValidationError("destination is required")
	}
	if !origin.Valid() {
		return nil, navigation.NewInvalidCoordinatesError(origin.Latitude, origin.Longitude)
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	dest, err := p.geocoder.Geocode(ctx, destination)
	if err != nil {
		p.logger.Warn("geocoding failed",
			zap.String("destination", destination),
			zap.Error(err),
		)
		return nil, err
	}

	raw, err := p.router.WalkingRoute(ctx, origin, dest)
	if err != nil {
		if errors.Is(err, errNoRoute) {
			return nil, navigation.NewNoRouteFoundError(destination)
		}
		p.logger.Warn("route fetch failed",
			zap.String("destination", destination),
			zap.Error(err),
		)
		return nil, err
	}

	route, err := buildRoute(destination, raw)
	if err != nil {
		return nil, err
	}

	p.logger.Info("route computed",
		zap.String("destination", destination),
		zap.Float64("distance_meters", route.TotalDistanceMeters()),
		zap.Int("steps", route.StepCount()),
	)
	return route, nil
}

// buildRoute converts the raw OSRM route into the domain Route with
// synthesized instructions. Routes without steps are not navigable and are
// reported as NoRouteFound.
func buildRoute(destination string, raw *osrmRoute) (*navigation.Route, error) {
	var steps []navigation.Step
	for _, leg := range raw.Legs {
		for _, s := range leg.Steps {
			road := normalizeRoadName(s.Name)
			distanceText := formatDistance(s.Distance)
			instruction := synthesizeInstruction(s.Maneuver.Type, s.Maneuver.Modifier, road, distanceText)

			if len(s.Maneuver.Location) == 2 {
				trigger := navigation.Coordinate{
					Latitude:  s.Maneuver.Location[1],
					Longitude: s.Maneuver.Location[0],
				}
				steps = append(steps, navigation.NewTriggerStep(instruction, s.Distance, distanceText, trigger))
			} else {
				steps = append(steps, navigation.NewPassThroughStep(instruction, s.Distance, distanceText))
			}
		}
	}
	if len(steps) == 0 {
		return nil, navigation.NewNoRouteFoundError(destination)
	}

	duration := time.Duration(raw.Duration * float64(time.Second))
	return navigation.NewRoute(
		destination,
		raw.Distance,
		formatDistance(raw.Distance),
		raw.Duration/60,
		formatDuration(raw.Duration/60),
		formatETA(time.Now(), duration),
		steps,
	)
}
