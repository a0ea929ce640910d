package geo

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sage-glasses/service-navigation/internal/domain/navigation"
)

func TestDistance_ZeroForIdenticalPoints(t *testing.T) {
	p := navigation.Coordinate{Latitude: 10.0261, Longitude: 76.3125}
	assert.Zero(t, Distance(p, p))
}

func TestDistance_Symmetric(t *testing.T) {
	a := navigation.Coordinate{Latitude: 10.0261, Longitude: 76.3125}
	b := navigation.Coordinate{Latitude: 10.0159, Longitude: 76.3419}
	assert.Equal(t, Distance(a, b), Distance(b, a))
}

func TestDistance_OneDegreeOfLatitude(t *testing.T) {
	a := navigation.Coordinate{Latitude: 0, Longitude: 0}
	b := navigation.Coordinate{Latitude: 1, Longitude: 0}
	// One degree of latitude is ~111.19 km on a 6371 km sphere.
	assert.InDelta(t, 111194.9, Distance(a, b), 1.0)
}

func TestDistance_ShortRange(t *testing.T) {
	// ~55.6 m apart: half a thousandth of a degree of latitude.
	a := navigation.Coordinate{Latitude: 10.0261, Longitude: 76.3125}
	b := navigation.Coordinate{Latitude: 10.0266, Longitude: 76.3125}
	assert.InDelta(t, 55.6, Distance(a, b), 0.5)
}

func TestDistance_AcrossTheEquator(t *testing.T) {
	a := navigation.Coordinate{Latitude: -0.5, Longitude: 100}
	b := navigation.Coordinate{Latitude: 0.5, Longitude: 100}
	assert.InDelta(t, 111194.9, Distance(a, b), 1.0)
}
