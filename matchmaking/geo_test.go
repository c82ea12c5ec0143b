package matchmaking

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

const (
	parisLat = 48.8566
	parisLon = 2.3522

	lyonLat = 45.7640
	lyonLon = 4.8357

	marseilleLat = 43.2965
	marseilleLon = 5.3698
)

func TestDistanceKm_KnownCityPairs(t *testing.T) {
	parisLyon := DistanceKm(parisLat, parisLon, lyonLat, lyonLon)
	assert.Greater(t, parisLyon, 380.0)
	assert.Less(t, parisLyon, 410.0)

	parisMarseille := DistanceKm(parisLat, parisLon, marseilleLat, marseilleLon)
	assert.Greater(t, parisMarseille, 640.0)
	assert.Less(t, parisMarseille, 680.0)
}

func TestDistanceKm_OneDegreeLongitudeAtEquator(t *testing.T) {
	d := DistanceKm(0, 0, 0, 1)
	assert.InDelta(t, 111.2, d, 1.5)
}

func TestDistanceKm_ZeroForSamePoint(t *testing.T) {
	assert.Zero(t, DistanceKm(parisLat, parisLon, parisLat, parisLon))
}

func TestDistanceKm_Symmetric(t *testing.T) {
	forward := DistanceKm(parisLat, parisLon, lyonLat, lyonLon)
	backward := DistanceKm(lyonLat, lyonLon, parisLat, parisLon)
	assert.InDelta(t, forward, backward, 1e-9)
}
