package enrichment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paldata/pkg/contracts/domain"
)

func TestHaversine(t *testing.T) {
	t.Run("zero distance for identical points", func(t *testing.T) {
		assert.InDelta(t, 0, Haversine(31.5, 34.45, 31.5, 34.45), 1e-6)
	})

	t.Run("one degree of latitude", func(t *testing.T) {
		assert.InDelta(t, 111194.93, Haversine(0, 0, 1, 0), 1)
	})

	t.Run("gaza city to rafah", func(t *testing.T) {
		d := Haversine(31.5069, 34.4560, 31.2889, 34.2516)
		assert.InDelta(t, 31050, d, 300)
	})

	t.Run("symmetric", func(t *testing.T) {
		a := Haversine(31.5, 34.4, 32.0, 35.2)
		b := Haversine(32.0, 35.2, 31.5, 34.4)
		assert.InDelta(t, a, b, 1e-6)
	})
}

func TestEnrichLocationWithCoordinates(t *testing.T) {
	enricher := NewGeoEnricher(nil)

	loc := &domain.Location{
		Name:        "",
		Coordinates: &domain.Coordinates{Latitude: 31.5069, Longitude: 34.4560},
	}
	enricher.EnrichLocation(loc)

	assert.Equal(t, "Gaza", loc.AdminLevels.Level1)
	assert.Equal(t, domain.RegionGaza, loc.Region)
	assert.Equal(t, domain.RegionType(""), loc.RegionType)

	require.NotNil(t, loc.Proximity)
	assert.Equal(t, "Gaza City", loc.Proximity.NearestCity)
	assert.InDelta(t, 0, loc.Proximity.NearestCityMeters, 1)
	require.NotNil(t, loc.Proximity.DistanceToBorderM)
	assert.Greater(t, *loc.Proximity.DistanceToBorderM, 0.0)
	assert.Less(t, *loc.Proximity.DistanceToBorderM, 15000.0)
}

func TestEnrichLocationNameClassification(t *testing.T) {
	enricher := NewGeoEnricher(nil)

	tests := []struct {
		name           string
		locationName   string
		expectedRegion domain.Region
		expectedType   domain.RegionType
	}{
		{"camp in gaza", "Khan Younis refugee camp", domain.RegionGaza, domain.RegionTypeCamp},
		{"east jerusalem beats generic", "East Jerusalem", domain.RegionEastJerusalem, ""},
		{"generic jerusalem", "Old City, Jerusalem", domain.RegionEastJerusalem, ""},
		{"west bank city", "Nablus city", domain.RegionWestBank, domain.RegionTypeUrban},
		{"village", "Khirbet Susiya village", domain.RegionUnknown, domain.RegionTypeRural},
		{"unmatched", "Somewhere else", domain.RegionUnknown, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loc := &domain.Location{Name: tt.locationName}
			enricher.EnrichLocation(loc)
			assert.Equal(t, tt.expectedRegion, loc.Region)
			assert.Equal(t, tt.expectedType, loc.RegionType)
			assert.Nil(t, loc.Proximity)
		})
	}
}

func TestEnrichLocationPreservesExistingFields(t *testing.T) {
	enricher := NewGeoEnricher(nil)

	loc := &domain.Location{
		Name:        "Gaza City",
		Region:      domain.RegionWestBank,
		RegionType:  domain.RegionTypeRural,
		AdminLevels: domain.AdminLevels{Level1: "Preset"},
		Coordinates: &domain.Coordinates{Latitude: 31.5069, Longitude: 34.4560},
	}
	enricher.EnrichLocation(loc)

	assert.Equal(t, domain.RegionWestBank, loc.Region)
	assert.Equal(t, domain.RegionTypeRural, loc.RegionType)
	assert.Equal(t, "Preset", loc.AdminLevels.Level1)
}

func TestEnrichLocationOutsideEnvelopes(t *testing.T) {
	enricher := NewGeoEnricher(nil)

	// Amman is outside both region envelopes: nearest city still resolves,
	// border distance does not.
	loc := &domain.Location{
		Coordinates: &domain.Coordinates{Latitude: 31.95, Longitude: 35.93},
	}
	enricher.EnrichLocation(loc)

	require.NotNil(t, loc.Proximity)
	assert.NotEmpty(t, loc.Proximity.NearestCity)
	assert.Nil(t, loc.Proximity.DistanceToBorderM)
	assert.Equal(t, domain.RegionUnknown, loc.Region)
}

func TestEnrichLocationNil(t *testing.T) {
	enricher := NewGeoEnricher(nil)
	assert.NotPanics(t, func() { enricher.EnrichLocation(nil) })
}

func TestGovernorateMatchOrder(t *testing.T) {
	enricher := NewGeoEnricher(nil)

	// A point inside both the North Gaza and Gaza boxes resolves to the
	// first table entry.
	loc := &domain.Location{
		Coordinates: &domain.Coordinates{Latitude: 31.52, Longitude: 34.48},
	}
	enricher.EnrichLocation(loc)
	assert.Equal(t, "North Gaza", loc.AdminLevels.Level1)
}

func TestGeoEnricherCustomTables(t *testing.T) {
	enricher := NewGeoEnricher(nil,
		WithGovernorates([]GovernorateBox{
			{Name: "Test", Region: domain.RegionGaza, MinLat: 0, MaxLat: 1, MinLon: 0, MaxLon: 1},
		}),
		WithCities([]City{{Name: "Testville", Latitude: 0.5, Longitude: 0.5}}),
		WithEnvelopes(nil),
	)

	loc := &domain.Location{
		Coordinates: &domain.Coordinates{Latitude: 0.5, Longitude: 0.5},
	}
	enricher.EnrichLocation(loc)

	assert.Equal(t, "Test", loc.AdminLevels.Level1)
	assert.Equal(t, domain.RegionGaza, loc.Region)
	require.NotNil(t, loc.Proximity)
	assert.Equal(t, "Testville", loc.Proximity.NearestCity)
	assert.Nil(t, loc.Proximity.DistanceToBorderM)
}
