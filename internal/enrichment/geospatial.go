package enrichment

import (
	"log/slog"
	"math"
	"strings"

	"paldata/pkg/contracts/domain"
)

// EarthRadiusMeters is the mean Earth radius used by the Haversine formula.
const EarthRadiusMeters = 6371000.0

// GeoEnricher classifies locations against injected governorate, city and
// region-envelope tables. It never removes a record and never fails:
// malformed input yields unchanged or partially-filled output.
type GeoEnricher struct {
	logger       *slog.Logger
	governorates []GovernorateBox
	cities       []City
	envelopes    []RegionEnvelope
}

// GeoOption customizes a GeoEnricher.
type GeoOption func(*GeoEnricher)

// WithGovernorates replaces the default governorate table.
func WithGovernorates(boxes []GovernorateBox) GeoOption {
	return func(g *GeoEnricher) { g.governorates = boxes }
}

// WithCities replaces the default city-centroid table.
func WithCities(cities []City) GeoOption {
	return func(g *GeoEnricher) { g.cities = cities }
}

// WithEnvelopes replaces the default region envelopes.
func WithEnvelopes(envelopes []RegionEnvelope) GeoOption {
	return func(g *GeoEnricher) { g.envelopes = envelopes }
}

// NewGeoEnricher creates a geospatial enricher with the default tables.
func NewGeoEnricher(logger *slog.Logger, opts ...GeoOption) *GeoEnricher {
	if logger == nil {
		logger = slog.Default()
	}
	g := &GeoEnricher{
		logger:       logger,
		governorates: DefaultGovernorates(),
		cities:       DefaultCities(),
		envelopes:    DefaultEnvelopes(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// EnrichLocation fills admin level 1, region, region type and proximity on
// the location in place.
func (g *GeoEnricher) EnrichLocation(loc *domain.Location) {
	if loc == nil {
		return
	}

	var governorate *GovernorateBox
	if loc.Coordinates != nil {
		governorate = g.governorateAt(loc.Coordinates.Latitude, loc.Coordinates.Longitude)
		if governorate != nil && loc.AdminLevels.Level1 == "" {
			loc.AdminLevels.Level1 = governorate.Name
		}
	}

	if loc.Region == "" {
		loc.Region = g.classifyRegion(loc.Name, governorate)
	}

	if loc.RegionType == "" {
		loc.RegionType = classifyRegionType(loc.Name)
	}

	if loc.Coordinates != nil {
		loc.Proximity = g.proximity(loc.Coordinates.Latitude, loc.Coordinates.Longitude)
	}
}

// governorateAt returns the first governorate whose box contains the point.
// First match in table declaration order is a deliberate tie-break for
// overlapping boxes, not a nearest-match guarantee.
func (g *GeoEnricher) governorateAt(lat, lon float64) *GovernorateBox {
	for i := range g.governorates {
		if g.governorates[i].Contains(lat, lon) {
			return &g.governorates[i]
		}
	}
	return nil
}

// classifyRegion resolves a region from the free-text name first, then the
// governorate table, then unknown.
func (g *GeoEnricher) classifyRegion(name string, governorate *GovernorateBox) domain.Region {
	lower := strings.ToLower(name)
	for _, kw := range regionKeywords {
		if strings.Contains(lower, kw.keyword) {
			return kw.region
		}
	}
	if governorate != nil {
		return governorate.Region
	}
	return domain.RegionUnknown
}

// classifyRegionType matches settlement keywords against the name. No match
// leaves the type unclassified (empty), not unknown.
func classifyRegionType(name string) domain.RegionType {
	lower := strings.ToLower(name)
	for _, kw := range regionTypeKeywords {
		if strings.Contains(lower, kw.keyword) {
			return kw.regionType
		}
	}
	return ""
}

// proximity computes the nearest city and border distance for a point.
func (g *GeoEnricher) proximity(lat, lon float64) *domain.Proximity {
	p := &domain.Proximity{NearestCityMeters: math.MaxFloat64}
	for _, city := range g.cities {
		d := Haversine(lat, lon, city.Latitude, city.Longitude)
		if d < p.NearestCityMeters {
			p.NearestCity = city.Name
			p.NearestCityMeters = d
		}
	}
	if p.NearestCity == "" {
		return nil
	}
	p.DistanceToBorderM = g.distanceToBorder(lat, lon)
	return p
}

// distanceToBorder returns the distance from a point inside a region
// envelope to that envelope's nearest edge, nil for points outside both
// envelopes.
func (g *GeoEnricher) distanceToBorder(lat, lon float64) *float64 {
	for _, env := range g.envelopes {
		if !env.Contains(lat, lon) {
			continue
		}
		d := math.Min(
			math.Min(
				Haversine(lat, lon, env.MinLat, lon),
				Haversine(lat, lon, env.MaxLat, lon),
			),
			math.Min(
				Haversine(lat, lon, lat, env.MinLon),
				Haversine(lat, lon, lat, env.MaxLon),
			),
		)
		return &d
	}
	return nil
}

// Haversine returns the great-circle distance in meters between two points.
func Haversine(lat1, lon1, lat2, lon2 float64) float64 {
	const degToRad = math.Pi / 180

	dLat := (lat2 - lat1) * degToRad
	dLon := (lon2 - lon1) * degToRad

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*degToRad)*math.Cos(lat2*degToRad)*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusMeters * c
}
