package enrichment

import (
	"paldata/pkg/contracts/domain"
)

// GovernorateBox is a named rectangular bounding box with a parent region.
// The tables below are deliberately data, not code, so they can be replaced
// with true polygon containment without touching call sites.
type GovernorateBox struct {
	Name   string
	Region domain.Region
	MinLat float64
	MaxLat float64
	MinLon float64
	MaxLon float64
}

// Contains reports whether the point falls inside the box.
func (b GovernorateBox) Contains(lat, lon float64) bool {
	return lat >= b.MinLat && lat <= b.MaxLat && lon >= b.MinLon && lon <= b.MaxLon
}

// City is a named centroid used for proximity computation.
type City struct {
	Name      string
	Latitude  float64
	Longitude float64
}

// RegionEnvelope is the overall bounding box of a region, used for
// distance-to-border computation.
type RegionEnvelope struct {
	Region domain.Region
	MinLat float64
	MaxLat float64
	MinLon float64
	MaxLon float64
}

// Contains reports whether the point falls inside the envelope.
func (e RegionEnvelope) Contains(lat, lon float64) bool {
	return lat >= e.MinLat && lat <= e.MaxLat && lon >= e.MinLon && lon <= e.MaxLon
}

// DefaultGovernorates is the fixed governorate table. Declaration order is
// the match order: boxes may overlap and the first hit wins.
func DefaultGovernorates() []GovernorateBox {
	return []GovernorateBox{
		{Name: "North Gaza", Region: domain.RegionGaza, MinLat: 31.50, MaxLat: 31.60, MinLon: 34.46, MaxLon: 34.57},
		{Name: "Gaza", Region: domain.RegionGaza, MinLat: 31.42, MaxLat: 31.55, MinLon: 34.38, MaxLon: 34.52},
		{Name: "Deir al-Balah", Region: domain.RegionGaza, MinLat: 31.35, MaxLat: 31.47, MinLon: 34.29, MaxLon: 34.42},
		{Name: "Khan Younis", Region: domain.RegionGaza, MinLat: 31.27, MaxLat: 31.40, MinLon: 34.22, MaxLon: 34.37},
		{Name: "Rafah", Region: domain.RegionGaza, MinLat: 31.22, MaxLat: 31.32, MinLon: 34.20, MaxLon: 34.30},
		{Name: "Jenin", Region: domain.RegionWestBank, MinLat: 32.35, MaxLat: 32.55, MinLon: 35.15, MaxLon: 35.40},
		{Name: "Tubas", Region: domain.RegionWestBank, MinLat: 32.25, MaxLat: 32.42, MinLon: 35.30, MaxLon: 35.55},
		{Name: "Tulkarm", Region: domain.RegionWestBank, MinLat: 32.25, MaxLat: 32.40, MinLon: 34.95, MaxLon: 35.15},
		{Name: "Nablus", Region: domain.RegionWestBank, MinLat: 32.10, MaxLat: 32.30, MinLon: 35.10, MaxLon: 35.40},
		{Name: "Qalqilya", Region: domain.RegionWestBank, MinLat: 32.12, MaxLat: 32.25, MinLon: 34.93, MaxLon: 35.10},
		{Name: "Salfit", Region: domain.RegionWestBank, MinLat: 32.02, MaxLat: 32.15, MinLon: 35.05, MaxLon: 35.30},
		{Name: "Ramallah", Region: domain.RegionWestBank, MinLat: 31.85, MaxLat: 32.05, MinLon: 35.05, MaxLon: 35.35},
		{Name: "Jericho", Region: domain.RegionWestBank, MinLat: 31.75, MaxLat: 32.05, MinLon: 35.35, MaxLon: 35.57},
		{Name: "Jerusalem", Region: domain.RegionWestBank, MinLat: 31.70, MaxLat: 31.88, MinLon: 35.10, MaxLon: 35.30},
		{Name: "Bethlehem", Region: domain.RegionWestBank, MinLat: 31.55, MaxLat: 31.75, MinLon: 35.00, MaxLon: 35.30},
		{Name: "Hebron", Region: domain.RegionWestBank, MinLat: 31.35, MaxLat: 31.60, MinLon: 34.88, MaxLon: 35.20},
	}
}

// DefaultCities is the fixed city-centroid table used for proximity.
func DefaultCities() []City {
	return []City{
		{Name: "Gaza City", Latitude: 31.5069, Longitude: 34.4560},
		{Name: "Khan Younis", Latitude: 31.3462, Longitude: 34.3063},
		{Name: "Rafah", Latitude: 31.2889, Longitude: 34.2516},
		{Name: "Ramallah", Latitude: 31.8996, Longitude: 35.2042},
		{Name: "Nablus", Latitude: 32.2211, Longitude: 35.2544},
		{Name: "Hebron", Latitude: 31.5326, Longitude: 35.0998},
		{Name: "Bethlehem", Latitude: 31.7054, Longitude: 35.2024},
		{Name: "Jenin", Latitude: 32.4645, Longitude: 35.2951},
		{Name: "Jericho", Latitude: 31.8611, Longitude: 35.4593},
		{Name: "East Jerusalem", Latitude: 31.7834, Longitude: 35.2339},
	}
}

// DefaultEnvelopes bounds the two regions with a border to measure against.
func DefaultEnvelopes() []RegionEnvelope {
	return []RegionEnvelope{
		{Region: domain.RegionGaza, MinLat: 31.22, MaxLat: 31.60, MinLon: 34.20, MaxLon: 34.57},
		{Region: domain.RegionWestBank, MinLat: 31.35, MaxLat: 32.55, MinLon: 34.88, MaxLon: 35.57},
	}
}

// regionKeyword maps a free-text substring to a region. Order matters: the
// first matching entry wins, so specific phrases come before generic ones.
type regionKeyword struct {
	keyword string
	region  domain.Region
}

var regionKeywords = []regionKeyword{
	{"east jerusalem", domain.RegionEastJerusalem},
	{"gaza", domain.RegionGaza},
	{"khan younis", domain.RegionGaza},
	{"khan yunis", domain.RegionGaza},
	{"rafah", domain.RegionGaza},
	{"deir al-balah", domain.RegionGaza},
	{"deir el-balah", domain.RegionGaza},
	{"jabalia", domain.RegionGaza},
	{"beit lahia", domain.RegionGaza},
	{"beit hanoun", domain.RegionGaza},
	{"west bank", domain.RegionWestBank},
	{"ramallah", domain.RegionWestBank},
	{"nablus", domain.RegionWestBank},
	{"hebron", domain.RegionWestBank},
	{"jenin", domain.RegionWestBank},
	{"bethlehem", domain.RegionWestBank},
	{"tulkarm", domain.RegionWestBank},
	{"qalqilya", domain.RegionWestBank},
	{"salfit", domain.RegionWestBank},
	{"tubas", domain.RegionWestBank},
	{"jericho", domain.RegionWestBank},
	{"al-bireh", domain.RegionWestBank},
	{"jerusalem", domain.RegionEastJerusalem},
}

type regionTypeKeyword struct {
	keyword    string
	regionType domain.RegionType
}

var regionTypeKeywords = []regionTypeKeyword{
	{"camp", domain.RegionTypeCamp},
	{"mukhayyam", domain.RegionTypeCamp},
	{"city", domain.RegionTypeUrban},
	{"urban", domain.RegionTypeUrban},
	{"town", domain.RegionTypeUrban},
	{"village", domain.RegionTypeRural},
	{"rural", domain.RegionTypeRural},
	{"khirbet", domain.RegionTypeRural},
	{"hamlet", domain.RegionTypeRural},
}
