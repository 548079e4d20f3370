package transform

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
	"time"

	"paldata/pkg/contracts/domain"
)

// RawRecord is one loosely-typed record as delivered by a fetcher.
type RawRecord map[string]interface{}

// Metadata describes the source batch being transformed.
type Metadata struct {
	Source        string          `json:"source"`
	Organization  string          `json:"organization"`
	Category      domain.Category `json:"category"`
	IndicatorCode string          `json:"indicator_code,omitempty"`
	IndicatorName string          `json:"indicator_name,omitempty"`
}

// Transformer converts raw source records into canonical records. One
// transformer exists per category; the registry selects it by tag.
type Transformer interface {
	Category() domain.Category
	Transform(raw []RawRecord, meta Metadata) ([]domain.Record, error)
}

// Enricher is the optional capability of a transformer to attach
// category-specific analysis after the shared enrichment stages ran.
type Enricher interface {
	Enrich(records []domain.Record)
}

// RecordID derives the stable content hash identifying a record within its
// category. The same discriminators always produce the same ID.
func RecordID(category domain.Category, recordType, date, location, source string) string {
	h := sha256.Sum256([]byte(strings.Join([]string{
		string(category), recordType, date, location, source,
	}, "|")))
	return hex.EncodeToString(h[:])[:16]
}

// getString returns the first non-empty string value among the given keys.
func getString(raw RawRecord, keys ...string) string {
	for _, key := range keys {
		if v, ok := raw[key]; ok {
			if s, ok := v.(string); ok && s != "" {
				return s
			}
		}
	}
	return ""
}

// getFloat coerces the first present numeric value among the given keys.
// JSON numbers arrive as float64; string numerics are parsed.
func getFloat(raw RawRecord, keys ...string) (float64, bool) {
	for _, key := range keys {
		v, ok := raw[key]
		if !ok || v == nil {
			continue
		}
		switch n := v.(type) {
		case float64:
			return n, true
		case int:
			return float64(n), true
		case string:
			if f, err := strconv.ParseFloat(strings.TrimSpace(n), 64); err == nil {
				return f, true
			}
		}
	}
	return 0, false
}

// normalizeDate parses the common source date shapes into YYYY-MM-DD.
func normalizeDate(value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", fmt.Errorf("empty date")
	}
	layouts := []string{
		domain.DateLayout,
		time.RFC3339,
		"2006-01-02T15:04:05",
		"2006/01/02",
		"02-01-2006",
		"2006",
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.Format(domain.DateLayout), nil
		}
	}
	return "", fmt.Errorf("unrecognized date %q", value)
}

// coordinates extracts a lat/lon pair when both are present and sane.
func coordinates(raw RawRecord) *domain.Coordinates {
	lat, okLat := getFloat(raw, "latitude", "lat")
	lon, okLon := getFloat(raw, "longitude", "lon", "lng")
	if !okLat || !okLon {
		return nil
	}
	if lat < -90 || lat > 90 || lon < -180 || lon > 180 {
		return nil
	}
	return &domain.Coordinates{Latitude: lat, Longitude: lon}
}

// baseRecord fills the fields every transformer sets the same way.
func baseRecord(meta Metadata, recordType, date string, now time.Time) domain.Record {
	rec := domain.Record{
		Type:     recordType,
		Category: meta.Category,
		Date:     date,
		Quality: domain.Quality{
			Consistency: 1,
			Accuracy:    1,
			Confidence:  0.8,
		},
		Sources: []domain.Source{{
			Name:         meta.Source,
			Organization: meta.Organization,
			FetchedAt:    now,
		}},
		CreatedAt: now,
		UpdatedAt: now,
		Version:   1,
	}
	if t, err := time.Parse(domain.DateLayout, date); err == nil {
		rec.Timestamp = t
	}
	return rec
}
