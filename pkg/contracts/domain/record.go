package domain

import (
	"time"
)

// Record is the canonical form every source dataset is transformed into.
// All downstream stages (enrichment, validation, linking, partitioning,
// aggregation) operate on this type only.
type Record struct {
	ID        string    `json:"id" validate:"required"`
	Type      string    `json:"type" validate:"required"`
	Category  Category  `json:"category" validate:"required"`
	Date      string    `json:"date,omitempty"` // YYYY-MM-DD
	Timestamp time.Time `json:"timestamp,omitempty"`
	Location  Location  `json:"location"`
	Value     float64   `json:"value"`
	Unit      Unit      `json:"unit,omitempty"`

	// Category-specific fields
	EventType     string   `json:"event_type,omitempty"`
	Fatalities    int      `json:"fatalities,omitempty"`
	Injuries      int      `json:"injuries,omitempty"`
	Severity      *float64 `json:"severity,omitempty"`
	IndicatorCode string   `json:"indicator_code,omitempty"`
	IndicatorName string   `json:"indicator_name,omitempty"`

	Quality     Quality                `json:"quality"`
	Sources     []Source               `json:"sources,omitempty"`
	Temporal    *TemporalContext       `json:"temporal,omitempty"`
	Analysis    *Analysis              `json:"analysis,omitempty"`
	RelatedData map[string][]RecordRef `json:"related_data,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Version   int       `json:"version" validate:"min=1"`
}

// DateLayout is the canonical calendar-date form used throughout the pipeline.
const DateLayout = "2006-01-02"

// ParsedDate returns the record's calendar date. The boolean is false when
// the record carries no parseable date.
func (r *Record) ParsedDate() (time.Time, bool) {
	if r.Date == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(DateLayout, r.Date)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// Touch bumps the record version and update timestamp after a mutation.
func (r *Record) Touch(now time.Time) {
	r.UpdatedAt = now
	r.Version++
}

// Category classifies a record into one of the closed dataset categories.
type Category string

const (
	CategoryConflict       Category = "conflict"
	CategoryEconomic       Category = "economic"
	CategoryInfrastructure Category = "infrastructure"
	CategoryHumanitarian   Category = "humanitarian"
	CategoryHealth         Category = "health"
	CategoryEducation      Category = "education"
	CategoryWater          Category = "water"
	CategoryRefugees       Category = "refugees"
	CategoryPopulation     Category = "population"
	CategoryOther          Category = "other"
)

// Categories lists every known category in declaration order.
func Categories() []Category {
	return []Category{
		CategoryConflict, CategoryEconomic, CategoryInfrastructure,
		CategoryHumanitarian, CategoryHealth, CategoryEducation,
		CategoryWater, CategoryRefugees, CategoryPopulation, CategoryOther,
	}
}

// Region identifies the top-level geographic region of a record.
type Region string

const (
	RegionGaza          Region = "gaza"
	RegionWestBank      Region = "west_bank"
	RegionEastJerusalem Region = "east_jerusalem"
	RegionUnknown       Region = "unknown"
)

// Regions lists the fixed region enumeration used by aggregation buckets.
func Regions() []Region {
	return []Region{RegionGaza, RegionWestBank, RegionEastJerusalem, RegionUnknown}
}

// RegionType is the settlement classification of a location. The empty value
// means unclassified, which is distinct from RegionUnknown on Region.
type RegionType string

const (
	RegionTypeUrban RegionType = "urban"
	RegionTypeRural RegionType = "rural"
	RegionTypeCamp  RegionType = "camp"
)

// Unit is the measurement unit inferred from indicator semantics.
type Unit string

const (
	UnitPercentage  Unit = "percentage"
	UnitCurrencyUSD Unit = "currency_usd"
	UnitRate        Unit = "rate"
	UnitCount       Unit = "count"
	UnitYears       Unit = "years"
	UnitIndex       Unit = "index"
)

// Coordinates is a WGS84 point.
type Coordinates struct {
	Longitude float64 `json:"longitude" validate:"min=-180,max=180"`
	Latitude  float64 `json:"latitude" validate:"min=-90,max=90"`
}

// AdminLevels carries up to three administrative subdivision names.
type AdminLevels struct {
	Level1 string `json:"level1,omitempty"`
	Level2 string `json:"level2,omitempty"`
	Level3 string `json:"level3,omitempty"`
}

// Proximity holds distances to fixed reference geography, filled by the
// geospatial enricher when coordinates are available.
type Proximity struct {
	NearestCity       string   `json:"nearest_city"`
	NearestCityMeters float64  `json:"nearest_city_distance_m"`
	DistanceToBorderM *float64 `json:"distance_to_border_m"`
}

// Location describes where a record happened or what area it measures.
type Location struct {
	Name        string       `json:"name,omitempty"`
	Coordinates *Coordinates `json:"coordinates,omitempty"`
	AdminLevels AdminLevels  `json:"admin_levels"`
	Region      Region       `json:"region,omitempty"`
	RegionType  RegionType   `json:"region_type,omitempty"`
	Proximity   *Proximity   `json:"proximity,omitempty"`
}

// Quality scores a record against its schema, all dimensions in [0,1].
type Quality struct {
	Score        float64 `json:"score" validate:"min=0,max=1"`
	Completeness float64 `json:"completeness" validate:"min=0,max=1"`
	Consistency  float64 `json:"consistency" validate:"min=0,max=1"`
	Accuracy     float64 `json:"accuracy" validate:"min=0,max=1"`
	Verified     bool    `json:"verified"`
	Confidence   float64 `json:"confidence" validate:"min=0,max=1"`
}

// Source identifies where a record was fetched from.
type Source struct {
	Name         string    `json:"name" validate:"required"`
	Organization string    `json:"organization,omitempty"`
	URL          string    `json:"url,omitempty"`
	FetchedAt    time.Time `json:"fetched_at"`
}

// TemporalContext is attached by the temporal enricher. A record without a
// date receives the zero value rather than nil.
type TemporalContext struct {
	DaysSinceBaseline int    `json:"days_since_baseline,omitempty"`
	BaselinePeriod    string `json:"baseline_period,omitempty"`
	ConflictPhase     string `json:"conflict_phase,omitempty"`
	Season            string `json:"season,omitempty"`
}

// Trend is the fitted linear trend of an indicator series.
type Trend struct {
	Slope     float64 `json:"slope"`
	Direction string  `json:"direction"`
}

// Analysis carries per-indicator statistics attached by the trend analyzer.
type Analysis struct {
	Trend              Trend   `json:"trend"`
	GrowthRate         float64 `json:"growth_rate"`
	Volatility         float64 `json:"volatility"`
	RecentChange       float64 `json:"recent_change"`
	BaselineComparison float64 `json:"baseline_comparison"`
}

// RecordRef is a lightweight pointer to a record in another category,
// attached by the data linker.
type RecordRef struct {
	ID             string   `json:"id"`
	Category       Category `json:"category"`
	Date           string   `json:"date,omitempty"`
	DistanceMeters float64  `json:"distance_m,omitempty"`
	DaysApart      int      `json:"days_apart,omitempty"`
}
