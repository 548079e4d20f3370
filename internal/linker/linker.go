package linker

import (
	"log/slog"
	"math"
	"time"

	"paldata/internal/enrichment"
	"paldata/pkg/contracts/domain"
)

// Linker discovers cross-dataset relations by spatial and temporal
// proximity: a candidate record in another category is related when it
// falls within RadiusMeters and WindowDays of the source record.
type Linker struct {
	logger       *slog.Logger
	radiusMeters float64
	windowDays   int
	maxLinks     int
}

// Option customizes a Linker.
type Option func(*Linker)

// WithRadius sets the spatial radius in meters.
func WithRadius(meters float64) Option {
	return func(l *Linker) { l.radiusMeters = meters }
}

// WithWindow sets the temporal window in days.
func WithWindow(days int) Option {
	return func(l *Linker) { l.windowDays = days }
}

// WithMaxLinks caps how many references are attached per category.
func WithMaxLinks(n int) Option {
	return func(l *Linker) { l.maxLinks = n }
}

// New creates a linker with a 10km radius, 30-day window and 10 links per
// category unless overridden.
func New(logger *slog.Logger, opts ...Option) *Linker {
	if logger == nil {
		logger = slog.Default()
	}
	l := &Linker{
		logger:       logger,
		radiusMeters: 10000,
		windowDays:   30,
		maxLinks:     10,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Link attaches related-record references to each record in records from
// every other category's dataset. Records with no match in a category keep
// that category absent from related_data; a record with no matches at all
// keeps related_data nil.
func (l *Linker) Link(records []domain.Record, datasets map[domain.Category][]domain.Record) {
	if len(datasets) == 0 {
		return
	}

	now := time.Now().UTC()
	linked := 0
	for i := range records {
		rec := &records[i]
		attached := false
		for category, candidates := range datasets {
			if category == rec.Category {
				continue
			}
			refs := l.findRelated(rec, category, candidates)
			if len(refs) == 0 {
				continue
			}
			if rec.RelatedData == nil {
				rec.RelatedData = make(map[string][]domain.RecordRef)
			}
			rec.RelatedData[string(category)] = refs
			attached = true
			linked++
		}
		if attached {
			rec.Touch(now)
		}
	}

	l.logger.Info("linked datasets",
		slog.Int("records", len(records)),
		slog.Int("categories", len(datasets)),
		slog.Int("links_attached", linked))
}

func (l *Linker) findRelated(rec *domain.Record, category domain.Category, candidates []domain.Record) []domain.RecordRef {
	recDate, hasDate := rec.ParsedDate()
	if !hasDate || rec.Location.Coordinates == nil {
		return nil
	}

	var refs []domain.RecordRef
	for _, candidate := range candidates {
		if candidate.Location.Coordinates == nil {
			continue
		}
		candidateDate, ok := candidate.ParsedDate()
		if !ok {
			continue
		}

		daysApart := int(math.Abs(candidateDate.Sub(recDate).Hours() / 24))
		if daysApart > l.windowDays {
			continue
		}

		distance := enrichment.Haversine(
			rec.Location.Coordinates.Latitude, rec.Location.Coordinates.Longitude,
			candidate.Location.Coordinates.Latitude, candidate.Location.Coordinates.Longitude,
		)
		if distance > l.radiusMeters {
			continue
		}

		refs = append(refs, domain.RecordRef{
			ID:             candidate.ID,
			Category:       category,
			Date:           candidate.Date,
			DistanceMeters: distance,
			DaysApart:      daysApart,
		})
		if len(refs) >= l.maxLinks {
			break
		}
	}
	return refs
}
