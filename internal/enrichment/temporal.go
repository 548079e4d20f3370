package enrichment

import (
	"fmt"
	"log/slog"
	"time"

	"paldata/pkg/contracts/domain"
)

// DefaultBaselineDate is the operationally significant anchor date used for
// before/after comparisons when no other baseline is configured.
const DefaultBaselineDate = "2023-10-07"

// PeriodType selects the calendar bucket for period-key derivation.
type PeriodType string

const (
	PeriodDay     PeriodType = "day"
	PeriodWeek    PeriodType = "week"
	PeriodMonth   PeriodType = "month"
	PeriodQuarter PeriodType = "quarter"
	PeriodYear    PeriodType = "year"
)

// Baseline-relative tags and conflict phases.
const (
	BeforeBaseline = "before_baseline"
	AfterBaseline  = "after_baseline"

	PhasePreEscalation = "pre_escalation"
	PhaseActive        = "active"
	PhaseOngoing       = "ongoing"
)

// TemporalEnricher classifies record dates relative to a baseline instant.
// The baseline and phase boundary are explicit parameters, not ambient
// clock state, so enrichment stays deterministic.
type TemporalEnricher struct {
	logger    *slog.Logger
	baseline  time.Time
	activeEnd time.Time
}

// NewTemporalEnricher creates a temporal enricher anchored at baseline.
// The active conflict phase ends at the start of 2024; dates past that are
// tagged ongoing.
func NewTemporalEnricher(logger *slog.Logger, baseline time.Time) *TemporalEnricher {
	if logger == nil {
		logger = slog.Default()
	}
	if baseline.IsZero() {
		baseline, _ = time.Parse(domain.DateLayout, DefaultBaselineDate)
	}
	return &TemporalEnricher{
		logger:    logger,
		baseline:  baseline,
		activeEnd: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// Baseline returns the anchor date.
func (e *TemporalEnricher) Baseline() time.Time {
	return e.baseline
}

// Enrich fills the record's temporal context in place. Records without a
// parseable date receive an empty context rather than a failure.
func (e *TemporalEnricher) Enrich(rec *domain.Record) {
	date, ok := rec.ParsedDate()
	if !ok {
		rec.Temporal = &domain.TemporalContext{}
		return
	}

	rec.Temporal = &domain.TemporalContext{
		DaysSinceBaseline: int(date.Sub(e.baseline).Hours() / 24),
		BaselinePeriod:    e.baselinePeriod(date),
		ConflictPhase:     e.conflictPhase(date),
		Season:            Season(date),
	}
	if rec.Timestamp.IsZero() {
		rec.Timestamp = date
	}
}

func (e *TemporalEnricher) baselinePeriod(date time.Time) string {
	if date.Before(e.baseline) {
		return BeforeBaseline
	}
	return AfterBaseline
}

func (e *TemporalEnricher) conflictPhase(date time.Time) string {
	switch {
	case date.Before(e.baseline):
		return PhasePreEscalation
	case date.Before(e.activeEnd):
		return PhaseActive
	default:
		return PhaseOngoing
	}
}

// Season maps a date to its Northern-hemisphere season.
func Season(date time.Time) string {
	switch date.Month() {
	case time.December, time.January, time.February:
		return "winter"
	case time.March, time.April, time.May:
		return "spring"
	case time.June, time.July, time.August:
		return "summer"
	default:
		return "autumn"
	}
}

// DayKey returns the day period key, YYYY-MM-DD.
func DayKey(t time.Time) string {
	return t.Format(domain.DateLayout)
}

// WeekKey returns the ISO week period key, YYYY-Www. The week-numbering
// year can differ from the calendar year around January 1st.
func WeekKey(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%04d-W%02d", year, week)
}

// MonthKey returns the month period key, YYYY-MM.
func MonthKey(t time.Time) string {
	return t.Format("2006-01")
}

// QuarterKey returns the quarter period key, YYYY-Qn.
func QuarterKey(t time.Time) string {
	quarter := (int(t.Month())-1)/3 + 1
	return fmt.Sprintf("%04d-Q%d", t.Year(), quarter)
}

// YearKey returns the year period key, YYYY.
func YearKey(t time.Time) string {
	return t.Format("2006")
}

// PeriodKey derives the period key of the requested type. Unknown period
// types fall back to the day key.
func PeriodKey(t time.Time, period PeriodType) string {
	switch period {
	case PeriodWeek:
		return WeekKey(t)
	case PeriodMonth:
		return MonthKey(t)
	case PeriodQuarter:
		return QuarterKey(t)
	case PeriodYear:
		return YearKey(t)
	default:
		return DayKey(t)
	}
}
