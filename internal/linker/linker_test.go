package linker

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paldata/pkg/contracts/domain"
)

func locatedRecord(id string, category domain.Category, date string, lat, lon float64) domain.Record {
	return domain.Record{
		ID:       id,
		Category: category,
		Date:     date,
		Location: domain.Location{
			Coordinates: &domain.Coordinates{Latitude: lat, Longitude: lon},
		},
	}
}

func TestLinkAttachesNearbyRecords(t *testing.T) {
	l := New(nil)

	records := []domain.Record{
		locatedRecord("c1", domain.CategoryConflict, "2023-10-10", 31.5069, 34.4560),
	}
	datasets := map[domain.Category][]domain.Record{
		domain.CategoryConflict: records,
		domain.CategoryInfrastructure: {
			// Same point, 5 days apart.
			locatedRecord("i1", domain.CategoryInfrastructure, "2023-10-15", 31.5069, 34.4560),
			// Rafah, ~31km away: outside the 10km radius.
			locatedRecord("i2", domain.CategoryInfrastructure, "2023-10-10", 31.2889, 34.2516),
		},
	}
	l.Link(records, datasets)

	require.NotNil(t, records[0].RelatedData)
	refs := records[0].RelatedData[string(domain.CategoryInfrastructure)]
	require.Len(t, refs, 1)
	assert.Equal(t, "i1", refs[0].ID)
	assert.Equal(t, domain.CategoryInfrastructure, refs[0].Category)
	assert.Equal(t, 5, refs[0].DaysApart)
	assert.InDelta(t, 0, refs[0].DistanceMeters, 1)

	// Same-category candidates are never linked.
	_, ok := records[0].RelatedData[string(domain.CategoryConflict)]
	assert.False(t, ok)

	// Attaching links is a mutation, so the version advances.
	assert.Equal(t, 1, records[0].Version)
	assert.False(t, records[0].UpdatedAt.IsZero())
}

func TestLinkWindowBoundary(t *testing.T) {
	l := New(nil, WithWindow(30))

	records := []domain.Record{
		locatedRecord("c1", domain.CategoryConflict, "2023-10-01", 31.5, 34.45),
	}
	datasets := map[domain.Category][]domain.Record{
		domain.CategoryHealth: {
			locatedRecord("h-inside", domain.CategoryHealth, "2023-10-31", 31.5, 34.45),
			locatedRecord("h-outside", domain.CategoryHealth, "2023-11-01", 31.5, 34.45),
		},
	}
	l.Link(records, datasets)

	refs := records[0].RelatedData[string(domain.CategoryHealth)]
	require.Len(t, refs, 1)
	assert.Equal(t, "h-inside", refs[0].ID)
	assert.Equal(t, 30, refs[0].DaysApart)
}

func TestLinkRadiusBoundary(t *testing.T) {
	// ~1.11km per 0.01 degree of latitude.
	l := New(nil, WithRadius(2000))

	records := []domain.Record{
		locatedRecord("c1", domain.CategoryConflict, "2023-10-10", 31.50, 34.45),
	}
	datasets := map[domain.Category][]domain.Record{
		domain.CategoryWater: {
			locatedRecord("w-near", domain.CategoryWater, "2023-10-10", 31.51, 34.45),
			locatedRecord("w-far", domain.CategoryWater, "2023-10-10", 31.53, 34.45),
		},
	}
	l.Link(records, datasets)

	refs := records[0].RelatedData[string(domain.CategoryWater)]
	require.Len(t, refs, 1)
	assert.Equal(t, "w-near", refs[0].ID)
}

func TestLinkNoMatchLeavesRelatedDataNil(t *testing.T) {
	l := New(nil)

	records := []domain.Record{
		locatedRecord("c1", domain.CategoryConflict, "2023-10-10", 31.5, 34.45),
	}
	datasets := map[domain.Category][]domain.Record{
		domain.CategoryHealth: {
			locatedRecord("h1", domain.CategoryHealth, "2025-01-01", 31.5, 34.45),
		},
	}
	l.Link(records, datasets)

	assert.Nil(t, records[0].RelatedData)
	assert.Zero(t, records[0].Version)
}

func TestLinkSkipsRecordsWithoutCoordinatesOrDate(t *testing.T) {
	l := New(nil)

	records := []domain.Record{
		{ID: "no-coords", Category: domain.CategoryConflict, Date: "2023-10-10"},
		{ID: "no-date", Category: domain.CategoryConflict,
			Location: domain.Location{Coordinates: &domain.Coordinates{Latitude: 31.5, Longitude: 34.45}}},
	}
	datasets := map[domain.Category][]domain.Record{
		domain.CategoryHealth: {
			locatedRecord("h1", domain.CategoryHealth, "2023-10-10", 31.5, 34.45),
		},
	}
	l.Link(records, datasets)

	assert.Nil(t, records[0].RelatedData)
	assert.Nil(t, records[1].RelatedData)
}

func TestLinkMaxLinksCap(t *testing.T) {
	l := New(nil, WithMaxLinks(3))

	records := []domain.Record{
		locatedRecord("c1", domain.CategoryConflict, "2023-10-10", 31.5, 34.45),
	}
	var candidates []domain.Record
	for i := 0; i < 10; i++ {
		candidates = append(candidates,
			locatedRecord(fmt.Sprintf("h%d", i), domain.CategoryHealth, "2023-10-10", 31.5, 34.45))
	}
	datasets := map[domain.Category][]domain.Record{domain.CategoryHealth: candidates}
	l.Link(records, datasets)

	assert.Len(t, records[0].RelatedData[string(domain.CategoryHealth)], 3)
}

func TestLinkEmptyDatasets(t *testing.T) {
	l := New(nil)

	records := []domain.Record{
		locatedRecord("c1", domain.CategoryConflict, "2023-10-10", 31.5, 34.45),
	}
	l.Link(records, nil)
	assert.Nil(t, records[0].RelatedData)
}
