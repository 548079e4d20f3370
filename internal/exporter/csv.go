package exporter

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"paldata/internal/aggregation"
	"paldata/pkg/contracts/domain"
)

// WriteRegionSummaryCSV writes one row per region with its aggregate
// statistics, sorted by region name for stable output.
func (w *Writer) WriteRegionSummaryCSV(path string, byRegion map[domain.Region]*aggregation.BucketStats) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	header := []string{
		"Region", "TotalRecords", "IncidentCount", "Fatalities", "Injuries",
		"CasualtyTotal", "SeverityIndex", "AffectedLocations", "DateStart", "DateEnd",
	}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}

	regions := make([]string, 0, len(byRegion))
	for region := range byRegion {
		regions = append(regions, string(region))
	}
	sort.Strings(regions)

	for _, region := range regions {
		stats := byRegion[domain.Region(region)]
		row := []string{
			region,
			strconv.Itoa(stats.TotalRecords),
			strconv.Itoa(stats.IncidentCount),
			strconv.Itoa(stats.Fatalities),
			strconv.Itoa(stats.Injuries),
			strconv.Itoa(stats.CasualtyTotal),
			strconv.FormatFloat(stats.SeverityIndex, 'f', 3, 64),
			strconv.Itoa(stats.AffectedLocations),
			stats.DateRange.Start,
			stats.DateRange.End,
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write row for %s: %w", region, err)
		}
	}

	return writer.Error()
}
