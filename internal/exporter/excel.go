package exporter

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/xuri/excelize/v2"

	"paldata/internal/aggregation"
	"paldata/pkg/contracts/domain"
)

// WriteAggregateWorkbook writes an Excel workbook with an overview sheet of
// per-region aggregates and one sheet per region holding its daily time
// series. Analysts consume this directly, so values stay un-rounded.
func (w *Writer) WriteAggregateWorkbook(path string, byRegion map[domain.Region]*aggregation.BucketStats) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", "Overview"); err != nil {
		return fmt.Errorf("failed to rename overview sheet: %w", err)
	}

	regions := make([]string, 0, len(byRegion))
	for region := range byRegion {
		regions = append(regions, string(region))
	}
	sort.Strings(regions)

	overviewHeader := []string{
		"Region", "TotalRecords", "IncidentCount", "Fatalities", "Injuries",
		"CasualtyTotal", "SeverityIndex", "AffectedLocations",
	}
	for col, title := range overviewHeader {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue("Overview", cell, title)
	}

	for rowIdx, region := range regions {
		stats := byRegion[domain.Region(region)]
		values := []interface{}{
			region, stats.TotalRecords, stats.IncidentCount, stats.Fatalities,
			stats.Injuries, stats.CasualtyTotal, stats.SeverityIndex, stats.AffectedLocations,
		}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, rowIdx+2)
			f.SetCellValue("Overview", cell, v)
		}

		if err := w.writeRegionSheet(f, region, stats); err != nil {
			return err
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("failed to save workbook: %w", err)
	}

	w.logger.Info("wrote aggregate workbook",
		slog.String("path", path),
		slog.Int("regions", len(regions)))
	return nil
}

func (w *Writer) writeRegionSheet(f *excelize.File, region string, stats *aggregation.BucketStats) error {
	if _, err := f.NewSheet(region); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", region, err)
	}

	header := []string{"Date", "Incidents", "Fatalities", "Injuries"}
	for col, title := range header {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		f.SetCellValue(region, cell, title)
	}

	for rowIdx, day := range stats.TimeSeries {
		values := []interface{}{day.Date, day.Incidents, day.Fatalities, day.Injuries}
		for col, v := range values {
			cell, _ := excelize.CoordinatesToCellName(col+1, rowIdx+2)
			f.SetCellValue(region, cell, v)
		}
	}
	return nil
}
