package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/xuri/excelize/v2"

	"footfall/internal/models"
)

// Format is a download format for the dashboard summary.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

func (f Format) ContentType() string {
	switch f {
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "text/csv; charset=utf-8"
	}
}

const sheetName = "summary"

var header = []string{
	"age", "age_label", "weather", "weekday",
	"filtered_rows", "event_days", "non_event_days",
	"event_mean", "non_event_mean", "diff",
	"event_mean_rounded", "non_event_mean_rounded", "diff_rounded",
}

func values(s models.Summary) []string {
	f := func(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }
	i := func(v int64) string { return strconv.FormatInt(v, 10) }
	return []string{
		s.Selection.Age, s.Selection.AgeLabel, s.Selection.Weather, s.Selection.Weekday,
		strconv.Itoa(s.FilteredRows), strconv.Itoa(s.EventDays), strconv.Itoa(s.NonEventDays),
		f(s.Raw.Event), f(s.Raw.NonEvent), f(s.Raw.Diff),
		i(s.Rounded.Event), i(s.Rounded.NonEvent), i(s.Rounded.Diff),
	}
}

// Write encodes s to w in the given format.
func Write(w io.Writer, format Format, s models.Summary) error {
	switch format {
	case FormatCSV:
		return WriteCSV(w, s)
	case FormatXLSX:
		return WriteXLSX(w, s)
	default:
		return fmt.Errorf("unsupported export format: %s", format)
	}
}

// WriteCSV writes a header row and one summary row.
func WriteCSV(w io.Writer, s models.Summary) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if err := cw.Write(values(s)); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}
	cw.Flush()
	return cw.Error()
}

// WriteXLSX writes a single-sheet workbook with typed numeric cells.
func WriteXLSX(w io.Writer, s models.Summary) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}

	headerRow := make([]interface{}, len(header))
	for i, h := range header {
		headerRow[i] = h
	}
	if err := f.SetSheetRow(sheetName, "A1", &headerRow); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	row := []interface{}{
		s.Selection.Age, s.Selection.AgeLabel, s.Selection.Weather, s.Selection.Weekday,
		s.FilteredRows, s.EventDays, s.NonEventDays,
		s.Raw.Event, s.Raw.NonEvent, s.Raw.Diff,
		s.Rounded.Event, s.Rounded.NonEvent, s.Rounded.Diff,
	}
	if err := f.SetSheetRow(sheetName, "A2", &row); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}
