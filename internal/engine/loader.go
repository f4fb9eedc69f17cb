package engine

import (
	"bytes"
	"context"
	"encoding/csv"
	"io"
	"log/slog"
	"strings"
	"time"
)

// LoadError means the dataset could not be fetched or read. Error returns
// the underlying message unchanged so callers can show it as is.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string { return e.Err.Error() }

func (e *LoadError) Unwrap() error { return e.Err }

// ParseStats describes how a parse went.
type ParseStats struct {
	Rows int
	// Skipped counts rows holding a single empty field, such as `""`.
	Skipped int
}

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Parse reads a comma-delimited table with a header row. Rows may have fewer
// or more fields than the header: missing columns are absent from the
// Record and surplus fields are dropped. Empty lines are skipped. Quotes are
// read leniently, so only read failures of r are returned.
func Parse(r io.Reader) ([]*Record, ParseStats, error) {
	var stats ParseStats

	content, err := io.ReadAll(r)
	if err != nil {
		return nil, stats, err
	}
	content = bytes.TrimPrefix(content, utf8BOM)

	cr := csv.NewReader(bytes.NewReader(content))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err == io.EOF {
		return []*Record{}, stats, nil
	}
	if err != nil {
		return nil, stats, err
	}
	headers := make([]string, len(header))
	for i, h := range header {
		headers[i] = strings.TrimSpace(h)
	}

	records := make([]*Record, 0, bytes.Count(content, []byte{'\n'}))
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, stats, err
		}
		if isBlank(row) {
			stats.Skipped++
			continue
		}

		fields := make(map[string]string, len(headers))
		for i, h := range headers {
			if i < len(row) {
				fields[h] = row[i]
			}
		}
		records = append(records, &Record{fields: fields})
	}
	stats.Rows = len(records)
	return records, stats, nil
}

// isBlank is a line holding a single empty field, e.g. a bare `""`.
func isBlank(row []string) bool {
	return len(row) == 1 && row[0] == ""
}

// Load fetches src and parses it. Any failure is a *LoadError.
func Load(ctx context.Context, src Source) ([]*Record, error) {
	start := time.Now()
	slog.InfoContext(ctx, "loading dataset", slog.String("source", src.String()))

	rc, err := src.Open(ctx)
	if err != nil {
		return nil, &LoadError{Source: src.String(), Err: err}
	}
	defer rc.Close()

	records, stats, err := Parse(rc)
	if err != nil {
		return nil, &LoadError{Source: src.String(), Err: err}
	}

	slog.InfoContext(ctx, "dataset loaded",
		slog.String("source", src.String()),
		slog.Int("rows", stats.Rows),
		slog.Int("skipped", stats.Skipped),
		slog.Duration("elapsed", time.Since(start)))
	return records, nil
}
