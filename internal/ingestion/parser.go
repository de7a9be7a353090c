package ingestion

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/guttosm/amlich/internal/domain/models"
	"github.com/guttosm/amlich/internal/holiday"
	"github.com/guttosm/amlich/internal/storage"
)

// expectedHeaders enforces strict column ordering for holiday files.
// If the header doesn't match EXACTLY (order + count), ingestion must fail.
var expectedHeaders = []string{
	"Name",
	"NameEnglish",
	"Day",
	"Month",
	"IsLunar",
	"Description",
}

// parseAndPersistFile opens, validates, parses, and persists one file in batches.
// Every row is tagged with the file's base name as its source.
// It fails on:
//   - header not matching expected order/length
//   - a row with the wrong column count or an invalid calendar position
//   - unrecoverable I/O errors
func parseAndPersistFile(ctx context.Context, path string, repo storage.HolidayRepository, batch int) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("open: %w", err)
	}
	defer func() { _ = f.Close() }()

	source := filepath.Base(path)

	r := csv.NewReader(f)
	r.Comma = ';'
	r.LazyQuotes = true
	r.FieldsPerRecord = -1 // checked explicitly below

	header, err := r.Read()
	if err != nil {
		return 0, fmt.Errorf("read header: %w", err)
	}
	if len(header) != len(expectedHeaders) {
		return 0, fmt.Errorf("invalid header length: expected %d, got %d", len(expectedHeaders), len(header))
	}
	for i, h := range header {
		// Spreadsheet exports often prefix a UTF-8 BOM.
		if strings.TrimPrefix(strings.TrimSpace(h), "\ufeff") != expectedHeaders[i] {
			return 0, fmt.Errorf("invalid header at col %d: expected %q, got %q", i+1, expectedHeaders[i], h)
		}
	}

	buf := make([]models.Holiday, 0, batch)
	lineNumber := 1

	flush := func() error {
		if len(buf) == 0 {
			return nil
		}
		if err := repo.InsertHolidaysBatch(buf); err != nil {
			return err
		}
		buf = buf[:0]
		return nil
	}

	total := 0

	for {
		select {
		case <-ctx.Done():
			return 0, ctx.Err()
		default:
		}

		rec, err := r.Read()
		if err != nil {
			if err == io.EOF {
				break
			}
			return 0, fmt.Errorf("read line after %d: %w", lineNumber, err)
		}
		lineNumber++

		if len(rec) != len(expectedHeaders) {
			return 0, fmt.Errorf("invalid column count on line %d: expected %d got %d", lineNumber, len(expectedHeaders), len(rec))
		}

		h, err := recordToHoliday(rec)
		if err != nil {
			return 0, fmt.Errorf("line %d: %w", lineNumber, err)
		}
		h.Source = source

		buf = append(buf, h)
		total++
		if len(buf) >= batch {
			if err := flush(); err != nil {
				return 0, fmt.Errorf("flush batch ending line %d: %w", lineNumber, err)
			}
		}
	}

	if err := flush(); err != nil {
		return 0, fmt.Errorf("final flush: %w", err)
	}

	return total, nil
}

// recordToHoliday converts a single record (already validated length==6).
//
// Column order:
//
//	0 Name         → Name (required)
//	1 NameEnglish  → NameEnglish
//	2 Day          → Day (1..31, 1..30 when lunar)
//	3 Month        → Month (1..12)
//	4 IsLunar      → IsLunar (strconv.ParseBool; empty → false)
//	5 Description  → Description
func recordToHoliday(rec []string) (models.Holiday, error) {
	h := models.Holiday{
		Name:        strings.TrimSpace(rec[0]),
		NameEnglish: strings.TrimSpace(rec[1]),
		Description: strings.TrimSpace(rec[5]),
	}

	day, err := strconv.Atoi(strings.TrimSpace(rec[2]))
	if err != nil {
		return h, fmt.Errorf("invalid Day: %v", err)
	}
	month, err := strconv.Atoi(strings.TrimSpace(rec[3]))
	if err != nil {
		return h, fmt.Errorf("invalid Month: %v", err)
	}
	h.Day, h.Month = day, month

	if s := strings.TrimSpace(rec[4]); s != "" {
		v, err := strconv.ParseBool(s)
		if err != nil {
			return h, fmt.Errorf("invalid IsLunar: %v", err)
		}
		h.IsLunar = v
	}

	if err := holiday.Validate(h); err != nil {
		return h, err
	}
	return h, nil
}
