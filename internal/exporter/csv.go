package exporter

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"bikeshare/pkg/contracts/domain"
)

// TimestampLayout is how trip timestamps are written back out
const TimestampLayout = "2006-01-02 15:04:05"

// RowHeader returns the column names for raw rows of a table with the given schema
func RowHeader(schema domain.Schema) []string {
	header := []string{"Start Time"}
	if schema.HasEndTime {
		header = append(header, "End Time")
	}
	header = append(header, "Trip Duration", "Start Station", "End Station", "User Type")
	if schema.HasGender {
		header = append(header, "Gender")
	}
	if schema.HasBirthYear {
		header = append(header, "Birth Year")
	}
	return append(header, "Month", "Day Of Week")
}

// RowRecord renders one trip under RowHeader(schema). Missing values are empty cells.
func RowRecord(r domain.TripRecord, schema domain.Schema) []string {
	rec := []string{r.StartTime.Format(TimestampLayout)}
	if schema.HasEndTime {
		end := ""
		if !r.EndTime.IsZero() {
			end = r.EndTime.Format(TimestampLayout)
		}
		rec = append(rec, end)
	}

	duration := ""
	if r.DurationValid {
		duration = formatInt(r.Duration)
	}
	rec = append(rec, duration, r.StartStation, r.EndStation, r.UserType)

	if schema.HasGender {
		rec = append(rec, r.Gender)
	}
	if schema.HasBirthYear {
		year := ""
		if r.HasBirthYear {
			year = formatInt(int64(r.BirthYear))
		}
		rec = append(rec, year)
	}
	return append(rec, domain.MonthName(r.Month), r.DayOfWeek.String())
}

// WriteOptions configures CSV writing behavior
type WriteOptions struct {
	Headers   bool
	BOMPrefix bool // Add UTF-8 BOM for Excel compatibility
}

// WriteRows writes trips as CSV to w
func WriteRows(w io.Writer, schema domain.Schema, rows []domain.TripRecord, options WriteOptions) error {
	if options.BOMPrefix {
		if _, err := w.Write([]byte{0xEF, 0xBB, 0xBF}); err != nil {
			return fmt.Errorf("failed to write BOM: %w", err)
		}
	}

	writer := csv.NewWriter(w)

	if options.Headers {
		if err := writer.Write(RowHeader(schema)); err != nil {
			return fmt.Errorf("failed to write headers: %w", err)
		}
	}

	for i, r := range rows {
		if err := writer.Write(RowRecord(r, schema)); err != nil {
			return fmt.Errorf("failed to write record %d: %w", i, err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// ExportCSV writes every row of table to a CSV file at path, with a header and BOM
func ExportCSV(path string, table *domain.TripTable) error {
	slog.Info("Writing CSV file",
		slog.String("file_path", path),
		slog.Int("record_count", table.Len()))

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}

	var schema domain.Schema
	var rows []domain.TripRecord
	if table != nil {
		schema, rows = table.Schema, table.Rows
	}

	if err := WriteRows(file, schema, rows, WriteOptions{Headers: true, BOMPrefix: true}); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

// RowPager walks a table a fixed number of rows at a time
type RowPager struct {
	table    *domain.TripTable
	pageSize int
	offset   int
}

// NewRowPager creates a pager; a non-positive pageSize means 5 rows
func NewRowPager(table *domain.TripTable, pageSize int) *RowPager {
	if pageSize <= 0 {
		pageSize = 5
	}
	return &RowPager{table: table, pageSize: pageSize}
}

// Next returns the next page, or nil once every row has been returned
func (p *RowPager) Next() []domain.TripRecord {
	page := p.table.Page(p.offset, p.pageSize)
	p.offset += len(page)
	return page
}

// Done reports whether every row has been returned
func (p *RowPager) Done() bool {
	return p.offset >= p.table.Len()
}

// Offset is the index of the next row Next will return
func (p *RowPager) Offset() int {
	return p.offset
}

// WriteNext writes the next page to w as CSV, with the header before the first page.
// It reports how many rows were written.
func (p *RowPager) WriteNext(w io.Writer) (int, error) {
	first := p.offset == 0
	page := p.Next()
	if len(page) == 0 {
		return 0, nil
	}
	return len(page), WriteRows(w, p.table.Schema, page, WriteOptions{Headers: first})
}
