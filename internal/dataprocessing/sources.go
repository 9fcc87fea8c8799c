package dataprocessing

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/xuri/excelize/v2"

	apperrors "bikeshare/internal/errors"
)

// Source formats the loader understands
const (
	FormatCSV  = "csv"
	FormatXLSX = "xlsx"
)

// headerScanRows bounds how far into a sheet the header row may sit
const headerScanRows = 10

// rawTable is a header plus string rows, independent of the file format
type rawTable struct {
	header []string
	rows   [][]string
	// excelSerials is set for workbooks, whose date cells may arrive as serial numbers
	excelSerials bool
	sheet        string
}

// SourceFormat returns the format implied by a file extension, or "" when unsupported
func SourceFormat(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return FormatCSV
	case ".xlsx", ".xlsm":
		return FormatXLSX
	default:
		return ""
	}
}

// readSource reads a whole file into a rawTable
func readSource(path string) (*rawTable, error) {
	switch SourceFormat(path) {
	case FormatCSV:
		return readCSV(path)
	case FormatXLSX:
		return readXLSX(path)
	default:
		return nil, apperrors.NewParsingError(fmt.Sprintf("unsupported source format %q", filepath.Ext(path)), nil).
			WithContext("path", path)
	}
}

func readCSV(path string) (*rawTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperrors.NewSourceError(path, err)
	}
	data = bytes.TrimPrefix(data, []byte("\xef\xbb\xbf"))

	if len(bytes.TrimSpace(data)) == 0 {
		return nil, apperrors.NewParsingError("source is empty", nil).WithContext("path", path)
	}

	df := dataframe.ReadCSV(bytes.NewReader(data),
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.WithLazyQuotes(true),
	)
	if df.Err != nil {
		// a header with no data rows is a valid, empty dataset
		if header, ok := headerOnly(data); ok {
			return &rawTable{header: header}, nil
		}
		return nil, apperrors.NewParsingError("malformed CSV", df.Err).WithContext("path", path)
	}

	// the raw header keeps names gota would rewrite, such as the unnamed index column
	hr := csv.NewReader(bytes.NewReader(data))
	hr.LazyQuotes = true
	header, err := hr.Read()
	if err != nil {
		return nil, apperrors.NewParsingError("malformed CSV header", err).WithContext("path", path)
	}

	records := df.Records()
	if len(records) == 0 {
		return &rawTable{header: header}, nil
	}
	return &rawTable{header: header, rows: records[1:]}, nil
}

// headerOnly reports whether data holds exactly one CSV record and returns it
func headerOnly(data []byte) ([]string, bool) {
	r := csv.NewReader(bytes.NewReader(data))
	r.LazyQuotes = true
	header, err := r.Read()
	if err != nil {
		return nil, false
	}
	if _, err := r.Read(); !errors.Is(err, io.EOF) {
		return nil, false
	}
	return header, true
}

func readXLSX(path string) (*rawTable, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, apperrors.NewSourceError(path, err)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, apperrors.NewParsingError("failed to open workbook", err).WithContext("path", path)
	}
	defer f.Close()

	// use the first sheet that has a Start Time header near the top
	for _, name := range f.GetSheetList() {
		rows, err := f.GetRows(name)
		if err != nil {
			continue
		}
		for i := 0; i < len(rows) && i < headerScanRows; i++ {
			if !hasStartTimeHeader(rows[i]) {
				continue
			}
			return &rawTable{
				header:       rows[i],
				rows:         rows[i+1:],
				excelSerials: true,
				sheet:        name,
			}, nil
		}
	}

	return nil, apperrors.NewParsingError("no sheet with a trip header found", nil).WithContext("path", path)
}
