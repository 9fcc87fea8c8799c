package testutil

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"
)

// Column layouts of the three published datasets. The leading empty header is
// the unnamed index column the exports carry.
var (
	ChicagoHeader = []string{"", "Start Time", "End Time", "Trip Duration", "Start Station",
		"End Station", "User Type", "Gender", "Birth Year"}
	NewYorkCityHeader = ChicagoHeader
	WashingtonHeader  = []string{"", "Start Time", "End Time", "Trip Duration", "Start Station",
		"End Station", "User Type"}
)

// Trip is one fixture row. Empty fields are written as empty cells.
type Trip struct {
	Start        string
	End          string
	Duration     string
	StartStation string
	EndStation   string
	UserType     string
	Gender       string
	BirthYear    string
}

// Record renders the trip under the given header. Unknown columns get the row index.
func (tr Trip) Record(index int, header []string) []string {
	rec := make([]string, len(header))
	for i, col := range header {
		switch col {
		case "Start Time":
			rec[i] = tr.Start
		case "End Time":
			rec[i] = tr.End
		case "Trip Duration":
			rec[i] = tr.Duration
		case "Start Station":
			rec[i] = tr.StartStation
		case "End Station":
			rec[i] = tr.EndStation
		case "User Type":
			rec[i] = tr.UserType
		case "Gender":
			rec[i] = tr.Gender
		case "Birth Year":
			rec[i] = tr.BirthYear
		default:
			rec[i] = fmt.Sprintf("%d", index)
		}
	}
	return rec
}

// Records renders trips under header
func Records(header []string, trips []Trip) [][]string {
	rows := make([][]string, 0, len(trips))
	for i, tr := range trips {
		rows = append(rows, tr.Record(i, header))
	}
	return rows
}

// WriteCSV writes header and rows to dir/name and returns the path
func WriteCSV(t *testing.T, dir, name string, header []string, rows [][]string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create fixture %s: %v", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		t.Fatalf("write fixture header: %v", err)
	}
	if err := w.WriteAll(rows); err != nil {
		t.Fatalf("write fixture rows: %v", err)
	}
	return path
}

// WriteTripsCSV writes trips under header to dir/name
func WriteTripsCSV(t *testing.T, dir, name string, header []string, trips []Trip) string {
	t.Helper()
	return WriteCSV(t, dir, name, header, Records(header, trips))
}

// WriteXLSX writes header and rows to the first sheet of a new workbook at dir/name.
// When leadSheet is non-empty an extra sheet without trip data is placed first.
func WriteXLSX(t *testing.T, dir, name, leadSheet string, header []string, rows [][]string) string {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheet := "Trips"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		t.Fatalf("rename sheet: %v", err)
	}
	if leadSheet != "" {
		if _, err := f.NewSheet(leadSheet); err != nil {
			t.Fatalf("create sheet %s: %v", leadSheet, err)
		}
		if err := f.SetCellValue(leadSheet, "A1", "Exported by the bikeshare operator"); err != nil {
			t.Fatalf("write lead sheet: %v", err)
		}
		if err := f.MoveSheet(leadSheet, sheet); err != nil {
			t.Fatalf("reorder sheets: %v", err)
		}
	}

	all := append([][]string{header}, rows...)
	for r, row := range all {
		cell, err := excelize.CoordinatesToCellName(1, r+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		values := make([]interface{}, len(row))
		for i, v := range row {
			values[i] = v
		}
		if err := f.SetSheetRow(sheet, cell, &values); err != nil {
			t.Fatalf("write row %d: %v", r, err)
		}
	}

	path := filepath.Join(dir, name)
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("save workbook %s: %v", path, err)
	}
	return path
}

// SampleChicagoTrips is a small dataset with known statistics:
// most common month March, day Friday, hour 9, start "Clark St",
// end "Lake Shore Dr", pair (Clark St, Lake Shore Dr).
func SampleChicagoTrips() []Trip {
	return []Trip{
		// 2017-03-03 is a Friday
		{Start: "2017-03-03 09:05:00", End: "2017-03-03 09:15:00", Duration: "600", StartStation: "Clark St", EndStation: "Lake Shore Dr", UserType: "Subscriber", Gender: "Male", BirthYear: "1985.0"},
		{Start: "2017-03-03 09:30:00", End: "2017-03-03 09:50:00", Duration: "1200", StartStation: "Clark St", EndStation: "Lake Shore Dr", UserType: "Subscriber", Gender: "Female", BirthYear: "1990.0"},
		{Start: "2017-03-10 09:45:10", End: "2017-03-10 10:00:10", Duration: "900", StartStation: "Clark St", EndStation: "Wabash Ave", UserType: "Customer", Gender: "", BirthYear: ""},
		// 2017-01-02 is a Monday
		{Start: "2017-01-02 17:00:00", End: "2017-01-02 17:10:00", Duration: "600", StartStation: "State St", EndStation: "Lake Shore Dr", UserType: "Subscriber", Gender: "Male", BirthYear: "1990.0"},
		// 2017-06-04 is a Sunday
		{Start: "2017-06-04 12:00:00", End: "2017-06-04 12:05:00", Duration: "300", StartStation: "Wabash Ave", EndStation: "State St", UserType: "Customer", Gender: "Female", BirthYear: "1972.0"},
	}
}
