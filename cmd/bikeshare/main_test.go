package main

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bikeshare/internal/shared/testutil"
	"bikeshare/pkg/contracts"
)

// dataDir writes the sample Chicago trips under the default file name
func dataDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	testutil.WriteTripsCSV(t, dir, "chicago.csv", testutil.ChicagoHeader, testutil.SampleChicagoTrips())
	return dir
}

func runCLI(t *testing.T, stdin string, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(context.Background(), args, strings.NewReader(stdin), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRun_Version(t *testing.T) {
	code, out, _ := runCLI(t, "", "-version")
	assert.Equal(t, 0, code)
	assert.Contains(t, out, contracts.Version)
}

func TestRun_BadFlags(t *testing.T) {
	code, _, errOut := runCLI(t, "", "-nope")
	assert.Equal(t, 2, code)
	assert.Contains(t, errOut, "flag provided but not defined")

	code, _, _ = runCLI(t, "", "chicago")
	assert.Equal(t, 2, code)
}

func TestRun_Report(t *testing.T) {
	code, out, errOut := runCLI(t, "", "-data", dataDir(t), "-city", "Chicago", "-month", "march", "-day", "friday")
	require.Equal(t, 0, code, errOut)

	for _, want := range []string{
		"City: Chicago | Month: March | Day: Friday",
		"Trips selected: 3 of 5",
		"Most Common Month: March",
		"Most Common Start Station: Clark St",
		"Total Travel Time: 0 Hours, 45 Minutes, 0 Seconds",
		"Mean Travel Time: 15 Minutes, 0 Seconds",
		"Genders Count:",
	} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "Start Time,")
}

func TestRun_JSON(t *testing.T) {
	code, out, errOut := runCLI(t, "", "-data", dataDir(t), "-city", "chicago", "-json")
	require.Equal(t, 0, code, errOut)

	var result map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &result))
	assert.Equal(t, "chicago", result["city"])
	assert.EqualValues(t, 5, result["statistics"].(map[string]any)["rows"])
}

func TestRun_RawAndExport(t *testing.T) {
	dir := dataDir(t)
	exportPath := filepath.Join(t.TempDir(), "march.csv")

	code, out, errOut := runCLI(t, "", "-data", dir, "-city", "chicago", "-month", "march", "-raw", "-export", exportPath)
	require.Equal(t, 0, code, errOut)

	raw := out[strings.Index(out, "Start Time,"):]
	records, err := csv.NewReader(strings.NewReader(raw)).ReadAll()
	require.NoError(t, err)
	assert.Len(t, records, 4)

	content, err := os.ReadFile(exportPath)
	require.NoError(t, err)
	records, err = csv.NewReader(bytes.NewReader(bytes.TrimPrefix(content, []byte("\ufeff")))).ReadAll()
	require.NoError(t, err)
	assert.Len(t, records, 4)
}

func TestRun_Failures(t *testing.T) {
	dir := dataDir(t)

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"unknown city", []string{"-city", "boston"}, "city"},
		{"month outside range", []string{"-city", "chicago", "-month", "july"}, "month"},
		{"missing source file", []string{"-city", "washington"}, "washington"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, out, errOut := runCLI(t, "", append([]string{"-data", dir}, tt.args...)...)
			assert.Equal(t, 1, code)
			assert.Empty(t, out)
			assert.Contains(t, errOut, tt.wantErr)
		})
	}
}

func TestRun_Interactive(t *testing.T) {
	input := strings.Join([]string{
		"boston", "Chicago",
		"july", "March",
		"ALL",
		"yes", "yes",
		"no",
	}, "\n") + "\n"

	code, out, errOut := runCLI(t, input, "-data", dataDir(t), "-page-size", "2")
	require.Equal(t, 0, code, errOut)

	assert.Equal(t, 2, strings.Count(out, "Invalid Input"))
	assert.Contains(t, out, "Hello! Let's explore some US bikeshare data!")
	assert.Contains(t, out, "\n"+cityPrompt)
	assert.Contains(t, out, "Most Common Month: March")
	assert.Contains(t, out, "Would you like to see the raw data?")
	assert.Contains(t, out, "Would you like to see 2 more rows?")
	assert.Contains(t, out, "No more rows to display.")
	assert.Contains(t, out, "Would you like to restart?")
	assert.Equal(t, 1, strings.Count(out, "Start Time,"), "header is printed with the first page only")
	assert.NotContains(t, out, "Trips selected", "interactive mode prints the statistics only")
}

func TestRun_InteractiveRestart(t *testing.T) {
	input := "chicago\nall\nall\nno\nyes\nchicago\njanuary\nmonday\nno\nno\n"

	code, out, errOut := runCLI(t, input, "-data", dataDir(t))
	require.Equal(t, 0, code, errOut)

	assert.Equal(t, 2, strings.Count(out, "Hello! Let's explore"))
	assert.Equal(t, 2, strings.Count(out, "Calculating User Stats..."))
	assert.Contains(t, out, "Most Common Day of Week: Monday")
}

func TestRun_InteractiveEndOfInput(t *testing.T) {
	code, out, _ := runCLI(t, "chicago\n", "-data", dataDir(t))
	assert.Equal(t, 0, code)
	assert.Contains(t, out, monthPrompt)
	assert.NotContains(t, out, "Calculating")
}

func TestRun_InteractiveLoadFailure(t *testing.T) {
	code, _, errOut := runCLI(t, "washington\nall\nall\n", "-data", dataDir(t))
	assert.Equal(t, 1, code)
	assert.Contains(t, errOut, "washington")
}
