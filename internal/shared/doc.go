// Package shared holds code used across the bikeshare packages that does
// not belong to a single layer.
//
// The testutil subpackage provides the test helpers: a buffered slog
// handler for asserting on log output, and CSV/XLSX trip fixtures written
// under t.TempDir() in the column layouts of the published city datasets.
//
//	logger, logs := testutil.NewTestLogger(t)
//	path := testutil.WriteTripsCSV(t, t.TempDir(), "chicago.csv",
//	    testutil.ChicagoHeader, testutil.SampleChicagoTrips())
//
// Nothing here is imported by production code.
package shared
