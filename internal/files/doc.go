// Package files reports on the dataset files behind the configured cities.
//
// Discovery lists the CSV and workbook files in a data directory and
// describes each configured city source: whether it exists, its format,
// size and modification time. The HTTP cities endpoint and the readiness
// check are built on it.
//
//	discovery := files.NewDiscovery(cfg.Data.Dir)
//	for _, ds := range discovery.Describe(cfg.DataSources()) {
//	    fmt.Println(ds.Title, ds.Available)
//	}
package files
