// Package exporter renders analysis results for people and other programs.
//
// This package contains three main components:
//
// TextReport: the statistics printout of the interactive program, one
// section per statistics group, each ending with how long it took.
//
// RowPager and WriteRows: raw trip rows as CSV, either a page at a time
// for the "see 5 more rows" loop or as a whole file via ExportCSV.
//
// WriteJSON: the PipelineResult summary for scripting.
//
// Example usage:
//
//	report := exporter.NewTextReport(os.Stdout)
//	if err := report.Write(result); err != nil {
//	    return err
//	}
//
//	pager := exporter.NewRowPager(result.Table, 5)
//	for !pager.Done() {
//	    if _, err := pager.WriteNext(os.Stdout); err != nil {
//	        return err
//	    }
//	}
package exporter
