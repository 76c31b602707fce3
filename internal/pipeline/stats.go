package pipeline

import "refresher/internal/mutate"

// RunStats aggregates per-file outcomes and counters across a batch run.
type RunStats struct {
	Total       int
	Current     int
	Renamed     int
	DateUpdated int

	Results    []mutate.Result
	Warnings   []string // non-fatal errors accumulated during the run
	ReportPath string   // written report, empty when skipped (interrupt)
}

// ErrorCount returns the number of non-fatal errors recorded during the run.
// Files already bearing the desired name are deliberate skips, not errors,
// and never appear here.
func (s *RunStats) ErrorCount() int {
	return len(s.Warnings)
}
