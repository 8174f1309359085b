// Package report defines the final JSON document the runner emits on
// stdout: the build outcome, every batch result, and the total wall time.
package report

import (
	"github.com/kartfire/runner/internal/scheduler"
	"github.com/kartfire/runner/internal/supervisor"
)

// RunReport is the single JSON document emitted on a successful run
// (spec §3, §6). TotalRuntimeSecs is absent when setup failed and the test
// phase was skipped.
type RunReport struct {
	Setup            *supervisor.ProcessOutcome `json:"setup"`
	Testbatches      []scheduler.BatchResult    `json:"testbatches"`
	TotalRuntimeSecs *float64                   `json:"total_runtime_secs,omitempty"`
}

// New returns an empty report with Testbatches initialized so it encodes as
// `[]` rather than `null` (spec §8 invariant 8: testbatches is an empty
// array, not an absent field, when setup fails).
func New() *RunReport {
	return &RunReport{Testbatches: []scheduler.BatchResult{}}
}
