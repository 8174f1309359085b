package batch

import "github.com/kartfire/runner/internal/config"

// Batch is a non-empty, action-homogeneous group of test cases, produced
// either by the initial batcher or by bisecting a prior batch.
type Batch []config.TestCase

// Names returns the batch's case names in order.
func (b Batch) Names() []string {
	names := make([]string, len(b))
	for i, tc := range b {
		names[i] = tc.Name
	}
	return names
}

// aggregateCap is the fixed 60-second aggregate-allowance cap from spec §4.2.
const aggregateCap = 60.0

// InitialBatches streams cases into contiguous batches respecting the same
// action, the cardinality cap maxSize, and the 60-second aggregate
// expected-runtime cap (spec §4.2). Rules are applied left-to-right per
// candidate case; the action-boundary check fires before the
// cardinality/runtime check, so a batch may close below the cardinality cap
// purely on an action boundary.
func InitialBatches(cases []config.TestCase, maxSize int) []Batch {
	if maxSize <= 0 {
		maxSize = 1
	}

	var batches []Batch
	var current Batch
	var expectedRuntime float64

	flush := func() {
		if len(current) > 0 {
			batches = append(batches, current)
			current = nil
			expectedRuntime = 0
		}
	}

	for _, tc := range cases {
		if len(current) > 0 && current[0].Action() != tc.Action() {
			flush()
		}

		current = append(current, tc)
		expectedRuntime += tc.RuntimeAllowanceSecs

		if len(current) >= maxSize || expectedRuntime >= aggregateCap {
			flush()
		}
	}
	flush()

	return batches
}
