package batch

// Allowance computes a batch's wall-clock budget: the sum of its cases'
// runtime allowances plus the configured floor, which absorbs per-batch
// startup cost (spec §4.3).
func Allowance(b Batch, floorSecs float64) float64 {
	total := floorSecs
	for _, tc := range b {
		total += tc.RuntimeAllowanceSecs
	}
	return total
}
