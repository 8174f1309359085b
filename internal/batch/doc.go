// Package batch groups an ordered test case sequence into contiguous
// batches by action and budget, and computes each batch's wall-clock
// allowance.
package batch
