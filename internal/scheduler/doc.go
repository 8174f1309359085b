// Package scheduler implements the adaptive batching scheduler with
// time-budgeted bisection (spec §4.4): run a batch as one subprocess
// invocation, and on non-success, decide whether to halve and recurse under
// a scaled remaining budget or surrender with the batch-level failure.
package scheduler
