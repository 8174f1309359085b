// Package supervisor runs a single child process under a wall-clock deadline
// and output-size caps, classifying the result into a fixed set of statuses.
//
// The scheduler's bisection decisions are driven entirely by the status and
// timing a supervisor run produces, so its classification order (permission
// error, other spawn error, timeout, clean exit) is part of the contract, not
// an implementation detail.
package supervisor
