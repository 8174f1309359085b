// Package runner is the Report Assembler: it orchestrates unpack, build,
// and per-batch scheduling, and produces the final RunReport (spec §4.5).
package runner
