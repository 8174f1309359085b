package scheduler

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"

	"github.com/kartfire/runner/internal/batch"
	"github.com/kartfire/runner/internal/config"
	"github.com/kartfire/runner/internal/supervisor"
)

func tc(name string, allowance float64) config.TestCase {
	return config.TestCase{
		Name:                 name,
		RuntimeAllowanceSecs: allowance,
		TestcaseData:         map[string]interface{}{"action": "add"},
	}
}

// writeCrashIfPresent writes a solution script that fails whenever needle
// appears in the manifest file it's handed, and exits 0 otherwise (mirrors
// spec.md scenario S3).
func writeCrashIfPresent(t *testing.T, dir, needle string) string {
	t.Helper()
	path := filepath.Join(dir, "solution.sh")
	body := fmt.Sprintf("#!/bin/sh\nif grep -q '\"%s\"' \"$1\"; then\n  exit 1\nfi\nexit 0\n", needle)
	if err := os.WriteFile(path, []byte(body), 0o755); err != nil {
		t.Fatalf("failed to write solution script: %v", err)
	}
	return path
}

func newScheduler(t *testing.T, solution string) *Scheduler {
	t.Helper()
	dir := t.TempDir()
	return &Scheduler{
		Supervisor:   supervisor.New(),
		Fs:           afero.NewOsFs(),
		SolutionArgv: []string{solution},
		ManifestPath: filepath.Join(dir, "manifest.json"),
		FloorSecs:    0.2,
		StdoutCap:    4096,
		StderrCap:    4096,
	}
}

func TestSchedule_AllPassSingleResult(t *testing.T) {
	dir := t.TempDir()
	solution := writeCrashIfPresent(t, dir, "never-matches")
	sched := newScheduler(t, solution)

	b := batch.Batch{tc("a", 1), tc("b", 1), tc("c", 1)}
	results, err := sched.Schedule(context.Background(), b, batch.Allowance(b, sched.FloorSecs))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(results) != 1 {
		t.Fatalf("expected 1 result for an already-passing batch, got %d", len(results))
	}
	if results[0].Process.Status != supervisor.StatusSuccess {
		t.Errorf("expected Success, got %s", results[0].Process.Status)
	}
}

func TestSchedule_BisectsToLocalizeFailure(t *testing.T) {
	dir := t.TempDir()
	solution := writeCrashIfPresent(t, dir, "x3")
	sched := newScheduler(t, solution)
	sched.FloorSecs = 0

	b := batch.Batch{tc("x1", 5), tc("x2", 5), tc("x3", 5), tc("x4", 5)}
	allowance := batch.Allowance(b, sched.FloorSecs)

	results, err := sched.Schedule(context.Background(), b, allowance)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var order [][]string
	for _, r := range results {
		order = append(order, r.Testcases)
	}

	want := [][]string{{"x1", "x2"}, {"x3"}, {"x4"}}
	if fmt.Sprint(order) != fmt.Sprint(want) {
		t.Fatalf("got batch order %v, want %v", order, want)
	}

	if results[0].Process.Status != supervisor.StatusSuccess {
		t.Errorf("expected [x1,x2] to succeed, got %s", results[0].Process.Status)
	}
	if results[1].Process.Status == supervisor.StatusSuccess {
		t.Errorf("expected [x3] to fail")
	}
	if results[2].Process.Status != supervisor.StatusSuccess {
		t.Errorf("expected [x4] to succeed, got %s", results[2].Process.Status)
	}
}

func TestSchedule_SingletonBatchAlwaysOneResult(t *testing.T) {
	dir := t.TempDir()
	solution := writeCrashIfPresent(t, dir, "only")
	sched := newScheduler(t, solution)

	b := batch.Batch{tc("only", 1)}
	results, err := sched.Schedule(context.Background(), b, batch.Allowance(b, sched.FloorSecs))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected exactly 1 result for a singleton batch, got %d", len(results))
	}
	if results[0].Process.Status == supervisor.StatusSuccess {
		t.Error("expected the singleton to fail, since its case matches the crash condition")
	}
}

func TestSchedule_CoverageInvariant(t *testing.T) {
	dir := t.TempDir()
	solution := writeCrashIfPresent(t, dir, "b")
	sched := newScheduler(t, solution)
	sched.FloorSecs = 0

	b := batch.Batch{tc("a", 1), tc("b", 1), tc("c", 1), tc("d", 1)}
	results, err := sched.Schedule(context.Background(), b, batch.Allowance(b, sched.FloorSecs))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var got []string
	for _, r := range results {
		got = append(got, r.Testcases...)
	}
	want := []string{"a", "b", "c", "d"}
	if fmt.Sprint(got) != fmt.Sprint(want) {
		t.Errorf("coverage invariant violated: got %v, want %v", got, want)
	}
}
