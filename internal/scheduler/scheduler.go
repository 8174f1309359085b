package scheduler

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/spf13/afero"

	"github.com/kartfire/runner/internal/batch"
	"github.com/kartfire/runner/internal/supervisor"
)

// BatchResult is the outcome of running one batch, whether it came from the
// unbisected path or a leaf of the bisection tree.
type BatchResult struct {
	Testcases []string                  `json:"testcases"`
	Process   supervisor.ProcessOutcome `json:"process"`
}

// Scheduler runs batches against the solution executable, bisecting on
// failure per spec §4.4.
type Scheduler struct {
	Supervisor   *supervisor.Supervisor
	Fs           afero.Fs
	SolutionArgv []string // argv[0] is the solution binary path
	ManifestPath string
	FloorSecs    float64
	StdoutCap    int64
	StderrCap    int64
	Logger       *slog.Logger
}

// Schedule runs b under allowanceSecs, recursively bisecting on non-success
// until every case has been individually attempted or the remaining budget
// guard fires. Results are returned in left-then-right, depth-first order.
func (s *Scheduler) Schedule(ctx context.Context, b batch.Batch, allowanceSecs float64) ([]BatchResult, error) {
	if err := writeManifest(s.Fs, s.ManifestPath, b); err != nil {
		return nil, err
	}

	argv := append(append([]string(nil), s.SolutionArgv...), s.ManifestPath)
	outcome := s.Supervisor.Run(ctx, argv, allowanceSecs, s.StdoutCap, s.StderrCap)
	elapsed := outcome.RuntimeSecs

	s.log("ran batch", b, allowanceSecs, outcome.Status.String(), elapsed)

	// Terminal: success, or nothing left to split.
	if outcome.Status == supervisor.StatusSuccess || len(b) <= 1 {
		return []BatchResult{{Testcases: b.Names(), Process: outcome}}, nil
	}

	nominal := batch.Allowance(b, s.FloorSecs)
	remaining := allowanceSecs - elapsed

	if remaining <= nominal/2 {
		s.log("surrendering batch, budget exhausted", b, allowanceSecs, outcome.Status.String(), elapsed)
		return []BatchResult{{Testcases: b.Names(), Process: outcome}}, nil
	}

	half := len(b) / 2
	left, right := b[:half], b[half:]
	scale := remaining / nominal

	leftResults, err := s.Schedule(ctx, left, batch.Allowance(left, s.FloorSecs)*scale)
	if err != nil {
		return nil, err
	}
	rightResults, err := s.Schedule(ctx, right, batch.Allowance(right, s.FloorSecs)*scale)
	if err != nil {
		return nil, err
	}

	return append(leftResults, rightResults...), nil
}

func (s *Scheduler) log(msg string, b batch.Batch, allowance float64, status string, elapsed float64) {
	if s.Logger == nil {
		return
	}
	s.Logger.Debug(msg,
		"testcases", b.Names(),
		"allowance_secs", fmt.Sprintf("%.3f", allowance),
		"status", status,
		"elapsed_secs", fmt.Sprintf("%.3f", elapsed),
	)
}
