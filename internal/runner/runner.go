package runner

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/spf13/afero"

	"github.com/kartfire/runner/internal/batch"
	"github.com/kartfire/runner/internal/config"
	"github.com/kartfire/runner/internal/report"
	"github.com/kartfire/runner/internal/scheduler"
	"github.com/kartfire/runner/internal/supervisor"
	"github.com/kartfire/runner/internal/unpack"
)

// Run drives the full sequence (spec §4.5): ensure the DUT directory,
// unpack the archive if configured, run the build step, and — if the build
// was absent or succeeded — schedule every initial batch against the
// solution. All outcomes accumulate into the returned RunReport.
//
// Run returns an error only when the DUT directory cannot be created, the
// archive fails to unpack, or a batch manifest cannot be written;
// configuration errors cannot arise here, since doc is already parsed by the
// time Run is called. Every subprocess failure is captured in the report,
// never returned as an error.
func Run(ctx context.Context, fs afero.Fs, doc *config.Document, logger *slog.Logger) (*report.RunReport, error) {
	start := time.Now()
	sup := supervisor.New()

	if err := fs.MkdirAll(doc.Meta.LocalDUTDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create DUT directory %q: %w", doc.Meta.LocalDUTDir, err)
	}

	if doc.Meta.LocalTestcaseTarFile != "" {
		if logger != nil {
			logger.Debug("unpacking test artifacts", "archive", doc.Meta.LocalTestcaseTarFile, "dest", doc.Meta.LocalDUTDir)
		}
		if err := unpack.Extract(ctx, sup, doc.Meta.LocalTestcaseTarFile, doc.Meta.LocalDUTDir, doc.Meta.MaxSetupTimeSecs, doc.Meta.LimitStdoutBytes, doc.Meta.LimitStdoutBytes); err != nil {
			return nil, err
		}
	}

	rpt := report.New()

	if doc.Meta.SetupName != "" {
		argv := []string{filepath.Join(doc.Meta.LocalDUTDir, doc.Meta.SetupName)}
		if logger != nil {
			logger.Debug("running build step", "cmd", argv)
		}
		outcome := sup.Run(ctx, argv, doc.Meta.MaxSetupTimeSecs, doc.Meta.LimitStdoutBytes, doc.Meta.LimitStdoutBytes)
		rpt.Setup = &outcome

		if outcome.Status != supervisor.StatusSuccess {
			if logger != nil {
				logger.Debug("build step failed, skipping test phase", "status", outcome.Status.String())
			}
			return rpt, nil
		}
	}

	initialBatches := batch.InitialBatches(doc.TestCases, doc.Meta.MaxTestbatchSize)

	sched := &scheduler.Scheduler{
		Supervisor:   sup,
		Fs:           fs,
		SolutionArgv: []string{filepath.Join(doc.Meta.LocalDUTDir, doc.Meta.SolutionName)},
		ManifestPath: doc.Meta.LocalTestcaseFilename,
		FloorSecs:    doc.Meta.MinimumTestbatchTimeSecs,
		StdoutCap:    doc.Meta.LimitStdoutBytes,
		StderrCap:    doc.Meta.LimitStdoutBytes,
		Logger:       logger,
	}

	for _, ib := range initialBatches {
		allowance := batch.Allowance(ib, doc.Meta.MinimumTestbatchTimeSecs)
		if logger != nil {
			logger.Debug("scheduling initial batch", "testcases", ib.Names(), "action", ib[0].Action(), "allowance_secs", allowance)
		}

		results, err := sched.Schedule(ctx, ib, allowance)
		if err != nil {
			return nil, err
		}
		rpt.Testbatches = append(rpt.Testbatches, results...)
	}

	total := time.Since(start).Seconds()
	rpt.TotalRuntimeSecs = &total

	return rpt, nil
}
