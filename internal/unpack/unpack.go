// Package unpack extracts the test-artifact archive into the DUT directory
// when a local archive path is configured (spec §4.1/§2 component 1).
//
// Extraction shells out to the external tar binary, as spec §5 names it
// explicitly, rather than a Go archive library — the archive format and its
// quirks are the host orchestrator's concern, not the runner's.
package unpack

import (
	"context"
	"fmt"

	"github.com/kartfire/runner/internal/supervisor"
)

// Extract runs `tar -xf archivePath -C destDir` under the Subprocess
// Supervisor so the unpack step gets the same timeout and output-capture
// treatment as every other child process. A non-success outcome is returned
// as an error: per spec §7, unpack failure is allowed to propagate as a
// fatal error and no RunReport is emitted.
func Extract(ctx context.Context, sup *supervisor.Supervisor, archivePath, destDir string, deadlineSecs float64, stdoutCap, stderrCap int64) error {
	argv := []string{"tar", "-xf", archivePath, "-C", destDir}
	outcome := sup.Run(ctx, argv, deadlineSecs, stdoutCap, stderrCap)

	if outcome.Status != supervisor.StatusSuccess {
		return fmt.Errorf("failed to unpack %q into %q: %s (status %s)", archivePath, destDir, outcome.ExceptionMsg, outcome.Status)
	}
	return nil
}
