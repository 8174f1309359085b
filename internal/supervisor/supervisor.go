package supervisor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"syscall"
	"time"

	"golang.org/x/sys/unix"
)

// Supervisor runs child processes with a wall-clock deadline and capped
// output capture. The zero value is ready to use.
type Supervisor struct{}

// New returns a ready-to-use Supervisor.
func New() *Supervisor {
	return &Supervisor{}
}

// Run launches argv[0] with the remaining elements as arguments, waits up to
// deadlineSecs, and classifies the result per spec §4.1. stdoutCap and
// stderrCap bound how much of each stream's head is retained in the
// returned ProcessOutcome; the full byte count is always reported in
// Length regardless of the cap.
func (s *Supervisor) Run(ctx context.Context, argv []string, deadlineSecs float64, stdoutCap, stderrCap int64) ProcessOutcome {
	outcome := ProcessOutcome{
		Cmd:              append([]string(nil), argv...),
		RuntimeLimitSecs: deadlineSecs,
	}

	execCtx, cancel := context.WithTimeout(ctx, secsToDuration(deadlineSecs))
	defer cancel()

	cmd := exec.CommandContext(execCtx, argv[0], argv[1:]...)
	// Run the child in its own process group and kill the whole group on
	// deadline, so grandchildren holding the output pipes cannot keep Wait
	// blocked past the deadline.
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	cmd.Cancel = func() error { return syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL) }

	stdout := newHeadCapture(stdoutCap)
	stderr := newHeadCapture(stderrCap)
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	t0 := time.Now()
	startErr := cmd.Start()
	if startErr != nil {
		outcome.RuntimeSecs = time.Since(t0).Seconds()
		classifySpawnError(&outcome, argv[0], startErr)
		return outcome
	}

	waitErr := cmd.Wait()
	outcome.RuntimeSecs = time.Since(t0).Seconds()
	outcome.Stdout = stdout.stream()
	outcome.Stderr = stderr.stream()

	if execCtx.Err() == context.DeadlineExceeded {
		outcome.Status = StatusFailedTimeout
		outcome.ExceptionMsg = fmt.Sprintf("deadline of %.3fs exceeded, process killed", deadlineSecs)
		return outcome
	}

	classifyExit(&outcome, waitErr)
	return outcome
}

func secsToDuration(secs float64) time.Duration {
	if secs <= 0 {
		return 0
	}
	return time.Duration(secs * float64(time.Second))
}

// classifySpawnError handles the two spawn-time failure branches of spec
// §4.1: a permission error (not executable) versus any other OS error.
func classifySpawnError(outcome *ProcessOutcome, path string, err error) {
	if errors.Is(err, os.ErrPermission) {
		outcome.Status = StatusFailedNotExecutable
		outcome.ExceptionMsg = err.Error()
		if info, statErr := os.Stat(path); statErr == nil {
			mode := uint32(info.Mode().Perm())
			outcome.Perms = &mode
		}
		return
	}
	outcome.Status = StatusFailedExecException
	outcome.ExceptionMsg = err.Error()
}

// classifyExit handles the "clean exit" branch of spec §4.1: success, OOM,
// or an ordinary nonzero return code.
func classifyExit(outcome *ProcessOutcome, waitErr error) {
	if waitErr == nil {
		zero := 0
		outcome.Status = StatusSuccess
		outcome.ReturnCode = &zero
		return
	}

	var exitErr *exec.ExitError
	if !errors.As(waitErr, &exitErr) {
		outcome.Status = StatusFailedExecException
		outcome.ExceptionMsg = waitErr.Error()
		return
	}

	returnCode := exitErr.ExitCode()
	// ExitError.Sys() reports the raw syscall.WaitStatus; converting to
	// unix.WaitStatus (same underlying representation) lets us decode the
	// terminating signal through golang.org/x/sys/unix instead of syscall.
	if raw, ok := exitErr.Sys().(syscall.WaitStatus); ok {
		ws := unix.WaitStatus(raw)
		if ws.Signaled() {
			returnCode = -int(ws.Signal())
		}
	}
	outcome.ReturnCode = &returnCode
	outcome.ExceptionMsg = exitErr.Error()

	switch {
	case returnCode == 0:
		outcome.Status = StatusSuccess
	case returnCode == -int(unix.SIGKILL):
		outcome.Status = StatusFailedOutOfMemory
	default:
		outcome.Status = StatusFailedReturnCode
	}
}

// headCapture is an io.Writer that records the total number of bytes
// written while retaining only the first limit bytes, per spec §4.1's
// head-truncation (not tail) contract.
type headCapture struct {
	limit int64
	buf   bytes.Buffer
	total int64
}

func newHeadCapture(limit int64) *headCapture {
	if limit < 0 {
		limit = 0
	}
	return &headCapture{limit: limit}
}

func (h *headCapture) Write(p []byte) (int, error) {
	h.total += int64(len(p))
	if room := h.limit - int64(h.buf.Len()); room > 0 {
		if room > int64(len(p)) {
			room = int64(len(p))
		}
		h.buf.Write(p[:room])
	}
	return len(p), nil
}

func (h *headCapture) stream() *CapturedStream {
	return &CapturedStream{
		Length: h.total,
		Data:   append(Blob(nil), h.buf.Bytes()...),
	}
}
