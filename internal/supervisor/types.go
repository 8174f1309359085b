package supervisor

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
)

// Status is the closed set of outcomes a supervised child process can reach.
type Status int

const (
	// StatusSuccess means the child exited with code 0.
	StatusSuccess Status = iota
	// StatusFailedReturnCode means the child exited nonzero, and the code is
	// not the OOM signal.
	StatusFailedReturnCode
	// StatusFailedOutOfMemory means the child was killed by the kernel OOM
	// killer (reported as a negative return code equal to -SIGKILL).
	StatusFailedOutOfMemory
	// StatusFailedTimeout means the deadline elapsed and the child was killed.
	StatusFailedTimeout
	// StatusFailedNotExecutable means spawning failed with a permissions
	// error; Perms carries the executable's file-mode bits.
	StatusFailedNotExecutable
	// StatusFailedExecException means spawning failed for any other OS reason.
	StatusFailedExecException
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "Success"
	case StatusFailedReturnCode:
		return "FailedReturnCode"
	case StatusFailedOutOfMemory:
		return "FailedOutOfMemory"
	case StatusFailedTimeout:
		return "FailedTimeout"
	case StatusFailedNotExecutable:
		return "FailedNotExecutable"
	case StatusFailedExecException:
		return "FailedExecException"
	default:
		return "Unknown"
	}
}

// MarshalJSON encodes Status by its symbolic name rather than its ordinal,
// per spec §6: "Status values are emitted as their symbolic name".
func (s Status) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON decodes a symbolic status name back into its ordinal. Used by
// tests that round-trip a Status through JSON.
func (s *Status) UnmarshalJSON(data []byte) error {
	var name string
	if err := json.Unmarshal(data, &name); err != nil {
		return err
	}
	for _, candidate := range []Status{
		StatusSuccess, StatusFailedReturnCode, StatusFailedOutOfMemory,
		StatusFailedTimeout, StatusFailedNotExecutable, StatusFailedExecException,
	} {
		if candidate.String() == name {
			*s = candidate
			return nil
		}
	}
	return fmt.Errorf("supervisor: unknown status %q", name)
}

// Blob is an opaque byte blob emitted as a base64 ASCII string, per spec §6.
// It is a named type (rather than a bare []byte) so the encoding is explicit
// at the point captured stdout/stderr data crosses into the report, matching
// the custom encoder the spec calls for.
type Blob []byte

func (b Blob) MarshalJSON() ([]byte, error) {
	return json.Marshal(base64.StdEncoding.EncodeToString(b))
}

func (b *Blob) UnmarshalJSON(data []byte) error {
	var encoded string
	if err := json.Unmarshal(data, &encoded); err != nil {
		return err
	}
	decoded, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return fmt.Errorf("supervisor: invalid base64 blob: %w", err)
	}
	*b = decoded
	return nil
}

// CapturedStream is a head-truncated capture of one subprocess stream.
// Length is the pre-truncation byte count; Data holds at most the
// configured cap, taken from the head of the stream, never the tail.
type CapturedStream struct {
	Length int64 `json:"length"`
	Data   Blob  `json:"data"`
}

// ProcessOutcome is the immutable result of one supervised child invocation.
// Which optional fields are populated depends on Status (spec §3).
type ProcessOutcome struct {
	Cmd              []string        `json:"cmd"`
	RuntimeLimitSecs float64         `json:"runtime_limit_secs"`
	RuntimeSecs      float64         `json:"runtime_secs"`
	Status           Status          `json:"status"`
	Stdout           *CapturedStream `json:"stdout,omitempty"`
	Stderr           *CapturedStream `json:"stderr,omitempty"`
	ReturnCode       *int            `json:"returncode,omitempty"`
	ExceptionMsg     string          `json:"exception_msg,omitempty"`
	Perms            *uint32         `json:"perms,omitempty"`
}
