package report

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/kartfire/runner/internal/scheduler"
	"github.com/kartfire/runner/internal/supervisor"
)

func TestRunReport_EmptyTestbatchesEncodesAsArray(t *testing.T) {
	rpt := New()
	rpt.Setup = &supervisor.ProcessOutcome{Status: supervisor.StatusFailedReturnCode}

	data, err := json.Marshal(rpt)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if strings.Contains(string(data), `"testbatches":null`) {
		t.Errorf("expected testbatches to encode as [], got %s", data)
	}
	if !strings.Contains(string(data), `"testbatches":[]`) {
		t.Errorf("expected empty testbatches array, got %s", data)
	}
	if strings.Contains(string(data), "total_runtime_secs") {
		t.Errorf("expected total_runtime_secs to be omitted, got %s", data)
	}
}

func TestRunReport_EncodesStatusAndBlobs(t *testing.T) {
	total := 1.5
	rpt := &RunReport{
		Testbatches: []scheduler.BatchResult{
			{
				Testcases: []string{"a"},
				Process: supervisor.ProcessOutcome{
					Status: supervisor.StatusSuccess,
					Stdout: &supervisor.CapturedStream{Length: 3, Data: supervisor.Blob("abc")},
				},
			},
		},
		TotalRuntimeSecs: &total,
	}

	data, err := json.Marshal(rpt)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !strings.Contains(string(data), `"status":"Success"`) {
		t.Errorf("expected symbolic status name, got %s", data)
	}
	if !strings.Contains(string(data), `"data":"YWJj"`) {
		t.Errorf("expected base64-encoded blob, got %s", data)
	}
	if !strings.Contains(string(data), `"setup":null`) {
		t.Errorf("expected setup to encode as null when absent, got %s", data)
	}
}
