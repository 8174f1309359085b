package scheduler

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/afero"

	"github.com/kartfire/runner/internal/batch"
)

// manifestDocument is the per-batch file handed to the solution before each
// invocation (spec §6): a mapping from case name to its opaque payload.
type manifestDocument struct {
	Testcases map[string]interface{} `json:"testcases"`
}

// writeManifest overwrites path with b's manifest document.
func writeManifest(fs afero.Fs, path string, b batch.Batch) error {
	doc := manifestDocument{Testcases: make(map[string]interface{}, len(b))}
	for _, tc := range b {
		doc.Testcases[tc.Name] = tc.TestcaseData
	}

	data, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode manifest: %w", err)
	}

	if err := afero.WriteFile(fs, path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write manifest %q: %w", path, err)
	}
	return nil
}
