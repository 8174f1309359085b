package config

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

// Load reads and parses the JSON configuration document at path. Filesystem
// access goes through fs so tests can exercise this against an
// afero.MemMapFs instead of the real disk.
//
// Load fails loudly (spec §4.6, §7): a missing file, malformed JSON, or a
// missing required meta.solution_name all return an error that the caller
// should treat as fatal.
func Load(fs afero.Fs, path string) (*Document, error) {
	v := viper.New()
	v.SetFs(fs)
	v.SetConfigFile(path)
	v.SetConfigType("json")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config %q: %w", path, err)
	}

	var doc Document
	if err := v.Unmarshal(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse config %q: %w", path, err)
	}

	if err := doc.validate(); err != nil {
		return nil, fmt.Errorf("invalid config %q: %w", path, err)
	}

	if doc.Meta.MaxTestbatchSize <= 0 {
		doc.Meta.MaxTestbatchSize = 1
	}

	return &doc, nil
}

func (d *Document) validate() error {
	if d.Meta.SolutionName == "" {
		return fmt.Errorf("meta.solution_name is required")
	}
	if d.Meta.LocalDUTDir == "" {
		return fmt.Errorf("meta.local_dut_dir is required")
	}

	seen := make(map[string]struct{}, len(d.TestCases))
	for _, tc := range d.TestCases {
		if tc.Name == "" {
			return fmt.Errorf("testcase with empty name")
		}
		if _, dup := seen[tc.Name]; dup {
			return fmt.Errorf("duplicate testcase name: %s", tc.Name)
		}
		seen[tc.Name] = struct{}{}
		if tc.RuntimeAllowanceSecs < 0 {
			return fmt.Errorf("testcase %s: runtime_allowance_secs must be non-negative", tc.Name)
		}
	}
	return nil
}
