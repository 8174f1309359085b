package config

// Document is the parsed input configuration: the recognized meta options
// and the ordered test case sequence.
type Document struct {
	Meta      Meta       `mapstructure:"meta"`
	TestCases []TestCase `mapstructure:"testcases"`
}

// Meta holds the recognized top-level options (spec §6).
type Meta struct {
	LocalDUTDir              string  `mapstructure:"local_dut_dir"`
	LocalTestcaseTarFile     string  `mapstructure:"local_testcase_tar_file"`
	LocalTestcaseFilename    string  `mapstructure:"local_testcase_filename"`
	SetupName                string  `mapstructure:"setup_name"`
	SolutionName             string  `mapstructure:"solution_name"`
	MaxSetupTimeSecs         float64 `mapstructure:"max_setup_time_secs"`
	MaxTestbatchSize         int     `mapstructure:"max_testbatch_size"`
	MinimumTestbatchTimeSecs float64 `mapstructure:"minimum_testbatch_time_secs"`
	LimitStdoutBytes         int64   `mapstructure:"limit_stdout_bytes"`
	Debug                    bool    `mapstructure:"debug"`
}

// TestCase is one known-answer test case. TestcaseData is forwarded to the
// DUT untouched; the only field the core inspects is "action", used as the
// batching key.
type TestCase struct {
	Name                 string                 `mapstructure:"name"`
	RuntimeAllowanceSecs float64                `mapstructure:"runtime_allowance_secs"`
	TestcaseData         map[string]interface{} `mapstructure:"testcase_data"`
}

// Action returns the batching key embedded in the opaque test case payload.
func (tc TestCase) Action() string {
	if v, ok := tc.TestcaseData["action"].(string); ok {
		return v
	}
	return ""
}
