// Package cmd wires the runner's single-argument CLI contract (spec §6):
// exactly one positional argument naming the JSON configuration file, the
// full RunReport written to stdout on success.
package cmd

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/kartfire/runner/internal/config"
	"github.com/kartfire/runner/internal/runner"
)

var rootCmd = &cobra.Command{
	Use:           "kartfire-runner <config.json>",
	Short:         "Run a known-answer test batch against a device-under-test",
	Args:          cobra.ExactArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runBatches,
}

// Execute runs the root command. The caller is responsible for mapping a
// non-nil error to exit code 1 (spec §6).
func Execute() error {
	return rootCmd.Execute()
}

func runBatches(cmd *cobra.Command, args []string) error {
	fs := afero.NewOsFs()
	configPath := args[0]

	doc, err := config.Load(fs, configPath)
	if err != nil {
		return err
	}

	logger := newLogger(doc.Meta.Debug)

	rpt, err := runner.Run(cmd.Context(), fs, doc, logger)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetEscapeHTML(false)
	if err := enc.Encode(rpt); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	return nil
}

func newLogger(debug bool) *slog.Logger {
	level := slog.LevelWarn
	if debug {
		level = slog.LevelDebug
	}
	handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
	return slog.New(handler)
}
