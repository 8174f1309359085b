// Command kartfire-runner is the in-container test batch runner: it builds
// the device-under-test, runs the solution against batched test cases, and
// writes a single JSON report to stdout.
package main

import (
	"fmt"
	"os"

	"github.com/kartfire/runner/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
