// Package testutil provides test utilities for CLI testing.
package testutil

import (
	"bytes"
	"os"
	"path/filepath"
	"regexp"
	"runtime"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

// Result holds the captured output of a command run.
type Result struct {
	Out    string
	ErrOut string
	Err    error
}

// Execute runs cmd with args and captures stdout and stderr separately.
func Execute(t *testing.T, cmd *cobra.Command, args ...string) Result {
	t.Helper()

	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return Result{Out: out.String(), ErrOut: errOut.String(), Err: err}
}

// SampleDataPath returns the absolute path of the bundled launch CSV.
func SampleDataPath(t *testing.T) string {
	t.Helper()

	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("failed to locate testutil source")
	}
	path := filepath.Join(filepath.Dir(file), "..", "..", "launch", "testdata", "spacex_launch_dash.csv")
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("sample data not found: %v", err)
	}
	return path
}

// Chdir switches into dir for the rest of the test so no stray
// launchdash.yaml from the working directory is picked up.
func Chdir(t *testing.T, dir string) {
	t.Helper()

	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("failed to get working directory: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("failed to change directory: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

// ansiPattern matches ANSI escape codes.
var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// AssertNoANSI checks that a string contains no ANSI escape codes.
func AssertNoANSI(t *testing.T, s string) {
	t.Helper()
	if ansiPattern.MatchString(s) {
		t.Errorf("string contains ANSI escape codes: %q", s)
	}
}

// AssertLinesContain checks that each expected substring appears on some line.
func AssertLinesContain(t *testing.T, s string, expected ...string) {
	t.Helper()
	lines := strings.Split(s, "\n")
	for _, want := range expected {
		found := false
		for _, line := range lines {
			if strings.Contains(line, want) {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("output does not contain %q:\n%s", want, s)
		}
	}
}
