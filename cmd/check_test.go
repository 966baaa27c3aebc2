package cmd

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
)

func writeGridFixture(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "in.csv")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing fixture: %v", err)
	}
	return path
}

func TestRunCheck_CleanGrid(t *testing.T) {
	origJSONOutput := jsonOutput
	t.Cleanup(func() { jsonOutput = origJSONOutput })
	jsonOutput = false

	path := writeGridFixture(t, "3 4 +,A1 2 *\n")
	if err := runCheck(&cobra.Command{}, []string{path}); err != nil {
		t.Fatalf("runCheck failed on a clean grid: %v", err)
	}
}

func TestRunCheck_ErrorsExitTwo(t *testing.T) {
	origJSONOutput := jsonOutput
	t.Cleanup(func() { jsonOutput = origJSONOutput })
	jsonOutput = false

	path := writeGridFixture(t, "5 0 /,A1 1 +\n")
	err := runCheck(&cobra.Command{}, []string{path})
	if err == nil {
		t.Fatal("expected ExitError for grid with cell errors")
	}
	var exitErr *ExitError
	if !errors.As(err, &exitErr) || exitErr.Code != 2 {
		t.Fatalf("expected exit code 2, got %v", err)
	}
}

func TestRunCheck_JSONOutput(t *testing.T) {
	origJSONOutput := jsonOutput
	t.Cleanup(func() { jsonOutput = origJSONOutput })
	jsonOutput = true

	path := writeGridFixture(t, "bogus\n")
	err := runCheck(&cobra.Command{}, []string{path})
	var exitErr *ExitError
	if !errors.As(err, &exitErr) || exitErr.Code != 2 {
		t.Fatalf("expected exit code 2, got %v", err)
	}
}

func TestRunCheck_MissingInput(t *testing.T) {
	err := runCheck(&cobra.Command{}, []string{filepath.Join(t.TempDir(), "absent.csv")})
	if err == nil {
		t.Fatal("expected error for missing input file")
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		t.Fatalf("missing input should not be an ExitError, got code %d", exitErr.Code)
	}
}
