package cmd

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"fintrack/internal/core"
	"fintrack/internal/ui"
)

func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})
	err := Execute()
	return strings.TrimSpace(out.String()), errOut.String(), err
}

func useFileBackend(t *testing.T) {
	t.Helper()
	t.Setenv("DATA_BACKEND", "file")
	t.Setenv("DATA_DIR", t.TempDir())
	t.Setenv("AMQP_URL", "")
	t.Setenv("LOG_LEVEL", "error")
}

func TestExecPassesDashArgumentsToLedger(t *testing.T) {
	useFileBackend(t)

	tests := []struct {
		name    string
		args    []string
		want    string
		wantErr error
	}{
		{"negative overall budget", []string{"exec", "setTotBgt", "-5"}, ui.NegativeOverall, nil},
		{"negative entry number", []string{"exec", "del", "-1"}, ui.Error(core.ErrEntryNumberNegative), core.ErrEntryNumberNegative},
		{"flag before keyword", []string{"--debug=false", "exec", "setTotBgt", "-5"}, ui.NegativeOverall, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := runCLI(t, tt.args...)
			if out != tt.want {
				t.Errorf("output = %q, want %q", out, tt.want)
			}
			if tt.wantErr == nil && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestExecFailedCommandReturnsError(t *testing.T) {
	useFileBackend(t)

	out, stderr, err := runCLI(t, "exec", "del", "abc")

	if !errors.Is(err, errCommandFailed) || !errors.Is(err, core.ErrEntryNumberNotNumeric) {
		t.Fatalf("error = %v, want failed command", err)
	}
	if out != ui.Error(core.ErrEntryNumberNotNumeric) {
		t.Errorf("output = %q", out)
	}
	if stderr != "" {
		t.Errorf("error printed twice: %q", stderr)
	}
}

func TestExecPersistsBetweenRuns(t *testing.T) {
	useFileBackend(t)

	if _, _, err := runCLI(t, "exec", "addExp", "lunch", "$/12.50", "c/Food"); err != nil {
		t.Fatalf("addExp: %v", err)
	}
	out, _, err := runCLI(t, "exec", "list")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(out, "1.Expense: lunch $12.50 {Food} [no date]") {
		t.Errorf("list output = %q", out)
	}
}

func TestInvalidConfigIsReported(t *testing.T) {
	useFileBackend(t)
	t.Setenv("DATA_BACKEND", "postgres")

	_, stderr, err := runCLI(t, "exec", "list")

	if err == nil {
		t.Fatal("expected configuration error")
	}
	if !strings.HasPrefix(stderr, "Error: invalid configuration") {
		t.Errorf("stderr = %q", stderr)
	}
}

func TestBackendsMarksConfiguredBackend(t *testing.T) {
	useFileBackend(t)

	out, _, err := runCLI(t, "backends")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out, "* file") || !strings.Contains(out, "  memory") {
		t.Errorf("backends output = %q", out)
	}
}
