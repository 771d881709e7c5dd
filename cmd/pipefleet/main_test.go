package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/giantswarm/pipefleet"
)

func TestMain(m *testing.M) {
	pipefleet.ServeWorker()
	os.Exit(m.Run())
}

// The cases share the package-level logger, so they do not run in parallel.
func TestRun(t *testing.T) {
	defer pipefleet.SetLogger(nil)

	tests := map[string]struct {
		args     []string
		wantCode int
		wantLog  string
	}{
		"basic demo": {
			args:     []string{"-delay", "1ms", "-jitter", "0"},
			wantCode: exitOK,
			wantLog:  "all workers exited cleanly",
		},
		"two pairs": {
			args:     []string{"-pairs", "2", "-delay", "1ms"},
			wantCode: exitOK,
			wantLog:  "workers=4",
		},
		"with run lock": {
			args:     []string{"-delay", "0", "-lock-file", filepath.Join(t.TempDir(), "run.lock")},
			wantCode: exitOK,
		},
		"too many pairs": {
			args:     []string{"-pairs", "6"},
			wantCode: exitFail,
			wantLog:  "invalid configuration",
		},
		"raised limit": {
			args:     []string{"-pairs", "6", "-max-pairs", "6", "-delay", "0"},
			wantCode: exitOK,
			wantLog:  "workers=12",
		},
		"unknown flag": {
			args:     []string{"-bogus"},
			wantCode: exitUsage,
		},
		"negative pairs": {
			args:     []string{"-pairs", "-1"},
			wantCode: exitUsage,
			wantLog:  "-pairs must not be negative",
		},
		"zero max pairs": {
			args:     []string{"-max-pairs", "0"},
			wantCode: exitUsage,
			wantLog:  "-max-pairs must be greater than 0",
		},
		"negative delay": {
			args:     []string{"-delay", "-1s"},
			wantCode: exitUsage,
		},
		"bad log level": {
			args:     []string{"-log-level", "LOUD"},
			wantCode: exitUsage,
		},
		"help": {
			args:     []string{"-h"},
			wantCode: exitOK,
			wantLog:  "-max-pairs",
		},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			var stderr bytes.Buffer
			if code := run(tc.args, &stderr); code != tc.wantCode {
				t.Fatalf("run(%q) = %d, want %d\n%s", tc.args, code, tc.wantCode, stderr.String())
			}
			if tc.wantLog != "" && !strings.Contains(stderr.String(), tc.wantLog) {
				t.Errorf("output should contain %q:\n%s", tc.wantLog, stderr.String())
			}
		})
	}
}
