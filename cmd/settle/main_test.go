package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestRun_CSVFile(t *testing.T) {
	req := require.New(t)
	path := writeFile(t, "trip.csv", "payer,amount,participants\nA,100,A|B|C\n")

	var out bytes.Buffer
	code, err := run([]string{"-f", path, "-no-color"}, nil, &out)
	req.NoError(err)
	req.Equal(exitOK, code)

	got := out.String()
	req.Contains(got, "Expenses (1)")
	req.Contains(got, "A paid 100.00 for A, B, C")
	req.Contains(got, "MEMBER")
	req.Contains(got, "66.67")
	req.Contains(got, "B -> 33.33 -> A\nC -> 33.33 -> A")
	req.Contains(got, "Total transferred: 66.66")
}

func TestRun_JSONStdin(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{
			name:  "array",
			input: `[{"payer":"A","amount":100,"participants":["A","B"]}]`,
		},
		{
			name:  "wrapped",
			input: `{"expenses":[{"payer":"A","amount":"100","participants":["A","B"]}]}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			code, err := run([]string{"-no-color"}, strings.NewReader(tt.input), &out)
			require.NoError(t, err)
			require.Equal(t, exitOK, code)
			require.Contains(t, out.String(), "B -> 50.00 -> A")
		})
	}
}

func TestRun_AllSettled(t *testing.T) {
	var out bytes.Buffer
	code, err := run([]string{"-format", "csv", "-no-color"}, strings.NewReader("A,50,B\nB,50,A\n"), &out)
	require.NoError(t, err)
	require.Equal(t, exitOK, code)
	require.Contains(t, out.String(), "All settled.")
	require.NotContains(t, out.String(), "Total transferred")
}

func TestRun_Errors(t *testing.T) {
	tests := []struct {
		name  string
		args  []string
		input string
		code  int
	}{
		{
			name: "unknown flag",
			args: []string{"-bogus"},
			code: exitUsage,
		},
		{
			name: "missing file",
			args: []string{"-f", filepath.Join(t.TempDir(), "missing.csv")},
			code: exitRuntime,
		},
		{
			name:  "invalid amount",
			args:  []string{"-format", "json"},
			input: `[{"payer":"A","amount":0}]`,
			code:  exitRuntime,
		},
		{
			name:  "malformed json",
			args:  []string{"-format", "json"},
			input: `{"expenses":`,
			code:  exitRuntime,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			code, err := run(tt.args, strings.NewReader(tt.input), &out)
			require.Error(t, err)
			require.Equal(t, tt.code, code)
		})
	}
}
