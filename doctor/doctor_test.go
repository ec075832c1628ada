package doctor

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func ok(name, detail string) Check {
	return Check{Name: name, Run: func() (string, error) { return detail, nil }}
}

func TestRunAllPass(t *testing.T) {
	var buf bytes.Buffer
	code := Run(&buf, "diagnostics", []Check{ok("locales", "6 languages"), ok("phrases", "8 pairs")})
	require.Equal(t, 0, code)
	out := buf.String()
	require.Contains(t, out, "diagnostics")
	require.Contains(t, out, "6 languages")
	require.Contains(t, out, "PASS")
	require.Contains(t, out, "All checks passed!")
}

func TestRunWarningDoesNotFail(t *testing.T) {
	var buf bytes.Buffer
	warn := Check{Name: "terminal", Run: func() (string, error) {
		return "not a tty", ErrWarn
	}}
	require.Equal(t, 0, Run(&buf, "", []Check{warn}))
	require.Contains(t, buf.String(), "WARN")
}

func TestRunFailure(t *testing.T) {
	var buf bytes.Buffer
	bad := Check{Name: "market", Run: func() (string, error) {
		return "", errors.New("invalid market data")
	}}
	require.Equal(t, 1, Run(&buf, "", []Check{ok("a", "b"), bad}))
	require.Contains(t, buf.String(), "FAIL")
	require.Contains(t, buf.String(), "invalid market data")
	require.Contains(t, buf.String(), "1 check(s) failed")
}

func TestResultStatus(t *testing.T) {
	require.Equal(t, "PASS", Result{}.Status())
	require.Equal(t, "WARN", Result{Err: fmt.Errorf("%w: slow", ErrWarn)}.Status())
	require.Equal(t, "FAIL", Result{Err: errors.New("boom")}.Status())
}

func TestLogDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")
	res := Evaluate([]Check{LogDir(dir)})
	require.NoError(t, res[0].Err)
	require.Equal(t, dir, res[0].Detail)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Empty(t, entries)
}

func TestLogDirNotDirectory(t *testing.T) {
	file := filepath.Join(t.TempDir(), "plain")
	require.NoError(t, os.WriteFile(file, nil, 0644))
	res := Evaluate([]Check{LogDir(file)})
	require.Error(t, res[0].Err)
	require.Equal(t, "FAIL", res[0].Status())
}
