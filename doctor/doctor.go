// Package doctor runs environment diagnostics and prints them as a table.
package doctor

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/olekukonko/tablewriter"
	"github.com/samber/lo"
	"golang.org/x/term"
)

// ErrWarn marks a check result that is worth reporting but does not fail
// the run. Wrap it: fmt.Errorf("%w: ...", doctor.ErrWarn).
var ErrWarn = errors.New("warning")

type Check struct {
	Name string
	Run  func() (detail string, err error)
}

type Result struct {
	Name   string
	Detail string
	Err    error
}

func (r Result) Status() string {
	switch {
	case r.Err == nil:
		return "PASS"
	case errors.Is(r.Err, ErrWarn):
		return "WARN"
	}
	return "FAIL"
}

// Evaluate runs every check in order.
func Evaluate(checks []Check) []Result {
	return lo.Map(checks, func(c Check, _ int) Result {
		detail, err := c.Run()
		if err != nil && detail == "" {
			detail = err.Error()
		}
		return Result{Name: c.Name, Detail: detail, Err: err}
	})
}

// Run prints the check results and returns an exit code (0=no failures, 1=any fail).
func Run(w io.Writer, title string, checks []Check) int {
	fmt.Fprintln(w, title)

	results := Evaluate(checks)
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Check", "Status", "Detail"})
	table.SetAutoWrapText(false)
	for _, r := range results {
		table.Append([]string{r.Name, r.Status(), r.Detail})
	}
	table.Render()

	failed := lo.CountBy(results, func(r Result) bool { return r.Status() == "FAIL" })
	if failed == 0 {
		fmt.Fprintln(w, "All checks passed!")
		return 0
	}
	fmt.Fprintf(w, "%d check(s) failed. See details above.\n", failed)
	return 1
}

// Terminal reports whether stdout can host the interactive UI.
func Terminal() Check {
	return Check{Name: "terminal", Run: func() (string, error) {
		fd := int(os.Stdout.Fd())
		if !term.IsTerminal(fd) {
			return "stdout is not a terminal (script mode only)", ErrWarn
		}
		w, h, err := term.GetSize(fd)
		if err != nil {
			return "", fmt.Errorf("%w: %v", ErrWarn, err)
		}
		return fmt.Sprintf("%dx%d", w, h), nil
	}}
}

// LogDir checks that dir exists (creating it) and is writable.
func LogDir(dir string) Check {
	return Check{Name: "log directory", Run: func() (string, error) {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", err
		}
		f, err := os.CreateTemp(dir, ".doctor-*")
		if err != nil {
			return "", fmt.Errorf("not writable: %w", err)
		}
		name := f.Name()
		f.Close()
		os.Remove(name)
		return filepath.Clean(dir), nil
	}}
}
