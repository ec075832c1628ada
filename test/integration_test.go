//go:build integration

package test_test

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

var testBinary string

func TestMain(m *testing.M) {
	testBinary = os.Getenv("MANDI_TEST_BIN")
	if testBinary == "" {
		fmt.Fprintln(os.Stderr, "MANDI_TEST_BIN not set; build with: go build -o /tmp/mandi . && MANDI_TEST_BIN=/tmp/mandi")
		os.Exit(1)
	}
	os.Exit(m.Run())
}

func cmds(parts ...string) string {
	return strings.Join(parts, "\n") + "\n"
}

// runMandi runs `mandi script` with stdin and returns the log directory and
// stdout.
func runMandi(t *testing.T, stdin string, args ...string) (logDir, out string) {
	t.Helper()
	logDir = t.TempDir()
	cmdArgs := append([]string{"script", "--logpath", logDir, "--seed", "7"}, args...)

	cmd := exec.Command(testBinary, cmdArgs...)
	cmd.Stdin = strings.NewReader(stdin)
	cmd.Env = append(os.Environ(), "MANDI_GREETING=false", "MANDI_MARKET=false")

	b, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("mandi exited with error: %v\noutput: %s", err, b)
	}
	return logDir, string(b)
}

func readLog(t *testing.T, logDir, filename string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(logDir, filename))
	if err != nil {
		if os.IsNotExist(err) {
			return ""
		}
		t.Fatalf("failed to read %s: %v", filename, err)
	}
	return string(data)
}

func TestVoiceMessageReachesTranscript(t *testing.T) {
	logDir, out := runMandi(t, cmds("TOGGLE", "SAY Good quality", "ADVANCE 3s", "QUIT"), "--lang", "en")
	if !strings.Contains(out, "chat: #2 buyer | अच्छी गुणवत्ता | Good quality") {
		t.Errorf("missing buyer reply in output:\n%s", out)
	}

	transcript := readLog(t, logDir, "chat_log.txt")
	if got := strings.Count(transcript, "\n"); got != 2 {
		t.Errorf("expected 2 transcript lines, got %d:\n%s", got, transcript)
	}
	if !strings.Contains(transcript, "\tfarmer\tGood quality\tअच्छी गुणवत्ता") {
		t.Errorf("farmer line missing from transcript:\n%s", transcript)
	}
}

func TestDiagnosticsSession(t *testing.T) {
	logDir, _ := runMandi(t, cmds("SEND Deal!", "ADVANCE 2s", "QUIT"), "--log-level", "debug")
	diag := readLog(t, logDir, "diagnostics_log.txt")
	for _, want := range []string{"session_start", "chat_message", "session_end", "messages=2"} {
		if !strings.Contains(diag, want) {
			t.Errorf("expected %q in diagnostics:\n%s", want, diag)
		}
	}
}

func TestCaptureErrorLogged(t *testing.T) {
	logDir, _ := runMandi(t, cmds("TOGGLE", "FAIL network", "QUIT"), "--lang", "ta")
	diag := readLog(t, logDir, "diagnostics_log.txt")
	if !strings.Contains(diag, "capture_error") || !strings.Contains(diag, "locale=ta-IN") {
		t.Errorf("expected capture_error with ta-IN locale:\n%s", diag)
	}
}

func TestNoMic(t *testing.T) {
	_, out := runMandi(t, cmds("TOGGLE", "QUIT"), "--no-mic", "--lang", "en")
	if !strings.Contains(out, "notice: Speech recognition not supported on this device") {
		t.Errorf("expected unavailable notice:\n%s", out)
	}
}

func TestDoctor(t *testing.T) {
	cmd := exec.Command(testBinary, "doctor", "--logpath", t.TempDir())
	out, err := cmd.CombinedOutput()
	if err != nil {
		t.Fatalf("doctor failed: %v\n%s", err, out)
	}
	if !strings.Contains(string(out), "All checks passed!") {
		t.Errorf("unexpected doctor output:\n%s", out)
	}
}
