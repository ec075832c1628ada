package log

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"gopkg.in/natefinch/lumberjack.v2"
)

const (
	DiagFile = "diagnostics_log.txt"
	ChatFile = "chat_log.txt"
)

var (
	diagLog  zerolog.Logger
	diagOut  *lumberjack.Logger
	chatOut  *lumberjack.Logger
	logMu    sync.Mutex
	logReady bool
	pid      int
	dir      string
)

func ResolveDir(flagPath string) (string, error) {
	// Priority 1: -logpath flag
	if flagPath != "" {
		return absolute(flagPath)
	}

	// Priority 2: MANDI_LOG_PATH environment variable
	if envPath := os.Getenv("MANDI_LOG_PATH"); envPath != "" {
		return absolute(envPath)
	}

	// Priority 3: Default OS-specific location
	return getDefaultDir()
}

func absolute(p string) (string, error) {
	if filepath.IsAbs(p) {
		return p, nil
	}
	wd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	return filepath.Join(wd, p), nil
}

func SetDir(d string) {
	dir = d
}

func Dir() string {
	return dir
}

func EnsureDir() error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}
	return nil
}

func rotating(name string) *lumberjack.Logger {
	return &lumberjack.Logger{
		Filename:   filepath.Join(dir, name),
		MaxSize:    10, // MB
		MaxBackups: 3,
		MaxAge:     28,
	}
}

func Init() error {
	logMu.Lock()
	defer logMu.Unlock()

	if err := EnsureDir(); err != nil {
		return err
	}

	pid = os.Getpid()
	diagOut = rotating(DiagFile)
	chatOut = rotating(ChatFile)

	consoleWriter := zerolog.ConsoleWriter{
		Out:        diagOut,
		TimeFormat: "2006-01-02 15:04:05",
		NoColor:    true,
	}
	diagLog = zerolog.New(consoleWriter).With().Timestamp().Int("pid", pid).Logger()

	logReady = true
	return nil
}

// SetLevel filters diagnostics below level ("debug", "info", "warn", ...).
func SetLevel(level string) error {
	l, err := zerolog.ParseLevel(level)
	if err != nil {
		return fmt.Errorf("log level %q: %w", level, err)
	}
	logMu.Lock()
	defer logMu.Unlock()
	diagLog = diagLog.Level(l)
	return nil
}

func Close() {
	logMu.Lock()
	defer logMu.Unlock()
	if diagOut != nil {
		diagOut.Close()
		diagOut = nil
	}
	if chatOut != nil {
		chatOut.Close()
		chatOut = nil
	}
	logReady = false
}

func Info(msg string) {
	if logReady {
		diagLog.Info().Msg(msg)
	}
}

func Error(msg string) {
	if logReady {
		diagLog.Error().Msg(msg)
	}
}

func Errorf(format string, args ...any) {
	if logReady {
		diagLog.Error().Msg(fmt.Sprintf(format, args...))
	}
}

func Warn(msg string) {
	if logReady {
		diagLog.Warn().Msg(msg)
	}
}

func Warnf(format string, args ...any) {
	if logReady {
		diagLog.Warn().Msg(fmt.Sprintf(format, args...))
	}
}

func SessionStart(language, engine string) {
	if !logReady {
		return
	}
	diagLog.Info().
		Str("language", language).
		Str("engine", engine).
		Msg("session_start")
}

func SessionEnd(messages int) {
	if !logReady {
		return
	}
	diagLog.Info().
		Int("messages", messages).
		Msg("session_end")
}

func Transition(from, to, cause string) {
	if !logReady {
		return
	}
	diagLog.Debug().
		Str("from", from).
		Str("to", to).
		Str("cause", cause).
		Msg("transition")
}

func CaptureError(code, locale string) {
	if !logReady {
		return
	}
	diagLog.Warn().
		Str("code", code).
		Str("locale", locale).
		Msg("capture_error")
}

func LanguageChange(from, to string) {
	if !logReady {
		return
	}
	diagLog.Info().
		Str("from", from).
		Str("to", to).
		Msg("language_change")
}

type ChatEntry struct {
	Seq        uint64
	Sender     string
	Lang       string
	Original   string
	Translated string
}

// ChatMessage records a message in the diagnostics log and appends it to
// the tab-separated chat transcript.
func ChatMessage(e ChatEntry) {
	if !logReady {
		return
	}
	diagLog.Info().
		Uint64("seq", e.Seq).
		Str("sender", e.Sender).
		Str("lang", e.Lang).
		Int("chars", len([]rune(e.Original))).
		Msg("chat_message")

	logMu.Lock()
	defer logMu.Unlock()
	line := fmt.Sprintf("%s\t[%d]\t%d\t%s\t%s\t%s\n",
		time.Now().Format("2006-01-02 15:04:05"), pid, e.Seq, e.Sender, e.Original, e.Translated)
	chatOut.Write([]byte(line))
}

func PriceTick(market string, from, to int) {
	if !logReady {
		return
	}
	diagLog.Debug().
		Str("market", market).
		Int("from", from).
		Int("to", to).
		Msg("price_tick")
}
