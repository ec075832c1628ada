package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"mandi/clock"
	"mandi/log"
	"mandi/shutdown"
)

var version = "dev"

var (
	logPathFlag  string
	langFlag     string
	logLevelFlag string
	noMicFlag    bool
	seedFlag     int
	crashFlag    bool
)

var rootCmd = &cobra.Command{
	Use:           "mandi",
	Short:         "Voice-enabled farmer/buyer marketplace chat",
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	Args:          cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := setup(cmd)
		if err != nil {
			return err
		}
		defer log.Close()
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			return errors.New("stdout is not a terminal; use `mandi script` for headless runs")
		}
		return runTUI(cfg)
	},
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&logPathFlag, "logpath", "", "log directory path (default: OS-specific location, use ./ for current dir)")
	pf.StringVar(&langFlag, "lang", "", "UI language code (e.g. hi, en, ta)")
	pf.StringVar(&logLevelFlag, "log-level", "", "diagnostics log level (debug, info, warn, error)")
	pf.BoolVar(&noMicFlag, "no-mic", false, "disable speech capture")
	pf.IntVar(&seedFlag, "seed", 0, "price jitter seed (0 = random)")
	pf.BoolVar(&crashFlag, "crash", false, "trigger synthetic panic for testing crash logging")
	_ = pf.MarkHidden("crash")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// setup resolves configuration and opens the log files. Flags override
// environment values.
func setup(cmd *cobra.Command) (Config, error) {
	cfg, err := loadConfig()
	if err != nil {
		return Config{}, err
	}
	flags := cmd.Flags()
	if flags.Changed("lang") {
		cfg.Language = langFlag
	}
	if flags.Changed("log-level") {
		cfg.LogLevel = logLevelFlag
	}
	if flags.Changed("seed") {
		cfg.Seed = seedFlag
	}
	if noMicFlag {
		cfg.Capture = "off"
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	logPath, err := log.ResolveDir(logPathFlag)
	if err != nil {
		return Config{}, fmt.Errorf("failed to resolve log directory: %w", err)
	}
	log.SetDir(logPath)
	if err := log.EnsureDir(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not create log directory: %v\n", err)
	}

	crashPath := filepath.Join(log.Dir(), "crash_log.txt")
	crashFile, err := os.OpenFile(crashPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err == nil {
		fmt.Fprintf(crashFile, "\n=== Session %s [pid=%d] ===\n", time.Now().Format("2006-01-02 15:04:05"), os.Getpid())
		debug.SetCrashOutput(crashFile, debug.CrashOptions{})
	}
	if crashFlag {
		panic("TEST CRASH: synthetic panic to verify crash logging")
	}

	if err := log.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not init logging: %v\n", err)
	}
	if err := log.SetLevel(cfg.LogLevel); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func runTUI(cfg Config) error {
	t, err := loadTables(cfg)
	if err != nil {
		return err
	}

	loop := clock.NewLoop()
	ctl := &tuiControls{loop: loop, codes: t.locales.Codes()}
	p := tea.NewProgram(newTUIModel(ctl), tea.WithAltScreen())
	app, err := newApp(cfg, t, loop, newEngine(cfg, loop, t.phrases), tuiDisplay{p}, newRand(cfg.Seed))
	if err != nil {
		return err
	}
	ctl.app = app

	ctx, stop := shutdown.Context(context.Background())
	defer stop()
	loopDone := make(chan struct{})
	go func() {
		defer close(loopDone)
		loop.Run(ctx)
	}()
	go func() {
		<-ctx.Done()
		p.Quit()
	}()

	loop.Post(app.Start)
	_, err = p.Run()
	loop.Call(app.Close)
	stop()
	<-loopDone
	if err != nil {
		log.Errorf("tui: %v", err)
	}
	return err
}
