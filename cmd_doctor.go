package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"mandi/doctor"
	"mandi/locale"
	"mandi/log"
	"mandi/market"
	"mandi/translate"
)

func init() {
	rootCmd.AddCommand(doctorCmd)
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Run environment diagnostics and exit",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := setup(cmd)
		if err != nil {
			return err
		}
		defer log.Close()
		if code := doctor.Run(os.Stdout, "mandi doctor "+version, doctorChecks(cfg)); code != 0 {
			return fmt.Errorf("doctor: checks failed")
		}
		return nil
	},
}

func doctorChecks(cfg Config) []doctor.Check {
	return []doctor.Check{
		doctor.Terminal(),
		doctor.LogDir(log.Dir()),
		{Name: "locales", Run: func() (string, error) {
			t := locale.Default()
			if cfg.LocalesFile != "" {
				var err error
				if t, err = locale.LoadFile(cfg.LocalesFile); err != nil {
					return "", err
				}
			}
			if cfg.Language != "" && !t.Supports(locale.Code(cfg.Language)) {
				return "", fmt.Errorf("language %q not in table", cfg.Language)
			}
			return fmt.Sprintf("%d languages, default %s", len(t.Codes()), t.DefaultCode()), nil
		}},
		{Name: "phrases", Run: func() (string, error) {
			t := translate.Default()
			if cfg.PhrasesFile != "" {
				var err error
				if t, err = translate.LoadFile(cfg.PhrasesFile); err != nil {
					return "", err
				}
			}
			return fmt.Sprintf("%d pairs", t.Len()), nil
		}},
		{Name: "market data", Run: func() (string, error) {
			d := market.DefaultData()
			if cfg.MarketFile != "" {
				var err error
				if d, err = market.LoadDataFile(cfg.MarketFile); err != nil {
					return "", err
				}
			}
			return fmt.Sprintf("%d quotes, %d headlines", len(d.Quotes), len(d.News)), nil
		}},
		{Name: "speech capture", Run: func() (string, error) {
			if cfg.Capture == "off" {
				return "disabled", doctor.ErrWarn
			}
			return fmt.Sprintf("%s (latency %s)", cfg.Capture, cfg.CaptureLatency), nil
		}},
	}
}
