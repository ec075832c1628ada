package main

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"mandi/capture"
	"mandi/clock"
	"mandi/locale"
	"mandi/log"
)

// runScript drives the app from line commands on a virtual clock. Timers
// only fire on ADVANCE, so runs are deterministic for a fixed seed.
//
//	TOGGLE          toggle speech capture
//	SAY <text>      capture recognizes text
//	FAIL <code>     capture reports an error
//	END             capture ends without a result
//	TYPE <text>     replace the input buffer
//	SUBMIT          send the input buffer
//	SEND <text>     send text directly
//	LANG <code>     switch UI language
//	ACTION <name>   trigger a quick action
//	ADVANCE <dur>   move the clock forward (e.g. 1500ms, 2m)
//	STATE           print the session
//	QUIT            stop reading
func runScript(cfg Config, in io.Reader, out io.Writer, verbose bool) error {
	t, err := loadTables(cfg)
	if err != nil {
		return err
	}
	clk := clock.NewManual()
	fake := capture.NewFake()
	var engine capture.Engine = fake
	if cfg.Capture == "off" {
		engine = nil
	}
	disp := newLineDisplay(out, verbose)
	app, err := newApp(cfg, t, clk, engine, disp, newRand(cfg.Seed))
	if err != nil {
		return err
	}
	app.Start()
	defer app.Close()

	ctrl := app.Controller()
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		cmd, arg, _ := strings.Cut(line, " ")
		arg = strings.TrimSpace(arg)

		var err error
		switch strings.ToUpper(cmd) {
		case "TOGGLE":
			err = ctrl.Toggle()
		case "SAY":
			if !fake.SimResult(arg) {
				err = fmt.Errorf("capture not active")
			}
		case "FAIL":
			if !fake.SimError(arg) {
				err = fmt.Errorf("capture not active")
			}
		case "END":
			if !fake.SimEnd() {
				err = fmt.Errorf("capture not active")
			}
		case "TYPE":
			ctrl.SetInput(arg)
		case "SUBMIT":
			ctrl.Submit()
		case "SEND":
			ctrl.Send(arg)
		case "LANG":
			err = ctrl.SetLanguage(locale.Code(arg))
		case "ACTION":
			if !ctrl.QuickAction(arg) {
				err = fmt.Errorf("unknown action %q", arg)
			}
		case "ADVANCE":
			var d time.Duration
			if d, err = time.ParseDuration(arg); err == nil {
				clk.Advance(d)
			}
		case "STATE":
			s := ctrl.Session()
			fmt.Fprintf(out, "state: %s capturing=%t lang=%s\n", s.Phase, s.Capturing, s.Language)
		case "QUIT":
			return nil
		default:
			err = fmt.Errorf("unknown command %q", cmd)
		}
		if err != nil {
			log.Warnf("script: %s: %v", line, err)
			fmt.Fprintf(out, "error: %v\n", err)
		}
	}
	return scanner.Err()
}
