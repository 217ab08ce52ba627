package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/atomicstack/tmux-quicklaunch/internal/app"
	"github.com/atomicstack/tmux-quicklaunch/internal/config"
	"github.com/atomicstack/tmux-quicklaunch/internal/logging"
	"github.com/atomicstack/tmux-quicklaunch/internal/logging/events"
	"golang.org/x/term"
)

var (
	runApp     = app.Run
	isTerminal = term.IsTerminal
	termSize   = term.GetSize
)

var errNoTerminal = errors.New("no terminal on stdin/stdout; run inside tmux (display-popup or a pane)")

func main() {
	os.Exit(run(os.Args[1:], os.Environ(), os.Stderr))
}

// run loads configuration, checks for a terminal and runs the overlay. It
// returns the process exit code.
func run(args, environ []string, stderr io.Writer) int {
	cfg, err := config.LoadArgs(args, environ)
	if err == nil {
		err = config.Validate(cfg)
	}
	if err != nil {
		fmt.Fprintf(stderr, "Configuration error: %v\n", err)
		return 2
	}
	logging.Configure(cfg.Logging.FilePath)
	logging.SetTraceEnabled(cfg.Logging.Trace)

	tty := collectTTYDetails()
	events.App.Start(startupTracePayload(cfg, tty))
	if !tty.interactive() {
		logging.Error(errNoTerminal)
		fmt.Fprintf(stderr, "Error: %v\n", errNoTerminal)
		return 1
	}

	if err := runApp(cfg.App); err != nil {
		logging.Error(err)
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// startupTracePayload bundles runtime context for trace logging.
func startupTracePayload(cfg config.Config, tty ttyDetails) map[string]interface{} {
	flags := make(map[string]interface{}, len(cfg.Flags))
	for k, v := range cfg.Flags {
		flags[k] = v
	}
	flags["trace"] = cfg.Logging.Trace
	flags["logFile"] = cfg.Logging.FilePath
	payload := map[string]interface{}{
		"argv":   cfg.Args,
		"flags":  flags,
		"config": cfg,
		"modes": map[string]string{
			"engine": cfg.App.Engine,
			"launch": cfg.App.Launch,
			"window": cfg.App.Window,
			"errors": cfg.App.Errors,
		},
		"tty": tty,
	}
	if cfg.File != "" {
		payload["configFile"] = cfg.File
	}
	if exe, err := os.Executable(); err == nil {
		payload["executable"] = exe
	} else {
		payload["executableError"] = err.Error()
	}
	if cwd, err := os.Getwd(); err == nil {
		payload["cwd"] = cwd
	} else {
		payload["cwdError"] = err.Error()
	}
	return payload
}

type ttyDetails struct {
	Detected *ttyDetected     `json:"detected,omitempty"`
	Probes   []ttyProbeResult `json:"probes"`
}

type ttyDetected struct {
	Source string `json:"source"`
	Width  int    `json:"width"`
	Height int    `json:"height"`
}

type ttyProbeResult struct {
	Name       string `json:"name"`
	IsTerminal bool   `json:"is_terminal"`
	Width      int    `json:"width,omitempty"`
	Height     int    `json:"height,omitempty"`
	Error      string `json:"error,omitempty"`
}

// interactive reports whether both input and output are terminals, which the
// overlay needs for key events and rendering.
func (d ttyDetails) interactive() bool {
	var in, out bool
	for _, p := range d.Probes {
		switch p.Name {
		case "stdin":
			in = p.IsTerminal
		case "stdout":
			out = p.IsTerminal
		}
	}
	return in && out
}

type ttyProbe struct {
	name string
	fd   int
}

func standardProbes() []ttyProbe {
	return []ttyProbe{
		{"stdin", int(os.Stdin.Fd())},
		{"stdout", int(os.Stdout.Fd())},
		{"stderr", int(os.Stderr.Fd())},
	}
}

// collectTTYDetails inspects the standard descriptors for terminal support
// and dimensions.
func collectTTYDetails() ttyDetails {
	return probeTTYs(standardProbes())
}

func probeTTYs(probes []ttyProbe) ttyDetails {
	results := make([]ttyProbeResult, 0, len(probes))
	var detected *ttyDetected
	for _, probe := range probes {
		entry := ttyProbeResult{Name: probe.name}
		if probe.fd >= 0 && isTerminal(probe.fd) {
			entry.IsTerminal = true
			if width, height, err := termSize(probe.fd); err == nil {
				entry.Width, entry.Height = width, height
				if detected == nil {
					detected = &ttyDetected{Source: probe.name, Width: width, Height: height}
				}
			} else {
				entry.Error = err.Error()
			}
		}
		results = append(results, entry)
	}
	return ttyDetails{Detected: detected, Probes: results}
}
