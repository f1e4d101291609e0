package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/debug"
	"time"

	"github.com/lixenwraith/orrery/audio"
	"github.com/lixenwraith/orrery/config"
	"github.com/lixenwraith/orrery/input"
	"github.com/lixenwraith/orrery/panel"
	"github.com/lixenwraith/orrery/terminal"
)

func crash(what string) func(any) {
	return func(r any) {
		terminal.EmergencyReset(os.Stdout)
		// \r\n for raw mode
		fmt.Fprintf(os.Stderr, "\r\n\x1b[31m%s CRASHED: %v\x1b[0m\r\n", what, r)
		fmt.Fprintf(os.Stderr, "Stack Trace:\r\n%s\r\n", debug.Stack())
		os.Exit(1)
	}
}

func main() {
	// Panic Recovery: Ensure terminal is reset even if the frame loop crashes
	defer func() {
		if r := recover(); r != nil {
			crash("ORRERY")(r)
		}
	}()

	flags := config.NewFlags(flag.CommandLine)
	flag.Parse()

	cfg, err := config.Load(flags, os.LookupEnv)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(2)
	}

	if logFile := setupLogging(cfg.Debug); logFile != nil {
		defer logFile.Close()
	}

	cues := audio.NewCues(cfg.Audio)
	if err := cues.Initialize(); err != nil {
		fmt.Printf("Audio initialization failed: %v (continuing without audio)\n", err)
		log.Printf("audio: %v", err)
	}
	defer cues.Close()

	metrics := panel.NewMetrics()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var feed *panel.Server
	if cfg.PanelAddr != "" {
		feed = panel.NewServer(cfg.PanelAddr, metrics)
		if err := feed.Start(ctx); err != nil {
			fmt.Printf("Panel feed failed: %v (continuing without feed)\n", err)
			feed = nil
		} else {
			defer func() {
				shutdown, done := context.WithTimeout(context.Background(), time.Second)
				defer done()
				_ = feed.Close(shutdown)
			}()
		}
	}

	term, err := terminal.New(cfg.Terminal())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create terminal: %v\n", err)
		os.Exit(1)
	}
	if err := term.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize terminal: %v\n", err)
		os.Exit(1)
	}
	// Normal exit terminal cleanup
	defer term.Fini()

	if err := term.SetMouseMode(terminal.MouseModeClick | terminal.MouseModeDrag | terminal.MouseModeMotion); err != nil {
		log.Printf("mouse reporting unavailable: %v", err)
	}

	a, err := newApp(cfg, term, cues, metrics, feed)
	if err != nil {
		term.Fini()
		fmt.Fprintf(os.Stderr, "Failed to build scene: %v\n", err)
		os.Exit(1)
	}

	reader := input.NewReader(term, 256)
	reader.SetCrashHandler(crash("EVENT POLLER"))
	reader.Start()

	run(a, reader, time.Second/time.Duration(cfg.FPS))
	log.Printf("orrery exiting after %d ticks", a.scene.Ticks())
}

// run drives frames until the dispatcher asks to quit or input closes
func run(a *app, src input.Source, interval time.Duration) {
	dispatcher := input.NewDispatcher(a.handlers())

	frameTicker := time.NewTicker(interval)
	defer frameTicker.Stop()

	a.frame(time.Now())
	events := src.Events()
	for {
		select {
		case ev, ok := <-events:
			if !ok || !dispatcher.Dispatch(ev) {
				return
			}
		case now := <-frameTicker.C:
			a.frame(now)
		}
	}
}
