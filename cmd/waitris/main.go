package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/debug"

	"waitris/app"
	"waitris/config"
)

var (
	configFlag   = flag.String("config", "", "Path to YAML config file")
	socketFlag   = flag.String("socket", "", "Unix socket path for command events (overrides config)")
	observerFlag = flag.String("observer", "", "Listen address for websocket observers (overrides config)")
	replayFlag   = flag.String("record", "", "Write a compressed replay log to this path (overrides config)")
	silentFlag   = flag.Bool("silent", false, "Disable audio")
)

func main() {
	// The screen must come back even if the game panics.
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "\nwaitris crashed: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack Trace:\n%s\n", debug.Stack())
			os.Exit(1)
		}
	}()

	flag.Parse()
	log.SetOutput(os.Stderr)

	cfg, err := config.Load(*configFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "waitris: %v\n", err)
		os.Exit(1)
	}
	if *socketFlag != "" {
		cfg.SocketPath = *socketFlag
	}
	if *observerFlag != "" {
		cfg.ObserverAddr = *observerFlag
	}
	if *replayFlag != "" {
		cfg.ReplayPath = *replayFlag
	}
	if *silentFlag {
		cfg.Audio = false
	}

	if err := app.Run(cfg); err != nil {
		fmt.Fprintf(os.Stderr, "waitris: %v\n", err)
		os.Exit(1)
	}
}
