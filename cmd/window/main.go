package main

import (
	"fmt"
	"os"
	"os/user"
	"time"

	"github.com/tomz197/spacebeat/internal/config"
	"github.com/tomz197/spacebeat/internal/logging"
	"github.com/tomz197/spacebeat/internal/loop"
	"github.com/tomz197/spacebeat/internal/window"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "window error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(".")
	if err != nil {
		return err
	}
	logger, err := logging.New(os.Stderr, cfg.LogLevel, "window")
	if err != nil {
		return err
	}

	rt, err := loop.Start(cfg, logger)
	if err != nil {
		return err
	}
	defer rt.Stop(time.Second)

	name := "player"
	if u, err := user.Current(); err == nil && u.Username != "" {
		name = u.Username
	}
	return window.Run(rt, name)
}
