package main

import (
	"bufio"
	"fmt"
	"os"
	"os/user"
	"time"

	"github.com/tomz197/spacebeat/internal/audio"
	"github.com/tomz197/spacebeat/internal/config"
	"github.com/tomz197/spacebeat/internal/logging"
	"github.com/tomz197/spacebeat/internal/loop"
	"github.com/tomz197/spacebeat/internal/loop/client"
	"golang.org/x/term"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "game error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load(".")
	if err != nil {
		return err
	}

	// The game owns the terminal, so logs go to a file.
	logFile, err := logging.OpenFile(cfg.LogFile)
	if err != nil {
		return err
	}
	defer logFile.Close()
	logger, err := logging.New(logFile, cfg.LogLevel, "spacebeat")
	if err != nil {
		return err
	}

	rt, err := loop.Start(cfg, logger)
	if err != nil {
		return err
	}
	defer rt.Stop(time.Second)

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("failed to enable raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	output := audio.OutputPump
	if cfg.Audio.Speaker {
		output = audio.OutputSpeaker
	}

	reader := bufio.NewReader(os.Stdin)
	c := client.NewClient(rt.Server, reader, os.Stdout, rt.ClientOptions(username(), nil, output))
	return c.Run()
}

func username() string {
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return "player"
}
