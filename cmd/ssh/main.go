package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	wishlogging "github.com/charmbracelet/wish/logging"
	"github.com/tomz197/spacebeat/internal/audio"
	"github.com/tomz197/spacebeat/internal/config"
	"github.com/tomz197/spacebeat/internal/draw"
	"github.com/tomz197/spacebeat/internal/logging"
	"github.com/tomz197/spacebeat/internal/loop"
	"github.com/tomz197/spacebeat/internal/loop/client"
)

func main() {
	cfg, err := config.Load(".")
	if err != nil {
		log.Fatal("Failed to load config", "err", err)
	}
	logger, err := logging.New(os.Stderr, cfg.LogLevel, "ssh")
	if err != nil {
		log.Fatal("Failed to create logger", "err", err)
	}

	workingDir, workErr := os.Getwd()
	if workErr != nil {
		logger.Warn("Failed to get working directory", "err", workErr)
	}
	logger.Info("SSH config", "addr", cfg.SSHAddr(), "hostKeyPath", cfg.SSH.HostKeyPath, "workingDir", workingDir)

	// Shared by all SSH clients
	rt, err := loop.Start(cfg, logger)
	if err != nil {
		logger.Fatal("Failed to start game server", "err", err)
	}

	opts := []ssh.Option{
		wish.WithAddress(cfg.SSHAddr()),
		wish.WithMiddleware(
			gameMiddleware(rt),
			activeterm.Middleware(),
			wishlogging.StructuredMiddlewareWithLogger(logger, log.InfoLevel),
		),
		// Set TCP_NODELAY to reduce latency for game input
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}

	if cfg.SSH.HostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(cfg.SSH.HostKeyPath))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		logger.Fatal("Failed to create server", "err", err)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	logger.Info("Starting SSH server", "addr", cfg.SSHAddr())
	go func() {
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			logger.Fatal("Server error", "err", err)
		}
	}()

	<-done
	logger.Info("Shutting down server...")

	// Notify players and wait for them to disconnect
	logger.Info("Notifying connected players about shutdown...")
	rt.Stop(15 * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.Shutdown(ctx); err != nil {
		logger.Fatal("Shutdown error", "err", err)
	}
}

// gameMiddleware handles SSH sessions and runs the game client.
func gameMiddleware(rt *loop.Runtime) wish.Middleware {
	return func(next ssh.Handler) ssh.Handler {
		return func(sess ssh.Session) {
			pty, winCh, ok := sess.Pty()
			if !ok {
				fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
				return
			}

			rt.Logger.Info("New game session", "user", sess.User(), "term", pty.Term,
				"width", pty.Window.Width, "height", pty.Window.Height)

			// Create a terminal size tracker that updates on window changes
			sizeTracker := newSizeTracker(pty.Window.Width, pty.Window.Height)

			// Listen for window size changes in a goroutine
			go func() {
				for win := range winCh {
					sizeTracker.update(win.Width, win.Height)
				}
			}()

			// There is no sound device on the far side of an SSH session, so the
			// music is pumped silently and only drives the visuals.
			reader := bufio.NewReader(sess)
			opts := rt.ClientOptions(sess.User(), sizeTracker.getSize, audio.OutputPump)

			c := client.NewClient(rt.Server, reader, sess, opts)
			if err := c.Run(); err != nil {
				rt.Logger.Error("Game error", "user", sess.User(), "err", err)
			}

			rt.Logger.Info("Session ended", "user", sess.User())
			next(sess)
		}
	}
}

// sizeTracker tracks terminal size from SSH window change events.
type sizeTracker struct {
	mu     sync.RWMutex
	width  int
	height int
}

func newSizeTracker(width, height int) *sizeTracker {
	return &sizeTracker{width: width, height: height}
}

func (s *sizeTracker) update(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

func (s *sizeTracker) getSize() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height, nil
}

// Ensure sizeTracker.getSize satisfies draw.TermSizeFunc
var _ draw.TermSizeFunc = (*sizeTracker)(nil).getSize
