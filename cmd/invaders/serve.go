package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-invaders/internal/config"
	"github.com/vovakirdan/tui-invaders/internal/platform/tui"
	"github.com/vovakirdan/tui-invaders/internal/platform/web"
	"github.com/vovakirdan/tui-invaders/internal/storage"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagHTTPAddr    string
	flagIdleTimeout time.Duration
	flagDebug       bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Host invaders over SSH",
	Long: `Start an SSH server where every connection gets its own game,
and optionally an HTTP server with a read-only JSON leaderboard.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.arcade/host_key

Leaderboard endpoints (with --http):
  GET /api/modes
  GET /api/modes/{mode}/scores?limit=N
  GET /api/modes/{mode}/stats
  GET /api/runs/{run}

Examples:
  invaders serve
  invaders serve --ssh :2222 --http :8080
  invaders serve --db ./scores.db

Players connect with:
  ssh localhost -p 23234`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", ":23234", "SSH listen address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if empty)")
	serveCmd.Flags().StringVar(&flagHTTPAddr, "http", "", "Leaderboard listen address (disabled if empty)")
	serveCmd.Flags().DurationVar(&flagIdleTimeout, "idle-timeout", 30*time.Minute, "Disconnect idle sessions after this long")
	serveCmd.Flags().BoolVar(&flagDebug, "debug", false, "Log every HTTP request")
}

func runServe(_ *cobra.Command, _ []string) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "invaders",
	})
	if flagDebug {
		logger.SetLevel(log.DebugLevel)
	}

	if _, err := config.LoadInvaders(""); err != nil {
		logger.Error("invalid invaders config", "error", err)
		os.Exit(1)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open scores database, scores will not be kept", "error", err)
		store = nil
	} else {
		defer store.Close()
	}

	cfg := tui.DefaultSSHServerConfig()
	cfg.Address = flagSSHAddr
	cfg.HostKeyPath = flagHostKey
	cfg.IdleTimeout = flagIdleTimeout
	cfg.TickRate = flagFPS

	sshServer, err := tui.NewSSHServer(cfg, store, logger)
	if err != nil {
		logger.Error("cannot create SSH server", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 2)
	running := 1
	go func() { errCh <- sshServer.ListenAndServe(ctx) }()

	if flagHTTPAddr != "" {
		if store == nil {
			logger.Warn("leaderboard disabled without a scores database")
		} else {
			running++
			board := web.NewServer(flagHTTPAddr, store, logger)
			go func() { errCh <- board.ListenAndServe(ctx) }()
		}
	}

	fmt.Printf("Connect with: ssh localhost -p %s\n", portOf(flagSSHAddr))

	var firstErr error
	for range running {
		if err := <-errCh; err != nil && firstErr == nil {
			firstErr = err
			stop()
		}
	}
	if firstErr != nil {
		logger.Error("server stopped", "error", firstErr)
		os.Exit(1)
	}
}

func portOf(addr string) string {
	for i := len(addr) - 1; i >= 0; i-- {
		if addr[i] == ':' {
			return addr[i+1:]
		}
	}
	return addr
}
