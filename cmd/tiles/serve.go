package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/platform/tui"
	"github.com/vovakirdan/tui-2048/internal/session"
	"github.com/vovakirdan/tui-2048/internal/spectate"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
	flagSpectate    string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own session with the board picker.
Results are stored per-server (all users share the same scoreboard).

With --spectate an HTTP server lists live games and streams them over
websocket:
  GET /healthz
  GET /sessions
  GET /sessions/{id}
  GET /sessions/{id}/ws

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.tiles/host_key

Examples:
  tiles serve                           # Listen on :23234 with auto-generated key
  tiles serve --ssh :2222               # Listen on port 2222
  tiles serve --spectate :8080          # Also stream games to spectators
  tiles serve --host-key ./my_host_key  # Use specific host key

Users can connect with:
  ssh localhost -p 23234`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (default from config)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 0, "Idle timeout in minutes (default from config)")
	serveCmd.Flags().StringVar(&flagSpectate, "spectate", "", "Spectator HTTP address, e.g. :8080 (default from config)")
}

func runServe(_ *cobra.Command, _ []string) error {
	srvCfg := cfg.Server
	if flagSSHAddr != "" {
		srvCfg.SSHAddress = flagSSHAddr
	}
	if flagHostKey != "" {
		srvCfg.HostKeyPath = flagHostKey
	}
	if flagIdleTimeout > 0 {
		srvCfg.IdleTimeout = minutes(flagIdleTimeout)
	}
	if flagSpectate != "" {
		srvCfg.SpectateAddress = flagSpectate
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	dir := session.NewDirectory()
	var hub *spectate.Hub
	errCh := make(chan error, 1)

	if srvCfg.SpectateAddress != "" {
		hub = spectate.NewHub(logger.WithPrefix("tiles-spectate"))
		go hub.Run(ctx)

		web := spectate.NewServer(srvCfg.SpectateAddress, dir, hub, logger.WithPrefix("tiles-spectate"))
		go func() {
			if err := web.ListenAndServe(ctx); err != nil {
				errCh <- err
				stop()
			}
		}()
	}

	server, err := tui.NewSSHServer(tui.SSHServerConfig{
		Address:        srvCfg.SSHAddress,
		HostKeyPath:    srvCfg.HostKeyPath,
		IdleTimeout:    srvCfg.IdleTimeout,
		TickRate:       cfg.TUI.TickRate,
		Board:          boardOptions(),
		Options:        gameOptions(),
		DefaultVariant: cfg.DefaultVariant,
	}, store, dir, hub, logger.WithPrefix("tiles-ssh"))
	if err != nil {
		return err
	}

	logger.Info("connect with: ssh localhost -p <port>", "address", srvCfg.SSHAddress)
	if err := server.ListenAndServe(ctx); err != nil {
		return err
	}

	select {
	case err := <-errCh:
		return err
	default:
		return nil
	}
}
