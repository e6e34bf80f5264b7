package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/aristath/tradeboard/internal/sandbox"
)

var sandboxCmd = &cobra.Command{
	Use:   "sandbox",
	Short: "Run an in-memory trading backend to point the dashboard at",
	Args:  cobra.NoArgs,
	RunE:  runSandbox,
}

func init() {
	sandboxCmd.Flags().Int("port", 0, "listen port (overrides SANDBOX_PORT)")
	sandboxCmd.Flags().Float64("quote", 19876.50, "initial market price; 0 starts without market data")
	sandboxCmd.Flags().String("user", "demo", "username of the seeded account (TRADEBOARD_USERNAME wins when set)")
	sandboxCmd.Flags().String("password", "demo", "password of the seeded account")
}

func runSandbox(cmd *cobra.Command, args []string) error {
	log := newLogger(false)

	port := cfg.SandboxPort
	if cmd.Flags().Changed("port") {
		port, _ = cmd.Flags().GetInt("port")
	}
	quote, _ := cmd.Flags().GetFloat64("quote")
	username, _ := cmd.Flags().GetString("user")
	password, _ := cmd.Flags().GetString("password")
	if cfg.HasCredentials() {
		username, password = cfg.Username, cfg.Password
	}

	srv := sandbox.New(sandbox.Config{
		Log:    log,
		Port:   port,
		Symbol: cfg.Symbol,
		Quote:  decimal.NewFromFloat(quote),
	})
	if err := srv.AddUser(username, password); err != nil {
		return err
	}
	log.Info().Str("username", username).Msg("Seeded sandbox account")

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case <-quit:
	case err := <-errCh:
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Sandbox forced to shutdown")
	}
	log.Info().Msg("Sandbox stopped")
	return nil
}
