package main

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/aristath/tradeboard/internal/api"
	"github.com/aristath/tradeboard/internal/console"
	"github.com/aristath/tradeboard/internal/poller"
)

var snapshotCmd = &cobra.Command{
	Use:   "snapshot",
	Short: "Fetch the account summary, positions and quote once and print them",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		log := newLogger(true)
		client, surface, p := consoleSession(cmd.Context(), log)

		_ = p.FetchAll(cmd.Context())
		if !surface.Redirected() {
			surface.Render()
		}
		logout(client, log)
		return nil
	},
}

// consoleSession wires a poller to stdout and logs in when credentials are configured.
func consoleSession(ctx context.Context, log zerolog.Logger) (*api.Client, *console.Surface, *poller.Poller) {
	client := api.NewClient(cfg.BaseURL, cfg.RequestTimeout, log)
	surface := console.New(os.Stdout)

	if cfg.HasCredentials() {
		loginCtx, cancel := context.WithTimeout(ctx, cfg.RequestTimeout)
		defer cancel()
		if err := client.Login(loginCtx, cfg.Username, cfg.Password); err != nil {
			surface.Alert("Login failed: " + err.Error())
		}
	}

	return client, surface, poller.New(client, surface, cfg.Symbol, log)
}

func logout(client *api.Client, log zerolog.Logger) {
	if !cfg.HasCredentials() {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), cfg.RequestTimeout)
	defer cancel()
	if err := client.Logout(ctx); err != nil {
		log.Debug().Err(err).Msg("Logout failed")
	}
}
