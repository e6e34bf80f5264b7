package main

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/aristath/tradeboard/internal/api"
	"github.com/aristath/tradeboard/internal/poller"
	"github.com/aristath/tradeboard/internal/scheduler"
	"github.com/aristath/tradeboard/internal/ui"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Run the live trading dashboard (default)",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWatch(cmd.Context())
	},
}

func runWatch(ctx context.Context) error {
	log := newLogger(true)
	log.Info().Str("url", cfg.BaseURL).Str("symbol", cfg.Symbol).Msg("Starting dashboard")

	client := api.NewClient(cfg.BaseURL, cfg.RequestTimeout, log)
	surface := ui.NewSurface()
	p := poller.New(client, surface, cfg.Symbol, log)

	sched := scheduler.New(log)
	if err := p.Schedule(sched, intervals()); err != nil {
		return fmt.Errorf("failed to schedule polls: %w", err)
	}
	ctrl := ui.NewController(client, sched, p)

	// Without credentials the first poll gets a 401 and the dashboard asks for them.
	if cfg.HasCredentials() {
		loginCtx, cancel := context.WithTimeout(ctx, cfg.RequestTimeout)
		if err := client.Login(loginCtx, cfg.Username, cfg.Password); err != nil {
			log.Warn().Err(err).Msg("Automatic login failed")
		}
		cancel()
	}

	program := tea.NewProgram(ui.NewModel(ctrl, surface, cfg.Symbol, cfg.BaseURL), tea.WithAltScreen())
	surface.Attach(program)

	_, err := program.Run()
	ctrl.Stop()

	logoutCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if lerr := client.Logout(logoutCtx); lerr != nil {
		log.Debug().Err(lerr).Msg("Logout failed")
	}

	log.Info().Msg("Dashboard stopped")
	return err
}
