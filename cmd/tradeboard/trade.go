package main

import (
	"github.com/spf13/cobra"

	"github.com/aristath/tradeboard/internal/api"
)

var tradeCmd = &cobra.Command{
	Use:       "trade buy|sell QUANTITY",
	Short:     "Submit a market order and print the refreshed account",
	Args:      cobra.ExactArgs(2),
	ValidArgs: []string{string(api.ActionBuy), string(api.ActionSell)},
	RunE: func(cmd *cobra.Command, args []string) error {
		action, err := api.ParseAction(args[0])
		if err != nil {
			return err
		}

		log := newLogger(true)
		client, surface, p := consoleSession(cmd.Context(), log)
		surface.SetQuantity(args[1])

		// Failures are reported through the surface as alerts.
		if err := p.SubmitTrade(cmd.Context(), action); err == nil {
			_ = p.FetchMarketData(cmd.Context())
			surface.Render()
		}
		logout(client, log)
		return nil
	},
}
