// Package main is the entry point for tradeboard, a terminal client for a futures paper
// trading account. It also ships a sandbox backend to run the client against.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/aristath/tradeboard/internal/config"
	"github.com/aristath/tradeboard/internal/poller"
	"github.com/aristath/tradeboard/pkg/logger"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "tradeboard",
	Short: "Terminal trading dashboard",
	Long: `tradeboard polls a trading backend for the account summary, open positions and the
latest quote, and submits market orders.

Configuration is read from the environment (and a .env file):
  TRADEBOARD_URL, TRADEBOARD_SYMBOL, TRADEBOARD_USERNAME, TRADEBOARD_PASSWORD,
  TRADEBOARD_ACCOUNT_INTERVAL, TRADEBOARD_POSITIONS_INTERVAL, TRADEBOARD_MARKET_INTERVAL,
  TRADEBOARD_REQUEST_TIMEOUT, LOG_LEVEL, LOG_FILE, SANDBOX_PORT`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load()
		if err != nil {
			return err
		}
		if err := applyFlags(cmd, loaded); err != nil {
			return err
		}
		cfg = loaded
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWatch(cmd.Context())
	},
}

func init() {
	rootCmd.PersistentFlags().String("url", "", "backend base URL (overrides TRADEBOARD_URL)")
	rootCmd.PersistentFlags().String("symbol", "", "contract symbol (overrides TRADEBOARD_SYMBOL)")
	rootCmd.PersistentFlags().String("log-level", "", "debug, info, warn or error (overrides LOG_LEVEL)")

	rootCmd.AddCommand(watchCmd, snapshotCmd, tradeCmd, sandboxCmd)
}

func applyFlags(cmd *cobra.Command, c *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("url") {
		url, _ := flags.GetString("url")
		c.BaseURL = url
	}
	if flags.Changed("symbol") {
		symbol, _ := flags.GetString("symbol")
		c.Symbol = symbol
	}
	if flags.Changed("log-level") {
		level, _ := flags.GetString("log-level")
		c.LogLevel = level
	}
	return c.Validate()
}

// newLogger builds the command logger. Commands that own stdout log to the rotating file.
func newLogger(toFile bool) zerolog.Logger {
	lc := logger.Config{Level: cfg.LogLevel, Pretty: true}
	if toFile {
		lc.File = cfg.LogFile
	}
	log := logger.New(lc)
	logger.SetGlobalLogger(log)
	return log
}

func intervals() poller.Intervals {
	return poller.Intervals{
		AccountSummary: cfg.AccountInterval,
		Positions:      cfg.PositionsInterval,
		MarketData:     cfg.MarketInterval,
	}
}

func main() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
