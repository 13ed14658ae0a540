// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/naka-gawa/lottery-sync/internal/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the lottery history over HTTP",
	Long: `Starts an HTTP server exposing history.json:

  GET /                                    welcome message
  GET /lottery                             the full history document
  GET /lottery?game=powerball              one game's draws
  GET /lottery?game=megaMillions&date=...  draws on one date (YYYY-MM-DD)`,
	Run: func(cmd *cobra.Command, args []string) {
		logger := newLogger(cmd)
		addr, _ := cmd.Flags().GetString("addr")
		historyPath, _ := cmd.Flags().GetString("history")

		srv := server.New(historyPath, logger)
		if err := srv.Run(addr); err != nil {
			fmt.Fprintf(os.Stderr, "Server failed: %v\n", err)
			os.Exit(1)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", ":8080", "Listen address")
	serveCmd.Flags().String("history", "history.json", "Path to the history file")
}
