// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"io"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "lottery-sync",
	Short: "A CLI tool to scrape and publish lottery jackpot history.",
	Long: `lottery-sync scrapes Powerball and Mega Millions draws from the
NY Lottery past-winning-numbers pages into a single history.json file and,
when the file changed, commits it and force-pushes it to a publishing branch.
It can run once, on an hourly schedule, or serve the history over HTTP.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Load a .env file if present so GITHUB_TOKEN can live outside the
		// environment. A missing file is not an error.
		_ = godotenv.Load()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

// newLogger builds the command logger from the persistent --verbose flag.
// Logs are discarded unless verbose output was requested.
func newLogger(cmd *cobra.Command) *log.Logger {
	verbose, _ := cmd.InheritedFlags().GetBool("verbose")
	logger := log.New(io.Discard, "", log.LstdFlags)
	if verbose {
		logger.SetOutput(os.Stderr)
	}
	return logger
}

func init() {
	// Add a persistent flag for verbose output, available to all commands.
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose/debug logging")
}
