// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/naka-gawa/lottery-sync/internal/domain"
	"github.com/naka-gawa/lottery-sync/internal/usecase"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Summarizes jackpot statistics per game and outputs as JSON",
	Long:  `Reads history.json and prints per-game jackpot statistics (draw count, min, max, mean, median) in JSON format.`,
	Run: func(cmd *cobra.Command, args []string) {
		historyPath, _ := cmd.Flags().GetString("history")

		data, err := os.ReadFile(historyPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to read %s: %v\n", historyPath, err)
			os.Exit(1)
		}
		var history domain.History
		if err := json.Unmarshal(data, &history); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to parse %s: %v\n", historyPath, err)
			os.Exit(1)
		}

		summaries, err := usecase.SummarizeJackpots(&history)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to summarize jackpots: %v\n", err)
			os.Exit(1)
		}

		// Marshal the results into a pretty-printed JSON string.
		jsonData, err := json.MarshalIndent(summaries, "", "  ")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to marshal results to JSON: %v\n", err)
			os.Exit(1)
		}

		// Print the final JSON to standard output.
		fmt.Println(string(jsonData))
	},
}

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().String("history", "history.json", "Path to the history file")
}
