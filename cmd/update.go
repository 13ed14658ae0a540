// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"context"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/naka-gawa/lottery-sync/internal/gateway"
	"github.com/naka-gawa/lottery-sync/internal/usecase"
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Runs one sync cycle: scrape, write history.json, publish if changed",
	Long: `Fetches all Powerball and Mega Millions draws since the cutoff date,
writes them to history.json, and - if the file differs from the committed
version - commits it and force-pushes the commit onto the publishing branch.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx := context.Background()
		logger := newLogger(cmd)

		updater, err := buildUpdater(cmd, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		history, published, err := updater.Run(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to update lottery history: %v\n", err)
			os.Exit(1)
		}

		fmt.Printf("Wrote history with %d Powerball and %d Mega Millions draws (published: %t)\n",
			len(history.Powerball), len(history.MegaMillions), published)
	},
}

// registerSyncFlags adds the flags shared by the update and watch commands.
func registerSyncFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("output", "o", "history.json", "History file path, relative to the repository root")
	cmd.Flags().StringP("repo", "r", ".", "Path to the git repository to publish from")
	cmd.Flags().String("remote", "origin", "Git remote to push to")
	cmd.Flags().String("branch", "gh-pages", "Branch the history commit is force-pushed onto")
	cmd.Flags().String("since", "", "Cutoff date for draws (YYYY/MM/DD, default 2025/01/01)")
	cmd.Flags().Bool("no-publish", false, "Write history.json but skip commit and push")
}

// buildUpdater wires the gateways and use case from the command's flags.
func buildUpdater(cmd *cobra.Command, logger *log.Logger) (*usecase.Updater, error) {
	output, _ := cmd.Flags().GetString("output")
	repoPath, _ := cmd.Flags().GetString("repo")
	remote, _ := cmd.Flags().GetString("remote")
	branch, _ := cmd.Flags().GetString("branch")
	sinceStr, _ := cmd.Flags().GetString("since")
	noPublish, _ := cmd.Flags().GetBool("no-publish")

	cutoff := gateway.DefaultCutoff
	if sinceStr != "" {
		const inputDateLayout = "2006/01/02"
		since, err := time.Parse(inputDateLayout, sinceStr)
		if err != nil {
			return nil, fmt.Errorf("invalid --since date format, please use YYYY/MM/DD: %w", err)
		}
		cutoff = since
	}

	fetcher := gateway.NewNYLotteryGateway(cutoff, logger)

	var publisher gateway.Publisher
	if !noPublish {
		token := os.Getenv("GITHUB_TOKEN")
		var err error
		publisher, err = gateway.NewGitPublisher(repoPath, output, remote, branch, token, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create git publisher: %w", err)
		}
	}

	return usecase.NewUpdater(fetcher, publisher, filepath.Join(repoPath, output), logger), nil
}

func init() {
	rootCmd.AddCommand(updateCmd)
	registerSyncFlags(updateCmd)
}
