// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Runs the sync cycle on a cron schedule until interrupted",
	Long: `Runs the same cycle as the update command on a cron schedule
(hourly by default). A tick that fires while the previous cycle is still
running is skipped. A failed cycle is logged and the schedule continues.`,
	Run: func(cmd *cobra.Command, args []string) {
		logger := newLogger(cmd)
		schedule, _ := cmd.Flags().GetString("schedule")

		updater, err := buildUpdater(cmd, logger)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		cronLogger := cron.VerbosePrintfLogger(logger)
		scheduler := cron.New(
			cron.WithLogger(cronLogger),
			cron.WithChain(cron.SkipIfStillRunning(cronLogger)),
		)
		_, err = scheduler.AddFunc(schedule, func() {
			if _, _, err := updater.Run(ctx); err != nil {
				fmt.Fprintf(os.Stderr, "Sync cycle failed: %v\n", err)
			}
		})
		if err != nil {
			fmt.Fprintf(os.Stderr, "Invalid --schedule expression %q: %v\n", schedule, err)
			os.Exit(1)
		}

		scheduler.Start()
		fmt.Printf("Watching on schedule %q, press Ctrl+C to stop\n", schedule)

		<-ctx.Done()
		// Let an in-flight cycle finish before exiting.
		<-scheduler.Stop().Done()
		fmt.Println("Stopped")
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
	registerSyncFlags(watchCmd)
	watchCmd.Flags().String("schedule", "0 * * * *", "Cron expression for the sync schedule")
}
