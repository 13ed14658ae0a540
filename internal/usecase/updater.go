// Package usecase contains the business logic of the application.
package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/naka-gawa/lottery-sync/internal/domain"
	"github.com/naka-gawa/lottery-sync/internal/gateway"
)

// Updater is the use case for one sync cycle: fetch the draws of every game,
// write the history document, and publish it if it changed.
type Updater struct {
	fetcher    gateway.Fetcher
	publisher  gateway.Publisher // nil disables publishing (dry run)
	outputPath string
	logger     *log.Logger
}

// NewUpdater creates a new Updater instance.
func NewUpdater(fetcher gateway.Fetcher, publisher gateway.Publisher, outputPath string, logger *log.Logger) *Updater {
	return &Updater{
		fetcher:    fetcher,
		publisher:  publisher,
		outputPath: outputPath,
		logger:     logger,
	}
}

// Run performs the main business logic. It fetches both games concurrently,
// writes the history file, and hands off to the publisher. Any fetch error
// aborts the cycle before the file is touched. The returned bool reports
// whether a commit was published.
func (u *Updater) Run(ctx context.Context) (*domain.History, bool, error) {
	u.logger.Println("Usecase: Starting sync cycle...")

	var powerball, megaMillions []domain.Draw

	// Use an errgroup to fetch both games concurrently.
	eg, egCtx := errgroup.WithContext(ctx)

	eg.Go(func() error {
		var err error
		powerball, err = u.fetcher.FetchDraws(egCtx, domain.GamePowerball)
		return err
	})

	eg.Go(func() error {
		var err error
		megaMillions, err = u.fetcher.FetchDraws(egCtx, domain.GameMegaMillions)
		return err
	})

	if err := eg.Wait(); err != nil {
		return nil, false, err
	}
	u.logger.Println("Usecase: All draws fetched successfully.")

	now := time.Now().UTC().Truncate(time.Second)
	history := &domain.History{
		Timestamp:    now.Format(time.RFC3339),
		Powerball:    ensureDraws(powerball),
		MegaMillions: ensureDraws(megaMillions),
	}

	if err := u.writeHistory(history); err != nil {
		return nil, false, err
	}
	u.logger.Printf("Usecase: Wrote %s with %d Powerball and %d Mega Millions draws.",
		u.outputPath, len(history.Powerball), len(history.MegaMillions))

	if u.publisher == nil {
		u.logger.Println("Usecase: Publishing disabled, cycle complete.")
		return history, false, nil
	}

	published, err := u.publisher.Publish(ctx, now)
	if err != nil {
		return nil, false, err
	}
	u.logger.Println("Usecase: Sync cycle complete.")
	return history, published, nil
}

func (u *Updater) writeHistory(history *domain.History) error {
	data, err := json.MarshalIndent(history, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal history: %w", err)
	}
	if err := os.WriteFile(u.outputPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", u.outputPath, err)
	}
	return nil
}

// ensureDraws guarantees a non-nil slice so empty games marshal as [].
func ensureDraws(draws []domain.Draw) []domain.Draw {
	if draws == nil {
		return []domain.Draw{}
	}
	return draws
}
