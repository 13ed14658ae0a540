package usecase

import (
	"fmt"
	"sort"

	"github.com/montanaflynn/stats"

	"github.com/naka-gawa/lottery-sync/internal/domain"
)

// JackpotSummary holds summary statistics for one game's jackpots.
type JackpotSummary struct {
	Game          domain.Game `json:"game"`
	Draws         int         `json:"draws"`
	MinJackpot    float64     `json:"min_jackpot"`
	MaxJackpot    float64     `json:"max_jackpot"`
	MeanJackpot   float64     `json:"mean_jackpot"`
	MedianJackpot float64     `json:"median_jackpot"`
}

// SummarizeJackpots computes per-game jackpot statistics from a history
// document. Games without draws get a zero-valued summary. The result is
// sorted by game name for consistent output.
func SummarizeJackpots(history *domain.History) ([]*JackpotSummary, error) {
	summaries := make([]*JackpotSummary, 0, len(domain.Games))

	for _, game := range domain.Games {
		draws, _ := history.Draws(game)
		summary := &JackpotSummary{Game: game, Draws: len(draws)}

		if len(draws) > 0 {
			jackpots := make([]float64, 0, len(draws))
			for _, d := range draws {
				jackpots = append(jackpots, float64(d.Jackpot))
			}

			var err error
			if summary.MinJackpot, err = stats.Min(jackpots); err != nil {
				return nil, fmt.Errorf("failed to compute min jackpot for %s: %w", game, err)
			}
			if summary.MaxJackpot, err = stats.Max(jackpots); err != nil {
				return nil, fmt.Errorf("failed to compute max jackpot for %s: %w", game, err)
			}
			if summary.MeanJackpot, err = stats.Mean(jackpots); err != nil {
				return nil, fmt.Errorf("failed to compute mean jackpot for %s: %w", game, err)
			}
			if summary.MedianJackpot, err = stats.Median(jackpots); err != nil {
				return nil, fmt.Errorf("failed to compute median jackpot for %s: %w", game, err)
			}
		}

		summaries = append(summaries, summary)
	}

	sort.Slice(summaries, func(i, j int) bool {
		return summaries[i].Game < summaries[j].Game
	})
	return summaries, nil
}
