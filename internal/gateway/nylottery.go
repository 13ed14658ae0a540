// Package gateway provides gateways to the outside world: the NY Lottery
// result pages and the git repository the history is published to.
package gateway

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/naka-gawa/lottery-sync/internal/domain"
)

const (
	powerballURL    = "https://www.nylottery.org/powerball/past-winning-numbers"
	megaMillionsURL = "https://www.nylottery.org/mega-millions/past-winning-numbers"

	fetchTimeout = 15 * time.Second
)

// DefaultCutoff is the earliest draw date included in the history.
var DefaultCutoff = time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)

// Fetcher defines the behavior of a gateway for fetching draw results.
type Fetcher interface {
	FetchDraws(ctx context.Context, game domain.Game) ([]domain.Draw, error)
}

// NYLotteryGateway scrapes the nylottery.org "Past Winning Numbers" pages.
// It is the concrete implementation of the Fetcher interface.
type NYLotteryGateway struct {
	client *http.Client
	urls   map[domain.Game]string
	cutoff time.Time
	logger *log.Logger
}

// NewNYLotteryGateway is a constructor that creates a new instance of NYLotteryGateway.
// Draws before cutoff are excluded from the results.
func NewNYLotteryGateway(cutoff time.Time, logger *log.Logger) Fetcher {
	return &NYLotteryGateway{
		client: &http.Client{Timeout: fetchTimeout},
		urls: map[domain.Game]string{
			domain.GamePowerball:    powerballURL,
			domain.GameMegaMillions: megaMillionsURL,
		},
		cutoff: cutoff,
		logger: logger,
	}
}

// FetchDraws downloads and parses the past-winning-numbers page for the game.
// Draws are returned in page order, which is reverse-chronological.
func (g *NYLotteryGateway) FetchDraws(ctx context.Context, game domain.Game) ([]domain.Draw, error) {
	url, ok := g.urls[game]
	if !ok {
		return nil, fmt.Errorf("unknown game %q", game)
	}

	g.logger.Printf("Fetching %s draws from %s...", game, url)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", url, err)
	}
	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("failed to fetch %s: unexpected status %s", url, resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML from %s: %w", url, err)
	}

	draws := g.parseDrawRows(doc)
	g.logger.Printf("Completed fetching %s draws: %d since %s.", game, len(draws), g.cutoff.Format("2006-01-02"))
	return draws, nil
}

// ordinalSuffix matches the ordinal suffix of a day number ("30th" -> "30").
var ordinalSuffix = regexp.MustCompile(`(\d+)(st|nd|rd|th)`)

// parseDrawRows walks every <tr> on the page and extracts the rows that have
// the expected three-cell structure: a linked date, the result balls, and a
// jackpot amount. Malformed rows and rows before the cutoff are skipped.
func (g *NYLotteryGateway) parseDrawRows(doc *goquery.Document) []domain.Draw {
	draws := make([]domain.Draw, 0)

	doc.Find("tr").Each(func(_ int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 3 {
			return
		}

		// First cell: an <a> with a date like "Friday May 30th 2025".
		rawDate := strings.TrimSpace(cells.Eq(0).Find("a").First().Text())
		drawDate, ok := parseDrawDate(rawDate)
		if !ok || drawDate.Before(g.cutoff) {
			return
		}

		// Second cell: the white balls followed by the special ball.
		numbers := make([]int, 0)
		cells.Eq(1).Find("span.resultBall").Each(func(_ int, ball *goquery.Selection) {
			if n, err := strconv.Atoi(strings.TrimSpace(ball.Text())); err == nil {
				numbers = append(numbers, n)
			}
		})
		if len(numbers) == 0 {
			return
		}

		// Third cell: a <strong> holding the jackpot, e.g. "$189,000,000".
		jackpot, ok := parseJackpot(cells.Eq(2).Find("strong").First().Text())
		if !ok {
			return
		}

		draws = append(draws, domain.Draw{
			Date:    drawDate.Format("2006-01-02"),
			Numbers: numbers,
			Jackpot: jackpot,
		})
	})

	return draws
}

// parseDrawDate turns "Friday May 30th 2025" into a date. The leading weekday
// is dropped and the ordinal suffix of the day is stripped before parsing.
func parseDrawDate(raw string) (time.Time, bool) {
	parts := strings.Fields(raw)
	if len(parts) < 3 {
		return time.Time{}, false
	}
	datePart := ordinalSuffix.ReplaceAllString(strings.Join(parts[1:], " "), "$1")
	t, err := time.Parse("January 2 2006", datePart)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// parseJackpot turns "$189,000,000" into 189000000.
func parseJackpot(raw string) (int64, bool) {
	digits := strings.NewReplacer("$", "", ",", "").Replace(strings.TrimSpace(raw))
	if digits == "" {
		return 0, false
	}
	n, err := strconv.ParseInt(digits, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}
