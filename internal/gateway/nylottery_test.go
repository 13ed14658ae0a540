package gateway

import (
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/naka-gawa/lottery-sync/internal/domain"
)

// resultsPage is a trimmed-down past-winning-numbers page. It contains a
// valid draw, a draw before the cutoff, and a handful of malformed rows that
// the parser must skip.
const resultsPage = `
<html><body><table>
  <tr><th>Date</th><th>Numbers</th><th>Jackpot</th></tr>
  <tr>
    <td class="centred"><a href="/powerball/draw">Friday May 30th 2025</a></td>
    <td class="centred">
      <span class="resultBall ball">1</span>
      <span class="resultBall ball">7</span>
      <span class="resultBall ball">22</span>
      <span class="resultBall ball">34</span>
      <span class="resultBall ball">56</span>
      <span class="resultBall power-ball">18</span>
    </td>
    <td class="centred nowrap"><strong>$189,000,000</strong></td>
  </tr>
  <tr>
    <td class="centred"><a href="/powerball/draw">Wednesday January 1st 2025</a></td>
    <td class="centred">
      <span class="resultBall ball">2</span>
      <span class="resultBall ball">3</span>
      <span class="resultBall power-ball">4</span>
    </td>
    <td class="centred nowrap"><strong>$20,000,000</strong></td>
  </tr>
  <tr>
    <td class="centred"><a href="/powerball/draw">Tuesday December 31st 2024</a></td>
    <td class="centred"><span class="resultBall ball">9</span></td>
    <td class="centred nowrap"><strong>$15,000,000</strong></td>
  </tr>
  <tr>
    <td class="centred"><a href="/powerball/draw">not a date at all</a></td>
    <td class="centred"><span class="resultBall ball">5</span></td>
    <td class="centred nowrap"><strong>$1,000,000</strong></td>
  </tr>
  <tr>
    <td class="centred"><a href="/powerball/draw">Monday June 2nd 2025</a></td>
    <td class="centred">no balls here</td>
    <td class="centred nowrap"><strong>$5,000,000</strong></td>
  </tr>
  <tr>
    <td class="centred"><a href="/powerball/draw">Monday June 2nd 2025</a></td>
    <td class="centred"><span class="resultBall ball">6</span></td>
    <td class="centred nowrap">no jackpot</td>
  </tr>
</table></body></html>`

// setupTestGateway creates a NYLotteryGateway whose game URLs point at a mock
// HTTP server.
func setupTestGateway(t *testing.T, handler http.Handler) *NYLotteryGateway {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	gateway := &NYLotteryGateway{
		client: server.Client(),
		urls: map[domain.Game]string{
			domain.GamePowerball:    server.URL + "/powerball/past-winning-numbers",
			domain.GameMegaMillions: server.URL + "/mega-millions/past-winning-numbers",
		},
		cutoff: DefaultCutoff,
		logger: log.New(io.Discard, "", 0),
	}
	return gateway
}

func TestNYLotteryGateway_FetchDraws(t *testing.T) {
	testCases := []struct {
		name           string
		game           domain.Game
		handlerFunc    func(w http.ResponseWriter, r *http.Request)
		expectedDraws  []domain.Draw
		expectError    bool
		expectedErrMsg string
	}{
		{
			name: "happy path - parses valid rows and skips malformed ones",
			game: domain.GamePowerball,
			handlerFunc: func(w http.ResponseWriter, r *http.Request) {
				assert.Contains(t, r.URL.Path, "/powerball/")
				fmt.Fprint(w, resultsPage)
			},
			expectedDraws: []domain.Draw{
				{Date: "2025-05-30", Numbers: []int{1, 7, 22, 34, 56, 18}, Jackpot: 189000000},
				{Date: "2025-01-01", Numbers: []int{2, 3, 4}, Jackpot: 20000000},
			},
			expectError: false,
		},
		{
			name: "mega millions uses its own URL",
			game: domain.GameMegaMillions,
			handlerFunc: func(w http.ResponseWriter, r *http.Request) {
				assert.Contains(t, r.URL.Path, "/mega-millions/")
				fmt.Fprint(w, `<html><body><table></table></body></html>`)
			},
			expectedDraws: []domain.Draw{},
			expectError:   false,
		},
		{
			name: "error case - server returns an error status",
			game: domain.GamePowerball,
			handlerFunc: func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			},
			expectError:    true,
			expectedErrMsg: "unexpected status",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			gateway := setupTestGateway(t, http.HandlerFunc(tc.handlerFunc))

			draws, err := gateway.FetchDraws(context.Background(), tc.game)

			if tc.expectError {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tc.expectedErrMsg)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tc.expectedDraws, draws)
			}
		})
	}
}

func TestNYLotteryGateway_FetchDraws_UnknownGame(t *testing.T) {
	gateway := &NYLotteryGateway{
		urls:   map[domain.Game]string{},
		logger: log.New(io.Discard, "", 0),
	}
	_, err := gateway.FetchDraws(context.Background(), domain.Game("euroJackpot"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown game")
}

func TestNYLotteryGateway_CutoffFiltersOlderDraws(t *testing.T) {
	gateway := setupTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, resultsPage)
	}))
	// Move the cutoff past the oldest valid row; only the newer draw remains.
	gateway.cutoff = time.Date(2025, time.January, 2, 0, 0, 0, 0, time.UTC)

	draws, err := gateway.FetchDraws(context.Background(), domain.GamePowerball)
	assert.NoError(t, err)
	assert.Equal(t, []domain.Draw{
		{Date: "2025-05-30", Numbers: []int{1, 7, 22, 34, 56, 18}, Jackpot: 189000000},
	}, draws)
}

func TestParseDrawDate(t *testing.T) {
	testCases := []struct {
		name     string
		raw      string
		expected string
		ok       bool
	}{
		{name: "ordinal th", raw: "Friday May 30th 2025", expected: "2025-05-30", ok: true},
		{name: "ordinal st", raw: "Wednesday January 1st 2025", expected: "2025-01-01", ok: true},
		{name: "ordinal nd", raw: "Monday June 2nd 2025", expected: "2025-06-02", ok: true},
		{name: "ordinal rd", raw: "Friday January 3rd 2025", expected: "2025-01-03", ok: true},
		{name: "too few parts", raw: "May 2025", ok: false},
		{name: "garbage", raw: "not a date at all", ok: false},
		{name: "empty", raw: "", ok: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			parsed, ok := parseDrawDate(tc.raw)
			assert.Equal(t, tc.ok, ok)
			if tc.ok {
				assert.Equal(t, tc.expected, parsed.Format("2006-01-02"))
			}
		})
	}
}

func TestParseJackpot(t *testing.T) {
	testCases := []struct {
		name     string
		raw      string
		expected int64
		ok       bool
	}{
		{name: "with dollar and commas", raw: "$189,000,000", expected: 189000000, ok: true},
		{name: "plain number", raw: "20000000", expected: 20000000, ok: true},
		{name: "surrounding whitespace", raw: "  $1,000  ", expected: 1000, ok: true},
		{name: "empty", raw: "", ok: false},
		{name: "not a number", raw: "Rolldown", ok: false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			jackpot, ok := parseJackpot(tc.raw)
			assert.Equal(t, tc.ok, ok)
			if tc.ok {
				assert.Equal(t, tc.expected, jackpot)
			}
		})
	}
}
