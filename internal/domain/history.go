// Package domain contains the core data structures and domain logic for the application.
package domain

// Game identifies one of the supported lottery games. The value doubles as
// the game's JSON key inside the history document.
type Game string

const (
	GamePowerball    Game = "powerball"
	GameMegaMillions Game = "megaMillions"
)

// Games lists every supported game in document order.
var Games = []Game{GamePowerball, GameMegaMillions}

// Valid reports whether g is one of the supported games.
func (g Game) Valid() bool {
	for _, known := range Games {
		if g == known {
			return true
		}
	}
	return false
}

// Draw holds the result of a single drawing. Numbers are the white balls in
// page order followed by the special ball (Powerball or Mega Ball).
type Draw struct {
	Date    string `json:"date"` // YYYY-MM-DD
	Numbers []int  `json:"numbers"`
	Jackpot int64  `json:"jackpot"`
}

// History is the full lottery history document persisted as history.json.
// It is the core domain entity of this application.
type History struct {
	Timestamp    string `json:"timestamp"` // RFC 3339, UTC
	Powerball    []Draw `json:"powerball"`
	MegaMillions []Draw `json:"megaMillions"`
}

// Draws returns the draw list for the given game. The second return value is
// false when the game is unknown.
func (h *History) Draws(game Game) ([]Draw, bool) {
	switch game {
	case GamePowerball:
		return h.Powerball, true
	case GameMegaMillions:
		return h.MegaMillions, true
	default:
		return nil, false
	}
}

// DrawsOn returns the draws of the given game that fall on the given date
// (YYYY-MM-DD). The boolean is false when the game itself is unknown.
func (h *History) DrawsOn(game Game, date string) ([]Draw, bool) {
	draws, ok := h.Draws(game)
	if !ok {
		return nil, false
	}
	matched := make([]Draw, 0)
	for _, d := range draws {
		if d.Date == date {
			matched = append(matched, d)
		}
	}
	return matched, true
}
