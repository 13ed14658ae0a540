// Package server exposes the lottery history document over HTTP.
package server

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/naka-gawa/lottery-sync/internal/domain"
)

// Server serves read-only queries against history.json. The file is re-read
// on every request so a concurrent sync cycle is picked up immediately.
type Server struct {
	historyPath string
	logger      *log.Logger
}

// New creates a new Server instance reading from the given history file.
func New(historyPath string, logger *log.Logger) *Server {
	return &Server{
		historyPath: historyPath,
		logger:      logger,
	}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.GET("/", s.handleRoot)
	router.GET("/lottery", s.handleLottery)
	return router
}

// Run listens on addr and serves until the listener fails.
func (s *Server) Run(addr string) error {
	s.logger.Printf("Serving lottery history on %s...", addr)
	return s.Router().Run(addr)
}

func (s *Server) handleRoot(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Welcome to the Lottery History API"})
}

// handleLottery returns the full document, one game's draws, or the draws of
// one game on one date:
//
//	GET /lottery
//	GET /lottery?game=powerball
//	GET /lottery?game=megaMillions&date=2025-01-07
func (s *Server) handleLottery(c *gin.Context) {
	history, err := s.loadHistory()
	if err != nil {
		s.logger.Printf("Failed to load history: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "history unavailable"})
		return
	}

	game := strings.TrimSpace(c.Query("game"))
	if game == "" {
		c.JSON(http.StatusOK, history)
		return
	}

	draws, ok := history.Draws(domain.Game(game))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("Game '%s' not found", game)})
		return
	}

	if date := c.Query("date"); date != "" {
		matched, _ := history.DrawsOn(domain.Game(game), date)
		if len(matched) == 0 {
			c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("No %s draws found on %s", game, date)})
			return
		}
		c.JSON(http.StatusOK, matched)
		return
	}

	c.JSON(http.StatusOK, draws)
}

func (s *Server) loadHistory() (*domain.History, error) {
	data, err := os.ReadFile(s.historyPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", s.historyPath, err)
	}
	var history domain.History
	if err := json.Unmarshal(data, &history); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", s.historyPath, err)
	}
	return &history, nil
}
