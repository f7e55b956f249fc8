package tui

import (
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-swim/internal/config"
	"github.com/vovakirdan/tui-swim/internal/core"
	"github.com/vovakirdan/tui-swim/internal/quota"
	"github.com/vovakirdan/tui-swim/internal/swim"
)

// GameID is the key swim results are stored under in the scores table.
const GameID = "swim"

// ScoreSaver persists finished sessions. storage.Store implements it.
type ScoreSaver interface {
	SaveScore(gameID, userID string, score, tier int) (int64, error)
}

// Session is one player's game: the engine and the quota tracker behind it.
type Session struct {
	UserID  string
	Engine  *swim.Engine
	Tracker *quota.Tracker

	logger *log.Logger
}

// SessionConfig holds everything needed to build a Session.
type SessionConfig struct {
	UserID  string
	Game    config.SwimConfig
	Runtime core.RuntimeConfig
	Gateway quota.Gateway
	Scores  ScoreSaver // optional
	Logger  *log.Logger
}

// NewSession wires an engine to a tracker for the user. Finished sessions
// are saved to cfg.Scores when it is set.
func NewSession(cfg SessionConfig) *Session {
	logger := cfg.Logger
	if logger == nil {
		logger = log.Default()
	}

	tcfg := quota.DefaultTrackerConfig(cfg.UserID)
	tcfg.Logger = logger
	tracker := quota.NewTracker(cfg.Gateway, tcfg)

	engine := swim.New(cfg.Game, cfg.Runtime, tracker)

	s := &Session{
		UserID:  cfg.UserID,
		Engine:  engine,
		Tracker: tracker,
		logger:  logger,
	}

	engine.SetResultHandler(func(r swim.Result) {
		logger.Info("swim finished",
			"user", cfg.UserID,
			"prey", r.PreyEaten,
			"tier", r.EnvironmentIndex,
			"reason", r.Reason,
		)
		if cfg.Scores == nil || r.PreyEaten == 0 {
			return
		}
		if _, err := cfg.Scores.SaveScore(GameID, cfg.UserID, r.PreyEaten, r.EnvironmentIndex); err != nil {
			logger.Warn("could not save score", "user", cfg.UserID, "error", err)
		}
	})

	return s
}

// Close ends any running session and waits for pending quota writes.
// It must not be called while a program is still driving the engine.
func (s *Session) Close() {
	s.Engine.Reset()
	s.Tracker.Wait()
}
