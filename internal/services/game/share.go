package game

import (
	"context"
	"log/slog"

	"github.com/wordsnpics/wordsnpics/internal/model"
)

// LogShareCreator is a stand-in share-graphic collaborator that records
// the handoff until a real renderer is wired in
type LogShareCreator struct {
	logger *slog.Logger
}

// NewLogShareCreator creates a share creator that logs each request
func NewLogShareCreator(logger *slog.Logger) *LogShareCreator {
	return &LogShareCreator{logger: logger}
}

var _ ShareCreator = (*LogShareCreator)(nil)

// CreateShareGraphic logs the finalized session
func (s *LogShareCreator) CreateShareGraphic(ctx context.Context, session *model.GameSession) error {
	s.logger.Info("share graphic requested",
		slog.String("game_session_id", string(session.ID)),
		slog.String("board_id", string(session.BoardID)),
	)
	return nil
}
