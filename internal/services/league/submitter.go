// Package league is the boundary to league/competition scoring. The
// core only needs to hand off finalized, server-validated results;
// ranking and aggregation live elsewhere.
package league

import (
	"context"
	"log/slog"

	"github.com/wordsnpics/wordsnpics/internal/model"
)

// Submitter receives finalized game sessions for league credit.
// Implementations must only ever be called with server-validated
// results; unvalidated client fallback scores never reach this
// interface.
type Submitter interface {
	SubmitResult(ctx context.Context, session *model.GameSession) error
}

// LogSubmitter is a stand-in submitter that records the handoff.
// It keeps the finalization path honest until a real league backend
// is wired in.
type LogSubmitter struct {
	logger *slog.Logger
}

// NewLogSubmitter creates a submitter that logs each result
func NewLogSubmitter(logger *slog.Logger) *LogSubmitter {
	return &LogSubmitter{logger: logger}
}

var _ Submitter = (*LogSubmitter)(nil)

// SubmitResult logs the finalized session
func (s *LogSubmitter) SubmitResult(ctx context.Context, session *model.GameSession) error {
	s.logger.Info("league submission",
		slog.String("game_session_id", string(session.ID)),
		slog.String("board_id", string(session.BoardID)),
		slog.Int("correct_words", session.CorrectWords),
		slog.Bool("is_win", session.IsWin),
	)
	return nil
}
