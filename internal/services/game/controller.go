// Package game orchestrates the server side of a playthrough: stateless
// turn validation, authoritative final scoring, and best-effort progress
// snapshots for resume.
package game

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/wordsnpics/wordsnpics/internal/dependencies/clock"
	"github.com/wordsnpics/wordsnpics/internal/model"
	"github.com/wordsnpics/wordsnpics/internal/services/board"
	"github.com/wordsnpics/wordsnpics/internal/services/league"
	"github.com/wordsnpics/wordsnpics/internal/services/scoring"
	"github.com/wordsnpics/wordsnpics/internal/services/validation"
	"github.com/wordsnpics/wordsnpics/internal/storage"
)

// ShareCreator is the boundary to shareable result graphic generation.
// Invoked fire-and-forget after finalization; failures never affect the
// game-submit response.
type ShareCreator interface {
	CreateShareGraphic(ctx context.Context, session *model.GameSession) error
}

// TurnResult is the server's classification of one submitted turn
type TurnResult struct {
	Turn      int
	Correct   []model.WordID
	Incorrect []model.WordID
}

// GameData is the client's end-of-game submission. Note there is no
// client-claimed score anywhere in it; the score is recomputed from the
// placement snapshots.
type GameData struct {
	TurnHistory []model.TurnHistoryEntry
	TimeElapsed int
	StartTime   time.Time
	EndTime     time.Time
}

// Controller manages turn validation and game finalization
type Controller struct {
	storage      storage.Storage
	boardService *board.Service
	clock        clock.Clock
	league       league.Submitter
	share        ShareCreator
	logger       *slog.Logger
}

// NewController creates a new game controller
func NewController(
	storage storage.Storage,
	boardService *board.Service,
	clock clock.Clock,
	league league.Submitter,
	share ShareCreator,
	logger *slog.Logger,
) *Controller {
	return &Controller{
		storage:      storage,
		boardService: boardService,
		clock:        clock,
		league:       league,
		share:        share,
		logger:       logger,
	}
}

// SubmitTurn validates one turn's placements against ground truth.
// Stateless by design: a retried submission re-validates identically and
// the aggregation rules downstream make duplicates harmless.
func (c *Controller) SubmitTurn(ctx context.Context, boardID model.BoardID, placements model.Placements, turnNumber int) (*TurnResult, error) {
	if turnNumber < 1 || turnNumber > model.MaxTurns {
		return nil, model.ErrInvalidTurn
	}

	b, err := c.storage.GetBoard(ctx, boardID)
	if err != nil {
		return nil, err
	}

	result := validation.ValidateTurn(b, placements)

	c.logger.Info("turn validated",
		slog.String("board_id", string(boardID)),
		slog.Int("turn", turnNumber),
		slog.Int("correct", result.CorrectCount()),
		slog.Int("incorrect", result.IncorrectCount()),
	)

	return &TurnResult{
		Turn:      turnNumber,
		Correct:   result.Correct,
		Incorrect: result.Incorrect,
	}, nil
}

// SubmitGame finalizes a playthrough. The score is recomputed entirely
// from the turn history's placement snapshots; a duplicate submission
// for the same (play session, board) returns the already-stored record.
func (c *Controller) SubmitGame(ctx context.Context, boardID model.BoardID, playSessionID model.PlaySessionID, playerID model.PlayerID, profileID model.ProfileID, data GameData) (*model.GameSession, error) {
	if playSessionID == "" {
		return nil, model.ErrGameNotStarted
	}
	if len(data.TurnHistory) == 0 || len(data.TurnHistory) > model.MaxTurns {
		return nil, model.ErrInvalidTurn
	}
	// Turn numbers in the history are client-supplied and end up in the
	// stored WordTurns attribution, so each entry gets the same bounds
	// check as a live turn, plus strict ordering
	lastTurn := 0
	for _, entry := range data.TurnHistory {
		if entry.Turn < 1 || entry.Turn > model.MaxTurns || entry.Turn <= lastTurn {
			return nil, model.ErrInvalidTurn
		}
		lastTurn = entry.Turn
	}

	// Duplicate finalize (double click, retried POST): return the
	// existing record rather than re-validating a new game
	if existing, err := c.storage.GetGameSessionByPlay(ctx, playSessionID, boardID); err == nil {
		return existing, nil
	} else if !errors.Is(err, model.ErrGameNotFound) {
		return nil, err
	}

	b, err := c.storage.GetBoard(ctx, boardID)
	if err != nil {
		return nil, err
	}

	state := scoring.NewState()
	for _, entry := range data.TurnHistory {
		result := validation.ValidateTurn(b, entry.Placements)
		state.ApplyTurnResult(entry.Turn, result, entry.Placements)
		state.CurrentTurn = entry.Turn
	}

	session := state.Finalize(b, playSessionID, playerID, profileID, data.TimeElapsed, c.clock.Now())
	session.ID = model.GameSessionID(uuid.NewString())

	if err := c.storage.SaveGameSession(ctx, session); err != nil {
		return nil, err
	}

	c.logger.Info("game finalized",
		slog.String("game_session_id", string(session.ID)),
		slog.String("board_id", string(boardID)),
		slog.Int("correct_words", session.CorrectWords),
		slog.Int("turns_used", session.TurnsUsed),
		slog.Bool("is_win", session.IsWin),
	)

	// Progress is no longer needed; its loss is harmless
	if err := c.storage.DeleteProgress(ctx, playSessionID); err != nil {
		c.logger.Warn("failed to clear progress after finalize",
			slog.String("session_id", string(playSessionID)),
			slog.String("error", err.Error()),
		)
	}

	c.notifyCollaborators(session)

	return session, nil
}

// notifyCollaborators hands the finalized session to league and share
// collaborators fire-and-forget
func (c *Controller) notifyCollaborators(session *model.GameSession) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if c.league != nil {
			if err := c.league.SubmitResult(ctx, session); err != nil {
				c.logger.Warn("league submission failed",
					slog.String("game_session_id", string(session.ID)),
					slog.String("error", err.Error()),
				)
			}
		}
		if c.share != nil {
			if err := c.share.CreateShareGraphic(ctx, session); err != nil {
				c.logger.Warn("share graphic creation failed",
					slog.String("game_session_id", string(session.ID)),
					slog.String("error", err.Error()),
				)
			}
		}
	}()
}

// GetGameSession retrieves a finalized game session by id
func (c *Controller) GetGameSession(ctx context.Context, id model.GameSessionID) (*model.GameSession, error) {
	return c.storage.GetGameSession(ctx, id)
}

// SaveProgress upserts the resumable snapshot for a play session.
// Persistence failures are logged and surfaced but the caller treats
// them as non-fatal: the in-memory machine stays the source of truth.
func (c *Controller) SaveProgress(ctx context.Context, progress *model.Progress) error {
	progress.LastSaved = c.clock.Now()
	if err := c.storage.SaveProgress(ctx, progress); err != nil {
		c.logger.Warn("failed to save progress",
			slog.String("session_id", string(progress.PlaySessionID)),
			slog.String("error", err.Error()),
		)
		return err
	}
	return nil
}

// LoadProgress retrieves the snapshot for a play session
func (c *Controller) LoadProgress(ctx context.Context, playSessionID model.PlaySessionID) (*model.Progress, error) {
	return c.storage.GetProgress(ctx, playSessionID)
}

// FindProgress retrieves the latest snapshot for a (player, profile,
// board) triple, for offering resume without a session id in hand.
// Anonymous callers have no owner triple: their snapshots are reachable
// only by session id, never through this lookup, so one anonymous
// player can never be handed another's session.
func (c *Controller) FindProgress(ctx context.Context, playerID model.PlayerID, profileID model.ProfileID, boardID model.BoardID) (*model.Progress, error) {
	if playerID == "" {
		return nil, model.ErrProgressNotFound
	}
	return c.storage.FindProgress(ctx, playerID, profileID, boardID)
}

// ClearProgress deletes the snapshot; absent rows are a no-op
func (c *Controller) ClearProgress(ctx context.Context, playSessionID model.PlaySessionID) error {
	return c.storage.DeleteProgress(ctx, playSessionID)
}
