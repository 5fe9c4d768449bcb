// Package board provides read access to puzzle boards: lookup by id,
// daily selection by date key, and the redacted client view handed to
// players. Boards are immutable once saved.
package board

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/wordsnpics/wordsnpics/internal/dependencies/clock"
	"github.com/wordsnpics/wordsnpics/internal/dependencies/random"
	"github.com/wordsnpics/wordsnpics/internal/model"
	"github.com/wordsnpics/wordsnpics/internal/storage"
)

// Service provides board lookup and the client puzzle view
type Service struct {
	storage storage.Storage
	clock   clock.Clock
	random  random.Random
	logger  *slog.Logger
}

// New creates a new board service
func New(storage storage.Storage, clock clock.Clock, random random.Random, logger *slog.Logger) *Service {
	return &Service{
		storage: storage,
		clock:   clock,
		random:  random,
		logger:  logger,
	}
}

// DateKey returns YYYY-MM-DD in UTC for the given time
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// GetBoard retrieves a board by id
func (s *Service) GetBoard(ctx context.Context, id model.BoardID) (*model.Board, error) {
	return s.storage.GetBoard(ctx, id)
}

// GetDailyBoard resolves today's board by UTC date key
func (s *Service) GetDailyBoard(ctx context.Context) (*model.Board, error) {
	return s.storage.GetBoardByDate(ctx, DateKey(s.clock.Now()))
}

// ClientPuzzle returns the redacted view of a board with its words
// shuffled. Each fetch gets a fresh order so word position leaks nothing
// about the ground-truth grouping.
func (s *Service) ClientPuzzle(board *model.Board) *model.ClientBoard {
	view := board.ClientView()
	s.random.Shuffle(len(view.Words), func(i, j int) {
		view.Words[i], view.Words[j] = view.Words[j], view.Words[i]
	})
	return view
}

// LoadFromFile reads a JSON array of boards from disk, validates each
// one and saves it. Used to seed storage at startup.
func (s *Service) LoadFromFile(ctx context.Context, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading boards file: %w", err)
	}

	var boards []model.Board
	if err := json.Unmarshal(data, &boards); err != nil {
		return fmt.Errorf("parsing boards file: %w", err)
	}

	for i := range boards {
		b := &boards[i]
		if err := b.Validate(); err != nil {
			return fmt.Errorf("board %s: %w", b.ID, err)
		}
		if err := s.storage.SaveBoard(ctx, b); err != nil {
			return err
		}
	}

	s.logger.Info("boards loaded",
		slog.String("path", path),
		slog.Int("count", len(boards)),
	)
	return nil
}
