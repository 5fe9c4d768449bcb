// Package scoring folds per-turn validation results into session-level
// state and produces the final game record. The same rules run on the
// server for final re-validation and inside the play state machine for
// the client's running tally.
package scoring

import (
	"time"

	"github.com/wordsnpics/wordsnpics/internal/model"
	"github.com/wordsnpics/wordsnpics/internal/services/validation"
)

// State accumulates turn results over one playthrough of a board
type State struct {
	CurrentTurn  int
	CorrectWords map[model.WordID]bool
	WordTurns    model.WordTurns
	TurnHistory  []model.TurnHistoryEntry
}

// NewState creates an empty aggregation state at turn 1
func NewState() *State {
	return &State{
		CurrentTurn:  1,
		CorrectWords: make(map[model.WordID]bool),
		WordTurns:    make(model.WordTurns),
	}
}

// CorrectCount returns the size of the confirmed-correct set
func (s *State) CorrectCount() int {
	return len(s.CorrectWords)
}

// ApplyTurnResult folds one validated turn into the state.
//
// Only words not already confirmed count toward the turn's correct
// total; a previously-correct word reappearing in a retried submission
// is neither double-counted nor re-attributed. Attribution is write-once:
// the first confirming turn wins. The history entry snapshots the
// placements exactly as submitted.
func (s *State) ApplyTurnResult(turnNumber int, result validation.Result, placements model.Placements) model.TurnHistoryEntry {
	newlyCorrect := 0
	for _, wordID := range result.Correct {
		if s.CorrectWords[wordID] {
			continue
		}
		s.CorrectWords[wordID] = true
		s.WordTurns[wordID] = turnNumber
		newlyCorrect++
	}

	entry := model.TurnHistoryEntry{
		Turn:              turnNumber,
		CorrectCount:      newlyCorrect,
		IncorrectCount:    result.IncorrectCount(),
		CumulativeCorrect: len(s.CorrectWords),
		Placements:        placements.Clone(),
	}
	s.TurnHistory = append(s.TurnHistory, entry)
	return entry
}

// IsGameOver reports whether the game has ended after the current
// turn's result has been applied. The win check runs first, so solving
// all 20 words exactly on turn 4 still counts as a win.
func (s *State) IsGameOver() bool {
	if len(s.CorrectWords) == model.TotalWords {
		return true
	}
	return s.CurrentTurn >= model.MaxTurns
}

// IsWin reports whether every word has been confirmed correct
func (s *State) IsWin() bool {
	return len(s.CorrectWords) == model.TotalWords
}

// Finalize produces the immutable game session record
func (s *State) Finalize(board *model.Board, playSessionID model.PlaySessionID, playerID model.PlayerID, profileID model.ProfileID, timeElapsed int, completedAt time.Time) *model.GameSession {
	wordTurns := make(model.WordTurns, len(s.WordTurns))
	for w, t := range s.WordTurns {
		wordTurns[w] = t
	}
	history := make([]model.TurnHistoryEntry, len(s.TurnHistory))
	copy(history, s.TurnHistory)

	return &model.GameSession{
		PlayerID:      playerID,
		ProfileID:     profileID,
		PlaySessionID: playSessionID,
		BoardID:       board.ID,
		PuzzleDate:    board.PuzzleDate,
		CorrectWords:  len(s.CorrectWords),
		TotalWords:    model.TotalWords,
		TurnsUsed:     len(s.TurnHistory),
		MaxTurns:      model.MaxTurns,
		TimeElapsed:   timeElapsed,
		IsWin:         len(s.CorrectWords) == model.TotalWords,
		WordTurns:     wordTurns,
		TurnHistory:   history,
		CompletedAt:   completedAt,
	}
}

// RecomputeFromHistory independently re-derives the correct-word set and
// turn attribution from the placement snapshots embedded in a submitted
// turn history, checked against the board's ground truth. This is the
// server's defense against a client reporting a better score than its
// placements earn: the earliest matching turn wins each attribution and
// nothing else is trusted.
func RecomputeFromHistory(board *model.Board, history []model.TurnHistoryEntry) (map[model.WordID]bool, model.WordTurns) {
	correct := make(map[model.WordID]bool)
	wordTurns := make(model.WordTurns)

	for _, entry := range history {
		result := validation.ValidateTurn(board, entry.Placements)
		for _, wordID := range result.Correct {
			if correct[wordID] {
				continue
			}
			correct[wordID] = true
			wordTurns[wordID] = entry.Turn
		}
	}
	return correct, wordTurns
}
