package scoring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/wordsnpics/wordsnpics/internal/model"
	"github.com/wordsnpics/wordsnpics/internal/services/validation"
	"github.com/wordsnpics/wordsnpics/internal/testutil"
)

type AggregatorSuite struct {
	suite.Suite
	board *model.Board
	state *State
}

func TestAggregatorSuite(t *testing.T) {
	suite.Run(t, new(AggregatorSuite))
}

func (s *AggregatorSuite) SetupTest() {
	s.board = testutil.TestBoard("board-1", "2026-08-28")
	s.state = NewState()
}

// apply validates the placements against the board and folds the result in
func (s *AggregatorSuite) apply(turn int, placements model.Placements) model.TurnHistoryEntry {
	result := validation.ValidateTurn(s.board, placements)
	return s.state.ApplyTurnResult(turn, result, placements)
}

// correctPlacements builds ground-truth placements for the given fixture words
func (s *AggregatorSuite) correctPlacements(wordIDs ...model.WordID) model.Placements {
	placements := make(model.Placements, len(wordIDs))
	for _, id := range wordIDs {
		word := s.board.WordByID(id)
		s.Require().NotNil(word)
		placements[id] = word.CorrectImageID
	}
	return placements
}

// allCorrectPlacements maps every fixture word to its ground-truth image
func (s *AggregatorSuite) allCorrectPlacements() model.Placements {
	placements := make(model.Placements, len(s.board.Words))
	for _, w := range s.board.Words {
		placements[w.ID] = w.CorrectImageID
	}
	return placements
}

// ApplyTurnResult tests

func (s *AggregatorSuite) TestNewStateStartsAtTurnOne() {
	s.Equal(1, s.state.CurrentTurn)
	s.Equal(0, s.state.CorrectCount())
	s.Empty(s.state.TurnHistory)
}

func (s *AggregatorSuite) TestApplyCountsCorrectAndIncorrect() {
	placements := s.correctPlacements("word-1-1", "word-2-1")
	placements["word-3-1"] = "img-5"

	entry := s.apply(1, placements)

	s.Equal(1, entry.Turn)
	s.Equal(2, entry.CorrectCount)
	s.Equal(1, entry.IncorrectCount)
	s.Equal(2, entry.CumulativeCorrect)
	s.Equal(2, s.state.CorrectCount())
}

func (s *AggregatorSuite) TestAttributionIsWriteOnce() {
	s.apply(1, s.correctPlacements("word-1-1"))
	// Same word resubmitted on a later turn
	s.apply(2, s.correctPlacements("word-1-1", "word-2-1"))

	s.Equal(1, s.state.WordTurns["word-1-1"])
	s.Equal(2, s.state.WordTurns["word-2-1"])
}

func (s *AggregatorSuite) TestResubmittedCorrectWordNotDoubleCounted() {
	s.apply(1, s.correctPlacements("word-1-1"))
	entry := s.apply(2, s.correctPlacements("word-1-1"))

	s.Equal(0, entry.CorrectCount)
	s.Equal(1, entry.CumulativeCorrect)
	s.Equal(1, s.state.CorrectCount())
}

func (s *AggregatorSuite) TestCumulativeCorrectIsMonotonic() {
	s.apply(1, s.correctPlacements("word-1-1", "word-1-2"))
	s.apply(2, model.Placements{"word-5-1": "img-1"})
	s.apply(3, s.correctPlacements("word-2-1"))

	s.Equal(2, s.state.TurnHistory[0].CumulativeCorrect)
	s.Equal(2, s.state.TurnHistory[1].CumulativeCorrect)
	s.Equal(3, s.state.TurnHistory[2].CumulativeCorrect)
}

func (s *AggregatorSuite) TestHistorySnapshotsPlacements() {
	placements := s.correctPlacements("word-1-1")
	s.apply(1, placements)

	// Mutating the caller's map must not change the recorded snapshot
	placements["word-1-1"] = "img-5"

	s.Equal(model.ImageID("img-1"), s.state.TurnHistory[0].Placements["word-1-1"])
}

// Game-over tests

func (s *AggregatorSuite) TestNotOverMidGame() {
	s.apply(1, s.correctPlacements("word-1-1"))
	s.False(s.state.IsGameOver())
	s.False(s.state.IsWin())
}

func (s *AggregatorSuite) TestOverWhenAllWordsCorrect() {
	s.apply(1, s.allCorrectPlacements())

	s.True(s.state.IsGameOver())
	s.True(s.state.IsWin())
}

func (s *AggregatorSuite) TestOverAfterMaxTurns() {
	for turn := 1; turn <= model.MaxTurns; turn++ {
		s.state.CurrentTurn = turn
		s.apply(turn, model.Placements{"word-1-1": "img-5"})
	}

	s.True(s.state.IsGameOver())
	s.False(s.state.IsWin())
}

func (s *AggregatorSuite) TestWinOnFinalTurnIsStillAWin() {
	// Solve everything but the last two words across turns 1-3
	all := s.allCorrectPlacements()
	partial := all.Clone()
	delete(partial, "word-5-1")
	delete(partial, "word-5-2")

	s.state.CurrentTurn = 1
	s.apply(1, partial)
	s.state.CurrentTurn = 4
	s.apply(4, s.correctPlacements("word-5-1", "word-5-2"))

	s.True(s.state.IsGameOver())
	s.True(s.state.IsWin())
}

// Finalize tests

func (s *AggregatorSuite) TestFinalizeBuildsSessionRecord() {
	s.apply(1, s.correctPlacements("word-1-1", "word-2-1"))
	s.state.CurrentTurn = 2
	s.apply(2, s.correctPlacements("word-3-1"))

	completedAt := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	session := s.state.Finalize(s.board, "play-1", "player-1", "profile-1", 125, completedAt)

	s.Equal(model.PlaySessionID("play-1"), session.PlaySessionID)
	s.Equal(model.PlayerID("player-1"), session.PlayerID)
	s.Equal(model.BoardID("board-1"), session.BoardID)
	s.Equal("2026-08-28", session.PuzzleDate)
	s.Equal(3, session.CorrectWords)
	s.Equal(model.TotalWords, session.TotalWords)
	s.Equal(2, session.TurnsUsed)
	s.Equal(model.MaxTurns, session.MaxTurns)
	s.Equal(125, session.TimeElapsed)
	s.False(session.IsWin)
	s.Equal(completedAt, session.CompletedAt)
	s.Len(session.TurnHistory, 2)
}

func (s *AggregatorSuite) TestFinalizeCopiesAreIndependent() {
	s.apply(1, s.correctPlacements("word-1-1"))
	session := s.state.Finalize(s.board, "play-1", "", "", 10, time.Now())

	s.state.WordTurns["word-2-1"] = 2

	s.NotContains(session.WordTurns, model.WordID("word-2-1"))
}

// RecomputeFromHistory tests

func (s *AggregatorSuite) TestRecomputeMatchesHonestHistory() {
	s.apply(1, s.correctPlacements("word-1-1", "word-2-1"))
	s.state.CurrentTurn = 2
	s.apply(2, s.correctPlacements("word-3-1"))

	correct, wordTurns := RecomputeFromHistory(s.board, s.state.TurnHistory)

	s.Len(correct, 3)
	s.Equal(s.state.WordTurns, wordTurns)
}

func (s *AggregatorSuite) TestRecomputeRejectsInflatedClaims() {
	// History claims 20 correct but the placements only earn 2
	history := []model.TurnHistoryEntry{
		{
			Turn:              1,
			CorrectCount:      20,
			CumulativeCorrect: 20,
			Placements:        s.correctPlacements("word-1-1", "word-2-1"),
		},
	}

	correct, wordTurns := RecomputeFromHistory(s.board, history)

	s.Len(correct, 2)
	s.Len(wordTurns, 2)
	s.True(correct["word-1-1"])
	s.True(correct["word-2-1"])
}

func (s *AggregatorSuite) TestRecomputeEarliestTurnWinsAttribution() {
	placements := s.correctPlacements("word-1-1")
	history := []model.TurnHistoryEntry{
		{Turn: 1, Placements: placements},
		{Turn: 3, Placements: placements},
	}

	_, wordTurns := RecomputeFromHistory(s.board, history)

	s.Equal(1, wordTurns["word-1-1"])
}
