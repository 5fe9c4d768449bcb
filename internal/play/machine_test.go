package play

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/wordsnpics/wordsnpics/internal/dependencies/mocks"
	"github.com/wordsnpics/wordsnpics/internal/model"
	"github.com/wordsnpics/wordsnpics/internal/services/validation"
	"github.com/wordsnpics/wordsnpics/internal/testutil"
)

// fakeServer validates turns against the board's ground truth, the way
// the real API does
type fakeServer struct {
	board       *model.Board
	failSubmit  bool
	failFinish  bool
	finishCalls int
}

func (f *fakeServer) SubmitTurn(ctx context.Context, boardID model.BoardID, placements model.Placements, turnNumber int) (*TurnOutcome, error) {
	if f.failSubmit {
		return nil, errors.New("network down")
	}
	result := validation.ValidateTurn(f.board, placements)
	return &TurnOutcome{Turn: turnNumber, Correct: result.Correct, Incorrect: result.Incorrect}, nil
}

func (f *fakeServer) FinishGame(ctx context.Context, boardID model.BoardID, playSessionID model.PlaySessionID, data FinishData) (*FinalScore, error) {
	f.finishCalls++
	if f.failFinish {
		return nil, errors.New("network down")
	}
	correct := 0
	for _, e := range data.TurnHistory {
		correct += e.CorrectCount
	}
	return &FinalScore{
		BoardID:      boardID,
		CorrectWords: correct,
		TotalWords:   model.TotalWords,
		TurnsUsed:    len(data.TurnHistory),
		MaxTurns:     model.MaxTurns,
		TimeElapsed:  data.TimeElapsed,
		IsWin:        correct == model.TotalWords,
		CompletedAt:  data.EndTime,
	}, nil
}

type MachineSuite struct {
	suite.Suite
	board   *model.Board
	server  *fakeServer
	clock   *mocks.MockClock
	machine *Machine
	ctx     context.Context
}

func TestMachineSuite(t *testing.T) {
	suite.Run(t, new(MachineSuite))
}

func (s *MachineSuite) SetupTest() {
	s.board = testutil.TestBoard("board-1", "2026-08-28")
	s.server = &fakeServer{board: s.board}
	s.clock = mocks.NewMockClock(time.Date(2026, 8, 28, 9, 0, 0, 0, time.UTC))
	s.machine = NewMachine(s.clock)
	s.machine.LoadBoard(s.board.ClientView(), "play-1")
	s.ctx = context.Background()
}

// placeCorrect assigns the word to its ground-truth image
func (s *MachineSuite) placeCorrect(wordID model.WordID) {
	word := s.board.WordByID(wordID)
	s.Require().NotNil(word)
	for i, img := range s.board.Images {
		if img.ID == word.CorrectImageID {
			s.machine.SelectImage(i)
			break
		}
	}
	s.Require().NoError(s.machine.AssignWord(wordID))
}

// solveAll places every word correctly and submits one winning turn
func (s *MachineSuite) solveAll() {
	for _, w := range s.board.Words {
		s.placeCorrect(w.ID)
	}
	_, err := s.machine.SubmitTurn(s.ctx, s.server)
	s.Require().NoError(err)
}

// Lifecycle tests

func (s *MachineSuite) TestStartsInLoadingPhase() {
	m := NewMachine(s.clock)
	s.Equal(PhaseLoading, m.Phase())
}

func (s *MachineSuite) TestLoadBoardStartsPlaying() {
	s.Equal(PhasePlaying, s.machine.Phase())
	s.Equal(1, s.machine.CurrentTurn())
	s.Equal(0, s.machine.CurrentSlide())
	s.Equal(0, s.machine.CorrectCount())
}

func (s *MachineSuite) TestAssignBeforeLoadFails() {
	m := NewMachine(s.clock)
	s.ErrorIs(m.AssignWord("word-1-1"), model.ErrGameNotStarted)
}

// Navigation tests

func (s *MachineSuite) TestSelectImageClampsToRange() {
	s.machine.SelectImage(-3)
	s.Equal(0, s.machine.CurrentSlide())

	s.machine.SelectImage(99)
	s.Equal(model.TotalImages-1, s.machine.CurrentSlide())
}

func (s *MachineSuite) TestNextAndPreviousSlide() {
	s.machine.NextSlide()
	s.Equal(1, s.machine.CurrentSlide())

	s.machine.PreviousSlide()
	s.Equal(0, s.machine.CurrentSlide())

	// Clamped at the edge
	s.machine.PreviousSlide()
	s.Equal(0, s.machine.CurrentSlide())
}

// Assignment tests

func (s *MachineSuite) TestAssignWordToCurrentImage() {
	s.machine.SelectImage(0)
	s.Require().NoError(s.machine.AssignWord("word-1-1"))

	s.Equal(model.ImageID("img-1"), s.machine.Placements()["word-1-1"])
	s.Equal(1, s.machine.Usage("img-1"))
	s.Equal(5, s.machine.Remaining("img-1"))
}

func (s *MachineSuite) TestAssignTogglesOff() {
	s.machine.SelectImage(0)
	s.Require().NoError(s.machine.AssignWord("word-1-1"))
	s.Require().NoError(s.machine.AssignWord("word-1-1"))

	s.Empty(s.machine.Placements())
	s.Equal(0, s.machine.Usage("img-1"))
}

func (s *MachineSuite) TestAssignUnknownWordFails() {
	s.ErrorIs(s.machine.AssignWord("no-such-word"), model.ErrUnknownWord)
}

func (s *MachineSuite) TestAssignToFullImageFails() {
	// img-5 takes exactly 2 words
	s.machine.SelectImage(4)
	s.Require().NoError(s.machine.AssignWord("word-1-1"))
	s.machine.SelectImage(4)
	s.Require().NoError(s.machine.AssignWord("word-1-2"))

	s.machine.SelectImage(4)
	s.ErrorIs(s.machine.AssignWord("word-1-3"), model.ErrImageFull)
	s.Equal(0, s.machine.Remaining("img-5"))
}

func (s *MachineSuite) TestFillingImageAdvancesToNextAvailable() {
	s.machine.SelectImage(4)
	s.Require().NoError(s.machine.AssignWord("word-1-1"))
	s.Require().Equal(4, s.machine.CurrentSlide())
	s.Require().NoError(s.machine.AssignWord("word-1-2"))

	// img-5 is now full; the carousel wraps to the first open image
	s.Equal(0, s.machine.CurrentSlide())
}

func (s *MachineSuite) TestRejectedAssignLeavesStateUntouched() {
	s.machine.SelectImage(4)
	s.Require().NoError(s.machine.AssignWord("word-1-1"))
	s.Require().NoError(s.machine.AssignWord("word-1-2"))

	s.machine.SelectImage(4)
	s.ErrorIs(s.machine.AssignWord("word-1-3"), model.ErrImageFull)

	s.Len(s.machine.Placements(), 2)
	s.Equal(2, s.machine.Usage("img-5"))
	s.NotContains(s.machine.Placements(), model.WordID("word-1-3"))
}

// SubmitTurn tests

func (s *MachineSuite) TestSubmitLocksCorrectAndRecyclesIncorrect() {
	s.placeCorrect("word-1-1")
	s.machine.SelectImage(4)
	s.Require().NoError(s.machine.AssignWord("word-2-1")) // wrong image

	outcome, err := s.machine.SubmitTurn(s.ctx, s.server)
	s.Require().NoError(err)

	s.Equal([]model.WordID{"word-1-1"}, outcome.Correct)
	s.Equal([]model.WordID{"word-2-1"}, outcome.Incorrect)

	s.True(s.machine.IsWordLocked("word-1-1"))
	s.False(s.machine.IsWordLocked("word-2-1"))
	s.Empty(s.machine.Placements())
	s.Equal(2, s.machine.CurrentTurn())
}

func (s *MachineSuite) TestLockedWordCannotBeReassigned() {
	s.placeCorrect("word-1-1")
	_, err := s.machine.SubmitTurn(s.ctx, s.server)
	s.Require().NoError(err)

	s.ErrorIs(s.machine.AssignWord("word-1-1"), model.ErrWordLocked)
}

func (s *MachineSuite) TestCorrectWordsReduceImageCapacity() {
	s.placeCorrect("word-5-1")
	_, err := s.machine.SubmitTurn(s.ctx, s.server)
	s.Require().NoError(err)

	// img-5 holds 2 words; one is now confirmed
	s.Equal(1, s.machine.Remaining("img-5"))
	s.Equal(0, s.machine.Usage("img-5"))
}

func (s *MachineSuite) TestTransportFailureLeavesStateIntact() {
	s.placeCorrect("word-1-1")
	s.server.failSubmit = true

	_, err := s.machine.SubmitTurn(s.ctx, s.server)
	s.Error(err)

	s.Equal(1, s.machine.CurrentTurn())
	s.Equal(PhasePlaying, s.machine.Phase())
	s.Contains(s.machine.Placements(), model.WordID("word-1-1"))

	// Retry succeeds once the network is back
	s.server.failSubmit = false
	outcome, err := s.machine.SubmitTurn(s.ctx, s.server)
	s.Require().NoError(err)
	s.Equal([]model.WordID{"word-1-1"}, outcome.Correct)
}

func (s *MachineSuite) TestGameEndsAfterMaxTurns() {
	for turn := 1; turn <= model.MaxTurns; turn++ {
		s.Require().Equal(turn, s.machine.CurrentTurn())
		s.machine.SelectImage(4)
		s.Require().NoError(s.machine.AssignWord(model.WordID(fmt.Sprintf("word-1-%d", turn))))
		_, err := s.machine.SubmitTurn(s.ctx, s.server)
		s.Require().NoError(err)
	}

	s.Equal(PhaseCompleted, s.machine.Phase())
	s.ErrorIs(s.machine.AssignWord("word-2-1"), model.ErrGameComplete)
	_, err := s.machine.SubmitTurn(s.ctx, s.server)
	s.ErrorIs(err, model.ErrGameComplete)
}

func (s *MachineSuite) TestWinningCompletesImmediately() {
	s.solveAll()

	s.Equal(PhaseCompleted, s.machine.Phase())
	s.Equal(model.TotalWords, s.machine.CorrectCount())
	s.Len(s.machine.TurnHistory(), 1)
}

func (s *MachineSuite) TestThemeCompletedFiresOnce() {
	var completed []model.ImageID
	s.machine.OnThemeCompleted = func(id model.ImageID) {
		completed = append(completed, id)
	}

	s.placeCorrect("word-5-1")
	s.placeCorrect("word-5-2")
	_, err := s.machine.SubmitTurn(s.ctx, s.server)
	s.Require().NoError(err)

	s.Equal([]model.ImageID{"img-5"}, completed)

	// Subsequent turns must not re-fire the callback
	s.placeCorrect("word-1-1")
	_, err = s.machine.SubmitTurn(s.ctx, s.server)
	s.Require().NoError(err)
	s.Equal([]model.ImageID{"img-5"}, completed)
}

// EndGame tests

func (s *MachineSuite) TestEndGameBeforeCompletionFails() {
	_, err := s.machine.EndGame(s.ctx, s.server)
	s.ErrorIs(err, model.ErrGameNotComplete)
	s.Equal(0, s.server.finishCalls)
}

func (s *MachineSuite) TestEndGameReturnsValidatedScore() {
	s.clock.Advance(90 * time.Second)
	s.solveAll()

	score, err := s.machine.EndGame(s.ctx, s.server)
	s.Require().NoError(err)

	s.True(score.Validated)
	s.True(score.IsWin)
	s.Equal(model.TotalWords, score.CorrectWords)
	s.Equal(1, score.TurnsUsed)
	s.Equal(90, score.TimeElapsed)
	s.Equal(1, s.server.finishCalls)
}

func (s *MachineSuite) TestEndGameFallsBackToLocalScore() {
	s.solveAll()
	s.server.failFinish = true

	score, err := s.machine.EndGame(s.ctx, s.server)
	s.Require().NoError(err)

	s.False(score.Validated)
	s.True(score.IsWin)
	s.Equal(model.TotalWords, score.CorrectWords)
}

// Reset and progress tests

func (s *MachineSuite) TestResetClearsPlayState() {
	s.placeCorrect("word-1-1")
	_, err := s.machine.SubmitTurn(s.ctx, s.server)
	s.Require().NoError(err)

	s.machine.Reset()

	s.Equal(PhasePlaying, s.machine.Phase())
	s.Equal(1, s.machine.CurrentTurn())
	s.Equal(0, s.machine.CorrectCount())
	s.Empty(s.machine.Placements())
	s.False(s.machine.IsWordLocked("word-1-1"))
}

func (s *MachineSuite) TestSnapshotAndRestoreRoundTrip() {
	s.placeCorrect("word-5-1")
	s.placeCorrect("word-1-1")
	_, err := s.machine.SubmitTurn(s.ctx, s.server)
	s.Require().NoError(err)
	s.machine.SelectImage(4)
	s.Require().NoError(s.machine.AssignWord("word-5-2"))

	snapshot := s.machine.Snapshot("player-1", "profile-1")

	restored := NewMachine(s.clock)
	restored.Restore(s.board.ClientView(), snapshot)

	s.Equal(PhasePlaying, restored.Phase())
	s.Equal(2, restored.CurrentTurn())
	s.Equal(2, restored.CorrectCount())
	s.True(restored.IsWordLocked("word-5-1"))
	s.True(restored.IsWordLocked("word-1-1"))
	s.Contains(restored.Placements(), model.WordID("word-5-2"))

	// Capacity reflects both the confirmed word and the pending placement
	s.Equal(0, restored.Remaining("img-5"))
	s.Equal(1, restored.Usage("img-5"))
}

func (s *MachineSuite) TestRestoreDoesNotRefireCompletedThemes() {
	s.placeCorrect("word-5-1")
	s.placeCorrect("word-5-2")
	_, err := s.machine.SubmitTurn(s.ctx, s.server)
	s.Require().NoError(err)

	snapshot := s.machine.Snapshot("", "")

	restored := NewMachine(s.clock)
	var fired []model.ImageID
	restored.OnThemeCompleted = func(id model.ImageID) { fired = append(fired, id) }
	restored.Restore(s.board.ClientView(), snapshot)

	s.Empty(fired)
	s.Equal(0, restored.Remaining("img-5"))
}
