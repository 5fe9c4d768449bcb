// Package play implements the player-facing game state machine as a
// plain in-memory structure, independent of any rendering layer.
// Rendering subscribes to this state; the state never reaches into
// rendering. The machine enforces placement legality locally and defers
// all correctness decisions to the server through the TurnSubmitter and
// GameFinisher boundaries.
package play

import (
	"context"
	"time"

	"github.com/wordsnpics/wordsnpics/internal/dependencies/clock"
	"github.com/wordsnpics/wordsnpics/internal/model"
	"github.com/wordsnpics/wordsnpics/internal/services/scoring"
	"github.com/wordsnpics/wordsnpics/internal/services/validation"
)

// Phase is the machine's lifecycle state
type Phase string

const (
	PhaseLoading   Phase = "loading"
	PhasePlaying   Phase = "playing"
	PhaseCompleted Phase = "completed"
)

// TurnOutcome is the server's verdict on one submitted turn
type TurnOutcome struct {
	Turn      int
	Correct   []model.WordID
	Incorrect []model.WordID
}

// TurnSubmitter validates a turn server-side
type TurnSubmitter interface {
	SubmitTurn(ctx context.Context, boardID model.BoardID, placements model.Placements, turnNumber int) (*TurnOutcome, error)
}

// FinishData is the end-of-game submission payload
type FinishData struct {
	TurnHistory []model.TurnHistoryEntry
	TimeElapsed int
	StartTime   time.Time
	EndTime     time.Time
}

// FinalScore is the result of game finalization. Validated is true only
// when the score came back from the server; a false value marks the
// local fallback, which must never earn leaderboard credit.
type FinalScore struct {
	BoardID       model.BoardID
	GameSessionID model.GameSessionID
	CorrectWords  int
	TotalWords    int
	TurnsUsed     int
	MaxTurns      int
	TimeElapsed   int
	IsWin         bool
	WordTurns     model.WordTurns
	Validated     bool
	CompletedAt   time.Time
}

// GameFinisher finalizes a game server-side
type GameFinisher interface {
	FinishGame(ctx context.Context, boardID model.BoardID, playSessionID model.PlaySessionID, data FinishData) (*FinalScore, error)
}

// Machine is the client game state machine for one playthrough
type Machine struct {
	clock clock.Clock

	phase         Phase
	board         *model.ClientBoard
	playSessionID model.PlaySessionID

	currentTurn  int
	currentSlide int

	// placements holds the current turn's uncommitted assignments;
	// usage mirrors it as a per-image count for words not yet confirmed
	placements model.Placements
	usage      map[model.ImageID]int

	// correctByImage counts confirmed-correct words per image, derived
	// from where each confirmed word was placed
	correctByImage map[model.ImageID]int
	themeNotified  map[model.ImageID]bool

	state     *scoring.State
	startTime time.Time

	// OnThemeCompleted fires once per image when its last word is
	// confirmed correct
	OnThemeCompleted func(model.ImageID)
}

// NewMachine creates a machine awaiting puzzle data
func NewMachine(clk clock.Clock) *Machine {
	return &Machine{
		clock: clk,
		phase: PhaseLoading,
	}
}

// LoadBoard installs the puzzle view and starts play at turn 1
func (m *Machine) LoadBoard(board *model.ClientBoard, playSessionID model.PlaySessionID) {
	m.board = board
	m.playSessionID = playSessionID
	m.phase = PhasePlaying
	m.currentTurn = 1
	m.currentSlide = 0
	m.placements = make(model.Placements)
	m.usage = make(map[model.ImageID]int)
	m.correctByImage = make(map[model.ImageID]int)
	m.themeNotified = make(map[model.ImageID]bool)
	m.state = scoring.NewState()
	m.startTime = m.clock.Now()
}

// Phase returns the machine's lifecycle state
func (m *Machine) Phase() Phase {
	return m.phase
}

// CurrentTurn returns the 1-based turn number
func (m *Machine) CurrentTurn() int {
	return m.currentTurn
}

// CurrentSlide returns the index of the selected image
func (m *Machine) CurrentSlide() int {
	return m.currentSlide
}

// CorrectCount returns the confirmed-correct word total
func (m *Machine) CorrectCount() int {
	if m.state == nil {
		return 0
	}
	return m.state.CorrectCount()
}

// Placements returns a copy of the current uncommitted placements
func (m *Machine) Placements() model.Placements {
	return m.placements.Clone()
}

// WordTurns returns a copy of the turn attribution map
func (m *Machine) WordTurns() model.WordTurns {
	out := make(model.WordTurns, len(m.state.WordTurns))
	for w, t := range m.state.WordTurns {
		out[w] = t
	}
	return out
}

// TurnHistory returns the completed turn entries so far
func (m *Machine) TurnHistory() []model.TurnHistoryEntry {
	out := make([]model.TurnHistoryEntry, len(m.state.TurnHistory))
	copy(out, m.state.TurnHistory)
	return out
}

// IsWordLocked reports whether the word has been confirmed correct
func (m *Machine) IsWordLocked(wordID model.WordID) bool {
	return m.state != nil && m.state.CorrectWords[wordID]
}

// Usage returns the uncommitted placement count for an image
func (m *Machine) Usage(imageID model.ImageID) int {
	return m.usage[imageID]
}

// Remaining returns how many more words the image can take this turn
func (m *Machine) Remaining(imageID model.ImageID) int {
	for _, img := range m.board.Images {
		if img.ID == imageID {
			return img.MatchCount - m.correctByImage[imageID] - m.usage[imageID]
		}
	}
	return 0
}

// SelectImage moves the carousel to the given index, clamped to range
func (m *Machine) SelectImage(index int) {
	if m.board == nil {
		return
	}
	if index < 0 {
		index = 0
	}
	if index > len(m.board.Images)-1 {
		index = len(m.board.Images) - 1
	}
	m.currentSlide = index
}

// NextSlide advances the carousel by one, clamped
func (m *Machine) NextSlide() {
	m.SelectImage(m.currentSlide + 1)
}

// PreviousSlide moves the carousel back by one, clamped
func (m *Machine) PreviousSlide() {
	m.SelectImage(m.currentSlide - 1)
}

// AssignWord places the word on the currently selected image, or
// un-assigns it if it is already placed this turn. Rejections leave the
// state untouched; callers render them as UI feedback only.
func (m *Machine) AssignWord(wordID model.WordID) error {
	if m.phase != PhasePlaying {
		if m.phase == PhaseLoading {
			return model.ErrGameNotStarted
		}
		return model.ErrGameComplete
	}
	if m.IsWordLocked(wordID) {
		return model.ErrWordLocked
	}
	if !m.wordOnBoard(wordID) {
		return model.ErrUnknownWord
	}

	// Toggle off an uncommitted placement
	if img, ok := m.placements[wordID]; ok {
		delete(m.placements, wordID)
		m.usage[img]--
		return nil
	}

	img := m.board.Images[m.currentSlide]
	if m.Remaining(img.ID) <= 0 {
		return model.ErrImageFull
	}

	m.placements[wordID] = img.ID
	m.usage[img.ID]++

	if m.Remaining(img.ID) == 0 {
		m.maybeNotifyTheme(img.ID)
		m.advanceToAvailable()
	}
	return nil
}

// SubmitTurn sends the current placements for validation and reconciles
// the verdict. On transport failure no state changes, so the player can
// retry; controls are never left locked.
func (m *Machine) SubmitTurn(ctx context.Context, submitter TurnSubmitter) (*TurnOutcome, error) {
	if m.phase != PhasePlaying {
		if m.phase == PhaseLoading {
			return nil, model.ErrGameNotStarted
		}
		return nil, model.ErrGameComplete
	}

	submitted := m.placements.Clone()
	outcome, err := submitter.SubmitTurn(ctx, m.board.ID, submitted, m.currentTurn)
	if err != nil {
		return nil, err
	}

	result := validation.Result{Correct: outcome.Correct, Incorrect: outcome.Incorrect}
	m.state.ApplyTurnResult(m.currentTurn, result, submitted)

	// Confirmed words lock and leave the active placements; their image
	// tallies move from transient usage to the correct count
	for _, wordID := range outcome.Correct {
		if img, ok := m.placements[wordID]; ok {
			m.correctByImage[img]++
			delete(m.placements, wordID)
		}
	}
	// Incorrect words recycle for the next turn
	for _, wordID := range outcome.Incorrect {
		delete(m.placements, wordID)
	}
	m.rebuildUsage()

	for _, img := range m.board.Images {
		m.maybeNotifyTheme(img.ID)
	}

	if m.state.IsGameOver() {
		m.phase = PhaseCompleted
		return outcome, nil
	}

	m.currentTurn++
	m.state.CurrentTurn = m.currentTurn
	m.navigateToFirstAvailable()
	return outcome, nil
}

// EndGame submits the finished game for authoritative scoring. On
// transport failure it falls back to the locally-computed score with
// Validated=false; the player always reaches a results screen, but the
// fallback carries no competitive weight.
func (m *Machine) EndGame(ctx context.Context, finisher GameFinisher) (*FinalScore, error) {
	if m.phase != PhaseCompleted {
		return nil, model.ErrGameNotComplete
	}

	now := m.clock.Now()
	elapsed := int(now.Sub(m.startTime).Seconds())
	data := FinishData{
		TurnHistory: m.TurnHistory(),
		TimeElapsed: elapsed,
		StartTime:   m.startTime,
		EndTime:     now,
	}

	score, err := finisher.FinishGame(ctx, m.board.ID, m.playSessionID, data)
	if err == nil {
		score.Validated = true
		return score, nil
	}

	// Degraded path: local tally, explicitly unvalidated
	return &FinalScore{
		BoardID:      m.board.ID,
		CorrectWords: m.state.CorrectCount(),
		TotalWords:   model.TotalWords,
		TurnsUsed:    len(m.state.TurnHistory),
		MaxTurns:     model.MaxTurns,
		TimeElapsed:  elapsed,
		IsWin:        m.state.IsWin(),
		WordTurns:    m.WordTurns(),
		Validated:    false,
		CompletedAt:  now,
	}, nil
}

// Reset clears all play state back to turn 1 without reloading the puzzle
func (m *Machine) Reset() {
	if m.board == nil {
		return
	}
	m.LoadBoard(m.board, m.playSessionID)
}

// Snapshot captures the machine state for best-effort persistence
func (m *Machine) Snapshot(playerID model.PlayerID, profileID model.ProfileID) *model.Progress {
	correct := make([]model.WordID, 0, m.state.CorrectCount())
	for w := range m.state.CorrectWords {
		correct = append(correct, w)
	}
	return &model.Progress{
		PlaySessionID: m.playSessionID,
		PlayerID:      playerID,
		ProfileID:     profileID,
		BoardID:       m.board.ID,
		CurrentTurn:   m.currentTurn,
		CorrectWords:  correct,
		WordTurns:     m.WordTurns(),
		TurnHistory:   m.TurnHistory(),
		Placements:    m.placements.Clone(),
		StartTime:     m.startTime,
	}
}

// Restore rebuilds machine state from a saved snapshot
func (m *Machine) Restore(board *model.ClientBoard, progress *model.Progress) {
	m.LoadBoard(board, progress.PlaySessionID)
	m.currentTurn = progress.CurrentTurn
	m.startTime = progress.StartTime
	m.state.CurrentTurn = progress.CurrentTurn
	for _, w := range progress.CorrectWords {
		m.state.CorrectWords[w] = true
	}
	for w, t := range progress.WordTurns {
		m.state.WordTurns[w] = t
	}
	m.state.TurnHistory = append(m.state.TurnHistory, progress.TurnHistory...)
	m.placements = progress.Placements.Clone()

	// Re-derive per-image tallies from history and placements
	for _, entry := range progress.TurnHistory {
		for w, img := range entry.Placements {
			if m.state.CorrectWords[w] && m.state.WordTurns[w] == entry.Turn {
				m.correctByImage[img]++
			}
		}
	}
	m.rebuildUsage()
	for _, img := range m.board.Images {
		if m.correctByImage[img.ID] == img.MatchCount {
			m.themeNotified[img.ID] = true
		}
	}
	m.navigateToFirstAvailable()
}

func (m *Machine) wordOnBoard(wordID model.WordID) bool {
	for _, w := range m.board.Words {
		if w.ID == wordID {
			return true
		}
	}
	return false
}

// rebuildUsage recomputes the transient per-image counts from the
// placements that survived reconciliation
func (m *Machine) rebuildUsage() {
	m.usage = make(map[model.ImageID]int)
	for wordID, img := range m.placements {
		if !m.state.CorrectWords[wordID] {
			m.usage[img]++
		}
	}
}

// maybeNotifyTheme fires the theme-completed callback once per image,
// when every one of its words has been confirmed
func (m *Machine) maybeNotifyTheme(imageID model.ImageID) {
	if m.themeNotified[imageID] {
		return
	}
	for _, img := range m.board.Images {
		if img.ID == imageID && m.correctByImage[imageID] == img.MatchCount {
			m.themeNotified[imageID] = true
			if m.OnThemeCompleted != nil {
				m.OnThemeCompleted(imageID)
			}
		}
	}
}

// advanceToAvailable moves forward circularly from the current slide to
// the next image with remaining capacity, excluding the current one
func (m *Machine) advanceToAvailable() {
	n := len(m.board.Images)
	for step := 1; step < n; step++ {
		idx := (m.currentSlide + step) % n
		if m.Remaining(m.board.Images[idx].ID) > 0 {
			m.currentSlide = idx
			return
		}
	}
}

// navigateToFirstAvailable selects the first image with remaining
// capacity, scanning from the start
func (m *Machine) navigateToFirstAvailable() {
	for i, img := range m.board.Images {
		if m.Remaining(img.ID) > 0 {
			m.currentSlide = i
			return
		}
	}
}
