package model

import "time"

// GameSessionID uniquely identifies a finalized game session record
type GameSessionID string

// PlaySessionID identifies a single playthrough of a board. It is
// client-generated and ties turn submissions, progress snapshots and the
// finalized record together.
type PlaySessionID string

// Placements is a word-to-image assignment map for a single turn
type Placements map[WordID]ImageID

// Clone returns a copy of the placements map
func (p Placements) Clone() Placements {
	out := make(Placements, len(p))
	for w, img := range p {
		out[w] = img
	}
	return out
}

// TurnHistoryEntry records one completed turn: how many words were newly
// confirmed, how many were wrong, the running total, and a snapshot of
// the placements as submitted. The snapshots are what the server
// re-validates on final submit.
type TurnHistoryEntry struct {
	Turn              int        `json:"turn"`
	CorrectCount      int        `json:"correct"`
	IncorrectCount    int        `json:"incorrect"`
	CumulativeCorrect int        `json:"total_correct"`
	Placements        Placements `json:"placements"`
}

// WordTurns maps each confirmed-correct word to the turn that first
// confirmed it. Write-once per key.
type WordTurns map[WordID]int

// GameSession is the immutable record of one completed game
type GameSession struct {
	ID            GameSessionID      `json:"id"`
	PlayerID      PlayerID           `json:"player_id,omitempty"`
	ProfileID     ProfileID          `json:"profile_id,omitempty"`
	PlaySessionID PlaySessionID      `json:"session_id"`
	BoardID       BoardID            `json:"board_id"`
	PuzzleDate    string             `json:"puzzle_date"`
	CorrectWords  int                `json:"correct_words"`
	TotalWords    int                `json:"total_words"`
	TurnsUsed     int                `json:"turns_used"`
	MaxTurns      int                `json:"max_turns"`
	TimeElapsed   int                `json:"time_elapsed_seconds"`
	IsWin         bool               `json:"is_win"`
	WordTurns     WordTurns          `json:"word_turns"`
	TurnHistory   []TurnHistoryEntry `json:"turn_history"`
	CompletedAt   time.Time          `json:"completed_at"`
}

// Progress is the resumable mid-game snapshot, one row per play session.
// Mutable and best-effort, unlike GameSession.
type Progress struct {
	PlaySessionID PlaySessionID      `json:"session_id"`
	PlayerID      PlayerID           `json:"player_id,omitempty"`
	ProfileID     ProfileID          `json:"profile_id,omitempty"`
	BoardID       BoardID            `json:"board_id"`
	CurrentTurn   int                `json:"current_turn"`
	CorrectWords  []WordID           `json:"correct_words"`
	WordTurns     WordTurns          `json:"word_turns"`
	TurnHistory   []TurnHistoryEntry `json:"turn_history"`
	Placements    Placements         `json:"current_placements"`
	StartTime     time.Time          `json:"start_time"`
	LastSaved     time.Time          `json:"last_saved"`
}
