package response

import (
	"time"

	"github.com/wordsnpics/wordsnpics/internal/model"
	"github.com/wordsnpics/wordsnpics/internal/services/auth"
	"github.com/wordsnpics/wordsnpics/internal/services/game"
)

// Player represents a player in API responses
type Player struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	IsGuest     bool   `json:"is_guest"`
}

// PlayerFromModel converts a model.Player to a response Player
func PlayerFromModel(p *model.Player) Player {
	return Player{
		ID:          string(p.ID),
		DisplayName: p.DisplayName,
		IsGuest:     p.IsGuest,
	}
}

// Profile represents a profile in API responses
type Profile struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	IsDefault bool   `json:"is_default"`
}

// ProfileFromModel converts a model.Profile
func ProfileFromModel(p *model.Profile) Profile {
	return Profile{
		ID:        string(p.ID),
		Name:      p.Name,
		IsDefault: p.IsDefault,
	}
}

// AuthResponse is the response for authentication endpoints
type AuthResponse struct {
	Player       Player `json:"player"`
	ProfileID    string `json:"profile_id,omitempty"`
	SessionToken string `json:"session_token"`
}

// AuthResponseFromSession creates an AuthResponse from a session
func AuthResponseFromSession(s *auth.Session) AuthResponse {
	return AuthResponse{
		Player:       PlayerFromModel(&s.Player),
		ProfileID:    string(s.ProfileID),
		SessionToken: s.Token,
	}
}

// PuzzleImage is an image slot as served to clients
type PuzzleImage struct {
	ID         string `json:"id"`
	Theme      string `json:"theme"`
	MatchCount int    `json:"matchCount"`
	URL        string `json:"url"`
}

// PuzzleWord is a word as served to clients pre-solve: id and text only
type PuzzleWord struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// Puzzle is the redacted board sent to clients
type Puzzle struct {
	BoardID string        `json:"boardId"`
	Date    string        `json:"date"`
	Images  []PuzzleImage `json:"images"`
	Words   []PuzzleWord  `json:"words"`
}

// PuzzleFromClientBoard converts a model.ClientBoard
func PuzzleFromClientBoard(b *model.ClientBoard) Puzzle {
	images := make([]PuzzleImage, len(b.Images))
	for i, img := range b.Images {
		images[i] = PuzzleImage{
			ID:         string(img.ID),
			Theme:      img.Theme,
			MatchCount: img.MatchCount,
			URL:        img.URL,
		}
	}
	words := make([]PuzzleWord, len(b.Words))
	for i, w := range b.Words {
		words[i] = PuzzleWord{ID: string(w.ID), Text: w.Text}
	}
	return Puzzle{
		BoardID: string(b.ID),
		Date:    b.PuzzleDate,
		Images:  images,
		Words:   words,
	}
}

// TurnResults carries the per-word verdicts of one turn
type TurnResults struct {
	Correct   []string `json:"correct"`
	Incorrect []string `json:"incorrect"`
}

// SubmitTurnResponse is the response to a turn submission
type SubmitTurnResponse struct {
	Success        bool        `json:"success"`
	Turn           int         `json:"turn"`
	Results        TurnResults `json:"results"`
	CorrectCount   int         `json:"correctCount"`
	IncorrectCount int         `json:"incorrectCount"`
}

// SubmitTurnResponseFromResult converts a game.TurnResult
func SubmitTurnResponseFromResult(r *game.TurnResult) SubmitTurnResponse {
	correct := make([]string, len(r.Correct))
	for i, w := range r.Correct {
		correct[i] = string(w)
	}
	incorrect := make([]string, len(r.Incorrect))
	for i, w := range r.Incorrect {
		incorrect[i] = string(w)
	}
	return SubmitTurnResponse{
		Success:        true,
		Turn:           r.Turn,
		Results:        TurnResults{Correct: correct, Incorrect: incorrect},
		CorrectCount:   len(correct),
		IncorrectCount: len(incorrect),
	}
}

// Score is the server-confirmed final score of a game
type Score struct {
	BoardID       string         `json:"boardId"`
	CorrectWords  int            `json:"correctWords"`
	TotalWords    int            `json:"totalWords"`
	Turns         int            `json:"turns"`
	MaxTurns      int            `json:"maxTurns"`
	TimeElapsed   int            `json:"timeElapsed"`
	IsWin         bool           `json:"isWin"`
	WordTurns     map[string]int `json:"wordTurns"`
	SessionID     string         `json:"sessionId"`
	CompletedAt   time.Time      `json:"completedAt"`
	GameSessionID string         `json:"gameSessionId"`
}

// SubmitGameResponse is the response to game finalization
type SubmitGameResponse struct {
	Success bool   `json:"success"`
	Score   Score  `json:"score"`
	Message string `json:"message"`
}

// ScoreFromSession converts a finalized model.GameSession
func ScoreFromSession(s *model.GameSession) Score {
	wordTurns := make(map[string]int, len(s.WordTurns))
	for w, t := range s.WordTurns {
		wordTurns[string(w)] = t
	}
	return Score{
		BoardID:       string(s.BoardID),
		CorrectWords:  s.CorrectWords,
		TotalWords:    s.TotalWords,
		Turns:         s.TurnsUsed,
		MaxTurns:      s.MaxTurns,
		TimeElapsed:   s.TimeElapsed,
		IsWin:         s.IsWin,
		WordTurns:     wordTurns,
		SessionID:     string(s.PlaySessionID),
		CompletedAt:   s.CompletedAt,
		GameSessionID: string(s.ID),
	}
}

// TurnHistoryEntry mirrors one completed turn in progress responses
type TurnHistoryEntry struct {
	Turn              int               `json:"turn"`
	CorrectCount      int               `json:"correct"`
	IncorrectCount    int               `json:"incorrect"`
	CumulativeCorrect int               `json:"total_correct"`
	Placements        map[string]string `json:"placements"`
}

// Progress is a saved-progress snapshot in API responses
type Progress struct {
	SessionID    string             `json:"sessionId"`
	BoardID      string             `json:"boardId"`
	CurrentTurn  int                `json:"currentTurn"`
	CorrectWords []string           `json:"correctWords"`
	WordTurns    map[string]int     `json:"wordTurns"`
	TurnHistory  []TurnHistoryEntry `json:"turnHistory"`
	Placements   map[string]string  `json:"currentPlacements"`
	StartTime    time.Time          `json:"startTime"`
	LastSaved    time.Time          `json:"lastSaved"`
}

// ProgressFromModel converts a model.Progress
func ProgressFromModel(p *model.Progress) Progress {
	correct := make([]string, len(p.CorrectWords))
	for i, w := range p.CorrectWords {
		correct[i] = string(w)
	}
	wordTurns := make(map[string]int, len(p.WordTurns))
	for w, t := range p.WordTurns {
		wordTurns[string(w)] = t
	}
	history := make([]TurnHistoryEntry, len(p.TurnHistory))
	for i, e := range p.TurnHistory {
		placements := make(map[string]string, len(e.Placements))
		for w, img := range e.Placements {
			placements[string(w)] = string(img)
		}
		history[i] = TurnHistoryEntry{
			Turn:              e.Turn,
			CorrectCount:      e.CorrectCount,
			IncorrectCount:    e.IncorrectCount,
			CumulativeCorrect: e.CumulativeCorrect,
			Placements:        placements,
		}
	}
	placements := make(map[string]string, len(p.Placements))
	for w, img := range p.Placements {
		placements[string(w)] = string(img)
	}
	return Progress{
		SessionID:    string(p.PlaySessionID),
		BoardID:      string(p.BoardID),
		CurrentTurn:  p.CurrentTurn,
		CorrectWords: correct,
		WordTurns:    wordTurns,
		TurnHistory:  history,
		Placements:   placements,
		StartTime:    p.StartTime,
		LastSaved:    p.LastSaved,
	}
}

// SaveProgressResponse acknowledges a progress upsert
type SaveProgressResponse struct {
	Success bool `json:"success"`
}
