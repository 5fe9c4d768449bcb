package request

import "time"

// CreateGuestRequest is the request body for creating a guest player
type CreateGuestRequest struct {
	DisplayName string `json:"display_name"`
}

// RegisterRequest is the request body for registering a player
type RegisterRequest struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	DisplayName string `json:"display_name"`
}

// LoginRequest is the request body for logging in
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// CreateProfileRequest is the request body for adding a profile
type CreateProfileRequest struct {
	Name string `json:"name"`
}

// SubmitTurnRequest is the request body for validating one turn.
// Placements maps word id to image id.
type SubmitTurnRequest struct {
	BoardID    string            `json:"boardId"`
	Placements map[string]string `json:"placements"`
	TurnNumber int               `json:"turnNumber"`
}

// TurnHistoryEntry mirrors the client's record of one completed turn.
// Only the turn number and placements snapshot are trusted inputs; the
// counts are recomputed server-side.
type TurnHistoryEntry struct {
	Turn              int               `json:"turn"`
	CorrectCount      int               `json:"correct"`
	IncorrectCount    int               `json:"incorrect"`
	CumulativeCorrect int               `json:"total_correct"`
	Placements        map[string]string `json:"placements"`
}

// GameData is the end-of-game payload inside SubmitGameRequest
type GameData struct {
	TurnHistory []TurnHistoryEntry `json:"turnHistory"`
	TimeElapsed int                `json:"timeElapsed"`
	StartTime   time.Time          `json:"startTime"`
	EndTime     time.Time          `json:"endTime"`
}

// SubmitGameRequest is the request body for finalizing a game
type SubmitGameRequest struct {
	BoardID   string   `json:"boardId"`
	GameData  GameData `json:"gameData"`
	SessionID string   `json:"sessionId"`
}

// SaveProgressRequest is the request body for upserting a progress snapshot
type SaveProgressRequest struct {
	SessionID    string             `json:"sessionId"`
	BoardID      string             `json:"boardId"`
	CurrentTurn  int                `json:"currentTurn"`
	CorrectWords []string           `json:"correctWords"`
	WordTurns    map[string]int     `json:"wordTurns"`
	TurnHistory  []TurnHistoryEntry `json:"turnHistory"`
	Placements   map[string]string  `json:"currentPlacements"`
	StartTime    time.Time          `json:"startTime"`
}
