package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"
)

// Output handles formatting output based on the configured format
type Output struct {
	format string
}

// NewOutput creates a new Output formatter
func NewOutput(format string) *Output {
	return &Output{format: format}
}

// Print outputs data in the configured format
func (o *Output) Print(data any) {
	if o.format == "json" {
		o.printJSON(data)
	} else {
		o.printText(data)
	}
}

// PrintError outputs an error
func (o *Output) PrintError(err error) {
	if o.format == "json" {
		errData := map[string]any{
			"error": map[string]string{
				"message": err.Error(),
			},
		}
		data, _ := json.Marshal(errData)
		fmt.Fprintln(os.Stderr, string(data))
	} else {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
	}
}

// PrintMessage outputs a simple message
func (o *Output) PrintMessage(msg string) {
	if o.format == "json" {
		data, _ := json.Marshal(map[string]string{"message": msg})
		fmt.Println(string(data))
	} else {
		fmt.Println(msg)
	}
}

func (o *Output) printJSON(data any) {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func (o *Output) printText(data any) {
	switch v := data.(type) {
	case Player:
		o.printPlayer(v)
	case AuthResult:
		o.printAuthResult(v)
	case Puzzle:
		o.printPuzzle(v)
	case SubmitTurnResult:
		o.printTurnResult(v)
	case ScoreResult:
		o.printScore(v)
	case ProgressResult:
		o.printProgress(v)
	case HealthResult:
		o.printHealthResult(v)
	default:
		// Fallback to JSON for unknown types
		o.printJSON(data)
	}
}

// Player response type (matches API)
type Player struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
	IsGuest     bool   `json:"is_guest"`
}

// Profile response type
type Profile struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	IsDefault bool   `json:"is_default"`
}

// AuthResult combines player, profile and token
type AuthResult struct {
	Player       Player `json:"player"`
	ProfileID    string `json:"profile_id,omitempty"`
	SessionToken string `json:"session_token"`
}

// PuzzleImage response type
type PuzzleImage struct {
	ID         string `json:"id"`
	Theme      string `json:"theme"`
	MatchCount int    `json:"matchCount"`
	URL        string `json:"url"`
}

// PuzzleWord response type
type PuzzleWord struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// Puzzle response type
type Puzzle struct {
	BoardID string        `json:"boardId"`
	Date    string        `json:"date"`
	Images  []PuzzleImage `json:"images"`
	Words   []PuzzleWord  `json:"words"`
}

// TurnResults response type
type TurnResults struct {
	Correct   []string `json:"correct"`
	Incorrect []string `json:"incorrect"`
}

// SubmitTurnResult response type
type SubmitTurnResult struct {
	Success        bool        `json:"success"`
	Turn           int         `json:"turn"`
	Results        TurnResults `json:"results"`
	CorrectCount   int         `json:"correctCount"`
	IncorrectCount int         `json:"incorrectCount"`
}

// ScoreResult response type
type ScoreResult struct {
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

// SubmitGameResult response type
type SubmitGameResult struct {
	Success bool        `json:"success"`
	Score   ScoreResult `json:"score"`
	Message string      `json:"message"`
}

// ProgressResult response type
type ProgressResult struct {
	SessionID    string         `json:"sessionId"`
	BoardID      string         `json:"boardId"`
	CurrentTurn  int            `json:"currentTurn"`
	CorrectWords []string       `json:"correctWords"`
	WordTurns    map[string]int `json:"wordTurns"`
	LastSaved    time.Time      `json:"lastSaved"`
}

// HealthResult response type
type HealthResult struct {
	Status string `json:"status"`
}

func (o *Output) printPlayer(p Player) {
	guestStr := "no"
	if p.IsGuest {
		guestStr = "yes"
	}
	fmt.Printf("Player: %s (%s)\n", p.DisplayName, p.ID)
	fmt.Printf("Guest: %s\n", guestStr)
}

func (o *Output) printAuthResult(a AuthResult) {
	o.printPlayer(a.Player)
	if a.ProfileID != "" {
		fmt.Printf("Profile: %s\n", a.ProfileID)
	}
	fmt.Printf("Token: %s\n", a.SessionToken)
}

func (o *Output) printPuzzle(p Puzzle) {
	fmt.Printf("Puzzle: %s (%s)\n", p.BoardID, p.Date)
	fmt.Println("\nImages:")
	for i, img := range p.Images {
		fmt.Printf("  %d. %s — needs %d words\n", i+1, img.Theme, img.MatchCount)
	}
	fmt.Println("\nWords:")
	var words []string
	for _, w := range p.Words {
		words = append(words, w.Text)
	}
	fmt.Printf("  %s\n", strings.Join(words, ", "))
}

func (o *Output) printTurnResult(r SubmitTurnResult) {
	fmt.Printf("Turn %d submitted\n", r.Turn)
	fmt.Printf("Correct: %d\n", r.CorrectCount)
	fmt.Printf("Incorrect: %d\n", r.IncorrectCount)
	if len(r.Results.Correct) > 0 {
		fmt.Printf("  locked: %s\n", strings.Join(r.Results.Correct, ", "))
	}
	if len(r.Results.Incorrect) > 0 {
		fmt.Printf("  retry: %s\n", strings.Join(r.Results.Incorrect, ", "))
	}
}

func (o *Output) printScore(s ScoreResult) {
	result := "Lost"
	if s.IsWin {
		result = "Won"
	}
	fmt.Printf("%s! %d/%d words in %d/%d turns\n", result, s.CorrectWords, s.TotalWords, s.Turns, s.MaxTurns)
	fmt.Printf("Time: %ds\n", s.TimeElapsed)
	fmt.Printf("Session: %s\n", s.GameSessionID)

	if len(s.WordTurns) > 0 {
		// Group words by the turn they were solved on
		byTurn := make(map[int][]string)
		for w, t := range s.WordTurns {
			byTurn[t] = append(byTurn[t], w)
		}
		turns := make([]int, 0, len(byTurn))
		for t := range byTurn {
			turns = append(turns, t)
		}
		sort.Ints(turns)
		for _, t := range turns {
			sort.Strings(byTurn[t])
			fmt.Printf("  turn %d: %s\n", t, strings.Join(byTurn[t], ", "))
		}
	}
}

func (o *Output) printProgress(p ProgressResult) {
	fmt.Printf("Session: %s\n", p.SessionID)
	fmt.Printf("Board: %s\n", p.BoardID)
	fmt.Printf("Turn: %d\n", p.CurrentTurn)
	fmt.Printf("Correct so far: %d\n", len(p.CorrectWords))
	fmt.Printf("Last saved: %s\n", p.LastSaved.Format(time.RFC3339))
}

func (o *Output) printHealthResult(h HealthResult) {
	fmt.Printf("Status: %s\n", h.Status)
}
