package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wordsnpics/wordsnpics/internal/api"
	"github.com/wordsnpics/wordsnpics/internal/api/response"
	"github.com/wordsnpics/wordsnpics/internal/factory"
	"github.com/wordsnpics/wordsnpics/internal/model"
	"github.com/wordsnpics/wordsnpics/internal/services/board"
	"github.com/wordsnpics/wordsnpics/internal/storage/memory"
	"github.com/wordsnpics/wordsnpics/internal/testutil"
)

// testServer creates a test server with all dependencies
type testServer struct {
	handler http.Handler
	storage *memory.Storage
	board   *model.Board
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	// API tests are integration tests - use production factory with real random/clock
	app, err := factory.New(factory.Config{})
	require.NoError(t, err)

	// Seed a board dated today so the daily lookup resolves
	b := testutil.TestBoard("board-today", board.DateKey(time.Now()))
	require.NoError(t, app.Storage.SaveBoard(context.Background(), b))

	router := api.NewRouter(api.RouterConfig{
		Logger:         logger,
		AuthService:    app.AuthService,
		BoardService:   app.BoardService,
		GameController: app.GameController,
	})

	return &testServer{
		handler: router,
		storage: app.Storage.(*memory.Storage),
		board:   b,
	}
}

func (ts *testServer) request(method, path string, body any, token string) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		b, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(b)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)
	return rr
}

// correctPlacements maps fixture words to their ground-truth images on the wire
func (ts *testServer) correctPlacements(wordIDs ...string) map[string]string {
	placements := make(map[string]string, len(wordIDs))
	for _, id := range wordIDs {
		word := ts.board.WordByID(model.WordID(id))
		if word != nil {
			placements[id] = string(word.CorrectImageID)
		}
	}
	return placements
}

func TestHealthCheck(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/health", nil, "")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "ok")
}

func TestCreateGuestPlayer(t *testing.T) {
	ts := newTestServer(t)

	body := map[string]string{"display_name": "Alice"}
	rr := ts.request(http.MethodPost, "/api/players/guest", body, "")

	assert.Equal(t, http.StatusCreated, rr.Code)

	var resp response.AuthResponse
	err := json.Unmarshal(rr.Body.Bytes(), &resp)
	require.NoError(t, err)

	assert.Equal(t, "Alice", resp.Player.DisplayName)
	assert.True(t, resp.Player.IsGuest)
	assert.NotEmpty(t, resp.SessionToken)
	assert.NotEmpty(t, resp.ProfileID)
}

func TestRegisterAndLogin(t *testing.T) {
	ts := newTestServer(t)

	registerBody := map[string]string{
		"username":     "alice",
		"password":     "secret123",
		"display_name": "Alice",
	}
	rr := ts.request(http.MethodPost, "/api/players/register", registerBody, "")
	assert.Equal(t, http.StatusCreated, rr.Code)

	var registerResp response.AuthResponse
	err := json.Unmarshal(rr.Body.Bytes(), &registerResp)
	require.NoError(t, err)
	assert.False(t, registerResp.Player.IsGuest)

	loginBody := map[string]string{
		"username": "alice",
		"password": "secret123",
	}
	rr = ts.request(http.MethodPost, "/api/players/login", loginBody, "")
	assert.Equal(t, http.StatusOK, rr.Code)

	var loginResp response.AuthResponse
	err = json.Unmarshal(rr.Body.Bytes(), &loginResp)
	require.NoError(t, err)
	assert.Equal(t, registerResp.Player.ID, loginResp.Player.ID)
}

func TestLoginWrongPassword(t *testing.T) {
	ts := newTestServer(t)

	registerBody := map[string]string{"username": "alice", "password": "secret123"}
	rr := ts.request(http.MethodPost, "/api/players/register", registerBody, "")
	require.Equal(t, http.StatusCreated, rr.Code)

	loginBody := map[string]string{"username": "alice", "password": "wrong"}
	rr = ts.request(http.MethodPost, "/api/players/login", loginBody, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
	assert.Contains(t, rr.Body.String(), "INVALID_CREDENTIALS")
}

func TestGetMeRequiresAuth(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/players/me", nil, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = ts.request(http.MethodGet, "/api/players/me", nil, "bogus-token")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestGetMeWithToken(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/players/guest", map[string]string{"display_name": "Alice"}, "")
	require.Equal(t, http.StatusCreated, rr.Code)
	var auth response.AuthResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &auth))

	rr = ts.request(http.MethodGet, "/api/players/me", nil, auth.SessionToken)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Alice")
}

func TestGetDailyPuzzle(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/puzzle/daily", nil, "")
	assert.Equal(t, http.StatusOK, rr.Code)

	var puzzle response.Puzzle
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &puzzle))

	assert.Equal(t, "board-today", puzzle.BoardID)
	assert.Len(t, puzzle.Images, model.TotalImages)
	assert.Len(t, puzzle.Words, model.TotalWords)

	// The client view must never leak the word-to-image mapping
	assert.NotContains(t, rr.Body.String(), "correct_image_id")
	assert.NotContains(t, rr.Body.String(), "correctImageId")
}

func TestGetPuzzleByID(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodGet, "/api/puzzle/board-today", nil, "")
	assert.Equal(t, http.StatusOK, rr.Code)

	rr = ts.request(http.MethodGet, "/api/puzzle/nonexistent", nil, "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "BOARD_NOT_FOUND")
}

func TestSubmitTurn(t *testing.T) {
	ts := newTestServer(t)

	placements := ts.correctPlacements("word-1-1", "word-2-1")
	placements["word-3-1"] = "img-5" // wrong image

	body := map[string]any{
		"boardId":    "board-today",
		"placements": placements,
		"turnNumber": 1,
	}
	rr := ts.request(http.MethodPost, "/api/game/submit-turn", body, "")
	assert.Equal(t, http.StatusOK, rr.Code)

	var resp response.SubmitTurnResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))

	assert.True(t, resp.Success)
	assert.Equal(t, 1, resp.Turn)
	assert.Equal(t, 2, resp.CorrectCount)
	assert.Equal(t, 1, resp.IncorrectCount)
	assert.ElementsMatch(t, []string{"word-1-1", "word-2-1"}, resp.Results.Correct)
	assert.ElementsMatch(t, []string{"word-3-1"}, resp.Results.Incorrect)
}

func TestSubmitTurnValidation(t *testing.T) {
	ts := newTestServer(t)

	// Out-of-range turn number
	body := map[string]any{
		"boardId":    "board-today",
		"placements": ts.correctPlacements("word-1-1"),
		"turnNumber": 5,
	}
	rr := ts.request(http.MethodPost, "/api/game/submit-turn", body, "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "INVALID_TURN")

	// Empty placements
	body = map[string]any{
		"boardId":    "board-today",
		"placements": map[string]string{},
		"turnNumber": 1,
	}
	rr = ts.request(http.MethodPost, "/api/game/submit-turn", body, "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	// Unknown board
	body = map[string]any{
		"boardId":    "nonexistent",
		"placements": map[string]string{"word-1-1": "img-1"},
		"turnNumber": 1,
	}
	rr = ts.request(http.MethodPost, "/api/game/submit-turn", body, "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

// winningGameBody builds a submit-game payload whose single turn solves the board
func winningGameBody(ts *testServer, sessionID string) map[string]any {
	placements := make(map[string]string, len(ts.board.Words))
	for _, w := range ts.board.Words {
		placements[string(w.ID)] = string(w.CorrectImageID)
	}
	return map[string]any{
		"boardId":   "board-today",
		"sessionId": sessionID,
		"gameData": map[string]any{
			"turnHistory": []map[string]any{
				{"turn": 1, "correct": 20, "incorrect": 0, "total_correct": 20, "placements": placements},
			},
			"timeElapsed": 88,
		},
	}
}

func TestSubmitGame(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/game/submit-game", winningGameBody(ts, "play-1"), "")
	assert.Equal(t, http.StatusOK, rr.Code)

	var resp response.SubmitGameResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))

	assert.True(t, resp.Success)
	assert.Equal(t, model.TotalWords, resp.Score.CorrectWords)
	assert.True(t, resp.Score.IsWin)
	assert.Equal(t, 1, resp.Score.Turns)
	assert.Equal(t, 88, resp.Score.TimeElapsed)
	assert.Equal(t, "play-1", resp.Score.SessionID)
	assert.NotEmpty(t, resp.Score.GameSessionID)
}

func TestSubmitGameDuplicateReturnsSameRecord(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodPost, "/api/game/submit-game", winningGameBody(ts, "play-1"), "")
	require.Equal(t, http.StatusOK, rr.Code)
	var first response.SubmitGameResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &first))

	rr = ts.request(http.MethodPost, "/api/game/submit-game", winningGameBody(ts, "play-1"), "")
	require.Equal(t, http.StatusOK, rr.Code)
	var second response.SubmitGameResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &second))

	assert.Equal(t, first.Score.GameSessionID, second.Score.GameSessionID)
}

func TestSubmitGameRecomputesDishonestScore(t *testing.T) {
	ts := newTestServer(t)

	// Claimed 20 correct, placements earn only 1
	body := map[string]any{
		"boardId":   "board-today",
		"sessionId": "play-1",
		"gameData": map[string]any{
			"turnHistory": []map[string]any{
				{"turn": 1, "correct": 20, "total_correct": 20, "placements": ts.correctPlacements("word-1-1")},
			},
			"timeElapsed": 10,
		},
	}
	rr := ts.request(http.MethodPost, "/api/game/submit-game", body, "")
	assert.Equal(t, http.StatusOK, rr.Code)

	var resp response.SubmitGameResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, 1, resp.Score.CorrectWords)
	assert.False(t, resp.Score.IsWin)
}

func TestSubmitGameRequiresSessionID(t *testing.T) {
	ts := newTestServer(t)

	body := winningGameBody(ts, "play-1")
	delete(body, "sessionId")

	rr := ts.request(http.MethodPost, "/api/game/submit-game", body, "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestProgressLifecycle(t *testing.T) {
	ts := newTestServer(t)

	// Authenticated player so find-progress can locate by identity
	rr := ts.request(http.MethodPost, "/api/players/guest", map[string]string{"display_name": "Alice"}, "")
	require.Equal(t, http.StatusCreated, rr.Code)
	var auth response.AuthResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &auth))
	token := auth.SessionToken

	saveBody := map[string]any{
		"sessionId":    "play-1",
		"boardId":      "board-today",
		"currentTurn":  2,
		"correctWords": []string{"word-1-1"},
		"wordTurns":    map[string]int{"word-1-1": 1},
		"turnHistory": []map[string]any{
			{"turn": 1, "correct": 1, "incorrect": 0, "total_correct": 1, "placements": ts.correctPlacements("word-1-1")},
		},
		"currentPlacements": map[string]string{"word-2-1": "img-3"},
		"startTime":         time.Now().UTC().Format(time.RFC3339),
	}
	rr = ts.request(http.MethodPost, "/api/game/save-progress", saveBody, token)
	assert.Equal(t, http.StatusOK, rr.Code)

	// Load by session id
	rr = ts.request(http.MethodGet, "/api/game/load-progress/play-1", nil, token)
	assert.Equal(t, http.StatusOK, rr.Code)

	var progress response.Progress
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &progress))
	assert.Equal(t, "play-1", progress.SessionID)
	assert.Equal(t, 2, progress.CurrentTurn)
	assert.Equal(t, []string{"word-1-1"}, progress.CorrectWords)
	assert.False(t, progress.LastSaved.IsZero())

	// Find by board for the same identity
	rr = ts.request(http.MethodGet, "/api/game/find-progress/board-today", nil, token)
	assert.Equal(t, http.StatusOK, rr.Code)

	// Clear, then both lookups miss
	rr = ts.request(http.MethodDelete, "/api/game/clear-progress/play-1", nil, token)
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = ts.request(http.MethodGet, "/api/game/load-progress/play-1", nil, token)
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "PROGRESS_NOT_FOUND")
}

func TestFindProgressAnonymousIsNotFound(t *testing.T) {
	ts := newTestServer(t)

	// One anonymous visitor saves progress
	saveBody := map[string]any{
		"sessionId":   "play-anon",
		"boardId":     "board-today",
		"currentTurn": 2,
	}
	rr := ts.request(http.MethodPost, "/api/game/save-progress", saveBody, "")
	require.Equal(t, http.StatusOK, rr.Code)

	// Another anonymous visitor must not be offered that session
	rr = ts.request(http.MethodGet, "/api/game/find-progress/board-today", nil, "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Contains(t, rr.Body.String(), "PROGRESS_NOT_FOUND")
	assert.NotContains(t, rr.Body.String(), "play-anon")
}

func TestSubmitGameRejectsOutOfRangeHistoryTurn(t *testing.T) {
	ts := newTestServer(t)

	body := map[string]any{
		"boardId":   "board-today",
		"sessionId": "play-bad-turn",
		"gameData": map[string]any{
			"turnHistory": []map[string]any{
				{"turn": 99, "placements": ts.correctPlacements("word-1-1")},
			},
			"timeElapsed": 10,
		},
	}

	rr := ts.request(http.MethodPost, "/api/game/submit-game", body, "")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "INVALID_TURN")
}

func TestClearProgressMissingIsNoContent(t *testing.T) {
	ts := newTestServer(t)

	rr := ts.request(http.MethodDelete, "/api/game/clear-progress/never-saved", nil, "")
	assert.Equal(t, http.StatusNoContent, rr.Code)
}

func TestFullGameOverAPI(t *testing.T) {
	ts := newTestServer(t)

	// Turn 1: two right, one wrong
	placements := ts.correctPlacements("word-1-1", "word-2-1")
	placements["word-3-1"] = "img-5"
	rr := ts.request(http.MethodPost, "/api/game/submit-turn", map[string]any{
		"boardId": "board-today", "placements": placements, "turnNumber": 1,
	}, "")
	require.Equal(t, http.StatusOK, rr.Code)

	// Turn 2: fix the wrong word
	rr = ts.request(http.MethodPost, "/api/game/submit-turn", map[string]any{
		"boardId": "board-today", "placements": ts.correctPlacements("word-3-1"), "turnNumber": 2,
	}, "")
	require.Equal(t, http.StatusOK, rr.Code)

	// Finalize with both turns' snapshots
	body := map[string]any{
		"boardId":   "board-today",
		"sessionId": "play-full",
		"gameData": map[string]any{
			"turnHistory": []map[string]any{
				{"turn": 1, "placements": placements},
				{"turn": 2, "placements": ts.correctPlacements("word-3-1")},
			},
			"timeElapsed": 120,
		},
	}
	rr = ts.request(http.MethodPost, "/api/game/submit-game", body, "")
	require.Equal(t, http.StatusOK, rr.Code)

	var resp response.SubmitGameResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, 3, resp.Score.CorrectWords)
	assert.Equal(t, 2, resp.Score.Turns)
	assert.Equal(t, 1, resp.Score.WordTurns["word-1-1"])
	assert.Equal(t, 2, resp.Score.WordTurns["word-3-1"])
}
