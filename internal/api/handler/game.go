package handler

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/wordsnpics/wordsnpics/internal/api/middleware"
	"github.com/wordsnpics/wordsnpics/internal/api/request"
	"github.com/wordsnpics/wordsnpics/internal/api/response"
	"github.com/wordsnpics/wordsnpics/internal/model"
	"github.com/wordsnpics/wordsnpics/internal/services/game"
)

// GameHandler handles turn validation, finalization and progress endpoints
type GameHandler struct {
	gameController *game.Controller
}

// NewGameHandler creates a new game handler
func NewGameHandler(gameController *game.Controller) *GameHandler {
	return &GameHandler{gameController: gameController}
}

// SubmitTurn handles POST /api/game/submit-turn
func (h *GameHandler) SubmitTurn(w http.ResponseWriter, r *http.Request) {
	var req request.SubmitTurnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.BoardID == "" {
		WriteError(w, NewInvalidRequestError("boardId is required"))
		return
	}
	if len(req.Placements) == 0 {
		WriteError(w, NewInvalidRequestError("placements must not be empty"))
		return
	}

	result, err := h.gameController.SubmitTurn(
		r.Context(),
		model.BoardID(req.BoardID),
		placementsFromRequest(req.Placements),
		req.TurnNumber,
	)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SubmitTurnResponseFromResult(result))
}

// SubmitGame handles POST /api/game/submit-game
func (h *GameHandler) SubmitGame(w http.ResponseWriter, r *http.Request) {
	var req request.SubmitGameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.BoardID == "" {
		WriteError(w, NewInvalidRequestError("boardId is required"))
		return
	}
	if req.SessionID == "" {
		WriteError(w, NewInvalidRequestError("sessionId is required"))
		return
	}

	playerID, profileID := middleware.Identity(r.Context())

	session, err := h.gameController.SubmitGame(
		r.Context(),
		model.BoardID(req.BoardID),
		model.PlaySessionID(req.SessionID),
		playerID,
		profileID,
		game.GameData{
			TurnHistory: historyFromRequest(req.GameData.TurnHistory),
			TimeElapsed: req.GameData.TimeElapsed,
			StartTime:   req.GameData.StartTime,
			EndTime:     req.GameData.EndTime,
		},
	)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SubmitGameResponse{
		Success: true,
		Score:   response.ScoreFromSession(session),
		Message: "Game recorded",
	})
}

// SaveProgress handles POST /api/game/save-progress
func (h *GameHandler) SaveProgress(w http.ResponseWriter, r *http.Request) {
	var req request.SaveProgressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.SessionID == "" || req.BoardID == "" {
		WriteError(w, NewInvalidRequestError("sessionId and boardId are required"))
		return
	}

	playerID, profileID := middleware.Identity(r.Context())

	correct := make([]model.WordID, len(req.CorrectWords))
	for i, wr := range req.CorrectWords {
		correct[i] = model.WordID(wr)
	}
	wordTurns := make(model.WordTurns, len(req.WordTurns))
	for wr, t := range req.WordTurns {
		wordTurns[model.WordID(wr)] = t
	}

	progress := &model.Progress{
		PlaySessionID: model.PlaySessionID(req.SessionID),
		PlayerID:      playerID,
		ProfileID:     profileID,
		BoardID:       model.BoardID(req.BoardID),
		CurrentTurn:   req.CurrentTurn,
		CorrectWords:  correct,
		WordTurns:     wordTurns,
		TurnHistory:   historyFromRequest(req.TurnHistory),
		Placements:    placementsFromRequest(req.Placements),
		StartTime:     req.StartTime,
	}

	if err := h.gameController.SaveProgress(r.Context(), progress); err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.SaveProgressResponse{Success: true})
}

// LoadProgress handles GET /api/game/load-progress/{sessionId}
func (h *GameHandler) LoadProgress(w http.ResponseWriter, r *http.Request) {
	sessionID := model.PlaySessionID(mux.Vars(r)["sessionId"])

	progress, err := h.gameController.LoadProgress(r.Context(), sessionID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.ProgressFromModel(progress))
}

// FindProgress handles GET /api/game/find-progress/{boardId}
func (h *GameHandler) FindProgress(w http.ResponseWriter, r *http.Request) {
	boardID := model.BoardID(mux.Vars(r)["boardId"])
	playerID, profileID := middleware.Identity(r.Context())

	progress, err := h.gameController.FindProgress(r.Context(), playerID, profileID, boardID)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.ProgressFromModel(progress))
}

// ClearProgress handles DELETE /api/game/clear-progress/{sessionId}
func (h *GameHandler) ClearProgress(w http.ResponseWriter, r *http.Request) {
	sessionID := model.PlaySessionID(mux.Vars(r)["sessionId"])

	if err := h.gameController.ClearProgress(r.Context(), sessionID); err != nil {
		WriteError(w, err)
		return
	}

	response.NoContent(w)
}

// placementsFromRequest converts the wire placement map to model types
func placementsFromRequest(in map[string]string) model.Placements {
	out := make(model.Placements, len(in))
	for word, img := range in {
		out[model.WordID(word)] = model.ImageID(img)
	}
	return out
}

// historyFromRequest converts wire turn history entries to model types
func historyFromRequest(in []request.TurnHistoryEntry) []model.TurnHistoryEntry {
	out := make([]model.TurnHistoryEntry, len(in))
	for i, e := range in {
		out[i] = model.TurnHistoryEntry{
			Turn:              e.Turn,
			CorrectCount:      e.CorrectCount,
			IncorrectCount:    e.IncorrectCount,
			CumulativeCorrect: e.CumulativeCorrect,
			Placements:        placementsFromRequest(e.Placements),
		}
	}
	return out
}
