package handler

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/wordsnpics/wordsnpics/internal/api/response"
	"github.com/wordsnpics/wordsnpics/internal/model"
	"github.com/wordsnpics/wordsnpics/internal/services/board"
)

// PuzzleHandler serves redacted puzzle views
type PuzzleHandler struct {
	boardService *board.Service
}

// NewPuzzleHandler creates a new puzzle handler
func NewPuzzleHandler(boardService *board.Service) *PuzzleHandler {
	return &PuzzleHandler{boardService: boardService}
}

// GetDaily handles GET /api/puzzle/daily
func (h *PuzzleHandler) GetDaily(w http.ResponseWriter, r *http.Request) {
	b, err := h.boardService.GetDailyBoard(r.Context())
	if err != nil {
		WriteError(w, err)
		return
	}

	resp := response.PuzzleFromClientBoard(h.boardService.ClientPuzzle(b))
	response.JSON(w, http.StatusOK, resp)
}

// Get handles GET /api/puzzle/{id}
func (h *PuzzleHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := model.BoardID(mux.Vars(r)["id"])

	b, err := h.boardService.GetBoard(r.Context(), id)
	if err != nil {
		WriteError(w, err)
		return
	}

	resp := response.PuzzleFromClientBoard(h.boardService.ClientPuzzle(b))
	response.JSON(w, http.StatusOK, resp)
}
