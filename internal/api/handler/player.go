package handler

import (
	"encoding/json"
	"net/http"

	"github.com/wordsnpics/wordsnpics/internal/api/middleware"
	"github.com/wordsnpics/wordsnpics/internal/api/request"
	"github.com/wordsnpics/wordsnpics/internal/api/response"
	"github.com/wordsnpics/wordsnpics/internal/services/auth"
)

// PlayerHandler handles player and profile endpoints
type PlayerHandler struct {
	authService *auth.Service
}

// NewPlayerHandler creates a new player handler
func NewPlayerHandler(authService *auth.Service) *PlayerHandler {
	return &PlayerHandler{authService: authService}
}

// CreateGuest handles POST /api/players/guest
func (h *PlayerHandler) CreateGuest(w http.ResponseWriter, r *http.Request) {
	var req request.CreateGuestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.DisplayName == "" {
		req.DisplayName = "Guest"
	}

	session, err := h.authService.CreateGuestPlayer(r.Context(), req.DisplayName)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.AuthResponseFromSession(session))
}

// Register handles POST /api/players/register
func (h *PlayerHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req request.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.Username == "" || req.Password == "" {
		WriteError(w, NewInvalidRequestError("username and password are required"))
		return
	}
	if req.DisplayName == "" {
		req.DisplayName = req.Username
	}

	session, err := h.authService.RegisterPlayer(r.Context(), req.Username, req.Password, req.DisplayName)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.AuthResponseFromSession(session))
}

// Login handles POST /api/players/login
func (h *PlayerHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req request.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}

	session, err := h.authService.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusOK, response.AuthResponseFromSession(session))
}

// GetMe handles GET /api/players/me
func (h *PlayerHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())
	response.JSON(w, http.StatusOK, response.PlayerFromModel(player))
}

// CreateProfile handles POST /api/players/profiles
func (h *PlayerHandler) CreateProfile(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	var req request.CreateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		WriteError(w, NewInvalidRequestError("invalid request body"))
		return
	}
	if req.Name == "" {
		WriteError(w, NewInvalidRequestError("name is required"))
		return
	}

	profile, err := h.authService.CreateProfile(r.Context(), player.ID, req.Name)
	if err != nil {
		WriteError(w, err)
		return
	}

	response.JSON(w, http.StatusCreated, response.ProfileFromModel(profile))
}

// ListProfiles handles GET /api/players/profiles
func (h *PlayerHandler) ListProfiles(w http.ResponseWriter, r *http.Request) {
	player := middleware.MustGetPlayer(r.Context())

	profiles, err := h.authService.GetProfiles(r.Context(), player.ID)
	if err != nil {
		WriteError(w, err)
		return
	}

	out := make([]response.Profile, len(profiles))
	for i, p := range profiles {
		out[i] = response.ProfileFromModel(p)
	}
	response.JSON(w, http.StatusOK, out)
}
