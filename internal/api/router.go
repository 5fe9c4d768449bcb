package api

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/wordsnpics/wordsnpics/internal/api/handler"
	"github.com/wordsnpics/wordsnpics/internal/api/middleware"
	appmiddleware "github.com/wordsnpics/wordsnpics/internal/middleware"
	"github.com/wordsnpics/wordsnpics/internal/services/auth"
	"github.com/wordsnpics/wordsnpics/internal/services/board"
	"github.com/wordsnpics/wordsnpics/internal/services/game"
)

// RouterConfig holds configuration for the API router
type RouterConfig struct {
	Logger         *slog.Logger
	AuthService    *auth.Service
	BoardService   *board.Service
	GameController *game.Controller
}

// NewRouter creates a new API router with all routes configured
func NewRouter(cfg RouterConfig) http.Handler {
	r := mux.NewRouter()

	// Create handlers
	playerHandler := handler.NewPlayerHandler(cfg.AuthService)
	puzzleHandler := handler.NewPuzzleHandler(cfg.BoardService)
	gameHandler := handler.NewGameHandler(cfg.GameController)

	// Create middleware
	authMiddleware := middleware.Auth(cfg.AuthService)
	optionalAuthMiddleware := middleware.OptionalAuth(cfg.AuthService)
	loggingMiddleware := appmiddleware.Logging(cfg.Logger)
	recoveryMiddleware := middleware.Recovery(cfg.Logger)

	// API subrouter with common middleware
	api := r.PathPrefix("/api").Subrouter()
	api.Use(recoveryMiddleware)
	api.Use(loggingMiddleware)

	// Player routes (no auth required for creating players/logging in)
	api.HandleFunc("/players/guest", playerHandler.CreateGuest).Methods(http.MethodPost)
	api.HandleFunc("/players/register", playerHandler.Register).Methods(http.MethodPost)
	api.HandleFunc("/players/login", playerHandler.Login).Methods(http.MethodPost)

	// Protected player routes
	playerProtected := api.PathPrefix("/players").Subrouter()
	playerProtected.Use(authMiddleware)
	playerProtected.HandleFunc("/me", playerHandler.GetMe).Methods(http.MethodGet)
	playerProtected.HandleFunc("/profiles", playerHandler.CreateProfile).Methods(http.MethodPost)
	playerProtected.HandleFunc("/profiles", playerHandler.ListProfiles).Methods(http.MethodGet)

	// Puzzle routes (anonymous play allowed)
	api.HandleFunc("/puzzle/daily", puzzleHandler.GetDaily).Methods(http.MethodGet)
	api.HandleFunc("/puzzle/{id}", puzzleHandler.Get).Methods(http.MethodGet)

	// Game routes; identity is optional and used only for attribution
	gameRoutes := api.PathPrefix("/game").Subrouter()
	gameRoutes.Use(optionalAuthMiddleware)
	gameRoutes.HandleFunc("/submit-turn", gameHandler.SubmitTurn).Methods(http.MethodPost)
	gameRoutes.HandleFunc("/submit-game", gameHandler.SubmitGame).Methods(http.MethodPost)
	gameRoutes.HandleFunc("/save-progress", gameHandler.SaveProgress).Methods(http.MethodPost)
	gameRoutes.HandleFunc("/load-progress/{sessionId}", gameHandler.LoadProgress).Methods(http.MethodGet)
	gameRoutes.HandleFunc("/find-progress/{boardId}", gameHandler.FindProgress).Methods(http.MethodGet)
	gameRoutes.HandleFunc("/clear-progress/{sessionId}", gameHandler.ClearProgress).Methods(http.MethodDelete)

	// Health check endpoint (no auth)
	api.HandleFunc("/health", healthHandler).Methods(http.MethodGet)

	return r
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status":"ok"}`))
}
