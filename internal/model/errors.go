package model

import "errors"

// Common errors used across the application
var (
	// Player errors
	ErrPlayerNotFound  = errors.New("player not found")
	ErrProfileNotFound = errors.New("profile not found")

	// Board errors
	ErrBoardNotFound = errors.New("board not found")
	ErrInvalidBoard  = errors.New("invalid board")
	ErrNoDailyBoard  = errors.New("no board for date")

	// Game errors
	ErrInvalidTurn    = errors.New("turn number out of range")
	ErrGameComplete   = errors.New("game is already complete")
	ErrGameNotFound   = errors.New("game session not found")
	ErrWordLocked     = errors.New("word is already confirmed correct")
	ErrUnknownWord    = errors.New("word is not on the board")
	ErrImageFull      = errors.New("image has no remaining capacity")
	ErrGameNotStarted  = errors.New("game has not started")
	ErrGameNotComplete = errors.New("game is not complete")

	// Progress errors
	ErrProgressNotFound = errors.New("progress not found")
)
