package storage

import (
	"context"

	"github.com/wordsnpics/wordsnpics/internal/model"
)

// Storage defines the interface for data persistence
type Storage interface {
	// Player operations
	SavePlayer(ctx context.Context, player *model.Player) error
	GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error)
	DeletePlayer(ctx context.Context, id model.PlayerID) error

	// Registered player operations
	SaveRegisteredPlayer(ctx context.Context, rp *model.RegisteredPlayer) error
	GetRegisteredPlayer(ctx context.Context, playerID model.PlayerID) (*model.RegisteredPlayer, error)
	GetRegisteredPlayerByUsername(ctx context.Context, username string) (*model.RegisteredPlayer, error)

	// Profile operations
	SaveProfile(ctx context.Context, profile *model.Profile) error
	GetProfile(ctx context.Context, id model.ProfileID) (*model.Profile, error)
	GetProfilesForPlayer(ctx context.Context, playerID model.PlayerID) ([]*model.Profile, error)

	// Board operations
	SaveBoard(ctx context.Context, board *model.Board) error
	GetBoard(ctx context.Context, id model.BoardID) (*model.Board, error)
	GetBoardByDate(ctx context.Context, date string) (*model.Board, error)
	ListBoardIDs(ctx context.Context) ([]model.BoardID, error)

	// Game session operations (finalized records, immutable once saved)
	SaveGameSession(ctx context.Context, session *model.GameSession) error
	GetGameSession(ctx context.Context, id model.GameSessionID) (*model.GameSession, error)
	GetGameSessionByPlay(ctx context.Context, playSessionID model.PlaySessionID, boardID model.BoardID) (*model.GameSession, error)

	// Progress operations (mutable resume snapshots, upsert by play session)
	SaveProgress(ctx context.Context, progress *model.Progress) error
	GetProgress(ctx context.Context, playSessionID model.PlaySessionID) (*model.Progress, error)
	FindProgress(ctx context.Context, playerID model.PlayerID, profileID model.ProfileID, boardID model.BoardID) (*model.Progress, error)
	DeleteProgress(ctx context.Context, playSessionID model.PlaySessionID) error
}
