package redis

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/wordsnpics/wordsnpics/internal/model"
	"github.com/wordsnpics/wordsnpics/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Player operations

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	data, err := json.Marshal(player)
	if err != nil {
		return err
	}

	key := playerKey(player.ID)

	// Apply TTL only for guest players
	var ttl time.Duration
	if player.IsGuest {
		ttl = s.cfg.GuestPlayerTTL
	}

	return s.client.Set(ctx, key, data, ttl).Err()
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	data, err := s.client.Get(ctx, playerKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}

	var player model.Player
	if err := json.Unmarshal(data, &player); err != nil {
		return nil, err
	}
	return &player, nil
}

func (s *Storage) DeletePlayer(ctx context.Context, id model.PlayerID) error {
	return s.client.Del(ctx, playerKey(id)).Err()
}

// Registered player operations

func (s *Storage) SaveRegisteredPlayer(ctx context.Context, rp *model.RegisteredPlayer) error {
	data, err := json.Marshal(rp)
	if err != nil {
		return err
	}

	// Use pipeline for atomic save + index update
	pipe := s.client.Pipeline()
	pipe.Set(ctx, registeredPlayerKey(rp.PlayerID), data, 0)
	pipe.Set(ctx, usernameIndexKey(rp.Username), string(rp.PlayerID), 0)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetRegisteredPlayer(ctx context.Context, playerID model.PlayerID) (*model.RegisteredPlayer, error) {
	data, err := s.client.Get(ctx, registeredPlayerKey(playerID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}

	var rp model.RegisteredPlayer
	if err := json.Unmarshal(data, &rp); err != nil {
		return nil, err
	}
	return &rp, nil
}

func (s *Storage) GetRegisteredPlayerByUsername(ctx context.Context, username string) (*model.RegisteredPlayer, error) {
	playerIDStr, err := s.client.Get(ctx, usernameIndexKey(username)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrPlayerNotFound
		}
		return nil, err
	}

	return s.GetRegisteredPlayer(ctx, model.PlayerID(playerIDStr))
}

// Profile operations

func (s *Storage) SaveProfile(ctx context.Context, profile *model.Profile) error {
	data, err := json.Marshal(profile)
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, profileKey(profile.ID), data, 0)
	pipe.SAdd(ctx, profilesForPlayerIndexKey(profile.PlayerID), string(profile.ID))
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetProfile(ctx context.Context, id model.ProfileID) (*model.Profile, error) {
	data, err := s.client.Get(ctx, profileKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrProfileNotFound
		}
		return nil, err
	}

	var profile model.Profile
	if err := json.Unmarshal(data, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

func (s *Storage) GetProfilesForPlayer(ctx context.Context, playerID model.PlayerID) ([]*model.Profile, error) {
	ids, err := s.client.SMembers(ctx, profilesForPlayerIndexKey(playerID)).Result()
	if err != nil {
		return nil, err
	}

	var profiles []*model.Profile
	for _, id := range ids {
		profile, err := s.GetProfile(ctx, model.ProfileID(id))
		if err != nil {
			if errors.Is(err, model.ErrProfileNotFound) {
				continue // Stale index entry
			}
			return nil, err
		}
		profiles = append(profiles, profile)
	}
	return profiles, nil
}

// Board operations

func (s *Storage) SaveBoard(ctx context.Context, board *model.Board) error {
	data, err := json.Marshal(board)
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, boardKey(board.ID), data, 0)
	pipe.SAdd(ctx, boardsIndexKey(), string(board.ID))
	if board.PuzzleDate != "" {
		pipe.Set(ctx, boardDateIndexKey(board.PuzzleDate), string(board.ID), 0)
	}
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetBoard(ctx context.Context, id model.BoardID) (*model.Board, error) {
	data, err := s.client.Get(ctx, boardKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrBoardNotFound
		}
		return nil, err
	}

	var board model.Board
	if err := json.Unmarshal(data, &board); err != nil {
		return nil, err
	}
	return &board, nil
}

func (s *Storage) GetBoardByDate(ctx context.Context, date string) (*model.Board, error) {
	id, err := s.client.Get(ctx, boardDateIndexKey(date)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrNoDailyBoard
		}
		return nil, err
	}

	board, err := s.GetBoard(ctx, model.BoardID(id))
	if err != nil {
		if errors.Is(err, model.ErrBoardNotFound) {
			return nil, model.ErrNoDailyBoard
		}
		return nil, err
	}
	return board, nil
}

func (s *Storage) ListBoardIDs(ctx context.Context) ([]model.BoardID, error) {
	members, err := s.client.SMembers(ctx, boardsIndexKey()).Result()
	if err != nil {
		return nil, err
	}
	ids := make([]model.BoardID, len(members))
	for i, m := range members {
		ids[i] = model.BoardID(m)
	}
	return ids, nil
}

// Game session operations

func (s *Storage) SaveGameSession(ctx context.Context, session *model.GameSession) error {
	data, err := json.Marshal(session)
	if err != nil {
		return err
	}

	pipe := s.client.Pipeline()
	pipe.Set(ctx, gameSessionKey(session.ID), data, 0)
	pipe.Set(ctx, playIndexKey(session.PlaySessionID, session.BoardID), string(session.ID), 0)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetGameSession(ctx context.Context, id model.GameSessionID) (*model.GameSession, error) {
	data, err := s.client.Get(ctx, gameSessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrGameNotFound
		}
		return nil, err
	}

	var session model.GameSession
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, err
	}
	return &session, nil
}

func (s *Storage) GetGameSessionByPlay(ctx context.Context, playSessionID model.PlaySessionID, boardID model.BoardID) (*model.GameSession, error) {
	id, err := s.client.Get(ctx, playIndexKey(playSessionID, boardID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrGameNotFound
		}
		return nil, err
	}

	return s.GetGameSession(ctx, model.GameSessionID(id))
}

// Progress operations

func (s *Storage) SaveProgress(ctx context.Context, progress *model.Progress) error {
	data, err := json.Marshal(progress)
	if err != nil {
		return err
	}

	key := progressKey(progress.PlaySessionID)
	indexKey := progressOwnerIndexKey(progress.PlayerID, progress.ProfileID, progress.BoardID)

	// SET on the same key is the upsert; the owner index lets FindProgress
	// locate snapshots without a scan
	pipe := s.client.Pipeline()
	pipe.Set(ctx, key, data, s.cfg.ProgressTTL)
	pipe.SAdd(ctx, indexKey, string(progress.PlaySessionID))
	pipe.Expire(ctx, indexKey, s.cfg.ProgressTTL)
	_, err = pipe.Exec(ctx)
	return err
}

func (s *Storage) GetProgress(ctx context.Context, playSessionID model.PlaySessionID) (*model.Progress, error) {
	data, err := s.client.Get(ctx, progressKey(playSessionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrProgressNotFound
		}
		return nil, err
	}

	var progress model.Progress
	if err := json.Unmarshal(data, &progress); err != nil {
		return nil, err
	}
	return &progress, nil
}

func (s *Storage) FindProgress(ctx context.Context, playerID model.PlayerID, profileID model.ProfileID, boardID model.BoardID) (*model.Progress, error) {
	indexKey := progressOwnerIndexKey(playerID, profileID, boardID)

	ids, err := s.client.SMembers(ctx, indexKey).Result()
	if err != nil {
		return nil, err
	}

	// Historical duplicates are tolerated; the latest snapshot wins
	var latest *model.Progress
	for _, id := range ids {
		progress, err := s.GetProgress(ctx, model.PlaySessionID(id))
		if err != nil {
			if errors.Is(err, model.ErrProgressNotFound) {
				continue // Expired row still in the index
			}
			return nil, err
		}
		if latest == nil || progress.LastSaved.After(latest.LastSaved) {
			latest = progress
		}
	}
	if latest == nil {
		return nil, model.ErrProgressNotFound
	}
	return latest, nil
}

func (s *Storage) DeleteProgress(ctx context.Context, playSessionID model.PlaySessionID) error {
	// Fetch first so the owner index entry can be removed alongside the row.
	// A missing row is a no-op, not an error.
	progress, err := s.GetProgress(ctx, playSessionID)
	if err != nil {
		if errors.Is(err, model.ErrProgressNotFound) {
			return nil
		}
		return err
	}

	indexKey := progressOwnerIndexKey(progress.PlayerID, progress.ProfileID, progress.BoardID)

	pipe := s.client.Pipeline()
	pipe.Del(ctx, progressKey(playSessionID))
	pipe.SRem(ctx, indexKey, string(playSessionID))
	_, err = pipe.Exec(ctx)
	return err
}
