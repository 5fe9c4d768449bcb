package memory

import (
	"context"
	"sync"

	"github.com/wordsnpics/wordsnpics/internal/model"
	"github.com/wordsnpics/wordsnpics/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	players           map[model.PlayerID]*model.Player
	registeredPlayers map[model.PlayerID]*model.RegisteredPlayer
	usernameIndex     map[string]model.PlayerID
	profiles          map[model.ProfileID]*model.Profile
	boards            map[model.BoardID]*model.Board
	boardsByDate      map[string]model.BoardID
	boardOrder        []model.BoardID
	sessions          map[model.GameSessionID]*model.GameSession
	sessionsByPlay    map[playKey]model.GameSessionID
	progress          map[model.PlaySessionID]*model.Progress
}

type playKey struct {
	playSessionID model.PlaySessionID
	boardID       model.BoardID
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		players:           make(map[model.PlayerID]*model.Player),
		registeredPlayers: make(map[model.PlayerID]*model.RegisteredPlayer),
		usernameIndex:     make(map[string]model.PlayerID),
		profiles:          make(map[model.ProfileID]*model.Profile),
		boards:            make(map[model.BoardID]*model.Board),
		boardsByDate:      make(map[string]model.BoardID),
		sessions:          make(map[model.GameSessionID]*model.GameSession),
		sessionsByPlay:    make(map[playKey]model.GameSessionID),
		progress:          make(map[model.PlaySessionID]*model.Progress),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Player operations

func (s *Storage) SavePlayer(ctx context.Context, player *model.Player) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.players[player.ID] = player
	return nil
}

func (s *Storage) GetPlayer(ctx context.Context, id model.PlayerID) (*model.Player, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	player, ok := s.players[id]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	return player, nil
}

func (s *Storage) DeletePlayer(ctx context.Context, id model.PlayerID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.players, id)
	return nil
}

// Registered player operations

func (s *Storage) SaveRegisteredPlayer(ctx context.Context, rp *model.RegisteredPlayer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.registeredPlayers[rp.PlayerID] = rp
	s.usernameIndex[rp.Username] = rp.PlayerID
	return nil
}

func (s *Storage) GetRegisteredPlayer(ctx context.Context, playerID model.PlayerID) (*model.RegisteredPlayer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rp, ok := s.registeredPlayers[playerID]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	return rp, nil
}

func (s *Storage) GetRegisteredPlayerByUsername(ctx context.Context, username string) (*model.RegisteredPlayer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	playerID, ok := s.usernameIndex[username]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	rp, ok := s.registeredPlayers[playerID]
	if !ok {
		return nil, model.ErrPlayerNotFound
	}
	return rp, nil
}

// Profile operations

func (s *Storage) SaveProfile(ctx context.Context, profile *model.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.profiles[profile.ID] = profile
	return nil
}

func (s *Storage) GetProfile(ctx context.Context, id model.ProfileID) (*model.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	profile, ok := s.profiles[id]
	if !ok {
		return nil, model.ErrProfileNotFound
	}
	return profile, nil
}

func (s *Storage) GetProfilesForPlayer(ctx context.Context, playerID model.PlayerID) ([]*model.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var profiles []*model.Profile
	for _, p := range s.profiles {
		if p.PlayerID == playerID {
			profiles = append(profiles, p)
		}
	}
	return profiles, nil
}

// Board operations

func (s *Storage) SaveBoard(ctx context.Context, board *model.Board) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.boards[board.ID]; !exists {
		s.boardOrder = append(s.boardOrder, board.ID)
	}
	s.boards[board.ID] = board
	if board.PuzzleDate != "" {
		s.boardsByDate[board.PuzzleDate] = board.ID
	}
	return nil
}

func (s *Storage) GetBoard(ctx context.Context, id model.BoardID) (*model.Board, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	board, ok := s.boards[id]
	if !ok {
		return nil, model.ErrBoardNotFound
	}
	return board, nil
}

func (s *Storage) GetBoardByDate(ctx context.Context, date string) (*model.Board, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.boardsByDate[date]
	if !ok {
		return nil, model.ErrNoDailyBoard
	}
	board, ok := s.boards[id]
	if !ok {
		return nil, model.ErrNoDailyBoard
	}
	return board, nil
}

func (s *Storage) ListBoardIDs(ctx context.Context) ([]model.BoardID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]model.BoardID, len(s.boardOrder))
	copy(ids, s.boardOrder)
	return ids, nil
}

// Game session operations

func (s *Storage) SaveGameSession(ctx context.Context, session *model.GameSession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[session.ID] = session
	s.sessionsByPlay[playKey{session.PlaySessionID, session.BoardID}] = session.ID
	return nil
}

func (s *Storage) GetGameSession(ctx context.Context, id model.GameSessionID) (*model.GameSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[id]
	if !ok {
		return nil, model.ErrGameNotFound
	}
	return session, nil
}

func (s *Storage) GetGameSessionByPlay(ctx context.Context, playSessionID model.PlaySessionID, boardID model.BoardID) (*model.GameSession, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.sessionsByPlay[playKey{playSessionID, boardID}]
	if !ok {
		return nil, model.ErrGameNotFound
	}
	session, ok := s.sessions[id]
	if !ok {
		return nil, model.ErrGameNotFound
	}
	return session, nil
}

// Progress operations

func (s *Storage) SaveProgress(ctx context.Context, progress *model.Progress) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.progress[progress.PlaySessionID] = progress
	return nil
}

func (s *Storage) GetProgress(ctx context.Context, playSessionID model.PlaySessionID) (*model.Progress, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	progress, ok := s.progress[playSessionID]
	if !ok {
		return nil, model.ErrProgressNotFound
	}
	return progress, nil
}

func (s *Storage) FindProgress(ctx context.Context, playerID model.PlayerID, profileID model.ProfileID, boardID model.BoardID) (*model.Progress, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var latest *model.Progress
	for _, p := range s.progress {
		if p.PlayerID != playerID || p.ProfileID != profileID || p.BoardID != boardID {
			continue
		}
		// Duplicates can exist historically; the newest snapshot wins
		if latest == nil || p.LastSaved.After(latest.LastSaved) {
			latest = p
		}
	}
	if latest == nil {
		return nil, model.ErrProgressNotFound
	}
	return latest, nil
}

func (s *Storage) DeleteProgress(ctx context.Context, playSessionID model.PlaySessionID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.progress, playSessionID)
	return nil
}
