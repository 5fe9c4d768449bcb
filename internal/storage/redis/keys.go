package redis

import (
	"fmt"

	"github.com/wordsnpics/wordsnpics/internal/model"
)

// Key prefix for all game-related data
const keyPrefix = "wordsnpics"

// Key generation functions for each entity type

// playerKey returns the Redis key for a Player
func playerKey(id model.PlayerID) string {
	return fmt.Sprintf("%s:player:%s", keyPrefix, id)
}

// registeredPlayerKey returns the Redis key for a RegisteredPlayer
func registeredPlayerKey(playerID model.PlayerID) string {
	return fmt.Sprintf("%s:registered_player:%s", keyPrefix, playerID)
}

// usernameIndexKey returns the Redis key for the username -> player_id index
func usernameIndexKey(username string) string {
	return fmt.Sprintf("%s:idx:username:%s", keyPrefix, username)
}

// profileKey returns the Redis key for a Profile
func profileKey(id model.ProfileID) string {
	return fmt.Sprintf("%s:profile:%s", keyPrefix, id)
}

// profilesForPlayerIndexKey returns the Redis key for the SET of a player's profiles
func profilesForPlayerIndexKey(playerID model.PlayerID) string {
	return fmt.Sprintf("%s:idx:profiles_for_player:%s", keyPrefix, playerID)
}

// boardKey returns the Redis key for a Board
func boardKey(id model.BoardID) string {
	return fmt.Sprintf("%s:board:%s", keyPrefix, id)
}

// boardDateIndexKey returns the Redis key for the date -> board_id index
func boardDateIndexKey(date string) string {
	return fmt.Sprintf("%s:idx:board_date:%s", keyPrefix, date)
}

// boardsIndexKey returns the Redis key for the SET of all board ids
func boardsIndexKey() string {
	return fmt.Sprintf("%s:idx:boards", keyPrefix)
}

// gameSessionKey returns the Redis key for a finalized GameSession
func gameSessionKey(id model.GameSessionID) string {
	return fmt.Sprintf("%s:game_session:%s", keyPrefix, id)
}

// playIndexKey returns the Redis key for the (play session, board) -> game session index
func playIndexKey(playSessionID model.PlaySessionID, boardID model.BoardID) string {
	return fmt.Sprintf("%s:idx:play:%s:%s", keyPrefix, playSessionID, boardID)
}

// progressKey returns the Redis key for a Progress snapshot
func progressKey(playSessionID model.PlaySessionID) string {
	return fmt.Sprintf("%s:progress:%s", keyPrefix, playSessionID)
}

// progressOwnerIndexKey returns the Redis key for the SET of progress rows
// saved for a (player, profile, board) triple
func progressOwnerIndexKey(playerID model.PlayerID, profileID model.ProfileID, boardID model.BoardID) string {
	return fmt.Sprintf("%s:idx:progress_owner:%s:%s:%s", keyPrefix, playerID, profileID, boardID)
}
