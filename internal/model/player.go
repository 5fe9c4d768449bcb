package model

import "time"

// PlayerID uniquely identifies a player
type PlayerID string

// ProfileID uniquely identifies a profile belonging to a player
type ProfileID string

// Player represents a player account. Guests are created implicitly and
// have no credentials.
type Player struct {
	ID          PlayerID  `json:"id"`
	DisplayName string    `json:"display_name"`
	IsGuest     bool      `json:"is_guest"`
	CreatedAt   time.Time `json:"created_at"`
}

// RegisteredPlayer holds the credentials for a non-guest player
type RegisteredPlayer struct {
	PlayerID     PlayerID  `json:"player_id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
}

// Profile is one of a player's named play profiles. Progress and
// finalized sessions are attributed to a (player, profile) pair.
type Profile struct {
	ID        ProfileID `json:"id"`
	PlayerID  PlayerID  `json:"player_id"`
	Name      string    `json:"name"`
	IsDefault bool      `json:"is_default"`
	CreatedAt time.Time `json:"created_at"`
}
