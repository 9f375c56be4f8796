package player

import "gorm.io/gorm"

// PlayerRole tags what a player mainly does; it is descriptive only and
// never affects scoring.
type PlayerRole string

const (
	RoleBatter       PlayerRole = "batter"
	RoleBowler       PlayerRole = "bowler"
	RoleAllRounder   PlayerRole = "all_rounder"
	RoleWicketkeeper PlayerRole = "wicketkeeper"
)

// Player is a stateless identity reused across matches. Everything a player
// "has done" in a match is derived from that match's ball event ledger.
type Player struct {
	gorm.Model
	Name string     `json:"name" gorm:"not null;index"`
	Role PlayerRole `json:"role,omitempty" gorm:"default:'batter'"`
}
