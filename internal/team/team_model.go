package team

import (
	"github.com/DhavalSuthar-24/crickit/internal/player"
	"gorm.io/gorm"
)

// Team is a per-match roster snapshot: eleven (or fewer) named players
// frozen at startMatch time. Score, wickets and overs are always derived
// from the ball event ledger, never written here.
type Team struct {
	gorm.Model
	Name    string       `json:"name" gorm:"not null"`
	Players []TeamPlayer `json:"players,omitempty" gorm:"foreignKey:TeamID"`
}

// TeamPlayer places a player in a team's batting-order position and carries
// the match-day flags.
type TeamPlayer struct {
	gorm.Model
	TeamID   uint          `json:"team_id" gorm:"index;not null"`
	PlayerID uint          `json:"player_id" gorm:"index;not null"`
	Player   player.Player `json:"player" gorm:"foreignKey:PlayerID"`

	BattingOrder   int  `json:"batting_order"` // 1-indexed
	IsCaptain      bool `json:"is_captain" gorm:"default:false"`
	IsViceCaptain  bool `json:"is_vice_captain" gorm:"default:false"`
	IsWicketkeeper bool `json:"is_wicketkeeper" gorm:"default:false"`
}

// HasPlayer reports whether the roster contains the given player.
func (t *Team) HasPlayer(playerID uint) bool {
	for _, tp := range t.Players {
		if tp.PlayerID == playerID {
			return true
		}
	}
	return false
}

// PlayerName resolves a roster player's display name, empty when absent.
func (t *Team) PlayerName(playerID uint) string {
	for _, tp := range t.Players {
		if tp.PlayerID == playerID {
			return tp.Player.Name
		}
	}
	return ""
}
