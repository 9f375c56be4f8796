package match

import (
	"time"

	"github.com/DhavalSuthar-24/crickit/internal/scoring"
	"github.com/DhavalSuthar-24/crickit/internal/team"
	"gorm.io/gorm"
)

type MatchStatus string

const (
	StatusMatchNotStarted MatchStatus = "not_started"
	StatusMatchTossDone   MatchStatus = "toss_done"
	StatusMatchInProgress MatchStatus = "in_progress"
	StatusMatchCompleted  MatchStatus = "completed"
)

type TossDecision string

const (
	TossDecisionBat  TossDecision = "bat"
	TossDecisionBowl TossDecision = "bowl"
)

// BatterSlot names the two ends of the batting pair.
type BatterSlot string

const (
	SlotStriker    BatterSlot = "striker"
	SlotNonStriker BatterSlot = "non_striker"
)

// Match is a limited-overs fixture between two roster snapshots. Scores,
// wickets and overs are NOT stored here: they are folded from the ball
// event ledger on every read. The only mutable fields are the status
// machine, toss, current slot assignments and the final result, and they
// are written exclusively by the scoring service after a successful append.
type Match struct {
	gorm.Model
	OversLimit int         `json:"overs_limit" gorm:"not null"`
	Status     MatchStatus `json:"status" gorm:"index;default:'not_started'"`

	// Toss
	TossWinnerTeamID *uint        `json:"toss_winner_team_id,omitempty" gorm:"index"`
	TossDecision     TossDecision `json:"toss_decision,omitempty"`

	// Live position. ActiveInnings is 1 or 2 once in progress. A nil slot
	// is vacant and blocks deliveries until a batter/bowler is selected.
	ActiveInnings int   `json:"active_innings" gorm:"default:0"`
	StrikerID     *uint `json:"striker_id,omitempty"`
	NonStrikerID  *uint `json:"non_striker_id,omitempty"`
	BowlerID      *uint `json:"bowler_id,omitempty"`

	// Result. Immutable once Status is completed.
	WinningTeamID *uint      `json:"winning_team_id,omitempty" gorm:"index"`
	Tied          bool       `json:"tied" gorm:"default:false"`
	ResultSummary string     `json:"result_summary,omitempty"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`

	Teams []MatchTeam `json:"teams,omitempty" gorm:"foreignKey:MatchID"`
}

// MatchTeam binds a roster snapshot to a match side.
type MatchTeam struct {
	gorm.Model
	MatchID uint      `json:"match_id" gorm:"index;not null"`
	TeamID  uint      `json:"team_id" gorm:"index;not null"`
	Team    team.Team `json:"team" gorm:"foreignKey:TeamID"`
}

// BallEvent is one row of the append-only per-match ledger. Seq is
// monotonic within a match and unique at the database level, so two
// scorers racing an append cannot both win: the second insert violates
// idx_match_seq and is retried against the refreshed state.
type BallEvent struct {
	gorm.Model
	MatchID uint `json:"match_id" gorm:"not null;uniqueIndex:idx_match_seq"`
	Seq     int  `json:"seq" gorm:"not null;uniqueIndex:idx_match_seq"`
	Innings int  `json:"innings" gorm:"not null;index"`

	RunsOffBat int    `json:"runs_off_bat" gorm:"default:0"`
	ExtraRuns  int    `json:"extra_runs" gorm:"default:0"`
	Extras     string `json:"extras" gorm:"default:'none'"`

	IsWicket      bool    `json:"is_wicket" gorm:"default:false"`
	DismissalKind *string `json:"dismissal_kind,omitempty"`
	PlayerOutID   *uint   `json:"player_out_id,omitempty" gorm:"index"`
	FielderID     *uint   `json:"fielder_id,omitempty"`

	StrikerID    uint `json:"striker_id" gorm:"index;not null"`
	NonStrikerID uint `json:"non_striker_id" gorm:"not null"`
	BowlerID     uint `json:"bowler_id" gorm:"index;not null"`

	Commentary string    `json:"commentary,omitempty" gorm:"type:text"`
	Timestamp  time.Time `json:"timestamp"`
}

// ToScoring converts a stored row into the engine's ledger value.
func (e BallEvent) ToScoring() scoring.BallEvent {
	ev := scoring.BallEvent{
		Seq:          e.Seq,
		Innings:      e.Innings,
		RunsOffBat:   e.RunsOffBat,
		ExtraRuns:    e.ExtraRuns,
		Extras:       scoring.ExtrasKind(e.Extras),
		StrikerID:    e.StrikerID,
		NonStrikerID: e.NonStrikerID,
		BowlerID:     e.BowlerID,
		Timestamp:    e.Timestamp,
	}
	if e.IsWicket && e.DismissalKind != nil && e.PlayerOutID != nil {
		w := &scoring.Wicket{
			Kind:        scoring.DismissalKind(*e.DismissalKind),
			PlayerOutID: *e.PlayerOutID,
		}
		if e.FielderID != nil {
			w.FielderID = *e.FielderID
		}
		ev.Wicket = w
	}
	return ev
}

// fromScoring builds a storable row from an engine event.
func fromScoring(matchID uint, ev scoring.BallEvent, commentary string) *BallEvent {
	row := &BallEvent{
		MatchID:      matchID,
		Seq:          ev.Seq,
		Innings:      ev.Innings,
		RunsOffBat:   ev.RunsOffBat,
		ExtraRuns:    ev.ExtraRuns,
		Extras:       string(ev.Extras),
		StrikerID:    ev.StrikerID,
		NonStrikerID: ev.NonStrikerID,
		BowlerID:     ev.BowlerID,
		Commentary:   commentary,
		Timestamp:    ev.Timestamp,
	}
	if ev.Wicket != nil {
		kind := string(ev.Wicket.Kind)
		out := ev.Wicket.PlayerOutID
		row.IsWicket = true
		row.DismissalKind = &kind
		row.PlayerOutID = &out
		if ev.Wicket.FielderID != 0 {
			fielder := ev.Wicket.FielderID
			row.FielderID = &fielder
		}
	}
	return row
}

// Ledger converts stored rows to the engine's view, preserving order.
func Ledger(rows []BallEvent) scoring.Ledger {
	out := make(scoring.Ledger, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.ToScoring())
	}
	return out
}

// BattingTeam resolves which side bats in the given innings from the toss.
// Returns nil before the toss is recorded.
func (m *Match) BattingTeam(innings int) *MatchTeam {
	if m.TossWinnerTeamID == nil || len(m.Teams) != 2 {
		return nil
	}
	winnerBats := m.TossDecision == TossDecisionBat
	for i := range m.Teams {
		isWinner := m.Teams[i].TeamID == *m.TossWinnerTeamID
		batsFirst := isWinner == winnerBats
		if (innings == 1) == batsFirst {
			return &m.Teams[i]
		}
	}
	return nil
}

// BowlingTeam is the side fielding in the given innings.
func (m *Match) BowlingTeam(innings int) *MatchTeam {
	batting := m.BattingTeam(innings)
	if batting == nil {
		return nil
	}
	for i := range m.Teams {
		if m.Teams[i].TeamID != batting.TeamID {
			return &m.Teams[i]
		}
	}
	return nil
}

// PlayerName resolves a display name across both rosters.
func (m *Match) PlayerName(playerID uint) string {
	for i := range m.Teams {
		if name := m.Teams[i].Team.PlayerName(playerID); name != "" {
			return name
		}
	}
	return ""
}
