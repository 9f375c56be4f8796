package match

import (
	"github.com/DhavalSuthar-24/crickit/internal/scoring"
)

// The read side: every view below is a fresh fold over the ledger, so a
// summary, a scorecard and a commentary feed rendered from the same
// snapshot can never disagree with each other or with the stored totals
// (there are none).

// InningsSummary is one innings line on the summary board.
type InningsSummary struct {
	Number        int    `json:"number"`
	BattingTeamID uint   `json:"batting_team_id"`
	BattingTeam   string `json:"batting_team"`
	Runs          int    `json:"runs"`
	Wickets       int    `json:"wickets"`
	Overs         string `json:"overs"`
	Target        int    `json:"target,omitempty"` // chase innings only
}

// MatchSummary is the external snapshot consumers see; no internal event
// representation crosses this boundary.
type MatchSummary struct {
	MatchID       uint             `json:"match_id"`
	Status        MatchStatus      `json:"status"`
	OversLimit    int              `json:"overs_limit"`
	ActiveInnings int              `json:"active_innings,omitempty"`
	Innings       []InningsSummary `json:"innings"`
	Tied          bool             `json:"tied,omitempty"`
	WinningTeamID *uint            `json:"winning_team_id,omitempty"`
	Result        string           `json:"result,omitempty"`

	StrikerID    *uint `json:"striker_id,omitempty"`
	NonStrikerID *uint `json:"non_striker_id,omitempty"`
	BowlerID     *uint `json:"bowler_id,omitempty"`
}

// BattingLine is a batting figure with the player's display name attached.
type BattingLine struct {
	scoring.BattingFigures
	PlayerName string `json:"player_name"`
}

// BowlingLine is a bowling figure with the player's display name attached.
type BowlingLine struct {
	scoring.BowlingFigures
	PlayerName string `json:"player_name"`
}

// InningsScorecard is the full card for one innings.
type InningsScorecard struct {
	Number      int                  `json:"number"`
	BattingTeam string               `json:"batting_team"`
	BowlingTeam string               `json:"bowling_team"`
	Batting     []BattingLine        `json:"batting"`
	Bowling     []BowlingLine        `json:"bowling"`
	Total       scoring.InningsState `json:"total"`
	Overs       string               `json:"overs"`
}

// Scorecard is both innings' cards.
type Scorecard struct {
	MatchID uint               `json:"match_id"`
	Status  MatchStatus        `json:"status"`
	Result  string             `json:"result,omitempty"`
	Innings []InningsScorecard `json:"innings"`
}

// GetMatch returns the stored match with rosters.
func (s *ScoringService) GetMatch(matchID uint) (*Match, error) {
	return s.getMatch(matchID)
}

// ListMatches returns a filtered, paginated match listing.
func (s *ScoringService) ListMatches(filters map[string]interface{}, page, pageSize int) ([]Match, int64, error) {
	return s.repo.GetMatches(filters, page, pageSize)
}

// Summary folds the ledger into the display summary.
func (s *ScoringService) Summary(matchID uint) (*MatchSummary, error) {
	m, err := s.getMatch(matchID)
	if err != nil {
		return nil, err
	}
	return s.summarize(m)
}

func (s *ScoringService) summarize(m *Match) (*MatchSummary, error) {
	summary := &MatchSummary{
		MatchID:       m.ID,
		Status:        m.Status,
		OversLimit:    m.OversLimit,
		ActiveInnings: m.ActiveInnings,
		Tied:          m.Tied,
		WinningTeamID: m.WinningTeamID,
		Result:        m.ResultSummary,
		StrikerID:     m.StrikerID,
		NonStrikerID:  m.NonStrikerID,
		BowlerID:      m.BowlerID,
	}
	if m.Status == StatusMatchNotStarted {
		return summary, nil
	}

	rows, err := s.repo.ListBallEvents(m.ID, 0)
	if err != nil {
		return nil, err
	}
	ledger := Ledger(rows)

	for innings := 1; innings <= 2; innings++ {
		batting := m.BattingTeam(innings)
		if batting == nil || (innings == 2 && m.ActiveInnings < 2) {
			break
		}
		state := scoring.FoldInnings(ledger.Innings(innings))
		line := InningsSummary{
			Number:        innings,
			BattingTeamID: batting.TeamID,
			BattingTeam:   batting.Team.Name,
			Runs:          state.Runs,
			Wickets:       state.Wickets,
			Overs:         scoring.OversNotation(state.LegalBalls),
		}
		if innings == 2 {
			line.Target = ledger.Innings(1).TotalRuns() + 1
		}
		summary.Innings = append(summary.Innings, line)
	}
	return summary, nil
}

// BuildScorecard folds per-player batting and bowling figures for every
// innings played so far.
func (s *ScoringService) BuildScorecard(matchID uint) (*Scorecard, error) {
	m, err := s.getMatch(matchID)
	if err != nil {
		return nil, err
	}

	card := &Scorecard{MatchID: m.ID, Status: m.Status, Result: m.ResultSummary}
	if m.Status == StatusMatchNotStarted {
		return card, nil
	}

	rows, err := s.repo.ListBallEvents(m.ID, 0)
	if err != nil {
		return nil, err
	}
	ledger := Ledger(rows)

	for innings := 1; innings <= 2; innings++ {
		batting := m.BattingTeam(innings)
		bowling := m.BowlingTeam(innings)
		if batting == nil || (innings == 2 && m.ActiveInnings < 2) {
			break
		}
		sub := ledger.Innings(innings)

		ic := InningsScorecard{
			Number:      innings,
			BattingTeam: batting.Team.Name,
			BowlingTeam: bowling.Team.Name,
			Total:       scoring.FoldInnings(sub),
		}
		ic.Overs = scoring.OversNotation(ic.Total.LegalBalls)

		// Batting lines in roster order, only for players who appeared.
		for _, tp := range batting.Team.Players {
			fig := scoring.BattingFor(sub, tp.PlayerID)
			if fig.BallsFaced == 0 && !fig.Out && len(sub.ByStriker(tp.PlayerID)) == 0 {
				continue
			}
			ic.Batting = append(ic.Batting, BattingLine{
				BattingFigures: fig,
				PlayerName:     tp.Player.Name,
			})
		}

		// Bowling lines for everyone who sent one down.
		for _, tp := range bowling.Team.Players {
			if len(sub.ByBowler(tp.PlayerID)) == 0 {
				continue
			}
			ic.Bowling = append(ic.Bowling, BowlingLine{
				BowlingFigures: scoring.BowlingFor(sub, tp.PlayerID, s.cfg),
				PlayerName:     tp.Player.Name,
			})
		}

		card.Innings = append(card.Innings, ic)
	}
	return card, nil
}

// CommentaryFeed pages through the stored ball-by-ball text.
func (s *ScoringService) CommentaryFeed(matchID uint, innings, page, pageSize int) ([]BallEvent, int64, error) {
	if _, err := s.getMatch(matchID); err != nil {
		return nil, 0, err
	}
	return s.repo.ListBallEventsPage(matchID, innings, page, pageSize)
}
