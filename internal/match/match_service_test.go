package match

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/DhavalSuthar-24/crickit/internal/scoring"
)

// fakeMatchRepo is an in-memory MatchRepository. It hands out ids the way
// the database would and keeps ball events in append order.
type fakeMatchRepo struct {
	matches      map[uint]*Match
	events       []BallEvent
	nextMatchID  uint
	nextTeamID   uint
	nextPlayerID uint
}

func newFakeMatchRepo() *fakeMatchRepo {
	return &fakeMatchRepo{matches: make(map[uint]*Match)}
}

func (f *fakeMatchRepo) CreateMatch(m *Match) error {
	f.nextMatchID++
	m.ID = f.nextMatchID
	for i := range m.Teams {
		mt := &m.Teams[i]
		mt.MatchID = m.ID
		f.nextTeamID++
		mt.Team.ID = f.nextTeamID
		mt.TeamID = f.nextTeamID
		for j := range mt.Team.Players {
			tp := &mt.Team.Players[j]
			tp.TeamID = mt.TeamID
			f.nextPlayerID++
			tp.Player.ID = f.nextPlayerID
			tp.PlayerID = f.nextPlayerID
		}
	}
	f.matches[m.ID] = m
	return nil
}

func (f *fakeMatchRepo) GetMatchByID(id uint) (*Match, error) {
	return f.matches[id], nil
}

func (f *fakeMatchRepo) SaveMatch(m *Match) error {
	f.matches[m.ID] = m
	return nil
}

func (f *fakeMatchRepo) GetMatches(filters map[string]interface{}, page, pageSize int) ([]Match, int64, error) {
	var out []Match
	for _, m := range f.matches {
		if status, ok := filters["status"].(string); ok && string(m.Status) != status {
			continue
		}
		out = append(out, *m)
	}
	return out, int64(len(out)), nil
}

func (f *fakeMatchRepo) AppendBallEvent(event *BallEvent) error {
	seq := 0
	for _, e := range f.events {
		if e.MatchID == event.MatchID && e.Seq > seq {
			seq = e.Seq
		}
	}
	event.Seq = seq + 1
	f.events = append(f.events, *event)
	return nil
}

func (f *fakeMatchRepo) ListBallEvents(matchID uint, innings int) ([]BallEvent, error) {
	var out []BallEvent
	for _, e := range f.events {
		if e.MatchID == matchID && (innings == 0 || e.Innings == innings) {
			out = append(out, e)
		}
	}
	return out, nil
}

func (f *fakeMatchRepo) ListBallEventsPage(matchID uint, innings, page, pageSize int) ([]BallEvent, int64, error) {
	all, _ := f.ListBallEvents(matchID, innings)
	total := int64(len(all))
	start := (page - 1) * pageSize
	if start >= len(all) {
		return nil, total, nil
	}
	end := start + pageSize
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

func (f *fakeMatchRepo) WithTransaction(txFunc func(MatchRepository) error) error {
	return txFunc(f)
}

// --- Test fixtures ---

func roster(name string, size int) RosterInput {
	in := RosterInput{Name: name}
	for i := 0; i < size; i++ {
		in.Players = append(in.Players, RosterPlayerInput{
			Name: fmt.Sprintf("%s player %d", name, i+1),
		})
	}
	return in
}

func newTestService() (*ScoringService, *fakeMatchRepo) {
	repo := newFakeMatchRepo()
	return NewScoringService(repo, scoring.DefaultConfig(), nil, nil), repo
}

// playerIDs returns the roster player ids for one side of the match.
func playerIDs(m *Match, side int) []uint {
	var ids []uint
	for _, tp := range m.Teams[side].Team.Players {
		ids = append(ids, tp.PlayerID)
	}
	return ids
}

// beginInnings fills both slots and the bowler so deliveries can be scored.
func beginInnings(t *testing.T, s *ScoringService, matchID uint, striker, nonStriker, bowler uint) {
	t.Helper()
	_, err := s.SelectBatter(matchID, SlotStriker, striker)
	require.NoError(t, err)
	_, err = s.SelectBatter(matchID, SlotNonStriker, nonStriker)
	require.NoError(t, err)
	_, err = s.SelectBowler(matchID, bowler)
	require.NoError(t, err)
}

// startedMatch creates a 1-over match, records the toss (team A bats) and
// opens innings one with team A's first pair against team B's first bowler.
func startedMatch(t *testing.T, s *ScoringService) (*Match, []uint, []uint) {
	t.Helper()
	m, err := s.StartMatch(1, roster("Avondale", 3), roster("Brookside", 3))
	require.NoError(t, err)

	a, b := playerIDs(m, 0), playerIDs(m, 1)

	m, err = s.RecordToss(m.ID, m.Teams[0].TeamID, TossDecisionBat)
	require.NoError(t, err)
	require.Equal(t, StatusMatchTossDone, m.Status)

	beginInnings(t, s, m.ID, a[0], a[1], b[0])

	m, err = s.GetMatch(m.ID)
	require.NoError(t, err)
	require.Equal(t, StatusMatchInProgress, m.Status)
	return m, a, b
}

// --- Lifecycle tests ---

func TestStartMatchValidation(t *testing.T) {
	s, _ := newTestService()

	_, err := s.StartMatch(0, roster("A", 3), roster("B", 3))
	var validation *scoring.ValidationError
	require.ErrorAs(t, err, &validation)

	_, err = s.StartMatch(1, roster("A", 1), roster("B", 3))
	require.ErrorAs(t, err, &validation)

	_, err = s.StartMatch(1, roster("A", 3), roster("B", 12))
	require.ErrorAs(t, err, &validation)
}

func TestStartMatchCreatesRosterSnapshots(t *testing.T) {
	s, _ := newTestService()

	m, err := s.StartMatch(20, roster("Avondale", 11), roster("Brookside", 11))
	require.NoError(t, err)

	assert.Equal(t, StatusMatchNotStarted, m.Status)
	assert.Equal(t, 20, m.OversLimit)
	require.Len(t, m.Teams, 2)
	assert.Len(t, m.Teams[0].Team.Players, 11)
	assert.Equal(t, 1, m.Teams[0].Team.Players[0].BattingOrder)
}

func TestRecordTossGatesAndTransitions(t *testing.T) {
	s, _ := newTestService()
	m, err := s.StartMatch(1, roster("A", 3), roster("B", 3))
	require.NoError(t, err)

	// Unknown team cannot win the toss.
	_, err = s.RecordToss(m.ID, 9999, TossDecisionBat)
	var validation *scoring.ValidationError
	require.ErrorAs(t, err, &validation)

	m, err = s.RecordToss(m.ID, m.Teams[1].TeamID, TossDecisionBowl)
	require.NoError(t, err)
	assert.Equal(t, StatusMatchTossDone, m.Status)
	assert.Equal(t, 1, m.ActiveInnings)
	// B chose to bowl, so A bats first.
	assert.Equal(t, m.Teams[0].TeamID, m.BattingTeam(1).TeamID)

	// A second toss is an invariant violation.
	_, err = s.RecordToss(m.ID, m.Teams[0].TeamID, TossDecisionBat)
	var invariant *scoring.InvariantViolation
	require.ErrorAs(t, err, &invariant)
}

func TestRecordTossUnknownMatch(t *testing.T) {
	s, _ := newTestService()

	_, err := s.RecordToss(42, 1, TossDecisionBat)
	require.ErrorIs(t, err, ErrMatchNotFound)
}

func TestDeliveryRejectedBeforeToss(t *testing.T) {
	s, _ := newTestService()
	m, err := s.StartMatch(1, roster("A", 3), roster("B", 3))
	require.NoError(t, err)

	_, err = s.RecordDelivery(m.ID, 1, scoring.ExtrasNone)
	var precondition *scoring.PreconditionError
	require.ErrorAs(t, err, &precondition)
}

func TestDeliveryRejectedWithVacantSlots(t *testing.T) {
	s, _ := newTestService()
	m, err := s.StartMatch(1, roster("A", 3), roster("B", 3))
	require.NoError(t, err)
	_, err = s.RecordToss(m.ID, m.Teams[0].TeamID, TossDecisionBat)
	require.NoError(t, err)

	_, err = s.RecordDelivery(m.ID, 1, scoring.ExtrasNone)
	var precondition *scoring.PreconditionError
	require.ErrorAs(t, err, &precondition)
}

func TestSelectBatterValidation(t *testing.T) {
	s, _ := newTestService()
	m, err := s.StartMatch(1, roster("A", 3), roster("B", 3))
	require.NoError(t, err)
	a, b := playerIDs(m, 0), playerIDs(m, 1)
	_, err = s.RecordToss(m.ID, m.Teams[0].TeamID, TossDecisionBat)
	require.NoError(t, err)

	// A bowler from the fielding side cannot bat.
	var validation *scoring.ValidationError
	_, err = s.SelectBatter(m.ID, SlotStriker, b[0])
	require.ErrorAs(t, err, &validation)

	_, err = s.SelectBatter(m.ID, SlotStriker, a[0])
	require.NoError(t, err)

	// Same player cannot hold both ends.
	_, err = s.SelectBatter(m.ID, SlotNonStriker, a[0])
	require.ErrorAs(t, err, &validation)
}

func TestSelectBowlerMustBeFielding(t *testing.T) {
	s, _ := newTestService()
	m, err := s.StartMatch(1, roster("A", 3), roster("B", 3))
	require.NoError(t, err)
	a, _ := playerIDs(m, 0), playerIDs(m, 1)
	_, err = s.RecordToss(m.ID, m.Teams[0].TeamID, TossDecisionBat)
	require.NoError(t, err)

	var validation *scoring.ValidationError
	_, err = s.SelectBowler(m.ID, a[0])
	require.ErrorAs(t, err, &validation)
}

// --- Scoring tests ---

func TestDeliveryRotatesStrike(t *testing.T) {
	s, _ := newTestService()
	m, a, _ := startedMatch(t, s)

	m, err := s.RecordDelivery(m.ID, 1, scoring.ExtrasNone)
	require.NoError(t, err)

	require.NotNil(t, m.StrikerID)
	assert.Equal(t, a[1], *m.StrikerID)
	assert.Equal(t, a[0], *m.NonStrikerID)
}

func TestWideAddsPenaltyWithoutAdvancingOver(t *testing.T) {
	s, repo := newTestService()
	m, a, _ := startedMatch(t, s)

	m, err := s.RecordDelivery(m.ID, 1, scoring.ExtrasWide)
	require.NoError(t, err)

	summary, err := s.Summary(m.ID)
	require.NoError(t, err)
	require.Len(t, summary.Innings, 1)
	assert.Equal(t, 2, summary.Innings[0].Runs)
	assert.Equal(t, "0.0", summary.Innings[0].Overs)

	// Nothing to the striker, no ball faced.
	rows, err := repo.ListBallEvents(m.ID, 1)
	require.NoError(t, err)
	fig := scoring.BattingFor(Ledger(rows), a[0])
	assert.Equal(t, 0, fig.Runs)
	assert.Equal(t, 0, fig.BallsFaced)

	// Strike held.
	assert.Equal(t, a[0], *m.StrikerID)
}

func TestDeliveryValidation(t *testing.T) {
	s, _ := newTestService()
	m, _, _ := startedMatch(t, s)

	var validation *scoring.ValidationError
	_, err := s.RecordDelivery(m.ID, 7, scoring.ExtrasNone)
	require.ErrorAs(t, err, &validation)

	_, err = s.RecordDelivery(m.ID, 1, "overthrow")
	require.ErrorAs(t, err, &validation)
}

func TestInningsTurnoverClearsSlots(t *testing.T) {
	s, _ := newTestService()
	m, _, _ := startedMatch(t, s)

	for i := 0; i < 6; i++ {
		_, err := s.RecordDelivery(m.ID, 0, scoring.ExtrasNone)
		require.NoError(t, err)
	}

	m, err := s.GetMatch(m.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, m.ActiveInnings)
	assert.Equal(t, StatusMatchInProgress, m.Status)
	assert.Nil(t, m.StrikerID)
	assert.Nil(t, m.NonStrikerID)
	assert.Nil(t, m.BowlerID)

	// No deliveries until the new side's openers and a bowler are set.
	var precondition *scoring.PreconditionError
	_, err = s.RecordDelivery(m.ID, 0, scoring.ExtrasNone)
	require.ErrorAs(t, err, &precondition)
}

func TestChaseCompletesMidOver(t *testing.T) {
	s, _ := newTestService()
	m, a, b := startedMatch(t, s)

	// First innings: a boundary then dots. 4 runs, target 5.
	_, err := s.RecordDelivery(m.ID, 4, scoring.ExtrasNone)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		_, err = s.RecordDelivery(m.ID, 0, scoring.ExtrasNone)
		require.NoError(t, err)
	}

	beginInnings(t, s, m.ID, b[0], b[1], a[0])

	// A six off the first ball of the chase settles it.
	m, err = s.RecordDelivery(m.ID, 6, scoring.ExtrasNone)
	require.NoError(t, err)

	assert.Equal(t, StatusMatchCompleted, m.Status)
	require.NotNil(t, m.WinningTeamID)
	assert.Equal(t, m.Teams[1].TeamID, *m.WinningTeamID)
	assert.Equal(t, "Brookside won by 10 wickets", m.ResultSummary)
	require.NotNil(t, m.CompletedAt)

	// The ledger is closed for good.
	var invariant *scoring.InvariantViolation
	_, err = s.RecordDelivery(m.ID, 0, scoring.ExtrasNone)
	require.ErrorAs(t, err, &invariant)
}

func TestDefendingSideWins(t *testing.T) {
	s, _ := newTestService()
	m, a, b := startedMatch(t, s)

	_, err := s.RecordDelivery(m.ID, 4, scoring.ExtrasNone)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		_, err = s.RecordDelivery(m.ID, 0, scoring.ExtrasNone)
		require.NoError(t, err)
	}

	beginInnings(t, s, m.ID, b[0], b[1], a[0])
	for i := 0; i < 6; i++ {
		_, err = s.RecordDelivery(m.ID, 0, scoring.ExtrasNone)
		require.NoError(t, err)
	}

	m, err = s.GetMatch(m.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusMatchCompleted, m.Status)
	assert.Equal(t, "Avondale won by 4 runs", m.ResultSummary)
	assert.False(t, m.Tied)
}

func TestTiedMatch(t *testing.T) {
	s, _ := newTestService()
	m, a, b := startedMatch(t, s)

	_, err := s.RecordDelivery(m.ID, 2, scoring.ExtrasNone)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		_, err = s.RecordDelivery(m.ID, 0, scoring.ExtrasNone)
		require.NoError(t, err)
	}

	beginInnings(t, s, m.ID, b[0], b[1], a[0])
	_, err = s.RecordDelivery(m.ID, 2, scoring.ExtrasNone)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		_, err = s.RecordDelivery(m.ID, 0, scoring.ExtrasNone)
		require.NoError(t, err)
	}

	m, err = s.GetMatch(m.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusMatchCompleted, m.Status)
	assert.True(t, m.Tied)
	assert.Nil(t, m.WinningTeamID)
	assert.Equal(t, "Match tied", m.ResultSummary)
}

// --- Dismissal tests ---

func TestDismissalVacatesSlotAndBlocksPlay(t *testing.T) {
	s, _ := newTestService()
	m, a, _ := startedMatch(t, s)

	m, err := s.RecordDismissal(m.ID, scoring.DismissalBowled, a[0], nil)
	require.NoError(t, err)
	assert.Nil(t, m.StrikerID)
	require.NotNil(t, m.NonStrikerID)
	assert.Equal(t, a[1], *m.NonStrikerID)

	var precondition *scoring.PreconditionError
	_, err = s.RecordDelivery(m.ID, 0, scoring.ExtrasNone)
	require.ErrorAs(t, err, &precondition)

	// The dismissed batter cannot return.
	var validation *scoring.ValidationError
	_, err = s.SelectBatter(m.ID, SlotStriker, a[0])
	require.ErrorAs(t, err, &validation)

	// A fresh batter can.
	m, err = s.SelectBatter(m.ID, SlotStriker, a[2])
	require.NoError(t, err)
	require.NotNil(t, m.StrikerID)
	assert.Equal(t, a[2], *m.StrikerID)

	_, err = s.RecordDelivery(m.ID, 0, scoring.ExtrasNone)
	require.NoError(t, err)
}

func TestDismissalRequiresFielderForCatches(t *testing.T) {
	s, _ := newTestService()
	m, a, b := startedMatch(t, s)

	var validation *scoring.ValidationError
	_, err := s.RecordDismissal(m.ID, scoring.DismissalCaught, a[0], nil)
	require.ErrorAs(t, err, &validation)

	fielder := b[1]
	_, err = s.RecordDismissal(m.ID, scoring.DismissalCaught, a[0], &fielder)
	require.NoError(t, err)
}

func TestDismissalPlayerMustBeAtCrease(t *testing.T) {
	s, _ := newTestService()
	m, a, _ := startedMatch(t, s)

	var validation *scoring.ValidationError
	_, err := s.RecordDismissal(m.ID, scoring.DismissalBowled, a[2], nil)
	require.ErrorAs(t, err, &validation)
}

func TestDismissalCountsAsLegalBall(t *testing.T) {
	s, _ := newTestService()
	m, a, _ := startedMatch(t, s)

	_, err := s.RecordDismissal(m.ID, scoring.DismissalBowled, a[0], nil)
	require.NoError(t, err)

	summary, err := s.Summary(m.ID)
	require.NoError(t, err)
	require.Len(t, summary.Innings, 1)
	assert.Equal(t, 1, summary.Innings[0].Wickets)
	assert.Equal(t, "0.1", summary.Innings[0].Overs)
	assert.Equal(t, 0, summary.Innings[0].Runs)
}

// --- Read model tests ---

func TestSummaryShowsTargetDuringChase(t *testing.T) {
	s, _ := newTestService()
	m, a, b := startedMatch(t, s)

	_, err := s.RecordDelivery(m.ID, 4, scoring.ExtrasNone)
	require.NoError(t, err)
	for i := 0; i < 5; i++ {
		_, err = s.RecordDelivery(m.ID, 0, scoring.ExtrasNone)
		require.NoError(t, err)
	}
	beginInnings(t, s, m.ID, b[0], b[1], a[0])
	_, err = s.RecordDelivery(m.ID, 1, scoring.ExtrasNone)
	require.NoError(t, err)

	summary, err := s.Summary(m.ID)
	require.NoError(t, err)
	require.Len(t, summary.Innings, 2)
	assert.Equal(t, 5, summary.Innings[1].Target)
	assert.Equal(t, 1, summary.Innings[1].Runs)
}

func TestScorecardFigures(t *testing.T) {
	s, _ := newTestService()
	m, a, b := startedMatch(t, s)

	_, err := s.RecordDelivery(m.ID, 4, scoring.ExtrasNone)
	require.NoError(t, err)
	_, err = s.RecordDelivery(m.ID, 1, scoring.ExtrasWide)
	require.NoError(t, err)
	_, err = s.RecordDelivery(m.ID, 1, scoring.ExtrasNone)
	require.NoError(t, err)

	card, err := s.BuildScorecard(m.ID)
	require.NoError(t, err)
	require.Len(t, card.Innings, 1)

	require.Len(t, card.Innings[0].Batting, 1, "only batters who faced a ball appear")
	line := card.Innings[0].Batting[0]
	assert.Equal(t, a[0], line.PlayerID)
	assert.Equal(t, 5, line.Runs)
	assert.Equal(t, 2, line.BallsFaced)
	assert.Equal(t, 1, line.Fours)

	require.Len(t, card.Innings[0].Bowling, 1)
	bowling := card.Innings[0].Bowling[0]
	assert.Equal(t, b[0], bowling.PlayerID)
	assert.Equal(t, 7, bowling.RunsConceded)
	assert.Equal(t, 1, bowling.Wides)
}

func TestCommentaryFeedPaging(t *testing.T) {
	s, _ := newTestService()
	m, _, _ := startedMatch(t, s)

	for i := 0; i < 5; i++ {
		_, err := s.RecordDelivery(m.ID, 0, scoring.ExtrasNone)
		require.NoError(t, err)
	}

	rows, total, err := s.CommentaryFeed(m.ID, 1, 1, 2)
	require.NoError(t, err)
	assert.EqualValues(t, 5, total)
	require.Len(t, rows, 2)
	assert.Equal(t, 1, rows[0].Seq)
	assert.NotEmpty(t, rows[0].Commentary)
}

func TestListMatchesFiltersByStatus(t *testing.T) {
	s, _ := newTestService()
	_, _, _ = startedMatch(t, s)
	_, err := s.StartMatch(1, roster("C", 3), roster("D", 3))
	require.NoError(t, err)

	matches, total, err := s.ListMatches(map[string]interface{}{"status": "not_started"}, 1, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, matches, 1)
	assert.Equal(t, StatusMatchNotStarted, matches[0].Status)
}
