package match

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/DhavalSuthar-24/crickit/internal/player"
	"github.com/DhavalSuthar-24/crickit/internal/scoring"
	"github.com/DhavalSuthar-24/crickit/internal/team"
	"github.com/DhavalSuthar-24/crickit/pkg/contracts/events"
	"github.com/DhavalSuthar-24/crickit/pkg/metrics"
	"go.uber.org/zap"
)

// ErrMatchNotFound is returned when no match exists for the requested id.
var ErrMatchNotFound = errors.New("match not found")

// LivePublisher fans a fresh match snapshot out to display consumers and
// announces completed matches downstream. Implementations must never block
// the scoring path; failures are logged, not returned.
type LivePublisher interface {
	PublishSnapshot(ctx context.Context, matchID uint, snapshot interface{})
	PublishCompleted(ctx context.Context, ev events.MatchCompleted)
}

// ScoringService applies scoring actions to a match: it validates against
// the current snapshot, appends to the ledger, refolds the derived state
// and persists the resulting match. One mutex per match keeps appends
// strictly sequential even with several scorer clients connected.
type ScoringService struct {
	repo MatchRepository
	cfg  scoring.Config
	live LivePublisher // may be nil
	log  *zap.Logger

	locks sync.Map // match id -> *sync.Mutex
}

// NewScoringService creates a ScoringService.
func NewScoringService(repo MatchRepository, cfg scoring.Config, live LivePublisher, log *zap.Logger) *ScoringService {
	if log == nil {
		log = zap.NewNop()
	}
	return &ScoringService{repo: repo, cfg: cfg, live: live, log: log}
}

func (s *ScoringService) lock(matchID uint) *sync.Mutex {
	mu, _ := s.locks.LoadOrStore(matchID, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

// --- Inputs ---

// RosterPlayerInput is one named player in a starting roster.
type RosterPlayerInput struct {
	Name           string
	Role           string
	IsCaptain      bool
	IsViceCaptain  bool
	IsWicketkeeper bool
}

// RosterInput is a team name plus its fixed player list for the match.
type RosterInput struct {
	Name    string
	Players []RosterPlayerInput
}

// --- Match lifecycle ---

// StartMatch freezes two roster snapshots and creates the match in
// not_started state.
func (s *ScoringService) StartMatch(oversLimit int, team1, team2 RosterInput) (*Match, error) {
	if oversLimit < 1 {
		return nil, scoring.Validationf("overs limit must be at least 1")
	}
	for _, r := range []RosterInput{team1, team2} {
		if len(r.Players) < 2 || len(r.Players) > 11 {
			return nil, scoring.Validationf("team %q must have between 2 and 11 players", r.Name)
		}
	}

	m := &Match{
		OversLimit: oversLimit,
		Status:     StatusMatchNotStarted,
		Teams: []MatchTeam{
			{Team: buildTeam(team1)},
			{Team: buildTeam(team2)},
		},
	}
	if err := s.repo.CreateMatch(m); err != nil {
		return nil, err
	}
	s.log.Info("match started",
		zap.Uint("match_id", m.ID),
		zap.Int("overs_limit", oversLimit))
	return s.repo.GetMatchByID(m.ID)
}

func buildTeam(in RosterInput) team.Team {
	t := team.Team{Name: in.Name}
	for i, p := range in.Players {
		role := player.PlayerRole(p.Role)
		if p.Role == "" {
			role = player.RoleBatter
		}
		t.Players = append(t.Players, team.TeamPlayer{
			Player:         player.Player{Name: p.Name, Role: role},
			BattingOrder:   i + 1,
			IsCaptain:      p.IsCaptain,
			IsViceCaptain:  p.IsViceCaptain,
			IsWicketkeeper: p.IsWicketkeeper,
		})
	}
	return t
}

// RecordToss records the toss outcome and opens innings one.
func (s *ScoringService) RecordToss(matchID, winnerTeamID uint, decision TossDecision) (*Match, error) {
	mu := s.lock(matchID)
	mu.Lock()
	defer mu.Unlock()

	m, err := s.getMatch(matchID)
	if err != nil {
		return nil, err
	}
	if m.Status != StatusMatchNotStarted {
		return nil, scoring.Invariantf("toss already recorded for match %d", matchID)
	}
	if decision != TossDecisionBat && decision != TossDecisionBowl {
		return nil, scoring.Validationf("unknown toss decision %q", decision)
	}
	if !m.hasTeam(winnerTeamID) {
		return nil, scoring.Validationf("team %d is not part of match %d", winnerTeamID, matchID)
	}

	m.TossWinnerTeamID = &winnerTeamID
	m.TossDecision = decision
	m.Status = StatusMatchTossDone
	m.ActiveInnings = 1
	if err := s.repo.SaveMatch(m); err != nil {
		return nil, err
	}
	s.publishSnapshot(m)
	return m, nil
}

// SelectBatter fills a batting slot: the openers before play, or the
// replacement after a dismissal vacated an end.
func (s *ScoringService) SelectBatter(matchID uint, slot BatterSlot, playerID uint) (*Match, error) {
	mu := s.lock(matchID)
	mu.Lock()
	defer mu.Unlock()

	m, err := s.getMatch(matchID)
	if err != nil {
		return nil, err
	}
	if err := s.checkSelectable(m); err != nil {
		return nil, err
	}
	if slot != SlotStriker && slot != SlotNonStriker {
		return nil, scoring.Validationf("unknown batter slot %q", slot)
	}

	batting := m.BattingTeam(m.ActiveInnings)
	if !batting.Team.HasPlayer(playerID) {
		return nil, scoring.Validationf("player %d is not in the batting side's roster", playerID)
	}

	rows, err := s.repo.ListBallEvents(m.ID, m.ActiveInnings)
	if err != nil {
		return nil, err
	}
	if Ledger(rows).IsDismissed(playerID) {
		return nil, scoring.Validationf("player %d has already been dismissed this innings", playerID)
	}

	other := m.NonStrikerID
	target := &m.StrikerID
	if slot == SlotNonStriker {
		other = m.StrikerID
		target = &m.NonStrikerID
	}
	if other != nil && *other == playerID {
		return nil, scoring.Validationf("player %d already occupies the other end", playerID)
	}
	if *target != nil && m.Status == StatusMatchInProgress {
		return nil, scoring.Validationf("%s slot is already occupied", slot)
	}

	*target = &playerID
	s.maybeBeginPlay(m)
	if err := s.repo.SaveMatch(m); err != nil {
		return nil, err
	}
	s.publishSnapshot(m)
	return m, nil
}

// SelectBowler sets the bowler for the coming deliveries.
func (s *ScoringService) SelectBowler(matchID, playerID uint) (*Match, error) {
	mu := s.lock(matchID)
	mu.Lock()
	defer mu.Unlock()

	m, err := s.getMatch(matchID)
	if err != nil {
		return nil, err
	}
	if err := s.checkSelectable(m); err != nil {
		return nil, err
	}

	bowling := m.BowlingTeam(m.ActiveInnings)
	if !bowling.Team.HasPlayer(playerID) {
		return nil, scoring.Validationf("player %d is not in the bowling side's roster", playerID)
	}

	m.BowlerID = &playerID
	s.maybeBeginPlay(m)
	if err := s.repo.SaveMatch(m); err != nil {
		return nil, err
	}
	s.publishSnapshot(m)
	return m, nil
}

// RecordDelivery validates and appends one delivery, then refolds the
// match. Runs are the runs physically scored off the ball; the classifier
// decides whether they are the striker's or extras.
func (s *ScoringService) RecordDelivery(matchID uint, runs int, extras scoring.ExtrasKind) (*Match, error) {
	mu := s.lock(matchID)
	mu.Lock()
	defer mu.Unlock()

	m, err := s.getMatch(matchID)
	if err != nil {
		return nil, err
	}
	if runs < 0 || runs > 6 {
		return nil, scoring.Validationf("runs must be between 0 and 6, got %d", runs)
	}
	if extras == "" {
		extras = scoring.ExtrasNone
	}
	if !scoring.ValidExtras(extras) {
		return nil, scoring.Validationf("unknown extras kind %q", extras)
	}
	if err := s.checkScoreable(m); err != nil {
		return nil, err
	}

	ev := scoring.NewDelivery(m.ActiveInnings, runs, extras,
		*m.StrikerID, *m.NonStrikerID, *m.BowlerID, time.Now())
	commentary := scoring.Commentary(ev, m.PlayerName(ev.StrikerID), m.PlayerName(ev.BowlerID))

	if err := s.repo.AppendBallEvent(fromScoring(m.ID, ev, commentary)); err != nil {
		return nil, err
	}
	metrics.DeliveriesRecorded.Inc()
	return s.afterAppend(m)
}

// RecordDismissal appends a wicket ball (a legal delivery with no runs) and
// vacates the dismissed batter's slot.
func (s *ScoringService) RecordDismissal(matchID uint, kind scoring.DismissalKind, playerOutID uint, fielderID *uint) (*Match, error) {
	mu := s.lock(matchID)
	mu.Lock()
	defer mu.Unlock()

	m, err := s.getMatch(matchID)
	if err != nil {
		return nil, err
	}
	if !scoring.ValidDismissal(kind) {
		return nil, scoring.Validationf("unknown dismissal kind %q", kind)
	}
	if scoring.NeedsFielder(kind) && fielderID == nil {
		return nil, scoring.Validationf("dismissal %q requires a fielder", kind)
	}
	if err := s.checkScoreable(m); err != nil {
		return nil, err
	}
	if playerOutID != *m.StrikerID && playerOutID != *m.NonStrikerID {
		return nil, scoring.Validationf("player %d is not at the crease", playerOutID)
	}

	rows, err := s.repo.ListBallEvents(m.ID, m.ActiveInnings)
	if err != nil {
		return nil, err
	}
	if Ledger(rows).Wickets() >= 10 {
		return nil, scoring.Invariantf("ten wickets have already fallen this innings")
	}

	ev := scoring.NewDelivery(m.ActiveInnings, 0, scoring.ExtrasNone,
		*m.StrikerID, *m.NonStrikerID, *m.BowlerID, time.Now())
	ev.Wicket = &scoring.Wicket{Kind: kind, PlayerOutID: playerOutID}
	if fielderID != nil {
		ev.Wicket.FielderID = *fielderID
	}
	commentary := scoring.Commentary(ev, m.PlayerName(playerOutID), m.PlayerName(ev.BowlerID))

	if err := s.repo.AppendBallEvent(fromScoring(m.ID, ev, commentary)); err != nil {
		return nil, err
	}
	metrics.DeliveriesRecorded.Inc()
	return s.afterAppend(m)
}

// --- Post-append refold ---

// afterAppend recomputes everything derived from the ledger and persists
// the mutable match fields: slot assignments, innings turnover, completion.
func (s *ScoringService) afterAppend(m *Match) (*Match, error) {
	rows, err := s.repo.ListBallEvents(m.ID, 0)
	if err != nil {
		return nil, err
	}
	ledger := Ledger(rows)

	prog := scoring.FoldProgression(ledger.Innings(m.ActiveInnings))
	m.StrikerID = slotPtr(prog.StrikerID)
	m.NonStrikerID = slotPtr(prog.NonStrikerID)

	out := scoring.Resolve(ledger, m.OversLimit)
	switch {
	case out.Completed:
		s.completeMatch(m, out)
	case out.ActiveInnings == 2 && m.ActiveInnings == 1:
		// Innings turnover: the new batting side selects fresh batters
		// and a bowler before the chase can begin.
		m.ActiveInnings = 2
		m.StrikerID, m.NonStrikerID, m.BowlerID = nil, nil, nil
		s.log.Info("innings closed",
			zap.Uint("match_id", m.ID),
			zap.Int("runs", out.First.Runs),
			zap.Int("wickets", out.First.Wickets),
			zap.String("overs", scoring.OversNotation(out.First.LegalBalls)))
	}

	if err := s.repo.SaveMatch(m); err != nil {
		return nil, err
	}
	s.publishSnapshot(m)
	return m, nil
}

func (s *ScoringService) completeMatch(m *Match, out scoring.Outcome) {
	now := time.Now()
	m.Status = StatusMatchCompleted
	m.CompletedAt = &now
	m.StrikerID, m.NonStrikerID, m.BowlerID = nil, nil, nil

	defending := m.BattingTeam(1)
	chasing := m.BattingTeam(2)
	switch {
	case out.Tie:
		m.Tied = true
		m.ResultSummary = "Match tied"
	case out.ChasingWon:
		m.WinningTeamID = &chasing.TeamID
		m.ResultSummary = fmt.Sprintf("%s won by %d wickets", chasing.Team.Name, out.WonByWickets)
	default:
		m.WinningTeamID = &defending.TeamID
		m.ResultSummary = fmt.Sprintf("%s won by %d runs", defending.Team.Name, out.WonByRuns)
	}

	metrics.MatchesCompleted.Inc()
	s.log.Info("match completed",
		zap.Uint("match_id", m.ID),
		zap.String("result", m.ResultSummary))

	if s.live != nil {
		completed := events.MatchCompleted{
			MatchID:           m.ID,
			Tie:               out.Tie,
			Summary:           m.ResultSummary,
			FirstInningsRuns:  out.First.Runs,
			SecondInningsRuns: out.Second.Runs,
		}
		if m.WinningTeamID != nil {
			completed.WinnerTeamID = *m.WinningTeamID
		}
		s.live.PublishCompleted(context.Background(), completed)
	}
}

// --- Checks and small helpers ---

func (s *ScoringService) getMatch(matchID uint) (*Match, error) {
	m, err := s.repo.GetMatchByID(matchID)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, fmt.Errorf("match %d: %w", matchID, ErrMatchNotFound)
	}
	return m, nil
}

// checkSelectable gates batter/bowler selection.
func (s *ScoringService) checkSelectable(m *Match) error {
	switch m.Status {
	case StatusMatchCompleted:
		return scoring.Invariantf("match %d is already completed", m.ID)
	case StatusMatchNotStarted:
		return scoring.Preconditionf("toss has not been recorded for match %d", m.ID)
	}
	return nil
}

// checkScoreable gates ledger appends.
func (s *ScoringService) checkScoreable(m *Match) error {
	switch m.Status {
	case StatusMatchCompleted:
		return scoring.Invariantf("match %d is already completed", m.ID)
	case StatusMatchNotStarted, StatusMatchTossDone:
		return scoring.Preconditionf("match %d is not in progress", m.ID)
	}
	if m.StrikerID == nil {
		return scoring.Preconditionf("striker slot is unset")
	}
	if m.NonStrikerID == nil {
		return scoring.Preconditionf("non-striker slot is unset")
	}
	if m.BowlerID == nil {
		return scoring.Preconditionf("bowler is unset")
	}
	return nil
}

// maybeBeginPlay flips toss_done to in_progress once both batters and a
// bowler are assigned.
func (s *ScoringService) maybeBeginPlay(m *Match) {
	if m.Status == StatusMatchTossDone &&
		m.StrikerID != nil && m.NonStrikerID != nil && m.BowlerID != nil {
		m.Status = StatusMatchInProgress
	}
}

func (s *ScoringService) publishSnapshot(m *Match) {
	if s.live == nil {
		return
	}
	summary, err := s.summarize(m)
	if err != nil {
		s.log.Warn("snapshot fold failed", zap.Uint("match_id", m.ID), zap.Error(err))
		return
	}
	s.live.PublishSnapshot(context.Background(), m.ID, summary)
}

func (m *Match) hasTeam(teamID uint) bool {
	for _, mt := range m.Teams {
		if mt.TeamID == teamID {
			return true
		}
	}
	return false
}

func slotPtr(id uint) *uint {
	if id == 0 {
		return nil
	}
	return &id
}
