package scoring

// Ledger is an ordered, append-only view of ball events for a match. All
// derived state (score, overs, figures, outcome) is a pure fold over a
// ledger prefix, so concurrent readers can share one snapshot without
// coordination.
type Ledger []BallEvent

// Innings returns the sub-ledger for one innings, order preserved.
func (l Ledger) Innings(n int) Ledger {
	out := make(Ledger, 0, len(l))
	for _, e := range l {
		if e.Innings == n {
			out = append(out, e)
		}
	}
	return out
}

// ByStriker returns the events the given player faced as striker.
func (l Ledger) ByStriker(playerID uint) Ledger {
	out := make(Ledger, 0, len(l))
	for _, e := range l {
		if e.StrikerID == playerID {
			out = append(out, e)
		}
	}
	return out
}

// ByBowler returns the events bowled by the given player.
func (l Ledger) ByBowler(playerID uint) Ledger {
	out := make(Ledger, 0, len(l))
	for _, e := range l {
		if e.BowlerID == playerID {
			out = append(out, e)
		}
	}
	return out
}

// TotalRuns is the batting side's total over this ledger.
func (l Ledger) TotalRuns() int {
	total := 0
	for _, e := range l {
		total += e.TeamRuns()
	}
	return total
}

// Wickets counts dismissals recorded in this ledger.
func (l Ledger) Wickets() int {
	n := 0
	for _, e := range l {
		if e.Wicket != nil {
			n++
		}
	}
	return n
}

// LegalBalls counts deliveries that advance the over.
func (l Ledger) LegalBalls() int {
	n := 0
	for _, e := range l {
		if e.IsLegal() {
			n++
		}
	}
	return n
}

// Last returns the final event, if any.
func (l Ledger) Last() (BallEvent, bool) {
	if len(l) == 0 {
		return BallEvent{}, false
	}
	return l[len(l)-1], true
}

// DismissedPlayers returns the ids of every batter out in this ledger.
func (l Ledger) DismissedPlayers() []uint {
	var out []uint
	for _, e := range l {
		if e.Wicket != nil {
			out = append(out, e.Wicket.PlayerOutID)
		}
	}
	return out
}

// IsDismissed reports whether the given player has been dismissed.
func (l Ledger) IsDismissed(playerID uint) bool {
	for _, e := range l {
		if e.Wicket != nil && e.Wicket.PlayerOutID == playerID {
			return true
		}
	}
	return false
}
