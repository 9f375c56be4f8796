package scoring

// InningsState is the derived total for one innings. It is never stored;
// every resolver call recomputes it from the ledger prefix.
type InningsState struct {
	Runs       int `json:"runs"`
	Wickets    int `json:"wickets"`
	LegalBalls int `json:"legal_balls"`
}

// FoldInnings totals one innings ledger.
func FoldInnings(l Ledger) InningsState {
	return InningsState{
		Runs:       l.TotalRuns(),
		Wickets:    l.Wickets(),
		LegalBalls: l.LegalBalls(),
	}
}

// Closed reports whether an innings with the given overs limit can accept
// further deliveries.
func (s InningsState) Closed(oversLimit int) bool {
	return s.Wickets >= 10 || s.LegalBalls >= oversLimit*6
}

// Outcome is the resolver's verdict after an append: which innings is
// active, whether the match is over, and how it was decided.
type Outcome struct {
	ActiveInnings int
	Completed     bool

	Tie          bool
	ChasingWon   bool
	WonByRuns    int // set when the defending side won
	WonByWickets int // set when the chasing side won

	First  InningsState
	Second InningsState
	Target int
}

// Resolve folds the whole match ledger and decides whether the innings or
// the match has ended. It runs after every append.
//
// Innings one closes when ten wickets have fallen or the over allocation is
// used up. During the chase the match completes the instant the chasing
// side's total surpasses the first innings total, even mid-over; otherwise
// it completes when the chase is exhausted, a level score being a tie.
func Resolve(l Ledger, oversLimit int) Outcome {
	out := Outcome{
		First:  FoldInnings(l.Innings(1)),
		Second: FoldInnings(l.Innings(2)),
	}
	out.Target = out.First.Runs + 1

	if !out.First.Closed(oversLimit) {
		out.ActiveInnings = 1
		return out
	}
	out.ActiveInnings = 2

	switch {
	case out.Second.Runs >= out.Target:
		out.Completed = true
		out.ChasingWon = true
		out.WonByWickets = 10 - out.Second.Wickets
	case out.Second.Closed(oversLimit):
		out.Completed = true
		if out.Second.Runs == out.First.Runs {
			out.Tie = true
		} else {
			out.WonByRuns = out.First.Runs - out.Second.Runs
		}
	}
	return out
}
