package scoring

import "fmt"

// Progression is the over/strike position derived from an innings ledger.
// StrikerID or NonStrikerID of zero means the slot is vacant (a dismissal
// has not been followed by a replacement yet) and blocks further deliveries.
type Progression struct {
	Over       int // completed overs
	BallInOver int // 1-based number of the next legal ball
	LegalBalls int

	StrikerID    uint
	NonStrikerID uint
}

// Notation renders the position the way scoreboards do: completed
// overs, a dot, then legal balls bowled in the current over.
func (p Progression) Notation() string {
	return OversNotation(p.LegalBalls)
}

// OversNotation formats a legal-delivery count as "o.b".
func OversNotation(legalBalls int) string {
	return fmt.Sprintf("%d.%d", legalBalls/6, legalBalls%6)
}

// FoldProgression replays one innings ledger and returns the current over
// position and batting pair. Strike swaps when a legal delivery scores an
// odd number of runs for the batting side (byes and leg-byes included: the
// batters ran them), and again when the over completes, regardless of the
// final ball's parity. A dismissal vacates the out batter's slot; refilling
// it is an explicit action outside the ledger.
func FoldProgression(l Ledger) Progression {
	var p Progression
	for _, e := range l {
		// Each event snapshots the pair as it stood when the ball was
		// bowled, which also picks up replacement batters.
		p.StrikerID, p.NonStrikerID = e.StrikerID, e.NonStrikerID

		legal := e.IsLegal()
		if legal {
			p.LegalBalls++
			if e.TeamRuns()%2 == 1 {
				p.StrikerID, p.NonStrikerID = p.NonStrikerID, p.StrikerID
			}
		}
		if e.Wicket != nil {
			switch e.Wicket.PlayerOutID {
			case p.StrikerID:
				p.StrikerID = 0
			case p.NonStrikerID:
				p.NonStrikerID = 0
			}
		}
		if legal && p.LegalBalls%6 == 0 {
			p.StrikerID, p.NonStrikerID = p.NonStrikerID, p.StrikerID
		}
	}
	p.Over = p.LegalBalls / 6
	p.BallInOver = p.LegalBalls%6 + 1
	return p
}
