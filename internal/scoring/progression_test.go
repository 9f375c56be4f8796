package scoring

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ball is a test shorthand around NewDelivery with fixed innings 1.
func ball(runs int, extras ExtrasKind, striker, nonStriker uint) BallEvent {
	return NewDelivery(1, runs, extras, striker, nonStriker, 99, time.Now())
}

func TestFoldProgressionEmptyLedger(t *testing.T) {
	p := FoldProgression(nil)

	assert.Equal(t, 0, p.Over)
	assert.Equal(t, 1, p.BallInOver)
	assert.Equal(t, 0, p.LegalBalls)
	assert.Equal(t, "0.0", p.Notation())
}

func TestFoldProgressionOddRunsSwapStrike(t *testing.T) {
	l := Ledger{
		ball(1, ExtrasNone, 10, 11),
	}
	p := FoldProgression(l)

	assert.Equal(t, uint(11), p.StrikerID)
	assert.Equal(t, uint(10), p.NonStrikerID)
}

func TestFoldProgressionEvenRunsKeepStrike(t *testing.T) {
	l := Ledger{
		ball(4, ExtrasNone, 10, 11),
		ball(2, ExtrasNone, 10, 11),
	}
	p := FoldProgression(l)

	assert.Equal(t, uint(10), p.StrikerID)
	assert.Equal(t, uint(11), p.NonStrikerID)
}

func TestFoldProgressionWideDoesNotAdvanceOver(t *testing.T) {
	l := Ledger{
		ball(0, ExtrasWide, 10, 11),
		ball(0, ExtrasWide, 10, 11),
	}
	p := FoldProgression(l)

	assert.Equal(t, 0, p.LegalBalls)
	assert.Equal(t, 1, p.BallInOver)
	assert.Equal(t, uint(10), p.StrikerID)
}

func TestFoldProgressionOverEndSwap(t *testing.T) {
	// Six dot balls: over completes, batters change ends.
	var l Ledger
	for i := 0; i < 6; i++ {
		l = append(l, ball(0, ExtrasNone, 10, 11))
	}
	p := FoldProgression(l)

	assert.Equal(t, 1, p.Over)
	assert.Equal(t, 1, p.BallInOver)
	assert.Equal(t, uint(11), p.StrikerID)
	assert.Equal(t, uint(10), p.NonStrikerID)
	assert.Equal(t, "1.0", p.Notation())
}

func TestFoldProgressionSingleOffLastBallHoldsStrike(t *testing.T) {
	// A single off the sixth ball swaps twice, so the same batter keeps
	// strike into the new over.
	var l Ledger
	for i := 0; i < 5; i++ {
		l = append(l, ball(0, ExtrasNone, 10, 11))
	}
	l = append(l, ball(1, ExtrasNone, 10, 11))
	p := FoldProgression(l)

	require.Equal(t, 6, p.LegalBalls)
	assert.Equal(t, uint(10), p.StrikerID)
	assert.Equal(t, uint(11), p.NonStrikerID)
}

func TestFoldProgressionByesRotateStrike(t *testing.T) {
	// Batters physically ran a single bye, so they swapped ends.
	l := Ledger{
		ball(1, ExtrasBye, 10, 11),
	}
	p := FoldProgression(l)

	assert.Equal(t, 1, p.LegalBalls)
	assert.Equal(t, uint(11), p.StrikerID)
}

func TestFoldProgressionDismissalVacatesSlot(t *testing.T) {
	e := ball(0, ExtrasNone, 10, 11)
	e.Wicket = &Wicket{Kind: DismissalBowled, PlayerOutID: 10}
	p := FoldProgression(Ledger{e})

	assert.Equal(t, uint(0), p.StrikerID)
	assert.Equal(t, uint(11), p.NonStrikerID)
}

func TestFoldProgressionReplacementBatterPickedUp(t *testing.T) {
	out := ball(0, ExtrasNone, 10, 11)
	out.Wicket = &Wicket{Kind: DismissalBowled, PlayerOutID: 10}
	// Next ball snapshots the refilled pair.
	next := ball(0, ExtrasNone, 12, 11)
	p := FoldProgression(Ledger{out, next})

	assert.Equal(t, uint(12), p.StrikerID)
	assert.Equal(t, uint(11), p.NonStrikerID)
	assert.Equal(t, 2, p.LegalBalls)
}

func TestOversNotation(t *testing.T) {
	tests := []struct {
		legalBalls int
		want       string
	}{
		{0, "0.0"},
		{5, "0.5"},
		{6, "1.0"},
		{7, "1.1"},
		{112, "18.4"},
		{120, "20.0"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, OversNotation(tt.legalBalls))
	}
}
