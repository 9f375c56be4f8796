package scoring

import "time"

// ExtrasKind tags a delivery with at most one extras category. A single
// tagged value keeps illegal combinations (e.g. a wide that is also a bye)
// unrepresentable.
type ExtrasKind string

const (
	ExtrasNone   ExtrasKind = "none"
	ExtrasWide   ExtrasKind = "wide"
	ExtrasNoBall ExtrasKind = "no_ball"
	ExtrasLegBye ExtrasKind = "leg_bye"
	ExtrasBye    ExtrasKind = "bye"
)

// ValidExtras reports whether kind is a known extras tag.
func ValidExtras(kind ExtrasKind) bool {
	switch kind {
	case ExtrasNone, ExtrasWide, ExtrasNoBall, ExtrasLegBye, ExtrasBye:
		return true
	}
	return false
}

// DismissalKind enumerates the ways a batter can be out.
type DismissalKind string

const (
	DismissalBowled    DismissalKind = "bowled"
	DismissalCaught    DismissalKind = "caught"
	DismissalLBW       DismissalKind = "lbw"
	DismissalRunOut    DismissalKind = "run_out"
	DismissalStumped   DismissalKind = "stumped"
	DismissalHitWicket DismissalKind = "hit_wicket"
)

// ValidDismissal reports whether kind is a known dismissal kind.
func ValidDismissal(kind DismissalKind) bool {
	switch kind {
	case DismissalBowled, DismissalCaught, DismissalLBW,
		DismissalRunOut, DismissalStumped, DismissalHitWicket:
		return true
	}
	return false
}

// NeedsFielder reports whether the dismissal kind requires a fielder to be
// named (catcher, thrower or keeper).
func NeedsFielder(kind DismissalKind) bool {
	switch kind {
	case DismissalCaught, DismissalRunOut, DismissalStumped:
		return true
	}
	return false
}

// CreditsBowler reports whether a dismissal of this kind counts as a wicket
// in the bowler's figures. Run-outs credit no bowler.
func CreditsBowler(kind DismissalKind) bool {
	switch kind {
	case DismissalBowled, DismissalCaught, DismissalLBW,
		DismissalStumped, DismissalHitWicket:
		return true
	}
	return false
}

// Wicket describes a dismissal attached to a ball event.
type Wicket struct {
	Kind        DismissalKind
	PlayerOutID uint
	FielderID   uint // zero when no fielder is involved
}

// BallEvent is one entry in the append-only match ledger: a delivery, with
// its runs split between bat and extras, and an optional dismissal. Events
// are immutable once appended; a correction is a new compensating event.
type BallEvent struct {
	Seq     int // 1-based, monotonic across the whole match
	Innings int // 1 or 2

	RunsOffBat int        // credited to the striker
	ExtraRuns  int        // penalty plus runs not off the bat
	Extras     ExtrasKind // tag driving classification

	Wicket *Wicket // nil when no dismissal on this ball

	StrikerID    uint
	NonStrikerID uint
	BowlerID     uint

	Timestamp time.Time
}

// TeamRuns is the contribution of this event to the batting side's total.
func (e BallEvent) TeamRuns() int {
	return e.RunsOffBat + e.ExtraRuns
}

// IsLegal reports whether this event advances the over.
func (e BallEvent) IsLegal() bool {
	return Classify(e.Extras).IsLegal
}

// NewDelivery builds a ball event from the scorer's view of a delivery:
// the runs physically scored and the extras tag. The classifier decides
// whether those runs belong to the striker or to extras, and illegal
// deliveries pick up their one-run penalty here.
func NewDelivery(innings, runs int, extras ExtrasKind, strikerID, nonStrikerID, bowlerID uint, ts time.Time) BallEvent {
	e := BallEvent{
		Innings:      innings,
		Extras:       extras,
		StrikerID:    strikerID,
		NonStrikerID: nonStrikerID,
		BowlerID:     bowlerID,
		Timestamp:    ts,
	}
	cls := Classify(extras)
	if cls.CreditsStriker {
		e.RunsOffBat = runs
	} else {
		e.ExtraRuns = runs
	}
	if !cls.IsLegal {
		e.ExtraRuns++ // wide/no-ball penalty
	}
	return e
}
