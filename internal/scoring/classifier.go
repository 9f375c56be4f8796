package scoring

// Classification is the verdict on a proposed delivery: whether it advances
// the over and whether its runs are credited to the striker personally.
// Every other fold in this package depends on this classification instead of
// re-deriving extras rules on its own.
type Classification struct {
	IsLegal        bool
	CreditsStriker bool
}

// Classify maps an extras tag to its classification.
//
// Wides and no-balls are illegal: they do not advance the over, and their
// runs count for the team only. Byes and leg-byes are legal deliveries the
// striker physically faced, but the runs are not the striker's. A plain
// delivery is legal and fully credited.
func Classify(kind ExtrasKind) Classification {
	switch kind {
	case ExtrasWide, ExtrasNoBall:
		return Classification{IsLegal: false, CreditsStriker: false}
	case ExtrasLegBye, ExtrasBye:
		return Classification{IsLegal: true, CreditsStriker: false}
	default:
		return Classification{IsLegal: true, CreditsStriker: true}
	}
}
