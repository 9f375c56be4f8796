package scoring

import "fmt"

// Commentary turns a ball event into display text. It is deterministic
// templating with no state of its own; names are resolved by the caller.
// For a wicket, strikerName should be the dismissed batter.
func Commentary(e BallEvent, strikerName, bowlerName string) string {
	if e.Wicket != nil {
		if e.Wicket.Kind == DismissalRunOut {
			return fmt.Sprintf("WICKET! %s is run out", strikerName)
		}
		return fmt.Sprintf("WICKET! %s is out %s, %s strikes", strikerName, dismissalText(e.Wicket.Kind), bowlerName)
	}

	switch e.Extras {
	case ExtrasWide:
		if e.ExtraRuns > 1 {
			return fmt.Sprintf("%s bowls a wide, %d extra runs taken", bowlerName, e.ExtraRuns)
		}
		return fmt.Sprintf("%s bowls a wide", bowlerName)
	case ExtrasNoBall:
		return fmt.Sprintf("No ball by %s, %d to the total", bowlerName, e.ExtraRuns)
	case ExtrasBye:
		return fmt.Sprintf("%d bye(s) taken off %s", e.ExtraRuns, bowlerName)
	case ExtrasLegBye:
		return fmt.Sprintf("%d leg bye(s) taken off %s", e.ExtraRuns, bowlerName)
	}

	switch e.RunsOffBat {
	case 0:
		return fmt.Sprintf("%s to %s, no run", bowlerName, strikerName)
	case 4:
		return fmt.Sprintf("FOUR! %s finds the boundary off %s", strikerName, bowlerName)
	case 6:
		return fmt.Sprintf("SIX! %s goes big off %s", strikerName, bowlerName)
	default:
		return fmt.Sprintf("%s to %s, %d run(s)", bowlerName, strikerName, e.RunsOffBat)
	}
}

func dismissalText(kind DismissalKind) string {
	switch kind {
	case DismissalBowled:
		return "bowled"
	case DismissalCaught:
		return "caught"
	case DismissalLBW:
		return "lbw"
	case DismissalRunOut:
		return "run out"
	case DismissalStumped:
		return "stumped"
	case DismissalHitWicket:
		return "hit wicket"
	default:
		return string(kind)
	}
}
