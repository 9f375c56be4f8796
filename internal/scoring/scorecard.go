package scoring

// Config carries the scoring conventions that are deliberately adjustable.
type Config struct {
	// ByesChargedToBowler keeps byes and leg-byes inside the bowler's runs
	// conceded. True matches the behaviour this engine replaced; canonical
	// scoring would set it false.
	ByesChargedToBowler bool
}

// DefaultConfig returns the conventions the engine ships with.
func DefaultConfig() Config {
	return Config{ByesChargedToBowler: true}
}

// BattingFigures are one player's batting line for an innings.
type BattingFigures struct {
	PlayerID   uint    `json:"player_id"`
	Runs       int     `json:"runs"`
	BallsFaced int     `json:"balls_faced"`
	Fours      int     `json:"fours"`
	Sixes      int     `json:"sixes"`
	StrikeRate float64 `json:"strike_rate"`
	Out        bool    `json:"out"`
	HowOut     string  `json:"how_out,omitempty"`
}

// BowlingFigures are one player's bowling line for an innings.
type BowlingFigures struct {
	PlayerID     uint    `json:"player_id"`
	LegalBalls   int     `json:"legal_balls"`
	Overs        string  `json:"overs"`
	Maidens      int     `json:"maidens"`
	RunsConceded int     `json:"runs_conceded"`
	Wickets      int     `json:"wickets"`
	Wides        int     `json:"wides"`
	NoBalls      int     `json:"no_balls"`
	Economy      float64 `json:"economy"`
}

// BattingFor folds an innings ledger into the given player's batting line.
func BattingFor(l Ledger, playerID uint) BattingFigures {
	fig := BattingFigures{PlayerID: playerID}
	for _, e := range l {
		if e.StrikerID == playerID {
			cls := Classify(e.Extras)
			if cls.IsLegal {
				fig.BallsFaced++
			}
			if cls.CreditsStriker {
				fig.Runs += e.RunsOffBat
				switch e.RunsOffBat {
				case 4:
					fig.Fours++
				case 6:
					fig.Sixes++
				}
			}
		}
		if e.Wicket != nil && e.Wicket.PlayerOutID == playerID {
			fig.Out = true
			fig.HowOut = string(e.Wicket.Kind)
		}
	}
	if fig.BallsFaced > 0 {
		fig.StrikeRate = float64(fig.Runs) * 100 / float64(fig.BallsFaced)
	}
	return fig
}

// chargedRuns is the part of an event's team runs billed to its bowler.
func chargedRuns(e BallEvent, cfg Config) int {
	if !cfg.ByesChargedToBowler && (e.Extras == ExtrasBye || e.Extras == ExtrasLegBye) {
		return e.RunsOffBat
	}
	return e.TeamRuns()
}

// BowlingFor folds an innings ledger into the given player's bowling line.
// Maidens are computed from the ledger: a maiden is a completed over bowled
// entirely by this player across which no charged run was conceded.
func BowlingFor(l Ledger, playerID uint, cfg Config) BowlingFigures {
	fig := BowlingFigures{PlayerID: playerID}

	overBowler := uint(0)
	overRuns := 0
	overBalls := 0
	overMixed := false

	for _, e := range l {
		mine := e.BowlerID == playerID
		if mine {
			if e.IsLegal() {
				fig.LegalBalls++
			}
			fig.RunsConceded += chargedRuns(e, cfg)
			switch e.Extras {
			case ExtrasWide:
				fig.Wides++
			case ExtrasNoBall:
				fig.NoBalls++
			}
			if e.Wicket != nil && CreditsBowler(e.Wicket.Kind) {
				fig.Wickets++
			}
		}

		// Maiden tracking follows the innings over boundaries, whoever
		// bowled, so a mid-over bowler change voids the over.
		if overBalls == 0 {
			overBowler = e.BowlerID
			overMixed = false
		}
		if e.BowlerID != overBowler {
			overMixed = true
		}
		overRuns += chargedRuns(e, cfg)
		if e.IsLegal() {
			overBalls++
		}
		if overBalls == 6 {
			if !overMixed && overBowler == playerID && overRuns == 0 {
				fig.Maidens++
			}
			overBalls, overRuns = 0, 0
		}
	}

	fig.Overs = OversNotation(fig.LegalBalls)
	if fig.LegalBalls > 0 {
		fig.Economy = float64(fig.RunsConceded) * 6 / float64(fig.LegalBalls)
	}
	return fig
}
