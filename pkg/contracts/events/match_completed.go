package events

// MatchCompleted is the contract published to downstream consumers
// (tournament standings, feeds) when a match reaches its result. Only the
// outcome crosses the boundary; ball events stay internal.
type MatchCompleted struct {
	MatchID           uint   `json:"match_id"`
	WinnerTeamID      uint   `json:"winner_team_id,omitempty"`
	Tie               bool   `json:"tie"`
	Summary           string `json:"summary"`
	FirstInningsRuns  int    `json:"first_innings_runs"`
	SecondInningsRuns int    `json:"second_innings_runs"`
	TsUnixMs          int64  `json:"ts_unix_ms"`
}
