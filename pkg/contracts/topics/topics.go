package topics

const (
	// Match lifecycle
	MatchCompleted = "match_completed"

	// DLQs
	MatchCompletedDLQ = "match_completed_dlq"
)
