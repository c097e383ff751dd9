package game

// State is the phase of a game session.
type State int

const (
	// StateInit: created, prices not yet opened.
	StateInit State = iota
	// StateTrade: waiting for the day's trade batch.
	StateTrade
	// StateEndOfDay: trades settled, prices not yet advanced.
	StateEndOfDay
	// StateReview: day closed, waiting for the player to continue or stop.
	StateReview
	// StateGameOver: the session has ended.
	StateGameOver
)

func (s State) String() string {
	switch s {
	case StateInit:
		return "INIT"
	case StateTrade:
		return "TRADE"
	case StateEndOfDay:
		return "END_OF_DAY"
	case StateReview:
		return "REVIEW"
	case StateGameOver:
		return "GAME_OVER"
	default:
		return "UNKNOWN"
	}
}
