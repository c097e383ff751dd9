package engine

// Event describes something the price engine did while advancing the market.
type Event interface {
	isEvent()
}

// Direction is the sign of a spike.
type Direction int8

const (
	DirectionDown Direction = -1
	DirectionUp   Direction = 1
)

func (d Direction) String() string {
	switch d {
	case DirectionUp:
		return "UP"
	case DirectionDown:
		return "DOWN"
	default:
		return "UNKNOWN"
	}
}

// SpikeEvent is emitted when a big change is applied to a stock.
type SpikeEvent struct {
	Slot      int
	Symbol    string
	Direction Direction
	Amount    float64 // points added to the day's change, before rounding
	Days      int     // duration the timer was re-armed with
}

func (SpikeEvent) isEvent() {}

// TrendEvent is emitted when a new trend is drawn.
type TrendEvent struct {
	Slope float64
	Days  int
}

func (TrendEvent) isEvent() {}
