// Package engine advances stock prices one trading day at a time.
package engine

import (
	"math"

	"github.com/rs/zerolog"

	"github.com/zappabad/stockmarket/internal/market"
	"github.com/zappabad/stockmarket/internal/money"
)

const (
	// BigChange is the number of points a spike adds to or removes from a price.
	BigChange = 10.0

	// spread maps a uniform draw onto a slot in [0,4] or, plus one, a duration in [1,5].
	spread = 4.99
)

// PriceEngine moves prices using a shared trend, per-stock jitter and
// occasional spikes. It draws every random number from its Source, in a
// fixed order, so a replayed Source reproduces the same prices.
type PriceEngine struct {
	src    market.Source
	logger zerolog.Logger
}

// NewPriceEngine creates a PriceEngine drawing from src.
func NewPriceEngine(src market.Source, logger zerolog.Logger) *PriceEngine {
	return &PriceEngine{src: src, logger: logger}
}

// Advance moves every stock in m one trading day and returns the spikes applied.
//
// A spike timer that has reached zero is re-armed with a new target and
// duration, and only then does its target receive the big change. Both timers
// are decremented at the end of every call, including the call that re-armed
// them. The trend countdown is left to the caller.
func (e *PriceEngine) Advance(m *market.Market) []Event {
	var events []Event

	upSlot, downSlot := -1, -1
	if m.BigUp.DaysRemaining == 0 {
		m.BigUp = e.drawBigChange()
		upSlot = m.BigUp.Slot
	}
	if m.BigDown.DaysRemaining == 0 {
		m.BigDown = e.drawBigChange()
		downSlot = m.BigDown.Slot
	}

	for i := range m.Instruments {
		stock := &m.Instruments[i].Stock
		slot := m.Instruments[i].Slot

		var bigChange float64
		if slot == upSlot {
			bigChange += BigChange
			events = append(events, SpikeEvent{
				Slot:      slot,
				Symbol:    stock.Symbol,
				Direction: DirectionUp,
				Amount:    BigChange,
				Days:      m.BigUp.DaysRemaining,
			})
		}
		if slot == downSlot {
			bigChange -= BigChange
			events = append(events, SpikeEvent{
				Slot:      slot,
				Symbol:    stock.Symbol,
				Direction: DirectionDown,
				Amount:    -BigChange,
				Days:      m.BigDown.DaysRemaining,
			})
		}

		change := bucket(e.src.Float64())
		jitter := 3 - 6*e.src.Float64() + 0.5

		total := math.Trunc(m.Trend.Slope*stock.CurrentPrice) + change + jitter + bigChange
		total = money.Round2(total)

		stock.PreviousPrice = stock.CurrentPrice
		stock.CurrentPrice = money.Round2(total + stock.CurrentPrice)
		stock.PriceChange = total
	}

	m.BigUp.DaysRemaining--
	m.BigDown.DaysRemaining--

	for _, ev := range events {
		if s, ok := ev.(SpikeEvent); ok {
			e.logger.Debug().
				Str("symbol", s.Symbol).
				Str("direction", s.Direction.String()).
				Int("days", s.Days).
				Msg("big change applied")
		}
	}

	return events
}

// DrawTrend replaces the market trend with a new slope and duration.
// The slope magnitude is a multiple of 0.01 in [0, 0.10]; its sign flips
// when the second draw exceeds one half.
func (e *PriceEngine) DrawTrend(m *market.Market) TrendEvent {
	slope := e.drawSlope()
	days := e.drawDays()
	return e.setTrend(m, slope, days)
}

// RedrawTrend is DrawTrend for an expired trend during play. The duration is
// drawn before the slope.
func (e *PriceEngine) RedrawTrend(m *market.Market) TrendEvent {
	days := e.drawDays()
	slope := e.drawSlope()
	return e.setTrend(m, slope, days)
}

func (e *PriceEngine) setTrend(m *market.Market, slope float64, days int) TrendEvent {
	m.Trend = market.Trend{Slope: slope, DaysRemaining: days}

	e.logger.Debug().
		Float64("slope", slope).
		Int("days", days).
		Msg("new trend")

	return TrendEvent{Slope: slope, Days: days}
}

func (e *PriceEngine) drawSlope() float64 {
	slope := money.Round2(float64(int64((e.src.Float64()/10)*100+0.5)) / 100)
	if e.src.Float64() > 0.5 {
		slope = -slope
	}
	return slope
}

func (e *PriceEngine) drawBigChange() market.BigChange {
	slot := int(spread * e.src.Float64())
	return market.BigChange{Slot: slot, DaysRemaining: e.drawDays()}
}

func (e *PriceEngine) drawDays() int {
	return int(spread*e.src.Float64() + 1)
}

// bucket maps a uniform draw onto the fractional part of the daily change.
// Draws above 0.75 map to zero.
func bucket(u float64) float64 {
	switch {
	case u <= 0.25:
		return 0.25
	case u <= 0.50:
		return 0.50
	case u <= 0.75:
		return 0.75
	default:
		return 0.00
	}
}
