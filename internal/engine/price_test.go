package engine

import (
	"math"
	"math/rand"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/rs/zerolog"

	"github.com/zappabad/stockmarket/internal/market"
)

func TestAdvanceGolden(t *testing.T) {
	m := market.NewMarket(10000)
	m.Trend = market.Trend{Slope: 0.05, DaysRemaining: 3}

	src := market.NewSequenceSource(
		0.1, 0.5, // up: IBM for 3 days
		0.9, 0.0, // down: CBS for 1 day
		0.2, 0.5, // IBM
		0.3, 0.25, // RCA
		0.6, 0.9, // LBJ
		0.8, 0.75, // ABC
		0.25, 0.1, // CBS
	)
	e := NewPriceEngine(src, zerolog.Nop())

	events := e.Advance(m)

	want := []struct {
		price  float64
		change float64
	}{
		{115.75, 15.75},
		{91.5, 6.5},
		{155.85, 5.85},
		{146.0, 6.0},
		{108.16, -1.84},
	}
	prev := []float64{100, 85, 150, 140, 110}

	for i, w := range want {
		s := m.Instruments[i].Stock
		if s.CurrentPrice != w.price {
			t.Errorf("%s: expected price %v, got %v", s.Symbol, w.price, s.CurrentPrice)
		}
		if s.PriceChange != w.change {
			t.Errorf("%s: expected change %v, got %v", s.Symbol, w.change, s.PriceChange)
		}
		if s.PreviousPrice != prev[i] {
			t.Errorf("%s: expected previous %v, got %v", s.Symbol, prev[i], s.PreviousPrice)
		}
	}

	if src.Draws() != 14 {
		t.Errorf("expected 14 draws, got %d", src.Draws())
	}
	if m.BigUp != (market.BigChange{Slot: 0, DaysRemaining: 2}) {
		t.Errorf("unexpected up timer %+v", m.BigUp)
	}
	if m.BigDown != (market.BigChange{Slot: 4, DaysRemaining: 0}) {
		t.Errorf("unexpected down timer %+v", m.BigDown)
	}
	if m.Trend.DaysRemaining != 3 {
		t.Errorf("expected trend days untouched, got %d", m.Trend.DaysRemaining)
	}

	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	up, ok := events[0].(SpikeEvent)
	if !ok {
		t.Fatalf("expected SpikeEvent, got %T", events[0])
	}
	if up.Symbol != "IBM" || up.Direction != DirectionUp || up.Days != 3 {
		t.Errorf("unexpected up spike %+v", up)
	}
	down := events[1].(SpikeEvent)
	if down.Symbol != "CBS" || down.Direction != DirectionDown || down.Days != 1 {
		t.Errorf("unexpected down spike %+v", down)
	}
}

func TestAdvanceIsReproducible(t *testing.T) {
	run := func() []market.Stock {
		m := market.NewMarket(10000)
		e := NewPriceEngine(rand.New(rand.NewSource(42)), zerolog.Nop())
		e.DrawTrend(m)
		for day := 0; day < 10; day++ {
			e.Advance(m)
		}
		out := make([]market.Stock, m.Len())
		for i, inst := range m.Instruments {
			out[i] = inst.Stock
		}
		return out
	}

	a, b := run(), run()
	for i := range a {
		if a[i] != b[i] {
			t.Errorf("slot %d: runs diverged: %+v vs %+v", i, a[i], b[i])
		}
	}
}

func TestAdvanceWithoutSpikes(t *testing.T) {
	m := market.NewMarket(10000)
	m.Trend = market.Trend{Slope: -0.07, DaysRemaining: 2}
	m.BigUp = market.BigChange{Slot: 0, DaysRemaining: 2}
	m.BigDown = market.BigChange{Slot: 1, DaysRemaining: 3}

	// Every bucket draw lands above 0.75 and every jitter is +0.5.
	src := market.NewSequenceSource(0.8, 0.5)
	e := NewPriceEngine(src, zerolog.Nop())

	events := e.Advance(m)
	if len(events) != 0 {
		t.Fatalf("expected no spikes, got %d events", len(events))
	}
	if src.Draws() != 10 {
		t.Errorf("expected 10 draws, got %d", src.Draws())
	}

	// The slope term truncates toward zero: -0.07*85 = -5.95 contributes -5.
	rca := m.Instruments[1].Stock
	if rca.PriceChange != -4.49 {
		t.Errorf("expected change -4.49, got %v", rca.PriceChange)
	}
	if rca.CurrentPrice != 80.51 {
		t.Errorf("expected price 80.51, got %v", rca.CurrentPrice)
	}

	if m.BigUp.DaysRemaining != 1 || m.BigDown.DaysRemaining != 2 {
		t.Errorf("expected timers 1 and 2, got %d and %d", m.BigUp.DaysRemaining, m.BigDown.DaysRemaining)
	}
}

func TestBothSpikesOnSameStock(t *testing.T) {
	m := market.NewMarket(10000)
	src := market.NewSequenceSource(
		0.5, 0.0, // up: LBJ
		0.5, 0.0, // down: LBJ
		0.8, 0.5, 0.8, 0.5, 0.8, 0.5, 0.8, 0.5, 0.8, 0.5,
	)
	e := NewPriceEngine(src, zerolog.Nop())

	events := e.Advance(m)
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	lbj := m.Instruments[2].Stock
	if lbj.PriceChange != 0.5 {
		t.Errorf("expected spikes to cancel, got change %v", lbj.PriceChange)
	}
}

func TestBucket(t *testing.T) {
	tests := []struct {
		u    float64
		want float64
	}{
		{0, 0.25},
		{0.25, 0.25},
		{0.2500001, 0.50},
		{0.5, 0.50},
		{0.75, 0.75},
		{0.7500001, 0},
		{0.999, 0},
	}
	for _, tt := range tests {
		if got := bucket(tt.u); got != tt.want {
			t.Errorf("bucket(%v): expected %v, got %v", tt.u, tt.want, got)
		}
	}
}

func TestDrawTrend(t *testing.T) {
	tests := []struct {
		name  string
		draws []float64
		slope float64
		days  int
	}{
		{"positive", []float64{0.47, 0.5, 0.0}, 0.05, 1},
		{"negative", []float64{0.47, 0.6, 0.96}, -0.05, 5},
		{"flat", []float64{0.01, 0.9, 0.5}, 0, 3},
		{"steepest", []float64{0.99, 0.1, 0.999}, 0.10, 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := market.NewMarket(0)
			e := NewPriceEngine(market.NewSequenceSource(tt.draws...), zerolog.Nop())

			ev := e.DrawTrend(m)
			if ev.Slope != tt.slope || m.Trend.Slope != tt.slope {
				t.Errorf("expected slope %v, got %v", tt.slope, m.Trend.Slope)
			}
			if ev.Days != tt.days || m.Trend.DaysRemaining != tt.days {
				t.Errorf("expected days %d, got %d", tt.days, m.Trend.DaysRemaining)
			}
		})
	}
}

func TestRedrawTrendDrawsDaysFirst(t *testing.T) {
	tests := []struct {
		name  string
		draws []float64
		slope float64
		days  int
	}{
		{"positive", []float64{0.0, 0.47, 0.5}, 0.05, 1},
		{"negative", []float64{0.96, 0.47, 0.6}, -0.05, 5},
		{"flat", []float64{0.5, 0.01, 0.9}, 0, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := market.NewMarket(0)
			src := market.NewSequenceSource(tt.draws...)
			e := NewPriceEngine(src, zerolog.Nop())

			ev := e.RedrawTrend(m)
			if ev.Slope != tt.slope || m.Trend.Slope != tt.slope {
				t.Errorf("expected slope %v, got %v", tt.slope, m.Trend.Slope)
			}
			if ev.Days != tt.days || m.Trend.DaysRemaining != tt.days {
				t.Errorf("expected days %d, got %d", tt.days, m.Trend.DaysRemaining)
			}
			if src.Draws() != 3 {
				t.Errorf("expected 3 draws, got %d", src.Draws())
			}
		})
	}
}

func TestDrawAndRedrawConsumeDrawsDifferently(t *testing.T) {
	draws := []float64{0.96, 0.47, 0.6}

	start := NewPriceEngine(market.NewSequenceSource(draws...), zerolog.Nop()).DrawTrend(market.NewMarket(0))
	if start.Slope != 0.10 || start.Days != 3 {
		t.Errorf("expected start trend {0.1 3}, got %+v", start)
	}

	redraw := NewPriceEngine(market.NewSequenceSource(draws...), zerolog.Nop()).RedrawTrend(market.NewMarket(0))
	if redraw.Slope != -0.05 || redraw.Days != 5 {
		t.Errorf("expected redraw trend {-0.05 5}, got %+v", redraw)
	}
}

func TestProperty_SpikeTimersRearm(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	properties.Property("timers starting at zero end in [0,4] on a valid slot", prop.ForAll(
		func(seed int64) bool {
			m := market.NewMarket(10000)
			e := NewPriceEngine(rand.New(rand.NewSource(seed)), zerolog.Nop())
			e.Advance(m)

			for _, bc := range []market.BigChange{m.BigUp, m.BigDown} {
				if bc.DaysRemaining < 0 || bc.DaysRemaining > 4 {
					return false
				}
				if bc.Slot < 0 || bc.Slot >= m.Len() {
					return false
				}
			}
			return true
		},
		gen.Int64(),
	))

	properties.Property("price change matches the price move", prop.ForAll(
		func(seed int64) bool {
			m := market.NewMarket(10000)
			e := NewPriceEngine(rand.New(rand.NewSource(seed)), zerolog.Nop())
			e.DrawTrend(m)
			for day := 0; day < 3; day++ {
				e.Advance(m)
				for _, inst := range m.Instruments {
					s := inst.Stock
					if math.Abs((s.CurrentPrice-s.PreviousPrice)-s.PriceChange) > 1e-6 {
						return false
					}
				}
			}
			return true
		},
		gen.Int64(),
	))

	properties.TestingRun(t)
}
