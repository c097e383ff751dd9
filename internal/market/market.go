package market

import "github.com/zappabad/stockmarket/internal/money"

// Market is the complete mutable state of one game session.
// It is owned by a single caller; nothing in it is safe for concurrent use.
type Market struct {
	Instruments []Instrument
	Cash        float64
	Trend       Trend
	BigUp       BigChange
	BigDown     BigChange
}

// NewMarket lists every instrument at its opening price with no holdings.
// Both spike timers start at zero so the first price update arms them.
func NewMarket(cash float64) *Market {
	listings := Listings()
	m := &Market{
		Instruments: make([]Instrument, len(listings)),
		Cash:        cash,
	}
	for i, l := range listings {
		m.Instruments[i] = Instrument{
			Slot:  i,
			Stock: NewStock(l.Name, l.Symbol, l.Price),
		}
	}
	return m
}

// Len returns the number of instruments.
func (m *Market) Len() int {
	return len(m.Instruments)
}

// Symbols returns the instrument symbols in slot order.
func (m *Market) Symbols() []string {
	out := make([]string, len(m.Instruments))
	for i, inst := range m.Instruments {
		out[i] = inst.Stock.Symbol
	}
	return out
}

// StockValue returns the rounded total value of all holdings.
func (m *Market) StockValue() float64 {
	var total float64
	for _, inst := range m.Instruments {
		total += inst.Value()
	}
	return money.Round2(total)
}

// Snapshot returns a deep copy of the market.
func (m *Market) Snapshot() Market {
	out := *m
	out.Instruments = make([]Instrument, len(m.Instruments))
	copy(out.Instruments, m.Instruments)
	return out
}

// Equal reports whether two markets hold identical state.
func (m Market) Equal(o Market) bool {
	if m.Cash != o.Cash || m.Trend != o.Trend || m.BigUp != o.BigUp || m.BigDown != o.BigDown {
		return false
	}
	if len(m.Instruments) != len(o.Instruments) {
		return false
	}
	for i := range m.Instruments {
		if m.Instruments[i] != o.Instruments[i] {
			return false
		}
	}
	return true
}
