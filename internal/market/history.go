package market

// Candle summarizes one trading day for one stock.
type Candle struct {
	Day   int
	Open  float64
	High  float64
	Low   float64
	Close float64
}

// History keeps the most recent day candles for each slot.
type History struct {
	maxDays int
	candles [][]Candle
}

// NewHistory creates a History for slots instruments keeping maxDays candles each.
func NewHistory(slots, maxDays int) *History {
	if maxDays <= 0 {
		maxDays = 60
	}
	return &History{
		maxDays: maxDays,
		candles: make([][]Candle, slots),
	}
}

// Record appends one candle per instrument from its previous and current price.
func (h *History) Record(day int, m *Market) {
	for _, inst := range m.Instruments {
		if inst.Slot < 0 || inst.Slot >= len(h.candles) {
			continue
		}
		open, closePrice := inst.Stock.PreviousPrice, inst.Stock.CurrentPrice
		c := Candle{
			Day:   day,
			Open:  open,
			High:  max(open, closePrice),
			Low:   min(open, closePrice),
			Close: closePrice,
		}
		series := append(h.candles[inst.Slot], c)
		if len(series) > h.maxDays {
			series = series[len(series)-h.maxDays:]
		}
		h.candles[inst.Slot] = series
	}
}

// Candles returns a copy of the candles recorded for slot, oldest first.
func (h *History) Candles(slot int) []Candle {
	if slot < 0 || slot >= len(h.candles) {
		return nil
	}
	out := make([]Candle, len(h.candles[slot]))
	copy(out, h.candles[slot])
	return out
}
