// Package broker validates and settles the player's daily trade batch.
package broker

import (
	"fmt"
	"math"

	"github.com/rs/zerolog"

	"github.com/zappabad/stockmarket/internal/market"
	"github.com/zappabad/stockmarket/internal/money"
)

// Receipt describes a validated trade batch.
type Receipt struct {
	Deltas           []int
	Values           []float64 // rounded delta * price per slot
	TotalAssetChange float64   // purchases minus sales
	Fee              float64
	Total            float64 // fee-inclusive amount taken from cash
	CashBefore       float64
	CashAfter        float64
}

// Broker applies trade batches to a market.
type Broker struct {
	cfg    Config
	logger zerolog.Logger
}

// NewBroker creates a new Broker.
func NewBroker(cfg Config, logger zerolog.Logger) *Broker {
	if cfg.Fee < 0 {
		cfg.Fee = DefaultConfig().Fee
	}
	return &Broker{cfg: cfg, logger: logger}
}

// Fee returns the brokerage rate.
func (b *Broker) Fee() float64 {
	return b.cfg.Fee
}

// Quote validates deltas against m without changing it.
//
// deltas[i] is the signed share count for the instrument in slot i. The batch
// is rejected with an *OversoldError if any sale exceeds the holding, then with
// an *InsufficientCashError if the fee-inclusive net cost exceeds cash. The fee
// is charged on the net of purchases and sales.
func (b *Broker) Quote(m *market.Market, deltas []int) (Receipt, error) {
	if len(deltas) != m.Len() {
		return Receipt{}, fmt.Errorf("%w: got %d, want %d", ErrBatchSize, len(deltas), m.Len())
	}

	for i, d := range deltas {
		inst := m.Instruments[i]
		if d < 0 && -d > inst.Quantity {
			return Receipt{}, &OversoldError{
				Slot:      inst.Slot,
				Symbol:    inst.Stock.Symbol,
				Requested: -d,
				Held:      inst.Quantity,
			}
		}
	}

	r := Receipt{
		Deltas:     append([]int(nil), deltas...),
		Values:     make([]float64, len(deltas)),
		CashBefore: m.Cash,
	}
	for i, d := range deltas {
		r.Values[i] = money.Round2(float64(d) * m.Instruments[i].Stock.CurrentPrice)
		r.TotalAssetChange += r.Values[i]
	}
	r.Total = money.Round2(r.TotalAssetChange*b.cfg.Fee + r.TotalAssetChange)
	// Fee is informational; round it symmetrically so sales show the true charge.
	r.Fee = math.Round((r.Total-r.TotalAssetChange)*100) / 100

	if r.Total > m.Cash {
		return Receipt{}, &InsufficientCashError{
			Total:     r.Total,
			Cash:      m.Cash,
			Shortfall: -money.Round2(r.Total - m.Cash),
		}
	}

	r.CashAfter = money.Round2(m.Cash - r.Total)
	return r, nil
}

// Execute validates deltas and, if accepted, settles them into m.
// A rejected batch leaves m untouched.
func (b *Broker) Execute(m *market.Market, deltas []int) (Receipt, error) {
	r, err := b.Quote(m, deltas)
	if err != nil {
		b.logger.Info().
			Err(err).
			Str("reason", Reason(err)).
			Ints("deltas", deltas).
			Msg("trade batch rejected")
		return Receipt{}, err
	}

	for i, d := range r.Deltas {
		m.Instruments[i].Quantity += d
	}
	m.Cash = r.CashAfter

	b.logger.Info().
		Ints("deltas", r.Deltas).
		Float64("net", r.TotalAssetChange).
		Float64("total", r.Total).
		Float64("cash", m.Cash).
		Msg("trade batch settled")

	return r, nil
}
