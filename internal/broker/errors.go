package broker

import (
	"errors"
	"fmt"

	"github.com/zappabad/stockmarket/internal/money"
)

var (
	ErrOversold         = errors.New("oversold")
	ErrInsufficientCash = errors.New("insufficient cash")
	ErrBatchSize        = errors.New("trade batch does not match instrument count")
)

// Rejection reasons reported to front ends.
const (
	ReasonOversold         = "oversold"
	ReasonInsufficientCash = "insufficient_cash"
)

// OversoldError reports the first instrument a batch tried to sell short.
type OversoldError struct {
	Slot      int
	Symbol    string
	Requested int // shares asked to sell
	Held      int
}

func (e *OversoldError) Error() string {
	return fmt.Sprintf("oversold %s: selling %d of %d shares", e.Symbol, e.Requested, e.Held)
}

func (e *OversoldError) Is(target error) bool { return target == ErrOversold }

// InsufficientCashError reports a batch whose fee-inclusive cost exceeds cash.
// Shortfall is cash minus the cost and is always negative.
type InsufficientCashError struct {
	Total     float64
	Cash      float64
	Shortfall float64
}

func (e *InsufficientCashError) Error() string {
	return fmt.Sprintf("insufficient cash: batch costs %s, cash is %s", money.Format(e.Total), money.Format(e.Cash))
}

func (e *InsufficientCashError) Is(target error) bool { return target == ErrInsufficientCash }

// Reason maps a rejection to its reason code, or "" for anything else.
func Reason(err error) string {
	switch {
	case errors.Is(err, ErrOversold):
		return ReasonOversold
	case errors.Is(err, ErrInsufficientCash):
		return ReasonInsufficientCash
	default:
		return ""
	}
}
