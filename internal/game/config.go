package game

import "github.com/zappabad/stockmarket/internal/broker"

// Config holds configuration for a game session.
type Config struct {
	// StartingCash is the player's opening cash balance.
	StartingCash float64
	// Broker is the configuration for trade settlement.
	Broker broker.Config
	// NewsCapacity is the number of bulletins kept on the tape.
	NewsCapacity int
	// HistoryDays is the number of day candles kept per stock.
	HistoryDays int
}

// DefaultConfig returns a Config with the classic game's rules.
func DefaultConfig() Config {
	return Config{
		StartingCash: 10000.00,
		Broker:       broker.DefaultConfig(),
		NewsCapacity: 50,
		HistoryDays:  60,
	}
}
