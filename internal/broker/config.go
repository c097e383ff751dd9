package broker

// Config holds configuration for the broker.
type Config struct {
	// Fee is the brokerage rate charged on the net value of a trade batch.
	Fee float64
}

// DefaultConfig returns a Config with the exchange's standard 1% fee.
func DefaultConfig() Config {
	return Config{
		Fee: 0.01,
	}
}
