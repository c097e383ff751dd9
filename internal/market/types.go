package market

import "github.com/zappabad/stockmarket/internal/money"

// Listing is the fixed opening data for one instrument.
type Listing struct {
	Name   string
	Symbol string
	Price  float64
}

// Listings returns the five instruments traded on the exchange, in slot order.
func Listings() []Listing {
	return []Listing{
		{Name: "INT. BALLISTIC MISSILES", Symbol: "IBM", Price: 100.0},
		{Name: "RED CROSS OF AMERICA", Symbol: "RCA", Price: 85.0},
		{Name: "LICHTENSTEIN, BUMRAP & JOKE", Symbol: "LBJ", Price: 150.0},
		{Name: "AMERICAN BANKRUPT CO.", Symbol: "ABC", Price: 140.0},
		{Name: "CENSURED BOOKS STORE", Symbol: "CBS", Price: 110.0},
	}
}

// Stock is the price state of one instrument.
//
// PriceChange is stored as computed by the price engine, not derived from the
// other two fields. Prices have no floor and may reach zero or go negative.
type Stock struct {
	Name          string
	Symbol        string
	CurrentPrice  float64
	PreviousPrice float64
	PriceChange   float64
}

// NewStock creates a stock whose previous price equals its opening price.
func NewStock(name, symbol string, price float64) Stock {
	return Stock{
		Name:          name,
		Symbol:        symbol,
		CurrentPrice:  price,
		PreviousPrice: price,
	}
}

// Instrument couples a stock with the player's holding in it.
// Slot is the instrument's fixed position on the exchange.
type Instrument struct {
	Slot     int
	Stock    Stock
	Quantity int
}

// Value returns the market value of the holding at the current price.
func (i Instrument) Value() float64 {
	return money.Round2(float64(i.Quantity) * i.Stock.CurrentPrice)
}

// Trend is the slope shared by every stock until DaysRemaining runs out.
type Trend struct {
	Slope         float64
	DaysRemaining int
}

// BigChange is a spike timer targeting one slot.
type BigChange struct {
	Slot          int
	DaysRemaining int
}
