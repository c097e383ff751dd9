package game

import (
	"github.com/zappabad/stockmarket/internal/market"
	"github.com/zappabad/stockmarket/internal/money"
	"github.com/zappabad/stockmarket/internal/news"
)

// Holding is one row of the end-of-day table.
type Holding struct {
	Slot     int
	Name     string
	Symbol   string
	Price    float64
	Change   float64
	Quantity int
	Value    float64
}

// AssetSummary totals the player's wealth.
type AssetSummary struct {
	StockAssets float64
	Cash        float64
	TotalAssets float64
}

// Average is the exchange average for the current and previous day.
type Average struct {
	Current   float64
	Previous  float64
	NetChange float64
}

// DayReport is everything a front end shows after a trading day closes.
type DayReport struct {
	Day       int
	Holdings  []Holding
	Average   Average
	Summary   AssetSummary
	Bulletins []news.Item
}

func holdings(m *market.Market) []Holding {
	out := make([]Holding, len(m.Instruments))
	for i, inst := range m.Instruments {
		out[i] = Holding{
			Slot:     inst.Slot,
			Name:     inst.Stock.Name,
			Symbol:   inst.Stock.Symbol,
			Price:    inst.Stock.CurrentPrice,
			Change:   inst.Stock.PriceChange,
			Quantity: inst.Quantity,
			Value:    inst.Value(),
		}
	}
	return out
}

func exchangeAverage(m *market.Market) Average {
	if len(m.Instruments) == 0 {
		return Average{}
	}
	var cur, prev float64
	for _, inst := range m.Instruments {
		cur += inst.Stock.CurrentPrice
		prev += inst.Stock.PreviousPrice
	}
	n := float64(len(m.Instruments))
	cur = money.Round2(cur / n)
	prev = money.Round2(prev / n)
	return Average{
		Current:   cur,
		Previous:  prev,
		NetChange: money.Round2(cur - prev),
	}
}

func summarize(m *market.Market) AssetSummary {
	stock := m.StockValue()
	return AssetSummary{
		StockAssets: stock,
		Cash:        m.Cash,
		TotalAssets: money.Round2(stock + m.Cash),
	}
}
