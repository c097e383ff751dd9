package news

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/zappabad/stockmarket/internal/engine"
)

var (
	upHeadlines = []string{
		"%s SOARS ON HEAVY BUYING",
		"%s RALLIES AS TRADERS PILE IN",
		"RUMORS OF A TAKEOVER SEND %s SKYWARD",
	}
	downHeadlines = []string{
		"%s PLUNGES AS INVESTORS FLEE",
		"%s SLUMPS ON GLOOMY OUTLOOK",
		"SELL-OFF HAMMERS %s",
	}
)

// FromSpike turns a big price move into a bulletin for the given day.
// The headline is picked by day and slot so no random draws are consumed.
func FromSpike(day int, name string, ev engine.SpikeEvent) Item {
	pool := upHeadlines
	if ev.Direction == engine.DirectionDown {
		pool = downHeadlines
	}
	idx := (day + ev.Slot) % len(pool)
	if idx < 0 {
		idx = -idx
	}

	return Item{
		ID:       uuid.New().String(),
		Day:      day,
		Symbol:   ev.Symbol,
		Headline: fmt.Sprintf(pool[idx], name),
		Severity: SeverityImportant,
	}
}

// Market returns a market-wide bulletin.
func Market(day int, headline string) Item {
	return Item{
		ID:       uuid.New().String(),
		Day:      day,
		Headline: headline,
	}
}
