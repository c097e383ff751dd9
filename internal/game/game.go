// Package game drives a single-player session day by day.
package game

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/zappabad/stockmarket/internal/broker"
	"github.com/zappabad/stockmarket/internal/engine"
	"github.com/zappabad/stockmarket/internal/market"
	"github.com/zappabad/stockmarket/internal/news"
)

var ErrWrongState = errors.New("operation not allowed in current state")

// Game owns the market and both engines for one session.
// It is not safe for concurrent use.
type Game struct {
	ID string

	cfg     Config
	market  *market.Market
	prices  *engine.PriceEngine
	broker  *broker.Broker
	news    *news.Tape
	history *market.History

	day    int
	state  State
	logger zerolog.Logger
}

// New creates a session drawing all randomness from src.
func New(cfg Config, src market.Source, logger zerolog.Logger) *Game {
	def := DefaultConfig()
	if cfg.StartingCash < 0 {
		cfg.StartingCash = def.StartingCash
	}
	if cfg.NewsCapacity <= 0 {
		cfg.NewsCapacity = def.NewsCapacity
	}
	if cfg.HistoryDays <= 0 {
		cfg.HistoryDays = def.HistoryDays
	}

	id := uuid.New().String()
	logger = logger.With().Str("session", id).Logger()

	m := market.NewMarket(cfg.StartingCash)
	return &Game{
		ID:      id,
		cfg:     cfg,
		market:  m,
		prices:  engine.NewPriceEngine(src, logger),
		broker:  broker.NewBroker(cfg.Broker, logger),
		news:    news.NewTape(cfg.NewsCapacity),
		history: market.NewHistory(m.Len(), cfg.HistoryDays),
		state:   StateInit,
		logger:  logger,
	}
}

func (g *Game) require(s State) error {
	if g.state != s {
		return fmt.Errorf("%w: in %s, need %s", ErrWrongState, g.state, s)
	}
	return nil
}

// Start opens the market: draws the first trend and moves prices once from
// their listing values.
func (g *Game) Start() error {
	if err := g.require(StateInit); err != nil {
		return err
	}

	g.prices.DrawTrend(g.market)
	g.advance()
	g.state = StateTrade

	g.logger.Info().
		Float64("cash", g.market.Cash).
		Msg("market opened")
	return nil
}

// Quote validates a batch without settling it.
func (g *Game) Quote(deltas []int) (broker.Receipt, error) {
	return g.broker.Quote(g.market, deltas)
}

// Trade submits the day's batch. A rejected batch leaves the session in
// StateTrade so the player can try again.
func (g *Game) Trade(deltas []int) (broker.Receipt, error) {
	if err := g.require(StateTrade); err != nil {
		return broker.Receipt{}, err
	}

	r, err := g.broker.Execute(g.market, deltas)
	if err != nil {
		return broker.Receipt{}, err
	}
	g.state = StateEndOfDay
	return r, nil
}

// EndDay closes the trading day: counts down the trend and advances prices.
func (g *Game) EndDay() (DayReport, error) {
	if err := g.require(StateEndOfDay); err != nil {
		return DayReport{}, err
	}

	g.day++
	g.market.Trend.DaysRemaining--
	bulletins := g.advance()
	g.state = StateReview

	report := DayReport{
		Day:       g.day,
		Holdings:  holdings(g.market),
		Average:   exchangeAverage(g.market),
		Summary:   summarize(g.market),
		Bulletins: bulletins,
	}

	g.logger.Info().
		Int("day", g.day).
		Float64("average", report.Average.Current).
		Float64("total_assets", report.Summary.TotalAssets).
		Msg("day closed")

	return report, nil
}

// Continue resumes trading or ends the session. A trend that has run out is
// replaced only when play continues.
func (g *Game) Continue(yes bool) error {
	if err := g.require(StateReview); err != nil {
		return err
	}

	if !yes {
		g.Quit()
		return nil
	}
	if g.market.Trend.DaysRemaining == 0 {
		g.prices.RedrawTrend(g.market)
	}
	g.state = StateTrade
	return nil
}

// Quit ends the session from any state.
func (g *Game) Quit() {
	if g.state == StateGameOver {
		return
	}
	g.state = StateGameOver
	g.logger.Info().
		Int("day", g.day).
		Float64("total_assets", summarize(g.market).TotalAssets).
		Msg("game over")
}

func (g *Game) advance() []news.Item {
	events := g.prices.Advance(g.market)
	g.history.Record(g.day, g.market)

	var items []news.Item
	for _, ev := range events {
		spike, ok := ev.(engine.SpikeEvent)
		if !ok {
			continue
		}
		item := news.FromSpike(g.day, g.market.Instruments[spike.Slot].Stock.Name, spike)
		g.news.Publish(item)
		items = append(items, item)
	}
	return items
}

// State returns the current phase.
func (g *Game) State() State { return g.state }

// Day returns the number of closed trading days.
func (g *Game) Day() int { return g.day }

// Market returns the live market. Callers must not mutate it.
func (g *Game) Market() *market.Market { return g.market }

// Fee returns the brokerage rate.
func (g *Game) Fee() float64 { return g.broker.Fee() }

// StartingCash returns the configured opening balance.
func (g *Game) StartingCash() float64 { return g.cfg.StartingCash }

// Holdings returns the current table rows.
func (g *Game) Holdings() []Holding { return holdings(g.market) }

// ExchangeAverage returns today's and yesterday's average price.
func (g *Game) ExchangeAverage() Average { return exchangeAverage(g.market) }

// Summary returns stock, cash and total assets.
func (g *Game) Summary() AssetSummary { return summarize(g.market) }

// News returns the latest n bulletins, oldest first.
func (g *Game) News(n int) []news.Item { return g.news.Latest(n) }

// Candles returns the recorded day candles for slot.
func (g *Game) Candles(slot int) []market.Candle { return g.history.Candles(slot) }
