package panels

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zappabad/stockmarket/internal/market"
	"github.com/zappabad/stockmarket/internal/money"
	"github.com/zappabad/stockmarket/tui/styles"
)

// CandlestickPanel charts one stock's daily candles.
type CandlestickPanel struct {
	symbol  string
	candles []market.Candle

	focused bool
	width   int
	height  int
}

// NewCandlestickPanel creates a new candlestick chart panel.
func NewCandlestickPanel() *CandlestickPanel {
	return &CandlestickPanel{}
}

// Init initializes the panel.
func (p *CandlestickPanel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the panel.
func (p *CandlestickPanel) Update(msg tea.Msg) (*CandlestickPanel, tea.Cmd) {
	return p, nil
}

// View renders the panel.
func (p *CandlestickPanel) View() string {
	name := "No stock"
	if p.symbol != "" {
		name = p.symbol
	}

	var content string
	if len(p.candles) == 0 {
		content = styles.MutedStyle.Render("No trading days yet...")
	} else {
		content = renderCandles(p.candles, p.width-12, max(p.height-6, 5))
	}

	title := styles.RenderTitle(fmt.Sprintf("Chart - %s", name), p.focused)
	panel := lipgloss.JoinVertical(lipgloss.Left, title, content)

	return styles.Panel(p.focused).Width(p.width - 2).Height(p.height - 2).Render(panel)
}

// renderCandles draws the most recent candles that fit in width columns.
func renderCandles(candles []market.Candle, width, height int) string {
	// 9 chars for the price axis plus a separator
	chartWidth := max(width-10, 10)

	// Each candle takes a body column and a gap
	show := min(max(chartWidth/2, 1), len(candles))
	display := candles[len(candles)-show:]

	lo, hi := display[0].Low, display[0].High
	for _, c := range display {
		lo = min(lo, c.Low)
		hi = max(hi, c.High)
	}
	pad := (hi - lo) * 0.1
	if pad < 0.5 {
		pad = 0.5
	}
	lo -= pad
	hi += pad

	// 2 rows for the day axis
	rows := max(height-3, 5)

	var b strings.Builder
	for row := 0; row < rows; row++ {
		price := rowPrice(row, lo, hi, rows)
		b.WriteString(styles.ChartAxisStyle.Render(fmt.Sprintf("%8s │", money.Format(price))))

		for _, c := range display {
			style := styles.CandleUpStyle
			if c.Close < c.Open {
				style = styles.CandleDownStyle
			}
			b.WriteString(style.Render(string(candleGlyph(c, row, lo, hi, rows))))
			b.WriteString(" ")
		}
		b.WriteString("\n")
	}

	b.WriteString(styles.ChartAxisStyle.Render("─────────┴"))
	for range display {
		b.WriteString(styles.ChartAxisStyle.Render("──"))
	}
	b.WriteString("\n")

	b.WriteString("          ")
	for i, c := range display {
		if i == 0 || i == len(display)-1 || i%5 == 0 {
			b.WriteString(styles.ChartLabelStyle.Render(fmt.Sprintf("%-2d", c.Day%100)))
		} else {
			b.WriteString("  ")
		}
	}

	return b.String()
}

// candleGlyph returns the rune drawn for c at the given row.
func candleGlyph(c market.Candle, row int, lo, hi float64, rows int) rune {
	price := rowPrice(row, lo, hi, rows)

	top, bottom := max(c.Open, c.Close), min(c.Open, c.Close)
	tolerance := (hi - lo) / float64(rows*2)

	switch {
	case price <= top+tolerance && price >= bottom-tolerance:
		return '┃'
	case price <= c.High+tolerance && price > top:
		return '│'
	case price >= c.Low-tolerance && price < bottom:
		return '│'
	default:
		return ' '
	}
}

func rowPrice(row int, lo, hi float64, rows int) float64 {
	if rows <= 1 {
		return lo
	}
	return hi - float64(row)/float64(rows-1)*(hi-lo)
}

// SetFocus sets the focus state of the panel.
func (p *CandlestickPanel) SetFocus(focused bool) {
	p.focused = focused
}

// SetSize sets the panel dimensions.
func (p *CandlestickPanel) SetSize(width, height int) {
	p.width = width
	p.height = height
}

// SetSeries sets the stock being charted and its candles.
func (p *CandlestickPanel) SetSeries(symbol string, candles []market.Candle) {
	p.symbol = symbol
	p.candles = candles
}

// Symbol returns the charted stock.
func (p *CandlestickPanel) Symbol() string {
	return p.symbol
}
