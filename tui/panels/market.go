package panels

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zappabad/stockmarket/internal/game"
	"github.com/zappabad/stockmarket/internal/money"
	"github.com/zappabad/stockmarket/tui/styles"
)

// MarketPanel lists every stock with its price, change and the player's holding.
type MarketPanel struct {
	rows          []game.Holding
	selectedIndex int
	focused       bool
	width         int
	height        int
}

// NewMarketPanel creates a new market panel.
func NewMarketPanel() *MarketPanel {
	return &MarketPanel{}
}

// Init initializes the panel.
func (p *MarketPanel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the panel.
func (p *MarketPanel) Update(msg tea.Msg) (*MarketPanel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if !p.focused {
			return p, nil
		}
		prev := p.selectedIndex
		switch {
		case key.Matches(msg, key.NewBinding(key.WithKeys("up", "k"))):
			if p.selectedIndex > 0 {
				p.selectedIndex--
			}
		case key.Matches(msg, key.NewBinding(key.WithKeys("down", "j"))):
			if p.selectedIndex < len(p.rows)-1 {
				p.selectedIndex++
			}
		}
		if p.selectedIndex != prev {
			slot := p.selectedIndex
			return p, func() tea.Msg { return StockSelectedMsg{Slot: slot} }
		}
	}
	return p, nil
}

// View renders the panel.
func (p *MarketPanel) View() string {
	var content strings.Builder

	header := fmt.Sprintf("%-6s %10s %9s %7s %11s", "Stock", "Price", "Change", "Held", "Value")
	content.WriteString(styles.HeaderStyle.Render(header))
	content.WriteString("\n")

	for i, h := range p.rows {
		change := fmt.Sprintf("%9s", money.FormatSigned(h.Change))
		row := fmt.Sprintf("%-6s %10s %s %7d %11s",
			h.Symbol, money.Format(h.Price), styles.ChangeStyle(h.Change).Render(change), h.Quantity, money.Format(h.Value))

		if i == p.selectedIndex && p.focused {
			row = styles.SelectedRowStyle.Render(row)
		} else {
			row = styles.RowStyle.Render(row)
		}
		content.WriteString(row)
		if i < len(p.rows)-1 {
			content.WriteString("\n")
		}
	}

	if sel, ok := p.Selected(); ok {
		content.WriteString("\n\n")
		content.WriteString(styles.MutedStyle.Render(sel.Name))
	}

	title := styles.RenderTitle("Market", p.focused)
	panel := lipgloss.JoinVertical(lipgloss.Left, title, content.String())

	return styles.Panel(p.focused).Width(p.width - 2).Height(p.height - 2).Render(panel)
}

// SetFocus sets the focus state of the panel.
func (p *MarketPanel) SetFocus(focused bool) {
	p.focused = focused
}

// SetSize sets the panel dimensions.
func (p *MarketPanel) SetSize(width, height int) {
	p.width = width
	p.height = height
}

// SetHoldings replaces the table rows.
func (p *MarketPanel) SetHoldings(rows []game.Holding) {
	p.rows = rows
	if p.selectedIndex >= len(rows) {
		p.selectedIndex = max(len(rows)-1, 0)
	}
}

// Selected returns the highlighted row.
func (p *MarketPanel) Selected() (game.Holding, bool) {
	if p.selectedIndex >= 0 && p.selectedIndex < len(p.rows) {
		return p.rows[p.selectedIndex], true
	}
	return game.Holding{}, false
}

// StockSelectedMsg is sent when the highlighted stock changes.
type StockSelectedMsg struct {
	Slot int
}
