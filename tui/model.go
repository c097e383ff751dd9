package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/zappabad/stockmarket/internal/broker"
	"github.com/zappabad/stockmarket/internal/game"
	"github.com/zappabad/stockmarket/internal/money"
	"github.com/zappabad/stockmarket/tui/panels"
	"github.com/zappabad/stockmarket/tui/styles"
)

// PanelFocus represents which panel is currently focused.
type PanelFocus int

const (
	FocusMarket PanelFocus = 0
	FocusChart  PanelFocus = 1
	FocusNews   PanelFocus = 2
	FocusTrade  PanelFocus = 3

	panelCount = 4
)

// newsLines is how many bulletins the news panel keeps.
const newsLines = 50

// Model is the main TUI application model.
type Model struct {
	game   *game.Game
	logger zerolog.Logger

	// Panels
	marketPanel *panels.MarketPanel
	chartPanel  *panels.CandlestickPanel
	newsPanel   *panels.NewsPanel
	tradePanel  *panels.TradePanel

	focusedPanel PanelFocus

	// last closed day, shown while waiting for continue
	report *game.DayReport

	width  int
	height int

	statusMsg string
	ready     bool
}

// NewModel creates a new TUI model. The game must already be started.
func NewModel(g *game.Game, logger zerolog.Logger) *Model {
	m := &Model{
		game:         g,
		logger:       logger,
		marketPanel:  panels.NewMarketPanel(),
		chartPanel:   panels.NewCandlestickPanel(),
		newsPanel:    panels.NewNewsPanel(),
		tradePanel:   panels.NewTradePanel(g.Market().Symbols()),
		focusedPanel: FocusTrade,
	}
	m.refresh()
	return m
}

// Init initializes the model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		m.marketPanel.Init(),
		m.chartPanel.Init(),
		m.newsPanel.Init(),
		m.tradePanel.Init(),
	)
}

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.game.Quit()
			return m, tea.Quit
		}

		switch m.game.State() {
		case game.StateReview:
			return m, m.handleReviewKey(msg)
		case game.StateGameOver:
			switch msg.String() {
			case "q", "enter", "esc":
				return m, tea.Quit
			}
			return m, nil
		}

		switch msg.String() {
		case "q":
			if m.focusedPanel != FocusTrade {
				m.game.Quit()
				return m, nil
			}
		case "tab":
			m.cycleFocus(1)
			return m, nil
		case "shift+tab":
			m.cycleFocus(-1)
			return m, nil
		case "f1":
			m.setFocus(FocusMarket)
			return m, nil
		case "f2":
			m.setFocus(FocusChart)
			return m, nil
		case "f3":
			m.setFocus(FocusNews)
			return m, nil
		case "f4":
			m.setFocus(FocusTrade)
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

	case panels.StockSelectedMsg:
		m.refreshChart()

	case panels.TradeSubmitMsg:
		m.submitTrade(msg.Deltas)
		return m, nil
	}

	if m.game.State() == game.StateTrade {
		m.updateFocusedPanel(msg, &cmds)
	}

	return m, tea.Batch(cmds...)
}

func (m *Model) handleReviewKey(msg tea.KeyMsg) tea.Cmd {
	var yes bool
	switch strings.ToLower(msg.String()) {
	case "y", "enter":
		yes = true
	case "n", "q":
		yes = false
	default:
		return nil
	}

	if err := m.game.Continue(yes); err != nil {
		m.logger.Error().Err(err).Msg("continue failed")
		m.statusMsg = err.Error()
		return nil
	}
	m.report = nil
	if yes {
		m.statusMsg = fmt.Sprintf("Day %d: enter your trades", m.game.Day()+1)
		m.tradePanel.Reset()
		m.setFocus(FocusTrade)
	}
	m.refresh()
	return nil
}

func (m *Model) updateFocusedPanel(msg tea.Msg, cmds *[]tea.Cmd) {
	var cmd tea.Cmd

	switch m.focusedPanel {
	case FocusMarket:
		m.marketPanel, cmd = m.marketPanel.Update(msg)
	case FocusChart:
		m.chartPanel, cmd = m.chartPanel.Update(msg)
	case FocusNews:
		m.newsPanel, cmd = m.newsPanel.Update(msg)
	case FocusTrade:
		m.tradePanel, cmd = m.tradePanel.Update(msg)
		m.updateQuote()
	}

	if cmd != nil {
		*cmds = append(*cmds, cmd)
	}
}

func (m *Model) submitTrade(deltas []int) {
	if _, err := m.game.Trade(deltas); err != nil {
		m.statusMsg = rejectionMessage(err)
		return
	}

	report, err := m.game.EndDay()
	if err != nil {
		m.logger.Error().Err(err).Msg("end of day failed")
		m.statusMsg = err.Error()
		return
	}
	m.report = &report
	m.statusMsg = fmt.Sprintf("End of day %d", report.Day)
	m.tradePanel.Reset()
	m.refresh()
}

func rejectionMessage(err error) string {
	var oversold *broker.OversoldError
	var short *broker.InsufficientCashError
	switch {
	case errors.As(err, &oversold):
		return fmt.Sprintf("Oversold %s: you hold %d, tried to sell %d", oversold.Symbol, oversold.Held, oversold.Requested)
	case errors.As(err, &short):
		return fmt.Sprintf("You have used $%s more than you have", money.Format(short.Shortfall))
	default:
		return err.Error()
	}
}

func (m *Model) updateQuote() {
	deltas, err := m.tradePanel.Deltas()
	if err != nil {
		m.tradePanel.SetQuote("")
		return
	}
	r, err := m.game.Quote(deltas)
	if err != nil {
		m.tradePanel.SetQuote(styles.ErrorStyle.Render(rejectionMessage(err)))
		return
	}
	if r.TotalAssetChange == 0 {
		m.tradePanel.SetQuote("")
		return
	}
	m.tradePanel.SetQuote(fmt.Sprintf("net %s fee %s cash after %s",
		money.Format(r.TotalAssetChange), money.Format(r.Fee), money.Format(r.CashAfter)))
}

func (m *Model) refresh() {
	m.marketPanel.SetHoldings(m.game.Holdings())
	m.newsPanel.SetNews(m.game.News(newsLines))
	m.refreshChart()
}

func (m *Model) refreshChart() {
	sel, ok := m.marketPanel.Selected()
	if !ok {
		return
	}
	m.chartPanel.SetSeries(sel.Symbol, m.game.Candles(sel.Slot))
}

// View renders the UI.
func (m *Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	if m.game.State() == game.StateGameOver {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.renderGameOver())
	}

	m.marketPanel.SetFocus(m.focusedPanel == FocusMarket)
	m.chartPanel.SetFocus(m.focusedPanel == FocusChart)
	m.newsPanel.SetFocus(m.focusedPanel == FocusNews)
	m.tradePanel.SetFocus(m.focusedPanel == FocusTrade && m.game.State() == game.StateTrade)

	// Layout:
	// ┌──────────────────────┬──────────────────────┐
	// │        Market        │        Chart         │
	// ├──────────────────────┼──────────────────────┤
	// │         News         │   Trade / Review     │
	// └──────────────────────┴──────────────────────┘

	leftWidth := m.width / 2
	rightWidth := m.width - leftWidth

	topHeight := (m.height - 1) / 2
	bottomHeight := m.height - topHeight - 1

	m.marketPanel.SetSize(leftWidth, topHeight)
	m.chartPanel.SetSize(rightWidth, topHeight)
	topRow := lipgloss.JoinHorizontal(lipgloss.Top,
		m.marketPanel.View(),
		m.chartPanel.View(),
	)

	m.newsPanel.SetSize(leftWidth, bottomHeight)
	var right string
	if m.report != nil {
		right = styles.PanelStyle.Width(rightWidth - 2).Height(bottomHeight - 2).Render(m.renderReport(*m.report))
	} else {
		m.tradePanel.SetSize(rightWidth, bottomHeight)
		right = m.tradePanel.View()
	}
	bottomRow := lipgloss.JoinHorizontal(lipgloss.Top, m.newsPanel.View(), right)

	return lipgloss.JoinVertical(lipgloss.Left, topRow, bottomRow, m.renderStatusBar())
}

func (m *Model) renderReport(r game.DayReport) string {
	var b strings.Builder

	b.WriteString(styles.RenderTitle(fmt.Sprintf("End of Day %d", r.Day), true))
	b.WriteString("\n")
	fmt.Fprintf(&b, "Exchange average  %s  %s\n\n",
		money.Format(r.Average.Current), styles.RenderChange(r.Average.NetChange))
	fmt.Fprintf(&b, "Stock assets  $ %s\n", money.Format(r.Summary.StockAssets))
	fmt.Fprintf(&b, "Cash          $ %s\n", money.Format(r.Summary.Cash))
	fmt.Fprintf(&b, "Total assets  $ %s\n\n", money.Format(r.Summary.TotalAssets))

	for _, item := range r.Bulletins {
		b.WriteString(styles.NewsImportantStyle.Render(item.Headline))
		b.WriteString("\n")
	}
	if len(r.Bulletins) > 0 {
		b.WriteString("\n")
	}

	b.WriteString(styles.StatusBarKeyStyle.Render("Continue trading? (y/n)"))
	return b.String()
}

func (m *Model) renderGameOver() string {
	sum := m.game.Summary()
	gain := money.Round2(sum.TotalAssets - m.game.StartingCash())

	var b strings.Builder
	b.WriteString(styles.TitleStyle.Render("GAME OVER"))
	b.WriteString("\n\n")
	fmt.Fprintf(&b, "Days traded   %d\n", m.game.Day())
	fmt.Fprintf(&b, "Stock assets  $ %s\n", money.Format(sum.StockAssets))
	fmt.Fprintf(&b, "Cash          $ %s\n", money.Format(sum.Cash))
	fmt.Fprintf(&b, "Total assets  $ %s  %s\n\n", money.Format(sum.TotalAssets), styles.RenderChange(gain))
	b.WriteString(styles.MutedStyle.Render("HOPE YOU HAD FUN!!  (q to exit)"))

	return styles.DialogStyle.Render(b.String())
}

func (m *Model) renderStatusBar() string {
	sum := m.game.Summary()
	avg := m.game.ExchangeAverage()

	info := fmt.Sprintf("Day %d │ Cash $%s │ Total $%s │ Avg %s ",
		m.game.Day(), money.Format(sum.Cash), money.Format(sum.TotalAssets), money.Format(avg.Current))
	info += styles.RenderChange(avg.NetChange)

	help := []string{
		styles.StatusBarKeyStyle.Render("F1-F4") + styles.StatusBarDescStyle.Render(" panels"),
		styles.StatusBarKeyStyle.Render("↑↓") + styles.StatusBarDescStyle.Render(" select"),
		styles.StatusBarKeyStyle.Render("Enter") + styles.StatusBarDescStyle.Render(" trade"),
		styles.StatusBarKeyStyle.Render("ctrl+c") + styles.StatusBarDescStyle.Render(" quit"),
	}
	helpStr := strings.Join(help, " │ ")

	status := ""
	if m.statusMsg != "" {
		status = " │ " + m.statusMsg
	}

	return styles.StatusBarStyle.Width(m.width).Render(info + " │ " + helpStr + status)
}

func (m *Model) setFocus(panel PanelFocus) {
	m.focusedPanel = panel
}

func (m *Model) cycleFocus(step int) {
	m.focusedPanel = PanelFocus((int(m.focusedPanel) + step + panelCount) % panelCount)
}

// StatusMessage returns the last message shown in the status bar.
func (m *Model) StatusMessage() string {
	return m.statusMsg
}

// Run starts the game if needed and runs the UI until the player quits.
func Run(ctx context.Context, g *game.Game, logger zerolog.Logger) error {
	if g.State() == game.StateInit {
		if err := g.Start(); err != nil {
			return err
		}
	}
	p := tea.NewProgram(NewModel(g, logger), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
