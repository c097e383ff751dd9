package panels

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zappabad/stockmarket/tui/styles"
)

// TradePanel collects one signed share count per stock and submits them as a batch.
type TradePanel struct {
	symbols []string
	inputs  []textinput.Model

	// current is an input index, or len(inputs) for the submit button
	current int

	quote   string
	errText string

	focused bool
	width   int
	height  int
}

// NewTradePanel creates a trade panel with one input per symbol.
func NewTradePanel(symbols []string) *TradePanel {
	inputs := make([]textinput.Model, len(symbols))
	for i := range symbols {
		in := textinput.New()
		in.Placeholder = "0"
		in.Width = 8
		in.CharLimit = 7
		inputs[i] = in
	}
	return &TradePanel{
		symbols: symbols,
		inputs:  inputs,
	}
}

// Init initializes the panel.
func (p *TradePanel) Init() tea.Cmd {
	return textinput.Blink
}

func (p *TradePanel) onSubmit() bool {
	return p.current == len(p.inputs)
}

// Update handles messages for the panel.
func (p *TradePanel) Update(msg tea.Msg) (*TradePanel, tea.Cmd) {
	if !p.focused {
		return p, nil
	}

	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, key.NewBinding(key.WithKeys("down"))):
			p.moveTo(p.current + 1)
			return p, nil

		case key.Matches(msg, key.NewBinding(key.WithKeys("up"))):
			p.moveTo(p.current - 1)
			return p, nil

		case key.Matches(msg, key.NewBinding(key.WithKeys("enter"))):
			if p.onSubmit() {
				return p, p.submit()
			}
			p.moveTo(p.current + 1)
			return p, nil

		case key.Matches(msg, key.NewBinding(key.WithKeys("esc"))):
			p.Reset()
			return p, nil
		}
	}

	if p.onSubmit() {
		return p, nil
	}

	var cmd tea.Cmd
	p.inputs[p.current], cmd = p.inputs[p.current].Update(msg)
	p.errText = ""
	return p, cmd
}

// View renders the panel.
func (p *TradePanel) View() string {
	var content strings.Builder

	content.WriteString(styles.LabelStyle.Render("+N buys, -N sells"))
	content.WriteString("\n")

	for i, sym := range p.symbols {
		labelStyle := styles.LabelStyle
		inputStyle := styles.InputStyle
		if i == p.current && p.focused {
			labelStyle = labelStyle.Foreground(styles.PrimaryColor)
			inputStyle = styles.FocusedInputStyle
		}
		row := lipgloss.JoinHorizontal(lipgloss.Center,
			labelStyle.Render(fmt.Sprintf("%-6s", sym)),
			inputStyle.Render(p.inputs[i].View()))
		content.WriteString(row)
		content.WriteString("\n")
	}

	submitStyle := styles.InputStyle
	if p.onSubmit() && p.focused {
		submitStyle = styles.FocusedInputStyle.Bold(true).Foreground(styles.PrimaryColor)
	}
	content.WriteString(submitStyle.Render("  [Trade & End Day]  "))

	content.WriteString("\n")
	switch {
	case p.errText != "":
		content.WriteString(styles.ErrorStyle.Render(p.errText))
	case p.quote != "":
		content.WriteString(styles.HeaderStyle.Render("Quote: ") + p.quote)
	}

	title := styles.RenderTitle("Trade", p.focused)
	panel := lipgloss.JoinVertical(lipgloss.Left, title, content.String())

	return styles.Panel(p.focused).Width(p.width - 2).Height(p.height - 2).Render(panel)
}

func (p *TradePanel) moveTo(i int) {
	n := len(p.inputs) + 1
	p.current = ((i % n) + n) % n
	p.syncFocus()
}

func (p *TradePanel) syncFocus() {
	for i := range p.inputs {
		if p.focused && i == p.current {
			p.inputs[i].Focus()
		} else {
			p.inputs[i].Blur()
		}
	}
}

// Deltas parses the inputs. Blank inputs count as zero.
func (p *TradePanel) Deltas() ([]int, error) {
	out := make([]int, len(p.inputs))
	for i, in := range p.inputs {
		v := strings.TrimSpace(in.Value())
		if v == "" {
			continue
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("%s: whole number of shares expected", p.symbols[i])
		}
		out[i] = n
	}
	return out, nil
}

func (p *TradePanel) submit() tea.Cmd {
	deltas, err := p.Deltas()
	if err != nil {
		p.errText = err.Error()
		return nil
	}
	return func() tea.Msg {
		return TradeSubmitMsg{Deltas: deltas}
	}
}

// SetQuote shows a preview line under the inputs.
func (p *TradePanel) SetQuote(quote string) {
	p.quote = quote
}

// SetFocus sets the focus state of the panel.
func (p *TradePanel) SetFocus(focused bool) {
	p.focused = focused
	p.syncFocus()
}

// SetSize sets the panel dimensions.
func (p *TradePanel) SetSize(width, height int) {
	p.width = width
	p.height = height
}

// Reset clears the inputs.
func (p *TradePanel) Reset() {
	for i := range p.inputs {
		p.inputs[i].SetValue("")
	}
	p.current = 0
	p.quote = ""
	p.errText = ""
	p.syncFocus()
}

// TradeSubmitMsg is sent when the player submits a batch.
type TradeSubmitMsg struct {
	Deltas []int
}
