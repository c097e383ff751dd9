package panels

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/zappabad/stockmarket/internal/news"
	"github.com/zappabad/stockmarket/tui/styles"
)

// NewsPanel displays the bulletin tape, newest last.
type NewsPanel struct {
	items         []news.Item
	selectedIndex int
	scrollOffset  int
	focused       bool
	width         int
	height        int
}

// NewNewsPanel creates a new news panel.
func NewNewsPanel() *NewsPanel {
	return &NewsPanel{}
}

// Init initializes the panel.
func (p *NewsPanel) Init() tea.Cmd {
	return nil
}

func (p *NewsPanel) visibleItems() int {
	return max(p.height-4, 1)
}

// Update handles messages for the panel.
func (p *NewsPanel) Update(msg tea.Msg) (*NewsPanel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if !p.focused {
			return p, nil
		}
		switch {
		case key.Matches(msg, key.NewBinding(key.WithKeys("up", "k"))):
			if p.selectedIndex > 0 {
				p.selectedIndex--
				if p.selectedIndex < p.scrollOffset {
					p.scrollOffset = p.selectedIndex
				}
			}
		case key.Matches(msg, key.NewBinding(key.WithKeys("down", "j"))):
			if p.selectedIndex < len(p.items)-1 {
				p.selectedIndex++
				if p.selectedIndex >= p.scrollOffset+p.visibleItems() {
					p.scrollOffset = p.selectedIndex - p.visibleItems() + 1
				}
			}
		}
	}
	return p, nil
}

// View renders the panel.
func (p *NewsPanel) View() string {
	var content strings.Builder

	if len(p.items) == 0 {
		content.WriteString(styles.MutedStyle.Render("No bulletins yet"))
	} else {
		start := p.scrollOffset
		end := min(start+p.visibleItems(), len(p.items))

		for i := start; i < end; i++ {
			item := p.items[i]

			headline := item.Headline
			if limit := p.width - 12; limit > 3 && len(headline) > limit {
				headline = headline[:limit-3] + "..."
			}

			headlineStyle := styles.NewsNormalStyle
			if item.Severity == news.SeverityImportant {
				headlineStyle = styles.NewsImportantStyle
			}

			line := fmt.Sprintf("%s %s",
				styles.DayStyle.Render(fmt.Sprintf("D%03d", item.Day)),
				headlineStyle.Render(headline))

			if i == p.selectedIndex && p.focused {
				line = styles.SelectedRowStyle.Render(line)
			}

			content.WriteString(line)
			if i < end-1 {
				content.WriteString("\n")
			}
		}

		if len(p.items) > p.visibleItems() {
			content.WriteString("\n")
			content.WriteString(styles.MutedStyle.Render(fmt.Sprintf(" (%d/%d)", p.selectedIndex+1, len(p.items))))
		}
	}

	title := styles.RenderTitle("News", p.focused)
	panel := lipgloss.JoinVertical(lipgloss.Left, title, content.String())

	return styles.Panel(p.focused).Width(p.width - 2).Height(p.height - 2).Render(panel)
}

// SetFocus sets the focus state of the panel.
func (p *NewsPanel) SetFocus(focused bool) {
	p.focused = focused
}

// SetSize sets the panel dimensions.
func (p *NewsPanel) SetSize(width, height int) {
	p.width = width
	p.height = height
}

// SetNews replaces the bulletins and scrolls to the newest one.
func (p *NewsPanel) SetNews(items []news.Item) {
	grew := len(items) > len(p.items)
	p.items = items
	if grew || p.selectedIndex >= len(items) {
		p.selectedIndex = max(len(items)-1, 0)
		p.scrollOffset = max(len(items)-p.visibleItems(), 0)
	}
}

// Selected returns the highlighted bulletin.
func (p *NewsPanel) Selected() (news.Item, bool) {
	if p.selectedIndex >= 0 && p.selectedIndex < len(p.items) {
		return p.items[p.selectedIndex], true
	}
	return news.Item{}, false
}
