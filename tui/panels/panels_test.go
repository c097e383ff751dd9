package panels

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/zappabad/stockmarket/internal/market"
	"github.com/zappabad/stockmarket/internal/news"
)

func typeInto(p *TradePanel, s string) {
	for _, r := range s {
		p.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func TestTradePanelDeltas(t *testing.T) {
	p := NewTradePanel([]string{"IBM", "RCA", "LBJ"})
	p.SetFocus(true)

	typeInto(p, "+10")
	p.Update(tea.KeyMsg{Type: tea.KeyDown})
	p.Update(tea.KeyMsg{Type: tea.KeyDown})
	typeInto(p, "-4")

	got, err := p.Deltas()
	if err != nil {
		t.Fatalf("Deltas: %v", err)
	}
	want := []int{10, 0, -4}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}

func TestTradePanelSubmit(t *testing.T) {
	p := NewTradePanel([]string{"IBM", "RCA"})
	p.SetFocus(true)
	typeInto(p, "5")

	// enter walks the inputs, then presses the button
	p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	_, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected submit command")
	}
	msg, ok := cmd().(TradeSubmitMsg)
	if !ok {
		t.Fatalf("expected TradeSubmitMsg, got %T", cmd())
	}
	if msg.Deltas[0] != 5 || msg.Deltas[1] != 0 {
		t.Fatalf("unexpected deltas %v", msg.Deltas)
	}
}

func TestTradePanelRejectsText(t *testing.T) {
	p := NewTradePanel([]string{"IBM"})
	p.SetFocus(true)
	typeInto(p, "ten")

	if _, err := p.Deltas(); err == nil {
		t.Fatal("expected parse error")
	}
	p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	_, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd != nil {
		t.Fatal("expected no submit for bad input")
	}
	p.SetSize(60, 20)
	if !strings.Contains(p.View(), "whole number") {
		t.Fatal("expected error in view")
	}

	p.Reset()
	if d, err := p.Deltas(); err != nil || d[0] != 0 {
		t.Fatalf("expected reset to zero, got %v %v", d, err)
	}
}

func TestTradePanelIgnoresKeysWhenBlurred(t *testing.T) {
	p := NewTradePanel([]string{"IBM"})
	typeInto(p, "7")
	if d, _ := p.Deltas(); d[0] != 0 {
		t.Fatalf("expected blurred panel to ignore input, got %v", d)
	}
}

func TestNewsPanelFollowsNewest(t *testing.T) {
	p := NewNewsPanel()
	p.SetSize(60, 8)

	var items []news.Item
	for i := 0; i < 10; i++ {
		items = append(items, news.Market(i, "MARKET STEADY"))
	}
	p.SetNews(items)

	sel, ok := p.Selected()
	if !ok || sel.Day != 9 {
		t.Fatalf("expected newest selected, got %+v", sel)
	}
	if !strings.Contains(p.View(), "D009") {
		t.Fatal("expected newest bulletin visible")
	}
}

func TestCandleGlyph(t *testing.T) {
	c := market.Candle{Day: 1, Open: 100, Close: 110, High: 110, Low: 95}

	// 11 rows spanning 90..120: row r is price 120 - 3r
	tests := []struct {
		row  int
		want rune
	}{
		{0, ' '},  // 120
		{4, '┃'},  // 108
		{6, '┃'},  // 102
		{8, '│'},  // 96
		{10, ' '}, // 90
	}
	for _, tt := range tests {
		if got := candleGlyph(c, tt.row, 90, 120, 11); got != tt.want {
			t.Errorf("row %d: expected %q, got %q", tt.row, tt.want, got)
		}
	}
}

func TestCandlestickView(t *testing.T) {
	p := NewCandlestickPanel()
	p.SetSize(60, 20)
	if !strings.Contains(p.View(), "No trading days yet") {
		t.Fatal("expected empty chart message")
	}

	p.SetSeries("IBM", []market.Candle{
		{Day: 0, Open: 100, Close: 104, High: 104, Low: 100},
		{Day: 1, Open: 104, Close: 99, High: 104, Low: 99},
	})
	if v := p.View(); !strings.Contains(v, "Chart - IBM") || !strings.Contains(v, "┃") {
		t.Fatalf("expected chart for IBM, got:\n%s", v)
	}
}
