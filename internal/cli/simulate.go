package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/zappabad/stockmarket/internal/game"
	"github.com/zappabad/stockmarket/internal/money"
)

// simulate plays days with empty trade batches and prints one line per day.
func (a *App) simulate(ctx context.Context, days int) error {
	g := a.newGame()
	if err := g.Start(); err != nil {
		return err
	}

	syms := g.Market().Symbols()
	fmt.Fprintf(a.Out, "%-5s %9s %8s", "DAY", "AVERAGE", "CHANGE")
	for _, s := range syms {
		fmt.Fprintf(a.Out, " %8s", s)
	}
	fmt.Fprintln(a.Out)
	a.printDay(0, g.ExchangeAverage(), g.Holdings())

	idle := make([]int, len(syms))
	for day := 1; day <= days; day++ {
		if err := ctx.Err(); err != nil {
			g.Quit()
			return err
		}
		if _, err := g.Trade(idle); err != nil {
			return err
		}
		report, err := g.EndDay()
		if err != nil {
			return err
		}
		a.printDay(report.Day, report.Average, report.Holdings)
		for _, item := range report.Bulletins {
			fmt.Fprintf(a.Out, "      * %s\n", item.Headline)
		}
		if err := g.Continue(day < days); err != nil {
			return err
		}
	}
	return nil
}

func (a *App) printDay(day int, avg game.Average, rows []game.Holding) {
	var b strings.Builder
	fmt.Fprintf(&b, "%-5d %9s %8s", day, money.Format(avg.Current), money.FormatSigned(avg.NetChange))
	for _, h := range rows {
		fmt.Fprintf(&b, " %8s", money.Format(h.Price))
	}
	fmt.Fprintln(a.Out, b.String())
}
