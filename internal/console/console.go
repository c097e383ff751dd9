// Package console plays the game as a line-oriented text session.
package console

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/zappabad/stockmarket/internal/broker"
	"github.com/zappabad/stockmarket/internal/game"
	"github.com/zappabad/stockmarket/internal/money"
)

var errInputClosed = errors.New("input closed")

const instructions = `THIS PROGRAM PLAYS THE STOCK MARKET.  YOU WILL BE GIVEN
$%[1]s AND MAY BUY OR SELL STOCKS.  THE STOCK PRICES WILL
BE GENERATED RANDOMLY AND THEREFORE THIS MODEL DOES NOT
REPRESENT EXACTLY WHAT HAPPENS ON THE EXCHANGE.  A TABLE
OF AVAILABLE STOCKS, THEIR PRICES, AND THE NUMBER OF SHARES
IN YOUR PORTFOLIO WILL BE PRINTED.  FOLLOWING THIS, THE
INITIALS OF EACH STOCK WILL BE PRINTED WITH A QUESTION
MARK.  HERE YOU INDICATE A TRANSACTION.  TO BUY A STOCK
TYPE +NNN, TO SELL A STOCK TYPE -NNN, WHERE NNN IS THE
NUMBER OF SHARES.  A BROKERAGE FEE OF %[2]s%% WILL BE CHARGED
ON ALL TRANSACTIONS.  NOTE THAT IF A STOCK'S VALUE DROPS
TO ZERO IT MAY REBOUND TO A POSITIVE VALUE AGAIN.  YOU
HAVE $%[1]s TO INVEST.  USE INTEGERS FOR ALL YOUR INPUTS.
(NOTE:  TO GET A 'FEEL' FOR THE MARKET RUN FOR AT LEAST
10 DAYS)
-----GOOD LUCK!-----


`

// Console drives a game from a token stream.
type Console struct {
	g      *game.Game
	in     *bufio.Scanner
	out    io.Writer
	logger zerolog.Logger
}

// New creates a console for g. Input is split on whitespace, so several
// answers may share a line.
func New(g *game.Game, in io.Reader, out io.Writer, logger zerolog.Logger) *Console {
	sc := bufio.NewScanner(in)
	sc.Split(bufio.ScanWords)
	return &Console{g: g, in: sc, out: out, logger: logger}
}

// Run plays until the player stops or input ends.
func (c *Console) Run() error {
	err := c.run()
	if errors.Is(err, errInputClosed) {
		c.logger.Debug().Msg("input closed")
		c.g.Quit()
		fmt.Fprintln(c.out)
		return nil
	}
	return err
}

func (c *Console) run() error {
	fmt.Fprintf(c.out, "%30sSTOCK MARKET\n", "")
	fmt.Fprintf(c.out, "%15sCREATIVE COMPUTING  MORRISTOWN, NEW JERSEY\n\n\n\n\n", "")

	fmt.Fprint(c.out, "DO YOU WANT THE INSTRUCTIONS (YES-TYPE Y, NO-TYPE N)?")
	yes, err := c.readYesNo()
	if err != nil {
		return err
	}
	fmt.Fprint(c.out, "\n\n\n")
	if yes {
		fmt.Fprintf(c.out, instructions,
			strconv.FormatFloat(c.g.StartingCash(), 'f', -1, 64),
			strconv.FormatFloat(c.g.Fee()*100, 'f', -1, 64))
	}

	if err := c.g.Start(); err != nil {
		return err
	}
	c.printListing()
	c.printAverage(false)

	for {
		if err := c.trade(); err != nil {
			return err
		}

		report, err := c.g.EndDay()
		if err != nil {
			return err
		}
		fmt.Fprint(c.out, "\n\n**********     END OF DAY'S TRADING     **********\n\n\n")
		c.printReport(report)

		fmt.Fprint(c.out, "DO YOU WISH TO CONTINUE (YES-TYPE Y, NO-TYPE N)? ")
		yes, err := c.readYesNo()
		if err != nil {
			return err
		}
		if err := c.g.Continue(yes); err != nil {
			return err
		}
		if !yes {
			fmt.Fprintln(c.out, "HOPE YOU HAD FUN!!")
			return nil
		}
	}
}

// trade prompts for a full batch until one is accepted.
func (c *Console) trade() error {
	symbols := c.g.Market().Symbols()
	for {
		fmt.Fprintln(c.out, "WHAT IS YOUR TRANSACTION IN")
		deltas := make([]int, len(symbols))
		for i, sym := range symbols {
			fmt.Fprintf(c.out, "%s? ", sym)
			n, err := c.readInt()
			if err != nil {
				return err
			}
			deltas[i] = n
		}

		_, err := c.g.Trade(deltas)
		var short *broker.InsufficientCashError
		switch {
		case err == nil:
			return nil
		case errors.Is(err, broker.ErrOversold):
			fmt.Fprintln(c.out, "\nYOU HAVE OVERSOLD A STOCK; TRY AGAIN.")
		case errors.As(err, &short):
			fmt.Fprintf(c.out, "\nYOU HAVE USED $%s MORE THAN YOU HAVE.\n", money.Format(short.Shortfall))
		default:
			return err
		}
	}
}

func (c *Console) printListing() {
	fmt.Fprintln(c.out, "STOCK                       INITIALS      PRICE/SHARE")
	for _, h := range c.g.Holdings() {
		fmt.Fprintf(c.out, "%-30s%-13s%s\n", h.Name, h.Symbol, money.Format(h.Price))
	}
}

func (c *Console) printAverage(withChange bool) {
	avg := c.g.ExchangeAverage()
	fmt.Fprint(c.out, "\n\n\n")
	if withChange {
		fmt.Fprintf(c.out, "NEW YORK STOCK EXCHANGE AVERAGE:  %s NET CHANGE  %s\n\n",
			money.Format(avg.Current), money.Format(avg.NetChange))
		return
	}
	fmt.Fprintf(c.out, "NEW YORK STOCK EXCHANGE AVERAGE:  %s\n\n", money.Format(avg.Current))
}

func (c *Console) printReport(r game.DayReport) {
	fmt.Fprintln(c.out, "STOCK         PRICE/SHARE   HOLDINGS      VALUE         NET PRICE CHANGE")
	for _, h := range r.Holdings {
		fmt.Fprintf(c.out, "%-14s%-14s%-14d%-14s%s\n",
			h.Symbol, money.Format(h.Price), h.Quantity, money.Format(h.Value), money.Format(h.Change))
	}
	c.printAverage(true)

	fmt.Fprintf(c.out, "\nTOTAL STOCK ASSETS ARE   $ %s\n", money.Format(r.Summary.StockAssets))
	fmt.Fprintf(c.out, "TOTAL CASH ASSETS ARE    $ %s\n", money.Format(r.Summary.Cash))
	fmt.Fprintf(c.out, "TOTAL ASSETS ARE         $ %s\n\n\n", money.Format(r.Summary.TotalAssets))
}

func (c *Console) next() (string, error) {
	if !c.in.Scan() {
		if err := c.in.Err(); err != nil {
			return "", err
		}
		return "", errInputClosed
	}
	return c.in.Text(), nil
}

func (c *Console) readInt() (int, error) {
	for {
		tok, err := c.next()
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(tok)
		if err == nil {
			return n, nil
		}
		fmt.Fprintln(c.out, "!NUMBER EXPECTED - RETRY INPUT LINE")
		fmt.Fprint(c.out, "?")
	}
}

func (c *Console) readYesNo() (bool, error) {
	for {
		tok, err := c.next()
		if err != nil {
			return false, err
		}
		switch strings.ToLower(tok)[0] {
		case 'y':
			return true, nil
		case 'n':
			return false, nil
		}
		fmt.Fprintln(c.out, "!EXPECTED Y OR N - RETRY INPUT LINE")
		fmt.Fprint(c.out, "?")
	}
}
