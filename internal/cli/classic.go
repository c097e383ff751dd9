package cli

import (
	"context"
	"io"

	"github.com/zappabad/stockmarket/internal/console"
)

// classic runs the text game. Cancelling ctx closes the input when it is an
// io.Closer so the pending read returns.
func (a *App) classic(ctx context.Context) error {
	g := a.newGame()
	c := console.New(g, a.In, a.Out, a.Logger)

	done := make(chan error, 1)
	go func() { done <- c.Run() }()

	select {
	case err := <-done:
		return err
	case <-ctx.Done():
		a.Logger.Info().Msg("interrupted")
		// Readers that cannot be closed, such as os.Stdin on some platforms,
		// leave the read goroutine blocked until the process exits.
		if cl, ok := a.In.(io.Closer); ok {
			if err := cl.Close(); err != nil {
				a.Logger.Debug().Err(err).Msg("close input")
			}
		}
		return ctx.Err()
	}
}
