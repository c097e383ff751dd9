// Package cli provides the command-line interface for the game.
package cli

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/zappabad/stockmarket/internal/config"
	"github.com/zappabad/stockmarket/internal/game"
	"github.com/zappabad/stockmarket/internal/logging"
	"github.com/zappabad/stockmarket/tui"
)

// Version information
const Version = "1.0.0"

// App holds the dependencies shared by every command.
type App struct {
	Config *config.Config
	Logger zerolog.Logger

	In  io.Reader
	Out io.Writer
}

// NewRootCmd creates the root command. Without a subcommand it runs the
// terminal UI.
func NewRootCmd(in io.Reader, out io.Writer) *cobra.Command {
	app := &App{In: in, Out: out, Logger: zerolog.Nop()}

	rootCmd := &cobra.Command{
		Use:   "stockmarket",
		Short: "A single-player stock market trading game",
		Long: `Stock Market is a day-by-day trading game over five fictional stocks.

Each day you buy or sell whole shares, pay a brokerage fee, and watch
the prices move under a random trend with the occasional big swing.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return app.setup(cmd)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.play(cmd.Context())
		},
	}
	rootCmd.SetIn(in)
	rootCmd.SetOut(out)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./config.* or the user config dir)")
	rootCmd.PersistentFlags().Int64("seed", 0, "random seed for the price engine (0 = from clock)")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")

	rootCmd.AddCommand(
		newPlayCmd(app),
		newClassicCmd(app),
		newSimulateCmd(app),
	)

	return rootCmd
}

func (a *App) setup(cmd *cobra.Command) error {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("seed") {
		cfg.Game.Seed, _ = cmd.Flags().GetInt64("seed")
	}

	logCfg := cfg.LoggingConfig()
	if debug, _ := cmd.Flags().GetBool("debug"); debug {
		logCfg.Level = "debug"
	}

	a.Config = cfg
	a.Logger = logging.NewLogger(logCfg)
	return nil
}

// newGame builds a session seeded from config or the clock.
func (a *App) newGame() *game.Game {
	seed := a.Config.Game.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	g := game.New(a.Config.GameConfig(), rand.New(rand.NewSource(seed)), a.Logger)
	a.Logger.Info().
		Str("session", g.ID).
		Int64("seed", seed).
		Msg("session created")
	return g
}

func (a *App) play(ctx context.Context) error {
	return tui.Run(ctx, a.newGame(), a.Logger)
}

func newPlayCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "play",
		Short: "Play in the terminal UI",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.play(cmd.Context())
		},
	}
}

func newClassicCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "classic",
		Short: "Play the classic line-by-line text game",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return app.classic(cmd.Context())
		},
	}
}

func newSimulateCmd(app *App) *cobra.Command {
	var days int
	cmd := &cobra.Command{
		Use:   "simulate",
		Short: "Advance the market without trading and print each day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if days <= 0 {
				return fmt.Errorf("--days must be positive, got %d", days)
			}
			return app.simulate(cmd.Context(), days)
		},
	}
	cmd.Flags().IntVar(&days, "days", 10, "number of trading days to simulate")
	return cmd
}
