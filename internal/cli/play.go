package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"quizmaster/internal/console"
	"quizmaster/internal/domain"
)

// newPlayCmd starts an interactive game on the terminal.
func newPlayCmd(opts *options) *cobra.Command {
	var (
		player     string
		category   string
		difficulty string
		length     int
		timer      time.Duration
		noHints    bool
	)
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play a quiz in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			rt, err := bootstrap(ctx, opts)
			if err != nil {
				return err
			}
			defer rt.Close()

			settings := rt.cfg.Settings()
			flags := cmd.Flags()
			if flags.Changed("category") {
				settings.Category = category
			}
			if flags.Changed("difficulty") {
				settings.Difficulty = difficulty
			}
			if flags.Changed("questions") {
				settings.Length = length
			}
			if flags.Changed("timer") {
				settings.TimeLimit = timer
			}
			if noHints {
				settings.HintsEnabled = false
			}

			ui := console.New(rt.service, rt.loc, cmd.InOrStdin(), cmd.OutOrStdout(), rt.logger)
			err = ui.Run(ctx, domain.PlayerName(player), settings)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}
	cmd.Flags().StringVar(&player, "player", "", "player name for statistics (default Anonymous)")
	cmd.Flags().StringVar(&category, "category", domain.AnyValue, "question category or all")
	cmd.Flags().StringVar(&difficulty, "difficulty", domain.AnyValue, "easy, medium, hard or all")
	cmd.Flags().IntVar(&length, "questions", 10, "questions per game")
	cmd.Flags().DurationVar(&timer, "timer", 15*time.Second, "time limit per question, 0 disables")
	cmd.Flags().BoolVar(&noHints, "no-hints", false, "disable hints")
	return cmd
}
