package cli

import (
	"github.com/spf13/cobra"

	"quizmaster/internal/console"
	"quizmaster/internal/domain"
	"quizmaster/internal/i18n"
)

func newScoresCmd(opts *options) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "scores",
		Short: "Show the high-score table",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := bootstrap(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer rt.Close()

			console.NewPrinter(cmd.OutOrStdout(), rt.loc).
				Leaderboard(rt.service.Leaderboard(cmd.Context(), limit))
			return nil
		},
	}
	cmd.Flags().IntVar(&limit, "limit", 0, "entries to show (default quiz.top_n)")
	return cmd
}

func newAchievementsCmd(opts *options) *cobra.Command {
	var player string
	cmd := &cobra.Command{
		Use:   "achievements",
		Short: "List achievements and which ones a player has unlocked",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := bootstrap(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer rt.Close()

			console.NewPrinter(cmd.OutOrStdout(), rt.loc).
				Achievements(rt.service.Achievements(cmd.Context(), domain.PlayerName(player)))
			return nil
		},
	}
	cmd.Flags().StringVar(&player, "player", "", "player name")
	return cmd
}

func newCategoriesCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "categories",
		Short: "List question categories and difficulty levels",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := bootstrap(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer rt.Close()

			b := rt.service.Bank()
			console.NewPrinter(cmd.OutOrStdout(), rt.loc).Categories(b.Categories(), b.Difficulties())
			return nil
		},
	}
}

func newStatsCmd(opts *options) *cobra.Command {
	var player string
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show cumulative statistics for one player or all of them",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := bootstrap(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer rt.Close()

			p := console.NewPrinter(cmd.OutOrStdout(), rt.loc)
			if cmd.Flags().Changed("player") {
				p.Stats(rt.service.Profile(cmd.Context(), domain.PlayerName(player)))
				return nil
			}
			players := rt.service.Players(cmd.Context())
			if len(players) == 0 {
				p.Line(i18n.NoPlayers)
			}
			for _, profile := range players {
				p.Stats(profile)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&player, "player", "", "player name (default all players)")
	return cmd
}
