package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"quizmaster/internal/bank"
	"quizmaster/internal/infra/file"
	"quizmaster/internal/infra/xlsx"
)

// newImportCmd converts a question spreadsheet into a JSON or YAML question document.
func newImportCmd(opts *options) *cobra.Command {
	var sheet string
	cmd := &cobra.Command{
		Use:   "import <spreadsheet.xlsx> <questions.json|questions.yaml>",
		Short: "Convert an .xlsx question sheet into a question document",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, err := setup(opts)
			if err != nil {
				return err
			}
			defer rt.Close()

			src, dst := args[0], args[1]
			questions, err := bank.Load(cmd.Context(), xlsx.NewQuestionLoader(src, sheet))
			if err != nil {
				return err
			}
			if err := file.WriteQuestions(dst, questions.All()); err != nil {
				return fmt.Errorf("write %s: %w", dst, err)
			}
			rt.logger.Info("questions imported", zap.String("from", src), zap.String("to", dst), zap.Int("count", questions.Len()))
			fmt.Fprintf(cmd.OutOrStdout(), "imported %d questions into %s\n", questions.Len(), dst)
			return nil
		},
	}
	cmd.Flags().StringVar(&sheet, "sheet", "", "sheet name (default first sheet)")
	return cmd
}
