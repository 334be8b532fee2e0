package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/learnpath/internal/app"
	"github.com/abhisek/learnpath/internal/ui/theme"
)

var updateCmd = &cobra.Command{
	Use:     "update",
	Short:   "Record a graded submission and update mastery",
	Example: "  learnpath update --student 1 --concept 2 --score 80",
	RunE: func(cmd *cobra.Command, args []string) error {
		studentID, _ := cmd.Flags().GetInt64("student")
		conceptID, _ := cmd.Flags().GetInt64("concept")
		score, _ := cmd.Flags().GetFloat64("score")

		return withApp(cmd, func(a *app.App) error {
			ctx := cmd.Context()
			out := cmd.OutOrStdout()
			concept, err := a.Catalog.Get(ctx, conceptID)
			if err != nil {
				return err
			}

			mastery, err := a.Mastery.UpdateMasteryScore(ctx, studentID, conceptID, score)
			if err != nil {
				return err
			}

			if jsonOutput(cmd) {
				return printJSON(out, map[string]any{
					"student_id": studentID,
					"concept_id": conceptID,
					"raw_score":  score,
					"mastery":    mastery,
				})
			}

			rc := a.Engine.Config()
			style := theme.Mastery(mastery, rc.MasteredThreshold, rc.ExtensionThreshold)
			fmt.Fprintf(out, "Student %d, %s: %s\n", studentID, concept.Name, style.Render(fmt.Sprintf("%.1f%%", mastery)))
			return nil
		})
	},
}

func init() {
	updateCmd.Flags().Int64("student", 0, "Student ID")
	updateCmd.Flags().Int64("concept", 0, "Concept ID")
	updateCmd.Flags().Float64("score", 0, "Raw assignment score (0-100)")
	_ = updateCmd.MarkFlagRequired("student")
	_ = updateCmd.MarkFlagRequired("concept")
	_ = updateCmd.MarkFlagRequired("score")
}
