package cmd

import (
	"fmt"
	"strconv"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/learnpath/internal/app"
	"github.com/abhisek/learnpath/internal/recommend"
	"github.com/abhisek/learnpath/internal/ui/theme"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Show a prioritized learning path for a student",
	RunE: func(cmd *cobra.Command, args []string) error {
		studentID, _ := cmd.Flags().GetInt64("student")

		return withApp(cmd, func(a *app.App) error {
			out := cmd.OutOrStdout()
			recs, err := a.Engine.RecommendLearningPath(cmd.Context(), studentID)
			if err != nil {
				return err
			}
			if jsonOutput(cmd) {
				if recs == nil {
					recs = []recommend.Recommendation{}
				}
				return printJSON(out, recs)
			}
			if len(recs) == 0 {
				fmt.Fprintln(out, "No recommendations. Add concepts with `learnpath concepts seed`.")
				return nil
			}

			rows := make([][]string, 0, len(recs))
			for _, r := range recs {
				rows = append(rows, []string{
					strconv.FormatInt(r.ConceptID, 10),
					r.ConceptName,
					string(r.Priority),
					r.Detail,
					fmt.Sprintf("%d min", r.EstimatedTime),
				})
			}
			fmt.Fprintln(out, theme.Title.Render(fmt.Sprintf("Learning path for student %d", studentID)))
			fmt.Fprintln(out, theme.Table(
				[]string{"ID", "Concept", "Priority", "Reason", "Time"},
				rows,
				func(row, col int) (lipgloss.Style, bool) {
					if col != 2 {
						return lipgloss.Style{}, false
					}
					return theme.Priority(string(recs[row].Priority)), true
				},
			))
			return nil
		})
	},
}

var nextCmd = &cobra.Command{
	Use:   "next",
	Short: "Suggest the next assignment for a student",
	RunE: func(cmd *cobra.Command, args []string) error {
		studentID, _ := cmd.Flags().GetInt64("student")

		return withApp(cmd, func(a *app.App) error {
			out := cmd.OutOrStdout()
			s, err := a.Engine.NextAssignment(cmd.Context(), studentID)
			if err != nil {
				return err
			}
			if jsonOutput(cmd) {
				return printJSON(out, s)
			}

			fmt.Fprintln(out, theme.Title.Render(s.Title))
			fmt.Fprintln(out, theme.Body.Render(s.Description))
			fmt.Fprintln(out, theme.Hint.Render(fmt.Sprintf("difficulty %d/5 · about %d min · assignment #%d",
				s.DifficultyLevel, s.EstimatedTime, s.AssignmentID)))
			return nil
		})
	},
}

func init() {
	for _, c := range []*cobra.Command{recommendCmd, nextCmd} {
		c.Flags().Int64("student", 0, "Student ID")
		_ = c.MarkFlagRequired("student")
	}
}
