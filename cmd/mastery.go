package cmd

import (
	"fmt"
	"strconv"

	"charm.land/lipgloss/v2"
	"github.com/spf13/cobra"

	"github.com/abhisek/learnpath/internal/app"
	"github.com/abhisek/learnpath/internal/ui/theme"
)

type masteryRow struct {
	ConceptID   int64   `json:"concept_id"`
	ConceptName string  `json:"concept_name"`
	Score       float64 `json:"mastery"`
	UpdatedAt   string  `json:"updated_at"`
}

var masteryCmd = &cobra.Command{
	Use:   "mastery",
	Short: "Show a student's mastery records",
	RunE: func(cmd *cobra.Command, args []string) error {
		studentID, _ := cmd.Flags().GetInt64("student")

		return withApp(cmd, func(a *app.App) error {
			ctx := cmd.Context()
			cat, err := a.Catalog.Load(ctx)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			records, err := a.Mastery.ListForStudent(ctx, studentID)
			if err != nil {
				return err
			}

			out := make([]masteryRow, 0, len(records))
			for _, r := range records {
				name := "(unknown)"
				if c, err := cat.Get(r.ConceptID); err == nil {
					name = c.Name
				}
				out = append(out, masteryRow{
					ConceptID:   r.ConceptID,
					ConceptName: name,
					Score:       r.Score,
					UpdatedAt:   r.UpdatedAt.Local().Format("2006-01-02 15:04:05"),
				})
			}

			if jsonOutput(cmd) {
				return printJSON(w, out)
			}
			if len(out) == 0 {
				fmt.Fprintf(w, "No mastery records for student %d.\n", studentID)
				return nil
			}

			rc := a.Engine.Config()
			rows := make([][]string, 0, len(out))
			for _, r := range out {
				rows = append(rows, []string{
					strconv.FormatInt(r.ConceptID, 10),
					r.ConceptName,
					fmt.Sprintf("%.1f%%", r.Score),
					r.UpdatedAt,
				})
			}
			fmt.Fprintln(w, theme.Title.Render(fmt.Sprintf("Mastery for student %d", studentID)))
			fmt.Fprintln(w, theme.Table(
				[]string{"ID", "Concept", "Mastery", "Updated"},
				rows,
				func(row, col int) (lipgloss.Style, bool) {
					if col != 2 {
						return lipgloss.Style{}, false
					}
					return theme.Mastery(out[row].Score, rc.MasteredThreshold, rc.ExtensionThreshold), true
				},
			))
			return nil
		})
	},
}

func init() {
	masteryCmd.Flags().Int64("student", 0, "Student ID")
	_ = masteryCmd.MarkFlagRequired("student")
}
