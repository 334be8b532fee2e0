package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/abhisek/learnpath/internal/app"
	"github.com/abhisek/learnpath/internal/catalog"
	"github.com/abhisek/learnpath/internal/store"
	"github.com/abhisek/learnpath/internal/ui/theme"
)

var conceptsCmd = &cobra.Command{
	Use:   "concepts",
	Short: "Manage the concept catalog",
}

var conceptsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all concepts in catalog order",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(a *app.App) error {
			cat, err := a.Catalog.Load(cmd.Context())
			if err != nil {
				return err
			}
			return printConcepts(cmd, cat)
		})
	},
}

var conceptsAddCmd = &cobra.Command{
	Use:     "add",
	Short:   "Add a concept",
	Example: "  learnpath concepts add --name \"Advanced Data Modeling\" --prereq 2 --prereq 5",
	RunE: func(cmd *cobra.Command, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		desc, _ := cmd.Flags().GetString("description")
		prereqs, _ := cmd.Flags().GetInt64Slice("prereq")

		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("--name must not be empty")
		}

		return withApp(cmd, func(a *app.App) error {
			row := &store.ConceptData{Name: name, Description: desc, Prerequisites: prereqs}
			if err := a.Store.ConceptRepo().Create(cmd.Context(), row); err != nil {
				return fmt.Errorf("add concept: %w", err)
			}
			a.Logger.Info("added concept", zap.Int64("concept_id", row.ID), zap.String("name", row.Name))
			if jsonOutput(cmd) {
				return printJSON(cmd.OutOrStdout(), catalog.Concept{
					ID:            row.ID,
					Name:          row.Name,
					Description:   row.Description,
					Prerequisites: row.Prerequisites,
				})
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Added concept %d: %s\n", row.ID, row.Name)
			return nil
		})
	},
}

var conceptsSeedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Load the default concept catalog into an empty database",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withApp(cmd, func(a *app.App) error {
			ctx := cmd.Context()
			existing, err := a.Catalog.Load(ctx)
			if err != nil {
				return err
			}
			if existing.Len() > 0 {
				return fmt.Errorf("catalog already has %d concepts", existing.Len())
			}

			if _, err := catalog.Seed(ctx, a.Store.ConceptRepo(), catalog.DefaultSeed()); err != nil {
				return err
			}
			cat, err := a.Catalog.Load(ctx)
			if err != nil {
				return err
			}
			return printConcepts(cmd, cat)
		})
	},
}

func printConcepts(cmd *cobra.Command, cat *catalog.Catalog) error {
	out := cmd.OutOrStdout()
	concepts := cat.All()
	if jsonOutput(cmd) {
		if concepts == nil {
			concepts = []catalog.Concept{}
		}
		return printJSON(out, concepts)
	}
	if len(concepts) == 0 {
		fmt.Fprintln(out, "No concepts found.")
		return nil
	}

	rows := make([][]string, 0, len(concepts))
	for _, c := range concepts {
		rows = append(rows, []string{
			strconv.FormatInt(c.ID, 10),
			c.Name,
			joinIDs(c.Prerequisites),
			joinIDs(cat.Dependents(c.ID)),
			c.Description,
		})
	}
	fmt.Fprintln(out, theme.Table([]string{"ID", "Name", "Prerequisites", "Unlocks", "Description"}, rows, nil))
	fmt.Fprintf(out, "\n%d concepts\n", len(concepts))
	return nil
}

func joinIDs(ids []int64) string {
	parts := make([]string, 0, len(ids))
	for _, id := range ids {
		parts = append(parts, strconv.FormatInt(id, 10))
	}
	return strings.Join(parts, ", ")
}

func init() {
	conceptsAddCmd.Flags().String("name", "", "Concept name")
	conceptsAddCmd.Flags().String("description", "", "Concept description")
	conceptsAddCmd.Flags().Int64Slice("prereq", nil, "Prerequisite concept ID (repeatable)")
	_ = conceptsAddCmd.MarkFlagRequired("name")

	conceptsCmd.AddCommand(conceptsListCmd)
	conceptsCmd.AddCommand(conceptsAddCmd)
	conceptsCmd.AddCommand(conceptsSeedCmd)
}
