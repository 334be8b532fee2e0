package store

import (
	"context"
	"fmt"

	"entgo.io/ent/dialect"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"
)

var (
	// ConceptsColumns holds the columns for the "concepts" table.
	ConceptsColumns = []*schema.Column{
		{Name: "id", Type: field.TypeInt64, Increment: true},
		{Name: "name", Type: field.TypeString},
		{Name: "description", Type: field.TypeString, Default: ""},
		{Name: "created_at", Type: field.TypeTime},
	}
	// ConceptsTable holds the schema information for the "concepts" table.
	ConceptsTable = &schema.Table{
		Name:       "concepts",
		Columns:    ConceptsColumns,
		PrimaryKey: []*schema.Column{ConceptsColumns[0]},
	}

	// ConceptPrerequisitesColumns holds the columns for the "concept_prerequisites" table.
	ConceptPrerequisitesColumns = []*schema.Column{
		{Name: "concept_id", Type: field.TypeInt64},
		{Name: "prerequisite_id", Type: field.TypeInt64},
	}
	// ConceptPrerequisitesTable holds the schema information for the "concept_prerequisites" table.
	ConceptPrerequisitesTable = &schema.Table{
		Name:       "concept_prerequisites",
		Columns:    ConceptPrerequisitesColumns,
		PrimaryKey: []*schema.Column{ConceptPrerequisitesColumns[0], ConceptPrerequisitesColumns[1]},
		ForeignKeys: []*schema.ForeignKey{
			{
				Symbol:     "concept_prerequisites_concept_id",
				Columns:    []*schema.Column{ConceptPrerequisitesColumns[0]},
				RefColumns: []*schema.Column{ConceptsColumns[0]},
				OnDelete:   schema.Cascade,
			},
			{
				Symbol:     "concept_prerequisites_prerequisite_id",
				Columns:    []*schema.Column{ConceptPrerequisitesColumns[1]},
				RefColumns: []*schema.Column{ConceptsColumns[0]},
				OnDelete:   schema.Cascade,
			},
		},
	}

	// StudentMasteryColumns holds the columns for the "student_mastery" table.
	StudentMasteryColumns = []*schema.Column{
		{Name: "student_id", Type: field.TypeInt64},
		{Name: "concept_id", Type: field.TypeInt64},
		{Name: "mastery_score", Type: field.TypeFloat64, Default: 0},
		{Name: "created_at", Type: field.TypeTime},
		{Name: "updated_at", Type: field.TypeTime},
	}
	// StudentMasteryTable holds the schema information for the "student_mastery" table.
	StudentMasteryTable = &schema.Table{
		Name:       "student_mastery",
		Columns:    StudentMasteryColumns,
		PrimaryKey: []*schema.Column{StudentMasteryColumns[0], StudentMasteryColumns[1]},
		ForeignKeys: []*schema.ForeignKey{
			{
				Symbol:     "student_mastery_concept_id",
				Columns:    []*schema.Column{StudentMasteryColumns[1]},
				RefColumns: []*schema.Column{ConceptsColumns[0]},
				OnDelete:   schema.NoAction,
			},
		},
		Indexes: []*schema.Index{
			{
				Name:    "studentmastery_student_id",
				Unique:  false,
				Columns: []*schema.Column{StudentMasteryColumns[0]},
			},
		},
	}

	// Tables holds all the tables in the schema.
	Tables = []*schema.Table{
		ConceptsTable,
		ConceptPrerequisitesTable,
		StudentMasteryTable,
	}
)

func init() {
	ConceptPrerequisitesTable.ForeignKeys[0].RefTable = ConceptsTable
	ConceptPrerequisitesTable.ForeignKeys[1].RefTable = ConceptsTable
	StudentMasteryTable.ForeignKeys[0].RefTable = ConceptsTable
}

// migrate creates or upgrades all tables.
func migrate(ctx context.Context, drv dialect.Driver) error {
	m, err := schema.NewMigrate(drv)
	if err != nil {
		return fmt.Errorf("new migrate: %w", err)
	}
	if err := m.Create(ctx, Tables...); err != nil {
		return fmt.Errorf("create tables: %w", err)
	}
	return nil
}
