package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

type conceptRepo struct {
	db *sql.DB
}

func (r *conceptRepo) Create(ctx context.Context, c *ConceptData) error {
	if strings.TrimSpace(c.Name) == "" {
		return ErrEmptyName
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	for _, p := range c.Prerequisites {
		if err := conceptExists(ctx, tx, p); err != nil {
			return fmt.Errorf("prerequisite %d: %w", p, err)
		}
	}

	now := time.Now().UTC()
	query, args := entsql.Dialect(dialect.SQLite).
		Insert(ConceptsTable.Name).
		Columns("name", "description", "created_at").
		Values(c.Name, c.Description, now).
		Query()
	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("insert concept: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("concept id: %w", err)
	}

	for _, p := range c.Prerequisites {
		query, args := entsql.Dialect(dialect.SQLite).
			Insert(ConceptPrerequisitesTable.Name).
			Columns("concept_id", "prerequisite_id").
			Values(id, p).
			Query()
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert prerequisite: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	c.ID = id
	c.CreatedAt = now
	return nil
}

func (r *conceptRepo) Get(ctx context.Context, id int64) (*ConceptData, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select("id", "name", "description", "created_at").
		From(entsql.Table(ConceptsTable.Name)).
		Where(entsql.EQ("id", id)).
		Query()

	var c ConceptData
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("concept %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("query concept: %w", err)
	}

	prereqs, err := r.prerequisites(ctx, entsql.EQ("concept_id", id))
	if err != nil {
		return nil, err
	}
	c.Prerequisites = prereqs[id]
	return &c, nil
}

func (r *conceptRepo) List(ctx context.Context) ([]ConceptData, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select("id", "name", "description", "created_at").
		From(entsql.Table(ConceptsTable.Name)).
		OrderBy(entsql.Asc("id")).
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query concepts: %w", err)
	}
	defer rows.Close()

	var concepts []ConceptData
	for rows.Next() {
		var c ConceptData
		if err := rows.Scan(&c.ID, &c.Name, &c.Description, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan concept: %w", err)
		}
		concepts = append(concepts, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate concepts: %w", err)
	}

	prereqs, err := r.prerequisites(ctx, nil)
	if err != nil {
		return nil, err
	}
	for i := range concepts {
		concepts[i].Prerequisites = prereqs[concepts[i].ID]
	}
	return concepts, nil
}

// prerequisites loads prerequisite links keyed by concept ID. A nil
// predicate loads every link.
func (r *conceptRepo) prerequisites(ctx context.Context, where *entsql.Predicate) (map[int64][]int64, error) {
	sel := entsql.Dialect(dialect.SQLite).
		Select("concept_id", "prerequisite_id").
		From(entsql.Table(ConceptPrerequisitesTable.Name))
	if where != nil {
		sel = sel.Where(where)
	}
	query, args := sel.OrderBy(entsql.Asc("concept_id"), entsql.Asc("prerequisite_id")).Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query prerequisites: %w", err)
	}
	defer rows.Close()

	result := make(map[int64][]int64)
	for rows.Next() {
		var conceptID, prereqID int64
		if err := rows.Scan(&conceptID, &prereqID); err != nil {
			return nil, fmt.Errorf("scan prerequisite: %w", err)
		}
		result[conceptID] = append(result[conceptID], prereqID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate prerequisites: %w", err)
	}
	return result, nil
}

// conceptExists returns ErrNotFound if no concept has the given ID.
func conceptExists(ctx context.Context, q querier, id int64) error {
	query, args := entsql.Dialect(dialect.SQLite).
		Select(entsql.Count("*")).
		From(entsql.Table(ConceptsTable.Name)).
		Where(entsql.EQ("id", id)).
		Query()

	var n int
	if err := q.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		return fmt.Errorf("check concept: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("concept %d: %w", id, ErrNotFound)
	}
	return nil
}
