package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"entgo.io/ent/dialect"
	entsql "entgo.io/ent/dialect/sql"
)

type masteryRepo struct {
	db *sql.DB
}

var masteryColumns = []string{"student_id", "concept_id", "mastery_score", "created_at", "updated_at"}

func (r *masteryRepo) Get(ctx context.Context, studentID, conceptID int64) (*MasteryData, error) {
	return getMastery(ctx, r.db, studentID, conceptID)
}

func (r *masteryRepo) ListForStudent(ctx context.Context, studentID int64) ([]MasteryData, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select(masteryColumns...).
		From(entsql.Table(StudentMasteryTable.Name)).
		Where(entsql.EQ("student_id", studentID)).
		OrderBy(entsql.Asc("concept_id")).
		Query()

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query mastery: %w", err)
	}
	defer rows.Close()

	var records []MasteryData
	for rows.Next() {
		var m MasteryData
		if err := rows.Scan(&m.StudentID, &m.ConceptID, &m.Score, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan mastery: %w", err)
		}
		records = append(records, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate mastery: %w", err)
	}
	return records, nil
}

func (r *masteryRepo) Update(ctx context.Context, studentID, conceptID int64, fn UpdateFunc) (*MasteryData, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin tx: %w", err)
	}
	defer tx.Rollback()

	if err := conceptExists(ctx, tx, conceptID); err != nil {
		return nil, err
	}

	current, err := getMastery(ctx, tx, studentID, conceptID)
	if err != nil {
		return nil, err
	}

	score, err := fn(current)
	if err != nil {
		return nil, err
	}

	next := &MasteryData{StudentID: studentID, ConceptID: conceptID, Score: score}
	if current != nil {
		next.CreatedAt = current.CreatedAt
	}
	if err := upsertMastery(ctx, tx, next); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return next, nil
}

func getMastery(ctx context.Context, q querier, studentID, conceptID int64) (*MasteryData, error) {
	query, args := entsql.Dialect(dialect.SQLite).
		Select(masteryColumns...).
		From(entsql.Table(StudentMasteryTable.Name)).
		Where(entsql.And(
			entsql.EQ("student_id", studentID),
			entsql.EQ("concept_id", conceptID),
		)).
		Query()

	var m MasteryData
	err := q.QueryRowContext(ctx, query, args...).Scan(&m.StudentID, &m.ConceptID, &m.Score, &m.CreatedAt, &m.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query mastery: %w", err)
	}
	return &m, nil
}

// upsertMastery writes m, keeping created_at of an existing row. It fills
// in the timestamps on m.
func upsertMastery(ctx context.Context, q querier, m *MasteryData) error {
	now := time.Now().UTC()
	if m.CreatedAt.IsZero() {
		m.CreatedAt = now
	}
	m.UpdatedAt = now

	query, args := entsql.Dialect(dialect.SQLite).
		Insert(StudentMasteryTable.Name).
		Columns(masteryColumns...).
		Values(m.StudentID, m.ConceptID, m.Score, m.CreatedAt, m.UpdatedAt).
		OnConflict(
			entsql.ConflictColumns("student_id", "concept_id"),
			entsql.ResolveWith(func(u *entsql.UpdateSet) {
				u.SetExcluded("mastery_score")
				u.SetExcluded("updated_at")
			}),
		).
		Query()
	if _, err := q.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert mastery: %w", err)
	}
	return nil
}
