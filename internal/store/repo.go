package store

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

var (
	// ErrNotFound is returned when a referenced concept does not exist.
	ErrNotFound = errors.New("not found")

	// ErrEmptyName is returned when creating a concept with a blank name.
	ErrEmptyName = errors.New("concept name is empty")
)

// ConceptData is a persisted catalog concept.
type ConceptData struct {
	ID            int64
	Name          string
	Description   string
	Prerequisites []int64 // concept IDs, ascending
	CreatedAt     time.Time
}

// MasteryData is a persisted mastery record. Score is on the 0-100 scale.
type MasteryData struct {
	StudentID int64
	ConceptID int64
	Score     float64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ConceptRepo manages the concept catalog.
type ConceptRepo interface {
	// Create inserts a concept and its prerequisite links and sets c.ID.
	// Returns ErrEmptyName for a blank name and ErrNotFound if a
	// prerequisite does not exist.
	Create(ctx context.Context, c *ConceptData) error

	// Get returns a single concept, or ErrNotFound.
	Get(ctx context.Context, id int64) (*ConceptData, error)

	// List returns all concepts in catalog order (ascending ID).
	List(ctx context.Context) ([]ConceptData, error)
}

// UpdateFunc computes the next mastery score from the current record.
// current is nil when the student has no record for the concept yet.
type UpdateFunc func(current *MasteryData) (float64, error)

// MasteryRepo manages per-student mastery records.
type MasteryRepo interface {
	// Get returns the record for (studentID, conceptID), or nil if none exists.
	Get(ctx context.Context, studentID, conceptID int64) (*MasteryData, error)

	// ListForStudent returns all records for a student ordered by concept ID.
	ListForStudent(ctx context.Context, studentID int64) ([]MasteryData, error)

	// Update runs a read-modify-write of a single record in one
	// transaction. fn must not have side effects; it runs at most once.
	Update(ctx context.Context, studentID, conceptID int64, fn UpdateFunc) (*MasteryData, error)
}

// querier is satisfied by both *sql.DB and *sql.Tx.
type querier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}
