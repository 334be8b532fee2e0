package catalog

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/abhisek/learnpath/internal/logging"
	"github.com/abhisek/learnpath/internal/store"
)

// Loader provides the current concept catalog.
type Loader interface {
	Load(ctx context.Context) (*Catalog, error)
}

// LoaderFunc adapts a function to the Loader interface.
type LoaderFunc func(ctx context.Context) (*Catalog, error)

// Load calls f(ctx).
func (f LoaderFunc) Load(ctx context.Context) (*Catalog, error) {
	return f(ctx)
}

// Static returns a Loader that always yields c.
func Static(c *Catalog) Loader {
	return LoaderFunc(func(context.Context) (*Catalog, error) {
		return c, nil
	})
}

// StoreLoader reads the catalog from the concept repository on every call,
// so newly added concepts are visible immediately.
type StoreLoader struct {
	repo   store.ConceptRepo
	logger *zap.Logger
}

// NewStoreLoader creates a StoreLoader. A nil logger discards warnings.
func NewStoreLoader(repo store.ConceptRepo, logger *zap.Logger) *StoreLoader {
	return &StoreLoader{repo: repo, logger: logging.OrNop(logger)}
}

// Load lists all stored concepts and builds a catalog from them. Invalid
// rows are left out with a warning, so one bad concept cannot take the
// whole catalog down.
func (l *StoreLoader) Load(ctx context.Context) (*Catalog, error) {
	rows, err := l.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list concepts: %w", err)
	}
	concepts := make([]Concept, 0, len(rows))
	for _, r := range rows {
		concepts = append(concepts, fromData(r))
	}

	valid, issues := Partition(concepts)
	for _, is := range issues {
		msg := "ignoring invalid prerequisite link"
		if is.Dropped {
			msg = "skipping invalid concept"
		}
		l.logger.Warn(msg, zap.Int64("concept_id", is.ConceptID), zap.String("problem", is.Problem))
	}
	return New(valid)
}

// Get looks up a single stored concept.
func (l *StoreLoader) Get(ctx context.Context, id int64) (Concept, error) {
	row, err := l.repo.Get(ctx, id)
	if errors.Is(err, store.ErrNotFound) {
		return Concept{}, fmt.Errorf("concept %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return Concept{}, err
	}
	return fromData(*row), nil
}

// Seed inserts the given seed concepts in order, resolving positional
// prerequisites to the IDs assigned by the store. It returns the created
// concepts.
func Seed(ctx context.Context, repo store.ConceptRepo, seed []SeedConcept) ([]Concept, error) {
	ids := make([]int64, 0, len(seed))
	created := make([]Concept, 0, len(seed))
	for i, s := range seed {
		var prereqs []int64
		for _, p := range s.Prerequisites {
			if p < 0 || p >= i {
				return nil, fmt.Errorf("seed concept %q: prerequisite position %d must refer to an earlier entry", s.Name, p)
			}
			prereqs = append(prereqs, ids[p])
		}
		row := &store.ConceptData{Name: s.Name, Description: s.Description, Prerequisites: prereqs}
		if err := repo.Create(ctx, row); err != nil {
			return nil, fmt.Errorf("create concept %q: %w", s.Name, err)
		}
		ids = append(ids, row.ID)
		created = append(created, fromData(*row))
	}
	return created, nil
}

func fromData(d store.ConceptData) Concept {
	return Concept{
		ID:            d.ID,
		Name:          d.Name,
		Description:   d.Description,
		Prerequisites: d.Prerequisites,
	}
}
