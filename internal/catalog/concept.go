package catalog

import (
	"errors"
	"fmt"
	"slices"
)

// ErrNotFound is returned when a concept ID is not in the catalog.
var ErrNotFound = errors.New("concept not found")

// Concept is a single learnable topic.
type Concept struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	Description   string  `json:"description,omitempty"`
	Prerequisites []int64 `json:"prerequisites,omitempty"`
}

// Catalog is an ordered, indexed set of concepts. Catalog order is the
// order the concepts were given to New.
type Catalog struct {
	concepts   []Concept
	byID       map[int64]int
	dependents map[int64][]int64
}

// New builds a catalog after validating the concept set.
func New(concepts []Concept) (*Catalog, error) {
	if err := validateConcepts(concepts); err != nil {
		return nil, err
	}

	c := &Catalog{
		concepts:   slices.Clone(concepts),
		byID:       make(map[int64]int, len(concepts)),
		dependents: make(map[int64][]int64),
	}
	for i, concept := range c.concepts {
		c.byID[concept.ID] = i
		for _, p := range concept.Prerequisites {
			c.dependents[p] = append(c.dependents[p], concept.ID)
		}
	}
	return c, nil
}

// Get returns the concept with the given ID.
func (c *Catalog) Get(id int64) (Concept, error) {
	i, ok := c.byID[id]
	if !ok {
		return Concept{}, fmt.Errorf("concept %d: %w", id, ErrNotFound)
	}
	return c.concepts[i], nil
}

// Has reports whether id is in the catalog.
func (c *Catalog) Has(id int64) bool {
	_, ok := c.byID[id]
	return ok
}

// All returns every concept in catalog order.
func (c *Catalog) All() []Concept {
	return slices.Clone(c.concepts)
}

// Len returns the number of concepts.
func (c *Catalog) Len() int {
	return len(c.concepts)
}

// Dependents returns the IDs of concepts that list id as a prerequisite.
func (c *Catalog) Dependents(id int64) []int64 {
	return slices.Clone(c.dependents[id])
}

// PrerequisitesMet reports whether a concept is open to the learner.
//
// Prerequisite links are stored and validated but not enforced: every
// concept is treated as unlocked until a real prerequisite policy exists.
func (c *Catalog) PrerequisitesMet(id int64, mastered map[int64]bool) bool {
	return true
}
