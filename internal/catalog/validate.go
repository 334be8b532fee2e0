package catalog

import (
	"fmt"
	"strings"
)

// validateConcepts performs all structural checks on the given concept set.
// Returns a combined error describing all problems found, or nil if valid.
func validateConcepts(concepts []Concept) error {
	var errs []string

	idSet := make(map[int64]bool, len(concepts))

	for _, c := range concepts {
		if idSet[c.ID] {
			errs = append(errs, fmt.Sprintf("duplicate concept ID: %d", c.ID))
		}
		idSet[c.ID] = true
		if strings.TrimSpace(c.Name) == "" {
			errs = append(errs, fmt.Sprintf("concept %d has an empty name", c.ID))
		}
	}

	for _, c := range concepts {
		for _, p := range c.Prerequisites {
			switch {
			case p == c.ID:
				errs = append(errs, fmt.Sprintf("concept %d lists itself as a prerequisite", c.ID))
			case !idSet[p]:
				errs = append(errs, fmt.Sprintf("concept %d references nonexistent prerequisite %d", c.ID, p))
			}
		}
	}

	// Cycle check (Kahn's algorithm), ignoring dangling and self edges
	// already reported above.
	inDegree := make(map[int64]int, len(concepts))
	adjList := make(map[int64][]int64)
	for _, c := range concepts {
		for _, p := range c.Prerequisites {
			if p == c.ID || !idSet[p] {
				continue
			}
			inDegree[c.ID]++
			adjList[p] = append(adjList[p], c.ID)
		}
	}

	var queue []int64
	for _, c := range concepts {
		if inDegree[c.ID] == 0 {
			queue = append(queue, c.ID)
		}
	}

	visited := 0
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		visited++
		for _, dep := range adjList[id] {
			inDegree[dep]--
			if inDegree[dep] == 0 {
				queue = append(queue, dep)
			}
		}
	}

	if visited < len(concepts) {
		var cycleNodes []string
		for _, c := range concepts {
			if inDegree[c.ID] > 0 {
				cycleNodes = append(cycleNodes, fmt.Sprint(c.ID))
			}
		}
		errs = append(errs, fmt.Sprintf("cycle detected involving concepts: %s", strings.Join(cycleNodes, ", ")))
	}

	if len(errs) > 0 {
		return fmt.Errorf("concept catalog validation failed:\n  %s", strings.Join(errs, "\n  "))
	}
	return nil
}

// Issue is a problem Partition found with one concept.
type Issue struct {
	ConceptID int64
	Problem   string
	// Dropped is true if the concept was left out of the result. Otherwise
	// only the offending prerequisite link was removed.
	Dropped bool
}

// Partition returns the subset of concepts that New accepts, together with
// every problem found. Concepts with a blank name, a duplicate ID or a
// place in a prerequisite cycle are dropped. Self and dangling prerequisite
// links are removed from otherwise valid concepts.
func Partition(concepts []Concept) ([]Concept, []Issue) {
	var issues []Issue

	seen := make(map[int64]bool, len(concepts))
	kept := make([]Concept, 0, len(concepts))
	for _, c := range concepts {
		switch {
		case seen[c.ID]:
			issues = append(issues, Issue{ConceptID: c.ID, Problem: "duplicate concept ID", Dropped: true})
			continue
		case strings.TrimSpace(c.Name) == "":
			issues = append(issues, Issue{ConceptID: c.ID, Problem: "empty name", Dropped: true})
			continue
		}
		seen[c.ID] = true
		kept = append(kept, c)
	}

	for i, c := range kept {
		var prereqs []int64
		for _, p := range c.Prerequisites {
			switch {
			case p == c.ID:
				issues = append(issues, Issue{ConceptID: c.ID, Problem: "lists itself as a prerequisite"})
			case !seen[p]:
				issues = append(issues, Issue{ConceptID: c.ID, Problem: fmt.Sprintf("references missing prerequisite %d", p)})
			default:
				prereqs = append(prereqs, p)
			}
		}
		kept[i].Prerequisites = prereqs
	}

	cyclic := cycleMembers(kept)
	if len(cyclic) == 0 {
		return kept, issues
	}

	valid := make([]Concept, 0, len(kept))
	for _, c := range kept {
		if cyclic[c.ID] {
			issues = append(issues, Issue{ConceptID: c.ID, Problem: "part of a prerequisite cycle", Dropped: true})
			continue
		}
		valid = append(valid, c)
	}
	return valid, issues
}

// cycleMembers returns the concepts Kahn's algorithm cannot order: those on
// a cycle and those depending on one. Links must already be free of self
// and dangling references.
func cycleMembers(concepts []Concept) map[int64]bool {
	inDegree := make(map[int64]int, len(concepts))
	adjList := make(map[int64][]int64)
	for _, c := range concepts {
		for _, p := range c.Prerequisites {
			inDegree[c.ID]++
			adjList[p] = append(adjList[p], c.ID)
		}
	}

	var queue []int64
	for _, c := range concepts {
		if inDegree[c.ID] == 0 {
			queue = append(queue, c.ID)
		}
	}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		for _, dep := range adjList[id] {
			inDegree[dep]--
			if inDegree[dep] == 0 {
				queue = append(queue, dep)
			}
		}
	}

	members := make(map[int64]bool)
	for _, c := range concepts {
		if inDegree[c.ID] > 0 {
			members[c.ID] = true
		}
	}
	return members
}
