package recommend

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"go.uber.org/zap"

	"github.com/abhisek/learnpath/internal/catalog"
)

// RecommendLearningPath returns a prioritized learning path for a student,
// sorted by priority and then estimated time.
//
// A student with no records gets the foundational concepts. Otherwise the
// path has three tiers: weak areas (high), concepts not yet started
// (medium) and extensions of strongly mastered concepts (low). A concept
// appears at most once; records for concepts missing from the catalog are
// ignored.
func (e *Engine) RecommendLearningPath(ctx context.Context, studentID int64) ([]Recommendation, error) {
	st, err := e.load(ctx, studentID)
	if err != nil {
		return nil, err
	}

	var recs []Recommendation
	if st.observed {
		recs = e.personalized(st)
	} else {
		recs = e.foundational(st.catalog)
	}
	sortRecommendations(recs)

	for _, r := range recs {
		e.metrics.ObserveRecommendation(string(r.Priority))
	}
	e.logger.Debug("built learning path",
		zap.Int64("student_id", studentID),
		zap.Int("records", len(st.records)),
		zap.Int("recommendations", len(recs)),
	)
	return recs, nil
}

// foundational picks concepts whose name carries a foundational marker, or
// the first few catalog concepts if none does.
func (e *Engine) foundational(cat *catalog.Catalog) []Recommendation {
	all := cat.All()

	var picked []catalog.Concept
	for _, c := range all {
		if hasMarker(c.Name, e.cfg.FoundationalMarkers) {
			picked = append(picked, c)
		}
	}
	if len(picked) == 0 {
		n := min(e.cfg.FoundationalFallback, len(all))
		picked = all[:n]
	}

	recs := make([]Recommendation, 0, len(picked))
	for _, c := range picked {
		recs = append(recs, Recommendation{
			ConceptID:     c.ID,
			ConceptName:   c.Name,
			Reason:        ReasonFoundational,
			Detail:        "Foundational skill for beginners",
			Priority:      PriorityHigh,
			EstimatedTime: e.cfg.Times.Foundational,
		})
	}
	return recs
}

func (e *Engine) personalized(st *studentState) []Recommendation {
	claimed := make(map[int64]bool)

	weak := e.weakAreas(st, claimed)
	// Extensions claim their concepts before the next-concept tier, so a
	// concept sharing a name prefix with a strong one is demoted from
	// medium to low. With the default catalog, 95% on "Data Structures"
	// turns an unstarted "Database Design" into a low extension instead of
	// a medium next concept.
	ext := e.extensions(st, claimed)
	next := e.nextConcepts(st, claimed)

	recs := make([]Recommendation, 0, len(weak)+len(next)+len(ext))
	recs = append(recs, weak...)
	recs = append(recs, next...)
	return append(recs, ext...)
}

func (e *Engine) weakAreas(st *studentState, claimed map[int64]bool) []Recommendation {
	var recs []Recommendation
	for _, c := range st.catalog.All() {
		score, ok := st.scores[c.ID]
		if !ok || score >= e.cfg.MasteredThreshold {
			continue
		}
		claimed[c.ID] = true
		recs = append(recs, Recommendation{
			ConceptID:     c.ID,
			ConceptName:   c.Name,
			Reason:        ReasonWeakArea,
			Detail:        fmt.Sprintf("Reinforce weak area (current mastery: %.1f%%)", score),
			Priority:      PriorityHigh,
			EstimatedTime: e.cfg.Times.WeakArea,
		})
	}
	return recs
}

func (e *Engine) extensions(st *studentState, claimed map[int64]bool) []Recommendation {
	all := st.catalog.All()

	var recs []Recommendation
	for _, trigger := range all {
		score, ok := st.scores[trigger.ID]
		if !ok || score < e.cfg.ExtensionThreshold {
			continue
		}
		prefix := namePrefix(trigger.Name, e.cfg.ExtensionPrefixLen)
		if prefix == "" {
			continue
		}

		added := 0
		for _, c := range all {
			if added >= e.cfg.MaxExtensions {
				break
			}
			if c.ID == trigger.ID || claimed[c.ID] {
				continue
			}
			if !strings.Contains(strings.ToLower(c.Name), prefix) {
				continue
			}
			claimed[c.ID] = true
			added++
			recs = append(recs, Recommendation{
				ConceptID:     c.ID,
				ConceptName:   c.Name,
				Reason:        ReasonAdvancedExtension,
				Detail:        fmt.Sprintf("Advanced extension of mastered concept (%.1f%% mastery)", score),
				Priority:      PriorityLow,
				EstimatedTime: e.cfg.Times.Extension,
			})
		}
	}
	return recs
}

func (e *Engine) nextConcepts(st *studentState, claimed map[int64]bool) []Recommendation {
	mastered := make(map[int64]bool)
	for id, score := range st.scores {
		if score >= e.cfg.MasteredThreshold {
			mastered[id] = true
		}
	}

	var recs []Recommendation
	for _, c := range st.catalog.All() {
		if mastered[c.ID] || claimed[c.ID] {
			continue
		}
		if !st.catalog.PrerequisitesMet(c.ID, mastered) {
			continue
		}
		claimed[c.ID] = true
		recs = append(recs, Recommendation{
			ConceptID:     c.ID,
			ConceptName:   c.Name,
			Reason:        ReasonNextConcept,
			Detail:        "Next logical concept to learn",
			Priority:      PriorityMedium,
			EstimatedTime: e.cfg.Times.NextConcept,
		})
	}
	return recs
}

// sortRecommendations orders by priority rank, then estimated time. Equal
// keys keep their construction order.
func sortRecommendations(recs []Recommendation) {
	sort.SliceStable(recs, func(i, j int) bool {
		ri, rj := recs[i].Priority.Rank(), recs[j].Priority.Rank()
		if ri != rj {
			return ri < rj
		}
		return recs[i].EstimatedTime < recs[j].EstimatedTime
	})
}

func hasMarker(name string, markers []string) bool {
	lower := strings.ToLower(name)
	for _, m := range markers {
		if strings.Contains(lower, strings.ToLower(m)) {
			return true
		}
	}
	return false
}

// namePrefix returns the first n characters of the lower-cased name.
func namePrefix(name string, n int) string {
	r := []rune(strings.ToLower(name))
	if len(r) > n {
		r = r[:n]
	}
	return string(r)
}
