package cmd

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/learnpath/internal/catalog"
	"github.com/abhisek/learnpath/internal/recommend"
)

// runCLI executes the root command with args and returns what it printed.
// Flag values persist on the global command tree between runs, so every
// call passes the full flag set it depends on.
func runCLI(t *testing.T, args ...string) []byte {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})
	require.NoError(t, rootCmd.Execute(), "learnpath %v", args)
	return out.Bytes()
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"LEARNPATH_DB",
		"LEARNPATH_METRICS_FILE",
		"LEARNPATH_MASTERED_THRESHOLD",
		"LEARNPATH_EXTENSION_THRESHOLD",
	} {
		t.Setenv(k, "")
	}
	t.Setenv("LEARNPATH_LOG_LEVEL", "error")
}

func TestCLI_SeedUpdateRecommend(t *testing.T) {
	clearEnv(t)
	db := filepath.Join(t.TempDir(), "learnpath.db")

	var seeded []catalog.Concept
	require.NoError(t, json.Unmarshal(runCLI(t, "concepts", "seed", "--db", db, "--json"), &seeded))
	require.Len(t, seeded, 5)
	assert.Equal(t, "Data Structures", seeded[1].Name)

	var updated struct {
		StudentID int64   `json:"student_id"`
		ConceptID int64   `json:"concept_id"`
		RawScore  float64 `json:"raw_score"`
		Mastery   float64 `json:"mastery"`
	}
	out := runCLI(t, "update", "--db", db, "--json",
		"--student", "1", "--concept", "2", "--score", "80")
	require.NoError(t, json.Unmarshal(out, &updated))
	assert.Equal(t, int64(1), updated.StudentID)
	assert.Equal(t, int64(2), updated.ConceptID)
	assert.Equal(t, 80.0, updated.RawScore)
	assert.InDelta(t, 93.0, updated.Mastery, 0.01)

	var next recommend.AssignmentSuggestion
	require.NoError(t, json.Unmarshal(runCLI(t, "next", "--db", db, "--json", "--student", "1"), &next))
	assert.Equal(t, recommend.KindChallenge, next.Kind)

	var recs []recommend.Recommendation
	require.NoError(t, json.Unmarshal(runCLI(t, "recommend", "--db", db, "--json", "--student", "1"), &recs))
	require.Len(t, recs, 4)

	byID := make(map[int64]recommend.Recommendation, len(recs))
	for _, r := range recs {
		byID[r.ConceptID] = r
	}
	assert.NotContains(t, byID, int64(2), "mastered concept is not recommended")
	for _, id := range []int64{1, 3, 4} {
		assert.Equal(t, recommend.PriorityMedium, byID[id].Priority, "concept %d", id)
		assert.Equal(t, recommend.ReasonNextConcept, byID[id].Reason, "concept %d", id)
	}
	assert.Equal(t, "Database Design", byID[5].ConceptName)
	assert.Equal(t, recommend.ReasonAdvancedExtension, byID[5].Reason)
	assert.Equal(t, recommend.PriorityLow, byID[5].Priority)
	assert.Equal(t, int64(5), recs[len(recs)-1].ConceptID)
}

func TestCLI_ConceptsListShowsDependents(t *testing.T) {
	clearEnv(t)
	db := filepath.Join(t.TempDir(), "learnpath.db")

	runCLI(t, "concepts", "seed", "--db", db, "--json")
	out := string(runCLI(t, "concepts", "list", "--db", db, "--json=false"))

	assert.Contains(t, out, "Unlocks")
	assert.Contains(t, out, "Database Design")
	assert.Contains(t, out, "3, 5", "Data Structures unlocks Algorithms and Database Design")
	assert.Contains(t, out, "5 concepts")
}
