package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func createConcept(t *testing.T, repo ConceptRepo, name string, prereqs ...int64) int64 {
	t.Helper()
	c := &ConceptData{Name: name, Description: name + " description", Prerequisites: prereqs}
	require.NoError(t, repo.Create(context.Background(), c))
	return c.ID
}

func TestOpenClose(t *testing.T) {
	s := openTestStore(t)
	if s.DB() == nil {
		t.Fatal("expected non-nil db")
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
		{"journal_mode", "wal"},
		{"busy_timeout", "5000"},
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestWithPragmas(t *testing.T) {
	got := withPragmas("x.db")
	assert.Contains(t, got, "x.db?_pragma=journal_mode(WAL)")
	assert.Contains(t, got, "&_txlock=immediate")

	got = withPragmas("file:x.db?mode=rwc")
	assert.Contains(t, got, "file:x.db?mode=rwc&_pragma=")
}

func TestConceptCreateAndList(t *testing.T) {
	s := openTestStore(t)
	repo := s.ConceptRepo()
	ctx := context.Background()

	basics := createConcept(t, repo, "Python Basics")
	ds := createConcept(t, repo, "Data Structures", basics)
	algo := createConcept(t, repo, "Algorithms", basics, ds)

	concepts, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, concepts, 3)

	assert.Equal(t, basics, concepts[0].ID)
	assert.Equal(t, "Python Basics", concepts[0].Name)
	assert.Empty(t, concepts[0].Prerequisites)
	assert.Equal(t, []int64{basics}, concepts[1].Prerequisites)
	assert.Equal(t, []int64{basics, ds}, concepts[2].Prerequisites)
	assert.Equal(t, algo, concepts[2].ID)
	assert.False(t, concepts[2].CreatedAt.IsZero())
}

func TestConceptGet(t *testing.T) {
	s := openTestStore(t)
	repo := s.ConceptRepo()
	ctx := context.Background()

	basics := createConcept(t, repo, "Python Basics")
	ds := createConcept(t, repo, "Data Structures", basics)

	c, err := repo.Get(ctx, ds)
	require.NoError(t, err)
	assert.Equal(t, "Data Structures", c.Name)
	assert.Equal(t, "Data Structures description", c.Description)
	assert.Equal(t, []int64{basics}, c.Prerequisites)

	_, err = repo.Get(ctx, 999)
	assert.True(t, errors.Is(err, ErrNotFound), "got %v, want ErrNotFound", err)
}

func TestConceptCreate_DanglingPrerequisite(t *testing.T) {
	s := openTestStore(t)
	repo := s.ConceptRepo()

	err := repo.Create(context.Background(), &ConceptData{Name: "Orphan", Prerequisites: []int64{42}})
	require.ErrorIs(t, err, ErrNotFound)

	concepts, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, concepts, "failed create must not leave a row behind")
}

func TestMasteryGet_Missing(t *testing.T) {
	s := openTestStore(t)
	cid := createConcept(t, s.ConceptRepo(), "Python Basics")

	m, err := s.MasteryRepo().Get(context.Background(), 1, cid)
	require.NoError(t, err)
	assert.Nil(t, m)
}

// setScore overwrites a mastery record with a fixed score.
func setScore(t *testing.T, repo MasteryRepo, studentID, conceptID int64, score float64) {
	t.Helper()
	_, err := repo.Update(context.Background(), studentID, conceptID, func(*MasteryData) (float64, error) {
		return score, nil
	})
	require.NoError(t, err)
}

func TestMasteryListForStudent(t *testing.T) {
	s := openTestStore(t)
	concepts := s.ConceptRepo()
	repo := s.MasteryRepo()
	ctx := context.Background()

	a := createConcept(t, concepts, "Python Basics")
	b := createConcept(t, concepts, "Data Structures")

	setScore(t, repo, 1, b, 60)
	setScore(t, repo, 1, a, 85)
	setScore(t, repo, 2, a, 35)

	records, err := repo.ListForStudent(ctx, 1)
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, a, records[0].ConceptID, "records are ordered by concept id")
	assert.InDelta(t, 85.0, records[0].Score, 1e-9)
	assert.Equal(t, b, records[1].ConceptID)

	// Overwrite keeps a single row.
	setScore(t, repo, 1, a, 90)
	m, err := repo.Get(ctx, 1, a)
	require.NoError(t, err)
	require.NotNil(t, m)
	assert.InDelta(t, 90.0, m.Score, 1e-9)

	records, err = repo.ListForStudent(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, records, 2)

	records, err = repo.ListForStudent(ctx, 3)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestConceptCreate_BlankName(t *testing.T) {
	s := openTestStore(t)
	repo := s.ConceptRepo()

	for _, name := range []string{"", "   ", "\t\n"} {
		err := repo.Create(context.Background(), &ConceptData{Name: name})
		require.ErrorIs(t, err, ErrEmptyName, "name %q", name)
	}

	concepts, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, concepts)
}

func TestMasteryUpdate(t *testing.T) {
	s := openTestStore(t)
	cid := createConcept(t, s.ConceptRepo(), "Python Basics")
	repo := s.MasteryRepo()
	ctx := context.Background()

	var seen []*MasteryData
	bump := func(current *MasteryData) (float64, error) {
		seen = append(seen, current)
		if current == nil {
			return 50, nil
		}
		return current.Score + 10, nil
	}

	m, err := repo.Update(ctx, 1, cid, bump)
	require.NoError(t, err)
	assert.InDelta(t, 50.0, m.Score, 1e-9)

	m, err = repo.Update(ctx, 1, cid, bump)
	require.NoError(t, err)
	assert.InDelta(t, 60.0, m.Score, 1e-9)

	require.Len(t, seen, 2)
	assert.Nil(t, seen[0])
	require.NotNil(t, seen[1])
	assert.InDelta(t, 50.0, seen[1].Score, 1e-9)
	assert.Equal(t, seen[1].CreatedAt.Unix(), m.CreatedAt.Unix())
}

func TestMasteryUpdate_FuncErrorRollsBack(t *testing.T) {
	s := openTestStore(t)
	cid := createConcept(t, s.ConceptRepo(), "Python Basics")
	repo := s.MasteryRepo()
	ctx := context.Background()

	boom := errors.New("boom")
	_, err := repo.Update(ctx, 1, cid, func(*MasteryData) (float64, error) { return 0, boom })
	require.ErrorIs(t, err, boom)

	m, err := repo.Get(ctx, 1, cid)
	require.NoError(t, err)
	assert.Nil(t, m)
}

func TestMasteryUpdate_UnknownConcept(t *testing.T) {
	s := openTestStore(t)
	called := false
	_, err := s.MasteryRepo().Update(context.Background(), 1, 99, func(*MasteryData) (float64, error) {
		called = true
		return 0, nil
	})
	require.ErrorIs(t, err, ErrNotFound)
	assert.False(t, called)
}
