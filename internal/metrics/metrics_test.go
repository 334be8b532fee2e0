package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveUpdate(t *testing.T) {
	c := NewCollector("test")
	c.ObserveUpdate(true, 93)
	c.ObserveUpdate(true, 95)
	c.ObserveUpdate(false, 37)

	assert.Equal(t, 2.0, testutil.ToFloat64(c.MasteryUpdates.WithLabelValues("correct")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.MasteryUpdates.WithLabelValues("incorrect")))
	assert.Equal(t, 1, testutil.CollectAndCount(c.MasteryScore))
}

func TestObserveCounters(t *testing.T) {
	c := NewCollector("test")
	c.ObserveUpdateError("invalid_input")
	c.ObserveRecommendation("high")
	c.ObserveRecommendation("high")
	c.ObserveAssignment("beginner")

	assert.Equal(t, 1.0, testutil.ToFloat64(c.MasteryUpdateErrors.WithLabelValues("invalid_input")))
	assert.Equal(t, 2.0, testutil.ToFloat64(c.Recommendations.WithLabelValues("high")))
	assert.Equal(t, 1.0, testutil.ToFloat64(c.Assignments.WithLabelValues("beginner")))
}

func TestSeparateRegistries(t *testing.T) {
	a := NewCollector("test")
	b := NewCollector("test")
	a.ObserveAssignment("challenge")
	assert.Equal(t, 0.0, testutil.ToFloat64(b.Assignments.WithLabelValues("challenge")))
}

func TestNilCollector(t *testing.T) {
	var c *Collector
	c.ObserveUpdate(true, 50)
	c.ObserveUpdateError("x")
	c.ObserveRecommendation("low")
	c.ObserveAssignment("beginner")
	assert.Nil(t, c.Registry())
	assert.NoError(t, c.WriteTextfile(filepath.Join(t.TempDir(), "unused.prom")))
}

func TestWriteTextfile(t *testing.T) {
	c := NewCollector("learnpath")
	c.ObserveRecommendation("medium")

	path := filepath.Join(t.TempDir(), "learnpath.prom")
	require.NoError(t, c.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), `learnpath_recommendations_total{priority="medium"} 1`), string(data))
}
