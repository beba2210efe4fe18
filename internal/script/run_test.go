package script

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/motionseq/motionseq/internal/sequence"
)

func TestRunSeedEdit(t *testing.T) {
	sc, err := Load("testdata/scripts/seed_edit.yaml")
	require.NoError(t, err)

	result, err := Run(sc)
	require.NoError(t, err)

	assert.True(t, result.Pass(), "failures: %v", result.Failures)
	assert.Equal(t, 0, result.Sequence.Len())
	assert.Len(t, result.Trace, 10)
}

func TestRunLoadEdit(t *testing.T) {
	sc, err := Load("testdata/scripts/load_edit.yaml")
	require.NoError(t, err)

	result, err := Run(sc)
	require.NoError(t, err)

	assert.True(t, result.Pass(), "failures: %v", result.Failures)

	// The loaded file starts clean; the single edit dirties it once.
	assert.True(t, result.Sequence.IsModified())
	assert.Equal(t, 10.0, result.Sequence.CoordinateAt(0, 0))
}

func TestRunReportsAssertionFailures(t *testing.T) {
	sc := &Script{
		Name:  "failing",
		Steps: []Step{{Op: OpAppend}},
		Assertions: []Assertion{
			{Type: AssertLength, Count: 7},
			{Type: AssertCursor, None: true},
		},
	}

	seq := sequence.New(2,
		sequence.Point{Coords: []float64{0, 0}},
		sequence.Point{Coords: []float64{1, 1}, Duration: 10, TimeToTarget: 10})

	result := RunOn(sc, seq)

	assert.False(t, result.Pass())
	require.Len(t, result.Failures, 2)
	assert.Contains(t, result.Failures[0], "length: want 7, got 1")
	assert.Contains(t, result.Failures[1], "cursor: want none, got 0")
}

func TestRunStepsOnEmptySequenceAreNoOps(t *testing.T) {
	// Setter steps with no current point fall through silently, like the
	// model itself.
	sc := &Script{
		Name: "noop",
		Steps: []Step{
			{Op: OpRemove},
			{Op: OpSetDuration, Duration: intp(5)},
			{Op: OpSetCur, Pos: intp(3)},
		},
		Assertions: []Assertion{
			{Type: AssertLength, Count: 0},
			{Type: AssertModified, Modified: boolp(false)},
		},
	}

	seq := sequence.New(1,
		sequence.Point{Coords: []float64{0}},
		sequence.Point{Coords: []float64{1}, Duration: 10, TimeToTarget: 10})

	result := RunOn(sc, seq)
	assert.True(t, result.Pass(), "failures: %v", result.Failures)
	assert.Empty(t, result.Trace)
}

func TestRunBadInputFile(t *testing.T) {
	sc := &Script{
		Name:  "bad",
		Input: filepath.Join(t.TempDir(), "missing.json"),
		Steps: []Step{{Op: OpAppend}},
	}

	_, err := Run(sc)
	assert.Error(t, err)
}

func TestRunBadProfile(t *testing.T) {
	sc := &Script{
		Name:    "bad",
		Profile: filepath.Join(t.TempDir(), "missing.cue"),
		Steps:   []Step{{Op: OpAppend}},
	}

	_, err := Run(sc)
	assert.Error(t, err)
}

func intp(v int) *int    { return &v }
func boolp(v bool) *bool { return &v }
