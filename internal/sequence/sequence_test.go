package sequence

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestSequence returns an empty 3-dimensional sequence with
// coordinates bounded to [0, 10] and both timing fields to [0, 100].
func newTestSequence() *Sequence {
	min := Point{Coords: []float64{0, 0, 0}, Duration: 0, TimeToTarget: 0}
	max := Point{Coords: []float64{10, 10, 10}, Duration: 100, TimeToTarget: 100}
	return New(3, min, max)
}

// inBounds asserts that every stored point lies within the bounds.
func inBounds(t *testing.T, s *Sequence) {
	t.Helper()
	for pos := 0; pos < s.Len(); pos++ {
		p := s.At(pos)
		require.Len(t, p.Coords, s.PointDim())
		for c, v := range p.Coords {
			assert.GreaterOrEqual(t, v, s.MinCoordinate(c))
			assert.LessOrEqual(t, v, s.MaxCoordinate(c))
		}
		assert.GreaterOrEqual(t, p.Duration, s.MinDuration())
		assert.LessOrEqual(t, p.Duration, s.MaxDuration())
		assert.GreaterOrEqual(t, p.TimeToTarget, s.MinTimeToTarget())
		assert.LessOrEqual(t, p.TimeToTarget, s.MaxTimeToTarget())
	}
}

func TestNewSequence(t *testing.T) {
	s := newTestSequence()

	assert.True(t, s.IsValid())
	assert.Equal(t, 3, s.PointDim())
	assert.Equal(t, 0, s.Len())
	assert.False(t, s.IsModified())

	_, ok := s.CurIndex()
	assert.False(t, ok)
}

func TestNewNormalizesBoundsWithoutClamping(t *testing.T) {
	// Bounds are padded/truncated to the dimension but never clamped
	// against each other.
	min := Point{Coords: []float64{5}, Duration: 3, TimeToTarget: 1}
	max := Point{Coords: []float64{1, 2, 3, 4}, Duration: 0, TimeToTarget: 0}
	s := New(2, min, max)

	assert.Equal(t, []float64{5, 0}, s.Min().Coords)
	assert.Equal(t, []float64{1, 2}, s.Max().Coords)
	assert.Equal(t, 3, s.MinDuration())
	assert.Equal(t, 0, s.MaxDuration())
}

func TestZeroValueIsInvalidAndInert(t *testing.T) {
	var s Sequence
	s.cur = noCurrent

	assert.False(t, s.IsValid())

	s.InsertAfterCurrent()
	s.InsertBeforeCurrent()
	s.Append()
	s.RemoveCurrent()
	s.Clear()
	s.SetPoint(Point{Coords: []float64{1}})
	s.SetCoordinate(0, 1)
	s.SetDuration(1)
	s.SetTimeToTarget(1)

	assert.Equal(t, 0, s.Len())
	assert.False(t, s.IsModified())
}

func TestInsertAfterCurrentOnEmpty(t *testing.T) {
	s := newTestSequence()
	rec := NewRecorder()
	s.Subscribe(rec)

	s.InsertAfterCurrent()

	require.Equal(t, 1, s.Len())
	idx, ok := s.CurIndex()
	require.True(t, ok)
	assert.Equal(t, 0, idx)

	// The inserted point is the midpoint of the bounds.
	p := s.At(0)
	assert.Equal(t, []float64{5, 5, 5}, p.Coords)
	assert.Equal(t, 50, p.Duration)
	assert.Equal(t, 50, p.TimeToTarget)

	assert.Equal(t, []Signal{
		{Kind: SigNumPointsChanged},
		{Kind: SigCurPointChanged},
		{Kind: SigModifiedChanged},
	}, rec.Trace())
	assert.True(t, s.IsModified())
	inBounds(t, s)
}

func TestInsertAfterCurrentCopiesCurrent(t *testing.T) {
	s := newTestSequence()
	s.Append()
	s.SetPoint(Point{Coords: []float64{1, 2, 3}, Duration: 10, TimeToTarget: 20})
	s.Append()
	s.SetPoint(Point{Coords: []float64{4, 5, 6}, Duration: 30, TimeToTarget: 40})
	s.SetCurPoint(0)

	rec := NewRecorder()
	s.Subscribe(rec)

	s.InsertAfterCurrent()

	require.Equal(t, 3, s.Len())
	idx, ok := s.CurIndex()
	require.True(t, ok)
	assert.Equal(t, 1, idx)

	// Index 1 holds a copy of the old point 0; index 2 is the old point 1.
	assert.True(t, s.At(1).Equal(s.At(0)))
	assert.Equal(t, []float64{4, 5, 6}, s.At(2).Coords)

	assert.Equal(t, []Signal{
		{Kind: SigNumPointsChanged},
		{Kind: SigCurPointChanged},
		{Kind: SigModifiedChanged},
	}, rec.Trace())
	inBounds(t, s)
}

func TestInsertBeforeCurrentOnEmpty(t *testing.T) {
	s := newTestSequence()
	rec := NewRecorder()
	s.Subscribe(rec)

	s.InsertBeforeCurrent()

	require.Equal(t, 1, s.Len())
	idx, ok := s.CurIndex()
	require.True(t, ok)
	assert.Equal(t, 0, idx)

	// On the empty branch the cursor lands first, then the length
	// change, then the content notification.
	assert.Equal(t, []Signal{
		{Kind: SigCurPointChanged},
		{Kind: SigNumPointsChanged},
		{Kind: SigCurPointValuesChanged},
		{Kind: SigModifiedChanged},
	}, rec.Trace())
}

func TestInsertBeforeCurrentKeepsIndex(t *testing.T) {
	s := newTestSequence()
	s.Append()
	s.SetPoint(Point{Coords: []float64{1, 2, 3}, Duration: 10, TimeToTarget: 20})

	rec := NewRecorder()
	s.Subscribe(rec)

	s.InsertBeforeCurrent()

	require.Equal(t, 2, s.Len())
	idx, ok := s.CurIndex()
	require.True(t, ok)
	assert.Equal(t, 0, idx)
	assert.True(t, s.At(0).Equal(s.At(1)))

	assert.Equal(t, []Signal{
		{Kind: SigNumPointsChanged},
		{Kind: SigCurPointValuesChanged},
		{Kind: SigModifiedChanged},
	}, rec.Trace())
}

func TestAppendMovesCursorToEnd(t *testing.T) {
	s := newTestSequence()
	s.Append()
	s.SetPoint(Point{Coords: []float64{1, 2, 3}, Duration: 10, TimeToTarget: 20})
	s.Append()
	s.SetCurPoint(0)

	rec := NewRecorder()
	s.Subscribe(rec)

	s.Append()

	require.Equal(t, 3, s.Len())
	idx, ok := s.CurIndex()
	require.True(t, ok)
	assert.Equal(t, 2, idx)

	// The appended point is a copy of the point that was current.
	assert.True(t, s.At(2).Equal(s.At(0)))

	assert.Equal(t, []Signal{
		{Kind: SigNumPointsChanged},
		{Kind: SigCurPointChanged},
		{Kind: SigModifiedChanged},
	}, rec.Trace())
}

func TestSetCurPointClamps(t *testing.T) {
	s := newTestSequence()
	for i := 0; i < 4; i++ {
		s.Append()
	}

	s.SetCurPoint(-5)
	idx, ok := s.CurIndex()
	require.True(t, ok)
	assert.Equal(t, 0, idx)

	s.SetCurPoint(1000)
	idx, ok = s.CurIndex()
	require.True(t, ok)
	assert.Equal(t, 3, idx)
}

func TestSetCurPointNoOpCases(t *testing.T) {
	s := newTestSequence()
	rec := NewRecorder()
	s.Subscribe(rec)

	// Empty sequence: nothing happens.
	s.SetCurPoint(0)
	assert.Empty(t, rec.Trace())

	s.Append()
	rec.Reset()

	// Clamped value equals the current index: no signal.
	s.SetCurPoint(5)
	assert.Empty(t, rec.Trace())

	// Moving the cursor never marks the document dirty.
	s.Save()
	s.SetCurPoint(0)
	assert.False(t, s.IsModified())
}

func TestRemoveCurrentMiddle(t *testing.T) {
	s := newTestSequence()
	for i := 0; i < 3; i++ {
		s.Append()
		s.SetCoordinate(0, float64(i+1))
	}
	s.SetCurPoint(1)

	rec := NewRecorder()
	s.Subscribe(rec)

	s.RemoveCurrent()

	require.Equal(t, 2, s.Len())
	idx, ok := s.CurIndex()
	require.True(t, ok)
	assert.Equal(t, 1, idx)

	// The index is unchanged but now designates the shifted point.
	assert.Equal(t, 3.0, s.CurCoordinate(0))

	assert.Equal(t, []Signal{
		{Kind: SigNumPointsChanged},
		{Kind: SigCurPointValuesChanged},
		{Kind: SigModifiedChanged},
	}, rec.Trace())
}

func TestRemoveCurrentLast(t *testing.T) {
	s := newTestSequence()
	s.Append()
	s.Append()

	rec := NewRecorder()
	s.Subscribe(rec)

	s.RemoveCurrent()

	idx, ok := s.CurIndex()
	require.True(t, ok)
	assert.Equal(t, 0, idx)

	assert.Equal(t, []Signal{
		{Kind: SigNumPointsChanged},
		{Kind: SigCurPointChanged},
		{Kind: SigModifiedChanged},
	}, rec.Trace())
}

func TestRemoveCurrentToEmpty(t *testing.T) {
	s := newTestSequence()
	s.Append()

	s.RemoveCurrent()

	assert.Equal(t, 0, s.Len())
	_, ok := s.CurIndex()
	assert.False(t, ok)

	// Current-point accessors fall back to zero sentinels instead of
	// failing.
	assert.Equal(t, 0.0, s.CurCoordinate(0))
	assert.Equal(t, 0, s.CurDuration())
	assert.Equal(t, 0, s.CurTimeToTarget())
	_, ok = s.CurPoint()
	assert.False(t, ok)

	// And a second removal is a silent no-op.
	s.RemoveCurrent()
	assert.Equal(t, 0, s.Len())
}

func TestClear(t *testing.T) {
	s := newTestSequence()
	s.Append()
	s.Append()

	rec := NewRecorder()
	s.Subscribe(rec)

	s.Clear()

	assert.Equal(t, 0, s.Len())
	_, ok := s.CurIndex()
	assert.False(t, ok)

	assert.Equal(t, []Signal{
		{Kind: SigNumPointsChanged},
		{Kind: SigCurPointChanged},
		{Kind: SigModifiedChanged},
	}, rec.Trace())
}

func TestClearOnEmptyStillMarksModified(t *testing.T) {
	s := newTestSequence()
	require.False(t, s.IsModified())

	rec := NewRecorder()
	s.Subscribe(rec)

	s.Clear()

	// No length or cursor signals, but the dirty flag still flips.
	assert.Equal(t, []Signal{{Kind: SigModifiedChanged}}, rec.Trace())
	assert.True(t, s.IsModified())
}

func TestSetPointClampsAndSignals(t *testing.T) {
	s := newTestSequence()
	s.Append()
	s.Append()
	s.SetCurPoint(0)

	rec := NewRecorder()
	s.Subscribe(rec)

	s.SetPointAt(1, Point{Coords: []float64{-5, 20, 3}, Duration: 400, TimeToTarget: -1})

	p := s.At(1)
	assert.Equal(t, []float64{0, 10, 3}, p.Coords)
	assert.Equal(t, 100, p.Duration)
	assert.Equal(t, 0, p.TimeToTarget)

	// pos != cursor: no current-point content signal.
	assert.Equal(t, []Signal{
		{Kind: SigPointValuesChanged, Pos: 1},
		{Kind: SigModifiedChanged},
	}, rec.Trace())
	inBounds(t, s)
}

func TestSetPointOnCursorAlsoSignalsCurrent(t *testing.T) {
	s := newTestSequence()
	s.Append()

	rec := NewRecorder()
	s.Subscribe(rec)

	s.SetPoint(Point{Coords: []float64{1, 2, 3}, Duration: 10, TimeToTarget: 20})

	assert.Equal(t, []Signal{
		{Kind: SigPointValuesChanged, Pos: 0},
		{Kind: SigCurPointValuesChanged},
		{Kind: SigModifiedChanged},
	}, rec.Trace())
}

func TestSetPointUnchangedIsSilent(t *testing.T) {
	s := newTestSequence()
	s.Append()
	p, ok := s.CurPoint()
	require.True(t, ok)
	s.Save() // clean slate

	rec := NewRecorder()
	s.Subscribe(rec)

	s.SetPoint(p)

	assert.Empty(t, rec.Trace())
	assert.False(t, s.IsModified())
}

func TestSetPointNormalizesDimension(t *testing.T) {
	s := newTestSequence()
	s.Append()

	// Too short: padded with zeros. Too long: truncated.
	s.SetPoint(Point{Coords: []float64{7}, Duration: 10, TimeToTarget: 10})
	assert.Equal(t, []float64{7, 0, 0}, s.At(0).Coords)

	s.SetPoint(Point{Coords: []float64{1, 2, 3, 4, 5}, Duration: 10, TimeToTarget: 10})
	assert.Equal(t, []float64{1, 2, 3}, s.At(0).Coords)
}

func TestScalarSettersClampAndShortCircuit(t *testing.T) {
	s := newTestSequence()
	s.Append()

	rec := NewRecorder()
	s.Subscribe(rec)

	s.SetCoordinate(1, 99.0)
	assert.Equal(t, 10.0, s.CurCoordinate(1))

	s.SetDuration(-7)
	assert.Equal(t, 0, s.CurDuration())

	s.SetTimeToTarget(123)
	assert.Equal(t, 100, s.CurTimeToTarget())

	// Re-applying the already-clamped values is silent.
	rec.Reset()
	s.SetDuration(s.CurDuration())
	s.SetCoordinate(1, 10.0)
	s.SetTimeToTarget(100)
	assert.Empty(t, rec.Trace())
	inBounds(t, s)
}

func TestScalarSettersNoCurrentPoint(t *testing.T) {
	s := newTestSequence()

	// All current-point setters are silent no-ops with no current point.
	s.SetPoint(Point{Coords: []float64{1, 2, 3}})
	s.SetCoordinate(0, 5)
	s.SetDuration(5)
	s.SetTimeToTarget(5)

	assert.Equal(t, 0, s.Len())
	assert.False(t, s.IsModified())
}

func TestValidatePointViaInsertion(t *testing.T) {
	// Inserting after a current point runs the full validation path:
	// the stored copy is clamped even if the original was set before
	// tighter bounds would have applied.
	min := Point{Coords: []float64{0, 0}, Duration: 5, TimeToTarget: 5}
	max := Point{Coords: []float64{1, 1}, Duration: 10, TimeToTarget: 10}
	s := New(2, min, max)

	s.Append()
	inBounds(t, s)

	s.InsertAfterCurrent()
	s.InsertBeforeCurrent()
	inBounds(t, s)
}

func TestBoundAccessors(t *testing.T) {
	min := Point{Coords: []float64{-1.0, 40.0, -36.0}, Duration: 3, TimeToTarget: 1}
	max := Point{Coords: []float64{4.0, 230.0, 75.0}, Duration: 3000, TimeToTarget: 10000}
	s := New(3, min, max)

	assert.Equal(t, -1.0, s.MinCoordinate(0))
	assert.Equal(t, 230.0, s.MaxCoordinate(1))
	assert.Equal(t, 3, s.MinDuration())
	assert.Equal(t, 3000, s.MaxDuration())
	assert.Equal(t, 1, s.MinTimeToTarget())
	assert.Equal(t, 10000, s.MaxTimeToTarget())

	// Min/Max return copies: mutating them must not corrupt the bounds.
	m := s.Min()
	m.Coords[0] = 999
	assert.Equal(t, -1.0, s.MinCoordinate(0))
}
