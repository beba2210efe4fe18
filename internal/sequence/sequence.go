package sequence

// noCurrent marks the "no current point" cursor state. It is never
// exposed: CurIndex reports the state as (0, false) instead.
const noCurrent = -1

// Sequence is an ordered, bounds-clamped list of Points with a current
// point cursor and a dirty flag. The zero value is an invalid Sequence
// (PointDim == 0) on which every mutator is a no-op; use New to build a
// usable one.
type Sequence struct {
	pointDim  int
	min, max  Point
	points    []Point
	cur       int
	modified  bool
	observers []Observer
}

// New creates an empty Sequence with the given point dimension and
// bounds. The bounds are normalized to pointDim entries but deliberately
// not clamped against each other; callers are expected to supply
// min <= max component-wise.
func New(pointDim int, min, max Point) *Sequence {
	s := &Sequence{
		pointDim: pointDim,
		cur:      noCurrent,
	}
	s.min = s.validatePoint(min, true)
	s.max = s.validatePoint(max, true)
	return s
}

// newInvalid returns the inert Sequence every failed load degrades into.
func newInvalid() *Sequence {
	return &Sequence{cur: noCurrent}
}

// IsValid reports whether the Sequence can hold points. Invalid
// Sequences (dimension 0) are inert: mutators do nothing.
func (s *Sequence) IsValid() bool {
	return s.pointDim > 0
}

// PointDim returns the coordinate dimension of every point.
func (s *Sequence) PointDim() int {
	return s.pointDim
}

// Len returns the number of points in the sequence.
func (s *Sequence) Len() int {
	return len(s.points)
}

// IsModified reports whether the sequence changed since the last
// successful save or load.
func (s *Sequence) IsModified() bool {
	return s.modified
}

// Min returns a copy of the lower bound point.
func (s *Sequence) Min() Point {
	return s.min.clone()
}

// Max returns a copy of the upper bound point.
func (s *Sequence) Max() Point {
	return s.max.clone()
}

// MinCoordinate returns the lower bound for coordinate c.
func (s *Sequence) MinCoordinate(c int) float64 {
	return s.min.Coords[c]
}

// MinDuration returns the lower bound for Duration.
func (s *Sequence) MinDuration() int {
	return s.min.Duration
}

// MinTimeToTarget returns the lower bound for TimeToTarget.
func (s *Sequence) MinTimeToTarget() int {
	return s.min.TimeToTarget
}

// MaxCoordinate returns the upper bound for coordinate c.
func (s *Sequence) MaxCoordinate(c int) float64 {
	return s.max.Coords[c]
}

// MaxDuration returns the upper bound for Duration.
func (s *Sequence) MaxDuration() int {
	return s.max.Duration
}

// MaxTimeToTarget returns the upper bound for TimeToTarget.
func (s *Sequence) MaxTimeToTarget() int {
	return s.max.TimeToTarget
}

// At returns a copy of the point at pos. Panics if pos is out of range.
func (s *Sequence) At(pos int) Point {
	return s.points[pos].clone()
}

// CurIndex returns the cursor index and whether a current point exists.
// There is no current point only when the sequence is empty.
func (s *Sequence) CurIndex() (int, bool) {
	if s.cur == noCurrent {
		return 0, false
	}
	return s.cur, true
}

// CurPoint returns a copy of the current point, or (Point{}, false) when
// there is none.
func (s *Sequence) CurPoint() (Point, bool) {
	if s.cur == noCurrent {
		return Point{}, false
	}
	return s.points[s.cur].clone(), true
}

// CoordinateAt returns coordinate c of the point at pos.
func (s *Sequence) CoordinateAt(pos, c int) float64 {
	return s.points[pos].Coords[c]
}

// DurationAt returns the Duration of the point at pos.
func (s *Sequence) DurationAt(pos int) int {
	return s.points[pos].Duration
}

// TimeToTargetAt returns the TimeToTarget of the point at pos.
func (s *Sequence) TimeToTargetAt(pos int) int {
	return s.points[pos].TimeToTarget
}

// CurCoordinate returns coordinate c of the current point, or 0.0 when
// there is no current point.
func (s *Sequence) CurCoordinate(c int) float64 {
	if s.cur == noCurrent {
		return 0.0
	}
	return s.CoordinateAt(s.cur, c)
}

// CurDuration returns the Duration of the current point, or 0 when there
// is no current point.
func (s *Sequence) CurDuration() int {
	if s.cur == noCurrent {
		return 0
	}
	return s.DurationAt(s.cur)
}

// CurTimeToTarget returns the TimeToTarget of the current point, or 0
// when there is no current point.
func (s *Sequence) CurTimeToTarget() int {
	if s.cur == noCurrent {
		return 0
	}
	return s.TimeToTargetAt(s.cur)
}

// SetCurPoint moves the cursor to p, clamped into [0, Len-1]. Does
// nothing on an empty sequence or when the clamped index equals the
// current one. Moving the cursor does not mark the sequence modified.
func (s *Sequence) SetCurPoint(p int) {
	if len(s.points) == 0 {
		return
	}

	if p < 0 {
		p = 0
	} else if p >= len(s.points) {
		p = len(s.points) - 1
	}

	if p != s.cur {
		s.cur = p
		s.emitCurPointChanged()
	}
}

// InsertAfterCurrent inserts a copy of the current point immediately
// after the cursor and moves the cursor onto the copy. On an empty
// sequence the default midpoint point is appended instead.
func (s *Sequence) InsertAfterCurrent() {
	if !s.IsValid() {
		return
	}

	if s.cur == noCurrent {
		s.points = append(s.points, s.validatePoint(s.defaultPoint(), false))
	} else {
		s.insertAt(s.cur+1, s.validatePoint(s.points[s.cur], false))
	}

	s.emitNumPointsChanged()

	s.cur++
	s.emitCurPointChanged()

	s.markModified()
}

// InsertBeforeCurrent inserts a copy of the current point at the
// cursor's position. The cursor index is unchanged, but the point it
// designates is now the new copy. On an empty sequence the default
// midpoint point is appended and the cursor set to it.
func (s *Sequence) InsertBeforeCurrent() {
	if !s.IsValid() {
		return
	}

	if s.cur == noCurrent {
		s.points = append(s.points, s.validatePoint(s.defaultPoint(), false))

		s.cur = 0
		s.emitCurPointChanged()
	} else {
		s.insertAt(s.cur, s.validatePoint(s.points[s.cur], false))
	}

	s.emitNumPointsChanged()

	// The cursor index did not move, but the point at that index is a
	// different one now, so content-changed fires even when the values
	// are identical.
	s.emitCurPointValuesChanged()

	s.markModified()
}

// Append adds a copy of the current point (or the default midpoint point
// when there is none) to the end of the sequence and moves the cursor to
// the new last index.
func (s *Sequence) Append() {
	if !s.IsValid() {
		return
	}

	p := s.defaultPoint()
	if s.cur != noCurrent {
		p = s.points[s.cur]
	}
	s.points = append(s.points, s.validatePoint(p, false))

	s.emitNumPointsChanged()

	s.cur = len(s.points) - 1
	s.emitCurPointChanged()

	s.markModified()
}

// RemoveCurrent removes the point at the cursor. If the cursor falls off
// the end it is pulled back (to none on an empty sequence); otherwise the
// index stays put but now designates the next point.
func (s *Sequence) RemoveCurrent() {
	if !s.IsValid() || s.cur == noCurrent {
		return
	}

	s.points = append(s.points[:s.cur], s.points[s.cur+1:]...)

	s.emitNumPointsChanged()

	if s.cur >= len(s.points) {
		// Becomes noCurrent when the sequence is now empty.
		s.cur = len(s.points) - 1
		s.emitCurPointChanged()
	} else {
		s.emitCurPointValuesChanged()
	}

	s.markModified()
}

// Clear removes every point and resets the cursor. The sequence is
// marked modified even when it was already empty; this mirrors the
// behavior the GUI was built against.
func (s *Sequence) Clear() {
	if !s.IsValid() {
		return
	}

	if len(s.points) != 0 {
		s.points = nil

		s.emitNumPointsChanged()

		s.cur = noCurrent
		s.emitCurPointChanged()
	}

	s.markModified()
}

// SetPointAt replaces the point at pos with p, normalized and clamped
// into bounds. No signals fire and the sequence is not marked modified
// when the stored point is unchanged. Panics if pos is out of range.
func (s *Sequence) SetPointAt(pos int, p Point) {
	if !s.IsValid() {
		return
	}

	old := s.points[pos]
	s.points[pos] = s.validatePoint(p, false)

	if old.Equal(s.points[pos]) {
		return
	}

	s.emitPointValuesChanged(pos)

	if pos == s.cur {
		s.emitCurPointValuesChanged()
	}

	s.markModified()
}

// SetPoint replaces the current point. No-op when there is none.
func (s *Sequence) SetPoint(p Point) {
	if s.cur == noCurrent {
		return
	}
	s.SetPointAt(s.cur, p)
}

// SetCoordinateAt sets coordinate c of the point at pos, clamped into
// the per-coordinate bounds. Panics if pos or c is out of range.
func (s *Sequence) SetCoordinateAt(pos, c int, v float64) {
	if !s.IsValid() {
		return
	}

	old := s.points[pos].Coords[c]
	s.points[pos].Coords[c] = clampFloat(v, s.min.Coords[c], s.max.Coords[c])

	if old == s.points[pos].Coords[c] {
		return
	}

	s.emitPointValuesChanged(pos)

	if pos == s.cur {
		s.emitCurPointValuesChanged()
	}

	s.markModified()
}

// SetCoordinate sets coordinate c of the current point. No-op when there
// is none.
func (s *Sequence) SetCoordinate(c int, v float64) {
	if s.cur == noCurrent {
		return
	}
	s.SetCoordinateAt(s.cur, c, v)
}

// SetDurationAt sets the Duration of the point at pos, clamped into the
// duration bounds. Panics if pos is out of range.
func (s *Sequence) SetDurationAt(pos, d int) {
	if !s.IsValid() {
		return
	}

	old := s.points[pos].Duration
	s.points[pos].Duration = clampInt(d, s.min.Duration, s.max.Duration)

	if old == s.points[pos].Duration {
		return
	}

	s.emitPointValuesChanged(pos)

	if pos == s.cur {
		s.emitCurPointValuesChanged()
	}

	s.markModified()
}

// SetDuration sets the Duration of the current point. No-op when there
// is none.
func (s *Sequence) SetDuration(d int) {
	if s.cur == noCurrent {
		return
	}
	s.SetDurationAt(s.cur, d)
}

// SetTimeToTargetAt sets the TimeToTarget of the point at pos, clamped
// into the time-to-target bounds. Panics if pos is out of range.
func (s *Sequence) SetTimeToTargetAt(pos, t int) {
	if !s.IsValid() {
		return
	}

	old := s.points[pos].TimeToTarget
	s.points[pos].TimeToTarget = clampInt(t, s.min.TimeToTarget, s.max.TimeToTarget)

	if old == s.points[pos].TimeToTarget {
		return
	}

	s.emitPointValuesChanged(pos)

	if pos == s.cur {
		s.emitCurPointValuesChanged()
	}

	s.markModified()
}

// SetTimeToTarget sets the TimeToTarget of the current point. No-op when
// there is none.
func (s *Sequence) SetTimeToTarget(t int) {
	if s.cur == noCurrent {
		return
	}
	s.SetTimeToTargetAt(s.cur, t)
}

// validatePoint normalizes p to the sequence's shape: the coordinate
// vector is padded with zeros or truncated to exactly pointDim entries,
// then, unless skipLimits, every field is clamped into [min, max]. This
// is the single normalization routine behind every insertion path.
func (s *Sequence) validatePoint(p Point, skipLimits bool) Point {
	p = p.clone()

	if len(p.Coords) < s.pointDim {
		padded := make([]float64, s.pointDim)
		copy(padded, p.Coords)
		p.Coords = padded
	} else if len(p.Coords) > s.pointDim {
		p.Coords = p.Coords[:s.pointDim]
	}

	if skipLimits {
		return p
	}

	for i := range p.Coords {
		p.Coords[i] = clampFloat(p.Coords[i], s.min.Coords[i], s.max.Coords[i])
	}
	p.Duration = clampInt(p.Duration, s.min.Duration, s.max.Duration)
	p.TimeToTarget = clampInt(p.TimeToTarget, s.min.TimeToTarget, s.max.TimeToTarget)

	return p
}

// defaultPoint returns the midpoint of the bounds, used when inserting
// into an empty sequence with no point to copy.
func (s *Sequence) defaultPoint() Point {
	p := Point{
		Coords:       make([]float64, s.pointDim),
		Duration:     (s.min.Duration + s.max.Duration) / 2,
		TimeToTarget: (s.min.TimeToTarget + s.max.TimeToTarget) / 2,
	}
	for i := range p.Coords {
		p.Coords[i] = (s.min.Coords[i] + s.max.Coords[i]) / 2.0
	}
	return p
}

// insertAt places p at index i, shifting the tail right.
func (s *Sequence) insertAt(i int, p Point) {
	s.points = append(s.points, Point{})
	copy(s.points[i+1:], s.points[i:])
	s.points[i] = p
}

// markModified flips the dirty flag, notifying observers only on the
// false-to-true transition. Clearing the flag (on save/load) is silent.
func (s *Sequence) markModified() {
	if !s.modified {
		s.modified = true
		s.emitModifiedChanged()
	}
}

func clampFloat(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
