package history

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func snap(v uint8) *Snapshot {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.RGBA{v, v, v, 0xff})
	return NewSnapshot(img)
}

func TestEmptyManager(t *testing.T) {
	m := NewManager(10)
	assert.Equal(t, -1, m.Index())
	assert.Nil(t, m.Current())
	assert.False(t, m.CanUndo())
	assert.False(t, m.CanRedo())

	s, ok := m.Undo()
	assert.False(t, ok)
	assert.Nil(t, s)
	s, ok = m.Redo()
	assert.False(t, ok)
	assert.Nil(t, s)
	assert.Equal(t, -1, m.Index())
}

func TestAppendMakesLastEntryCurrent(t *testing.T) {
	m := NewManager(100)
	var last *Snapshot
	for n := 1; n <= 20; n++ {
		last = snap(uint8(n))
		m.Append(last)
		assert.Same(t, last, m.Current())
		assert.Equal(t, n-1, m.Index())
		assert.Equal(t, n, m.Len())
		assert.False(t, m.CanRedo())
	}
}

func TestUndoRedoRoundTrip(t *testing.T) {
	m := NewManager(10)
	snaps := []*Snapshot{snap(1), snap(2), snap(3), snap(4)}
	for _, s := range snaps {
		m.Append(s)
	}

	for i := m.Index(); i >= 1; i-- {
		before := m.Current()
		_, ok := m.Undo()
		require.True(t, ok)
		got, ok := m.Redo()
		require.True(t, ok)
		assert.Same(t, before, got)
		assert.Same(t, before, m.Current())
		m.Undo()
	}
}

func TestAppendAfterUndoDiscardsRedoBranch(t *testing.T) {
	m := NewManager(10)
	for i := 0; i < 5; i++ {
		m.Append(snap(uint8(i)))
	}
	m.Undo()
	m.Undo()
	m.Undo()
	assert.Equal(t, 1, m.Index())

	c := snap(99)
	m.Append(c)
	assert.Equal(t, 3, m.Len())
	assert.Equal(t, 2, m.Index())

	s, ok := m.Redo()
	assert.False(t, ok)
	assert.Nil(t, s)
	assert.LessOrEqual(t, m.Index(), m.Len()-1)
	assert.Same(t, c, m.Current())
}

func TestUndoAtFloorIsIdempotent(t *testing.T) {
	m := NewManager(10)
	m.Undo()
	m.Undo()
	assert.Equal(t, -1, m.Index())
	assert.Equal(t, 0, m.Len())

	a := snap(1)
	m.Append(a)
	m.Undo()
	m.Undo()
	assert.Equal(t, 0, m.Index())
	assert.Equal(t, 1, m.Len())
	assert.Same(t, a, m.Current())
}

func TestScenarioBranchDiscard(t *testing.T) {
	m := NewManager(10)
	a, b, c := snap(1), snap(2), snap(3)

	m.Append(a)
	m.Append(b)
	got, ok := m.Undo()
	require.True(t, ok)
	assert.Same(t, a, got)

	m.Append(c)
	_, ok = m.Redo()
	assert.False(t, ok)
	assert.Same(t, c, m.Current())
}

func TestResetThenBaseline(t *testing.T) {
	m := NewManager(10)
	m.Append(snap(1))
	m.Append(snap(2))
	m.Reset()
	assert.Equal(t, -1, m.Index())
	assert.Nil(t, m.Current())

	blank := snap(0)
	m.Append(blank)
	assert.Equal(t, 1, m.Len())
	assert.Equal(t, 0, m.Index())

	_, ok := m.Undo()
	assert.False(t, ok)
	assert.Same(t, blank, m.Current())
}

func TestBoundedDepthEvictsOldest(t *testing.T) {
	m := NewManager(3)
	snaps := []*Snapshot{snap(1), snap(2), snap(3), snap(4), snap(5)}
	for _, s := range snaps {
		m.Append(s)
	}
	assert.Equal(t, 3, m.Len())
	assert.Equal(t, 2, m.Index())
	assert.Same(t, snaps[4], m.Current())

	m.Undo()
	got, ok := m.Undo()
	require.True(t, ok)
	assert.Same(t, snaps[2], got)
	_, ok = m.Undo()
	assert.False(t, ok, "oldest surviving entry is the floor")
}

func TestDefaultDepth(t *testing.T) {
	m := NewManager(0)
	for i := 0; i < DefaultMaxHistory+5; i++ {
		m.Append(snap(uint8(i)))
	}
	assert.Equal(t, DefaultMaxHistory, m.Len())
	assert.Equal(t, DefaultMaxHistory-1, m.Index())
}

func TestAppendNilIgnored(t *testing.T) {
	m := NewManager(10)
	m.Append(nil)
	assert.Equal(t, 0, m.Len())
	assert.Equal(t, -1, m.Index())
}

func TestSnapshotIsACopy(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 4, 3))
	s := NewSnapshot(img)
	img.Set(1, 1, color.RGBA{0xff, 0, 0, 0xff})

	assert.Equal(t, color.RGBA{}, s.Image().RGBAAt(1, 1))
	assert.Equal(t, 4*3*4, s.ByteSize())
	assert.Equal(t, image.Rect(0, 0, 4, 3), s.Bounds())

	m := NewManager(10)
	m.Append(s)
	m.Append(NewSnapshot(img))
	assert.Equal(t, 2*4*3*4, m.TotalBytes())
}
