package carousel

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

func fourCountries() Track[string] {
	return NewTrack([]string{"de", "fr", "jp", "us"})
}

func TestTrack(t *testing.T) {
	tr := fourCountries()
	assert.Equal(t, 188.0, tr.Stride())
	assert.Equal(t, 752.0, tr.SetWidth())

	slots := tr.Slots()
	require.Len(t, slots, 12)
	assert.Equal(t, Slot[string]{Item: "de", Index: 0, Copy: 0}, slots[0])
	assert.Equal(t, Slot[string]{Item: "us", Index: 3, Copy: 2}, slots[11])
	assert.True(t, NewTrack[string](nil).Empty())
}

func TestTick_AdvancesAndWraps(t *testing.T) {
	s := NewScroller(fourCountries())
	assert.Equal(t, 0.5, s.Tick(t0))
	assert.Equal(t, 1.0, s.Tick(t0))

	s.offset = 751.75
	assert.Equal(t, 0.25, s.Tick(t0))
}

func TestTick_EmptyTrackNeverMoves(t *testing.T) {
	s := NewScroller(NewTrack[string](nil))
	assert.Equal(t, 0.0, s.Tick(t0))
}

func TestHoverPausesAndLeaveResumes(t *testing.T) {
	s := NewScroller(fourCountries())
	s.Tick(t0)
	s.PointerEnter()
	assert.Equal(t, 0.5, s.Tick(t0.Add(time.Hour)))
	s.PointerLeave()
	assert.Equal(t, 1.0, s.Tick(t0.Add(time.Hour)))
}

func TestDrag(t *testing.T) {
	s := NewScroller(fourCountries())
	s.offset = 300
	s.PointerDown(100)
	assert.True(t, s.Dragging())

	s.PointerMove(80)
	assert.Equal(t, 340.0, s.Offset())
	s.PointerMove(150)
	assert.Equal(t, 200.0, s.Offset())
	assert.Equal(t, 200.0, s.Tick(t0), "no auto scroll while dragging")

	s.PointerMove(1000)
	assert.Equal(t, 0.0, s.Offset(), "clamped at the start of the strip")
}

func TestPointerUpResumesAfterTwoSeconds(t *testing.T) {
	s := NewScroller(fourCountries())
	s.PointerDown(0)
	s.PointerUp(t0)
	assert.False(t, s.Dragging())

	assert.Equal(t, 0.0, s.Tick(t0.Add(1999*time.Millisecond)))
	assert.Equal(t, 0.5, s.Tick(t0.Add(2*time.Second)))
	assert.False(t, s.Paused())
}

func TestPrevNext(t *testing.T) {
	s := NewScroller(fourCountries())
	s.Next(t0)
	assert.Equal(t, 564.0, s.Offset())
	assert.True(t, s.Paused())
	assert.Equal(t, 564.0, s.Tick(t0.Add(2*time.Second)))
	assert.Equal(t, 564.5, s.Tick(t0.Add(3*time.Second)))

	s.Prev(t0)
	assert.Equal(t, 0.5, s.Offset())
	s.Prev(t0)
	assert.Equal(t, 0.0, s.Offset())
}

func TestEnterCancelsPendingResume(t *testing.T) {
	s := NewScroller(fourCountries())
	s.Next(t0)
	s.PointerEnter()
	assert.Equal(t, 564.0, s.Tick(t0.Add(10*time.Second)))
}
