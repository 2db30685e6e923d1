// Package carousel models the endlessly scrolling card strip on the home
// page: a track of items repeated three times and a scroller that advances
// an offset on every frame unless the user is hovering or dragging.
package carousel

import "time"

const (
	DefaultCardWidth = 176
	DefaultGap       = 12
	DefaultSpeed     = 0.5

	// Copies is how many times the items are laid out so the wrap point is
	// never visible.
	Copies = 3

	stepCards     = 3
	dragFactor    = 2
	releaseResume = 2 * time.Second
	buttonResume  = 3 * time.Second
)

// Track is the laid-out strip.
type Track[T any] struct {
	Items     []T
	CardWidth float64
	Gap       float64
}

// NewTrack lays items out with the default card geometry.
func NewTrack[T any](items []T) Track[T] {
	return Track[T]{Items: items, CardWidth: DefaultCardWidth, Gap: DefaultGap}
}

// Slot is one rendered card: the item plus which copy of the set it is in.
type Slot[T any] struct {
	Item  T
	Index int
	Copy  int
}

// Slots returns the items repeated Copies times.
func (t Track[T]) Slots() []Slot[T] {
	out := make([]Slot[T], 0, len(t.Items)*Copies)
	for c := 0; c < Copies; c++ {
		for i, it := range t.Items {
			out = append(out, Slot[T]{Item: it, Index: i, Copy: c})
		}
	}
	return out
}

// Stride is the card width plus the gap.
func (t Track[T]) Stride() float64 {
	return t.CardWidth + t.Gap
}

// SetWidth is the width of one copy of the items.
func (t Track[T]) SetWidth() float64 {
	return float64(len(t.Items)) * t.Stride()
}

// Empty tracks are not rendered.
func (t Track[T]) Empty() bool {
	return len(t.Items) == 0
}

// Scroller holds the scroll offset and interaction state. It is driven by
// explicit timestamps so it behaves the same under test as in a frame
// loop. It is not safe for concurrent use.
type Scroller struct {
	setWidth float64
	maxWidth float64
	stride   float64
	speed    float64

	offset   float64
	paused   bool
	dragging bool
	resumeAt time.Time

	dragStartX      float64
	dragStartOffset float64
}

// NewScroller returns a scroller for t moving DefaultSpeed per tick.
func NewScroller[T any](t Track[T]) *Scroller {
	return &Scroller{
		setWidth: t.SetWidth(),
		maxWidth: t.SetWidth() * Copies,
		stride:   t.Stride(),
		speed:    DefaultSpeed,
	}
}

// WithSpeed overrides the per-tick advance.
func (s *Scroller) WithSpeed(speed float64) *Scroller {
	s.speed = speed
	return s
}

func (s *Scroller) Offset() float64 { return s.offset }
func (s *Scroller) Paused() bool    { return s.paused }
func (s *Scroller) Dragging() bool  { return s.dragging }

// Tick advances one frame at now and returns the new offset. A pending
// resume whose time has come is applied first.
func (s *Scroller) Tick(now time.Time) float64 {
	if !s.resumeAt.IsZero() && !now.Before(s.resumeAt) {
		s.paused = false
		s.resumeAt = time.Time{}
	}
	if s.paused || s.dragging || s.setWidth <= 0 {
		return s.offset
	}
	s.offset += s.speed
	if s.offset >= s.setWidth {
		s.offset -= s.setWidth
	}
	return s.offset
}

// PointerEnter pauses scrolling and cancels a pending resume.
func (s *Scroller) PointerEnter() {
	s.paused = true
	s.resumeAt = time.Time{}
}

// PointerLeave resumes immediately and ends any drag.
func (s *Scroller) PointerLeave() {
	s.dragging = false
	s.paused = false
	s.resumeAt = time.Time{}
}

// PointerDown starts a drag at x (mouse down or touch start).
func (s *Scroller) PointerDown(x float64) {
	s.dragging = true
	s.paused = true
	s.resumeAt = time.Time{}
	s.dragStartX = x
	s.dragStartOffset = s.offset
}

// PointerMove drags the strip by twice the pointer travel.
func (s *Scroller) PointerMove(x float64) {
	if !s.dragging {
		return
	}
	s.offset = s.clamp(s.dragStartOffset - (x-s.dragStartX)*dragFactor)
}

// PointerUp ends a drag (mouse up or touch end) and resumes two seconds
// later.
func (s *Scroller) PointerUp(now time.Time) {
	s.dragging = false
	s.resumeAt = now.Add(releaseResume)
}

// Prev scrolls back three cards and resumes three seconds later.
func (s *Scroller) Prev(now time.Time) {
	s.step(-1, now)
}

// Next scrolls forward three cards and resumes three seconds later.
func (s *Scroller) Next(now time.Time) {
	s.step(1, now)
}

func (s *Scroller) step(dir float64, now time.Time) {
	s.paused = true
	s.offset = s.clamp(s.offset + dir*stepCards*s.stride)
	s.resumeAt = now.Add(buttonResume)
}

// clamp keeps the offset inside the laid-out strip, as a browser clamps
// scrollLeft.
func (s *Scroller) clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > s.maxWidth {
		return s.maxWidth
	}
	return v
}
