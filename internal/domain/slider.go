package domain

// Slider geometry defaults, matching the rendered control: an 80px handle
// inside the track with 4px edge padding.
const (
	DefaultHandleSize  = 80.0
	DefaultEdgePadding = 4.0

	checkInFraction  = 0.8
	checkOutFraction = 0.2
)

// SliderOutcome is the discrete result of a completed drag.
type SliderOutcome int

const (
	OutcomeNone SliderOutcome = iota
	OutcomeCheckIn
	OutcomeCheckOut
)

// Slider turns continuous drag input into a committed check-in or
// check-out decision. Two polarities, selected by the owning session's
// checked-in flag: checked out, the handle rests at 0 and dragging past
// 80% of the usable travel commits a check-in; checked in, the handle
// rests at maxDrag and dragging below 20% commits a check-out.
//
// The commit/cancel decision is made exactly once, on Release.
type Slider struct {
	maxDrag   float64
	checkedIn bool
	offset    float64
	dragging  bool
	anchor    float64
}

// NewSlider builds a slider for a track of the given width using the
// default handle geometry.
func NewSlider(trackWidth float64, checkedIn bool) *Slider {
	return NewSliderWithGeometry(trackWidth, DefaultHandleSize, DefaultEdgePadding, checkedIn)
}

// NewSliderWithGeometry builds a slider with explicit geometry. A usable
// travel of zero or less disables the control; the handle stays at rest.
func NewSliderWithGeometry(trackWidth, handleSize, edgePadding float64, checkedIn bool) *Slider {
	maxDrag := trackWidth - handleSize - 2*edgePadding
	if maxDrag < 0 {
		maxDrag = 0
	}

	s := &Slider{
		maxDrag:   maxDrag,
		checkedIn: checkedIn,
	}
	s.offset = s.restOffset()
	return s
}

func (s *Slider) restOffset() float64 {
	if s.checkedIn {
		return s.maxDrag
	}
	return 0
}

// Enabled reports whether the track leaves any usable travel.
func (s *Slider) Enabled() bool {
	return s.maxDrag > 0
}

// MaxDrag is the usable travel of the handle.
func (s *Slider) MaxDrag() float64 {
	return s.maxDrag
}

// Offset is the live handle position, clamped to [0, maxDrag].
func (s *Slider) Offset() float64 {
	return s.offset
}

// Dragging reports whether a press is in progress.
func (s *Slider) Dragging() bool {
	return s.dragging
}

// Press starts a drag, anchoring the pointer coordinate against the
// current handle offset.
func (s *Slider) Press(x float64) {
	if !s.Enabled() {
		return
	}
	s.dragging = true
	s.anchor = x - s.offset
}

// Move updates the live handle position while dragging. The position
// follows the pointer continuously; no commit decision happens here.
func (s *Slider) Move(x float64) {
	if !s.dragging {
		return
	}
	s.offset = clamp(x-s.anchor, 0, s.maxDrag)
}

// Release ends the drag and applies the polarity rule: past the threshold
// the handle snaps to the far end and the corresponding commit fires,
// otherwise it snaps back to rest. Releasing without a press is a no-op.
func (s *Slider) Release() SliderOutcome {
	if !s.dragging {
		return OutcomeNone
	}
	s.dragging = false

	if s.checkedIn {
		if s.offset <= s.maxDrag*checkOutFraction {
			s.offset = 0
			s.checkedIn = false
			return OutcomeCheckOut
		}
		s.offset = s.maxDrag
		return OutcomeNone
	}

	if s.offset >= s.maxDrag*checkInFraction {
		s.offset = s.maxDrag
		s.checkedIn = true
		return OutcomeCheckIn
	}
	s.offset = 0
	return OutcomeNone
}

// Sync force-corrects the rest position after the owning session's
// checked-in flag changed externally. It cancels any drag in progress and
// never fires a commit.
func (s *Slider) Sync(checkedIn bool) {
	s.checkedIn = checkedIn
	s.dragging = false
	s.offset = s.restOffset()
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
