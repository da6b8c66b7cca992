package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// track width 188 with the default 80px handle and 4px padding gives a
// usable travel of exactly 100.
const testTrackWidth = 188.0

func TestSlider_Geometry(t *testing.T) {
	s := NewSlider(testTrackWidth, false)
	assert.Equal(t, 100.0, s.MaxDrag())
	assert.True(t, s.Enabled())
	assert.Equal(t, 0.0, s.Offset())

	checkedIn := NewSlider(testTrackWidth, true)
	assert.Equal(t, 100.0, checkedIn.Offset())
}

func TestSlider_DisabledWhenNoTravel(t *testing.T) {
	s := NewSlider(80, false) // handle fills the whole track
	assert.False(t, s.Enabled())

	s.Press(10)
	s.Move(500)
	assert.Equal(t, 0.0, s.Offset())
	assert.Equal(t, OutcomeNone, s.Release())
}

func TestSlider_CheckInPolarity(t *testing.T) {
	t.Run("release at 79 cancels", func(t *testing.T) {
		s := NewSlider(testTrackWidth, false)
		s.Press(0)
		s.Move(79)
		assert.Equal(t, 79.0, s.Offset())

		assert.Equal(t, OutcomeNone, s.Release())
		assert.Equal(t, 0.0, s.Offset())
	})

	t.Run("release at 80 commits", func(t *testing.T) {
		s := NewSlider(testTrackWidth, false)
		s.Press(0)
		s.Move(80)

		assert.Equal(t, OutcomeCheckIn, s.Release())
		assert.Equal(t, 100.0, s.Offset())
	})
}

func TestSlider_CheckOutPolarity(t *testing.T) {
	t.Run("release at 21 cancels", func(t *testing.T) {
		s := NewSlider(testTrackWidth, true)
		s.Press(100)
		s.Move(21)
		assert.Equal(t, 21.0, s.Offset())

		assert.Equal(t, OutcomeNone, s.Release())
		assert.Equal(t, 100.0, s.Offset())
	})

	t.Run("release at 20 commits", func(t *testing.T) {
		s := NewSlider(testTrackWidth, true)
		s.Press(100)
		s.Move(20)

		assert.Equal(t, OutcomeCheckOut, s.Release())
		assert.Equal(t, 0.0, s.Offset())
	})
}

func TestSlider_MoveTracksAnchorAndClamps(t *testing.T) {
	s := NewSlider(testTrackWidth, false)

	// Pressing mid-handle: the anchor keeps the handle under the pointer.
	s.Press(40)
	s.Move(65)
	assert.Equal(t, 25.0, s.Offset())

	s.Move(-500)
	assert.Equal(t, 0.0, s.Offset())
	s.Move(500)
	assert.Equal(t, 100.0, s.Offset())
}

func TestSlider_ReleaseWithoutPressIsNoOp(t *testing.T) {
	s := NewSlider(testTrackWidth, false)
	assert.Equal(t, OutcomeNone, s.Release())

	// Moves without a press are ignored as well.
	s.Move(90)
	assert.Equal(t, 0.0, s.Offset())
}

func TestSlider_SyncForcesRestWithoutCommit(t *testing.T) {
	s := NewSlider(testTrackWidth, true)
	s.Press(100)
	s.Move(60)

	// Programmatic check-out while mid-drag: position corrected, drag
	// cancelled, nothing fires.
	s.Sync(false)
	assert.Equal(t, 0.0, s.Offset())
	assert.False(t, s.Dragging())
	assert.Equal(t, OutcomeNone, s.Release())

	s.Sync(true)
	assert.Equal(t, 100.0, s.Offset())
}
