package domain

import (
	"math/rand/v2"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	testStation = Station{ID: "st-1", Name: "Godthåbsvej", Municipality: "Silkeborg Kom", ExternalID: "8600626"}
	testOther   = Station{ID: "st-2", Name: "Alderslyst", ExternalID: "8600627"}

	testPassenger = Passenger{
		ID:          "p-1",
		Name:        "Lucas",
		FullName:    "Lucas Vium",
		BirthDate:   "15.09.2004",
		Type:        TypeYoungPerson,
		TravelClass: ClassStandard,
	}
)

func TestSession_HappyPath(t *testing.T) {
	s := NewSession("sess-1")
	now := time.Now()

	assert.Equal(t, ScreenSelectStation, s.Screen)

	require.True(t, s.SelectStation(testStation))
	assert.Equal(t, ScreenSelectPassenger, s.Screen)

	require.True(t, s.SelectPassenger(testPassenger))
	assert.Equal(t, ScreenCheckIn, s.Screen)
	assert.False(t, s.IsCheckedIn)

	require.True(t, s.CheckIn(now, "aaaabbbb/ccccddd"))
	assert.True(t, s.IsCheckedIn)
	require.NotNil(t, s.ActiveTicket)
	assert.Equal(t, "aaaabbbb/ccccddd", s.ActiveTicket.TicketID)
	assert.Equal(t, testStation.CanonicalKey(), s.ActiveTicket.Station.CanonicalKey())
	assert.Equal(t, now, s.ActiveTicket.ValidFrom)
	require.NotNil(t, s.CheckInTime)
	assert.Equal(t, now, *s.CheckInTime)

	require.True(t, s.ShowTicket())
	assert.Equal(t, ScreenTicket, s.Screen)

	require.True(t, s.Back())
	assert.Equal(t, ScreenCheckIn, s.Screen)

	require.True(t, s.CheckOut())
	assert.False(t, s.IsCheckedIn)
	assert.Nil(t, s.ActiveTicket)
	assert.Nil(t, s.CheckInTime)
	assert.Equal(t, ScreenCheckIn, s.Screen)
}

func TestSession_IllegalTransitionsAreNoOps(t *testing.T) {
	s := NewSession("sess-1")
	now := time.Now()

	// Nothing selected yet.
	assert.False(t, s.SelectPassenger(testPassenger))
	assert.False(t, s.CheckIn(now, "t"))
	assert.False(t, s.CheckOut())
	assert.False(t, s.ShowTicket())
	assert.False(t, s.ChangeStation())
	assert.False(t, s.Back())
	assert.Equal(t, ScreenSelectStation, s.Screen)

	require.True(t, s.SelectStation(testStation))
	require.True(t, s.SelectPassenger(testPassenger))

	// Check-in without being on the check-in screen is refused too.
	require.True(t, s.CheckIn(now, "first"))
	before := *s.ActiveTicket

	// Second commit while checked in: no second ticket, no state change.
	assert.False(t, s.CheckIn(now.Add(time.Minute), "second"))
	assert.Equal(t, before, *s.ActiveTicket)
	assert.Equal(t, now, *s.CheckInTime)
}

func TestSession_BackFromCheckInClearsPassengerAndTicket(t *testing.T) {
	s := NewSession("sess-1")
	require.True(t, s.SelectStation(testStation))
	require.True(t, s.SelectPassenger(testPassenger))
	require.True(t, s.CheckIn(time.Now(), "t"))

	require.True(t, s.Back())
	assert.Equal(t, ScreenSelectPassenger, s.Screen)
	assert.Nil(t, s.SelectedPassenger)
	assert.Nil(t, s.ActiveTicket)
	assert.Nil(t, s.CheckInTime)
	assert.False(t, s.IsCheckedIn)
	assert.NotNil(t, s.SelectedStation)

	require.True(t, s.Back())
	assert.Equal(t, ScreenSelectStation, s.Screen)
	assert.Nil(t, s.SelectedStation)
}

func TestSession_ChangeStationKeepsPassenger(t *testing.T) {
	s := NewSession("sess-1")
	require.True(t, s.SelectStation(testStation))
	require.True(t, s.SelectPassenger(testPassenger))
	require.True(t, s.CheckIn(time.Now(), "t"))

	require.True(t, s.ChangeStation())
	assert.Equal(t, ScreenSelectStation, s.Screen)
	assert.Nil(t, s.SelectedStation)
	assert.Nil(t, s.ActiveTicket)
	assert.False(t, s.IsCheckedIn)
	assert.NotNil(t, s.SelectedPassenger)

	// Re-selecting a station skips passenger selection.
	require.True(t, s.SelectStation(testOther))
	assert.Equal(t, ScreenCheckIn, s.Screen)
}

// TestSession_InvariantsUnderRandomWalk applies long random sequences of
// transitions and asserts the session invariants after every step.
func TestSession_InvariantsUnderRandomWalk(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 0))
	now := time.Date(2025, 8, 29, 12, 0, 0, 0, time.UTC)

	for run := 0; run < 50; run++ {
		s := NewSession("sess-rand")

		for step := 0; step < 200; step++ {
			switch rng.IntN(7) {
			case 0:
				s.SelectStation(testStation)
			case 1:
				s.SelectPassenger(testPassenger)
			case 2:
				s.CheckIn(now, NewTicketID())
			case 3:
				s.CheckOut()
			case 4:
				s.ShowTicket()
			case 5:
				s.Back()
			case 6:
				s.ChangeStation()
			}

			require.NoError(t, s.Validate(), "run %d step %d screen %s", run, step, s.Screen)
			if s.IsCheckedIn {
				require.NotNil(t, s.ActiveTicket)
				require.NotNil(t, s.CheckInTime)
			}
		}
	}
}
