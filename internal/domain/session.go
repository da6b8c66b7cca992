package domain

import (
	"fmt"
	"time"
)

// Screen identifies which view of the check-in flow is legal right now.
type Screen string

const (
	ScreenSelectStation   Screen = "select-station"
	ScreenSelectPassenger Screen = "select-passenger"
	ScreenCheckIn         Screen = "check-in"
	ScreenTicket          Screen = "ticket"
)

// Session is the in-memory check-in state machine. All transition methods
// validate their preconditions and return false without touching state when
// a transition is illegal; they never return errors.
//
// Screens cycle SelectStation -> SelectPassenger -> CheckIn -> Ticket, with
// CheckIn split into a checked-out and a checked-in sub-state.
type Session struct {
	ID                string     `json:"id"`
	Screen            Screen     `json:"screen"`
	SelectedStation   *Station   `json:"selected_station,omitempty"`
	SelectedPassenger *Passenger `json:"selected_passenger,omitempty"`
	ActiveTicket      *Ticket    `json:"active_ticket,omitempty"`
	CheckInTime       *time.Time `json:"check_in_time,omitempty"`
	IsCheckedIn       bool       `json:"is_checked_in"`
}

func NewSession(id string) *Session {
	return &Session{
		ID:     id,
		Screen: ScreenSelectStation,
	}
}

// SelectStation picks the station. When a passenger is already selected
// (re-entry after a station change) the flow skips straight to check-in.
func (s *Session) SelectStation(st Station) bool {
	if s.Screen != ScreenSelectStation {
		return false
	}

	s.SelectedStation = &st
	if s.SelectedPassenger != nil {
		s.Screen = ScreenCheckIn
	} else {
		s.Screen = ScreenSelectPassenger
	}
	return true
}

// SelectPassenger picks the traveler; a station must already be selected.
func (s *Session) SelectPassenger(p Passenger) bool {
	if s.Screen != ScreenSelectPassenger || s.SelectedStation == nil {
		return false
	}

	s.SelectedPassenger = &p
	s.Screen = ScreenCheckIn
	return true
}

// CheckIn commits the check-in at the given instant, constructing the
// active ticket. Refused unless both selections are present and the session
// is currently checked out; calling it again while checked in is a no-op
// and never produces a second ticket.
func (s *Session) CheckIn(now time.Time, ticketID string) bool {
	if s.Screen != ScreenCheckIn || s.IsCheckedIn {
		return false
	}
	if s.SelectedStation == nil || s.SelectedPassenger == nil {
		return false
	}

	at := now
	s.CheckInTime = &at
	s.IsCheckedIn = true
	s.ActiveTicket = &Ticket{
		TicketID:  ticketID,
		Station:   *s.SelectedStation,
		Passenger: *s.SelectedPassenger,
		ValidFrom: at,
	}
	return true
}

// CheckOut ends the trip, destroying the ticket. The session stays on the
// check-in screen in the checked-out sub-state.
func (s *Session) CheckOut() bool {
	if !s.IsCheckedIn {
		return false
	}

	s.IsCheckedIn = false
	s.CheckInTime = nil
	s.ActiveTicket = nil
	return true
}

// ShowTicket opens the ticket view.
func (s *Session) ShowTicket() bool {
	if s.ActiveTicket == nil {
		return false
	}

	s.Screen = ScreenTicket
	return true
}

// Back is the screen-dependent inverse: Ticket returns to CheckIn; CheckIn
// drops the passenger and any check-in state and returns to
// SelectPassenger; SelectPassenger drops the station and returns to
// SelectStation.
func (s *Session) Back() bool {
	switch s.Screen {
	case ScreenTicket:
		s.Screen = ScreenCheckIn
		return true
	case ScreenCheckIn:
		s.SelectedPassenger = nil
		s.IsCheckedIn = false
		s.CheckInTime = nil
		s.ActiveTicket = nil
		s.Screen = ScreenSelectPassenger
		return true
	case ScreenSelectPassenger:
		s.SelectedStation = nil
		s.Screen = ScreenSelectStation
		return true
	}
	return false
}

// ChangeStation drops the station along with any ticket and check-in state
// and returns to station selection. Unlike Back it keeps the selected
// passenger, so re-selecting a station goes straight to check-in.
func (s *Session) ChangeStation() bool {
	if s.SelectedStation == nil {
		return false
	}

	s.SelectedStation = nil
	s.ActiveTicket = nil
	s.CheckInTime = nil
	s.IsCheckedIn = false
	s.Screen = ScreenSelectStation
	return true
}

// Validate checks the session invariants. Transitions preserve these; the
// check exists for tests and debugging.
func (s *Session) Validate() error {
	if s.IsCheckedIn && (s.CheckInTime == nil || s.ActiveTicket == nil) {
		return fmt.Errorf("checked in without check-in time or ticket")
	}
	if s.ActiveTicket != nil {
		if s.SelectedStation == nil || s.SelectedStation.CanonicalKey() != s.ActiveTicket.Station.CanonicalKey() {
			return fmt.Errorf("active ticket station diverges from selection")
		}
		if s.SelectedPassenger == nil || s.SelectedPassenger.ID != s.ActiveTicket.Passenger.ID {
			return fmt.Errorf("active ticket passenger diverges from selection")
		}
	}
	if s.Screen == ScreenTicket && s.ActiveTicket == nil {
		return fmt.Errorf("ticket screen without active ticket")
	}
	if s.SelectedPassenger != nil && s.SelectedStation == nil && s.Screen != ScreenSelectStation {
		return fmt.Errorf("passenger selected without station outside station selection")
	}
	return nil
}
