package dto

import (
	"time"

	"github.com/checkin-service/internal/domain"
)

// StationResult is a directory station decorated with favorite state.
type StationResult struct {
	ID           string              `json:"id"`
	Name         string              `json:"name"`
	Municipality string              `json:"municipality,omitempty"`
	ExtID        string              `json:"ext_id,omitempty"`
	Coordinates  *domain.Coordinates `json:"coordinates,omitempty"`
	IsFavorite   bool                `json:"is_favorite"`
}

func NewStationResult(st domain.Station, isFavorite bool) StationResult {
	return StationResult{
		ID:           st.ID,
		Name:         st.Name,
		Municipality: st.Municipality,
		ExtID:        st.ExternalID,
		Coordinates:  st.Coordinates,
		IsFavorite:   isFavorite,
	}
}

// Station converts the result back into the domain representation, used
// when a caller selects a station straight out of a result list.
func (r StationResult) Station() domain.Station {
	return domain.Station{
		ID:           r.ID,
		Name:         r.Name,
		Municipality: r.Municipality,
		ExternalID:   r.ExtID,
		Coordinates:  r.Coordinates,
	}
}

// SearchResponse never fails at the transport level: directory errors are
// folded into Error alongside an empty result set.
type SearchResponse struct {
	Query    string          `json:"query"`
	Stations []StationResult `json:"stations"`
	Error    string          `json:"error,omitempty"`
}

// PassengerResponse is a passenger decorated with the age computed at
// response time. Type always reflects the current age bands.
type PassengerResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	FullName    string    `json:"full_name"`
	BirthDate   string    `json:"birth_date"`
	Age         int       `json:"age"`
	Type        string    `json:"type"`
	TravelClass string    `json:"travel_class"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewPassengerResponse derives age and type at the given instant. An
// unparseable stored birth date falls back to the stored type with age 0.
func NewPassengerResponse(p domain.Passenger, at time.Time) PassengerResponse {
	resp := PassengerResponse{
		ID:          p.ID,
		Name:        p.Name,
		FullName:    p.FullName,
		BirthDate:   p.BirthDate,
		Type:        string(p.Type),
		TravelClass: string(p.TravelClass),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
	if age, err := domain.Age(p.BirthDate, at); err == nil {
		resp.Age = age
		resp.Type = string(domain.ClassifyAge(age))
	}
	return resp
}

type TicketResponse struct {
	TicketID  string            `json:"ticket_id"`
	Station   domain.Station    `json:"station"`
	Passenger PassengerResponse `json:"passenger"`
	ValidFrom time.Time         `json:"valid_from"`
}

type SliderState struct {
	Offset   float64 `json:"offset"`
	MaxDrag  float64 `json:"max_drag"`
	Dragging bool    `json:"dragging"`
	Enabled  bool    `json:"enabled"`
}

// SessionResponse is the full snapshot a client renders from.
// FavoriteStations is populated on creation only: the pinned stations seed
// the selectable list before the first search.
type SessionResponse struct {
	ID                string             `json:"id"`
	FavoriteStations  []domain.Station   `json:"favorite_stations,omitempty"`
	Screen            string             `json:"screen"`
	SelectedStation   *domain.Station    `json:"selected_station,omitempty"`
	SelectedPassenger *PassengerResponse `json:"selected_passenger,omitempty"`
	IsCheckedIn       bool               `json:"is_checked_in"`
	CheckInTime       *time.Time         `json:"check_in_time,omitempty"`
	Ticket            *TicketResponse    `json:"ticket,omitempty"`
	Slider            SliderState        `json:"slider"`
	ElapsedTime       string             `json:"elapsed_time"`
	CurrentTime       string             `json:"current_time"`
}

type DepartureBoardResponse struct {
	StationID  string             `json:"station_id"`
	Departures []domain.Departure `json:"departures"`
	FromCache  bool               `json:"from_cache"`
}
