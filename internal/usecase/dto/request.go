package dto

// SearchRequest is a free-text station lookup. Queries shorter than the
// configured minimum are answered with an empty result set, so no minimum
// is enforced here.
type SearchRequest struct {
	Query string `json:"query"`
	Limit int    `json:"limit" validate:"omitempty,min=1,max=50"`
}

type NearbyRequest struct {
	Lat         float64 `json:"lat" validate:"min=-90,max=90"`
	Lng         float64 `json:"lng" validate:"min=-180,max=180"`
	MaxDistance int     `json:"max_distance" validate:"omitempty,min=1"`
	Limit       int     `json:"limit" validate:"omitempty,min=1,max=50"`
}

// AddFavoriteRequest carries the station to pin, as produced by search.
type AddFavoriteRequest struct {
	ID           string       `json:"id"`
	Name         string       `json:"name" validate:"required"`
	ExtID        string       `json:"ext_id"`
	Municipality string       `json:"municipality"`
	Coordinates  *Coordinates `json:"coordinates"`
}

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type CreatePassengerRequest struct {
	Name        string `json:"name" validate:"required"`
	FullName    string `json:"full_name" validate:"required"`
	BirthDate   string `json:"birth_date" validate:"required"`
	TravelClass string `json:"travel_class" validate:"omitempty,oneof=Standard 'First class'"`
}

type UpdatePassengerRequest struct {
	Name        *string `json:"name"`
	FullName    *string `json:"full_name"`
	BirthDate   *string `json:"birth_date"`
	TravelClass *string `json:"travel_class" validate:"omitempty,oneof=Standard 'First class'"`
}

// CreateSessionRequest sizes the slider track for the client's viewport.
// A zero width falls back to the default track.
type CreateSessionRequest struct {
	TrackWidth float64 `json:"track_width" validate:"omitempty,min=0"`
}

// SelectStationRequest echoes a station picked from the list or search.
type SelectStationRequest struct {
	ID           string       `json:"id"`
	Name         string       `json:"name" validate:"required"`
	ExtID        string       `json:"ext_id"`
	Municipality string       `json:"municipality"`
	Coordinates  *Coordinates `json:"coordinates"`
}

type SelectPassengerRequest struct {
	PassengerID string `json:"passenger_id" validate:"required"`
}

// SliderRequest carries the pointer coordinate of a press or move event.
type SliderRequest struct {
	X float64 `json:"x"`
}

// SearchInputRequest is one keystroke-level update of the session search box.
type SearchInputRequest struct {
	Query string `json:"query"`
}
