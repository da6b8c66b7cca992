package domain

import (
	"regexp"
	"strings"
	"time"
)

type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// Station is a stop the traveler can check in from. ID is the local
// identifier; ExternalID is the directory's stable key.
type Station struct {
	ID           string       `json:"id"`
	Name         string       `json:"name"`
	Municipality string       `json:"municipality,omitempty"`
	ExternalID   string       `json:"ext_id,omitempty"`
	Coordinates  *Coordinates `json:"coordinates,omitempty"`
}

// CanonicalKey is the sole basis for station identity: the directory key
// when known, the local id otherwise.
func (s Station) CanonicalKey() string {
	if s.ExternalID != "" {
		return s.ExternalID
	}
	return s.ID
}

// Label re-attaches the municipality suffix for display.
func (s Station) Label() string {
	if s.Municipality == "" {
		return s.Name
	}
	return s.Name + " (" + s.Municipality + ")"
}

var (
	municipalityRe = regexp.MustCompile(`\(([^)]+)\)`)
	nameSuffixRe   = regexp.MustCompile(`\s*\([^)]+\)\s*$`)
)

// ExtractMunicipality pulls the parenthesized segment out of a raw
// directory name, e.g. "Godthåbsvej (Silkeborg Kom)" -> "Silkeborg Kom".
func ExtractMunicipality(rawName string) string {
	m := municipalityRe.FindStringSubmatch(rawName)
	if m == nil {
		return ""
	}
	return m[1]
}

// CleanStationName strips the trailing parenthesized suffix from a raw
// directory name.
func CleanStationName(rawName string) string {
	return strings.TrimSpace(nameSuffixRe.ReplaceAllString(rawName, ""))
}

// Normalized returns the station with the municipality split out of the
// raw name and the display name cleaned.
func (s Station) Normalized() Station {
	if mun := ExtractMunicipality(s.Name); mun != "" {
		s.Municipality = mun
	}
	s.Name = CleanStationName(s.Name)
	return s
}

// FavoriteStation is the persisted favorite record, shaped after the
// favorite_stations table.
type FavoriteStation struct {
	ID           string    `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	ExternalID   string    `json:"ext_id" db:"ext_id"`
	Municipality *string   `json:"municipality,omitempty" db:"municipality"`
	Latitude     *float64  `json:"latitude,omitempty" db:"latitude"`
	Longitude    *float64  `json:"longitude,omitempty" db:"longitude"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// Station converts the record back into the in-session representation.
func (f FavoriteStation) Station() Station {
	st := Station{
		ID:         f.ID,
		Name:       f.Name,
		ExternalID: f.ExternalID,
	}
	if f.Municipality != nil {
		st.Municipality = *f.Municipality
	}
	if f.Latitude != nil && f.Longitude != nil {
		st.Coordinates = &Coordinates{Lat: *f.Latitude, Lng: *f.Longitude}
	}
	return st
}

// NewFavoriteStation builds the record to persist for a station.
func NewFavoriteStation(st Station) FavoriteStation {
	fav := FavoriteStation{
		Name:       st.Name,
		ExternalID: st.CanonicalKey(),
	}
	if st.Municipality != "" {
		mun := st.Municipality
		fav.Municipality = &mun
	}
	if st.Coordinates != nil {
		lat, lng := st.Coordinates.Lat, st.Coordinates.Lng
		fav.Latitude = &lat
		fav.Longitude = &lng
	}
	return fav
}
