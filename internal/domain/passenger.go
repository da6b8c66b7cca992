package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

type PassengerType string

const (
	TypeChild       PassengerType = "Child"
	TypeYoungPerson PassengerType = "Young person"
	TypeAdult       PassengerType = "Adult"
	TypeSenior      PassengerType = "Senior"
)

type TravelClass string

const (
	ClassStandard   TravelClass = "Standard"
	ClassFirstClass TravelClass = "First class"
)

// BirthDateLayout is the DD.MM.YYYY format passengers are stored with.
const BirthDateLayout = "02.01.2006"

// Passenger identity is ID. Type is derived from the birth date, never set
// directly.
type Passenger struct {
	ID          string        `json:"id" db:"id"`
	Name        string        `json:"name" db:"name"`
	FullName    string        `json:"full_name" db:"full_name"`
	BirthDate   string        `json:"birth_date" db:"birth_date"`
	Type        PassengerType `json:"type" db:"type"`
	TravelClass TravelClass   `json:"travel_class" db:"travel_class"`
	CreatedAt   time.Time     `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at" db:"updated_at"`
}

// PassengerUpdate carries a partial update; nil fields are left untouched.
// Type is not caller-settable: the use case derives it from the birth date
// before handing the update to the store.
type PassengerUpdate struct {
	Name        *string
	FullName    *string
	BirthDate   *string
	Type        *PassengerType
	TravelClass *TravelClass
}

// ParseBirthDate validates the DD.MM.YYYY format.
func ParseBirthDate(birthDate string) (time.Time, error) {
	return time.Parse(BirthDateLayout, birthDate)
}

// Age computes calendar-aware whole years at the given instant: one year is
// subtracted when the month/day has not yet been reached.
func Age(birthDate string, at time.Time) (int, error) {
	born, err := ParseBirthDate(birthDate)
	if err != nil {
		return 0, err
	}

	years := at.Year() - born.Year()
	if at.Month() < born.Month() ||
		(at.Month() == born.Month() && at.Day() < born.Day()) {
		years--
	}
	if years < 0 {
		years = 0
	}
	return years, nil
}

// ClassifyAge maps an age onto the fare type bands: Child < 16,
// Young person 16-25, Adult 26-64, Senior 65+.
func ClassifyAge(age int) PassengerType {
	switch {
	case age < 16:
		return TypeChild
	case age <= 25:
		return TypeYoungPerson
	case age <= 64:
		return TypeAdult
	default:
		return TypeSenior
	}
}

// DeriveType recomputes the fare type from the birth date.
func (p Passenger) DeriveType(at time.Time) (PassengerType, error) {
	age, err := Age(p.BirthDate, at)
	if err != nil {
		return "", err
	}
	return ClassifyAge(age), nil
}

// localIDPrefix marks passengers created locally and not yet confirmed by
// the store.
const localIDPrefix = "local-"

// NewLocalPassengerID generates a placeholder id for a passenger awaiting
// store confirmation, distinguishable from persisted uuids.
func NewLocalPassengerID() string {
	return localIDPrefix + uuid.NewString()
}

// IsLocalID reports whether the id is an unconfirmed placeholder.
func IsLocalID(id string) bool {
	return strings.HasPrefix(id, localIDPrefix)
}
