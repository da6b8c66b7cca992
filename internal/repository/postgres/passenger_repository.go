package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/checkin-service/internal/domain"
	"github.com/checkin-service/internal/domain/repository"
	apperrors "github.com/checkin-service/internal/pkg/errors"
)

type passengerRepository struct {
	db     *DB
	logger *zap.Logger
}

func NewPassengerRepository(db *DB) repository.PassengerRepository {
	return &passengerRepository{
		db:     db,
		logger: db.logger,
	}
}

// passengerRow mirrors the passengers table; the type and travel_class
// columns hold store codes, not display values.
type passengerRow struct {
	ID          string    `db:"id"`
	Name        string    `db:"name"`
	FullName    string    `db:"full_name"`
	BirthDate   string    `db:"birth_date"`
	Type        string    `db:"type"`
	TravelClass string    `db:"travel_class"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

func (r passengerRow) toDomain() domain.Passenger {
	return domain.Passenger{
		ID:          r.ID,
		Name:        r.Name,
		FullName:    r.FullName,
		BirthDate:   r.BirthDate,
		Type:        passengerTypeFromStore(r.Type),
		TravelClass: travelClassFromStore(r.TravelClass),
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func passengerTypeFromStore(code string) domain.PassengerType {
	switch code {
	case "child":
		return domain.TypeChild
	case "young_person":
		return domain.TypeYoungPerson
	case "senior":
		return domain.TypeSenior
	default:
		return domain.TypeAdult
	}
}

func passengerTypeToStore(t domain.PassengerType) string {
	switch t {
	case domain.TypeChild:
		return "child"
	case domain.TypeYoungPerson:
		return "young_person"
	case domain.TypeSenior:
		return "senior"
	default:
		return "adult"
	}
}

func travelClassFromStore(code string) domain.TravelClass {
	if code == "first_class" {
		return domain.ClassFirstClass
	}
	return domain.ClassStandard
}

func travelClassToStore(c domain.TravelClass) string {
	if c == domain.ClassFirstClass {
		return "first_class"
	}
	return "standard"
}

func (r *passengerRepository) Create(ctx context.Context, p *domain.Passenger) (*domain.Passenger, error) {
	query := `
		INSERT INTO passengers (name, full_name, birth_date, type, travel_class)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, name, full_name, birth_date, type, travel_class, created_at, updated_at
	`

	var row passengerRow
	err := r.db.GetContext(ctx, &row, query,
		p.Name, p.FullName, p.BirthDate,
		passengerTypeToStore(p.Type), travelClassToStore(p.TravelClass),
	)
	if err != nil {
		r.logger.Error("Failed to create passenger", zap.Error(err))
		return nil, apperrors.ErrDatabaseError
	}

	created := row.toDomain()
	return &created, nil
}

func (r *passengerRepository) List(ctx context.Context) ([]domain.Passenger, error) {
	query := `
		SELECT id, name, full_name, birth_date, type, travel_class, created_at, updated_at
		FROM passengers
		ORDER BY created_at
	`

	var rows []passengerRow
	if err := r.db.SelectContext(ctx, &rows, query); err != nil {
		r.logger.Error("Failed to list passengers", zap.Error(err))
		return nil, apperrors.ErrDatabaseError
	}

	passengers := make([]domain.Passenger, 0, len(rows))
	for _, row := range rows {
		passengers = append(passengers, row.toDomain())
	}
	return passengers, nil
}

func (r *passengerRepository) GetByID(ctx context.Context, id string) (*domain.Passenger, error) {
	query := `
		SELECT id, name, full_name, birth_date, type, travel_class, created_at, updated_at
		FROM passengers
		WHERE id = $1
	`

	var row passengerRow
	err := r.db.GetContext(ctx, &row, query, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.ErrPassengerNotFound
	}
	if err != nil {
		r.logger.Error("Failed to get passenger", zap.String("id", id), zap.Error(err))
		return nil, apperrors.ErrDatabaseError
	}

	p := row.toDomain()
	return &p, nil
}

func (r *passengerRepository) Update(ctx context.Context, id string, fields domain.PassengerUpdate) (*domain.Passenger, error) {
	query := `
		UPDATE passengers SET
			name         = COALESCE($2, name),
			full_name    = COALESCE($3, full_name),
			birth_date   = COALESCE($4, birth_date),
			type         = COALESCE($5, type),
			travel_class = COALESCE($6, travel_class),
			updated_at   = now()
		WHERE id = $1
		RETURNING id, name, full_name, birth_date, type, travel_class, created_at, updated_at
	`

	var typeCode, classCode *string
	if fields.Type != nil {
		code := passengerTypeToStore(*fields.Type)
		typeCode = &code
	}
	if fields.TravelClass != nil {
		code := travelClassToStore(*fields.TravelClass)
		classCode = &code
	}

	var row passengerRow
	err := r.db.GetContext(ctx, &row, query,
		id, fields.Name, fields.FullName, fields.BirthDate, typeCode, classCode,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.ErrPassengerNotFound
	}
	if err != nil {
		r.logger.Error("Failed to update passenger", zap.String("id", id), zap.Error(err))
		return nil, apperrors.ErrDatabaseError
	}

	p := row.toDomain()
	return &p, nil
}

func (r *passengerRepository) Delete(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM passengers WHERE id = $1`, id); err != nil {
		r.logger.Error("Failed to delete passenger", zap.String("id", id), zap.Error(err))
		return apperrors.ErrDatabaseError
	}
	return nil
}
