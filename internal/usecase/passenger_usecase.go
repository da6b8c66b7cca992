package usecase

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/checkin-service/internal/domain"
	"github.com/checkin-service/internal/domain/repository"
	apperrors "github.com/checkin-service/internal/pkg/errors"
	"github.com/checkin-service/internal/usecase/dto"
)

// PassengerUseCase manages traveler profiles. The fare type is never taken
// from the caller; it is derived from the birth date on every write, and
// responses recompute age and type at read time so band boundaries crossed
// since the last write are reflected immediately.
type PassengerUseCase struct {
	passengers repository.PassengerRepository
	logger     *zap.Logger
	now        func() time.Time
}

func NewPassengerUseCase(passengers repository.PassengerRepository, logger *zap.Logger) *PassengerUseCase {
	return &PassengerUseCase{
		passengers: passengers,
		logger:     logger,
		now:        time.Now,
	}
}

func (uc *PassengerUseCase) List(ctx context.Context) ([]dto.PassengerResponse, error) {
	passengers, err := uc.passengers.List(ctx)
	if err != nil {
		return nil, err
	}

	at := uc.now()
	responses := make([]dto.PassengerResponse, 0, len(passengers))
	for _, p := range passengers {
		responses = append(responses, dto.NewPassengerResponse(p, at))
	}
	return responses, nil
}

func (uc *PassengerUseCase) Get(ctx context.Context, id string) (*dto.PassengerResponse, error) {
	p, err := uc.passengers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	resp := dto.NewPassengerResponse(*p, uc.now())
	return &resp, nil
}

func (uc *PassengerUseCase) Create(ctx context.Context, req dto.CreatePassengerRequest) (*dto.PassengerResponse, error) {
	age, err := domain.Age(req.BirthDate, uc.now())
	if err != nil {
		return nil, apperrors.ErrInvalidBirthDate
	}

	class := domain.TravelClass(req.TravelClass)
	if class == "" {
		class = domain.ClassStandard
	}

	p := &domain.Passenger{
		ID:          domain.NewLocalPassengerID(),
		Name:        req.Name,
		FullName:    req.FullName,
		BirthDate:   req.BirthDate,
		Type:        domain.ClassifyAge(age),
		TravelClass: class,
	}

	created, err := uc.passengers.Create(ctx, p)
	if err != nil {
		return nil, err
	}

	uc.logger.Info("Passenger created",
		zap.String("id", created.ID),
		zap.String("type", string(created.Type)),
	)

	resp := dto.NewPassengerResponse(*created, uc.now())
	return &resp, nil
}

func (uc *PassengerUseCase) Update(ctx context.Context, id string, req dto.UpdatePassengerRequest) (*dto.PassengerResponse, error) {
	fields := domain.PassengerUpdate{
		Name:     req.Name,
		FullName: req.FullName,
	}

	if req.BirthDate != nil {
		age, err := domain.Age(*req.BirthDate, uc.now())
		if err != nil {
			return nil, apperrors.ErrInvalidBirthDate
		}
		derived := domain.ClassifyAge(age)
		fields.BirthDate = req.BirthDate
		fields.Type = &derived
	}

	if req.TravelClass != nil {
		class := domain.TravelClass(*req.TravelClass)
		fields.TravelClass = &class
	}

	updated, err := uc.passengers.Update(ctx, id, fields)
	if err != nil {
		return nil, err
	}

	resp := dto.NewPassengerResponse(*updated, uc.now())
	return &resp, nil
}

func (uc *PassengerUseCase) Delete(ctx context.Context, id string) error {
	return uc.passengers.Delete(ctx, id)
}
