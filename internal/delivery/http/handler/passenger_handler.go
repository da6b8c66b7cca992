package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	apperrors "github.com/checkin-service/internal/pkg/errors"
	"github.com/checkin-service/internal/pkg/utils"
	"github.com/checkin-service/internal/pkg/validator"
	"github.com/checkin-service/internal/usecase"
	"github.com/checkin-service/internal/usecase/dto"
)

// PassengerHandler manages traveler profiles.
type PassengerHandler struct {
	passengerUC *usecase.PassengerUseCase
	logger      *zap.Logger
}

func NewPassengerHandler(passengerUC *usecase.PassengerUseCase, logger *zap.Logger) *PassengerHandler {
	return &PassengerHandler{
		passengerUC: passengerUC,
		logger:      logger,
	}
}

// List godoc
// @Summary List passengers
// @Description Age and fare type are computed at response time from the stored birth date.
// @Tags Passengers
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=[]dto.PassengerResponse}
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/passengers [get]
func (h *PassengerHandler) List(c *fiber.Ctx) error {
	passengers, err := h.passengerUC.List(c.Context())
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, passengers, &utils.Meta{Total: len(passengers)})
}

// Get godoc
// @Summary Get a passenger
// @Tags Passengers
// @Produce json
// @Param id path string true "Passenger id"
// @Success 200 {object} utils.SuccessResponse{data=dto.PassengerResponse}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/passengers/{id} [get]
func (h *PassengerHandler) Get(c *fiber.Ctx) error {
	passenger, err := h.passengerUC.Get(c.Context(), c.Params("id"))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, passenger, nil)
}

// Create godoc
// @Summary Create a passenger
// @Description The fare type is derived from the birth date (DD.MM.YYYY); it cannot be set directly.
// @Tags Passengers
// @Accept json
// @Produce json
// @Param request body dto.CreatePassengerRequest true "Passenger"
// @Success 200 {object} utils.SuccessResponse{data=dto.PassengerResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/passengers [post]
func (h *PassengerHandler) Create(c *fiber.Ctx) error {
	var req dto.CreatePassengerRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, apperrors.ErrInvalidRequest)
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	passenger, err := h.passengerUC.Create(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, passenger, nil)
}

// Update godoc
// @Summary Update a passenger
// @Description Partial update; a changed birth date re-derives the fare type.
// @Tags Passengers
// @Accept json
// @Produce json
// @Param id path string true "Passenger id"
// @Param request body dto.UpdatePassengerRequest true "Fields to update"
// @Success 200 {object} utils.SuccessResponse{data=dto.PassengerResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/passengers/{id} [put]
func (h *PassengerHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdatePassengerRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, apperrors.ErrInvalidRequest)
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	passenger, err := h.passengerUC.Update(c.Context(), c.Params("id"), req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, passenger, nil)
}

// Delete godoc
// @Summary Delete a passenger
// @Tags Passengers
// @Param id path string true "Passenger id"
// @Success 204
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/passengers/{id} [delete]
func (h *PassengerHandler) Delete(c *fiber.Ctx) error {
	if err := h.passengerUC.Delete(c.Context(), c.Params("id")); err != nil {
		return utils.SendError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
