package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/checkin-service/internal/domain"
	apperrors "github.com/checkin-service/internal/pkg/errors"
	"github.com/checkin-service/internal/pkg/utils"
	"github.com/checkin-service/internal/pkg/validator"
	"github.com/checkin-service/internal/usecase"
	"github.com/checkin-service/internal/usecase/dto"
)

// SessionHandler drives the interactive check-in flow.
type SessionHandler struct {
	sessionUC *usecase.SessionUseCase
	logger    *zap.Logger
}

func NewSessionHandler(sessionUC *usecase.SessionUseCase, logger *zap.Logger) *SessionHandler {
	return &SessionHandler{
		sessionUC: sessionUC,
		logger:    logger,
	}
}

// Create godoc
// @Summary Start a check-in session
// @Description Creates a new session on the station selection screen. The slider track width sizes the drag control for the client viewport.
// @Tags Sessions
// @Accept json
// @Produce json
// @Param request body dto.CreateSessionRequest false "Session options"
// @Success 200 {object} utils.SuccessResponse{data=dto.SessionResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Router /api/v1/sessions [post]
func (h *SessionHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateSessionRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return utils.SendError(c, apperrors.ErrInvalidRequest)
		}
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, h.sessionUC.Create(c.Context(), req), nil)
}

// Get godoc
// @Summary Get a session snapshot
// @Tags Sessions
// @Produce json
// @Param id path string true "Session id"
// @Success 200 {object} utils.SuccessResponse{data=dto.SessionResponse}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/sessions/{id} [get]
func (h *SessionHandler) Get(c *fiber.Ctx) error {
	resp, err := h.sessionUC.Get(c.Params("id"))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, resp, nil)
}

// Delete godoc
// @Summary Tear a session down
// @Tags Sessions
// @Param id path string true "Session id"
// @Success 204
// @Router /api/v1/sessions/{id} [delete]
func (h *SessionHandler) Delete(c *fiber.Ctx) error {
	h.sessionUC.Delete(c.Params("id"))
	return c.SendStatus(fiber.StatusNoContent)
}

// SelectStation godoc
// @Summary Select a station
// @Description Applies a station pick. With a passenger already selected the session skips straight to the check-in screen.
// @Tags Sessions
// @Accept json
// @Produce json
// @Param id path string true "Session id"
// @Param request body dto.SelectStationRequest true "Station"
// @Success 200 {object} utils.SuccessResponse{data=dto.SessionResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/sessions/{id}/station [post]
func (h *SessionHandler) SelectStation(c *fiber.Ctx) error {
	var req dto.SelectStationRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, apperrors.ErrInvalidRequest)
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	station := domain.Station{
		ID:           req.ID,
		Name:         req.Name,
		ExternalID:   req.ExtID,
		Municipality: req.Municipality,
	}
	if req.Coordinates != nil {
		station.Coordinates = &domain.Coordinates{Lat: req.Coordinates.Lat, Lng: req.Coordinates.Lng}
	}

	resp, err := h.sessionUC.SelectStation(c.Params("id"), station)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, resp, nil)
}

// SelectPassenger godoc
// @Summary Select a passenger
// @Tags Sessions
// @Accept json
// @Produce json
// @Param id path string true "Session id"
// @Param request body dto.SelectPassengerRequest true "Passenger"
// @Success 200 {object} utils.SuccessResponse{data=dto.SessionResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/sessions/{id}/passenger [post]
func (h *SessionHandler) SelectPassenger(c *fiber.Ctx) error {
	var req dto.SelectPassengerRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, apperrors.ErrInvalidRequest)
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	resp, err := h.sessionUC.SelectPassenger(c.Context(), c.Params("id"), req.PassengerID)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, resp, nil)
}

// Back godoc
// @Summary Navigate one screen back
// @Tags Sessions
// @Produce json
// @Param id path string true "Session id"
// @Success 200 {object} utils.SuccessResponse{data=dto.SessionResponse}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/sessions/{id}/back [post]
func (h *SessionHandler) Back(c *fiber.Ctx) error {
	resp, err := h.sessionUC.Back(c.Params("id"))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, resp, nil)
}

// ChangeStation godoc
// @Summary Change the station keeping the passenger
// @Tags Sessions
// @Produce json
// @Param id path string true "Session id"
// @Success 200 {object} utils.SuccessResponse{data=dto.SessionResponse}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/sessions/{id}/change-station [post]
func (h *SessionHandler) ChangeStation(c *fiber.Ctx) error {
	resp, err := h.sessionUC.ChangeStation(c.Params("id"))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, resp, nil)
}

// ShowTicket godoc
// @Summary Open the ticket view
// @Tags Sessions
// @Produce json
// @Param id path string true "Session id"
// @Success 200 {object} utils.SuccessResponse{data=dto.SessionResponse}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/sessions/{id}/ticket/show [post]
func (h *SessionHandler) ShowTicket(c *fiber.Ctx) error {
	resp, err := h.sessionUC.ShowTicket(c.Params("id"))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, resp, nil)
}

// CheckOut godoc
// @Summary Check out without a slider gesture
// @Tags Sessions
// @Produce json
// @Param id path string true "Session id"
// @Success 200 {object} utils.SuccessResponse{data=dto.SessionResponse}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/sessions/{id}/check-out [post]
func (h *SessionHandler) CheckOut(c *fiber.Ctx) error {
	resp, err := h.sessionUC.CheckOut(c.Params("id"))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, resp, nil)
}

// SliderPress godoc
// @Summary Start a slider drag
// @Tags Slider
// @Accept json
// @Produce json
// @Param id path string true "Session id"
// @Param request body dto.SliderRequest true "Pointer coordinate"
// @Success 200 {object} utils.SuccessResponse{data=dto.SessionResponse}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/sessions/{id}/slider/press [post]
func (h *SessionHandler) SliderPress(c *fiber.Ctx) error {
	var req dto.SliderRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, apperrors.ErrInvalidRequest)
	}

	resp, err := h.sessionUC.SliderPress(c.Params("id"), req.X)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, resp, nil)
}

// SliderMove godoc
// @Summary Update the slider drag position
// @Tags Slider
// @Accept json
// @Produce json
// @Param id path string true "Session id"
// @Param request body dto.SliderRequest true "Pointer coordinate"
// @Success 200 {object} utils.SuccessResponse{data=dto.SessionResponse}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/sessions/{id}/slider/move [post]
func (h *SessionHandler) SliderMove(c *fiber.Ctx) error {
	var req dto.SliderRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, apperrors.ErrInvalidRequest)
	}

	resp, err := h.sessionUC.SliderMove(c.Params("id"), req.X)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, resp, nil)
}

// SliderRelease godoc
// @Summary End the slider drag
// @Description Applies the commit rule once: past the threshold the gesture checks in or out, otherwise the handle snaps back.
// @Tags Slider
// @Produce json
// @Param id path string true "Session id"
// @Success 200 {object} utils.SuccessResponse{data=dto.SessionResponse}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/sessions/{id}/slider/release [post]
func (h *SessionHandler) SliderRelease(c *fiber.Ctx) error {
	resp, err := h.sessionUC.SliderRelease(c.Params("id"))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, resp, nil)
}

// SearchInput godoc
// @Summary Feed the session search box
// @Description Debounced: the lookup runs only after the configured quiet period without further input.
// @Tags Sessions
// @Accept json
// @Param id path string true "Session id"
// @Param request body dto.SearchInputRequest true "Query"
// @Success 202
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/sessions/{id}/search [post]
func (h *SessionHandler) SearchInput(c *fiber.Ctx) error {
	var req dto.SearchInputRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, apperrors.ErrInvalidRequest)
	}

	if err := h.sessionUC.SearchInput(c.Params("id"), req.Query); err != nil {
		return utils.SendError(c, err)
	}
	return c.SendStatus(fiber.StatusAccepted)
}

// SearchResults godoc
// @Summary Read the latest completed search lookup
// @Tags Sessions
// @Produce json
// @Param id path string true "Session id"
// @Success 200 {object} utils.SuccessResponse{data=dto.SearchResponse}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/sessions/{id}/search/results [get]
func (h *SessionHandler) SearchResults(c *fiber.Ctx) error {
	query, resp, err := h.sessionUC.SearchResults(c.Params("id"))
	if err != nil {
		return utils.SendError(c, err)
	}
	if resp == nil {
		resp = &dto.SearchResponse{Query: query, Stations: []dto.StationResult{}}
	}
	return utils.SendSuccess(c, resp, nil)
}
