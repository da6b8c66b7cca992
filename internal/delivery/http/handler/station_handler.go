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

// StationHandler serves directory search and the favorites list.
type StationHandler struct {
	stationUC *usecase.StationUseCase
	logger    *zap.Logger
}

func NewStationHandler(stationUC *usecase.StationUseCase, logger *zap.Logger) *StationHandler {
	return &StationHandler{
		stationUC: stationUC,
		logger:    logger,
	}
}

// Search godoc
// @Summary Search stations by name
// @Description Looks stations up in the external directory. Queries shorter than 2 characters return an empty list; directory failures are reported inside the response.
// @Tags Stations
// @Produce json
// @Param q query string true "Search query"
// @Param limit query int false "Maximum results" default(10)
// @Success 200 {object} utils.SuccessResponse{data=dto.SearchResponse}
// @Router /api/v1/stations/search [get]
func (h *StationHandler) Search(c *fiber.Ctx) error {
	req := dto.SearchRequest{
		Query: c.Query("q"),
		Limit: c.QueryInt("limit", 0),
	}

	resp := h.stationUC.Search(c.Context(), req)
	return utils.SendSuccess(c, resp, &utils.Meta{Total: len(resp.Stations)})
}

// Nearby godoc
// @Summary Find stations near a point
// @Tags Stations
// @Produce json
// @Param lat query number true "Latitude"
// @Param lng query number true "Longitude"
// @Param max_distance query int false "Search radius in meters" default(1000)
// @Param limit query int false "Maximum results" default(10)
// @Success 200 {object} utils.SuccessResponse{data=[]dto.StationResult}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 502 {object} utils.ErrorResponse
// @Router /api/v1/stations/nearby [get]
func (h *StationHandler) Nearby(c *fiber.Ctx) error {
	req := dto.NearbyRequest{
		Lat:         c.QueryFloat("lat"),
		Lng:         c.QueryFloat("lng"),
		MaxDistance: c.QueryInt("max_distance", 0),
		Limit:       c.QueryInt("limit", 0),
	}
	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, err)
	}

	stations, err := h.stationUC.Nearby(c.Context(), req)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, stations, &utils.Meta{Total: len(stations)})
}

// Departures godoc
// @Summary Departure board for a station
// @Tags Stations
// @Produce json
// @Param ext_id path string true "Directory station id"
// @Param limit query int false "Maximum departures" default(10)
// @Success 200 {object} utils.SuccessResponse{data=dto.DepartureBoardResponse}
// @Failure 502 {object} utils.ErrorResponse
// @Router /api/v1/stations/{ext_id}/departures [get]
func (h *StationHandler) Departures(c *fiber.Ctx) error {
	board, err := h.stationUC.Departures(c.Context(), c.Params("ext_id"), c.QueryInt("limit", 0))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, board, &utils.Meta{Total: len(board.Departures)})
}

// ListFavorites godoc
// @Summary List favorite stations
// @Description Includes optimistic additions and hides optimistic removals still being written to the store.
// @Tags Favorites
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=[]domain.Station}
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/favorites [get]
func (h *StationHandler) ListFavorites(c *fiber.Ctx) error {
	stations, err := h.stationUC.ListFavorites(c.Context())
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, stations, &utils.Meta{Total: len(stations)})
}

// AddFavorite godoc
// @Summary Pin a station
// @Description The addition is applied optimistically and rolled back if the store write fails. Pinning a station that is already a favorite returns 409 with the existing record.
// @Tags Favorites
// @Accept json
// @Produce json
// @Param request body dto.AddFavoriteRequest true "Station"
// @Success 200 {object} utils.SuccessResponse{data=domain.Station}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Router /api/v1/favorites [post]
func (h *StationHandler) AddFavorite(c *fiber.Ctx) error {
	var req dto.AddFavoriteRequest
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

	added, err := h.stationUC.AddFavorite(c.Context(), station)
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, added, nil)
}

// RemoveFavorite godoc
// @Summary Unpin a station
// @Description Applied optimistically; a failed store delete makes the favorite reappear. Removing a non-favorite is a no-op.
// @Tags Favorites
// @Param key path string true "Canonical station key (ext_id)"
// @Success 204
// @Router /api/v1/favorites/{key} [delete]
func (h *StationHandler) RemoveFavorite(c *fiber.Ctx) error {
	h.stationUC.RemoveFavorite(c.Context(), c.Params("key"))
	return c.SendStatus(fiber.StatusNoContent)
}
