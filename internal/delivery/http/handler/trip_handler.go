package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/trip-atlas/internal/pkg/errors"
	"github.com/trip-atlas/internal/pkg/utils"
	"github.com/trip-atlas/internal/pkg/validator"
	"github.com/trip-atlas/internal/usecase"
	"github.com/trip-atlas/internal/usecase/dto"
)

// TripHandler - обработчик запросов по поездкам
type TripHandler struct {
	tripUC *usecase.TripUseCase
	logger *zap.Logger
}

// NewTripHandler - создание нового TripHandler
func NewTripHandler(tripUC *usecase.TripUseCase, logger *zap.Logger) *TripHandler {
	return &TripHandler{
		tripUC: tripUC,
		logger: logger,
	}
}

// ImportTrips godoc
// @Summary Импорт поездок
// @Description Сохраняет пачку поездок вместе с сегментами перемещений. Треки move-сегментов используются для построения атласов.
// @Tags Trips
// @Accept json
// @Produce json
// @Param request body dto.ImportTripsRequest true "Поездки с сегментами"
// @Success 200 {object} utils.SuccessResponse{data=dto.ImportTripsResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/trips [post]
func (h *TripHandler) ImportTrips(c *fiber.Ctx) error {
	var req dto.ImportTripsRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithReason("invalid request body"))
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithReason(err.Error()))
	}

	result, err := h.tripUC.ImportTrips(c.Context(), &req)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		Total: result.Total,
	})
}

// ListTrips godoc
// @Summary Список поездок
// @Description Возвращает страницу сохраненных поездок без сегментов
// @Tags Trips
// @Produce json
// @Param limit query int false "Максимальное количество результатов" default(20)
// @Param offset query int false "Смещение страницы" default(0)
// @Success 200 {object} utils.SuccessResponse{data=dto.ListTripsResponse}
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/trips [get]
func (h *TripHandler) ListTrips(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)
	offset := c.QueryInt("offset", 0)

	result, err := h.tripUC.ListTrips(c.Context(), limit, offset)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, &utils.Meta{
		Total: result.Total,
		Limit: limit,
	})
}

// GetTrip godoc
// @Summary Поездка по идентификатору
// @Description Возвращает поездку вместе с сегментами и треками
// @Tags Trips
// @Produce json
// @Param id path string true "Идентификатор поездки (UUID)"
// @Success 200 {object} utils.SuccessResponse{data=domain.Trip}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/trips/{id} [get]
func (h *TripHandler) GetTrip(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithReason("invalid trip id"))
	}

	trip, err := h.tripUC.GetTrip(c.Context(), id)
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, trip, nil)
}
