package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/trip-atlas/internal/domain"
	"github.com/trip-atlas/internal/pkg/errors"
	"github.com/trip-atlas/internal/pkg/utils"
	"github.com/trip-atlas/internal/pkg/validator"
	"github.com/trip-atlas/internal/usecase"
	"github.com/trip-atlas/internal/usecase/dto"
)

// AtlasHandler - обработчик запросов на построение атласов
type AtlasHandler struct {
	atlasUC *usecase.AtlasUseCase
	logger  *zap.Logger
}

// NewAtlasHandler - создание нового AtlasHandler
func NewAtlasHandler(atlasUC *usecase.AtlasUseCase, logger *zap.Logger) *AtlasHandler {
	return &AtlasHandler{
		atlasUC: atlasUC,
		logger:  logger,
	}
}

// RenderAtlas godoc
// @Summary Синхронное построение атласа
// @Description Строит SVG-атлас малых карт: кластеризует конечные точки move-сегментов, раскладывает кластеры по тайлам и проецирует траектории. Источник данных - сохраненные поездки (trip_ids, пустой список = все) либо сегменты в теле запроса.
// @Tags Atlas
// @Accept json
// @Produce image/svg+xml
// @Param request body dto.RenderAtlasRequest true "Источник данных и параметры конвейера"
// @Success 200 {string} string "SVG-документ"
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/atlas/render [post]
func (h *AtlasHandler) RenderAtlas(c *fiber.Ctx) error {
	var req dto.RenderAtlasRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithReason("invalid request body"))
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithReason(err.Error()))
	}

	svg, err := h.atlasUC.RenderAtlas(c.Context(), &req)
	if err != nil {
		return utils.SendError(c, err)
	}

	c.Set(fiber.HeaderContentType, "image/svg+xml")
	return c.Send(svg)
}

// EnqueueRender godoc
// @Summary Асинхронное построение атласа
// @Description Ставит задачу рендеринга в очередь и возвращает идентификатор задачи. Готовый атлас доступен по ключу кэша из состояния задачи.
// @Tags Atlas
// @Accept json
// @Produce json
// @Param request body dto.RenderAtlasRequest true "Источник данных и параметры конвейера (только trip_ids)"
// @Success 202 {object} utils.SuccessResponse{data=dto.EnqueueJobResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/atlas/jobs [post]
func (h *AtlasHandler) EnqueueRender(c *fiber.Ctx) error {
	var req dto.RenderAtlasRequest
	if err := c.BodyParser(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithReason("invalid request body"))
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithReason(err.Error()))
	}

	job, err := h.atlasUC.EnqueueRender(c.Context(), &req)
	if err != nil {
		return utils.SendError(c, err)
	}

	c.Status(fiber.StatusAccepted)
	return utils.SendSuccess(c, dto.EnqueueJobResponse{
		JobID:  job.JobID,
		Status: job.Status,
	}, nil)
}

// GetJob godoc
// @Summary Состояние задачи рендеринга
// @Description Возвращает статус задачи, количество кластеров и ключ кэша готового атласа
// @Tags Atlas
// @Produce json
// @Param id path string true "Идентификатор задачи (UUID)"
// @Success 200 {object} utils.SuccessResponse{data=dto.JobStatusResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/atlas/jobs/{id} [get]
func (h *AtlasHandler) GetJob(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithReason("invalid job id"))
	}

	job, err := h.atlasUC.GetJob(c.Context(), id)
	if err != nil {
		return utils.SendError(c, err)
	}

	resp := dto.JobStatusFromDomain(job)
	return utils.SendSuccess(c, resp, nil)
}

// GetJobResult godoc
// @Summary Готовый атлас задачи
// @Description Возвращает SVG-атлас завершенной задачи рендеринга
// @Tags Atlas
// @Produce image/svg+xml
// @Param id path string true "Идентификатор задачи (UUID)"
// @Success 200 {string} string "SVG-документ"
// @Failure 400 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse
// @Failure 409 {object} utils.ErrorResponse
// @Failure 500 {object} utils.ErrorResponse
// @Router /api/v1/atlas/jobs/{id}/result [get]
func (h *AtlasHandler) GetJobResult(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return utils.SendError(c, errors.ErrInvalidRequest.WithReason("invalid job id"))
	}

	job, err := h.atlasUC.GetJob(c.Context(), id)
	if err != nil {
		return utils.SendError(c, err)
	}

	if job.Status != domain.JobStatusDone {
		return c.Status(fiber.StatusConflict).JSON(utils.ErrorResponse{
			Error: errors.ErrInvalidRequest.WithReason("job is not done: " + job.Status),
		})
	}

	svg, err := h.atlasUC.GetCachedAtlas(c.Context(), job.CacheKey)
	if err != nil {
		return utils.SendError(c, err)
	}
	if svg == nil {
		return utils.SendError(c, errors.ErrJobNotFound.WithReason("rendered atlas expired from cache"))
	}

	c.Set(fiber.HeaderContentType, "image/svg+xml")
	return c.Send(svg)
}
