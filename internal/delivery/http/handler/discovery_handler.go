package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/place-discovery/internal/delivery/http/middleware"
	"github.com/place-discovery/internal/domain"
	"github.com/place-discovery/internal/pkg/errors"
	"github.com/place-discovery/internal/pkg/utils"
	"github.com/place-discovery/internal/pkg/validator"
	"github.com/place-discovery/internal/usecase"
	"github.com/place-discovery/internal/usecase/dto"
)

// DiscoveryHandler - выдача заведений рядом с пользователем
type DiscoveryHandler struct {
	sessionUC *usecase.SessionUseCase
	logger    *zap.Logger
}

func NewDiscoveryHandler(sessionUC *usecase.SessionUseCase, logger *zap.Logger) *DiscoveryHandler {
	return &DiscoveryHandler{
		sessionUC: sessionUC,
		logger:    logger,
	}
}

// Query godoc
// @Summary Новая выдача
// @Description Сбрасывает список и загружает первую страницу для фильтра, сортировки и локации.
// @Description Без lat/lon локация определяется по IP клиента.
// @Tags Places
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.PlacesQueryRequest true "Фильтр, сортировка, координаты"
// @Success 200 {object} utils.SuccessResponse{data=dto.FeedResponse}
// @Failure 400 {object} utils.ErrorResponse
// @Failure 401 {object} utils.ErrorResponse
// @Router /api/v1/places/query [post]
func (h *DiscoveryHandler) Query(c *fiber.Ctx) error {
	var req dto.PlacesQueryRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return utils.SendError(c, errors.ErrInvalidRequest.Wrap(err))
		}
	}

	if err := validator.Validate(&req); err != nil {
		return utils.SendError(c, invalidRequest(err))
	}
	if (req.Lat == nil) != (req.Lon == nil) {
		return utils.SendError(c, errors.ErrInvalidCoordinates.WithDetails(map[string]interface{}{
			"reason": "lat and lon must be set together",
		}))
	}

	in := usecase.QueryInput{
		Filter:   req.Filter,
		SortBy:   req.SortBy,
		ClientIP: c.IP(),
	}
	if req.Lat != nil {
		in.Explicit = &domain.Point{Lat: *req.Lat, Lon: *req.Lon}
	}

	start := time.Now()
	feed, err := h.sessionUC.Query(c.UserContext(), middleware.UserID(c), in)
	return h.sendFeed(c, feed, err, start)
}

// LoadMore godoc
// @Summary Следующая страница
// @Description Догружает страницу текущей выдачи. Во время загрузки повторный вызов ничего не делает.
// @Tags Places
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.SuccessResponse{data=dto.FeedResponse}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/places/more [post]
func (h *DiscoveryHandler) LoadMore(c *fiber.Ctx) error {
	start := time.Now()
	feed, err := h.sessionUC.LoadMore(c.UserContext(), middleware.UserID(c))
	return h.sendFeed(c, feed, err, start)
}

// Feed godoc
// @Summary Текущая выдача
// @Tags Places
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.SuccessResponse{data=dto.FeedResponse}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/places/feed [get]
func (h *DiscoveryHandler) Feed(c *fiber.Ctx) error {
	feed, err := h.sessionUC.Feed(middleware.UserID(c))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, feed, feedMeta(feed, 0))
}

// sendFeed: ошибка загрузки страницы уже отражена в снимке (state=error),
// поэтому при наличии снимка отвечаем 200
func (h *DiscoveryHandler) sendFeed(c *fiber.Ctx, feed *dto.FeedResponse, err error, start time.Time) error {
	if feed == nil {
		if err == nil {
			err = errors.ErrInternalServer
		}
		return utils.SendError(c, err)
	}
	if err != nil {
		h.logger.Warn("Feed request finished with error",
			zap.String("user_id", middleware.UserID(c)),
			zap.Error(err))
	}
	return utils.SendSuccess(c, feed, feedMeta(feed, time.Since(start)))
}

func feedMeta(feed *dto.FeedResponse, took time.Duration) *utils.Meta {
	hasMore := feed.HasMore
	return &utils.Meta{
		Total:    len(feed.Places),
		HasMore:  &hasMore,
		TimeMSec: float64(took.Microseconds()) / 1000,
	}
}

func invalidRequest(err error) error {
	return errors.ErrInvalidRequest.WithDetails(validator.FieldErrors(err))
}
