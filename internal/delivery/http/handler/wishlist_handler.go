package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/place-discovery/internal/delivery/http/middleware"
	"github.com/place-discovery/internal/pkg/utils"
	"github.com/place-discovery/internal/usecase"
)

// WishlistHandler - избранное пользователя
type WishlistHandler struct {
	sessionUC *usecase.SessionUseCase
	logger    *zap.Logger
}

func NewWishlistHandler(sessionUC *usecase.SessionUseCase, logger *zap.Logger) *WishlistHandler {
	return &WishlistHandler{
		sessionUC: sessionUC,
		logger:    logger,
	}
}

// List godoc
// @Summary Избранное
// @Description Заведения из избранного по возрастанию расстояния от текущей локации
// @Tags Wishlist
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.SuccessResponse{data=dto.WishlistResponse}
// @Failure 401 {object} utils.ErrorResponse
// @Router /api/v1/wishlist [get]
func (h *WishlistHandler) List(c *fiber.Ctx) error {
	result, err := h.sessionUC.Wishlist(c.UserContext(), middleware.UserID(c))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, result, &utils.Meta{Total: result.Total})
}

// Toggle godoc
// @Summary Добавить или убрать из избранного
// @Description Состояние меняется только после подтверждённой записи в хранилище
// @Tags Wishlist
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID заведения"
// @Success 200 {object} utils.SuccessResponse{data=dto.ToggleWishlistResponse}
// @Failure 502 {object} utils.ErrorResponse
// @Router /api/v1/wishlist/{id}/toggle [post]
func (h *WishlistHandler) Toggle(c *fiber.Ctx) error {
	result, err := h.sessionUC.ToggleWishlist(c.UserContext(), middleware.UserID(c), c.Params("id"))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, result, nil)
}
