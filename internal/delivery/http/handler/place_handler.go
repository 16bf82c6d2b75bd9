package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/place-discovery/internal/delivery/http/middleware"
	"github.com/place-discovery/internal/pkg/utils"
	"github.com/place-discovery/internal/usecase"
)

// PlaceHandler - карточка заведения
type PlaceHandler struct {
	sessionUC *usecase.SessionUseCase
	logger    *zap.Logger
}

func NewPlaceHandler(sessionUC *usecase.SessionUseCase, logger *zap.Logger) *PlaceHandler {
	return &PlaceHandler{
		sessionUC: sessionUC,
		logger:    logger,
	}
}

// GetPlace godoc
// @Summary Карточка заведения
// @Description Полная запись с расстоянием от текущей локации, статусом работы и флагом избранного
// @Tags Places
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID заведения"
// @Success 200 {object} utils.SuccessResponse{data=dto.PlaceDetailResponse}
// @Failure 404 {object} utils.ErrorResponse
// @Router /api/v1/places/{id} [get]
func (h *PlaceHandler) GetPlace(c *fiber.Ctx) error {
	detail, err := h.sessionUC.PlaceDetail(c.UserContext(), middleware.UserID(c), c.Params("id"))
	if err != nil {
		return utils.SendError(c, err)
	}
	return utils.SendSuccess(c, detail, nil)
}
