package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/place-discovery/internal/pkg/utils"
	"github.com/place-discovery/internal/usecase"
)

// AuthHandler - анонимный вход
type AuthHandler struct {
	authUC *usecase.AuthUseCase
	logger *zap.Logger
}

func NewAuthHandler(authUC *usecase.AuthUseCase, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authUC: authUC,
		logger: logger,
	}
}

// SignInAnonymously godoc
// @Summary Анонимный вход
// @Description Создаёт анонимного пользователя и выдаёт JWT для остальных маршрутов
// @Tags Auth
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=dto.AuthResponse}
// @Failure 401 {object} utils.ErrorResponse
// @Router /api/v1/auth/anonymous [post]
func (h *AuthHandler) SignInAnonymously(c *fiber.Ctx) error {
	result, err := h.authUC.SignInAnonymously(c.UserContext())
	if err != nil {
		return utils.SendError(c, err)
	}

	return utils.SendSuccess(c, result, nil)
}
