package handler

import (
	"github.com/gofiber/fiber/v2"

	"github.com/place-discovery/internal/domain"
	"github.com/place-discovery/internal/pkg/utils"
	"github.com/place-discovery/internal/usecase/dto"
)

// CategoryHandler - таблица фильтров
type CategoryHandler struct{}

func NewCategoryHandler() *CategoryHandler {
	return &CategoryHandler{}
}

// List godoc
// @Summary Фильтры категорий
// @Description Фильтры в порядке отображения и теги, которыми они представлены в хранилище
// @Tags Places
// @Produce json
// @Success 200 {object} utils.SuccessResponse{data=[]dto.CategoryResponse}
// @Router /api/v1/categories [get]
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	filters := domain.Filters()
	result := make([]dto.CategoryResponse, 0, len(filters))
	for _, f := range filters {
		result = append(result, dto.CategoryResponse{Filter: string(f), Tags: f.Tags()})
	}
	return utils.SendSuccess(c, result, &utils.Meta{Total: len(result)})
}
