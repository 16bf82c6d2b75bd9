package validator

import (
	"github.com/go-playground/validator/v10"

	"github.com/place-discovery/internal/domain"
)

var validate *validator.Validate

func init() {
	validate = validator.New()

	// place_filter - фильтр из таблицы категорий
	_ = validate.RegisterValidation("place_filter", func(fl validator.FieldLevel) bool {
		return domain.Filter(fl.Field().String()).Valid()
	})

	// sort_key - distance | rating | added
	_ = validate.RegisterValidation("sort_key", func(fl validator.FieldLevel) bool {
		return domain.SortKey(fl.Field().String()).Valid()
	})
}

// Validate - валидация структуры
func Validate(s interface{}) error {
	return validate.Struct(s)
}

// GetValidator - получить валидатор для кастомной конфигурации
func GetValidator() *validator.Validate {
	return validate
}

// FieldErrors возвращает поле -> нарушенное правило для деталей ошибки
func FieldErrors(err error) map[string]interface{} {
	details := make(map[string]interface{})
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return details
	}
	for _, fe := range verrs {
		details[fe.Field()] = fe.Tag()
	}
	return details
}
