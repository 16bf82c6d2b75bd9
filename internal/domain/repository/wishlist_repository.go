package repository

import (
	"context"

	"github.com/place-discovery/internal/domain"
)

// WishlistRepository - подколлекция избранного пользователя
type WishlistRepository interface {
	// List возвращает избранное пользователя, новые сверху
	List(ctx context.Context, userID string) ([]domain.WishlistEntry, error)

	// Add идемпотентно добавляет заведение
	Add(ctx context.Context, entry domain.WishlistEntry) error

	// Remove идемпотентно удаляет заведение
	Remove(ctx context.Context, userID, placeID string) error
}
