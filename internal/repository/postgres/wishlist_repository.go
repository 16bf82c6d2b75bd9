package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/place-discovery/internal/domain"
	"github.com/place-discovery/internal/domain/repository"
	"github.com/place-discovery/internal/pkg/errors"
)

type wishlistRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewWishlistRepository(db *DB) repository.WishlistRepository {
	return &wishlistRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

func (r *wishlistRepository) List(ctx context.Context, userID string) ([]domain.WishlistEntry, error) {
	query := `
		SELECT user_id, place_id, added_at
		FROM wishlist
		WHERE user_id = $1
		ORDER BY added_at DESC, place_id ASC
	`

	entries := make([]domain.WishlistEntry, 0)
	if err := r.db.SelectContext(ctx, &entries, query, userID); err != nil {
		r.logger.Error("Failed to list wishlist", zap.String("user_id", userID), zap.Error(err))
		return nil, errors.ErrDatabaseError.Wrap(err)
	}
	return entries, nil
}

// Add идемпотентен: повторное добавление сохраняет исходный added_at
func (r *wishlistRepository) Add(ctx context.Context, entry domain.WishlistEntry) error {
	query := `
		INSERT INTO wishlist (user_id, place_id, added_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, place_id) DO NOTHING
	`

	if _, err := r.db.ExecContext(ctx, query, entry.UserID, entry.PlaceID, entry.AddedAt); err != nil {
		r.logger.Error("Failed to add to wishlist",
			zap.String("user_id", entry.UserID),
			zap.String("place_id", entry.PlaceID),
			zap.Error(err),
		)
		return errors.ErrDatabaseError.Wrap(err)
	}
	return nil
}

func (r *wishlistRepository) Remove(ctx context.Context, userID, placeID string) error {
	query := `DELETE FROM wishlist WHERE user_id = $1 AND place_id = $2`

	if _, err := r.db.ExecContext(ctx, query, userID, placeID); err != nil {
		r.logger.Error("Failed to remove from wishlist",
			zap.String("user_id", userID),
			zap.String("place_id", placeID),
			zap.Error(err),
		)
		return errors.ErrDatabaseError.Wrap(err)
	}
	return nil
}
