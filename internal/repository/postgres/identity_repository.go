package postgres

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/place-discovery/internal/domain"
	"github.com/place-discovery/internal/domain/repository"
	"github.com/place-discovery/internal/pkg/errors"
)

type identityRepository struct {
	db     *sqlx.DB
	logger *zap.Logger
}

func NewIdentityRepository(db *DB) repository.IdentityRepository {
	return &identityRepository{
		db:     db.DB,
		logger: db.logger,
	}
}

func (r *identityRepository) CreateAnonymousUser(ctx context.Context) (*domain.User, error) {
	user := &domain.User{ID: uuid.NewString(), Anonymous: true}

	query := `INSERT INTO users (id, anonymous) VALUES ($1, TRUE) RETURNING created_at`
	if err := r.db.QueryRowxContext(ctx, query, user.ID).Scan(&user.CreatedAt); err != nil {
		r.logger.Error("Failed to create anonymous user", zap.Error(err))
		return nil, errors.ErrDatabaseError.Wrap(err)
	}

	return user, nil
}

func (r *identityRepository) GetUser(ctx context.Context, id string) (*domain.User, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, nil
	}

	var user domain.User
	err := r.db.GetContext(ctx, &user, `SELECT id, anonymous, created_at FROM users WHERE id = $1`, id)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		r.logger.Error("Failed to get user", zap.String("id", id), zap.Error(err))
		return nil, errors.ErrDatabaseError.Wrap(err)
	}
	return &user, nil
}
