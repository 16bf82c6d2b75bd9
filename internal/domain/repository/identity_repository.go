package repository

import (
	"context"

	"github.com/place-discovery/internal/domain"
)

// IdentityRepository - провайдер анонимных пользователей
type IdentityRepository interface {
	CreateAnonymousUser(ctx context.Context) (*domain.User, error)
	GetUser(ctx context.Context, id string) (*domain.User, error)
}
