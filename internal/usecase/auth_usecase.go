package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/place-discovery/internal/domain/repository"
	"github.com/place-discovery/internal/pkg/errors"
	"github.com/place-discovery/internal/pkg/token"
	"github.com/place-discovery/internal/usecase/dto"
)

type AuthUseCase struct {
	identityRepo repository.IdentityRepository
	tokens       *token.Manager
	logger       *zap.Logger
}

func NewAuthUseCase(
	identityRepo repository.IdentityRepository,
	tokens *token.Manager,
	logger *zap.Logger,
) *AuthUseCase {
	return &AuthUseCase{
		identityRepo: identityRepo,
		tokens:       tokens,
		logger:       logger,
	}
}

// SignInAnonymously создаёт анонимного пользователя и выдаёт токен
func (uc *AuthUseCase) SignInAnonymously(ctx context.Context) (*dto.AuthResponse, error) {
	user, err := uc.identityRepo.CreateAnonymousUser(ctx)
	if err != nil {
		uc.logger.Error("Failed to create anonymous user", zap.Error(err))
		return nil, errors.ErrAuthenticationFailed.Wrap(err)
	}

	raw, expiresAt, err := uc.tokens.Issue(user.ID, user.Anonymous)
	if err != nil {
		uc.logger.Error("Failed to issue token", zap.String("user_id", user.ID), zap.Error(err))
		return nil, errors.ErrAuthenticationFailed.Wrap(err)
	}

	uc.logger.Info("Anonymous user signed in", zap.String("user_id", user.ID))

	return &dto.AuthResponse{
		UserID:    user.ID,
		Token:     raw,
		ExpiresAt: expiresAt,
	}, nil
}

// Authenticate проверяет токен и возвращает id пользователя
func (uc *AuthUseCase) Authenticate(raw string) (string, error) {
	claims, err := uc.tokens.Parse(raw)
	if err != nil {
		return "", errors.ErrAuthenticationFailed.Wrap(err)
	}
	return claims.Subject, nil
}
