package testhelpers

import (
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"

	"github.com/place-discovery/internal/domain/repository"
	"github.com/place-discovery/internal/repository/postgres"
)

func NewDBForTest(db *sqlx.DB, logger *zap.Logger) *postgres.DB {
	return postgres.NewDBForTest(db, logger)
}

func NewPlaceRepositoryForTest(db *sqlx.DB, logger *zap.Logger) repository.PlaceRepository {
	return postgres.NewPlaceRepository(NewDBForTest(db, logger), "places")
}

func NewWishlistRepositoryForTest(db *sqlx.DB, logger *zap.Logger) repository.WishlistRepository {
	return postgres.NewWishlistRepository(NewDBForTest(db, logger))
}

func NewIdentityRepositoryForTest(db *sqlx.DB, logger *zap.Logger) repository.IdentityRepository {
	return postgres.NewIdentityRepository(NewDBForTest(db, logger))
}
