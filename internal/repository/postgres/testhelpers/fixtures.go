package testhelpers

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/place-discovery/internal/domain"
	"github.com/place-discovery/internal/geo"
)

// InsertPlaces записывает заведения в таблицу places; geohash считается по координатам
func InsertPlaces(ctx context.Context, db *sqlx.DB, places []domain.Place) error {
	query := `
		INSERT INTO places (id, name, category, lat, lon, geohash, address, about, rating,
			opening_hours, images, reviews, website, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	for _, p := range places {
		if p.Geohash == "" {
			p.Geohash = geo.Encode(p.Lat, p.Lon)
		}
		_, err := db.ExecContext(ctx, query,
			p.ID, p.Name, p.Category, p.Lat, p.Lon, p.Geohash, p.Address, p.About, p.Rating,
			p.OpeningHours, pq.Array(p.Images), p.Reviews, p.Website, p.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("insert place %s: %w", p.ID, err)
		}
	}
	return nil
}

// InsertUser создаёт пользователя с заданным id
func InsertUser(ctx context.Context, db *sqlx.DB, id string) error {
	if _, err := db.ExecContext(ctx, `INSERT INTO users (id) VALUES ($1)`, id); err != nil {
		return fmt.Errorf("insert user %s: %w", id, err)
	}
	return nil
}
