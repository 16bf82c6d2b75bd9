package dto

import (
	"time"

	"github.com/place-discovery/internal/domain"
	"github.com/place-discovery/internal/geo"
	"github.com/place-discovery/internal/pkg/errors"
)

// AuthResponse - ответ анонимного входа
type AuthResponse struct {
	UserID    string    `json:"user_id"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// CategoryResponse - фильтр и теги хранилища
type CategoryResponse struct {
	Filter string   `json:"filter"`
	Tags   []string `json:"tags"`
}

// PlaceCard - карточка в списке
type PlaceCard struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Category   string   `json:"category"`
	Address    string   `json:"address"`
	Lat        float64  `json:"lat"`
	Lon        float64  `json:"lon"`
	Rating     *float64 `json:"rating,omitempty"`
	DistanceKm float64  `json:"distance_km"`
	Image      string   `json:"image,omitempty"`
	Wishlisted bool     `json:"wishlisted"`
}

// LocationResponse - локация, по которой строилась выдача
type LocationResponse struct {
	Lat    float64 `json:"lat"`
	Lon    float64 `json:"lon"`
	Source string  `json:"source"`
}

// FeedResponse - снимок выдачи для слоя отображения
type FeedResponse struct {
	State      string            `json:"state"`
	Filter     string            `json:"filter"`
	SortBy     string            `json:"sort_by"`
	Location   *LocationResponse `json:"location,omitempty"`
	Places     []PlaceCard       `json:"places"`
	HasMore    bool              `json:"has_more"`
	Empty      bool              `json:"empty"`
	Generation uint64            `json:"generation"`
	Error      *errors.AppError  `json:"error,omitempty"`
}

// PlaceDetailResponse - полная карточка заведения
type PlaceDetailResponse struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Category   string          `json:"category"`
	Address    string          `json:"address"`
	About      string          `json:"about"`
	Lat        float64         `json:"lat"`
	Lon        float64         `json:"lon"`
	Rating     *float64        `json:"rating,omitempty"`
	Images     []string        `json:"images"`
	Reviews    []domain.Review `json:"reviews"`
	Website    string          `json:"website,omitempty"`
	DistanceKm *float64        `json:"distance_km,omitempty"`
	Timings    string          `json:"timings"`
	OpenStatus string          `json:"open_status"`
	Wishlisted bool            `json:"wishlisted"`
}

// WishlistResponse - избранное, отсортированное по расстоянию
type WishlistResponse struct {
	Places []PlaceCard `json:"places"`
	Total  int         `json:"total"`
}

// ToggleWishlistResponse - результат переключения
type ToggleWishlistResponse struct {
	PlaceID    string `json:"place_id"`
	Wishlisted bool   `json:"wishlisted"`
}

// CoverageCell - прямоугольник geohash-ячейки
type CoverageCell struct {
	Hash   string  `json:"hash"`
	MinLat float64 `json:"min_lat"`
	MaxLat float64 `json:"max_lat"`
	MinLon float64 `json:"min_lon"`
	MaxLon float64 `json:"max_lon"`
}

// CoverageResponse - покрытие круга поиска диапазонами geohash
type CoverageResponse struct {
	Center   domain.Point   `json:"center"`
	RadiusM  float64        `json:"radius_m"`
	Ranges   []geo.Range    `json:"ranges"`
	Cells    []CoverageCell `json:"cells"`
	Boundary []domain.Point `json:"boundary"`
}
