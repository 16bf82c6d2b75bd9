package domain

import "time"

// Point - координаты в градусах WGS84
type Point struct {
	Lat float64 `json:"lat" db:"lat"`
	Lon float64 `json:"lon" db:"lon"`
}

// User - анонимный пользователь, выданный identity-провайдером
type User struct {
	ID        string    `json:"id" db:"id"`
	Anonymous bool      `json:"anonymous" db:"anonymous"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// LocationSource - откуда получена локация пользователя
type LocationSource string

const (
	LocationSourceClient   LocationSource = "client"
	LocationSourceProvider LocationSource = "provider"
	LocationSourceCache    LocationSource = "cache"
	LocationSourceFallback LocationSource = "fallback"
)

// ResolvedLocation - снимок локации для одного цикла запросов
type ResolvedLocation struct {
	Point  Point          `json:"point"`
	Source LocationSource `json:"source"`
}
