package utils

import "github.com/place-discovery/internal/geo"

// ValidateCoordinates проверяет валидность координат
func ValidateCoordinates(lat, lon float64) bool {
	return geo.ValidCoordinates(lat, lon)
}

// ValidateRadius проверяет валидность радиуса в метрах (100 м - 100 км)
func ValidateRadius(radiusMeters float64) bool {
	return radiusMeters >= 100 && radiusMeters <= 100000
}
