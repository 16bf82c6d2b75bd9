// Package geo содержит геодезию сервиса: расстояние по большому кругу
// и покрытие круга поиска диапазонами geohash.
package geo

import "math"

const (
	// EarthRadiusKm - средний радиус Земли для формулы гаверсинуса
	EarthRadiusKm = 6371.0

	degToRad = math.Pi / 180.0
)

// DistanceKm вычисляет расстояние между двумя точками в километрах (гаверсинус).
// Для входных значений вне диапазона результат не определён, но паники не будет.
func DistanceKm(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := (lat2 - lat1) * degToRad
	dLon := (lon2 - lon1) * degToRad

	sinLat := math.Sin(dLat / 2)
	sinLon := math.Sin(dLon / 2)
	cosProduct := math.Cos(lat1*degToRad) * math.Cos(lat2*degToRad)

	a := sinLat*sinLat + sinLon*sinLon*cosProduct
	if a > 1 {
		a = 1
	}
	if a < 0 {
		a = 0
	}
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))

	return EarthRadiusKm * c
}

// ValidCoordinates проверяет диапазоны широты и долготы
func ValidCoordinates(lat, lon float64) bool {
	return lat >= -90 && lat <= 90 && lon >= -180 && lon <= 180
}

// Destination - точка на расстоянии distKm от (lat, lon) по азимуту bearingDeg
func Destination(lat, lon, distKm, bearingDeg float64) (float64, float64) {
	delta := distKm / EarthRadiusKm
	theta := bearingDeg * degToRad
	phi1, lambda1 := lat*degToRad, lon*degToRad

	phi2 := math.Asin(math.Sin(phi1)*math.Cos(delta) + math.Cos(phi1)*math.Sin(delta)*math.Cos(theta))
	lambda2 := lambda1 + math.Atan2(
		math.Sin(theta)*math.Sin(delta)*math.Cos(phi1),
		math.Cos(delta)-math.Sin(phi1)*math.Sin(phi2),
	)

	return phi2 / degToRad, wrapLongitude(lambda2 / degToRad)
}
