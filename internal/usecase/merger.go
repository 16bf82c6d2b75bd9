package usecase

import (
	"sort"

	"github.com/place-discovery/internal/domain"
	"github.com/place-discovery/internal/geo"
)

// MergeParams - параметры слияния батчей
type MergeParams struct {
	Center   domain.Point
	RadiusKm float64
	SortBy   domain.SortKey
	// Tags - допустимые категории, пустой набор пропускает всё
	Tags []string
}

// Merge объединяет ответы по боксам в одну упорядоченную страницу:
// считает расстояние, отбрасывает записи вне радиуса и чужих категорий,
// убирает дубликаты по id и сортирует. Порядок батчей на результат не влияет.
func Merge(batches []domain.Batch, params MergeParams) []domain.Place {
	allowed := make(map[string]struct{}, len(params.Tags))
	for _, t := range params.Tags {
		allowed[t] = struct{}{}
	}

	seen := make(map[string]struct{})
	merged := make([]domain.Place, 0)

	for _, b := range batches {
		for _, p := range b.Places {
			if _, dup := seen[p.ID]; dup {
				continue
			}
			if len(allowed) > 0 {
				if _, ok := allowed[p.Category]; !ok {
					continue
				}
			}

			distance := geo.DistanceKm(params.Center.Lat, params.Center.Lon, p.Lat, p.Lon)
			if !(distance <= params.RadiusKm) {
				continue
			}

			seen[p.ID] = struct{}{}
			p.Distance = distance
			merged = append(merged, p)
		}
	}

	SortPlaces(merged, params.SortBy)
	return merged
}

// SortPlaces сортирует по ключу, при равенстве - по id
func SortPlaces(places []domain.Place, sortBy domain.SortKey) {
	sort.SliceStable(places, func(i, j int) bool {
		a, b := &places[i], &places[j]
		switch sortBy {
		case domain.SortByRating:
			if ra, rb := a.RatingValue(), b.RatingValue(); ra != rb {
				return ra > rb
			}
		case domain.SortByAdded:
			if !a.CreatedAt.Equal(b.CreatedAt) {
				return a.CreatedAt.After(b.CreatedAt)
			}
		default:
			if a.Distance != b.Distance {
				return a.Distance < b.Distance
			}
		}
		return a.ID < b.ID
	})
}

// DistinctCount - число уникальных записей, которые вернуло хранилище (до фильтрации)
func DistinctCount(batches []domain.Batch) int {
	seen := make(map[string]struct{})
	for _, b := range batches {
		for _, p := range b.Places {
			seen[p.ID] = struct{}{}
		}
	}
	return len(seen)
}
