package usecase

import (
	"github.com/place-discovery/internal/domain"
	"github.com/place-discovery/internal/geo"
	"github.com/place-discovery/internal/pkg/errors"
)

// PlannerConfig - параметры планировщика запросов
type PlannerConfig struct {
	Collection   string
	RadiusMeters float64
	PageSize     int
}

// QueryPlanner переводит (фильтр, сортировка, локация, курсор) в набор запросов к хранилищу.
// Чистая функция от входа, состояния не хранит.
type QueryPlanner struct {
	cfg PlannerConfig
}

func NewQueryPlanner(cfg PlannerConfig) *QueryPlanner {
	return &QueryPlanner{cfg: cfg}
}

// PlanRequest - вход планировщика
type PlanRequest struct {
	Filter   domain.Filter
	SortBy   domain.SortKey
	Location *domain.Point
	Cursor   *domain.Cursor
}

// RadiusKm - радиус поиска в километрах
func (p *QueryPlanner) RadiusKm() float64 {
	return p.cfg.RadiusMeters / 1000
}

// PageSize - лимит на один бокс
func (p *QueryPlanner) PageSize() int {
	return p.cfg.PageSize
}

// Plan строит по одному дескриптору на geohash-бокс. Боксы, исчерпанные по курсору,
// повторно не запрашиваются; пустой результат без ошибки значит, что данных больше нет.
func (p *QueryPlanner) Plan(req PlanRequest) ([]domain.QueryDescriptor, error) {
	if !req.Filter.Valid() {
		return nil, errors.ErrInvalidFilter.WithDetails(map[string]interface{}{"filter": req.Filter})
	}
	if !req.SortBy.Valid() {
		return nil, errors.ErrInvalidSort.WithDetails(map[string]interface{}{"sort_by": req.SortBy})
	}
	if req.Location == nil {
		return nil, errors.ErrLocationUnavailable
	}
	if !geo.ValidCoordinates(req.Location.Lat, req.Location.Lon) {
		return nil, errors.ErrInvalidCoordinates
	}

	ranges := geo.QueryBounds(req.Location.Lat, req.Location.Lon, p.cfg.RadiusMeters)
	tags := req.Filter.Tags()
	order := OrderFor(req.SortBy)

	descriptors := make([]domain.QueryDescriptor, 0, len(ranges))
	for _, r := range ranges {
		box := req.Cursor.Box(r.Key())
		if box.Exhausted {
			continue
		}
		descriptors = append(descriptors, domain.QueryDescriptor{
			Collection: p.cfg.Collection,
			Range:      r,
			Categories: tags,
			OrderBy:    order,
			Limit:      p.cfg.PageSize,
			StartAfter: box.After,
		})
	}

	return descriptors, nil
}

// OrderFor - серверный порядок для ключа сортировки. Для distance порядок
// определяет только клиентская сортировка после слияния.
func OrderFor(sortBy domain.SortKey) domain.OrderField {
	switch sortBy {
	case domain.SortByRating:
		return domain.OrderRating
	case domain.SortByAdded:
		return domain.OrderCreatedAt
	default:
		return domain.OrderNone
	}
}
