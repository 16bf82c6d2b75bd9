package dto

// PlacesQueryRequest - запрос новой выдачи (смена фильтра, сортировки или локации)
type PlacesQueryRequest struct {
	Filter string   `json:"filter" validate:"omitempty,place_filter"`
	SortBy string   `json:"sort_by" validate:"omitempty,sort_key"`
	Lat    *float64 `json:"lat,omitempty" validate:"omitempty,latitude"`
	Lon    *float64 `json:"lon,omitempty" validate:"omitempty,longitude"`
}

// CoverageRequest - параметры отладочной карты покрытия
type CoverageRequest struct {
	Lat     float64 `query:"lat" validate:"latitude"`
	Lon     float64 `query:"lon" validate:"longitude"`
	RadiusM float64 `query:"radius_m" validate:"omitempty,min=100,max=100000"`
}
