package usecase

import (
	"github.com/mmcloughlin/geohash"

	"github.com/place-discovery/internal/domain"
	"github.com/place-discovery/internal/geo"
	"github.com/place-discovery/internal/pkg/errors"
	"github.com/place-discovery/internal/pkg/utils"
	"github.com/place-discovery/internal/usecase/dto"
)

const boundarySegments = 72

// CoverageUseCase - отладочное покрытие круга поиска geohash-диапазонами
type CoverageUseCase struct {
	defaultRadiusM float64
}

func NewCoverageUseCase(defaultRadiusM float64) *CoverageUseCase {
	return &CoverageUseCase{defaultRadiusM: defaultRadiusM}
}

func (uc *CoverageUseCase) Coverage(req dto.CoverageRequest) (*dto.CoverageResponse, error) {
	if !utils.ValidateCoordinates(req.Lat, req.Lon) {
		return nil, errors.ErrInvalidCoordinates
	}
	radius := req.RadiusM
	if radius == 0 {
		radius = uc.defaultRadiusM
	}
	if !utils.ValidateRadius(radius) {
		return nil, errors.ErrInvalidRadius
	}

	ranges := geo.QueryBounds(req.Lat, req.Lon, radius)

	resp := &dto.CoverageResponse{
		Center:   domain.Point{Lat: req.Lat, Lon: req.Lon},
		RadiusM:  radius,
		Ranges:   ranges,
		Cells:    make([]dto.CoverageCell, 0),
		Boundary: make([]domain.Point, 0, boundarySegments+1),
	}

	for _, r := range ranges {
		for _, hash := range r.Cells() {
			box := geohash.BoundingBox(hash)
			resp.Cells = append(resp.Cells, dto.CoverageCell{
				Hash:   hash,
				MinLat: box.MinLat,
				MaxLat: box.MaxLat,
				MinLon: box.MinLng,
				MaxLon: box.MaxLng,
			})
		}
	}

	for i := 0; i <= boundarySegments; i++ {
		lat, lon := geo.Destination(req.Lat, req.Lon, radius/1000, float64(i)*360/boundarySegments)
		resp.Boundary = append(resp.Boundary, domain.Point{Lat: lat, Lon: lon})
	}

	return resp, nil
}
