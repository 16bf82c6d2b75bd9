package dto

import (
	"github.com/place-discovery/internal/domain"
	"github.com/place-discovery/internal/pkg/errors"
)

// NewPlaceCard строит карточку списка
func NewPlaceCard(p domain.Place, wishlisted bool) PlaceCard {
	card := PlaceCard{
		ID:         p.ID,
		Name:       p.Name,
		Category:   p.Category,
		Address:    p.Address,
		Lat:        p.Lat,
		Lon:        p.Lon,
		Rating:     p.Rating,
		DistanceKm: p.Distance,
		Wishlisted: wishlisted,
	}
	if len(p.Images) > 0 {
		card.Image = p.Images[0]
	}
	return card
}

// NewFeedResponse переводит снимок контроллера в ответ API.
// Локация берётся из параметров снимка, по ним и посчитана выдача.
func NewFeedResponse(snap domain.PageSnapshot, isWishlisted func(string) bool) *FeedResponse {
	resp := &FeedResponse{
		State:      string(snap.State),
		Filter:     string(snap.Params.Filter),
		SortBy:     string(snap.Params.SortBy),
		Places:     make([]PlaceCard, 0, len(snap.Places)),
		HasMore:    snap.HasMore,
		Empty:      snap.Empty(),
		Generation: snap.Generation,
	}

	if loc := snap.Params.Resolved(); loc != nil {
		resp.Location = &LocationResponse{
			Lat:    loc.Point.Lat,
			Lon:    loc.Point.Lon,
			Source: string(loc.Source),
		}
	}

	for _, p := range snap.Places {
		resp.Places = append(resp.Places, NewPlaceCard(p, isWishlisted != nil && isWishlisted(p.ID)))
	}

	if snap.Err != nil {
		if appErr, ok := errors.As(snap.Err); ok {
			resp.Error = appErr
		} else {
			resp.Error = errors.ErrInternalServer
		}
	}

	return resp
}
