package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/place-discovery/internal/domain"
	"github.com/place-discovery/internal/pkg/errors"
)

func TestNewFeedResponse(t *testing.T) {
	loc := domain.Point{Lat: 13.0246, Lon: 77.7626}
	snap := domain.PageSnapshot{
		State: domain.StateIdle,
		Params: domain.QueryParams{
			Filter:         domain.FilterCafe,
			SortBy:         domain.SortByDistance,
			Location:       &loc,
			LocationSource: domain.LocationSourceFallback,
		},
		Places: []domain.Place{
			{ID: "a", Name: "Third Wave", Images: []string{"a.jpg", "b.jpg"}, Distance: 1.5},
			{ID: "b", Name: "Bakehouse"},
		},
		HasMore: true,
	}
	resp := NewFeedResponse(snap, func(id string) bool { return id == "b" })

	assert.Equal(t, "idle", resp.State)
	assert.Equal(t, "Cafe", resp.Filter)
	require.NotNil(t, resp.Location)
	assert.Equal(t, "fallback", resp.Location.Source)
	assert.Equal(t, 13.0246, resp.Location.Lat)
	assert.False(t, resp.Empty)
	assert.True(t, resp.HasMore)
	assert.Nil(t, resp.Error)
	assert.Len(t, resp.Places, 2)
	assert.Equal(t, "a.jpg", resp.Places[0].Image)
	assert.False(t, resp.Places[0].Wishlisted)
	assert.True(t, resp.Places[1].Wishlisted)
}

func TestNewFeedResponse_ErrorIsNotEmpty(t *testing.T) {
	snap := domain.PageSnapshot{State: domain.StateError, Err: errors.ErrQueryFailed.Wrap(assert.AnError)}

	resp := NewFeedResponse(snap, nil)

	assert.False(t, resp.Empty)
	assert.Equal(t, "QUERY_FAILED", resp.Error.Code)
	assert.Nil(t, resp.Location)
	assert.NotNil(t, resp.Places)
}

func TestNewFeedResponse_Empty(t *testing.T) {
	resp := NewFeedResponse(domain.PageSnapshot{State: domain.StateIdle}, nil)
	assert.True(t, resp.Empty)
}
