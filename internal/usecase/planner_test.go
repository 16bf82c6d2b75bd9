package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/place-discovery/internal/domain"
	"github.com/place-discovery/internal/geo"
	"github.com/place-discovery/internal/pkg/errors"
	"github.com/place-discovery/internal/usecase"
)

var bangalore = domain.Point{Lat: 13.0246, Lon: 77.7626}

func newPlanner() *usecase.QueryPlanner {
	return usecase.NewQueryPlanner(usecase.PlannerConfig{
		Collection:   "places",
		RadiusMeters: 10000,
		PageSize:     20,
	})
}

func TestQueryPlanner_Plan(t *testing.T) {
	planner := newPlanner()
	loc := bangalore

	t.Run("one descriptor per box with filter tags", func(t *testing.T) {
		descriptors, err := planner.Plan(usecase.PlanRequest{
			Filter:   domain.FilterCafe,
			SortBy:   domain.SortByRating,
			Location: &loc,
		})
		require.NoError(t, err)

		ranges := geo.QueryBounds(loc.Lat, loc.Lon, 10000)
		require.Len(t, descriptors, len(ranges))
		for i, d := range descriptors {
			assert.Equal(t, "places", d.Collection)
			assert.Equal(t, ranges[i], d.Range)
			assert.Equal(t, []string{"Cafe", "Bakery"}, d.Categories)
			assert.Equal(t, domain.OrderRating, d.OrderBy)
			assert.Equal(t, 20, d.Limit)
			assert.Nil(t, d.StartAfter)
		}
	})

	t.Run("all filter has no category constraint", func(t *testing.T) {
		descriptors, err := planner.Plan(usecase.PlanRequest{
			Filter:   domain.FilterAll,
			SortBy:   domain.SortByDistance,
			Location: &loc,
		})
		require.NoError(t, err)
		for _, d := range descriptors {
			assert.Empty(t, d.Categories)
			assert.Equal(t, domain.OrderNone, d.OrderBy)
		}
	})

	t.Run("cursor positions and exhausted boxes", func(t *testing.T) {
		ranges := geo.QueryBounds(loc.Lat, loc.Lon, 10000)
		require.GreaterOrEqual(t, len(ranges), 2)

		after := &domain.DocumentRef{ID: "p-20", Geohash: "tdr1"}
		cursor := &domain.Cursor{Boxes: map[string]domain.BoxCursor{
			ranges[0].Key(): {After: after},
			ranges[1].Key(): {Exhausted: true},
		}}

		descriptors, err := planner.Plan(usecase.PlanRequest{
			Filter:   domain.FilterAll,
			SortBy:   domain.SortByAdded,
			Location: &loc,
			Cursor:   cursor,
		})
		require.NoError(t, err)
		require.Len(t, descriptors, len(ranges)-1)
		assert.Equal(t, after, descriptors[0].StartAfter)
		assert.Equal(t, domain.OrderCreatedAt, descriptors[0].OrderBy)
		for _, d := range descriptors {
			assert.NotEqual(t, ranges[1], d.Range)
		}
	})

	t.Run("missing location", func(t *testing.T) {
		descriptors, err := planner.Plan(usecase.PlanRequest{Filter: domain.FilterAll, SortBy: domain.SortByDistance})
		assert.Empty(t, descriptors)
		assert.ErrorIs(t, err, errors.ErrLocationUnavailable)
	})

	t.Run("unknown filter", func(t *testing.T) {
		_, err := planner.Plan(usecase.PlanRequest{Filter: "Nightclub", SortBy: domain.SortByDistance, Location: &loc})
		assert.ErrorIs(t, err, errors.ErrInvalidFilter)
	})

	t.Run("unknown sort", func(t *testing.T) {
		_, err := planner.Plan(usecase.PlanRequest{Filter: domain.FilterAll, SortBy: "popularity", Location: &loc})
		assert.ErrorIs(t, err, errors.ErrInvalidSort)
	})

	t.Run("invalid coordinates", func(t *testing.T) {
		bad := domain.Point{Lat: 120, Lon: 0}
		_, err := planner.Plan(usecase.PlanRequest{Filter: domain.FilterAll, SortBy: domain.SortByDistance, Location: &bad})
		assert.ErrorIs(t, err, errors.ErrInvalidCoordinates)
	})
}

func TestOrderFor(t *testing.T) {
	assert.Equal(t, domain.OrderNone, usecase.OrderFor(domain.SortByDistance))
	assert.Equal(t, domain.OrderRating, usecase.OrderFor(domain.SortByRating))
	assert.Equal(t, domain.OrderCreatedAt, usecase.OrderFor(domain.SortByAdded))
}
