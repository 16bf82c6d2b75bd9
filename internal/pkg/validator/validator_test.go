package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type queryRequest struct {
	Filter string   `validate:"required,place_filter"`
	SortBy string   `validate:"required,sort_key"`
	Lat    *float64 `validate:"omitempty,latitude"`
}

func TestValidate_CustomRules(t *testing.T) {
	lat := 13.0246
	assert.NoError(t, Validate(queryRequest{Filter: "Cafe", SortBy: "rating", Lat: &lat}))

	err := Validate(queryRequest{Filter: "Nightclub", SortBy: "popularity"})
	require.Error(t, err)

	details := FieldErrors(err)
	assert.Equal(t, "place_filter", details["Filter"])
	assert.Equal(t, "sort_key", details["SortBy"])
}

func TestValidate_Latitude(t *testing.T) {
	lat := 123.0
	err := Validate(queryRequest{Filter: "All", SortBy: "distance", Lat: &lat})
	require.Error(t, err)
	assert.Equal(t, "latitude", FieldErrors(err)["Lat"])
}

func TestFieldErrors_NonValidationError(t *testing.T) {
	assert.Empty(t, FieldErrors(assert.AnError))
}
