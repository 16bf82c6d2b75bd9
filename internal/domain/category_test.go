package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategoryMapping(t *testing.T) {
	for _, f := range Filters() {
		t.Run(string(f), func(t *testing.T) {
			assert.True(t, f.Valid())
			if f == FilterAll {
				assert.Empty(t, f.Tags())
				return
			}
			assert.NotEmpty(t, f.Tags(), "only All may have an empty tag set")
		})
	}

	assert.Equal(t, []string{"Cafe", "Bakery"}, FilterCafe.Tags())
	assert.Equal(t, []string{"Shopping_mall"}, FilterMall.Tags())
	assert.False(t, Filter("cafe").Valid())
	assert.False(t, Filter("").Valid())
}

func TestFilter_TagsReturnsCopy(t *testing.T) {
	tags := FilterBar.Tags()
	tags[0] = "Nightclub"

	assert.Equal(t, []string{"Bar", "Pub"}, FilterBar.Tags())
}
