package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOccasionValid(t *testing.T) {
	for _, o := range []Occasion{OccasionDate, OccasionDaily, OccasionSport, OccasionWork, OccasionFormal} {
		assert.True(t, o.Valid(), "%s should be valid", o)
	}
	assert.False(t, Occasion("party").Valid())
	assert.False(t, Occasion("").Valid())
}

func TestCategoryValid(t *testing.T) {
	for _, c := range []Category{CategoryTop, CategoryBottom, CategoryOuter, CategoryShoes, CategoryAccessory} {
		assert.True(t, c.Valid(), "%s should be valid", c)
	}
	assert.False(t, Category("headwear").Valid())
	assert.False(t, Category("").Valid())
}

func TestOutfitCandidateItemIDs(t *testing.T) {
	candidate := OutfitCandidate{Items: []ClothingItem{{ID: 3}, {ID: 1}, {ID: 7}}}

	assert.Equal(t, []int64{3, 1, 7}, candidate.ItemIDs())
	assert.True(t, candidate.Contains(1))
	assert.False(t, candidate.Contains(9))
}
