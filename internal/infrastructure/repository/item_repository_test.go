package repository

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSortedItemIDsStableOrder(t *testing.T) {
	// GIVEN: the same set of items keyed two different ways, as two
	// concurrent checkouts would build their decrement maps
	a := uuid.MustParse("00000000-0000-0000-0000-000000000001")
	b := uuid.MustParse("00000000-0000-0000-0000-000000000002")
	c := uuid.MustParse("ffffffff-0000-0000-0000-000000000000")

	first := map[uuid.UUID]int{a: 1, b: 2, c: 3}
	second := map[uuid.UUID]int{c: 5, a: 4, b: 6}

	// WHEN: both maps are walked for their row updates
	orderFirst := sortedItemIDs(first)
	orderSecond := sortedItemIDs(second)

	// THEN: both batches visit the rows in the identical sequence, so their
	// row locks can never be acquired in opposite orders
	require.Equal(t, orderFirst, orderSecond)
	assert.Equal(t, []uuid.UUID{a, b, c}, orderFirst)
}

func TestSortedItemIDsCoversEveryItem(t *testing.T) {
	quantities := make(map[uuid.UUID]int)
	for i := 0; i < 20; i++ {
		quantities[uuid.New()] = i + 1
	}

	ids := sortedItemIDs(quantities)

	require.Len(t, ids, len(quantities))
	seen := make(map[uuid.UUID]bool)
	for _, id := range ids {
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
		_, ok := quantities[id]
		assert.True(t, ok, "id %s not in input", id)
	}
}
