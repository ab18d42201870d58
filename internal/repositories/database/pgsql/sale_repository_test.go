package pgsql

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sebodomatias/bookstore_pos_app/internal/core/domain"
)

// Stock rows must be locked in the same order by every transaction,
// regardless of map iteration order, so concurrent multi-book sales and
// reversals cannot deadlock.
func TestSortedStockKeys(t *testing.T) {
	quantities := map[domain.StockKey]int{
		{BookID: "book-b", Condition: domain.ConditionNew}:        1,
		{BookID: "book-a", Condition: domain.ConditionDiscounted}: 2,
		{BookID: "book-b", Condition: domain.ConditionDiscounted}: 3,
		{BookID: "book-a", Condition: domain.ConditionNew}:        4,
	}

	want := []domain.StockKey{
		{BookID: "book-a", Condition: domain.ConditionDiscounted},
		{BookID: "book-a", Condition: domain.ConditionNew},
		{BookID: "book-b", Condition: domain.ConditionDiscounted},
		{BookID: "book-b", Condition: domain.ConditionNew},
	}

	for i := 0; i < 20; i++ {
		assert.Equal(t, want, sortedStockKeys(quantities))
	}
}

func TestSortedStockKeysEmpty(t *testing.T) {
	assert.Empty(t, sortedStockKeys(map[domain.StockKey]int{}))
}
