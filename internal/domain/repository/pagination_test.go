package repository

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/Hala-ashour/Restaurant98/internal/domain/catalog"
)

func TestPage_Offset(t *testing.T) {
	assert.Equal(t, 0, NewPage(0).Offset())
	assert.Equal(t, 0, NewPage(1).Offset())
	assert.Equal(t, 10, NewPage(3).Offset())
	assert.Equal(t, PageSize, NewPage(3).Limit())
}

func TestPage_HugeNumberDoesNotOverflow(t *testing.T) {
	for _, n := range []int{MaxPage, MaxPage + 1, 3689348814741910324, math.MaxInt} {
		p := NewPage(n)
		assert.LessOrEqual(t, p.Number, MaxPage)
		assert.GreaterOrEqual(t, p.Offset(), 0, "page %d", n)
	}
	assert.GreaterOrEqual(t, Page{Number: math.MaxInt}.Offset(), 0)
}

func TestSlice(t *testing.T) {
	all := []int{1, 2, 3, 4, 5, 6, 7, 8}

	first := Slice(all, NewPage(1))
	assert.Equal(t, []int{1, 2, 3, 4, 5}, first.Results)
	assert.Equal(t, 8, first.Count)
	assert.True(t, first.HasNext)

	second := Slice(all, NewPage(2))
	assert.Equal(t, []int{6, 7, 8}, second.Results)
	assert.False(t, second.HasNext)

	beyond := Slice(all, NewPage(9))
	assert.Empty(t, beyond.Results)
	assert.NotNil(t, beyond.Results)

	far := Slice([]int{1, 2, 3}, NewPage(3689348814741910324))
	assert.Empty(t, far.Results)
	assert.Equal(t, 3, far.Count)
	assert.False(t, far.HasNext)

	assert.Empty(t, Slice([]int{1, 2, 3}, Page{Number: math.MaxInt}).Results)
}

func TestProductFilter_Match(t *testing.T) {
	cat := "c1"
	other := "c2"
	yes := true
	gt := decimal.NewFromInt(5)
	lt := decimal.NewFromInt(15)

	p := catalog.Product{Price: decimal.NewFromInt(10), CategoryID: &cat, IsAvailable: true}

	assert.True(t, ProductFilter{}.Match(p))
	assert.True(t, ProductFilter{CategoryID: &cat, Available: &yes, PriceGT: &gt, PriceLT: &lt}.Match(p))
	assert.False(t, ProductFilter{CategoryID: &other}.Match(p))
	assert.False(t, ProductFilter{PriceGT: &lt}.Match(p))

	p.Price = decimal.NewFromInt(5)
	assert.False(t, ProductFilter{PriceGT: &gt}.Match(p), "price_gt is exclusive")
}
