package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaginate_SevenArticlesThreePerPage(t *testing.T) {
	all := sampleArticles()

	page1, total := Paginate(all, 3, 1)
	assert.Equal(t, 3, total)
	assert.Equal(t, []string{"1", "2", "3"}, ids(page1))

	page3, total := Paginate(all, 3, 3)
	assert.Equal(t, 3, total)
	assert.Equal(t, []string{"7"}, ids(page3), "last page holds the single remaining item")
}

func TestPaginate_MiddlePage(t *testing.T) {
	page2, _ := Paginate(sampleArticles(), 3, 2)
	assert.Equal(t, []string{"4", "5", "6"}, ids(page2))
}

func TestPaginate_EmptyInputIsOnePageOfNothing(t *testing.T) {
	items, total := Paginate(nil, 3, 1)
	assert.Equal(t, 1, total)
	assert.Empty(t, items)
}

func TestPaginate_OutOfRangePageYieldsNoItems(t *testing.T) {
	items, total := Paginate(sampleArticles(), 3, 9)
	assert.Equal(t, 3, total)
	assert.Empty(t, items)
}

func TestClampPage(t *testing.T) {
	assert.Equal(t, 1, ClampPage(0, 3))
	assert.Equal(t, 1, ClampPage(-2, 3))
	assert.Equal(t, 2, ClampPage(2, 3))
	assert.Equal(t, 3, ClampPage(9, 3))
	assert.Equal(t, 1, ClampPage(5, 0), "zero pages still clamps to 1")
}
