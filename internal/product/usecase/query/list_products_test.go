package query

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pandamarket/backend/internal/product/domain"
)

// fakeProductRepository serves a fixed slice with keyword filtering and
// limit/offset windowing
type fakeProductRepository struct {
	products []domain.Product
}

func (f *fakeProductRepository) Create(*domain.Product) error { return nil }
func (f *fakeProductRepository) Update(*domain.Product) error { return nil }
func (f *fakeProductRepository) Delete(uint) error            { return nil }

func (f *fakeProductRepository) FindByID(uint) (*domain.Product, error) {
	return nil, domain.ErrNotFound
}

func (f *fakeProductRepository) matching(keyword string) []domain.Product {
	if keyword == "" {
		return f.products
	}
	var out []domain.Product
	for _, p := range f.products {
		if strings.Contains(p.Name, keyword) {
			out = append(out, p)
		}
	}
	return out
}

func (f *fakeProductRepository) FindAll(params domain.ListParams) ([]domain.Product, error) {
	rows := f.matching(params.Keyword)
	if params.Offset >= len(rows) {
		return []domain.Product{}, nil
	}
	rows = rows[params.Offset:]
	if params.Limit < len(rows) {
		rows = rows[:params.Limit]
	}
	return rows, nil
}

func (f *fakeProductRepository) Count(keyword string) (int64, error) {
	return int64(len(f.matching(keyword))), nil
}

func newFakeRepo(n int) *fakeProductRepository {
	repo := &fakeProductRepository{}
	for i := 0; i < n; i++ {
		repo.products = append(repo.products, domain.Product{ID: uint(i + 1), Name: "chair"})
	}
	return repo
}

func TestListProductsPaging(t *testing.T) {
	handler := NewListProductsHandler(newFakeRepo(12))

	page, err := handler.Handle(ListProductsQuery{Page: 1, PageSize: 5})
	require.NoError(t, err)
	assert.Len(t, page.Items, 5)
	assert.Equal(t, int64(12), page.TotalCount)
	assert.True(t, page.HasMore)

	page, err = handler.Handle(ListProductsQuery{Page: 3, PageSize: 5})
	require.NoError(t, err)
	assert.Len(t, page.Items, 2)
	assert.False(t, page.HasMore)
}

func TestListProductsDefaults(t *testing.T) {
	handler := NewListProductsHandler(newFakeRepo(15))

	// Page and size fall back to 1 and 10
	page, err := handler.Handle(ListProductsQuery{})
	require.NoError(t, err)
	assert.Len(t, page.Items, 10)
	assert.True(t, page.HasMore)
}

func TestListProductsUnknownOrder(t *testing.T) {
	handler := NewListProductsHandler(newFakeRepo(1))

	_, err := handler.Handle(ListProductsQuery{Order: "upside-down"})
	assert.Error(t, err)
}
