package catalogapi

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/odyssey-erp/catalog-admin/internal/catalog"
	"github.com/odyssey-erp/catalog-admin/internal/platform/httpx"
)

// Repository stores catalog products.
type Repository interface {
	List(ctx context.Context) ([]catalog.Product, error)
	Create(ctx context.Context, draft catalog.Draft) (catalog.Product, error)
}

// MemoryRepository keeps products in process memory.
type MemoryRepository struct {
	mu       sync.RWMutex
	nextID   int64
	products []catalog.Product
}

// NewMemoryRepository returns a repository seeded with the given products.
func NewMemoryRepository(seed ...catalog.Product) *MemoryRepository {
	repo := &MemoryRepository{}
	for _, p := range seed {
		if p.ID > repo.nextID {
			repo.nextID = p.ID
		}
		repo.products = append(repo.products, p)
	}
	return repo
}

// List returns products in insertion order.
func (r *MemoryRepository) List(ctx context.Context) ([]catalog.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]catalog.Product, len(r.products))
	copy(out, r.products)
	return out, nil
}

// Create stores a new product; names are unique case-insensitively.
func (r *MemoryRepository) Create(ctx context.Context, draft catalog.Draft) (catalog.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.products {
		if strings.EqualFold(p.ProductName, draft.ProductName) {
			return catalog.Product{}, duplicateName(draft.ProductName)
		}
	}
	r.nextID++
	product := catalog.Product{
		ID:          r.nextID,
		ProductName: draft.ProductName,
		Category:    draft.Category,
		Price:       draft.Price,
		Discount:    draft.Discount,
	}
	r.products = append(r.products, product)
	return product, nil
}

func duplicateName(name string) error {
	return fmt.Errorf("product %q already exists: %w", name, httpx.ErrDuplicate)
}
