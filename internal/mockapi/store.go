package mockapi

import (
	"sync"

	"github.com/google/uuid"

	"reytech/internal/domain"
	apperrors "reytech/internal/errors"
)

const msgProductNotFound = "Produto não encontrado"

// Store keeps products in memory in insertion order.
type Store struct {
	mu       sync.RWMutex
	order    []domain.ProductID
	products map[domain.ProductID]domain.Product
}

func NewStore() *Store {
	return &Store{
		products: make(map[domain.ProductID]domain.Product),
	}
}

func (s *Store) List() []domain.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()

	products := make([]domain.Product, 0, len(s.order))
	for _, id := range s.order {
		products = append(products, s.products[id])
	}
	return products
}

func (s *Store) Get(id domain.ProductID) (domain.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[id]
	if !ok {
		return domain.Product{}, apperrors.NewNotFoundError(msgProductNotFound)
	}
	return p, nil
}

// Create stores p under a fresh id and returns the stored product.
func (s *Store) Create(p domain.Product) domain.Product {
	s.mu.Lock()
	defer s.mu.Unlock()

	p.ID = domain.ProductID(uuid.NewString())
	s.products[p.ID] = p
	s.order = append(s.order, p.ID)
	return p
}

// Update applies fn to a copy of the product and stores the copy if fn
// succeeds. The id cannot be changed.
func (s *Store) Update(id domain.ProductID, fn func(p *domain.Product) error) (domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[id]
	if !ok {
		return domain.Product{}, apperrors.NewNotFoundError(msgProductNotFound)
	}

	if err := fn(&p); err != nil {
		return domain.Product{}, err
	}
	p.ID = id

	s.products[id] = p
	return p, nil
}

// Delete removes the product and returns what was stored.
func (s *Store) Delete(id domain.ProductID) (domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.products[id]
	if !ok {
		return domain.Product{}, apperrors.NewNotFoundError(msgProductNotFound)
	}

	delete(s.products, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	return p, nil
}
