package mocks

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/mkhoa1412/code-challenge-sub003/internal/domain"
	"github.com/mkhoa1412/code-challenge-sub003/internal/ports"
)

// MockResourceRepository is a mock implementation of ports.ResourceRepository for testing
type MockResourceRepository struct {
	// Mock data storage
	Resources map[int64]*domain.Resource
	nextID    int64

	// Mock behavior flags
	CreateError     error
	GetByIDError    error
	ListError       error
	CategoriesError error
	UpdateError     error
	DeleteError     error

	// Call tracking
	CreateCalls     int
	GetByIDCalls    int
	ListCalls       int
	CategoriesCalls int
	UpdateCalls     int
	DeleteCalls     int
}

// NewMockResourceRepository creates a new mock resource repository
func NewMockResourceRepository() *MockResourceRepository {
	return &MockResourceRepository{
		Resources: make(map[int64]*domain.Resource),
	}
}

func (m *MockResourceRepository) Create(ctx context.Context, name, description, category string, isActive bool) (*domain.Resource, error) {
	m.CreateCalls++
	if m.CreateError != nil {
		return nil, m.CreateError
	}

	m.nextID++
	now := time.Now().UTC()
	resource := &domain.Resource{
		ID:          m.nextID,
		Name:        name,
		Description: description,
		Category:    category,
		IsActive:    isActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	m.Resources[resource.ID] = resource
	return resource, nil
}

func (m *MockResourceRepository) GetByID(ctx context.Context, id int64) (*domain.Resource, error) {
	m.GetByIDCalls++
	if m.GetByIDError != nil {
		return nil, m.GetByIDError
	}

	resource, ok := m.Resources[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return resource, nil
}

func (m *MockResourceRepository) List(ctx context.Context, filters domain.ResourceFilters, limit, offset int) ([]*domain.Resource, int, error) {
	m.ListCalls++
	if m.ListError != nil {
		return nil, 0, m.ListError
	}

	var matched []*domain.Resource
	for _, resource := range m.Resources {
		if filters.Name != "" && !strings.Contains(strings.ToLower(resource.Name), strings.ToLower(filters.Name)) {
			continue
		}
		if filters.Category != "" && resource.Category != filters.Category {
			continue
		}
		if filters.IsActive != nil && resource.IsActive != *filters.IsActive {
			continue
		}
		matched = append(matched, resource)
	}

	// Newest first, like the real repositories / Plus récent d'abord, comme les vrais repositories
	sort.Slice(matched, func(i, j int) bool {
		if matched[i].CreatedAt.Equal(matched[j].CreatedAt) {
			return matched[i].ID > matched[j].ID
		}
		return matched[i].CreatedAt.After(matched[j].CreatedAt)
	})

	total := len(matched)
	if offset >= total {
		return nil, total, nil
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return matched[offset:end], total, nil
}

func (m *MockResourceRepository) Categories(ctx context.Context) ([]string, error) {
	m.CategoriesCalls++
	if m.CategoriesError != nil {
		return nil, m.CategoriesError
	}

	seen := make(map[string]bool)
	for _, resource := range m.Resources {
		if resource.Category != "" && resource.IsActive {
			seen[resource.Category] = true
		}
	}
	categories := make([]string, 0, len(seen))
	for category := range seen {
		categories = append(categories, category)
	}
	sort.Strings(categories)
	return categories, nil
}

func (m *MockResourceRepository) Update(ctx context.Context, id int64, patch domain.ResourcePatch) (*domain.Resource, error) {
	m.UpdateCalls++
	if m.UpdateError != nil {
		return nil, m.UpdateError
	}

	resource, ok := m.Resources[id]
	if !ok {
		return nil, ports.ErrNotFound
	}

	patch.Apply(resource)
	resource.UpdatedAt = time.Now().UTC()
	return resource, nil
}

func (m *MockResourceRepository) Delete(ctx context.Context, id int64) error {
	m.DeleteCalls++
	if m.DeleteError != nil {
		return m.DeleteError
	}

	if _, ok := m.Resources[id]; !ok {
		return ports.ErrNotFound
	}
	delete(m.Resources, id)
	return nil
}

func (m *MockResourceRepository) WithTx(dbtx ports.DBTX) ports.ResourceRepository {
	return m
}
