package transform

import (
	"fmt"
	"sync"

	"paldata/pkg/contracts/domain"
)

// Registry holds one transformer per category. Category-specific behavior
// is dispatched through this lookup table; there is no subclassing.
type Registry struct {
	mu           sync.RWMutex
	transformers map[domain.Category]Transformer
	order        []domain.Category // registration order
}

// NewRegistry creates an empty transformer registry.
func NewRegistry() *Registry {
	return &Registry{
		transformers: make(map[domain.Category]Transformer),
	}
}

// DefaultRegistry returns a registry with the built-in transformers
// registered.
func DefaultRegistry(analyzer IndicatorAnalyzer) *Registry {
	r := NewRegistry()
	_ = r.Register(NewConflictTransformer())
	_ = r.Register(NewIndicatorTransformer(domain.CategoryEconomic, analyzer))
	_ = r.Register(NewIndicatorTransformer(domain.CategoryHealth, analyzer))
	_ = r.Register(NewIndicatorTransformer(domain.CategoryEducation, analyzer))
	_ = r.Register(NewIndicatorTransformer(domain.CategoryWater, analyzer))
	return r
}

// Register adds a transformer to the registry.
func (r *Registry) Register(t Transformer) error {
	if t == nil {
		return fmt.Errorf("cannot register nil transformer")
	}
	category := t.Category()
	if category == "" {
		return fmt.Errorf("transformer category cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.transformers[category]; exists {
		return fmt.Errorf("transformer for category %s already registered", category)
	}
	r.transformers[category] = t
	r.order = append(r.order, category)
	return nil
}

// Get retrieves the transformer for a category.
func (r *Registry) Get(category domain.Category) (Transformer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	t, exists := r.transformers[category]
	if !exists {
		return nil, fmt.Errorf("no transformer registered for category %s", category)
	}
	return t, nil
}

// Categories returns the registered categories in registration order.
func (r *Registry) Categories() []domain.Category {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Category, len(r.order))
	copy(out, r.order)
	return out
}
