package income

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

// CostStore persists per-product unit costs in a JSON file keyed by product
// name. Unknown products cost 0, so an incomplete ledger degrades the profit
// figures instead of failing the report.
type CostStore struct {
	mu    sync.RWMutex
	path  string
	costs map[string]float64
}

// NewCostStore opens (or initializes) the ledger at path. A missing or
// unreadable file starts an empty ledger.
func NewCostStore(path string) *CostStore {
	s := &CostStore{path: path, costs: make(map[string]float64)}

	data, err := os.ReadFile(path)
	if err != nil {
		return s
	}
	var costs map[string]float64
	if err := json.Unmarshal(data, &costs); err == nil && costs != nil {
		s.costs = costs
	}
	return s
}

// Get returns the unit cost for a product, 0 when unknown.
func (s *CostStore) Get(product string) float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.costs[product]
}

// Set records a non-negative unit cost and persists the ledger.
func (s *CostStore) Set(product string, cost float64) error {
	if product == "" {
		return fmt.Errorf("product name is empty")
	}
	if cost < 0 {
		return fmt.Errorf("cost must be non-negative, got %.2f", cost)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.costs[product] = cost
	return s.save()
}

// Delete removes a product from the ledger and persists it.
func (s *CostStore) Delete(product string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.costs, product)
	return s.save()
}

// Products lists the known product names in sorted order.
func (s *CostStore) Products() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.costs))
	for name := range s.costs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (s *CostStore) save() error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create ledger directory: %w", err)
		}
	}

	data, err := json.MarshalIndent(s.costs, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal cost ledger: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0644); err != nil {
		return fmt.Errorf("write cost ledger: %w", err)
	}
	return nil
}
