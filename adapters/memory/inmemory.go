// Package memory provides the long-term fact store. This implementation
// is in-process only; persistence is intentionally out of scope.
package memory

import (
	"strings"
	"sync"

	"github.com/guru-assistant/guru/domain"
)

// Store keeps facts in insertion order so search results are stable.
type Store struct {
	mu    sync.RWMutex
	keys  []string
	facts map[string]string
}

func NewStore() *Store {
	return &Store{facts: make(map[string]string)}
}

func (s *Store) StoreFact(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.facts[key]; !exists {
		s.keys = append(s.keys, key)
	}
	s.facts[key] = value
}

func (s *Store) RetrieveFact(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	value, ok := s.facts[key]
	return value, ok
}

// SearchRelatedFacts does a naive case-insensitive substring match over
// keys and values, returning at most topK facts in insertion order.
func (s *Store) SearchRelatedFacts(query string, topK int) []domain.Fact {
	s.mu.RLock()
	defer s.mu.RUnlock()

	needle := strings.ToLower(query)
	var results []domain.Fact
	for _, key := range s.keys {
		value := s.facts[key]
		if strings.Contains(strings.ToLower(key), needle) || strings.Contains(strings.ToLower(value), needle) {
			results = append(results, domain.Fact{Key: key, Value: value})
			if len(results) >= topK {
				break
			}
		}
	}
	return results
}
