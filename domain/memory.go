package domain

// Fact is one key/value pair held in long-term memory.
type Fact struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// MemoryStore keeps facts beyond the rolling conversation window. The
// shipped implementation is in-process only; nothing is persisted.
type MemoryStore interface {
	StoreFact(key, value string)
	RetrieveFact(key string) (string, bool)

	// SearchRelatedFacts returns up to topK facts whose key or value
	// contains the query, in insertion order.
	SearchRelatedFacts(query string, topK int) []Fact
}
