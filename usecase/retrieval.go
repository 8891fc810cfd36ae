package usecase

import (
	"fmt"
	"strings"

	"github.com/guru-assistant/guru/domain"
)

const (
	retrievalHistoryTurns = 5
	retrievalFactLimit    = 2
)

// ContextRetriever assembles the context block for the current turn from
// the recent conversation window and related long-term facts.
type ContextRetriever struct {
	history *domain.History
	memory  domain.MemoryStore
}

func NewContextRetriever(history *domain.History, memory domain.MemoryStore) *ContextRetriever {
	return &ContextRetriever{history: history, memory: memory}
}

// RelevantContext returns a labelled context block for the query, or ""
// when neither history nor memory has anything to contribute.
func (r *ContextRetriever) RelevantContext(query string, searchLongTerm bool) string {
	var parts []string

	turns := r.history.History()
	if len(turns) > 0 {
		start := len(turns) - retrievalHistoryTurns
		if start < 0 {
			start = 0
		}
		lines := make([]string, 0, retrievalHistoryTurns)
		for _, turn := range turns[start:] {
			lines = append(lines, fmt.Sprintf("%s: %s", turn.Role, turn.Content))
		}
		parts = append(parts, "Recent Conversation:\n"+strings.Join(lines, "\n"))
	}

	if r.memory != nil && searchLongTerm {
		facts := r.memory.SearchRelatedFacts(query, retrievalFactLimit)
		if len(facts) > 0 {
			lines := make([]string, 0, len(facts))
			for _, fact := range facts {
				lines = append(lines, fmt.Sprintf("- %s: %s", fact.Key, fact.Value))
			}
			parts = append(parts, "Relevant Information:\n"+strings.Join(lines, "\n"))
		}
	}

	return strings.Join(parts, "\n\n")
}
