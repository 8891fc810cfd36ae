package usecase

import (
	"fmt"
	"strings"

	"github.com/guru-assistant/guru/domain"
)

// promptHistoryTurns is how many trailing turns FormatPrompt inlines.
const promptHistoryTurns = 3

// Processor handles prompt formatting and cleanup of model output beyond
// what the capability itself does.
type Processor struct{}

// Normalize trims surrounding whitespace and strips emphasis markers
// (asterisks) wherever they appear. Stateless and idempotent; applied to
// every fragment and atomic result before delivery.
func (Processor) Normalize(s string) string {
	return strings.TrimSpace(strings.ReplaceAll(s, "*", ""))
}

// FormatPrompt folds the user query, the trailing conversation history
// and any retrieved context into a single-string prompt.
func (Processor) FormatPrompt(query string, history []domain.Turn, contextData string) string {
	prompt := query
	if len(history) > 0 {
		start := len(history) - promptHistoryTurns
		if start < 0 {
			start = 0
		}
		lines := make([]string, 0, promptHistoryTurns)
		for _, turn := range history[start:] {
			lines = append(lines, fmt.Sprintf("%s: %s", turn.Role, turn.Content))
		}
		prompt = fmt.Sprintf("Conversation History:\n%s\n\nUser: %s", strings.Join(lines, "\n"), query)
	}
	if contextData != "" {
		prompt += "\n\nRelevant Information: " + contextData
	}
	return prompt
}
