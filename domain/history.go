package domain

import "sync"

// DefaultHistoryLength is the number of turns kept when no explicit
// capacity is configured.
const DefaultHistoryLength = 10

// summarizeThreshold is the turn count past which SummarizeHint suggests
// compacting the conversation.
const summarizeThreshold = 5

// History keeps the most recent turns of a single conversation, bounded
// at a fixed capacity with FIFO eviction. The HTTP layer and the live
// websocket feed share one instance, so all methods take the lock.
type History struct {
	mu    sync.Mutex
	turns []Turn
	max   int
}

func NewHistory(maxLen int) *History {
	if maxLen <= 0 {
		maxLen = DefaultHistoryLength
	}
	return &History{max: maxLen}
}

// AddMessage appends one turn after normalizing its role. The legacy
// "assistant" label is stored as RoleModel; any other unrecognized label
// fails with ErrInvalidRole and leaves the history untouched. After the
// append the oldest turns are discarded until length <= capacity.
func (h *History) AddMessage(role, content string) error {
	r, err := NormalizeRole(role)
	if err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.turns = append(h.turns, Turn{Role: r, Content: content})
	if excess := len(h.turns) - h.max; excess > 0 {
		kept := make([]Turn, h.max)
		copy(kept, h.turns[excess:])
		h.turns = kept
	}
	return nil
}

// History returns a copy of the turns in insertion order. Mutating the
// returned slice never affects internal state.
func (h *History) History() []Turn {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]Turn, len(h.turns))
	copy(out, h.turns)
	return out
}

// Clear resets the history to an empty sequence.
func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.turns = nil
}

func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.turns)
}

// ContextWindow returns the turns to send upstream for a given size
// budget. Known simplification carried over from the previous
// implementation: the budget is ignored and the full history is
// returned. Real budget-aware truncation needs a tokenizer.
func (h *History) ContextWindow(budget int) []Turn {
	_ = budget
	return h.History()
}

// SummarizeHint reports whether the conversation has grown long enough
// that older turns are worth compacting. It never calls the model; the
// returned hint is advisory text only.
func (h *History) SummarizeHint() string {
	if h.Len() > summarizeThreshold {
		return "Conversation is getting long, a summary of older turns may be needed."
	}
	return ""
}
