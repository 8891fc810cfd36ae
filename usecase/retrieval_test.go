package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guru-assistant/guru/adapters/memory"
	"github.com/guru-assistant/guru/domain"
)

func TestRelevantContextEmpty(t *testing.T) {
	r := NewContextRetriever(domain.NewHistory(10), memory.NewStore())
	assert.Empty(t, r.RelevantContext("anything", true))
}

func TestRelevantContextCombinesSources(t *testing.T) {
	history := domain.NewHistory(10)
	require.NoError(t, history.AddMessage("user", "my name is Alex"))
	require.NoError(t, history.AddMessage("model", "nice to meet you, Alex"))

	store := memory.NewStore()
	store.StoreFact("user_name", "Alex")
	store.StoreFact("favorite_drink", "coffee")

	r := NewContextRetriever(history, store)
	got := r.RelevantContext("alex", true)

	assert.Contains(t, got, "Recent Conversation:")
	assert.Contains(t, got, "user: my name is Alex")
	assert.Contains(t, got, "Relevant Information:")
	assert.Contains(t, got, "- user_name: Alex")
	assert.NotContains(t, got, "favorite_drink")
}

func TestRelevantContextSkipsLongTerm(t *testing.T) {
	history := domain.NewHistory(10)
	require.NoError(t, history.AddMessage("user", "hello"))

	store := memory.NewStore()
	store.StoreFact("greeting", "hello world")

	r := NewContextRetriever(history, store)
	got := r.RelevantContext("hello", false)

	assert.Contains(t, got, "Recent Conversation:")
	assert.NotContains(t, got, "Relevant Information:")
}
