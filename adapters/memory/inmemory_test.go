package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/guru-assistant/guru/domain"
)

func TestStoreAndRetrieve(t *testing.T) {
	s := NewStore()
	s.StoreFact("user_name", "Aryaman")

	value, ok := s.RetrieveFact("user_name")
	require.True(t, ok)
	assert.Equal(t, "Aryaman", value)

	_, ok = s.RetrieveFact("missing")
	assert.False(t, ok)
}

func TestStoreOverwrites(t *testing.T) {
	s := NewStore()
	s.StoreFact("topic", "tea")
	s.StoreFact("topic", "coffee")

	value, _ := s.RetrieveFact("topic")
	assert.Equal(t, "coffee", value)
	assert.Len(t, s.SearchRelatedFacts("topic", 10), 1)
}

func TestSearchRelatedFacts(t *testing.T) {
	s := NewStore()
	s.StoreFact("user_preference_topic", "AI technology")
	s.StoreFact("important_meeting_date", "2024-12-25")
	s.StoreFact("ai_project_goal", "conversational AI")

	got := s.SearchRelatedFacts("AI", 3)
	assert.Equal(t, []domain.Fact{
		{Key: "user_preference_topic", Value: "AI technology"},
		{Key: "ai_project_goal", Value: "conversational AI"},
	}, got, "matches key or value, case-insensitive, insertion order")

	assert.Len(t, s.SearchRelatedFacts("AI", 1), 1)
	assert.Empty(t, s.SearchRelatedFacts("unrelated", 3))
}
