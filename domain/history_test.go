package domain

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryAddAndGet(t *testing.T) {
	h := NewHistory(3)

	require.NoError(t, h.AddMessage("user", "hi"))
	require.NoError(t, h.AddMessage("model", "hello"))

	assert.Equal(t, []Turn{
		{Role: RoleUser, Content: "hi"},
		{Role: RoleModel, Content: "hello"},
	}, h.History())
}

func TestHistoryBoundedLength(t *testing.T) {
	h := NewHistory(4)

	for i := 0; i < 20; i++ {
		require.NoError(t, h.AddMessage("user", fmt.Sprintf("turn %d", i)))
		assert.LessOrEqual(t, h.Len(), 4, "length bound must hold after every append")
	}
}

func TestHistoryFIFOEviction(t *testing.T) {
	h := NewHistory(2)

	require.NoError(t, h.AddMessage("user", "first"))
	require.NoError(t, h.AddMessage("model", "second"))
	require.NoError(t, h.AddMessage("user", "third"))

	assert.Equal(t, []Turn{
		{Role: RoleModel, Content: "second"},
		{Role: RoleUser, Content: "third"},
	}, h.History(), "only the most recent turns survive, in original order")
}

func TestHistoryDefensiveCopy(t *testing.T) {
	h := NewHistory(5)
	require.NoError(t, h.AddMessage("user", "original"))

	got := h.History()
	got[0].Content = "mutated"

	assert.Equal(t, "original", h.History()[0].Content)
}

func TestHistoryAssistantNormalized(t *testing.T) {
	h := NewHistory(5)
	require.NoError(t, h.AddMessage("assistant", "ok"))

	turns := h.History()
	require.Len(t, turns, 1)
	assert.Equal(t, RoleModel, turns[0].Role)
}

func TestHistoryInvalidRoleAtomic(t *testing.T) {
	h := NewHistory(5)
	require.NoError(t, h.AddMessage("user", "hi"))

	err := h.AddMessage("narrator", "nope")
	require.ErrorIs(t, err, ErrInvalidRole)
	assert.Equal(t, 1, h.Len(), "failed append must leave history unchanged")
}

func TestHistoryClear(t *testing.T) {
	h := NewHistory(5)
	require.NoError(t, h.AddMessage("user", "hi"))

	h.Clear()
	assert.Empty(t, h.History())
}

func TestContextWindowIgnoresBudget(t *testing.T) {
	h := NewHistory(10)
	for i := 0; i < 6; i++ {
		require.NoError(t, h.AddMessage("user", fmt.Sprintf("turn %d", i)))
	}

	// Documented no-op: the budget is not applied.
	assert.Equal(t, h.History(), h.ContextWindow(1))
}

func TestSummarizeHint(t *testing.T) {
	h := NewHistory(10)
	assert.Empty(t, h.SummarizeHint())

	for i := 0; i < 6; i++ {
		require.NoError(t, h.AddMessage("user", "x"))
	}
	assert.NotEmpty(t, h.SummarizeHint())
}

func TestNormalizeRole(t *testing.T) {
	for raw, want := range map[string]Role{
		"user":      RoleUser,
		"model":     RoleModel,
		"assistant": RoleModel,
	} {
		got, err := NormalizeRole(raw)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	_, err := NormalizeRole("system")
	assert.ErrorIs(t, err, ErrInvalidRole)
}
