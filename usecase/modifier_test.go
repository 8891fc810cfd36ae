package usecase

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/guru-assistant/guru/domain"
)

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(s, p) {
			return true
		}
	}
	return false
}

func TestModifyNegativeSentiment(t *testing.T) {
	var m ResponseModifier
	got := m.Modify("I can help with that.", domain.Sentiment{Label: domain.SentimentNegative})

	assert.True(t, hasAnyPrefix(got, empatheticPhrases), "got %q", got)
	assert.True(t, strings.HasSuffix(got, "I can help with that."))
}

func TestModifyPositiveSentiment(t *testing.T) {
	var m ResponseModifier
	got := m.Modify("I can help with that.", domain.Sentiment{Label: domain.SentimentPositive})

	assert.True(t, hasAnyPrefix(got, encouragingPhrases), "got %q", got)
}

func TestModifyNeutralPassesThrough(t *testing.T) {
	var m ResponseModifier
	assert.Equal(t, "unchanged", m.Modify("unchanged", domain.Sentiment{Label: domain.SentimentNeutral}))
	assert.Equal(t, "unchanged", m.Modify("unchanged", domain.Sentiment{}))
}
