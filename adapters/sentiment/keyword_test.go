package sentiment

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/guru-assistant/guru/domain"
)

func TestAnalyzeLabels(t *testing.T) {
	a := NewKeywordAnalyzer()

	cases := map[string]string{
		"GURU is a wonderfully GREAT assistant": domain.SentimentPositive,
		"I am very unhappy, this is bad":        domain.SentimentNegative,
		"this is a factual statement":           domain.SentimentNeutral,
		"":                                      domain.SentimentNeutral,
		"   \t  ":                               domain.SentimentNeutral,
	}
	for text, want := range cases {
		assert.Equal(t, want, a.Analyze(text).Label, "text %q", text)
	}
}

func TestAnalyzeStrongestKeywordWins(t *testing.T) {
	a := NewKeywordAnalyzer()

	got := a.Analyze("it was bad but I hate the ending most")
	assert.Equal(t, domain.SentimentNegative, got.Label)
	assert.Equal(t, -0.75, got.Polarity)
}
