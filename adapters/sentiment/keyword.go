// Package sentiment scores text with a hard-coded keyword lexicon. It
// stands in for a real model and deliberately performs no NLP.
package sentiment

import (
	"strings"

	"github.com/guru-assistant/guru/domain"
)

// polarity thresholds for labelling.
const (
	positiveCutoff = 0.1
	negativeCutoff = -0.1
)

var lexicon = map[string]float64{
	"happy":     0.8,
	"great":     0.8,
	"love":      0.85,
	"excellent": 0.85,
	"sad":       -0.6,
	"bad":       -0.6,
	"hate":      -0.75,
	"terrible":  -0.75,
}

type KeywordAnalyzer struct{}

func NewKeywordAnalyzer() *KeywordAnalyzer {
	return &KeywordAnalyzer{}
}

// Analyze returns the strongest keyword hit's polarity. Empty or
// whitespace-only text is neutral.
func (a *KeywordAnalyzer) Analyze(text string) domain.Sentiment {
	if strings.TrimSpace(text) == "" {
		return domain.Sentiment{Label: domain.SentimentNeutral}
	}

	lowered := strings.ToLower(text)
	var polarity float64
	for word, score := range lexicon {
		if strings.Contains(lowered, word) && abs(score) > abs(polarity) {
			polarity = score
		}
	}

	label := domain.SentimentNeutral
	switch {
	case polarity > positiveCutoff:
		label = domain.SentimentPositive
	case polarity < negativeCutoff:
		label = domain.SentimentNegative
	}

	return domain.Sentiment{Polarity: polarity, Subjectivity: 0.5, Label: label}
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}
