package usecase

import (
	"math/rand/v2"

	"github.com/guru-assistant/guru/domain"
)

var (
	empatheticPhrases = []string{
		"I understand this might be frustrating. ",
		"I'm sorry to hear that. ",
		"Let's try to sort this out. ",
	}
	encouragingPhrases = []string{
		"Great to hear! ",
		"That's wonderful! ",
		"Awesome! ",
	}
)

// ResponseModifier adapts a reply's tone to the user's detected
// sentiment by prefixing a matching phrase. Neutral sentiment passes the
// reply through unchanged.
type ResponseModifier struct{}

func (ResponseModifier) Modify(reply string, userSentiment domain.Sentiment) string {
	switch userSentiment.Label {
	case domain.SentimentNegative:
		return empatheticPhrases[rand.IntN(len(empatheticPhrases))] + reply
	case domain.SentimentPositive:
		return encouragingPhrases[rand.IntN(len(encouragingPhrases))] + reply
	default:
		return reply
	}
}
