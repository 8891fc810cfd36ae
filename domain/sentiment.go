package domain

// Sentiment labels recognized by the analyzer and the response modifier.
const (
	SentimentPositive = "positive"
	SentimentNegative = "negative"
	SentimentNeutral  = "neutral"
)

// Sentiment is the outcome of analyzing one piece of user text.
type Sentiment struct {
	Polarity     float64
	Subjectivity float64
	Label        string
}

// SentimentAnalyzer scores the emotional tone of user text. The shipped
// implementation is a keyword lookup, not a trained model.
type SentimentAnalyzer interface {
	Analyze(text string) Sentiment
}
