package llm

import "github.com/guru-assistant/guru/domain"

const DefaultModelName = "gemini-1.5-flash"

// SystemInstruction steers the model's tone. Supplied once at client
// construction; relays only prepend it to prompts when talking to a
// capability without a native system-instruction field.
const SystemInstruction = `You are GURU, a witty and insightful AI assistant. ` +
	`You answer concisely, with warmth and a light touch of humor, and you ` +
	`never invent facts you are not sure about. When a question is ambiguous ` +
	`you ask for clarification instead of guessing.`

var DefaultGenerationSettings = domain.GenerationSettings{
	Temperature:     0.7,
	TopP:            1.0,
	TopK:            32,
	MaxOutputTokens: 1024,
	CandidateCount:  1,
}

var DefaultSafetySettings = []domain.SafetySetting{
	{Category: "HARM_CATEGORY_HARASSMENT", Threshold: "BLOCK_MEDIUM_AND_ABOVE"},
	{Category: "HARM_CATEGORY_HATE_SPEECH", Threshold: "BLOCK_MEDIUM_AND_ABOVE"},
	{Category: "HARM_CATEGORY_SEXUALLY_EXPLICIT", Threshold: "BLOCK_MEDIUM_AND_ABOVE"},
	{Category: "HARM_CATEGORY_DANGEROUS_CONTENT", Threshold: "BLOCK_MEDIUM_AND_ABOVE"},
}
