package domain

import (
	"context"
	"fmt"
)

// GenerationSettings tunes a single generation request. The values are
// passed through to the completion capability and never interpreted here.
type GenerationSettings struct {
	Temperature     float32
	TopP            float32
	TopK            int32
	MaxOutputTokens int32
	CandidateCount  int32
}

// SafetySetting maps one harm category to a block threshold, again passed
// through opaquely.
type SafetySetting struct {
	Category  string
	Threshold string
}

// StreamChunk is one element of a streamed generation. A chunk with Err
// set is always the last one delivered on its channel.
type StreamChunk struct {
	Text string
	Err  error
}

// Llm abstracts the completion capability.
type Llm interface {
	// Generate blocks until the capability returns a final result and
	// extracts the first candidate's text. Failures are reported as
	// *BlockedError, *EmptyResponseError, *NonTextResponseError or a
	// wrapped transport error.
	Generate(ctx context.Context, turns []Turn, settings GenerationSettings, safety []SafetySetting) (string, error)

	// GenerateStream produces text fragments as they arrive. The channel
	// is closed after the final chunk; it is finite and non-restartable.
	GenerateStream(ctx context.Context, turns []Turn, settings GenerationSettings, safety []SafetySetting) <-chan StreamChunk

	// SupportsSystemInstruction reports whether the capability accepts a
	// dedicated persona field at construction time. When false, callers
	// must prepend the persona to every outgoing prompt themselves.
	SupportsSystemInstruction() bool
}

// BlockedError reports that the capability refused the prompt outright,
// leaving no candidates.
type BlockedError struct {
	Reason  string
	Message string
}

func (e *BlockedError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("prompt blocked: %s", e.Message)
	}
	return fmt.Sprintf("prompt blocked: %s", e.Reason)
}

// EmptyResponseError reports a response with no candidates and no stated
// block reason.
type EmptyResponseError struct{}

func (e *EmptyResponseError) Error() string {
	return "no candidates in response"
}

// NonTextResponseError reports a candidate that carried no text parts.
type NonTextResponseError struct {
	FinishReason string
}

func (e *NonTextResponseError) Error() string {
	if e.FinishReason != "" {
		return fmt.Sprintf("candidate has no text parts, finish reason %s", e.FinishReason)
	}
	return "candidate has no text parts"
}
