package llm

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/guru-assistant/guru/domain"
)

type GeminiClient struct {
	client  *genai.Client
	model   string
	persona string
}

// NewGeminiClient builds the Gemini-backed completion capability. The
// persona is supplied once here because the SDK has a dedicated
// system-instruction field (see SupportsSystemInstruction). Construction
// failure is returned, not fatal: the caller keeps serving and answers
// chat requests with 503 until restart.
func NewGeminiClient(ctx context.Context, apiKey, model, persona string) (*GeminiClient, error) {
	client, err := genai.NewClient(
		ctx,
		&genai.ClientConfig{
			APIKey:      apiKey,
			Backend:     genai.BackendGeminiAPI,
			HTTPOptions: genai.HTTPOptions{APIVersion: "v1beta"},
		},
	)
	if err != nil {
		return nil, fmt.Errorf("creating genai client: %w", err)
	}
	return &GeminiClient{client: client, model: model, persona: persona}, nil
}

// SupportsSystemInstruction is the explicit capability-negotiation step:
// this adapter always answers from the SDK surface it was compiled
// against rather than probing with a throwaway construction.
func (g *GeminiClient) SupportsSystemInstruction() bool {
	return true
}

func (g *GeminiClient) Generate(
	ctx context.Context,
	turns []domain.Turn,
	settings domain.GenerationSettings,
	safety []domain.SafetySetting,
) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, toContents(turns), g.config(settings, safety))
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}
	return extractText(resp)
}

func (g *GeminiClient) GenerateStream(
	ctx context.Context,
	turns []domain.Turn,
	settings domain.GenerationSettings,
	safety []domain.SafetySetting,
) <-chan domain.StreamChunk {
	out := make(chan domain.StreamChunk)

	go func() {
		defer close(out)
		for resp, err := range g.client.Models.GenerateContentStream(ctx, g.model, toContents(turns), g.config(settings, safety)) {
			if err != nil {
				select {
				case out <- domain.StreamChunk{Err: fmt.Errorf("streaming generate content: %w", err)}:
				case <-ctx.Done():
				}
				return
			}
			text := resp.Text()
			if text == "" {
				continue
			}
			select {
			case out <- domain.StreamChunk{Text: text}:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out
}

func (g *GeminiClient) config(settings domain.GenerationSettings, safety []domain.SafetySetting) *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(settings.Temperature),
		TopP:            genai.Ptr(settings.TopP),
		TopK:            genai.Ptr(float32(settings.TopK)),
		MaxOutputTokens: settings.MaxOutputTokens,
		CandidateCount:  settings.CandidateCount,
	}
	if g.persona != "" {
		cfg.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: g.persona}},
		}
	}
	for _, s := range safety {
		cfg.SafetySettings = append(cfg.SafetySettings, &genai.SafetySetting{
			Category:  genai.HarmCategory(s.Category),
			Threshold: genai.HarmBlockThreshold(s.Threshold),
		})
	}
	return cfg
}

func toContents(turns []domain.Turn) []*genai.Content {
	contents := make([]*genai.Content, len(turns))
	for i, turn := range turns {
		role := genai.RoleModel
		if turn.Role == domain.RoleUser {
			role = genai.RoleUser
		}
		contents[i] = &genai.Content{
			Role:  role,
			Parts: []*genai.Part{{Text: turn.Content}},
		}
	}
	return contents
}

// extractText maps the response shape onto the domain error taxonomy:
// no candidates means blocked or empty, a candidate without text parts
// carries its finish reason.
func extractText(resp *genai.GenerateContentResponse) (string, error) {
	if len(resp.Candidates) == 0 {
		if fb := resp.PromptFeedback; fb != nil && fb.BlockReason != "" {
			return "", &domain.BlockedError{
				Reason:  string(fb.BlockReason),
				Message: fb.BlockReasonMessage,
			}
		}
		return "", &domain.EmptyResponseError{}
	}

	cand := resp.Candidates[0]
	if cand.Content == nil || len(cand.Content.Parts) == 0 {
		return "", nonText(cand.FinishReason)
	}

	var sb strings.Builder
	for _, part := range cand.Content.Parts {
		sb.WriteString(part.Text)
	}
	if sb.Len() == 0 {
		return "", nonText(cand.FinishReason)
	}
	return sb.String(), nil
}

func nonText(reason genai.FinishReason) error {
	if reason != "" && reason != genai.FinishReasonStop {
		return &domain.NonTextResponseError{FinishReason: string(reason)}
	}
	return &domain.NonTextResponseError{}
}
