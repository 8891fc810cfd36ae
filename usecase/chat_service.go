package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/guru-assistant/guru/domain"
	"github.com/guru-assistant/guru/utils/log"
)

const (
	// ReplyTopic carries a domain.ReplyEvent for every completed model turn.
	ReplyTopic = "chat.replies"

	apologyText = "Sorry, I couldn't generate a response this time. Please try again."
)

// ChatService is the relay between one user turn, the completion
// capability and the conversation history. It is the single component
// that swallows upstream failures and re-encodes them as readable text;
// nothing it returns is ever a raw error.
type ChatService struct {
	llm      domain.Llm
	history  *domain.History
	broker   domain.MessageBroker
	analyzer domain.SentimentAnalyzer

	persona  string
	settings domain.GenerationSettings
	safety   []domain.SafetySetting

	proc      Processor
	modifier  ResponseModifier
	retriever *ContextRetriever
}

func NewChatService(
	llm domain.Llm,
	history *domain.History,
	broker domain.MessageBroker,
	analyzer domain.SentimentAnalyzer,
	memory domain.MemoryStore,
	persona string,
	settings domain.GenerationSettings,
	safety []domain.SafetySetting,
) *ChatService {
	return &ChatService{
		llm:       llm,
		history:   history,
		broker:    broker,
		analyzer:  analyzer,
		persona:   persona,
		settings:  settings,
		safety:    safety,
		retriever: NewContextRetriever(history, memory),
	}
}

func (s *ChatService) History() *domain.History {
	return s.history
}

// Reply handles one user turn without streaming. The returned string is
// always user-visible text; upstream failures are converted to readable
// sentences instead of propagating.
func (s *ChatService) Reply(ctx context.Context, message string) string {
	if err := s.history.AddMessage(string(domain.RoleUser), message); err != nil {
		// Unreachable with a constant role; kept as a contract check.
		log.WithCtx(ctx).Error("recording user turn", zap.Error(err))
	}

	turns := s.withPersona(s.history.ContextWindow(0))
	text, err := s.llm.Generate(ctx, turns, s.settings, s.safety)
	if err != nil {
		log.WithCtx(ctx).Warn("generation failed", zap.Error(err))
		return s.describeFailure(err)
	}

	reply := s.proc.Normalize(text)
	if reply == "" {
		return apologyText
	}

	s.recordReply(ctx, message, reply)
	return reply
}

// StreamReply handles one user turn as a lazy, finite sequence of
// normalized fragments. The channel always closes cleanly: a mid-stream
// transport failure yields one final human-readable error fragment. When
// the stream completes normally the concatenated reply is appended to
// history exactly once; an empty concatenation is replaced by an apology
// fragment instead of an empty turn.
func (s *ChatService) StreamReply(ctx context.Context, message string) <-chan string {
	if err := s.history.AddMessage(string(domain.RoleUser), message); err != nil {
		log.WithCtx(ctx).Error("recording user turn", zap.Error(err))
	}

	turns := s.withPersona(s.history.ContextWindow(0))
	out := make(chan string)

	go func() {
		defer close(out)

		var full strings.Builder
		for chunk := range s.llm.GenerateStream(ctx, turns, s.settings, s.safety) {
			if chunk.Err != nil {
				log.WithCtx(ctx).Warn("stream interrupted", zap.Error(chunk.Err))
				s.emit(ctx, out, "Error: Could not stream AI response. "+chunk.Err.Error())
				return
			}
			fragment := s.proc.Normalize(chunk.Text)
			if fragment == "" {
				continue
			}
			full.WriteString(fragment)
			if !s.emit(ctx, out, fragment) {
				return
			}
		}

		if full.Len() == 0 {
			s.emit(ctx, out, apologyText)
			return
		}
		s.recordReply(ctx, message, full.String())
	}()

	return out
}

// Ask services a wake-word activated request from the live feed. Unlike
// the HTTP chat path it folds retrieved context into a single-string
// prompt and adapts the reply tone to the user's sentiment.
func (s *ChatService) Ask(ctx context.Context, query string) string {
	sentiment := s.analyze(query)
	contextBlock := s.retriever.RelevantContext(query, true)
	prompt := s.proc.FormatPrompt(query, nil, contextBlock)

	if !s.llm.SupportsSystemInstruction() && !strings.HasPrefix(prompt, s.persona) {
		prompt = s.persona + "\n\n" + prompt
	}

	if err := s.history.AddMessage(string(domain.RoleUser), query); err != nil {
		log.WithCtx(ctx).Error("recording user turn", zap.Error(err))
	}

	text, err := s.llm.Generate(ctx, []domain.Turn{{Role: domain.RoleUser, Content: prompt}}, s.settings, s.safety)
	if err != nil {
		log.WithCtx(ctx).Warn("generation failed", zap.Error(err))
		return s.describeFailure(err)
	}

	reply := s.proc.Normalize(text)
	if reply == "" {
		return apologyText
	}
	reply = s.modifier.Modify(reply, sentiment)

	s.recordReply(ctx, query, reply)
	return reply
}

func (s *ChatService) analyze(text string) domain.Sentiment {
	if s.analyzer == nil {
		return domain.Sentiment{Label: domain.SentimentNeutral}
	}
	return s.analyzer.Analyze(text)
}

// emit delivers one fragment unless the caller has gone away.
func (s *ChatService) emit(ctx context.Context, out chan<- string, fragment string) bool {
	select {
	case out <- fragment:
		return true
	case <-ctx.Done():
		log.WithCtx(ctx).Debug("caller gone, dropping fragment")
		return false
	}
}

// recordReply appends the completed model turn and announces it on the
// broker for live-feed subscribers.
func (s *ChatService) recordReply(ctx context.Context, userText, reply string) {
	if err := s.history.AddMessage(string(domain.RoleModel), reply); err != nil {
		log.WithCtx(ctx).Error("recording model turn", zap.Error(err))
	}

	if s.broker == nil {
		return
	}
	event := domain.ReplyEvent{
		UserText:  userText,
		ReplyText: reply,
		Sentiment: s.analyze(userText).Label,
		Timestamp: time.Now(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		log.WithCtx(ctx).Error("marshaling reply event", zap.Error(err))
		return
	}
	if err := s.broker.Publish(ctx, ReplyTopic, "", payload); err != nil {
		log.WithCtx(ctx).Warn("publishing reply event", zap.Error(err))
	}
}

// withPersona prepends the persona as a synthetic leading turn when the
// capability has no native system-instruction field. The prepend is
// deduplicated so the persona never appears twice in one prompt.
func (s *ChatService) withPersona(turns []domain.Turn) []domain.Turn {
	if s.llm.SupportsSystemInstruction() || s.persona == "" {
		return turns
	}
	if len(turns) > 0 && turns[0].Content == s.persona {
		return turns
	}
	out := make([]domain.Turn, 0, len(turns)+1)
	out = append(out, domain.Turn{Role: domain.RoleUser, Content: s.persona})
	return append(out, turns...)
}

// describeFailure converts a typed upstream error into the sentence shown
// to the user. The conversation continues; nothing here escalates.
func (s *ChatService) describeFailure(err error) string {
	var (
		blocked *domain.BlockedError
		empty   *domain.EmptyResponseError
		nonText *domain.NonTextResponseError
	)
	switch {
	case errors.As(err, &blocked):
		if blocked.Message != "" {
			return "Blocked due to: " + blocked.Message
		}
		return "Blocked due to: " + blocked.Reason
	case errors.As(err, &empty):
		return "No response generated. The prompt might have been blocked or resulted in empty candidates."
	case errors.As(err, &nonText):
		if nonText.FinishReason != "" {
			return fmt.Sprintf("Generation failed or was blocked. Finish Reason: %s", nonText.FinishReason)
		}
		return "Received an empty or non-text response part."
	default:
		return "Error generating response: " + err.Error()
	}
}
