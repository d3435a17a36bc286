package systems

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/worldmind-ai/worldmind/internal/model"
	"github.com/worldmind-ai/worldmind/internal/retrieve"
)

const llmSystemPrompt = "You are a careful fact checker. Answer the question " +
	"using ONLY the provided facts. Reply with exactly one word: YES, NO or " +
	"UNKNOWN. If the facts neither confirm nor deny the claim, reply UNKNOWN."

// LLM answers cards with a chat-completion model. The context block
// combines the card's facts with retrieved graph context when a
// retriever is configured.
type LLM struct {
	client    *openai.Client
	cfg       model.LLMConfig
	retriever *retrieve.Retriever
}

// NewLLM creates the LLM prediction system. The retriever is optional.
func NewLLM(cfg model.LLMConfig, r *retrieve.Retriever) (*LLM, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("llm system requires an API key")
	}
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}
	return &LLM{
		client:    openai.NewClientWithConfig(clientConfig),
		cfg:       cfg,
		retriever: r,
	}, nil
}

func (l *LLM) Name() string { return "llm" }

// RateKey marks the system for outbound rate limiting
func (l *LLM) RateKey() string { return "llm" }

func (l *LLM) Answer(ctx context.Context, card model.Card) (model.Verdict, error) {
	timeout := time.Duration(l.cfg.Timeout) * time.Second
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	llmModel := l.cfg.Model
	if llmModel == "" {
		llmModel = openai.GPT4oMini
	}
	maxTokens := l.cfg.MaxTokens
	if maxTokens == 0 {
		maxTokens = 16
	}

	resp, err := l.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: llmModel,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: llmSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: l.prompt(card)},
		},
		MaxTokens:   maxTokens,
		Temperature: 0,
	})
	if err != nil {
		return model.VerdictUnknown, fmt.Errorf("llm completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return model.VerdictUnknown, fmt.Errorf("llm returned no choices")
	}
	return ParseVerdict(resp.Choices[0].Message.Content), nil
}

func (l *LLM) prompt(card model.Card) string {
	var b strings.Builder
	b.WriteString("Facts:\n")
	for _, fact := range card.Facts {
		b.WriteString("- ")
		b.WriteString(fact)
		b.WriteString("\n")
	}
	if l.retriever != nil {
		// The claim subject is an IRI; the retriever anchors on labels.
		ctx := l.retriever.Retrieve(card.Question, model.LocalName(card.Claim.Subj), 0)
		if ctx.Text != "" && ctx.Text != retrieve.NoContextSentinel {
			b.WriteString("\nGraph context:\n")
			b.WriteString(ctx.Text)
			b.WriteString("\n")
		}
	}
	b.WriteString("\nQuestion: ")
	b.WriteString(card.Question)
	b.WriteString("\nAnswer (YES, NO or UNKNOWN):")
	return b.String()
}

// ParseVerdict reads a model reply strictly. Anything that does not
// start with one of the three verdict words counts as UNKNOWN rather
// than a guess.
func ParseVerdict(reply string) model.Verdict {
	fields := strings.Fields(strings.ToUpper(reply))
	if len(fields) == 0 {
		return model.VerdictUnknown
	}
	switch strings.Trim(fields[0], ".,!?\"'") {
	case "YES":
		return model.VerdictYes
	case "NO":
		return model.VerdictNo
	default:
		return model.VerdictUnknown
	}
}
