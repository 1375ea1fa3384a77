package translator

import (
	"context"
	"fmt"

	"github.com/lingward/lingward/internal/llm"
	"github.com/lingward/lingward/internal/postprocess"
)

// translateMaxTokens bounds the output length of a translation request.
const translateMaxTokens = 1000

// LLMService translates through the shared language-model client.
type LLMService struct {
	client llm.Client
	target string // display name, e.g. "English"
}

func NewLLMService(client llm.Client, targetName string) *LLMService {
	return &LLMService{client: client, target: targetName}
}

func (s *LLMService) Name() string {
	return "llm"
}

func (s *LLMService) Translate(ctx context.Context, text string) string {
	reply, err := s.client.Complete(ctx, llm.Request{
		System: fmt.Sprintf("You are a professional translator. Translate the user's message into %s. Only respond with the translation, nothing else.",
			s.target),
		Prompt:    text,
		MaxTokens: translateMaxTokens,
	})
	if err != nil {
		return Unavailable
	}

	translated := postprocess.Clean(reply)
	if translated == "" {
		return Unavailable
	}
	return translated
}
