package translator

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/lingward/lingward/internal/llm"
)

type stubClient struct {
	reply    string
	err      error
	calls    int
	requests []llm.Request
}

func (s *stubClient) Complete(_ context.Context, req llm.Request) (string, error) {
	s.calls++
	s.requests = append(s.requests, req)
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}

func TestLLMService_Translate(t *testing.T) {
	stub := &stubClient{reply: "  Hello world  "}
	svc := NewLLMService(stub, "English")

	got := svc.Translate(context.Background(), "Bonjour le monde")
	if got != "Hello world" {
		t.Errorf("Translate() = %q, want %q", got, "Hello world")
	}
	if stub.calls != 1 {
		t.Errorf("expected exactly one remote call, got %d", stub.calls)
	}

	req := stub.requests[0]
	if req.MaxTokens == 0 {
		t.Error("expected a bounded output length")
	}
	if !strings.Contains(req.System, "English") {
		t.Errorf("system prompt does not name the target language: %q", req.System)
	}
}

func TestLLMService_QuoteWrappedReply(t *testing.T) {
	stub := &stubClient{reply: `"Hello world"`}
	svc := NewLLMService(stub, "English")

	if got := svc.Translate(context.Background(), "Bonjour le monde"); got != "Hello world" {
		t.Errorf("Translate() = %q, want unwrapped %q", got, "Hello world")
	}
}

func TestLLMService_RemoteFailure(t *testing.T) {
	stub := &stubClient{err: fmt.Errorf("service unavailable")}
	svc := NewLLMService(stub, "English")

	got := svc.Translate(context.Background(), "Bonjour le monde")
	if got != Unavailable {
		t.Errorf("Translate() = %q, want the %q placeholder", got, Unavailable)
	}
}

func TestLLMService_EmptyReply(t *testing.T) {
	stub := &stubClient{reply: "   "}
	svc := NewLLMService(stub, "English")

	got := svc.Translate(context.Background(), "Bonjour le monde")
	if got != Unavailable {
		t.Errorf("Translate() = %q, want the %q placeholder", got, Unavailable)
	}
}

func TestLLMService_Name(t *testing.T) {
	svc := NewLLMService(&stubClient{}, "English")
	if svc.Name() != "llm" {
		t.Errorf("Name() = %q, want %q", svc.Name(), "llm")
	}
}

func TestNewGoogleService_InvalidLanguage(t *testing.T) {
	_, err := NewGoogleService("not-a-lang-code", "")
	if err == nil {
		t.Error("expected error for invalid language code")
	}
}

func TestNewGoogleService_Name(t *testing.T) {
	svc, err := NewGoogleService("en", "")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if svc.Name() != "google" {
		t.Errorf("Name() = %q, want %q", svc.Name(), "google")
	}
}
