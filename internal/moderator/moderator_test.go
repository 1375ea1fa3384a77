package moderator

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/lingward/lingward/internal"
	"github.com/lingward/lingward/internal/classifier"
	"github.com/lingward/lingward/internal/detector"
	"github.com/lingward/lingward/internal/extractor"
	"github.com/lingward/lingward/internal/llm"
	"github.com/lingward/lingward/internal/store"
	"github.com/lingward/lingward/internal/translator"
)

type stubExtractor struct {
	res   internal.ExtractionResult
	calls int
}

func (s *stubExtractor) Extract(_ context.Context, _ internal.ContentUnit) internal.ExtractionResult {
	s.calls++
	return s.res
}

type stubService struct {
	out   string
	calls int
}

func (s *stubService) Name() string { return "stub" }

func (s *stubService) Translate(_ context.Context, _ string) string {
	s.calls++
	return s.out
}

type sentReply struct {
	chatID    string
	messageID string
	text      string
}

type recordTransport struct {
	replies []sentReply
	err     error
}

func (r *recordTransport) Reply(_ context.Context, chatID, messageID, text string) error {
	if r.err != nil {
		return r.err
	}
	r.replies = append(r.replies, sentReply{chatID: chatID, messageID: messageID, text: text})
	return nil
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func newTestDispatcher(ext Extractor, svc translator.Service, transport Transport) *Dispatcher {
	return New(ext, svc, transport, Config{
		TargetCode: "en",
		TargetName: "English",
		Logger:     quietLogger(),
	})
}

func TestDispatcher_FlagsNonTargetContent(t *testing.T) {
	ext := &stubExtractor{res: internal.ExtractionResult{Text: "Bonjour le monde", IsTarget: false}}
	svc := &stubService{out: "Hello world"}
	transport := &recordTransport{}
	d := newTestDispatcher(ext, svc, transport)

	msg := internal.InboundMessage{
		MessageID: "42",
		ChatID:    "chat-1",
		Unit:      internal.TextUnit("Bonjour le monde"),
	}
	if err := d.Handle(context.Background(), msg); err != nil {
		t.Fatalf("Handle failed: %v", err)
	}

	if len(transport.replies) != 1 {
		t.Fatalf("expected exactly one reply, got %d", len(transport.replies))
	}
	if svc.calls != 1 {
		t.Errorf("expected exactly one translation, got %d", svc.calls)
	}

	got := transport.replies[0]
	want := "Translation: Hello world\n\nPlease, refrain from usage of any language except English"
	if got.text != want {
		t.Errorf("reply = %q, want %q", got.text, want)
	}
	if got.chatID != "chat-1" || got.messageID != "42" {
		t.Errorf("reply addressed to (%q, %q), want (%q, %q)", got.chatID, got.messageID, "chat-1", "42")
	}
}

func TestDispatcher_TargetContentNoAction(t *testing.T) {
	ext := &stubExtractor{res: internal.ExtractionResult{Text: "Hello world", IsTarget: true}}
	svc := &stubService{out: "unused"}
	transport := &recordTransport{}
	d := newTestDispatcher(ext, svc, transport)

	msg := internal.InboundMessage{MessageID: "1", ChatID: "c", Unit: internal.TextUnit("Hello world")}
	if err := d.Handle(context.Background(), msg); err != nil {
		t.Fatalf("Handle failed: %v", err)
	}

	if len(transport.replies) != 0 {
		t.Errorf("expected no replies, got %d", len(transport.replies))
	}
	if svc.calls != 0 {
		t.Errorf("expected no translator calls, got %d", svc.calls)
	}
}

func TestDispatcher_EmptyExtractionNoAction(t *testing.T) {
	ext := &stubExtractor{res: internal.ExtractionResult{Text: "", IsTarget: true}}
	svc := &stubService{out: "unused"}
	transport := &recordTransport{}
	d := newTestDispatcher(ext, svc, transport)

	msg := internal.InboundMessage{MessageID: "1", ChatID: "c", Unit: internal.ImageUnit("https://example.com/a.png")}
	if err := d.Handle(context.Background(), msg); err != nil {
		t.Fatalf("Handle failed: %v", err)
	}

	if len(transport.replies) != 0 || svc.calls != 0 {
		t.Error("expected no action for empty extraction")
	}
}

func TestDispatcher_EmptyUnitSkipsPipeline(t *testing.T) {
	ext := &stubExtractor{res: internal.ExtractionResult{Text: "x", IsTarget: false}}
	svc := &stubService{out: "unused"}
	transport := &recordTransport{}
	d := newTestDispatcher(ext, svc, transport)

	for _, unit := range []internal.ContentUnit{{}, internal.TextUnit(""), internal.ImageUnit("")} {
		msg := internal.InboundMessage{MessageID: "1", ChatID: "c", Unit: unit}
		if err := d.Handle(context.Background(), msg); err != nil {
			t.Fatalf("Handle failed: %v", err)
		}
	}

	if ext.calls != 0 {
		t.Errorf("expected no extractor calls for empty units, got %d", ext.calls)
	}
	if svc.calls != 0 || len(transport.replies) != 0 {
		t.Error("expected no downstream activity for empty units")
	}
}

func TestDispatcher_PlaceholderStillReplies(t *testing.T) {
	ext := &stubExtractor{res: internal.ExtractionResult{Text: "Bonjour", IsTarget: false}}
	svc := &stubService{out: translator.Unavailable}
	transport := &recordTransport{}
	d := newTestDispatcher(ext, svc, transport)

	msg := internal.InboundMessage{MessageID: "1", ChatID: "c", Unit: internal.TextUnit("Bonjour")}
	if err := d.Handle(context.Background(), msg); err != nil {
		t.Fatalf("Handle failed: %v", err)
	}

	if len(transport.replies) != 1 {
		t.Fatalf("expected one reply, got %d", len(transport.replies))
	}
	want := "Translation: " + translator.Unavailable + "\n\nPlease, refrain from usage of any language except English"
	if transport.replies[0].text != want {
		t.Errorf("reply = %q, want %q", transport.replies[0].text, want)
	}
}

func TestDispatcher_TransportFailure(t *testing.T) {
	ext := &stubExtractor{res: internal.ExtractionResult{Text: "Bonjour", IsTarget: false}}
	svc := &stubService{out: "Hello"}
	transport := &recordTransport{err: fmt.Errorf("connection reset")}
	d := newTestDispatcher(ext, svc, transport)

	msg := internal.InboundMessage{MessageID: "1", ChatID: "c", Unit: internal.TextUnit("Bonjour")}
	if err := d.Handle(context.Background(), msg); err == nil {
		t.Error("expected transport error to surface")
	}
}

func TestDispatcher_TranslationMemory(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	memory, err := store.New(dbPath)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	defer memory.Close()

	ext := &stubExtractor{res: internal.ExtractionResult{Text: "Bonjour le monde", IsTarget: false}}
	svc := &stubService{out: "Hello world"}
	transport := &recordTransport{}
	d := New(ext, svc, transport, Config{
		TargetCode: "en",
		TargetName: "English",
		Memory:     memory,
		Logger:     quietLogger(),
	})

	msg := internal.InboundMessage{MessageID: "1", ChatID: "c", Unit: internal.TextUnit("Bonjour le monde")}
	for i := 0; i < 2; i++ {
		if err := d.Handle(context.Background(), msg); err != nil {
			t.Fatalf("Handle %d failed: %v", i, err)
		}
	}

	if svc.calls != 1 {
		t.Errorf("expected the second translation to come from memory, got %d service calls", svc.calls)
	}
	if len(transport.replies) != 2 {
		t.Fatalf("expected two replies, got %d", len(transport.replies))
	}
	if transport.replies[0].text != transport.replies[1].text {
		t.Error("cached reply differs from the original")
	}
}

func TestDispatcher_PlaceholderNotCached(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "test.db")
	memory, err := store.New(dbPath)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	defer memory.Close()

	ext := &stubExtractor{res: internal.ExtractionResult{Text: "Bonjour", IsTarget: false}}
	svc := &stubService{out: translator.Unavailable}
	transport := &recordTransport{}
	d := New(ext, svc, transport, Config{
		TargetCode: "en",
		TargetName: "English",
		Memory:     memory,
		Logger:     quietLogger(),
	})

	msg := internal.InboundMessage{MessageID: "1", ChatID: "c", Unit: internal.TextUnit("Bonjour")}
	for i := 0; i < 2; i++ {
		if err := d.Handle(context.Background(), msg); err != nil {
			t.Fatalf("Handle %d failed: %v", i, err)
		}
	}

	if svc.calls != 2 {
		t.Errorf("expected the placeholder to bypass memory, got %d service calls", svc.calls)
	}
}

func TestComposeReply(t *testing.T) {
	got := ComposeReply("Hello world", "English")
	want := "Translation: Hello world\n\nPlease, refrain from usage of any language except English"
	if got != want {
		t.Errorf("ComposeReply() = %q, want %q", got, want)
	}
}

// scriptedClient serves the classification fallback first and the
// translation second.
type scriptedClient struct {
	replies []string
	calls   int
}

func (s *scriptedClient) Complete(_ context.Context, _ llm.Request) (string, error) {
	s.calls++
	i := s.calls - 1
	if i >= len(s.replies) {
		i = len(s.replies) - 1
	}
	return s.replies[i], nil
}

func TestDispatcher_EndToEnd(t *testing.T) {
	client := &scriptedClient{replies: []string{"other", "Hello, this is a test in French."}}

	det := detector.New()
	cls := classifier.New(det, client, "en", "English")
	ext := extractor.New(cls, client, "English")
	svc := translator.NewLLMService(client, "English")
	transport := &recordTransport{}

	d := New(ext, svc, transport, Config{
		TargetCode: "en",
		TargetName: "English",
		Logger:     quietLogger(),
	})

	msg := internal.InboundMessage{
		MessageID: "42",
		ChatID:    "chat-1",
		Unit:      internal.TextUnit("Bonjour, ceci est un test en français."),
	}
	if err := d.Handle(context.Background(), msg); err != nil {
		t.Fatalf("Handle failed: %v", err)
	}

	if client.calls != 2 {
		t.Errorf("expected classification plus translation calls, got %d", client.calls)
	}
	if len(transport.replies) != 1 {
		t.Fatalf("expected exactly one reply, got %d", len(transport.replies))
	}

	want := "Translation: Hello, this is a test in French.\n\nPlease, refrain from usage of any language except English"
	if transport.replies[0].text != want {
		t.Errorf("reply = %q, want %q", transport.replies[0].text, want)
	}
}
