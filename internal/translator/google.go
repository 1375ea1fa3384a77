package translator

import (
	"context"
	"fmt"
	"strings"

	translate "cloud.google.com/go/translate"
	"golang.org/x/text/language"
	"google.golang.org/api/option"
)

// GoogleService is an alternative backend using the Google Translate
// API instead of the language model. It follows the same total contract
// as LLMService.
type GoogleService struct {
	target      language.Tag
	credentials string
}

// NewGoogleService builds the backend for the given ISO 639-1 target
// code. credentialsFile may be empty to use ambient credentials.
func NewGoogleService(targetCode, credentialsFile string) (*GoogleService, error) {
	tag, err := language.Parse(targetCode)
	if err != nil {
		return nil, fmt.Errorf("invalid target language %q: %w", targetCode, err)
	}
	return &GoogleService{target: tag, credentials: credentialsFile}, nil
}

func (s *GoogleService) Name() string {
	return "google"
}

func (s *GoogleService) Translate(ctx context.Context, text string) string {
	var opts []option.ClientOption
	if s.credentials != "" {
		opts = append(opts, option.WithCredentialsFile(s.credentials))
	}

	client, err := translate.NewClient(ctx, opts...)
	if err != nil {
		return Unavailable
	}
	defer client.Close()

	// Source language left unset so the API detects it.
	translations, err := client.Translate(ctx, []string{text}, s.target, nil)
	if err != nil || len(translations) == 0 {
		return Unavailable
	}

	translated := strings.TrimSpace(translations[0].Text)
	if translated == "" {
		return Unavailable
	}
	return translated
}
