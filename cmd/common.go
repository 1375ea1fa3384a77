/*
Copyright © 2025 The lingward authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/
package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"

	"github.com/lingward/lingward/internal/classifier"
	"github.com/lingward/lingward/internal/detector"
	"github.com/lingward/lingward/internal/extractor"
	"github.com/lingward/lingward/internal/llm"
	"github.com/lingward/lingward/internal/translator"
	"github.com/lingward/lingward/internal/validator"
)

// Flags shared by the moderate and watch commands. Values fall back to
// LINGWARD_* environment variables through viper.
var (
	targetLang string
	apiKey     string
	baseURL    string
	model      string
	llmTimeout time.Duration

	translateService string
	credentials      string

	dbPath  string
	noCache bool
)

func init() {
	viper.SetEnvPrefix("LINGWARD")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
}

// pipeline bundles the shared components wired from CLI parameters. The
// language-model client is constructed once and injected everywhere.
type pipeline struct {
	detector   *detector.Detector
	classifier *classifier.Classifier
	extractor  *extractor.Extractor
	translator translator.Service
	validator  *validator.Validator
	targetCode string
	targetName string
}

func buildPipeline() (*pipeline, error) {
	tag, err := language.Parse(targetLang)
	if err != nil {
		return nil, fmt.Errorf("invalid target language %q: %w", targetLang, err)
	}
	base, _ := tag.Base()
	code := base.String()
	name := display.English.Languages().Name(tag)

	client := llm.NewOpenAIClient(llm.Config{
		APIKey:  resolveAPIKey(),
		BaseURL: stringOr(baseURL, viper.GetString("base_url")),
		Model:   stringOr(model, viper.GetString("model")),
		Timeout: llmTimeout,
	})

	det := detector.New()
	cls := classifier.New(det, client, code, name)
	ext := extractor.New(cls, client, name)

	var svc translator.Service
	switch translateService {
	case "llm":
		svc = translator.NewLLMService(client, name)
	case "google":
		svc, err = translator.NewGoogleService(code, credentials)
		if err != nil {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("unknown translation service: %s (want llm or google)", translateService)
	}

	return &pipeline{
		detector:   det,
		classifier: cls,
		extractor:  ext,
		translator: svc,
		validator:  validator.New(det, code),
		targetCode: code,
		targetName: name,
	}, nil
}

// addPipelineFlags registers the flags shared by every command that
// runs the pipeline.
func addPipelineFlags(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&targetLang, "lang", "l", "en", "Target language (ISO 639-1 code)")
	cmd.Flags().StringVar(&apiKey, "api-key", "", "Language-model API key (or LINGWARD_API_KEY / OPENAI_API_KEY)")
	cmd.Flags().StringVar(&baseURL, "base-url", "", "Override the language-model service base URL")
	cmd.Flags().StringVar(&model, "model", "", "Model name (default "+llm.DefaultModel+")")
	cmd.Flags().DurationVar(&llmTimeout, "llm-timeout", 2*time.Minute, "HTTP timeout for language-model requests")
	cmd.Flags().StringVar(&translateService, "translator", "llm", "Translation backend: llm or google")
	cmd.Flags().StringVar(&credentials, "credentials", "", "Google credentials file (google backend only)")
}

func resolveAPIKey() string {
	if apiKey != "" {
		return apiKey
	}
	if v := viper.GetString("api_key"); v != "" {
		return v
	}
	return os.Getenv("OPENAI_API_KEY")
}

func stringOr(v, fallback string) string {
	if v != "" {
		return v
	}
	return fallback
}
