package llm

import (
	"context"

	"github.com/pkg/errors"

	"github.com/trezcool/codedaily/core"
)

// Providers
const (
	ProviderPerplexity = "perplexity"
	ProviderOpenAI     = "openai"
	ProviderAnthropic  = "anthropic"
	ProviderGemini     = "gemini"
	ProviderMock       = "mock"
)

// NewProvider creates the Provider selected by `conf`, bounded by conf.Timeout.
// A provider without API key is still returned: each of its calls fails with ErrNotConfigured.
func NewProvider(ctx context.Context, conf core.LLMConfig) (Provider, error) {
	var base Provider
	var err error

	switch conf.Provider {
	case "", ProviderPerplexity:
		conf.Provider = ProviderPerplexity
		if conf.BaseURL == "" {
			conf.BaseURL = PerplexityBaseURL
		}
		if conf.Model == "" {
			conf.Model = PerplexityModel
		}
		base, err = NewOpenAIProvider(conf)
	case ProviderOpenAI:
		base, err = NewOpenAIProvider(conf)
	case ProviderAnthropic:
		base, err = NewAnthropicProvider(conf)
	case ProviderGemini:
		base, err = NewGeminiProvider(ctx, conf)
	case ProviderMock:
		return NewMockProvider(), nil
	default:
		return nil, errors.Errorf("unknown LLM provider: %q", conf.Provider)
	}
	if err != nil {
		var notConf *ErrNotConfigured
		if errors.As(err, &notConf) {
			return unconfigured{err: notConf, model: conf.Model}, nil
		}
		return nil, errors.Wrapf(err, "initializing %s provider", conf.Provider)
	}

	return WithTimeout(base, conf.Timeout), nil
}

type unconfigured struct {
	err   *ErrNotConfigured
	model string
}

func (p unconfigured) Generate(context.Context, Request) (*Response, error) {
	return nil, p.err
}

func (p unconfigured) ModelID() string {
	return p.model
}
