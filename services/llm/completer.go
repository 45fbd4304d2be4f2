package llm

import (
	"context"

	"github.com/trezcool/codedaily/core"
)

// Completer adapts a Provider to core.Completer.
type Completer struct {
	Provider    Provider
	Temperature float64
	MaxTokens   int
}

var _ core.Completer = (*Completer)(nil)

func NewCompleter(p Provider, conf core.LLMConfig) *Completer {
	return &Completer{Provider: p, Temperature: conf.Temperature, MaxTokens: conf.MaxTokens}
}

func (c *Completer) Complete(ctx context.Context, system, prompt string) (string, error) {
	req := UserPrompt(system, prompt, c.Temperature)
	req.MaxTokens = c.MaxTokens
	resp, err := c.Provider.Generate(ctx, req)
	if err != nil {
		return "", err
	}
	return resp.Content, nil
}
