// Package tutor explains lesson content to students through a chat-completion model.
package tutor

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/codedaily/core"
)

const systemPrompt = "You are a helpful coding tutor."

var (
	// errors
	ErrContentRequired = core.NewValidationError(errors.New("Content is required"))
	ErrUnavailable     = errors.New("explanation unavailable")
)

// ExplainRequest is the body of an explanation request.
type ExplainRequest struct {
	Content    string `json:"content"`
	Difficulty string `json:"difficulty" validate:"omitempty,difficulty"`
}

func (req *ExplainRequest) Validate(validate *validator.Validate) error {
	req.Content = core.CleanString(req.Content)
	req.Difficulty = core.CleanString(req.Difficulty, true /* lower */)
	if req.Content == "" {
		return ErrContentRequired
	}
	if req.Difficulty == "" {
		req.Difficulty = core.Difficulties[0]
	}
	return validate.Struct(req)
}

type Explanation struct {
	Explanation string `json:"explanation"`
}

type Service struct {
	completer core.Completer
	logger    core.Logger
}

func NewService(completer core.Completer, logger core.Logger) *Service {
	return &Service{completer: completer, logger: logger}
}

// Explain asks the completion model to explain `req.Content` at the requested difficulty.
// Any completion failure is logged and reported as ErrUnavailable.
func (svc *Service) Explain(ctx context.Context, req ExplainRequest) (Explanation, error) {
	prompt := fmt.Sprintf("Explain the following lesson content for a %s level student in simple terms:\n\n%s", req.Difficulty, req.Content)
	text, err := svc.completer.Complete(ctx, systemPrompt, prompt)
	if err != nil {
		svc.logger.Error("tutor.Explain", err, map[string]interface{}{"difficulty": req.Difficulty})
		return Explanation{}, ErrUnavailable
	}
	return Explanation{Explanation: text}, nil
}
