package core

import "context"

type (
	// Completer is any service that can answer a prompt with a chat-completion model.
	Completer interface {
		Complete(ctx context.Context, system, prompt string) (string, error)
	}

	CodeReference struct {
		Repository string // owner/name
		Path       string
		URL        string
	}

	// CodeSearcher is any service that can find code samples in public repositories.
	CodeSearcher interface {
		SearchCode(ctx context.Context, query, language string, max int) ([]CodeReference, error)
	}
)
