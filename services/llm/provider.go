package llm

import "context"

// Provider is the chat-completion abstraction shared by the lesson tutor and the docs assistant.
type Provider interface {
	// Generate sends the prompt to the LLM and returns its text reply.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

type Request struct {
	// System is the system prompt.
	System string

	// Messages is the conversation; single-turn callers send one user message.
	Messages []Message

	// MaxTokens caps the reply. Zero lets the provider decide (Anthropic requires a value, see defaultMaxTokens).
	MaxTokens int

	// Temperature controls randomness. Zero is not sent.
	Temperature float64
}

type Message struct {
	Role    Role
	Content string
}

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// UserPrompt builds the common single-turn Request.
func UserPrompt(system, prompt string, temperature float64) Request {
	return Request{
		System:      system,
		Messages:    []Message{{Role: RoleUser, Content: prompt}},
		Temperature: temperature,
	}
}

type Response struct {
	Content string
	Usage   Usage

	// Model is the model that served the request.
	Model string

	// StopReason is normalized to "end" or "max_tokens".
	StopReason string
}

type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
