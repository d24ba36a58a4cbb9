package llm

import (
	"context"
	"encoding/json"
)

// Provider is the single abstraction the tutoring core uses to talk to a
// hosted LLM. Callers build a Request and get structured JSON back.
type Provider interface {
	// Generate sends a prompt to the LLM and returns the response.
	// When the request carries a Schema, the provider uses its native
	// structured-output mechanism and the returned Content is JSON
	// validated against that schema. Without a Schema the Content is the
	// raw text reply.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured for.
	ModelID() string
}

// Request describes one LLM call.
type Request struct {
	// System sets the model's role and constraints.
	System string

	// Messages is the conversation so far, oldest first. Chat-style
	// callers pass the whole visible history; generators pass a single
	// user message.
	Messages []Message

	// Schema, when set, constrains the response to structured JSON.
	Schema *Schema

	// MaxTokens bounds the response length.
	MaxTokens int

	// Temperature in 0.0-1.0. Zero value means deterministic.
	Temperature float64
}

// Message is one turn of conversation.
type Message struct {
	Role    Role
	Content string
}

// Role identifies the message sender.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema names a JSON Schema the response must conform to.
type Schema struct {
	// Name identifies the schema (tool name for Anthropic, schema name
	// for OpenAI). Kebab-case, e.g. "reading-exercise".
	Name string

	// Description tells the model what the schema represents.
	Description string

	// Definition is the JSON Schema as a map.
	Definition map[string]any
}

// Response is the LLM's output.
type Response struct {
	// Content is the generated output: validated JSON when a Schema was
	// requested, raw text otherwise.
	Content json.RawMessage

	// Usage reports token consumption.
	Usage Usage

	// Model is the model that actually served the request.
	Model string

	// StopReason is normalized to "end", "max_tokens" or "error".
	StopReason string
}

// Usage tracks token counts for one request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// Text returns the response content as plain text. Providers return chat
// replies as raw text that may or may not be valid JSON; a quoted JSON
// string is unwrapped, anything else is passed through.
func (r *Response) Text() string {
	var s string
	if err := json.Unmarshal(r.Content, &s); err == nil {
		return s
	}
	return string(r.Content)
}
