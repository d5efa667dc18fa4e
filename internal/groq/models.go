package groq

import (
	"net/http"

	"github.com/baalimago/plai/internal/models"
)

// Completer is a blocking client for Groq's OpenAI compatible chat
// completions API. The zero value needs Setup before use
type Completer struct {
	Model       string   `json:"model"`
	Temperature *float64 `json:"temperature"`
	TopP        *float64 `json:"top_p"`
	MaxTokens   *int     `json:"max_tokens"` // Use a pointer to allow null value
	url         string
	apiKey      string
	client      *http.Client
	tools       []toolSuper
	debug       bool
}

type toolSuper struct {
	Type     string `json:"type"`
	Function tool   `json:"function"`
}

type tool struct {
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Inputs      models.InputSchema `json:"parameters"`
}

type responseFormat struct {
	Type string `json:"type"`
}

type req struct {
	Model          string          `json:"model,omitempty"`
	ResponseFormat *responseFormat `json:"response_format,omitempty"`
	Messages       []message       `json:"messages,omitempty"`
	Stream         bool            `json:"stream,omitempty"`
	Temperature    *float64        `json:"temperature,omitempty"`
	TopP           *float64        `json:"top_p,omitempty"`
	MaxTokens      *int            `json:"max_tokens,omitempty"`
	ToolChoice     *string         `json:"tool_choice,omitempty"`
	Tools          []toolSuper     `json:"tools,omitempty"`
}

type message struct {
	Role       string     `json:"role"`
	Content    string     `json:"content,omitempty"`
	ToolCalls  []toolCall `json:"tool_calls,omitempty"`
	ToolCallID string     `json:"tool_call_id,omitempty"`
}

type toolCall struct {
	ID       string       `json:"id"`
	Type     string       `json:"type"`
	Function toolCallFunc `json:"function"`
}

type toolCallFunc struct {
	Name      string `json:"name"`
	Arguments string `json:"arguments"`
}

type chatCompletion struct {
	ID                string   `json:"id"`
	Object            string   `json:"object"`
	Created           int64    `json:"created"`
	Model             string   `json:"model"`
	Choices           []choice `json:"choices"`
	Usage             usage    `json:"usage"`
	SystemFingerprint string   `json:"system_fingerprint"`
}

type choice struct {
	Index        int         `json:"index"`
	Message      message     `json:"message"`
	Logprobs     interface{} `json:"logprobs"` // null or complex object, hence interface{}
	FinishReason string      `json:"finish_reason"`
}

type usage struct {
	PromptTokens     int `json:"prompt_tokens"`
	CompletionTokens int `json:"completion_tokens"`
	TotalTokens      int `json:"total_tokens"`
}
