// Package groq talks to Groq's OpenAI compatible chat completions API.
// The requests are hand crafted instead of generated from some SDK, so
// that the wire format stays visible in one place
package groq

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/baalimago/go_away_boilerplate/pkg/debug"
	"github.com/baalimago/go_away_boilerplate/pkg/misc"
	"github.com/baalimago/plai/internal/models"
)

// Complete sends the chat to the model and returns the next message of the
// conversation. The returned message may contain tool calls, check
// len(msg.ToolCalls) before using the content
func (c *Completer) Complete(ctx context.Context, chat models.Chat) (models.Message, error) {
	return c.complete(ctx, chat, nil)
}

// CompleteJSON sends the chat to the model in json mode and unmarshals the
// response content into v. The chat's system message should describe the
// expected json, the model won't guess it from thin air
func (c *Completer) CompleteJSON(ctx context.Context, chat models.Chat, v any) error {
	msg, err := c.complete(ctx, chat, &responseFormat{Type: "json_object"})
	if err != nil {
		return err
	}
	err = json.Unmarshal([]byte(msg.Content), v)
	if err != nil {
		return fmt.Errorf("failed to decode JSON: %w, content: %v", err, msg.Content)
	}
	return nil
}

func (c *Completer) complete(ctx context.Context, chat models.Chat, format *responseFormat) (models.Message, error) {
	if c.client == nil {
		return models.Message{}, errors.New("completer is not set up, call Setup first")
	}
	req, err := c.createRequest(ctx, chat, format)
	if err != nil {
		return models.Message{}, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return models.Message{}, fmt.Errorf("failed to do request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return models.Message{}, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return models.Message{}, fmt.Errorf("response status: %v, response body: %v", resp.Status, string(body))
	}

	var completion chatCompletion
	err = json.Unmarshal(body, &completion)
	if err != nil {
		return models.Message{}, fmt.Errorf("failed to decode JSON: %w", err)
	}
	if c.debug {
		ancli.PrintOK(fmt.Sprintf("chat completion: %v\n", debug.IndentedJsonFmt(completion)))
	}

	if len(completion.Choices) != 1 {
		return models.Message{}, fmt.Errorf("expected 1 choice, got %d", len(completion.Choices))
	}
	return convertMessage(completion.Choices[0].Message)
}

func (c *Completer) createRequest(ctx context.Context, chat models.Chat, format *responseFormat) (*http.Request, error) {
	reqData := req{
		Model:          c.Model,
		ResponseFormat: format,
		Messages:       convertMessages(chat.Messages),
		Temperature:    c.Temperature,
		TopP:           c.TopP,
		MaxTokens:      c.MaxTokens,
	}
	if len(c.tools) > 0 {
		reqData.Tools = c.tools
		reqData.ToolChoice = misc.Pointer("auto")
	}
	if c.debug {
		ancli.PrintOK(fmt.Sprintf("groq completer request: %v\n", debug.IndentedJsonFmt(reqData)))
	}
	jsonData, err := json.Marshal(reqData)
	if err != nil {
		return nil, fmt.Errorf("failed to encode JSON: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.url, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %v", c.apiKey))
	return req, nil
}

func convertMessages(msgs []models.Message) []message {
	out := make([]message, 0, len(msgs))
	for _, msg := range msgs {
		m := message{
			Role:       msg.Role,
			Content:    msg.Content,
			ToolCallID: msg.ToolCallID,
		}
		for _, call := range msg.ToolCalls {
			m.ToolCalls = append(m.ToolCalls, convertCall(call))
		}
		out = append(out, m)
	}
	return out
}

func convertCall(call models.Call) toolCall {
	call.Patch()
	return toolCall{
		ID:   call.ID,
		Type: call.Type,
		Function: toolCallFunc{
			Name:      call.Function.Name,
			Arguments: call.Function.Arguments,
		},
	}
}

func convertMessage(msg message) (models.Message, error) {
	out := models.Message{
		Role:    msg.Role,
		Content: msg.Content,
	}
	for _, tc := range msg.ToolCalls {
		var inputs models.Input
		if tc.Function.Arguments != "" {
			err := json.Unmarshal([]byte(tc.Function.Arguments), &inputs)
			if err != nil {
				return models.Message{}, fmt.Errorf("failed to unmarshal argument string: %w, argsString: %v", err, tc.Function.Arguments)
			}
		}
		out.ToolCalls = append(out.ToolCalls, models.Call{
			ID:     tc.ID,
			Name:   tc.Function.Name,
			Type:   tc.Type,
			Inputs: inputs,
			Function: models.Specification{
				Name:      tc.Function.Name,
				Arguments: tc.Function.Arguments,
			},
		})
	}
	return out, nil
}
