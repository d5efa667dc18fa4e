package groq

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/baalimago/go_away_boilerplate/pkg/misc"
	"github.com/baalimago/plai/internal/models"
)

// ChatURL is Groq's OpenAI compatible chat completions endpoint
const ChatURL = "https://api.groq.com/openai/v1/chat/completions"

const (
	apiKeyEnv = "GROQ_API_KEY"
	urlEnv    = "GROQ_API_URL"
)

// Setup reads GROQ_API_KEY, and optionally GROQ_API_URL, from the
// environment. It must return nil before any completions are attempted
func (c *Completer) Setup() error {
	apiKey := os.Getenv(apiKeyEnv)
	if apiKey == "" {
		return fmt.Errorf("environment variable '%v' not set", apiKeyEnv)
	}
	c.apiKey = apiKey
	c.url = ChatURL
	if url := os.Getenv(urlEnv); url != "" {
		c.url = url
	}
	c.client = &http.Client{Timeout: time.Second * 30}

	if misc.Truthy(os.Getenv("DEBUG")) || misc.Truthy(os.Getenv("GROQ_DEBUG")) {
		c.debug = true
	}

	return nil
}

// RegisterTool makes the tool specification available for the model to
// call on subsequent completions
func (c *Completer) RegisterTool(spec models.Specification) error {
	if spec.Inputs != nil && !spec.Inputs.IsOk() {
		return fmt.Errorf("tool '%v' has a broken input schema, array properties need items", spec.Name)
	}
	inputs := models.InputSchema{}
	if spec.Inputs != nil {
		inputs = *spec.Inputs
	}
	inputs.Patch()
	c.tools = append(c.tools, toolSuper{
		Type: "function",
		Function: tool{
			Name:        spec.Name,
			Description: spec.Description,
			Inputs:      inputs,
		},
	})
	return nil
}
