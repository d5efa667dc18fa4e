package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/baalimago/go_away_boilerplate/pkg/misc"
	"github.com/baalimago/plai/internal/groq"
	"github.com/baalimago/plai/internal/models"
	"github.com/baalimago/plai/internal/utils"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	routerModel     = "deepseek-r1-distill-llama-70b"
	specialistModel = "llama-3.3-70b-versatile"
)

type AgentType string

const (
	AgentTypeTechnical       AgentType = "technical"
	AgentTypeBilling         AgentType = "billing"
	AgentTypeRecommendations AgentType = "recommendations"
	AgentTypeUnknown         AgentType = "unknown"
	AgentTypeIrrelevant      AgentType = "irrelevant"
)

var validAgentTypes = map[AgentType]bool{
	AgentTypeTechnical:       true,
	AgentTypeBilling:         true,
	AgentTypeRecommendations: true,
	AgentTypeUnknown:         true,
	AgentTypeIrrelevant:      true,
}

type RouterResponse struct {
	AgentType             AgentType `json:"agent_type"`
	Confidence            float64   `json:"confidence"`
	NeedsClarification    bool      `json:"needs_clarification"`
	ClarificationQuestion string    `json:"clarification_question,omitempty"`
	ResponseToUser        string    `json:"response_to_user"`
}

var routerSystemPrompt = heredoc.Doc(`
	You are a query router that classifies user queries and provides appropriate responses.

	Rules for classification:
	1. Technical issues (code problems, errors, system issues) → TECHNICAL agent
	2. Billing/payment issues (charges, invoices, subscriptions) → BILLING agent
	3. Product suggestions/recommendations → RECOMMENDATIONS agent
	4. If the query is completely unrelated to technical support, billing, or recommendations, mark as IRRELEVANT
	5. If the query is related but unclear, mark as UNKNOWN and request clarification

	For each query, you must:
	1. Determine the appropriate agent type
	2. Set a confidence score (0.0 to 1.0)
	3. Determine if clarification is needed
	4. Provide a clear response message to the user

	For IRRELEVANT queries:
	- Politely explain that you can only help with technical support, billing issues, or product recommendations
	- Provide examples of questions you can help with

	For UNKNOWN queries:
	- Ask specific clarifying questions to determine the correct agent
	- Explain what information would help route their query

	Output must be valid JSON matching this schema:
	%v
`)

var routerSchema = models.InputSchema{
	Type:     "object",
	Required: []string{"agent_type", "confidence", "needs_clarification", "response_to_user"},
	Properties: map[string]models.ParameterObject{
		"agent_type": {
			Type: "string",
			Enum: []string{"technical", "billing", "recommendations", "unknown", "irrelevant"},
		},
		"confidence": {
			Type:        "number",
			Description: "Confidence in the classification, 0.0 to 1.0",
		},
		"needs_clarification":    {Type: "boolean"},
		"clarification_question": {Type: "string"},
		"response_to_user": {
			Type:        "string",
			Description: "Response to send to the user, especially important for irrelevant queries or when clarification is needed",
		},
	},
}

var defaultQueries = []string{
	"My application keeps crashing when I try to save the game state",
	"Why was I charged twice last month for my subscription?",
	"Can you suggest a good database for my high-traffic web project?",
	"Tell me a joke about the weather",
	"I'm having trouble but I'm not sure what's wrong",
	"The log shows: ERROR: game_state.save() failed - weather API timeout",
}

func main() {
	ancli.SetupSlog()
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	utils.LoadDotEnv()
	router := groq.Completer{
		Model:       routerModel,
		Temperature: misc.Pointer(0.1),
	}
	if err := router.Setup(); err != nil {
		ancli.PrintErr(fmt.Sprintf("failed to setup router: %v\n", err))
		return 1
	}
	specialists, err := newSpecialists()
	if err != nil {
		ancli.PrintErr(fmt.Sprintf("failed to setup specialists: %v\n", err))
		return 1
	}

	queries := defaultQueries
	if len(args) > 0 {
		queries = []string{strings.Join(args, " ")}
	}

	ctx := context.Background()
	for _, query := range queries {
		runQuery(ctx, &router, specialists, query)
	}
	return 0
}

func runQuery(ctx context.Context, router *groq.Completer, specialists map[AgentType]*specialistAgent, query string) {
	fmt.Printf("\nQuery: %v\n", query)
	result := routeQuery(ctx, router, query)
	fmt.Println("Routing Result:")
	fmt.Printf("Agent Type: %v\n", result.AgentType)
	fmt.Printf("Confidence: %.2f\n", result.Confidence)
	fmt.Printf("Needs Clarification: %v\n", result.NeedsClarification)
	if result.ClarificationQuestion != "" {
		fmt.Printf("Clarification Question: %v\n", result.ClarificationQuestion)
	}
	fmt.Printf("Response to User: %v\n", result.ResponseToUser)

	specialist, exists := specialists[result.AgentType]
	switch {
	case exists:
		fmt.Printf("--> Routing to %v Agent...\n", cases.Title(language.English).String(string(result.AgentType)))
		agentResponse, err := specialist.handleQuery(ctx, query)
		if err != nil {
			fmt.Printf("!! Error processing query: %v\n", err)
		} else {
			fmt.Printf("Agent Response: %v\n", agentResponse)
		}
	case result.AgentType == AgentTypeIrrelevant || result.AgentType == AgentTypeUnknown:
		fmt.Printf("--> No specific agent required (%v). User response provided by router.\n", result.AgentType)
	default:
		ancli.PrintWarn(fmt.Sprintf("unhandled agent type: %v\n", result.AgentType))
	}
	fmt.Println(strings.Repeat("-", 80))
}

// routeQuery classifies the query. It never fails the demo run: anything
// going wrong collapses into a clarification request
func routeQuery(ctx context.Context, router *groq.Completer, query string) RouterResponse {
	schema, err := json.Marshal(routerSchema)
	if err != nil {
		ancli.PrintWarn(fmt.Sprintf("failed to encode router schema: %v\n", err))
		return fallbackResponse()
	}
	chat := models.Chat{
		Messages: []models.Message{
			{
				Role:    "system",
				Content: fmt.Sprintf(routerSystemPrompt, string(schema)),
			},
			{
				Role:    "user",
				Content: fmt.Sprintf("Route this query: %v", query),
			},
		},
	}
	var resp RouterResponse
	if err := router.CompleteJSON(ctx, chat, &resp); err != nil {
		ancli.PrintWarn(fmt.Sprintf("failed to route query: %v\n", err))
		return fallbackResponse()
	}
	if !validAgentTypes[resp.AgentType] {
		ancli.PrintWarn(fmt.Sprintf("router picked a nonexistent agent type: %v\n", resp.AgentType))
		return fallbackResponse()
	}
	resp.Confidence = utils.Clamp(resp.Confidence, 0.0, 1.0)
	return resp
}

func fallbackResponse() RouterResponse {
	return RouterResponse{
		AgentType:             AgentTypeUnknown,
		Confidence:            0.0,
		NeedsClarification:    true,
		ClarificationQuestion: "I'm not sure how to help. Can you provide more details?",
		ResponseToUser:        "I'm not sure how to help. Can you provide more details?",
	}
}

type specialistAgent struct {
	completer     groq.Completer
	systemMessage string
}

func (s *specialistAgent) handleQuery(ctx context.Context, query string) (string, error) {
	chat := models.Chat{
		Messages: []models.Message{
			{Role: "system", Content: s.systemMessage},
			{Role: "user", Content: query},
		},
	}
	msg, err := s.completer.Complete(ctx, chat)
	if err != nil {
		return "", fmt.Errorf("failed to complete chat: %w", err)
	}
	return msg.Content, nil
}

func newSpecialists() (map[AgentType]*specialistAgent, error) {
	technical, err := newSpecialist(0.2, "You are a helpful and concise technical support agent specializing in software development, debugging, and system issues. Focus on providing actionable solutions and code examples where relevant.")
	if err != nil {
		return nil, fmt.Errorf("failed to setup technical agent: %w", err)
	}
	billing, err := newSpecialist(0.1, "You are a polite and professional billing support agent. Address questions about charges, invoices, subscriptions, and payment methods clearly and accurately. Do not ask for or process sensitive payment details.")
	if err != nil {
		return nil, fmt.Errorf("failed to setup billing agent: %w", err)
	}
	recommendations, err := newSpecialist(0.5, "You are an insightful product recommendations agent. Based on user needs and context, suggest relevant software, tools, or services. Explain *why* you are recommending something.")
	if err != nil {
		return nil, fmt.Errorf("failed to setup recommendations agent: %w", err)
	}
	return map[AgentType]*specialistAgent{
		AgentTypeTechnical:       technical,
		AgentTypeBilling:         billing,
		AgentTypeRecommendations: recommendations,
	}, nil
}

func newSpecialist(temperature float64, systemMessage string) (*specialistAgent, error) {
	agent := specialistAgent{
		completer: groq.Completer{
			Model:       specialistModel,
			Temperature: misc.Pointer(temperature),
		},
		systemMessage: systemMessage,
	}
	if err := agent.completer.Setup(); err != nil {
		return nil, err
	}
	return &agent, nil
}
