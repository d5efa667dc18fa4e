package main

import (
	"context"
	"fmt"
	"os"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/baalimago/go_away_boilerplate/pkg/misc"
	"github.com/baalimago/plai/internal/groq"
	"github.com/baalimago/plai/internal/models"
	"github.com/baalimago/plai/internal/tools"
	"github.com/baalimago/plai/internal/utils"
)

const (
	model           = "llama-3.3-70b-versatile"
	defaultCurrency = "bitcoin"
)

func main() {
	ancli.SetupSlog()
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	utils.LoadDotEnv()
	currency := defaultCurrency
	if len(args) != 1 {
		ancli.Noticef("usage: tools <currency>\n")
		ancli.Noticef("running with default currency: %v\n", defaultCurrency)
	} else {
		currency = args[0]
	}

	completer := groq.Completer{
		Model:       model,
		Temperature: misc.Pointer(0.6),
	}
	if err := completer.Setup(); err != nil {
		ancli.PrintErr(fmt.Sprintf("failed to setup completer: %v\n", err))
		return 1
	}
	// Only the rate tool is announced to the model, but the registry
	// backs the actual invocation
	tools.Init()
	if err := completer.RegisterTool(tools.Rate.Specification()); err != nil {
		ancli.PrintErr(fmt.Sprintf("failed to register tool: %v\n", err))
		return 1
	}

	// The follow up question goes to a completer without any tools
	// registered, so the model answers using the tool output it already
	// got instead of calling the tool again
	followup := groq.Completer{
		Model:       model,
		Temperature: misc.Pointer(0.6),
	}
	if err := followup.Setup(); err != nil {
		ancli.PrintErr(fmt.Sprintf("failed to setup followup completer: %v\n", err))
		return 1
	}

	fmt.Printf("Getting exchange rate for %v\n", currency)
	msg, err := runConversation(context.Background(), &completer, &followup, currency)
	if err != nil {
		ancli.PrintErr(fmt.Sprintf("failed to run conversation: %v\n", err))
		return 1
	}
	utils.AttemptPrettyPrint(msg, false)
	return 0
}

func runConversation(ctx context.Context, completer, followup *groq.Completer, currency string) (models.Message, error) {
	chat := models.Chat{
		Messages: []models.Message{
			{
				Role:    "system",
				Content: "You are an exchange rate assistant. Use the get_crypto_rate tool to get the current exchange rate of a currency.",
			},
			{
				Role:    "user",
				Content: fmt.Sprintf("What is the current exchange rate of %v?", currency),
			},
		},
	}
	msg, err := completer.Complete(ctx, chat)
	if err != nil {
		return models.Message{}, fmt.Errorf("failed to complete chat: %w", err)
	}
	if len(msg.ToolCalls) == 0 {
		return msg, nil
	}

	for _, call := range msg.ToolCalls {
		fmt.Printf("Calling tool: %v\n", call.Name)
		fmt.Printf("Arguments: %v\n", call.Function.Arguments)
		chat.Messages = append(chat.Messages, models.Message{
			Role:      "assistant",
			Content:   call.PrettyPrint(),
			ToolCalls: []models.Call{call},
		})
		out := tools.Invoke(call)
		fmt.Printf("Tool response: %v\n", out)
		chat.Messages = append(chat.Messages, models.Message{
			Role:       "tool",
			Content:    out,
			ToolCallID: call.ID,
		})
	}

	followupMsg, err := followup.Complete(ctx, chat)
	if err != nil {
		return models.Message{}, fmt.Errorf("failed to complete followup chat: %w", err)
	}
	return followupMsg, nil
}
