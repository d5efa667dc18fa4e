package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/baalimago/go_away_boilerplate/pkg/debug"
	"github.com/baalimago/go_away_boilerplate/pkg/misc"
	"github.com/baalimago/go_away_boilerplate/pkg/shutdown"
	"github.com/baalimago/plai/internal/groq"
	"github.com/baalimago/plai/internal/models"
	"github.com/baalimago/plai/internal/tools"
	"github.com/baalimago/plai/internal/utils"
	"github.com/google/uuid"
)

const (
	model           = "llama-3.3-70b-versatile"
	defaultQuestion = "How is bitcoin doing against ethereum right now?"

	// maxToolCalls soft blocks: the model gets told no but still gets to
	// wrap up with whatever it has
	maxToolCalls = 10
	// maxIterations hard stops runs where the model won't quit calling
	// tools even after the soft block
	maxIterations = 12

	toolOutputRuneLimit  = 8000
	maxShortenedNewlines = 10
)

var systemPrompt = heredoc.Doc(`
	You are a market analyst for cryptocurrencies. Research the user's
	question with the tools available to you, then answer it.
	Rules:
	- Always fetch fresh numbers with get_crypto_rate before quoting any rate
	- Use the date tool to timestamp your analysis
	- Use website_text when the user points you at a specific site
	- When you have what you need, answer directly without further tool calls
	- Keep the final answer to a few short paragraphs
`)

func main() {
	ancli.SetupSlog()
	ctx, cancel := context.WithCancel(context.Background())
	go func() { shutdown.Monitor(cancel) }()
	exitCode := run(ctx, os.Args[1:])
	cancel()
	os.Exit(exitCode)
}

func run(ctx context.Context, args []string) int {
	utils.LoadDotEnv()
	question := defaultQuestion
	if len(args) > 0 {
		question = strings.Join(args, " ")
	}

	completer := groq.Completer{
		Model:       model,
		Temperature: misc.Pointer(0.2),
		MaxTokens:   misc.Pointer(1024),
	}
	if err := completer.Setup(); err != nil {
		ancli.PrintErr(fmt.Sprintf("failed to setup completer: %v\n", err))
		return 1
	}
	tools.Init()
	for name, llmTool := range tools.Registry.All() {
		if err := completer.RegisterTool(llmTool.Specification()); err != nil {
			ancli.PrintErr(fmt.Sprintf("failed to register tool '%v': %v\n", name, err))
			return 1
		}
	}

	runID := uuid.NewString()
	ancli.Noticef("analyst run: %v\n", runID)
	chat := models.Chat{
		ID: runID,
		Messages: []models.Message{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: question},
		},
	}

	msg, err := analyze(ctx, &completer, &chat)
	if err != nil {
		ancli.PrintErr(fmt.Sprintf("failed to analyze: %v\n", err))
		return 1
	}
	utils.AttemptPrettyPrint(msg, false)
	return 0
}

// analyze runs the control loop. The model decides what happens on every
// lap: another tool call, or a final answer which ends the loop.
func analyze(ctx context.Context, completer *groq.Completer, chat *models.Chat) (models.Message, error) {
	amToolCalls := 0
	for i := 0; i < maxIterations; i++ {
		msg, err := completer.Complete(ctx, *chat)
		if err != nil {
			return models.Message{}, fmt.Errorf("failed to complete chat: %w", err)
		}
		if len(msg.ToolCalls) == 0 {
			return msg, nil
		}
		for _, call := range msg.ToolCalls {
			handleToolCall(chat, call, &amToolCalls)
		}
	}
	// Show the last thing the model said before bailing, it tends to be
	// at least partially useful
	if last, _, err := chat.LastOfRole("assistant"); err == nil {
		utils.AttemptPrettyPrint(last, false)
	}
	return models.Message{}, fmt.Errorf("no final answer after %v iterations", maxIterations)
}

func handleToolCall(chat *models.Chat, call models.Call, amToolCalls *int) {
	if misc.Truthy(os.Getenv("DEBUG")) {
		ancli.PrintOK(fmt.Sprintf("received tool call: %v\n", debug.IndentedJsonFmt(call)))
	}
	assistantToolsCall := models.Message{
		Role:      "assistant",
		Content:   call.PrettyPrint(),
		ToolCalls: []models.Call{call},
	}
	chat.Messages = append(chat.Messages, assistantToolsCall)
	utils.AttemptPrettyPrint(assistantToolsCall, false)

	var out string
	if *amToolCalls >= maxToolCalls {
		// Soft block, might need to be tweaked if the model keeps at it
		out = "ERROR: No more tool calls allowed"
	} else {
		out = fmt.Sprintf("[ Tool calls remaining: %v ] %v", maxToolCalls-*amToolCalls, tools.Invoke(call))
		*amToolCalls++
	}
	out = limitToolOutput(out, toolOutputRuneLimit)
	// Some models dislike responses which yield no output, even if
	// they're valid
	if out == "" {
		out = "<EMPTY-RESPONSE>"
	}
	chat.Messages = append(chat.Messages, models.Message{
		Role:       "tool",
		Content:    out,
		ToolCallID: call.ID,
	})
	utils.AttemptPrettyPrint(models.Message{
		Role:    "tool",
		Content: utils.ShortenedOutput(out, maxShortenedNewlines),
	}, false)
}

func limitToolOutput(out string, limit int) string {
	if limit <= 0 {
		return out
	}
	amRunes := utf8.RuneCountInString(out)
	if amRunes <= limit {
		return out
	}
	return fmt.Sprintf(
		"%v... and %v more characters. The tool's output has been restricted as it's too long. Please concentrate your tool calls to reduce the amount of tokens used!",
		out[:limit], amRunes-limit)
}
