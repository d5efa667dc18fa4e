package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/baalimago/go_away_boilerplate/pkg/misc"
	"github.com/baalimago/plai/internal/groq"
	"github.com/baalimago/plai/internal/models"
	"github.com/baalimago/plai/internal/utils"
)

const defaultPrompt = "What are the basics of building effective AI agents?"

func main() {
	ancli.SetupSlog()
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	utils.LoadDotEnv()
	prompt := defaultPrompt
	if len(args) > 0 {
		prompt = strings.Join(args, " ")
	}

	// The r1 distillations think out loud, which makes them nice for
	// eyeballing what a one shot completion actually does
	completer := groq.Completer{
		Model:       "deepseek-r1-distill-llama-70b",
		Temperature: misc.Pointer(0.6),
	}
	if err := completer.Setup(); err != nil {
		ancli.PrintErr(fmt.Sprintf("failed to setup completer: %v\n", err))
		return 1
	}

	chat := models.Chat{
		Messages: []models.Message{
			{Role: "user", Content: prompt},
		},
	}
	msg, err := completer.Complete(context.Background(), chat)
	if err != nil {
		ancli.PrintErr(fmt.Sprintf("failed to complete chat: %v\n", err))
		return 1
	}
	utils.AttemptPrettyPrint(msg, false)
	return 0
}
