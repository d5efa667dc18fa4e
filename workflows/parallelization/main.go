package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/baalimago/go_away_boilerplate/pkg/misc"
	"github.com/baalimago/plai/internal/groq"
	"github.com/baalimago/plai/internal/models"
	"github.com/baalimago/plai/internal/utils"
	"golang.org/x/sync/errgroup"
)

const (
	model           = "llama-3.3-70b-versatile"
	defaultQuestion = "Should we let an AI agent handle our customer support tickets end to end?"
)

type perspective struct {
	name         string
	systemPrompt string
}

// The sections are independent of each other, which is what makes the
// fan out legitimate. Chained prompts can't be parallelized like this.
var perspectives = []perspective{
	{
		name: "Customers",
		systemPrompt: heredoc.Doc(`
			You analyze questions from the perspective of the customers of the company asking.
			Focus on user impact, trust and experience.
			Answer in two short paragraphs at most.
		`),
	},
	{
		name: "Engineers",
		systemPrompt: heredoc.Doc(`
			You analyze questions from the perspective of the engineering team of the company asking.
			Focus on feasibility, maintenance cost and failure modes.
			Answer in two short paragraphs at most.
		`),
	},
	{
		name: "Business",
		systemPrompt: heredoc.Doc(`
			You analyze questions from the perspective of the business owners of the company asking.
			Focus on cost, risk and return.
			Answer in two short paragraphs at most.
		`),
	},
}

var synthesisSystemPrompt = heredoc.Doc(`
	You merge stakeholder analyses into one balanced recommendation.
	Weigh the perspectives against each other, call out where they conflict
	and end with a short list of concrete next steps. Output in Markdown.
`)

func main() {
	ancli.SetupSlog()
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	utils.LoadDotEnv()
	question := defaultQuestion
	if len(args) > 0 {
		question = strings.Join(args, " ")
	}

	completer := groq.Completer{
		Model:       model,
		Temperature: misc.Pointer(0.6),
	}
	if err := completer.Setup(); err != nil {
		ancli.PrintErr(fmt.Sprintf("failed to setup completer: %v\n", err))
		return 1
	}
	ctx := context.Background()

	fmt.Printf("Question: %v\n", question)
	fmt.Printf("Analyzing from %v perspectives concurrently\n", len(perspectives))
	start := time.Now()
	results, err := analyzePerspectives(ctx, &completer, question)
	if err != nil {
		ancli.PrintErr(fmt.Sprintf("failed to analyze perspectives: %v\n", err))
		return 1
	}
	ancli.Noticef("all perspectives done in %v\n", time.Since(start))

	for i, p := range perspectives {
		fmt.Printf("\n=== %v ===\n", p.name)
		fmt.Println(results[i])
	}

	summary, err := synthesize(ctx, &completer, question, results)
	if err != nil {
		ancli.PrintErr(fmt.Sprintf("failed to synthesize perspectives: %v\n", err))
		return 1
	}
	fmt.Print("\n=== Synthesis ===\n")
	fmt.Println(utils.RenderMarkdown(summary))
	return 0
}

// analyzePerspectives asks every perspective concurrently. Results come
// back in perspective order no matter which request finishes first.
func analyzePerspectives(ctx context.Context, completer *groq.Completer, question string) ([]string, error) {
	g, gctx := errgroup.WithContext(ctx)
	results := make([]string, len(perspectives))
	for i, p := range perspectives {
		g.Go(func() error {
			chat := models.Chat{
				Messages: []models.Message{
					{Role: "system", Content: p.systemPrompt},
					{Role: "user", Content: question},
				},
			}
			msg, err := completer.Complete(gctx, chat)
			if err != nil {
				return fmt.Errorf("failed to analyze %v perspective: %w", p.name, err)
			}
			results[i] = msg.Content
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func synthesize(ctx context.Context, completer *groq.Completer, question string, results []string) (string, error) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Question: %v\n\n", question)
	for i, p := range perspectives {
		fmt.Fprintf(&sb, "%v perspective:\n%v\n\n", p.name, results[i])
	}
	chat := models.Chat{
		Messages: []models.Message{
			{Role: "system", Content: synthesisSystemPrompt},
			{Role: "user", Content: sb.String()},
		},
	}
	msg, err := completer.Complete(ctx, chat)
	if err != nil {
		return "", fmt.Errorf("failed to complete chat: %w", err)
	}
	return msg.Content, nil
}
