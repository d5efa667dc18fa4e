package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/baalimago/go_away_boilerplate/pkg/misc"
	"github.com/baalimago/plai/internal/groq"
	"github.com/baalimago/plai/internal/models"
	"github.com/baalimago/plai/internal/utils"
)

const (
	model              = "deepseek-r1-distill-llama-70b"
	defaultPrompt      = "Write a blog post about the benefits of effective agents."
	writeDocumentTries = 3
)

type Query struct {
	OriginalQuery string `json:"original_query"`
	EnhancedQuery string `json:"enhanced_query"`
	IsDocument    bool   `json:"is_document"`
}

type DocumentSection struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type DocumentOutline struct {
	Title    string            `json:"title"`
	Sections []DocumentSection `json:"sections"`
}

type Document struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

var rewriteSystemPrompt = heredoc.Doc(`
	You are a query rewriter that outputs queries in JSON format.
	Rules:
	<rules>
	If the user prompt is not for writing a document, do NOT fill in enhanced_query.
	If the user prompt is for writing a document, then fill in enhanced_query with a clearer version of the user prompt.
	If the user prompt is for writing a document, then fill in is_document with True.
	Otherwise, fill in is_document with False.
	</rules>
	Examples:
	Positive example:
	User prompt: 'Write a detailed report on climate change.'
	Enhanced query: 'Create a comprehensive report on the effects of climate change, including data on temperature changes, sea level rise, and impact on ecosystems.'
	is_document: True
	Negative example:
	User prompt: 'Tell me a joke.'
	Enhanced query: ''
	is_document: False
	The JSON must adhere to the schema %v
`)

var querySchema = models.InputSchema{
	Type:     "object",
	Required: []string{"original_query", "enhanced_query", "is_document"},
	Properties: map[string]models.ParameterObject{
		"original_query": {Type: "string"},
		"enhanced_query": {Type: "string"},
		"is_document":    {Type: "boolean"},
	},
}

var outlineSchema = models.InputSchema{
	Type:     "object",
	Required: []string{"title", "sections"},
	Properties: map[string]models.ParameterObject{
		"title": {Type: "string"},
		"sections": {
			Type: "array",
			Items: &models.ParameterObject{
				Type:     "object",
				Required: []string{"title", "content"},
				Properties: map[string]models.ParameterObject{
					"title":   {Type: "string"},
					"content": {Type: "string"},
				},
			},
		},
	},
}

var documentSchema = models.InputSchema{
	Type:     "object",
	Required: []string{"title", "content"},
	Properties: map[string]models.ParameterObject{
		"title":   {Type: "string"},
		"content": {Type: "string", Description: "The document itself, in Markdown format"},
	},
}

func main() {
	ancli.SetupSlog()
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	utils.LoadDotEnv()
	userPrompt := defaultPrompt
	if len(args) != 1 {
		ancli.Noticef("usage: prompt-chaining <user_prompt>\n")
		ancli.Noticef("running with default user prompt: %v\n", defaultPrompt)
	} else {
		userPrompt = args[0]
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

	fmt.Printf("Rewriting user prompt: %v\n", userPrompt)
	query, err := rewriteUserPrompt(ctx, &completer, userPrompt)
	if err != nil {
		ancli.PrintErr(fmt.Sprintf("failed to rewrite user prompt: %v\n", err))
		return 1
	}
	fmt.Printf("Enhanced query: %v\n", query.EnhancedQuery)
	fmt.Printf("Is document: %v\n", query.IsDocument)
	if !query.IsDocument {
		fmt.Println("Not writing a document")
		return 0
	}

	fmt.Println("Planning document")
	outline, err := planDocument(ctx, &completer, query.EnhancedQuery)
	if err != nil {
		ancli.PrintErr(fmt.Sprintf("failed to plan document: %v\n", err))
		return 1
	}

	fmt.Println("Writing document")
	document, err := writeDocument(ctx, &completer, outline)
	if err != nil {
		ancli.PrintErr(fmt.Sprintf("failed to write document: %v\n", err))
		return 1
	}

	fmt.Print("\n=== Generated Document ===\n\n")
	fmt.Println(utils.RenderMarkdown(document.Title))
	fmt.Println(utils.RenderMarkdown(document.Content))
	fmt.Print("\n=======================\n\n")
	return 0
}

// rewriteUserPrompt checks if the user asks for a document and makes the
// ask clearer to the model. The gate for the whole chain, nothing more
// happens when is_document comes back false.
func rewriteUserPrompt(ctx context.Context, completer *groq.Completer, userPrompt string) (Query, error) {
	schema, err := json.Marshal(querySchema)
	if err != nil {
		return Query{}, fmt.Errorf("failed to encode query schema: %w", err)
	}
	chat := models.Chat{
		Messages: []models.Message{
			{
				Role:    "system",
				Content: fmt.Sprintf(rewriteSystemPrompt, string(schema)),
			},
			{
				Role:    "user",
				Content: fmt.Sprintf("Rewrite the user prompt %v to make it clearer to the model.", userPrompt),
			},
		},
	}
	var query Query
	if err := completer.CompleteJSON(ctx, chat, &query); err != nil {
		return Query{}, fmt.Errorf("failed to complete chat: %w", err)
	}
	return query, nil
}

func planDocument(ctx context.Context, completer *groq.Completer, query string) (DocumentOutline, error) {
	schema, err := json.Marshal(outlineSchema)
	if err != nil {
		return DocumentOutline{}, fmt.Errorf("failed to encode outline schema: %w", err)
	}
	chat := models.Chat{
		Messages: []models.Message{
			{
				Role:    "system",
				Content: fmt.Sprintf("You are a document planner that outputs document outlines in JSON format.\nThe JSON must adhere to the schema %v", string(schema)),
			},
			{
				Role:    "user",
				Content: fmt.Sprintf("Plan a document based on the following query: %v", query),
			},
		},
	}
	var outline DocumentOutline
	if err := completer.CompleteJSON(ctx, chat, &outline); err != nil {
		return DocumentOutline{}, fmt.Errorf("failed to complete chat: %w", err)
	}
	return outline, nil
}

// writeDocument writes the planned document. Models drop the json shape
// every now and then on long completions, so give it a few attempts
func writeDocument(ctx context.Context, completer *groq.Completer, outline DocumentOutline) (Document, error) {
	schema, err := json.Marshal(documentSchema)
	if err != nil {
		return Document{}, fmt.Errorf("failed to encode document schema: %w", err)
	}
	sections, err := json.Marshal(outline.Sections)
	if err != nil {
		return Document{}, fmt.Errorf("failed to encode outline sections: %w", err)
	}
	chat := models.Chat{
		Messages: []models.Message{
			{
				Role:    "system",
				Content: fmt.Sprintf("You are a document writer that outputs documents in Markdown format.\nThe JSON must adhere to the schema %v", string(schema)),
			},
			{
				Role:    "user",
				Content: fmt.Sprintf("Write the document outlined in the following markdown format:\n\n%v\n\n%v", outline.Title, string(sections)),
			},
		},
	}

	var lastErr error
	for tries := 0; tries < writeDocumentTries; tries++ {
		var document Document
		if err := completer.CompleteJSON(ctx, chat, &document); err != nil {
			lastErr = err
			ancli.PrintWarn(fmt.Sprintf("failed to write document: %v\n", err))
			ancli.Noticef("Retrying...\n")
			continue
		}
		return document, nil
	}
	return Document{}, fmt.Errorf("failed to write document after %v tries: %w", writeDocumentTries, lastErr)
}
