package tools

import (
	"fmt"
	"io"
	"net/http"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/charset"

	"github.com/baalimago/plai/internal/models"
)

type WebsiteTextTool models.Specification

var WebsiteText = WebsiteTextTool{
	Name:        "website_text",
	Description: "Get the text content of a website by stripping all non-text tags and trimming whitespace.",
	Inputs: &models.InputSchema{
		Type: "object",
		Properties: map[string]models.ParameterObject{
			"url": {
				Type:        "string",
				Description: "The URL of the website to retrieve the text content from.",
			},
		},
		Required: []string{"url"},
	},
}

// skippedTags hold no text worth reading for an llm
var skippedTags = map[string]bool{
	"script":   true,
	"style":    true,
	"noscript": true,
	"iframe":   true,
	"title":    true,
}

func (w WebsiteTextTool) Call(input models.Input) (string, error) {
	url, ok := input["url"].(string)
	if !ok {
		return "", NewValidationError([]string{"url"})
	}
	resp, err := http.Get(url)
	if err != nil {
		return "", fmt.Errorf("failed to fetch website: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("failed to fetch website, status: %v", resp.Status)
	}
	contentType := resp.Header.Get("Content-Type")
	if contentType != "" && !strings.Contains(contentType, "text/html") {
		return "", fmt.Errorf("unsupported content type: %v", contentType)
	}
	body, err := charset.NewReader(resp.Body, contentType)
	if err != nil {
		return "", fmt.Errorf("failed to create charset reader: %w", err)
	}

	var text strings.Builder
	tokenizer := html.NewTokenizer(body)
	skipDepth := 0
	for {
		tt := tokenizer.Next()
		switch tt {
		case html.ErrorToken:
			if tokenizer.Err() == io.EOF {
				return text.String(), nil
			}
			return "", fmt.Errorf("tokenizer error: %w", tokenizer.Err())
		case html.StartTagToken:
			name, _ := tokenizer.TagName()
			if skippedTags[string(name)] {
				skipDepth++
			}
		case html.EndTagToken:
			name, _ := tokenizer.TagName()
			if skippedTags[string(name)] && skipDepth > 0 {
				skipDepth--
			}
		case html.TextToken:
			if skipDepth > 0 {
				continue
			}
			fields := strings.Fields(string(tokenizer.Text()))
			if len(fields) > 0 {
				text.WriteString(strings.Join(fields, " "))
				text.WriteRune('\n')
			}
		}
	}
}

func (w WebsiteTextTool) Specification() models.Specification {
	return models.Specification(WebsiteText)
}
