package utils

import (
	"fmt"
	"os"

	"github.com/baalimago/go_away_boilerplate/pkg/ancli"
	"github.com/baalimago/go_away_boilerplate/pkg/misc"
	"github.com/baalimago/plai/internal/models"
	"github.com/charmbracelet/glamour"
)

// RenderMarkdown renders md for the terminal. It falls back to the
// unrendered string when NO_COLOR is set or when the renderer fails,
// so that output never gets lost
func RenderMarkdown(md string) string {
	if misc.Truthy(os.Getenv("NO_COLOR")) {
		return md
	}
	renderer, err := glamour.NewTermRenderer(glamour.WithAutoStyle())
	if err != nil {
		return md
	}
	rendered, err := renderer.Render(md)
	if err != nil {
		return md
	}
	return rendered
}

// AttemptPrettyPrint the chat message as markdown with a colored role prefix.
// With raw, or with NO_COLOR set, the message is printed as is
func AttemptPrettyPrint(chatMessage models.Message, raw bool) {
	if raw || misc.Truthy(os.Getenv("NO_COLOR")) {
		fmt.Printf("%v: %v\n", chatMessage.Role, chatMessage.Content)
		return
	}
	role := chatMessage.Role
	color := ancli.BLUE
	switch chatMessage.Role {
	case "tool":
		color = ancli.MAGENTA
	case "user":
		color = ancli.CYAN
	}
	fmt.Printf("%v:%v", ancli.ColoredMessage(color, role), RenderMarkdown(chatMessage.Content))
}
