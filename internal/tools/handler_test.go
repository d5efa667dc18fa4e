package tools

import (
	"errors"
	"strings"
	"testing"

	"github.com/baalimago/plai/internal/models"
)

func TestInit(t *testing.T) {
	Registry.Reset()
	Registry.hasBeenInit = false

	Init()

	for _, name := range []string{"get_crypto_rate", "website_text", "date"} {
		if _, ok := Registry.Get(name); !ok {
			t.Errorf("expected tool %v to be registered", name)
		}
	}

	// Second Init should be a noop
	Init()
	if len(Registry.All()) != 3 {
		t.Errorf("expected 3 tools, got %d", len(Registry.All()))
	}
}

func TestInvoke(t *testing.T) {
	setup := func(t *testing.T, tool *mockLLMTool) {
		t.Helper()
		Registry.Reset()
		Registry.Set(tool.name, tool)
		t.Cleanup(func() {
			Registry.Reset()
			Registry.hasBeenInit = false
		})
	}

	t.Run("it should return the tool output", func(t *testing.T) {
		tool := newMockTool("mock")
		setup(t, tool)
		got := Invoke(models.Call{Name: "mock"})
		if got != "mock output" {
			t.Errorf("expected 'mock output', got: %v", got)
		}
	})

	t.Run("it should gather tool errors into the output", func(t *testing.T) {
		tool := newMockTool("mock")
		tool.err = errors.New("it broke")
		setup(t, tool)
		got := Invoke(models.Call{Name: "mock"})
		if !strings.HasPrefix(got, "ERROR:") {
			t.Errorf("expected ERROR prefix, got: %v", got)
		}
		if !strings.Contains(got, "it broke") {
			t.Errorf("expected the error in output, got: %v", got)
		}
	})

	t.Run("it should handle unknown tools", func(t *testing.T) {
		tool := newMockTool("mock")
		setup(t, tool)
		got := Invoke(models.Call{Name: "no-such-tool"})
		if !strings.Contains(got, "unknown tool call") {
			t.Errorf("expected unknown tool error, got: %v", got)
		}
	})
}
