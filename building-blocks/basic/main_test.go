package main

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/baalimago/go_away_boilerplate/pkg/testboil"
)

func newCompletionServer(t *testing.T, content string, amReqs *atomic.Int32) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if amReqs != nil {
			amReqs.Add(1)
		}
		w.Header().Set("Content-Type", "application/json")
		resp := map[string]any{
			"id":      "chatcmpl-test",
			"object":  "chat.completion",
			"created": 1,
			"model":   "test",
			"choices": []map[string]any{
				{
					"index":         0,
					"message":       map[string]any{"role": "assistant", "content": content},
					"finish_reason": "stop",
				},
			},
		}
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			t.Errorf("failed to encode response: %v", err)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

func Test_goldenFile_basic_prints_assistant_message(t *testing.T) {
	srv := newCompletionServer(t, "Start with a single augmented model call.", nil)
	t.Setenv("GROQ_API_KEY", "test-key")
	t.Setenv("GROQ_API_URL", srv.URL)
	t.Setenv("NO_COLOR", "1")

	var gotStatusCode int
	gotStdout := testboil.CaptureStdout(t, func(t *testing.T) {
		gotStatusCode = run([]string{})
	})

	testboil.FailTestIfDiff(t, gotStatusCode, 0)
	testboil.AssertStringContains(t, gotStdout, "assistant: Start with a single augmented model call.")
}

func Test_goldenFile_basic_args_become_the_prompt(t *testing.T) {
	var gotBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotBody, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"1","object":"chat.completion","created":1,"model":"test","choices":[{"index":0,"message":{"role":"assistant","content":"ok"},"finish_reason":"stop"}]}`))
	}))
	t.Cleanup(srv.Close)
	t.Setenv("GROQ_API_KEY", "test-key")
	t.Setenv("GROQ_API_URL", srv.URL)
	t.Setenv("NO_COLOR", "1")

	var gotStatusCode int
	testboil.CaptureStdout(t, func(t *testing.T) {
		gotStatusCode = run([]string{"why", "do", "agents", "loop"})
	})

	testboil.FailTestIfDiff(t, gotStatusCode, 0)
	testboil.AssertStringContains(t, string(gotBody), "why do agents loop")
}

func Test_goldenFile_basic_requires_api_key(t *testing.T) {
	var amReqs atomic.Int32
	srv := newCompletionServer(t, "should never be requested", &amReqs)
	t.Setenv("GROQ_API_KEY", "")
	t.Setenv("GROQ_API_URL", srv.URL)
	t.Setenv("NO_COLOR", "1")

	var gotStatusCode int
	testboil.CaptureStdout(t, func(t *testing.T) {
		gotStatusCode = run([]string{})
	})

	testboil.FailTestIfDiff(t, gotStatusCode, 1)
	testboil.FailTestIfDiff(t, int(amReqs.Load()), 0)
}
