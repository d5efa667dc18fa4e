package main

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/baalimago/go_away_boilerplate/pkg/testboil"
)

type scriptedReply struct {
	status  int
	content string
}

func newRouterServer(t *testing.T, replies []scriptedReply, gotBodies *[]string) *httptest.Server {
	t.Helper()
	var mu sync.Mutex
	var amReqs int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mu.Lock()
		defer mu.Unlock()
		reqBody, _ := io.ReadAll(r.Body)
		if gotBodies != nil {
			*gotBodies = append(*gotBodies, string(reqBody))
		}
		if amReqs >= len(replies) {
			t.Errorf("got more requests than scripted replies: %v", amReqs+1)
			http.Error(w, "out of scripted replies", http.StatusInternalServerError)
			return
		}
		reply := replies[amReqs]
		amReqs++
		if reply.status != 0 && reply.status != http.StatusOK {
			http.Error(w, reply.content, reply.status)
			return
		}
		resp := map[string]any{
			"id":      "chatcmpl-test",
			"object":  "chat.completion",
			"created": 1,
			"model":   "test",
			"choices": []map[string]any{
				{
					"index":         0,
					"message":       map[string]any{"role": "assistant", "content": reply.content},
					"finish_reason": "stop",
				},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(resp); err != nil {
			t.Errorf("failed to encode response: %v", err)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

const technicalRouting = `{"agent_type":"technical","confidence":0.95,"needs_clarification":false,"response_to_user":"Let me route you to a technical specialist."}`

func Test_goldenFile_callRouter_routes_to_specialist(t *testing.T) {
	var gotBodies []string
	srv := newRouterServer(t, []scriptedReply{
		{content: technicalRouting},
		{content: "Check the save path permissions and add retry logic."},
	}, &gotBodies)
	t.Setenv("GROQ_API_KEY", "test-key")
	t.Setenv("GROQ_API_URL", srv.URL)
	t.Setenv("NO_COLOR", "1")

	var gotStatusCode int
	gotStdout := testboil.CaptureStdout(t, func(t *testing.T) {
		gotStatusCode = run([]string{"My application keeps crashing when I try to save the game state"})
	})

	testboil.FailTestIfDiff(t, gotStatusCode, 0)
	testboil.AssertStringContains(t, gotStdout, "Query: My application keeps crashing when I try to save the game state")
	testboil.AssertStringContains(t, gotStdout, "Routing Result:")
	testboil.AssertStringContains(t, gotStdout, "Agent Type: technical")
	testboil.AssertStringContains(t, gotStdout, "Confidence: 0.95")
	testboil.AssertStringContains(t, gotStdout, "Needs Clarification: false")
	testboil.AssertStringContains(t, gotStdout, "Response to User: Let me route you to a technical specialist.")
	testboil.AssertStringContains(t, gotStdout, "--> Routing to Technical Agent...")
	testboil.AssertStringContains(t, gotStdout, "Agent Response: Check the save path permissions and add retry logic.")
	testboil.AssertStringContains(t, gotStdout, strings.Repeat("-", 80))

	if len(gotBodies) != 2 {
		t.Fatalf("expected 2 completion requests, got: %v", len(gotBodies))
	}
	// The router runs in json mode, the specialist does not
	testboil.AssertStringContains(t, gotBodies[0], `"response_format":{"type":"json_object"}`)
	if strings.Contains(gotBodies[1], "json_object") {
		t.Fatalf("expected specialist request without json mode, got: %v", gotBodies[1])
	}
	testboil.AssertStringContains(t, gotBodies[1], "technical support agent")
}

func Test_goldenFile_callRouter_irrelevant_needs_no_specialist(t *testing.T) {
	routing := `{"agent_type":"irrelevant","confidence":0.9,"needs_clarification":false,"response_to_user":"I can only help with technical support, billing or product recommendations."}`
	var gotBodies []string
	srv := newRouterServer(t, []scriptedReply{{content: routing}}, &gotBodies)
	t.Setenv("GROQ_API_KEY", "test-key")
	t.Setenv("GROQ_API_URL", srv.URL)
	t.Setenv("NO_COLOR", "1")

	var gotStatusCode int
	gotStdout := testboil.CaptureStdout(t, func(t *testing.T) {
		gotStatusCode = run([]string{"Tell me a joke about the weather"})
	})

	testboil.FailTestIfDiff(t, gotStatusCode, 0)
	testboil.AssertStringContains(t, gotStdout, "--> No specific agent required (irrelevant). User response provided by router.")
	if len(gotBodies) != 1 {
		t.Fatalf("expected no specialist request, got %v requests", len(gotBodies))
	}
}

func Test_goldenFile_callRouter_falls_back_on_unparseable_routing(t *testing.T) {
	srv := newRouterServer(t, []scriptedReply{{content: "I think this is technical, probably?"}}, nil)
	t.Setenv("GROQ_API_KEY", "test-key")
	t.Setenv("GROQ_API_URL", srv.URL)
	t.Setenv("NO_COLOR", "1")

	var gotStatusCode int
	gotStdout := testboil.CaptureStdout(t, func(t *testing.T) {
		gotStatusCode = run([]string{"I'm having trouble but I'm not sure what's wrong"})
	})

	testboil.FailTestIfDiff(t, gotStatusCode, 0)
	testboil.AssertStringContains(t, gotStdout, "Agent Type: unknown")
	testboil.AssertStringContains(t, gotStdout, "Clarification Question: I'm not sure how to help. Can you provide more details?")
	testboil.AssertStringContains(t, gotStdout, "--> No specific agent required (unknown). User response provided by router.")
}

func Test_goldenFile_callRouter_falls_back_on_made_up_agent_type(t *testing.T) {
	routing := `{"agent_type":"therapist","confidence":0.9,"needs_clarification":false,"response_to_user":"hm"}`
	srv := newRouterServer(t, []scriptedReply{{content: routing}}, nil)
	t.Setenv("GROQ_API_KEY", "test-key")
	t.Setenv("GROQ_API_URL", srv.URL)
	t.Setenv("NO_COLOR", "1")

	var gotStatusCode int
	gotStdout := testboil.CaptureStdout(t, func(t *testing.T) {
		gotStatusCode = run([]string{"help"})
	})

	testboil.FailTestIfDiff(t, gotStatusCode, 0)
	testboil.AssertStringContains(t, gotStdout, "Agent Type: unknown")
}

func Test_goldenFile_callRouter_clamps_confidence(t *testing.T) {
	routing := `{"agent_type":"irrelevant","confidence":1.7,"needs_clarification":false,"response_to_user":"nope"}`
	srv := newRouterServer(t, []scriptedReply{{content: routing}}, nil)
	t.Setenv("GROQ_API_KEY", "test-key")
	t.Setenv("GROQ_API_URL", srv.URL)
	t.Setenv("NO_COLOR", "1")

	var gotStatusCode int
	gotStdout := testboil.CaptureStdout(t, func(t *testing.T) {
		gotStatusCode = run([]string{"whatever"})
	})

	testboil.FailTestIfDiff(t, gotStatusCode, 0)
	testboil.AssertStringContains(t, gotStdout, "Confidence: 1.00")
}

func Test_goldenFile_callRouter_specialist_error_does_not_abort(t *testing.T) {
	srv := newRouterServer(t, []scriptedReply{
		{content: technicalRouting},
		{status: http.StatusInternalServerError, content: "model fell over"},
	}, nil)
	t.Setenv("GROQ_API_KEY", "test-key")
	t.Setenv("GROQ_API_URL", srv.URL)
	t.Setenv("NO_COLOR", "1")

	var gotStatusCode int
	gotStdout := testboil.CaptureStdout(t, func(t *testing.T) {
		gotStatusCode = run([]string{"My application keeps crashing"})
	})

	testboil.FailTestIfDiff(t, gotStatusCode, 0)
	testboil.AssertStringContains(t, gotStdout, "!! Error processing query:")
	testboil.AssertStringContains(t, gotStdout, strings.Repeat("-", 80))
}

func Test_goldenFile_callRouter_demo_mode_runs_all_queries(t *testing.T) {
	routing := `{"agent_type":"irrelevant","confidence":0.5,"needs_clarification":false,"response_to_user":"demo"}`
	var amReqs atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		amReqs.Add(1)
		resp := map[string]any{
			"id": "chatcmpl-test", "object": "chat.completion", "created": 1, "model": "test",
			"choices": []map[string]any{
				{"index": 0, "message": map[string]any{"role": "assistant", "content": routing}, "finish_reason": "stop"},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(resp)
	}))
	t.Cleanup(srv.Close)
	t.Setenv("GROQ_API_KEY", "test-key")
	t.Setenv("GROQ_API_URL", srv.URL)
	t.Setenv("NO_COLOR", "1")

	var gotStatusCode int
	gotStdout := testboil.CaptureStdout(t, func(t *testing.T) {
		gotStatusCode = run([]string{})
	})

	testboil.FailTestIfDiff(t, gotStatusCode, 0)
	testboil.FailTestIfDiff(t, strings.Count(gotStdout, "\nQuery: "), len(defaultQueries))
	testboil.FailTestIfDiff(t, int(amReqs.Load()), len(defaultQueries))
}

func Test_goldenFile_callRouter_requires_api_key(t *testing.T) {
	var amReqs atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		amReqs.Add(1)
	}))
	t.Cleanup(srv.Close)
	t.Setenv("GROQ_API_KEY", "")
	t.Setenv("GROQ_API_URL", srv.URL)
	t.Setenv("NO_COLOR", "1")

	var gotStatusCode int
	testboil.CaptureStdout(t, func(t *testing.T) {
		gotStatusCode = run([]string{"anything"})
	})

	testboil.FailTestIfDiff(t, gotStatusCode, 1)
	testboil.FailTestIfDiff(t, int(amReqs.Load()), 0)
}
