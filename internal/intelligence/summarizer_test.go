package intelligence

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Neoksnaman/ProTrack/internal/llm"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockLLMClient struct {
	response string
	err      error
	calls    []llm.GenerateRequest
}

func (m *mockLLMClient) Generate(_ context.Context, req llm.GenerateRequest) (*llm.GenerateResponse, error) {
	m.calls = append(m.calls, req)
	if m.err != nil {
		return nil, m.err
	}
	return &llm.GenerateResponse{Text: m.response, Model: "llama3.2"}, nil
}

func (m *mockLLMClient) Available(_ context.Context) bool { return m.err == nil }

func testFacts() ProjectFacts {
	return ProjectFacts{
		Name:        "Audit",
		Description: "Year-end audit",
		TeamMembers: []string{"Bob", "Carol"},
		StartDate:   "2026-01-05",
		Deadline:    "2026-06-30",
		Status:      "In Progress",
		Tasks:       []TaskFact{{Name: "Fieldwork", Status: "To Do"}},
	}
}

func mustJSON(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return string(data)
}

func TestSummarizeProject_ValidResponse(t *testing.T) {
	want := ProjectSummary{
		ExecutiveSummary:      "On track.",
		RiskAssessment:        "Fieldwork not started.",
		ActionableSuggestions: "Start fieldwork this week.",
	}
	client := &mockLLMClient{response: mustJSON(t, want)}

	got, err := NewSummarizer(client).SummarizeProject(context.Background(), testFacts())

	require.NoError(t, err)
	assert.Equal(t, want, *got)
	require.Len(t, client.calls, 1)
	req := client.calls[0]
	assert.Equal(t, llm.TaskProjectSummary, req.Task)
	assert.True(t, req.JSON)
	assert.Contains(t, req.UserPrompt, "Project Name: Audit")
	assert.Contains(t, req.UserPrompt, "Team Members: Bob, Carol")
	assert.Contains(t, req.UserPrompt, `"name":"Fieldwork"`)
}

func TestSummarizeProject_LLMErrorIsSingleCall(t *testing.T) {
	client := &mockLLMClient{err: llm.ErrUnavailable}

	got, err := NewSummarizer(client).SummarizeProject(context.Background(), testFacts())

	assert.Nil(t, got)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSummaryUnavailable)
	assert.ErrorIs(t, err, llm.ErrUnavailable)
	assert.Len(t, client.calls, 1)
}

func TestSummarizeProject_IncompleteOutput(t *testing.T) {
	client := &mockLLMClient{response: `{"executiveSummary": "ok", "riskAssessment": ""}`}

	_, err := NewSummarizer(client).SummarizeProject(context.Background(), testFacts())

	assert.ErrorIs(t, err, ErrSummaryUnavailable)
	assert.ErrorIs(t, err, llm.ErrInvalidOutput)
}

func TestSuggestActions_OmitsTasks(t *testing.T) {
	plan := ActionPlan{
		RiskAssessment:     "Deadline is tight.",
		BottleneckAnalysis: "Single reviewer.",
		Suggestions:        []string{"Add a reviewer", "Split fieldwork"},
		ExecutiveSummary:   "Needs attention.",
	}
	client := &mockLLMClient{response: "Here you go:\n```json\n" + mustJSON(t, plan) + "\n```"}

	got, err := NewSummarizer(client).SuggestActions(context.Background(), testFacts())

	require.NoError(t, err)
	assert.Equal(t, plan.Suggestions, got.Suggestions)
	require.Len(t, client.calls, 1)
	assert.Equal(t, llm.TaskSuggestions, client.calls[0].Task)
	assert.NotContains(t, client.calls[0].UserPrompt, "Tasks:")
}

func TestSuggestActions_RejectsEmptySuggestions(t *testing.T) {
	client := &mockLLMClient{response: `{"executiveSummary": "ok", "suggestions": []}`}

	_, err := NewSummarizer(client).SuggestActions(context.Background(), testFacts())

	assert.ErrorIs(t, err, llm.ErrInvalidOutput)
}

func TestAssessRisk(t *testing.T) {
	client := &mockLLMClient{response: `{"riskAssessment": "Late start", "bottleneckAnalysis": "Review queue"}`}

	got, err := NewSummarizer(client).AssessRisk(context.Background(), testFacts())

	require.NoError(t, err)
	assert.Equal(t, "Late start", got.RiskAssessment)
	assert.Equal(t, llm.TaskRiskAssessment, client.calls[0].Task)
}

func TestDisabled(t *testing.T) {
	s := Disabled()
	ctx := context.Background()

	_, err := s.SummarizeProject(ctx, testFacts())
	assert.ErrorIs(t, err, ErrSummaryUnavailable)
	_, err = s.SuggestActions(ctx, testFacts())
	assert.ErrorIs(t, err, ErrSummaryUnavailable)
	_, err = s.AssessRisk(ctx, testFacts())
	assert.ErrorIs(t, err, ErrSummaryUnavailable)
	assert.Contains(t, err.Error(), "disabled")
}

func TestSummarizeProject_WithHTTPTestServer(t *testing.T) {
	summary := ProjectSummary{
		ExecutiveSummary:      "Summary",
		RiskAssessment:        "Risk",
		ActionableSuggestions: "Act",
	}
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		assert.Equal(t, "/api/generate", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"model":    "test-model",
			"response": mustJSON(t, summary),
		})
	}))
	defer srv.Close()

	cfg := llm.DefaultConfig()
	cfg.Enabled = true
	cfg.Endpoint = srv.URL
	s := NewSummarizer(llm.NewOllamaClient(cfg, llm.NoopObserver{}))

	got, err := s.SummarizeProject(context.Background(), testFacts())

	require.NoError(t, err)
	assert.Equal(t, summary, *got)
	assert.Equal(t, 1, hits)
}

func TestSummarizeProject_ServerErrorNotRetried(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		http.Error(w, "model not loaded", http.StatusInternalServerError)
	}))
	defer srv.Close()

	cfg := llm.DefaultConfig()
	cfg.Enabled = true
	cfg.Endpoint = srv.URL
	s := NewSummarizer(llm.NewOllamaClient(cfg, nil))

	_, err := s.SummarizeProject(context.Background(), testFacts())

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrSummaryUnavailable)
	assert.Equal(t, 1, hits)
}
