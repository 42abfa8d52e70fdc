// Package intelligence produces AI project summaries from cached project
// facts. Each request is a single model call; nothing is retried or cached.
package intelligence

import (
	"context"
	"errors"
	"fmt"

	"github.com/Neoksnaman/ProTrack/internal/llm"
)

// ErrSummaryUnavailable wraps every summarizer failure.
var ErrSummaryUnavailable = errors.New("AI summary unavailable")

// ProjectSummary is the executive summary shape.
type ProjectSummary struct {
	ExecutiveSummary      string `json:"executiveSummary"`
	RiskAssessment        string `json:"riskAssessment"`
	ActionableSuggestions string `json:"actionableSuggestions"`
}

// ActionPlan is the suggestions shape.
type ActionPlan struct {
	RiskAssessment     string   `json:"riskAssessment"`
	BottleneckAnalysis string   `json:"bottleneckAnalysis"`
	Suggestions        []string `json:"suggestions"`
	ExecutiveSummary   string   `json:"executiveSummary"`
}

type RiskReport struct {
	RiskAssessment     string `json:"riskAssessment"`
	BottleneckAnalysis string `json:"bottleneckAnalysis"`
}

// Summarizer asks a language model about one project.
type Summarizer interface {
	// SummarizeProject includes the project's tasks in the request.
	SummarizeProject(ctx context.Context, facts ProjectFacts) (*ProjectSummary, error)
	SuggestActions(ctx context.Context, facts ProjectFacts) (*ActionPlan, error)
	AssessRisk(ctx context.Context, facts ProjectFacts) (*RiskReport, error)
}

type summarizer struct {
	client llm.Client
}

func NewSummarizer(client llm.Client) Summarizer {
	return &summarizer{client: client}
}

func (s *summarizer) SummarizeProject(ctx context.Context, facts ProjectFacts) (*ProjectSummary, error) {
	return ask(ctx, s.client, llm.TaskProjectSummary, summarySystemPrompt, facts.prompt(true), validateSummary)
}

func (s *summarizer) SuggestActions(ctx context.Context, facts ProjectFacts) (*ActionPlan, error) {
	return ask(ctx, s.client, llm.TaskSuggestions, suggestionsSystemPrompt, facts.prompt(false), validateActionPlan)
}

func (s *summarizer) AssessRisk(ctx context.Context, facts ProjectFacts) (*RiskReport, error) {
	return ask(ctx, s.client, llm.TaskRiskAssessment, riskSystemPrompt, facts.prompt(true), validateRisk)
}

func ask[T any](ctx context.Context, client llm.Client, task llm.TaskType, system, user string, validate llm.Validator[T]) (*T, error) {
	resp, err := client.Generate(ctx, llm.GenerateRequest{
		Task:         task,
		SystemPrompt: system,
		UserPrompt:   user,
		JSON:         true,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSummaryUnavailable, err)
	}
	out, err := llm.ExtractJSON(resp.Text, validate)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrSummaryUnavailable, err)
	}
	return &out, nil
}

// Disabled returns a Summarizer that fails every request. It stands in
// when no language model is configured.
func Disabled() Summarizer { return disabled{} }

var errDisabled = errors.New("summaries are disabled")

type disabled struct{}

func (disabled) SummarizeProject(context.Context, ProjectFacts) (*ProjectSummary, error) {
	return nil, fmt.Errorf("%w: %w", ErrSummaryUnavailable, errDisabled)
}

func (disabled) SuggestActions(context.Context, ProjectFacts) (*ActionPlan, error) {
	return nil, fmt.Errorf("%w: %w", ErrSummaryUnavailable, errDisabled)
}

func (disabled) AssessRisk(context.Context, ProjectFacts) (*RiskReport, error) {
	return nil, fmt.Errorf("%w: %w", ErrSummaryUnavailable, errDisabled)
}
