package formatter

import (
	"fmt"
	"strings"

	"github.com/Neoksnaman/ProTrack/internal/intelligence"
)

func section(b *strings.Builder, title, body string) {
	if b.Len() > 0 {
		b.WriteString("\n\n")
	}
	b.WriteString(StyleHeader.Render(title))
	b.WriteString("\n")
	b.WriteString(body)
}

func FormatSummary(s *intelligence.ProjectSummary) string {
	var b strings.Builder
	section(&b, "Executive summary", s.ExecutiveSummary)
	section(&b, "Risk assessment", s.RiskAssessment)
	section(&b, "Suggestions", s.ActionableSuggestions)
	return RenderBox("AI summary", b.String())
}

func FormatActionPlan(p *intelligence.ActionPlan) string {
	var b strings.Builder
	section(&b, "Executive summary", p.ExecutiveSummary)
	section(&b, "Risk assessment", p.RiskAssessment)
	section(&b, "Bottlenecks", p.BottleneckAnalysis)

	items := make([]string, 0, len(p.Suggestions))
	for i, s := range p.Suggestions {
		items = append(items, fmt.Sprintf("%d. %s", i+1, s))
	}
	section(&b, "Suggestions", strings.Join(items, "\n"))
	return RenderBox("AI suggestions", b.String())
}

func FormatRiskReport(r *intelligence.RiskReport) string {
	var b strings.Builder
	section(&b, "Risk assessment", r.RiskAssessment)
	section(&b, "Bottlenecks", r.BottleneckAnalysis)
	return RenderBox("AI risk report", b.String())
}
