package intelligence

import (
	"errors"
	"strings"
)

func blank(s string) bool { return strings.TrimSpace(s) == "" }

func validateSummary(s ProjectSummary) error {
	switch {
	case blank(s.ExecutiveSummary):
		return errors.New("executiveSummary is empty")
	case blank(s.RiskAssessment):
		return errors.New("riskAssessment is empty")
	case blank(s.ActionableSuggestions):
		return errors.New("actionableSuggestions is empty")
	}
	return nil
}

func validateActionPlan(p ActionPlan) error {
	if blank(p.ExecutiveSummary) {
		return errors.New("executiveSummary is empty")
	}
	if len(p.Suggestions) == 0 {
		return errors.New("suggestions is empty")
	}
	for _, s := range p.Suggestions {
		if blank(s) {
			return errors.New("suggestions contains an empty entry")
		}
	}
	return nil
}

func validateRisk(r RiskReport) error {
	if blank(r.RiskAssessment) {
		return errors.New("riskAssessment is empty")
	}
	if blank(r.BottleneckAnalysis) {
		return errors.New("bottleneckAnalysis is empty")
	}
	return nil
}
