package engine

import (
	"time"

	"netdoc/model"
)

// Assemble combines an assessment, the classified categories, and the
// dispatch outcomes into a diagnostic report. Pure aggregation: category
// order and per-category attempt order are preserved as given.
func Assemble(assessment model.QualityAssessment, cats []model.ProblemCategory, outcomes map[model.ProblemCategory][]model.RemediationOutcome) model.DiagnosticReport {
	rep := model.DiagnosticReport{
		Timestamp:     time.Now(),
		TotalScore:    assessment.TotalScore,
		OverallStatus: assessment.OverallStatus,
		Assessment:    assessment,
		Problems:      make([]model.ProblemCategory, len(cats)),
	}
	copy(rep.Problems, cats)

	if len(outcomes) > 0 {
		rep.Remediations = make(map[model.ProblemCategory][]model.RemediationOutcome, len(outcomes))
		for cat, list := range outcomes {
			cp := make([]model.RemediationOutcome, len(list))
			copy(cp, list)
			rep.Remediations[cat] = cp
		}
	}
	return rep
}
