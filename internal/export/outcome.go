package export

import (
	"strings"

	"github.com/google/uuid"

	"github.com/alpho07/mnch-mentorship-sub006/internal/types"
)

type Outcome string

const (
	OutcomePass       Outcome = "PASS"
	OutcomeFail       Outcome = "FAIL"
	OutcomeIncomplete Outcome = "ASSESSMENT_INCOMPLETE"
	OutcomeCompleted  Outcome = "COMPLETED"
	OutcomeDropped    Outcome = "DROPPED"
	OutcomeInProgress Outcome = "IN_PROGRESS"
	OutcomeRegistered Outcome = "REGISTERED"
)

// Label is the display form used in cells; the canonical export path
// upper-cases it again, the preview path shows it as is.
func (o Outcome) Label() string {
	switch o {
	case OutcomePass:
		return "Pass"
	case OutcomeFail:
		return "Fail"
	case OutcomeIncomplete:
		return "Assessment Incomplete"
	case OutcomeCompleted:
		return "Completed"
	case OutcomeDropped:
		return "Dropped"
	case OutcomeInProgress:
		return "In Progress"
	default:
		return "Registered"
	}
}

// UsesAssessments is the derived gate behind every assessment column and
// outcome decision: the flag is set, at least one category is assigned, and
// at least one participant has at least one recorded result. It is
// recomputed per training, never cached across trainings.
func UsesAssessments(t *types.Training) bool {
	if t == nil || !t.AssessmentsEnabled || len(t.CategoryAssignments) == 0 {
		return false
	}
	for _, p := range t.Participants {
		if len(p.Results) > 0 {
			return true
		}
	}
	return false
}

// ComputeOutcome classifies one participant within one training.
//
// When the training does not use assessments the outcome maps purely from
// completion status. Otherwise every assigned category must carry a recorded
// result (any gap is ASSESSMENT_INCOMPLETE) and PASS requires a unanimous
// "pass" across categories. Assignment weights are displayed elsewhere but
// never read here.
func ComputeOutcome(p *types.TrainingParticipant, t *types.Training) Outcome {
	if !UsesAssessments(t) {
		return outcomeFromStatus(p.CompletionStatus)
	}

	allPass := true
	for _, assignment := range t.CategoryAssignments {
		result, ok := resultForCategory(p, assignment.CategoryID)
		if !ok {
			return OutcomeIncomplete
		}
		if !isPassResult(result) {
			allPass = false
		}
	}
	if allPass {
		return OutcomePass
	}
	return OutcomeFail
}

// computeOutcomeFromCounts is the fallback decision path, recomputed from
// assigned/assessed/passed counts. It must agree with ComputeOutcome for
// every input; a divergence is a defect.
func computeOutcomeFromCounts(p *types.TrainingParticipant, t *types.Training) Outcome {
	if !UsesAssessments(t) {
		return outcomeFromStatus(p.CompletionStatus)
	}

	assigned := len(t.CategoryAssignments)
	assessed := 0
	passed := 0
	for _, assignment := range t.CategoryAssignments {
		result, ok := resultForCategory(p, assignment.CategoryID)
		if !ok {
			continue
		}
		assessed++
		if isPassResult(result) {
			passed++
		}
	}

	if assessed < assigned {
		return OutcomeIncomplete
	}
	if passed == assigned {
		return OutcomePass
	}
	return OutcomeFail
}

func outcomeFromStatus(status string) Outcome {
	switch status {
	case types.CompletionCompleted:
		return OutcomeCompleted
	case types.CompletionDropped:
		return OutcomeDropped
	case types.CompletionInProgress:
		return OutcomeInProgress
	default:
		return OutcomeRegistered
	}
}

func resultForCategory(p *types.TrainingParticipant, categoryID uuid.UUID) (string, bool) {
	for _, r := range p.Results {
		if r.CategoryID == categoryID {
			return r.Result, true
		}
	}
	return "", false
}

func isPassResult(result string) bool {
	return strings.EqualFold(strings.TrimSpace(result), types.AssessmentResultPass)
}
