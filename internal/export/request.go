package export

import (
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var validate = validator.New()

// ExportRequest is the validated, ephemeral input for one export or preview
// interaction. It is never persisted across requests.
type ExportRequest struct {
	ExportType  ExportType  `json:"export_type" validate:"required,oneof=participants_by_training trainings_by_participant training_summary"`
	TrainingIDs []uuid.UUID `json:"training_ids"`
	PersonIDs   []uuid.UUID `json:"person_ids"`

	Format                     Format           `json:"format" validate:"omitempty,oneof=xlsx csv"`
	IncludeAssessments         bool             `json:"include_assessments"`
	IncludeCategoryColumns     bool             `json:"include_category_columns"`
	IncludeSummary             bool             `json:"include_summary"`
	IncludeAssessmentSummary   bool             `json:"include_assessment_summary"`
	IncludeCategoryDefinitions bool             `json:"include_category_definitions"`
	IncompleteDisplay          IncompletePolicy `json:"incomplete_display" validate:"omitempty,oneof=blank not_assessed pending dash"`

	Filters FilterPredicates `json:"filters"`
}

func (r *ExportRequest) Normalize() {
	if r.Format == "" {
		r.Format = FormatWorkbook
	}
	if r.IncompleteDisplay == "" {
		r.IncompleteDisplay = IncompleteNotAssessed
	}
}

// Validate fails fast, before any data is loaded.
func (r *ExportRequest) Validate(maxTrainings int) error {
	if err := validate.Struct(r); err != nil {
		return NewValidationError("invalid export request: %v", err)
	}

	switch r.ExportType {
	case ExportParticipantsByTraining, ExportTrainingSummary:
		if len(r.TrainingIDs) == 0 {
			return NewValidationError("at least one training must be selected for a %s export", r.ExportType)
		}
	case ExportTrainingsByParticipant:
		if len(r.PersonIDs) == 0 {
			return NewValidationError("at least one participant must be selected for a %s export", r.ExportType)
		}
	}

	if maxTrainings > 0 && len(r.TrainingIDs) > maxTrainings {
		return NewValidationError("%d trainings selected, the limit is %d", len(r.TrainingIDs), maxTrainings)
	}
	return nil
}

// AssembleOptions maps the request onto assembler options. The canonical
// download path upper-cases text; the preview path keeps natural case.
func (r *ExportRequest) AssembleOptions(uppercase bool, maxRows int) AssembleOptions {
	return AssembleOptions{
		Type:                       r.ExportType,
		IncludeAssessments:         r.IncludeAssessments,
		IncludeCategoryColumns:     r.IncludeCategoryColumns,
		IncludeSummary:             r.IncludeSummary,
		IncludeAssessmentSummary:   r.IncludeAssessmentSummary,
		IncludeCategoryDefinitions: r.IncludeCategoryDefinitions,
		Incomplete:                 r.IncompleteDisplay,
		Uppercase:                  uppercase,
		Filters:                    r.Filters,
		MaxRows:                    maxRows,
	}
}
