package export

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestExportRequest_NormalizeDefaults(t *testing.T) {
	r := &ExportRequest{ExportType: ExportParticipantsByTraining}
	r.Normalize()
	if r.Format != FormatWorkbook {
		t.Fatalf("expected default format xlsx, got %q", r.Format)
	}
	if r.IncompleteDisplay != IncompleteNotAssessed {
		t.Fatalf("expected default incomplete display not_assessed, got %q", r.IncompleteDisplay)
	}

	// Explicit choices survive normalization.
	r = &ExportRequest{
		ExportType:        ExportParticipantsByTraining,
		Format:            FormatDelimited,
		IncompleteDisplay: IncompleteDash,
	}
	r.Normalize()
	if r.Format != FormatDelimited || r.IncompleteDisplay != IncompleteDash {
		t.Fatalf("normalization overwrote explicit values: %q %q", r.Format, r.IncompleteDisplay)
	}
}

func TestExportRequest_ValidateRequiredSelections(t *testing.T) {
	trainingID := uuid.New()
	personID := uuid.New()

	cases := []struct {
		name    string
		request ExportRequest
		ok      bool
	}{
		{
			name:    "participants export needs trainings",
			request: ExportRequest{ExportType: ExportParticipantsByTraining},
		},
		{
			name:    "summary export needs trainings",
			request: ExportRequest{ExportType: ExportTrainingSummary},
		},
		{
			name:    "person export needs persons",
			request: ExportRequest{ExportType: ExportTrainingsByParticipant},
		},
		{
			name: "participants export with a training",
			request: ExportRequest{
				ExportType:  ExportParticipantsByTraining,
				TrainingIDs: []uuid.UUID{trainingID},
			},
			ok: true,
		},
		{
			name: "person export with a person",
			request: ExportRequest{
				ExportType: ExportTrainingsByParticipant,
				PersonIDs:  []uuid.UUID{personID},
			},
			ok: true,
		},
		{
			name:    "unknown export type",
			request: ExportRequest{ExportType: ExportType("everything"), TrainingIDs: []uuid.UUID{trainingID}},
		},
		{
			name: "unknown format",
			request: ExportRequest{
				ExportType:  ExportParticipantsByTraining,
				TrainingIDs: []uuid.UUID{trainingID},
				Format:      Format("pdf"),
			},
		},
		{
			name: "unknown incomplete display",
			request: ExportRequest{
				ExportType:        ExportParticipantsByTraining,
				TrainingIDs:       []uuid.UUID{trainingID},
				IncompleteDisplay: IncompletePolicy("hidden"),
			},
		},
	}

	for _, tc := range cases {
		err := tc.request.Validate(100)
		if tc.ok && err != nil {
			t.Fatalf("%s: unexpected error %v", tc.name, err)
		}
		if !tc.ok {
			var validationErr *ValidationError
			if !errors.As(err, &validationErr) {
				t.Fatalf("%s: expected ValidationError, got %v", tc.name, err)
			}
		}
	}
}

func TestExportRequest_ValidateTrainingCap(t *testing.T) {
	ids := make([]uuid.UUID, 3)
	for i := range ids {
		ids[i] = uuid.New()
	}
	r := ExportRequest{ExportType: ExportParticipantsByTraining, TrainingIDs: ids}

	if err := r.Validate(3); err != nil {
		t.Fatalf("expected selection at the cap to pass, got %v", err)
	}
	if err := r.Validate(2); err == nil {
		t.Fatalf("expected selection above the cap to fail")
	}
	// Zero disables the cap.
	if err := r.Validate(0); err != nil {
		t.Fatalf("expected no cap when limit is zero, got %v", err)
	}
}

func TestExportRequest_AssembleOptionsCarryRequestChoices(t *testing.T) {
	county := uuid.New()
	r := ExportRequest{
		ExportType:             ExportParticipantsByTraining,
		IncludeAssessments:     true,
		IncludeCategoryColumns: true,
		IncompleteDisplay:      IncompletePending,
		Filters:                FilterPredicates{CountyIDs: []uuid.UUID{county}},
	}

	opts := r.AssembleOptions(true, 500)
	if !opts.Uppercase || opts.MaxRows != 500 {
		t.Fatalf("expected caller-controlled options to pass through, got %+v", opts)
	}
	if opts.Type != ExportParticipantsByTraining || !opts.IncludeAssessments || !opts.IncludeCategoryColumns {
		t.Fatalf("request choices lost in mapping: %+v", opts)
	}
	if opts.Incomplete != IncompletePending {
		t.Fatalf("expected incomplete policy to pass through, got %q", opts.Incomplete)
	}
	if len(opts.Filters.CountyIDs) != 1 || opts.Filters.CountyIDs[0] != county {
		t.Fatalf("expected filters to pass through")
	}
}
