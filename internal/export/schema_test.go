package export

import (
	"testing"

	"github.com/google/uuid"

	"github.com/alpho07/mnch-mentorship-sub006/internal/types"
)

func assessedTraining() *types.Training {
	training := newTraining("EmONC Basic", types.TrainingKindFormal, testStart())
	training.AssessmentsEnabled = true
	theory := assignCategory(training, "Theory", 40)
	assignCategory(training, "Practical", 60)
	p := addParticipant(training, newPerson("A", "B", nil), types.CompletionCompleted)
	recordResult(p, theory, "pass")
	return training
}

func TestBuildColumns_HeaderAndRowLengthsAlwaysMatch(t *testing.T) {
	training := assessedTraining()
	optionCombos := []ColumnOptions{
		{},
		{IncludeAssessments: true},
		{IncludeAssessments: true, IncludeCategoryColumns: true},
		{IncludeCategoryColumns: true},
		{IncludeAssessments: true, IncludeCategoryColumns: true, Incomplete: IncompleteDash},
	}

	for _, opts := range optionCombos {
		cols := BuildColumns(training, opts)
		headers := HeaderRow(cols)
		for _, p := range training.Participants {
			row := BuildRow(cols, p)
			if len(headers) != len(row) {
				t.Fatalf("opts %+v: header length %d != row length %d", opts, len(headers), len(row))
			}
		}
	}
}

func TestBuildColumns_FixedLeadingColumns(t *testing.T) {
	training := newTraining("EmONC Basic", types.TrainingKindFormal, testStart())
	cols := BuildColumns(training, ColumnOptions{})
	want := []string{
		"Participant Name", "County", "Sub-County", "MFL Code", "Facility Name",
		"Level of Care", "Department", "Cadre", "Phone", "Start Month", "Start Year",
	}
	headers := HeaderRow(cols)
	if len(headers) != len(want) {
		t.Fatalf("expected %d fixed columns got %d", len(want), len(headers))
	}
	for i, title := range want {
		if headers[i] != title {
			t.Fatalf("column %d: expected %q got %q", i, title, headers[i])
		}
	}
}

func TestBuildColumns_NoAssessmentColumnsWhenDisabled(t *testing.T) {
	training := assessedTraining()

	// include_assessments=false suppresses both per-category columns and
	// Overall Result regardless of other options.
	cols := BuildColumns(training, ColumnOptions{IncludeCategoryColumns: true})
	for _, h := range HeaderRow(cols) {
		if h == "Overall Result" || h == "Theory" || h == "Practical" {
			t.Fatalf("unexpected assessment column %q", h)
		}
	}
}

func TestBuildColumns_OverallResultIndependentOfCategoryColumns(t *testing.T) {
	training := assessedTraining()

	cols := BuildColumns(training, ColumnOptions{IncludeAssessments: true})
	headers := HeaderRow(cols)
	last := headers[len(headers)-1]
	if last != "Overall Result" {
		t.Fatalf("expected trailing Overall Result, got %q", last)
	}
	for _, h := range headers {
		if h == "Theory" || h == "Practical" {
			t.Fatalf("per-category column %q appended without the option", h)
		}
	}
}

func TestBuildColumns_NoAssessmentColumnsWhenTrainingDoesNotUseThem(t *testing.T) {
	// Flag set and categories assigned, but no participant has any result:
	// the derived gate stays closed.
	training := newTraining("EmONC Basic", types.TrainingKindFormal, testStart())
	training.AssessmentsEnabled = true
	assignCategory(training, "Theory", 40)
	addParticipant(training, newPerson("A", "B", nil), types.CompletionCompleted)

	cols := BuildColumns(training, ColumnOptions{IncludeAssessments: true, IncludeCategoryColumns: true})
	if len(cols) != 11 {
		t.Fatalf("expected only the 11 fixed columns, got %d", len(cols))
	}
}

func TestFacilityLevelOfCare_Heuristics(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"Kenyatta National Hospital", "National Referral"},
		{"Moi Teaching and Referral Hospital", "National Referral"},
		{"Machakos County Referral Hospital", "County Referral"},
		{"Nairobi Sub-County Hospital", "Sub-County Hospital"},
		{"Mbagathi Hospital", "Sub-County Hospital"},
		{"Kangemi Health Centre", "Health Centre"},
		{"Tassia Dispensary", "Dispensary"},
		{"St. Mary Clinic", "Health Centre"},
	}
	for _, tc := range cases {
		f := &types.Facility{ID: uuid.New(), Name: tc.name}
		if got := FacilityLevelOfCare(f); got != tc.want {
			t.Fatalf("%q: expected %q got %q", tc.name, tc.want, got)
		}
	}
}

func TestFacilityLevelOfCare_ExplicitTypeWins(t *testing.T) {
	f := &types.Facility{
		ID:   uuid.New(),
		Name: "Kenyatta National Hospital",
		FacilityType: &types.FacilityType{
			ID:   uuid.New(),
			Name: "Level 6 Hospital",
		},
	}
	if got := FacilityLevelOfCare(f); got != "Level 6 Hospital" {
		t.Fatalf("expected explicit facility type, got %q", got)
	}
}

func TestIncompletePolicyLabels(t *testing.T) {
	cases := []struct {
		policy IncompletePolicy
		want   string
	}{
		{IncompleteBlank, ""},
		{IncompleteNotAssessed, "NOT ASSESSED"},
		{IncompletePending, "PENDING"},
		{IncompleteDash, "—"},
		{"", "NOT ASSESSED"}, // default policy
	}
	for _, tc := range cases {
		if got := tc.policy.Label(); got != tc.want {
			t.Fatalf("policy %q: expected %q got %q", tc.policy, tc.want, got)
		}
	}
}

func TestBuildRow_IncompleteCellsFollowPolicy(t *testing.T) {
	training := assessedTraining()
	unassessed := addParticipant(training, newPerson("C", "D", nil), types.CompletionRegistered)

	cols := BuildColumns(training, ColumnOptions{
		IncludeAssessments:     true,
		IncludeCategoryColumns: true,
		Incomplete:             IncompletePending,
	})
	headers := HeaderRow(cols)
	row := BuildRow(cols, unassessed)
	for i, h := range headers {
		if h == "Theory" || h == "Practical" {
			if row[i] != "PENDING" {
				t.Fatalf("column %q: expected PENDING got %q", h, row[i])
			}
		}
	}
}
