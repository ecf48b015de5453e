package export

import (
	"testing"

	"github.com/google/uuid"

	"github.com/alpho07/mnch-mentorship-sub006/internal/types"
)

func TestFilterParticipants_NilAndEmptyPredicatesAreEquivalent(t *testing.T) {
	training := newTraining("EmONC Basic", types.TrainingKindFormal, testStart())
	addParticipant(training, newPerson("A", "B", nil), types.CompletionCompleted)
	addParticipant(training, newPerson("C", "D", nil), types.CompletionRegistered)

	fromNil := FilterParticipants(training, FilterPredicates{})
	fromEmpty := FilterParticipants(training, FilterPredicates{
		CountyIDs:     []uuid.UUID{},
		FacilityIDs:   []uuid.UUID{},
		DepartmentIDs: []uuid.UUID{},
		CadreIDs:      []uuid.UUID{},
		StartYears:    []int{},
	})

	if len(fromNil) != 2 || len(fromEmpty) != 2 {
		t.Fatalf("expected both predicate forms to keep all participants, got %d and %d", len(fromNil), len(fromEmpty))
	}
}

func TestFilterParticipants_CountyAppliesToFormalTrainingOnly(t *testing.T) {
	nairobi := newSubCounty("Nairobi", "Westlands")
	machakos := newSubCounty("Machakos", "Mavoko")
	inside := newPerson("A", "B", newFacility("Westlands Health Centre", "10001", nairobi))
	outside := newPerson("C", "D", newFacility("Mavoko Health Centre", "10002", machakos))

	pred := FilterPredicates{CountyIDs: []uuid.UUID{nairobi.CountyID}}

	formal := newTraining("EmONC Basic", types.TrainingKindFormal, testStart())
	addParticipant(formal, inside, types.CompletionCompleted)
	addParticipant(formal, outside, types.CompletionCompleted)
	kept := FilterParticipants(formal, pred)
	if len(kept) != 1 || kept[0].Person != inside {
		t.Fatalf("expected only the in-county participant on a formal training, got %d", len(kept))
	}

	// Mentorship participants are not geographically scoped.
	mentorship := newTraining("Facility Mentorship", types.TrainingKindMentorship, testStart())
	addParticipant(mentorship, inside, types.CompletionCompleted)
	addParticipant(mentorship, outside, types.CompletionCompleted)
	if kept := FilterParticipants(mentorship, pred); len(kept) != 2 {
		t.Fatalf("expected county predicate to be ignored for mentorship, got %d", len(kept))
	}
}

func TestFilterParticipants_FacilityAppliesToFormalTrainingOnly(t *testing.T) {
	sc := newSubCounty("Nairobi", "Westlands")
	facility := newFacility("Westlands Health Centre", "10001", sc)
	other := newFacility("Kangemi Dispensary", "10003", sc)

	pred := FilterPredicates{FacilityIDs: []uuid.UUID{facility.ID}}

	formal := newTraining("EmONC Basic", types.TrainingKindFormal, testStart())
	addParticipant(formal, newPerson("A", "B", facility), types.CompletionCompleted)
	addParticipant(formal, newPerson("C", "D", other), types.CompletionCompleted)
	if kept := FilterParticipants(formal, pred); len(kept) != 1 {
		t.Fatalf("expected 1 participant at the selected facility, got %d", len(kept))
	}

	mentorship := newTraining("Facility Mentorship", types.TrainingKindMentorship, testStart())
	addParticipant(mentorship, newPerson("A", "B", facility), types.CompletionCompleted)
	addParticipant(mentorship, newPerson("C", "D", other), types.CompletionCompleted)
	if kept := FilterParticipants(mentorship, pred); len(kept) != 2 {
		t.Fatalf("expected facility predicate to be ignored for mentorship, got %d", len(kept))
	}
}

func TestFilterParticipants_DepartmentAndCadreAlwaysApply(t *testing.T) {
	maternity := &types.Department{ID: uuid.New(), Name: "Maternity"}
	nurse := &types.Cadre{ID: uuid.New(), Name: "Nurse"}

	match := newPerson("A", "B", nil)
	match.DepartmentID = &maternity.ID
	match.Department = maternity
	match.CadreID = &nurse.ID
	match.Cadre = nurse

	mentorship := newTraining("Facility Mentorship", types.TrainingKindMentorship, testStart())
	addParticipant(mentorship, match, types.CompletionCompleted)
	addParticipant(mentorship, newPerson("C", "D", nil), types.CompletionCompleted)

	kept := FilterParticipants(mentorship, FilterPredicates{
		DepartmentIDs: []uuid.UUID{maternity.ID},
		CadreIDs:      []uuid.UUID{nurse.ID},
	})
	if len(kept) != 1 || kept[0].Person != match {
		t.Fatalf("expected department/cadre predicates to apply on mentorship, got %d", len(kept))
	}
}

func TestFilterParticipants_StartYearUsesTrainingStartDate(t *testing.T) {
	training := newTraining("EmONC Basic", types.TrainingKindFormal, testStart())
	p := addParticipant(training, newPerson("A", "B", nil), types.CompletionCompleted)
	// Registration in a different year must not matter.
	p.RegistrationDate = p.RegistrationDate.AddDate(1, 0, 0)

	if kept := FilterParticipants(training, FilterPredicates{StartYears: []int{2025}}); len(kept) != 1 {
		t.Fatalf("expected training start year 2025 to match, got %d participants", len(kept))
	}
	if kept := FilterParticipants(training, FilterPredicates{StartYears: []int{2024}}); len(kept) != 0 {
		t.Fatalf("expected no participants for a non-matching start year, got %d", len(kept))
	}
}
