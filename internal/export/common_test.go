package export

import (
	"time"

	"github.com/google/uuid"

	"github.com/alpho07/mnch-mentorship-sub006/internal/types"
)

func newSubCounty(countyName, subCountyName string) *types.SubCounty {
	county := &types.County{ID: uuid.New(), Name: countyName}
	return &types.SubCounty{
		ID:       uuid.New(),
		Name:     subCountyName,
		CountyID: county.ID,
		County:   county,
	}
}

func newFacility(name, mflCode string, sc *types.SubCounty) *types.Facility {
	f := &types.Facility{ID: uuid.New(), Name: name, MFLCode: mflCode}
	if sc != nil {
		f.SubCountyID = &sc.ID
		f.SubCounty = sc
	}
	return f
}

func newPerson(firstName, lastName string, f *types.Facility) *types.Person {
	p := &types.Person{
		ID:        uuid.New(),
		FirstName: firstName,
		LastName:  lastName,
		Phone:     "0700000000",
	}
	if f != nil {
		p.FacilityID = &f.ID
		p.Facility = f
	}
	return p
}

func newTraining(title, kind string, start time.Time) *types.Training {
	return &types.Training{
		ID:        uuid.New(),
		Title:     title,
		Kind:      kind,
		StartDate: start,
		EndDate:   start.AddDate(0, 0, 5),
	}
}

func assignCategory(t *types.Training, name string, weight float64) *types.AssessmentCategory {
	category := &types.AssessmentCategory{ID: uuid.New(), Name: name}
	t.CategoryAssignments = append(t.CategoryAssignments, &types.TrainingCategoryAssignment{
		ID:         uuid.New(),
		TrainingID: t.ID,
		CategoryID: category.ID,
		Category:   category,
		Weight:     weight,
		Sequence:   len(t.CategoryAssignments) + 1,
	})
	return category
}

func addParticipant(t *types.Training, person *types.Person, status string) *types.TrainingParticipant {
	p := &types.TrainingParticipant{
		ID:               uuid.New(),
		TrainingID:       t.ID,
		PersonID:         person.ID,
		Person:           person,
		CompletionStatus: status,
		RegistrationDate: t.StartDate,
	}
	t.Participants = append(t.Participants, p)
	return p
}

func recordResult(p *types.TrainingParticipant, category *types.AssessmentCategory, result string) {
	p.Results = append(p.Results, &types.AssessmentResult{
		ID:            uuid.New(),
		ParticipantID: p.ID,
		CategoryID:    category.ID,
		Category:      category,
		Result:        result,
	})
}

func testStart() time.Time {
	return time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)
}
