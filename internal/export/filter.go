package export

import (
	"github.com/google/uuid"

	"github.com/alpho07/mnch-mentorship-sub006/internal/types"
)

// FilterPredicates are independent, AND-combined participant restrictions.
// A nil and an empty set are equivalent: both mean "no restriction".
type FilterPredicates struct {
	CountyIDs     []uuid.UUID `json:"county_ids,omitempty"`
	FacilityIDs   []uuid.UUID `json:"facility_ids,omitempty"`
	DepartmentIDs []uuid.UUID `json:"department_ids,omitempty"`
	CadreIDs      []uuid.UUID `json:"cadre_ids,omitempty"`
	StartYears    []int       `json:"start_years,omitempty"`
}

// FilterParticipants applies the predicate set to a training's participants.
// County and facility sets restrict formal trainings only; mentorship
// participants are not geographically scoped. Department and cadre sets
// always apply. Start years compare against the training's own start date,
// not the participant's registration date.
func FilterParticipants(t *types.Training, pred FilterPredicates) []*types.TrainingParticipant {
	counties := uuidSet(pred.CountyIDs)
	facilities := uuidSet(pred.FacilityIDs)
	departments := uuidSet(pred.DepartmentIDs)
	cadres := uuidSet(pred.CadreIDs)
	years := intSet(pred.StartYears)

	if years != nil {
		if _, ok := years[t.StartDate.Year()]; !ok {
			return nil
		}
	}

	geographic := t.Kind == types.TrainingKindFormal

	var out []*types.TrainingParticipant
	for _, p := range t.Participants {
		person := p.Person
		if geographic && counties != nil {
			if person == nil || !facilityInCounty(person.Facility, counties) {
				continue
			}
		}
		if geographic && facilities != nil {
			if person == nil || person.FacilityID == nil {
				continue
			}
			if _, ok := facilities[*person.FacilityID]; !ok {
				continue
			}
		}
		if departments != nil {
			if person == nil || person.DepartmentID == nil {
				continue
			}
			if _, ok := departments[*person.DepartmentID]; !ok {
				continue
			}
		}
		if cadres != nil {
			if person == nil || person.CadreID == nil {
				continue
			}
			if _, ok := cadres[*person.CadreID]; !ok {
				continue
			}
		}
		out = append(out, p)
	}
	return out
}

func facilityInCounty(f *types.Facility, counties map[uuid.UUID]struct{}) bool {
	if f == nil || f.SubCounty == nil {
		return false
	}
	_, ok := counties[f.SubCounty.CountyID]
	return ok
}

// uuidSet returns nil for both nil and empty input so every predicate treats
// the two identically as "no restriction".
func uuidSet(ids []uuid.UUID) map[uuid.UUID]struct{} {
	if len(ids) == 0 {
		return nil
	}
	set := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

func intSet(vals []int) map[int]struct{} {
	if len(vals) == 0 {
		return nil
	}
	set := make(map[int]struct{}, len(vals))
	for _, v := range vals {
		set[v] = struct{}{}
	}
	return set
}
