package export

import (
	"strconv"
	"strings"

	"github.com/alpho07/mnch-mentorship-sub006/internal/types"
)

// IncompletePolicy is the configured rendering for a per-category cell with
// no recorded result.
type IncompletePolicy string

const (
	IncompleteBlank       IncompletePolicy = "blank"
	IncompleteNotAssessed IncompletePolicy = "not_assessed"
	IncompletePending     IncompletePolicy = "pending"
	IncompleteDash        IncompletePolicy = "dash"
)

func (p IncompletePolicy) Label() string {
	switch p {
	case IncompleteBlank:
		return ""
	case IncompletePending:
		return "PENDING"
	case IncompleteDash:
		return "—"
	default:
		return "NOT ASSESSED"
	}
}

type ColumnOptions struct {
	IncludeAssessments     bool
	IncludeCategoryColumns bool
	Incomplete             IncompletePolicy
}

// Column pairs a header title with its cell generator. Headers and rows are
// both derived from the same descriptor list, so a header and any row built
// from it always have equal length.
type Column struct {
	Title string
	Value func(p *types.TrainingParticipant) string
}

// BuildColumns derives the ordered column list for one training. The fixed
// leading columns are always present; per-category and Overall Result
// columns depend on the options and on whether the training actually uses
// assessments.
func BuildColumns(t *types.Training, opts ColumnOptions) []Column {
	cols := []Column{
		{Title: "Participant Name", Value: personName},
		{Title: "County", Value: personCounty},
		{Title: "Sub-County", Value: personSubCounty},
		{Title: "MFL Code", Value: personMFLCode},
		{Title: "Facility Name", Value: personFacilityName},
		{Title: "Level of Care", Value: personLevelOfCare},
		{Title: "Department", Value: personDepartment},
		{Title: "Cadre", Value: personCadre},
		{Title: "Phone", Value: personPhone},
		{Title: "Start Month", Value: func(*types.TrainingParticipant) string {
			return t.StartDate.Month().String()
		}},
		{Title: "Start Year", Value: func(*types.TrainingParticipant) string {
			return strconv.Itoa(t.StartDate.Year())
		}},
	}

	assessed := UsesAssessments(t)

	if opts.IncludeAssessments && opts.IncludeCategoryColumns && assessed && len(t.CategoryAssignments) > 0 {
		for _, assignment := range t.CategoryAssignments {
			categoryID := assignment.CategoryID
			title := ""
			if assignment.Category != nil {
				title = assignment.Category.Name
			}
			cols = append(cols, Column{
				Title: title,
				Value: func(p *types.TrainingParticipant) string {
					result, ok := resultForCategory(p, categoryID)
					if !ok {
						return opts.Incomplete.Label()
					}
					return result
				},
			})
		}
	}

	// Overall Result is independent of whether per-category columns were
	// included.
	if opts.IncludeAssessments && assessed {
		cols = append(cols, Column{
			Title: "Overall Result",
			Value: func(p *types.TrainingParticipant) string {
				return ComputeOutcome(p, t).Label()
			},
		})
	}

	return cols
}

func HeaderRow(cols []Column) []string {
	headers := make([]string, len(cols))
	for i, c := range cols {
		headers[i] = c.Title
	}
	return headers
}

func BuildRow(cols []Column, p *types.TrainingParticipant) []string {
	row := make([]string, len(cols))
	for i, c := range cols {
		row[i] = c.Value(p)
	}
	return row
}

// FacilityLevelOfCare prefers the explicit facility type name. Without one
// it derives a classification from ordered, case-insensitive substring rules
// over the facility name, defaulting to Health Centre. A "sub" county
// hospital is carved out of the county-referral rule so that names like
// "Nairobi Sub-County Hospital" classify as Sub-County Hospital.
func FacilityLevelOfCare(f *types.Facility) string {
	if f == nil {
		return ""
	}
	if f.FacilityType != nil && strings.TrimSpace(f.FacilityType.Name) != "" {
		return f.FacilityType.Name
	}

	name := strings.ToLower(f.Name)
	switch {
	case strings.Contains(name, "national") || strings.Contains(name, "kenyatta") || strings.Contains(name, "moi"):
		return "National Referral"
	case strings.Contains(name, "county") && (strings.Contains(name, "hospital") || strings.Contains(name, "referral")):
		if strings.Contains(name, "sub") {
			return "Sub-County Hospital"
		}
		return "County Referral"
	case strings.Contains(name, "hospital") || strings.Contains(name, "sub"):
		return "Sub-County Hospital"
	case strings.Contains(name, "health centre") || strings.Contains(name, "health center"):
		return "Health Centre"
	case strings.Contains(name, "dispensary"):
		return "Dispensary"
	default:
		return "Health Centre"
	}
}

func personName(p *types.TrainingParticipant) string {
	if p.Person == nil {
		return ""
	}
	return p.Person.FullName()
}

func personCounty(p *types.TrainingParticipant) string {
	if f := personFacility(p); f != nil && f.SubCounty != nil && f.SubCounty.County != nil {
		return f.SubCounty.County.Name
	}
	return ""
}

func personSubCounty(p *types.TrainingParticipant) string {
	if f := personFacility(p); f != nil && f.SubCounty != nil {
		return f.SubCounty.Name
	}
	return ""
}

func personMFLCode(p *types.TrainingParticipant) string {
	if f := personFacility(p); f != nil {
		return f.MFLCode
	}
	return ""
}

func personFacilityName(p *types.TrainingParticipant) string {
	if f := personFacility(p); f != nil {
		return f.Name
	}
	return ""
}

func personLevelOfCare(p *types.TrainingParticipant) string {
	return FacilityLevelOfCare(personFacility(p))
}

func personDepartment(p *types.TrainingParticipant) string {
	if p.Person != nil && p.Person.Department != nil {
		return p.Person.Department.Name
	}
	return ""
}

func personCadre(p *types.TrainingParticipant) string {
	if p.Person != nil && p.Person.Cadre != nil {
		return p.Person.Cadre.Name
	}
	return ""
}

func personPhone(p *types.TrainingParticipant) string {
	if p.Person == nil {
		return ""
	}
	return p.Person.Phone
}

func personFacility(p *types.TrainingParticipant) *types.Facility {
	if p.Person == nil {
		return nil
	}
	return p.Person.Facility
}
