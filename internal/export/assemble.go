package export

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/alpho07/mnch-mentorship-sub006/internal/types"
)

type ExportType string

const (
	ExportParticipantsByTraining ExportType = "participants_by_training"
	ExportTrainingsByParticipant ExportType = "trainings_by_participant"
	ExportTrainingSummary        ExportType = "training_summary"
)

// InfoLine is one descriptive preamble line above a block's table.
type InfoLine struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Block is one named tabular unit: one worksheet in the workbook encoding,
// one blank-line separated section in the delimited encoding.
type Block struct {
	ID      string     `json:"id"`
	Name    string     `json:"name"`
	Info    []InfoLine `json:"info"`
	Headers []string   `json:"headers"`
	Rows    [][]string `json:"rows"`
}

type AssembleOptions struct {
	Type                       ExportType
	IncludeAssessments         bool
	IncludeCategoryColumns     bool
	IncludeSummary             bool
	IncludeAssessmentSummary   bool
	IncludeCategoryDefinitions bool
	Incomplete                 IncompletePolicy
	Uppercase                  bool
	Filters                    FilterPredicates
	MaxRows                    int
}

type AssembleInput struct {
	Trainings   []*types.Training
	Persons     []*types.Person
	Memberships []*types.TrainingParticipant
}

const dateLayout = "02 Jan 2006"

// Assemble turns the loaded record graph into ordered blocks for the
// requested export type. The same blocks feed both the final encoders and
// the preview session; the only divergence is opts.Uppercase.
func Assemble(input AssembleInput, opts AssembleOptions) ([]Block, error) {
	var blocks []Block
	names := newNameAllocator()

	switch opts.Type {
	case ExportParticipantsByTraining:
		if opts.IncludeSummary {
			blocks = append(blocks, summaryBlock(input.Trainings, names))
		}
		for _, t := range input.Trainings {
			blocks = append(blocks, participantsBlock(t, opts, names))
		}
		if opts.IncludeAssessments && len(input.Trainings) > 0 {
			if opts.IncludeAssessmentSummary {
				blocks = append(blocks, assessmentSummaryBlock(input.Trainings, opts, names))
			}
			if opts.IncludeCategoryDefinitions {
				blocks = append(blocks, categoryDefinitionsBlock(input.Trainings, names))
			}
		}
	case ExportTrainingsByParticipant:
		byPerson := make(map[uuid.UUID][]*types.TrainingParticipant)
		for _, m := range input.Memberships {
			byPerson[m.PersonID] = append(byPerson[m.PersonID], m)
		}
		for _, person := range input.Persons {
			blocks = append(blocks, personBlock(person, byPerson[person.ID], names))
		}
	case ExportTrainingSummary:
		if opts.IncludeSummary {
			blocks = append(blocks, summaryBlock(input.Trainings, names))
		}
		blocks = append(blocks, trainingSummaryBlock(input.Trainings, names))
	default:
		return nil, NewValidationError("unknown export type %q", opts.Type)
	}

	if opts.MaxRows > 0 {
		total := 0
		for _, b := range blocks {
			total += len(b.Rows)
		}
		if total > opts.MaxRows {
			return nil, NewValidationError("export would produce %d rows, the limit is %d", total, opts.MaxRows)
		}
	}

	if opts.Uppercase {
		for i := range blocks {
			uppercaseBlock(&blocks[i])
		}
	}
	return blocks, nil
}

func participantsBlock(t *types.Training, opts AssembleOptions, names *nameAllocator) Block {
	cols := BuildColumns(t, ColumnOptions{
		IncludeAssessments:     opts.IncludeAssessments,
		IncludeCategoryColumns: opts.IncludeCategoryColumns,
		Incomplete:             opts.Incomplete,
	})

	participants := FilterParticipants(t, opts.Filters)
	rows := make([][]string, 0, len(participants))
	for _, p := range participants {
		rows = append(rows, BuildRow(cols, p))
	}

	kind := kindLabel(t.Kind)
	info := []InfoLine{
		{Key: "Activity", Value: kind + ": " + t.Title},
		{Key: "Type", Value: kind},
		{Key: "Programs", Value: joinPrograms(t.Programs)},
	}
	if t.Kind == types.TrainingKindMentorship && t.Mentor != nil {
		info = append(info, InfoLine{Key: "Mentor", Value: t.Mentor.FullName()})
	}
	if t.Organizer != nil {
		info = append(info, InfoLine{Key: "Organizer", Value: t.Organizer.Name})
	}
	info = append(info,
		InfoLine{Key: "Location", Value: trainingLocation(t)},
		InfoLine{Key: "Dates", Value: dateRange(t)},
	)
	if UsesAssessments(t) {
		info = append(info, InfoLine{
			Key:   "Assessment Categories",
			Value: strconv.Itoa(len(t.CategoryAssignments)),
		})
	} else {
		info = append(info, InfoLine{
			Key:   "Assessments",
			Value: "Not configured or not used",
		})
	}

	return Block{
		ID:      t.ID.String(),
		Name:    names.take(t.Title),
		Info:    info,
		Headers: HeaderRow(cols),
		Rows:    rows,
	}
}

func personBlock(person *types.Person, memberships []*types.TrainingParticipant, names *nameAllocator) Block {
	info := []InfoLine{
		{Key: "Participant", Value: person.FullName()},
	}
	if person.Facility != nil {
		info = append(info, InfoLine{Key: "Facility", Value: person.Facility.Name})
		if person.Facility.SubCounty != nil && person.Facility.SubCounty.County != nil {
			info = append(info, InfoLine{Key: "County", Value: person.Facility.SubCounty.County.Name})
		}
	}

	headers := []string{
		"Activity Title", "Type", "Programs", "Start Date", "End Date",
		"Location", "Registration Date", "Completion Status", "Outcome",
	}
	rows := make([][]string, 0, len(memberships))
	for _, m := range memberships {
		t := m.Training
		if t == nil {
			continue
		}
		rows = append(rows, []string{
			t.Title,
			kindLabel(t.Kind),
			joinPrograms(t.Programs),
			t.StartDate.Format(dateLayout),
			t.EndDate.Format(dateLayout),
			trainingLocation(t),
			m.RegistrationDate.Format(dateLayout),
			statusLabel(m.CompletionStatus),
			ComputeOutcome(m, t).Label(),
		})
	}

	return Block{
		ID:      person.ID.String(),
		Name:    names.take(person.FullName()),
		Info:    info,
		Headers: headers,
		Rows:    rows,
	}
}

func trainingSummaryBlock(trainings []*types.Training, names *nameAllocator) Block {
	headers := []string{
		"Activity", "Type", "Start Date", "End Date", "Location",
		"Enrolled", "Completed", "Completion Rate (%)",
	}
	rows := make([][]string, 0, len(trainings))
	for _, t := range trainings {
		enrolled := len(t.Participants)
		completed := 0
		for _, p := range t.Participants {
			if p.CompletionStatus == types.CompletionCompleted {
				completed++
			}
		}
		rows = append(rows, []string{
			t.Title,
			kindLabel(t.Kind),
			t.StartDate.Format(dateLayout),
			t.EndDate.Format(dateLayout),
			trainingLocation(t),
			strconv.Itoa(enrolled),
			strconv.Itoa(completed),
			formatRate(completionRate(completed, enrolled)),
		})
	}
	return Block{
		ID:      "training_summary",
		Name:    names.take("Training Summary"),
		Headers: headers,
		Rows:    rows,
	}
}

func summaryBlock(trainings []*types.Training, names *nameAllocator) Block {
	formal := 0
	mentorships := 0
	totalParticipants := 0
	completed := 0
	for _, t := range trainings {
		if t.Kind == types.TrainingKindMentorship {
			mentorships++
		} else {
			formal++
		}
		totalParticipants += len(t.Participants)
		for _, p := range t.Participants {
			if p.CompletionStatus == types.CompletionCompleted {
				completed++
			}
		}
	}

	rows := [][]string{
		{"Total Activities", strconv.Itoa(len(trainings))},
		{"Trainings", strconv.Itoa(formal)},
		{"Mentorships", strconv.Itoa(mentorships)},
		{"Total Participants", strconv.Itoa(totalParticipants)},
		{"Completed Participants", strconv.Itoa(completed)},
		{"Completion Rate (%)", formatRate(completionRate(completed, totalParticipants))},
	}
	return Block{
		ID:      "summary",
		Name:    names.take("Summary"),
		Headers: []string{"Metric", "Value"},
		Rows:    rows,
	}
}

func assessmentSummaryBlock(trainings []*types.Training, opts AssembleOptions, names *nameAllocator) Block {
	headers := []string{
		"Activity", "Total Participants", "Fully Assessed",
		"Passed", "Failed", "Pass Rate (%)",
	}
	rows := make([][]string, 0, len(trainings))
	for _, t := range trainings {
		participants := FilterParticipants(t, opts.Filters)
		assessed := 0
		passed := 0
		failed := 0
		for _, p := range participants {
			switch ComputeOutcome(p, t) {
			case OutcomePass:
				assessed++
				passed++
			case OutcomeFail:
				assessed++
				failed++
			}
		}
		rows = append(rows, []string{
			t.Title,
			strconv.Itoa(len(participants)),
			strconv.Itoa(assessed),
			strconv.Itoa(passed),
			strconv.Itoa(failed),
			formatRate(completionRate(passed, assessed)),
		})
	}
	return Block{
		ID:      "assessment_summary",
		Name:    names.take("Assessment Summary"),
		Headers: headers,
		Rows:    rows,
	}
}

func categoryDefinitionsBlock(trainings []*types.Training, names *nameAllocator) Block {
	type definition struct {
		category   *types.AssessmentCategory
		activities []string
		weights    []float64
	}

	var order []uuid.UUID
	defs := make(map[uuid.UUID]*definition)
	for _, t := range trainings {
		for _, assignment := range t.CategoryAssignments {
			if assignment.Category == nil {
				continue
			}
			def, ok := defs[assignment.CategoryID]
			if !ok {
				def = &definition{category: assignment.Category}
				defs[assignment.CategoryID] = def
				order = append(order, assignment.CategoryID)
			}
			def.activities = appendUnique(def.activities, t.Title)
			def.weights = appendUniqueFloat(def.weights, assignment.Weight)
		}
	}

	headers := []string{"Category", "Description", "Method", "Used By", "Weights", "Type"}
	rows := make([][]string, 0, len(order))
	for _, id := range order {
		def := defs[id]
		sort.Float64s(def.weights)
		weights := make([]string, 0, len(def.weights))
		for _, w := range def.weights {
			weights = append(weights, strconv.FormatFloat(w, 'f', -1, 64))
		}
		rows = append(rows, []string{
			def.category.Name,
			def.category.Description,
			def.category.Method,
			strings.Join(def.activities, ", "),
			strings.Join(weights, ", "),
			def.category.CategoryType,
		})
	}
	return Block{
		ID:      "category_definitions",
		Name:    names.take("Assessment Categories"),
		Headers: headers,
		Rows:    rows,
	}
}

func kindLabel(kind string) string {
	if kind == types.TrainingKindMentorship {
		return "Mentorship"
	}
	return "Training"
}

func statusLabel(status string) string {
	switch status {
	case types.CompletionCompleted:
		return "Completed"
	case types.CompletionDropped:
		return "Dropped"
	case types.CompletionInProgress:
		return "In Progress"
	default:
		return "Registered"
	}
}

func trainingLocation(t *types.Training) string {
	if t.Facility != nil {
		return t.Facility.Name
	}
	if t.County != nil {
		return t.County.Name + " County"
	}
	return "Various Locations"
}

func joinPrograms(programs []*types.Program) string {
	if len(programs) == 0 {
		return "N/A"
	}
	parts := make([]string, 0, len(programs))
	for _, p := range programs {
		parts = append(parts, p.Name)
	}
	return strings.Join(parts, ", ")
}

func dateRange(t *types.Training) string {
	return t.StartDate.Format(dateLayout) + " - " + t.EndDate.Format(dateLayout)
}

// completionRate is round(completed/total*100, 1), and 0 when total is zero.
func completionRate(completed, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(completed)/float64(total)*100*10) / 10
}

func formatRate(rate float64) string {
	return strconv.FormatFloat(rate, 'f', 1, 64)
}

func uppercaseBlock(b *Block) {
	for i, h := range b.Headers {
		b.Headers[i] = strings.ToUpper(h)
	}
	for _, row := range b.Rows {
		for i, cell := range row {
			row[i] = strings.ToUpper(cell)
		}
	}
}

func appendUnique(list []string, v string) []string {
	for _, existing := range list {
		if existing == v {
			return list
		}
	}
	return append(list, v)
}

func appendUniqueFloat(list []float64, v float64) []float64 {
	for _, existing := range list {
		if existing == v {
			return list
		}
	}
	return append(list, v)
}

// Sheet names may not contain /\?*:[] and are capped at 31 characters, the
// workbook limit. Overlength names truncate rather than error.
const maxSheetName = 31

var sheetNameStripper = strings.NewReplacer(
	"/", "", "\\", "", "?", "", "*", "", ":", "", "[", "", "]", "",
)

func sanitizeSheetName(name string) string {
	clean := strings.TrimSpace(sheetNameStripper.Replace(name))
	if clean == "" {
		clean = "Sheet"
	}
	runes := []rune(clean)
	if len(runes) > maxSheetName {
		clean = strings.TrimSpace(string(runes[:maxSheetName]))
	}
	return clean
}

type nameAllocator struct {
	used map[string]int
}

func newNameAllocator() *nameAllocator {
	return &nameAllocator{used: make(map[string]int)}
}

// take sanitizes a block name and disambiguates collisions, since two
// selected trainings may share a title and sheet names must be unique.
func (a *nameAllocator) take(name string) string {
	clean := sanitizeSheetName(name)
	key := strings.ToLower(clean)
	a.used[key]++
	if a.used[key] == 1 {
		return clean
	}

	suffix := fmt.Sprintf(" %d", a.used[key])
	runes := []rune(clean)
	if len(runes)+len(suffix) > maxSheetName {
		runes = runes[:maxSheetName-len(suffix)]
	}
	return strings.TrimSpace(string(runes)) + suffix
}
