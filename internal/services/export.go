package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/alpho07/mnch-mentorship-sub006/internal/export"
	"github.com/alpho07/mnch-mentorship-sub006/internal/logger"
	"github.com/alpho07/mnch-mentorship-sub006/internal/repos"
	"github.com/alpho07/mnch-mentorship-sub006/internal/types"
)

// PreviewQuery carries one preview interaction: an optional block switch,
// search text, a sort-column selection (toggling on repeat) and paging.
type PreviewQuery struct {
	BlockID    string
	Query      *string
	SortColumn *int
	Page       int
	PageSize   int
}

type ExportService interface {
	// CreateArtifact runs the canonical export path: validate, load, assemble
	// upper-cased blocks and encode the downloadable artifact.
	CreateArtifact(ctx context.Context, req *export.ExportRequest) (*export.Artifact, error)
	// CreatePreview assembles the same rows in natural case and parks them in
	// a preview session.
	CreatePreview(ctx context.Context, req *export.ExportRequest) (*export.PreviewData, error)
	GetPreviewPage(ctx context.Context, sessionID string, q PreviewQuery) (*export.PageView, error)
	DownloadPreviewView(ctx context.Context, sessionID string) (*export.Artifact, error)
}

type exportService struct {
	db              *gorm.DB
	log             *logger.Logger
	trainingRepo    repos.TrainingRepo
	participantRepo repos.ParticipantRepo
	personRepo      repos.PersonRepo
	sessions        export.SessionStore
	maxTrainings    int
	maxRows         int
}

func NewExportService(
	db *gorm.DB,
	baseLog *logger.Logger,
	trainingRepo repos.TrainingRepo,
	participantRepo repos.ParticipantRepo,
	personRepo repos.PersonRepo,
	sessions export.SessionStore,
	maxTrainings int,
	maxRows int,
) ExportService {
	return &exportService{
		db:              db,
		log:             baseLog.With("service", "ExportService"),
		trainingRepo:    trainingRepo,
		participantRepo: participantRepo,
		personRepo:      personRepo,
		sessions:        sessions,
		maxTrainings:    maxTrainings,
		maxRows:         maxRows,
	}
}

func (s *exportService) CreateArtifact(ctx context.Context, req *export.ExportRequest) (*export.Artifact, error) {
	req.Normalize()
	if err := req.Validate(s.maxTrainings); err != nil {
		return nil, err
	}

	input, err := s.loadInput(ctx, req)
	if err != nil {
		return nil, err
	}

	blocks, err := export.Assemble(input, req.AssembleOptions(true, s.maxRows))
	if err != nil {
		return nil, err
	}

	artifact, err := export.Encode(blocks, req.Format, req.ExportType, time.Now())
	if err != nil {
		return nil, err
	}
	s.log.Info("Export artifact created",
		"export_type", req.ExportType,
		"format", req.Format,
		"blocks", len(blocks),
		"filename", artifact.Filename,
	)
	return artifact, nil
}

func (s *exportService) CreatePreview(ctx context.Context, req *export.ExportRequest) (*export.PreviewData, error) {
	req.Normalize()
	if err := req.Validate(s.maxTrainings); err != nil {
		return nil, err
	}

	input, err := s.loadInput(ctx, req)
	if err != nil {
		return nil, err
	}

	blocks, err := export.Assemble(input, req.AssembleOptions(false, s.maxRows))
	if err != nil {
		return nil, err
	}

	session := export.NewPreviewSession(req.ExportType, blocks)
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}
	s.log.Info("Preview session created", "session_id", session.ID, "blocks", len(blocks))
	return session.Data(), nil
}

func (s *exportService) GetPreviewPage(ctx context.Context, sessionID string, q PreviewQuery) (*export.PageView, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if q.BlockID != "" {
		if err := session.SetActiveBlock(q.BlockID); err != nil {
			return nil, err
		}
	}
	if q.Query != nil {
		session.SetQuery(*q.Query)
	}
	if q.SortColumn != nil {
		if err := session.SortBy(*q.SortColumn); err != nil {
			return nil, err
		}
	}
	session.SetPage(q.Page, q.PageSize)

	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, err
	}
	return session.View(), nil
}

func (s *exportService) DownloadPreviewView(ctx context.Context, sessionID string) (*export.Artifact, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return session.ExportCurrentView(time.Now())
}

// loadInput fetches the eager-loaded graph for the request. Any selected id
// that no longer exists fails the whole export; there is no skip-and-continue.
func (s *exportService) loadInput(ctx context.Context, req *export.ExportRequest) (export.AssembleInput, error) {
	var input export.AssembleInput

	switch req.ExportType {
	case export.ExportParticipantsByTraining, export.ExportTrainingSummary:
		trainings, err := s.trainingRepo.GetWithRelationsByIDs(ctx, nil, req.TrainingIDs)
		if err != nil {
			return input, err
		}
		ordered, missing := orderByIDs(trainings, req.TrainingIDs, func(t *types.Training) uuid.UUID { return t.ID })
		if len(missing) > 0 {
			return input, &export.NotFoundError{Resource: "training", IDs: missing}
		}
		input.Trainings = ordered

	case export.ExportTrainingsByParticipant:
		persons, err := s.personRepo.GetByIDs(ctx, nil, req.PersonIDs)
		if err != nil {
			return input, err
		}
		ordered, missing := orderByIDs(persons, req.PersonIDs, func(p *types.Person) uuid.UUID { return p.ID })
		if len(missing) > 0 {
			return input, &export.NotFoundError{Resource: "participant", IDs: missing}
		}
		input.Persons = ordered

		memberships, err := s.participantRepo.GetWithRelationsByPersonIDs(ctx, nil, req.PersonIDs)
		if err != nil {
			return input, err
		}
		input.Memberships = memberships
	}

	return input, nil
}

// orderByIDs arranges loaded records in request order, deduplicating the
// selection, and reports ids that were not found.
func orderByIDs[T any](records []T, ids []uuid.UUID, idOf func(T) uuid.UUID) ([]T, []uuid.UUID) {
	byID := make(map[uuid.UUID]T, len(records))
	for _, r := range records {
		byID[idOf(r)] = r
	}

	seen := make(map[uuid.UUID]struct{}, len(ids))
	ordered := make([]T, 0, len(ids))
	var missing []uuid.UUID
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if r, ok := byID[id]; ok {
			ordered = append(ordered, r)
		} else {
			missing = append(missing, id)
		}
	}
	return ordered, missing
}
