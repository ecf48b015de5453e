package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/alpho07/mnch-mentorship-sub006/internal/logger"
	"github.com/alpho07/mnch-mentorship-sub006/internal/types"
)

type ParticipantRepo interface {
	// GetWithRelationsByPersonIDs returns every membership record for the
	// given people, with the training (location, programs, categories) and
	// the person's own display attributes eager-loaded.
	GetWithRelationsByPersonIDs(ctx context.Context, tx *gorm.DB, personIDs []uuid.UUID) ([]*types.TrainingParticipant, error)
}

type participantRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewParticipantRepo(db *gorm.DB, baseLog *logger.Logger) ParticipantRepo {
	return &participantRepo{db: db, log: baseLog.With("repo", "ParticipantRepo")}
}

func (r *participantRepo) GetWithRelationsByPersonIDs(ctx context.Context, tx *gorm.DB, personIDs []uuid.UUID) ([]*types.TrainingParticipant, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.TrainingParticipant
	if len(personIDs) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Preload("Training.Facility").
		Preload("Training.County").
		Preload("Training.Programs").
		Preload("Training.CategoryAssignments", func(db *gorm.DB) *gorm.DB {
			return db.Order("sequence ASC")
		}).
		Preload("Training.CategoryAssignments.Category").
		Preload("Training.Participants.Results").
		Preload("Person.Facility.SubCounty.County").
		Preload("Person.Department").
		Preload("Person.Cadre").
		Preload("Results").
		Where("person_id IN ?", personIDs).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
