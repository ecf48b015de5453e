package repos

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/alpho07/mnch-mentorship-sub006/internal/logger"
	"github.com/alpho07/mnch-mentorship-sub006/internal/types"
)

type TrainingRepo interface {
	GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Training, error)
	// GetWithRelationsByIDs eager-loads the full export graph: location,
	// programs, mentor, organizer, category assignments in sequence order,
	// and participants with person, geography and assessment results.
	GetWithRelationsByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Training, error)
}

type trainingRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewTrainingRepo(db *gorm.DB, baseLog *logger.Logger) TrainingRepo {
	return &trainingRepo{db: db, log: baseLog.With("repo", "TrainingRepo")}
}

func (r *trainingRepo) GetByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Training, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Training
	if len(ids) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (r *trainingRepo) GetWithRelationsByIDs(ctx context.Context, tx *gorm.DB, ids []uuid.UUID) ([]*types.Training, error) {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}

	var results []*types.Training
	if len(ids) == 0 {
		return results, nil
	}

	if err := transaction.WithContext(ctx).
		Preload("Facility.FacilityType").
		Preload("Facility.SubCounty.County").
		Preload("County").
		Preload("Programs").
		Preload("Mentor").
		Preload("Organizer").
		Preload("CategoryAssignments", func(db *gorm.DB) *gorm.DB {
			return db.Order("sequence ASC")
		}).
		Preload("CategoryAssignments.Category").
		Preload("Participants.Person.Facility.FacilityType").
		Preload("Participants.Person.Facility.SubCounty.County").
		Preload("Participants.Person.Department").
		Preload("Participants.Person.Cadre").
		Preload("Participants.Results").
		Where("id IN ?", ids).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
