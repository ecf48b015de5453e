package types

import (
	"github.com/google/uuid"
)

type AssessmentCategory struct {
	ID           uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name         string    `gorm:"not null;column:name" json:"name"`
	Description  string    `gorm:"column:description" json:"description"`
	Method       string    `gorm:"column:method" json:"method"`
	CategoryType string    `gorm:"column:category_type" json:"category_type"`
}

func (AssessmentCategory) TableName() string { return "assessment_category" }

// TrainingCategoryAssignment binds a category to one training. The same
// category may carry a different weight on another training.
type TrainingCategoryAssignment struct {
	ID         uuid.UUID           `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	TrainingID uuid.UUID           `gorm:"type:uuid;not null;index:idx_training_category,unique" json:"training_id"`
	CategoryID uuid.UUID           `gorm:"type:uuid;not null;index:idx_training_category,unique" json:"category_id"`
	Category   *AssessmentCategory `gorm:"foreignKey:CategoryID;references:ID" json:"category,omitempty"`
	Weight     float64             `gorm:"not null;default:0;column:weight" json:"weight"`
	Sequence   int                 `gorm:"not null;default:0;column:sequence" json:"sequence"`
}

func (TrainingCategoryAssignment) TableName() string { return "training_category_assignment" }

const AssessmentResultPass = "pass"

type AssessmentResult struct {
	ID            uuid.UUID           `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	ParticipantID uuid.UUID           `gorm:"type:uuid;not null;index:idx_participant_category,unique" json:"participant_id"`
	CategoryID    uuid.UUID           `gorm:"type:uuid;not null;index:idx_participant_category,unique" json:"category_id"`
	Category      *AssessmentCategory `gorm:"foreignKey:CategoryID;references:ID" json:"category,omitempty"`
	Result        string              `gorm:"not null;column:result" json:"result"`
}

func (AssessmentResult) TableName() string { return "assessment_result" }
