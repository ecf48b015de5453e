package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	CompletionRegistered = "registered"
	CompletionInProgress = "in_progress"
	CompletionCompleted  = "completed"
	CompletionDropped    = "dropped"
)

// TrainingParticipant is a membership record, distinct from the Person it
// references: the same person joining two trainings yields two rows.
type TrainingParticipant struct {
	ID               uuid.UUID           `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	TrainingID       uuid.UUID           `gorm:"type:uuid;not null;index:idx_training_person,unique" json:"training_id"`
	Training         *Training           `gorm:"foreignKey:TrainingID;references:ID" json:"training,omitempty"`
	PersonID         uuid.UUID           `gorm:"type:uuid;not null;index:idx_training_person,unique" json:"person_id"`
	Person           *Person             `gorm:"foreignKey:PersonID;references:ID" json:"person,omitempty"`
	CompletionStatus string              `gorm:"not null;default:'registered';column:completion_status" json:"completion_status"`
	RegistrationDate time.Time           `gorm:"not null;column:registration_date" json:"registration_date"`
	Results          []*AssessmentResult `gorm:"foreignKey:ParticipantID;references:ID" json:"results,omitempty"`
	CreatedAt        time.Time           `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt        time.Time           `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt        gorm.DeletedAt      `gorm:"index" json:"deleted_at,omitempty"`
}

func (TrainingParticipant) TableName() string { return "training_participant" }
