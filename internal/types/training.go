package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

const (
	TrainingKindFormal     = "formal_training"
	TrainingKindMentorship = "facility_mentorship"
)

type Training struct {
	ID                  uuid.UUID                     `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Title               string                        `gorm:"not null;column:title" json:"title"`
	Kind                string                        `gorm:"not null;column:kind" json:"kind"`
	StartDate           time.Time                     `gorm:"not null;column:start_date" json:"start_date"`
	EndDate             time.Time                     `gorm:"not null;column:end_date" json:"end_date"`
	FacilityID          *uuid.UUID                    `gorm:"type:uuid;index" json:"facility_id,omitempty"`
	Facility            *Facility                     `gorm:"foreignKey:FacilityID;references:ID" json:"facility,omitempty"`
	CountyID            *uuid.UUID                    `gorm:"type:uuid;index" json:"county_id,omitempty"`
	County              *County                       `gorm:"foreignKey:CountyID;references:ID" json:"county,omitempty"`
	LeadOrgType         string                        `gorm:"column:lead_org_type" json:"lead_org_type"`
	AssessmentsEnabled  bool                          `gorm:"not null;default:false;column:assessments_enabled" json:"assessments_enabled"`
	MentorID            *uuid.UUID                    `gorm:"type:uuid;index" json:"mentor_id,omitempty"`
	Mentor              *Person                       `gorm:"foreignKey:MentorID;references:ID" json:"mentor,omitempty"`
	OrganizerID         *uuid.UUID                    `gorm:"type:uuid;index" json:"organizer_id,omitempty"`
	Organizer           *Organization                 `gorm:"foreignKey:OrganizerID;references:ID" json:"organizer,omitempty"`
	Programs            []*Program                    `gorm:"many2many:training_program;" json:"programs,omitempty"`
	CategoryAssignments []*TrainingCategoryAssignment `gorm:"foreignKey:TrainingID;references:ID" json:"category_assignments,omitempty"`
	Participants        []*TrainingParticipant        `gorm:"foreignKey:TrainingID;references:ID" json:"participants,omitempty"`
	Metadata            datatypes.JSON                `gorm:"type:jsonb;column:metadata" json:"metadata,omitempty"`
	CreatedAt           time.Time                     `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt           time.Time                     `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt           gorm.DeletedAt                `gorm:"index" json:"deleted_at,omitempty"`
}

func (Training) TableName() string { return "training" }
