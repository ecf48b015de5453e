package types

import (
	"github.com/google/uuid"
)

type FacilityType struct {
	ID   uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name string    `gorm:"uniqueIndex;not null;column:name" json:"name"`
}

func (FacilityType) TableName() string { return "facility_type" }

type Facility struct {
	ID             uuid.UUID     `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name           string        `gorm:"not null;column:name" json:"name"`
	MFLCode        string        `gorm:"column:mfl_code;index" json:"mfl_code"`
	FacilityTypeID *uuid.UUID    `gorm:"type:uuid;index" json:"facility_type_id,omitempty"`
	FacilityType   *FacilityType `gorm:"foreignKey:FacilityTypeID;references:ID" json:"facility_type,omitempty"`
	SubCountyID    *uuid.UUID    `gorm:"type:uuid;index" json:"sub_county_id,omitempty"`
	SubCounty      *SubCounty    `gorm:"foreignKey:SubCountyID;references:ID" json:"sub_county,omitempty"`
}

func (Facility) TableName() string { return "facility" }
