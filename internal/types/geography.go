package types

import (
	"github.com/google/uuid"
)

type County struct {
	ID   uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name string    `gorm:"uniqueIndex;not null;column:name" json:"name"`
}

func (County) TableName() string { return "county" }

type SubCounty struct {
	ID       uuid.UUID `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	Name     string    `gorm:"not null;column:name" json:"name"`
	CountyID uuid.UUID `gorm:"type:uuid;not null;index" json:"county_id"`
	County   *County   `gorm:"foreignKey:CountyID;references:ID" json:"county,omitempty"`
}

func (SubCounty) TableName() string { return "sub_county" }
