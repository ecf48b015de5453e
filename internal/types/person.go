package types

import (
	"strings"

	"github.com/google/uuid"
)

type Person struct {
	ID           uuid.UUID   `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	FirstName    string      `gorm:"not null;column:first_name" json:"first_name"`
	LastName     string      `gorm:"not null;column:last_name" json:"last_name"`
	Phone        string      `gorm:"column:phone" json:"phone"`
	FacilityID   *uuid.UUID  `gorm:"type:uuid;index" json:"facility_id,omitempty"`
	Facility     *Facility   `gorm:"foreignKey:FacilityID;references:ID" json:"facility,omitempty"`
	DepartmentID *uuid.UUID  `gorm:"type:uuid;index" json:"department_id,omitempty"`
	Department   *Department `gorm:"foreignKey:DepartmentID;references:ID" json:"department,omitempty"`
	CadreID      *uuid.UUID  `gorm:"type:uuid;index" json:"cadre_id,omitempty"`
	Cadre        *Cadre      `gorm:"foreignKey:CadreID;references:ID" json:"cadre,omitempty"`
}

func (Person) TableName() string { return "person" }

func (p *Person) FullName() string {
	return strings.TrimSpace(strings.TrimSpace(p.FirstName) + " " + strings.TrimSpace(p.LastName))
}
