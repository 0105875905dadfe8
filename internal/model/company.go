package model

import (
	"time"

	"github.com/google/uuid"
)

// EditableCompanyInfo is part of company that can be edited by its owner
type EditableCompanyInfo struct {
	CompanyName string  `gorm:"type:text;not null" json:"company_name"`
	Description *string `gorm:"type:text" json:"description"`
	Industry    *string `gorm:"type:text" json:"industry"`
	Size        *string `gorm:"type:text" json:"size"`
	Website     *string `gorm:"type:text" json:"website"`
}

// Company hold organization metadata of company-role user
type Company struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	EditableCompanyInfo
	LogoURL   *string   `gorm:"type:text" json:"logo_url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Internships []Internship `gorm:"foreignKey:CompanyID" json:"internships,omitempty"`
}
