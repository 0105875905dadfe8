package model

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Internship status
const (
	InternshipStatusActive = "active"
	InternshipStatusClosed = "closed"
)

// DefaultCapacity is used when posting form leave capacity empty
const DefaultCapacity = 1

// AllowedCapacities are the only capacity values posting form offer
var AllowedCapacities = []int{1, 2, 3, 4, 5, 10, 15, 20}

// ErrInvalidCapacity is returned when capacity is not one of AllowedCapacities
var ErrInvalidCapacity = errors.New("invalid capacity")

// Internship is an opportunity posted by a company
type Internship struct {
	ID                    uuid.UUID      `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	CompanyID             uuid.UUID      `gorm:"type:uuid;not null;index" json:"company_id"`
	Company               Company        `gorm:"foreignKey:CompanyID;references:ID" json:"-"`
	Title                 string         `gorm:"type:text;not null" json:"title"`
	Description           string         `gorm:"type:text;not null" json:"description"`
	Location              *string        `gorm:"type:text" json:"location"`
	Stipend               *float64       `gorm:"check:stipend >= 0" json:"stipend"`
	Capacity              int            `gorm:"not null;default:1;check:capacity >= 1" json:"capacity"`
	RequiredSkills        pq.StringArray `gorm:"type:text[]" json:"required_skills"`
	AffirmativeActionTags pq.StringArray `gorm:"type:text[]" json:"affirmative_action_tags"`
	Status                string         `gorm:"type:text;default:'active';index" json:"status"`
	CreatedAt             time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt             time.Time      `json:"updated_at"`

	Applications []Application `gorm:"foreignKey:InternshipID" json:"applications,omitempty"`
}

// ParseStipend parse stipend text from posting form.
// Empty, non-numeric, negative, or non-finite input yield nil.
func ParseStipend(raw string) *float64 {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return nil
	}
	return &v
}

// ParseCapacity parse capacity text from posting form, empty input yield DefaultCapacity.
func ParseCapacity(raw string) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return DefaultCapacity, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidCapacity, raw)
	}
	for _, allowed := range AllowedCapacities {
		if v == allowed {
			return v, nil
		}
	}
	return 0, fmt.Errorf("%w: %d", ErrInvalidCapacity, v)
}
