package model

import (
	"time"

	"github.com/google/uuid"
)

// Application status. No transition policy between them is defined here.
const (
	ApplicationStatusApplied     = "Applied"
	ApplicationStatusUnderReview = "Under Review"
	ApplicationStatusAccepted    = "Accepted"
	ApplicationStatusRejected    = "Rejected"
)

// Badge variants used by client to render application status
const (
	BadgeMuted       = "muted"
	BadgeSecondary   = "secondary"
	BadgeDefault     = "default"
	BadgeSuccess     = "success"
	BadgeDestructive = "destructive"
)

// Application is a candidate's interest in an internship
type Application struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	CandidateID  uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_candidate_internship" json:"candidate_id"`
	Candidate    Profile    `gorm:"foreignKey:CandidateID;references:ID" json:"-"`
	InternshipID uuid.UUID  `gorm:"type:uuid;not null;index;uniqueIndex:idx_candidate_internship" json:"internship_id"`
	Internship   Internship `gorm:"foreignKey:InternshipID;references:ID" json:"-"`
	Status       string     `gorm:"type:text;not null;default:'Applied'" json:"status"`
	CoverLetter  *string    `gorm:"type:text" json:"cover_letter,omitempty"`
	AppliedAt    time.Time  `gorm:"autoCreateTime" json:"applied_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
}

// StatusBadge map application status to badge emphasis, unknown status get the lowest one
func StatusBadge(status string) string {
	switch status {
	case ApplicationStatusApplied:
		return BadgeSecondary
	case ApplicationStatusUnderReview:
		return BadgeDefault
	case ApplicationStatusAccepted:
		return BadgeSuccess
	case ApplicationStatusRejected:
		return BadgeDestructive
	default:
		return BadgeMuted
	}
}
