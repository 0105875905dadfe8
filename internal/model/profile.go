package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// ProfileSaveColumns are overwritten when a candidate save an existing profile
var ProfileSaveColumns = []string{
	"role",
	"full_name",
	"qualifications",
	"skills",
	"location_preference",
	"social_category",
	"resume_url",
	"updated_at",
}

// EditableProfileInfo is part of profile that candidate can edit
type EditableProfileInfo struct {
	FullName           *string        `gorm:"type:text" json:"full_name"`
	Qualifications     *string        `gorm:"type:text" json:"qualifications"`
	Skills             pq.StringArray `gorm:"type:text[]" json:"skills"`
	LocationPreference *string        `gorm:"type:text" json:"location_preference"`
	SocialCategory     *string        `gorm:"type:text" json:"social_category"`
}

// Profile extends an identity with role and role-specific attributes.
type Profile struct {
	ID   uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Role string    `gorm:"type:text;not null" json:"role"`
	EditableProfileInfo
	ResumeURL *string   `gorm:"type:text" json:"resume_url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Company      *Company      `gorm:"foreignKey:ID;references:ID" json:"-"`
	Applications []Application `gorm:"foreignKey:CandidateID" json:"-"`
}

// NewDraftProfile synthesize an unsaved profile for user that has not saved one yet.
// Role is left unset until the profile is saved.
func NewDraftProfile(user User) Profile {
	p := Profile{ID: user.ID}
	if user.DisplayName != nil {
		name := *user.DisplayName
		p.FullName = &name
	}
	p.Skills = pq.StringArray{}
	return p
}

// AddSkill add trimmed skill to profile, keeping insertion order.
// It returns false when skill was already present, and ErrEmptyValue when skill is blank.
func (p *Profile) AddSkill(skill string) (bool, error) {
	set := NewOrderedSet(p.Skills...)
	added, err := set.Add(skill)
	if err != nil {
		return false, err
	}
	p.Skills = set.Values()
	return added, nil
}

// RemoveSkill remove skill that exactly match
func (p *Profile) RemoveSkill(skill string) bool {
	set := NewOrderedSet(p.Skills...)
	removed := set.Remove(skill)
	p.Skills = set.Values()
	return removed
}
