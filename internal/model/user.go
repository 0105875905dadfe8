package model

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Roles a profile can hold
const (
	RoleCandidate = "candidate"
	RoleCompany   = "company"
)

// Routes the client should navigate to after a workflow finish
const (
	RoleSelectionPath      = "/role-selection"
	CandidateDashboardPath = "/candidate/dashboard"
	CompanyDashboardPath   = "/company/dashboard"
)

// DefaultCompanyName is used when identity carry neither display name nor email
const DefaultCompanyName = "Your Company"

// User is the local record of a signed-in Google identity.
type User struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey;default:uuid_generate_v4()" json:"id"`
	GoogleID       string    `gorm:"type:text;uniqueIndex" json:"-"`
	Email          string    `gorm:"type:text" json:"email"`
	DisplayName    *string   `gorm:"type:text" json:"display_name"`
	ProfilePicture string    `gorm:"type:text" json:"profile_picture"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	Profile *Profile `gorm:"foreignKey:ID;references:ID" json:"profile,omitempty"`
}

// GoogleUserInfo is the payload returned by google userinfo endpoint
type GoogleUserInfo struct {
	GID            string `json:"id"`
	Email          string `json:"email"`
	Name           string `json:"name"`
	FirstName      string `json:"given_name"`
	LastName       string `json:"family_name"`
	ProfilePicture string `json:"picture"`
}

// FillGoogleInfo overwrite identity fields with the latest google user info
func (u *User) FillGoogleInfo(info GoogleUserInfo) {
	u.GoogleID = info.GID
	u.Email = info.Email
	u.ProfilePicture = info.ProfilePicture

	name := strings.TrimSpace(info.Name)
	if name == "" {
		name = strings.TrimSpace(info.FirstName + " " + info.LastName)
	}
	if name != "" {
		u.DisplayName = &name
	} else {
		u.DisplayName = nil
	}
}

// NameOrEmail returns display name when present, otherwise email.
func (u *User) NameOrEmail() string {
	if u.DisplayName != nil && strings.TrimSpace(*u.DisplayName) != "" {
		return *u.DisplayName
	}
	return u.Email
}

// CompanyNameOrDefault returns display name, email, or DefaultCompanyName in that order.
func (u *User) CompanyNameOrDefault() string {
	if name := u.NameOrEmail(); strings.TrimSpace(name) != "" {
		return name
	}
	return DefaultCompanyName
}

// Role returns role stored in user's profile, empty string if the profile has not been created yet.
func (u *User) Role() string {
	if u.Profile == nil {
		return ""
	}
	return u.Profile.Role
}

// ValidRole reports whether role is one a user may choose
func ValidRole(role string) bool {
	return role == RoleCandidate || role == RoleCompany
}

// DashboardPath map role to the route client should land on.
// Unknown or empty role send user to role selection.
func DashboardPath(role string) string {
	switch role {
	case RoleCandidate:
		return CandidateDashboardPath
	case RoleCompany:
		return CompanyDashboardPath
	default:
		return RoleSelectionPath
	}
}
