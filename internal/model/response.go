package model

// LoginResponse is returned after Google sign-in
type LoginResponse struct {
	User        User   `json:"user"`
	AccessToken string `json:"access_token"`
	Redirect    string `json:"redirect"`
}

// RoleResponse tell client which role user hold and where to go next
type RoleResponse struct {
	Role     *string  `json:"role"`
	Redirect string   `json:"redirect"`
	Profile  *Profile `json:"profile,omitempty"`
}

// NewRoleResponse build RoleResponse from an optional profile
func NewRoleResponse(profile *Profile) RoleResponse {
	if profile == nil || profile.Role == "" {
		return RoleResponse{Redirect: RoleSelectionPath}
	}
	role := profile.Role
	return RoleResponse{
		Role:     &role,
		Redirect: DashboardPath(role),
		Profile:  profile,
	}
}
