package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"GradLinkUp-backend/internal/database"
	"GradLinkUp-backend/internal/model"
	"GradLinkUp-backend/internal/utilities"
)

func assertValidAccessToken(t *testing.T, resp map[string]interface{}) *jwt.RegisteredClaims {
	t.Helper()
	tokenStr, ok := resp["access_token"].(string)
	require.True(t, ok, "access_token not a string")
	token, err := ValidatedToken(tokenStr)
	require.NoError(t, err)
	assert.True(t, token.Valid)
	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	require.True(t, ok, "claims type mismatch")
	assert.NotEmpty(t, claims.Subject, "token subject empty")
	return claims
}

func TestGoogleLogin_NewUser(t *testing.T) {
	mockUser := model.GoogleUserInfo{
		GID:            "google_new_123",
		Email:          "new.student@example.com",
		FirstName:      "New",
		LastName:       "Student",
		ProfilePicture: "https://example.com/photo.jpg",
	}
	mockServer := NewMockOAuth2Server([]model.GoogleUserInfo{mockUser})
	defer mockServer.Close()

	handler := NewOauthLoginHandler(testDB, mockServer.Config, mockServer.MockInfoEndpoint)

	authCode, err := mockServer.GetAuthCode(mockUser.GID)
	require.NoError(t, err)

	rec, resp, err := utilities.SimulateAPICall(handler.GoogleLoginHandler, "/auth/google", http.MethodPost, map[string]string{
		"code": authCode,
	})

	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, model.RoleSelectionPath, resp["redirect"])
	claims := assertValidAccessToken(t, resp)
	assert.Equal(t, JwtIssuer, claims.Issuer)
	assert.True(t, mockServer.IsUserTokenExchanged(mockUser.GID))

	var created model.User
	require.NoError(t, testDB.Where("google_id = ?", mockUser.GID).First(&created).Error)
	assert.Equal(t, created.ID.String(), claims.Subject)
	assert.Equal(t, mockUser.Email, created.Email)
	require.NotNil(t, created.DisplayName)
	assert.Equal(t, "New Student", *created.DisplayName)
}

func TestGoogleLogin_ExistingUserWithRole(t *testing.T) {
	mockUser := model.GoogleUserInfo{
		GID:            database.TestUserCandidate1.GoogleID,
		Email:          database.TestUserCandidate1.Email,
		Name:           "Alice N.",
		ProfilePicture: "https://example.com/new.jpg",
	}
	mockServer := NewMockOAuth2Server([]model.GoogleUserInfo{mockUser})
	defer mockServer.Close()

	handler := NewOauthLoginHandler(testDB, mockServer.Config, mockServer.MockInfoEndpoint)
	authCode, err := mockServer.GetAuthCode(mockUser.GID)
	require.NoError(t, err)

	rec, resp, err := utilities.SimulateAPICall(handler.GoogleLoginHandler, "/auth/google", http.MethodPost, map[string]string{
		"code": authCode,
	})

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, model.CandidateDashboardPath, resp["redirect"])
	claims := assertValidAccessToken(t, resp)
	assert.Equal(t, database.TestUserCandidate1.ID.String(), claims.Subject)

	var count int64
	testDB.Model(&model.User{}).Where("google_id = ?", mockUser.GID).Count(&count)
	assert.EqualValues(t, 1, count)

	var refreshed model.User
	require.NoError(t, testDB.First(&refreshed, "id = ?", database.TestUserCandidate1.ID).Error)
	assert.Equal(t, "https://example.com/new.jpg", refreshed.ProfilePicture)
}

func TestGoogleLogin_MissingCode(t *testing.T) {
	mockServer := NewMockOAuth2Server(nil)
	defer mockServer.Close()
	handler := NewOauthLoginHandler(testDB, mockServer.Config, mockServer.MockInfoEndpoint)

	rec, resp, err := utilities.SimulateAPICall(handler.GoogleLoginHandler, "/auth/google", http.MethodPost, map[string]string{})

	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, resp["error"], "No authorization code provided")
}

func TestGoogleLogin_InvalidCode(t *testing.T) {
	mockServer := NewMockOAuth2Server(nil)
	defer mockServer.Close()
	handler := NewOauthLoginHandler(testDB, mockServer.Config, mockServer.MockInfoEndpoint)

	rec, resp, err := utilities.SimulateAPICall(handler.GoogleLoginHandler, "/auth/google", http.MethodPost, map[string]string{
		"code": "not-issued",
	})

	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, resp["error"], "Failed to receive token")
}

func TestMe(t *testing.T) {
	handler := NewOauthLoginHandler(testDB, nil, "")

	company := database.TestUserCompany1
	company.Profile = &model.Profile{ID: company.ID, Role: model.RoleCompany}

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	c.Set(utilities.ContextUserKey, company)

	handler.Me(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"redirect":"/company/dashboard"`)
	assert.Contains(t, rec.Body.String(), `"role":"company"`)
}

func TestMe_NoProfile(t *testing.T) {
	handler := NewOauthLoginHandler(testDB, nil, "")

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	c.Set(utilities.ContextUserKey, database.TestUserNewcomer)

	handler.Me(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"role":null`)
	assert.Contains(t, rec.Body.String(), `"redirect":"/role-selection"`)
}

func TestMe_NoUser(t *testing.T) {
	handler := NewOauthLoginHandler(testDB, nil, "")

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/auth/me", nil)

	handler.Me(c)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCallback(t *testing.T) {
	handler := NewOauthLoginHandler(testDB, nil, "")

	rec, resp, err := utilities.SimulateAPICall(handler.Callback, "/auth/google/callback?code=abc", http.MethodGet, nil)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "abc", resp["code"])
}
