package middleware

import (
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"GradLinkUp-backend/internal/auth"
	"GradLinkUp-backend/internal/database"
	"GradLinkUp-backend/internal/model"
	"GradLinkUp-backend/internal/testutil"
	"GradLinkUp-backend/internal/utilities"
)

func protectedEngine() *gin.Engine {
	r := gin.New()
	r.GET("/protected", RequireAuth(testDB), checkUserHandler)
	r.GET("/candidate", RequireAuth(testDB), CheckRole(model.RoleCandidate), checkUserHandler)
	r.GET("/company", RequireAuth(testDB), CheckRole(model.RoleCompany), checkUserHandler)
	return r
}

func checkUserHandler(c *gin.Context) {
	u, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"ok": false})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true, "id": u.ID.String(), "role": u.Role()})
}

func signed(t *testing.T, claims jwt.RegisteredClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("middleware-test-secret"))
	require.NoError(t, err)
	return token
}

func TestRequireAuth_ValidToken(t *testing.T) {
	token, err := auth.GenerateStandardToken(database.TestUserCandidate1.ID)
	require.NoError(t, err)

	rec, resp := testutil.MakeJSONRequest(nil, token, protectedEngine(), "/protected", http.MethodGet)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, database.TestUserCandidate1.ID.String(), resp["id"])
	assert.Equal(t, model.RoleCandidate, resp["role"], "profile should be preloaded")
}

func TestRequireAuth_MissingHeader(t *testing.T) {
	rec, resp := testutil.MakeJSONRequest(nil, "", protectedEngine(), "/protected", http.MethodGet)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, resp["error"], "authorization header")
}

func TestRequireAuth_Expired(t *testing.T) {
	token := signed(t, jwt.RegisteredClaims{
		Issuer:    auth.JwtIssuer,
		Subject:   database.TestUserCandidate1.ID.String(),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
	})

	rec, resp := testutil.MakeJSONRequest(nil, token, protectedEngine(), "/protected", http.MethodGet)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Access token expired", resp["error"])
}

func TestRequireAuth_WrongIssuer(t *testing.T) {
	token := signed(t, jwt.RegisteredClaims{
		Issuer:    "someone-else",
		Subject:   database.TestUserCandidate1.ID.String(),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})

	rec, resp := testutil.MakeJSONRequest(nil, token, protectedEngine(), "/protected", http.MethodGet)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid token issuer", resp["error"])
}

func TestRequireAuth_Garbage(t *testing.T) {
	rec, resp := testutil.MakeJSONRequest(nil, "not.a.jwt", protectedEngine(), "/protected", http.MethodGet)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, resp["error"], "Failed to validate token")
}

func TestRequireAuth_UnknownUser(t *testing.T) {
	token, err := auth.GenerateStandardToken(uuid.New())
	require.NoError(t, err)

	rec, resp := testutil.MakeJSONRequest(nil, token, protectedEngine(), "/protected", http.MethodGet)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "User not exist", resp["error"])
}

func TestCheckRole(t *testing.T) {
	candidate, err := auth.GenerateStandardToken(database.TestUserCandidate1.ID)
	require.NoError(t, err)
	company, err := auth.GenerateStandardToken(database.TestUserCompany1.ID)
	require.NoError(t, err)
	newcomer, err := auth.GenerateStandardToken(database.TestUserNewcomer.ID)
	require.NoError(t, err)

	r := protectedEngine()
	cases := []struct {
		token string
		path  string
		want  int
	}{
		{candidate, "/candidate", http.StatusOK},
		{candidate, "/company", http.StatusForbidden},
		{company, "/company", http.StatusOK},
		{company, "/candidate", http.StatusForbidden},
		{newcomer, "/candidate", http.StatusForbidden},
		{newcomer, "/company", http.StatusForbidden},
	}
	for _, tc := range cases {
		rec, _ := testutil.MakeJSONRequest(nil, tc.token, r, tc.path, http.MethodGet)
		assert.Equal(t, tc.want, rec.Code, tc.path)
	}
}

func TestCheckRole_WithoutUser(t *testing.T) {
	r := gin.New()
	r.GET("/company", CheckRole(model.RoleCompany), checkUserHandler)

	rec, _ := testutil.MakeJSONRequest(nil, "", r, "/company", http.MethodGet)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
