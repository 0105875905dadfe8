package role

import (
	"context"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"

	"GradLinkUp-backend/internal/auth"
	"GradLinkUp-backend/internal/database"
	"GradLinkUp-backend/internal/middleware"
	"GradLinkUp-backend/internal/model"
	"GradLinkUp-backend/internal/testutil"
	"GradLinkUp-backend/internal/utilities"
)

var testDB *database.DBinstanceStruct

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	auth.ConfigureSecret("role-test-secret")

	var err error
	var teardown func(context.Context, ...testcontainers.TerminateOption) error
	teardown, testDB, err = database.GetTestDB()
	if err != nil {
		os.Exit(1)
	}
	code := m.Run()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if teardown != nil {
		_ = teardown(ctx)
	}
	os.Exit(code)
}

func setupRouter() *gin.Engine {
	rc := NewRoleController(testDB)
	r := gin.New()
	g := r.Group("/role", middleware.RequireAuth(testDB))
	g.GET("", rc.GetRole)
	g.POST("", rc.SelectRole)
	return r
}

func newToken(t *testing.T, user model.User) string {
	t.Helper()
	token, err := auth.GenerateStandardToken(user.ID)
	require.NoError(t, err)
	return token
}

func TestGetRole_NoProfile(t *testing.T) {
	user, err := database.NewTestUser(testDB, "no-role")
	require.NoError(t, err)

	rec, resp := testutil.MakeJSONRequest(nil, newToken(t, user), setupRouter(), "/role", http.MethodGet)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, resp["role"])
	assert.Equal(t, model.RoleSelectionPath, resp["redirect"])
}

func TestGetRole_ExistingProfile(t *testing.T) {
	r := setupRouter()

	rec, resp := testutil.MakeJSONRequest(nil, newToken(t, database.TestUserCandidate1), r, "/role", http.MethodGet)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, model.RoleCandidate, resp["role"])
	assert.Equal(t, model.CandidateDashboardPath, resp["redirect"])

	rec, resp = testutil.MakeJSONRequest(nil, newToken(t, database.TestUserCompany1), r, "/role", http.MethodGet)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, model.RoleCompany, resp["role"])
	assert.Equal(t, model.CompanyDashboardPath, resp["redirect"])
}

func TestSelectRole_CandidateIdempotent(t *testing.T) {
	user, err := database.NewTestUser(testDB, "twice")
	require.NoError(t, err)
	token := newToken(t, user)
	r := setupRouter()

	var redirects []interface{}
	for i := 0; i < 2; i++ {
		rec, resp := testutil.MakeJSONRequest(gin.H{"role": model.RoleCandidate}, token, r, "/role", http.MethodPost)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
		assert.Equal(t, model.RoleCandidate, resp["role"])
		redirects = append(redirects, resp["redirect"])
	}
	assert.Equal(t, []interface{}{model.CandidateDashboardPath, model.CandidateDashboardPath}, redirects)

	var count int64
	require.NoError(t, testDB.Model(&model.Profile{}).Where("id = ?", user.ID).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	var companies int64
	require.NoError(t, testDB.Model(&model.Company{}).Where("id = ?", user.ID).Count(&companies).Error)
	assert.Zero(t, companies)

	rec, resp := testutil.MakeJSONRequest(nil, token, r, "/role", http.MethodGet)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, model.CandidateDashboardPath, resp["redirect"])
}

func TestSelectRole_CompanyCreateCompanyRow(t *testing.T) {
	user, err := database.NewTestUser(testDB, "Acme Labs")
	require.NoError(t, err)

	rec, resp := testutil.MakeJSONRequest(gin.H{"role": model.RoleCompany}, newToken(t, user), setupRouter(), "/role", http.MethodPost)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, model.CompanyDashboardPath, resp["redirect"])

	profile := resp["profile"].(map[string]interface{})
	assert.Equal(t, "Acme Labs", profile["full_name"])

	var company model.Company
	require.NoError(t, testDB.First(&company, "id = ?", user.ID).Error)
	assert.Equal(t, "Acme Labs", company.CompanyName)
}

func TestSelectRole_CompanyNameFallback(t *testing.T) {
	user, err := database.NewTestUser(testDB, "fallback")
	require.NoError(t, err)
	require.NoError(t, testDB.Model(&user).Update("display_name", nil).Error)

	rec, _ := testutil.MakeJSONRequest(gin.H{"role": model.RoleCompany}, newToken(t, user), setupRouter(), "/role", http.MethodPost)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var company model.Company
	require.NoError(t, testDB.First(&company, "id = ?", user.ID).Error)
	assert.Equal(t, user.Email, company.CompanyName)
}

func TestSelectRole_Invalid(t *testing.T) {
	user, err := database.NewTestUser(testDB, "invalid-role")
	require.NoError(t, err)
	token := newToken(t, user)
	r := setupRouter()

	for _, body := range []gin.H{{"role": "admin"}, {"role": ""}, {}} {
		rec, resp := testutil.MakeJSONRequest(body, token, r, "/role", http.MethodPost)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.NotEmpty(t, resp["error"])
	}

	var count int64
	require.NoError(t, testDB.Model(&model.Profile{}).Where("id = ?", user.ID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestGetRole_HandlerOnly(t *testing.T) {
	rc := NewRoleController(testDB)
	profile := database.TestCandidate2

	user := database.TestUserCandidate2
	user.Profile = &profile
	rec, resp, err := utilities.SimulateAPICall(rc.GetRole, "/role", http.MethodGet, nil, utilities.AsUser(user))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, model.RoleCandidate, resp["role"])

	rec, _, err = utilities.SimulateAPICall(rc.SelectRole, "/role", http.MethodPost, gin.H{"role": model.RoleCandidate})
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
