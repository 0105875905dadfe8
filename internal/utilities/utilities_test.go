package utilities

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"GradLinkUp-backend/internal/model"
)

func TestExtractBearerToken(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		header  string
		want    string
		wantErr bool
	}{
		{"Bearer abc.def", "abc.def", false},
		{"bearer abc", "abc", false},
		{"Bearer ", "", true},
		{"Basic abc", "", true},
		{"", "", true},
	}
	for _, tc := range cases {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
		c.Request.Header.Set("Authorization", tc.header)

		got, err := ExtractBearerToken(c)
		if tc.wantErr {
			assert.Error(t, err, tc.header)
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, tc.want, got)
	}
}

func TestExtractUser(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())

	_, err := ExtractUser(c)
	assert.EqualError(t, err, "User information not provided")

	c.Set(ContextUserKey, "not a user")
	_, err = ExtractUser(c)
	assert.EqualError(t, err, "Failed to assert type")

	c.Set(ContextUserKey, model.User{Email: "a@example.com"})
	user, err := ExtractUser(c)
	require.NoError(t, err)
	assert.Equal(t, "a@example.com", user.Email)
}

func TestMergeNonEmpty(t *testing.T) {
	desc := "old"
	dst := model.EditableCompanyInfo{CompanyName: "Old Co", Description: &desc}
	industry := "Fintech"
	src := model.EditableCompanyInfo{CompanyName: "New Co", Industry: &industry}

	MergeNonEmpty(&dst, &src)

	assert.Equal(t, "New Co", dst.CompanyName)
	assert.Equal(t, "old", *dst.Description)
	assert.Equal(t, "Fintech", *dst.Industry)
}

func TestContains(t *testing.T) {
	list := []string{".pdf", ".doc"}
	assert.True(t, Contains(list, ".pdf"))
	assert.False(t, Contains(list, ".PDF"))
	assert.True(t, ContainsFold(list, ".PDF"))
	assert.False(t, ContainsFold(list, ".png"))
}
