// Package auth contains handler relate to sign in with google and session management
package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/oauth2"
	"gorm.io/gorm"

	"GradLinkUp-backend/internal/database"
	"GradLinkUp-backend/internal/logging"
	"GradLinkUp-backend/internal/model"
	"GradLinkUp-backend/internal/utilities"
)

const authTypeGoogle = "Google"

// OauthLoginHandler struct holds the database connection and OAuth2 configuration for handling OAuth login.
type OauthLoginHandler struct {
	DB               *database.DBinstanceStruct
	OauthConfig      *oauth2.Config
	UserInfoEndpoint string
}

type code struct {
	Code string `json:"code" binding:"required"`
}

// MeResponse is the signed-in identity and where client should go next
type MeResponse struct {
	User     model.User `json:"user"`
	Role     *string    `json:"role"`
	Redirect string     `json:"redirect"`
}

// NewOauthLoginHandler creates a new instance of OauthLoginHandler with the provided database connection and OAuth2 configuration.
func NewOauthLoginHandler(db *database.DBinstanceStruct, oauthConfig *oauth2.Config, userInfoEndpoint string) *OauthLoginHandler {
	return &OauthLoginHandler{
		DB:               db,
		OauthConfig:      oauthConfig,
		UserInfoEndpoint: userInfoEndpoint,
	}
}

func (h *OauthLoginHandler) getUserInfo(c *gin.Context) (model.GoogleUserInfo, error) {
	var code code
	var uInfo model.GoogleUserInfo

	if err := c.ShouldBindJSON(&code); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("No authorization code provided: %v", err.Error()),
		})
		return uInfo, err
	}

	ctx := c.Request.Context()
	token, err := h.OauthConfig.Exchange(ctx, code.Code)
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to receive token: %v", err.Error()),
		})
		return uInfo, err
	}

	client := h.OauthConfig.Client(ctx, token)
	resp, err := client.Get(h.UserInfoEndpoint)
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to fetch user information: %v", err.Error()),
		})
		return uInfo, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to fetch user information: status=%d body=%s", resp.StatusCode, string(bodyBytes)),
		})
		return uInfo, fmt.Errorf("userinfo endpoint returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(&uInfo); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to decode user info: %v", err.Error()),
		})
		return uInfo, err
	}
	if uInfo.GID == "" {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: "Google account id is missing from user info",
		})
		return uInfo, errors.New("empty google id")
	}
	return uInfo, nil
}

// GoogleLoginHandler exchange authorization code with google, create or refresh local user
// record and issue access token.
// @Summary Sign in with google
// @Description Exchange code for user info, create or refresh user record, generate an access token.
// @Description Redirect is the stored role's dashboard, or role selection when user has no role yet.
// @Tags Auth
// @Accept json
// @Produce json
// @Param Code body code true "Authentication code from google"
// @Success 200 {object} model.LoginResponse "Login success"
// @Success 201 {object} model.LoginResponse "Register success"
// @Failure 400 {object} utilities.ErrorResponse "Fail to receive token or fetch user info"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /auth/google [post]
func (h *OauthLoginHandler) GoogleLoginHandler(c *gin.Context) {
	uInfo, err := h.getUserInfo(c)
	if err != nil {
		logging.LogAuthAttempt("warning", authTypeGoogle, logging.AuthFail, "", err.Error())
		return
	}

	var user model.User
	respStatus := http.StatusOK

	err = h.DB.Preload("Profile").Where("google_id = ?", uInfo.GID).First(&user).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		user.FillGoogleInfo(uInfo)
		if err := h.DB.Omit("Profile").Create(&user).Error; err != nil {
			logging.LogAuthAttempt("error", authTypeGoogle, logging.AuthFail, uInfo.Email, err.Error())
			c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
				Error: fmt.Sprintf("Failed to create user: %v", err.Error()),
			})
			return
		}
		respStatus = http.StatusCreated
	case err == nil:
		user.FillGoogleInfo(uInfo)
		if err := h.DB.Omit("Profile").Save(&user).Error; err != nil {
			logging.LogAuthAttempt("error", authTypeGoogle, logging.AuthFail, uInfo.Email, err.Error())
			c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
				Error: fmt.Sprintf("Failed to update user: %v", err.Error()),
			})
			return
		}
	default:
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Database error: %v", err.Error()),
		})
		return
	}

	accessToken, err := GenerateStandardToken(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to generate access token: %s", err.Error()),
		})
		return
	}

	logging.LogAuthAttempt("info", authTypeGoogle, logging.AuthSuccess, user.Email, "")
	c.JSON(respStatus, model.LoginResponse{
		User:        user,
		AccessToken: accessToken,
		Redirect:    model.DashboardPath(user.Role()),
	})
}

// Me return the signed-in identity with its profile
// @Summary Get current identity
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} MeResponse
// @Failure 401 {object} utilities.ErrorResponse "Missing or invalid token"
// @Router /auth/me [get]
func (h *OauthLoginHandler) Me(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	resp := MeResponse{User: user, Redirect: model.DashboardPath(user.Role())}
	if role := user.Role(); role != "" {
		resp.Role = &role
	}
	c.JSON(http.StatusOK, resp)
}

// Callback function in Go retrieves a query parameter named "code" from the request and returns it
// in a JSON response.
// @Summary Retrieves a query parameter named "code" from the request and returns it in a JSON response
// @Tags Auth
// @Produce json
// @Param Code query string false "Authentication code from google"
// @Success 200 {object} code
// @Router /auth/google/callback [get]
func (h *OauthLoginHandler) Callback(c *gin.Context) {
	aCode := c.Query("code")
	c.JSON(http.StatusOK, code{
		Code: aCode,
	})
}
