// Package role let a signed-in user choose whether they act as candidate or company.
package role

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"GradLinkUp-backend/internal/database"
	"GradLinkUp-backend/internal/model"
	"GradLinkUp-backend/internal/utilities"
)

// RoleController handle role selection
type RoleController struct {
	DB *database.DBinstanceStruct
}

// NewRoleController creates a new instance of RoleController
func NewRoleController(db *database.DBinstanceStruct) *RoleController {
	return &RoleController{DB: db}
}

type selectRoleRequest struct {
	Role string `json:"role" binding:"required" example:"candidate"`
}

// GetRole tell client which role user hold
// @Summary Get current role
// @Description role is null and redirect is /role-selection when user has not chosen a role.
// @Tags Role
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.RoleResponse
// @Failure 400 {object} utilities.ErrorResponse "Invalid authorization header"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Router /role [get]
func (rc *RoleController) GetRole(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, model.NewRoleResponse(user.Profile))
}

// SelectRole create or overwrite profile with the chosen role.
// Company role also get its company row. Both are written in one transaction.
// @Summary Select role
// @Description Role must be candidate or company. Calling again with the same role is harmless.
// @Tags Role
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param role body selectRoleRequest true "Chosen role"
// @Success 200 {object} model.RoleResponse
// @Failure 400 {object} utilities.ErrorResponse "Invalid role"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /role [post]
func (rc *RoleController) SelectRole(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	var req selectRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Invalid request body: %s", err.Error()),
		})
		return
	}
	role := strings.TrimSpace(req.Role)
	if !model.ValidRole(role) {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Invalid role: %q", req.Role),
		})
		return
	}

	now := time.Now()
	fullName := user.NameOrEmail()
	profile := model.Profile{
		ID:        user.ID,
		Role:      role,
		UpdatedAt: now,
	}
	profile.FullName = &fullName

	db := rc.DB.WithContext(c.Request.Context())
	err = db.Transaction(func(tx *gorm.DB) error {
		if err := database.Put(tx, &profile, "full_name", "role", "updated_at"); err != nil {
			return err
		}
		if role != model.RoleCompany {
			return nil
		}
		company := model.Company{
			ID:                  user.ID,
			EditableCompanyInfo: model.EditableCompanyInfo{CompanyName: user.CompanyNameOrDefault()},
			UpdatedAt:           now,
		}
		return database.Put(tx, &company, "company_name", "updated_at")
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	var saved model.Profile
	if err := db.Where("id = ?", user.ID).First(&saved).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, model.NewRoleResponse(&saved))
}
