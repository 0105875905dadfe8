// Package company serve company dashboard and company profile endpoints.
package company

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"GradLinkUp-backend/internal/controller"
	"GradLinkUp-backend/internal/database"
	"GradLinkUp-backend/internal/model"
	"GradLinkUp-backend/internal/storage"
	"GradLinkUp-backend/internal/utilities"
)

// CompanyController handle company endpoints
type CompanyController struct {
	DB      *database.DBinstanceStruct
	Storage storage.Client
	// Now is clock used for object keys
	Now func() time.Time
}

// NewCompanyController creates a new instance of CompanyController
func NewCompanyController(db *database.DBinstanceStruct, store storage.Client) *CompanyController {
	return &CompanyController{
		DB:      db,
		Storage: store,
		Now:     time.Now,
	}
}

var companyEditColumns = []string{"company_name", "description", "industry", "size", "website", "updated_at"}

// Dashboard return every internship of the company with application counts
// @Summary Company dashboard
// @Description Internships are ordered by created_at descending.
// @Description pending counts applications with status Applied.
// @Tags Company
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.CompanyDashboard
// @Failure 400 {object} utilities.ErrorResponse "Invalid authorization header"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not logged in as company"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /company/dashboard [get]
func (cc *CompanyController) Dashboard(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	var internships []model.Internship
	if err := cc.DB.WithContext(c.Request.Context()).
		Preload("Applications", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "internship_id", "status")
		}).
		Where("company_id = ?", user.ID).
		Order("created_at DESC").
		Find(&internships).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve internships: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, model.BuildCompanyDashboard(internships))
}

func (cc *CompanyController) findCompany(c *gin.Context, id any) (model.Company, bool) {
	var company model.Company
	err := cc.DB.WithContext(c.Request.Context()).Where("id = ?", id).First(&company).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Company not found"})
		return company, false
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve company information from database: %s", err.Error()),
		})
		return company, false
	}
	return company, true
}

// GetProfile retrieve company profile of the signed-in company
// @Summary Retrieve own company profile
// @Tags Company
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.Company
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not logged in as company"
// @Failure 404 {object} utilities.ErrorResponse "Company not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /company/profile [get]
func (cc *CompanyController) GetProfile(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	company, ok := cc.findCompany(c, user.ID)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, company)
}

// GetCompanyByID retrieve a company with its active internships
// @Summary Retrieve company by ID
// @Tags Company
// @Produce json
// @Security BearerAuth
// @Param company_id path string true "ID of company"
// @Success 200 {object} model.Company
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 404 {object} utilities.ErrorResponse "Company not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /companies/{company_id} [get]
func (cc *CompanyController) GetCompanyByID(c *gin.Context) {
	companyID, err := uuid.Parse(c.Param("company_id"))
	if err != nil {
		c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Company not found"})
		return
	}

	var company model.Company
	err = cc.DB.WithContext(c.Request.Context()).
		Preload("Internships", func(db *gorm.DB) *gorm.DB {
			return db.Where("status = ?", model.InternshipStatusActive).Order("created_at DESC")
		}).
		Where("id = ?", companyID).
		First(&company).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Company not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve company information from database: %s", err.Error()),
		})
		return
	}
	c.JSON(http.StatusOK, company)
}

// EditProfile overwrite non-empty fields of company profile
// @Summary Edit company profile
// @Description Only company_name, description, industry, size, and website can be edited.
// @Description Empty fields keep their current value.
// @Tags Company
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param company_profile body model.EditableCompanyInfo true "Company info to be written"
// @Success 200 {object} model.Company
// @Failure 400 {object} utilities.ErrorResponse "Invalid request body"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not logged in as company"
// @Failure 404 {object} utilities.ErrorResponse "Company not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /company/profile [patch]
func (cc *CompanyController) EditProfile(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	company, ok := cc.findCompany(c, user.ID)
	if !ok {
		return
	}

	edited := model.EditableCompanyInfo{}
	decoder := json.NewDecoder(c.Request.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&edited); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Invalid request body: %s", err.Error()),
		})
		return
	}

	utilities.MergeNonEmpty(&company.EditableCompanyInfo, &edited)
	company.UpdatedAt = time.Now()

	if err := database.Put(cc.DB.WithContext(c.Request.Context()), &company, companyEditColumns...); err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to update company information: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, company)
}

// UploadLogo store company logo and save its URL
// @Summary Upload company logo
// @Description Only image smaller than 10 MB with .jpg, .jpeg, or .png extension is permitted.
// @Tags Company
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param logo formData file true "Upload your logo image"
// @Success 200 {object} model.Company "Logo uploaded"
// @Failure 400 {object} utilities.ErrorResponse "Missing file"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not logged in as company"
// @Failure 404 {object} utilities.ErrorResponse "Company not found"
// @Failure 413 {object} utilities.ErrorResponse "File size is larger than 10 MB"
// @Failure 415 {object} utilities.ErrorResponse "File extension is not allowed"
// @Failure 500 {object} utilities.ErrorResponse "Storage or database error"
// @Router /company/profile/logo [post]
func (cc *CompanyController) UploadLogo(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	upload, ok := controller.ReadUpload(c, "logo", controller.ImageExtensions)
	if !ok {
		return
	}

	company, ok := cc.findCompany(c, user.ID)
	if !ok {
		return
	}

	if cc.Storage == nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: "Cloud storage is not configured"})
		return
	}

	ctx := c.Request.Context()
	key := storage.LogoKey(company.ID, upload.Ext, cc.Now())
	url, err := storage.UploadAndResolve(ctx, cc.Storage, key, bytes.NewReader(upload.Data))
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	company.LogoURL = &url
	company.UpdatedAt = time.Now()
	if err := database.Put(cc.DB.WithContext(ctx), &company, "logo_url", "updated_at"); err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to save logo: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, company)
}
