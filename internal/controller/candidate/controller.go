// Package candidate serve candidate dashboard, profile editing and applying to internships.
package candidate

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"GradLinkUp-backend/internal/controller"
	"GradLinkUp-backend/internal/database"
	"GradLinkUp-backend/internal/events"
	"GradLinkUp-backend/internal/logging"
	"GradLinkUp-backend/internal/model"
	"GradLinkUp-backend/internal/storage"
	"GradLinkUp-backend/internal/utilities"
)

// CandidateController handle candidate endpoints
type CandidateController struct {
	DB      *database.DBinstanceStruct
	Storage storage.Client
	Events  events.Publisher
	// Now is clock used for object keys
	Now func() time.Time
}

// NewCandidateController creates a new instance of CandidateController
func NewCandidateController(db *database.DBinstanceStruct, store storage.Client, publisher events.Publisher) *CandidateController {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &CandidateController{
		DB:      db,
		Storage: store,
		Events:  publisher,
		Now:     time.Now,
	}
}

type saveProfileRequest struct {
	FullName           *string  `json:"full_name"`
	Qualifications     *string  `json:"qualifications"`
	Skills             []string `json:"skills"`
	LocationPreference *string  `json:"location_preference"`
	SocialCategory     *string  `json:"social_category"`
	ResumeURL          *string  `json:"resume_url"`
}

type skillRequest struct {
	Skill string `json:"skill" binding:"required"`
}

type applyRequest struct {
	InternshipID uuid.UUID `json:"internship_id" binding:"required"`
	CoverLetter  *string   `json:"cover_letter"`
}

// Dashboard return candidate's applications, newest first, and a few active internships
// @Summary Candidate dashboard
// @Description Applications are sorted by applied_at descending, each with a display badge.
// @Description Recommendations are at most 5 active internships.
// @Tags Candidate
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.CandidateDashboard
// @Failure 400 {object} utilities.ErrorResponse "Invalid authorization header"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not logged in as candidate"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /candidate/dashboard [get]
func (cc *CandidateController) Dashboard(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}
	db := cc.DB.WithContext(c.Request.Context())

	var apps []model.Application
	if err := db.Preload("Internship.Company").
		Where("candidate_id = ?", user.ID).
		Order("applied_at DESC").
		Find(&apps).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve applications: %s", err.Error()),
		})
		return
	}

	var internships []model.Internship
	if err := db.Preload("Company").
		Where("status = ?", model.InternshipStatusActive).
		Order("created_at DESC").
		Limit(model.MaxRecommendations).
		Find(&internships).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve internships: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, model.BuildCandidateDashboard(apps, internships))
}

// loadProfile return stored profile or a draft one when user has not saved any
func (cc *CandidateController) loadProfile(ctx context.Context, user model.User) (model.Profile, error) {
	var profile model.Profile
	err := cc.DB.WithContext(ctx).Where("id = ?", user.ID).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.NewDraftProfile(user), nil
	}
	if profile.Skills == nil {
		profile.Skills = []string{}
	}
	return profile, err
}

// GetProfile return stored profile or a default one. Nothing is written.
// @Summary Get candidate profile
// @Description When no profile is stored a default profile built from the identity is returned.
// @Tags Candidate
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.Profile
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not logged in as candidate"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /candidate/profile [get]
func (cc *CandidateController) GetProfile(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	profile, err := cc.loadProfile(c.Request.Context(), user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve profile: %s", err.Error()),
		})
		return
	}
	c.JSON(http.StatusOK, profile)
}

// SaveProfile upsert the whole candidate profile
// @Summary Save candidate profile
// @Description Skills are trimmed, blank and duplicate skills are dropped keeping first occurrence order.
// @Description Role is always saved as candidate.
// @Tags Candidate
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param profile body saveProfileRequest true "Profile to be saved"
// @Success 200 {object} model.Profile
// @Failure 400 {object} utilities.ErrorResponse "Invalid request body"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not logged in as candidate"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /candidate/profile [put]
func (cc *CandidateController) SaveProfile(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	var req saveProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Invalid request body: %s", err.Error()),
		})
		return
	}

	profile := model.Profile{
		ID: user.ID,
		EditableProfileInfo: model.EditableProfileInfo{
			FullName:           req.FullName,
			Qualifications:     req.Qualifications,
			Skills:             pq.StringArray{},
			LocationPreference: req.LocationPreference,
			SocialCategory:     req.SocialCategory,
		},
		ResumeURL: req.ResumeURL,
	}
	for _, s := range req.Skills {
		// blank skill is dropped
		_, _ = profile.AddSkill(s)
	}

	cc.persistProfile(c, profile)
}

// persistProfile upsert profile as candidate and respond with the stored row
func (cc *CandidateController) persistProfile(c *gin.Context, profile model.Profile) {
	profile.Role = model.RoleCandidate
	profile.UpdatedAt = time.Now()

	db := cc.DB.WithContext(c.Request.Context())
	if err := database.Put(db, &profile, model.ProfileSaveColumns...); err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	var saved model.Profile
	if err := db.Where("id = ?", profile.ID).First(&saved).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve profile: %s", err.Error()),
		})
		return
	}
	c.JSON(http.StatusOK, saved)
}

// AddSkill append one skill to candidate profile and save it
// @Summary Add skill to candidate profile
// @Description Skill is trimmed. Adding a skill already present change nothing.
// @Tags Candidate
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param skill body skillRequest true "Skill to add"
// @Success 200 {object} model.Profile
// @Failure 400 {object} utilities.ErrorResponse "Missing or blank skill"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not logged in as candidate"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /candidate/profile/skills [post]
func (cc *CandidateController) AddSkill(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	var req skillRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Invalid request body: %s", err.Error()),
		})
		return
	}

	profile, err := cc.loadProfile(c.Request.Context(), user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve profile: %s", err.Error()),
		})
		return
	}

	added, err := profile.AddSkill(req.Skill)
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Skill must not be empty"})
		return
	}
	if !added {
		c.JSON(http.StatusOK, profile)
		return
	}
	cc.persistProfile(c, profile)
}

// RemoveSkill drop the skill matching path parameter exactly and save the profile
// @Summary Remove skill from candidate profile
// @Description Match is exact and case-sensitive. Removing an absent skill change nothing.
// @Tags Candidate
// @Produce json
// @Security BearerAuth
// @Param skill path string true "Skill to remove"
// @Success 200 {object} model.Profile
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not logged in as candidate"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /candidate/profile/skills/{skill} [delete]
func (cc *CandidateController) RemoveSkill(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	profile, err := cc.loadProfile(c.Request.Context(), user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve profile: %s", err.Error()),
		})
		return
	}

	if !profile.RemoveSkill(c.Param("skill")) {
		c.JSON(http.StatusOK, profile)
		return
	}
	cc.persistProfile(c, profile)
}

// AttachResume upload data as resume of profile and point profile's resume URL to it.
// Profile is left untouched on any failure.
func AttachResume(ctx context.Context, store storage.Client, profile *model.Profile, ext string, data []byte, now time.Time) error {
	key := storage.ResumeKey(profile.ID, ext, now)
	url, err := storage.UploadAndResolve(ctx, store, key, bytes.NewReader(data))
	if err != nil {
		return err
	}
	profile.ResumeURL = &url
	return nil
}

// UploadResume store resume file and return the profile draft pointing to it.
// The profile is not saved, client persist it with SaveProfile.
// @Summary Upload resume file
// @Description Only file smaller than 10 MB with .pdf, .doc, or .docx extension is permitted.
// @Description Returned profile carry the new resume_url but is not saved.
// @Tags Candidate
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param resume formData file true "Upload your resume file"
// @Success 200 {object} model.Profile "Resume uploaded"
// @Failure 400 {object} utilities.ErrorResponse "Missing file or invalid pdf"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not logged in as candidate"
// @Failure 413 {object} utilities.ErrorResponse "File size is larger than 10 MB"
// @Failure 415 {object} utilities.ErrorResponse "File extension is not allowed"
// @Failure 500 {object} utilities.ErrorResponse "Storage or database error"
// @Router /candidate/profile/resume [post]
func (cc *CandidateController) UploadResume(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	upload, ok := controller.ReadUpload(c, "resume", controller.ResumeExtensions)
	if !ok {
		return
	}
	if strings.EqualFold(upload.Ext, ".pdf") {
		if err := storage.ValidatePDF(upload.Data); err != nil {
			c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: err.Error()})
			return
		}
	}

	ctx := c.Request.Context()
	profile, err := cc.loadProfile(ctx, user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve profile: %s", err.Error()),
		})
		return
	}

	if cc.Storage == nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: "Cloud storage is not configured"})
		return
	}
	if err := AttachResume(ctx, cc.Storage, &profile, upload.Ext, upload.Data, cc.Now()); err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	c.JSON(http.StatusOK, profile)
}

// Apply create an application of the candidate to an active internship
// @Summary Apply to internship
// @Tags Candidate
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param application body applyRequest true "Internship to apply"
// @Success 201 {object} model.Application
// @Failure 400 {object} utilities.ErrorResponse "Invalid body or internship not active"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not logged in as candidate"
// @Failure 404 {object} utilities.ErrorResponse "Internship not found"
// @Failure 409 {object} utilities.ErrorResponse "Already applied"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /candidate/applications [post]
func (cc *CandidateController) Apply(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	var req applyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Invalid request body: %s", err.Error()),
		})
		return
	}

	ctx := c.Request.Context()
	db := cc.DB.WithContext(ctx)

	var internship model.Internship
	if err := db.Where("id = ?", req.InternshipID).First(&internship).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Internship not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve internship: %s", err.Error()),
		})
		return
	}
	if internship.Status != model.InternshipStatusActive {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Internship is not accepting applications"})
		return
	}

	app := model.Application{
		CandidateID:  user.ID,
		InternshipID: internship.ID,
		Status:       model.ApplicationStatusApplied,
		CoverLetter:  req.CoverLetter,
	}
	if err := database.Insert(db, &app); err != nil {
		switch {
		case errors.Is(err, database.ErrConflict):
			c.JSON(http.StatusConflict, utilities.ErrorResponse{Error: "You have already applied to this internship"})
		case database.IsForeignKeyViolation(err):
			c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{Error: err.Error()})
		}
		return
	}

	if err := cc.Events.Publish(ctx, events.ApplicationCreatedEvent{
		ApplicationID: app.ID,
		CandidateID:   app.CandidateID,
		InternshipID:  app.InternshipID,
		CompanyID:     internship.CompanyID,
		AppliedAt:     app.AppliedAt,
	}); err != nil {
		logging.Log.WithError(err).WithField("application", app.ID).Warn("application.created not published")
	}

	c.JSON(http.StatusCreated, app)
}
