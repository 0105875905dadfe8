// Package internship handle internship posting by companies.
package internship

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"

	"GradLinkUp-backend/internal/database"
	"GradLinkUp-backend/internal/events"
	"GradLinkUp-backend/internal/logging"
	"GradLinkUp-backend/internal/model"
	"GradLinkUp-backend/internal/utilities"
)

// InternshipController handle internship endpoints
type InternshipController struct {
	DB     *database.DBinstanceStruct
	Events events.Publisher
}

// NewInternshipController creates a new instance of InternshipController
func NewInternshipController(db *database.DBinstanceStruct, publisher events.Publisher) *InternshipController {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &InternshipController{DB: db, Events: publisher}
}

// postInternshipRequest carry posting form values as text
type postInternshipRequest struct {
	Title                 string   `json:"title" example:"Backend Intern"`
	Description           string   `json:"description" example:"Build REST APIs"`
	Location              string   `json:"location" example:"Bangkok"`
	Stipend               string   `json:"stipend" example:"15000"`
	Capacity              string   `json:"capacity" example:"2"`
	RequiredSkills        []string `json:"required_skills"`
	AffirmativeActionTags []string `json:"affirmative_action_tags"`
}

// PostInternshipResponse is returned after internship is created
type PostInternshipResponse struct {
	Internship model.Internship `json:"internship"`
	Redirect   string           `json:"redirect"`
}

func normalize(values []string) pq.StringArray {
	set := model.NewOrderedSet()
	for _, v := range values {
		_, _ = set.Add(v)
	}
	return set.Values()
}

// toInternship validate form and build an active internship owned by owner
func (req postInternshipRequest) toInternship(owner model.User) (model.Internship, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return model.Internship{}, errors.New("title is required")
	}
	description := strings.TrimSpace(req.Description)
	if description == "" {
		return model.Internship{}, errors.New("description is required")
	}
	capacity, err := model.ParseCapacity(req.Capacity)
	if err != nil {
		return model.Internship{}, err
	}

	in := model.Internship{
		CompanyID:             owner.ID,
		Title:                 title,
		Description:           description,
		Stipend:               model.ParseStipend(req.Stipend),
		Capacity:              capacity,
		RequiredSkills:        normalize(req.RequiredSkills),
		AffirmativeActionTags: normalize(req.AffirmativeActionTags),
		Status:                model.InternshipStatusActive,
	}
	if location := strings.TrimSpace(req.Location); location != "" {
		in.Location = &location
	}
	return in, nil
}

// CreateInternship post a new active internship for the signed-in company
// @Summary Post internship
// @Description Title and description are required. Invalid stipend is stored as null.
// @Description Capacity must be one of 1, 2, 3, 4, 5, 10, 15, 20 and default to 1.
// @Tags Internship
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param internship body postInternshipRequest true "Posting form"
// @Success 201 {object} PostInternshipResponse
// @Failure 400 {object} utilities.ErrorResponse "Invalid form or company does not exist"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not logged in as company"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /company/internships [post]
func (ic *InternshipController) CreateInternship(c *gin.Context) {
	user, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	var req postInternshipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{
			Error: fmt.Sprintf("Invalid request body: %s", err.Error()),
		})
		return
	}

	internship, err := req.toInternship(user)
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	ctx := c.Request.Context()
	if err := database.Insert(ic.DB.WithContext(ctx), &internship); err != nil {
		status := http.StatusInternalServerError
		if database.IsForeignKeyViolation(err) {
			status = http.StatusBadRequest
		}
		c.JSON(status, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	if err := ic.Events.Publish(ctx, events.InternshipPostedEvent{
		InternshipID: internship.ID,
		CompanyID:    internship.CompanyID,
		Title:        internship.Title,
		Capacity:     internship.Capacity,
		PostedAt:     internship.CreatedAt,
	}); err != nil {
		logging.Log.WithError(err).WithField("internship", internship.ID).Warn("internship.posted not published")
	}

	c.JSON(http.StatusCreated, PostInternshipResponse{
		Internship: internship,
		Redirect:   model.CompanyDashboardPath,
	})
}

// ListActive return active internships, newest first
// @Summary List active internships
// @Tags Internship
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Internship
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /internships [get]
func (ic *InternshipController) ListActive(c *gin.Context) {
	internships := []model.Internship{}
	if err := ic.DB.WithContext(c.Request.Context()).
		Where("status = ?", model.InternshipStatusActive).
		Order("created_at DESC").
		Find(&internships).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve internships: %s", err.Error()),
		})
		return
	}
	c.JSON(http.StatusOK, internships)
}
