package model

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// MaxRecommendations is the number of active internships shown to a candidate
const MaxRecommendations = 5

// CandidateApplicationView is one row of candidate's application list
type CandidateApplicationView struct {
	ID              uuid.UUID `json:"id"`
	Status          string    `json:"status"`
	Badge           string    `json:"badge"`
	AppliedAt       time.Time `json:"applied_at"`
	InternshipID    uuid.UUID `json:"internship_id"`
	InternshipTitle string    `json:"internship_title"`
	CompanyName     string    `json:"company_name"`
}

// RecommendedInternship is an active internship suggested to a candidate
type RecommendedInternship struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Location    *string   `json:"location"`
	Stipend     *float64  `json:"stipend"`
	CompanyName string    `json:"company_name"`
}

// CandidateDashboard is response of candidate dashboard
type CandidateDashboard struct {
	Applications    []CandidateApplicationView `json:"applications"`
	Recommendations []RecommendedInternship    `json:"recommendations"`
}

// ApplicationStats is counts derived from a set of applications
type ApplicationStats struct {
	Total    int `json:"total"`
	Pending  int `json:"pending"`
	Accepted int `json:"accepted"`
}

// ApplicationSummary is an application as shown to the company
type ApplicationSummary struct {
	ID     uuid.UUID `json:"id"`
	Status string    `json:"status"`
}

// CompanyInternshipView is one internship of company dashboard
type CompanyInternshipView struct {
	ID           uuid.UUID            `json:"id"`
	Title        string               `json:"title"`
	Location     *string              `json:"location"`
	Status       string               `json:"status"`
	CreatedAt    time.Time            `json:"created_at"`
	Applications []ApplicationSummary `json:"applications"`
	Stats        ApplicationStats     `json:"stats"`
}

// CompanyDashboardSummary aggregate every internship of a company
type CompanyDashboardSummary struct {
	TotalInternships  int `json:"total_internships"`
	ActiveInternships int `json:"active_internships"`
	ApplicationStats
}

// CompanyDashboard is response of company dashboard
type CompanyDashboard struct {
	Internships []CompanyInternshipView `json:"internships"`
	Summary     CompanyDashboardSummary `json:"summary"`
}

// CountApplications reduce applications into ApplicationStats.
// Pending means status Applied.
func CountApplications(apps []Application) ApplicationStats {
	stats := ApplicationStats{Total: len(apps)}
	for _, app := range apps {
		switch app.Status {
		case ApplicationStatusApplied:
			stats.Pending++
		case ApplicationStatusAccepted:
			stats.Accepted++
		}
	}
	return stats
}

// BuildCandidateDashboard compose candidate dashboard.
// Applications must have Internship and Internship.Company loaded,
// internships must have Company loaded.
func BuildCandidateDashboard(apps []Application, internships []Internship) CandidateDashboard {
	dash := CandidateDashboard{
		Applications:    make([]CandidateApplicationView, 0, len(apps)),
		Recommendations: make([]RecommendedInternship, 0, MaxRecommendations),
	}

	for _, app := range apps {
		dash.Applications = append(dash.Applications, CandidateApplicationView{
			ID:              app.ID,
			Status:          app.Status,
			Badge:           StatusBadge(app.Status),
			AppliedAt:       app.AppliedAt,
			InternshipID:    app.InternshipID,
			InternshipTitle: app.Internship.Title,
			CompanyName:     app.Internship.Company.CompanyName,
		})
	}
	sort.SliceStable(dash.Applications, func(i, j int) bool {
		return dash.Applications[i].AppliedAt.After(dash.Applications[j].AppliedAt)
	})

	for _, in := range internships {
		if len(dash.Recommendations) == MaxRecommendations {
			break
		}
		if in.Status != InternshipStatusActive {
			continue
		}
		dash.Recommendations = append(dash.Recommendations, RecommendedInternship{
			ID:          in.ID,
			Title:       in.Title,
			Description: in.Description,
			Location:    in.Location,
			Stipend:     in.Stipend,
			CompanyName: in.Company.CompanyName,
		})
	}

	return dash
}

// BuildCompanyDashboard compose company dashboard from internships with their applications loaded.
// Internship order is kept as given.
func BuildCompanyDashboard(internships []Internship) CompanyDashboard {
	dash := CompanyDashboard{
		Internships: make([]CompanyInternshipView, 0, len(internships)),
	}
	dash.Summary.TotalInternships = len(internships)

	for _, in := range internships {
		stats := CountApplications(in.Applications)
		summaries := make([]ApplicationSummary, 0, len(in.Applications))
		for _, app := range in.Applications {
			summaries = append(summaries, ApplicationSummary{ID: app.ID, Status: app.Status})
		}
		dash.Internships = append(dash.Internships, CompanyInternshipView{
			ID:           in.ID,
			Title:        in.Title,
			Location:     in.Location,
			Status:       in.Status,
			CreatedAt:    in.CreatedAt,
			Applications: summaries,
			Stats:        stats,
		})

		if in.Status == InternshipStatusActive {
			dash.Summary.ActiveInternships++
		}
		dash.Summary.Total += stats.Total
		dash.Summary.Pending += stats.Pending
		dash.Summary.Accepted += stats.Accepted
	}

	return dash
}
