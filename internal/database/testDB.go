package database

import (
	"context"
	"fmt"
	"time"

	"github.com/docker/go-connections/nat"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"GradLinkUp-backend/internal/config"
	m "GradLinkUp-backend/internal/model"
)

var testDBInstance *DBinstanceStruct
var teardown func(context.Context, ...testcontainers.TerminateOption) error

// Exported seeded records
var (
	TestUserCandidate1 m.User
	TestUserCandidate2 m.User
	TestUserCompany1   m.User
	TestUserCompany2   m.User
	// TestUserNewcomer has signed in but never selected a role
	TestUserNewcomer m.User

	TestCandidate1 m.Profile
	TestCandidate2 m.Profile
	TestCompany1   m.Company
	TestCompany2   m.Company

	// TestInternships are active, newest first
	TestInternships      []m.Internship
	TestClosedInternship m.Internship

	// TestApplications belong to TestCandidate1, inserted oldest first
	TestApplications []m.Application
)

// GetTestDB starts a PostgreSQL test container and returns a teardown function,
// the DB instance, and any error encountered during setup.
func GetTestDB() (func(context.Context, ...testcontainers.TerminateOption) error, *DBinstanceStruct, error) {
	if testDBInstance != nil && teardown != nil {
		return teardown, testDBInstance, nil
	}

	var (
		dbName = "database"
		dbPwd  = "password"
		dbUser = "user"
	)

	dbContainer, err := postgres.Run(
		context.Background(),
		"postgres:latest",
		postgres.WithDatabase(dbName),
		postgres.WithUsername(dbUser),
		postgres.WithPassword(dbPwd),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		return nil, nil, err
	}

	dbHost, err := dbContainer.Host(context.Background())
	if err != nil {
		return dbContainer.Terminate, nil, err
	}

	dbPort, err := dbContainer.MappedPort(context.Background(), nat.Port("5432/tcp"))
	if err != nil {
		return dbContainer.Terminate, nil, err
	}

	cfg := config.DatabaseConfig{
		UseConnString: true,
		Name:          dbName,
		ConnString:    fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable", dbHost, dbPort.Port(), dbUser, dbPwd, dbName),
	}

	db, err := NewDBInstance(cfg)
	if err != nil {
		return dbContainer.Terminate, nil, err
	}

	if err := seedTestData(db); err != nil {
		_ = dbContainer.Terminate(context.Background())
		return nil, nil, err
	}

	testDBInstance = db
	teardown = dbContainer.Terminate

	return dbContainer.Terminate, db, nil
}

// NewTestUser create a signed-in user without profile, for tests that mutate role or profile.
func NewTestUser(db *DBinstanceStruct, name string) (m.User, error) {
	id := uuid.New()
	user := m.User{
		ID:          id,
		GoogleID:    "google-" + id.String(),
		Email:       fmt.Sprintf("%s-%s@example.com", name, id.String()[:8]),
		DisplayName: ptr(name),
	}
	if err := db.Create(&user).Error; err != nil {
		return m.User{}, err
	}
	return user, nil
}

func seedTestData(db *DBinstanceStruct) error {
	newUser := func(name, email string) m.User {
		id := uuid.New()
		return m.User{
			ID:          id,
			GoogleID:    "google-" + id.String(),
			Email:       email,
			DisplayName: ptr(name),
		}
	}

	TestUserCandidate1 = newUser("Alice Nguyen", "alice@example.com")
	TestUserCandidate2 = newUser("Bob Somsak", "bob@example.com")
	TestUserCompany1 = newUser("TechNova", "hr@technova.io")
	TestUserCompany2 = newUser("DataForge", "jobs@dataforge.io")
	TestUserNewcomer = newUser("Carol Newcomer", "carol@example.com")

	users := []*m.User{&TestUserCandidate1, &TestUserCandidate2, &TestUserCompany1, &TestUserCompany2, &TestUserNewcomer}
	for _, u := range users {
		if err := db.Create(u).Error; err != nil {
			return err
		}
	}

	TestCandidate1 = m.Profile{
		ID:   TestUserCandidate1.ID,
		Role: m.RoleCandidate,
		EditableProfileInfo: m.EditableProfileInfo{
			FullName:           ptr("Alice Nguyen"),
			Qualifications:     ptr("B.Eng Computer Engineering"),
			Skills:             pq.StringArray{"Go", "SQL"},
			LocationPreference: ptr("Bangkok"),
			SocialCategory:     ptr("general"),
		},
	}
	TestCandidate2 = m.Profile{
		ID:   TestUserCandidate2.ID,
		Role: m.RoleCandidate,
		EditableProfileInfo: m.EditableProfileInfo{
			FullName: ptr("Bob Somsak"),
			Skills:   pq.StringArray{"Python"},
		},
	}
	profiles := []m.Profile{
		TestCandidate1,
		TestCandidate2,
		{ID: TestUserCompany1.ID, Role: m.RoleCompany, EditableProfileInfo: m.EditableProfileInfo{FullName: ptr("TechNova"), Skills: pq.StringArray{}}},
		{ID: TestUserCompany2.ID, Role: m.RoleCompany, EditableProfileInfo: m.EditableProfileInfo{FullName: ptr("DataForge"), Skills: pq.StringArray{}}},
	}
	if err := db.Create(&profiles).Error; err != nil {
		return err
	}
	TestCandidate1 = profiles[0]
	TestCandidate2 = profiles[1]

	companies := []m.Company{
		{
			ID: TestUserCompany1.ID,
			EditableCompanyInfo: m.EditableCompanyInfo{
				CompanyName: "TechNova",
				Description: ptr("Innovative platform solutions"),
				Industry:    ptr("Software"),
				Size:        ptr("11-50"),
			},
		},
		{
			ID: TestUserCompany2.ID,
			EditableCompanyInfo: m.EditableCompanyInfo{
				CompanyName: "DataForge",
				Description: ptr("Data analytics consulting"),
				Industry:    ptr("Consulting"),
			},
		},
	}
	if err := db.Create(&companies).Error; err != nil {
		return err
	}
	TestCompany1 = companies[0]
	TestCompany2 = companies[1]

	now := time.Now().Truncate(time.Millisecond)
	specs := []struct {
		company uuid.UUID
		title   string
		status  string
	}{
		{TestCompany1.ID, "Backend Engineer Intern", m.InternshipStatusActive},
		{TestCompany1.ID, "Frontend Developer Intern", m.InternshipStatusActive},
		{TestCompany1.ID, "QA Intern", m.InternshipStatusActive},
		{TestCompany1.ID, "Legacy Support Intern", m.InternshipStatusClosed},
		{TestCompany2.ID, "Data Analyst Intern", m.InternshipStatusActive},
		{TestCompany2.ID, "ML Research Intern", m.InternshipStatusActive},
		{TestCompany2.ID, "BI Dashboard Intern", m.InternshipStatusActive},
	}
	internships := make([]m.Internship, 0, len(specs))
	for i, s := range specs {
		internships = append(internships, m.Internship{
			CompanyID:             s.company,
			Title:                 s.title,
			Description:           s.title + " for students in their final year.",
			Location:              ptr("Bangkok (Hybrid)"),
			Stipend:               ptr(15000.0),
			Capacity:              2,
			RequiredSkills:        pq.StringArray{"Communication"},
			AffirmativeActionTags: pq.StringArray{},
			Status:                s.status,
			CreatedAt:             now.Add(-time.Duration(i) * time.Hour),
		})
	}
	if err := db.Create(&internships).Error; err != nil {
		return err
	}

	TestInternships = nil
	for _, in := range internships {
		if in.Status == m.InternshipStatusActive {
			TestInternships = append(TestInternships, in)
		} else {
			TestClosedInternship = in
		}
	}

	TestApplications = []m.Application{
		{CandidateID: TestCandidate1.ID, InternshipID: internships[0].ID, Status: m.ApplicationStatusApplied, AppliedAt: now.Add(-72 * time.Hour)},
		{CandidateID: TestCandidate1.ID, InternshipID: internships[4].ID, Status: m.ApplicationStatusAccepted, AppliedAt: now.Add(-48 * time.Hour)},
		{CandidateID: TestCandidate1.ID, InternshipID: internships[1].ID, Status: m.ApplicationStatusApplied, AppliedAt: now.Add(-24 * time.Hour)},
	}
	if err := db.Create(&TestApplications).Error; err != nil {
		return err
	}

	others := []m.Application{
		{CandidateID: TestCandidate2.ID, InternshipID: internships[0].ID, Status: m.ApplicationStatusAccepted, AppliedAt: now.Add(-12 * time.Hour)},
		{CandidateID: TestCandidate2.ID, InternshipID: internships[3].ID, Status: m.ApplicationStatusRejected, AppliedAt: now.Add(-96 * time.Hour)},
	}
	return db.Create(&others).Error
}

// ptr helper
func ptr[T any](v T) *T { return &v }
