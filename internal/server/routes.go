package server

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	// Init swagger doc
	_ "GradLinkUp-backend/docs"

	"GradLinkUp-backend/internal/auth"
	"GradLinkUp-backend/internal/controller"
	"GradLinkUp-backend/internal/controller/candidate"
	"GradLinkUp-backend/internal/controller/company"
	"GradLinkUp-backend/internal/controller/internship"
	"GradLinkUp-backend/internal/controller/role"
	"GradLinkUp-backend/internal/events"
	"GradLinkUp-backend/internal/logging"
	"GradLinkUp-backend/internal/middleware"
	"GradLinkUp-backend/internal/model"
	"GradLinkUp-backend/internal/utilities"
)

// RegisterRoutes will register each http endpoint routes to bound Server instance
func (s *MyServer) RegisterRoutes() http.Handler {
	log := s.Log
	if log == nil {
		log = logging.Log
	}
	publisher := s.Events
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	blacklist := s.Blacklist
	if blacklist == nil {
		blacklist = auth.NewInMemoryBlacklistStore()
	}

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestLogger(log))

	r.Use(cors.New(cors.Config{
		AllowOrigins:     s.Config.AllowOrigin,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))
	r.Use(middleware.SafeHeader())

	gAuth := auth.NewOauthLoginHandler(s.DB, s.OauthConfig, auth.GoogleUserInfoEndpoint)
	logout := auth.NewLogoutController(blacklist)
	roleController := role.NewRoleController(s.DB)
	candidateController := candidate.NewCandidateController(s.DB, s.Storage, publisher)
	companyController := company.NewCompanyController(s.DB, s.Storage)
	internshipController := internship.NewInternshipController(s.DB, publisher)

	r.GET("/", s.HelloWorldHandler)
	r.GET("/health", s.healthHandler)

	v1 := r.Group("/api/v1")
	{
		authRoute := v1.Group("/auth")
		authRoute.Use(middleware.RateLimiterMiddleware(s.Redis, s.Config.RateLimitEvery, s.Config.RateLimit))
		{
			authRoute.POST("google", gAuth.GoogleLoginHandler)
			authRoute.GET("google/callback", gAuth.Callback)
		}

		needAuth := v1.Group("")
		needAuth.Use(
			middleware.JwtBlacklistCheck(blacklist),
			middleware.RequireAuth(s.DB),
			middleware.UserRateLimiterMiddleware(s.Redis, s.Config.RateLimitEvery, s.Config.RateLimit),
		)
		{
			needAuth.GET("auth/me", gAuth.Me)
			needAuth.POST("auth/logout", logout.LogoutHandler)

			needAuth.GET("role", roleController.GetRole)
			needAuth.POST("role", roleController.SelectRole)

			needAuth.GET("internships", internshipController.ListActive)
			needAuth.GET("companies/:company_id", companyController.GetCompanyByID)

			candidateRoute := needAuth.Group("/candidate")
			{
				profileRoute := candidateRoute.Group("/profile", middleware.CheckRole(model.RoleCandidate, middleware.NoRole))
				{
					profileRoute.GET("", candidateController.GetProfile)
					profileRoute.PUT("", candidateController.SaveProfile)
					profileRoute.POST("skills", candidateController.AddSkill)
					profileRoute.DELETE("skills/:skill", candidateController.RemoveSkill)
					profileRoute.POST("resume", middleware.SizeLimit(controller.MaxUploadSize), candidateController.UploadResume)
				}

				candidateRoute.Use(middleware.CheckRole(model.RoleCandidate))
				candidateRoute.GET("dashboard", candidateController.Dashboard)
				candidateRoute.POST("applications", candidateController.Apply)
			}

			companyRoute := needAuth.Group("/company")
			{
				companyRoute.Use(middleware.CheckRole(model.RoleCompany))
				companyRoute.GET("dashboard", companyController.Dashboard)
				companyRoute.GET("profile", companyController.GetProfile)
				companyRoute.PATCH("profile", companyController.EditProfile)
				companyRoute.POST("profile/logo", middleware.SizeLimit(controller.MaxUploadSize), companyController.UploadLogo)
				companyRoute.POST("internships", internshipController.CreateInternship)
			}
		}
	}

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "Route not found"})
	})

	return r
}

// HelloWorldHandler handle request by return message "Hello World"
func (s *MyServer) HelloWorldHandler(c *gin.Context) {
	c.JSON(http.StatusOK, utilities.MessageResponse{Message: "Hello World"})
}

func (s *MyServer) healthHandler(c *gin.Context) {
	health := s.DB.Health()
	if health["status"] != "up" {
		c.JSON(http.StatusServiceUnavailable, health)
		return
	}
	c.JSON(http.StatusOK, health)
}
