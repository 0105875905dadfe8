// Package server contain implementation of go-gin-server and each route handlers
package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"

	"GradLinkUp-backend/internal/auth"
	"GradLinkUp-backend/internal/config"
	"GradLinkUp-backend/internal/database"
	"GradLinkUp-backend/internal/events"
	"GradLinkUp-backend/internal/storage"
)

// MyServer hold every dependency route handlers need
type MyServer struct {
	Config *config.Config
	DB     *database.DBinstanceStruct
	// Storage is nil when no bucket is configured, upload endpoints then answer 500
	Storage     storage.Client
	Events      events.Publisher
	Redis       redis.UniversalClient
	Blacklist   auth.JwtBlacklistStore
	OauthConfig *oauth2.Config
	Log         *logrus.Logger
}

// NewServer construct http.Server serving routes of s
func NewServer(s *MyServer) *http.Server {
	return &http.Server{
		Addr:         fmt.Sprintf(":%d", s.Config.Port),
		Handler:      s.RegisterRoutes(),
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}
