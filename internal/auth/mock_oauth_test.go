package auth

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"

	"golang.org/x/oauth2"

	"GradLinkUp-backend/internal/model"
)

// MockOAuth2Server act as google token and userinfo endpoints
type MockOAuth2Server struct {
	*httptest.Server
	Config           *oauth2.Config
	MockInfoEndpoint string

	mu        sync.Mutex
	users     map[string]model.GoogleUserInfo
	codes     map[string]string
	exchanged map[string]bool
}

// NewMockOAuth2Server serve the given users
func NewMockOAuth2Server(users []model.GoogleUserInfo) *MockOAuth2Server {
	s := &MockOAuth2Server{
		users:     map[string]model.GoogleUserInfo{},
		codes:     map[string]string{},
		exchanged: map[string]bool{},
	}
	for _, u := range users {
		s.users[u.GID] = u
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/token", s.handleToken)
	mux.HandleFunc("/userinfo", s.handleUserInfo)
	s.Server = httptest.NewServer(mux)

	s.Config = &oauth2.Config{
		ClientID:     "mock-client",
		ClientSecret: "mock-secret",
		Endpoint: oauth2.Endpoint{
			AuthURL:   s.URL + "/auth",
			TokenURL:  s.URL + "/token",
			AuthStyle: oauth2.AuthStyleInParams,
		},
		RedirectURL: "http://localhost/callback",
	}
	s.MockInfoEndpoint = s.URL + "/userinfo"
	return s
}

// GetAuthCode issue a one-time code for user with gid
func (s *MockOAuth2Server) GetAuthCode(gid string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[gid]; !ok {
		return "", fmt.Errorf("unknown user %s", gid)
	}
	code := "code-" + gid
	s.codes[code] = gid
	return code, nil
}

// IsUserTokenExchanged reports whether a code of gid was exchanged
func (s *MockOAuth2Server) IsUserTokenExchanged(gid string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.exchanged[gid]
}

func (s *MockOAuth2Server) handleToken(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	s.mu.Lock()
	gid, ok := s.codes[r.Form.Get("code")]
	if ok {
		delete(s.codes, r.Form.Get("code"))
		s.exchanged[gid] = true
	}
	s.mu.Unlock()

	w.Header().Set("Content-Type", "application/json")
	if !ok {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid_grant"})
		return
	}
	_ = json.NewEncoder(w).Encode(map[string]any{
		"access_token": "token-" + gid,
		"token_type":   "Bearer",
		"expires_in":   3600,
	})
}

func (s *MockOAuth2Server) handleUserInfo(w http.ResponseWriter, r *http.Request) {
	gid := strings.TrimPrefix(strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer "), "token-")

	s.mu.Lock()
	user, ok := s.users[gid]
	s.mu.Unlock()

	if !ok {
		http.Error(w, "unknown token", http.StatusUnauthorized)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(user)
}
