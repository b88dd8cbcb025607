package service

import (
	"github.com/clerk/clerk-sdk-go/v2"

	"github.com/deppfellow/taskform/internal/server"
)

// AuthService configures Clerk for the routes that require a session.
type AuthService struct {
	server *server.Server
}

func NewAuthService(s *server.Server) *AuthService {
	if key := s.Config.Auth.SecretKey; key != "" {
		clerk.SetKey(key)
	}
	return &AuthService{
		server: s,
	}
}

// Enabled reports whether a Clerk secret key is configured.
func (a *AuthService) Enabled() bool {
	return a.server.Config.Auth.SecretKey != ""
}
