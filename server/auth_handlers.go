package server

import (
	"net/http"

	"github.com/pkg/errors"

	"github.com/jwtpizza/pizza-service/authz"
	"github.com/jwtpizza/pizza-service/users"
)

type credentialsRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	User  *users.User `json:"user"`
	Token string      `json:"token"`
}

// registerHandler creates a new diner account and opens its first session.
func (s *Server) registerHandler(w http.ResponseWriter, r *http.Request) error {
	var req credentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		return err
	}
	if req.Name == "" || req.Email == "" || req.Password == "" {
		return statusError(http.StatusBadRequest, "name, email, and password are required")
	}

	hash, err := users.HashPassword(req.Password)
	if err != nil {
		return errors.Wrap(err, "[registerHandler] hash password")
	}

	user, err := s.repos.Users.Add(r.Context(), &users.User{
		Name:     req.Name,
		Email:    req.Email,
		Password: hash,
		Roles:    []users.RoleAssignment{{Role: users.RoleDiner}},
	})
	if err != nil {
		return errors.Wrap(err, "[registerHandler] add user")
	}

	token, err := s.sessions.Issue(r.Context(), user)
	if err != nil {
		return errors.Wrap(err, "[registerHandler] issue session")
	}

	writeJSON(w, http.StatusOK, authResponse{User: user, Token: token})
	return nil
}

// loginHandler verifies credentials and opens a session. A second login for
// the same account yields a second independently revocable session.
func (s *Server) loginHandler(w http.ResponseWriter, r *http.Request) error {
	var req credentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		return err
	}

	user, err := s.repos.Users.GetByEmail(r.Context(), req.Email)
	if err != nil {
		return errors.Wrap(err, "unknown user")
	}
	if !users.CheckPasswordHash(req.Password, user.Password) {
		return errors.New("unknown user")
	}

	token, err := s.sessions.Issue(r.Context(), user)
	if err != nil {
		return errors.Wrap(err, "[loginHandler] issue session")
	}

	writeJSON(w, http.StatusOK, authResponse{User: user, Token: token})
	return nil
}

// logoutHandler revokes the caller's session. A request without a live
// session is rejected, never treated as an idempotent success.
func (s *Server) logoutHandler(w http.ResponseWriter, r *http.Request) error {
	if authUser(r) == nil {
		return authz.UnauthenticatedErr
	}

	if err := s.sessions.Revoke(r.Context(), bearerToken(r)); err != nil {
		return errors.Wrap(err, "[logoutHandler] revoke session")
	}

	writeJSON(w, http.StatusOK, map[string]any{"message": "logout successful"})
	return nil
}
