package server

import (
	"net/http"

	"github.com/pkg/errors"

	"github.com/jwtpizza/pizza-service/authz"
	"github.com/jwtpizza/pizza-service/users"
)

// meHandler returns the authenticated principal as resolved from its token.
func (s *Server) meHandler(w http.ResponseWriter, r *http.Request) error {
	caller := authUser(r)
	if err := authz.Decide(caller, authz.OpViewProfile, authz.Facts{}); err != nil {
		return err
	}

	writeJSON(w, http.StatusOK, caller)
	return nil
}

// updateUserHandler changes a user's name, email, or password. Allowed for
// the user itself or an admin. The caller receives a freshly issued token so
// the session reflects the updated identity; the old session stays live
// until revoked.
func (s *Server) updateUserHandler(w http.ResponseWriter, r *http.Request) error {
	userID, err := pathInt(r, "userId")
	if err != nil {
		return err
	}

	caller := authUser(r)
	if err := authz.Decide(caller, authz.OpUpdateUser, authz.Facts{TargetUserID: userID}); err != nil {
		return err
	}

	var req credentialsRequest
	if err := decodeJSON(r, &req); err != nil {
		return err
	}

	update := &users.User{ID: userID, Name: req.Name, Email: req.Email}
	if req.Password != "" {
		hash, err := users.HashPassword(req.Password)
		if err != nil {
			return errors.Wrap(err, "[updateUserHandler] hash password")
		}
		update.Password = hash
	}

	user, err := s.repos.Users.Update(r.Context(), update)
	if err != nil {
		return errors.Wrap(err, "[updateUserHandler] update user")
	}

	token, err := s.sessions.Issue(r.Context(), user)
	if err != nil {
		return errors.Wrap(err, "[updateUserHandler] issue session")
	}

	writeJSON(w, http.StatusOK, authResponse{User: user, Token: token})
	return nil
}

// listUsersHandler returns users filtered by name as a bare array. Without a
// limit parameter the listing is unpaginated and returns everything.
func (s *Server) listUsersHandler(w http.ResponseWriter, r *http.Request) error {
	if err := authz.Decide(authUser(r), authz.OpListUsers, authz.Facts{}); err != nil {
		return err
	}

	page := queryInt(r, "page", 0)
	limit := queryInt(r, "limit", 0)
	name := r.URL.Query().Get("name")

	list, err := s.repos.Users.List(r.Context(), page, limit, name)
	if err != nil {
		return errors.Wrap(err, "[listUsersHandler] list users")
	}

	writeJSON(w, http.StatusOK, list)
	return nil
}
