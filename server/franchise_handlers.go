package server

import (
	"net/http"

	"github.com/pkg/errors"

	"github.com/jwtpizza/pizza-service/authz"
	"github.com/jwtpizza/pizza-service/franchise"
)

// listFranchisesHandler returns the public franchise listing. No
// authentication required; admin rosters are omitted.
func (s *Server) listFranchisesHandler(w http.ResponseWriter, r *http.Request) error {
	page := queryInt(r, "page", 0)
	limit := queryInt(r, "limit", 10)
	name := r.URL.Query().Get("name")

	list, more, err := s.repos.Franchises.List(r.Context(), page, limit, name)
	if err != nil {
		return errors.Wrap(err, "[listFranchisesHandler] list franchises")
	}

	writeJSON(w, http.StatusOK, map[string]any{"franchises": list, "more": more})
	return nil
}

// userFranchisesHandler returns the franchises a user administers. An
// authenticated caller who is neither that user nor an admin gets an empty
// list rather than an error; the response leaks nothing about the target.
func (s *Server) userFranchisesHandler(w http.ResponseWriter, r *http.Request) error {
	userID, err := pathInt(r, "userId")
	if err != nil {
		return err
	}

	caller := authUser(r)
	if caller == nil {
		return authz.UnauthenticatedErr
	}

	list := []*franchise.Franchise{}
	if authz.Decide(caller, authz.OpListUserFranchises, authz.Facts{TargetUserID: userID}) == nil {
		list, err = s.repos.Franchises.ListForUser(r.Context(), userID)
		if err != nil {
			return errors.Wrap(err, "[userFranchisesHandler] list franchises for user")
		}
	}

	writeJSON(w, http.StatusOK, list)
	return nil
}

func (s *Server) createFranchiseHandler(w http.ResponseWriter, r *http.Request) error {
	if err := authz.Decide(authUser(r), authz.OpCreateFranchise, authz.Facts{}); err != nil {
		if errors.Is(err, authz.ForbiddenErr) {
			return statusError(http.StatusForbidden, "unable to create a franchise")
		}
		return err
	}

	var req franchise.Franchise
	if err := decodeJSON(r, &req); err != nil {
		return err
	}

	created, err := s.repos.Franchises.Create(r.Context(), &req)
	if err != nil {
		return errors.Wrap(err, "[createFranchiseHandler] create franchise")
	}

	writeJSON(w, http.StatusOK, created)
	return nil
}

// deleteFranchiseHandler removes a franchise and its stores. It carries no
// authorization check, matching the shipped endpoint behavior.
func (s *Server) deleteFranchiseHandler(w http.ResponseWriter, r *http.Request) error {
	franchiseID, err := pathInt(r, "franchiseId")
	if err != nil {
		return err
	}

	if err := s.repos.Franchises.Delete(r.Context(), franchiseID); err != nil {
		return errors.Wrap(err, "[deleteFranchiseHandler] delete franchise")
	}

	writeJSON(w, http.StatusOK, map[string]any{"message": "franchise deleted"})
	return nil
}

func (s *Server) createStoreHandler(w http.ResponseWriter, r *http.Request) error {
	franchiseID, err := pathInt(r, "franchiseId")
	if err != nil {
		return err
	}

	caller := authUser(r)
	if caller == nil {
		return authz.UnauthenticatedErr
	}

	// ownership facts are fetched only after authentication succeeds
	parent, err := s.repos.Franchises.Get(r.Context(), franchiseID)
	if err != nil {
		return errors.Wrap(err, "[createStoreHandler] load franchise")
	}

	if err := authz.Decide(caller, authz.OpCreateStore, authz.Facts{FranchiseAdminIDs: parent.AdminIDs()}); err != nil {
		if errors.Is(err, authz.ForbiddenErr) {
			return statusError(http.StatusForbidden, "unable to create a store")
		}
		return err
	}

	var req franchise.Store
	if err := decodeJSON(r, &req); err != nil {
		return err
	}

	created, err := s.repos.Franchises.CreateStore(r.Context(), franchiseID, &req)
	if err != nil {
		return errors.Wrap(err, "[createStoreHandler] create store")
	}

	writeJSON(w, http.StatusOK, created)
	return nil
}

func (s *Server) deleteStoreHandler(w http.ResponseWriter, r *http.Request) error {
	franchiseID, err := pathInt(r, "franchiseId")
	if err != nil {
		return err
	}
	storeID, err := pathInt(r, "storeId")
	if err != nil {
		return err
	}

	caller := authUser(r)
	if caller == nil {
		return authz.UnauthenticatedErr
	}

	parent, err := s.repos.Franchises.Get(r.Context(), franchiseID)
	if err != nil {
		return errors.Wrap(err, "[deleteStoreHandler] load franchise")
	}

	if err := authz.Decide(caller, authz.OpDeleteStore, authz.Facts{FranchiseAdminIDs: parent.AdminIDs()}); err != nil {
		if errors.Is(err, authz.ForbiddenErr) {
			return statusError(http.StatusForbidden, "unable to delete a store")
		}
		return err
	}

	if err := s.repos.Franchises.DeleteStore(r.Context(), franchiseID, storeID); err != nil {
		return errors.Wrap(err, "[deleteStoreHandler] delete store")
	}

	writeJSON(w, http.StatusOK, map[string]any{"message": "store deleted"})
	return nil
}
