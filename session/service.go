// Package session implements the token lifecycle for the pizza service:
// issue at registration/login, validate on every request, revoke at logout.
package session

import (
	"context"

	"github.com/jwtpizza/pizza-service/authz"
	"github.com/jwtpizza/pizza-service/users"
	"github.com/pkg/errors"
)

// Service composes the token codec with the revocation store. A token
// authorizes a request only while its signature verifies AND the store
// reports it logged in; either failing, or the store being unreachable,
// fails closed to unauthenticated.
type Service struct {
	codec *Codec
	store RevocationStore
}

// NewService initializes a new session Service with required dependencies.
func NewService(codec *Codec, store RevocationStore) (*Service, error) {
	if codec == nil {
		return nil, errors.New("[NewService] codec is required")
	}
	if store == nil {
		return nil, errors.New("[NewService] revocation store is required")
	}
	return &Service{codec: codec, store: store}, nil
}

// Issue signs a snapshot of the user's current identity and roles and
// records the token as logged in. Issuing again for the same user creates
// a second, independently revocable session.
func (s *Service) Issue(ctx context.Context, user *users.User) (string, error) {
	token, err := s.codec.Sign(Snapshot{
		ID:    user.ID,
		Name:  user.Name,
		Email: user.Email,
		Roles: user.Roles,
	})
	if err != nil {
		return "", errors.Wrap(err, "[Service.Issue] codec.Sign")
	}
	if err := s.store.RecordLogin(ctx, token); err != nil {
		return "", errors.Wrap(err, "[Service.Issue] store.RecordLogin")
	}
	return token, nil
}

// Validate resolves a raw bearer token into an authorization context.
// An absent token, a signature failure, a missing logged-in record, or a
// store error all yield UnauthenticatedErr.
func (s *Service) Validate(ctx context.Context, raw string) (*authz.Context, error) {
	if raw == "" {
		return nil, authz.UnauthenticatedErr
	}

	snap, err := s.codec.Verify(raw)
	if err != nil {
		return nil, authz.UnauthenticatedErr
	}

	loggedIn, err := s.store.IsLoggedIn(ctx, raw)
	if err != nil || !loggedIn {
		return nil, authz.UnauthenticatedErr
	}

	return &authz.Context{
		ID:    snap.ID,
		Name:  snap.Name,
		Email: snap.Email,
		Roles: snap.Roles,
	}, nil
}

// Revoke removes the token's logged-in record. The router guard requires a
// live session before calling this, so revoking an already-invalid token is
// rejected upstream rather than silently accepted.
func (s *Service) Revoke(ctx context.Context, raw string) error {
	if err := s.store.RecordLogout(ctx, raw); err != nil {
		return errors.Wrap(err, "[Service.Revoke] store.RecordLogout")
	}
	return nil
}
