package session

import "context"

// RevocationStore is the durable record of which issued tokens are
// currently logged in. It is consulted on every authenticated request;
// signature verification alone never authorizes anything.
type RevocationStore interface {
	// RecordLogin marks a freshly issued token as logged in
	RecordLogin(ctx context.Context, token string) error

	// RecordLogout removes a token's logged-in record
	RecordLogout(ctx context.Context, token string) error

	// IsLoggedIn reports whether a token is currently logged in
	IsLoggedIn(ctx context.Context, token string) (bool, error)
}
