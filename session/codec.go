package session

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/jwtpizza/pizza-service/users"
	"github.com/pkg/errors"
)

// Snapshot is the principal state captured inside a token at issue time.
// The session layer never mutates it; profile changes re-issue a token.
type Snapshot struct {
	ID    int
	Name  string
	Email string
	Roles []users.RoleAssignment
}

type tokenClaims struct {
	ID    int                    `json:"id"`
	Name  string                 `json:"name"`
	Email string                 `json:"email"`
	Roles []users.RoleAssignment `json:"roles"`
	jwt.RegisteredClaims
}

// Codec signs and verifies session tokens with symmetric HMAC-SHA256.
// Tokens carry no expiry claim; the revocation store is the only
// invalidation path, so a compromised token can be force-revoked without
// rotating the signing secret.
type Codec struct {
	secret  []byte
	nowTime func() time.Time
}

// CodecOption defines a function type to modify the Codec instance.
type CodecOption func(*Codec)

// WithNowTime sets the now time function (primarily for testing)
func WithNowTime(nowFunc func() time.Time) CodecOption {
	return func(c *Codec) {
		c.nowTime = nowFunc
	}
}

// NewCodec creates a codec bound to the process-wide signing secret.
func NewCodec(secret string, options ...CodecOption) (*Codec, error) {
	if secret == "" {
		return nil, errors.New("[NewCodec] signing secret is required")
	}
	codec := &Codec{
		secret:  []byte(secret),
		nowTime: time.Now,
	}
	for _, opt := range options {
		opt(codec)
	}
	return codec, nil
}

// Sign produces a signed token encoding the given snapshot plus an
// issuance timestamp and a unique token ID.
func (c *Codec) Sign(snap Snapshot) (string, error) {
	claims := &tokenClaims{
		ID:    snap.ID,
		Name:  snap.Name,
		Email: snap.Email,
		Roles: snap.Roles,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt: jwt.NewNumericDate(c.nowTime()),
			ID:       uuid.New().String(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", errors.Wrap(err, "failed to sign token with HMAC")
	}
	return signed, nil
}

// Verify parses and validates a token, returning the embedded snapshot.
// It fails closed: any malformed, truncated, or mis-signed token yields
// SignatureErr, never a partial snapshot.
func (c *Codec) Verify(raw string) (Snapshot, error) {
	token, err := jwt.ParseWithClaims(raw, &tokenClaims{}, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return c.secret, nil
	})
	if err != nil {
		return Snapshot{}, errors.Wrap(SignatureErr, err.Error())
	}

	claims, ok := token.Claims.(*tokenClaims)
	if !ok || !token.Valid {
		return Snapshot{}, SignatureErr
	}

	return Snapshot{
		ID:    claims.ID,
		Name:  claims.Name,
		Email: claims.Email,
		Roles: claims.Roles,
	}, nil
}
