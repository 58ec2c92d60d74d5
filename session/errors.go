package session

import "errors"

var (
	SignatureErr = errors.New("invalid token signature")
)
