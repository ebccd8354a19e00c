package domain

import "errors"

// ErrUnauthorized is returned when a bearer token is missing, invalid or lacks the admin role.
var ErrUnauthorized = errors.New("unauthorized")

// AdminRole is the role claim required on admin endpoints.
const AdminRole = "admin"

// TokenVerifier validates an admin bearer token and returns its subject.
type TokenVerifier interface {
	Verify(token string) (subject string, err error)
}
