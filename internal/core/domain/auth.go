package domain

import "errors"

// Auth failures, surfaced by the token verifier and the auth middleware.
var (
	ErrMissingToken  = errors.New("you are not logged in! please log in to get access")
	ErrInvalidToken  = errors.New("invalid token. please log in again")
	ErrExpiredToken  = errors.New("your token has expired! please log in again")
	ErrIdentityGone  = errors.New("the user belonging to the token no longer exists")
	ErrStalePassword = errors.New("employee recently changed password! please log in again")
	ErrNotStaff      = errors.New("you are not authorized to access this route")
)
