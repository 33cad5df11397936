package service

import "errors"

// Sentinel errors the routes translate into status codes. Permission denials
// and missing records are always surfaced distinctly.
var (
	ErrNotAssigned    = errors.New("not assigned to this casino")
	ErrAdminOnly      = errors.New("admin only")
	ErrAdminOfCasino  = errors.New("admin of this casino required")
	ErrEmailTaken     = errors.New("email already registered")
	ErrBadCredentials = errors.New("invalid credentials")
	ErrAlreadyDecided = errors.New("request already decided")
	ErrDuplicateReq   = errors.New("pending request already exists")
)
