package service

import "errors"

// Shared sentinel errors mapped to response codes in the handler layer.
var (
	ErrNotFound           = errors.New("resource not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidPassword    = errors.New("invalid password")
	ErrWeakPassword       = errors.New("password does not meet the policy")
	ErrUserExists         = errors.New("user already exists")
	ErrUserDisabled       = errors.New("user account disabled")
	ErrCaptchaRequired    = errors.New("captcha required")
	ErrCaptchaInvalid     = errors.New("captcha invalid")
)
