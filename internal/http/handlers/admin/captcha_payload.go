package admin

import (
	handlershared "github.com/fidelio-loyalty/internal/http/handlers/shared"
)

// CaptchaPayloadRequest is the captcha part of a login body.
type CaptchaPayloadRequest = handlershared.CaptchaPayloadRequest
