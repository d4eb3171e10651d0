package public

import (
	handlershared "github.com/fidelio-loyalty/internal/http/handlers/shared"
)

// CaptchaPayloadRequest is the captcha part of a login body.
// An empty payload is allowed when the scene is disabled.
type CaptchaPayloadRequest = handlershared.CaptchaPayloadRequest
