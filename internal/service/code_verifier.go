package service

import "strings"

// CodeVerifier decides whether a presented validation code is acceptable
// for a restaurant. The seam for swapping in signed QR or NFC checks later.
type CodeVerifier interface {
	Verify(restaurantID uint, code string) bool
}

// AllowlistCodeVerifier accepts a fixed set of codes, case-insensitive.
type AllowlistCodeVerifier struct {
	codes map[string]struct{}
}

// NewAllowlistCodeVerifier builds a verifier from the configured codes.
// Empty input falls back to the standard pair.
func NewAllowlistCodeVerifier(codes []string) *AllowlistCodeVerifier {
	if len(codes) == 0 {
		codes = []string{"1234", "BONUS"}
	}
	set := make(map[string]struct{}, len(codes))
	for _, code := range codes {
		normalized := strings.ToUpper(strings.TrimSpace(code))
		if normalized == "" {
			continue
		}
		set[normalized] = struct{}{}
	}
	return &AllowlistCodeVerifier{codes: set}
}

// Verify checks the code against the allowlist.
func (v *AllowlistCodeVerifier) Verify(_ uint, code string) bool {
	_, ok := v.codes[strings.ToUpper(strings.TrimSpace(code))]
	return ok
}
