package auth

import (
	"encoding/base64"
	"strings"
)

const basicPrefix = "Basic "

// ParseBasic extracts the email and password from an Authorization header of
// the form "Basic base64(email:password)". The credentials are split at the
// first colon, so passwords may contain colons.
func ParseBasic(header string) (email, password string, ok bool) {
	encoded, found := strings.CutPrefix(header, basicPrefix)
	if !found {
		return "", "", false
	}

	raw, err := base64.StdEncoding.DecodeString(strings.TrimSpace(encoded))
	if err != nil {
		return "", "", false
	}

	email, password, found = strings.Cut(string(raw), ":")
	if !found || email == "" {
		return "", "", false
	}
	return email, password, true
}
