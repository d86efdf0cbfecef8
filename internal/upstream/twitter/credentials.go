package twitter

import (
	"encoding/base64"
	"fmt"
	"strings"

	"hookhunter/internal/models"
)

type session struct {
	cookie string
	csrf   string
}

// parseAPIKey accepts either a base64-encoded cookie string (the usual API key
// form) or the raw cookie string itself. The ct0 cookie doubles as CSRF token.
func parseAPIKey(key string) (session, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return session{}, fmt.Errorf("%w: twitter API key is not set", models.ErrConfig)
	}

	cookie := key
	if decoded, err := base64.StdEncoding.DecodeString(key); err == nil {
		cookie = string(decoded)
	}

	var csrf string
	for _, part := range strings.Split(cookie, ";") {
		name, value, ok := strings.Cut(strings.TrimSpace(part), "=")
		if ok && name == "ct0" {
			csrf = value
		}
	}
	if csrf == "" {
		return session{}, fmt.Errorf("%w: twitter API key carries no ct0 cookie", models.ErrConfig)
	}
	return session{cookie: strings.TrimSpace(cookie), csrf: csrf}, nil
}
