package commandimpl

import (
	"net/url"
	"strings"
)

// reserved profile-URL path segments that are never usernames.
var reservedSegments = map[string]bool{
	"p":          true,
	"reel":       true,
	"reels":      true,
	"tv":         true,
	"stories":    true,
	"explore":    true,
	"accounts":   true,
	"direct":     true,
	"about":      true,
	"developer":  true,
	"directory":  true,
	"legal":      true,
	"web":        true,
	"challenge":  true,
	"graphql":    true,
	"api":        true,
	"static":     true,
	"privacy":    true,
	"terms":      true,
	"emails":     true,
	"session":    true,
	"ajax":       true,
	"topics":     true,
	"locations":  true,
	"lite":       true,
	"invites":    true,
	"push":       true,
	"_n":         true,
	"oauth":      true,
	"enterprise": true,
}

// parseTarget resolves a plain chat message to an Instagram username. It
// accepts bare usernames, @-prefixed ones and profile URLs.
func parseTarget(text string) (string, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", false
	}

	if strings.Contains(text, "instagram.com") {
		return usernameFromURL(text)
	}

	username := strings.TrimPrefix(text, "@")
	if !validUsername(username) {
		return "", false
	}
	return username, true
}

func usernameFromURL(raw string) (string, bool) {
	if !strings.Contains(raw, "://") {
		raw = "https://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", false
	}
	if !strings.HasSuffix(u.Hostname(), "instagram.com") {
		return "", false
	}

	segments := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(segments) == 0 || segments[0] == "" {
		return "", false
	}

	username := segments[0]
	if reservedSegments[strings.ToLower(username)] || !validUsername(username) {
		return "", false
	}
	return username, true
}

// validUsername enforces the upstream account-name alphabet: letters,
// digits, dot and underscore, at most 30 characters.
func validUsername(s string) bool {
	if s == "" || len(s) > 30 {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '.' || r == '_':
		default:
			return false
		}
	}
	return true
}
