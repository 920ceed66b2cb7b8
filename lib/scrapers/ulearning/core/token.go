package core

import (
	"net/http"
	"os"
	"regexp"
	"strings"
)

// Credential discovery is opportunistic. Most deployments authenticate
// by session cookie alone, so a missing token never blocks an export.

var tokenEnvKeys = []string{
	"ULEARNING_AUTHORIZATION",
	"UA_AUTHORIZATION",
	"AUTHORIZATION",
	"TOKEN",
}

var tokenCookieName = regexp.MustCompile(`(?i)^(AUTHORIZATION|token|ua-authorization|uaAuthorization)$`)

// DiscoverToken finds a bearer-style credential in the process
// environment, falling back to the provided cookies. Returns "" when
// nothing usable is found.
func DiscoverToken(cookies []*http.Cookie) string {
	for _, key := range tokenEnvKeys {
		if value := strings.TrimSpace(os.Getenv(key)); value != "" {
			return value
		}
	}
	for _, cookie := range cookies {
		if tokenCookieName.MatchString(cookie.Name) && strings.TrimSpace(cookie.Value) != "" {
			return cookie.Value
		}
	}
	return ""
}

// ParseCookieHeader splits a Cookie request-header string into
// cookies, tolerating empty segments.
func ParseCookieHeader(header string) []*http.Cookie {
	var cookies []*http.Cookie
	for _, part := range strings.Split(header, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		name, value, found := strings.Cut(part, "=")
		if !found || strings.TrimSpace(name) == "" {
			continue
		}
		cookies = append(cookies, &http.Cookie{
			Name:  strings.TrimSpace(name),
			Value: strings.TrimSpace(value),
		})
	}
	return cookies
}
