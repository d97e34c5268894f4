package steam

import (
	"net/url"
	"strings"
)

// NormalizeHandle trims a user supplied handle and unwraps community profile URLs
// (steamcommunity.com/profiles/<id> and steamcommunity.com/id/<vanity>).
func NormalizeHandle(raw string) string {
	handle := strings.TrimSpace(raw)
	if handle == "" {
		return ""
	}

	candidate := handle
	if !strings.Contains(candidate, "://") {
		candidate = "https://" + candidate
	}

	u, err := url.Parse(candidate)
	if err != nil || !strings.HasSuffix(strings.ToLower(u.Host), "steamcommunity.com") {
		return handle
	}

	parts := strings.Split(strings.Trim(u.Path, "/"), "/")
	if len(parts) >= 2 && (parts[0] == "profiles" || parts[0] == "id") && parts[1] != "" {
		return parts[1]
	}

	return handle
}
