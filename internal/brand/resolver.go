package brand

import (
	"regexp"
	"strings"

	"zyra/internal/models"
)

var slugPattern = regexp.MustCompile(`^[a-z0-9-]+$`)

// ValidSlug reports whether s is a usable tenant key.
func ValidSlug(s string) bool {
	return slugPattern.MatchString(s)
}

// ResolveSlug extracts the tenant slug from a browser path. Only paths under
// /c/<slug> are tenant-scoped; everything else resolves to no tenant.
func ResolveSlug(path string) (string, bool) {
	path = strings.TrimPrefix(path, "/")
	parts := strings.Split(path, "/")
	if len(parts) < 2 || parts[0] != "c" {
		return "", false
	}
	slug := parts[1]
	if !ValidSlug(slug) {
		return "", false
	}
	return slug, true
}

// Theme is the presentation payload for a brand, returned as data for the
// client to apply. The server performs no styling side effects.
type Theme struct {
	Variables map[string]string `json:"variables"` // CSS custom property -> color
	Title     string            `json:"title"`
	Favicon   string            `json:"favicon,omitempty"`
	LogoLight string            `json:"logo_light,omitempty"`
	LogoDark  string            `json:"logo_dark,omitempty"`
}

var themeKeys = []string{"primary", "secondary", "accent", "background", "surface", "text"}

// BuildTheme maps a brand config onto its theme payload. Missing color keys
// are omitted so the client falls back to its defaults.
func BuildTheme(b *models.Brand) Theme {
	vars := map[string]string{}
	for _, key := range themeKeys {
		if v, ok := b.Colors[key].(string); ok && v != "" {
			vars["--brand-"+key] = v
		}
	}

	theme := Theme{
		Variables: vars,
		Title:     b.Name,
	}
	if t, ok := b.Meta["title"].(string); ok && t != "" {
		theme.Title = t
	}
	if f, ok := b.Assets["favicon"].(string); ok {
		theme.Favicon = f
	}
	if logo, ok := b.Assets["logo"].(map[string]interface{}); ok {
		if l, ok := logo["light"].(string); ok {
			theme.LogoLight = l
		}
		if d, ok := logo["dark"].(string); ok {
			theme.LogoDark = d
		}
	}
	return theme
}
