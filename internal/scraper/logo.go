package scraper

import "strings"

// base64 payload signatures of the image formats the source embeds
var imageSignatures = []struct {
	prefix string
	mime   string
}{
	{"iVBORw0KGgo", "image/png"},
	{"/9j/", "image/jpeg"},
	{"R0lGOD", "image/gif"},
	{"PHN2Zy", "image/svg+xml"},
	{"PD94bWwg", "image/svg+xml"},
	{"UklGR", "image/webp"},
}

// ResolveLogoURL turns a raw img src into a usable URL. Absolute and data
// URLs are kept verbatim, a base64 payload missing its data-URI prefix is
// given one, and anything else is treated as a server-relative path below
// origin. Resolving an already resolved value returns it unchanged.
func ResolveLogoURL(src, origin string) string {
	src = strings.TrimSpace(src)
	if src == "" {
		return ""
	}

	lower := strings.ToLower(src)
	switch {
	case strings.HasPrefix(lower, "data:"),
		strings.HasPrefix(lower, "http://"),
		strings.HasPrefix(lower, "https://"),
		strings.HasPrefix(lower, "//"):
		return src
	case strings.HasPrefix(lower, "image/") && strings.Contains(lower, ";base64,"):
		return "data:" + src
	case strings.Contains(lower, ";base64,"),
		strings.HasPrefix(lower, "svg+xml"):
		// "svg+xml;base64,...", "png;base64,..." and inline "svg+xml;utf8,<svg>"
		return "data:image/" + src
	}

	if mime := sniffBase64Image(src); mime != "" {
		return "data:" + mime + ";base64," + src
	}

	if !strings.HasPrefix(src, "/") {
		src = "/" + src
	}
	return strings.TrimRight(origin, "/") + src
}

func sniffBase64Image(s string) string {
	if len(s) < 32 || !isBase64(s) {
		return ""
	}
	for _, sig := range imageSignatures {
		if strings.HasPrefix(s, sig.prefix) {
			return sig.mime
		}
	}
	return ""
}

func isBase64(s string) bool {
	for _, r := range s {
		switch {
		case r >= 'A' && r <= 'Z', r >= 'a' && r <= 'z', r >= '0' && r <= '9':
		case r == '+', r == '/', r == '=':
		default:
			return false
		}
	}
	return true
}
