// Package url provides URL value types, user input normalization and the
// similarity scorer used to find an existing tab for a URL.
package url

import (
	"net"
	"os"
	"path/filepath"
	"strings"
)

// knownSchemes are prefixes that mark input as an explicit URL.
var knownSchemes = []string{"http://", "https://", "file://", "about:"}

// Normalize turns user input into a URL string.
// Inputs with a scheme are returned unchanged, existing local paths become
// file:// URLs, localhost and IP addresses get http:// and other
// domain-like input gets https://. Anything else is returned unchanged.
func Normalize(input string) string {
	if input == "" {
		return ""
	}

	if hasKnownScheme(input) {
		return input
	}

	if fileURL, ok := localFileURL(input); ok {
		return fileURL
	}

	if isLocalhost(input) || isIPAddress(input) {
		return "http://" + input
	}

	if strings.Contains(input, ".") && !strings.Contains(input, " ") && !looksLikePath(input) {
		return "https://" + input
	}

	return input
}

// LooksLikeURL checks if the input appears to be a URL rather than free text.
func LooksLikeURL(input string) bool {
	if input == "" {
		return false
	}
	if hasKnownScheme(input) {
		return true
	}
	if isLocalhost(input) || isIPAddress(input) {
		return true
	}
	return strings.Contains(input, ".") && !strings.Contains(input, " ")
}

// TrimLeadingSpacesIfURL strips leading whitespace when what follows looks
// like a URL. Other input is returned untouched.
func TrimLeadingSpacesIfURL(input string) string {
	trimmed := strings.TrimLeft(input, " \t")
	if trimmed == input || trimmed == "" {
		return input
	}
	if LooksLikeURL(trimmed) {
		return trimmed
	}
	return input
}

// NormalizeInput trims leading blanks off URL-like input and then
// applies Normalize, the way an address bar would.
func NormalizeInput(input string) string {
	return Normalize(TrimLeadingSpacesIfURL(input))
}

// ParseInput parses user-typed input, so "example.com/docs" is read as
// https://example.com/docs.
func ParseInput(input string) (URL, error) {
	return Parse(NormalizeInput(input))
}

// ExtractDomain returns the canonical host of rawURL, so that
// www.example.com and m.example.com resolve to the same value.
func ExtractDomain(rawURL string) string {
	if rawURL == "" {
		return ""
	}
	u, err := ParseInput(rawURL)
	if err != nil {
		return ""
	}
	return CanonicalizeHost(u.Host)
}

func hasKnownScheme(input string) bool {
	lower := strings.ToLower(input)
	for _, scheme := range knownSchemes {
		if strings.HasPrefix(lower, scheme) {
			return true
		}
	}
	return false
}

// hostPart returns the part of input before the first "/".
func hostPart(input string) string {
	if i := strings.Index(input, "/"); i >= 0 {
		return input[:i]
	}
	return input
}

func isLocalhost(input string) bool {
	host := hostPart(input)
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	return host == "localhost"
}

func isIPAddress(input string) bool {
	host := hostPart(input)
	if h, _, err := net.SplitHostPort(host); err == nil {
		host = h
	}
	host = strings.TrimSuffix(strings.TrimPrefix(host, "["), "]")
	return net.ParseIP(host) != nil
}

func looksLikePath(input string) bool {
	return strings.HasPrefix(input, "/") ||
		strings.HasPrefix(input, "./") ||
		strings.HasPrefix(input, "../") ||
		strings.HasPrefix(input, "~/")
}

// localFileURL returns a file:// URL when input names an existing path.
func localFileURL(input string) (string, bool) {
	candidate := input
	if !looksLikePath(candidate) && !strings.Contains(candidate, string(filepath.Separator)) &&
		!strings.HasSuffix(candidate, ".html") && !strings.HasSuffix(candidate, ".htm") {
		return "", false
	}

	candidate = expandHome(candidate)
	if _, err := os.Stat(candidate); err != nil {
		return "", false
	}
	abs, err := filepath.Abs(candidate)
	if err != nil {
		return "", false
	}
	return "file://" + abs, true
}

// expandHome replaces a leading "~/" with the user's home directory.
func expandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}
