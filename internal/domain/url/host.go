package url

import "strings"

// mobilePrefixes are leading host labels that denote a mobile or touch
// flavour of the same site.
var mobilePrefixes = map[string]struct{}{
	"m":      {},
	"mobile": {},
	"touch":  {},
	"www":    {},
}

// CanonicalizeHost strips leading mobile prefix labels from host so that
// "www.example.com", "m.example.com" and "example.com" compare equal.
// Labels are dropped only while at least one label would remain after them.
//
//	"m.www.example.com" → "example.com"
//	"m.m.m.m.x.m.com"   → "x.m.com"
//	"mobile."           → ""
//	"mobile"            → "mobile"
func CanonicalizeHost(host string) string {
	if host == "" {
		return ""
	}

	labels := strings.Split(host, ".")
	start := 0
	for start < len(labels)-1 {
		if _, ok := mobilePrefixes[labels[start]]; !ok {
			break
		}
		start++
	}
	if start == 0 {
		return host
	}
	return strings.Join(labels[start:], ".")
}
