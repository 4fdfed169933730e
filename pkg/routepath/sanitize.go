// Package routepath normalizes raw navigation paths into safe, canonical
// form before they are matched against a route table.
//
// Sanitization is a total function: any input string, however malformed or
// hostile, resolves to a path starting with "/". Inputs that cannot be
// repaired fall back to "/". The final canonical path is additionally
// screened against a Blocklist policy.
package routepath

import (
	"net/url"
	"regexp"
	"strings"
)

// Result describes the outcome of sanitizing one raw path.
type Result struct {
	// Original is the raw input string, untouched.
	Original string

	// Path is the canonical path. It always starts with "/". When the
	// input is blocked or unrecoverable, Path is "/".
	Path string

	// Query is the query string (without the leading "?"), preserved from
	// the input. The query is not sanitized; callers decode individual
	// values when parsing it.
	Query string

	// Blocked reports whether the canonical path matched the blocklist.
	Blocked bool

	// Changed reports whether sanitization modified the path component.
	Changed bool
}

// Characters stripped from every path: the usual markup and injection
// payloads, plus the URL metacharacters "%", "?" and "#" that can
// surface through percent-decoding. Stripping the metacharacters keeps
// sanitization idempotent: the canonical path parses back to itself
// instead of being re-decoded, re-split, or rejected on a later pass.
var blacklistChars = "<>'\"`;(){}%?#"

// dotRunRE collapses runs of two or more dots into a single dot, so ".."
// can never survive as a traversal segment.
var dotRunRE = regexp.MustCompile(`\.{2,}`)

// Sanitize normalizes a raw navigation path using the default blocklist.
func Sanitize(raw string) Result {
	return SanitizeWith(raw, DefaultBlocklist())
}

// SanitizeWith normalizes a raw navigation path, screening the result
// against the given blocklist policy. A nil policy blocks nothing.
//
// The transform never fails and is side-effect free, so it is safe to run
// before every match:
//
//  1. Empty input resolves to "/".
//  2. The input is parsed as a URL reference; only its percent-decoded
//     path component is kept. Unparseable input resolves to "/".
//  3. Markup/injection characters, decoded URL metacharacters, and
//     C0/C1 control characters are stripped.
//  4. Slash runs collapse to one slash, a single trailing slash is
//     removed, and dot runs collapse to one dot.
//  5. "." and ".." segments are dropped.
//  6. A blocked result resolves to "/".
func SanitizeWith(raw string, policy *Blocklist) Result {
	res := Result{Original: raw, Path: "/"}
	if raw == "" {
		res.Changed = true
		return res
	}

	u, err := url.Parse(raw)
	if err != nil {
		// Unparseable (bad percent escapes and friends) falls back to root.
		res.Changed = true
		return res
	}
	res.Query = u.RawQuery

	// url.Parse percent-decodes the path component. Opaque URLs such as
	// "javascript:alert(1)" carry no path; keep the scheme visible so the
	// blocklist can reject it.
	path := u.Path
	if u.Opaque != "" {
		path = u.Scheme + ":" + u.Opaque
	}

	before, _, _ := strings.Cut(raw, "?")

	path = stripChars(path)

	// Collapse slash runs into a single slash.
	for strings.Contains(path, "//") {
		path = strings.ReplaceAll(path, "//", "/")
	}

	// Remove a single trailing slash (except for root).
	if len(path) > 1 {
		path = strings.TrimSuffix(path, "/")
	}

	// SECURITY: ".." collapses to "." and is then dropped segment-wise, so
	// traversal sequences cannot climb out of the root.
	path = dotRunRE.ReplaceAllString(path, ".")

	var kept []string
	for _, seg := range strings.Split(path, "/") {
		switch seg {
		case "", ".", "..":
			continue
		default:
			kept = append(kept, seg)
		}
	}
	path = "/" + strings.Join(kept, "/")

	if policy.Blocked(path) {
		res.Blocked = true
		res.Changed = before != "/"
		return res
	}

	res.Path = path
	res.Changed = path != before
	return res
}

// stripChars removes blacklisted markup characters and C0/C1 control
// characters from the path.
func stripChars(path string) string {
	var b strings.Builder
	b.Grow(len(path))
	for _, r := range path {
		if strings.ContainsRune(blacklistChars, r) {
			continue
		}
		if r < 0x20 || r == 0x7f || (r >= 0x80 && r <= 0x9f) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
