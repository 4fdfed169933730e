package routepath

import "regexp"

// Blocklist is the policy applied to a canonical path after sanitization.
// Any pattern match blocks the path. The zero policy blocks nothing; the
// default policy rejects reserved prefixes, server-side file extensions,
// residual traversal shapes, and dangerous URL schemes leaking into the
// path.
type Blocklist struct {
	patterns []*regexp.Regexp
}

var defaultPatterns = []*regexp.Regexp{
	// Reserved path prefixes.
	regexp.MustCompile(`(?i)^/?(api|admin|wp-admin|wp-content|wp-includes)`),
	// Server-side file extensions.
	regexp.MustCompile(`(?i)\.(php|asp|aspx|jsp|cgi|config|env|git|sql|htaccess)$`),
	// Residual traversal shapes.
	regexp.MustCompile(`\.\.`),
	// SECURITY: URL schemes smuggled into the path component.
	regexp.MustCompile(`(?i)(javascript|data|vbscript|file):`),
}

// DefaultBlocklist returns the built-in policy.
func DefaultBlocklist() *Blocklist {
	return &Blocklist{patterns: defaultPatterns}
}

// NewBlocklist builds a policy from the given patterns.
func NewBlocklist(patterns ...*regexp.Regexp) *Blocklist {
	return &Blocklist{patterns: patterns}
}

// Add appends a pattern to the policy.
func (b *Blocklist) Add(pattern *regexp.Regexp) {
	b.patterns = append(b.patterns, pattern)
}

// Blocked reports whether the path matches any pattern in the policy.
// A nil policy blocks nothing.
func (b *Blocklist) Blocked(path string) bool {
	if b == nil {
		return false
	}
	for _, p := range b.patterns {
		if p.MatchString(path) {
			return true
		}
	}
	return false
}
