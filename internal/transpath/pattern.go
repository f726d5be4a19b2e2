package transpath

import (
	"regexp"
	"strings"
)

// Pattern matches concrete path strings against a template containing the
// wildcards |ARY| (one or more digits) and |OBJ| (one or more word
// characters), e.g. "events.|ARY|.pages.|ARY|.list.|ARY|.parameters.|ARY|".
type Pattern struct {
	pattern string
	re      *regexp.Regexp
}

// NewPattern compiles pattern. If the pattern contains regex metacharacters
// that survive escaping in a way that fails to compile, Matches falls back
// to exact string comparison.
func NewPattern(pattern string) *Pattern {
	return &Pattern{pattern: pattern, re: compilePattern(pattern)}
}

func compilePattern(pattern string) *regexp.Regexp {
	escaped := regexp.QuoteMeta(pattern)
	escaped = strings.ReplaceAll(escaped, `\|ARY\|`, `\d+`)
	escaped = strings.ReplaceAll(escaped, `\|OBJ\|`, `\w+`)
	re, err := regexp.Compile("^" + escaped + "$")
	if err != nil {
		return nil
	}
	return re
}

// Matches reports whether the concrete dotted path string matches.
func (p *Pattern) Matches(path string) bool {
	if p.re != nil {
		return p.re.MatchString(path)
	}
	return p.pattern == path
}

// MatchesPath reports whether the Path's string form matches.
func (p *Pattern) MatchesPath(path Path) bool {
	return p.Matches(path.String())
}

// String returns the original pattern text.
func (p *Pattern) String() string { return p.pattern }
