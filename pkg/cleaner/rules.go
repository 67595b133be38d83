package cleaner

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// space matches the same characters as a Unicode-aware \s: RE2's \s is
// ASCII only, so vertical tab, the C0 separators, NEL and every Unicode
// separator are added explicitly.
const space = `\s\v\x{1c}-\x{1f}\x{85}\p{Z}`

var (
	scriptStyleOpenRegex = regexp.MustCompile(`(?is)<(script|style).*?>`)

	commentRegex       = regexp.MustCompile(`(?s)<!--.*?-->\n?`)
	tagRegex           = regexp.MustCompile(`(?s)<.*?>`)
	articleHeaderRegex = regexp.MustCompile(`##[0-9]+ `)
	parentheticalRegex = regexp.MustCompile(`\([^)]*\)`)
	imageAltRegex      = regexp.MustCompile(`alt=.* src=.*.`)
	speakerTagRegex    = regexp.MustCompile(`@![^` + space + `]*`)
	specialCharRegex   = regexp.MustCompile(`[!@#$%^&*():"]`)
	markerSpanRegex    = regexp.MustCompile(`%&%.*%&%`)
	whitespaceRegex    = regexp.MustCompile(`[` + space + `]{2,}`)
)

// Rule is a single named rewrite step of the markup chain.
type Rule struct {
	Name  string
	Apply func(string) string
}

// DefaultRules returns the markup rule chain in application order.
// Order matters: every rule sees the output of the one before it.
func DefaultRules() []Rule {
	return []Rule{
		{Name: "script-style", Apply: stripScriptStyle},
		regexRule("comments", commentRegex, ""),
		regexRule("tags", tagRegex, " "),
		regexRule("article-headers", articleHeaderRegex, ""),
		regexRule("parentheticals", parentheticalRegex, ""),
		regexRule("image-alt", imageAltRegex, ""),
		regexRule("speaker-tags", speakerTagRegex, ""),
		regexRule("special-chars", specialCharRegex, ""),
		regexRule("marker-spans", markerSpanRegex, ""),
		{Name: "double-slash", Apply: func(s string) string { return strings.ReplaceAll(s, "//", "") }},
		regexRule("whitespace", whitespaceRegex, " "),
		{Name: "trim", Apply: trimSpace},
	}
}

func regexRule(name string, re *regexp.Regexp, repl string) Rule {
	return Rule{
		Name: name,
		Apply: func(s string) string {
			return re.ReplaceAllLiteralString(s, repl)
		},
	}
}

// stripScriptStyle removes <script>...</script> and <style>...</style> blocks,
// content included. The closing tag must name the same element as the
// opening one; an opener with no matching closer is left in place.
// The opener matches with Unicode case folding, so "<ſcript>" opens a
// block.
func stripScriptStyle(s string) string {
	var b strings.Builder
	for {
		loc := scriptStyleOpenRegex.FindStringSubmatchIndex(s)
		if loc == nil {
			b.WriteString(s)
			return b.String()
		}
		end := findCloser(s[loc[1]:], s[loc[2]:loc[3]])
		if end < 0 {
			b.WriteString(s[:loc[0]+1])
			s = s[loc[0]+1:]
			continue
		}
		b.WriteString(s[:loc[0]])
		s = s[loc[1]+end:]
	}
}

// findCloser returns the offset just past the first "</name>" in s, or -1.
// The name is compared rune by rune after lowercasing, so "</SCRIPT>" closes
// "<script>" but "</script>" does not close "<ſcript>".
func findCloser(s, name string) int {
	for i := 0; ; {
		j := strings.Index(s[i:], "</")
		if j < 0 {
			return -1
		}
		k := i + j + 2
		matched := true
		for _, want := range name {
			got, size := utf8.DecodeRuneInString(s[k:])
			if size == 0 || unicode.ToLower(got) != unicode.ToLower(want) {
				matched = false
				break
			}
			k += size
		}
		if matched && strings.HasPrefix(s[k:], ">") {
			return k + 1
		}
		i += j + 1
	}
}

// IsSpace reports whether r is whitespace for cleaning and line splitting:
// unicode.IsSpace plus the C0 separators U+001C to U+001F.
func IsSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= 0x1c && r <= 0x1f)
}

func trimSpace(s string) string {
	return strings.TrimFunc(s, IsSpace)
}
