package query

import (
	"regexp"
	"strings"
)

var (
	argsSuffix     = regexp.MustCompile(`\([^)]*\)`)
	aliasPrefix    = regexp.MustCompile(`^[^:]*:`)
	inlineFragment = regexp.MustCompile(`^\.\.\.\s*on\s+([_A-Za-z][_0-9A-Za-z]*)`)
)

// PurifyKey strips argument and alias decoration from a selection key,
// leaving the schema field name: "a:user(id: 1)" becomes "user".
func PurifyKey(k string) string {
	return aliasPrefix.ReplaceAllString(argsSuffix.ReplaceAllString(k, ""), "")
}

// ResponseKey returns the JSON key a server answers a selection key with:
// the alias label when one is present, the field name otherwise.
func ResponseKey(k string) string {
	k = argsSuffix.ReplaceAllString(k, "")
	if alias, _, ok := strings.Cut(k, ":"); ok {
		return strings.TrimSpace(alias)
	}
	return strings.TrimSpace(k)
}

// FragmentType reports the type condition of an inline fragment key such
// as "... on User".
func FragmentType(k string) (string, bool) {
	m := inlineFragment.FindStringSubmatch(k)
	if m == nil {
		return "", false
	}
	return m[1], true
}
