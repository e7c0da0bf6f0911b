// Package naming derives human-readable names from Go identifiers.
package naming

import (
	"reflect"
	"runtime"
	"strings"
	"unicode"
)

// Format converts an identifier into a space-separated phrase. Underscores
// become single spaces and camel-case word boundaries are split, with the
// original casing preserved: "Step_one" -> "Step one", "TransferFunds" ->
// "Transfer Funds". Empty or whitespace-only input is returned unchanged.
func Format(identifier string) string {
	if strings.TrimSpace(identifier) == "" {
		return identifier
	}

	runes := []rune(identifier)
	var b strings.Builder
	b.Grow(len(identifier) + 8)

	lastWasSpace := true
	for i, r := range runes {
		if r == '_' || unicode.IsSpace(r) {
			if !lastWasSpace {
				b.WriteRune(' ')
				lastWasSpace = true
			}
			continue
		}
		if !lastWasSpace && unicode.IsUpper(r) && boundaryBefore(runes, i) {
			b.WriteRune(' ')
		}
		b.WriteRune(r)
		lastWasSpace = false
	}

	return strings.TrimRight(b.String(), " ")
}

// boundaryBefore reports whether a word boundary exists before position i,
// which holds an uppercase rune. Covers lower-to-upper transitions and the
// end of an acronym run ("HTTPServer" -> "HTTP Server").
func boundaryBefore(runes []rune, i int) bool {
	prev := runes[i-1]
	if unicode.IsLower(prev) || unicode.IsDigit(prev) {
		return true
	}
	if unicode.IsUpper(prev) && i+1 < len(runes) && unicode.IsLower(runes[i+1]) {
		return true
	}
	return false
}

// FuncName returns the bare identifier of a function value, without package
// path or method receiver decoration. Anonymous functions and non-function
// values yield "".
func FuncName(fn any) string {
	v := reflect.ValueOf(fn)
	if !v.IsValid() || v.Kind() != reflect.Func {
		return ""
	}
	return NameForPC(v.Pointer())
}

// NameForPC returns the bare identifier of the function containing pc, with
// the same trimming rules as FuncName.
func NameForPC(pc uintptr) string {
	f := runtime.FuncForPC(pc)
	if f == nil {
		return ""
	}

	name := f.Name()
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	if i := strings.LastIndex(name, "."); i >= 0 {
		name = name[i+1:]
	}
	// Method values carry a -fm suffix.
	name = strings.TrimSuffix(name, "-fm")

	if isAnonymous(name) {
		return ""
	}
	return name
}

// isAnonymous matches the funcN names the compiler assigns to closures, and
// the bare numeric suffixes of nested closures.
func isAnonymous(name string) bool {
	if allDigits(name) {
		return true
	}
	rest := strings.TrimPrefix(name, "func")
	return rest != name && allDigits(rest)
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
