package utils

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var nonAlnum = regexp.MustCompile(`[^A-Za-z0-9]+`)

// Letters that carry no combining mark under NFD and would otherwise be dropped.
var foldReplacer = strings.NewReplacer("ı", "i", "ß", "ss", "ø", "o", "Ø", "O", "ł", "l", "Ł", "L")

// RemoveAccents removes accents from a string, converting accented characters to their base forms
func RemoveAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, _ := transform.String(t, foldReplacer.Replace(s))
	return result
}

// SplitCamelCase splits a camelCase or PascalCase string into words,
// keeping acronyms together ("XMLHttp" -> "XML", "Http").
func SplitCamelCase(s string) []string {
	if s == "" {
		return nil
	}

	var parts []string
	var current strings.Builder

	rs := []rune(s)
	for i, r := range rs {
		isNewWord := false
		if i > 0 && isUppercase(r) {
			if !isUppercase(rs[i-1]) {
				isNewWord = true
			} else if i < len(rs)-1 && !isUppercase(rs[i+1]) {
				isNewWord = true
			}
		}

		if isNewWord && current.Len() > 0 {
			parts = append(parts, current.String())
			current.Reset()
		}
		current.WriteRune(r)
	}

	if current.Len() > 0 {
		parts = append(parts, current.String())
	}
	return parts
}

func isUppercase(r rune) bool {
	return r >= 'A' && r <= 'Z'
}

// Words splits an identifier or phrase into ASCII words: accents are folded,
// separators dropped and camel humps split.
func Words(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	var words []string
	for _, part := range nonAlnum.Split(RemoveAccents(s), -1) {
		if part == "" {
			continue
		}
		words = append(words, SplitCamelCase(part)...)
	}
	return words
}

// ToPascalCaseAdvanced converts a string to PascalCase
func ToPascalCaseAdvanced(s string) string {
	var b strings.Builder
	for _, w := range Words(s) {
		b.WriteString(strings.ToUpper(w[:1]))
		b.WriteString(strings.ToLower(w[1:]))
	}
	return b.String()
}

// ToCamelCaseAdvanced converts a string to camelCase
func ToCamelCaseAdvanced(s string) string {
	p := ToPascalCaseAdvanced(s)
	if p == "" {
		return ""
	}
	return strings.ToLower(p[:1]) + p[1:]
}

// ToSnakeCaseAdvanced converts a string to snake_case
func ToSnakeCaseAdvanced(s string) string {
	return joinLower(Words(s), "_")
}

// ToKebabCaseAdvanced converts a string to kebab-case
func ToKebabCaseAdvanced(s string) string {
	return joinLower(Words(s), "-")
}

func joinLower(words []string, sep string) string {
	for i := range words {
		words[i] = strings.ToLower(words[i])
	}
	return strings.Join(words, sep)
}

// Title upper-cases the first letter of every word ("music" -> "Music").
func Title(s string) string {
	return cases.Title(language.English).String(s)
}

// ShellQuote wraps s in single quotes for POSIX shells.
func ShellQuote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

// Indent prefixes every non-empty line of s with prefix.
func Indent(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		if l != "" {
			lines[i] = prefix + l
		}
	}
	return strings.Join(lines, "\n")
}
