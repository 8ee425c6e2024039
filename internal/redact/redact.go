package redact

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/redactyl/piiredact/internal/types"
	"github.com/redactyl/piiredact/internal/validate"
)

const (
	// Filler replaces hidden characters in partially preserved values.
	Filler = "X"
	// Sentinel replaces values that keep no visible part at all.
	Sentinel = "[REDACTED_PII]"
)

// Masker turns a matched value into its masked form. Maskers are pure: the
// same input always yields the same output and no other field is consulted.
type Masker func(string) string

// Phone keeps the first two and last two digits.
func Phone(s string) string {
	if len(s) < 4 {
		return strings.Repeat(Filler, len(s))
	}
	return s[:2] + strings.Repeat(Filler, 6) + s[len(s)-2:]
}

// NationalID keeps the first two and last two digits of a 12-digit number,
// dropping any grouping spaces.
func NationalID(s string) string {
	d := validate.StripSpaces(s)
	if len(d) < 4 {
		return strings.Repeat(Filler, len(d))
	}
	return d[:2] + strings.Repeat(Filler, 8) + d[len(d)-2:]
}

// Passport keeps only the leading letter.
func Passport(s string) string {
	if s == "" {
		return s
	}
	return s[:1] + strings.Repeat(Filler, 7)
}

// Email keeps two characters of the local part and the whole domain.
func Email(s string) string { return maskUserAt(s) }

// UPI keeps two characters of the user part and the provider handle.
func UPI(s string) string { return maskUserAt(s) }

func maskUserAt(s string) string {
	at := strings.LastIndexByte(s, '@')
	if at < 0 {
		return strings.Repeat(Filler, len(s))
	}
	user, domain := s[:at], s[at+1:]
	if len(user) > 2 {
		return user[:2] + strings.Repeat(Filler, 3) + "@" + domain
	}
	return strings.Repeat(Filler, len(user)) + "@" + domain
}

// Name keeps the first letter of each whitespace-separated word.
func Name(s string) string {
	words := strings.Fields(s)
	for i, w := range words {
		if utf8.RuneCountInString(w) > 1 {
			_, size := utf8.DecodeRuneInString(w)
			words[i] = w[:size] + strings.Repeat(Filler, 3)
		}
	}
	return strings.Join(words, " ")
}

// Address hides the whole value.
func Address(string) string { return Sentinel }

// Device hides the whole value.
func Device(string) string { return Sentinel }

// IP keeps the first and last octet.
func IP(s string) string {
	octets := strings.Split(s, ".")
	if len(octets) < 2 {
		return Sentinel
	}
	return octets[0] + ".XXX.XXX." + octets[len(octets)-1]
}

// KeepFirst keeps the first character and fills the rest.
func KeepFirst(s string) string {
	if s == "" {
		return s
	}
	_, size := utf8.DecodeRuneInString(s)
	return s[:size] + strings.Repeat(Filler, utf8.RuneCountInString(s)-1)
}

// KeepEdges keeps two characters on each side when the value is long enough.
func KeepEdges(s string) string {
	r := []rune(s)
	if len(r) <= 4 {
		return strings.Repeat(Filler, len(r))
	}
	return string(r[:2]) + strings.Repeat(Filler, len(r)-4) + string(r[len(r)-2:])
}

// Sentinelize hides the value behind the sentinel token.
func Sentinelize(string) string { return Sentinel }

var byCategory = map[types.Category]Masker{
	types.CatPhone:      Phone,
	types.CatNationalID: NationalID,
	types.CatPassport:   Passport,
	types.CatPayment:    UPI,
	types.CatName:       Name,
	types.CatEmail:      Email,
	types.CatAddress:    Address,
	types.CatNetwork:    IP,
	types.CatDevice:     Device,
}

// Mask applies the rule for category; unknown categories fall back to the sentinel.
func Mask(cat types.Category, s string) string {
	if m, ok := byCategory[cat]; ok {
		return m(s)
	}
	return Sentinel
}

// ForCategory returns the masker of a built-in category.
func ForCategory(cat types.Category) (Masker, bool) {
	m, ok := byCategory[cat]
	return m, ok
}

var byStyle = map[string]Masker{
	"keep-first": KeepFirst,
	"keep-edges": KeepEdges,
	"sentinel":   Sentinelize,
}

// ByStyle resolves a mask style name used in configuration. Built-in
// category names are accepted as well as keep-first, keep-edges and sentinel.
func ByStyle(name string) (Masker, bool) {
	if m, ok := byStyle[name]; ok {
		return m, true
	}
	return ForCategory(types.Category(name))
}

// Styles lists the accepted mask style names, sorted.
func Styles() []string {
	out := make([]string, 0, len(byStyle)+len(byCategory))
	for k := range byStyle {
		out = append(out, k)
	}
	for k := range byCategory {
		out = append(out, string(k))
	}
	sort.Strings(out)
	return out
}

// Replacement masks text[Start:End] with Replace.
type Replacement struct {
	Start, End int
	Replace    string
}

// Apply substitutes every replacement left to right. Replacements that
// overlap an already applied one, or fall outside text, are skipped.
func Apply(text string, reps []Replacement) string {
	if len(reps) == 0 {
		return text
	}
	sorted := make([]Replacement, len(reps))
	copy(sorted, reps)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Start < sorted[j].Start })

	var b strings.Builder
	b.Grow(len(text))
	pos := 0
	for _, r := range sorted {
		if r.Start < pos || r.End > len(text) || r.Start > r.End {
			continue
		}
		b.WriteString(text[pos:r.Start])
		b.WriteString(r.Replace)
		pos = r.End
	}
	b.WriteString(text[pos:])
	return b.String()
}

// WouldChange reports whether Apply would modify text.
func WouldChange(text string, reps []Replacement) bool {
	return Apply(text, reps) != text
}
