package validate

import (
	"strconv"
	"strings"
)

const (
	Digits = "0123456789"
	Upper  = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	Lower  = "abcdefghijklmnopqrstuvwxyz"
)

// LengthBetween returns true if n is within [min,max].
func LengthBetween(s string, min, max int) bool {
	n := len(s)
	return n >= min && n <= max
}

// IsAlphabet returns true if all characters in s are in allowed set.
func IsAlphabet(s, allowed string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !strings.ContainsRune(allowed, rune(s[i])) {
			return false
		}
	}
	return true
}

// IsDigits reports whether s is a non-empty run of ASCII digits.
func IsDigits(s string) bool { return IsAlphabet(s, Digits) }

// StripSpaces removes ASCII whitespace, used for grouped numbers like "1234 5678 9012".
func StripSpaces(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '\t', '\n', '\r':
			return -1
		}
		return r
	}, s)
}

// LeadingIn reports whether the first byte of s is one of allowed.
func LeadingIn(s, allowed string) bool {
	return s != "" && strings.IndexByte(allowed, s[0]) >= 0
}

// IsIPv4 checks four dot-separated decimal octets, each within 0..255.
func IsIPv4(s string) bool {
	parts := strings.Split(s, ".")
	if len(parts) != 4 {
		return false
	}
	for _, p := range parts {
		if !IsDigits(p) || len(p) > 3 {
			return false
		}
		n, err := strconv.Atoi(p)
		if err != nil || n > 255 {
			return false
		}
	}
	return true
}

// LooksMasked reports whether the local part of an address already carries
// the mask signature: up to two kept characters followed by a filler run, or
// filler only. Such values are output of a previous redaction.
func LooksMasked(local string, filler byte) bool {
	if local == "" {
		return false
	}
	run := strings.Repeat(string(filler), 3)
	if strings.Trim(local, string(filler)) == "" {
		return true
	}
	return len(local) <= 5 && strings.HasSuffix(local, run)
}
