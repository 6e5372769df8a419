// Package sanitize normalizes caller-supplied search queries before they are
// embedded into an outbound request string
// Pipeline order
// 1 UTF-8 repair drop invalid bytes
// 2 Unicode NFKC normalization and width fold fullwidth to ASCII
// 3 Remove zero-width and format chars
// 4 Strip every rune outside letters digits space hyphen underscore dot
// 5 Collapse whitespace to single spaces and trim
// 6 Truncate to MaxQueryLen
// The character class is the whole point: shell metacharacters, quotes, and
// other injection vectors never survive to the outbound query
package sanitize

import (
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	perr "gatehouse/internal/platform/errors"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/text/width"
)

const (
	// MaxRawLen bounds the raw query before any processing
	MaxRawLen = 512

	// MaxQueryLen bounds the sanitized query
	MaxQueryLen = 256
)

// pool of fresh transformer chains
var chainPool = sync.Pool{
	New: func() any {
		return transform.Chain(
			norm.NFKC,
			runes.Remove(runes.In(unicode.Cf)), // strip format chars ZWJ ZWNJ FEFF etc
			width.Fold,                         // map fullwidth forms to ASCII
		)
	},
}

// Query sanitizes a raw search query. Fails with a validation error when the
// raw input exceeds MaxRawLen or nothing survives the character filter.
// Sanitizing an already-clean query is idempotent
func Query(raw string) (string, error) {
	if len(raw) > MaxRawLen {
		return "", perr.Validationf("query exceeds %d bytes", MaxRawLen)
	}

	s := strings.ToValidUTF8(raw, "")

	tr := chainPool.Get().(transform.Transformer)
	ns, _, _ := transform.String(tr, s)
	tr.Reset()
	chainPool.Put(tr)

	ns = filterClass(ns)
	ns = collapseSpaces(ns)

	ns = truncate(ns, MaxQueryLen)
	if ns == "" {
		return "", perr.Validationf("query is empty after sanitization")
	}
	return ns, nil
}

// truncate cuts s to at most max bytes without splitting a rune, then trims.
// Cutting mid-rune would leave a continuation byte that is outside the
// character class and breaks idempotency
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return strings.TrimSpace(s[:cut])
}

// filterClass keeps letters, digits, space, hyphen, underscore, and dot.
// Everything else is dropped, not replaced, so adjacent fragments merge
func filterClass(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '-', r == '_', r == '.':
			b.WriteRune(r)
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		}
	}
	return b.String()
}

// collapseSpaces converts whitespace runs to a single ASCII space and trims
func collapseSpaces(s string) string {
	if s == "" {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	inWS := false
	for _, r := range s {
		if r == ' ' {
			inWS = true
			continue
		}
		if inWS && b.Len() > 0 {
			b.WriteByte(' ')
		}
		inWS = false
		b.WriteRune(r)
	}
	return b.String()
}
