// Package redact masks credential-bearing values in line-oriented
// key=value content before it leaves the process. Masking happens at the
// disclosure boundary, never in storage, so the on-disk file is the only
// source of truth
package redact

import "strings"

// MaxValueLen bounds how much of a non-sensitive value is echoed back.
// Longer values are cut and marked with an ellipsis; a sensitive value
// that happens to be short is still fully masked
const MaxValueLen = 50

// sensitiveMarkers flag a key as credential-bearing when any of them
// appears as a substring of the lowercased key
var sensitiveMarkers = []string{
	"secret",
	"token",
	"key",
	"password",
	"passwd",
	"pwd",
	"auth",
	"credential",
	"private",
}

// SensitiveKey reports whether a key name looks credential-bearing
func SensitiveKey(key string) bool {
	k := strings.ToLower(key)
	for _, m := range sensitiveMarkers {
		if strings.Contains(k, m) {
			return true
		}
	}
	return false
}

// MaskLine rewrites one line of key=value content. Comment lines and blank
// lines pass through untouched, as do lines without a separator. Sensitive
// values become "***"; overlong values are truncated to MaxValueLen runes
func MaskLine(line string) string {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, "#") {
		return line
	}
	key, val, ok := strings.Cut(line, "=")
	if !ok {
		return line
	}
	if SensitiveKey(strings.TrimSpace(key)) {
		return key + "=***"
	}
	if runes := []rune(val); len(runes) > MaxValueLen {
		return key + "=" + string(runes[:MaxValueLen]) + "..."
	}
	return line
}

// Mask applies MaskLine to every line of a document, preserving the
// original line structure
func Mask(content string) string {
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = MaskLine(line)
	}
	return strings.Join(lines, "\n")
}
