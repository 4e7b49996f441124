// AngelaMos | 2026
// validate.go

package validate

import (
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
)

var (
	emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[A-Za-z]{2,}$`)
	phoneRe = regexp.MustCompile(`^\+?[0-9\s\-()]+$`)

	unsafeFilenameRe = regexp.MustCompile(`[^A-Za-z0-9._-]`)
)

// Email reports whether s has a local@domain.tld shape with a final domain
// label of at least two letters. No deliverability check is attempted.
func Email(s string) bool {
	return emailRe.MatchString(s)
}

// Phone accepts an optional leading +, then digits, spaces, hyphens, and
// parentheses, requiring at least 10 digits overall.
func Phone(s string) bool {
	if s == "" || !phoneRe.MatchString(s) {
		return false
	}

	digits := 0
	for _, r := range s {
		if r >= '0' && r <= '9' {
			digits++
		}
	}

	return digits >= 10
}

// Sanitize strips the characters <, >, " and ' from free text and trims
// surrounding whitespace. Defense in depth against stored markup, not a
// full encoder.
func Sanitize(s string) string {
	replacer := strings.NewReplacer("<", "", ">", "", `"`, "", "'", "")
	return strings.TrimSpace(replacer.Replace(s))
}

// FileAllowed checks the filename extension against the allow-list and
// returns a human-readable rejection reason on failure.
func FileAllowed(filename string, allowed []string) error {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(filename)), ".")
	if ext == "" {
		return fmt.Errorf("file %q has no extension", filename)
	}

	for _, a := range allowed {
		if ext == strings.ToLower(a) {
			return nil
		}
	}

	return fmt.Errorf(
		"file type .%s is not allowed (allowed: %s)",
		ext,
		strings.Join(allowed, ", "),
	)
}

// SafeFilename reduces an uploaded filename to a path-safe base name:
// directory components are dropped and anything outside [A-Za-z0-9._-]
// becomes an underscore.
func SafeFilename(name string) string {
	name = filepath.Base(name)
	name = strings.ReplaceAll(name, " ", "_")
	name = unsafeFilenameRe.ReplaceAllString(name, "_")
	name = strings.Trim(name, "._")
	return name
}
