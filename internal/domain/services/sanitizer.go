// Package services implements the variant configuration rules of the domain.
package services

import (
	"fmt"
	"strings"

	"github.com/ochairo/variants/internal/domain/entities"
)

// forbiddenIdentifierChars are stripped from display names before they become identifiers
const forbiddenIdentifierChars = `/\:*?"<>|`

// SanitizeIdentifier turns a display name into an identifier fragment: characters that are
// illegal in file names are removed, spaces become underscores and the result is lower-cased.
// strings.ToLower applies the Unicode default mapping, so the result never depends on locale.
// The input must be non-empty; resolvers substitute a default name first.
func SanitizeIdentifier(displayName string) string {
	var b strings.Builder
	b.Grow(len(displayName))
	for _, r := range displayName {
		switch {
		case strings.ContainsRune(forbiddenIdentifierChars, r):
			continue
		case r == ' ':
			b.WriteByte('_')
		default:
			b.WriteRune(r)
		}
	}
	return strings.ToLower(b.String())
}

// ValidateApplicationID checks the strict application id grammar [a-z0-9_.]
// with no empty dot-separated segments.
func ValidateApplicationID(id string) error {
	if id == "" {
		return fmt.Errorf("%w: empty", entities.ErrInvalidIdentifier)
	}
	for i, r := range id {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') || r == '_' || r == '.' {
			continue
		}
		return fmt.Errorf("%w: %q has character %q at offset %d", entities.ErrInvalidIdentifier, id, r, i)
	}
	for _, segment := range strings.Split(id, ".") {
		if segment == "" {
			return fmt.Errorf("%w: %q has an empty segment", entities.ErrInvalidIdentifier, id)
		}
	}
	return nil
}
