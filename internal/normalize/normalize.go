// Package normalize provides the write-time normalization rules applied
// to user secrets before they reach the store.
package normalize

import (
	"strings"
	"unicode"

	"github.com/akazakov/keepsafe/internal/models"
)

// CapitalizeWords uppercases the first letter of every whitespace-separated
// word, preserving the casing of the remaining characters, and rejoins the
// words with single spaces. Empty input is returned unchanged. The function
// is idempotent.
func CapitalizeWords(s string) string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return s
	}
	for i, w := range words {
		r := []rune(w)
		r[0] = unicode.ToUpper(r[0])
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}

// DeriveTitle returns the title to store for a secret. For secure notes the
// title is always derived from the secret name, ignoring any supplied value;
// for every other category the supplied title passes through unchanged
// (possibly nil).
func DeriveTitle(secretType models.SecretType, secretName string, supplied *string) *string {
	if secretType == models.TypeSecureNote {
		title := CapitalizeWords(secretName)
		return &title
	}
	return supplied
}
