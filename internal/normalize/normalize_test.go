package normalize_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akazakov/keepsafe/internal/models"
	"github.com/akazakov/keepsafe/internal/normalize"
)

func TestCapitalizeWords(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"lowercase words", "github login", "Github Login"},
		{"already capitalized", "Github Login", "Github Login"},
		{"preserves inner casing", "my GitHub pAt", "My GitHub PAt"},
		{"single word", "wifi", "Wifi"},
		{"collapses extra spaces", "  wifi   password ", "Wifi Password"},
		{"empty", "", ""},
		{"unicode", "почта yandex", "Почта Yandex"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, normalize.CapitalizeWords(tt.in))
		})
	}
}

func TestCapitalizeWords_Idempotent(t *testing.T) {
	inputs := []string{"github login", "Wifi Password", "a B c", "", "x"}
	for _, in := range inputs {
		once := normalize.CapitalizeWords(in)
		assert.Equal(t, once, normalize.CapitalizeWords(once), "input %q", in)
	}
}

func TestDeriveTitle_SecureNote(t *testing.T) {
	supplied := "User Supplied"
	got := normalize.DeriveTitle(models.TypeSecureNote, "wifi password", &supplied)
	require.NotNil(t, got)
	assert.Equal(t, "Wifi Password", *got)

	// Supplied title is ignored even when nil.
	got = normalize.DeriveTitle(models.TypeSecureNote, "wifi password", nil)
	require.NotNil(t, got)
	assert.Equal(t, "Wifi Password", *got)
}

func TestDeriveTitle_OtherTypes(t *testing.T) {
	supplied := "kept as-is"
	got := normalize.DeriveTitle(models.TypeWebLogin, "github login", &supplied)
	require.NotNil(t, got)
	assert.Equal(t, "kept as-is", *got)

	assert.Nil(t, normalize.DeriveTitle(models.TypeCreditCard, "visa", nil))
	assert.Nil(t, normalize.DeriveTitle(models.TypeAny, "whatever", nil))
}
