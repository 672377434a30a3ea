package utils

import (
	"encoding/base64"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateMemberReferralCode(t *testing.T) {
	seen := make(map[string]struct{})
	for i := 0; i < 50; i++ {
		code, err := GenerateMemberReferralCode()
		require.NoError(t, err)
		assert.Regexp(t, `^MBR-[A-Z0-9]{6}$`, code)
		seen[code] = struct{}{}
	}
	assert.Greater(t, len(seen), 40)
}

func TestReferralLink(t *testing.T) {
	link, err := ReferralLink("https://sower.example/signup", "MBR-ABC123")
	require.NoError(t, err)
	assert.Equal(t, "https://sower.example/signup?code=MBR-ABC123", link)

	link, err = ReferralLink("https://sower.example/signup?lang=en", "A B")
	require.NoError(t, err)
	assert.Equal(t, "https://sower.example/signup?code=A+B&lang=en", link)

	_, err = ReferralLink("https://sower.example/signup", "")
	assert.Error(t, err)

	_, err = ReferralLink("://bad", "X")
	assert.Error(t, err)
}

func TestGenerateQRCodeDataURI(t *testing.T) {
	uri, err := GenerateQRCodeDataURI("https://sower.example/signup?code=MBR-ABC123")
	require.NoError(t, err)

	const prefix = "data:image/png;base64,"
	require.True(t, strings.HasPrefix(uri, prefix))
	raw, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(uri, prefix))
	require.NoError(t, err)
	assert.Equal(t, "\x89PNG", string(raw[:4]))
}

func TestSanitizeInput(t *testing.T) {
	tests := map[string]string{
		"  Barangay   A ":     "Barangay A",
		"Calamba\tCity":       "Calamba City",
		"Laguna\x00\x07":      "Laguna",
		"Region IV-A":         "Region IV-A",
		"":                    "",
		"Sta.\nRosa\r\n":      "Sta. Rosa",
		"Dasmariñas  Cavite ": "Dasmariñas Cavite",
	}
	for in, want := range tests {
		assert.Equal(t, want, SanitizeInput(in), "%q", in)
	}
}

func TestCustomValidator(t *testing.T) {
	type payload struct {
		Name string `validate:"required"`
	}
	v := NewCustomValidator()
	assert.Error(t, v.Validate(payload{}))
	assert.NoError(t, v.Validate(payload{Name: "x"}))
}

func TestInvalidFields(t *testing.T) {
	type payload struct {
		Code  string `json:"referralCode" validate:"required"`
		City  string `json:"city,omitempty" validate:"required"`
		Notes string `validate:"required"`
	}
	v := NewCustomValidator()

	assert.Equal(t, []string{"referralCode", "city", "Notes"}, InvalidFields(v.Validate(payload{})))
	assert.Nil(t, InvalidFields(errors.New("not a validation error")))
	assert.Nil(t, InvalidFields(nil))
}
