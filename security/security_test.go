package security

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateContentType(t *testing.T) {
	assert.True(t, ValidateContentType("application/json"))
	assert.True(t, ValidateContentType("application/json; charset=UTF-8"))
	assert.False(t, ValidateContentType("multipart/form-data; boundary=x"))
	assert.False(t, ValidateContentType("text/plain"))
	assert.False(t, ValidateContentType(""))
}

func TestSanitizeHeaders(t *testing.T) {
	h := http.Header{}
	h.Set("Authorization", "Bearer abc")
	h.Set("Cookie", "token=abc")
	h.Set("User-Agent", "curl")

	clean := SanitizeHeaders(h)
	assert.Empty(t, clean.Get("Authorization"))
	assert.Empty(t, clean.Get("Cookie"))
	assert.Equal(t, "curl", clean.Get("User-Agent"))
	// the request keeps its credentials
	assert.Equal(t, "Bearer abc", h.Get("Authorization"))
}
