package security

import (
	"mime"
	"net/http"
)

// ValidateContentType ensures the request has a JSON content type. Parameters such as
// charset are ignored.
func ValidateContentType(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return mediaType == "application/json"
}

// SanitizeHeaders returns a copy of headers without credentials
func SanitizeHeaders(headers http.Header) http.Header {
	sensitiveHeaders := []string{
		"Authorization",
		"Cookie",
		"Set-Cookie",
		"X-CSRF-Token",
	}

	clean := headers.Clone()
	for _, header := range sensitiveHeaders {
		clean.Del(header)
	}
	return clean
}
