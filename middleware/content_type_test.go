package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
)

func TestRequireJSON(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		contentType string
		want        int
	}{
		{"json", `{}`, "application/json; charset=utf-8", http.StatusOK},
		{"form", `a=b`, "application/x-www-form-urlencoded", http.StatusUnsupportedMediaType},
		{"missing type", `{}`, "", http.StatusUnsupportedMediaType},
		{"no body", "", "", http.StatusOK},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(tt.body))
			if tt.contentType != "" {
				req.Header.Set(echo.HeaderContentType, tt.contentType)
			}
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			h := RequireJSON()(func(c echo.Context) error { return c.NoContent(http.StatusOK) })
			_ = h(c)
			assert.Equal(t, tt.want, rec.Code)
		})
	}
}
