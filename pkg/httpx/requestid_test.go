package httpx_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/Gunvolt24/telecom_cart/pkg/ctxmeta"
	"github.com/Gunvolt24/telecom_cart/pkg/httpx"
)

func TestRequestIDMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name     string
		header   string
		keepSent bool
	}{
		{"missing → uuid", "", false},
		{"client id kept", "custom-id-42", true},
		{"spaces → uuid", "bad id", false},
		{"too long → uuid", strings.Repeat("a", 129), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var ctxID string
			r := gin.New()
			r.Use(httpx.RequestIDMiddleware())
			r.GET("/api/carts/:cartId", func(c *gin.Context) {
				ctxID, _ = ctxmeta.RequestIDFromContext(c.Request.Context())
				c.Status(http.StatusNoContent)
			})

			req := httptest.NewRequest(http.MethodGet, "/api/carts/c1", http.NoBody)
			if tt.header != "" {
				req.Header.Set(httpx.HeaderRequestID, tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			rid := w.Header().Get(httpx.HeaderRequestID)
			require.Equal(t, rid, ctxID, "id в контексте совпадает с заголовком")
			if tt.keepSent {
				require.Equal(t, tt.header, rid)
				return
			}
			_, err := uuid.Parse(rid)
			require.NoError(t, err)
		})
	}
}
