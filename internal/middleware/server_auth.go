package middleware

import (
	"crypto/subtle"

	"github.com/gin-gonic/gin"

	"github.com/FlatFilers/HCMShow-sub000/pkg/response"
)

// HeaderServerAuth carries the shared secret on server-to-server calls.
const HeaderServerAuth = "x-server-auth"

// ServerAuth rejects requests whose x-server-auth header does not match token.
// An empty token rejects everything.
func ServerAuth(token string) gin.HandlerFunc {
	want := []byte(token)
	return func(c *gin.Context) {
		got := []byte(c.GetHeader(HeaderServerAuth))
		if len(want) == 0 || subtle.ConstantTimeCompare(got, want) != 1 {
			response.Unauthorized(c, "invalid server auth")
			c.Abort()
			return
		}
		c.Next()
	}
}
