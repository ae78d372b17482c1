package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/FlatFilers/HCMShow-sub000/internal/auth"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestServerAuth(t *testing.T) {
	r := gin.New()
	r.POST("/hook", ServerAuth("s3cret"), func(c *gin.Context) { c.Status(http.StatusOK) })

	cases := []struct {
		name   string
		header string
		want   int
	}{
		{"match", "s3cret", http.StatusOK},
		{"mismatch", "nope", http.StatusUnauthorized},
		{"missing", "", http.StatusUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/hook", nil)
			if tc.header != "" {
				req.Header.Set(HeaderServerAuth, tc.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			require.Equal(t, tc.want, w.Code)
		})
	}
}

func TestServerAuth_EmptyTokenRejects(t *testing.T) {
	r := gin.New()
	r.POST("/hook", ServerAuth(""), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/hook", nil))
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWT_SetsOrganization(t *testing.T) {
	svc := auth.NewJWTService("secret", 1)
	userID, orgID := uuid.New(), uuid.New()
	token, err := svc.Generate(userID, orgID, "a@example.com", "admin")
	require.NoError(t, err)

	var gotUser, gotOrg uuid.UUID
	r := gin.New()
	r.GET("/me", JWT(svc), RequireRole("admin"), func(c *gin.Context) {
		gotUser, gotOrg = UserID(c), OrganizationID(c)
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, userID, gotUser)
	require.Equal(t, orgID, gotOrg)
}

func TestRequireRole_Forbidden(t *testing.T) {
	svc := auth.NewJWTService("secret", 1)
	token, err := svc.Generate(uuid.New(), uuid.New(), "a@example.com", "member")
	require.NoError(t, err)

	r := gin.New()
	r.DELETE("/data", JWT(svc), RequireRole("admin"), func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodDelete, "/data", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(CORS("http://localhost:3000, https://hcm.show"))
	r.GET("/employees", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/employees", nil)
	req.Header.Set("Origin", "https://hcm.show")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusNoContent, w.Code)
	require.Equal(t, "https://hcm.show", w.Header().Get("Access-Control-Allow-Origin"))
	require.Contains(t, w.Header().Get("Access-Control-Allow-Headers"), HeaderServerAuth)

	req = httptest.NewRequest(http.MethodGet, "/employees", nil)
	req.Header.Set("Origin", "https://evil.example")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	require.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
