package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func roleRouter(role string, guard gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(func(c *gin.Context) {
		if role != "" {
			c.Set("role", role)
		}
	})
	router.GET("/x", guard, func(c *gin.Context) { c.Status(http.StatusOK) })
	return router
}

func TestRoleGuards(t *testing.T) {
	cases := []struct {
		name  string
		role  string
		guard gin.HandlerFunc
		want  int
	}{
		{"admin passes AdminOnly", "admin", AdminOnly(), http.StatusOK},
		{"staff blocked by AdminOnly", "staff", AdminOnly(), http.StatusForbidden},
		{"staff passes StaffOnly", "staff", StaffOnly(), http.StatusOK},
		{"admin passes StaffOnly", "admin", StaffOnly(), http.StatusOK},
		{"user blocked by StaffOnly", "user", StaffOnly(), http.StatusForbidden},
		{"missing role", "", StaffOnly(), http.StatusUnauthorized},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			roleRouter(tc.role, tc.guard).ServeHTTP(w, httptest.NewRequest("GET", "/x", nil))
			assert.Equal(t, tc.want, w.Code)
		})
	}
}
