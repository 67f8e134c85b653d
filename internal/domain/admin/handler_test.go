package admin

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"thriftsave/internal/domain/auth"
	"thriftsave/internal/domain/complaint"
)

func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	users := new(MockUserStats)
	users.On("Count", mockAnyCtx).Return(int64(3), nil)
	users.On("CountByOnboarding", mockAnyCtx, auth.OnboardingPendingPayment).Return(int64(1), nil)
	complaints := new(MockComplaintStats)
	complaints.On("Stats", mockAnyCtx).Return(complaint.StatusCounts{complaint.StatusOpen: 2}, nil)

	h := NewHandler(NewService(users, complaints, constCount(1), constCount(0), NewRegistry()))
	r := gin.New()
	h.RegisterRoutes(r.Group("/api/v1/admin"))
	return r
}

func TestHandler_Dashboard(t *testing.T) {
	r := setupRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/admin/dashboard", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data struct {
			Dashboard Dashboard `json:"dashboard"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, int64(3), body.Data.Dashboard.Users)
	assert.Equal(t, int64(2), body.Data.Dashboard.OpenComplaints)
}

func TestHandler_Resources(t *testing.T) {
	r := setupRouter(t)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/admin/resources", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"name":"complaints"`)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/admin/resources/notifications", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data struct {
			Resource ResourceConfig `json:"resource"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "info", body.Data.Resource.BadgeColor("type", "transaction"))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/admin/resources/bookings", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
