package complaint

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRouter(t *testing.T) (*gin.Engine, *fixture) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	f := setupFixture(t)
	h := NewHandler(f.svc)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		if id := c.GetHeader("X-Test-User-ID"); id != "" {
			uid, _ := strconv.ParseInt(id, 10, 64)
			c.Set("user_id", uid)
			c.Set("role", c.GetHeader("X-Test-Role"))
		}
		c.Next()
	})

	v1 := r.Group("/api/v1")
	h.RegisterUserRoutes(v1)
	h.RegisterStaffRoutes(v1.Group("/staff"))
	return r, f
}

func doJSONRequest(r http.Handler, method, path string, body any, userID int64, role string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body == nil {
		reader = bytes.NewReader(nil)
	} else {
		b, _ := json.Marshal(body)
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if userID != 0 {
		req.Header.Set("X-Test-User-ID", strconv.FormatInt(userID, 10))
		req.Header.Set("X-Test-Role", role)
	}

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   struct {
		Code    string         `json:"code"`
		Message string         `json:"message"`
		Details map[string]any `json:"details"`
	} `json:"error"`
}

func decode(t *testing.T, rr *httptest.ResponseRecorder, into any) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &env), rr.Body.String())
	if into != nil {
		require.NoError(t, json.Unmarshal(env.Data, into))
	}
	return env
}

func TestComplaintHandlers_UserFlow(t *testing.T) {
	r, f := setupTestRouter(t)
	owner := f.owner.ID

	rr := doJSONRequest(r, http.MethodPost, "/api/v1/complaints", map[string]any{
		"title": "Missing deposit", "description": "Deposit of 5000 not credited", "category": "nope",
	}, owner, "user")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	env := decode(t, rr, nil)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
	assert.Equal(t, "category", env.Error.Details["field"])

	rr = doJSONRequest(r, http.MethodPost, "/api/v1/complaints", map[string]any{
		"title": "Missing deposit", "description": "Deposit of 5000 not credited", "category": "transaction",
	}, owner, "user")
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	var created struct {
		Complaint Complaint `json:"complaint"`
	}
	decode(t, rr, &created)
	assert.Equal(t, StatusOpen, created.Complaint.Status)
	assert.Equal(t, PriorityNormal, created.Complaint.Priority)
	assert.Regexp(t, ticketPattern, created.Complaint.TicketNumber)

	path := "/api/v1/complaints/" + strconv.FormatInt(created.Complaint.ID, 10)

	rr = doJSONRequest(r, http.MethodPost, path+"/replies", map[string]any{"message": "any update?", "type": "resolution"}, owner, "user")
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	var posted struct {
		Reply Reply `json:"reply"`
	}
	decode(t, rr, &posted)
	assert.Equal(t, ReplyTypeReply, posted.Reply.Type)

	rr = doJSONRequest(r, http.MethodGet, "/api/v1/complaints", nil, owner, "user")
	require.Equal(t, http.StatusOK, rr.Code)
	var list struct {
		Complaints []Complaint `json:"complaints"`
	}
	decode(t, rr, &list)
	assert.Len(t, list.Complaints, 1)

	// someone else's complaint is invisible
	rr = doJSONRequest(r, http.MethodGet, path, nil, f.staff.ID+100, "user")
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = doJSONRequest(r, http.MethodGet, "/api/v1/complaints/abc", nil, owner, "user")
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestComplaintHandlers_StaffFlow(t *testing.T) {
	r, f := setupTestRouter(t)
	c := f.submit(t)
	staff := f.staff.ID
	base := "/api/v1/staff/complaints/" + strconv.FormatInt(c.ID, 10)

	rr := doJSONRequest(r, http.MethodPost, base+"/replies", map[string]any{"message": "check gateway logs", "type": "note"}, staff, "staff")
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	rr = doJSONRequest(r, http.MethodPost, base+"/replies", map[string]any{"message": "Refund issued"}, staff, "staff")
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	resolvedAt := time.Date(2026, 6, 1, 8, 0, 0, 0, time.UTC)
	rr = doJSONRequest(r, http.MethodPatch, base+"/status", map[string]any{
		"status": "resolved", "resolution": "Refund issued", "resolved_at": resolvedAt,
	}, staff, "staff")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	var updated struct {
		Complaint Complaint `json:"complaint"`
	}
	decode(t, rr, &updated)
	assert.Equal(t, StatusResolved, updated.Complaint.Status)
	require.NotNil(t, updated.Complaint.Resolution)
	assert.Equal(t, "Refund issued", *updated.Complaint.Resolution)

	rr = doJSONRequest(r, http.MethodPatch, base+"/priority", map[string]any{"priority": "urgent"}, staff, "staff")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	rr = doJSONRequest(r, http.MethodGet, base, nil, staff, "staff")
	require.Equal(t, http.StatusOK, rr.Code)
	var detail ComplaintDetail
	decode(t, rr, &detail)
	assert.Len(t, detail.Replies, 2)
	assert.Equal(t, PriorityUrgent, detail.Complaint.Priority)

	// the owner does not see the internal note
	rr = doJSONRequest(r, http.MethodGet, "/api/v1/complaints/"+strconv.FormatInt(c.ID, 10)+"/replies", nil, f.owner.ID, "user")
	require.Equal(t, http.StatusOK, rr.Code)
	var public struct {
		Replies []Reply `json:"replies"`
	}
	decode(t, rr, &public)
	require.Len(t, public.Replies, 1)
	assert.Equal(t, "Refund issued", public.Replies[0].Message)

	rr = doJSONRequest(r, http.MethodGet, "/api/v1/staff/complaints?status=resolved", nil, staff, "staff")
	require.Equal(t, http.StatusOK, rr.Code)
	var page struct {
		Complaints []Complaint `json:"complaints"`
		Total      int64       `json:"total"`
	}
	decode(t, rr, &page)
	assert.Equal(t, int64(1), page.Total)

	rr = doJSONRequest(r, http.MethodGet, "/api/v1/staff/complaints/stats", nil, staff, "staff")
	require.Equal(t, http.StatusOK, rr.Code)
	var stats struct {
		ByStatus map[string]int64 `json:"by_status"`
		Total    int64            `json:"total"`
	}
	decode(t, rr, &stats)
	assert.Equal(t, int64(1), stats.ByStatus["resolved"])
	assert.Equal(t, int64(1), stats.Total)

	rr = doJSONRequest(r, http.MethodPatch, "/api/v1/staff/complaints/9999/status", map[string]any{"status": "closed"}, staff, "staff")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}
