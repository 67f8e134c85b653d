package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"thriftsave/internal/domain/auth"
	"thriftsave/internal/domain/complaint"
)

func setupTestRouter(t *testing.T, f *fixture) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

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
	h.RegisterRoutes(v1)
	h.RegisterAdminRoutes(v1.Group("/admin"))
	return r
}

func doJSONRequest(r http.Handler, method, path string, body any, userID int64, role string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if userID != 0 {
		req.Header.Set("X-Test-User-ID", strconv.FormatInt(userID, 10))
		req.Header.Set("X-Test-Role", role)
	}
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func TestNotificationHandlers_AdminCreateAndInbox(t *testing.T) {
	f := setupFixture(t, 3)
	r := setupTestRouter(t, f)
	admin := int64(1000)

	rr := doJSONRequest(r, http.MethodPost, "/api/v1/admin/notifications", map[string]any{
		"title": "Hello", "message": "World", "type": "system", "recipient_type": "specific_users", "user_ids": []int64{},
	}, admin, "admin")
	assert.Equal(t, http.StatusBadRequest, rr.Code, rr.Body.String())

	rr = doJSONRequest(r, http.MethodPost, "/api/v1/admin/notifications", map[string]any{
		"title": "Hello", "message": "World", "type": "system", "recipient_type": "package_subscribers", "package_id": 77,
	}, admin, "admin")
	assert.Equal(t, http.StatusNotFound, rr.Code, rr.Body.String())

	rr = doJSONRequest(r, http.MethodPost, "/api/v1/admin/notifications", map[string]any{
		"title": "Hello", "message": "World", "type": "system", "recipient_type": "specific_users",
		"user_ids": []int64{f.users[0].ID, f.users[2].ID},
	}, admin, "admin")
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	var created struct {
		Data struct {
			Notification Notification `json:"notification"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))
	n := created.Data.Notification
	assert.Equal(t, int64(2), n.RecipientCount)
	assert.Equal(t, admin, n.CreatedBy)

	rr = doJSONRequest(r, http.MethodGet, "/api/v1/admin/notifications/"+strconv.FormatInt(n.ID, 10), nil, admin, "admin")
	require.Equal(t, http.StatusOK, rr.Code)

	me := f.users[0].ID
	rr = doJSONRequest(r, http.MethodGet, "/api/v1/notifications/unread-count", nil, me, "user")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"success":true,"data":{"unread_count":1}}`, rr.Body.String())

	rr = doJSONRequest(r, http.MethodPatch, "/api/v1/notifications/"+strconv.FormatInt(n.ID, 10)+"/read", nil, me, "user")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	rr = doJSONRequest(r, http.MethodGet, "/api/v1/notifications", nil, me, "user")
	require.Equal(t, http.StatusOK, rr.Code)
	var inbox struct {
		Data struct {
			Notifications []InboxItem `json:"notifications"`
			UnreadCount   int64       `json:"unread_count"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &inbox))
	require.Len(t, inbox.Data.Notifications, 1)
	assert.True(t, inbox.Data.Notifications[0].IsRead)
	assert.Zero(t, inbox.Data.UnreadCount)

	// user 1 was not targeted
	rr = doJSONRequest(r, http.MethodPatch, "/api/v1/notifications/"+strconv.FormatInt(n.ID, 10)+"/read", nil, f.users[1].ID, "user")
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr = doJSONRequest(r, http.MethodPost, "/api/v1/notifications/read-all", nil, f.users[2].ID, "user")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"success":true,"data":{"updated":1}}`, rr.Body.String())
}

func TestComplaintNotifier_TargetsOwner(t *testing.T) {
	f := setupFixture(t, 2)
	ctx := context.Background()
	owner := f.users[1]

	notifier := NewComplaintNotifier(f.svc)
	err := notifier.ComplaintReplied(ctx,
		&complaint.Complaint{ID: 5, TicketNumber: "TKT-20260310-ABCDEF", UserID: owner.ID},
		&complaint.Reply{ID: 9, AuthorID: f.users[0].ID, Message: "We have refunded you", Type: complaint.ReplyTypeResolution},
	)
	require.NoError(t, err)

	items, err := f.svc.ListForUser(ctx, owner.ID, false, 0)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Ticket TKT-20260310-ABCDEF has a resolution", items[0].Title)
	assert.Equal(t, TypeSystem, items[0].Type)

	others, err := f.svc.ListForUser(ctx, f.users[0].ID, false, 0)
	require.NoError(t, err)
	assert.Empty(t, others)
}

var _ complaint.ReplyNotifier = (*ComplaintNotifier)(nil)
var _ Deliverer = (*Hub)(nil)
var _ UserDirectory = (*auth.UserRepository)(nil)
