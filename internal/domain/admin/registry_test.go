package admin

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"thriftsave/internal/pkg/apperr"
)

func TestRegistry_ListOrder(t *testing.T) {
	r := NewRegistry()
	names := make([]string, 0)
	for _, s := range r.List() {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{"complaints", "notifications", "packages", "users"}, names)
}

func TestRegistry_UnknownResource(t *testing.T) {
	_, err := NewRegistry().Get("bookings")
	require.Error(t, err)
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
}

func TestComplaintBadgeColors(t *testing.T) {
	cfg, err := NewRegistry().Get(ResourceComplaints)
	require.NoError(t, err)

	assert.Equal(t, ColorWarning, cfg.BadgeColor("status", "open"))
	assert.Equal(t, ColorSuccess, cfg.BadgeColor("status", "resolved"))
	assert.Equal(t, ColorDanger, cfg.BadgeColor("priority", "urgent"))
	assert.Equal(t, ColorGray, cfg.BadgeColor("priority", "unheard-of"))
	assert.Equal(t, ColorGray, cfg.BadgeColor("title", "anything"))
}

func TestNotificationFormVisibility(t *testing.T) {
	cfg, err := NewRegistry().Get(ResourceNotifications)
	require.NoError(t, err)

	fieldNames := func(values map[string]string) []string {
		var names []string
		for _, f := range cfg.VisibleFields(values) {
			names = append(names, f.Name)
		}
		return names
	}

	all := fieldNames(map[string]string{"recipient_type": "all"})
	assert.NotContains(t, all, "user_ids")
	assert.NotContains(t, all, "package_id")

	specific := fieldNames(map[string]string{"recipient_type": "specific_users"})
	assert.Contains(t, specific, "user_ids")
	assert.NotContains(t, specific, "package_id")

	subs := fieldNames(map[string]string{"recipient_type": "package_subscribers"})
	assert.Contains(t, subs, "package_id")
	assert.NotContains(t, subs, "user_ids")
}

func TestComplaintResolutionFieldsFollowStatus(t *testing.T) {
	cfg, err := NewRegistry().Get(ResourceComplaints)
	require.NoError(t, err)

	var resolution Field
	for _, f := range cfg.Form {
		if f.Name == "resolution" {
			resolution = f
		}
	}
	require.NotNil(t, resolution.VisibleWhen)

	assert.False(t, resolution.Visible(map[string]string{"status": "open"}))
	assert.True(t, resolution.Visible(map[string]string{"status": "resolved"}))
	assert.True(t, resolution.Visible(map[string]string{"status": "closed"}))
}
