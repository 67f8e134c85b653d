package admin

import (
	"thriftsave/internal/domain/auth"
	"thriftsave/internal/domain/complaint"
	"thriftsave/internal/domain/notification"
	"thriftsave/internal/domain/thrift"
)

const (
	ResourceComplaints    = "complaints"
	ResourceNotifications = "notifications"
	ResourcePackages      = "packages"
	ResourceUsers         = "users"
)

var (
	complaintStatusColors = map[string]string{
		string(complaint.StatusOpen):       ColorWarning,
		string(complaint.StatusInProgress): ColorInfo,
		string(complaint.StatusResolved):   ColorSuccess,
		string(complaint.StatusClosed):     ColorGray,
	}
	complaintPriorityColors = map[string]string{
		string(complaint.PriorityLow):    ColorGray,
		string(complaint.PriorityNormal): ColorInfo,
		string(complaint.PriorityHigh):   ColorWarning,
		string(complaint.PriorityUrgent): ColorDanger,
	}
	notificationTypeColors = map[string]string{
		string(notification.TypeTransaction): ColorInfo,
		string(notification.TypePackage):     ColorPrimary,
		string(notification.TypeSettlement):  ColorSuccess,
		string(notification.TypeSystem):      ColorWarning,
	}
	onboardingColors = map[string]string{
		string(auth.OnboardingPendingPayment): ColorWarning,
		string(auth.OnboardingCompleted):      ColorSuccess,
	}
	roleColors = map[string]string{
		string(auth.RoleUser):  ColorGray,
		string(auth.RoleStaff): ColorInfo,
		string(auth.RoleAdmin): ColorDanger,
	}
)

// Registry holds the resource configs in navigation order.
type Registry struct {
	order     []string
	resources map[string]ResourceConfig
}

func NewRegistry() *Registry {
	r := &Registry{resources: make(map[string]ResourceConfig)}
	r.add(complaintsResource())
	r.add(notificationsResource())
	r.add(packagesResource())
	r.add(usersResource())
	return r
}

func (r *Registry) add(cfg ResourceConfig) {
	r.order = append(r.order, cfg.Name)
	r.resources[cfg.Name] = cfg
}

func (r *Registry) Get(name string) (ResourceConfig, error) {
	cfg, ok := r.resources[name]
	if !ok {
		return ResourceConfig{}, ErrResourceNotFound
	}
	return cfg, nil
}

func (r *Registry) List() []ResourceSummary {
	out := make([]ResourceSummary, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, ResourceSummary{Name: name, Label: r.resources[name].Label})
	}
	return out
}

func complaintsResource() ResourceConfig {
	closed := []string{string(complaint.StatusResolved), string(complaint.StatusClosed)}
	return ResourceConfig{
		Name:        ResourceComplaints,
		Label:       "Complaints",
		DefaultSort: "-created_at",
		Columns: []Column{
			{Key: "ticket_number", Label: "Ticket", Kind: ColumnText},
			{Key: "title", Label: "Title", Kind: ColumnText},
			{Key: "category", Label: "Category", Kind: ColumnText},
			{Key: "priority", Label: "Priority", Kind: ColumnBadge, Sortable: true, Colors: complaintPriorityColors},
			{Key: "status", Label: "Status", Kind: ColumnBadge, Sortable: true, Colors: complaintStatusColors},
			{Key: "created_at", Label: "Submitted", Kind: ColumnDateTime, Sortable: true},
		},
		Filters: []Filter{
			{Key: "status", Label: "Status", Options: enumStrings(complaint.Statuses)},
			{Key: "priority", Label: "Priority", Options: enumStrings([]complaint.Priority{
				complaint.PriorityLow, complaint.PriorityNormal, complaint.PriorityHigh, complaint.PriorityUrgent,
			})},
			{Key: "category", Label: "Category", Options: enumStrings([]complaint.Category{
				complaint.CategoryAccount, complaint.CategoryTransaction, complaint.CategoryService, complaint.CategoryOther,
			})},
		},
		Form: []Field{
			{Name: "status", Label: "Status", Kind: FieldSelect, Required: true, Options: enumStrings(complaint.Statuses)},
			{Name: "priority", Label: "Priority", Kind: FieldSelect, Required: true, Options: enumStrings([]complaint.Priority{
				complaint.PriorityLow, complaint.PriorityNormal, complaint.PriorityHigh, complaint.PriorityUrgent,
			})},
			{Name: "resolution", Label: "Resolution", Kind: FieldTextarea, VisibleWhen: &Condition{Field: "status", In: closed}},
			{Name: "resolved_at", Label: "Resolved at", Kind: FieldDateTime, VisibleWhen: &Condition{Field: "status", In: closed}},
		},
	}
}

func notificationsResource() ResourceConfig {
	return ResourceConfig{
		Name:        ResourceNotifications,
		Label:       "Notifications",
		DefaultSort: "-created_at",
		Columns: []Column{
			{Key: "title", Label: "Title", Kind: ColumnText},
			{Key: "type", Label: "Type", Kind: ColumnBadge, Colors: notificationTypeColors},
			{Key: "recipient_type", Label: "Recipients", Kind: ColumnText},
			{Key: "recipient_count", Label: "Delivered to", Kind: ColumnText},
			{Key: "scheduled_at", Label: "Scheduled", Kind: ColumnDateTime, Sortable: true},
			{Key: "created_at", Label: "Created", Kind: ColumnDateTime, Sortable: true},
		},
		Filters: []Filter{
			{Key: "type", Label: "Type", Options: enumStrings([]notification.Type{
				notification.TypeTransaction, notification.TypePackage, notification.TypeSettlement, notification.TypeSystem,
			})},
		},
		Form: []Field{
			{Name: "title", Label: "Title", Kind: FieldText, Required: true},
			{Name: "message", Label: "Message", Kind: FieldTextarea, Required: true},
			{Name: "type", Label: "Type", Kind: FieldSelect, Required: true, Options: enumStrings([]notification.Type{
				notification.TypeTransaction, notification.TypePackage, notification.TypeSettlement, notification.TypeSystem,
			})},
			{Name: "recipient_type", Label: "Send to", Kind: FieldSelect, Required: true, Options: enumStrings([]notification.RecipientType{
				notification.RecipientAll, notification.RecipientSpecificUsers, notification.RecipientPackageSubscribers,
			})},
			{Name: "user_ids", Label: "Users", Kind: FieldMultiSelect, Required: true, VisibleWhen: &Condition{
				Field: "recipient_type", In: []string{string(notification.RecipientSpecificUsers)},
			}},
			{Name: "package_id", Label: "Package", Kind: FieldSelect, Required: true, VisibleWhen: &Condition{
				Field: "recipient_type", In: []string{string(notification.RecipientPackageSubscribers)},
			}},
			{Name: "scheduled_at", Label: "Schedule for", Kind: FieldDateTime},
		},
	}
}

func packagesResource() ResourceConfig {
	return ResourceConfig{
		Name:        ResourcePackages,
		Label:       "Thrift packages",
		DefaultSort: "contribution_amount",
		Columns: []Column{
			{Key: "name", Label: "Name", Kind: ColumnText},
			{Key: "contribution_amount", Label: "Contribution", Kind: ColumnMoney, Sortable: true},
			{Key: "frequency", Label: "Frequency", Kind: ColumnText},
			{Key: "cycles", Label: "Cycles", Kind: ColumnText},
			{Key: "is_active", Label: "Active", Kind: ColumnBoolean},
		},
		Filters: []Filter{
			{Key: "frequency", Label: "Frequency", Options: enumStrings([]thrift.Frequency{
				thrift.FrequencyDaily, thrift.FrequencyWeekly, thrift.FrequencyMonthly,
			})},
		},
		Form: []Field{
			{Name: "name", Label: "Name", Kind: FieldText, Required: true},
			{Name: "description", Label: "Description", Kind: FieldTextarea},
			{Name: "contribution_amount", Label: "Contribution (kobo)", Kind: FieldNumber, Required: true},
			{Name: "frequency", Label: "Frequency", Kind: FieldSelect, Required: true, Options: enumStrings([]thrift.Frequency{
				thrift.FrequencyDaily, thrift.FrequencyWeekly, thrift.FrequencyMonthly,
			})},
			{Name: "cycles", Label: "Cycles", Kind: FieldNumber, Required: true},
			{Name: "is_active", Label: "Active", Kind: FieldToggle},
		},
	}
}

func usersResource() ResourceConfig {
	return ResourceConfig{
		Name:        ResourceUsers,
		Label:       "Users",
		DefaultSort: "-created_at",
		Columns: []Column{
			{Key: "name", Label: "Name", Kind: ColumnText},
			{Key: "email", Label: "Email", Kind: ColumnText},
			{Key: "phone", Label: "Phone", Kind: ColumnText},
			{Key: "role", Label: "Role", Kind: ColumnBadge, Colors: roleColors},
			{Key: "onboarding_status", Label: "Onboarding", Kind: ColumnBadge, Colors: onboardingColors},
			{Key: "created_at", Label: "Joined", Kind: ColumnDateTime, Sortable: true},
		},
		Filters: []Filter{
			{Key: "role", Label: "Role", Options: enumStrings([]auth.UserRole{auth.RoleUser, auth.RoleStaff, auth.RoleAdmin})},
			{Key: "onboarding_status", Label: "Onboarding", Options: enumStrings([]auth.OnboardingStatus{
				auth.OnboardingPendingPayment, auth.OnboardingCompleted,
			})},
		},
	}
}

func enumStrings[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}
