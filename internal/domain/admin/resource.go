package admin

// ColumnKind tells the panel how to render a table cell.
type ColumnKind string

const (
	ColumnText     ColumnKind = "text"
	ColumnBadge    ColumnKind = "badge"
	ColumnDateTime ColumnKind = "datetime"
	ColumnMoney    ColumnKind = "money"
	ColumnBoolean  ColumnKind = "boolean"
)

// FieldKind is the form input used for a field.
type FieldKind string

const (
	FieldText        FieldKind = "text"
	FieldTextarea    FieldKind = "textarea"
	FieldSelect      FieldKind = "select"
	FieldMultiSelect FieldKind = "multiselect"
	FieldNumber      FieldKind = "number"
	FieldDateTime    FieldKind = "datetime"
	FieldToggle      FieldKind = "toggle"
)

// Badge colours follow the panel palette.
const (
	ColorGray    = "gray"
	ColorInfo    = "info"
	ColorPrimary = "primary"
	ColorSuccess = "success"
	ColorWarning = "warning"
	ColorDanger  = "danger"
)

type Column struct {
	Key      string            `json:"key"`
	Label    string            `json:"label"`
	Kind     ColumnKind        `json:"kind"`
	Sortable bool              `json:"sortable,omitempty"`
	Colors   map[string]string `json:"colors,omitempty"`
}

type Filter struct {
	Key     string   `json:"key"`
	Label   string   `json:"label"`
	Options []string `json:"options"`
}

// Condition shows a field only while another field holds one of the values.
type Condition struct {
	Field string   `json:"field"`
	In    []string `json:"in"`
}

type Field struct {
	Name        string     `json:"name"`
	Label       string     `json:"label"`
	Kind        FieldKind  `json:"kind"`
	Required    bool       `json:"required,omitempty"`
	Options     []string   `json:"options,omitempty"`
	VisibleWhen *Condition `json:"visible_when,omitempty"`
}

// Visible evaluates the field's condition against the current form values.
func (f Field) Visible(values map[string]string) bool {
	if f.VisibleWhen == nil {
		return true
	}
	current := values[f.VisibleWhen.Field]
	for _, v := range f.VisibleWhen.In {
		if v == current {
			return true
		}
	}
	return false
}

// ResourceConfig describes how the back-office lists, filters and edits one
// entity. It is plain data; the panel renders it.
type ResourceConfig struct {
	Name        string   `json:"name"`
	Label       string   `json:"label"`
	DefaultSort string   `json:"default_sort"`
	Columns     []Column `json:"columns"`
	Filters     []Filter `json:"filters,omitempty"`
	Form        []Field  `json:"form,omitempty"`
}

// BadgeColor returns the colour for a badge column value, gray when unmapped.
func (r ResourceConfig) BadgeColor(column, value string) string {
	for _, c := range r.Columns {
		if c.Key != column {
			continue
		}
		if color, ok := c.Colors[value]; ok {
			return color
		}
		break
	}
	return ColorGray
}

// VisibleFields returns the form fields shown for the given values.
func (r ResourceConfig) VisibleFields(values map[string]string) []Field {
	fields := make([]Field, 0, len(r.Form))
	for _, f := range r.Form {
		if f.Visible(values) {
			fields = append(fields, f)
		}
	}
	return fields
}

// ResourceSummary is the navigation entry for a resource.
type ResourceSummary struct {
	Name  string `json:"name"`
	Label string `json:"label"`
}
