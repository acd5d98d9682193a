package draftly

import (
	"time"
)

// FieldType enumerates the supported input field types.
type FieldType string

const (
	FieldTypeText   FieldType = "text"
	FieldTypeNumber FieldType = "number"
	FieldTypeDate   FieldType = "date"
	FieldTypeSelect FieldType = "select"
	FieldTypeTime   FieldType = "time"
)

// FieldOption is one choice of a select field. Values are unique within a field.
type FieldOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// FieldSchema describes one input slot of a template.
//
// The identifier is dot-scoped: the prefix before the first dot names the
// section the field belongs to (e.g. "employer.companyName" -> "employer").
type FieldSchema struct {
	ID          string        `json:"id"`
	Label       string        `json:"label"`
	Type        FieldType     `json:"type"`
	Placeholder string        `json:"placeholder,omitempty"`
	Required    bool          `json:"required,omitempty"`
	Options     []FieldOption `json:"options,omitempty"`
}

// Template is a named contract document definition: an ordered field list
// plus a raw text body carrying {{field.id}} placeholders.
//
// Templates are created once from the built-in catalog at bootstrap and are
// immutable afterwards. FieldCount is display metadata and is not required
// to equal len(Fields).
type Template struct {
	ID            int64         `json:"id"`
	Name          string        `json:"name"`
	Title         string        `json:"title"`
	Description   string        `json:"description"`
	Icon          string        `json:"icon"`
	EstimatedTime string        `json:"estimatedTime"`
	FieldCount    int           `json:"fieldCount"`
	Body          string        `json:"template"`
	Fields        []FieldSchema `json:"fields"`
}

// ContractStatus represents the lifecycle state of a contract.
type ContractStatus string

const (
	StatusDraft     ContractStatus = "draft"
	StatusCompleted ContractStatus = "completed"
)

// ValidStatus reports whether s is a known contract status.
func ValidStatus(s ContractStatus) bool {
	return s == StatusDraft || s == StatusCompleted
}

// Contract is a stored, user-authored instance of a template.
//
// Data maps field ids to submitted values. The template reference is not
// enforced with a foreign key; referential integrity is the caller's
// responsibility.
type Contract struct {
	ID         int64          `json:"id"`
	TemplateID int64          `json:"templateId"`
	Title      string         `json:"title"`
	Data       map[string]any `json:"data"`
	Status     ContractStatus `json:"status"`
	CreatedAt  time.Time      `json:"createdAt"`
	UpdatedAt  time.Time      `json:"updatedAt"`
}

// CreateContractRequest is the payload for creating a contract.
type CreateContractRequest struct {
	TemplateID int64          `json:"templateId"`
	Title      string         `json:"title"`
	Data       map[string]any `json:"data"`
	Status     ContractStatus `json:"status,omitempty"`
}

// UpdateContractRequest is a partial update. Nil members are left untouched;
// Data is merged into the existing mapping at the field-id level.
type UpdateContractRequest struct {
	Title  *string         `json:"title,omitempty"`
	Data   map[string]any  `json:"data,omitempty"`
	Status *ContractStatus `json:"status,omitempty"`
}

// ExportResult carries the bytes of an exported document.
type ExportResult struct {
	Data        []byte `json:"-"`
	Filename    string `json:"filename"`
	ContentType string `json:"contentType"`
}
