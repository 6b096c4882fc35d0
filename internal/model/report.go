package model

import (
	"time"

	"github.com/google/uuid"
)

type Category string

const (
	CategoryPothole     Category = "pothole"
	CategoryTrash       Category = "trash"
	CategoryStreetlight Category = "streetlight"
	CategoryWater       Category = "water"
	CategoryDrainage    Category = "drainage"
	CategoryRoad        Category = "road"
	CategoryOther       Category = "other"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryPothole, CategoryTrash, CategoryStreetlight, CategoryWater,
		CategoryDrainage, CategoryRoad, CategoryOther:
		return true
	}
	return false
}

type Status string

const (
	StatusSubmitted  Status = "submitted"
	StatusInProgress Status = "in_progress"
	StatusResolved   Status = "resolved"
	StatusRejected   Status = "rejected"
)

func (s Status) Valid() bool {
	switch s {
	case StatusSubmitted, StatusInProgress, StatusResolved, StatusRejected:
		return true
	}
	return false
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityUrgent:
		return true
	}
	return false
}

// Report is a civic issue submitted by a citizen. Reports are only ever
// mutated by admins after creation and are never hard-deleted by the
// normal resolution flow.
type Report struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Title       string    `gorm:"size:200;not null" json:"title"`
	Description string    `gorm:"type:text;not null" json:"description"`
	Category    Category  `gorm:"size:20;not null" json:"category"`

	Latitude  *float64 `gorm:"type:decimal(18,15)" json:"latitude"`
	Longitude *float64 `gorm:"type:decimal(18,15)" json:"longitude"`
	Address   *string  `gorm:"size:300" json:"address,omitempty"`
	ImageURL  *string  `gorm:"size:500" json:"image_url,omitempty"`

	Status   Status   `gorm:"size:20;not null;default:submitted" json:"status"`
	Priority Priority `gorm:"size:10;not null;default:medium" json:"priority"`

	ReportedByID uuid.UUID `gorm:"type:uuid;not null;index" json:"reported_by_id"`
	ReportedBy   *User     `gorm:"foreignKey:ReportedByID" json:"reported_by,omitempty"`

	AssignedDepartmentID *uuid.UUID  `gorm:"type:uuid" json:"assigned_department_id,omitempty"`
	AssignedDepartment   *Department `gorm:"foreignKey:AssignedDepartmentID;constraint:OnDelete:SET NULL" json:"assigned_department,omitempty"`

	AssignedToID *uuid.UUID `gorm:"type:uuid" json:"assigned_to_id,omitempty"`
	AssignedTo   *User      `gorm:"foreignKey:AssignedToID;constraint:OnDelete:SET NULL" json:"assigned_to,omitempty"`

	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
	ResolvedAt *time.Time `json:"resolved_at,omitempty"`
}

// Resolve stamps the transition into the resolved status. The timestamp is
// only set the first time the report enters resolved.
func (r *Report) Resolve(now time.Time) {
	if r.Status != StatusResolved {
		r.Status = StatusResolved
		r.ResolvedAt = &now
	}
}
