package model

import (
	"time"

	"github.com/google/uuid"
)

// Department is a government unit responsible for handling civic issues.
// Deleting a department nulls out report references, it never cascades.
type Department struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name        string    `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Description *string   `gorm:"type:text" json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
