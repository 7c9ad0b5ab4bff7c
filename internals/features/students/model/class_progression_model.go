// file: internals/features/students/model/class_progression_model.go
package model

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Target name that always resolves to graduation regardless of the class table.
const ProgressionTargetAlumni = "Alumni"

// ClassProgressionModel maps a source class to the class students move into on
// promotion. The target is stored by name and resolved at execution time: a
// name with no matching active class (or the literal "Alumni") graduates the
// student instead of reassigning them.
type ClassProgressionModel struct {
	// ============ PK & Tenant ============
	ClassProgressionID       uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:class_progression_id" json:"class_progression_id"`
	ClassProgressionSchoolID uuid.UUID `gorm:"type:uuid;not null;index:ix_class_progression_school_from;column:class_progression_school_id" json:"class_progression_school_id"`

	// FK → classes
	ClassProgressionFromClassID uuid.UUID `gorm:"type:uuid;not null;index:ix_class_progression_school_from;column:class_progression_from_class_id" json:"class_progression_from_class_id"`

	ClassProgressionToClassName string `gorm:"type:varchar(80);not null;column:class_progression_to_class_name" json:"class_progression_to_class_name"`
	ClassProgressionSortOrder   int    `gorm:"type:integer;not null;default:0;column:class_progression_sort_order" json:"class_progression_sort_order"`

	// At most one active rule per (school, from_class); enforced by a partial
	// unique index in the migration and re-checked on activation.
	ClassProgressionIsActive bool `gorm:"not null;default:true;column:class_progression_is_active" json:"class_progression_is_active"`

	// ============ Audit / Soft delete ============
	ClassProgressionCreatedAt time.Time      `gorm:"type:timestamptz;not null;autoCreateTime;column:class_progression_created_at" json:"class_progression_created_at"`
	ClassProgressionUpdatedAt time.Time      `gorm:"type:timestamptz;not null;autoUpdateTime;column:class_progression_updated_at" json:"class_progression_updated_at"`
	ClassProgressionDeletedAt gorm.DeletedAt `gorm:"column:class_progression_deleted_at;index" json:"class_progression_deleted_at,omitempty"`

	// Relationships
	FromClass *ClassModel `gorm:"foreignKey:ClassProgressionFromClassID;references:ClassID" json:"from_class,omitempty"`
}

func (ClassProgressionModel) TableName() string { return "class_progressions" }

func (m *ClassProgressionModel) BeforeSave(tx *gorm.DB) error {
	m.ClassProgressionToClassName = strings.TrimSpace(m.ClassProgressionToClassName)
	if m.ClassProgressionToClassName == "" {
		return errors.New("class_progression_to_class_name is required")
	}
	return nil
}
