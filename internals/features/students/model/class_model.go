// file: internals/features/students/model/class_model.go
package model

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GradeModel struct {
	// ============ PK & Tenant ============
	GradeID       uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:grade_id" json:"grade_id"`
	GradeSchoolID uuid.UUID `gorm:"type:uuid;not null;index;column:grade_school_id" json:"grade_school_id"`

	GradeName  string `gorm:"type:varchar(50);not null;column:grade_name" json:"grade_name"`
	GradeLevel int    `gorm:"type:integer;not null;default:0;column:grade_level" json:"grade_level"`

	// ============ Audit / Soft delete ============
	GradeCreatedAt time.Time      `gorm:"type:timestamptz;not null;autoCreateTime;column:grade_created_at" json:"grade_created_at"`
	GradeUpdatedAt time.Time      `gorm:"type:timestamptz;not null;autoUpdateTime;column:grade_updated_at" json:"grade_updated_at"`
	GradeDeletedAt gorm.DeletedAt `gorm:"column:grade_deleted_at;index" json:"grade_deleted_at,omitempty"`
}

func (GradeModel) TableName() string { return "grades" }

type ClassModel struct {
	// ============ PK & Tenant ============
	ClassID       uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:class_id" json:"class_id"`
	ClassSchoolID uuid.UUID `gorm:"type:uuid;not null;index;column:class_school_id" json:"class_school_id"`

	// FK → grades
	ClassGradeID uuid.UUID `gorm:"type:uuid;not null;index;column:class_grade_id" json:"class_grade_id"`

	// Example name: "Grade 6A"
	ClassName     string `gorm:"type:varchar(80);not null;column:class_name" json:"class_name"`
	ClassIsActive bool   `gorm:"not null;default:true;index;column:class_is_active" json:"class_is_active"`

	// ============ Audit / Soft delete ============
	ClassCreatedAt time.Time      `gorm:"type:timestamptz;not null;autoCreateTime;column:class_created_at" json:"class_created_at"`
	ClassUpdatedAt time.Time      `gorm:"type:timestamptz;not null;autoUpdateTime;column:class_updated_at" json:"class_updated_at"`
	ClassDeletedAt gorm.DeletedAt `gorm:"column:class_deleted_at;index" json:"class_deleted_at,omitempty"`

	// Relationships
	Grade *GradeModel `gorm:"foreignKey:ClassGradeID;references:GradeID" json:"grade,omitempty"`
}

func (ClassModel) TableName() string { return "classes" }

func (m *ClassModel) BeforeSave(tx *gorm.DB) error {
	m.ClassName = strings.TrimSpace(m.ClassName)
	if m.ClassName == "" {
		return errors.New("class_name is required")
	}
	return nil
}
