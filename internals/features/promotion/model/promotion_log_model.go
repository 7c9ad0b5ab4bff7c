// file: internals/features/promotion/model/promotion_log_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type PromotionOutcome string

const (
	PromotionOutcomePromoted  PromotionOutcome = "promoted"
	PromotionOutcomeGraduated PromotionOutcome = "graduated"
	PromotionOutcomeExcluded  PromotionOutcome = "excluded"
)

// PromotionLogModel is the immutable audit row written once per student in a
// promotion run. The (batch_id, sequence_no) pair gives replay a deterministic
// order even if the executor ever goes concurrent.
type PromotionLogModel struct {
	PromotionLogID       uuid.UUID `gorm:"column:promotion_log_id;type:uuid;default:gen_random_uuid();primaryKey" json:"promotion_log_id"`
	PromotionLogSchoolID uuid.UUID `gorm:"column:promotion_log_school_id;type:uuid;not null;index" json:"promotion_log_school_id"`

	// FK → students
	PromotionLogStudentID uuid.UUID `gorm:"column:promotion_log_student_id;type:uuid;not null;index" json:"promotion_log_student_id"`

	// One batch per bulk invocation; sequence is 1-based within the batch.
	PromotionLogBatchID    uuid.UUID `gorm:"column:promotion_log_batch_id;type:uuid;not null;index:ix_promotion_log_batch_seq,priority:1" json:"promotion_log_batch_id"`
	PromotionLogSequenceNo int       `gorm:"column:promotion_log_sequence_no;type:integer;not null;index:ix_promotion_log_batch_seq,priority:2" json:"promotion_log_sequence_no"`

	PromotionLogOutcome PromotionOutcome `gorm:"column:promotion_log_outcome;type:varchar(20);not null" json:"promotion_log_outcome"`
	PromotionLogReason  *string          `gorm:"column:promotion_log_reason;type:text" json:"promotion_log_reason,omitempty"`

	PromotionLogFromClass string  `gorm:"column:promotion_log_from_class;type:varchar(80);not null" json:"promotion_log_from_class"`
	PromotionLogToClass   *string `gorm:"column:promotion_log_to_class;type:varchar(80)" json:"promotion_log_to_class,omitempty"`
	PromotionLogFromYear  string  `gorm:"column:promotion_log_from_year;type:varchar(16);not null" json:"promotion_log_from_year"`
	PromotionLogToYear    string  `gorm:"column:promotion_log_to_year;type:varchar(16);not null" json:"promotion_log_to_year"`

	PromotionLogPromotedBy uuid.UUID `gorm:"column:promotion_log_promoted_by;type:uuid;not null" json:"promotion_log_promoted_by"`

	// Snapshot of the criteria values applied to this student.
	PromotionLogCriteria datatypes.JSON `gorm:"column:promotion_log_criteria;type:jsonb" json:"promotion_log_criteria,omitempty"`

	PromotionLogCreatedAt time.Time `gorm:"column:promotion_log_created_at;type:timestamptz;not null;autoCreateTime" json:"promotion_log_created_at"`
}

func (PromotionLogModel) TableName() string { return "promotion_logs" }
