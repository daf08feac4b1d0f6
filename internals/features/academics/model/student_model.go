package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/* =========================================================
   ENUM — student classification
========================================================= */

type StudentClassification string

const (
	StudentClassificationNew        StudentClassification = "new"
	StudentClassificationOld        StudentClassification = "old"
	StudentClassificationTransferee StudentClassification = "transferee"
)

type Student struct {
	StudentID uuid.UUID `gorm:"column:student_id;type:uuid;default:gen_random_uuid();primaryKey" json:"student_id"`

	// school-issued student number, e.g. "2025-00123"
	StudentNumber    string `gorm:"column:student_number;type:varchar(20);not null;uniqueIndex" json:"student_number"`
	StudentFirstName string `gorm:"column:student_first_name;type:varchar(80);not null" json:"student_first_name"`
	StudentLastName  string `gorm:"column:student_last_name;type:varchar(80);not null" json:"student_last_name"`

	StudentDepartmentID   *uuid.UUID            `gorm:"column:student_department_id;type:uuid;index" json:"student_department_id,omitempty"`
	StudentYearLevel      string                `gorm:"column:student_year_level;type:varchar(10);not null;default:'1';index" json:"student_year_level"`
	StudentClassification StudentClassification `gorm:"column:student_classification;type:varchar(20);not null;default:'new';index" json:"student_classification"`

	StudentEmail *string `gorm:"column:student_email;type:varchar(160)" json:"student_email,omitempty"`

	StudentCreatedAt time.Time      `gorm:"column:student_created_at;not null;default:now()" json:"student_created_at"`
	StudentUpdatedAt time.Time      `gorm:"column:student_updated_at;not null;default:now()" json:"student_updated_at"`
	StudentDeletedAt gorm.DeletedAt `gorm:"column:student_deleted_at;index" json:"-"`
}

func (Student) TableName() string { return "students" }

func (m *Student) BeforeCreate(tx *gorm.DB) error {
	now := time.Now()
	if m.StudentCreatedAt.IsZero() {
		m.StudentCreatedAt = now
	}
	m.StudentUpdatedAt = now
	return nil
}

func (m *Student) BeforeUpdate(tx *gorm.DB) error {
	m.StudentUpdatedAt = time.Now()
	return nil
}
