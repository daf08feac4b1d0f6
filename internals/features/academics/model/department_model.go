package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Department struct {
	DepartmentID   uuid.UUID `gorm:"column:department_id;type:uuid;default:gen_random_uuid();primaryKey" json:"department_id"`
	DepartmentCode string    `gorm:"column:department_code;type:varchar(20);not null;uniqueIndex" json:"department_code"`
	DepartmentName string    `gorm:"column:department_name;type:varchar(120);not null" json:"department_name"`

	DepartmentCreatedAt time.Time      `gorm:"column:department_created_at;not null;default:now()" json:"department_created_at"`
	DepartmentUpdatedAt time.Time      `gorm:"column:department_updated_at;not null;default:now()" json:"department_updated_at"`
	DepartmentDeletedAt gorm.DeletedAt `gorm:"column:department_deleted_at;index" json:"-"`
}

func (Department) TableName() string { return "departments" }

func (m *Department) BeforeCreate(tx *gorm.DB) error {
	now := time.Now()
	if m.DepartmentCreatedAt.IsZero() {
		m.DepartmentCreatedAt = now
	}
	m.DepartmentUpdatedAt = now
	return nil
}

func (m *Department) BeforeUpdate(tx *gorm.DB) error {
	m.DepartmentUpdatedAt = time.Now()
	return nil
}
