// file: internals/features/academics/dto/academics_dto.go
package dto

import "github.com/google/uuid"

type CreateStudentDTO struct {
	StudentNumber  string     `json:"student_number" validate:"required,max=20"`
	FirstName      string     `json:"first_name" validate:"required,max=80"`
	LastName       string     `json:"last_name" validate:"required,max=80"`
	DepartmentID   *uuid.UUID `json:"department_id,omitempty"`
	YearLevel      string     `json:"year_level" validate:"required,max=10"`
	Classification string     `json:"classification" validate:"required,oneof=new old transferee"`
	Email          *string    `json:"email,omitempty" validate:"omitempty,email"`
}

type CreateDepartmentDTO struct {
	Code string `json:"code" validate:"required,max=20"`
	Name string `json:"name" validate:"required,max=120"`
}

type CreateSchoolYearDTO struct {
	Label    string `json:"label" validate:"required,max=20"`
	IsActive bool   `json:"is_active"`
}

type CreateGrantDTO struct {
	Name                  string  `json:"name" validate:"required,max=120"`
	DefaultAmountCentavos *int64  `json:"default_amount_centavos,omitempty" validate:"omitempty,min=0"`
	Sponsor               *string `json:"sponsor,omitempty" validate:"omitempty,max=120"`
	IsActive              *bool   `json:"is_active,omitempty"`
}
