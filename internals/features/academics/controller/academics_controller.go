// file: internals/features/academics/controller/academics_controller.go
package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"campushub_backend/internals/features/academics/dto"
	"campushub_backend/internals/features/academics/model"
	helper "campushub_backend/internals/helpers"
)

type AcademicsHandler struct {
	DB *gorm.DB
}

func NewAcademicsHandler(db *gorm.DB) *AcademicsHandler {
	return &AcademicsHandler{DB: db}
}

/* =========================================================
   Students
========================================================= */

func (h *AcademicsHandler) ListStudents(c *fiber.Ctx) error {
	p := helper.ParseFiber(c, "created_at", "desc", helper.AdminOpts)

	q := h.DB.WithContext(c.UserContext()).Model(&model.Student{})
	if v := c.Query("department_id"); v != "" {
		if id, err := uuid.Parse(v); err == nil {
			q = q.Where("student_department_id = ?", id)
		}
	}
	if v := c.Query("year_level"); v != "" {
		q = q.Where("student_year_level = ?", v)
	}
	if v := c.Query("classification"); v != "" {
		q = q.Where("student_classification = ?", strings.ToLower(v))
	}
	if v := c.Query("q"); v != "" {
		like := "%" + strings.ToLower(v) + "%"
		q = q.Where("LOWER(student_last_name) LIKE ? OR LOWER(student_first_name) LIKE ? OR LOWER(student_number) LIKE ?", like, like, like)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	var list []model.Student
	if err := q.Order("student_created_at DESC").
		Limit(p.Limit()).Offset(p.Offset()).
		Find(&list).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonList(c, "", list, helper.BuildMeta(total, p))
}

func (h *AcademicsHandler) GetStudent(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	var m model.Student
	if err := h.DB.WithContext(c.UserContext()).
		First(&m, "student_id = ?", id).Error; err != nil {
		return helper.JsonError(c, fiber.StatusNotFound, "student not found")
	}
	return helper.JsonOK(c, "", m)
}

func (h *AcademicsHandler) CreateStudent(c *fiber.Ctx) error {
	var in dto.CreateStudentDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := helper.ValidateStruct(c, in); err != nil {
		return err
	}

	m := model.Student{
		StudentNumber:         in.StudentNumber,
		StudentFirstName:      in.FirstName,
		StudentLastName:       in.LastName,
		StudentDepartmentID:   in.DepartmentID,
		StudentYearLevel:      in.YearLevel,
		StudentClassification: model.StudentClassification(in.Classification),
		StudentEmail:          in.Email,
	}
	if err := h.DB.WithContext(c.UserContext()).Create(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusConflict, "student number already exists")
	}
	return helper.JsonCreated(c, "student created", m)
}

/* =========================================================
   Departments
========================================================= */

func (h *AcademicsHandler) ListDepartments(c *fiber.Ctx) error {
	var list []model.Department
	if err := h.DB.WithContext(c.UserContext()).
		Order("department_code ASC").
		Find(&list).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "", list)
}

func (h *AcademicsHandler) CreateDepartment(c *fiber.Ctx) error {
	var in dto.CreateDepartmentDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := helper.ValidateStruct(c, in); err != nil {
		return err
	}

	m := model.Department{
		DepartmentCode: strings.ToUpper(in.Code),
		DepartmentName: in.Name,
	}
	if err := h.DB.WithContext(c.UserContext()).Create(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusConflict, "department code already exists")
	}
	return helper.JsonCreated(c, "department created", m)
}

/* =========================================================
   School years
========================================================= */

func (h *AcademicsHandler) ListSchoolYears(c *fiber.Ctx) error {
	var list []model.SchoolYear
	if err := h.DB.WithContext(c.UserContext()).
		Order("school_year_label DESC").
		Find(&list).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "", list)
}

func (h *AcademicsHandler) CreateSchoolYear(c *fiber.Ctx) error {
	var in dto.CreateSchoolYearDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := helper.ValidateStruct(c, in); err != nil {
		return err
	}

	m := model.SchoolYear{
		SchoolYearLabel:    in.Label,
		SchoolYearIsActive: in.IsActive,
	}
	if err := h.DB.WithContext(c.UserContext()).Create(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusConflict, "school year label already exists")
	}
	return helper.JsonCreated(c, "school year created", m)
}

/* =========================================================
   Grants
========================================================= */

func (h *AcademicsHandler) ListGrants(c *fiber.Ctx) error {
	q := h.DB.WithContext(c.UserContext()).Model(&model.GrantDefinition{})
	if v := c.Query("active"); v != "" {
		q = q.Where("grant_is_active = ?", strings.EqualFold(v, "true"))
	}

	var list []model.GrantDefinition
	if err := q.Order("grant_name ASC").Find(&list).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "", list)
}

func (h *AcademicsHandler) CreateGrant(c *fiber.Ctx) error {
	var in dto.CreateGrantDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := helper.ValidateStruct(c, in); err != nil {
		return err
	}

	m := model.GrantDefinition{
		GrantName:                  in.Name,
		GrantDefaultAmountCentavos: in.DefaultAmountCentavos,
		GrantSponsor:               in.Sponsor,
		GrantIsActive:              true,
	}
	if in.IsActive != nil {
		m.GrantIsActive = *in.IsActive
	}
	if err := h.DB.WithContext(c.UserContext()).Create(&m).Error; err != nil {
		return helper.JsonError(c, fiber.StatusConflict, "grant name already exists")
	}
	return helper.JsonCreated(c, "grant created", m)
}
