// file: internals/features/approvals/exams/controller/exam_controller.go
package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"campushub_backend/internals/features/approvals/exams/dto"
	"campushub_backend/internals/features/approvals/exams/model"
	"campushub_backend/internals/features/approvals/exams/service"
	helper "campushub_backend/internals/helpers"
	helperAuth "campushub_backend/internals/helpers/auth"
)

type ExamHandler struct {
	DB      *gorm.DB
	Service *service.PermitService
}

func NewExamHandler(db *gorm.DB) *ExamHandler {
	return &ExamHandler{DB: db, Service: service.NewPermitService(db)}
}

// -----------------------------------------
// List (GET /exam-permits)
// Filters: ledger_id, term, status
// -----------------------------------------
func (h *ExamHandler) List(c *fiber.Ctx) error {
	p := helper.ParseFiber(c, "created_at", "desc", helper.AdminOpts)

	q := h.DB.WithContext(c.UserContext()).Model(&model.ExamPermit{})

	if v := c.Query("ledger_id"); v != "" {
		if id, err := uuid.Parse(v); err == nil {
			q = q.Where("exam_permit_ledger_id = ?", id)
		}
	}
	if v := c.Query("term"); v != "" {
		q = q.Where("exam_permit_term = ?", strings.ToLower(v))
	}
	if v := c.Query("status"); v != "" {
		q = q.Where("exam_permit_status = ?", strings.ToLower(v))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	var list []model.ExamPermit
	if err := q.Order("exam_permit_created_at DESC").
		Limit(p.Limit()).Offset(p.Offset()).
		Find(&list).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonList(c, "", dto.ToPermitResponses(list), helper.BuildMeta(total, p))
}

// -----------------------------------------
// Detail (GET /exam-permits/:id)
// -----------------------------------------
func (h *ExamHandler) Detail(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	m, err := h.Service.Get(c.UserContext(), id)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonOK(c, "", dto.ToPermitResponse(*m))
}

// -----------------------------------------
// Create (POST /exam-permits)
// -----------------------------------------
func (h *ExamHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePermitDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := helper.ValidateStruct(c, in); err != nil {
		return err
	}

	m, err := h.Service.Create(c.UserContext(), in.LedgerID, model.ExamTerm(in.Term), in.RequiredCentavos, strings.TrimSpace(in.Remarks))
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonCreated(c, "permit filed", dto.ToPermitResponse(*m))
}

// -----------------------------------------
// Approve (POST /exam-permits/:id/approve)
// -----------------------------------------
func (h *ExamHandler) Approve(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	actor, err := helperAuth.ActorID(c)
	if err != nil {
		return helper.JsonAppError(c, err)
	}

	m, err := h.Service.Approve(c.UserContext(), id, actor)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonUpdated(c, "permit approved", dto.ToPermitResponse(*m))
}

// -----------------------------------------
// Deny (POST /exam-permits/:id/deny)
// -----------------------------------------
func (h *ExamHandler) Deny(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	actor, err := helperAuth.ActorID(c)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	var in dto.DenyPermitDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := helper.ValidateStruct(c, in); err != nil {
		return err
	}

	m, err := h.Service.Deny(c.UserContext(), id, in.Remarks, actor)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonUpdated(c, "permit denied", dto.ToPermitResponse(*m))
}

// -----------------------------------------
// BulkApprove (POST /exam-permits/bulk-approve)
// Always 200; the body carries per-permit outcomes.
// -----------------------------------------
func (h *ExamHandler) BulkApprove(c *fiber.Ctx) error {
	actor, err := helperAuth.ActorID(c)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	var in dto.BulkApproveDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := helper.ValidateStruct(c, in); err != nil {
		return err
	}

	results := h.Service.BulkApprove(c.UserContext(), in.PermitIDs, actor)
	return helper.JsonOK(c, "bulk approval completed", results)
}
