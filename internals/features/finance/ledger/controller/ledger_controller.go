// file: internals/features/finance/ledger/controller/ledger_controller.go
package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"campushub_backend/internals/features/finance/ledger/dto"
	"campushub_backend/internals/features/finance/ledger/model"
	"campushub_backend/internals/features/finance/ledger/service"
	helper "campushub_backend/internals/helpers"
	helperAuth "campushub_backend/internals/helpers/auth"
)

type LedgerHandler struct {
	DB    *gorm.DB
	Store *service.LedgerStore
}

func NewLedgerHandler(db *gorm.DB) *LedgerHandler {
	return &LedgerHandler{DB: db, Store: service.NewLedgerStore(db)}
}

var ledgerSortable = map[string]string{
	"created_at": "student_ledger_created_at",
	"updated_at": "student_ledger_updated_at",
	"status":     "student_ledger_payment_status",
	"due_date":   "student_ledger_due_date",
}

// -----------------------------------------
// List (GET /ledgers)
// Query filters (optional):
// - school_year_id, student_id, department_id, classification
// - status (unpaid|partial|paid), overdue (true|false)
// - sort_by (created_at|updated_at|status|due_date), order, page, per_page
// -----------------------------------------
func (h *LedgerHandler) List(c *fiber.Ctx) error {
	p := helper.ParseFiber(c, "created_at", "desc", helper.AdminOpts)

	q := h.DB.WithContext(c.UserContext()).Model(&model.StudentLedger{})

	if v := c.Query("school_year_id"); v != "" {
		if id, err := uuid.Parse(v); err == nil {
			q = q.Where("student_ledger_school_year_id = ?", id)
		}
	}
	if v := c.Query("student_id"); v != "" {
		if id, err := uuid.Parse(v); err == nil {
			q = q.Where("student_ledger_student_id = ?", id)
		}
	}
	// department/classification filters join the students reference table
	if v := c.Query("department_id"); v != "" {
		if id, err := uuid.Parse(v); err == nil {
			q = q.Joins("JOIN students ON students.student_id = student_ledgers.student_ledger_student_id").
				Where("students.student_department_id = ?", id)
		}
	}
	if v := c.Query("classification"); v != "" {
		q = q.Joins("JOIN students s2 ON s2.student_id = student_ledgers.student_ledger_student_id").
			Where("s2.student_classification = ?", strings.ToLower(v))
	}
	if v := c.Query("status"); v != "" {
		q = q.Where("student_ledger_payment_status = ?", strings.ToLower(v))
	}
	if v := c.Query("overdue"); v != "" {
		q = q.Where("student_ledger_is_overdue = ?", strings.EqualFold(v, "true"))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	order, err := p.SafeOrderClause(ledgerSortable, "created_at")
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	var list []model.StudentLedger
	if err := q.Order(order).Limit(p.Limit()).Offset(p.Offset()).Find(&list).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonList(c, "", dto.ToLedgerResponses(list), helper.BuildMeta(total, p))
}

// -----------------------------------------
// CreateOrGet (POST /ledgers) — idempotent
// -----------------------------------------
func (h *LedgerHandler) CreateOrGet(c *fiber.Ctx) error {
	var in dto.LedgerCreateDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := helper.ValidateStruct(c, in); err != nil {
		return err
	}

	m, err := h.Store.CreateOrGet(c.UserContext(), in.StudentID, in.SchoolYearID)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonCreated(c, "ledger ready", dto.ToLedgerResponse(*m))
}

// -----------------------------------------
// Detail (GET /ledgers/:id)
// -----------------------------------------
func (h *LedgerHandler) Detail(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	m, err := h.Store.Get(c.UserContext(), id)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonOK(c, "", dto.ToLedgerResponse(*m))
}

// -----------------------------------------
// Balance (GET /ledgers/:id/balance) — lock-free snapshot
// -----------------------------------------
func (h *LedgerHandler) Balance(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	m, err := h.Store.Get(c.UserContext(), id)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonOK(c, "", dto.ToBalanceResponse(*m))
}

// -----------------------------------------
// PostAssessment (PUT /ledgers/:id/assessment)
// -----------------------------------------
func (h *LedgerHandler) PostAssessment(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	actor, err := helperAuth.ActorID(c)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	var in dto.AssessmentDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := helper.ValidateStruct(c, in); err != nil {
		return err
	}

	m, err := h.Store.PostAssessment(c.UserContext(), id, service.FeeLineItems{
		RegistrationCentavos: in.RegistrationFeeCentavos,
		TuitionCentavos:      in.TuitionFeeCentavos,
		MiscCentavos:         in.MiscFeeCentavos,
		BooksCentavos:        in.BooksFeeCentavos,
		OtherCentavos:        in.OtherFeeCentavos,
	}, in.DueDate, actor)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonUpdated(c, "assessment posted", dto.ToLedgerResponse(*m))
}

// -----------------------------------------
// ApplyGrant (POST /ledgers/:id/grants)
// -----------------------------------------
func (h *LedgerHandler) ApplyGrant(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	actor, err := helperAuth.ActorID(c)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	var in dto.ApplyGrantDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := helper.ValidateStruct(c, in); err != nil {
		return err
	}

	m, err := h.Store.ApplyGrant(c.UserContext(), id, in.GrantID, in.AmountCentavos, actor)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonUpdated(c, "grant applied", dto.ToLedgerResponse(*m))
}

// -----------------------------------------
// RemoveGrant (DELETE /ledgers/:id/grants/:grantInstanceId)
// -----------------------------------------
func (h *LedgerHandler) RemoveGrant(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	instID, err := helper.ParseUUIDParam(c, "grantInstanceId")
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	actor, err := helperAuth.ActorID(c)
	if err != nil {
		return helper.JsonAppError(c, err)
	}

	m, err := h.Store.RemoveGrant(c.UserContext(), id, instID, actor)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonDeleted(c, "grant removed", dto.ToLedgerResponse(*m))
}

// -----------------------------------------
// AppliedGrants (GET /ledgers/:id/grants)
// -----------------------------------------
func (h *LedgerHandler) AppliedGrants(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	var list []model.StudentLedgerGrant
	if err := h.DB.WithContext(c.UserContext()).
		Where("student_ledger_grant_ledger_id = ?", id).
		Order("student_ledger_grant_created_at DESC").
		Find(&list).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}
	return helper.JsonOK(c, "", dto.ToAppliedGrantResponses(list))
}
