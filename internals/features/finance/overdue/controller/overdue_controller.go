// file: internals/features/finance/overdue/controller/overdue_controller.go
package controller

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	ledgerDTO "campushub_backend/internals/features/finance/ledger/dto"
	"campushub_backend/internals/features/finance/overdue/dto"
	"campushub_backend/internals/features/finance/overdue/model"
	"campushub_backend/internals/features/finance/overdue/service"
	helper "campushub_backend/internals/helpers"
	helperAuth "campushub_backend/internals/helpers/auth"
)

type OverdueHandler struct {
	DB      *gorm.DB
	Service *service.EscalationService
}

func NewOverdueHandler(db *gorm.DB) *OverdueHandler {
	return &OverdueHandler{DB: db, Service: service.NewEscalationService(db)}
}

// -----------------------------------------
// MarkOverdue (POST /overdue/ledgers/:id)
// -----------------------------------------
func (h *OverdueHandler) MarkOverdue(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	m, err := h.Service.MarkOverdue(c.UserContext(), id)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonUpdated(c, "ledger flagged overdue", ledgerDTO.ToLedgerResponse(*m))
}

// -----------------------------------------
// ClearOverdue (DELETE /overdue/ledgers/:id)
// -----------------------------------------
func (h *OverdueHandler) ClearOverdue(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	m, err := h.Service.ClearOverdue(c.UserContext(), id)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonUpdated(c, "overdue flag cleared", ledgerDTO.ToLedgerResponse(*m))
}

// -----------------------------------------
// BulkMark (POST /overdue/runs)
// -----------------------------------------
func (h *OverdueHandler) BulkMark(c *fiber.Ctx) error {
	actor, err := helperAuth.ActorID(c)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	var in dto.BulkMarkOverdueDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := helper.ValidateStruct(c, in); err != nil {
		return err
	}

	scope := service.BulkScope{
		SchoolYearID:   in.SchoolYearID,
		DepartmentID:   in.DepartmentID,
		Classification: in.Classification,
		YearLevels:     in.YearLevels,
	}
	if in.Cutoff != nil {
		scope.Cutoff = *in.Cutoff
	} else {
		scope.Cutoff = time.Now()
	}

	res, err := h.Service.BulkMarkOverdue(c.UserContext(), scope, actor)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonCreated(c, "escalation run completed", dto.ToEscalationRunResponse(res.Run))
}

// -----------------------------------------
// Runs (GET /overdue/runs)
// -----------------------------------------
func (h *OverdueHandler) Runs(c *fiber.Ctx) error {
	p := helper.ParseFiber(c, "created_at", "desc", helper.AdminOpts)

	q := h.DB.WithContext(c.UserContext()).Model(&model.EscalationRun{})
	if v := c.Query("school_year_id"); v != "" {
		if id, err := uuid.Parse(v); err == nil {
			q = q.Where("escalation_run_school_year_id = ?", id)
		}
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	var list []model.EscalationRun
	if err := q.Order("escalation_run_created_at DESC").
		Limit(p.Limit()).Offset(p.Offset()).
		Find(&list).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonList(c, "", dto.ToEscalationRunResponses(list), helper.BuildMeta(total, p))
}
