// file: internals/features/approvals/documents/controller/document_controller.go
package controller

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"campushub_backend/internals/features/approvals/documents/dto"
	"campushub_backend/internals/features/approvals/documents/model"
	"campushub_backend/internals/features/approvals/documents/service"
	helper "campushub_backend/internals/helpers"
	helperAuth "campushub_backend/internals/helpers/auth"
	"campushub_backend/internals/helpers/storage"
)

type DocumentHandler struct {
	DB       *gorm.DB
	Pipeline *service.RequestPipeline
}

func NewDocumentHandler(db *gorm.DB, receipts storage.ReceiptChecker) *DocumentHandler {
	return &DocumentHandler{DB: db, Pipeline: service.NewRequestPipeline(db, receipts)}
}

// -----------------------------------------
// List (GET /document-requests)
// Filters: student_id, type, registrar_status, accounting_status
// -----------------------------------------
func (h *DocumentHandler) List(c *fiber.Ctx) error {
	p := helper.ParseFiber(c, "created_at", "desc", helper.AdminOpts)

	q := h.DB.WithContext(c.UserContext()).Model(&model.DocumentRequest{})

	if v := c.Query("student_id"); v != "" {
		if id, err := uuid.Parse(v); err == nil {
			q = q.Where("document_request_student_id = ?", id)
		}
	}
	if v := c.Query("type"); v != "" {
		q = q.Where("document_request_type = ?", strings.ToLower(v))
	}
	if v := c.Query("registrar_status"); v != "" {
		q = q.Where("document_request_registrar_status = ?", strings.ToLower(v))
	}
	if v := c.Query("accounting_status"); v != "" {
		q = q.Where("document_request_accounting_status = ?", strings.ToLower(v))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	var list []model.DocumentRequest
	if err := q.Order("document_request_created_at DESC").
		Limit(p.Limit()).Offset(p.Offset()).
		Find(&list).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, err.Error())
	}

	return helper.JsonList(c, "", dto.ToRequestResponses(list), helper.BuildMeta(total, p))
}

// -----------------------------------------
// Detail (GET /document-requests/:id)
// -----------------------------------------
func (h *DocumentHandler) Detail(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	m, err := h.Pipeline.Get(c.UserContext(), id)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonOK(c, "", dto.ToRequestResponse(*m))
}

// -----------------------------------------
// Create (POST /document-requests)
// -----------------------------------------
func (h *DocumentHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateRequestDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := helper.ValidateStruct(c, in); err != nil {
		return err
	}

	m, err := h.Pipeline.Create(c.UserContext(), service.CreateRequestInput{
		StudentID:   in.StudentID,
		Type:        model.DocumentType(in.Type),
		Copies:      in.Copies,
		Processing:  model.ProcessingSpeed(in.Processing),
		Purpose:     in.Purpose,
		ReceiptPath: in.ReceiptPath,
	})
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonCreated(c, "document request created", dto.ToRequestResponse(*m))
}

// -----------------------------------------
// QuoteFee (POST /document-requests/quote)
// Computes the fee without creating anything.
// -----------------------------------------
func (h *DocumentHandler) QuoteFee(c *fiber.Ctx) error {
	var in dto.QuoteFeeDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := helper.ValidateStruct(c, in); err != nil {
		return err
	}

	fee, ok := model.ComputeFee(model.DocumentType(in.Type), in.Copies, model.ProcessingSpeed(in.Processing))
	if !ok {
		return helper.JsonError(c, fiber.StatusUnprocessableEntity, "unknown document type or invalid copy count")
	}
	return helper.JsonOK(c, "", dto.FeeQuoteResponse{
		Type:        in.Type,
		Copies:      in.Copies,
		Processing:  in.Processing,
		FeeCentavos: fee,
	})
}

// -----------------------------------------
// AttachReceipt (PUT /document-requests/:id/receipt)
// -----------------------------------------
func (h *DocumentHandler) AttachReceipt(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	var in dto.AttachReceiptDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := helper.ValidateStruct(c, in); err != nil {
		return err
	}

	m, err := h.Pipeline.AttachReceipt(c.UserContext(), id, in.ReceiptPath)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonUpdated(c, "receipt attached", dto.ToRequestResponse(*m))
}

// -----------------------------------------
// RegistrarDecide (POST /document-requests/:id/registrar)
// -----------------------------------------
func (h *DocumentHandler) RegistrarDecide(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	actor, err := helperAuth.ActorID(c)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	var in dto.StageDecisionDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := helper.ValidateStruct(c, in); err != nil {
		return err
	}

	m, err := h.Pipeline.RegistrarDecide(c.UserContext(), id, in.Approve, in.Remarks, actor)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonUpdated(c, "registrar decision recorded", dto.ToRequestResponse(*m))
}

// -----------------------------------------
// AccountingDecide (POST /document-requests/:id/accounting)
// -----------------------------------------
func (h *DocumentHandler) AccountingDecide(c *fiber.Ctx) error {
	id, err := helper.ParseUUIDParam(c, "id")
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	actor, err := helperAuth.ActorID(c)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	var in dto.StageDecisionDTO
	if err := c.BodyParser(&in); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "invalid json")
	}
	if err := helper.ValidateStruct(c, in); err != nil {
		return err
	}

	m, err := h.Pipeline.AccountingDecide(c.UserContext(), id, in.Approve, in.Remarks, actor)
	if err != nil {
		return helper.JsonAppError(c, err)
	}
	return helper.JsonUpdated(c, "accounting decision recorded", dto.ToRequestResponse(*m))
}
