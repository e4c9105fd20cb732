package handlers

import (
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"libris/internal/response"
	"libris/internal/services"
)

// AdminBorrowHandler handles the admin borrow-record endpoints.
type AdminBorrowHandler struct {
	borrowService *services.BorrowService
	validate      *validator.Validate
}

// NewAdminBorrowHandler creates a new AdminBorrowHandler.
func NewAdminBorrowHandler(borrowService *services.BorrowService) *AdminBorrowHandler {
	return &AdminBorrowHandler{
		borrowService: borrowService,
		validate:      validator.New(),
	}
}

// RegisterRoutes registers the /admin/borrow routes behind the admin
// guard.
func (h *AdminBorrowHandler) RegisterRoutes(router fiber.Router, authRequired, adminRequired fiber.Handler) {
	borrowRoutes := router.Group("/admin/borrow", authRequired, adminRequired)
	borrowRoutes.Post("/return/confirm", h.HandleConfirmReturn)
	borrowRoutes.Get("/", h.HandleList)
	borrowRoutes.Get("/count", h.HandleCount)
	borrowRoutes.Get("/overdue-rate", h.HandleOverdueRate)
	borrowRoutes.Get("/returned-rate", h.HandleReturnedRate)
}

// ReturnRequest represents the request body for a return confirmation.
type ReturnRequest struct {
	RecordID string `json:"record_id" validate:"required"`
}

// HandleConfirmReturn marks a borrow record as returned.
func (h *AdminBorrowHandler) HandleConfirmReturn(c *fiber.Ctx) error {
	var req ReturnRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing return request body: %v", err)
		return invalidBody(c)
	}
	if err := h.validate.Struct(req); err != nil {
		return validationFailed(c, err)
	}

	record, err := h.borrowService.ConfirmReturn(req.RecordID)
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, record.Summary())
}

// HandleList returns a page of borrow records. currentPage and
// pageSize are required on this endpoint.
func (h *AdminBorrowHandler) HandleList(c *fiber.Ctx) error {
	page, pageSize, err := parsePagination(c, true)
	if err != nil {
		return response.Error(c, err)
	}

	records, total, err := h.borrowService.ListRecords(page, pageSize, c.Query("bookTitle"), c.Query("status"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, response.NewPage(page, pageSize, total, records))
}

// HandleCount returns the total number of borrow records.
func (h *AdminBorrowHandler) HandleCount(c *fiber.Ctx) error {
	count, err := h.borrowService.CountAll()
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, count)
}

// HandleOverdueRate returns the share of overdue records.
func (h *AdminBorrowHandler) HandleOverdueRate(c *fiber.Ctx) error {
	rate, err := h.borrowService.OverdueRate()
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, rate)
}

// HandleReturnedRate returns the share of returned records.
func (h *AdminBorrowHandler) HandleReturnedRate(c *fiber.Ctx) error {
	rate, err := h.borrowService.ReturnedRate()
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, rate)
}
