package handler

import (
	"fmt"
	"strconv"
	"time"

	"github.com/baysidepv/charter-api/internal/application/service"
	"github.com/baysidepv/charter-api/internal/domain/repository"
	"github.com/baysidepv/charter-api/internal/presentation/http/dto/request"
	"github.com/baysidepv/charter-api/internal/presentation/http/dto/response"
	"github.com/baysidepv/charter-api/pkg/pagination"
	"github.com/gin-gonic/gin"
)

// WorkOrderHandler handles work-order endpoints
type WorkOrderHandler struct {
	orderService  *service.WorkOrderService
	exportService *service.ExportService
}

// NewWorkOrderHandler creates a new work-order handler
func NewWorkOrderHandler(orderService *service.WorkOrderService, exportService *service.ExportService) *WorkOrderHandler {
	return &WorkOrderHandler{
		orderService:  orderService,
		exportService: exportService,
	}
}

func parseOrderID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "Invalid work order ID")
		return 0, false
	}
	return uint(id), true
}

// Create handles POST /work-orders
func (h *WorkOrderHandler) Create(c *gin.Context) {
	var req request.WorkOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request payload")
		return
	}

	order, err := h.orderService.CreateOrder(c.Request.Context(), req.ToInput())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Work order created", order)
}

// CreateDraft handles POST /work-orders/draft
func (h *WorkOrderHandler) CreateDraft(c *gin.Context) {
	order, err := h.orderService.CreateDraft(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Draft work order created", order)
}

// List handles GET /work-orders
func (h *WorkOrderHandler) List(c *gin.Context) {
	var query request.ListWorkOrdersQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		response.BadRequest(c, "Invalid query parameters")
		return
	}

	params := &repository.WorkOrderFilterParams{
		Pagination: &pagination.PaginationParams{Page: query.Page, PerPage: query.PerPage},
		Search:     query.Search,
		SortBy:     query.SortBy,
		SortOrder:  query.SortOrder,
	}
	if query.StartDate != "" {
		start, err := time.Parse("2006-01-02", query.StartDate)
		if err != nil {
			response.BadRequest(c, "Invalid start_date, expected YYYY-MM-DD")
			return
		}
		params.StartDate = &start
	}
	if query.EndDate != "" {
		end, err := time.Parse("2006-01-02", query.EndDate)
		if err != nil {
			response.BadRequest(c, "Invalid end_date, expected YYYY-MM-DD")
			return
		}
		params.EndDate = &end
	}

	result, err := h.orderService.ListOrders(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.SuccessWithPagination(c, 200, "Work orders retrieved", result)
}

// Get handles GET /work-orders/:id
func (h *WorkOrderHandler) Get(c *gin.Context) {
	id, ok := parseOrderID(c)
	if !ok {
		return
	}

	order, err := h.orderService.GetOrder(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Work order retrieved", order)
}

// Update handles PUT /work-orders/:id. Captains and admins share the endpoint;
// the service drops fields the caller's role may not edit.
func (h *WorkOrderHandler) Update(c *gin.Context) {
	id, ok := parseOrderID(c)
	if !ok {
		return
	}

	var req request.WorkOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request payload")
		return
	}

	order, err := h.orderService.UpdateOrder(c.Request.Context(), id, GetUserRole(c), req.ToInput())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Work order updated", order)
}

// Delete handles DELETE /work-orders/:id
func (h *WorkOrderHandler) Delete(c *gin.Context) {
	id, ok := parseOrderID(c)
	if !ok {
		return
	}

	if err := h.orderService.DeleteOrder(c.Request.Context(), id); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}

// Export handles GET /work-orders/export, returning the order book as XLSX.
func (h *WorkOrderHandler) Export(c *gin.Context) {
	data, err := h.exportService.ExportOrdersXLSX(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	filename := fmt.Sprintf("work-orders-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(200, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

// QRCode handles GET /work-orders/:id/qr, returning a PNG QR code pointing at
// the order's share link.
func (h *WorkOrderHandler) QRCode(c *gin.Context) {
	id, ok := parseOrderID(c)
	if !ok {
		return
	}

	size, _ := strconv.Atoi(c.DefaultQuery("size", "256"))
	png, err := h.exportService.OrderShareQR(c.Request.Context(), id, size)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.Data(200, "image/png", png)
}
