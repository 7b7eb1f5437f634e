package handler

import (
	"io"
	"net/http"
	"strconv"

	"github.com/baysidepv/charter-api/internal/application/service"
	"github.com/baysidepv/charter-api/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
)

// ReceiptHandler handles receipt upload and listing endpoints
type ReceiptHandler struct {
	receiptService *service.ReceiptService
	maxUploadSize  int64
}

// NewReceiptHandler creates a new receipt handler
func NewReceiptHandler(receiptService *service.ReceiptService, maxUploadSize int64) *ReceiptHandler {
	return &ReceiptHandler{
		receiptService: receiptService,
		maxUploadSize:  maxUploadSize,
	}
}

// Upload handles POST /work-orders/:id/receipts. The multipart form carries
// the image under "file" and an optional expense "category".
func (h *ReceiptHandler) Upload(c *gin.Context) {
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "Invalid work order ID")
		return
	}

	// Cap the request body before parsing so oversized uploads die early.
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadSize)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.BadRequest(c, "No file provided")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.BadRequest(c, "Could not read uploaded file")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		response.BadRequest(c, "Could not read uploaded file")
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	category := c.PostForm("category")

	receipt, err := h.receiptService.Upload(c.Request.Context(), &service.UploadInput{
		WorkOrderID: uint(orderID),
		Category:    category,
		FileName:    fileHeader.Filename,
		ContentType: contentType,
		Data:        data,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, "Receipt uploaded", receipt)
}

// List handles GET /work-orders/:id/receipts
func (h *ReceiptHandler) List(c *gin.Context) {
	orderID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "Invalid work order ID")
		return
	}

	receipts, err := h.receiptService.ListByOrder(c.Request.Context(), uint(orderID))
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Receipts retrieved", receipts)
}

// Delete handles DELETE /receipts/:receipt_id
func (h *ReceiptHandler) Delete(c *gin.Context) {
	receiptID, err := strconv.ParseUint(c.Param("receipt_id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "Invalid receipt ID")
		return
	}

	if err := h.receiptService.DeleteReceipt(c.Request.Context(), uint(receiptID)); err != nil {
		response.Error(c, err)
		return
	}

	response.NoContent(c)
}
