package service

import (
	"context"
	"fmt"

	"github.com/baysidepv/charter-api/internal/domain/entity"
	"github.com/baysidepv/charter-api/internal/domain/enum"
	"github.com/baysidepv/charter-api/internal/domain/repository"
	"github.com/baysidepv/charter-api/internal/infrastructure/storage"
	"github.com/baysidepv/charter-api/pkg/apperror"
)

// ReceiptService handles receipt uploads and listing
type ReceiptService struct {
	receiptRepo repository.ReceiptRepository
	orderRepo   repository.WorkOrderRepository
	store       storage.ObjectStorage
	maxSize     int64
}

// NewReceiptService creates a new receipt service
func NewReceiptService(
	receiptRepo repository.ReceiptRepository,
	orderRepo repository.WorkOrderRepository,
	store storage.ObjectStorage,
	maxSize int64,
) *ReceiptService {
	return &ReceiptService{
		receiptRepo: receiptRepo,
		orderRepo:   orderRepo,
		store:       store,
		maxSize:     maxSize,
	}
}

// UploadInput carries one receipt file headed for storage.
type UploadInput struct {
	WorkOrderID uint
	Category    string
	FileName    string
	ContentType string
	Data        []byte
}

// Upload validates the file, stores it in the bucket, and records the receipt
// row against its work order. Unknown categories fall back to "general".
func (s *ReceiptService) Upload(ctx context.Context, input *UploadInput) (*entity.Receipt, error) {
	if len(input.Data) == 0 {
		return nil, apperror.NewBadRequestError("No file provided")
	}
	if int64(len(input.Data)) > s.maxSize {
		return nil, apperror.NewBadRequestError(
			fmt.Sprintf("File too large, maximum is %d MB", s.maxSize/(1024*1024)))
	}
	if !storage.IsAllowedImageType(input.ContentType) {
		return nil, apperror.NewBadRequestError(
			fmt.Sprintf("File type %s not allowed. Only images (JPEG, PNG, GIF, WebP) are supported", input.ContentType))
	}

	order, err := s.orderRepo.GetByID(ctx, input.WorkOrderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Work order")
	}

	category := enum.ExpenseCategory(input.Category)
	if !category.IsValid() {
		category = enum.ExpenseCategoryGeneral
	}

	key := storage.ObjectKey(input.WorkOrderID, category.String(), input.FileName, input.ContentType)
	url, err := s.store.Store(ctx, input.Data, input.ContentType, key)
	if err != nil {
		return nil, err
	}

	receipt := &entity.Receipt{
		WorkOrderID: input.WorkOrderID,
		URL:         url,
		Category:    category,
		FileName:    input.FileName,
		FileSize:    int64(len(input.Data)),
		MimeType:    input.ContentType,
	}
	if err := s.receiptRepo.Create(ctx, receipt); err != nil {
		return nil, err
	}
	return receipt, nil
}

// ListByOrder returns all receipts attached to a work order
func (s *ReceiptService) ListByOrder(ctx context.Context, workOrderID uint) ([]entity.Receipt, error) {
	order, err := s.orderRepo.GetByID(ctx, workOrderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Work order")
	}
	return s.receiptRepo.ListByWorkOrder(ctx, workOrderID)
}

// DeleteReceipt removes a receipt row. The stored object is left in the
// bucket; R2 lifecycle rules handle orphan cleanup.
func (s *ReceiptService) DeleteReceipt(ctx context.Context, id uint) error {
	receipt, err := s.receiptRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if receipt == nil {
		return apperror.NewNotFoundError("Receipt")
	}
	return s.receiptRepo.Delete(ctx, id)
}
