package repository

import (
	"context"

	"github.com/baysidepv/charter-api/internal/domain/entity"
)

// ReceiptRepository defines the interface for receipt metadata operations
type ReceiptRepository interface {
	Create(ctx context.Context, receipt *entity.Receipt) error
	GetByID(ctx context.Context, id uint) (*entity.Receipt, error)
	ListByWorkOrder(ctx context.Context, workOrderID uint) ([]entity.Receipt, error)
	Delete(ctx context.Context, id uint) error
}
