package repository

import (
	"context"
	"time"

	"github.com/baysidepv/charter-api/internal/domain/entity"
	"github.com/baysidepv/charter-api/pkg/pagination"
)

// WorkOrderRepository defines the interface for work-order data operations
type WorkOrderRepository interface {
	Create(ctx context.Context, order *entity.WorkOrder) error
	GetByID(ctx context.Context, id uint) (*entity.WorkOrder, error)
	GetWithReceipts(ctx context.Context, id uint) (*entity.WorkOrder, error)
	Update(ctx context.Context, order *entity.WorkOrder) error
	Delete(ctx context.Context, id uint) error
	List(ctx context.Context, params *WorkOrderFilterParams) ([]entity.WorkOrder, int64, error)
	ListAll(ctx context.Context) ([]entity.WorkOrder, error)
}

// WorkOrderFilterParams contains filtering parameters for work-order queries
type WorkOrderFilterParams struct {
	Pagination *pagination.PaginationParams
	Search     string // matches client name or destination
	StartDate  *time.Time
	EndDate    *time.Time
	SortBy     string
	SortOrder  string
}
