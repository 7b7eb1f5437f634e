package repository

import (
	"context"
	"errors"

	"github.com/baysidepv/charter-api/internal/domain/entity"
	domainRepo "github.com/baysidepv/charter-api/internal/domain/repository"
	"gorm.io/gorm"
)

type workOrderRepository struct {
	db *gorm.DB
}

// NewWorkOrderRepository creates a new work-order repository
func NewWorkOrderRepository(db *gorm.DB) domainRepo.WorkOrderRepository {
	return &workOrderRepository{db: db}
}

func (r *workOrderRepository) Create(ctx context.Context, order *entity.WorkOrder) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *workOrderRepository) GetByID(ctx context.Context, id uint) (*entity.WorkOrder, error) {
	var order entity.WorkOrder
	err := r.db.WithContext(ctx).First(&order, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &order, err
}

func (r *workOrderRepository) GetWithReceipts(ctx context.Context, id uint) (*entity.WorkOrder, error) {
	var order entity.WorkOrder
	err := r.db.WithContext(ctx).
		Preload("Receipts").
		First(&order, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &order, err
}

func (r *workOrderRepository) Update(ctx context.Context, order *entity.WorkOrder) error {
	return r.db.WithContext(ctx).Save(order).Error
}

// Delete removes the order permanently; receipts go with it via the cascade
// constraint on the association.
func (r *workOrderRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&entity.WorkOrder{}, "id = ?", id).Error
}

func (r *workOrderRepository) List(ctx context.Context, params *domainRepo.WorkOrderFilterParams) ([]entity.WorkOrder, int64, error) {
	var orders []entity.WorkOrder
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.WorkOrder{})

	if params.Search != "" {
		pattern := "%" + params.Search + "%"
		query = query.Where("client_name ILIKE ? OR destination ILIKE ?", pattern, pattern)
	}

	if params.StartDate != nil {
		query = query.Where("trip_date >= ?", *params.StartDate)
	}

	if params.EndDate != nil {
		query = query.Where("trip_date <= ?", *params.EndDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	// Sorting
	sortBy := params.SortBy
	switch sortBy {
	case "trip_date", "client_name", "created_at", "id":
	default:
		sortBy = "id"
	}
	sortOrder := params.SortOrder
	if sortOrder != "asc" {
		sortOrder = "desc"
	}
	query = query.Order(sortBy + " " + sortOrder)

	if params.Pagination != nil {
		params.Pagination.Validate()
		query = query.Offset(params.Pagination.Offset()).Limit(params.Pagination.PerPage)
	}

	if err := query.Find(&orders).Error; err != nil {
		return nil, 0, err
	}

	return orders, total, nil
}

func (r *workOrderRepository) ListAll(ctx context.Context) ([]entity.WorkOrder, error) {
	var orders []entity.WorkOrder
	err := r.db.WithContext(ctx).Order("id desc").Find(&orders).Error
	return orders, err
}
