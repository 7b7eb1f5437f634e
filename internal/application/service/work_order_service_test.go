package service

import (
	"context"
	"testing"
	"time"

	"github.com/baysidepv/charter-api/internal/domain/entity"
	"github.com/baysidepv/charter-api/internal/domain/enum"
	"github.com/baysidepv/charter-api/internal/domain/repository"
	"github.com/baysidepv/charter-api/pkg/apperror"
)

type stubWorkOrderRepo struct {
	createFn          func(ctx context.Context, order *entity.WorkOrder) error
	getByIDFn         func(ctx context.Context, id uint) (*entity.WorkOrder, error)
	getWithReceiptsFn func(ctx context.Context, id uint) (*entity.WorkOrder, error)
	updateFn          func(ctx context.Context, order *entity.WorkOrder) error
	deleteFn          func(ctx context.Context, id uint) error
	listFn            func(ctx context.Context, params *repository.WorkOrderFilterParams) ([]entity.WorkOrder, int64, error)
	listAllFn         func(ctx context.Context) ([]entity.WorkOrder, error)
}

func (s *stubWorkOrderRepo) Create(ctx context.Context, order *entity.WorkOrder) error {
	return s.createFn(ctx, order)
}

func (s *stubWorkOrderRepo) GetByID(ctx context.Context, id uint) (*entity.WorkOrder, error) {
	return s.getByIDFn(ctx, id)
}

func (s *stubWorkOrderRepo) GetWithReceipts(ctx context.Context, id uint) (*entity.WorkOrder, error) {
	return s.getWithReceiptsFn(ctx, id)
}

func (s *stubWorkOrderRepo) Update(ctx context.Context, order *entity.WorkOrder) error {
	return s.updateFn(ctx, order)
}

func (s *stubWorkOrderRepo) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func (s *stubWorkOrderRepo) List(ctx context.Context, params *repository.WorkOrderFilterParams) ([]entity.WorkOrder, int64, error) {
	return s.listFn(ctx, params)
}

func (s *stubWorkOrderRepo) ListAll(ctx context.Context) ([]entity.WorkOrder, error) {
	return s.listAllFn(ctx)
}

func strPtr(s string) *string   { return &s }
func f64Ptr(f float64) *float64 { return &f }

func TestCreateOrderDerivesFinancials(t *testing.T) {
	var saved *entity.WorkOrder
	repo := &stubWorkOrderRepo{
		createFn: func(ctx context.Context, order *entity.WorkOrder) error {
			order.ID = 1
			saved = order
			return nil
		},
	}
	svc := NewWorkOrderService(repo)

	order, err := svc.CreateOrder(context.Background(), &WorkOrderInput{
		ClientName:  strPtr("Reyes Family"),
		AgreedPrice: f64Ptr(500),
		Deposit:     f64Ptr(200),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if saved == nil {
		t.Fatal("order was not persisted")
	}
	if order.AgreedPrice != 50000 {
		t.Fatalf("agreed price = %d cents, want 50000", order.AgreedPrice)
	}
	if order.TotalCost != 50000 {
		t.Fatalf("total cost = %d cents, want 50000", order.TotalCost)
	}
	if order.ClientBalance != 30000 {
		t.Fatalf("client balance = %d cents, want 30000", order.ClientBalance)
	}
	if order.DueAtBoarding != 30000 {
		t.Fatalf("due at boarding = %d cents, want 30000", order.DueAtBoarding)
	}
}

func TestCreateOrderOvertimeSurcharge(t *testing.T) {
	repo := &stubWorkOrderRepo{
		createFn: func(ctx context.Context, order *entity.WorkOrder) error { return nil },
	}
	svc := NewWorkOrderService(repo)

	order, err := svc.CreateOrder(context.Background(), &WorkOrderInput{
		AgreedPrice:        f64Ptr(400),
		AgreedHours:        f64Ptr(4),
		HourlyOvertimeRate: f64Ptr(50),
		DepartureTime:      strPtr("08:00"),
		ArrivalTime:        strPtr("13:00"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.OvertimeSurcharge != 5000 {
		t.Fatalf("surcharge = %d cents, want 5000", order.OvertimeSurcharge)
	}
	if order.TotalCost != 45000 {
		t.Fatalf("total cost = %d cents, want 45000", order.TotalCost)
	}
}

func TestCreateDraftStartsEmpty(t *testing.T) {
	repo := &stubWorkOrderRepo{
		createFn: func(ctx context.Context, order *entity.WorkOrder) error {
			order.ID = 9
			return nil
		},
	}
	svc := NewWorkOrderService(repo)

	order, err := svc.CreateDraft(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.ID != 9 {
		t.Fatalf("order ID = %d, want 9", order.ID)
	}
	if order.TotalCost != 0 || order.ClientBalance != 0 {
		t.Fatal("draft order should have zero derived figures")
	}
}

func TestUpdateOrderCaptainFieldFiltering(t *testing.T) {
	stored := &entity.WorkOrder{
		ID:          4,
		ClientName:  "Moreno Charter",
		AgreedPrice: 50000,
		Deposit:     20000,
	}
	repo := &stubWorkOrderRepo{
		getByIDFn: func(ctx context.Context, id uint) (*entity.WorkOrder, error) {
			return stored, nil
		},
		updateFn: func(ctx context.Context, order *entity.WorkOrder) error {
			stored = order
			return nil
		},
		getWithReceiptsFn: func(ctx context.Context, id uint) (*entity.WorkOrder, error) {
			return stored, nil
		},
	}
	svc := NewWorkOrderService(repo)

	order, err := svc.UpdateOrder(context.Background(), 4, enum.RoleCaptain, &WorkOrderInput{
		AgreedPrice: f64Ptr(9999),
		ClientName:  strPtr("Hijacked"),
		Fuel:        f64Ptr(80),
		Notes:       strPtr("two stops, rough chop"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Captain-editable fields land, agreement fields are dropped silently.
	if order.AgreedPrice != 50000 {
		t.Fatalf("captain changed agreed price to %d cents", order.AgreedPrice)
	}
	if order.ClientName != "Moreno Charter" {
		t.Fatalf("captain changed client name to %q", order.ClientName)
	}
	if order.Fuel != 8000 {
		t.Fatalf("fuel = %d cents, want 8000", order.Fuel)
	}
	if order.Notes != "two stops, rough chop" {
		t.Fatalf("notes = %q", order.Notes)
	}
}

func TestUpdateOrderCaptainArrivalTriggersOvertime(t *testing.T) {
	stored := &entity.WorkOrder{
		ID:                 5,
		AgreedPrice:        40000,
		AgreedHours:        4,
		HourlyOvertimeRate: 5000,
		DepartureTime:      "08:00",
	}
	repo := &stubWorkOrderRepo{
		getByIDFn: func(ctx context.Context, id uint) (*entity.WorkOrder, error) {
			return stored, nil
		},
		updateFn: func(ctx context.Context, order *entity.WorkOrder) error {
			stored = order
			return nil
		},
		getWithReceiptsFn: func(ctx context.Context, id uint) (*entity.WorkOrder, error) {
			return stored, nil
		},
	}
	svc := NewWorkOrderService(repo)

	order, err := svc.UpdateOrder(context.Background(), 5, enum.RoleCaptain, &WorkOrderInput{
		ArrivalTime: strPtr("13:30"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.OvertimeSurcharge != 7500 {
		t.Fatalf("surcharge = %d cents, want 7500", order.OvertimeSurcharge)
	}
}

func TestUpdateOrderClearsTripDate(t *testing.T) {
	date := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	stored := &entity.WorkOrder{ID: 6, TripDate: &date}
	repo := &stubWorkOrderRepo{
		getByIDFn: func(ctx context.Context, id uint) (*entity.WorkOrder, error) {
			return stored, nil
		},
		updateFn: func(ctx context.Context, order *entity.WorkOrder) error {
			stored = order
			return nil
		},
		getWithReceiptsFn: func(ctx context.Context, id uint) (*entity.WorkOrder, error) {
			return stored, nil
		},
	}
	svc := NewWorkOrderService(repo)

	order, err := svc.UpdateOrder(context.Background(), 6, enum.RoleAdmin, &WorkOrderInput{
		TripDate: strPtr(""),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.TripDate != nil {
		t.Fatalf("trip date should be cleared, got %v", order.TripDate)
	}

	// And an absent pointer leaves an existing date alone.
	date2 := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	stored.TripDate = &date2
	order, err = svc.UpdateOrder(context.Background(), 6, enum.RoleAdmin, &WorkOrderInput{
		Notes: strPtr("unchanged date"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if order.TripDate == nil || !order.TripDate.Equal(date2) {
		t.Fatalf("trip date changed unexpectedly: %v", order.TripDate)
	}
}

func TestUpdateOrderRejectsMalformedTripDate(t *testing.T) {
	repo := &stubWorkOrderRepo{
		getByIDFn: func(ctx context.Context, id uint) (*entity.WorkOrder, error) {
			return &entity.WorkOrder{ID: 7}, nil
		},
	}
	svc := NewWorkOrderService(repo)

	_, err := svc.UpdateOrder(context.Background(), 7, enum.RoleAdmin, &WorkOrderInput{
		TripDate: strPtr("14/03/2026"),
	})
	if err == nil {
		t.Fatal("expected an error for a malformed trip date")
	}
	appErr := apperror.GetAppError(err)
	if appErr.Code != 400 {
		t.Fatalf("error code = %d, want 400", appErr.Code)
	}
}

func TestUpdateOrderNotFound(t *testing.T) {
	repo := &stubWorkOrderRepo{
		getByIDFn: func(ctx context.Context, id uint) (*entity.WorkOrder, error) {
			return nil, nil
		},
	}
	svc := NewWorkOrderService(repo)

	_, err := svc.UpdateOrder(context.Background(), 99, enum.RoleAdmin, &WorkOrderInput{})
	if err == nil {
		t.Fatal("expected not found error")
	}
	if apperror.GetAppError(err).Code != 404 {
		t.Fatalf("error code = %d, want 404", apperror.GetAppError(err).Code)
	}
}

func TestDeleteOrderNotFound(t *testing.T) {
	repo := &stubWorkOrderRepo{
		getByIDFn: func(ctx context.Context, id uint) (*entity.WorkOrder, error) {
			return nil, nil
		},
	}
	svc := NewWorkOrderService(repo)

	if err := svc.DeleteOrder(context.Background(), 123); err == nil {
		t.Fatal("expected not found error")
	}
}

func TestListOrdersDefaultsPagination(t *testing.T) {
	var gotParams *repository.WorkOrderFilterParams
	repo := &stubWorkOrderRepo{
		listFn: func(ctx context.Context, params *repository.WorkOrderFilterParams) ([]entity.WorkOrder, int64, error) {
			gotParams = params
			return []entity.WorkOrder{{ID: 1}, {ID: 2}}, 2, nil
		},
	}
	svc := NewWorkOrderService(repo)

	result, err := svc.ListOrders(context.Background(), &repository.WorkOrderFilterParams{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotParams.Pagination == nil {
		t.Fatal("pagination defaults were not applied")
	}
	if len(result.Items) != 2 || result.Pagination.Total != 2 {
		t.Fatalf("unexpected result: %d items, total %d", len(result.Items), result.Pagination.Total)
	}
}
