package service

import (
	"context"
	"math"
	"time"

	"github.com/baysidepv/charter-api/internal/domain/access"
	"github.com/baysidepv/charter-api/internal/domain/entity"
	"github.com/baysidepv/charter-api/internal/domain/enum"
	"github.com/baysidepv/charter-api/internal/domain/finance"
	"github.com/baysidepv/charter-api/internal/domain/repository"
	"github.com/baysidepv/charter-api/pkg/apperror"
	"github.com/baysidepv/charter-api/pkg/pagination"
)

// WorkOrderService handles work-order operations
type WorkOrderService struct {
	orderRepo repository.WorkOrderRepository
}

// NewWorkOrderService creates a new work-order service
func NewWorkOrderService(orderRepo repository.WorkOrderRepository) *WorkOrderService {
	return &WorkOrderService{orderRepo: orderRepo}
}

// WorkOrderInput carries the client-supplied fields of a create or update.
// A nil pointer means "leave unchanged"; money values are decimal amounts.
// TripDate is a "YYYY-MM-DD" string where the empty string clears the date.
type WorkOrderInput struct {
	ClientName         *string
	ClientPhone        *string
	TripDate           *string
	DepartureTime      *string
	ArrivalTime        *string
	Destination        *string
	MeetingPoint       *string
	Passengers         *int
	Notes              *string
	AgreedPrice        *float64
	AgreedHours        *float64
	HourlyOvertimeRate *float64
	Deposit            *float64
	ReceiptAlreadyPaid *bool
	Fuel               *float64
	Ice                *float64
	Beverages          *float64
	Misc               *float64
	CaptainPay         *float64
	MatePay            *float64
}

// CreateOrder creates a fully specified work order. Only admins create orders,
// so every field in the input is applied.
func (s *WorkOrderService) CreateOrder(ctx context.Context, input *WorkOrderInput) (*entity.WorkOrder, error) {
	order := &entity.WorkOrder{}
	if err := applyInput(order, input, access.ModeAdminCreate); err != nil {
		return nil, err
	}
	recompute(order)

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// CreateDraft creates an empty order so receipts can attach to it before the
// office fills in the agreement.
func (s *WorkOrderService) CreateDraft(ctx context.Context) (*entity.WorkOrder, error) {
	order := &entity.WorkOrder{}
	recompute(order)

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// GetOrder retrieves a work order with its receipts
func (s *WorkOrderService) GetOrder(ctx context.Context, id uint) (*entity.WorkOrder, error) {
	order, err := s.orderRepo.GetWithReceipts(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Work order")
	}
	return order, nil
}

// ListOrders lists work orders with filtering and pagination
func (s *WorkOrderService) ListOrders(ctx context.Context, params *repository.WorkOrderFilterParams) (*pagination.PaginatedResult[entity.WorkOrder], error) {
	if params.Pagination == nil {
		params.Pagination = pagination.DefaultPagination()
	}
	orders, total, err := s.orderRepo.List(ctx, params)
	if err != nil {
		return nil, err
	}

	pag := pagination.NewPagination(params.Pagination.Page, params.Pagination.PerPage, total)
	return pagination.NewPaginatedResult(orders, pag), nil
}

// UpdateOrder applies the input to an existing order, keeping only the fields
// the caller's role may edit, then recomputes the derived figures. Fields the
// role may not touch are dropped silently rather than rejected.
func (s *WorkOrderService) UpdateOrder(ctx context.Context, id uint, role enum.Role, input *WorkOrderInput) (*entity.WorkOrder, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Work order")
	}

	if err := applyInput(order, input, access.ModeFor(role)); err != nil {
		return nil, err
	}
	recompute(order)

	if err := s.orderRepo.Update(ctx, order); err != nil {
		return nil, err
	}
	return s.orderRepo.GetWithReceipts(ctx, id)
}

// DeleteOrder removes a work order. Attached receipt rows go with it.
func (s *WorkOrderService) DeleteOrder(ctx context.Context, id uint) error {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if order == nil {
		return apperror.NewNotFoundError("Work order")
	}
	return s.orderRepo.Delete(ctx, id)
}

// applyInput copies the editable fields of input onto the order, consulting
// the access table per field for the given mode.
func applyInput(order *entity.WorkOrder, input *WorkOrderInput, mode access.Mode) error {
	if input == nil {
		return nil
	}

	setString := func(field access.Field, dst *string, src *string) {
		if src != nil && access.CanEdit(mode, field) {
			*dst = *src
		}
	}
	setCents := func(field access.Field, dst *int64, src *float64) {
		if src != nil && access.CanEdit(mode, field) {
			*dst = toCents(*src)
		}
	}

	setString(access.FieldClientName, &order.ClientName, input.ClientName)
	setString(access.FieldClientPhone, &order.ClientPhone, input.ClientPhone)
	setString(access.FieldDepartureTime, &order.DepartureTime, input.DepartureTime)
	setString(access.FieldArrivalTime, &order.ArrivalTime, input.ArrivalTime)
	setString(access.FieldDestination, &order.Destination, input.Destination)
	setString(access.FieldMeetingPoint, &order.MeetingPoint, input.MeetingPoint)
	setString(access.FieldNotes, &order.Notes, input.Notes)

	if input.TripDate != nil && access.CanEdit(mode, access.FieldTripDate) {
		if *input.TripDate == "" {
			order.TripDate = nil
		} else {
			date, err := time.Parse("2006-01-02", *input.TripDate)
			if err != nil {
				return apperror.NewBadRequestError("Invalid trip date, expected YYYY-MM-DD")
			}
			order.TripDate = &date
		}
	}

	if input.Passengers != nil && access.CanEdit(mode, access.FieldPassengers) {
		order.Passengers = input.Passengers
	}
	if input.AgreedHours != nil && access.CanEdit(mode, access.FieldAgreedHours) {
		order.AgreedHours = *input.AgreedHours
	}
	if input.ReceiptAlreadyPaid != nil && access.CanEdit(mode, access.FieldReceiptAlreadyPaid) {
		order.ReceiptAlreadyPaid = *input.ReceiptAlreadyPaid
	}

	setCents(access.FieldAgreedPrice, &order.AgreedPrice, input.AgreedPrice)
	setCents(access.FieldHourlyOvertimeRate, &order.HourlyOvertimeRate, input.HourlyOvertimeRate)
	setCents(access.FieldDeposit, &order.Deposit, input.Deposit)
	setCents(access.FieldFuel, &order.Fuel, input.Fuel)
	setCents(access.FieldIce, &order.Ice, input.Ice)
	setCents(access.FieldBeverages, &order.Beverages, input.Beverages)
	setCents(access.FieldMisc, &order.Misc, input.Misc)
	setCents(access.FieldCaptainPay, &order.CaptainPay, input.CaptainPay)
	setCents(access.FieldMatePay, &order.MatePay, input.MatePay)

	return nil
}

// recompute replaces every derived figure on the order from its current inputs.
func recompute(order *entity.WorkOrder) {
	derived := finance.Derive(finance.Inputs{
		AgreedPrice:        fromCents(order.AgreedPrice),
		AgreedHours:        order.AgreedHours,
		HourlyOvertimeRate: fromCents(order.HourlyOvertimeRate),
		DepartureTime:      order.DepartureTime,
		ArrivalTime:        order.ArrivalTime,
		Deposit:            fromCents(order.Deposit),
		Fuel:               fromCents(order.Fuel),
		Ice:                fromCents(order.Ice),
		Beverages:          fromCents(order.Beverages),
		Misc:               fromCents(order.Misc),
		CaptainPay:         fromCents(order.CaptainPay),
		MatePay:            fromCents(order.MatePay),
		ReceiptAlreadyPaid: order.ReceiptAlreadyPaid,
	})

	order.OvertimeSurcharge = toCents(derived.OvertimeSurcharge)
	order.TotalCost = toCents(derived.TotalCost)
	order.ClientBalance = toCents(derived.ClientBalance)
	order.DueAtBoarding = toCents(derived.DueAtBoarding)
	order.AmountOwedToCompany = toCents(derived.AmountOwedToCompany)
}

func toCents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

func fromCents(cents int64) float64 {
	return float64(cents) / 100
}
