package request

import "github.com/baysidepv/charter-api/internal/application/service"

// WorkOrderRequest represents the create or update work-order payload. Every
// field is optional: absent fields are left unchanged, and an empty trip_date
// string clears the stored date. Money values are decimal amounts.
type WorkOrderRequest struct {
	ClientName         *string  `json:"client_name"`
	ClientPhone        *string  `json:"client_phone"`
	TripDate           *string  `json:"trip_date"`
	DepartureTime      *string  `json:"departure_time"`
	ArrivalTime        *string  `json:"arrival_time"`
	Destination        *string  `json:"destination"`
	MeetingPoint       *string  `json:"meeting_point"`
	Passengers         *int     `json:"passengers" binding:"omitempty,min=0"`
	Notes              *string  `json:"notes"`
	AgreedPrice        *float64 `json:"agreed_price" binding:"omitempty,min=0"`
	AgreedHours        *float64 `json:"agreed_hours" binding:"omitempty,min=0"`
	HourlyOvertimeRate *float64 `json:"hourly_overtime_rate" binding:"omitempty,min=0"`
	Deposit            *float64 `json:"deposit" binding:"omitempty,min=0"`
	ReceiptAlreadyPaid *bool    `json:"receipt_already_paid"`
	Fuel               *float64 `json:"fuel" binding:"omitempty,min=0"`
	Ice                *float64 `json:"ice" binding:"omitempty,min=0"`
	Beverages          *float64 `json:"beverages" binding:"omitempty,min=0"`
	Misc               *float64 `json:"misc" binding:"omitempty,min=0"`
	CaptainPay         *float64 `json:"captain_pay" binding:"omitempty,min=0"`
	MatePay            *float64 `json:"mate_pay" binding:"omitempty,min=0"`
}

// ToInput converts the request payload into the service input
func (r *WorkOrderRequest) ToInput() *service.WorkOrderInput {
	return &service.WorkOrderInput{
		ClientName:         r.ClientName,
		ClientPhone:        r.ClientPhone,
		TripDate:           r.TripDate,
		DepartureTime:      r.DepartureTime,
		ArrivalTime:        r.ArrivalTime,
		Destination:        r.Destination,
		MeetingPoint:       r.MeetingPoint,
		Passengers:         r.Passengers,
		Notes:              r.Notes,
		AgreedPrice:        r.AgreedPrice,
		AgreedHours:        r.AgreedHours,
		HourlyOvertimeRate: r.HourlyOvertimeRate,
		Deposit:            r.Deposit,
		ReceiptAlreadyPaid: r.ReceiptAlreadyPaid,
		Fuel:               r.Fuel,
		Ice:                r.Ice,
		Beverages:          r.Beverages,
		Misc:               r.Misc,
		CaptainPay:         r.CaptainPay,
		MatePay:            r.MatePay,
	}
}

// ListWorkOrdersQuery represents the list query parameters
type ListWorkOrdersQuery struct {
	Page      int    `form:"page"`
	PerPage   int    `form:"per_page"`
	Search    string `form:"search"`
	StartDate string `form:"start_date"`
	EndDate   string `form:"end_date"`
	SortBy    string `form:"sort_by"`
	SortOrder string `form:"sort_order"`
}
