package entity

import (
	"encoding/json"
	"time"
)

// WorkOrder is a single charter trip: the client agreement the office enters up
// front, the expenses the captain fills in during the trip, and the figures the
// derivation engine computes from both. Money fields are stored in cents and
// converted to decimals in JSON, derived fields are recomputed server-side on
// every write and never accepted from clients.
type WorkOrder struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	ClientName    string     `gorm:"size:255" json:"client_name"`
	ClientPhone   string     `gorm:"size:50" json:"client_phone"`
	TripDate      *time.Time `gorm:"type:date" json:"trip_date,omitempty"`
	DepartureTime string     `gorm:"size:5" json:"departure_time"` // "HH:MM", empty when unset
	ArrivalTime   string     `gorm:"size:5" json:"arrival_time"`   // "HH:MM", empty when unset
	Destination   string     `gorm:"size:255" json:"destination"`
	MeetingPoint  string     `gorm:"size:255" json:"meeting_point"`
	Passengers    *int       `json:"passengers,omitempty"`
	Notes         string     `gorm:"type:text" json:"notes"`

	// Agreement (admin-entered)
	AgreedPrice        int64   `gorm:"default:0" json:"-"` // cents
	AgreedHours        float64 `gorm:"default:0" json:"agreed_hours"`
	HourlyOvertimeRate int64   `gorm:"default:0" json:"-"` // cents
	Deposit            int64   `gorm:"default:0" json:"-"` // cents
	ReceiptAlreadyPaid bool    `gorm:"default:false" json:"receipt_already_paid"`

	// Trip expenses and crew pay (captain-entered)
	Fuel       int64 `gorm:"default:0" json:"-"` // cents
	Ice        int64 `gorm:"default:0" json:"-"` // cents
	Beverages  int64 `gorm:"default:0" json:"-"` // cents
	Misc       int64 `gorm:"default:0" json:"-"` // cents
	CaptainPay int64 `gorm:"default:0" json:"-"` // cents
	MatePay    int64 `gorm:"default:0" json:"-"` // cents

	// Derived fields, recomputed from the inputs above on every save
	OvertimeSurcharge   int64 `gorm:"default:0" json:"-"` // cents
	TotalCost           int64 `gorm:"default:0" json:"-"` // cents
	ClientBalance       int64 `gorm:"default:0" json:"-"` // cents, signed
	DueAtBoarding       int64 `gorm:"default:0" json:"-"` // cents, never negative
	AmountOwedToCompany int64 `gorm:"default:0" json:"-"` // cents, signed

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relationships
	Receipts []Receipt `gorm:"foreignKey:WorkOrderID;constraint:OnDelete:CASCADE" json:"receipts,omitempty"`
}

// MarshalJSON custom marshaler to convert cents to decimal for API responses
func (w WorkOrder) MarshalJSON() ([]byte, error) {
	type Alias WorkOrder
	return json.Marshal(&struct {
		Alias
		AgreedPrice         float64 `json:"agreed_price"`
		HourlyOvertimeRate  float64 `json:"hourly_overtime_rate"`
		Deposit             float64 `json:"deposit"`
		Fuel                float64 `json:"fuel"`
		Ice                 float64 `json:"ice"`
		Beverages           float64 `json:"beverages"`
		Misc                float64 `json:"misc"`
		CaptainPay          float64 `json:"captain_pay"`
		MatePay             float64 `json:"mate_pay"`
		OvertimeSurcharge   float64 `json:"overtime_surcharge"`
		TotalCost           float64 `json:"total_cost"`
		ClientBalance       float64 `json:"client_balance"`
		DueAtBoarding       float64 `json:"due_at_boarding"`
		AmountOwedToCompany float64 `json:"amount_owed_to_company"`
	}{
		Alias:               Alias(w),
		AgreedPrice:         float64(w.AgreedPrice) / 100,
		HourlyOvertimeRate:  float64(w.HourlyOvertimeRate) / 100,
		Deposit:             float64(w.Deposit) / 100,
		Fuel:                float64(w.Fuel) / 100,
		Ice:                 float64(w.Ice) / 100,
		Beverages:           float64(w.Beverages) / 100,
		Misc:                float64(w.Misc) / 100,
		CaptainPay:          float64(w.CaptainPay) / 100,
		MatePay:             float64(w.MatePay) / 100,
		OvertimeSurcharge:   float64(w.OvertimeSurcharge) / 100,
		TotalCost:           float64(w.TotalCost) / 100,
		ClientBalance:       float64(w.ClientBalance) / 100,
		DueAtBoarding:       float64(w.DueAtBoarding) / 100,
		AmountOwedToCompany: float64(w.AmountOwedToCompany) / 100,
	})
}

// TableName returns the table name for the WorkOrder model
func (WorkOrder) TableName() string {
	return "work_orders"
}
