// Package access decides which work-order fields each form mode may change.
// The field set is closed: anything not listed here is not an editable field.
package access

import "github.com/baysidepv/charter-api/internal/domain/enum"

// Mode is the editing context a work-order write happens in.
type Mode string

const (
	ModeAdminCreate Mode = "admin-create"
	ModeAdminEdit   Mode = "admin-edit"
	ModeCaptainEdit Mode = "captain-edit"
)

// Field names an editable work-order field.
type Field string

const (
	FieldClientName         Field = "client_name"
	FieldClientPhone        Field = "client_phone"
	FieldTripDate           Field = "trip_date"
	FieldDepartureTime      Field = "departure_time"
	FieldArrivalTime        Field = "arrival_time"
	FieldDestination        Field = "destination"
	FieldMeetingPoint       Field = "meeting_point"
	FieldPassengers         Field = "passengers"
	FieldNotes              Field = "notes"
	FieldAgreedPrice        Field = "agreed_price"
	FieldAgreedHours        Field = "agreed_hours"
	FieldHourlyOvertimeRate Field = "hourly_overtime_rate"
	FieldDeposit            Field = "deposit"
	FieldReceiptAlreadyPaid Field = "receipt_already_paid"
	FieldFuel               Field = "fuel"
	FieldIce                Field = "ice"
	FieldBeverages          Field = "beverages"
	FieldMisc               Field = "misc"
	FieldCaptainPay         Field = "captain_pay"
	FieldMatePay            Field = "mate_pay"
)

var allFields = map[Field]bool{
	FieldClientName: true, FieldClientPhone: true, FieldTripDate: true,
	FieldDepartureTime: true, FieldArrivalTime: true, FieldDestination: true,
	FieldMeetingPoint: true, FieldPassengers: true, FieldNotes: true,
	FieldAgreedPrice: true, FieldAgreedHours: true, FieldHourlyOvertimeRate: true,
	FieldDeposit: true, FieldReceiptAlreadyPaid: true,
	FieldFuel: true, FieldIce: true, FieldBeverages: true, FieldMisc: true,
	FieldCaptainPay: true, FieldMatePay: true,
}

// Captains only touch what they learn on the water: trip notes, the four
// expense lines, and the actual arrival time the overtime surcharge needs.
var captainEditable = map[Field]bool{
	FieldNotes:       true,
	FieldFuel:        true,
	FieldIce:         true,
	FieldBeverages:   true,
	FieldMisc:        true,
	FieldArrivalTime: true,
}

// CanEdit reports whether the given form mode may change the given field.
// Derived fields are not in the field set at all, so they are never editable.
func CanEdit(mode Mode, field Field) bool {
	if !allFields[field] {
		return false
	}
	if mode == ModeCaptainEdit {
		return captainEditable[field]
	}
	return true
}

// ModeFor maps a role to its edit mode for an existing order.
func ModeFor(role enum.Role) Mode {
	if role == enum.RoleAdmin {
		return ModeAdminEdit
	}
	return ModeCaptainEdit
}
