// Package finance computes the derived figures of a work order from its raw
// inputs. Derive is a total function: malformed or missing inputs contribute
// zero, so the form never blocks on partial data.
package finance

import (
	"math"
	"strconv"
	"strings"
)

// Inputs are the raw, possibly partially-entered fields the derived figures
// depend on. Money values are decimal amounts (not cents); times are "HH:MM"
// local clock strings.
type Inputs struct {
	AgreedPrice        float64
	AgreedHours        float64
	HourlyOvertimeRate float64
	DepartureTime      string
	ArrivalTime        string
	Deposit            float64
	Fuel               float64
	Ice                float64
	Beverages          float64
	Misc               float64
	CaptainPay         float64
	MatePay            float64
	ReceiptAlreadyPaid bool
}

// Derived holds the five computed figures. They are a pure function of Inputs
// and are never edited directly.
type Derived struct {
	OvertimeSurcharge   float64
	TotalCost           float64
	ClientBalance       float64
	DueAtBoarding       float64
	AmountOwedToCompany float64
}

// Derive recomputes every derived figure from scratch. Same inputs always give
// the same outputs; no input combination produces NaN or Inf.
func Derive(in Inputs) Derived {
	price := sanitize(in.AgreedPrice)
	hours := sanitize(in.AgreedHours)
	rate := sanitize(in.HourlyOvertimeRate)
	deposit := sanitize(in.Deposit)

	departure := ClockToHours(in.DepartureTime)
	arrival := ClockToHours(in.ArrivalTime)

	// Overtime only counts when both clock readings and the agreed duration
	// are present, and the trip actually ran over. Under-time is never a credit.
	var surcharge float64
	if departure > 0 && arrival > 0 && hours > 0 {
		expectedEnd := departure + hours
		if extra := arrival - expectedEnd; extra > 0 {
			surcharge = extra * rate
		}
	}

	total := price + surcharge
	balance := total - deposit // signed: negative means a refund is owed

	var dueAtBoarding float64
	if !in.ReceiptAlreadyPaid {
		dueAtBoarding = math.Max(0, price-deposit)
	}

	expenses := sanitize(in.Fuel) + sanitize(in.Ice) + sanitize(in.Beverages) +
		sanitize(in.Misc) + sanitize(in.CaptainPay) + sanitize(in.MatePay)
	owed := (deposit + surcharge) - expenses

	return Derived{
		OvertimeSurcharge:   surcharge,
		TotalCost:           total,
		ClientBalance:       balance,
		DueAtBoarding:       dueAtBoarding,
		AmountOwedToCompany: owed,
	}
}

// ClockToHours converts an "HH:MM" string to decimal hours. Anything malformed
// parses to 0 rather than an error.
func ClockToHours(clock string) float64 {
	if !strings.Contains(clock, ":") {
		return 0
	}
	parts := strings.SplitN(clock, ":", 2)
	hours, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || hours < 0 {
		return 0
	}
	minutes, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil || minutes < 0 {
		minutes = 0
	}
	return sanitize(float64(hours) + float64(minutes)/60)
}

func sanitize(f float64) float64 {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}
