package finance

import (
	"math"
	"testing"
)

func TestDeriveBalanceAlgebra(t *testing.T) {
	got := Derive(Inputs{AgreedPrice: 500, Deposit: 200})
	if got.OvertimeSurcharge != 0 {
		t.Fatalf("expected no surcharge, got %v", got.OvertimeSurcharge)
	}
	if got.TotalCost != 500 {
		t.Fatalf("expected total 500, got %v", got.TotalCost)
	}
	if got.ClientBalance != 300 {
		t.Fatalf("expected balance 300, got %v", got.ClientBalance)
	}
	if got.DueAtBoarding != 300 {
		t.Fatalf("expected due at boarding 300, got %v", got.DueAtBoarding)
	}
}

func TestDeriveOvertimeSurcharge(t *testing.T) {
	tests := []struct {
		name      string
		departure string
		arrival   string
		hours     float64
		rate      float64
		want      float64
	}{
		{"one hour over", "10:00", "15:00", 4, 50, 50},
		{"half hour over", "10:00", "14:30", 4, 50, 25},
		{"under time is not a credit", "10:00", "13:00", 4, 50, 0},
		{"exactly on time", "10:00", "14:00", 4, 50, 0},
		{"no departure recorded", "", "15:00", 4, 50, 0},
		{"no arrival recorded", "10:00", "", 4, 50, 0},
		{"no agreed hours", "10:00", "15:00", 0, 50, 0},
		{"malformed arrival", "10:00", "later", 4, 50, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Derive(Inputs{
				DepartureTime:      tt.departure,
				ArrivalTime:        tt.arrival,
				AgreedHours:        tt.hours,
				HourlyOvertimeRate: tt.rate,
			})
			if got.OvertimeSurcharge != tt.want {
				t.Fatalf("surcharge = %v, want %v", got.OvertimeSurcharge, tt.want)
			}
		})
	}
}

func TestDeriveOvertimeMonotonicity(t *testing.T) {
	// For a fixed departure/duration/rate, a later arrival never lowers the surcharge.
	arrivals := []string{"13:00", "14:00", "14:15", "15:00", "16:30", "20:00"}
	prev := -1.0
	for _, arrival := range arrivals {
		got := Derive(Inputs{
			DepartureTime:      "10:00",
			ArrivalTime:        arrival,
			AgreedHours:        4,
			HourlyOvertimeRate: 50,
		})
		if got.OvertimeSurcharge < prev {
			t.Fatalf("surcharge decreased at arrival %s: %v < %v", arrival, got.OvertimeSurcharge, prev)
		}
		prev = got.OvertimeSurcharge
	}
}

func TestDeriveSurchargeFeedsTotals(t *testing.T) {
	got := Derive(Inputs{
		AgreedPrice:        500,
		Deposit:            200,
		DepartureTime:      "10:00",
		ArrivalTime:        "15:00",
		AgreedHours:        4,
		HourlyOvertimeRate: 50,
	})
	if got.OvertimeSurcharge != 50 {
		t.Fatalf("surcharge = %v, want 50", got.OvertimeSurcharge)
	}
	if got.TotalCost != got.OvertimeSurcharge+500 {
		t.Fatalf("total = %v, want price+surcharge", got.TotalCost)
	}
	if got.ClientBalance != got.TotalCost-200 {
		t.Fatalf("balance = %v, want total-deposit", got.ClientBalance)
	}
}

func TestDeriveDueAtBoardingClamp(t *testing.T) {
	// Paid-on-receipt zeroes the boarding payment outright.
	if got := Derive(Inputs{AgreedPrice: 500, Deposit: 200, ReceiptAlreadyPaid: true}); got.DueAtBoarding != 0 {
		t.Fatalf("expected 0 when already paid, got %v", got.DueAtBoarding)
	}
	// A deposit above the price clamps at zero rather than going negative.
	if got := Derive(Inputs{AgreedPrice: 200, Deposit: 500}); got.DueAtBoarding != 0 {
		t.Fatalf("expected clamp at 0, got %v", got.DueAtBoarding)
	}
	// The client balance stays signed for the same inputs: that asymmetry is intentional.
	if got := Derive(Inputs{AgreedPrice: 200, Deposit: 500}); got.ClientBalance != -300 {
		t.Fatalf("expected signed balance -300, got %v", got.ClientBalance)
	}
}

func TestDeriveAmountOwedToCompany(t *testing.T) {
	got := Derive(Inputs{
		Deposit:            200,
		DepartureTime:      "10:00",
		ArrivalTime:        "15:00",
		AgreedHours:        4,
		HourlyOvertimeRate: 50,
		Fuel:               80,
		Ice:                10,
		Beverages:          30,
		Misc:               5,
		CaptainPay:         60,
		MatePay:            40,
	})
	// (200 deposit + 50 surcharge) - 225 expenses
	if got.AmountOwedToCompany != 25 {
		t.Fatalf("owed = %v, want 25", got.AmountOwedToCompany)
	}
}

func TestDeriveIdempotent(t *testing.T) {
	in := Inputs{
		AgreedPrice:        750.50,
		AgreedHours:        6,
		HourlyOvertimeRate: 45,
		DepartureTime:      "09:30",
		ArrivalTime:        "17:15",
		Deposit:            300,
		Fuel:               120.25,
		Beverages:          42,
	}
	first := Derive(in)
	second := Derive(in)
	if first != second {
		t.Fatalf("derive is not idempotent: %+v vs %+v", first, second)
	}
}

func TestDeriveZeroDefault(t *testing.T) {
	inputs := []Inputs{
		{},
		{DepartureTime: "not a time", ArrivalTime: "::", AgreedHours: math.NaN()},
		{AgreedPrice: math.Inf(1), Deposit: math.NaN(), HourlyOvertimeRate: math.Inf(-1)},
		{Fuel: math.NaN(), Ice: math.Inf(1), CaptainPay: math.NaN()},
	}
	for i, in := range inputs {
		got := Derive(in)
		for name, v := range map[string]float64{
			"surcharge": got.OvertimeSurcharge,
			"total":     got.TotalCost,
			"balance":   got.ClientBalance,
			"boarding":  got.DueAtBoarding,
			"owed":      got.AmountOwedToCompany,
		} {
			if math.IsNaN(v) || math.IsInf(v, 0) {
				t.Fatalf("case %d: %s is not finite: %v", i, name, v)
			}
		}
	}
}

func TestClockToHours(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"10:00", 10},
		{"10:30", 10.5},
		{"00:45", 0.75},
		{"9:15", 9.25},
		{"", 0},
		{"noon", 0},
		{"10", 0},
		{"-3:00", 0},
		{"10:xx", 10},
	}
	for _, tt := range tests {
		if got := ClockToHours(tt.in); got != tt.want {
			t.Fatalf("ClockToHours(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
