package service

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/baysidepv/charter-api/internal/domain/repository"
	"github.com/baysidepv/charter-api/pkg/apperror"
	qrcode "github.com/skip2/go-qrcode"
	"github.com/xuri/excelize/v2"
)

// ExportService produces XLSX workbooks of the order book and QR share codes
// for individual orders.
type ExportService struct {
	orderRepo repository.WorkOrderRepository
	publicURL string
}

// NewExportService creates a new export service. publicURL is the frontend
// base URL share links point at.
func NewExportService(orderRepo repository.WorkOrderRepository, publicURL string) *ExportService {
	return &ExportService{
		orderRepo: orderRepo,
		publicURL: strings.TrimRight(publicURL, "/"),
	}
}

// ExportOrdersXLSX returns the full order book as an XLSX workbook.
func (s *ExportService) ExportOrdersXLSX(ctx context.Context) ([]byte, error) {
	orders, err := s.orderRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("query work orders: %w", err)
	}

	f := excelize.NewFile()
	const sheet = "Work Orders"
	index, err := f.NewSheet(sheet)
	if err != nil {
		return nil, err
	}
	f.SetActiveSheet(index)
	_ = f.DeleteSheet("Sheet1")

	headers := []string{
		"ID",
		"Trip Date",
		"Client",
		"Phone",
		"Destination",
		"Departure",
		"Arrival",
		"Agreed Hours",
		"Agreed Price",
		"Deposit",
		"Overtime Surcharge",
		"Total Cost",
		"Client Balance",
		"Due At Boarding",
		"Owed To Company",
		"Notes",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for i := range orders {
		o := &orders[i]
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}

		write(1, o.ID)
		if o.TripDate != nil {
			write(2, o.TripDate.Format("2006-01-02"))
		} else {
			write(2, "")
		}
		write(3, o.ClientName)
		write(4, o.ClientPhone)
		write(5, o.Destination)
		write(6, o.DepartureTime)
		write(7, o.ArrivalTime)
		write(8, o.AgreedHours)
		write(9, fromCents(o.AgreedPrice))
		write(10, fromCents(o.Deposit))
		write(11, fromCents(o.OvertimeSurcharge))
		write(12, fromCents(o.TotalCost))
		write(13, fromCents(o.ClientBalance))
		write(14, fromCents(o.DueAtBoarding))
		write(15, fromCents(o.AmountOwedToCompany))
		write(16, truncate(o.Notes, 140))

		row++
	}

	_ = f.SetColWidth(sheet, "A", "A", 6)
	_ = f.SetColWidth(sheet, "B", "B", 12)
	_ = f.SetColWidth(sheet, "C", "C", 24)
	_ = f.SetColWidth(sheet, "D", "E", 18)
	_ = f.SetColWidth(sheet, "F", "H", 10)
	_ = f.SetColWidth(sheet, "I", "O", 14)
	_ = f.SetColWidth(sheet, "P", "P", 48)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}
	return buf.Bytes(), nil
}

// ShareURL returns the frontend link for a single order.
func (s *ExportService) ShareURL(orderID uint) string {
	return fmt.Sprintf("%s/orders/%d", s.publicURL, orderID)
}

// OrderShareQR encodes the order's share link as a PNG QR code. The captain
// scans it off the office screen to open the order on their phone.
func (s *ExportService) OrderShareQR(ctx context.Context, orderID uint, size int) ([]byte, error) {
	order, err := s.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, apperror.NewNotFoundError("Work order")
	}

	if size <= 0 || size > 1024 {
		size = 256
	}
	png, err := qrcode.Encode(s.ShareURL(order.ID), qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("encode QR: %w", err)
	}
	return png, nil
}

// truncate caps s at n runes, never splitting a multi-byte character.
func truncate(s string, n int) string {
	if n <= 0 || utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n-1]) + "…"
}
