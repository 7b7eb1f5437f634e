package service

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/baysidepv/charter-api/internal/domain/entity"
	"github.com/baysidepv/charter-api/internal/domain/enum"
	"github.com/baysidepv/charter-api/pkg/apperror"
)

type stubObjectStorage struct {
	storeFn func(ctx context.Context, data []byte, contentType, key string) (string, error)
}

func (s *stubObjectStorage) Store(ctx context.Context, data []byte, contentType, key string) (string, error) {
	return s.storeFn(ctx, data, contentType, key)
}

type stubReceiptRepo struct {
	createFn func(ctx context.Context, receipt *entity.Receipt) error
	getFn    func(ctx context.Context, id uint) (*entity.Receipt, error)
	listFn   func(ctx context.Context, workOrderID uint) ([]entity.Receipt, error)
	deleteFn func(ctx context.Context, id uint) error
}

func (s *stubReceiptRepo) Create(ctx context.Context, receipt *entity.Receipt) error {
	return s.createFn(ctx, receipt)
}

func (s *stubReceiptRepo) GetByID(ctx context.Context, id uint) (*entity.Receipt, error) {
	return s.getFn(ctx, id)
}

func (s *stubReceiptRepo) ListByWorkOrder(ctx context.Context, workOrderID uint) ([]entity.Receipt, error) {
	return s.listFn(ctx, workOrderID)
}

func (s *stubReceiptRepo) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}

func orderRepoWithOrder(id uint) *stubWorkOrderRepo {
	return &stubWorkOrderRepo{
		getByIDFn: func(ctx context.Context, gotID uint) (*entity.WorkOrder, error) {
			if gotID == id {
				return &entity.WorkOrder{ID: id}, nil
			}
			return nil, nil
		},
	}
}

const testMaxUpload = 50 * 1024 * 1024

func TestUploadStoresAndRecordsReceipt(t *testing.T) {
	var storedKey string
	store := &stubObjectStorage{
		storeFn: func(ctx context.Context, data []byte, contentType, key string) (string, error) {
			storedKey = key
			return "https://cdn.example.com/" + key, nil
		},
	}
	var created *entity.Receipt
	receipts := &stubReceiptRepo{
		createFn: func(ctx context.Context, receipt *entity.Receipt) error {
			receipt.ID = 11
			created = receipt
			return nil
		},
	}
	svc := NewReceiptService(receipts, orderRepoWithOrder(3), store, testMaxUpload)

	receipt, err := svc.Upload(context.Background(), &UploadInput{
		WorkOrderID: 3,
		Category:    "fuel",
		FileName:    "pump.jpg",
		ContentType: "image/jpeg",
		Data:        []byte("fake jpeg bytes"),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created == nil {
		t.Fatal("receipt row was not created")
	}
	if !strings.HasPrefix(storedKey, "work-orders/3/fuel-") {
		t.Fatalf("unexpected object key: %s", storedKey)
	}
	if receipt.URL != "https://cdn.example.com/"+storedKey {
		t.Fatalf("unexpected URL: %s", receipt.URL)
	}
	if receipt.Category != enum.ExpenseCategoryFuel {
		t.Fatalf("category = %s, want fuel", receipt.Category)
	}
	if receipt.FileSize != int64(len("fake jpeg bytes")) {
		t.Fatalf("file size = %d", receipt.FileSize)
	}
}

func TestUploadDefaultsUnknownCategory(t *testing.T) {
	store := &stubObjectStorage{
		storeFn: func(ctx context.Context, data []byte, contentType, key string) (string, error) {
			return "https://cdn.example.com/" + key, nil
		},
	}
	receipts := &stubReceiptRepo{
		createFn: func(ctx context.Context, receipt *entity.Receipt) error { return nil },
	}
	svc := NewReceiptService(receipts, orderRepoWithOrder(1), store, testMaxUpload)

	receipt, err := svc.Upload(context.Background(), &UploadInput{
		WorkOrderID: 1,
		Category:    "souvenirs",
		FileName:    "a.png",
		ContentType: "image/png",
		Data:        []byte{1, 2, 3},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if receipt.Category != enum.ExpenseCategoryGeneral {
		t.Fatalf("category = %s, want general", receipt.Category)
	}
}

func TestUploadRejectsOversizedFile(t *testing.T) {
	svc := NewReceiptService(&stubReceiptRepo{}, orderRepoWithOrder(1), &stubObjectStorage{}, 10)

	_, err := svc.Upload(context.Background(), &UploadInput{
		WorkOrderID: 1,
		FileName:    "big.jpg",
		ContentType: "image/jpeg",
		Data:        bytes.Repeat([]byte{0xff}, 11),
	})
	if err == nil {
		t.Fatal("expected size rejection")
	}
	if apperror.GetAppError(err).Code != 400 {
		t.Fatalf("error code = %d, want 400", apperror.GetAppError(err).Code)
	}
}

func TestUploadRejectsDisallowedType(t *testing.T) {
	svc := NewReceiptService(&stubReceiptRepo{}, orderRepoWithOrder(1), &stubObjectStorage{}, testMaxUpload)

	_, err := svc.Upload(context.Background(), &UploadInput{
		WorkOrderID: 1,
		FileName:    "doc.pdf",
		ContentType: "application/pdf",
		Data:        []byte("%PDF-1.4"),
	})
	if err == nil {
		t.Fatal("expected MIME rejection")
	}
}

func TestUploadRejectsEmptyFile(t *testing.T) {
	svc := NewReceiptService(&stubReceiptRepo{}, orderRepoWithOrder(1), &stubObjectStorage{}, testMaxUpload)

	_, err := svc.Upload(context.Background(), &UploadInput{
		WorkOrderID: 1,
		FileName:    "empty.jpg",
		ContentType: "image/jpeg",
	})
	if err == nil {
		t.Fatal("expected rejection of empty upload")
	}
}

func TestUploadUnknownOrder(t *testing.T) {
	store := &stubObjectStorage{
		storeFn: func(ctx context.Context, data []byte, contentType, key string) (string, error) {
			t.Fatal("storage should not be reached for an unknown order")
			return "", nil
		},
	}
	svc := NewReceiptService(&stubReceiptRepo{}, orderRepoWithOrder(1), store, testMaxUpload)

	_, err := svc.Upload(context.Background(), &UploadInput{
		WorkOrderID: 42,
		FileName:    "a.jpg",
		ContentType: "image/jpeg",
		Data:        []byte{1},
	})
	if err == nil {
		t.Fatal("expected not found error")
	}
	if apperror.GetAppError(err).Code != 404 {
		t.Fatalf("error code = %d, want 404", apperror.GetAppError(err).Code)
	}
}

func TestListByOrderUnknownOrder(t *testing.T) {
	svc := NewReceiptService(&stubReceiptRepo{}, orderRepoWithOrder(1), &stubObjectStorage{}, testMaxUpload)

	if _, err := svc.ListByOrder(context.Background(), 77); err == nil {
		t.Fatal("expected not found error")
	}
}
