package capture

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/baysidepv/charter-api/internal/application/service"
	"github.com/baysidepv/charter-api/internal/domain/entity"
	domainRepo "github.com/baysidepv/charter-api/internal/domain/repository"
	"github.com/baysidepv/charter-api/internal/presentation/http/handler"
	"github.com/gin-gonic/gin"
)

func TestClientSaveOrderNoopWithoutEdits(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected when nothing is pending")
	}))
	defer server.Close()

	c := NewClient(server.URL, "tok", 5)
	if err := c.SaveOrder(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestClientSaveOrderFlushesFields(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.Method + " " + r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	c := NewClient(server.URL, "tok", 5)
	c.Fields["fuel"] = 80.5
	c.Fields["notes"] = "two stops"

	if err := c.SaveOrder(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotPath != "PUT /api/v1/work-orders/5" {
		t.Fatalf("request = %s", gotPath)
	}
	if gotAuth != "Bearer tok" {
		t.Fatalf("auth header = %q", gotAuth)
	}
	if gotBody["fuel"] != 80.5 || gotBody["notes"] != "two stops" {
		t.Fatalf("body = %v", gotBody)
	}
	if len(c.Fields) != 0 {
		t.Fatal("pending fields should be cleared after a successful save")
	}
}

func TestClientSaveOrderErrorKeepsFields(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"success":false}`, http.StatusForbidden)
	}))
	defer server.Close()

	c := NewClient(server.URL, "tok", 5)
	c.Fields["fuel"] = 80.5

	if err := c.SaveOrder(context.Background()); err == nil {
		t.Fatal("expected error from a 403 response")
	}
	if len(c.Fields) != 1 {
		t.Fatal("pending fields should survive a failed save")
	}
}

func TestClientUploadReceiptMultipart(t *testing.T) {
	var gotPath, gotCategory, gotName, gotMIME string
	var gotFile []byte
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.Method + " " + r.URL.Path
		if err := r.ParseMultipartForm(10 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		gotCategory = r.FormValue("category")
		file, header, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("form file: %v", err)
		}
		defer file.Close()
		gotName = header.Filename
		gotMIME = header.Header.Get("Content-Type")
		gotFile, _ = io.ReadAll(file)
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	c := NewClient(server.URL, "tok", 12)
	frame := &Frame{Data: []byte("jpeg bytes"), Name: "pump.jpg", MIME: "image/jpeg"}

	if err := c.UploadReceipt(context.Background(), "fuel", frame); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotPath != "POST /api/v1/work-orders/12/receipts" {
		t.Fatalf("request = %s", gotPath)
	}
	if gotCategory != "fuel" {
		t.Fatalf("category = %q", gotCategory)
	}
	if gotName != "pump.jpg" || string(gotFile) != "jpeg bytes" {
		t.Fatalf("file = %q (%q)", gotFile, gotName)
	}
	if gotMIME != "image/jpeg" {
		t.Fatalf("file part content type = %q, want image/jpeg", gotMIME)
	}
}

type existingOrderRepo struct{}

func (existingOrderRepo) Create(ctx context.Context, o *entity.WorkOrder) error { return nil }
func (existingOrderRepo) GetByID(ctx context.Context, id uint) (*entity.WorkOrder, error) {
	return &entity.WorkOrder{}, nil
}
func (existingOrderRepo) GetWithReceipts(ctx context.Context, id uint) (*entity.WorkOrder, error) {
	return &entity.WorkOrder{}, nil
}
func (existingOrderRepo) Update(ctx context.Context, o *entity.WorkOrder) error { return nil }
func (existingOrderRepo) Delete(ctx context.Context, id uint) error             { return nil }
func (existingOrderRepo) List(ctx context.Context, p *domainRepo.WorkOrderFilterParams) ([]entity.WorkOrder, int64, error) {
	return nil, 0, nil
}
func (existingOrderRepo) ListAll(ctx context.Context) ([]entity.WorkOrder, error) { return nil, nil }

type recordingReceiptRepo struct {
	created []*entity.Receipt
}

func (r *recordingReceiptRepo) Create(ctx context.Context, receipt *entity.Receipt) error {
	r.created = append(r.created, receipt)
	return nil
}

func (r *recordingReceiptRepo) GetByID(ctx context.Context, id uint) (*entity.Receipt, error) {
	return nil, nil
}

func (r *recordingReceiptRepo) ListByWorkOrder(ctx context.Context, workOrderID uint) ([]entity.Receipt, error) {
	return nil, nil
}

func (r *recordingReceiptRepo) Delete(ctx context.Context, id uint) error { return nil }

type recordingStore struct {
	contentType string
	key         string
	data        []byte
}

func (s *recordingStore) Store(ctx context.Context, data []byte, contentType, key string) (string, error) {
	s.data, s.contentType, s.key = data, contentType, key
	return "https://cdn.test/" + key, nil
}

// The client must get a receipt past the real upload endpoint, image
// allow-list included.
func TestClientUploadAcceptedByReceiptEndpoint(t *testing.T) {
	gin.SetMode(gin.TestMode)

	store := &recordingStore{}
	receipts := &recordingReceiptRepo{}
	svc := service.NewReceiptService(receipts, existingOrderRepo{}, store, 50<<20)
	h := handler.NewReceiptHandler(svc, 50<<20)

	router := gin.New()
	router.POST("/api/v1/work-orders/:id/receipts", h.Upload)
	server := httptest.NewServer(router)
	defer server.Close()

	c := NewClient(server.URL, "tok", 7)
	frame := &Frame{Data: []byte("jpeg bytes"), Name: "pump.jpg", MIME: "image/jpeg"}

	if err := c.UploadReceipt(context.Background(), "fuel", frame); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if store.contentType != "image/jpeg" {
		t.Fatalf("stored content type = %q, want image/jpeg", store.contentType)
	}
	if len(receipts.created) != 1 {
		t.Fatalf("receipts created = %d, want 1", len(receipts.created))
	}
	got := receipts.created[0]
	if got.MimeType != "image/jpeg" || got.FileName != "pump.jpg" {
		t.Fatalf("receipt = %+v", got)
	}
}

func TestClientUploadReceiptSurfacesServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"message":"File too large"}`, http.StatusBadRequest)
	}))
	defer server.Close()

	c := NewClient(server.URL, "tok", 12)
	err := c.UploadReceipt(context.Background(), "misc", &Frame{Data: []byte("x"), Name: "a.jpg"})
	if err == nil {
		t.Fatal("expected error from a 400 response")
	}
}
