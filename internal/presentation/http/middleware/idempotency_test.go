package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/baysidepv/charter-api/internal/domain/entity"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type memIdempotencyRepo struct {
	keys map[string]*entity.IdempotencyKey
}

func newMemIdempotencyRepo() *memIdempotencyRepo {
	return &memIdempotencyRepo{keys: make(map[string]*entity.IdempotencyKey)}
}

func (r *memIdempotencyRepo) GetByKey(ctx context.Context, key string, userID uuid.UUID) (*entity.IdempotencyKey, error) {
	return r.keys[key+"|"+userID.String()], nil
}

func (r *memIdempotencyRepo) Create(ctx context.Context, ikey *entity.IdempotencyKey) error {
	r.keys[ikey.Key+"|"+ikey.UserID.String()] = ikey
	return nil
}

func (r *memIdempotencyRepo) DeleteExpired(ctx context.Context) error { return nil }

func draftRouter(repo *memIdempotencyRepo, userID uuid.UUID, hits *int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/work-orders/draft",
		func(c *gin.Context) { c.Set("user_id", userID) },
		IdempotencyRequired(IdempotencyConfig{Repo: repo}),
		func(c *gin.Context) {
			*hits++
			c.JSON(http.StatusCreated, gin.H{"success": true, "data": gin.H{"id": *hits}})
		},
	)
	return router
}

func TestIdempotencyRequiredRejectsMissingKey(t *testing.T) {
	var hits int
	router := draftRouter(newMemIdempotencyRepo(), uuid.New(), &hits)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/work-orders/draft", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if hits != 0 {
		t.Fatal("handler must not run without an idempotency key")
	}
}

func TestIdempotencyRequiredReplaysCachedResponse(t *testing.T) {
	var hits int
	router := draftRouter(newMemIdempotencyRepo(), uuid.New(), &hits)

	send := func() *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/work-orders/draft", nil)
		req.Header.Set(IdempotencyKeyHeader, "draft-abc123")
		router.ServeHTTP(w, req)
		return w
	}

	first := send()
	if first.Code != http.StatusCreated {
		t.Fatalf("first status = %d, want 201", first.Code)
	}
	if first.Header().Get("X-Idempotency-Replayed") != "" {
		t.Fatal("first response must not be marked replayed")
	}

	second := send()
	if second.Code != http.StatusCreated {
		t.Fatalf("replay status = %d, want 201", second.Code)
	}
	if second.Header().Get("X-Idempotency-Replayed") != "true" {
		t.Fatal("replay must be marked with X-Idempotency-Replayed")
	}
	if hits != 1 {
		t.Fatalf("handler ran %d times, want 1", hits)
	}
	if !strings.Contains(second.Body.String(), `"id":1`) {
		t.Fatalf("replay body = %s, want the cached first response", second.Body.String())
	}
}

func TestIdempotencyRequiredKeysArePerUser(t *testing.T) {
	repo := newMemIdempotencyRepo()
	var hitsA, hitsB int
	routerA := draftRouter(repo, uuid.New(), &hitsA)
	routerB := draftRouter(repo, uuid.New(), &hitsB)

	for _, router := range []*gin.Engine{routerA, routerB} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPost, "/work-orders/draft", nil)
		req.Header.Set(IdempotencyKeyHeader, "shared-key")
		router.ServeHTTP(w, req)
		if w.Code != http.StatusCreated {
			t.Fatalf("status = %d, want 201", w.Code)
		}
	}

	if hitsA != 1 || hitsB != 1 {
		t.Fatalf("hits = %d/%d, want one real execution per user", hitsA, hitsB)
	}
}
