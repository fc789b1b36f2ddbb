package change_cart_slot_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	changeCartSlotHandler "github.com/m04kA/SMC-BasketService/internal/api/handlers/change_cart_slot"
	"github.com/m04kA/SMC-BasketService/internal/api/middleware"
	changeCartSlot "github.com/m04kA/SMC-BasketService/internal/usecase/change_cart_slot"
)

type mockUseCase struct {
	executeFunc func(ctx context.Context, req *changeCartSlot.Request) (*changeCartSlot.Response, error)
}

func (m *mockUseCase) Execute(ctx context.Context, req *changeCartSlot.Request) (*changeCartSlot.Response, error) {
	return m.executeFunc(ctx, req)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

func newRouter(uc changeCartSlotHandler.ChangeCartSlotUseCase) *mux.Router {
	h := changeCartSlotHandler.NewHandler(uc, nopLogger{})
	r := mux.NewRouter()
	protected := r.PathPrefix("/api/v1").Subrouter()
	protected.Use(middleware.Auth)
	protected.HandleFunc("/carts/{cartId}/slot", h.Handle).Methods(http.MethodPatch)
	return r
}

func patchSlot(t *testing.T, uc changeCartSlotHandler.ChangeCartSlotUseCase, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPatch, "/api/v1/carts/3/slot", strings.NewReader(body))
	req.Header.Set("X-User-ID", "7")
	rec := httptest.NewRecorder()
	newRouter(uc).ServeHTTP(rec, req)
	return rec
}

func TestHandler_Handle(t *testing.T) {
	base := time.Date(2026, 9, 10, 8, 0, 0, 0, time.UTC)

	t.Run("changed", func(t *testing.T) {
		uc := &mockUseCase{
			executeFunc: func(ctx context.Context, req *changeCartSlot.Request) (*changeCartSlot.Response, error) {
				assert.Equal(t, int64(7), req.UserID)
				assert.Equal(t, int64(3), req.CartID)
				assert.Equal(t, int64(2), req.SlotID)
				return &changeCartSlot.Response{
					CartID:    3,
					SlotID:    2,
					SlotStart: base,
					SlotEnd:   base.Add(time.Hour),
					Changed:   true,
				}, nil
			},
		}

		rec := patchSlot(t, uc, `{"slotId": 2}`)

		require.Equal(t, http.StatusOK, rec.Code)

		var resp changeCartSlotHandler.ChangeSlotResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.True(t, resp.Changed)
		assert.Equal(t, int64(2), resp.SlotID)
	})

	t.Run("same_slot_ok_not_changed", func(t *testing.T) {
		uc := &mockUseCase{
			executeFunc: func(ctx context.Context, req *changeCartSlot.Request) (*changeCartSlot.Response, error) {
				return &changeCartSlot.Response{CartID: 3, SlotID: 2, Changed: false}, nil
			},
		}

		rec := patchSlot(t, uc, `{"slotId": 2}`)

		require.Equal(t, http.StatusOK, rec.Code)

		var resp changeCartSlotHandler.ChangeSlotResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.False(t, resp.Changed)
	})

	t.Run("full_slot_is_conflict", func(t *testing.T) {
		uc := &mockUseCase{
			executeFunc: func(ctx context.Context, req *changeCartSlot.Request) (*changeCartSlot.Response, error) {
				return nil, changeCartSlot.ErrSlotFull
			},
		}

		rec := patchSlot(t, uc, `{"slotId": 2}`)
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("foreign_cart_is_forbidden", func(t *testing.T) {
		uc := &mockUseCase{
			executeFunc: func(ctx context.Context, req *changeCartSlot.Request) (*changeCartSlot.Response, error) {
				return nil, changeCartSlot.ErrNotCartOwner
			},
		}

		rec := patchSlot(t, uc, `{"slotId": 2}`)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("wrong_delivery_is_unprocessable", func(t *testing.T) {
		uc := &mockUseCase{
			executeFunc: func(ctx context.Context, req *changeCartSlot.Request) (*changeCartSlot.Response, error) {
				return nil, changeCartSlot.ErrWrongDelivery
			},
		}

		rec := patchSlot(t, uc, `{"slotId": 9}`)
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("bad_body_is_bad_request", func(t *testing.T) {
		uc := &mockUseCase{
			executeFunc: func(ctx context.Context, req *changeCartSlot.Request) (*changeCartSlot.Response, error) {
				t.Fatal("use case must not be called")
				return nil, nil
			},
		}

		rec := patchSlot(t, uc, `{"slotId": "two"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}
