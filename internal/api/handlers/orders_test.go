package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"order-fulfillment-service/internal/api/dto"
	"order-fulfillment-service/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAnnotator struct {
	orders []*domain.Order
	err    error
}

func (s *stubAnnotator) AnnotateOpenOrders(context.Context) ([]*domain.Order, error) {
	return s.orders, s.err
}

func TestOrderHandlerList(t *testing.T) {
	registered := time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC)

	h := &OrderHandler{Pipeline: &stubAnnotator{orders: []*domain.Order{
		{
			OrderID:      100,
			FirstName:    "Ann",
			LastName:     "Smith",
			Phone:        "+70000000000",
			Address:      "order street",
			Status:       domain.StatusPending,
			PaymentType:  domain.PaymentCash,
			RegisteredAt: registered,
			TotalPrice:   200,
			Items: []domain.OrderItem{
				{ProductID: 1, Quantity: 2, Price: 100},
			},
			RankedRestaurants: []domain.RankedRestaurant{
				{RestaurantID: 1, Name: "R1", DistanceKm: 15.61},
			},
		},
	}}}

	req := httptest.NewRequest(http.MethodGet, "/orders", nil)
	rec := httptest.NewRecorder()
	h.List(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var res dto.ListOrdersResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.Len(t, res.Orders, 1)

	o := res.Orders[0]
	assert.Equal(t, 100, o.OrderID)
	assert.Equal(t, "pending", o.Status)
	assert.Equal(t, 200.0, o.TotalPrice)
	require.Len(t, o.RankedRestaurants, 1)
	assert.Equal(t, "R1", o.RankedRestaurants[0].Name)
	assert.Equal(t, 15.61, o.RankedRestaurants[0].DistanceKm)
}

func TestOrderHandlerListEmpty(t *testing.T) {
	h := &OrderHandler{Pipeline: &stubAnnotator{}}

	req := httptest.NewRequest(http.MethodGet, "/orders", nil)
	rec := httptest.NewRecorder()
	h.List(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	// An empty batch still serializes as an array, not null.
	assert.JSONEq(t, `{"orders":[]}`, rec.Body.String())
}

func TestOrderHandlerListPipelineFailure(t *testing.T) {
	h := &OrderHandler{Pipeline: &stubAnnotator{err: errors.New("db gone")}}

	req := httptest.NewRequest(http.MethodGet, "/orders", nil)
	rec := httptest.NewRecorder()
	h.List(rec, req)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"internal server error"}`, rec.Body.String())
}

func TestOrderHandlerListRejectsPost(t *testing.T) {
	h := &OrderHandler{Pipeline: &stubAnnotator{}}

	req := httptest.NewRequest(http.MethodPost, "/orders", nil)
	rec := httptest.NewRecorder()
	h.List(rec, req)

	require.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, http.MethodGet, rec.Header().Get("Allow"))
}
