package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/avolkov/backoffice/internal/api"
	"github.com/avolkov/backoffice/internal/grid"
	"github.com/avolkov/backoffice/internal/models"
)

func newOrderService(t *testing.T, handler http.Handler) *OrderService {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewOrderService(api.New(srv.URL, nil, nil, nil), nil)
}

func TestEnsureOrder_ConcurrentCallersIssueOneCreate(t *testing.T) {
	var creates atomic.Int64
	svc := newOrderService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/Order", r.URL.Path)
		creates.Add(1)
		time.Sleep(30 * time.Millisecond)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"Id": 501, "UserId": 42, "Status": "draft"}`))
	}))

	order := models.Order{UserID: 42}

	const callers = 8
	ids := make([]int64, callers)
	errs := make([]error, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			local := order // each caller sees the same uncreated order
			ids[i], errs[i] = svc.EnsureOrder(context.Background(), &local)
		}(i)
	}
	wg.Wait()

	require.Equal(t, int64(1), creates.Load())
	for i := 0; i < callers; i++ {
		require.NoError(t, errs[i])
		require.Equal(t, int64(501), ids[i])
	}
}

func TestEnsureOrder_ExistingIDShortCircuits(t *testing.T) {
	svc := newOrderService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no request expected for an already-created order")
	}))

	order := models.Order{ID: 9, UserID: 42}
	id, err := svc.EnsureOrder(context.Background(), &order)
	require.NoError(t, err)
	require.Equal(t, int64(9), id)
}

func TestAddLine_RequiresOrderID(t *testing.T) {
	svc := newOrderService(t, http.NewServeMux())
	_, err := svc.AddLine(context.Background(), models.OrderLine{ProductID: 1, Quantity: 1})
	require.Error(t, err)
}

func TestAddLine_PostsRecalculatedLine(t *testing.T) {
	var posted models.OrderLine
	svc := newOrderService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/OrderItem", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&posted))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": 7, "orderId": 5, "productId": 3, "quantity": 2, "price": 10, "rowSum": 20}`))
	}))

	line, err := svc.AddLine(context.Background(), models.OrderLine{
		OrderID: 5, ProductID: 3, ProductName: "mug", Price: 10, Quantity: 2,
	})
	require.NoError(t, err)
	require.Equal(t, float64(20), posted.RowSum)
	require.Equal(t, int64(7), line.ID)
}

func TestLineEditor_ProductChangeRefreshesDenormalizedFields(t *testing.T) {
	var updated models.OrderLine
	svc := newOrderService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/api/OrderItem/7", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&updated))
		w.WriteHeader(http.StatusNoContent)
	}))

	products := []models.Product{
		{ID: 3, Name: "mug", Price: 10},
		{ID: 4, Name: "plate", Price: 25},
	}
	rec := &grid.Recorder{}
	editor := svc.LineEditor(products, rec)

	row := models.OrderLine{ID: 7, OrderID: 5, ProductID: 3, ProductName: "mug", Price: 10, Quantity: 2, RowSum: 20}
	err := editor.Edit(context.Background(), &row, grid.Edit{Field: "productId", Value: "4", Previous: "3"})
	require.NoError(t, err)

	// Name and price come from the loaded product list, total recomputed.
	require.Equal(t, int64(4), row.ProductID)
	require.Equal(t, "plate", row.ProductName)
	require.Equal(t, float64(25), row.Price)
	require.Equal(t, float64(50), row.RowSum)
	require.Equal(t, row, updated)
}

func TestLineEditor_UnknownProductRejectedLocally(t *testing.T) {
	svc := newOrderService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no network call expected for an unknown product id")
	}))

	rec := &grid.Recorder{}
	editor := svc.LineEditor([]models.Product{{ID: 3, Name: "mug", Price: 10}}, rec)

	row := models.OrderLine{ID: 7, ProductID: 3, Quantity: 2, Price: 10, RowSum: 20}
	err := editor.Edit(context.Background(), &row, grid.Edit{Field: "productId", Value: "99", Previous: "3"})
	require.NoError(t, err)

	require.Equal(t, int64(3), row.ProductID)
	notes := rec.Notifications()
	require.Len(t, notes, 1)
	require.Equal(t, grid.LevelWarning, notes[0].Level)
}

func TestUpdateLine_RemoteFailureSurfacesServerMessage(t *testing.T) {
	svc := newOrderService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"message":"order already shipped"}`))
	}))

	rec := &grid.Recorder{}
	editor := svc.LineEditor([]models.Product{{ID: 3, Name: "mug", Price: 10}}, rec)

	row := models.OrderLine{ID: 7, ProductID: 3, Quantity: 2, Price: 10, RowSum: 20}
	before := row
	err := editor.Edit(context.Background(), &row, grid.Edit{Field: "quantity", Value: "5", Previous: "2"})
	require.Error(t, err)

	require.Equal(t, before, row)
	notes := rec.Notifications()
	require.Len(t, notes, 1)
	require.Equal(t, grid.LevelError, notes[0].Level)
	require.Equal(t, "order already shipped", notes[0].Message)
}
