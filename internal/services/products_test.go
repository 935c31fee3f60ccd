package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/avolkov/backoffice/internal/api"
	"github.com/avolkov/backoffice/internal/grid"
	"github.com/avolkov/backoffice/internal/models"
)

func newProductService(t *testing.T, handler http.Handler) *ProductService {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewProductService(api.New(srv.URL, nil, nil, nil), nil)
}

func TestProductList_ToleratesPascalCase(t *testing.T) {
	svc := newProductService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/Product", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"Id": 1, "Name": "mug", "Price": 10, "CategoryId": 2, "CategoryName": "kitchen"},
			{"id": 2, "name": "plate", "price": 25, "categoryId": 2}
		]`))
	}))

	products, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 2)
	require.Equal(t, "mug", products[0].Name)
	require.Equal(t, int64(2), products[1].ID)
}

func TestProductUpdate_ReturnsEchoWhenPresent(t *testing.T) {
	svc := newProductService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/api/Product/1", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"Id": 1, "Name": "mug (2nd edition)", "Price": 12}`))
	}))

	echo, err := svc.Update(context.Background(), models.Product{ID: 1, Name: "mug", Price: 12})
	require.NoError(t, err)
	require.NotNil(t, echo)
	require.Equal(t, "mug (2nd edition)", echo.Name)
}

func TestProductUpdate_NoBodyMeansNoEcho(t *testing.T) {
	svc := newProductService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	echo, err := svc.Update(context.Background(), models.Product{ID: 1, Name: "mug"})
	require.NoError(t, err)
	require.Nil(t, echo)
}

func TestProductEditor_CategoryChangeRefreshesName(t *testing.T) {
	var updated models.Product
	svc := newProductService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&updated))
		w.WriteHeader(http.StatusNoContent)
	}))

	categories := []models.Category{{ID: 2, Name: "kitchen"}, {ID: 5, Name: "garden"}}
	editor := svc.Editor(categories, nil)

	row := models.Product{ID: 1, Name: "mug", Price: 10, CategoryID: 2, CategoryName: "kitchen"}
	err := editor.Edit(context.Background(), &row, grid.Edit{Field: "categoryId", Value: "5", Previous: "2"})
	require.NoError(t, err)

	require.Equal(t, int64(5), row.CategoryID)
	require.Equal(t, "garden", row.CategoryName)
	require.Equal(t, "garden", updated.CategoryName)
}

func TestProductEditor_EmptyNameRevertsWithoutNetwork(t *testing.T) {
	svc := newProductService(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("no network call expected for an invalid name")
	}))

	rec := &grid.Recorder{}
	editor := svc.Editor(nil, rec)

	row := models.Product{ID: 1, Name: "mug", Price: 10}
	err := editor.Edit(context.Background(), &row, grid.Edit{Field: "name", Value: "   ", Previous: "mug"})
	require.NoError(t, err)

	require.Equal(t, "mug", row.Name)
	notes := rec.Notifications()
	require.Len(t, notes, 1)
	require.Equal(t, grid.LevelWarning, notes[0].Level)
}

func TestImageUpload_SniffsContentTypeAndReturnsURL(t *testing.T) {
	var gotCT string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/ProductImage/3", r.URL.Path)
		gotCT = r.Header.Get("Content-Type")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"Url": "/img/3.png"}`))
	}))
	t.Cleanup(srv.Close)

	svc := NewImageService(api.New(srv.URL, nil, nil, nil), nil)
	png := append([]byte("\x89PNG\r\n\x1a\n"), make([]byte, 16)...)
	url, err := svc.Upload(context.Background(), 3, png)
	require.NoError(t, err)
	require.Equal(t, "image/png", gotCT)
	require.Equal(t, "/img/3.png", url)
}
