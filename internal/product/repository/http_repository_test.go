package repository

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"reytech/internal/domain"
	apperrors "reytech/internal/errors"
)

var pngHeader = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x02\x00\x00\x00")

func newTestRepository(t *testing.T, handler http.HandlerFunc) (*HTTPRepository, *int32) {
	t.Helper()

	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		handler(w, r)
	}))
	t.Cleanup(server.Close)

	return NewHTTPRepository(server.URL+"/", 0, zap.NewNop()), &calls
}

func writeTempImage(t *testing.T, name string, content []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, content, 0o600))
	return path
}

// Unit Tests

func TestNewHTTPRepository(t *testing.T) {
	repo := NewHTTPRepository("http://localhost:3000/", 0, zap.NewNop())

	assert.NotNil(t, repo)
	assert.Equal(t, "http://localhost:3000", repo.baseURL)
	assert.Zero(t, repo.httpClient.Timeout)
}

func TestImageContentType_Fallbacks(t *testing.T) {
	path := writeTempImage(t, "notes.heic", []byte("not really an image"))
	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	ct, err := imageContentType(f, "notes.HEIC")
	require.NoError(t, err)
	assert.Equal(t, "image/heic", ct)

	ct, err = imageContentType(f, "noext")
	require.NoError(t, err)
	assert.Equal(t, "image", ct)
}

// HTTP Tests

func TestList_Success(t *testing.T) {
	repo, calls := newTestRepository(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/products", r.URL.Path)
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[
			{"id": 2, "name": "Split", "value": "1899.90", "quantity": 1, "minQuantity": 2, "image": "split.jpg"},
			{"id": 1, "name": "Cabo", "value": 3.5, "quantity": 100, "minQuantity": 10, "image": null}
		]`))
	})

	products, err := repo.List(context.Background())

	require.NoError(t, err)
	require.Len(t, products, 2)
	assert.Equal(t, domain.ProductID("2"), products[0].ID)
	assert.Equal(t, domain.ProductID("1"), products[1].ID)
	assert.True(t, decimal.RequireFromString("1899.9").Equal(products[0].Value))
	assert.True(t, products[0].LowStock())
	assert.Equal(t, int32(1), atomic.LoadInt32(calls))
}

func TestList_NullBodyIsEmpty(t *testing.T) {
	repo, _ := newTestRepository(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`null`))
	})

	products, err := repo.List(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, products)
	assert.Empty(t, products)
}

func TestList_ServerError(t *testing.T) {
	repo, calls := newTestRepository(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("Internal Server Error"))
	})

	products, err := repo.List(context.Background())

	assert.Nil(t, products)
	ne, ok := apperrors.IsNetworkError(err)
	require.True(t, ok)
	assert.Contains(t, ne.Error(), "500")
	assert.Equal(t, int32(1), atomic.LoadInt32(calls), "no retries")
}

func TestList_InvalidJSON(t *testing.T) {
	repo, _ := newTestRepository(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("invalid json {{{"))
	})

	_, err := repo.List(context.Background())

	_, ok := apperrors.IsNetworkError(err)
	assert.True(t, ok)
}

func TestList_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := server.URL
	server.Close()

	repo := NewHTTPRepository(url, 0, zap.NewNop())
	_, err := repo.List(context.Background())

	_, ok := apperrors.IsNetworkError(err)
	assert.True(t, ok)
}

func TestCreate_WithoutImage(t *testing.T) {
	repo, calls := newTestRepository(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/products", r.URL.Path)

		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "Sensor", r.FormValue("name"))
		assert.Equal(t, "12.5", r.FormValue("value"))
		assert.Equal(t, "10", r.FormValue("quantity"))
		assert.Equal(t, "3", r.FormValue("minQuantity"))
		assert.Empty(t, r.MultipartForm.File["image"])

		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id": 9, "name": "Sensor", "value": 12.5, "quantity": 10, "minQuantity": 3}`))
	})

	product, err := repo.Create(context.Background(), domain.Draft{
		Name:        "Sensor",
		Value:       "12.5",
		Quantity:    "10",
		MinQuantity: "3",
	})

	require.NoError(t, err)
	assert.Equal(t, domain.ProductID("9"), product.ID)
	assert.Equal(t, int32(1), atomic.LoadInt32(calls))
}

func TestCreate_WithImage(t *testing.T) {
	imagePath := writeTempImage(t, "sensor.png", pngHeader)

	repo, calls := newTestRepository(t, func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseMultipartForm(1<<20))

		files := r.MultipartForm.File["image"]
		require.Len(t, files, 1)
		assert.Equal(t, "sensor.png", files[0].Filename)
		assert.Equal(t, "image/png", files[0].Header.Get("Content-Type"))

		f, err := files[0].Open()
		require.NoError(t, err)
		defer f.Close()
		content, err := io.ReadAll(f)
		require.NoError(t, err)
		assert.Equal(t, pngHeader, content)

		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id": 10, "name": "Sensor", "value": 12.5, "quantity": 10, "minQuantity": 3, "image": "abc.png"}`))
	})

	product, err := repo.Create(context.Background(), domain.Draft{
		Name:     "Sensor",
		ImageURI: "file://" + imagePath,
	})

	require.NoError(t, err)
	assert.Equal(t, "abc.png", product.Image)
	assert.Equal(t, int32(1), atomic.LoadInt32(calls))
}

func TestCreate_MissingImageFileMakesNoCall(t *testing.T) {
	repo, calls := newTestRepository(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})

	_, err := repo.Create(context.Background(), domain.Draft{
		Name:     "Sensor",
		ImageURI: filepath.Join(t.TempDir(), "gone.jpg"),
	})

	assert.Error(t, err)
	assert.Equal(t, int32(0), atomic.LoadInt32(calls))
}

func TestCreate_ValidationErrors(t *testing.T) {
	repo, _ := newTestRepository(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"errors": ["O nome é obrigatório", "O valor deve ser numérico"]}`))
	})

	_, err := repo.Create(context.Background(), domain.Draft{})

	ve, ok := apperrors.IsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, "O nome é obrigatório\nO valor deve ser numérico", ve.Message)
}

func TestCreate_NonJSONFailureIsNetworkError(t *testing.T) {
	repo, _ := newTestRepository(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>bad gateway</html>"))
	})

	_, err := repo.Create(context.Background(), domain.Draft{Name: "x"})

	_, ok := apperrors.IsNetworkError(err)
	assert.True(t, ok)
	_, ok = apperrors.IsValidationError(err)
	assert.False(t, ok)
}

func TestUpdate_UsesPutOnProductPath(t *testing.T) {
	repo, _ := newTestRepository(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/api/products/abc-1", r.URL.Path)
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "Cabo PP", r.FormValue("name"))

		w.Write([]byte(`{"id": "abc-1", "name": "Cabo PP", "value": "4.00", "quantity": 5, "minQuantity": 1}`))
	})

	product, err := repo.Update(context.Background(), "abc-1", domain.Draft{Name: "Cabo PP"})

	require.NoError(t, err)
	assert.Equal(t, "Cabo PP", product.Name)
}

func TestDelete_Success(t *testing.T) {
	repo, calls := newTestRepository(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/api/products/4", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	})

	err := repo.Delete(context.Background(), "4")

	assert.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(calls))
}

func TestDelete_NotFound(t *testing.T) {
	repo, _ := newTestRepository(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	err := repo.Delete(context.Background(), "4")

	_, ok := apperrors.IsNetworkError(err)
	assert.True(t, ok)
}

func TestAdjustStock_Increase(t *testing.T) {
	repo, _ := newTestRepository(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/api/products/7/entrada", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]interface{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, float64(5), body["quantity"])

		w.Write([]byte(`{"id": 7, "name": "Sensor", "value": 10, "quantity": 15, "minQuantity": 3}`))
	})

	qty := 5
	product, err := repo.AdjustStock(context.Background(), "7", domain.StockIncrease, &qty)

	require.NoError(t, err)
	assert.Equal(t, 15, product.Quantity)
}

func TestAdjustStock_DecreaseRejected(t *testing.T) {
	repo, _ := newTestRepository(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/products/7/saida", r.URL.Path)
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error": "Quantidade insuficiente em estoque"}`))
	})

	qty := 50
	_, err := repo.AdjustStock(context.Background(), "7", domain.StockDecrease, &qty)

	ve, ok := apperrors.IsValidationError(err)
	require.True(t, ok)
	assert.Equal(t, "Quantidade insuficiente em estoque", ve.Message)
}

func TestAdjustStock_NilQuantitySendsNull(t *testing.T) {
	repo, _ := newTestRepository(t, func(w http.ResponseWriter, r *http.Request) {
		body, err := io.ReadAll(r.Body)
		require.NoError(t, err)
		assert.JSONEq(t, `{"quantity": null}`, string(body))

		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error": "Quantidade inválida"}`))
	})

	_, err := repo.AdjustStock(context.Background(), "7", domain.StockIncrease, nil)

	_, ok := apperrors.IsValidationError(err)
	assert.True(t, ok)
}

func TestAdjustStock_InvalidDirectionMakesNoCall(t *testing.T) {
	repo, calls := newTestRepository(t, func(w http.ResponseWriter, r *http.Request) {})

	qty := 1
	_, err := repo.AdjustStock(context.Background(), "7", domain.StockDirection("transfer"), &qty)

	assert.Error(t, err)
	assert.Equal(t, int32(0), atomic.LoadInt32(calls))
}
