package testutil

import (
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"reytech/internal/domain"
	"reytech/internal/mockapi"
	"reytech/internal/server"
)

// MockAPI is an in-memory ReyTech API served over a real listener.
type MockAPI struct {
	Server    *httptest.Server
	Store     *mockapi.Store
	Metrics   *mockapi.Metrics
	UploadDir string
}

// SetupMockAPI starts a fresh API with uploads kept in a temporary
// directory. It is shut down when the test ends.
func SetupMockAPI(t *testing.T) *MockAPI {
	t.Helper()

	uploadDir := t.TempDir()
	store := mockapi.NewStore()
	metrics := mockapi.NewMetrics()
	handler := mockapi.NewHandler(store, mockapi.NewUploads(uploadDir), metrics, zap.NewNop())

	srv := httptest.NewServer(server.NewRouter(handler, metrics, uploadDir, zap.NewNop()))
	t.Cleanup(srv.Close)

	return &MockAPI{
		Server:    srv,
		Store:     store,
		Metrics:   metrics,
		UploadDir: uploadDir,
	}
}

func (m *MockAPI) URL() string {
	return m.Server.URL
}

// Seed stores products in order and returns them with their assigned ids.
func (m *MockAPI) Seed(products ...domain.Product) []domain.Product {
	seeded := make([]domain.Product, 0, len(products))
	for _, p := range products {
		seeded = append(seeded, m.Store.Create(p))
	}
	return seeded
}
