package controller

import (
	"context"
	"sync"

	"reytech/internal/domain"
	"reytech/internal/view"
)

// Mock implementations

type mockRepository struct {
	mu    sync.Mutex
	calls []string

	ListFunc        func(ctx context.Context) ([]domain.Product, error)
	DeleteFunc      func(ctx context.Context, id domain.ProductID) error
	CreateFunc      func(ctx context.Context, draft domain.Draft) (*domain.Product, error)
	UpdateFunc      func(ctx context.Context, id domain.ProductID, draft domain.Draft) (*domain.Product, error)
	AdjustStockFunc func(ctx context.Context, id domain.ProductID, direction domain.StockDirection, quantity *int) (*domain.Product, error)
}

func (m *mockRepository) record(call string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, call)
}

func (m *mockRepository) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.calls))
	copy(out, m.calls)
	return out
}

func (m *mockRepository) List(ctx context.Context) ([]domain.Product, error) {
	m.record("List")
	return m.ListFunc(ctx)
}

func (m *mockRepository) Delete(ctx context.Context, id domain.ProductID) error {
	m.record("Delete")
	return m.DeleteFunc(ctx, id)
}

func (m *mockRepository) Create(ctx context.Context, draft domain.Draft) (*domain.Product, error) {
	m.record("Create")
	return m.CreateFunc(ctx, draft)
}

func (m *mockRepository) Update(ctx context.Context, id domain.ProductID, draft domain.Draft) (*domain.Product, error) {
	m.record("Update")
	return m.UpdateFunc(ctx, id, draft)
}

func (m *mockRepository) AdjustStock(ctx context.Context, id domain.ProductID, direction domain.StockDirection, quantity *int) (*domain.Product, error) {
	m.record("AdjustStock")
	return m.AdjustStockFunc(ctx, id, direction, quantity)
}

type navCall struct {
	Action string
	Screen view.Screen
	Params any
}

type mockNavigator struct {
	mu    sync.Mutex
	calls []navCall
}

func (m *mockNavigator) NavigateTo(screen view.Screen, params any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, navCall{Action: "navigate", Screen: screen, Params: params})
}

func (m *mockNavigator) GoBack() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, navCall{Action: "back"})
}

func (m *mockNavigator) Replace(screen view.Screen) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, navCall{Action: "replace", Screen: screen})
}

func (m *mockNavigator) Calls() []navCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]navCall, len(m.calls))
	copy(out, m.calls)
	return out
}

type mockPicker struct {
	RequestPermissionFunc func(ctx context.Context) (bool, error)
	PickImageFunc         func(ctx context.Context) (string, bool, error)
}

func (m *mockPicker) RequestPermission(ctx context.Context) (bool, error) {
	return m.RequestPermissionFunc(ctx)
}

func (m *mockPicker) PickImage(ctx context.Context) (string, bool, error) {
	return m.PickImageFunc(ctx)
}
