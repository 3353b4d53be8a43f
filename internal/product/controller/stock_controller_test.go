package controller

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"reytech/internal/domain"
	apperrors "reytech/internal/errors"
)

func stockProduct() domain.Product {
	return domain.Product{ID: "5", Name: "Controle remoto", Value: decimal.RequireFromString("35.00"), Quantity: 8, MinQuantity: 10}
}

func TestStockController_OpenAdjustmentAndFilter(t *testing.T) {
	c := NewStockController(stockProduct(), &mockRepository{}, nil, zap.NewNop())

	assert.False(t, c.State().Adjusting)
	c.OpenAdjustment()
	c.SetQuantity("1x5")

	state := c.State()
	assert.True(t, state.Adjusting)
	assert.Equal(t, "15", state.Quantity)
}

func TestStockController_IncreaseSuccess(t *testing.T) {
	var gotDirection domain.StockDirection
	var gotQuantity *int
	repo := &mockRepository{
		AdjustStockFunc: func(ctx context.Context, id domain.ProductID, direction domain.StockDirection, quantity *int) (*domain.Product, error) {
			gotDirection = direction
			gotQuantity = quantity
			p := stockProduct()
			p.Quantity += *quantity
			return &p, nil
		},
	}
	adjusted := 0
	c := NewStockController(stockProduct(), repo, func(ctx context.Context) { adjusted++ }, zap.NewNop())
	c.OpenAdjustment()
	c.SetQuantity("4")

	c.Increase(context.Background())

	assert.Equal(t, domain.StockIncrease, gotDirection)
	require.NotNil(t, gotQuantity)
	assert.Equal(t, 4, *gotQuantity)
	assert.Equal(t, 1, adjusted)

	state := c.State()
	assert.Empty(t, state.Quantity)
	assert.Equal(t, 12, state.Product.Quantity)
	assert.False(t, state.Submitting)
	assert.False(t, state.Dialog.Visible)
}

func TestStockController_DecreaseFailureKeepsQuantity(t *testing.T) {
	tests := []struct {
		name      string
		direction domain.StockDirection
		err       error
		message   string
	}{
		{
			name:      "server message",
			direction: domain.StockDecrease,
			err:       apperrors.NewValidationError("Quantidade insuficiente em estoque"),
			message:   "Quantidade insuficiente em estoque",
		},
		{
			name:      "decrease fallback",
			direction: domain.StockDecrease,
			err:       apperrors.NewNetworkError("unexpected status code: 500", nil),
			message:   MsgDecreaseFailed,
		},
		{
			name:      "increase fallback",
			direction: domain.StockIncrease,
			err:       apperrors.NewNetworkError("failed to send request", nil),
			message:   MsgIncreaseFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &mockRepository{
				AdjustStockFunc: func(ctx context.Context, id domain.ProductID, direction domain.StockDirection, quantity *int) (*domain.Product, error) {
					return nil, tt.err
				},
			}
			adjusted := false
			c := NewStockController(stockProduct(), repo, func(ctx context.Context) { adjusted = true }, zap.NewNop())
			c.OpenAdjustment()
			c.SetQuantity("20")

			if tt.direction == domain.StockDecrease {
				c.Decrease(context.Background())
			} else {
				c.Increase(context.Background())
			}

			state := c.State()
			assert.False(t, adjusted)
			assert.Equal(t, "20", state.Quantity)
			assert.Equal(t, 8, state.Product.Quantity)
			assert.True(t, state.Dialog.Visible)
			assert.Equal(t, tt.message, state.Dialog.Message)
			assert.False(t, state.Submitting)

			c.DismissDialog()
			assert.False(t, c.State().Dialog.Visible)
		})
	}
}

func TestStockController_EmptyQuantitySentAsNull(t *testing.T) {
	sawNil := false
	repo := &mockRepository{
		AdjustStockFunc: func(ctx context.Context, id domain.ProductID, direction domain.StockDirection, quantity *int) (*domain.Product, error) {
			sawNil = quantity == nil
			return nil, apperrors.NewValidationError("Quantidade é obrigatória")
		},
	}
	c := NewStockController(stockProduct(), repo, nil, zap.NewNop())
	c.OpenAdjustment()

	c.Increase(context.Background())

	assert.True(t, sawNil)
	assert.Equal(t, "Quantidade é obrigatória", c.State().Dialog.Message)
}

func TestStockController_ClosedDropsResult(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	repo := &mockRepository{
		AdjustStockFunc: func(ctx context.Context, id domain.ProductID, direction domain.StockDirection, quantity *int) (*domain.Product, error) {
			close(started)
			<-release
			p := stockProduct()
			p.Quantity = 100
			return &p, nil
		},
	}
	adjusted := false
	c := NewStockController(stockProduct(), repo, func(ctx context.Context) { adjusted = true }, zap.NewNop())
	c.SetQuantity("92")

	done := make(chan struct{})
	go func() {
		c.Increase(context.Background())
		close(done)
	}()
	<-started

	c.Close()
	close(release)
	<-done

	state := c.State()
	assert.False(t, adjusted)
	assert.Equal(t, 8, state.Product.Quantity)
	assert.False(t, c.Open())

	c.Decrease(context.Background())
	assert.Len(t, repo.Calls(), 1)
}

func TestStockController_AdjustIgnoredWhileInFlight(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	repo := &mockRepository{
		AdjustStockFunc: func(ctx context.Context, id domain.ProductID, direction domain.StockDirection, quantity *int) (*domain.Product, error) {
			close(started)
			<-release
			p := stockProduct()
			return &p, nil
		},
	}
	c := NewStockController(stockProduct(), repo, nil, zap.NewNop())
	c.SetQuantity("1")

	done := make(chan struct{})
	go func() {
		c.Increase(context.Background())
		close(done)
	}()
	<-started

	assert.True(t, c.State().Submitting)
	c.Decrease(context.Background())

	close(release)
	<-done

	assert.Equal(t, []string{"AdjustStock"}, repo.Calls())
}
