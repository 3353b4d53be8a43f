package controller

import (
	"context"
	"strconv"
	"sync"

	"go.uber.org/zap"

	"reytech/internal/dialog"
	"reytech/internal/domain"
	apperrors "reytech/internal/errors"
	"reytech/internal/view"
)

type StockRepository interface {
	AdjustStock(ctx context.Context, id domain.ProductID, direction domain.StockDirection, quantity *int) (*domain.Product, error)
}

type StockState struct {
	Product    domain.Product
	Adjusting  bool
	Quantity   string
	Submitting bool
	Dialog     dialog.State
}

// StockController backs the detail view of one product and its stock
// adjustment sub-flow.
type StockController struct {
	repo       StockRepository
	onAdjusted func(ctx context.Context)
	logger     *zap.Logger

	mu         sync.Mutex
	life       *view.Lifetime
	product    domain.Product
	adjusting  bool
	quantity   string
	submitting bool
	dialog     dialog.Dialog
}

// NewStockController opens the detail view for product. onAdjusted runs
// after a successful adjustment; the list uses it to close the view and
// re-fetch.
func NewStockController(product domain.Product, repo StockRepository, onAdjusted func(ctx context.Context), logger *zap.Logger) *StockController {
	return &StockController{
		repo:       repo,
		onAdjusted: onAdjusted,
		logger:     logger.With(zap.String("productId", product.ID.String())),
		life:       view.NewLifetime(),
		product:    product,
	}
}

func (c *StockController) OpenAdjustment() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.adjusting = true
}

func (c *StockController) SetQuantity(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.quantity = view.FilterDigits(text)
}

func (c *StockController) Increase(ctx context.Context) {
	c.adjust(ctx, domain.StockIncrease)
}

func (c *StockController) Decrease(ctx context.Context) {
	c.adjust(ctx, domain.StockDecrease)
}

func (c *StockController) DismissDialog() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dialog.Dismiss()
}

// Close ends the view. A response still in flight is dropped on arrival.
func (c *StockController) Close() {
	c.life.End()
}

func (c *StockController) Open() bool {
	return c.life.Alive()
}

func (c *StockController) State() StockState {
	c.mu.Lock()
	defer c.mu.Unlock()

	return StockState{
		Product:    c.product,
		Adjusting:  c.adjusting,
		Quantity:   c.quantity,
		Submitting: c.submitting,
		Dialog:     c.dialog.State(),
	}
}

func (c *StockController) adjust(ctx context.Context, direction domain.StockDirection) {
	c.mu.Lock()
	if !c.life.Alive() || c.submitting {
		c.mu.Unlock()
		return
	}
	c.submitting = true
	id := c.product.ID
	quantity := parseQuantity(c.quantity)
	c.mu.Unlock()

	c.logger.Info("adjusting stock", zap.String("direction", string(direction)), zap.Intp("quantity", quantity))

	updated, err := c.repo.AdjustStock(ctx, id, direction, quantity)

	c.mu.Lock()
	c.submitting = false
	if !c.life.Alive() {
		c.mu.Unlock()
		c.logger.Debug("detail view closed, dropping stock adjustment result")
		return
	}

	if err != nil {
		c.logger.Warn("stock adjustment failed", zap.String("direction", string(direction)), zap.Error(err))
		c.dialog.Notify(adjustFailureMessage(direction, err))
		c.mu.Unlock()
		return
	}

	c.quantity = ""
	if updated != nil {
		c.product = *updated
	}
	c.mu.Unlock()

	if c.onAdjusted != nil {
		c.onAdjusted(ctx)
	}
}

// parseQuantity returns nil when the text is not a usable number; the
// server rejects it.
func parseQuantity(text string) *int {
	n, err := strconv.Atoi(text)
	if err != nil {
		return nil
	}
	return &n
}

func adjustFailureMessage(direction domain.StockDirection, err error) string {
	if ve, ok := apperrors.IsValidationError(err); ok && ve.Message != "" {
		return ve.Message
	}
	if direction == domain.StockDecrease {
		return MsgDecreaseFailed
	}
	return MsgIncreaseFailed
}
