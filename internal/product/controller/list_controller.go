package controller

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"reytech/internal/dialog"
	"reytech/internal/domain"
	"reytech/internal/view"
)

type ListRepository interface {
	List(ctx context.Context) ([]domain.Product, error)
	Delete(ctx context.Context, id domain.ProductID) error
}

type ListStatus string

const (
	StatusIdle       ListStatus = "idle"
	StatusLoading    ListStatus = "loading"
	StatusLoaded     ListStatus = "loaded"
	StatusLoadFailed ListStatus = "load_failed"
)

type ListState struct {
	Status   ListStatus
	Products []domain.Product
	Dialog   dialog.State
	// Detail is nil while no product is selected.
	Detail *StockController
}

// ListController owns the product list of the stock screen. The list is
// only ever replaced by a server response; the one local edit is dropping
// a product after the server confirmed its deletion.
type ListController struct {
	repo   ListRepository
	stock  StockRepository
	nav    view.Navigator
	logger *zap.Logger

	mu       sync.Mutex
	life     *view.Lifetime
	status   ListStatus
	products []domain.Product
	dialog   dialog.Dialog
	loadSeq  uint64
	deleting bool
	detail   *StockController
}

func NewListController(repo ListRepository, stock StockRepository, nav view.Navigator, logger *zap.Logger) *ListController {
	return &ListController{
		repo:   repo,
		stock:  stock,
		nav:    nav,
		logger: logger,
		life:   view.NewLifetime(),
		status: StatusIdle,
	}
}

// OnFocus reloads every time the screen regains focus.
func (c *ListController) OnFocus(ctx context.Context) {
	c.Load(ctx)
}

func (c *ListController) Load(ctx context.Context) {
	c.mu.Lock()
	if !c.life.Alive() {
		c.mu.Unlock()
		return
	}
	c.loadSeq++
	seq := c.loadSeq
	c.status = StatusLoading
	c.mu.Unlock()

	products, err := c.repo.List(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.life.Alive() || seq != c.loadSeq {
		c.logger.Debug("dropping stale product list", zap.Uint64("seq", seq))
		return
	}

	if err != nil {
		c.logger.Warn("loading products failed", zap.Error(err))
		c.status = StatusLoadFailed
		c.dialog.Notify(MsgServerUnavailable)
		return
	}

	c.products = products
	c.status = StatusLoaded
	c.logger.Debug("products loaded", zap.Int("count", len(products)))
}

// RequestDelete asks for confirmation. Nothing is sent until ConfirmDialog.
func (c *ListController) RequestDelete(id domain.ProductID) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.dialog.Ask(MsgConfirmDelete, func(ctx context.Context) {
		c.deleteProduct(ctx, id)
	})
}

// ConfirmDialog runs the pending confirm action, if the dialog has one.
func (c *ListController) ConfirmDialog(ctx context.Context) {
	c.mu.Lock()
	action := c.dialog.ConfirmAction()
	c.mu.Unlock()

	if action != nil {
		action(ctx)
	}
}

// DismissDialog closes the dialog and forgets any pending deletion.
func (c *ListController) DismissDialog() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.dialog.Dismiss()
}

func (c *ListController) deleteProduct(ctx context.Context, id domain.ProductID) {
	c.mu.Lock()
	if !c.life.Alive() || c.deleting {
		c.mu.Unlock()
		return
	}
	c.deleting = true
	c.mu.Unlock()

	err := c.repo.Delete(ctx, id)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.deleting = false

	if !c.life.Alive() {
		return
	}

	if err != nil {
		c.logger.Warn("deleting product failed", zap.String("productId", id.String()), zap.Error(err))
		c.dialog.Notify(MsgDeleteFailed)
		return
	}

	c.products = withoutProduct(c.products, id)
	c.dialog.Dismiss()
	c.logger.Info("product deleted", zap.String("productId", id.String()))
}

// Edit opens the edit screen for product.
func (c *ListController) Edit(product domain.Product) {
	c.nav.NavigateTo(view.ScreenEditProduct, product)
}

// Select opens the read-only detail view of product, closing any other.
func (c *ListController) Select(product domain.Product) *StockController {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.detail != nil {
		c.detail.Close()
	}

	var detail *StockController
	detail = NewStockController(product, c.stock, func(ctx context.Context) {
		c.closeDetail(detail)
		c.Load(ctx)
	}, c.logger)
	c.detail = detail

	return detail
}

func (c *ListController) CloseDetail() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.detail != nil {
		c.detail.Close()
		c.detail = nil
	}
}

func (c *ListController) closeDetail(detail *StockController) {
	c.mu.Lock()
	defer c.mu.Unlock()

	detail.Close()
	if c.detail == detail {
		c.detail = nil
	}
}

// Unmount ends the screen; results of requests still in flight are dropped.
func (c *ListController) Unmount() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.life.End()
	if c.detail != nil {
		c.detail.Close()
		c.detail = nil
	}
}

func (c *ListController) State() ListState {
	c.mu.Lock()
	defer c.mu.Unlock()

	products := make([]domain.Product, len(c.products))
	copy(products, c.products)

	return ListState{
		Status:   c.status,
		Products: products,
		Dialog:   c.dialog.State(),
		Detail:   c.detail,
	}
}

func withoutProduct(products []domain.Product, id domain.ProductID) []domain.Product {
	kept := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if p.ID != id {
			kept = append(kept, p)
		}
	}
	return kept
}
