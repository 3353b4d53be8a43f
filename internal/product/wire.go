package product

import (
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"reytech/internal/config"
	"reytech/internal/domain"
	"reytech/internal/product/controller"
	"reytech/internal/product/repository"
	"reytech/internal/view"
)

// Module builds the product screens' controllers around one API client.
type Module struct {
	repo      Repository
	baseURL   string
	formatter view.CurrencyFormatter
	logger    *zap.Logger
}

func NewModule(cfg config.APIConfig, logger *zap.Logger) *Module {
	repo := repository.NewHTTPRepository(cfg.BaseURL, cfg.Timeout, logger.Named("api"))
	return NewModuleWithRepository(repo, cfg.BaseURL, logger)
}

// NewModuleWithRepository is NewModule with the API client supplied by the caller.
func NewModuleWithRepository(repo Repository, baseURL string, logger *zap.Logger) *Module {
	return &Module{
		repo:      repo,
		baseURL:   baseURL,
		formatter: view.NewBRLFormatter(),
		logger:    logger,
	}
}

func (m *Module) NewListController(nav view.Navigator) *controller.ListController {
	return controller.NewListController(m.repo, m.repo, nav, m.logger.Named("list"))
}

func (m *Module) NewCreateForm(picker view.ImagePicker, nav view.Navigator) *controller.FormController {
	return controller.NewCreateForm(m.repo, picker, nav, m.logger.Named("form"))
}

func (m *Module) NewEditForm(product domain.Product, picker view.ImagePicker, nav view.Navigator) *controller.FormController {
	return controller.NewEditForm(product, m.repo, picker, nav, m.logger.Named("form"))
}

// ImageURL is where the image of product is served from, or the placeholder.
func (m *Module) ImageURL(product domain.Product) string {
	return view.ImageURL(m.baseURL, product.Image)
}

func (m *Module) FormatValue(value decimal.Decimal) string {
	return m.formatter.Format(value)
}
