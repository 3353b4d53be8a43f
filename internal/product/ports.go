package product

import (
	"reytech/internal/product/controller"
)

// Repository is everything the product screens need from the API.
type Repository interface {
	controller.ListRepository
	controller.FormRepository
	controller.StockRepository
}
