package mockapi

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"go.yaml.in/yaml/v3"

	"reytech/internal/domain"
)

type seedFile struct {
	Products []seedProduct `yaml:"products"`
}

type seedProduct struct {
	Name        string `yaml:"name"`
	Value       string `yaml:"value"`
	Quantity    int    `yaml:"quantity"`
	MinQuantity int    `yaml:"minQuantity"`
	Image       string `yaml:"image"`
}

// LoadSeed reads the products a fresh store starts with from a YAML file.
func LoadSeed(path string) ([]domain.Product, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading seed file: %w", err)
	}

	var seed seedFile
	if err := yaml.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("parsing seed file: %w", err)
	}

	products := make([]domain.Product, 0, len(seed.Products))
	for i, p := range seed.Products {
		value, err := decimal.NewFromString(p.Value)
		if err != nil {
			return nil, fmt.Errorf("seed product %d (%s): invalid value %q: %w", i, p.Name, p.Value, err)
		}
		products = append(products, domain.Product{
			Name:        p.Name,
			Value:       value,
			Quantity:    p.Quantity,
			MinQuantity: p.MinQuantity,
			Image:       p.Image,
		})
	}

	return products, nil
}

// Seed stores products in order.
func (s *Store) Seed(products []domain.Product) {
	for _, p := range products {
		s.Create(p)
	}
}
