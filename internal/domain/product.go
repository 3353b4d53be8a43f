package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"path"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// ProductID is opaque to the client. The API may send it as a JSON number or string.
type ProductID string

func (id ProductID) String() string {
	return string(id)
}

func (id *ProductID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("decoding product id: %w", err)
		}
		*id = ProductID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("decoding product id: %w", err)
	}
	*id = ProductID(n.String())
	return nil
}

type Product struct {
	ID          ProductID       `json:"id"`
	Name        string          `json:"name"`
	Value       decimal.Decimal `json:"value"`
	Quantity    int             `json:"quantity"`
	MinQuantity int             `json:"minQuantity"`
	Image       string          `json:"image,omitempty"`
}

// UnmarshalJSON accepts quantities sent as JSON numbers or as numeric
// strings, which is how multipart form fields are echoed by some backends.
func (p *Product) UnmarshalJSON(data []byte) error {
	type plain Product
	aux := struct {
		*plain
		Quantity    flexInt `json:"quantity"`
		MinQuantity flexInt `json:"minQuantity"`
	}{plain: (*plain)(p)}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	p.Quantity = int(aux.Quantity)
	p.MinQuantity = int(aux.MinQuantity)
	return nil
}

type flexInt int

func (n *flexInt) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*n = 0
		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("decoding quantity: %w", err)
		}
		v, err := strconv.Atoi(strings.TrimSpace(s))
		if err != nil {
			return fmt.Errorf("decoding quantity %q: %w", s, err)
		}
		*n = flexInt(v)
		return nil
	}

	var v int
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("decoding quantity: %w", err)
	}
	*n = flexInt(v)
	return nil
}

// LowStock reports whether the product is below its reorder threshold.
func (p Product) LowStock() bool {
	return p.Quantity < p.MinQuantity
}

func (p Product) HasImage() bool {
	return p.Image != ""
}

// Draft holds the raw text of a product being created or edited.
type Draft struct {
	Name        string
	Value       string
	Quantity    string
	MinQuantity string
	ImageURI    string
}

// DraftFromProduct pre-fills a draft for the edit screen.
func DraftFromProduct(p Product) Draft {
	return Draft{
		Name:        p.Name,
		Value:       p.Value.String(),
		Quantity:    fmt.Sprintf("%d", p.Quantity),
		MinQuantity: fmt.Sprintf("%d", p.MinQuantity),
	}
}

func (d Draft) HasImage() bool {
	return d.ImageURI != ""
}

// ImageFilename is the last path segment of the picked image URI.
func (d Draft) ImageFilename() string {
	if d.ImageURI == "" {
		return ""
	}
	uri := strings.TrimPrefix(d.ImageURI, "file://")
	return path.Base(strings.ReplaceAll(uri, "\\", "/"))
}

type StockDirection string

const (
	StockIncrease StockDirection = "entrada"
	StockDecrease StockDirection = "saida"
)

func (d StockDirection) Valid() bool {
	return d == StockIncrease || d == StockDecrease
}
