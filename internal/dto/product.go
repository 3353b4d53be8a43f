package dto

// StockAdjustmentRequest is the body of POST /api/products/{id}/entrada|saida.
// A nil Quantity is sent as null and left for the server to reject.
type StockAdjustmentRequest struct {
	Quantity *int `json:"quantity" validate:"required,gt=0"`
}

// ProductForm is the text part of the multipart product form as the API
// receives it. The image travels as a separate file part.
type ProductForm struct {
	Name        string `validate:"required,max=120"`
	Value       string `validate:"required,numeric"`
	Quantity    string `validate:"required,number"`
	MinQuantity string `validate:"required,number"`
}

// ErrorResponse covers both failure shapes the API uses: an errors list on
// product create/update and a single error string on stock adjustments.
type ErrorResponse struct {
	Errors []string `json:"errors,omitempty"`
	Error  string   `json:"error,omitempty"`
}

// Messages returns the server messages in order, or nil when the body had none.
func (r ErrorResponse) Messages() []string {
	if len(r.Errors) > 0 {
		return r.Errors
	}
	if r.Error != "" {
		return []string{r.Error}
	}
	return nil
}

// Multipart field names of the product form.
const (
	FieldName        = "name"
	FieldValue       = "value"
	FieldQuantity    = "quantity"
	FieldMinQuantity = "minQuantity"
	FieldImage       = "image"
)
