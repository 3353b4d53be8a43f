package view

// Field identifies an input of the product form.
type Field string

const (
	FieldName        Field = "name"
	FieldValue       Field = "value"
	FieldQuantity    Field = "quantity"
	FieldMinQuantity Field = "minQuantity"

	// NoField means focus was released, as when the keyboard is dismissed.
	NoField Field = ""
)

// FieldOrder is the order in which "next" moves focus through a form.
type FieldOrder []Field

var ProductFormOrder = FieldOrder{FieldName, FieldValue, FieldQuantity, FieldMinQuantity}

func (o FieldOrder) First() Field {
	if len(o) == 0 {
		return NoField
	}
	return o[0]
}

// Next returns the field after current, or NoField after the last one or
// when current is not part of the order.
func (o FieldOrder) Next(current Field) Field {
	for i, f := range o {
		if f == current {
			if i+1 < len(o) {
				return o[i+1]
			}
			return NoField
		}
	}
	return NoField
}
