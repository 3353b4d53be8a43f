package view

type Screen string

const (
	ScreenHome        Screen = "Home"
	ScreenMenu        Screen = "Menu"
	ScreenStock       Screen = "Stock"
	ScreenAddProduct  Screen = "AddProduct"
	ScreenEditProduct Screen = "EditProduct"
)

// Title is the header shown for a screen. Home and Menu have none.
func (s Screen) Title() string {
	switch s {
	case ScreenStock:
		return "Estoque"
	case ScreenAddProduct:
		return "Cadastrar Produto"
	case ScreenEditProduct:
		return "Editar Produto"
	default:
		return ""
	}
}

// Navigator is the host stack the controllers drive on terminal transitions.
type Navigator interface {
	NavigateTo(screen Screen, params any)
	GoBack()
	Replace(screen Screen)
}
