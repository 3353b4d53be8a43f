package terminal

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"reytech/internal/dialog"
	"reytech/internal/domain"
	"reytech/internal/product"
	"reytech/internal/product/controller"
	"reytech/internal/view"
)

// stockScreen lists the products. Commands: "<n>" opens a product,
// "e <n>" edits it, "x <n>" deletes it, "r" reloads and "0" goes back.
type stockScreen struct {
	list   *controller.ListController
	module *product.Module
	nav    view.Navigator
}

func newStockScreen(list *controller.ListController, module *product.Module, nav view.Navigator) *stockScreen {
	return &stockScreen{list: list, module: module, nav: nav}
}

func (s *stockScreen) Focus(ctx context.Context) {
	s.list.OnFocus(ctx)
}

func (s *stockScreen) Unmount() {
	s.list.Unmount()
}

func (s *stockScreen) Render(w io.Writer) {
	header(w, view.ScreenStock.Title())

	state := s.list.State()
	if state.Detail != nil {
		s.renderDetail(w, state.Detail.State())
	} else {
		s.renderList(w, state)
	}

	if state.Dialog.Visible {
		renderDialog(w, state.Dialog)
	}
}

func (s *stockScreen) renderList(w io.Writer, state controller.ListState) {
	if len(state.Products) == 0 {
		switch state.Status {
		case controller.StatusLoading:
			fmt.Fprintln(w, labelLoading)
		case controller.StatusLoaded:
			fmt.Fprintln(w, labelEmpty)
		}
	}

	for i, p := range state.Products {
		fmt.Fprintf(w, "%d. %s\n", i+1, p.Name)
		fmt.Fprintf(w, "   %s %s | %s %d | %s %d%s\n",
			labelPrice, s.module.FormatValue(p.Value),
			labelCurrentQty, p.Quantity,
			labelMinimumQty, p.MinQuantity, lowStockMark(p),
		)
	}

	fmt.Fprintln(w)
	fmt.Fprintf(w, "<n> detalhes | e <n> editar | x <n> excluir | r) %s | 0) %s\n", labelReload, labelBack)
}

func (s *stockScreen) renderDetail(w io.Writer, state controller.StockState) {
	p := state.Product

	if !state.Adjusting {
		fmt.Fprintln(w, p.Name)
		fmt.Fprintf(w, "%s %s\n", labelImage, s.module.ImageURL(p))
		fmt.Fprintf(w, "%s %s\n", labelSale, s.module.FormatValue(p.Value))
		fmt.Fprintf(w, "%s %d\n", labelDetailQty, p.Quantity)
		fmt.Fprintf(w, "%s %d%s\n", labelDetailMin, p.MinQuantity, lowStockMark(p))
		fmt.Fprintf(w, "a) %s | 0) %s\n", labelAdjustStock, labelClose)
	} else {
		fmt.Fprintln(w, labelAdjustStock)
		fmt.Fprintf(w, "%s: %s\n", labelQtyInput, state.Quantity)
		fmt.Fprintf(w, "+) %s | -) %s | 0) %s\n", labelIncrease, labelDecrease, labelClose)
	}

	if state.Dialog.Visible {
		renderDialog(w, state.Dialog)
	}
}

func (s *stockScreen) Handle(ctx context.Context, line string) {
	state := s.list.State()

	if state.Dialog.Visible {
		s.handleDialog(ctx, state.Dialog, line)
		return
	}

	if state.Detail != nil {
		s.handleDetail(ctx, state.Detail, line)
		return
	}

	cmd, arg, _ := strings.Cut(line, " ")
	switch cmd {
	case "0":
		s.nav.GoBack()
	case "r":
		s.list.Load(ctx)
	case "e":
		if p, ok := productAt(state.Products, arg); ok {
			s.list.Edit(p)
		}
	case "x":
		if p, ok := productAt(state.Products, arg); ok {
			s.list.RequestDelete(p.ID)
		}
	default:
		if p, ok := productAt(state.Products, cmd); ok {
			s.list.Select(p)
		}
	}
}

func (s *stockScreen) handleDialog(ctx context.Context, d dialog.State, line string) {
	if d.Confirmable && strings.EqualFold(line, "s") {
		s.list.ConfirmDialog(ctx)
		return
	}
	s.list.DismissDialog()
}

func (s *stockScreen) handleDetail(ctx context.Context, detail *controller.StockController, line string) {
	state := detail.State()

	if state.Dialog.Visible {
		detail.DismissDialog()
		return
	}

	if line == "0" {
		s.list.CloseDetail()
		return
	}

	if !state.Adjusting {
		if line == "a" {
			detail.OpenAdjustment()
		}
		return
	}

	switch {
	case strings.HasPrefix(line, "+"):
		setTypedQuantity(detail, line[1:])
		detail.Increase(ctx)
	case strings.HasPrefix(line, "-"):
		setTypedQuantity(detail, line[1:])
		detail.Decrease(ctx)
	default:
		detail.SetQuantity(line)
	}
}

// setTypedQuantity lets "+5" set the quantity and submit in one line.
func setTypedQuantity(detail *controller.StockController, text string) {
	if text = strings.TrimSpace(text); text != "" {
		detail.SetQuantity(text)
	}
}

func productAt(products []domain.Product, arg string) (domain.Product, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil || n < 1 || n > len(products) {
		return domain.Product{}, false
	}
	return products[n-1], true
}

func lowStockMark(p domain.Product) string {
	if p.LowStock() {
		return " (" + labelLowStock + ")"
	}
	return ""
}

func renderDialog(w io.Writer, d dialog.State) {
	fmt.Fprintln(w)
	fmt.Fprintf(w, "[%s] %s\n", d.Title, d.Message)
	if d.Confirmable {
		fmt.Fprintf(w, "s) %s | Enter) %s\n", dialog.ConfirmLabel, dialog.DismissLabel)
		return
	}
	fmt.Fprintf(w, "Enter) %s\n", dialog.DismissLabel)
}
