package terminal

import (
	"context"
	"fmt"
	"io"
	"strings"

	"reytech/internal/product/controller"
	"reytech/internal/view"
)

var fieldLabels = map[view.Field]string{
	view.FieldName:        labelFieldName,
	view.FieldValue:       labelFieldValue,
	view.FieldQuantity:    labelFieldQuantity,
	view.FieldMinQuantity: labelFieldMinimum,
}

// formScreen edits a product draft. A plain line fills the focused field
// and moves focus on. Commands start with ':' so field text is never
// mistaken for one: ":1".. ":4" focus a field, ":i" picks an image, ":s"
// saves and ":v" goes back.
type formScreen struct {
	screen   view.Screen
	form     *controller.FormController
	nav      view.Navigator
	rejected bool
}

func newFormScreen(screen view.Screen, form *controller.FormController, nav view.Navigator) *formScreen {
	return &formScreen{screen: screen, form: form, nav: nav}
}

func (s *formScreen) Focus(ctx context.Context) {}

func (s *formScreen) Unmount() {
	s.form.Unmount()
}

func (s *formScreen) Render(w io.Writer) {
	header(w, s.screen.Title())

	state := s.form.State()
	values := map[view.Field]string{
		view.FieldName:        state.Draft.Name,
		view.FieldValue:       state.Draft.Value,
		view.FieldQuantity:    state.Draft.Quantity,
		view.FieldMinQuantity: state.Draft.MinQuantity,
	}

	for i, field := range view.ProductFormOrder {
		marker := "  "
		if field == state.Focus {
			marker = "> "
		}
		fmt.Fprintf(w, "%s%d) %s: %s\n", marker, i+1, fieldLabels[field], values[field])
	}

	image := labelNoImage
	if state.Draft.HasImage() {
		image = state.Draft.ImageFilename()
	}
	fmt.Fprintf(w, "  %s %s\n", labelImage, image)

	if s.rejected {
		fmt.Fprintf(w, "%s\n", labelInvalidValue)
	}

	save := labelSave
	if state.Submitting {
		save = labelSaving
	}
	fmt.Fprintf(w, ":i) %s | :s) %s | :v) %s\n", labelPickImage, save, labelBack)

	if state.Dialog.Visible {
		renderDialog(w, state.Dialog)
	}
}

func (s *formScreen) Handle(ctx context.Context, line string) {
	s.rejected = false
	state := s.form.State()

	if state.Dialog.Visible {
		s.form.DismissDialog()
		return
	}

	if cmd, ok := strings.CutPrefix(line, ":"); ok {
		s.handleCommand(ctx, cmd)
		return
	}

	if state.Focus == view.NoField {
		return
	}
	// A rejected value keeps focus on its field.
	if !s.form.SetField(state.Focus, line) {
		s.rejected = true
		return
	}
	s.form.FocusNext()
}

func (s *formScreen) handleCommand(ctx context.Context, cmd string) {
	switch cmd {
	case "i":
		s.form.PickImage(ctx)
	case "s":
		s.form.Focus(view.NoField)
		s.form.Submit(ctx)
	case "v":
		s.nav.GoBack()
	default:
		var n int
		if _, err := fmt.Sscanf(cmd, "%d", &n); err == nil && n >= 1 && n <= len(view.ProductFormOrder) {
			s.form.Focus(view.ProductFormOrder[n-1])
		}
	}
}
