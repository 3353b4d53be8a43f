package dialog

import "context"

const (
	Title        = "Atenção"
	ConfirmLabel = "Apagar"
	DismissLabel = "Fechar"
)

// Action runs when the user confirms a dialog.
type Action func(ctx context.Context)

// State is the render-ready snapshot of a dialog.
type State struct {
	Visible     bool
	Title       string
	Message     string
	Confirmable bool
}

// Dialog is the modal shared by every screen. It is not safe for concurrent
// use; the owning controller guards it.
type Dialog struct {
	visible bool
	message string
	confirm Action
}

// Notify shows a message with only the dismiss action.
func (d *Dialog) Notify(message string) {
	d.visible = true
	d.message = message
	d.confirm = nil
}

// Ask shows a message with a confirm action next to the dismiss action.
func (d *Dialog) Ask(message string, confirm Action) {
	d.visible = true
	d.message = message
	d.confirm = confirm
}

func (d *Dialog) Dismiss() {
	d.visible = false
	d.message = ""
	d.confirm = nil
}

func (d *Dialog) Visible() bool {
	return d.visible
}

// ConfirmAction returns the pending action, or nil when there is none.
func (d *Dialog) ConfirmAction() Action {
	if !d.visible {
		return nil
	}
	return d.confirm
}

func (d *Dialog) State() State {
	return State{
		Visible:     d.visible,
		Title:       Title,
		Message:     d.message,
		Confirmable: d.visible && d.confirm != nil,
	}
}
