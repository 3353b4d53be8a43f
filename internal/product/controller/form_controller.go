package controller

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"reytech/internal/dialog"
	"reytech/internal/domain"
	apperrors "reytech/internal/errors"
	"reytech/internal/view"
)

type FormRepository interface {
	Create(ctx context.Context, draft domain.Draft) (*domain.Product, error)
	Update(ctx context.Context, id domain.ProductID, draft domain.Draft) (*domain.Product, error)
}

type FormMode string

const (
	ModeCreate FormMode = "create"
	ModeEdit   FormMode = "edit"
)

type FormState struct {
	Mode       FormMode
	Draft      domain.Draft
	Focus      view.Field
	Submitting bool
	Dialog     dialog.State
}

// FormController backs both the create and the edit product screens. It
// does no required-field validation: the server is the validator of record.
type FormController struct {
	repo      FormRepository
	picker    view.ImagePicker
	nav       view.Navigator
	logger    *zap.Logger
	mode      FormMode
	productID domain.ProductID

	mu         sync.Mutex
	life       *view.Lifetime
	draft      domain.Draft
	focus      view.Field
	submitting bool
	saved      bool
	dialog     dialog.Dialog
}

func NewCreateForm(repo FormRepository, picker view.ImagePicker, nav view.Navigator, logger *zap.Logger) *FormController {
	return &FormController{
		repo:   repo,
		picker: picker,
		nav:    nav,
		logger: logger,
		mode:   ModeCreate,
		life:   view.NewLifetime(),
		focus:  view.ProductFormOrder.First(),
	}
}

// NewEditForm pre-fills the form with product.
func NewEditForm(product domain.Product, repo FormRepository, picker view.ImagePicker, nav view.Navigator, logger *zap.Logger) *FormController {
	return &FormController{
		repo:      repo,
		picker:    picker,
		nav:       nav,
		logger:    logger.With(zap.String("productId", product.ID.String())),
		mode:      ModeEdit,
		productID: product.ID,
		life:      view.NewLifetime(),
		draft:     domain.DraftFromProduct(product),
		focus:     view.ProductFormOrder.First(),
	}
}

func (c *FormController) SetName(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft.Name = text
}

// SetValue reports false when text was rejected and the value left as it was.
func (c *FormController) SetValue(text string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	value, ok := view.FilterDecimal(c.draft.Value, text)
	c.draft.Value = value
	return ok
}

func (c *FormController) SetQuantity(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft.Quantity = view.FilterDigits(text)
}

func (c *FormController) SetMinQuantity(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft.MinQuantity = view.FilterDigits(text)
}

// SetField routes text to the setter of field and reports whether the
// input was accepted.
func (c *FormController) SetField(field view.Field, text string) bool {
	switch field {
	case view.FieldName:
		c.SetName(text)
	case view.FieldValue:
		return c.SetValue(text)
	case view.FieldQuantity:
		c.SetQuantity(text)
	case view.FieldMinQuantity:
		c.SetMinQuantity(text)
	default:
		return false
	}
	return true
}

func (c *FormController) Focus(field view.Field) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.focus = field
}

// FocusNext moves focus to the field after the focused one and returns it.
func (c *FormController) FocusNext() view.Field {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.focus = view.ProductFormOrder.Next(c.focus)
	return c.focus
}

// PickImage asks for permission, then for an image. A cancelled pick keeps
// the current image.
func (c *FormController) PickImage(ctx context.Context) {
	granted, err := c.picker.RequestPermission(ctx)
	if err == nil && !granted {
		err = apperrors.NewPermissionDeniedError(MsgPermissionDenied)
	}
	if err != nil {
		c.logger.Info("image permission not granted", zap.Error(err))
		c.notify(pickFailureMessage(err))
		return
	}

	uri, ok, err := c.picker.PickImage(ctx)
	if err != nil {
		c.logger.Warn("picking image failed", zap.Error(err))
		c.notify(pickFailureMessage(err))
		return
	}
	if !ok {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.life.Alive() {
		c.draft.ImageURI = uri
	}
}

// Submit sends the draft once. A second call while one is in flight is
// ignored. The entered values are never touched on failure.
func (c *FormController) Submit(ctx context.Context) {
	c.mu.Lock()
	if !c.life.Alive() || c.submitting {
		c.mu.Unlock()
		return
	}
	c.submitting = true
	c.saved = false
	draft := c.draft
	c.mu.Unlock()

	defer func() {
		c.mu.Lock()
		c.submitting = false
		c.mu.Unlock()
	}()

	err := c.save(ctx, draft)

	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.life.Alive() {
		c.logger.Debug("form closed, dropping submit result")
		return
	}

	if err != nil {
		c.logger.Warn("saving product failed", zap.String("mode", string(c.mode)), zap.Error(err))
		c.dialog.Notify(saveFailureMessage(err))
		return
	}

	c.saved = true
	c.dialog.Notify(MsgProductSaved)
	c.logger.Info("product saved", zap.String("mode", string(c.mode)))
}

// DismissDialog closes the dialog. After a successful save the create form
// is cleared and the edit form returns to the list.
func (c *FormController) DismissDialog() {
	c.mu.Lock()
	saved := c.saved
	c.saved = false
	c.dialog.Dismiss()
	if saved && c.mode == ModeCreate {
		c.draft = domain.Draft{}
		c.focus = view.ProductFormOrder.First()
	}
	c.mu.Unlock()

	if saved && c.mode == ModeEdit {
		c.Unmount()
		c.nav.GoBack()
	}
}

// Unmount ends the screen; results of requests still in flight are dropped.
func (c *FormController) Unmount() {
	c.life.End()
}

func (c *FormController) Mode() FormMode {
	return c.mode
}

func (c *FormController) State() FormState {
	c.mu.Lock()
	defer c.mu.Unlock()

	return FormState{
		Mode:       c.mode,
		Draft:      c.draft,
		Focus:      c.focus,
		Submitting: c.submitting,
		Dialog:     c.dialog.State(),
	}
}

func (c *FormController) save(ctx context.Context, draft domain.Draft) error {
	if c.mode == ModeEdit {
		_, err := c.repo.Update(ctx, c.productID, draft)
		return err
	}
	_, err := c.repo.Create(ctx, draft)
	return err
}

func (c *FormController) notify(message string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.life.Alive() {
		c.dialog.Notify(message)
	}
}

func saveFailureMessage(err error) string {
	if ve, ok := apperrors.IsValidationError(err); ok && ve.Message != "" {
		return ve.Message
	}
	if _, ok := apperrors.IsNetworkError(err); ok {
		return MsgServerUnavailable
	}
	return MsgSaveFailed
}

func pickFailureMessage(err error) string {
	if pe, ok := apperrors.IsPermissionDeniedError(err); ok {
		return pe.Message
	}
	return MsgImagePickFailed
}
