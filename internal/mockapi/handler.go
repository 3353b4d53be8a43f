package mockapi

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"reytech/internal/domain"
	"reytech/internal/dto"
	apperrors "reytech/internal/errors"
)

const maxUploadSize = 10 << 20

const (
	msgInvalidForm        = "Formulário inválido"
	msgInvalidBody        = "Corpo da requisição inválido"
	msgInvalidImage       = "A imagem enviada não é válida"
	msgNegativeValue      = "O campo Valor não pode ser negativo"
	msgInsufficientStock  = "Quantidade insuficiente em estoque"
	msgInternalError      = "Erro interno do servidor"
	msgInvalidNumberField = "O campo %s é inválido"
)

var fieldLabels = map[string]string{
	"Name":        "Nome",
	"Value":       "Valor",
	"Quantity":    "Quantidade",
	"MinQuantity": "Quantidade mínima",
}

// Handler serves the product endpoints of the ReyTech API.
type Handler struct {
	store     *Store
	uploads   *Uploads
	metrics   *Metrics
	validator *validator.Validate
	logger    *zap.Logger
}

func NewHandler(store *Store, uploads *Uploads, metrics *Metrics, logger *zap.Logger) *Handler {
	return &Handler{
		store:     store,
		uploads:   uploads,
		metrics:   metrics,
		validator: validator.New(),
		logger:    logger,
	}
}

func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, h.store.List())
}

func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	logger := h.requestLogger(r)

	fields, err := h.readProductForm(r)
	if err != nil {
		h.handleError(w, err, logger)
		return
	}

	image, err := h.storeImage(r, logger)
	if err != nil {
		h.handleError(w, err, logger)
		return
	}
	fields.Image = image

	created := h.store.Create(fields)
	logger.Info("product created", zap.String("productId", created.ID.String()))

	h.writeJSON(w, http.StatusCreated, created)
}

// UpdateProduct replaces the editable fields. The stored image is kept
// unless the form carries a new one.
func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	id := domain.ProductID(chi.URLParam(r, "id"))
	logger := h.requestLogger(r).With(zap.String("productId", id.String()))

	if _, err := h.store.Get(id); err != nil {
		h.handleError(w, err, logger)
		return
	}

	fields, err := h.readProductForm(r)
	if err != nil {
		h.handleError(w, err, logger)
		return
	}

	image, err := h.storeImage(r, logger)
	if err != nil {
		h.handleError(w, err, logger)
		return
	}

	var replaced string
	updated, err := h.store.Update(id, func(p *domain.Product) error {
		p.Name = fields.Name
		p.Value = fields.Value
		p.Quantity = fields.Quantity
		p.MinQuantity = fields.MinQuantity
		if image != "" {
			replaced = p.Image
			p.Image = image
		}
		return nil
	})
	if err != nil {
		h.discardImage(r, image, logger)
		h.handleError(w, err, logger)
		return
	}
	h.discardImage(r, replaced, logger)

	logger.Info("product updated")
	h.writeJSON(w, http.StatusOK, updated)
}

func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	id := domain.ProductID(chi.URLParam(r, "id"))
	logger := h.requestLogger(r).With(zap.String("productId", id.String()))

	deleted, err := h.store.Delete(id)
	if err != nil {
		h.handleError(w, err, logger)
		return
	}
	h.discardImage(r, deleted.Image, logger)

	logger.Info("product deleted")
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) AddStock(w http.ResponseWriter, r *http.Request) {
	h.adjustStock(w, r, domain.StockIncrease)
}

func (h *Handler) RemoveStock(w http.ResponseWriter, r *http.Request) {
	h.adjustStock(w, r, domain.StockDecrease)
}

func (h *Handler) adjustStock(w http.ResponseWriter, r *http.Request, direction domain.StockDirection) {
	id := domain.ProductID(chi.URLParam(r, "id"))
	logger := h.requestLogger(r).With(
		zap.String("productId", id.String()),
		zap.String("direction", string(direction)),
	)

	var req dto.StockAdjustmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logger.Warn("invalid JSON body", zap.Error(err))
		h.writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	if err := h.validator.Struct(req); err != nil {
		h.writeError(w, http.StatusBadRequest, strings.Join(validationMessages(err), "\n"))
		return
	}
	quantity := *req.Quantity

	updated, err := h.store.Update(id, func(p *domain.Product) error {
		if direction == domain.StockDecrease {
			if quantity > p.Quantity {
				return apperrors.NewValidationError(msgInsufficientStock)
			}
			p.Quantity -= quantity
			return nil
		}
		p.Quantity += quantity
		return nil
	})
	if err != nil {
		if ve, ok := apperrors.IsValidationError(err); ok {
			h.writeError(w, http.StatusBadRequest, ve.Message)
			return
		}
		h.handleError(w, err, logger)
		return
	}

	h.metrics.RecordStockMovement(direction, quantity)
	logger.Info("stock adjusted", zap.Int("quantity", quantity), zap.Int("current", updated.Quantity))

	h.writeJSON(w, http.StatusOK, updated)
}

// readProductForm parses and validates the text fields of the multipart
// form. All field problems are reported together.
func (h *Handler) readProductForm(r *http.Request) (domain.Product, error) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		return domain.Product{}, apperrors.NewValidationError(msgInvalidForm)
	}

	form := dto.ProductForm{
		Name:        strings.TrimSpace(r.FormValue(dto.FieldName)),
		Value:       strings.TrimSpace(r.FormValue(dto.FieldValue)),
		Quantity:    strings.TrimSpace(r.FormValue(dto.FieldQuantity)),
		MinQuantity: strings.TrimSpace(r.FormValue(dto.FieldMinQuantity)),
	}

	if err := h.validator.Struct(form); err != nil {
		return domain.Product{}, apperrors.NewValidationError(validationMessages(err)...)
	}

	var messages []string

	value, err := decimal.NewFromString(form.Value)
	if err != nil {
		messages = append(messages, fmt.Sprintf(msgInvalidNumberField, fieldLabels["Value"]))
	} else if value.IsNegative() {
		messages = append(messages, msgNegativeValue)
	}

	quantity, err := strconv.Atoi(form.Quantity)
	if err != nil {
		messages = append(messages, fmt.Sprintf(msgInvalidNumberField, fieldLabels["Quantity"]))
	}

	minQuantity, err := strconv.Atoi(form.MinQuantity)
	if err != nil {
		messages = append(messages, fmt.Sprintf(msgInvalidNumberField, fieldLabels["MinQuantity"]))
	}

	if len(messages) > 0 {
		return domain.Product{}, apperrors.NewValidationError(messages...)
	}

	return domain.Product{
		Name:        form.Name,
		Value:       value,
		Quantity:    quantity,
		MinQuantity: minQuantity,
	}, nil
}

// storeImage saves the optional image part and returns its key, or "" when
// the form has none. Parts whose bytes are not an image are rejected.
func (h *Handler) storeImage(r *http.Request, logger *zap.Logger) (string, error) {
	file, header, err := r.FormFile(dto.FieldImage)
	if errors.Is(err, http.ErrMissingFile) {
		return "", nil
	}
	if err != nil {
		return "", apperrors.NewValidationError(msgInvalidImage)
	}
	defer file.Close()

	if !isImage(file) {
		logger.Info("rejecting non-image upload", zap.String("filename", header.Filename))
		return "", apperrors.NewValidationError(msgInvalidImage)
	}

	key, err := h.uploads.Put(r.Context(), file, header.Filename)
	if err != nil {
		return "", apperrors.NewInternalError("storing image", err)
	}

	logger.Debug("image stored", zap.String("key", key), zap.Int64("size", header.Size))
	return key, nil
}

func (h *Handler) discardImage(r *http.Request, key string, logger *zap.Logger) {
	if err := h.uploads.Delete(r.Context(), key); err != nil {
		logger.Warn("removing image failed", zap.String("key", key), zap.Error(err))
	}
}

func (h *Handler) handleError(w http.ResponseWriter, err error, logger *zap.Logger) {
	if nf, ok := apperrors.IsNotFoundError(err); ok {
		h.writeError(w, http.StatusNotFound, nf.Message)
		return
	}

	if ve, ok := apperrors.IsValidationError(err); ok {
		h.writeJSON(w, http.StatusBadRequest, dto.ErrorResponse{Errors: ve.Details})
		return
	}

	logger.Error("unexpected error", zap.Error(err))
	h.writeError(w, http.StatusInternalServerError, msgInternalError)
}

func (h *Handler) requestLogger(r *http.Request) *zap.Logger {
	return h.logger.With(zap.String("requestId", middleware.GetReqID(r.Context())))
}

func (h *Handler) writeError(w http.ResponseWriter, statusCode int, message string) {
	h.writeJSON(w, statusCode, dto.ErrorResponse{Error: message})
}

func (h *Handler) writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode response", zap.Error(err))
	}
}

func isImage(file multipart.File) bool {
	mtype, err := mimetype.DetectReader(file)
	if _, seekErr := file.Seek(0, io.SeekStart); seekErr != nil {
		return false
	}
	return err == nil && strings.HasPrefix(mtype.String(), "image/")
}

func validationMessages(err error) []string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{msgInvalidForm}
	}

	messages := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		label, ok := fieldLabels[fe.Field()]
		if !ok {
			label = fe.Field()
		}

		switch fe.Tag() {
		case "required":
			messages = append(messages, fmt.Sprintf("O campo %s é obrigatório", label))
		case "max":
			messages = append(messages, fmt.Sprintf("O campo %s deve ter no máximo %s caracteres", label, fe.Param()))
		case "gt":
			messages = append(messages, fmt.Sprintf("O campo %s deve ser maior que zero", label))
		default:
			messages = append(messages, fmt.Sprintf(msgInvalidNumberField, label))
		}
	}
	return messages
}
