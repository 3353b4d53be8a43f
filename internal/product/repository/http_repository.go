package repository

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"reytech/internal/domain"
	"reytech/internal/dto"
	apperrors "reytech/internal/errors"
)

const productsPath = "/api/products"

// HTTPRepository talks to the ReyTech REST API. Every call is a single
// attempt; failures are returned to the caller as-is.
type HTTPRepository struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
}

// NewHTTPRepository creates the API client. A zero timeout leaves requests
// bounded only by the transport defaults.
func NewHTTPRepository(baseURL string, timeout time.Duration, logger *zap.Logger) *HTTPRepository {
	return &HTTPRepository{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
		logger: logger,
	}
}

func (r *HTTPRepository) List(ctx context.Context) ([]domain.Product, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.baseURL+productsPath, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}

	body, err := r.do(req)
	if err != nil {
		return nil, err
	}

	var products []domain.Product
	if err := json.Unmarshal(body, &products); err != nil {
		return nil, apperrors.NewNetworkError("decoding product list", err)
	}

	if products == nil {
		products = []domain.Product{}
	}

	return products, nil
}

func (r *HTTPRepository) Create(ctx context.Context, draft domain.Draft) (*domain.Product, error) {
	return r.sendForm(ctx, http.MethodPost, r.baseURL+productsPath, draft)
}

func (r *HTTPRepository) Update(ctx context.Context, id domain.ProductID, draft domain.Draft) (*domain.Product, error) {
	return r.sendForm(ctx, http.MethodPut, r.productURL(id), draft)
}

func (r *HTTPRepository) Delete(ctx context.Context, id domain.ProductID) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, r.productURL(id), nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}

	_, err = r.do(req)
	return err
}

// AdjustStock registers a stock entry or exit. A nil quantity is sent as
// null so the server can reject it.
func (r *HTTPRepository) AdjustStock(ctx context.Context, id domain.ProductID, direction domain.StockDirection, quantity *int) (*domain.Product, error) {
	if !direction.Valid() {
		return nil, fmt.Errorf("invalid stock direction %q", direction)
	}

	payload, err := json.Marshal(dto.StockAdjustmentRequest{Quantity: quantity})
	if err != nil {
		return nil, fmt.Errorf("encoding stock adjustment: %w", err)
	}

	url := r.productURL(id) + "/" + string(direction)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	body, err := r.do(req)
	if err != nil {
		return nil, err
	}

	return decodeProduct(body)
}

func (r *HTTPRepository) productURL(id domain.ProductID) string {
	return r.baseURL + productsPath + "/" + id.String()
}

func (r *HTTPRepository) sendForm(ctx context.Context, method, url string, draft domain.Draft) (*domain.Product, error) {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	if err := writeDraft(writer, draft); err != nil {
		return nil, err
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("closing multipart body: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, &buf)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())

	body, err := r.do(req)
	if err != nil {
		return nil, err
	}

	return decodeProduct(body)
}

// do sends the request and returns the body of a 2xx response. Any other
// status is translated into a ValidationError or a NetworkError.
func (r *HTTPRepository) do(req *http.Request) ([]byte, error) {
	requestID := uuid.New().String()
	req.Header.Set("X-Request-ID", requestID)
	req.Header.Set("Accept", "application/json")

	logger := r.logger.With(
		zap.String("requestId", requestID),
		zap.String("method", req.Method),
		zap.String("url", req.URL.String()),
	)

	start := time.Now()
	resp, err := r.httpClient.Do(req)
	if err != nil {
		logger.Warn("request failed", zap.Error(err))
		return nil, apperrors.NewNetworkError("failed to send request", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		logger.Warn("reading response failed", zap.Int("status", resp.StatusCode), zap.Error(err))
		return nil, apperrors.NewNetworkError("failed to read response body", err)
	}

	logger.Debug("request completed",
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		failure := translateFailure(resp.StatusCode, body)
		logger.Info("request rejected", zap.Int("status", resp.StatusCode), zap.Error(failure))
		return nil, failure
	}

	return body, nil
}

func translateFailure(status int, body []byte) error {
	var payload dto.ErrorResponse
	if err := json.Unmarshal(body, &payload); err == nil {
		if messages := payload.Messages(); len(messages) > 0 {
			return apperrors.NewValidationError(messages...)
		}
	}
	return apperrors.NewNetworkError(fmt.Sprintf("unexpected status code: %d", status), nil)
}

func decodeProduct(body []byte) (*domain.Product, error) {
	var product domain.Product
	if err := json.Unmarshal(body, &product); err != nil {
		return nil, apperrors.NewNetworkError("decoding product", err)
	}
	return &product, nil
}

func writeDraft(w *multipart.Writer, draft domain.Draft) error {
	fields := []struct {
		name  string
		value string
	}{
		{dto.FieldName, draft.Name},
		{dto.FieldValue, draft.Value},
		{dto.FieldQuantity, draft.Quantity},
		{dto.FieldMinQuantity, draft.MinQuantity},
	}

	for _, f := range fields {
		if err := w.WriteField(f.name, f.value); err != nil {
			return fmt.Errorf("writing field %s: %w", f.name, err)
		}
	}

	if !draft.HasImage() {
		return nil
	}

	return writeImage(w, draft)
}

func writeImage(w *multipart.Writer, draft domain.Draft) error {
	path := strings.TrimPrefix(draft.ImageURI, "file://")

	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening image: %w", err)
	}
	defer f.Close()

	filename := draft.ImageFilename()
	contentType, err := imageContentType(f, filename)
	if err != nil {
		return err
	}

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`, dto.FieldImage, escapeQuotes(filename)))
	header.Set("Content-Type", contentType)

	part, err := w.CreatePart(header)
	if err != nil {
		return fmt.Errorf("creating image part: %w", err)
	}

	if _, err := io.Copy(part, f); err != nil {
		return fmt.Errorf("copying image: %w", err)
	}

	return nil
}

// imageContentType sniffs the file and falls back to image/<ext>, or plain
// "image" when the name has no extension. The file is rewound afterwards.
func imageContentType(f *os.File, filename string) (string, error) {
	mtype, err := mimetype.DetectReader(f)
	if _, seekErr := f.Seek(0, io.SeekStart); seekErr != nil {
		return "", fmt.Errorf("rewinding image: %w", seekErr)
	}
	if err == nil && strings.HasPrefix(mtype.String(), "image/") {
		return mtype.String(), nil
	}

	ext := strings.TrimPrefix(filepath.Ext(filename), ".")
	if ext == "" {
		return "image", nil
	}
	return "image/" + strings.ToLower(ext), nil
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}
