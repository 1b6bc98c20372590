package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"runtime"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/eugenenazirov/basket-splitter/internal/deliveryconfig"
	"github.com/eugenenazirov/basket-splitter/internal/splitter"
	"github.com/eugenenazirov/basket-splitter/internal/storage"
)

type contextKey string

const requestIDContextKey contextKey = "requestID"

const defaultMaxBatchSize = 50

// Handler wires the delivery table storage and the splitter into HTTP handlers.
type Handler struct {
	storage storage.Storage
	logger  *zap.Logger

	clock        func() time.Time
	maxBatchSize int

	mu              sync.RWMutex
	configUpdatedAt time.Time
}

// HandlerOption configures Handler behaviour.
type HandlerOption func(*Handler)

// WithClock overrides the time source, primarily for tests.
func WithClock(clock func() time.Time) HandlerOption {
	return func(h *Handler) {
		h.clock = clock
	}
}

// WithMaxBatchSize limits how many baskets a single batch request may carry.
func WithMaxBatchSize(size int) HandlerOption {
	return func(h *Handler) {
		if size > 0 {
			h.maxBatchSize = size
		}
	}
}

// WithLogger sets the logger handed to every splitter.
func WithLogger(logger *zap.Logger) HandlerOption {
	return func(h *Handler) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// NewHandler constructs a Handler with the provided dependencies.
func NewHandler(store storage.Storage, opts ...HandlerOption) *Handler {
	h := &Handler{
		storage:      store,
		logger:       zap.NewNop(),
		maxBatchSize: defaultMaxBatchSize,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
	for _, opt := range opts {
		opt(h)
	}
	h.configUpdatedAt = h.clock()
	return h
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	_ = r
	resp := healthResponse{
		Status:    "ok",
		Timestamp: h.clock(),
	}
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleGetDeliveryConfig(w http.ResponseWriter, r *http.Request) {
	_ = r
	table, err := h.storage.Table()
	if err != nil {
		writeInternalError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, h.deliveryConfigSummary(table, ""))
}

func (h *Handler) handlePutDeliveryConfig(w http.ResponseWriter, r *http.Request) {
	var req deliveryConfigRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request", "unable to parse JSON payload")
		return
	}

	if len(req.DeliveryMethods) == 0 {
		writeError(w, http.StatusBadRequest, "Invalid delivery config", "deliveryMethods must contain at least one product")
		return
	}

	if err := h.storage.SetTable(req.DeliveryMethods); err != nil {
		if errors.Is(err, storage.ErrInvalidTable) {
			writeError(w, http.StatusBadRequest, "Invalid delivery config", err.Error())
			return
		}
		writeInternalError(w, err)
		return
	}

	h.markConfigUpdated()

	table, err := h.storage.Table()
	if err != nil {
		writeInternalError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, h.deliveryConfigSummary(table, "Delivery config updated successfully"))
}

func (h *Handler) handleSplit(w http.ResponseWriter, r *http.Request) {
	var req splitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request", "unable to parse JSON payload")
		return
	}

	if len(req.Products) == 0 {
		writeError(w, http.StatusBadRequest, "Invalid request", "products must contain at least one product")
		return
	}

	s, err := h.newSplitter()
	if err != nil {
		writeInternalError(w, err)
		return
	}

	start := time.Now()
	groups, splitErr := s.Split(req.Products)
	elapsed := time.Since(start)

	if splitErr != nil {
		writeSplitError(w, splitErr, "")
		return
	}

	resp := newSplitResponse(groups)
	resp.CalculationTimeMs = elapsed.Milliseconds()
	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleSplitBatch(w http.ResponseWriter, r *http.Request) {
	var req batchSplitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request", "unable to parse JSON payload")
		return
	}

	if len(req.Baskets) == 0 {
		writeError(w, http.StatusBadRequest, "Invalid request", "baskets must contain at least one basket")
		return
	}
	if len(req.Baskets) > h.maxBatchSize {
		writeError(w, http.StatusBadRequest, "Invalid request", fmt.Sprintf("at most %d baskets are accepted per request", h.maxBatchSize))
		return
	}

	s, err := h.newSplitter()
	if err != nil {
		writeInternalError(w, err)
		return
	}

	start := time.Now()
	results, splitErr := splitBaskets(r.Context(), s, req.Baskets)
	elapsed := time.Since(start)

	if splitErr != nil {
		var basketErr *basketError
		if errors.As(splitErr, &basketErr) {
			writeSplitError(w, basketErr.err, fmt.Sprintf("basket %d: ", basketErr.index))
			return
		}
		writeInternalError(w, splitErr)
		return
	}

	writeJSON(w, http.StatusOK, batchSplitResponse{
		Results:           results,
		TotalBaskets:      len(results),
		CalculationTimeMs: elapsed.Milliseconds(),
	})
}

// splitBaskets splits every basket concurrently. Results keep input order;
// the first failing basket cancels the remaining work.
func splitBaskets(ctx context.Context, s *splitter.Splitter, baskets [][]string) ([]splitResponse, error) {
	results := make([]splitResponse, len(baskets))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, basket := range baskets {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			groups, err := s.Split(basket)
			if err != nil {
				return &basketError{index: i, err: err}
			}
			results[i] = newSplitResponse(groups)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (h *Handler) newSplitter() (*splitter.Splitter, error) {
	table, err := h.storage.Table()
	if err != nil {
		return nil, err
	}
	return splitter.NewFromTable(table, splitter.WithLogger(h.logger)), nil
}

func (h *Handler) deliveryConfigSummary(table deliveryconfig.Table, message string) deliveryConfigResponse {
	return deliveryConfigResponse{
		Products:        table.Len(),
		DeliveryMethods: table.DeliveryMethods(),
		UpdatedAt:       h.currentConfigUpdatedAt(),
		Message:         message,
	}
}

func (h *Handler) currentConfigUpdatedAt() time.Time {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.configUpdatedAt
}

func (h *Handler) markConfigUpdated() {
	h.mu.Lock()
	h.configUpdatedAt = h.clock()
	h.mu.Unlock()
}

func requestIDFromContext(ctx context.Context) string {
	if v := ctx.Value(requestIDContextKey); v != nil {
		if id, ok := v.(string); ok {
			return id
		}
	}
	return ""
}

type basketError struct {
	index int
	err   error
}

func (e *basketError) Error() string {
	return fmt.Sprintf("basket %d: %v", e.index, e.err)
}

func (e *basketError) Unwrap() error {
	return e.err
}

func writeSplitError(w http.ResponseWriter, err error, prefix string) {
	var productErr *splitter.ProductError
	switch {
	case errors.Is(err, splitter.ErrProductNotConfigured) && errors.As(err, &productErr):
		suggestion := fmt.Sprintf("Add %q to the delivery config or remove it from the basket", productErr.Product)
		writeError(w, http.StatusUnprocessableEntity, "Unknown product", prefix+err.Error(), suggestion)
	case errors.Is(err, splitter.ErrNoDeliveryMethods) && errors.As(err, &productErr):
		suggestion := fmt.Sprintf("Configure at least one delivery method for %q", productErr.Product)
		writeError(w, http.StatusUnprocessableEntity, "Product cannot be shipped", prefix+err.Error(), suggestion)
	default:
		writeInternalError(w, err)
	}
}

type deliveryConfigRequest struct {
	DeliveryMethods deliveryconfig.Table `json:"deliveryMethods"`
}

type splitRequest struct {
	Products []string `json:"products"`
}

type batchSplitRequest struct {
	Baskets [][]string `json:"baskets"`
}

type splitResponse struct {
	Groups            []splitter.Group `json:"groups"`
	TotalGroups       int              `json:"totalGroups"`
	TotalProducts     int              `json:"totalProducts"`
	CalculationTimeMs int64            `json:"calculationTimeMs,omitempty"`
}

func newSplitResponse(groups *splitter.Groups) splitResponse {
	return splitResponse{
		Groups:        groups.All(),
		TotalGroups:   groups.Len(),
		TotalProducts: groups.TotalProducts(),
	}
}

type batchSplitResponse struct {
	Results           []splitResponse `json:"results"`
	TotalBaskets      int             `json:"totalBaskets"`
	CalculationTimeMs int64           `json:"calculationTimeMs"`
}

type deliveryConfigResponse struct {
	Products        int       `json:"products"`
	DeliveryMethods []string  `json:"deliveryMethods"`
	UpdatedAt       time.Time `json:"updatedAt"`
	Message         string    `json:"message,omitempty"`
}

type healthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
}

type errorResponse struct {
	Error      string `json:"error"`
	Details    string `json:"details,omitempty"`
	Suggestion string `json:"suggestion,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	if status != 0 {
		w.WriteHeader(status)
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message, details string, suggestion ...string) {
	resp := errorResponse{
		Error:   message,
		Details: details,
	}
	if len(suggestion) > 0 {
		resp.Suggestion = suggestion[0]
	}
	writeJSON(w, status, resp)
}

func writeInternalError(w http.ResponseWriter, err error) {
	writeError(w, http.StatusInternalServerError, "Internal error", err.Error())
}
