package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rgehrsitz/finwise/internal/calculation"
	"github.com/rgehrsitz/finwise/internal/compare"
	"github.com/rgehrsitz/finwise/internal/config"
	"github.com/rgehrsitz/finwise/internal/domain"
	"github.com/rgehrsitz/finwise/internal/output"
	"go.uber.org/zap"
)

// DefaultMaxBodySize caps request bodies.
const DefaultMaxBodySize = 1 << 20

// RequestIDHeader carries the per-request ID in both directions.
const RequestIDHeader = "X-Request-ID"

type ctxKey int

const requestIDKey ctxKey = 0

type handler struct {
	logger      *zap.Logger
	engine      *calculation.CalculationEngine
	compare     *compare.CompareEngine
	parser      *config.InputParser
	maxBodySize int64
	version     string
}

// Options configures the handler. Zero values select defaults.
type Options struct {
	Logger      *zap.Logger
	MaxBodySize int64
	Version     string
}

// NewHandler constructs the HTTP API over a shared engine.
func NewHandler(engine *calculation.CalculationEngine, opts Options) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	maxBodySize := opts.MaxBodySize
	if maxBodySize <= 0 {
		maxBodySize = DefaultMaxBodySize
	}
	version := strings.TrimSpace(opts.Version)
	if version == "" {
		version = "dev"
	}

	h := &handler{
		logger:      logger,
		engine:      engine,
		compare:     compare.NewCompareEngine(engine),
		parser:      config.NewInputParser(),
		maxBodySize: maxBodySize,
		version:     version,
	}

	r := chi.NewRouter()
	r.Use(h.requestID)
	r.Use(h.logRequests)
	r.Get("/healthz", h.handleHealth)
	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/version", h.handleVersion)
		r.Get("/kinds", h.handleKinds)
		r.Get("/kinds/{kind}/defaults", h.handleDefaults)
		r.Post("/calculate/{kind}", h.handleCalculate)
		r.Post("/compare/{subject}", h.handleCompare)
	})
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		h.respondError(w, r, http.StatusNotFound, "not found")
	})
	return r
}

// RequestID returns the request ID stored by the middleware.
func RequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

func (h *handler) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimSpace(r.Header.Get(RequestIDHeader))
		if id == "" {
			id = uuid.New().String()
		}
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey, id)))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func (h *handler) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		h.logger.Info("request",
			zap.String("request_id", RequestID(r.Context())),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("duration", time.Since(start)),
		)
	})
}

func (h *handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handler) handleVersion(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, http.StatusOK, map[string]string{"version": h.version})
}

type kindInfo struct {
	Kind  domain.Kind `json:"kind"`
	Title string      `json:"title"`
}

func (h *handler) handleKinds(w http.ResponseWriter, r *http.Request) {
	kinds := h.engine.Kinds()
	infos := make([]kindInfo, len(kinds))
	for i, k := range kinds {
		infos[i] = kindInfo{Kind: k, Title: k.Title()}
	}
	h.writeJSON(w, http.StatusOK, map[string]interface{}{"kinds": infos})
}

type defaultsResponse struct {
	Kind   domain.Kind              `json:"kind"`
	Input  interface{}              `json:"input"`
	Ranges []calculation.FieldRange `json:"ranges"`
}

func (h *handler) handleDefaults(w http.ResponseWriter, r *http.Request) {
	kind, ok := h.kindParam(w, r)
	if !ok {
		return
	}
	input, err := h.engine.DefaultInput(kind)
	if err != nil {
		h.respondCalcError(w, r, err)
		return
	}
	h.writeJSON(w, http.StatusOK, defaultsResponse{Kind: kind, Input: input, Ranges: h.engine.Ranges(kind)})
}

func (h *handler) handleCalculate(w http.ResponseWriter, r *http.Request) {
	kind, ok := h.kindParam(w, r)
	if !ok {
		return
	}
	formatter, ok := h.formatterParam(w, r)
	if !ok {
		return
	}
	body, ok := h.readBody(w, r)
	if !ok {
		return
	}
	req, err := h.parser.ParseInput(kind, body)
	if err != nil {
		h.respondCalcError(w, r, err)
		return
	}
	assignments, err := config.ParseAssignments(r.URL.Query()["set"])
	if err != nil {
		h.respondError(w, r, http.StatusBadRequest, err.Error())
		return
	}

	report, err := h.engine.CalculateFrom(kind, req.Decoder(assignments))
	if err != nil {
		h.respondCalcError(w, r, err)
		return
	}
	h.writeFormatted(w, r, formatter, &output.Result{Kind: kind, Report: report})
}

func (h *handler) handleCompare(w http.ResponseWriter, r *http.Request) {
	subject, err := compare.ParseSubject(chi.URLParam(r, "subject"))
	if err != nil {
		h.respondError(w, r, http.StatusNotFound, err.Error())
		return
	}
	formatter, ok := h.formatterParam(w, r)
	if !ok {
		return
	}
	body, ok := h.readBody(w, r)
	if !ok {
		return
	}
	req, err := h.parser.ParseInput(subject.Kind(), body)
	if err != nil {
		h.respondCalcError(w, r, err)
		return
	}

	compSet, err := h.compare.Compare(r.Context(), subject, req.Decoder(nil))
	if err != nil {
		h.respondCalcError(w, r, err)
		return
	}

	if formatter.Name() == "json" {
		data, err := (&compare.JSONFormatter{}).Format(compSet)
		if err != nil {
			h.respondError(w, r, http.StatusInternalServerError, fmt.Sprintf("failed to format comparison: %v", err))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if _, err := io.WriteString(w, data+"\n"); err != nil {
			h.logger.Error("failed to write response", zap.Error(err))
		}
		return
	}
	h.writeFormatted(w, r, formatter, &output.Result{Kind: subject.Kind(), Report: compSet})
}

func (h *handler) kindParam(w http.ResponseWriter, r *http.Request) (domain.Kind, bool) {
	kind, err := domain.ParseKind(chi.URLParam(r, "kind"))
	if err != nil {
		h.respondError(w, r, http.StatusNotFound, err.Error())
		return "", false
	}
	return kind, true
}

func (h *handler) formatterParam(w http.ResponseWriter, r *http.Request) (output.Formatter, bool) {
	name := r.URL.Query().Get("format")
	if name == "" {
		name = "json"
	}
	f := output.GetFormatterByName(name)
	if f == nil {
		h.respondError(w, r, http.StatusBadRequest,
			fmt.Sprintf("unknown format %q (available: %s)", name, strings.Join(output.AvailableFormatterNames(), ", ")))
		return nil, false
	}
	return f, true
}

func (h *handler) readBody(w http.ResponseWriter, r *http.Request) ([]byte, bool) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxBodySize))
	if err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.respondError(w, r, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request body exceeds limit of %d bytes", h.maxBodySize))
			return nil, false
		}
		h.respondError(w, r, http.StatusBadRequest, fmt.Sprintf("failed to read request body: %v", err))
		return nil, false
	}
	return body, true
}

var contentTypes = map[string]string{
	"json":    "application/json",
	"csv":     "text/csv; charset=utf-8",
	"html":    "text/html; charset=utf-8",
	"xlsx":    "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	"console": "text/plain; charset=utf-8",
	"summary": "text/plain; charset=utf-8",
}

func (h *handler) writeFormatted(w http.ResponseWriter, r *http.Request, f output.Formatter, res *output.Result) {
	data, err := f.Format(res)
	if err != nil {
		h.respondError(w, r, http.StatusInternalServerError, fmt.Sprintf("failed to format result: %v", err))
		return
	}
	contentType, ok := contentTypes[f.Name()]
	if !ok {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	if output.IsBinary(f.Name()) {
		w.Header().Set("Content-Disposition",
			fmt.Sprintf("attachment; filename=%q", fmt.Sprintf("%s.%s", res.Kind, output.Extension(f.Name()))))
	}
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(data); err != nil {
		h.logger.Error("failed to write response", zap.Error(err))
	}
}

type errorResponse struct {
	Error     string `json:"error"`
	Field     string `json:"field,omitempty"`
	RequestID string `json:"request_id,omitempty"`
}

// respondCalcError maps engine errors onto status codes: unknown kinds are
// 404, validation and decode failures are 400.
func (h *handler) respondCalcError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrUnknownKind):
		h.respondError(w, r, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrInvalidInput):
		resp := errorResponse{Error: err.Error(), RequestID: RequestID(r.Context())}
		if ve, ok := domain.IsValidation(err); ok {
			resp.Field = ve.Field
		}
		h.logFailure(r, http.StatusBadRequest, err.Error())
		h.writeJSON(w, http.StatusBadRequest, resp)
	default:
		h.respondError(w, r, http.StatusBadRequest, err.Error())
	}
}

func (h *handler) respondError(w http.ResponseWriter, r *http.Request, status int, msg string) {
	h.logFailure(r, status, msg)
	h.writeJSON(w, status, errorResponse{Error: msg, RequestID: RequestID(r.Context())})
}

func (h *handler) logFailure(r *http.Request, status int, msg string) {
	h.logger.Warn("request failed",
		zap.String("request_id", RequestID(r.Context())),
		zap.String("path", r.URL.Path),
		zap.Int("status", status),
		zap.String("error", msg),
	)
}

func (h *handler) writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		h.logger.Error("failed to write JSON response", zap.Error(err))
	}
}
