package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rgehrsitz/finwise/internal/calculation"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func newTestHandler(t *testing.T) http.Handler {
	t.Helper()
	return NewHandler(calculation.NewCalculationEngine(), Options{Logger: zap.NewNop(), Version: "test"})
}

func do(t *testing.T, h http.Handler, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out), rr.Body.String())
	return out
}

func TestHealthAndRequestID(t *testing.T) {
	h := newTestHandler(t)

	rr := do(t, h, http.MethodGet, "/healthz", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "ok", decodeBody(t, rr)["status"])
	_, err := uuid.Parse(rr.Header().Get(RequestIDHeader))
	assert.NoError(t, err, "generated request id should be a uuid")

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(RequestIDHeader, "trace-123")
	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	assert.Equal(t, "trace-123", rr.Header().Get(RequestIDHeader))
}

func TestVersion(t *testing.T) {
	rr := do(t, newTestHandler(t), http.MethodGet, "/api/v1/version", "")

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "test", decodeBody(t, rr)["version"])
}

func TestKinds(t *testing.T) {
	rr := do(t, newTestHandler(t), http.MethodGet, "/api/v1/kinds", "")
	require.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		Kinds []kindInfo `json:"kinds"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Len(t, resp.Kinds, 16)
	assert.Equal(t, "emi", string(resp.Kinds[0].Kind))
	assert.Equal(t, "EMI Calculator", resp.Kinds[0].Title)
}

func TestDefaults(t *testing.T) {
	rr := do(t, newTestHandler(t), http.MethodGet, "/api/v1/kinds/emi/defaults", "")
	require.Equal(t, http.StatusOK, rr.Code)

	body := decodeBody(t, rr)
	input := body["input"].(map[string]interface{})
	assert.Equal(t, "1000000", input["principal"])
	assert.NotEmpty(t, body["ranges"])

	rr = do(t, newTestHandler(t), http.MethodGet, "/api/v1/kinds/lottery/defaults", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestCalculate(t *testing.T) {
	h := newTestHandler(t)

	rr := do(t, h, http.MethodPost, "/api/v1/calculate/emi",
		`{"principal": 1000000, "annual_rate_pct": 8.5, "tenure": 10, "tenure_unit": "years"}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	body := decodeBody(t, rr)
	assert.Equal(t, "emi", body["kind"])
	result := body["result"].(map[string]interface{})
	assert.True(t, strings.HasPrefix(result["emi"].(string), "12398.57"), result["emi"])
	assert.EqualValues(t, 120, result["months"])
}

func TestCalculate_DefaultsAndAssignments(t *testing.T) {
	h := newTestHandler(t)

	rr := do(t, h, http.MethodPost, "/api/v1/calculate/Housing-Loan?set=tenure=15", "")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	result := decodeBody(t, rr)["result"].(map[string]interface{})
	assert.EqualValues(t, 180, result["months"])
	assert.Len(t, result["schedule"], 15)
}

func TestCalculate_Formats(t *testing.T) {
	h := newTestHandler(t)

	rr := do(t, h, http.MethodPost, "/api/v1/calculate/emi?format=csv", `{}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "text/csv; charset=utf-8", rr.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(rr.Body.String(), "Metric,Value\n"))

	rr = do(t, h, http.MethodPost, "/api/v1/calculate/housing_loan?format=excel", `{}`)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Header().Get("Content-Disposition"), `filename="housing_loan.xlsx"`)
	assert.True(t, strings.HasPrefix(rr.Body.String(), "PK"), "xlsx is a zip archive")

	rr = do(t, h, http.MethodPost, "/api/v1/calculate/emi?format=pdf", `{}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, decodeBody(t, rr)["error"], "unknown format")
}

func TestCalculate_Errors(t *testing.T) {
	h := newTestHandler(t)

	tests := []struct {
		name   string
		target string
		body   string
		status int
		field  string
	}{
		{"validation names the field", "/api/v1/calculate/emi", `{"principal": -5}`, http.StatusBadRequest, "principal"},
		{"unknown kind", "/api/v1/calculate/lottery", `{}`, http.StatusNotFound, ""},
		{"input must be a mapping", "/api/v1/calculate/emi", `[1, 2]`, http.StatusBadRequest, "input"},
		{"malformed body", "/api/v1/calculate/emi", `{"principal": `, http.StatusBadRequest, ""},
		{"type mismatch", "/api/v1/calculate/emi", `{"tenure": "long"}`, http.StatusBadRequest, ""},
		{"bad assignment", "/api/v1/calculate/emi?set=principal", `{}`, http.StatusBadRequest, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := do(t, h, http.MethodPost, tt.target, tt.body)
			require.Equal(t, tt.status, rr.Code, rr.Body.String())

			body := decodeBody(t, rr)
			assert.NotEmpty(t, body["error"])
			assert.NotEmpty(t, body["request_id"])
			if tt.field != "" {
				assert.Equal(t, tt.field, body["field"])
			}
		})
	}
}

func TestCalculate_BodyTooLarge(t *testing.T) {
	h := NewHandler(calculation.NewCalculationEngine(), Options{MaxBodySize: 8})

	rr := do(t, h, http.MethodPost, "/api/v1/calculate/emi", `{"principal": 1000000}`)

	assert.Equal(t, http.StatusRequestEntityTooLarge, rr.Code)
}

func TestCompare(t *testing.T) {
	h := newTestHandler(t)

	rr := do(t, h, http.MethodPost, "/api/v1/compare/cards", "")
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	body := decodeBody(t, rr)
	assert.Equal(t, "cards", body["subject"])
	assert.Equal(t, "finwise-infinity", body["baseName"])
	assert.Len(t, body["alternativeResults"], 2)

	rr = do(t, h, http.MethodPost, "/api/v1/compare/cloud?format=csv",
		`{"provider": "gcp", "compute": {"instances": 2, "hours_per_month": 730}, "storage": {"gb": 100}}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Contains(t, rr.Body.String(), "Cloud Provider Comparison")

	rr = do(t, h, http.MethodPost, "/api/v1/compare/cloud", `{"provider": "oracle"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "provider", decodeBody(t, rr)["field"])

	rr = do(t, h, http.MethodPost, "/api/v1/compare/loans", `{}`)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestNotFoundAndMethod(t *testing.T) {
	h := newTestHandler(t)

	rr := do(t, h, http.MethodGet, "/nowhere", "")
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "not found", decodeBody(t, rr)["error"])

	rr = do(t, h, http.MethodGet, "/api/v1/calculate/emi", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestRequestsAreLogged(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	h := NewHandler(calculation.NewCalculationEngine(), Options{Logger: zap.New(core)})

	do(t, h, http.MethodPost, "/api/v1/calculate/emi", `{"principal": -1}`)

	assert.Equal(t, 1, logs.FilterMessage("request failed").Len())
	entries := logs.FilterMessage("request").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "/api/v1/calculate/emi", fields["path"])
	assert.EqualValues(t, http.StatusBadRequest, fields["status"])
	assert.NotEmpty(t, fields["request_id"])
}

func TestRun(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- Run(ctx, "127.0.0.1:0", newTestHandler(t), zap.NewNop())
	}()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(ShutdownTimeout):
		t.Fatal("server did not shut down")
	}
}

func TestRun_ListenError(t *testing.T) {
	err := Run(context.Background(), "127.0.0.1:-1", newTestHandler(t), nil)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "server failed")
}

func TestCompare_JSONNamesBest(t *testing.T) {
	rr := do(t, newTestHandler(t), http.MethodPost, "/api/v1/compare/cards", `{"card_id": "reward-max-pro"}`)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	body := decodeBody(t, rr)
	assert.Equal(t, "finwise-infinity", body["best"])
	assert.Equal(t, "reward-max-pro", body["baseName"])
}
