package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/cgfgestion/investment-simulator/internal/cache"
	"github.com/cgfgestion/investment-simulator/internal/calculation"
	"github.com/cgfgestion/investment-simulator/internal/domain"
)

func newTestServer(t *testing.T) (*Server, *observer.ObservedLogs) {
	t.Helper()
	core, logs := observer.New(zap.InfoLevel)
	engine := calculation.NewCalculationEngine()
	engine.SetCache(cache.NewMemoryStore())
	return New(engine, zap.New(core), calculation.ReportOptions{Company: "CGF Gestion", Currency: "FCFA"}), logs
}

func do(t *testing.T, s *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	s, logs := newTestServer(t)
	rec := do(t, s, http.MethodGet, "/healthz", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	entries := logs.FilterMessage("request").All()
	require.Len(t, entries, 1)
	assert.Equal(t, int64(http.StatusOK), entries[0].ContextMap()["status"])
	assert.Equal(t, "/healthz", entries[0].ContextMap()["path"])
}

func TestSolve(t *testing.T) {
	s, _ := newTestServer(t)
	rec := do(t, s, http.MethodPost, "/api/v1/solve",
		`{"mode":"fv","parameters":{"initial_capital":100000,"monthly_contribution":50000,"annual_rate":5,"horizon_years":10}}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var res domain.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, domain.ModeFutureValue, res.Mode)
	assert.InDelta(t, 7928814.92, res.Value, 0.01)
	assert.Equal(t, res.Value, res.Parameters.TargetValue)
}

func TestSolve_UnreachableHorizonIsOK(t *testing.T) {
	s, _ := newTestServer(t)
	rec := do(t, s, http.MethodPost, "/api/v1/solve",
		`{"mode":"horizon","parameters":{"target_value":10000000,"annual_rate":0}}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var res domain.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.NotNil(t, res.Horizon)
	assert.True(t, res.Horizon.Unreachable)
}

func TestSolve_Errors(t *testing.T) {
	s, _ := newTestServer(t)
	testCases := []struct {
		name   string
		body   string
		status int
		field  string
	}{
		{"validation", `{"mode":"fv","parameters":{"annual_rate":5,"horizon_years":150}}`, http.StatusBadRequest, "horizon_years"},
		{"negative capital", `{"mode":"pmt","parameters":{"initial_capital":-1,"target_value":10,"annual_rate":5,"horizon_years":1}}`, http.StatusBadRequest, "initial_capital"},
		{"computation", `{"mode":"fv","parameters":{"initial_capital":1e308,"annual_rate":1000,"horizon_years":100}}`, http.StatusUnprocessableEntity, ""},
		{"unknown mode", `{"mode":"irr","parameters":{}}`, http.StatusBadRequest, ""},
		{"malformed", `{"mode":`, http.StatusBadRequest, ""},
		{"unknown field", `{"mode":"fv","rate":5}`, http.StatusBadRequest, ""},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rec := do(t, s, http.MethodPost, "/api/v1/solve", tc.body)
			assert.Equal(t, tc.status, rec.Code)
			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.NotEmpty(t, resp.Error)
			assert.Equal(t, tc.field, resp.Field)
		})
	}
}

func TestTrajectory(t *testing.T) {
	s, _ := newTestServer(t)
	rec := do(t, s, http.MethodPost, "/api/v1/trajectory",
		`{"parameters":{"initial_capital":1000,"monthly_contribution":100,"annual_rate":6,"horizon_years":2.5},"yearly":true}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp TrajectoryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	months := make([]int, 0, len(resp.Points))
	for _, pt := range resp.Points {
		months = append(months, pt.Month)
	}
	assert.Equal(t, []int{0, 12, 24, 30}, months)
	assert.InDelta(t, 4000, resp.Breakdown.TotalInvested, 1e-9)
	assert.Equal(t, resp.Points[len(resp.Points)-1].Value, resp.Breakdown.FinalValue)
}

func TestSweep(t *testing.T) {
	s, _ := newTestServer(t)
	rec := do(t, s, http.MethodPost, "/api/v1/sweep/horizon",
		`{"parameters":{"initial_capital":100000,"monthly_contribution":50000,"annual_rate":5,"horizon_years":10}}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var sweep domain.Sweep
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &sweep))
	require.Len(t, sweep.Points, 4)
	assert.Equal(t, 5.0, sweep.Points[0].Input)
	assert.Less(t, sweep.Points[0].FutureValue, sweep.Points[3].FutureValue)

	rec = do(t, s, http.MethodPost, "/api/v1/sweep/volatility", `{"parameters":{}}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, s, http.MethodPost, "/api/v1/sweep/rate", `{"parameters":{"horizon_years":5},"values":[-200]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestReport(t *testing.T) {
	s, _ := newTestServer(t)
	cfg := domain.Configuration{
		Client: domain.ClientInfo{Name: "Awa"},
		Simulations: []domain.Simulation{
			{Name: "fv", Mode: "fv", Parameters: domain.Parameters{InitialCapital: 100000, MonthlyContribution: 50000, AnnualRate: 5, HorizonYears: 10}},
		},
	}
	body, err := json.Marshal(cfg)
	require.NoError(t, err)

	rec := do(t, s, http.MethodPost, "/api/v1/report/console-lite", string(body))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "text/plain; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "fv: Final Value = 7 928 815 FCFA")

	rec = do(t, s, http.MethodPost, "/api/v1/report/pdf", string(body))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(rec.Body.Bytes(), []byte("%PDF-")))

	rec = do(t, s, http.MethodPost, "/api/v1/report/xlsx", string(body))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, s, http.MethodPost, "/api/v1/report/json", `{"simulations":[]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestListenAndServe_StopsOnCancel(t *testing.T) {
	s, _ := newTestServer(t)
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.ListenAndServe(ctx, "127.0.0.1:0") }()
	cancel()
	assert.NoError(t, <-done)
}
