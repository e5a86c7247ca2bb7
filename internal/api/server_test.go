package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/sales-ledger-api/internal/config"
	"github.com/vfg2006/sales-ledger-api/internal/domain"
	"github.com/vfg2006/sales-ledger-api/pkg/log"
	"github.com/vfg2006/sales-ledger-api/pkg/metrics"
	"github.com/vfg2006/sales-ledger-api/pkg/middleware"
)

type emptyLedger struct{}

func (emptyLedger) Current() *domain.LedgerSnapshot { return nil }
func (emptyLedger) Reload(ctx context.Context) error { return nil }
func (emptyLedger) TriggerManualReload() {}
func (emptyLedger) GetStatus() map[string]any { return map[string]any{} }

func testConfig() *config.Config {
	return &config.Config{
		Server: config.Server{Host: "127.0.0.1", Port: "0", AllowedOrigins: []string{"http://localhost:3000"}},
		Ledger: config.Ledger{DecimalPlaces: 2},
		Paging: config.Paging{PageSize: 50, MaxPageSize: 500},
	}
}

func TestServerRoutes(t *testing.T) {
	log.SetupTestLogger()

	recorder := metrics.NewRecorder()
	recorder.ObserveSnapshot(7, 1, 2)

	srv, err := New(testConfig(), emptyLedger{}, recorder)
	require.NoError(t, err)

	tests := []struct {
		name       string
		method     string
		target     string
		wantStatus int
		wantBody   string
	}{
		{name: "healthcheck", method: http.MethodGet, target: "/healthcheck", wantStatus: http.StatusOK},
		{name: "resumo sem razão carregado", method: http.MethodGet, target: "/v1/summary", wantStatus: http.StatusServiceUnavailable, wantBody: "LED_001"},
		{name: "métricas", method: http.MethodGet, target: "/metrics", wantStatus: http.StatusOK, wantBody: "ledger_records_parsed_total 7"},
		{name: "rota inexistente", method: http.MethodGet, target: "/v1/desconhecida", wantStatus: http.StatusNotFound, wantBody: "NOT_001"},
		{name: "método não permitido", method: http.MethodDelete, target: "/v1/summary", wantStatus: http.StatusMethodNotAllowed, wantBody: "VAL_004"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.target, nil)
			req.Header.Set("Origin", "http://localhost:3000")
			rec := httptest.NewRecorder()

			srv.Handler().ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Contains(t, rec.Body.String(), tt.wantBody)
			assert.NotEmpty(t, rec.Header().Get(middleware.CorrelationIDHeader))
			assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}

func TestNewRequiresLedgerService(t *testing.T) {
	_, err := New(testConfig(), nil, nil)
	assert.Error(t, err)
}

func TestRunStopsOnContextCancel(t *testing.T) {
	log.SetupTestLogger()

	srv, err := New(testConfig(), emptyLedger{}, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.NoError(t, srv.Run(ctx))
}
