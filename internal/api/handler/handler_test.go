package handler

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/sales-ledger-api/internal/api/handler/router"
	"github.com/vfg2006/sales-ledger-api/internal/domain"
	"github.com/vfg2006/sales-ledger-api/internal/scheduler"
	"github.com/vfg2006/sales-ledger-api/internal/usecases/insighting"
	"github.com/vfg2006/sales-ledger-api/internal/usecases/parsing"
	"github.com/vfg2006/sales-ledger-api/pkg/log"
	"github.com/xuri/excelize/v2"
)

const sampleLedger = "Date,SKU,Unit Price,Quantity,Total Price\n" +
	"2024-01-05,A1,10.00,2,20.00\n" +
	"2024-01-10,A1,10.00,3,30.00\n" +
	"2024-02-01,B2,5.00,10,50.00\n" +
	"2024-02-02,B2,abc,1,5.00\n"

type fakeLedgerService struct {
	snapshot    *domain.LedgerSnapshot
	reloadErr   error
	reloads     int
	triggered   int
	status      map[string]any
	afterReload *domain.LedgerSnapshot
}

func (f *fakeLedgerService) Current() *domain.LedgerSnapshot { return f.snapshot }

func (f *fakeLedgerService) Reload(ctx context.Context) error {
	f.reloads++
	if f.reloadErr != nil {
		return f.reloadErr
	}
	if f.afterReload != nil {
		f.snapshot = f.afterReload
	}
	return nil
}

func (f *fakeLedgerService) TriggerManualReload() { f.triggered++ }

func (f *fakeLedgerService) GetStatus() map[string]any { return f.status }

func loadSnapshot(t *testing.T, raw string) *domain.LedgerSnapshot {
	t.Helper()

	snapshot, err := insighting.NewService(parsing.DefaultOptions()).Run("teste", raw)
	require.NoError(t, err)
	return snapshot
}

var testSettings = Settings{DecimalPlaces: 2, PageSize: 2, MaxPageSize: 3}

func newTestRouter(service LedgerService) http.Handler {
	return router.New(
		router.WithRoutes(Healthcheck()...),
		router.WithRoutes(Ledger(service, testSettings)...),
		router.WithRoutes(Reload(service)...),
	)
}

func do(t *testing.T, h http.Handler, method, target string) *httptest.ResponseRecorder {
	t.Helper()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(method, target, nil))
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestHealthcheck(t *testing.T) {
	rec := do(t, newTestRouter(&fakeLedgerService{}), http.MethodGet, "/healthcheck")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Body.String())
}

func TestSnapshotNotLoaded(t *testing.T) {
	log.SetupTestLogger()
	h := newTestRouter(&fakeLedgerService{})

	for _, target := range []string{"/v1/summary", "/v1/summary/2024-01", "/v1/records", "/v1/issues", "/v1/export"} {
		t.Run(target, func(t *testing.T) {
			rec := do(t, h, http.MethodGet, target)

			assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
			assert.Equal(t, "LED_001", decode(t, rec)["code"])
		})
	}
}

func TestGetSummary(t *testing.T) {
	log.SetupTestLogger()
	h := newTestRouter(&fakeLedgerService{snapshot: loadSnapshot(t, sampleLedger)})

	rec := do(t, h, http.MethodGet, "/v1/summary")
	require.Equal(t, http.StatusOK, rec.Code)

	var body summaryResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	assert.Equal(t, "teste", body.Source)
	assert.Equal(t, "100.00", body.GrandTotal)
	assert.Equal(t, 3, body.TotalRecords)
	assert.Equal(t, 1, body.SkippedLines)
	require.Len(t, body.Months, 2)

	january := body.Months[0]
	assert.Equal(t, "2024-01", january.Month)
	assert.Equal(t, "50.00", january.TotalSales)
	assert.Equal(t, "A1", january.MostPopularItem)
	assert.Equal(t, int64(5), january.MostPopularQuantity)
	assert.Equal(t, "A1", january.TopRevenueItem)
	assert.Equal(t, "50.00", january.TopRevenue)
	assert.Equal(t, int64(2), january.MinOrderQuantity)
	assert.Equal(t, int64(3), january.MaxOrderQuantity)
	assert.Equal(t, "2.50", january.AvgOrderQuantity)
	assert.Equal(t, map[string]string{"A1": "50.00"}, january.ItemRevenue)

	assert.Equal(t, "2024-02", body.Months[1].Month)
	assert.Equal(t, "B2", body.Months[1].MostPopularItem)
}

func TestGetMonthSummary(t *testing.T) {
	log.SetupTestLogger()
	h := newTestRouter(&fakeLedgerService{snapshot: loadSnapshot(t, sampleLedger)})

	tests := []struct {
		name       string
		month      string
		wantStatus int
		wantCode   string
	}{
		{name: "mês existente", month: "2024-02", wantStatus: http.StatusOK},
		{name: "mês sem vendas", month: "2023-12", wantStatus: http.StatusNotFound, wantCode: "NOT_001"},
		{name: "mês inválido", month: "2024-13", wantStatus: http.StatusBadRequest, wantCode: "VAL_003"},
		{name: "data completa não é chave de mês", month: "2024-02-01", wantStatus: http.StatusBadRequest, wantCode: "VAL_003"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, http.MethodGet, "/v1/summary/"+tt.month)

			assert.Equal(t, tt.wantStatus, rec.Code)
			body := decode(t, rec)
			if tt.wantCode != "" {
				assert.Equal(t, tt.wantCode, body["code"])
				return
			}
			assert.Equal(t, tt.month, body["month"])
			assert.Equal(t, "50.00", body["total_sales"])
			assert.Equal(t, "10.00", body["avg_order_quantity"])
		})
	}
}

func TestGetRecords(t *testing.T) {
	log.SetupTestLogger()
	h := newTestRouter(&fakeLedgerService{snapshot: loadSnapshot(t, sampleLedger)})

	tests := []struct {
		name          string
		query         string
		wantStatus    int
		wantPage      float64
		wantPageSize  float64
		wantItems     int
		wantFirstLine float64
		wantNext      bool
	}{
		{name: "página padrão", query: "", wantStatus: http.StatusOK, wantPage: 1, wantPageSize: 2, wantItems: 2, wantFirstLine: 2, wantNext: true},
		{name: "segunda página", query: "?page=2", wantStatus: http.StatusOK, wantPage: 2, wantPageSize: 2, wantItems: 1, wantFirstLine: 4, wantNext: false},
		{name: "página além do fim é limitada", query: "?page=9", wantStatus: http.StatusOK, wantPage: 2, wantPageSize: 2, wantItems: 1, wantFirstLine: 4, wantNext: false},
		{name: "page_size acima do máximo é limitado", query: "?page_size=100", wantStatus: http.StatusOK, wantPage: 1, wantPageSize: 3, wantItems: 3, wantFirstLine: 2, wantNext: false},
		{name: "page inválido", query: "?page=abc", wantStatus: http.StatusBadRequest},
		{name: "page_size zero", query: "?page_size=0", wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := do(t, h, http.MethodGet, "/v1/records"+tt.query)

			require.Equal(t, tt.wantStatus, rec.Code)
			body := decode(t, rec)
			if tt.wantStatus != http.StatusOK {
				assert.Equal(t, "VAL_001", body["code"])
				return
			}

			assert.Equal(t, tt.wantPage, body["page"])
			assert.Equal(t, tt.wantPageSize, body["page_size"])
			assert.Equal(t, float64(3), body["total_items"])
			assert.Equal(t, tt.wantNext, body["has_next"])

			items := body["items"].([]any)
			require.Len(t, items, tt.wantItems)
			assert.Equal(t, tt.wantFirstLine, items[0].(map[string]any)["line"])
		})
	}
}

func TestGetIssues(t *testing.T) {
	log.SetupTestLogger()
	h := newTestRouter(&fakeLedgerService{snapshot: loadSnapshot(t, sampleLedger)})

	rec := do(t, h, http.MethodGet, "/v1/issues")
	require.Equal(t, http.StatusOK, rec.Code)

	var body issuesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	require.Equal(t, 1, body.Total)
	assert.Equal(t, 5, body.Issues[0].Line)
	assert.Equal(t, parsing.FieldUnitPrice, body.Issues[0].Field)
	assert.Equal(t, "abc", body.Issues[0].Value)
}

func TestReloadLedger(t *testing.T) {
	log.SetupTestLogger()

	tests := []struct {
		name       string
		target     string
		reloadErr  error
		wantStatus int
		wantCode   string
	}{
		{name: "recarga síncrona", target: "/v1/reload", wantStatus: http.StatusOK},
		{name: "recarga assíncrona", target: "/v1/reload?async=true", wantStatus: http.StatusAccepted},
		{name: "recarga em andamento", target: "/v1/reload", reloadErr: scheduler.ErrReloadInProgress, wantStatus: http.StatusConflict, wantCode: "LED_002"},
		{name: "razão vazio", target: "/v1/reload", reloadErr: &parsing.EmptyInputError{}, wantStatus: http.StatusUnprocessableEntity, wantCode: "SRV_005"},
		{
			name:       "linha mal formada em modo estrito",
			target:     "/v1/reload",
			reloadErr:  &parsing.MalformedRecordError{Line: 3, Field: parsing.FieldQuantity, Value: "x", Reason: "not an integer"},
			wantStatus: http.StatusUnprocessableEntity,
			wantCode:   "SRV_005",
		},
		{name: "soma de quantidades estoura", target: "/v1/reload", reloadErr: &insighting.QuantityOverflowError{Month: "2024-01", Item: "A1", Line: 9}, wantStatus: http.StatusUnprocessableEntity, wantCode: "SRV_005"},
		{name: "fonte indisponível", target: "/v1/reload", reloadErr: fmt.Errorf("erro ao buscar o razão: %w", errors.New("connection refused")), wantStatus: http.StatusBadGateway, wantCode: "SRV_003"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := &fakeLedgerService{
				reloadErr:   tt.reloadErr,
				afterReload: loadSnapshot(t, sampleLedger),
			}

			rec := do(t, newTestRouter(service), http.MethodPost, tt.target)

			assert.Equal(t, tt.wantStatus, rec.Code)
			body := decode(t, rec)

			switch {
			case tt.wantCode != "":
				assert.Equal(t, tt.wantCode, body["code"])
				assert.Equal(t, 1, service.reloads)
			case tt.wantStatus == http.StatusAccepted:
				assert.Equal(t, 1, service.triggered)
				assert.Equal(t, 0, service.reloads)
			default:
				assert.Equal(t, service.snapshot.ID, body["snapshot_id"])
				assert.Equal(t, float64(3), body["total_records"])
				assert.Equal(t, float64(1), body["skipped_lines"])
			}
		})
	}
}

func TestGetReloadStatus(t *testing.T) {
	service := &fakeLedgerService{status: map[string]any{"sync_enabled": true, "last_error": ""}}

	rec := do(t, newTestRouter(service), http.MethodGet, "/v1/reload/status")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, true, decode(t, rec)["sync_enabled"])
}

func TestExportWorkbook(t *testing.T) {
	log.SetupTestLogger()
	snapshot := loadSnapshot(t, sampleLedger)

	rec := do(t, newTestRouter(&fakeLedgerService{snapshot: snapshot}), http.MethodGet, "/v1/export")

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, xlsxContentType, rec.Header().Get("Content-Type"))
	assert.True(t, strings.Contains(rec.Header().Get("Content-Disposition"), snapshot.ID))

	f, err := excelize.OpenReader(bytes.NewReader(rec.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	total, err := f.GetCellValue("Summary", "B4")
	require.NoError(t, err)
	assert.Equal(t, "100.00", total)
}
