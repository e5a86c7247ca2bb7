package handler

import (
	"net/http"

	"github.com/vfg2006/sales-ledger-api/internal/api/handler/router"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Ledger(service LedgerService, settings Settings) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/summary",
			Method:  http.MethodGet,
			Handler: GetSummary(service, settings),
		},
		{
			Path:    "/v1/summary/:month",
			Method:  http.MethodGet,
			Handler: GetMonthSummary(service, settings),
		},
		{
			Path:    "/v1/records",
			Method:  http.MethodGet,
			Handler: GetRecords(service, settings),
		},
		{
			Path:    "/v1/issues",
			Method:  http.MethodGet,
			Handler: GetIssues(service),
		},
		{
			Path:    "/v1/export",
			Method:  http.MethodGet,
			Handler: ExportWorkbook(service, settings),
		},
	}
}

func Reload(service LedgerService) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/reload",
			Method:  http.MethodPost,
			Handler: ReloadLedger(service),
		},
		{
			Path:    "/v1/reload/status",
			Method:  http.MethodGet,
			Handler: GetReloadStatus(service),
		},
	}
}

func Metrics(metricsHandler http.Handler) []router.Route {
	return []router.Route{
		{
			Path:    "/metrics",
			Method:  http.MethodGet,
			Handler: metricsHandler,
		},
	}
}
