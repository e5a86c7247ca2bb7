package handler

import (
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"
	"github.com/vfg2006/sales-ledger-api/internal/domain"
	"github.com/vfg2006/sales-ledger-api/pkg/apiErrors"
	"github.com/vfg2006/sales-ledger-api/pkg/log"
	"github.com/vfg2006/sales-ledger-api/pkg/utils"
)

type monthSummary struct {
	Month               string            `json:"month"`
	Orders              int               `json:"orders"`
	TotalSales          string            `json:"total_sales"`
	MostPopularItem     string            `json:"most_popular_item"`
	MostPopularQuantity int64             `json:"most_popular_quantity"`
	TopRevenueItem      string            `json:"top_revenue_item"`
	TopRevenue          string            `json:"top_revenue"`
	MinOrderQuantity    int64             `json:"min_order_quantity"`
	MaxOrderQuantity    int64             `json:"max_order_quantity"`
	AvgOrderQuantity    string            `json:"avg_order_quantity"`
	ItemQuantity        map[string]int64  `json:"item_quantity"`
	ItemRevenue         map[string]string `json:"item_revenue"`
}

type summaryResponse struct {
	SnapshotID   string         `json:"snapshot_id"`
	Source       string         `json:"source"`
	LoadedAt     time.Time      `json:"loaded_at"`
	Months       []monthSummary `json:"months"`
	GrandTotal   string         `json:"grand_total"`
	TotalRecords int            `json:"total_records"`
	SkippedLines int            `json:"skipped_lines"`
}

// Valores monetários só são arredondados aqui, na apresentação
func toMonthSummary(stats *domain.MonthStats, places int32) monthSummary {
	revenue := make(map[string]string, len(stats.ItemRevenue))
	for item, value := range stats.ItemRevenue {
		revenue[item] = utils.RoundHalfAwayFromZero(value, places).StringFixed(places)
	}

	return monthSummary{
		Month:               stats.Month,
		Orders:              stats.Orders,
		TotalSales:          utils.RoundHalfAwayFromZero(stats.TotalSales, places).StringFixed(places),
		MostPopularItem:     stats.MostPopularItem,
		MostPopularQuantity: stats.MostPopularQuantity,
		TopRevenueItem:      stats.TopRevenueItem,
		TopRevenue:          utils.RoundHalfAwayFromZero(stats.TopRevenue, places).StringFixed(places),
		MinOrderQuantity:    stats.MinOrderQuantity,
		MaxOrderQuantity:    stats.MaxOrderQuantity,
		AvgOrderQuantity:    stats.AvgOrderQuantity.StringFixed(places),
		ItemQuantity:        stats.ItemQuantity,
		ItemRevenue:         revenue,
	}
}

// GetSummary retorna as estatísticas de todos os meses em ordem crescente
func GetSummary(service LedgerService, settings Settings) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		snapshot, ok := currentSnapshot(w, service)
		if !ok {
			return
		}

		months := make([]monthSummary, 0, len(snapshot.Stats))
		for _, month := range snapshot.Months() {
			months = append(months, toMonthSummary(snapshot.Stats[month], settings.DecimalPlaces))
		}

		log.ForContext(r.Context()).WithFields(log.Fields{
			"snapshot_id": snapshot.ID,
			"months":      len(months),
		}).Debug("summary: resumo mensal gerado")

		writeJSON(w, r, http.StatusOK, summaryResponse{
			SnapshotID:   snapshot.ID,
			Source:       snapshot.Source,
			LoadedAt:     snapshot.LoadedAt,
			Months:       months,
			GrandTotal:   utils.RoundHalfAwayFromZero(snapshot.GrandTotal, settings.DecimalPlaces).StringFixed(settings.DecimalPlaces),
			TotalRecords: len(snapshot.Records),
			SkippedLines: len(snapshot.Issues),
		})
	})
}

// GetMonthSummary retorna as estatísticas de um mês (YYYY-MM)
func GetMonthSummary(service LedgerService, settings Settings) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		month := httprouter.ParamsFromContext(r.Context()).ByName("month")

		key, err := utils.ParseMonthKey(month)
		if err != nil || key != month {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "Mês inválido. Use o formato YYYY-MM", map[string]string{"month": month})
			return
		}

		snapshot, ok := currentSnapshot(w, service)
		if !ok {
			return
		}

		stats, exists := snapshot.Stats[key]
		if !exists {
			apiErrors.WriteError(w, apiErrors.ErrNotFound, "Nenhuma venda registrada no mês", map[string]string{"month": key})
			return
		}

		writeJSON(w, r, http.StatusOK, toMonthSummary(stats, settings.DecimalPlaces))
	})
}
