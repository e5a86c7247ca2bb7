package handler

import (
	"net/http"
	"strconv"

	"github.com/vfg2006/sales-ledger-api/internal/domain"
	"github.com/vfg2006/sales-ledger-api/internal/usecases/paging"
	"github.com/vfg2006/sales-ledger-api/pkg/apiErrors"
	"github.com/vfg2006/sales-ledger-api/pkg/log"
)

type recordsResponse struct {
	SnapshotID  string `json:"snapshot_id"`
	HasPrevious bool   `json:"has_previous"`
	HasNext     bool   `json:"has_next"`
	domain.Page
}

// GetRecords retorna uma página dos registros na ordem de entrada
func GetRecords(service LedgerService, settings Settings) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		page, err := intParam(r, "page", 1)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Parâmetro page deve ser um inteiro positivo", nil)
			return
		}

		pageSize, err := intParam(r, "page_size", settings.PageSize)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Parâmetro page_size deve ser um inteiro positivo", nil)
			return
		}
		if pageSize > settings.MaxPageSize {
			pageSize = settings.MaxPageSize
		}

		snapshot, ok := currentSnapshot(w, service)
		if !ok {
			return
		}

		result := paging.Paginate(snapshot.Records, page, pageSize)

		log.ForContext(r.Context()).WithFields(log.Fields{
			"page":        result.Page,
			"page_size":   result.PageSize,
			"total_pages": result.TotalPages,
		}).Debug("records: página de registros gerada")

		writeJSON(w, r, http.StatusOK, recordsResponse{
			SnapshotID:  snapshot.ID,
			HasPrevious: result.HasPrevious(),
			HasNext:     result.HasNext(),
			Page:        result,
		})
	})
}

// intParam lê um inteiro positivo da query, usando fallback quando ausente
func intParam(r *http.Request, name string, fallback int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return 0, err
	}
	if value < 1 {
		return 0, strconv.ErrRange
	}

	return value, nil
}
