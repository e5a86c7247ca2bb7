package handler

import (
	"errors"
	"net/http"

	"github.com/vfg2006/sales-ledger-api/internal/scheduler"
	"github.com/vfg2006/sales-ledger-api/internal/usecases/insighting"
	"github.com/vfg2006/sales-ledger-api/internal/usecases/parsing"
	"github.com/vfg2006/sales-ledger-api/pkg/apiErrors"
	"github.com/vfg2006/sales-ledger-api/pkg/log"
)

// ReloadLedger recarrega o razão. Com ?async=true a recarga roda em background.
func ReloadLedger(service LedgerService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		if r.URL.Query().Get("async") == "true" {
			service.TriggerManualReload()
			writeJSON(w, r, http.StatusAccepted, map[string]any{
				"message": "Recarga do razão iniciada",
			})
			return
		}

		if err := service.Reload(r.Context()); err != nil {
			logger.WithError(err).Warn("reload: recarga manual falhou")
			writeReloadError(w, err)
			return
		}

		snapshot := service.Current()
		logger.WithField("snapshot_id", snapshot.ID).Info("reload: recarga manual concluída")

		writeJSON(w, r, http.StatusOK, map[string]any{
			"message":       "Razão recarregado com sucesso",
			"snapshot_id":   snapshot.ID,
			"total_records": len(snapshot.Records),
			"skipped_lines": len(snapshot.Issues),
		})
	})
}

func writeReloadError(w http.ResponseWriter, err error) {
	var malformed *parsing.MalformedRecordError

	switch {
	case errors.Is(err, scheduler.ErrReloadInProgress):
		apiErrors.WriteError(w, apiErrors.ErrReloadInProgress, "Já existe uma recarga em andamento", nil)
	case errors.As(err, &malformed):
		apiErrors.WriteError(w, apiErrors.ErrUnprocessable, err.Error(), map[string]any{
			"line":  malformed.Line,
			"field": malformed.Field,
		})
	case errors.Is(err, parsing.ErrEmptyInput), errors.Is(err, insighting.ErrEmptyMonth),
		errors.Is(err, insighting.ErrQuantityOverflow):
		apiErrors.WriteError(w, apiErrors.ErrUnprocessable, err.Error(), nil)
	default:
		apiErrors.WriteError(w, apiErrors.ErrExternalService, err.Error(), nil)
	}
}

// GetReloadStatus retorna o status do agendador de recarga
func GetReloadStatus(service LedgerService) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, r, http.StatusOK, service.GetStatus())
	})
}
