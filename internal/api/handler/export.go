package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"github.com/vfg2006/sales-ledger-api/infrastructure/exporter"
	"github.com/vfg2006/sales-ledger-api/pkg/apiErrors"
	"github.com/vfg2006/sales-ledger-api/pkg/log"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportWorkbook devolve o snapshot atual como planilha XLSX
func ExportWorkbook(service LedgerService, settings Settings) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger := log.ForContext(r.Context())

		snapshot, ok := currentSnapshot(w, service)
		if !ok {
			return
		}

		// Gera em memória para poder responder 500 antes de escrever o corpo
		var buf bytes.Buffer
		if err := exporter.WriteWorkbook(&buf, snapshot, settings.DecimalPlaces); err != nil {
			logger.WithError(err).Error("export: erro ao gerar planilha")
			apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao gerar planilha", nil)
			return
		}

		w.Header().Set("Content-Type", xlsxContentType)
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"ledger-%s.xlsx\"", snapshot.ID))
		w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))

		if _, err := buf.WriteTo(w); err != nil {
			logger.WithError(err).Warn("export: erro ao enviar planilha")
		}
	})
}
