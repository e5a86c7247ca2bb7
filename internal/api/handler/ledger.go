package handler

import (
	"context"
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/vfg2006/sales-ledger-api/internal/domain"
	"github.com/vfg2006/sales-ledger-api/pkg/apiErrors"
	"github.com/vfg2006/sales-ledger-api/pkg/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// LedgerService é o que os handlers precisam do serviço de recarga
type LedgerService interface {
	Current() *domain.LedgerSnapshot
	Reload(ctx context.Context) error
	TriggerManualReload()
	GetStatus() map[string]any
}

// Settings controla arredondamento e paginação das respostas
type Settings struct {
	DecimalPlaces int32
	PageSize      int
	MaxPageSize   int
}

// currentSnapshot escreve LED_001 quando ainda não existe razão carregado
func currentSnapshot(w http.ResponseWriter, service LedgerService) (*domain.LedgerSnapshot, bool) {
	snapshot := service.Current()
	if snapshot == nil {
		apiErrors.WriteError(w, apiErrors.ErrSnapshotNotLoaded, "Nenhum razão de vendas carregado ainda", nil)
		return nil, false
	}
	return snapshot, true
}

func writeJSON(w http.ResponseWriter, r *http.Request, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.ForContext(r.Context()).WithError(err).Error("handler: erro ao codificar resposta")
	}
}
