// Package source carrega o texto bruto do razão de vendas
package source

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/vfg2006/sales-ledger-api/internal/config"
)

//go:generate mockgen -source=source.go -destination=mocks/mock_source.go -package=mocks

// LedgerSource entrega o conteúdo completo do razão já em memória
type LedgerSource interface {
	Fetch(ctx context.Context) (string, error)
	Name() string
}

// New escolhe a implementação pela forma de LEDGER_SOURCE (http/https ou caminho de arquivo)
func New(cfg config.Ledger) LedgerSource {
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second

	if u, err := url.Parse(cfg.Source); err == nil {
		scheme := strings.ToLower(u.Scheme)
		if scheme == "http" || scheme == "https" {
			return NewHTTPSource(cfg.Source, timeout)
		}
	}

	return NewFileSource(cfg.Source)
}
