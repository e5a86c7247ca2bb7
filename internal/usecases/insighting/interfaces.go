package insighting

import (
	"github.com/vfg2006/sales-ledger-api/internal/domain"
)

// Pipeline executa parse + agregação sobre um texto já carregado em memória
type Pipeline interface {
	// Run processa o texto bruto e retorna um snapshot imutável
	Run(source string, raw string) (*domain.LedgerSnapshot, error)
}
