package domain

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// LineIssue descreve uma linha descartada durante o parse
type LineIssue struct {
	Line    int    `json:"line"`
	Field   string `json:"field"`
	Value   string `json:"value,omitempty"`
	Message string `json:"message"`
}

// LedgerSnapshot é o resultado imutável de uma execução do pipeline
type LedgerSnapshot struct {
	ID         string                 `json:"id"`
	Source     string                 `json:"source"`
	LoadedAt   time.Time              `json:"loaded_at"`
	Records    []SaleRecord           `json:"-"`
	Stats      map[string]*MonthStats `json:"-"`
	Issues     []LineIssue            `json:"issues"`
	GrandTotal decimal.Decimal        `json:"grand_total"`
}

// Months retorna as chaves de mês em ordem crescente
func (s *LedgerSnapshot) Months() []string {
	months := make([]string, 0, len(s.Stats))
	for month := range s.Stats {
		months = append(months, month)
	}
	sort.Strings(months)
	return months
}
