// Package domain contém as estruturas de dados do domínio da aplicação
package domain

import "github.com/shopspring/decimal"

// MonthKeyLength é o tamanho do prefixo YYYY-MM usado como chave do mês
const MonthKeyLength = 7

// SaleRecord representa uma linha do razão de vendas
type SaleRecord struct {
	Line      int             `json:"line"` // linha de origem (1-based, conta o cabeçalho)
	Date      string          `json:"date"`
	ItemCode  string          `json:"item_code"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int64           `json:"quantity"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// MonthKey retorna o prefixo YYYY-MM da data do registro
func (r SaleRecord) MonthKey() string {
	if len(r.Date) < MonthKeyLength {
		return r.Date
	}
	return r.Date[:MonthKeyLength]
}
