// Package paging recorta a sequência de registros em páginas
package paging

import (
	"github.com/vfg2006/sales-ledger-api/internal/domain"
)

// Paginate retorna a página (1-based) de tamanho size.
// A página é limitada ao intervalo [1, TotalPages]; sem registros existe uma única página vazia.
func Paginate(records []domain.SaleRecord, page, size int) domain.Page {
	if size < 1 {
		size = 1
	}

	total := len(records)
	totalPages := (total + size - 1) / size
	if totalPages == 0 {
		totalPages = 1
	}

	if page < 1 {
		page = 1
	}
	if page > totalPages {
		page = totalPages
	}

	start := (page - 1) * size
	end := start + size
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}

	items := records[start:end:end]
	if items == nil {
		items = []domain.SaleRecord{}
	}

	return domain.Page{
		Page:       page,
		PageSize:   size,
		TotalPages: totalPages,
		TotalItems: total,
		Items:      items,
	}
}
