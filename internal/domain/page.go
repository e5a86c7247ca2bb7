package domain

// Page é uma janela da sequência de registros
type Page struct {
	Page       int          `json:"page"`
	PageSize   int          `json:"page_size"`
	TotalPages int          `json:"total_pages"`
	TotalItems int          `json:"total_items"`
	Items      []SaleRecord `json:"items"`
}

// HasPrevious indica se existe página anterior
func (p Page) HasPrevious() bool {
	return p.Page > 1
}

// HasNext indica se existe próxima página
func (p Page) HasNext() bool {
	return p.Page < p.TotalPages
}
