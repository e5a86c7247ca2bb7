package domain

import "github.com/shopspring/decimal"

// MonthStats agrega as vendas de um mês (chave YYYY-MM)
type MonthStats struct {
	Month        string                     `json:"month"`
	Orders       int                        `json:"orders"`
	TotalSales   decimal.Decimal            `json:"total_sales"`
	ItemQuantity map[string]int64           `json:"item_quantity"`
	ItemRevenue  map[string]decimal.Decimal `json:"item_revenue"`

	MostPopularItem     string          `json:"most_popular_item"`
	MostPopularQuantity int64           `json:"most_popular_quantity"`
	TopRevenueItem      string          `json:"top_revenue_item"`
	TopRevenue          decimal.Decimal `json:"top_revenue"`

	// Estatísticas dos pedidos do item mais vendido no mês
	MinOrderQuantity int64           `json:"min_order_quantity"`
	MaxOrderQuantity int64           `json:"max_order_quantity"`
	AvgOrderQuantity decimal.Decimal `json:"avg_order_quantity"`
}
