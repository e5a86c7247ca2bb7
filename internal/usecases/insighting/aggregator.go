package insighting

import (
	"math"
	"sort"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/sales-ledger-api/internal/domain"
	"github.com/vfg2006/sales-ledger-api/pkg/utils"
)

// orderAggregator acumula as quantidades dos pedidos de um item no mês
type orderAggregator struct {
	count int
	sum   int64
	min   int64
	max   int64
}

func (o *orderAggregator) add(quantity int64) {
	if o.count == 0 || quantity < o.min {
		o.min = quantity
	}
	if o.count == 0 || quantity > o.max {
		o.max = quantity
	}
	o.count++
	o.sum += quantity
}

// monthAggregator guarda o estado de um mês durante a passada única
type monthAggregator struct {
	stats     *domain.MonthStats
	itemOrder []string // itens na ordem em que aparecem na entrada
	orders    map[string]*orderAggregator
}

func newMonthAggregator(month string) *monthAggregator {
	return &monthAggregator{
		stats: &domain.MonthStats{
			Month:        month,
			TotalSales:   decimal.Zero,
			ItemQuantity: make(map[string]int64),
			ItemRevenue:  make(map[string]decimal.Decimal),
		},
		orders: make(map[string]*orderAggregator),
	}
}

// add falha quando a soma de quantidades do item passaria de math.MaxInt64.
// Quantidades são não negativas, então a soma por item limita também a dos pedidos.
func (m *monthAggregator) add(record domain.SaleRecord) error {
	code := record.ItemCode

	if m.stats.ItemQuantity[code] > math.MaxInt64-record.Quantity {
		return &QuantityOverflowError{Month: m.stats.Month, Item: code, Line: record.Line}
	}

	orders, exists := m.orders[code]
	if !exists {
		orders = &orderAggregator{}
		m.orders[code] = orders
		m.itemOrder = append(m.itemOrder, code)
	}
	orders.add(record.Quantity)

	m.stats.Orders++
	m.stats.TotalSales = m.stats.TotalSales.Add(record.LineTotal)
	m.stats.ItemQuantity[code] += record.Quantity

	revenue, ok := m.stats.ItemRevenue[code]
	if !ok {
		revenue = decimal.Zero
	}
	m.stats.ItemRevenue[code] = revenue.Add(record.LineTotal)
	return nil
}

// Aggregate agrupa os registros por mês (YYYY-MM) e calcula as estatísticas de cada mês.
//
// Empates no ranking de quantidade ou de receita são resolvidos pelo item que
// apareceu primeiro na entrada. A média dos pedidos do item mais vendido é
// arredondada em decimalPlaces casas (metade para longe do zero). Somas de
// quantidade acima de math.MaxInt64 retornam QuantityOverflowError.
func Aggregate(records []domain.SaleRecord, decimalPlaces int32) (map[string]*domain.MonthStats, error) {
	months := make(map[string]*monthAggregator)

	for _, record := range records {
		key := record.MonthKey()

		month, exists := months[key]
		if !exists {
			month = newMonthAggregator(key)
			months[key] = month
		}
		if err := month.add(record); err != nil {
			return nil, err
		}
	}

	result := make(map[string]*domain.MonthStats, len(months))
	for key, month := range months {
		stats, err := month.finalize(decimalPlaces)
		if err != nil {
			return nil, err
		}
		result[key] = stats
	}

	return result, nil
}

func (m *monthAggregator) finalize(decimalPlaces int32) (*domain.MonthStats, error) {
	stats := m.stats
	if stats.Orders == 0 || len(m.itemOrder) == 0 {
		return nil, &EmptyMonthError{Month: stats.Month}
	}

	byQuantity := rankItems(m.itemOrder, func(a, b string) bool {
		return stats.ItemQuantity[a] > stats.ItemQuantity[b]
	})
	byRevenue := rankItems(m.itemOrder, func(a, b string) bool {
		return stats.ItemRevenue[a].GreaterThan(stats.ItemRevenue[b])
	})

	stats.MostPopularItem = byQuantity[0]
	stats.MostPopularQuantity = stats.ItemQuantity[stats.MostPopularItem]
	stats.TopRevenueItem = byRevenue[0]
	stats.TopRevenue = stats.ItemRevenue[stats.TopRevenueItem]

	orders, exists := m.orders[stats.MostPopularItem]
	if !exists || orders.count == 0 {
		return nil, &EmptyMonthError{Month: stats.Month, Item: stats.MostPopularItem}
	}

	stats.MinOrderQuantity = orders.min
	stats.MaxOrderQuantity = orders.max
	stats.AvgOrderQuantity = utils.Mean(orders.sum, orders.count, decimalPlaces)

	return stats, nil
}

// rankItems ordena os itens de forma decrescente mantendo a ordem de entrada nos empates
func rankItems(items []string, greater func(a, b string) bool) []string {
	ranked := make([]string, len(items))
	copy(ranked, items)

	sort.SliceStable(ranked, func(i, j int) bool {
		return greater(ranked[i], ranked[j])
	})

	return ranked
}

// GrandTotal soma o total de vendas de todos os meses
func GrandTotal(stats map[string]*domain.MonthStats) decimal.Decimal {
	total := decimal.Zero
	for _, month := range stats {
		total = total.Add(month.TotalSales)
	}
	return total
}
