// Package parsing converte o texto bruto do razão de vendas em registros tipados
package parsing

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/vfg2006/sales-ledger-api/internal/domain"
	"github.com/vfg2006/sales-ledger-api/pkg/utils"
)

// ParseResult guarda os registros válidos, em ordem de entrada, e as linhas descartadas
type ParseResult struct {
	Records   []domain.SaleRecord
	Issues    []*MalformedRecordError
	DataLines int // linhas não vazias após o cabeçalho
}

// LineIssues converte os erros coletados para o formato exposto ao cliente
func (r *ParseResult) LineIssues() []domain.LineIssue {
	issues := make([]domain.LineIssue, 0, len(r.Issues))
	for _, issue := range r.Issues {
		issues = append(issues, domain.LineIssue{
			Line:    issue.Line,
			Field:   issue.Field,
			Value:   issue.Value,
			Message: issue.Reason,
		})
	}
	return issues
}

// Parse lê o texto delimitado e retorna os registros na ordem das linhas.
//
// Cada linha é independente: o texto é quebrado em '\n' e cada linha é
// dividida no delimitador, sem regras de aspas. A primeira linha não vazia é
// o cabeçalho e seu conteúdo é ignorado. Linhas em branco são puladas sem
// erro. Em modo estrito a primeira linha inválida interrompe o parse; caso
// contrário ela é registrada em Issues.
func Parse(raw string, opts Options) (*ParseResult, error) {
	delimiter := string(opts.delimiter())

	result := &ParseResult{}
	headerSeen := false

	for i, text := range strings.Split(raw, "\n") {
		text = strings.TrimSuffix(text, "\r")
		if strings.TrimSpace(text) == "" {
			continue
		}

		if !headerSeen {
			headerSeen = true
			continue
		}

		result.DataLines++

		saleRecord, issue := parseRecord(i+1, strings.Split(text, delimiter), opts)
		if issue != nil {
			if opts.StrictMode {
				return nil, issue
			}
			result.Issues = append(result.Issues, issue)
			continue
		}

		result.Records = append(result.Records, saleRecord)
	}

	if len(result.Records) == 0 {
		return result, &EmptyInputError{Skipped: len(result.Issues)}
	}

	return result, nil
}

func parseRecord(line int, record []string, opts Options) (domain.SaleRecord, *MalformedRecordError) {
	if len(record) < len(fieldOrder) {
		missing := fieldOrder[len(record)]
		return domain.SaleRecord{}, newMalformed(line, missing, "",
			"expected "+strconv.Itoa(len(fieldOrder))+" fields, got "+strconv.Itoa(len(record)))
	}

	get := func(i int) string {
		return strings.TrimSpace(record[i])
	}

	date := get(0)
	if _, err := utils.ParseMonthKey(date); err != nil {
		return domain.SaleRecord{}, newMalformed(line, FieldDate, date, "not a YYYY-MM prefixed date")
	}

	itemCode := get(1)
	if itemCode == "" {
		return domain.SaleRecord{}, newMalformed(line, FieldItemCode, "", "empty item code")
	}

	unitPrice, issue := parseAmount(line, FieldUnitPrice, get(2))
	if issue != nil {
		return domain.SaleRecord{}, issue
	}

	quantityStr := get(3)
	quantity, err := strconv.ParseInt(quantityStr, 10, 64)
	if err != nil {
		return domain.SaleRecord{}, newMalformed(line, FieldQuantity, quantityStr, "not an integer")
	}
	if quantity < 0 {
		return domain.SaleRecord{}, newMalformed(line, FieldQuantity, quantityStr, "negative value")
	}

	lineTotal, issue := parseAmount(line, FieldLineTotal, get(4))
	if issue != nil {
		return domain.SaleRecord{}, issue
	}

	if opts.ValidateLineTotal {
		expected := unitPrice.Mul(decimal.NewFromInt(quantity)).Round(opts.DecimalPlaces)
		if !expected.Equal(lineTotal.Round(opts.DecimalPlaces)) {
			return domain.SaleRecord{}, newMalformed(line, FieldLineTotal, get(4),
				"does not match unit price x quantity ("+expected.StringFixed(opts.DecimalPlaces)+")")
		}
	}

	return domain.SaleRecord{
		Line:      line,
		Date:      date,
		ItemCode:  itemCode,
		UnitPrice: unitPrice,
		Quantity:  quantity,
		LineTotal: lineTotal,
	}, nil
}

func parseAmount(line int, field, value string) (decimal.Decimal, *MalformedRecordError) {
	amount, err := decimal.NewFromString(value)
	if err != nil {
		return decimal.Zero, newMalformed(line, field, value, "not a decimal number")
	}
	if amount.IsNegative() {
		return decimal.Zero, newMalformed(line, field, value, "negative value")
	}
	return amount, nil
}
