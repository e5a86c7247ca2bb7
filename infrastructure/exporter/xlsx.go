// Package exporter gera a planilha com o resumo mensal e os registros do razão
package exporter

import (
	"io"

	"github.com/pkg/errors"
	"github.com/vfg2006/sales-ledger-api/internal/domain"
	"github.com/xuri/excelize/v2"
)

const (
	SummarySheet = "Summary"
	RecordsSheet = "Records"
)

var (
	summaryHeader = []any{"Month", "Total Sales", "Most Popular Item", "Quantity", "Top Revenue Item", "Revenue", "Min Orders", "Max Orders", "Avg Orders"}
	recordsHeader = []any{"Line", "Date", "Item", "Unit Price", "Quantity", "Total Price"}
)

// WriteWorkbook escreve o snapshot em formato XLSX.
// Valores monetários saem como texto fixo em decimalPlaces casas.
func WriteWorkbook(w io.Writer, snapshot *domain.LedgerSnapshot, decimalPlaces int32) error {
	if snapshot == nil {
		return errors.New("exporter: snapshot vazio")
	}

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", SummarySheet); err != nil {
		return errors.Wrap(err, "exporter: erro ao renomear aba")
	}
	if _, err := f.NewSheet(RecordsSheet); err != nil {
		return errors.Wrap(err, "exporter: erro ao criar aba de registros")
	}

	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return errors.Wrap(err, "exporter: erro ao criar estilo")
	}

	if err := writeSummary(f, snapshot, decimalPlaces, headerStyle); err != nil {
		return err
	}
	if err := writeRecords(f, snapshot, decimalPlaces, headerStyle); err != nil {
		return err
	}

	return errors.Wrap(f.Write(w), "exporter: erro ao gravar planilha")
}

func writeSummary(f *excelize.File, snapshot *domain.LedgerSnapshot, places int32, headerStyle int) error {
	if err := writeRow(f, SummarySheet, 1, summaryHeader); err != nil {
		return err
	}
	if err := f.SetCellStyle(SummarySheet, "A1", "I1", headerStyle); err != nil {
		return errors.Wrap(err, "exporter: erro ao aplicar estilo")
	}

	row := 2
	for _, month := range snapshot.Months() {
		stats := snapshot.Stats[month]
		err := writeRow(f, SummarySheet, row, []any{
			stats.Month,
			stats.TotalSales.StringFixed(places),
			stats.MostPopularItem,
			stats.MostPopularQuantity,
			stats.TopRevenueItem,
			stats.TopRevenue.StringFixed(places),
			stats.MinOrderQuantity,
			stats.MaxOrderQuantity,
			stats.AvgOrderQuantity.StringFixed(places),
		})
		if err != nil {
			return err
		}
		row++
	}

	// Linha de total geral
	return writeRow(f, SummarySheet, row, []any{"Total", snapshot.GrandTotal.StringFixed(places)})
}

func writeRecords(f *excelize.File, snapshot *domain.LedgerSnapshot, places int32, headerStyle int) error {
	if err := writeRow(f, RecordsSheet, 1, recordsHeader); err != nil {
		return err
	}
	if err := f.SetCellStyle(RecordsSheet, "A1", "F1", headerStyle); err != nil {
		return errors.Wrap(err, "exporter: erro ao aplicar estilo")
	}

	for i, record := range snapshot.Records {
		err := writeRow(f, RecordsSheet, i+2, []any{
			record.Line,
			record.Date,
			record.ItemCode,
			record.UnitPrice.StringFixed(places),
			record.Quantity,
			record.LineTotal.StringFixed(places),
		})
		if err != nil {
			return err
		}
	}

	return nil
}

func writeRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return errors.Wrapf(err, "exporter: linha %d inválida", row)
	}

	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return errors.Wrapf(err, "exporter: erro ao escrever linha %d da aba %s", row, sheet)
	}

	return nil
}
