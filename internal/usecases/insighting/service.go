package insighting

import (
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-ledger-api/internal/domain"
	"github.com/vfg2006/sales-ledger-api/internal/usecases/parsing"
	"github.com/vfg2006/sales-ledger-api/pkg/utils"
)

// Service compõe o parser e o agregador em uma execução do pipeline
type Service struct {
	options parsing.Options
	now     func() time.Time
}

// NewService cria o pipeline com as opções de parse e arredondamento
func NewService(options parsing.Options) Pipeline {
	return &Service{
		options: options,
		now:     time.Now,
	}
}

// Run processa o texto bruto e monta o snapshot da execução.
// Erros do parser (modo estrito ou entrada vazia) e do agregador são fatais.
func (s *Service) Run(source string, raw string) (*domain.LedgerSnapshot, error) {
	logger := logrus.WithFields(logrus.Fields{
		"source":      source,
		"strict_mode": s.options.StrictMode,
	})

	result, err := parsing.Parse(raw, s.options)
	if err != nil {
		if result != nil {
			logSkippedLines(logger, result.Issues)
		}
		logger.WithError(err).Error("insighting: erro ao interpretar o razão de vendas")
		return nil, err
	}

	logSkippedLines(logger, result.Issues)

	stats, err := Aggregate(result.Records, s.options.DecimalPlaces)
	if err != nil {
		logger.WithError(err).Error("insighting: erro ao agregar estatísticas mensais")
		return nil, err
	}

	id, err := utils.GenerateID()
	if err != nil {
		return nil, err
	}

	snapshot := &domain.LedgerSnapshot{
		ID:         id,
		Source:     source,
		LoadedAt:   s.now(),
		Records:    result.Records,
		Stats:      stats,
		Issues:     result.LineIssues(),
		GrandTotal: GrandTotal(stats),
	}

	logger.WithFields(logrus.Fields{
		"snapshot_id": snapshot.ID,
		"records":     len(snapshot.Records),
		"skipped":     len(snapshot.Issues),
		"months":      len(snapshot.Stats),
		"grand_total": snapshot.GrandTotal.StringFixed(s.options.DecimalPlaces),
	}).Info("insighting: razão de vendas processado com sucesso")

	return snapshot, nil
}

func logSkippedLines(logger *logrus.Entry, issues []*parsing.MalformedRecordError) {
	for _, issue := range issues {
		logger.WithFields(logrus.Fields{
			"line":  issue.Line,
			"field": issue.Field,
		}).Warn("insighting: linha ignorada: ", issue.Reason)
	}
}
