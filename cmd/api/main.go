package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-ledger-api/infrastructure/source"
	"github.com/vfg2006/sales-ledger-api/internal/api"
	"github.com/vfg2006/sales-ledger-api/internal/config"
	"github.com/vfg2006/sales-ledger-api/internal/scheduler"
	"github.com/vfg2006/sales-ledger-api/internal/usecases/insighting"
	"github.com/vfg2006/sales-ledger-api/pkg/log"
	"github.com/vfg2006/sales-ledger-api/pkg/metrics"
	"golang.org/x/sync/errgroup"
)

func main() {
	// Formato de log antes de ler a configuração
	log.Configure("info")

	cfg, err := config.NewConfig()
	if err != nil {
		logrus.Fatal(err)
	}

	if !log.Configure(cfg.App.LogLevel) {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
	}
	logrus.Infof("Nível de log configurado para: %s", logrus.GetLevel())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	ledgerSource := source.New(cfg.Ledger)
	pipeline := insighting.NewService(cfg.Ledger.ParseOptions())
	recorder := metrics.NewRecorder()

	reloadService := scheduler.NewLedgerReloadService(ledgerSource, pipeline, recorder, cfg)

	if err := reloadService.Start(ctx); err != nil {
		logrus.WithError(err).Error("Erro ao iniciar o agendador de recarga do razão")
	}

	server, err := api.New(cfg, reloadService, recorder)
	if err != nil {
		logrus.Fatal(err)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return server.Run(gctx)
	})
	// Primeira carga em paralelo com o servidor; até concluir a API responde LED_001
	g.Go(func() error {
		if err := reloadService.Reload(gctx); err != nil {
			logrus.WithError(err).Error("Erro na carga inicial do razão de vendas")
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		logrus.Error(err)
		os.Exit(1)
	}
}
