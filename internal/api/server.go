package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/justinas/alice"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-ledger-api/internal/api/handler"
	"github.com/vfg2006/sales-ledger-api/internal/api/handler/router"
	"github.com/vfg2006/sales-ledger-api/internal/config"
	"github.com/vfg2006/sales-ledger-api/pkg/metrics"
	"github.com/vfg2006/sales-ledger-api/pkg/middleware"
)

const shutdownTimeout = 15 * time.Second

type Server struct {
	httpServer *http.Server
}

func New(
	config *config.Config,
	ledgerService handler.LedgerService,
	recorder *metrics.Recorder,
) (*Server, error) {
	if ledgerService == nil {
		return nil, errors.New("api: serviço do razão não informado")
	}
	if recorder == nil {
		recorder = metrics.NewRecorder()
	}

	settings := handler.Settings{
		DecimalPlaces: int32(config.Ledger.DecimalPlaces),
		PageSize:      config.Paging.PageSize,
		MaxPageSize:   config.Paging.MaxPageSize,
	}

	rt := router.New(
		router.WithRoutes(handler.Healthcheck()...),
		router.WithRoutes(handler.Ledger(ledgerService, settings)...),
		router.WithRoutes(handler.Reload(ledgerService)...),
		router.WithRoutes(handler.Metrics(recorder.Handler())...),
	)

	middlewares := []alice.Constructor{
		middleware.LogPanicMiddleware(),
		middleware.LoggingMiddleware(),
		middleware.Cors(config.Server.AllowedOrigins),
	}

	srv := &Server{
		httpServer: &http.Server{
			Addr:              config.Server.Address(),
			Handler:           alice.New(middlewares...).Then(rt),
			ReadHeaderTimeout: 2 * time.Second,
		},
	}

	return srv, nil
}

// Handler expõe a cadeia completa de middlewares e rotas
func (s Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Run bloqueia até o contexto ser cancelado ou o listener falhar
func (s Server) Run(ctx context.Context) error {
	serveErr := make(chan error, 1)

	go func() {
		logrus.WithFields(logrus.Fields{
			"address": s.httpServer.Addr,
		}).Info("Servidor iniciando")

		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err, ok := <-serveErr:
		if ok {
			logrus.WithError(err).Error("Erro durante a execução do servidor")
			return err
		}
		return nil
	case <-ctx.Done():
		logrus.Info("Contexto de aplicação cancelado")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	logrus.WithFields(logrus.Fields{
		"timeout": shutdownTimeout.String(),
	}).Info("Iniciando desligamento gracioso do servidor")

	if err := s.Shutdown(shutdownCtx); err != nil {
		logrus.WithError(err).Error("Erro durante o desligamento do servidor")
		return err
	}

	logrus.Info("Servidor desligado com sucesso")
	return nil
}

func (s Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
